package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/inspect"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// SummaryOrder controls which table the summary format prints first.
type SummaryOrder string

const (
	SummaryOrderInspections SummaryOrder = "inspections"
	SummaryOrderFiles       SummaryOrder = "files"
)

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext includes the source line under each problem.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// DetailedSummary prints the statistics as a block instead of one line
	// (text format).
	DetailedSummary bool

	// GroupByFile groups problems by file (text format).
	GroupByFile bool

	// Compact uses minified output for JSON and SARIF.
	Compact bool

	// InspectionFormat controls how inspection identifiers appear.
	InspectionFormat config.InspectionFormat

	// SummaryOrder controls the order of tables in summary output.
	SummaryOrder SummaryOrder

	// Registry, when set, lists every inspection as a SARIF rule; otherwise
	// rules are derived from the reported problems.
	Registry *inspect.Registry

	// Version is reported as the tool version in SARIF and JSON output.
	Version string

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:           os.Stdout,
		ErrorWriter:      os.Stderr,
		Format:           FormatText,
		Color:            "auto",
		ShowContext:      true,
		ShowSummary:      true,
		GroupByFile:      true,
		InspectionFormat: config.InspectionFormatName,
		SummaryOrder:     SummaryOrderInspections,
		Version:          "dev",
	}
}
