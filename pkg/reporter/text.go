package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/javafix/internal/ui/pretty"
	"github.com/yaklabco/javafix/pkg/inspect"
	"github.com/yaklabco/javafix/pkg/runner"
)

// TextReporter prints problems for a terminal, grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	total := 0
	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
	} else {
		for _, file := range result.Files {
			total += r.writeFile(file)
		}
		r.writeSummary(result.Stats)
	}

	if err := r.bw.Flush(); err != nil {
		return total, fmt.Errorf("write report: %w", err)
	}
	return total, nil
}

// writeFile prints the problems of one file and returns how many it printed.
func (r *TextReporter) writeFile(file runner.FileOutcome) int {
	path := displayPath(file.Path, r.opts.WorkingDir)
	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
		return 0
	}

	doc := documentOf(file)
	if doc == nil || len(doc.Problems) == 0 {
		return 0
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(doc.Problems)))
	}
	for _, problem := range doc.Problems {
		problem.Path = path
		source := ""
		if r.opts.ShowContext {
			source = doc.Line(problem.StartLine)
		}
		fmt.Fprint(r.bw, r.styles.FormatProblem(&problem, r.opts.ShowContext, source, r.opts.InspectionFormat))
	}
	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw)
	}
	return len(doc.Problems)
}

func (r *TextReporter) writeSummary(stats runner.Stats) {
	switch {
	case !r.opts.ShowSummary:
	case r.opts.DetailedSummary:
		fmt.Fprint(r.bw, r.styles.FormatSummary(stats))
	default:
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(stats))
	}
}

// documentOf returns the inspected document of a file outcome, or nil.
func documentOf(file runner.FileOutcome) *inspect.DocumentResult {
	if file.Result == nil {
		return nil
	}
	return file.Result.DocumentResult
}
