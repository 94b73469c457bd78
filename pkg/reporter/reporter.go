// Package reporter renders inspection results in the supported output
// formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/javafix/pkg/runner"
)

// Reporter writes a run result in one output format.
type Reporter interface {
	// Report writes result and returns how many items it reported: problems
	// for most formats, changed files for diff.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// constructors maps each format to its reporter.
//
//nolint:gochecknoglobals // Read-only lookup table.
var constructors = map[Format]func(Options) Reporter{
	FormatText:    func(o Options) Reporter { return NewTextReporter(o) },
	FormatJSON:    func(o Options) Reporter { return NewJSONReporter(o) },
	FormatSARIF:   func(o Options) Reporter { return NewSARIFReporter(o) },
	FormatDiff:    func(o Options) Reporter { return NewDiffReporter(o) },
	FormatSummary: func(o Options) Reporter { return NewSummaryReporter(o) },
}

// New returns the reporter for opts.Format, text when unset. A nil Writer
// means standard output.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	build, ok := constructors[opts.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
	return build(opts), nil
}
