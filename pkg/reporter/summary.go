package reporter

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/javafix/internal/ui/pretty"
	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/runner"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth       = 90
	nameColWidth     = 30
	fileColWidth     = 60
	numColWidth      = 7
	warnColWidth     = 8
	fixableColWidth  = 8
	maxNameLength    = 28
	maxFilePathWidth = 58
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// summaryRow aggregates the problems of one inspection or one file.
type summaryRow struct {
	Label    string
	Problems int
	Errors   int
	Warnings int
	Fixable  int
}

func (row *summaryRow) add(sev config.Severity, fixable bool) {
	row.Problems++
	switch sev {
	case config.SeverityError:
		row.Errors++
	case config.SeverityWarning:
		row.Warnings++
	}
	if fixable {
		row.Fixable++
	}
}

// SummaryReporter prints per-inspection and per-file tables.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	byInspection, byFile := r.aggregate(result)
	if len(byFile) == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No problems found"))
		return 0, nil
	}

	if r.opts.SummaryOrder == SummaryOrderFiles {
		r.renderTable("Files Summary", "File", fileColWidth, maxFilePathWidth, byFile, false)
		fmt.Fprintln(r.out)
		r.renderTable("Inspections Summary", "Inspection", nameColWidth, maxNameLength, byInspection, true)
	} else {
		r.renderTable("Inspections Summary", "Inspection", nameColWidth, maxNameLength, byInspection, true)
		fmt.Fprintln(r.out)
		r.renderTable("Files Summary", "File", fileColWidth, maxFilePathWidth, byFile, false)
	}

	fmt.Fprintln(r.out)
	fmt.Fprint(r.out, r.styles.Bold.Render("Total: ")+r.styles.FormatSummaryOneLine(result.Stats))

	return result.Stats.ProblemsTotal, nil
}

// aggregate groups problems by inspection and by file, most problems first.
func (r *SummaryReporter) aggregate(result *runner.Result) ([]summaryRow, []summaryRow) {
	if result == nil {
		return nil, nil
	}

	inspections := make(map[string]*summaryRow)
	var files []summaryRow

	for _, file := range result.Files {
		doc := documentOf(file)
		if doc == nil || len(doc.Problems) == 0 {
			continue
		}
		fileRow := summaryRow{Label: displayPath(file.Path, r.opts.WorkingDir)}
		for _, problem := range doc.Problems {
			key := problem.InspectionID
			row, ok := inspections[key]
			if !ok {
				row = &summaryRow{Label: config.FormatInspectionID(r.opts.InspectionFormat, problem.InspectionID, problem.InspectionName)}
				inspections[key] = row
			}
			row.add(problem.Severity, problem.HasFix())
			fileRow.add(problem.Severity, problem.HasFix())
		}
		files = append(files, fileRow)
	}

	byInspection := make([]summaryRow, 0, len(inspections))
	for _, row := range inspections {
		byInspection = append(byInspection, *row)
	}

	byCount := func(a, b summaryRow) int {
		return cmp.Or(cmp.Compare(b.Problems, a.Problems), cmp.Compare(a.Label, b.Label))
	}
	slices.SortFunc(byInspection, byCount)
	slices.SortFunc(files, byCount)

	return byInspection, files
}

func (r *SummaryReporter) renderTable(title, column string, width, maxLabel int, rows []summaryRow, withFixable bool) {
	if len(rows) == 0 {
		return
	}

	separator := r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth))
	fmt.Fprintln(r.out, r.styles.Bold.Render(title))
	fmt.Fprintln(r.out, separator)

	header := []string{
		r.styles.TableHeader.Render(padRight(column, width)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
	}
	if withFixable {
		header = append(header, r.styles.TableHeader.Render(padLeft("Fixable", fixableColWidth)))
	}
	fmt.Fprintln(r.out, strings.Join(header, " "))
	fmt.Fprintln(r.out, separator)

	for _, row := range rows {
		label := row.Label
		if len(label) > maxLabel {
			label = "…" + label[len(label)-(maxLabel-1):]
		}

		// Pad first, then style
		padded := padRight(label, width)
		switch {
		case row.Errors > 0:
			padded = r.styles.TableErrorRow.Render(padded)
		case row.Warnings > 0:
			padded = r.styles.TableWarnRow.Render(padded)
		}

		cells := []string{
			padded,
			padLeft(strconv.Itoa(row.Problems), numColWidth),
			padLeft(strconv.Itoa(row.Errors), numColWidth),
			padLeft(strconv.Itoa(row.Warnings), warnColWidth),
		}
		if withFixable {
			fixable := padLeft("", fixableColWidth)
			if row.Fixable > 0 {
				fixable = r.styles.Success.Render(padLeft(strconv.Itoa(row.Fixable), fixableColWidth))
			}
			cells = append(cells, fixable)
		}
		fmt.Fprintln(r.out, strings.Join(cells, " "))
	}
}
