package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/javafix/pkg/runner"
)

const summaryDividerWidth = 40

// count renders "n noun" with the plural noun unless n is 1.
func count(n int, singular, plural string) string {
	if n == 1 {
		return strconv.Itoa(n) + " " + singular
	}
	return strconv.Itoa(n) + " " + plural
}

// FormatSummaryOneLine renders run statistics on one line, e.g.
// "3 problems (1 error, 2 warnings) in 2 files, 2 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if stats.ProblemsTotal == 0 {
		parts = append(parts, s.Success.Render("No problems found")+
			s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesProcessed)))
	} else {
		head := count(stats.ProblemsTotal, "problem", "problems")
		var bySeverity []string
		for _, sev := range []struct {
			key              string
			singular, plural string
			style            lipgloss.Style
		}{
			{"error", "error", "errors", s.Error},
			{"warning", "warning", "warnings", s.Warning},
			{"info", "info", "info", s.Info},
		} {
			if n := stats.ProblemsBySeverity[sev.key]; n > 0 {
				bySeverity = append(bySeverity, sev.style.Render(count(n, sev.singular, sev.plural)))
			}
		}
		if len(bySeverity) > 0 {
			head += " (" + strings.Join(bySeverity, ", ") + ")"
		}
		parts = append(parts, head+" in "+count(stats.FilesWithProblems, "file", "files"))
		if stats.ProblemsFixable > 0 {
			parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.ProblemsFixable)))
		}
	}

	if stats.FixesApplied > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixed in %s",
			stats.FixesApplied, count(stats.FilesModified, "file", "files"))))
	}
	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary renders run statistics as a block ending in the overall
// verdict.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	type row struct {
		label string
		value int
		style lipgloss.Style
		show  bool
	}
	errs := stats.ProblemsBySeverity["error"]
	warns := stats.ProblemsBySeverity["warning"]
	infos := stats.ProblemsBySeverity["info"]

	sections := [][]row{
		{
			{"Files checked:", stats.FilesProcessed, s.SummaryValue, true},
			{"Files w/ problems:", stats.FilesWithProblems, s.Failure, stats.FilesWithProblems > 0},
			{"Files modified:", stats.FilesModified, s.Success, stats.FilesModified > 0},
			{"Files skipped:", stats.FilesSkipped, s.Warning, stats.FilesSkipped > 0},
		},
		{
			{"Total problems:", stats.ProblemsTotal, s.SummaryValue, true},
			{"  Errors:", errs, s.Error, errs > 0},
			{"  Warnings:", warns, s.Warning, warns > 0},
			{"  Info:", infos, s.Info, infos > 0},
			{"Fixes applied:", stats.FixesApplied, s.Success, stats.FixesApplied > 0 || stats.FixesFailed > 0},
			{"Fixes failed:", stats.FixesFailed, s.Failure, stats.FixesFailed > 0},
		},
	}

	var b strings.Builder
	b.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")
	for _, section := range sections {
		for _, r := range section {
			if r.show {
				fmt.Fprintf(&b, "  %-19s%s\n", r.label, r.style.Render(strconv.Itoa(r.value)))
			}
		}
		b.WriteString("\n")
	}

	switch {
	case errs > 0:
		b.WriteString(s.Failure.Render("Check failed with errors"))
	case warns > 0:
		b.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		b.WriteString(s.Success.Render("Check passed"))
	}
	b.WriteString("\n")
	return b.String()
}
