package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/javafix/internal/ui/pretty"
	"github.com/yaklabco/javafix/pkg/fix"
	"github.com/yaklabco/javafix/pkg/runner"
)

// DiffReporter prints the changes a dry run would make as git-style
// unified diffs.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Report implements Reporter. The count is the number of files with changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	w := bufio.NewWriter(r.out)
	var files, added, removed int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(w, "%s: %s\n", r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}
		files++
		added += file.Result.Diff.Additions
		removed += file.Result.Diff.Deletions
		r.render(w, file.Result.Diff)
	}

	if files > 0 && r.opts.ShowSummary {
		stat := []string{plural(files, "file") + " changed"}
		if added > 0 {
			stat = append(stat, r.styles.DiffAdd.Render(plural(added, "insertion")+"(+)"))
		}
		if removed > 0 {
			stat = append(stat, r.styles.DiffRemove.Render(plural(removed, "deletion")+"(-)"))
		}
		fmt.Fprintln(w, strings.Join(stat, ", "))
	}

	if err := w.Flush(); err != nil {
		return files, fmt.Errorf("write diff: %w", err)
	}
	return files, nil
}

// WriteDiff prints one diff, for edits made outside a run.
func (r *DiffReporter) WriteDiff(diff *fix.Diff) {
	if !diff.HasChanges() {
		return
	}
	w := bufio.NewWriter(r.out)
	r.render(w, diff)
	_ = w.Flush()
}

func (r *DiffReporter) render(w io.Writer, diff *fix.Diff) {
	path := displayPath(diff.Path, r.opts.WorkingDir)

	fmt.Fprintln(w, r.styles.DiffHeader.Render("diff --git a/"+path+" b/"+path))
	fmt.Fprintln(w, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(w, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, hunk := range diff.Hunks {
		fmt.Fprintln(w, r.styles.DiffHunk.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount, hunk.ModifiedStart, hunk.ModifiedCount)))
		for _, line := range hunk.Lines {
			prefix, style := r.lineStyle(line.Kind)
			fmt.Fprintln(w, style.Render(prefix+line.Content))
		}
	}
	fmt.Fprintln(w)
}

func (r *DiffReporter) lineStyle(kind fix.DiffLineKind) (string, lipgloss.Style) {
	switch kind {
	case fix.DiffLineAdd:
		return "+", r.styles.DiffAdd
	case fix.DiffLineRemove:
		return "-", r.styles.DiffRemove
	default:
		return " ", r.styles.DiffContext
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
