package projectview

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/yaklabco/javafix/internal/ui/pretty"
)

const (
	stripeMark = "▌"
	guideMid   = "├── "
	guideLast  = "└── "
	guidePipe  = "│   "
	guideBlank = "    "
)

// Renderer draws a tree as text.
type Renderer struct {
	Styles *pretty.Styles

	// Width truncates rows when positive.
	Width int

	// Pattern highlights nodes matching a speed search.
	Pattern string

	// ShowCounts appends the number of problems to files and classes.
	ShowCounts bool
}

// NewRenderer creates a renderer for w, enabling color per the color mode
// ("auto", "always", "never") and sizing rows to the terminal.
func NewRenderer(w io.Writer, color string) *Renderer {
	return &Renderer{
		Styles: pretty.NewStyles(pretty.IsColorEnabled(color, w)),
		Width:  TerminalWidth(w),
	}
}

// TerminalWidth returns the column count of w when it is a terminal, or 0.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// Render writes the visible rows of t.
func (r *Renderer) Render(w io.Writer, t *Tree) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, r.Styles.TreeDirectory.Render(t.Root.Name))

	// open[d] is true while the ancestor at depth d has later siblings.
	var open []bool
	for _, row := range t.Rows() {
		open = append(open[:row.Depth], !row.Last)
		fmt.Fprintln(bw, r.row(t, row, open))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("render tree: %w", err)
	}
	return nil
}

func (r *Renderer) row(t *Tree, row Row, open []bool) string {
	var b strings.Builder

	if sev, ok := t.Stripe(row.Node); ok {
		b.WriteString(r.Styles.SeverityStyle(sev).Render(stripeMark))
	} else {
		b.WriteString(" ")
	}

	var guides strings.Builder
	for d := 0; d < row.Depth; d++ {
		if open[d] {
			guides.WriteString(guidePipe)
		} else {
			guides.WriteString(guideBlank)
		}
	}
	if row.Last {
		guides.WriteString(guideLast)
	} else {
		guides.WriteString(guideMid)
	}
	b.WriteString(r.Styles.TreeGuide.Render(guides.String()))

	n := row.Node
	if n.Kind.IsContainer() {
		if row.Expanded {
			b.WriteString("▾ ")
		} else {
			b.WriteString("▸ ")
		}
	}

	style := r.kindStyle(n.Kind)
	if r.Pattern != "" && MatchesNode(n, r.Pattern) {
		style = r.Styles.TreeMatch.Inherit(style)
	}
	if t.IsSelected(n.ID) {
		style = r.Styles.TreeSelected.Inherit(style)
	}
	b.WriteString(style.Render(n.Name))

	if r.ShowCounts && !n.Kind.IsContainer() && len(n.Problems) > 0 {
		b.WriteString(r.Styles.Dim.Render(fmt.Sprintf(" (%d)", len(n.Problems))))
	}

	line := b.String()
	if r.Width > 0 && lipgloss.Width(line) > r.Width {
		line = lipgloss.NewStyle().MaxWidth(r.Width).Render(line)
	}
	return line
}

func (r *Renderer) kindStyle(k Kind) lipgloss.Style {
	switch k {
	case KindDirectory, KindRoot:
		return r.Styles.TreeDirectory
	case KindPackage:
		return r.Styles.TreePackage
	case KindClass:
		return r.Styles.TreeClass
	default:
		return r.Styles.TreeFile
	}
}
