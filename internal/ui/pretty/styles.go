// Package pretty provides the Lipgloss styles javafix uses for terminal
// output: problems, diffs, summaries and the project tree.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI 256 palette indexes.
const (
	colorRed     = "9"
	colorGreen   = "10"
	colorYellow  = "11"
	colorBlue    = "12"
	colorMagenta = "13"
	colorCyan    = "14"
	colorGray    = "8"
	colorSilver  = "7"
)

// Styles holds the renderers for CLI output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Problem lines.
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	ID         lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Per-inspection summary table.
	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableSeparator lipgloss.Style

	// Project tree rows.
	TreeDirectory lipgloss.Style
	TreePackage   lipgloss.Style
	TreeFile      lipgloss.Style
	TreeClass     lipgloss.Style
	TreeSelected  lipgloss.Style
	TreeMatch     lipgloss.Style
	TreeGuide     lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// styler builds styles, or plain styles when color is off.
type styler bool

func (on styler) style(color string, decorate ...func(lipgloss.Style) lipgloss.Style) lipgloss.Style {
	st := lipgloss.NewStyle()
	if !on {
		return st
	}
	if color != "" {
		st = st.Foreground(lipgloss.Color(color))
	}
	for _, d := range decorate {
		st = d(st)
	}
	return st
}

func bold(s lipgloss.Style) lipgloss.Style      { return s.Bold(true) }
func italic(s lipgloss.Style) lipgloss.Style    { return s.Italic(true) }
func reverse(s lipgloss.Style) lipgloss.Style   { return s.Reverse(true) }
func underline(s lipgloss.Style) lipgloss.Style { return s.Underline(true) }

// NewStyles returns the styles for output with or without color.
func NewStyles(colorEnabled bool) *Styles {
	s := styler(colorEnabled)
	return &Styles{
		Error:   s.style(colorRed, bold),
		Warning: s.style(colorYellow, bold),
		Info:    s.style(colorBlue, bold),

		FilePath:   s.style("", bold),
		Location:   s.style(colorGray),
		ID:         s.style(colorGray),
		Message:    s.style(""),
		Suggestion: s.style(colorGreen, italic),
		SourceLine: s.style(colorSilver),
		Caret:      s.style(colorRed),

		DiffHeader:  s.style("", bold),
		DiffHunk:    s.style(colorCyan),
		DiffAdd:     s.style(colorGreen),
		DiffRemove:  s.style(colorRed),
		DiffContext: s.style(colorGray),

		SummaryTitle: s.style("", bold),
		SummaryValue: s.style(""),
		Success:      s.style(colorGreen, bold),
		Failure:      s.style(colorRed, bold),

		TableHeader:    s.style(colorSilver, bold),
		TableErrorRow:  s.style(colorRed),
		TableWarnRow:   s.style(colorYellow),
		TableSeparator: s.style(colorGray),

		TreeDirectory: s.style(colorBlue, bold),
		TreePackage:   s.style(colorMagenta),
		TreeFile:      s.style(""),
		TreeClass:     s.style(colorCyan),
		TreeSelected:  s.style("", reverse),
		TreeMatch:     s.style("", underline, bold),
		TreeGuide:     s.style(colorGray),

		Dim:  s.style(colorGray),
		Bold: s.style("", bold),
	}
}

// IsColorEnabled reports whether output to writer should be colored.
// mode is "always", "never" or "auto"; anything else means auto, which
// colors a terminal unless NO_COLOR is set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
