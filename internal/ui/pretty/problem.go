package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/inspect"
)

// FormatProblem formats a single problem for terminal output. With
// showContext set and a non-empty sourceLine, the line is echoed with a
// caret under the start column.
func (s *Styles) FormatProblem(p *inspect.Problem, showContext bool, sourceLine string, format config.InspectionFormat) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(p.Path), p.StartLine, p.StartColumn)
	id := s.ID.Render("(" + config.FormatInspectionID(format, p.InspectionID, p.InspectionName) + ")")

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(p.Severity),
		s.Message.Render(p.Message),
		id,
	)

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, p.StartColumn))
	}

	if p.HasFix() {
		builder.WriteString("    " + s.Dim.Render("Fix:") + " " +
			s.Suggestion.Render(strings.Join(p.FixTexts(), ", ")) + "\n")
	} else if p.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(p.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// SeverityStyle returns the style used for sev, or Dim for unknown values.
func (s *Styles) SeverityStyle(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityError:
		return s.Error
	case config.SeverityWarning:
		return s.Warning
	case config.SeverityInfo:
		return s.Info
	default:
		return s.Dim
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	const indent = "        "

	var builder strings.Builder
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")
	if column > 0 {
		builder.WriteString(indent + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n")
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, problemCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case problemCount == 1:
		header += s.Dim.Render(" (1 problem)")
	case problemCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d problems)", problemCount))
	}
	return header
}
