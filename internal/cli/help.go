package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/javafix/internal/ui/pretty"
)

// HelpStyles are the styles of command help output.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	FlagType    lipgloss.Style
	Description lipgloss.Style
	Example     lipgloss.Style

	// Remark is the trailing "# ..." of an example line.
	Remark lipgloss.Style
	Dim    lipgloss.Style
}

// NewHelpStyles returns help styles, all plain when color is off.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	fg := func(color string) lipgloss.Style {
		if !colorEnabled {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	styles := &HelpStyles{
		Command:     fg("14"),
		Heading:     fg("11"),
		Subcommand:  fg("10"),
		Flag:        fg("12"),
		FlagType:    fg("8"),
		Description: lipgloss.NewStyle(),
		Example:     fg("14"),
		Remark:      fg("8"),
		Dim:         fg("8"),
	}
	if colorEnabled {
		styles.Command = styles.Command.Bold(true)
		styles.Heading = styles.Heading.Bold(true)
		styles.Remark = styles.Remark.Italic(true)
	}
	return styles
}

// HelpFormatter renders styled help for a command tree.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter returns a formatter for colorMode output to writer.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{heading "Usage:"}}
{{- if .Runnable}}
  {{command .UseLine}}{{end}}
{{- if .HasAvailableSubCommands}}
  {{command .CommandPath}} [command]{{end}}
{{- if .Aliases}}

{{heading "Aliases:"}}
  {{dim (join .Aliases ", ")}}{{end}}
{{- if .HasExample}}

{{heading "Examples:"}}
{{example .Example}}{{end}}
{{- if .HasAvailableSubCommands}}

{{heading "Commands:"}}
{{- range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{subcommand (rpad .Name .NamePadding)}} {{.Short}}{{end}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{heading "Flags:"}}
{{flags .LocalFlags}}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{heading "Global Flags:"}}
{{flags .InheritedFlags}}{{end}}
{{- if .HasAvailableSubCommands}}

Run "{{command (print .CommandPath " [command] --help")}}" for more about a command.{{end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{trimTrailing .}}

{{end}}` + usageTemplate

// ApplyToCommand installs the styled help and usage on cmd. Subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := template.FuncMap{
		"heading":      h.styles.Heading.Render,
		"command":      h.styles.Command.Render,
		"subcommand":   h.styles.Subcommand.Render,
		"dim":          h.styles.Dim.Render,
		"example":      h.styleExample,
		"flags":        h.styleFlags,
		"join":         strings.Join,
		"rpad":         rpad,
		"trimTrailing": trimTrailingWhitespaces,
	}
	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := usage.Execute(c.OutOrStderr(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// styleFlags renders one line per visible flag: the names and value type
// in a padded column, then the usage and any non-zero default.
func (h *HelpFormatter) styleFlags(set *pflag.FlagSet) string {
	type row struct {
		names, typ, usage string
		width             int
	}

	var rows []row
	widest := 0
	set.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		r := row{names: "    --" + f.Name}
		if f.Shorthand != "" {
			r.names = "-" + f.Shorthand + ", --" + f.Name
		}
		typ, usage := pflag.UnquoteUsage(f)
		r.typ = typ
		if hasDefault(f) {
			usage += fmt.Sprintf(" (default %s)", f.DefValue)
		}
		r.usage = usage
		r.width = len(r.names)
		if typ != "" {
			r.width += 1 + len(typ)
		}
		widest = max(widest, r.width)
		rows = append(rows, r)
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		line := "  " + h.styleFlagNames(r.names)
		if r.typ != "" {
			line += " " + h.styles.FlagType.Render(r.typ)
		}
		line += strings.Repeat(" ", widest-r.width+3) + h.styles.Description.Render(r.usage)
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) styleFlagNames(names string) string {
	short, long, ok := strings.Cut(names, ", ")
	if !ok {
		indent := len(names) - len(strings.TrimLeft(names, " "))
		return names[:indent] + h.styles.Flag.Render(names[indent:])
	}
	return h.styles.Flag.Render(short) + ", " + h.styles.Flag.Render(long)
}

// hasDefault reports whether f has a default worth printing.
func hasDefault(f *pflag.Flag) bool {
	switch f.DefValue {
	case "", "false", "0", "[]":
		return false
	}
	return true
}

// styleExample styles an example block line by line, dimming any trailing
// "# ..." remark.
func (h *HelpFormatter) styleExample(block string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		command, remark, found := strings.Cut(line, "#")
		if !found {
			lines[i] = h.styles.Example.Render(line)
			continue
		}
		lines[i] = h.styles.Example.Render(command) + h.styles.Remark.Render("#"+remark)
	}
	return strings.Join(lines, "\n")
}

func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
