package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every inspection with its documentation.
	Full bool

	// Inspections describes the inspections to document in a full template.
	Inspections []InspectionInfo
}

// InspectionInfo contains inspection metadata for template generation.
type InspectionInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
	Fixes       []string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Default severity for inspections: error, warning, or info
severity_default: warning

# Gitignore-style patterns for files outside the fix scope
# ignore:
#   - "build/**"
#   - "**/generated/**"

# Backup configuration for fix
backups:
  enabled: true
  mode: sidecar

project:
  # Leave .gitignore'd files out of scope
  respect_gitignore: true
  # source_roots:
  #   - src/main/java

fixes:
  max_passes: 10
  # families:
  #   - Insert super constructor call
`)

	if !opts.Full || len(opts.Inspections) == 0 {
		buf.WriteString(`
# Inspection-specific configuration
# inspections:
#   JF001:
#     enabled: true
#     severity: error
`)
		return buf.Bytes()
	}

	infos := slices.Clone(opts.Inspections)
	slices.SortFunc(infos, func(a, b InspectionInfo) int {
		return strings.Compare(a.ID, b.ID)
	})

	buf.WriteString("\ninspections:\n")
	for _, info := range infos {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", info.ID, info.Name)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(info.Description, commentWrapWidth))
		if len(info.Tags) > 0 {
			fmt.Fprintf(&buf, "  # Tags: %s\n", strings.Join(info.Tags, ", "))
		}
		if len(info.Fixes) > 0 {
			fmt.Fprintf(&buf, "  # Fixes: %s\n", strings.Join(info.Fixes, ", "))
		}
		fmt.Fprintf(&buf, "  %s:\n", info.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", info.Enabled)
		fmt.Fprintf(&buf, "    severity: %s\n", info.Severity)
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# javafix configuration
# See: https://github.com/yaklabco/javafix`
}
