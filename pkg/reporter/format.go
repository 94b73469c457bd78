package reporter

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output format name.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatSARIF   Format = "sarif"
	FormatDiff    Format = "diff"
	FormatSummary Format = "summary"
)

// formatNames lists the formats in the order help text shows them.
//
//nolint:gochecknoglobals // Read-only lookup table.
var formatNames = []Format{FormatText, FormatJSON, FormatSARIF, FormatDiff, FormatSummary}

// ParseFormat returns the format named s; "" means text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	if f := Format(s); f.IsValid() {
		return f, nil
	}

	names := make([]string, len(formatNames))
	for i, f := range formatNames {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %s", s, strings.Join(names, ", "))
}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f names a known format.
func (f Format) IsValid() bool {
	_, ok := constructors[f]
	return ok
}

// displayPath makes path relative to dir when dir is set and the result
// stays inside it.
func displayPath(path, dir string) string {
	if dir == "" || !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
