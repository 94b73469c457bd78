package configloader

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/inspect"
	"github.com/yaklabco/javafix/pkg/inspect/inspections"
)

// ValidationError is one problem found in a configuration.
type ValidationError struct {
	// Field is the dotted path of the field, e.g. "inspections.JF001.severity".
	Field string
	Value any

	Message string

	// FilePath is the config file the value came from, when known.
	FilePath string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	return strings.Join(append(parts, e.Message), ": ")
}

// ValidationResult holds the findings of a validation.
type ValidationResult struct {
	// Errors prevent the configuration from being used.
	Errors []ValidationError

	// Warnings name settings that will be ignored.
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err joins the errors into one, or returns nil.
func (r *ValidationResult) Err() error {
	errs := make([]error, len(r.Errors))
	for i := range r.Errors {
		errs[i] = &r.Errors[i]
	}
	return errors.Join(errs...)
}

// AllMessages returns every finding prefixed with its kind, errors first.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Accepted values of the enumerated settings, in the order messages list them.
//
//nolint:gochecknoglobals // Read-only lookup tables.
var (
	severities        = []string{"error", "warning", "info"}
	outputFormats     = []config.OutputFormat{config.FormatText, config.FormatJSON, config.FormatSARIF, config.FormatDiff, config.FormatSummary}
	inspectionFormats = []config.InspectionFormat{config.InspectionFormatName, config.InspectionFormatID, config.InspectionFormatCombined}
	backupModes       = []string{"sidecar", "none"}
)

// checkOneOf records an error when value is set and not one of allowed.
func checkOneOf[T ~string](r *ValidationResult, field, what string, value T, allowed []T) {
	if value == "" || slices.Contains(allowed, value) {
		return
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	r.fail(field, value, "invalid %s %q; must be one of: %s", what, value, strings.Join(names, ", "))
}

// Validate checks cfg against the built-in inspections.
func Validate(cfg *config.Config) *ValidationResult {
	return ValidateWith(cfg, inspections.NewRegistry())
}

// ValidateWith checks cfg, resolving inspection keys and fix families
// against registry.
func ValidateWith(cfg *config.Config, registry *inspect.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	checkOneOf(result, "severity_default", "severity", cfg.SeverityDefault, severities)
	checkOneOf(result, "format", "format", cfg.Format, outputFormats)
	checkOneOf(result, "inspection_format", "inspection format", cfg.InspectionFormat, inspectionFormats)
	checkOneOf(result, "backups.mode", "backup mode", cfg.Backups.Mode, backupModes)

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Fixes.MaxPasses < 0 {
		result.fail("fixes.max_passes", cfg.Fixes.MaxPasses, "max_passes must be >= 0 (0 means the default)")
	}

	for _, key := range slices.Sorted(maps.Keys(cfg.Inspections)) {
		if _, ok := registry.Get(key); !ok {
			result.warn("inspections."+key, key, "unknown inspection %q; it will be ignored", key)
		}
		if sev := cfg.Inspections[key].Severity; sev != nil {
			checkOneOf(result, "inspections."+key+".severity", "severity", *sev, severities)
		}
	}
	for _, key := range slices.Concat(cfg.EnableInspections, cfg.DisableInspections) {
		if _, ok := registry.Get(key); !ok {
			result.warn("inspections", key, "unknown inspection %q; it will be ignored", key)
		}
	}

	families := make(map[string]bool)
	for _, insp := range registry.Inspections() {
		for _, family := range insp.FixFamilies() {
			families[family] = true
		}
	}
	for i, family := range cfg.Fixes.Families {
		if !families[family] {
			result.warn(fmt.Sprintf("fixes.families[%d]", i), family, "unknown fix family %q; it will be ignored", family)
		}
	}

	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	return result
}

// ValidateWithFile validates cfg and attributes every finding to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
