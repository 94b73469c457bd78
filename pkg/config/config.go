// Package config defines core configuration types for javafix.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

// Severity represents the severity level of an inspection problem.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// Rank orders severities: error > warning > info > unknown.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// InspectionConfig holds per-inspection configuration options.
type InspectionConfig struct {
	Enabled  *bool          `yaml:"enabled"`
	Severity *string        `yaml:"severity"`
	AutoFix  *bool          `yaml:"auto_fix"`
	Options  map[string]any `yaml:"options"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // only "sidecar" is supported
}

// ProjectConfig controls how the project root and scope are determined.
type ProjectConfig struct {
	// RespectGitignore excludes files matched by .gitignore from scope.
	RespectGitignore bool `yaml:"respect_gitignore"`

	// SourceRoots restricts discovery to these directories, relative to the
	// project root. Empty means the whole project.
	SourceRoots []string `yaml:"source_roots"`
}

// FixesConfig controls automatic fixing.
type FixesConfig struct {
	// MaxPasses bounds the number of inspect-then-fix passes per file.
	MaxPasses int `yaml:"max_passes"`

	// Families limits fixing to these fix families. Empty means all.
	Families []string `yaml:"families"`
}

// OutputFormat specifies the output format for problems.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// InspectionFormat controls how inspection identifiers appear in output.
type InspectionFormat string

const (
	InspectionFormatName     InspectionFormat = "name"     // "missing-super-call"
	InspectionFormatID       InspectionFormat = "id"       // "JF001"
	InspectionFormatCombined InspectionFormat = "combined" // "JF001/missing-super-call"
)

// Config is the root configuration structure for javafix.
type Config struct {
	// SeverityDefault is the default severity for inspections that don't
	// specify one.
	SeverityDefault string `yaml:"severity_default"`

	// Inspections contains per-inspection configuration keyed by ID or name.
	Inspections map[string]InspectionConfig `yaml:"inspections"`

	// Ignore contains gitignore-style patterns for files to leave out of scope.
	Ignore []string `yaml:"ignore"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `yaml:"backups"`

	// Project configures the project root and scope.
	Project ProjectConfig `yaml:"project"`

	// Fixes configures automatic fixing.
	Fixes FixesConfig `yaml:"fixes"`

	// CLI-level options (not persisted to config files).

	// DryRun shows what would be fixed without making changes.
	DryRun bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// InspectionFormat controls how inspection identifiers appear in output.
	InspectionFormat InspectionFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// EnableInspections contains inspection IDs to explicitly enable.
	EnableInspections []string `yaml:"-"`

	// DisableInspections contains inspection IDs to explicitly disable.
	DisableInspections []string `yaml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `yaml:"-"`
}

// DefaultMaxPasses is the default bound on fix passes per file.
const DefaultMaxPasses = 10

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		SeverityDefault: string(SeverityWarning),
		Inspections:     make(map[string]InspectionConfig),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Project: ProjectConfig{
			RespectGitignore: true,
		},
		Fixes: FixesConfig{
			MaxPasses: DefaultMaxPasses,
		},
		Format:           FormatText,
		InspectionFormat: InspectionFormatName,
		Jobs:             0, // 0 means use GOMAXPROCS
	}
}
