package configloader

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/javafix/pkg/config"
)

// envVarPrefix is the prefix for all javafix environment variables.
const envVarPrefix = "JAVAFIX_"

// envMapping binds one JAVAFIX_ variable to a configuration field.
type envMapping struct {
	suffix string
	field  string
	help   string
	set    func(cfg *config.Config, raw string) error
}

func stringVar(suffix, field, help string, set func(*config.Config, string)) envMapping {
	return envMapping{suffix, field, help, func(cfg *config.Config, raw string) error {
		set(cfg, raw)
		return nil
	}}
}

func boolVar(suffix, field, help string, set func(*config.Config, bool)) envMapping {
	return envMapping{suffix, field, help, func(cfg *config.Config, raw string) error {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%q is not a boolean (expected true/false/1/0)", raw)
		}
		set(cfg, b)
		return nil
	}}
}

func intVar(suffix, field, help string, set func(*config.Config, int)) envMapping {
	return envMapping{suffix, field, help, func(cfg *config.Config, raw string) error {
		i, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%q is not an integer", raw)
		}
		set(cfg, i)
		return nil
	}}
}

func listVar(suffix, field, help string, set func(*config.Config, []string)) envMapping {
	return envMapping{suffix, field, help, func(cfg *config.Config, raw string) error {
		set(cfg, splitList(raw))
		return nil
	}}
}

// envMappings lists the supported variables in the order they are applied.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = []envMapping{
	stringVar("SEVERITY_DEFAULT", "severity_default", "Default severity: error, warning, or info",
		func(c *config.Config, v string) { c.SeverityDefault = v }),
	boolVar("DRY_RUN", "dry_run", "Dry-run mode: true or false",
		func(c *config.Config, v bool) { c.DryRun = v }),
	intVar("JOBS", "jobs", "Number of parallel workers (0 = auto)",
		func(c *config.Config, v int) { c.Jobs = v }),
	stringVar("FORMAT", "format", "Output format: text, json, sarif, diff, or summary",
		func(c *config.Config, v string) { c.Format = config.OutputFormat(v) }),
	stringVar("INSPECTION_FORMAT", "inspection_format", "Inspection identifiers: name, id, or combined",
		func(c *config.Config, v string) { c.InspectionFormat = config.InspectionFormat(v) }),
	boolVar("BACKUPS_ENABLED", "backups.enabled", "Keep a sidecar backup when fixing: true or false",
		func(c *config.Config, v bool) { c.Backups.Enabled = v }),
	stringVar("BACKUPS_MODE", "backups.mode", "Backup mode: sidecar",
		func(c *config.Config, v string) { c.Backups.Mode = v }),
	boolVar("NO_BACKUPS", "no_backups", "Disable backups: true or false",
		func(c *config.Config, v bool) { c.NoBackups = v }),
	listVar("IGNORE", "ignore", "Comma-separated gitignore-style patterns to leave out of scope",
		func(c *config.Config, v []string) { c.Ignore = v }),
	intVar("MAX_PASSES", "fixes.max_passes", "Maximum fix passes per file",
		func(c *config.Config, v int) { c.Fixes.MaxPasses = v }),
	listVar("FIX_FAMILIES", "fixes.families", "Comma-separated fix families to apply",
		func(c *config.Config, v []string) { c.Fixes.Families = v }),
	listVar("SOURCE_ROOTS", "project.source_roots", "Comma-separated source roots relative to the project root",
		func(c *config.Config, v []string) { c.Project.SourceRoots = v }),
	boolVar("RESPECT_GITIGNORE", "project.respect_gitignore", "Leave files ignored by git out of scope: true or false",
		func(c *config.Config, v bool) { c.Project.RespectGitignore = v }),
}

// LoadFromEnv applies JAVAFIX_* environment variables to cfg. Every invalid
// value is reported.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	var errs []error
	for _, m := range envMappings {
		name := envVarPrefix + m.suffix
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		if err := m.set(cfg, raw); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// splitList splits a comma-separated value, dropping empty elements.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetEnvVarName returns the environment variable for a config field, or "".
func GetEnvVarName(field string) string {
	for _, m := range envMappings {
		if m.field == field {
			return envVarPrefix + m.suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its help.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for _, m := range envMappings {
		vars[envVarPrefix+m.suffix] = m.help
	}
	return vars
}
