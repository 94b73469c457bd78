package configloader

import (
	"maps"

	"github.com/yaklabco/javafix/pkg/config"
)

// overrideScalar replaces *dst with v unless v is the zero value.
func overrideScalar[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

// overrideSlice replaces *dst with v when v is non-nil. An empty non-nil
// slice clears the base.
func overrideSlice[S ~[]E, E any](dst *S, v S) {
	if v != nil {
		*dst = v
	}
}

// overridePtr replaces *dst with v when v is set.
func overridePtr[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}

// merge returns base with every field override sets laid over it. Neither
// argument is modified. Booleans can only be switched on here; files that
// switch a default-on boolean off go through layer.apply.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	out := base.Clone()

	overrideScalar(&out.SeverityDefault, override.SeverityDefault)
	overrideScalar(&out.Format, override.Format)
	overrideScalar(&out.InspectionFormat, override.InspectionFormat)
	overrideScalar(&out.Jobs, override.Jobs)
	overrideScalar(&out.DryRun, override.DryRun)
	overrideScalar(&out.NoBackups, override.NoBackups)
	overrideScalar(&out.Backups.Mode, override.Backups.Mode)
	overrideScalar(&out.Backups.Enabled, override.Backups.Enabled)
	overrideScalar(&out.Project.RespectGitignore, override.Project.RespectGitignore)
	overrideScalar(&out.Fixes.MaxPasses, override.Fixes.MaxPasses)

	overrideSlice(&out.Fixes.Families, override.Fixes.Families)
	overrideSlice(&out.Project.SourceRoots, override.Project.SourceRoots)
	overrideSlice(&out.Ignore, override.Ignore)
	overrideSlice(&out.EnableInspections, override.EnableInspections)
	overrideSlice(&out.DisableInspections, override.DisableInspections)

	out.Inspections = mergeInspections(base.Inspections, override.Inspections)

	return out
}

// mergeInspections merges per-inspection settings key by key.
func mergeInspections(base, override map[string]config.InspectionConfig) map[string]config.InspectionConfig {
	if base == nil && override == nil {
		return nil
	}

	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]config.InspectionConfig, len(override))
	}
	for key, over := range override {
		out[key] = mergeInspectionConfig(out[key], over)
	}
	return out
}

// mergeInspectionConfig lays the fields override sets over base. Options
// merge key by key.
func mergeInspectionConfig(base, override config.InspectionConfig) config.InspectionConfig {
	merged := base
	overridePtr(&merged.Enabled, override.Enabled)
	overridePtr(&merged.Severity, override.Severity)
	overridePtr(&merged.AutoFix, override.AutoFix)
	if override.Options != nil {
		options := maps.Clone(base.Options)
		if options == nil {
			options = make(map[string]any, len(override.Options))
		}
		maps.Copy(options, override.Options)
		merged.Options = options
	}
	return merged
}

// MergeAll merges configs in order; later ones win.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}
	out := configs[0]
	for _, cfg := range configs[1:] {
		out = merge(out, cfg)
	}
	return out
}
