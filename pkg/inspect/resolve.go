package inspect

import (
	"slices"

	"github.com/yaklabco/javafix/pkg/config"
)

// ResolvedInspection pairs an Inspection with its effective configuration.
type ResolvedInspection struct {
	Inspection Inspection
	Enabled    bool
	Severity   config.Severity

	// AutoFix reports whether fix runs may apply this inspection's fixes.
	AutoFix bool

	// Config is the inspection-specific configuration (may be nil).
	Config *config.InspectionConfig
}

// ResolveInspections returns the enabled inspections of registry with cfg
// applied, sorted by ID.
func ResolveInspections(registry *Registry, cfg *config.Config) []ResolvedInspection {
	var resolved []ResolvedInspection
	for _, insp := range registry.Inspections() {
		if ri := resolveInspection(insp, cfg); ri.Enabled {
			resolved = append(resolved, ri)
		}
	}
	return resolved
}

func resolveInspection(insp Inspection, cfg *config.Config) ResolvedInspection {
	ri := ResolvedInspection{
		Inspection: insp,
		Enabled:    insp.DefaultEnabled(),
		Severity:   insp.DefaultSeverity(),
		AutoFix:    len(insp.FixFamilies()) > 0,
	}
	if cfg == nil {
		return ri
	}

	if ri.Severity == "" {
		ri.Severity = config.Severity(cfg.SeverityDefault)
	}

	// Config entries may be keyed by ID or by name; the ID wins.
	for _, key := range []string{insp.Name(), insp.ID()} {
		ic, ok := cfg.Inspections[key]
		if !ok {
			continue
		}
		ri.Config = &ic
		if ic.Enabled != nil {
			ri.Enabled = *ic.Enabled
		}
		if ic.Severity != nil {
			ri.Severity = config.Severity(*ic.Severity)
		}
		if ic.AutoFix != nil {
			ri.AutoFix = *ic.AutoFix && len(insp.FixFamilies()) > 0
		}
	}

	matches := func(key string) bool { return key == insp.ID() || key == insp.Name() }
	if slices.ContainsFunc(cfg.EnableInspections, matches) {
		ri.Enabled = true
	}
	if slices.ContainsFunc(cfg.DisableInspections, matches) {
		ri.Enabled = false
	}

	return ri
}
