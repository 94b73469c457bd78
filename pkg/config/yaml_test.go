package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/javafix/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies Inspections map", func(t *testing.T) {
		t.Parallel()
		enabled := true
		severity := "error"
		original := &config.Config{
			Inspections: map[string]config.InspectionConfig{
				"JF001": {Enabled: &enabled, Severity: &severity},
			},
		}

		clone := original.Clone()
		require.Contains(t, clone.Inspections, "JF001")
		assert.Equal(t, "error", *clone.Inspections["JF001"].Severity)

		newSeverity := "info"
		clone.Inspections["JF001"] = config.InspectionConfig{Severity: &newSeverity}
		assert.Equal(t, "error", *original.Inspections["JF001"].Severity)
	})

	t.Run("deep copies slices", func(t *testing.T) {
		t.Parallel()
		original := config.NewConfig()
		original.Ignore = []string{"build/**"}
		original.Fixes.Families = []string{"Insert new"}
		original.Project.SourceRoots = []string{"src"}

		clone := original.Clone()
		clone.Ignore[0] = "changed"
		clone.Fixes.Families[0] = "changed"
		clone.Project.SourceRoots[0] = "changed"

		assert.Equal(t, "build/**", original.Ignore[0])
		assert.Equal(t, "Insert new", original.Fixes.Families[0])
		assert.Equal(t, "src", original.Project.SourceRoots[0])
	})

	t.Run("preserves CLI fields", func(t *testing.T) {
		t.Parallel()
		original := &config.Config{
			DryRun:             true,
			Format:             config.FormatJSON,
			InspectionFormat:   config.InspectionFormatCombined,
			Jobs:               4,
			EnableInspections:  []string{"JF001"},
			DisableInspections: []string{"JF002"},
			NoBackups:          true,
		}

		clone := original.Clone()
		assert.Equal(t, original, clone)
		assert.NotSame(t, original, clone)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	var nilCfg *config.Config
	data, err := nilCfg.ToYAML()
	require.NoError(t, err)
	assert.Nil(t, data)

	data, err = config.NewConfig().ToYAMLWithHeader(config.DefaultTemplateHeader())
	require.NoError(t, err)
	assert.Contains(t, string(data), "# javafix configuration")
	assert.Contains(t, string(data), "severity_default: warning")
	assert.Contains(t, string(data), "max_passes: 10")
	assert.NotContains(t, string(data), "dry_run")
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte(`
severity_default: error
ignore:
  - "build/**"
project:
  respect_gitignore: false
fixes:
  families: ["Insert new"]
inspections:
  JF001:
    enabled: false
`))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.SeverityDefault)
	assert.Equal(t, []string{"build/**"}, cfg.Ignore)
	assert.False(t, cfg.Project.RespectGitignore)
	assert.Equal(t, []string{"Insert new"}, cfg.Fixes.Families)
	require.Contains(t, cfg.Inspections, "JF001")
	assert.False(t, *cfg.Inspections["JF001"].Enabled)

	empty, err := config.FromYAML([]byte(`severity_default: info`))
	require.NoError(t, err)
	assert.NotNil(t, empty.Inspections)

	_, err = config.FromYAML([]byte("inspections: [1"))
	require.Error(t, err)
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	minimal := string(config.GenerateTemplate(config.TemplateOptions{}))
	assert.Contains(t, minimal, "# inspections:")

	full := string(config.GenerateTemplate(config.TemplateOptions{
		Full: true,
		Inspections: []config.InspectionInfo{
			{ID: "JF002", Name: "call-to-class-name", Enabled: true, Severity: config.SeverityError},
			{ID: "JF001", Name: "missing-super-call", Enabled: true, Severity: config.SeverityError, Fixes: []string{"Insert super constructor call"}},
		},
	}))
	assert.Less(t, strings.Index(full, "JF001:"), strings.Index(full, "JF002:"))
	assert.Contains(t, full, "# Fixes: Insert super constructor call")

	parsed, err := config.FromYAML([]byte(full))
	require.NoError(t, err)
	assert.Len(t, parsed.Inspections, 2)
}
