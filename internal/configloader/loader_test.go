package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/javafix/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	cfg := result.Config
	assert.Equal(t, "warning", cfg.SeverityDefault)
	assert.Equal(t, config.DefaultMaxPasses, cfg.Fixes.MaxPasses)
	assert.True(t, cfg.Backups.Enabled)
	assert.True(t, cfg.Project.RespectGitignore)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".javafix.yml"), `
severity_default: error
inspections:
  JF001:
    enabled: false
fixes:
  max_passes: 3
  families: ["Insert super constructor call"]
project:
  respect_gitignore: false
  source_roots: [src/main/java]
backups:
  enabled: false
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, "error", cfg.SeverityDefault)
	require.Contains(t, cfg.Inspections, "JF001")
	require.NotNil(t, cfg.Inspections["JF001"].Enabled)
	assert.False(t, *cfg.Inspections["JF001"].Enabled)
	assert.Equal(t, 3, cfg.Fixes.MaxPasses)
	assert.Equal(t, []string{"Insert super constructor call"}, cfg.Fixes.Families)
	assert.Equal(t, []string{"src/main/java"}, cfg.Project.SourceRoots)
	assert.False(t, cfg.Project.RespectGitignore, "files can turn default-on booleans off")
	assert.False(t, cfg.Backups.Enabled)
	assert.Equal(t, []string{filepath.Join(dir, ".javafix.yml")}, result.LoadedFrom)
}

func TestLoad_ProjectConfigSearchesUpward(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "javafix.yaml"), "severity_default: info\n")
	sub := filepath.Join(dir, "src", "main")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := Load(context.Background(), isolated(sub))
	require.NoError(t, err)
	assert.Equal(t, "info", result.Config.SeverityDefault)
}

func TestLoad_ExplicitConfigWinsOverProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".javafix.yml"), "severity_default: info\nignore: [\"gen/**\"]\n")
	custom := filepath.Join(dir, "custom.yml")
	writeFile(t, custom, "severity_default: error\n")

	opts := isolated(dir)
	opts.ExplicitPath = custom
	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "error", result.Config.SeverityDefault)
	assert.Equal(t, []string{"gen/**"}, result.Config.Ignore, "unset fields keep lower layers")
	assert.Equal(t, custom, result.Paths.Explicit)
	assert.Len(t, result.LoadedFrom, 2)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".javafix.yml"), "severity_default: info\n")

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{
		SeverityDefault:    "error",
		Format:             config.FormatJSON,
		Jobs:               4,
		DryRun:             true,
		DisableInspections: []string{"JF002"},
	}
	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, "error", cfg.SeverityDefault)
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.Equal(t, 4, cfg.Jobs)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, []string{"JF002"}, cfg.DisableInspections)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "severity_default: [\n", "parse YAML"},
		{"bad severity", "severity_default: fatal\n", "severity_default"},
		{"bad inspection severity", "inspections:\n  JF001:\n    severity: loud\n", "inspections.JF001.severity"},
		{"negative passes", "fixes:\n  max_passes: -1\n", "fixes.max_passes"},
		{"bad backup mode", "backups:\n  mode: cloud\n", "backups.mode"},
		{"bad glob", "ignore: [\"[\"]\n", "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, ".javafix.yml"), tt.content)

			_, err := Load(context.Background(), isolated(dir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_NormalizesInspectionNames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".javafix.yml"), `
inspections:
  call-to-class-name:
    severity: error
  not-a-real-inspection:
    enabled: false
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	cfg := result.Config
	require.Contains(t, cfg.Inspections, "JF002")
	assert.Equal(t, "error", *cfg.Inspections["JF002"].Severity)
	assert.NotContains(t, cfg.Inspections, "call-to-class-name")
	assert.Contains(t, cfg.Inspections, "not-a-real-inspection")

	joined := strings.Join(result.Warnings, "\n")
	assert.Contains(t, joined, `unknown inspection "not-a-real-inspection"`)
}

func TestLoad_WarnsDuplicateInspections(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".javafix.yml"), `
inspections:
  JF001:
    enabled: false
    severity: info
  missing-super-call:
    enabled: true
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	jf001 := result.Config.Inspections["JF001"]
	require.NotNil(t, jf001.Enabled)
	assert.True(t, *jf001.Enabled, "the name entry wins")
	require.NotNil(t, jf001.Severity)
	assert.Equal(t, "info", *jf001.Severity, "fields unset by the name entry are kept")

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "duplicate inspection configuration")
}

func TestMergeInspectionConfig(t *testing.T) {
	t.Parallel()

	off, on := false, true
	info := "info"
	base := config.InspectionConfig{
		Enabled:  &off,
		Severity: &info,
		Options:  map[string]any{"a": 1, "b": 2},
	}
	override := config.InspectionConfig{
		Enabled: &on,
		Options: map[string]any{"b": 3},
	}

	merged := mergeInspectionConfig(base, override)

	require.NotNil(t, merged.Enabled)
	assert.True(t, *merged.Enabled)
	assert.Equal(t, &info, merged.Severity)
	assert.Nil(t, merged.AutoFix)
	assert.Equal(t, map[string]any{"a": 1, "b": 3}, merged.Options)
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, base.Options, "base options untouched")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JAVAFIX_JOBS", "3")
	t.Setenv("JAVAFIX_DRY_RUN", "true")
	t.Setenv("JAVAFIX_FIX_FAMILIES", "Insert new, Insert super constructor call")
	t.Setenv("JAVAFIX_RESPECT_GITIGNORE", "false")
	t.Setenv("JAVAFIX_INSPECTION_FORMAT", "combined")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, 3, cfg.Jobs)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, []string{"Insert new", "Insert super constructor call"}, cfg.Fixes.Families)
	assert.False(t, cfg.Project.RespectGitignore)
	assert.Equal(t, config.InspectionFormatCombined, cfg.InspectionFormat)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	t.Setenv("JAVAFIX_MAX_PASSES", "many")

	err := LoadFromEnv(config.NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JAVAFIX_MAX_PASSES")
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Len(t, vars, len(envMappings))
	assert.Contains(t, vars, "JAVAFIX_SOURCE_ROOTS")
	assert.Equal(t, "JAVAFIX_MAX_PASSES", GetEnvVarName("fixes.max_passes"))
	assert.Empty(t, GetEnvVarName("nope"))
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	enabled, disabled := true, false
	base := config.NewConfig()
	base.Inspections["JF001"] = config.InspectionConfig{Enabled: &enabled, Options: map[string]any{"a": 1}}
	override := &config.Config{
		Inspections: map[string]config.InspectionConfig{
			"JF001": {Enabled: &disabled, Options: map[string]any{"b": 2}},
		},
		Fixes: config.FixesConfig{Families: []string{}},
	}

	merged := MergeAll(base, override)
	jf001 := merged.Inspections["JF001"]
	assert.False(t, *jf001.Enabled)
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, jf001.Options)
	assert.Empty(t, merged.Fixes.Families)
	assert.NotNil(t, merged.Fixes.Families, "an empty slice replaces the base")
	assert.Equal(t, config.DefaultMaxPasses, merged.Fixes.MaxPasses)

	assert.Equal(t, map[string]any{"a": 1}, base.Inspections["JF001"].Options, "base is not mutated")
	assert.Nil(t, MergeAll())
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.EnableInspections = []string{"JF999"}
	cfg.Fixes.Families = []string{"Rewrite everything"}

	result := Validate(cfg)
	assert.True(t, result.Valid())
	assert.True(t, result.HasWarnings())
	assert.Len(t, result.AllMessages(), 2)

	withFile := ValidateWithFile(cfg, ".javafix.yml")
	assert.True(t, strings.HasPrefix(withFile.Warnings[0].Error(), ".javafix.yml: "))
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".javafix.yml")
	cfg := config.NewConfig()
	cfg.SeverityDefault = "error"
	require.NoError(t, WriteConfig(cfg, path))

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	assert.Equal(t, "error", result.Config.SeverityDefault)
}
