// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support and validation.
package configloader

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/inspect"
	"github.com/yaklabco/javafix/pkg/inspect/inspections"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Registry resolves inspection names in config keys. Nil uses the
	// built-in inspections.
	Registry *inspect.Registry

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// layer is one parsed config file. Booleans that default to true are
// tracked separately so a file can turn them off.
type layer struct {
	cfg *config.Config

	backupsEnabled   *bool
	respectGitignore *bool
}

type explicitBools struct {
	Backups struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"backups"`
	Project struct {
		RespectGitignore *bool `yaml:"respect_gitignore"`
	} `yaml:"project"`
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (JAVAFIX_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.javafix.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/javafix/config.yaml)
//  6. System config (/etc/javafix/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	cfg := config.NewConfig()

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	result.Paths = paths
	if opts.ExplicitPath != "" {
		result.Paths.Explicit = opts.ExplicitPath
	}

	sources := []struct {
		skip bool
		path string
		kind string
	}{
		{opts.IgnoreSystemConfig, paths.System, "system"},
		{opts.IgnoreUserConfig, paths.User, "user"},
		{opts.IgnoreProjectConfig, paths.Project, "project"},
		{false, opts.ExplicitPath, "explicit"},
	}
	for _, src := range sources {
		if src.skip || src.path == "" {
			continue
		}
		l, err := loadConfigFile(src.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", src.kind, err)
		}
		cfg = l.apply(cfg)
		result.LoadedFrom = append(result.LoadedFrom, src.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	cfg = MergeAll(cfg, opts.CLIConfig)

	registry := opts.Registry
	if registry == nil {
		registry = inspections.NewRegistry()
	}

	// Inspection names like "missing-super-call" are accepted as keys.
	normalizeInspectionKeys(cfg, registry, result)

	validation := ValidateWith(cfg, registry)
	if err := validation.Err(); err != nil {
		return nil, err
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(path string) (*layer, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, err
	}

	var bools explicitBools
	if err := yaml.Unmarshal(content, &bools); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &layer{
		cfg:              cfg,
		backupsEnabled:   bools.Backups.Enabled,
		respectGitignore: bools.Project.RespectGitignore,
	}, nil
}

// apply merges the layer over base.
func (l *layer) apply(base *config.Config) *config.Config {
	result := merge(base, l.cfg)
	if l.backupsEnabled != nil {
		result.Backups.Enabled = *l.backupsEnabled
	}
	if l.respectGitignore != nil {
		result.Project.RespectGitignore = *l.respectGitignore
	}
	return result
}

// WriteConfig writes cfg to path as YAML with a short header.
func WriteConfig(cfg *config.Config, path string) error {
	content, err := cfg.ToYAMLWithHeader(config.DefaultTemplateHeader())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// normalizeInspectionKeys converts inspection names to canonical IDs in the
// config. When an inspection is configured under both its ID and its name,
// a warning is recorded and the name wins.
func normalizeInspectionKeys(cfg *config.Config, registry *inspect.Registry, result *LoadResult) {
	if len(cfg.Inspections) == 0 {
		return
	}

	normalized := make(map[string]config.InspectionConfig, len(cfg.Inspections))
	seen := make(map[string]string) // canonical ID -> original key

	// IDs first so the outcome does not depend on map order.
	keys := make([]string, 0, len(cfg.Inspections))
	for key := range cfg.Inspections {
		keys = append(keys, key)
	}
	sortKeysIDsFirst(keys, registry)

	for _, key := range keys {
		inspCfg := cfg.Inspections[key]
		insp, found := registry.Get(key)
		if !found {
			normalized[key] = inspCfg
			continue
		}

		id := insp.ID()
		if original, dup := seen[id]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate inspection configuration: %q and %q both refer to %s; using %q",
					original, key, id, key))
			inspCfg = mergeInspectionConfig(normalized[id], inspCfg)
		}
		seen[id] = key
		normalized[id] = inspCfg
	}

	cfg.Inspections = normalized
}

// sortKeysIDsFirst orders inspection keys so canonical IDs precede names
// and unknown keys, each group sorted lexically.
func sortKeysIDsFirst(keys []string, registry *inspect.Registry) {
	rank := func(key string) int {
		insp, ok := registry.Get(key)
		switch {
		case ok && insp.ID() == key:
			return 0
		case ok:
			return 1
		default:
			return 2
		}
	}
	slices.SortFunc(keys, func(a, b string) int {
		return cmp.Or(cmp.Compare(rank(a), rank(b)), cmp.Compare(a, b))
	})
}
