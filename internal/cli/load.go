package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/javafix/internal/configloader"
	"github.com/yaklabco/javafix/internal/logging"
	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/inspect/inspections"
	"github.com/yaklabco/javafix/pkg/session"
)

// ErrConfig marks configuration loading failures.
var ErrConfig = errors.New("failed to load configuration")

// commandContext returns the command's context or a background one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the configuration for a command, merging cliCfg over
// the discovered files and environment. Discovery starts at start.
func loadConfig(cmd *cobra.Command, start string, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   start,
		ExplicitPath: configPath,
		Registry:     inspections.NewRegistry(),
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

// projectStart returns the directory project discovery starts from: the
// first path argument (or its directory when it is a file), else the
// working directory.
func projectStart(paths []string) (string, error) {
	if len(paths) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	start, err := filepath.Abs(paths[0])
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	if info, err := os.Stat(start); err == nil && !info.IsDir() {
		start = filepath.Dir(start)
	}
	return start, nil
}

// openSession loads the configuration and opens an editing session over
// the project containing paths[0].
func openSession(cmd *cobra.Command, paths []string, cliCfg *config.Config) (*session.Session, error) {
	start, err := projectStart(paths)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(cmd, start, cliCfg)
	if err != nil {
		return nil, err
	}

	sess, err := session.Open(commandContext(cmd), start, cfg, inspections.NewRegistry())
	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}

	logging.Default().Debug("project opened",
		logging.FieldRoot, sess.Project.Root(),
		logging.FieldJobs, cfg.Jobs,
		logging.FieldDryRun, cfg.DryRun,
	)
	return sess, nil
}

// absPaths makes paths absolute.
func absPaths(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve path %q: %w", p, err)
		}
		out = append(out, abs)
	}
	return out, nil
}
