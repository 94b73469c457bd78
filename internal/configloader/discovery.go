package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-git/go-git/v5"
)

// ConfigPaths represents discovered configuration file paths. Missing files
// are empty.
type ConfigPaths struct {
	// System is e.g. /etc/javafix/config.yaml.
	System string

	// User is e.g. ~/.config/javafix/config.yaml.
	User string

	// Project is the nearest .javafix.yml at or above the working directory.
	Project string

	// Explicit comes from --config.
	Explicit string
}

// ProjectConfigFiles are the project config file names, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ProjectConfigFiles = []string{
	".javafix.yml",
	".javafix.yaml",
	"javafix.yml",
	"javafix.yaml",
}

// buildRootMarkers are files that make a directory the root of a Java build;
// the upward search for a project config does not go past them.
//
//nolint:gochecknoglobals // Read-only lookup table.
var buildRootMarkers = []string{"settings.gradle", "settings.gradle.kts", ".mvn"}

// DiscoverPaths finds the system, user and project configuration files for
// workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstExisting(systemConfigDir()),
		User:    firstExisting(userConfigDir()),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, "javafix")
	}
	return "/etc/javafix"
}

func userConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "javafix")
}

// firstExisting returns dir/config.yaml or dir/config.yml, whichever exists
// first.
func firstExisting(dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		if path := filepath.Join(dir, name); isFile(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches from startDir upward for a project config file
// and returns its path, or "" when there is none. The search stops at the
// enclosing git worktree root, a multi-module build root, or the home
// directory, whichever comes first.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	boundary, err := worktreeRoot(dir)
	if err != nil {
		return "", err
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		for _, name := range ProjectConfigFiles {
			if path := filepath.Join(dir, name); isFile(path) {
				return path, nil
			}
		}

		if dir == boundary || dir == home || isBuildRoot(dir) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// worktreeRoot returns the root of the git worktree containing dir, or ""
// outside a repository.
func worktreeRoot(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("open git repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no worktree to bound the search.
		return "", nil //nolint:nilerr // not fatal for discovery
	}
	return wt.Filesystem.Root(), nil
}

func isBuildRoot(dir string) bool {
	for _, marker := range buildRootMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
