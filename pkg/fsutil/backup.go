package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// BackupMode names where backups go.
type BackupMode string

const (
	// BackupModeSidecar keeps the backup next to the file, named with
	// BackupSuffix.
	BackupModeSidecar BackupMode = "sidecar"

	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to a file name to name its sidecar backup.
const BackupSuffix = ".javafix.bak"

// BackupConfig controls backups made before a fix is saved.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig returns sidecar mode, disabled.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// BackupPath returns where the backup of path lives, or "" when mode
// disables backups. Unknown modes mean sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies path to its backup location. An existing backup is
// kept, so the backup always holds the content from before the first fix.
// It reports whether a backup was written.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	target := BackupPath(path, cfg.Mode)
	if !cfg.Enabled || target == "" {
		return false, nil
	}

	switch _, err := os.Lstat(target); {
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	content, info, err := ReadFile(ctx, path)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("back up %s: %w", path, err)
	}
	if err := WriteAtomic(ctx, target, content, info.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// RestoreBackup puts the backup of path back in place and removes it. It
// reports false when there is no backup.
func RestoreBackup(ctx context.Context, path string, mode BackupMode) (bool, error) {
	source := BackupPath(path, mode)
	if source == "" {
		return false, nil
	}

	content, info, err := ReadFile(ctx, source)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("restore %s: %w", path, err)
	}
	if err := WriteAtomic(ctx, path, content, info.Mode); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	if err := os.Remove(source); err != nil {
		return true, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}

// FindBackups returns the files under root that have a sidecar backup,
// in lexical order.
func FindBackups(ctx context.Context, root string) ([]string, error) {
	var originals []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if original, ok := strings.CutSuffix(path, BackupSuffix); ok {
			originals = append(originals, original)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find backups under %s: %w", root, err)
	}
	return originals, nil
}
