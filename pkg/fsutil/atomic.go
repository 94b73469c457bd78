package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode used when none is known.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic replaces path with content through a temp file in the same
// directory and a rename. On error the original file is left untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	committed = true
	return nil
}

// SaveResult reports what Save did.
type SaveResult struct {
	BackupCreated bool
	Written       bool
}

// Save writes content over the file described by info. It refuses with
// ErrModified when the file changed since it was read, backs the original up
// according to backup, then writes atomically with the original mode.
func Save(ctx context.Context, info *FileInfo, content []byte, backup BackupConfig) (SaveResult, error) {
	var res SaveResult

	changed, err := info.Changed(ctx, true)
	if err != nil {
		return res, err
	}
	if changed {
		return res, fmt.Errorf("%w: %s", ErrModified, info.Path)
	}

	res.BackupCreated, err = CreateBackup(ctx, info.Path, backup)
	if err != nil {
		return res, err
	}

	if err := WriteAtomic(ctx, info.Path, content, info.Mode); err != nil {
		return res, err
	}
	res.Written = true
	return res, nil
}
