package project

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/yaklabco/javafix/pkg/lang"
)

// Discover finds the in-scope Java files under paths (files or directories,
// relative to the working directory). An empty paths list means the project
// root. It returns a deterministically sorted list of absolute paths.
func (s *Scope) Discover(ctx context.Context, paths ...string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{s.root}
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, inputPath := range paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath, err := filepath.Abs(inputPath)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", inputPath, err)
		}

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if lang.IsJava(absPath) && s.Contains(absPath) {
				add(absPath)
			}
			continue
		}

		discovered, err := s.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	sort.Strings(files)
	return files, nil
}

func (s *Scope) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			rel, ok := s.Rel(path)
			if !ok || s.ignoresDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		// Symlinked directories are not followed.
		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil || info.IsDir() {
				return nil //nolint:nilerr // broken or directory symlinks are skipped
			}
		}

		if lang.IsJava(path) && s.Contains(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}
