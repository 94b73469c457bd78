// Package project defines the set of Java sources javafix works on: the
// project root, which files are in scope, the class index used for
// name-based resolution and the documents currently open.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Scope answers whether a path belongs to the project.
type Scope struct {
	root        string
	git         bool
	matcher     gitignore.Matcher
	sourceRoots []string
}

// ScopeOptions configures NewScope.
type ScopeOptions struct {
	// Start is the directory the root search starts from. Defaults to the
	// working directory.
	Start string

	// Ignore holds gitignore-style patterns relative to the root. They take
	// precedence over .gitignore files.
	Ignore []string

	// RespectGitignore reads .gitignore files below the root.
	RespectGitignore bool

	// SourceRoots, when set, restrict the scope to these directories.
	SourceRoots []string
}

// NewScope finds the project root and builds the ignore matcher. The root is
// the enclosing git worktree when there is one, otherwise Start itself.
func NewScope(opts ScopeOptions) (*Scope, error) {
	start := opts.Start
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		start = wd
	}
	start, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("resolve absolute path: %w", err)
	}

	scope := &Scope{root: start}

	var fsys billy.Filesystem
	repo, err := git.PlainOpenWithOptions(start, &git.PlainOpenOptions{DetectDotGit: true})
	switch {
	case err == nil:
		worktree, wtErr := repo.Worktree()
		if wtErr != nil {
			return nil, fmt.Errorf("open git worktree: %w", wtErr)
		}
		fsys = worktree.Filesystem
		scope.root = worktree.Filesystem.Root()
		scope.git = true
	case errors.Is(err, git.ErrRepositoryNotExists):
		fsys = osfs.New(start)
	default:
		return nil, fmt.Errorf("open git repository: %w", err)
	}

	var patterns []gitignore.Pattern
	if opts.RespectGitignore {
		patterns, err = gitignore.ReadPatterns(fsys, nil)
		if err != nil {
			return nil, fmt.Errorf("read gitignore: %w", err)
		}
	}
	for _, p := range opts.Ignore {
		patterns = append(patterns, gitignore.ParsePattern(p, nil))
	}
	scope.matcher = gitignore.NewMatcher(patterns)

	for _, dir := range opts.SourceRoots {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(scope.root, dir)
		}
		scope.sourceRoots = append(scope.sourceRoots, filepath.Clean(dir))
	}

	return scope, nil
}

// Root returns the project root directory.
func (s *Scope) Root() string {
	return s.root
}

// IsGitRepo reports whether the root is a git worktree.
func (s *Scope) IsGitRepo() bool {
	return s.git
}

// Rel returns path relative to the root with forward slashes, and false when
// path lies outside the root.
func (s *Scope) Rel(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(s.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// Contains reports whether the file at path is part of the project: under
// the root and a source root, not hidden and not ignored.
func (s *Scope) Contains(path string) bool {
	rel, ok := s.Rel(path)
	if !ok || rel == "." {
		return false
	}

	if len(s.sourceRoots) > 0 {
		abs := filepath.Join(s.root, filepath.FromSlash(rel))
		if !slices.ContainsFunc(s.sourceRoots, func(dir string) bool {
			return abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator))
		}) {
			return false
		}
	}

	parts := strings.Split(rel, "/")
	for i, part := range parts {
		if strings.HasPrefix(part, ".") {
			return false
		}
		if s.matcher.Match(parts[:i+1], i < len(parts)-1) {
			return false
		}
	}
	return true
}

// ignoresDir reports whether a directory (relative, slash-separated) is
// excluded from the walk.
func (s *Scope) ignoresDir(rel string) bool {
	if rel == "." {
		return false
	}
	parts := strings.Split(rel, "/")
	return strings.HasPrefix(parts[len(parts)-1], ".") || s.matcher.Match(parts, true)
}
