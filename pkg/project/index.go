package project

import (
	"cmp"
	"context"
	"runtime"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/javafix/pkg/fsutil"
	"github.com/yaklabco/javafix/pkg/javatree"
)

// ClassInfo is the index entry for one class declaration.
type ClassInfo struct {
	Name       string
	Package    string
	Outer      string
	Superclass string
	Path       string

	// Range is the declaration's extent in Path.
	Range javatree.Range

	Constructors []javatree.ConstructorDecl

	// HasDefaultConstructor is true when the class can be constructed
	// without arguments.
	HasDefaultConstructor bool
}

// QualifiedName returns the dotted name, including outer classes.
func (c ClassInfo) QualifiedName() string {
	name := c.Name
	if c.Outer != "" {
		name = c.Outer + "." + name
	}
	if c.Package == "" {
		return name
	}
	return c.Package + "." + name
}

// AcceptsArity reports whether a constructor call with n arguments binds.
func (c ClassInfo) AcceptsArity(n int) bool {
	if len(c.Constructors) == 0 {
		return n == 0
	}
	return slices.ContainsFunc(c.Constructors, func(ctor javatree.ConstructorDecl) bool {
		return ctor.AcceptsArity(n)
	})
}

// ClassIndex maps simple class names to their declarations across the
// project. It is safe for concurrent use.
type ClassIndex struct {
	mu     sync.RWMutex
	byName map[string][]ClassInfo
	byPath map[string][]string
}

// NewClassIndex creates an empty index.
func NewClassIndex() *ClassIndex {
	return &ClassIndex{
		byName: make(map[string][]ClassInfo),
		byPath: make(map[string][]string),
	}
}

// Add indexes the classes of file, replacing earlier entries for its path.
func (ix *ClassIndex) Add(file *javatree.File) {
	pkg := file.PackageName()
	classes := file.Classes()

	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.removeLocked(file.Path)

	names := make([]string, 0, len(classes))
	for _, c := range classes {
		info := ClassInfo{
			Name:                  c.Name,
			Package:               pkg,
			Outer:                 c.Outer,
			Superclass:            c.Superclass,
			Path:                  file.Path,
			Range:                 c.Range,
			Constructors:          c.Constructors,
			HasDefaultConstructor: c.HasDefaultConstructor(),
		}
		ix.byName[c.Name] = append(ix.byName[c.Name], info)
		slices.SortFunc(ix.byName[c.Name], func(a, b ClassInfo) int {
			return cmp.Or(cmp.Compare(a.QualifiedName(), b.QualifiedName()), cmp.Compare(a.Path, b.Path))
		})
		names = append(names, c.Name)
	}
	ix.byPath[file.Path] = names
}

// Remove drops the entries that came from path.
func (ix *ClassIndex) Remove(path string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.removeLocked(path)
}

func (ix *ClassIndex) removeLocked(path string) {
	for _, name := range ix.byPath[path] {
		ix.byName[name] = slices.DeleteFunc(ix.byName[name], func(c ClassInfo) bool {
			return c.Path == path
		})
		if len(ix.byName[name]) == 0 {
			delete(ix.byName, name)
		}
	}
	delete(ix.byPath, path)
}

// Lookup returns every class with the simple name, ordered by qualified name.
func (ix *ClassIndex) Lookup(name string) []ClassInfo {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return slices.Clone(ix.byName[name])
}

// ClassesIn returns the classes declared in path, in declaration order.
func (ix *ClassIndex) ClassesIn(path string) []ClassInfo {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var out []ClassInfo
	seen := make(map[string]bool)
	for _, name := range ix.byPath[path] {
		if seen[name] {
			continue
		}
		seen[name] = true
		for _, info := range ix.byName[name] {
			if info.Path == path {
				out = append(out, info)
			}
		}
	}
	slices.SortStableFunc(out, func(a, b ClassInfo) int {
		return cmp.Compare(a.Range.Start, b.Range.Start)
	})
	return out
}

// Len returns the number of indexed classes.
func (ix *ClassIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	n := 0
	for _, infos := range ix.byName {
		n += len(infos)
	}
	return n
}

// Resolve finds the class a simple name refers to from a file, by name only:
// a class declared in the same file, then the same package, then a
// single-type import, then a wildcard import, then a unique project match.
func (ix *ClassIndex) Resolve(file *javatree.File, name string) (ClassInfo, bool) {
	candidates := ix.Lookup(name)
	if len(candidates) == 0 {
		return ClassInfo{}, false
	}

	pkg := file.PackageName()
	for _, c := range candidates {
		if c.Path == file.Path {
			return c, true
		}
	}
	for _, c := range candidates {
		if c.Package == pkg && c.Outer == "" {
			return c, true
		}
	}

	imports := file.Imports()
	for _, imp := range imports {
		if imp.Static || imp.Wildcard {
			continue
		}
		for _, c := range candidates {
			if c.QualifiedName() == imp.Path {
				return c, true
			}
		}
	}
	for _, imp := range imports {
		if imp.Static || !imp.Wildcard {
			continue
		}
		for _, c := range candidates {
			if c.Package == imp.Path && c.Outer == "" {
				return c, true
			}
		}
	}

	if len(candidates) == 1 {
		return candidates[0], true
	}
	return ClassInfo{}, false
}

// IndexFiles reads and parses files concurrently, at most jobs at a time,
// and adds them to the index. It stops at the first read or parse error.
func (ix *ClassIndex) IndexFiles(ctx context.Context, parser *javatree.Parser, files []string, jobs int) error {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for _, path := range files {
		group.Go(func() error {
			content, _, err := fsutil.ReadFile(gctx, path)
			if err != nil {
				return err
			}
			file, err := parser.Parse(gctx, path, content)
			if err != nil {
				return err
			}
			ix.Add(file)
			return nil
		})
	}

	return group.Wait()
}
