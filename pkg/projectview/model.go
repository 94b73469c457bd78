// Package projectview models the project as a tree of directories,
// packages, files and classes, with error stripes, speed search,
// discontiguous selection and expansion state that survives rebuilds.
package projectview

import (
	"cmp"
	"path"
	"slices"
	"strings"

	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/inspect"
	"github.com/yaklabco/javafix/pkg/project"
)

// Kind classifies tree nodes.
type Kind int

const (
	KindRoot Kind = iota
	KindDirectory
	KindPackage
	KindFile
	KindClass
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindDirectory:
		return "directory"
	case KindPackage:
		return "package"
	case KindFile:
		return "file"
	case KindClass:
		return "class"
	default:
		return "unknown"
	}
}

// IsContainer reports whether nodes of kind k are shown as directories.
func (k Kind) IsContainer() bool {
	return k == KindRoot || k == KindDirectory || k == KindPackage
}

// Node is one element of the project tree.
type Node struct {
	Kind Kind
	Name string

	// ID identifies the node across rebuilds.
	ID string

	// Path is the slash-separated path relative to the project root: the
	// directory for containers, the file for files and classes.
	Path string

	Parent   *Node
	Children []*Node

	// Problems are those reported inside the node: the whole file for
	// files, the declaration range for classes.
	Problems []inspect.Problem

	// worst is the most severe problem in the subtree; empty for none.
	worst config.Severity
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Worst returns the most severe problem severity in the node's subtree.
func (n *Node) Worst() (config.Severity, bool) {
	return n.worst, n.worst != ""
}

// FileEntry describes one source file to place in the tree.
type FileEntry struct {
	// Path is slash-separated and relative to the project root.
	Path     string
	Package  string
	Classes  []project.ClassInfo
	Problems []inspect.Problem
}

// Comparator orders sibling nodes.
type Comparator func(a, b *Node) int

// DefaultComparator puts directories and packages before files and classes,
// then orders by case-insensitive name.
func DefaultComparator(a, b *Node) int {
	if ac, bc := a.Kind.IsContainer(), b.Kind.IsContainer(); ac != bc {
		if ac {
			return -1
		}
		return 1
	}
	return cmp.Or(
		cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.ID, b.ID),
	)
}

// build assembles the node hierarchy for files under a root named rootName.
func build(rootName string, files []FileEntry, less Comparator) (*Node, map[string]*Node) {
	root := &Node{Kind: KindRoot, Name: rootName, ID: "root"}
	byID := map[string]*Node{root.ID: root}

	child := func(parent *Node, kind Kind, name, id, p string) *Node {
		if n, ok := byID[id]; ok {
			return n
		}
		n := &Node{Kind: kind, Name: name, ID: id, Path: p, Parent: parent}
		parent.Children = append(parent.Children, n)
		byID[id] = n
		return n
	}

	directory := func(dir string) *Node {
		node := root
		if dir == "." || dir == "" {
			return node
		}
		acc := ""
		for _, part := range strings.Split(dir, "/") {
			acc = path.Join(acc, part)
			node = child(node, KindDirectory, part, "d:"+acc, acc)
		}
		return node
	}

	for _, entry := range files {
		dir := path.Dir(entry.Path)
		var parent *Node
		if sourceRoot, ok := packageRoot(dir, entry.Package); ok {
			parent = child(directory(sourceRoot), KindPackage, entry.Package, "p:"+sourceRoot+":"+entry.Package, dir)
		} else {
			parent = directory(dir)
		}

		file := child(parent, KindFile, path.Base(entry.Path), "f:"+entry.Path, entry.Path)
		file.Problems = slices.Clone(entry.Problems)
		addClasses(file, entry, byID)
	}

	sortTree(root, less)
	computeWorst(root)
	return root, byID
}

// packageRoot returns the source root a directory belongs to when its
// trailing segments spell out pkg.
func packageRoot(dir, pkg string) (string, bool) {
	if pkg == "" {
		return "", false
	}
	pkgDir := strings.ReplaceAll(pkg, ".", "/")
	switch {
	case dir == pkgDir:
		return ".", true
	case strings.HasSuffix(dir, "/"+pkgDir):
		return strings.TrimSuffix(dir, "/"+pkgDir), true
	default:
		return "", false
	}
}

// addClasses nests class nodes under file by declaration range and hands
// each problem to the innermost class containing it.
func addClasses(file *Node, entry FileEntry, byID map[string]*Node) {
	type placed struct {
		node *Node
		info project.ClassInfo
	}
	var stack []placed

	classes := slices.Clone(entry.Classes)
	slices.SortStableFunc(classes, func(a, b project.ClassInfo) int {
		return cmp.Or(cmp.Compare(a.Range.Start, b.Range.Start), cmp.Compare(b.Range.End, a.Range.End))
	})

	var all []placed
	for _, info := range classes {
		for len(stack) > 0 && !stack[len(stack)-1].info.Range.Covers(info.Range) {
			stack = stack[:len(stack)-1]
		}
		parent := file
		qualified := info.Name
		if len(stack) > 0 {
			parent = stack[len(stack)-1].node
			qualified = strings.TrimPrefix(parent.ID, "c:"+entry.Path+"#") + "." + info.Name
		}
		id := "c:" + entry.Path + "#" + qualified
		if _, dup := byID[id]; dup {
			continue
		}
		n := &Node{Kind: KindClass, Name: info.Name, ID: id, Path: entry.Path, Parent: parent}
		parent.Children = append(parent.Children, n)
		byID[id] = n

		p := placed{node: n, info: info}
		stack = append(stack, p)
		all = append(all, p)
	}

	for _, problem := range entry.Problems {
		var owner *placed
		for i := range all {
			if all[i].info.Range.Contains(problem.Range.Start) {
				owner = &all[i]
			}
		}
		if owner != nil {
			owner.node.Problems = append(owner.node.Problems, problem)
		}
	}
}

func sortTree(n *Node, less Comparator) {
	slices.SortStableFunc(n.Children, less)
	for _, c := range n.Children {
		sortTree(c, less)
	}
}

func computeWorst(n *Node) config.Severity {
	worst := config.Severity("")
	for i := range n.Problems {
		worst = moreSevere(worst, n.Problems[i].Severity)
	}
	for _, c := range n.Children {
		worst = moreSevere(worst, computeWorst(c))
	}
	n.worst = worst
	return worst
}

func moreSevere(a, b config.Severity) config.Severity {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	case b.Rank() > a.Rank():
		return b
	default:
		return a
	}
}

// Entries builds file entries for paths (relative to the scope root or
// absolute) from the class index and per-path problems.
func Entries(scope *project.Scope, paths []string, index *project.ClassIndex, problems map[string][]inspect.Problem) []FileEntry {
	entries := make([]FileEntry, 0, len(paths))
	for _, p := range paths {
		rel, ok := scope.Rel(p)
		if !ok {
			continue
		}
		entry := FileEntry{Path: rel, Problems: problems[p]}
		if index != nil {
			entry.Classes = index.ClassesIn(p)
			if len(entry.Classes) > 0 {
				entry.Package = entry.Classes[0].Package
			}
		}
		entries = append(entries, entry)
	}
	return entries
}
