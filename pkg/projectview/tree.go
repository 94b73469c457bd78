package projectview

import (
	"slices"

	"github.com/yaklabco/javafix/pkg/config"
)

// Tree is the project view: the node hierarchy plus expansion and
// selection state. The root itself is never shown; its children are the
// top-level rows.
type Tree struct {
	Root *Node

	less     Comparator
	byID     map[string]*Node
	expanded map[string]bool
	selected []string
}

// State is the expansion and selection of a tree, keyed by node ID.
type State struct {
	Expanded []string
	Selected []string
}

// New builds a tree named rootName over files. A nil less uses
// DefaultComparator.
func New(rootName string, files []FileEntry, less Comparator) *Tree {
	if less == nil {
		less = DefaultComparator
	}
	t := &Tree{less: less, expanded: make(map[string]bool)}
	t.Root, t.byID = build(rootName, files, less)
	t.expanded[t.Root.ID] = true
	return t
}

// Node returns the node with id.
func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.byID[id]
	return n, ok
}

// Walk calls fn for every node below the root in depth-first display
// order, regardless of expansion. It stops when fn returns false.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	var walk func(n *Node, depth int) bool
	walk = func(n *Node, depth int) bool {
		for _, c := range n.Children {
			if !fn(c, depth) || !walk(c, depth+1) {
				return false
			}
		}
		return true
	}
	walk(t.Root, 0)
}

// IsExpanded reports whether the node with id shows its children.
func (t *Tree) IsExpanded(id string) bool {
	return t.expanded[id]
}

// Expand expands the node with id and all of its ancestors.
func (t *Tree) Expand(id string) bool {
	n, ok := t.byID[id]
	if !ok {
		return false
	}
	for ; n != nil; n = n.Parent {
		if !n.IsLeaf() {
			t.expanded[n.ID] = true
		}
	}
	return true
}

// Collapse collapses the node with id. The root cannot be collapsed.
func (t *Tree) Collapse(id string) {
	if id != t.Root.ID {
		delete(t.expanded, id)
	}
}

// ExpandAll expands every node with children.
func (t *Tree) ExpandAll() {
	t.Walk(func(n *Node, _ int) bool {
		if !n.IsLeaf() {
			t.expanded[n.ID] = true
		}
		return true
	})
}

// ExpandToDepth expands every node above depth; top-level rows have depth 0.
func (t *Tree) ExpandToDepth(depth int) {
	t.Walk(func(n *Node, d int) bool {
		if d < depth && !n.IsLeaf() {
			t.expanded[n.ID] = true
		}
		return true
	})
}

// Row is one visible line of the tree.
type Row struct {
	Node     *Node
	Depth    int
	Expanded bool

	// Last is true when the node is the last of its siblings.
	Last bool
}

// Rows returns the visible rows: children of expanded nodes, in order.
func (t *Tree) Rows() []Row {
	var rows []Row
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		for i, c := range n.Children {
			expanded := t.expanded[c.ID] && !c.IsLeaf()
			rows = append(rows, Row{Node: c, Depth: depth, Expanded: expanded, Last: i == len(n.Children)-1})
			if expanded {
				walk(c, depth+1)
			}
		}
	}
	walk(t.Root, 0)
	return rows
}

// Select replaces the selection with ids, ignoring unknown ones.
func (t *Tree) Select(ids ...string) {
	t.selected = t.selected[:0]
	for _, id := range ids {
		t.AddToSelection(id)
	}
}

// AddToSelection adds id to the selection. Selections need not be
// contiguous.
func (t *Tree) AddToSelection(id string) bool {
	if _, ok := t.byID[id]; !ok || slices.Contains(t.selected, id) {
		return false
	}
	t.selected = append(t.selected, id)
	return true
}

// ToggleSelection adds or removes id.
func (t *Tree) ToggleSelection(id string) {
	if i := slices.Index(t.selected, id); i >= 0 {
		t.selected = slices.Delete(t.selected, i, i+1)
		return
	}
	t.AddToSelection(id)
}

// ClearSelection empties the selection.
func (t *Tree) ClearSelection() {
	t.selected = nil
}

// IsSelected reports whether id is selected.
func (t *Tree) IsSelected(id string) bool {
	return slices.Contains(t.selected, id)
}

// Selected returns the selected nodes in display order.
func (t *Tree) Selected() []*Node {
	var out []*Node
	t.Walk(func(n *Node, _ int) bool {
		if slices.Contains(t.selected, n.ID) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// SaveState captures expansion and selection.
func (t *Tree) SaveState() State {
	var st State
	t.Walk(func(n *Node, _ int) bool {
		if t.expanded[n.ID] {
			st.Expanded = append(st.Expanded, n.ID)
		}
		return true
	})
	st.Selected = slices.Clone(t.selected)
	return st
}

// RestoreState reapplies st, skipping nodes that no longer exist. Expanded
// nodes whose ancestors were collapsed stay hidden until those expand.
func (t *Tree) RestoreState(st State) {
	for _, id := range st.Expanded {
		if n, ok := t.byID[id]; ok && !n.IsLeaf() {
			t.expanded[id] = true
		}
	}
	t.Select(st.Selected...)
}

// Update rebuilds the tree from files. With restore set, expanded paths and
// selection carry over to the nodes that still exist; otherwise the tree
// starts collapsed with nothing selected.
func (t *Tree) Update(files []FileEntry, restore bool) {
	var st State
	if restore {
		st = t.SaveState()
	}
	t.Root, t.byID = build(t.Root.Name, files, t.less)
	t.expanded = map[string]bool{t.Root.ID: true}
	t.ClearSelection()
	if restore {
		t.RestoreState(st)
	}
}

// Stripe returns the error stripe shown next to n: the worst severity in
// its subtree. Expanded directories and packages have no stripe, their
// children carry it instead.
func (t *Tree) Stripe(n *Node) (config.Severity, bool) {
	if n.Kind.IsContainer() && t.expanded[n.ID] {
		return "", false
	}
	return n.Worst()
}
