package projectview_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/javafix/internal/ui/pretty"
	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/inspect"
	"github.com/yaklabco/javafix/pkg/javatree"
	"github.com/yaklabco/javafix/pkg/project"
	"github.com/yaklabco/javafix/pkg/projectview"
)

const (
	mainFile  = "src/main/java/com/acme/app/Main.java"
	utilFile  = "src/main/java/com/acme/util/Strings.java"
	appPkgID  = "p:src/main/java:com.acme.app"
	utilPkgID = "p:src/main/java:com.acme.util"
	innerID   = "c:" + mainFile + "#Main.Inner"
)

func problem(sev config.Severity, offset int) inspect.Problem {
	return inspect.Problem{Severity: sev, Range: javatree.Range{Start: offset, End: offset + 1}}
}

func entries() []projectview.FileEntry {
	return []projectview.FileEntry{
		{
			Path:    mainFile,
			Package: "com.acme.app",
			Classes: []project.ClassInfo{
				{Name: "Main", Range: javatree.Range{Start: 0, End: 100}},
				{Name: "Inner", Outer: "Main", Range: javatree.Range{Start: 20, End: 60}},
			},
			Problems: []inspect.Problem{problem(config.SeverityError, 30)},
		},
		{
			Path:     utilFile,
			Package:  "com.acme.util",
			Classes:  []project.ClassInfo{{Name: "Strings", Range: javatree.Range{Start: 0, End: 50}}},
			Problems: []inspect.Problem{problem(config.SeverityWarning, 10)},
		},
		{
			Path:    "scripts/Build.java",
			Classes: []project.ClassInfo{{Name: "Build", Range: javatree.Range{Start: 0, End: 20}}},
		},
		{Path: "Zeta.java"},
	}
}

func names(rows []projectview.Row) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Node.Name)
	}
	return out
}

func TestNew_Structure(t *testing.T) {
	t.Parallel()

	tree := projectview.New("project", entries(), nil)

	assert.Equal(t, []string{"scripts", "src", "Zeta.java"}, names(tree.Rows()))

	pkg, ok := tree.Node(appPkgID)
	require.True(t, ok)
	assert.Equal(t, projectview.KindPackage, pkg.Kind)
	assert.Equal(t, "java", pkg.Parent.Name)
	assert.Len(t, pkg.Parent.Children, 2, "the source root holds only its packages")
	_, ok = tree.Node("d:src/main/java/com")
	assert.False(t, ok, "package directories are not repeated as directories")

	inner, ok := tree.Node(innerID)
	require.True(t, ok)
	assert.Equal(t, projectview.KindClass, inner.Kind)
	assert.Equal(t, "Main", inner.Parent.Name)
	assert.Len(t, inner.Problems, 1)

	main, ok := tree.Node("c:" + mainFile + "#Main")
	require.True(t, ok)
	assert.Empty(t, main.Problems)
}

func TestNew_PackageUnderShallowRoot(t *testing.T) {
	t.Parallel()

	tree := projectview.New("project", []projectview.FileEntry{
		{Path: "src/com/acme/A.java", Package: "com.acme"},
	}, nil)
	tree.ExpandAll()

	assert.Equal(t, []string{"src", "com.acme", "A.java"}, names(tree.Rows()))
	_, ok := tree.Node("d:src/com")
	assert.False(t, ok)
}

func TestDefaultComparator(t *testing.T) {
	t.Parallel()

	tree := projectview.New("p", []projectview.FileEntry{
		{Path: "b.java"},
		{Path: "C.java"},
		{Path: "A.java"},
		{Path: "zdir/X.java"},
	}, nil)

	assert.Equal(t, []string{"zdir", "A.java", "b.java", "C.java"}, names(tree.Rows()))
}

func TestStripes(t *testing.T) {
	t.Parallel()

	tree := projectview.New("project", entries(), nil)
	stripe := func(id string) config.Severity {
		n, ok := tree.Node(id)
		require.True(t, ok, id)
		sev, _ := tree.Stripe(n)
		return sev
	}

	assert.Equal(t, config.SeverityError, stripe("d:src"))
	assert.Empty(t, stripe("d:scripts"))
	assert.Empty(t, stripe("f:Zeta.java"))

	tree.Expand("d:src")
	assert.Empty(t, stripe("d:src"), "expanded directories show no stripe")
	assert.Equal(t, config.SeverityError, stripe("d:src/main"))

	assert.Equal(t, config.SeverityWarning, stripe(utilPkgID))
	tree.Expand(utilPkgID)
	assert.Empty(t, stripe(utilPkgID))

	assert.Equal(t, config.SeverityError, stripe("f:"+mainFile))
	tree.Expand("f:" + mainFile)
	assert.Equal(t, config.SeverityError, stripe("f:"+mainFile), "files keep their stripe when expanded")
	assert.Equal(t, config.SeverityError, stripe(innerID))
}

func TestExpandAndRows(t *testing.T) {
	t.Parallel()

	tree := projectview.New("project", entries(), nil)
	require.True(t, tree.Expand(innerID))
	assert.False(t, tree.IsExpanded(innerID), "leaves never expand")
	assert.True(t, tree.IsExpanded(appPkgID))

	assert.Equal(t, []string{"scripts", "src", "main", "java", "com.acme.app", "Main.java", "Main", "Inner", "com.acme.util", "Zeta.java"},
		names(tree.Rows()))

	tree.Collapse("d:src/main")
	assert.Equal(t, []string{"scripts", "src", "main", "Zeta.java"}, names(tree.Rows()))

	tree.Collapse("root")
	assert.True(t, tree.IsExpanded("root"))

	assert.False(t, tree.Expand("d:missing"))
}

func TestSelection(t *testing.T) {
	t.Parallel()

	tree := projectview.New("project", entries(), nil)
	tree.Select("f:Zeta.java", "d:scripts", "d:unknown")

	selected := tree.Selected()
	require.Len(t, selected, 2)
	assert.Equal(t, "scripts", selected[0].Name, "selection comes back in display order")
	assert.Equal(t, "Zeta.java", selected[1].Name)

	tree.ToggleSelection("d:scripts")
	assert.False(t, tree.IsSelected("d:scripts"))
	assert.True(t, tree.AddToSelection(innerID))
	assert.False(t, tree.AddToSelection(innerID))
	assert.Len(t, tree.Selected(), 2)

	tree.ClearSelection()
	assert.Empty(t, tree.Selected())
}

func TestUpdate_RestoresExpandedPaths(t *testing.T) {
	t.Parallel()

	tree := projectview.New("project", entries(), nil)
	tree.Expand(utilPkgID)
	tree.Expand("d:scripts")
	tree.Select("f:Zeta.java", "f:scripts/Build.java")

	// Zeta.java and the scripts directory disappear.
	tree.Update(entries()[:2], true)

	assert.True(t, tree.IsExpanded(utilPkgID))
	assert.True(t, tree.IsExpanded("d:src/main/java"))
	assert.False(t, tree.IsExpanded("d:scripts"))
	assert.Empty(t, tree.Selected())

	tree.Update(entries(), false)
	assert.False(t, tree.IsExpanded(utilPkgID))
	assert.Equal(t, []string{"scripts", "src", "Zeta.java"}, names(tree.Rows()))
}

func TestSaveAndRestoreState(t *testing.T) {
	t.Parallel()

	tree := projectview.New("project", entries(), nil)
	tree.Expand(innerID)
	tree.Select(innerID)
	st := tree.SaveState()

	other := projectview.New("project", entries(), nil)
	other.RestoreState(st)
	assert.Equal(t, names(tree.Rows()), names(other.Rows()))
	assert.True(t, other.IsSelected(innerID))
}

func TestMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text    string
		pattern string
		want    bool
	}{
		{"CallToClassName", "", true},
		{"CallToClassName", "call", true},
		{"CallToClassName", "callToCl", true},
		{"CallToClassName", "CTCN", true},
		{"CallToClassName", "CaToNa", true},
		{"CallToClassName", "ToClass", false},
		{"CallToClassName", "CX", false},
		{"InsertSuperFix", "ISF", true},
		{"InsertSuperFix", "ins sup", true},
		{"Main.java", "Main.j", true},
		{"Main.java", "mj", true},
		{"Main.java", "java", false},
	}

	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.pattern, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, projectview.Matches(tt.text, tt.pattern))
		})
	}
}

func TestMatchesNode_Packages(t *testing.T) {
	t.Parallel()

	tree := projectview.New("project", entries(), nil)
	pkg, ok := tree.Node(utilPkgID)
	require.True(t, ok)

	assert.True(t, projectview.MatchesNode(pkg, "util"), "any segment")
	assert.True(t, projectview.MatchesNode(pkg, "acme"))
	assert.True(t, projectview.MatchesNode(pkg, "UTIL"), "package names compare lowercased")
	assert.True(t, projectview.MatchesNode(pkg, "com.acme.u"), "a dotted pattern compares the whole name")
	assert.False(t, projectview.MatchesNode(pkg, "acme.u"))
}

func TestSearchAndReveal(t *testing.T) {
	t.Parallel()

	tree := projectview.New("project", entries(), nil)

	found := tree.Search("In")
	require.Len(t, found, 1)
	assert.Equal(t, innerID, found[0].ID)

	next, ok := tree.FindNext("", "Zeta")
	require.True(t, ok)
	assert.Equal(t, "f:Zeta.java", next.ID)
	_, ok = tree.FindNext("", "Inner")
	assert.False(t, ok, "collapsed nodes are not visible to FindNext")

	assert.Equal(t, 1, tree.Reveal("In"))
	assert.True(t, tree.IsSelected(innerID))
	assert.Contains(t, names(tree.Rows()), "Inner")
}

func TestRender(t *testing.T) {
	t.Parallel()

	tree := projectview.New("project", entries(), nil)
	r := &projectview.Renderer{Styles: pretty.NewStyles(false)}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, tree))
	assert.Equal(t, "project\n ├── ▸ scripts\n▌├── ▸ src\n └── Zeta.java\n", buf.String())

	tree.Expand(innerID)
	r.ShowCounts = true
	buf.Reset()
	require.NoError(t, r.Render(&buf, tree))
	out := buf.String()
	assert.Contains(t, out, " │   └── ▾ main\n")
	assert.Contains(t, out, " │           ├── ▾ com.acme.app\n")
	assert.Contains(t, out, "▌│           │   └── Main.java (1)\n")
	assert.Contains(t, out, "Main.java (1)")
	assert.Contains(t, out, "Inner (1)")

	r.Width = 12
	buf.Reset()
	require.NoError(t, r.Render(&buf, tree))
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		assert.LessOrEqual(t, len([]rune(string(line))), 12)
	}
}

func TestEntries_FromProject(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "src", "com", "acme", "Child.java")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("package com.acme;\n\nclass Child {\n    class Part {}\n}\n"), 0o644))

	proj, err := project.Open(root, config.NewConfig())
	require.NoError(t, err)
	files, err := proj.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)

	problems := map[string][]inspect.Problem{files[0]: {problem(config.SeverityError, 40)}}
	tree := projectview.New("acme", projectview.Entries(proj.Scope, files, proj.Index(), problems), nil)

	part, ok := tree.Node("c:src/com/acme/Child.java#Child.Part")
	require.True(t, ok)
	assert.Equal(t, "Part", part.Name)
	pkg, ok := tree.Node("p:src:com.acme")
	require.True(t, ok)
	sev, ok := tree.Stripe(pkg)
	require.True(t, ok)
	assert.Equal(t, config.SeverityError, sev)
}
