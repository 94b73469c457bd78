package project_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/javatree"
	"github.com/yaklabco/javafix/pkg/project"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func sampleTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		".gitignore":                   "build/\n*.gen.java\n",
		"src/com/acme/Base.java":       "package com.acme;\n\npublic class Base {\n    public Base(int x) {}\n}\n",
		"src/com/acme/Child.java":      "package com.acme;\n\nclass Child extends Base {\n    Child() {\n    }\n}\n",
		"src/com/acme/util/Point.java": "package com.acme.util;\n\npublic class Point {\n    public Point(int x, int y) {}\n}\n",
		"src/com/acme/Model.gen.java":  "package com.acme;\nclass Model {}\n",
		"build/out/Generated.java":     "class Generated {}\n",
		".hidden/Secret.java":          "class Secret {}\n",
		"docs/readme.md":               "# docs\n",
		"legacy/old/Ancient.java":      "class Ancient {}\n",
	})
	return root
}

func relPaths(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestScope_GitRootAndIgnores(t *testing.T) {
	t.Parallel()

	root := sampleTree(t)
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)

	scope, err := project.NewScope(project.ScopeOptions{
		Start:            filepath.Join(root, "src", "com"),
		RespectGitignore: true,
		Ignore:           []string{"legacy/"},
	})
	require.NoError(t, err)

	assert.True(t, scope.IsGitRepo())
	assert.Equal(t, root, scope.Root())

	tests := []struct {
		path string
		want bool
	}{
		{"src/com/acme/Child.java", true},
		{"src/com/acme/Model.gen.java", false},
		{"build/out/Generated.java", false},
		{".hidden/Secret.java", false},
		{"legacy/old/Ancient.java", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, scope.Contains(filepath.Join(root, tt.path)), tt.path)
	}
	assert.False(t, scope.Contains(filepath.Join(filepath.Dir(root), "Elsewhere.java")))

	files, err := scope.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"src/com/acme/Base.java",
		"src/com/acme/Child.java",
		"src/com/acme/util/Point.java",
	}, relPaths(t, root, files))
}

func TestScope_WithoutGitIgnoresGitignoreWhenAsked(t *testing.T) {
	t.Parallel()

	root := sampleTree(t)
	scope, err := project.NewScope(project.ScopeOptions{Start: root})
	require.NoError(t, err)

	assert.Equal(t, root, scope.Root())
	assert.True(t, scope.Contains(filepath.Join(root, "build/out/Generated.java")))
}

func TestScope_SourceRoots(t *testing.T) {
	t.Parallel()

	root := sampleTree(t)
	scope, err := project.NewScope(project.ScopeOptions{
		Start:            root,
		RespectGitignore: true,
		SourceRoots:      []string{"src/com/acme/util"},
	})
	require.NoError(t, err)

	files, err := scope.Discover(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/com/acme/util/Point.java"}, relPaths(t, root, files))
}

func TestProject_LoadAndResolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root := sampleTree(t)
	cfg := config.NewConfig()
	cfg.Jobs = 2

	proj, err := project.Open(root, cfg)
	require.NoError(t, err)

	files, err := proj.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 4)
	assert.Equal(t, 4, proj.Index().Len())

	base := proj.Index().Lookup("Base")
	require.Len(t, base, 1)
	assert.Equal(t, "com.acme.Base", base[0].QualifiedName())
	assert.False(t, base[0].HasDefaultConstructor)
	assert.True(t, base[0].AcceptsArity(1))

	doc, err := proj.OpenDocument(ctx, filepath.Join(root, "src/com/acme/Child.java"))
	require.NoError(t, err)
	again, err := proj.OpenDocument(ctx, filepath.Join(root, "src/com/acme/Child.java"))
	require.NoError(t, err)
	assert.Same(t, doc, again)

	info, ok := proj.Index().Resolve(doc.File(), "Base")
	require.True(t, ok)
	assert.Equal(t, "com.acme", info.Package)

	point, ok := proj.Index().Resolve(doc.File(), "Point")
	require.True(t, ok, "unique project match")
	assert.Equal(t, "com.acme.util.Point", point.QualifiedName())

	_, ok = proj.Index().Resolve(doc.File(), "Missing")
	assert.False(t, ok)

	proj.CloseDocument(doc.Path())
	assert.True(t, doc.IsClosed())
	assert.Empty(t, proj.Documents())
}

func TestClassIndex_AddReplacesEntriesForPath(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	parser := javatree.NewParser()
	ix := project.NewClassIndex()

	first, err := parser.Parse(ctx, "A.java", []byte("class A {}\nclass B {}\n"))
	require.NoError(t, err)
	ix.Add(first)
	assert.Equal(t, 2, ix.Len())

	classes := ix.ClassesIn("A.java")
	require.Len(t, classes, 2)
	assert.Equal(t, "A", classes[0].Name)
	assert.Equal(t, "B", classes[1].Name)
	assert.Less(t, classes[0].Range.End, classes[1].Range.Start)

	second, err := parser.Parse(ctx, "A.java", []byte("class A { A(int x) {} }\n"))
	require.NoError(t, err)
	ix.Add(second)
	assert.Equal(t, 1, ix.Len())
	assert.Empty(t, ix.Lookup("B"))
	require.Len(t, ix.Lookup("A"), 1)
	assert.False(t, ix.Lookup("A")[0].HasDefaultConstructor)

	ix.Remove("A.java")
	assert.Zero(t, ix.Len())
}

func TestClassIndex_ResolvePrefersImports(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	parser := javatree.NewParser()
	ix := project.NewClassIndex()

	for path, src := range map[string]string{
		"a/Point.java": "package a;\npublic class Point {}\n",
		"b/Point.java": "package b;\npublic class Point {}\n",
	} {
		file, err := parser.Parse(ctx, path, []byte(src))
		require.NoError(t, err)
		ix.Add(file)
	}

	user, err := parser.Parse(ctx, "c/User.java", []byte("package c;\nimport b.Point;\nclass User {}\n"))
	require.NoError(t, err)
	info, ok := ix.Resolve(user, "Point")
	require.True(t, ok)
	assert.Equal(t, "b", info.Package)

	wildcard, err := parser.Parse(ctx, "c/Other.java", []byte("package c;\nimport a.*;\nclass Other {}\n"))
	require.NoError(t, err)
	info, ok = ix.Resolve(wildcard, "Point")
	require.True(t, ok)
	assert.Equal(t, "a", info.Package)

	ambiguous, err := parser.Parse(ctx, "c/Plain.java", []byte("package c;\nclass Plain {}\n"))
	require.NoError(t, err)
	_, ok = ix.Resolve(ambiguous, "Point")
	assert.False(t, ok)
}
