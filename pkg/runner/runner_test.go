package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/inspect/inspections"
	"github.com/yaklabco/javafix/pkg/project"
	"github.com/yaklabco/javafix/pkg/runner"
)

func sampleProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range map[string]string{
		"src/app/Base.java":   "package app;\n\npublic class Base {\n    public Base(int x) {}\n}\n",
		"src/app/Child.java":  "package app;\n\nclass Child extends Base {\n    Child() {\n    }\n}\n",
		"src/app/Main.java":   "package app;\n\nclass Main {\n    Object make() { return Point(1, 2); }\n}\n",
		"src/geom/Point.java": "package geom;\n\npublic class Point {\n    public Point(int x, int y) {}\n}\n",
		"README.md":           "# sample\n",
	} {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func newRunner(t *testing.T, root string, cfg *config.Config) *runner.Runner {
	t.Helper()
	proj, err := project.Open(root, cfg)
	require.NoError(t, err)
	return runner.New(proj, inspections.NewRegistry())
}

func TestRunner_Check(t *testing.T) {
	t.Parallel()

	root := sampleProject(t)
	cfg := config.NewConfig()
	result, err := newRunner(t, root, cfg).Run(context.Background(), runner.Options{Jobs: 2, Config: cfg})
	require.NoError(t, err)

	require.Len(t, result.Files, 4)
	paths := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		require.NoError(t, f.Error)
		rel, err := filepath.Rel(root, f.Path)
		require.NoError(t, err)
		paths = append(paths, filepath.ToSlash(rel))
	}
	assert.Equal(t, []string{
		"src/app/Base.java",
		"src/app/Child.java",
		"src/app/Main.java",
		"src/geom/Point.java",
	}, paths)

	assert.Equal(t, 4, result.Stats.FilesDiscovered)
	assert.Equal(t, 4, result.Stats.FilesProcessed)
	assert.Equal(t, 2, result.Stats.ProblemsTotal)
	assert.Equal(t, 2, result.Stats.ProblemsFixable)
	assert.Equal(t, 2, result.Stats.FilesWithProblems)
	assert.Equal(t, 2, result.Stats.ProblemsBySeverity["error"])
	assert.Zero(t, result.Stats.FilesModified)
	assert.True(t, result.HasFailures())
	assert.True(t, result.HasProblems())
}

func TestRunner_Fix(t *testing.T) {
	t.Parallel()

	root := sampleProject(t)
	cfg := config.NewConfig()
	cfg.NoBackups = true
	r := newRunner(t, root, cfg)

	result, err := r.Run(context.Background(), runner.Options{Fix: true, Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Stats.FilesModified)
	assert.Equal(t, 2, result.Stats.FixesApplied)
	assert.Zero(t, result.Stats.ProblemsTotal)

	main, err := os.ReadFile(filepath.Join(root, "src/app/Main.java"))
	require.NoError(t, err)
	assert.Contains(t, string(main), "import geom.Point;")
	assert.Contains(t, string(main), "return new Point(1, 2);")

	child, err := os.ReadFile(filepath.Join(root, "src/app/Child.java"))
	require.NoError(t, err)
	assert.Contains(t, string(child), "        super();\n")
	assert.NoFileExists(t, filepath.Join(root, "src/app/Child.java.javafix.bak"))

	again, err := r.Run(context.Background(), runner.Options{Fix: true, Config: cfg})
	require.NoError(t, err)
	assert.Zero(t, again.Stats.FilesModified, "second run is a no-op")
}

func TestRunner_PathsAndDryRun(t *testing.T) {
	t.Parallel()

	root := sampleProject(t)
	cfg := config.NewConfig()
	cfg.DryRun = true

	result, err := newRunner(t, root, cfg).Run(context.Background(), runner.Options{
		Paths:  []string{filepath.Join(root, "src/app/Main.java")},
		Fix:    true,
		Config: cfg,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.NotNil(t, result.Files[0].Result.Diff)
	assert.Equal(t, 1, result.Stats.FilesModified)

	main, err := os.ReadFile(filepath.Join(root, "src/app/Main.java"))
	require.NoError(t, err)
	assert.Contains(t, string(main), "return Point(1, 2);", "dry run leaves the file alone")
}

func TestRunner_Cancelled(t *testing.T) {
	t.Parallel()

	root := sampleProject(t)
	cfg := config.NewConfig()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(t, root, cfg).Run(ctx, runner.Options{Config: cfg})
	require.ErrorIs(t, err, context.Canceled)
}
