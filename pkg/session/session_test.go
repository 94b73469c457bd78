package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/fsutil"
	"github.com/yaklabco/javafix/pkg/inspect/inspections"
	"github.com/yaklabco/javafix/pkg/session"
)

const (
	baseSource  = "class Base {\n    Base(int x) {}\n}\n"
	childSource = "class Child extends Base {\n    Child() {\n    }\n}\n"
	fixedChild  = "class Child extends Base {\n    Child() {\n        super();\n    }\n}\n"
)

func openSession(t *testing.T, cfg *config.Config) (*session.Session, string) {
	t.Helper()

	root := t.TempDir()
	for name, src := range map[string]string{
		"Base.java":       baseSource,
		"Child.java":      childSource,
		"scripts/tool.py": "print(1)\n",
	} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	}

	s, err := session.Open(context.Background(), root, cfg, inspections.NewRegistry())
	require.NoError(t, err)
	return s, root
}

func read(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestFixesAt(t *testing.T) {
	t.Parallel()

	s, root := openSession(t, nil)
	ctx := context.Background()

	offer, err := s.FixesAt(ctx, filepath.Join(root, "Child.java"), 2, 5)
	require.NoError(t, err)
	require.Len(t, offer.Fixes, 1)
	assert.Equal(t, 1, offer.Fixes[0].Index)
	assert.Equal(t, "Insert 'super();'", offer.Fixes[0].Label)
	assert.Equal(t, "Insert super constructor call", offer.Fixes[0].Family)
	assert.Equal(t, "JF001", offer.Fixes[0].Problem.InspectionID)

	offer, err = s.FixesAt(ctx, filepath.Join(root, "Child.java"), 1, 1)
	require.NoError(t, err)
	assert.Empty(t, offer.Fixes)

	_, err = s.FixesAt(ctx, filepath.Join(root, "Child.java"), 40, 1)
	require.Error(t, err)
}

func TestApply_WritesFileAndReportsCaret(t *testing.T) {
	t.Parallel()

	s, root := openSession(t, nil)
	ctx := context.Background()
	path := filepath.Join(root, "Child.java")

	change, err := s.Apply(ctx, path, 2, 5, 1, session.ApplyOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Insert 'super();'", change.Label)
	assert.Equal(t, 3, change.Line)
	assert.Equal(t, len("        super(")+1, change.Column)
	assert.True(t, change.Written)
	assert.True(t, change.BackupCreated)
	assert.True(t, change.Diff.HasChanges())
	assert.Equal(t, fixedChild, read(t, path))
	assert.Equal(t, childSource, read(t, fsutil.BackupPath(path, fsutil.BackupModeSidecar)))

	_, err = s.Apply(ctx, path, 2, 5, 1, session.ApplyOptions{})
	require.ErrorIs(t, err, session.ErrNoSuchFix, "the problem is gone once fixed")
}

func TestApply_DryRunLeavesEverythingUntouched(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.NoBackups = true
	s, root := openSession(t, cfg)
	ctx := context.Background()
	path := filepath.Join(root, "Child.java")

	change, err := s.Apply(ctx, path, 2, 5, 1, session.ApplyOptions{DryRun: true})
	require.NoError(t, err)
	assert.False(t, change.Written)
	assert.Contains(t, change.Diff.String(), "+        super();")
	assert.Equal(t, childSource, read(t, path))

	// The document was rolled back, so the fix is offered again.
	offer, err := s.FixesAt(ctx, path, 2, 5)
	require.NoError(t, err)
	assert.Len(t, offer.Fixes, 1)

	_, err = s.Apply(ctx, path, 2, 5, 2, session.ApplyOptions{})
	require.ErrorIs(t, err, session.ErrNoSuchFix)
}

func TestApply_RefusesExternallyModifiedFile(t *testing.T) {
	t.Parallel()

	s, root := openSession(t, nil)
	ctx := context.Background()
	path := filepath.Join(root, "Child.java")

	_, err := s.FixesAt(ctx, path, 2, 5)
	require.NoError(t, err)

	edited := "// edited elsewhere\n" + childSource
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	_, err = s.Apply(ctx, path, 2, 5, 1, session.ApplyOptions{})
	require.ErrorIs(t, err, fsutil.ErrModified)
	assert.Equal(t, edited, read(t, path))
}

func TestToggleComment(t *testing.T) {
	t.Parallel()

	s, root := openSession(t, nil)
	ctx := context.Background()

	path := filepath.Join(root, "Child.java")
	change, err := s.ToggleComment(ctx, path, 2, 3, session.ApplyOptions{})
	require.NoError(t, err)
	assert.True(t, change.Written)
	assert.Contains(t, read(t, path), "    // Child() {\n    // }\n")

	_, err = s.ToggleComment(ctx, path, 2, 3, session.ApplyOptions{})
	require.NoError(t, err)
	assert.Equal(t, childSource, read(t, path))

	script := filepath.Join(root, "scripts", "tool.py")
	_, err = s.ToggleComment(ctx, script, 1, 1, session.ApplyOptions{})
	require.NoError(t, err)
	assert.Equal(t, "# print(1)\n", read(t, script))
}

func TestCheck(t *testing.T) {
	t.Parallel()

	s, root := openSession(t, nil)

	result, err := s.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Stats.FilesDiscovered)
	assert.Equal(t, 1, result.Stats.ProblemsTotal)
	assert.True(t, result.HasFailures())
	assert.Equal(t, childSource, read(t, filepath.Join(root, "Child.java")), "check never writes")
}
