package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/javafix/internal/cli"
	"github.com/yaklabco/javafix/pkg/fsutil"
	"github.com/yaklabco/javafix/pkg/reporter"
)

const (
	baseSource  = "class Base {\n    Base(int x) {}\n}\n"
	childSource = "class Child extends Base {\n    Child() {\n    }\n}\n"
	fixedChild  = "class Child extends Base {\n    Child() {\n        super();\n    }\n}\n"
	pointSource = "class Point {\n    Point(int x, int y) {}\n}\n"
	mainSource  = "class Main {\n    void run() { Object p = Point(1, 2); }\n}\n"
	fixedMain   = "class Main {\n    void run() { Object p = new Point(1, 2); }\n}\n"
)

// newProject writes a project with one problem per inspection and a config
// file with the given content. It returns the project directory and the
// config path.
func newProject(t *testing.T, config string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"Base.java":    baseSource,
		"Child.java":   childSource,
		"Point.java":   pointSource,
		"Main.java":    mainSource,
		".javafix.yml": config,
	}
	for name, src := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
	}
	return dir, filepath.Join(dir, ".javafix.yml")
}

// execute runs the CLI with args and returns the combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--color", "never"))

	err := cmd.Execute()
	return stdout.String() + stderr.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestIntegration_CheckReportsProblems(t *testing.T) {
	t.Parallel()

	dir, cfg := newProject(t, "severity_default: warning\n")

	output, err := execute(t, "check", "--config", cfg, dir)
	require.ErrorIs(t, err, cli.ErrProblemsFound)

	assert.Contains(t, output, "Child.java")
	assert.Contains(t, output, "missing-super-call")
	assert.Contains(t, output, "Insert 'super();'")
	assert.Contains(t, output, "Main.java")
	assert.Contains(t, output, "call-to-class-name")
	assert.Equal(t, childSource, readFile(t, filepath.Join(dir, "Child.java")), "check never writes")
}

func TestIntegration_InspectionFormatFlag(t *testing.T) {
	t.Parallel()

	dir, cfg := newProject(t, "inspections:\n  call-to-class-name:\n    enabled: false\n")

	tests := []struct {
		format         string
		wantContains   string
		wantNotContain string
	}{
		{"name", "missing-super-call", "JF001"},
		{"id", "JF001", "missing-super-call"},
		{"combined", "JF001/missing-super-call", ""},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			output, err := execute(t, "check", "--config", cfg, "--inspection-format", tt.format, "--no-context", dir)
			require.ErrorIs(t, err, cli.ErrProblemsFound)
			assert.Contains(t, output, tt.wantContains)
			if tt.wantNotContain != "" {
				assert.NotContains(t, output, tt.wantNotContain)
			}
		})
	}
}

func TestIntegration_CheckJSON(t *testing.T) {
	t.Parallel()

	dir, cfg := newProject(t, "")

	output, err := execute(t, "check", "--config", cfg, "--format", "json", dir)
	require.ErrorIs(t, err, cli.ErrProblemsFound)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(output), &out))
	assert.Equal(t, 4, out.Summary.FilesChecked)
	assert.Equal(t, 2, out.Summary.TotalProblems)
	assert.Equal(t, 2, out.Summary.BySeverity["error"])
}

func TestIntegration_ConfigSeverityAndStrict(t *testing.T) {
	t.Parallel()

	dir, cfg := newProject(t, `inspections:
  JF001:
    severity: warning
  call-to-class-name:
    enabled: false
`)

	_, err := execute(t, "check", "--config", cfg, dir)
	require.NoError(t, err, "warnings alone pass")

	_, err = execute(t, "check", "--config", cfg, "--strict", dir)
	require.ErrorIs(t, err, cli.ErrWarningsFound)
	assert.Equal(t, cli.ExitProblemWarnings, cli.ExitCodeFromError(err))
}

func TestIntegration_DisableByFlag(t *testing.T) {
	t.Parallel()

	dir, cfg := newProject(t, "")

	output, err := execute(t, "check", "--config", cfg, "--disable", "JF001,call-to-class-name", dir)
	require.NoError(t, err)
	assert.NotContains(t, output, "missing-super-call")
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir, cfg := newProject(t, "severity_default: fatal\n")

	_, err := execute(t, "check", "--config", cfg, dir)
	require.ErrorIs(t, err, cli.ErrConfig)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestIntegration_FixDryRun(t *testing.T) {
	t.Parallel()

	dir, cfg := newProject(t, "")

	output, err := execute(t, "fix", "--config", cfg, "--dry-run", dir)
	require.NoError(t, err, "all problems are fixable")
	assert.Contains(t, output, "+        super();")
	assert.Contains(t, output, "new Point(1, 2)")
	assert.Equal(t, childSource, readFile(t, filepath.Join(dir, "Child.java")))
	assert.Equal(t, mainSource, readFile(t, filepath.Join(dir, "Main.java")))
}

func TestIntegration_FixWritesAndBacksUp(t *testing.T) {
	t.Parallel()

	dir, cfg := newProject(t, "")
	child := filepath.Join(dir, "Child.java")

	_, err := execute(t, "fix", "--config", cfg, dir)
	require.NoError(t, err)

	assert.Equal(t, fixedChild, readFile(t, child))
	assert.Equal(t, fixedMain, readFile(t, filepath.Join(dir, "Main.java")))
	assert.Equal(t, childSource, readFile(t, fsutil.BackupPath(child, fsutil.BackupModeSidecar)))

	_, err = execute(t, "check", "--config", cfg, dir)
	require.NoError(t, err)
}

func TestIntegration_RestoreUndoesFix(t *testing.T) {
	t.Parallel()

	dir, cfg := newProject(t, "")
	child := filepath.Join(dir, "Child.java")

	_, err := execute(t, "fix", "--config", cfg, dir)
	require.NoError(t, err)

	output, err := execute(t, "restore", "--config", cfg, "--list", dir)
	require.NoError(t, err)
	assert.Contains(t, output, child)
	assert.Equal(t, fixedChild, readFile(t, child), "--list leaves files alone")

	output, err = execute(t, "restore", "--config", cfg, dir)
	require.NoError(t, err)
	assert.Contains(t, output, "restored")
	assert.Equal(t, childSource, readFile(t, child))
	assert.Equal(t, mainSource, readFile(t, filepath.Join(dir, "Main.java")))
	assert.NoFileExists(t, fsutil.BackupPath(child, fsutil.BackupModeSidecar))

	output, err = execute(t, "restore", "--config", cfg, dir)
	require.NoError(t, err)
	assert.Contains(t, output, "no backups found")
}

func TestIntegration_FixStats(t *testing.T) {
	t.Parallel()

	dir, cfg := newProject(t, "")

	output, err := execute(t, "fix", "--config", cfg, "--no-backups", "--stats", dir)
	require.NoError(t, err)
	assert.Contains(t, output, "Summary")
	assert.Contains(t, output, "Files modified:")
	assert.Contains(t, output, "Fixes applied:")
	assert.Contains(t, output, "Check passed")
}

func TestIntegration_ConfigShow(t *testing.T) {
	t.Parallel()

	dir, cfg := newProject(t, "severity_default: warning\nfixes:\n  max_passes: 3\n")

	output, err := execute(t, "config", "show", "--config", cfg, dir)
	require.NoError(t, err)
	assert.Contains(t, output, "severity_default: warning")
	assert.Contains(t, output, "max_passes: 3")

	written := filepath.Join(t.TempDir(), "merged.yml")
	_, err = execute(t, "config", "show", "--config", cfg, "--write", written, dir)
	require.NoError(t, err)
	assert.Contains(t, readFile(t, written), "severity_default: warning")
}

func TestIntegration_ConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		wantErr  bool
		contains string
	}{
		{name: "valid", content: "severity_default: info\n", contains: "valid"},
		{name: "unknown inspection", content: "inspections:\n  JF999:\n    enabled: false\n", contains: "valid, with warnings"},
		{name: "bad severity", content: "severity_default: fatal\n", wantErr: true, contains: "invalid severity"},
		{name: "not yaml", content: "severity_default: [\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), ".javafix.yml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			output, err := execute(t, "config", "validate", path)
			if tt.wantErr {
				require.ErrorIs(t, err, cli.ErrConfig)
				assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, output, tt.contains)
		})
	}
}

func TestIntegration_ConfigEnv(t *testing.T) {
	t.Parallel()

	output, err := execute(t, "config", "env")
	require.NoError(t, err)
	assert.Contains(t, output, "JAVAFIX_MAX_PASSES")
	assert.Contains(t, output, "JAVAFIX_SOURCE_ROOTS")

	output, err = execute(t, "config", "env", "fixes.max_passes")
	require.NoError(t, err)
	assert.Equal(t, "JAVAFIX_MAX_PASSES\n", output)

	_, err = execute(t, "config", "env", "no.such.field")
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestIntegration_FixFamilyAndNoBackups(t *testing.T) {
	t.Parallel()

	dir, cfg := newProject(t, "")
	main := filepath.Join(dir, "Main.java")

	_, err := execute(t, "fix", "--config", cfg, "--family", "Insert new", "--no-backups", dir)
	require.ErrorIs(t, err, cli.ErrProblemsFound, "the missing super call is left alone")

	assert.Equal(t, fixedMain, readFile(t, main))
	assert.Equal(t, childSource, readFile(t, filepath.Join(dir, "Child.java")))
	assert.NoFileExists(t, fsutil.BackupPath(main, fsutil.BackupModeSidecar))
}

func TestIntegration_ApplyListsAndInvokes(t *testing.T) {
	t.Parallel()

	dir, cfg := newProject(t, "")
	child := filepath.Join(dir, "Child.java")

	output, err := execute(t, "apply", child, "--config", cfg, "--line", "2", "--col", "5")
	require.NoError(t, err)
	assert.Contains(t, output, "1. Insert 'super();'")
	assert.Equal(t, childSource, readFile(t, child))

	output, err = execute(t, "apply", child, "--config", cfg, "--line", "2", "--col", "5", "--fix", "1", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, output, "+        super();")
	assert.Equal(t, childSource, readFile(t, child))

	output, err = execute(t, "apply", child, "--config", cfg, "--line", "2", "--col", "5", "--fix", "1")
	require.NoError(t, err)
	assert.Contains(t, output, "3:15")
	assert.Equal(t, fixedChild, readFile(t, child))
}

func TestIntegration_ApplyJSON(t *testing.T) {
	t.Parallel()

	dir, cfg := newProject(t, "")
	main := filepath.Join(dir, "Main.java")

	output, err := execute(t, "apply", main, "--config", cfg, "--line", "2", "--col", "30", "--format", "json")
	require.NoError(t, err)

	var offer struct {
		Fixes []struct {
			Index int    `json:"index"`
			Label string `json:"label"`
		} `json:"fixes"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &offer))
	require.Len(t, offer.Fixes, 1)
	assert.Equal(t, "Insert new", offer.Fixes[0].Label)

	_, err = execute(t, "apply", main, "--config", cfg, "--line", "2", "--col", "30", "--fix", "2")
	require.Error(t, err)

	_, err = execute(t, "apply", main, "--config", cfg, "--line", "2", "--format", "yaml")
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestIntegration_Comment(t *testing.T) {
	t.Parallel()

	dir, cfg := newProject(t, "")
	child := filepath.Join(dir, "Child.java")

	_, err := execute(t, "comment", child, "--config", cfg, "--from", "2", "--to", "3", "--no-backups")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, child), "    // Child() {\n    // }\n")

	_, err = execute(t, "comment", child, "--config", cfg, "--from", "2", "--to", "3", "--no-backups")
	require.NoError(t, err)
	assert.Equal(t, childSource, readFile(t, child))
}

func TestIntegration_Tree(t *testing.T) {
	t.Parallel()

	dir, cfg := newProject(t, "")

	output, err := execute(t, "tree", "--config", cfg, "--counts", dir)
	require.NoError(t, err)
	assert.Contains(t, output, filepath.Base(dir))
	assert.Contains(t, output, "Child.java (1)")
	assert.Contains(t, output, "▌")

	output, err = execute(t, "tree", "--config", cfg, "--search", "Chi", dir)
	require.NoError(t, err)
	assert.Contains(t, output, "│   └── Child\n", "the class inside Child.java is revealed")

	_, err = execute(t, "tree", "--config", cfg, "--expand", "../outside", dir)
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestIntegration_Inspections(t *testing.T) {
	t.Parallel()

	output, err := execute(t, "inspections", "--format", "json")
	require.NoError(t, err)

	var infos []struct {
		ID    string   `json:"id"`
		Name  string   `json:"name"`
		Fixes []string `json:"fixes"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, "JF001", infos[0].ID)
	assert.Equal(t, "missing-super-call", infos[0].Name)
	assert.Equal(t, "call-to-class-name", infos[1].Name)
}

func TestIntegration_SummaryFormat(t *testing.T) {
	t.Parallel()

	dir, cfg := newProject(t, "")

	tests := []struct {
		order string
		first string
		then  string
	}{
		{"inspections", "Inspections Summary", "Files Summary"},
		{"files", "Files Summary", "Inspections Summary"},
	}

	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			t.Parallel()

			output, err := execute(t, "check", "--config", cfg, "--format", "summary", "--summary-order", tt.order, dir)
			require.ErrorIs(t, err, cli.ErrProblemsFound)

			first := bytes.Index([]byte(output), []byte(tt.first))
			then := bytes.Index([]byte(output), []byte(tt.then))
			require.GreaterOrEqual(t, first, 0)
			require.GreaterOrEqual(t, then, 0)
			assert.Less(t, first, then)
			assert.Contains(t, output, "Total:")
		})
	}
}
