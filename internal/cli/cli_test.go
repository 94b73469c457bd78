package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/javafix/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "test", Commit: "test", Date: "test"}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)
	assert.Equal(t, "javafix", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, path := range [][]string{
		{"check"}, {"fix"}, {"apply"}, {"comment"}, {"restore"}, {"tree"},
		{"inspections"}, {"init"}, {"version"}, {"mcp", "serve"},
		{"config", "show"}, {"config", "validate"}, {"config", "env"},
	} {
		sub, _, err := cmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], sub.Name())
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command []string
		flags   []string
	}{
		{[]string{"check"}, []string{"format", "jobs", "ignore", "enable", "disable", "strict", "inspection-format", "summary-order"}},
		{[]string{"fix"}, []string{"format", "dry-run", "family", "no-backups", "max-passes"}},
		{[]string{"apply"}, []string{"line", "col", "fix", "dry-run", "format"}},
		{[]string{"comment"}, []string{"from", "to", "dry-run"}},
		{[]string{"tree"}, []string{"search", "expand", "depth", "all", "counts"}},
		{[]string{"mcp", "serve"}, []string{"path"}},
	}

	cmd := cli.NewRootCommand(testInfo())
	for _, tt := range tests {
		sub, _, err := cmd.Find(tt.command)
		require.NoError(t, err)
		for _, name := range tt.flags {
			assert.NotNil(t, sub.Flags().Lookup(name), "%v --%s", tt.command, name)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2024-01-01"})
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1.2.3")
	assert.Contains(t, out.String(), "abc123")
}

func TestHelpShowsExamples(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"apply", "--help", "--color", "never"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Examples:")
	assert.Contains(t, out.String(), "javafix apply Child.java --line 2 --col 5 --fix 1")
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"problems", cli.ErrProblemsFound, cli.ExitProblemErrors},
		{"warnings", cli.ErrWarningsFound, cli.ExitProblemWarnings},
		{"config", cli.ErrConfig, cli.ExitConfigError},
		{"usage", cli.ErrUsage, cli.ExitInvalidUsage},
		{"other", assert.AnError, cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromError(tt.err))
		})
	}

	assert.True(t, cli.IsSignal(cli.ErrProblemsFound))
	assert.False(t, cli.IsSignal(cli.ErrConfig))
}

func TestVersionCommand_Short(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2024-01-01"})
	cmd.SetArgs([]string{"version", "--short"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "1.2.3\n", out.String())
}

func TestHelpListsFlagsWithDefaults(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"check", "--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	help := out.String()
	assert.Contains(t, help, "Global Flags:")
	assert.Contains(t, help, "--inspection-format string")
	assert.Contains(t, help, "(default name)")
	assert.NotContains(t, help, "(default false)")
}
