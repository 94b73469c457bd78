package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/javafix/internal/logging"
	"github.com/yaklabco/javafix/internal/mcpserver"
	"github.com/yaklabco/javafix/pkg/config"
)

func newMCPCommand(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Model Context Protocol server",
	}
	cmd.AddCommand(newMCPServeCommand(info))
	return cmd
}

func newMCPServeCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	var path string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve quick-fixes over MCP on stdio",
		Long: `Start an MCP server on stdin/stdout exposing the project's quick-fixes.

Tools:
  javafix_list_fixes   problems and fixes offered at a file position
  javafix_apply_fix    invoke a fix and return the new caret position
  javafix_check        inspect files and return problems as JSON

Logs go to stderr so they never mix with the protocol stream.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var paths []string
			if path != "" {
				paths = []string{path}
			}
			abs, err := absPaths(paths)
			if err != nil {
				return err
			}

			sess, err := openSession(cmd, abs, &cfg)
			if err != nil {
				return err
			}

			logging.Default().Info("mcp server starting",
				logging.FieldTransport, "stdio",
				logging.FieldRoot, sess.Project.Root(),
				logging.FieldVersion, info.Version,
			)
			return mcpserver.Serve(sess, info.Version)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "project directory (default: working directory)")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation")

	return cmd
}
