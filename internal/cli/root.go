// Package cli provides the Cobra command structure for javafix.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/javafix/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root javafix command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "javafix",
		Short: "Quick-fixes for Java sources, from the command line or over MCP",
		Long: `javafix inspects Java sources and offers quick-fixes for the problems it
finds: inserting a missing super() call into a constructor, or turning a
call to a class name into an instantiation with new.

Fixes can be listed and invoked one at a time at a caret position, applied
in bulk until the files are stable, or served to editors and agents over the
Model Context Protocol. Files are written atomically, never over changes
made on disk in the meantime, and a sidecar backup is kept by default.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newCheckCommand(info))
	rootCmd.AddCommand(newFixCommand(info))
	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newCommentCommand())
	rootCmd.AddCommand(newRestoreCommand())
	rootCmd.AddCommand(newTreeCommand())
	rootCmd.AddCommand(newInspectionsCommand())
	rootCmd.AddCommand(newMCPCommand(info))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
