package cli

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/javafix/internal/configloader"
	"github.com/yaklabco/javafix/internal/logging"
	"github.com/yaklabco/javafix/internal/ui/pretty"
	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/inspect/inspections"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate javafix configuration",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newConfigShowCommand(), newConfigValidateCommand(), newConfigEnvCommand())
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var write string

	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Print the effective configuration",
		Long: `Resolve the configuration the way check and fix do, from the defaults,
the system, user and project files, JAVAFIX_* variables and --config, and
print the result as YAML. The files that contributed are logged to stderr.`,
		Example: `  javafix config show
  javafix config show src/main/java      # resolve from another directory
  javafix config show --write merged.yml # save the result`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := absPaths(args)
			if err != nil {
				return err
			}
			start, err := projectStart(paths)
			if err != nil {
				return err
			}
			explicit, err := cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("get config flag: %w", err)
			}

			result, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
				WorkingDir:   start,
				ExplicitPath: explicit,
				Registry:     inspections.NewRegistry(),
			})
			if err != nil {
				return errors.Join(ErrConfig, err)
			}

			logger := logging.NewInteractive()
			logger.SetOutput(cmd.ErrOrStderr())
			for _, path := range result.LoadedFrom {
				logger.Info("loaded", logging.FieldPath, path)
			}
			for _, warning := range result.Warnings {
				logger.Warn(warning)
			}

			if write != "" {
				if err := configloader.WriteConfig(result.Config, write); err != nil {
					return err
				}
				logger.Info("wrote configuration", logging.FieldPath, write)
				return nil
			}

			content, err := result.Config.ToYAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(content)
			return err
		},
	}

	cmd.Flags().StringVar(&write, "write", "", "write the configuration to this file instead of printing it")

	return cmd
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a configuration file for mistakes",
		Long: `Report invalid values in a configuration file, and settings that would be
ignored such as unknown inspections or fix families. Exits with the
configuration error status when the file has errors.`,
		Example: `  javafix config validate .javafix.yml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("%w: %w", ErrUsage, err)
			}
			cfg, err := config.FromYAML(content)
			if err != nil {
				return errors.Join(ErrConfig, fmt.Errorf("%s: %w", args[0], err))
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled(colorFlag(cmd), cmd.OutOrStdout()))
			result := configloader.ValidateWithFile(cfg, args[0])
			for _, msg := range result.AllMessages() {
				fmt.Fprintln(cmd.OutOrStdout(), msg)
			}

			switch {
			case !result.Valid():
				return errors.Join(ErrConfig, result.Err())
			case result.HasWarnings():
				fmt.Fprintln(cmd.OutOrStdout(), styles.Warning.Render("valid, with warnings"))
			default:
				fmt.Fprintln(cmd.OutOrStdout(), styles.Success.Render("valid"))
			}
			return nil
		},
	}
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env [field...]",
		Short: "List the JAVAFIX_* environment variables",
		Long: `List every environment variable javafix reads, or with arguments the
variable that sets each named configuration field.`,
		Example: `  javafix config env
  javafix config env fixes.max_passes   # prints JAVAFIX_MAX_PASSES`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) > 0 {
				for _, field := range args {
					name := configloader.GetEnvVarName(field)
					if name == "" {
						return fmt.Errorf("%w: no environment variable sets %q", ErrUsage, field)
					}
					fmt.Fprintln(out, name)
				}
				return nil
			}

			vars := configloader.ListEnvVars()
			width := 0
			for name := range vars {
				width = max(width, len(name))
			}
			for _, name := range slices.Sorted(maps.Keys(vars)) {
				fmt.Fprintf(out, "%-*s  %s\n", width, name, vars[name])
			}
			return nil
		},
	}
}
