package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/javafix/internal/configloader"
	"github.com/yaklabco/javafix/internal/logging"
	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/fsutil"
	"github.com/yaklabco/javafix/pkg/inspect/inspections"
)

func newInitCommand() *cobra.Command {
	var force, full bool
	var output string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .javafix.yml",
		Long: `Write a configuration file with the defaults into the current directory.
Edit it to switch inspections on or off, change their severity, or limit
fix to some fix families.`,
		Example: `  javafix init                       # minimal .javafix.yml
  javafix init --full                # document every inspection
  javafix init --output custom.yml   # write somewhere else`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				output = configloader.ProjectConfigFiles[0]
			}
			target, err := filepath.Abs(output)
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			logger := logging.NewInteractive()
			logger.SetOutput(cmd.ErrOrStderr())

			if _, err := os.Stat(target); err == nil {
				if !force {
					return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, output)
				}
				logger.Warn("overwriting existing file", logging.FieldPath, output)
			}

			opts := config.TemplateOptions{Full: full}
			if full {
				for _, insp := range inspections.NewRegistry().Inspections() {
					opts.Inspections = append(opts.Inspections, config.InspectionInfo{
						ID:          insp.ID(),
						Name:        insp.Name(),
						Description: insp.Description(),
						Enabled:     insp.DefaultEnabled(),
						Severity:    insp.DefaultSeverity(),
						Tags:        insp.Tags(),
						Fixes:       insp.FixFamilies(),
					})
				}
			}

			if err := fsutil.WriteAtomic(commandContext(cmd), target, config.GenerateTemplate(opts), fsutil.DefaultFileMode); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			logger.Info("created configuration file", logging.FieldPath, output)
			logger.Info("run 'javafix inspections' to list the available inspections")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&full, "full", false, "document every inspection in the file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default .javafix.yml)")

	return cmd
}
