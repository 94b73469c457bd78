package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/javafix/internal/logging"
	"github.com/yaklabco/javafix/internal/ui/pretty"
	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/fsutil"
)

func newRestoreCommand() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "restore [path...]",
		Short: "Restore files from the backups made by fix",
		Long: `Put back the content a file had before javafix first fixed it, from its
sidecar backup, and remove the backup. Directories are searched for backups
recursively; with no arguments the current directory is searched.`,
		Example: `  javafix restore                 # every backup under .
  javafix restore src/Child.java  # one file
  javafix restore --list          # show what would be restored`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			paths, err := absPaths(args)
			if err != nil {
				return err
			}

			start, err := projectStart(paths)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, start, &config.Config{})
			if err != nil {
				return err
			}
			mode := fsutil.BackupMode(cfg.Backups.Mode)

			ctx := commandContext(cmd)
			var originals []string
			for _, path := range paths {
				info, err := os.Stat(path)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrUsage, err)
				}
				if !info.IsDir() {
					originals = append(originals, path)
					continue
				}
				found, err := fsutil.FindBackups(ctx, path)
				if err != nil {
					return err
				}
				originals = append(originals, found...)
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled(colorFlag(cmd), cmd.OutOrStdout()))
			out := cmd.OutOrStdout()
			restored := 0
			for _, original := range originals {
				if list {
					if _, err := os.Stat(fsutil.BackupPath(original, mode)); err == nil {
						fmt.Fprintln(out, styles.FilePath.Render(original))
					}
					continue
				}
				ok, err := fsutil.RestoreBackup(ctx, original, mode)
				if err != nil {
					return err
				}
				if ok {
					restored++
					fmt.Fprintf(out, "%s %s\n", styles.Success.Render("restored"), styles.FilePath.Render(original))
				}
			}

			if !list {
				logging.Default().Debug("restore finished", logging.FieldFilesModified, restored)
				if restored == 0 {
					fmt.Fprintln(cmd.ErrOrStderr(), styles.Dim.Render("no backups found"))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list files with a backup without restoring them")

	return cmd
}
