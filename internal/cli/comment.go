package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/javafix/internal/ui/pretty"
	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/session"
)

type commentFlags struct {
	from   int
	to     int
	dryRun bool
	format string
}

func newCommentCommand() *cobra.Command {
	var cfg config.Config
	flags := &commentFlags{}

	cmd := &cobra.Command{
		Use:   "comment FILE --from L [--to L]",
		Short: "Toggle line comments on a range of lines",
		Long: `Comment out lines --from through --to of a file, or uncomment them when
every non-blank line is already commented. The comment syntax follows the
language of the file.`,
		Example: `  javafix comment Child.java --from 2 --to 3
  javafix comment scripts/build.py --from 1 --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.to == 0 {
				flags.to = flags.from
			}
			paths, err := absPaths(args)
			if err != nil {
				return err
			}

			sess, err := openSession(cmd, paths, &cfg)
			if err != nil {
				return err
			}

			change, err := sess.ToggleComment(commandContext(cmd), paths[0], flags.from, flags.to,
				session.ApplyOptions{DryRun: flags.dryRun})
			if err != nil {
				return err
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled(colorFlag(cmd), cmd.OutOrStdout()))
			return printChange(cmd, styles, sess, change, flags.format)
		},
	}

	cmd.Flags().IntVar(&flags.from, "from", 0, "first 1-based line")
	cmd.Flags().IntVar(&flags.to, "to", 0, "last 1-based line (default: --from)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show the change as a diff without writing")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}
