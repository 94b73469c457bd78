package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/javafix/internal/ui/pretty"
	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/reporter"
	"github.com/yaklabco/javafix/pkg/session"
)

// ErrUsage marks invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

type applyFlags struct {
	line   int
	col    int
	fix    int
	dryRun bool
	format string
}

func newApplyCommand() *cobra.Command {
	var cfg config.Config
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply FILE --line L --col C [--fix N]",
		Short: "List or invoke the quick-fixes offered at a position",
		Long: `List the problems at a position of a Java file and the quick-fixes they
offer. With --fix, invoke the chosen fix, save the file and print the
resulting caret position as line:column.

Lines and columns are 1-based.`,
		Example: `  javafix apply Child.java --line 2 --col 5           # List fixes
  javafix apply Child.java --line 2 --col 5 --fix 1   # Invoke the first fix
  javafix apply Child.java -l 2 -c 5 --fix 1 --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args[0], &cfg, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.line, "line", "l", 0, "1-based line of the position")
	cmd.Flags().IntVarP(&flags.col, "col", "c", 1, "1-based column of the position")
	cmd.Flags().IntVar(&flags.fix, "fix", 0, "1-based index of the fix to invoke (0 lists fixes)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show the change as a diff without writing")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	_ = cmd.MarkFlagRequired("line")

	return cmd
}

func runApply(cmd *cobra.Command, file string, cliCfg *config.Config, flags *applyFlags) error {
	if flags.format != string(config.FormatText) && flags.format != string(config.FormatJSON) {
		return fmt.Errorf("%w: format %q: must be text or json", ErrUsage, flags.format)
	}

	paths, err := absPaths([]string{file})
	if err != nil {
		return err
	}

	sess, err := openSession(cmd, paths, cliCfg)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorFlag(cmd), out))

	if flags.fix == 0 {
		offer, err := sess.FixesAt(ctx, paths[0], flags.line, flags.col)
		if err != nil {
			return err
		}
		if flags.format == string(config.FormatJSON) {
			return writeJSON(out, offerJSON(sess, offer))
		}
		printOffer(out, styles, offer, sess.Config.InspectionFormat)
		return nil
	}

	change, err := sess.Apply(ctx, paths[0], flags.line, flags.col, flags.fix, session.ApplyOptions{DryRun: flags.dryRun})
	if err != nil {
		return err
	}
	return printChange(cmd, styles, sess, change, flags.format)
}

func printOffer(w io.Writer, styles *pretty.Styles, offer *session.Offer, format config.InspectionFormat) {
	if len(offer.Problems) == 0 {
		fmt.Fprintln(w, styles.Dim.Render("no problems at this position"))
		return
	}

	for i := range offer.Problems {
		p := &offer.Problems[i]
		fmt.Fprint(w, styles.FormatProblem(p, false, "", format))
	}

	if len(offer.Fixes) == 0 {
		fmt.Fprintln(w, styles.Dim.Render("no quick-fixes available"))
		return
	}
	fmt.Fprintln(w)
	for _, f := range offer.Fixes {
		fmt.Fprintf(w, "  %s %s %s\n",
			styles.Bold.Render(fmt.Sprintf("%d.", f.Index)),
			f.Label,
			styles.Dim.Render("("+f.Family+")"),
		)
	}
}

// changeJSON is the JSON form of an applied change.
type changeJSON struct {
	File          string `json:"file"`
	Label         string `json:"label"`
	Family        string `json:"family,omitempty"`
	Line          int    `json:"line"`
	Column        int    `json:"column"`
	Written       bool   `json:"written"`
	BackupCreated bool   `json:"backupCreated"`
	Diff          string `json:"diff,omitempty"`
}

// fixJSON is the JSON form of an offered fix.
type fixJSON struct {
	Index        int    `json:"index"`
	Label        string `json:"label"`
	Family       string `json:"family"`
	InspectionID string `json:"inspectionId"`
}

type offerJSONOutput struct {
	File     string    `json:"file"`
	Problems []string  `json:"problems"`
	Fixes    []fixJSON `json:"fixes"`
}

func offerJSON(sess *session.Session, offer *session.Offer) offerJSONOutput {
	out := offerJSONOutput{
		File:     relPath(sess, offer.Path),
		Problems: make([]string, 0, len(offer.Problems)),
		Fixes:    make([]fixJSON, 0, len(offer.Fixes)),
	}
	for _, p := range offer.Problems {
		out.Problems = append(out.Problems, fmt.Sprintf("%s: %s", p.InspectionID, p.Message))
	}
	for _, f := range offer.Fixes {
		out.Fixes = append(out.Fixes, fixJSON{
			Index:        f.Index,
			Label:        f.Label,
			Family:       f.Family,
			InspectionID: f.Problem.InspectionID,
		})
	}
	return out
}

// printChange reports an edit made through the session: the diff on a dry
// run, then the caret position.
func printChange(cmd *cobra.Command, styles *pretty.Styles, sess *session.Session, change *session.Change, format string) error {
	out := cmd.OutOrStdout()

	if format == string(config.FormatJSON) {
		c := changeJSON{
			File:          relPath(sess, change.Path),
			Label:         change.Label,
			Family:        change.Family,
			Line:          change.Line,
			Column:        change.Column,
			Written:       change.Written,
			BackupCreated: change.BackupCreated,
		}
		if change.Diff != nil && change.Diff.HasChanges() {
			c.Diff = change.Diff.String()
		}
		return writeJSON(out, c)
	}

	if !change.Written {
		reporter.NewDiffReporter(reporter.Options{
			Writer:     out,
			Color:      colorFlag(cmd),
			WorkingDir: sess.Project.Root(),
		}).WriteDiff(change.Diff)
	}

	fmt.Fprintf(out, "%s %s\n", styles.Success.Render(change.Label), styles.Location.Render(fmt.Sprintf("%d:%d", change.Line, change.Column)))
	return nil
}

func relPath(sess *session.Session, path string) string {
	if rel, ok := sess.Project.Rel(path); ok {
		return rel
	}
	return path
}

func colorFlag(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
