package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/javafix/internal/logging"
	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/reporter"
	"github.com/yaklabco/javafix/pkg/runner"
)

// Errors signalling the exit code of a run.
var (
	// ErrProblemsFound is returned when error-severity problems remain.
	ErrProblemsFound = errors.New("problems found")

	// ErrWarningsFound is returned in strict mode when warnings remain.
	ErrWarningsFound = errors.New("warnings found")
)

type checkFlags struct {
	format           string
	ignore           []string
	enable           []string
	disable          []string
	families         []string
	strict           bool
	noContext        bool
	compact          bool
	stats            bool
	inspectionFormat string
	summaryOrder     string
}

func newCheckCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report problems and the quick-fixes offered for them",
		Long: `Inspect Java files and report the problems found together with the
quick-fixes each problem offers. Nothing is written.

By default every .java file of the project containing the working directory
is inspected. Specify paths to inspect specific files or directories.`,
		Example: `  javafix check                     # Inspect the whole project
  javafix check src/main/java       # Inspect one directory
  javafix check --format sarif      # Output SARIF for code scanning
  javafix check --strict            # Fail on warnings too`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, &cfg, flags, info, false)
		},
	}

	addReportFlags(cmd, &cfg, flags)
	return cmd
}

func newFixCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Apply quick-fixes until the files are stable",
		Long: `Inspect Java files and apply the offered quick-fixes in passes until no
fix applies or the pass limit is reached. Files are written atomically and
a sidecar backup is kept unless backups are disabled.`,
		Example: `  javafix fix                                   # Fix the whole project
  javafix fix --dry-run                         # Show the diff only
  javafix fix --family "Insert new" src/        # Apply one fix family`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DryRun && !cmd.Flags().Changed("format") {
				flags.format = string(config.FormatDiff)
			}
			return runInspect(cmd, args, &cfg, flags, info, true)
		},
	}

	addReportFlags(cmd, &cfg, flags)
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes as a diff without writing files")
	cmd.Flags().StringSliceVar(&flags.families, "family", nil, "limit fixing to these fix families")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation")
	cmd.Flags().IntVar(&cfg.Fixes.MaxPasses, "max-passes", 0, "bound on fix passes per file (0 = configured default)")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *checkFlags, info BuildInfo, fix bool) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	cliCfg.Format = config.OutputFormat(flags.format)
	cliCfg.InspectionFormat = config.InspectionFormat(flags.inspectionFormat)
	cliCfg.Ignore = flags.ignore
	cliCfg.EnableInspections = flags.enable
	cliCfg.DisableInspections = flags.disable
	if len(flags.families) > 0 {
		cliCfg.Fixes.Families = flags.families
	}

	paths, err := absPaths(args)
	if err != nil {
		return err
	}

	sess, err := openSession(cmd, paths, cliCfg)
	if err != nil {
		return err
	}
	cfg := sess.Config

	logger.Debug("starting run",
		logging.FieldPaths, paths,
		logging.FieldRoot, sess.Project.Root(),
		logging.FieldJobs, cfg.Jobs,
	)

	result, err := runner.New(sess.Project, sess.Engine.Registry).Run(ctx, runner.Options{
		Paths:  paths,
		Jobs:   cfg.Jobs,
		Fix:    fix,
		Config: cfg,
	})
	if err != nil {
		return errors.Join(errors.New("run failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:           cmd.OutOrStdout(),
		ErrorWriter:      cmd.ErrOrStderr(),
		Format:           format,
		Color:            colorMode,
		ShowContext:      !flags.noContext,
		ShowSummary:      true,
		DetailedSummary:  flags.stats,
		GroupByFile:      true,
		Compact:          flags.compact,
		InspectionFormat: cfg.InspectionFormat,
		SummaryOrder:     reporter.SummaryOrder(flags.summaryOrder),
		Registry:         sess.Engine.Registry,
		Version:          info.Version,
		WorkingDir:       sess.Project.Root(),
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, flags.strict) {
	case ExitProblemErrors:
		return ErrProblemsFound
	case ExitProblemWarnings:
		return ErrWarningsFound
	default:
		return nil
	}
}

func addReportFlags(cmd *cobra.Command, cfg *config.Config, flags *checkFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, diff, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to leave out of scope")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "inspection IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "inspection IDs or names to disable")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "print a detailed statistics block (text format)")
	cmd.Flags().StringVar(&flags.inspectionFormat, "inspection-format", "name",
		"inspection identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "inspections",
		"order of tables in summary output: inspections, files")
}
