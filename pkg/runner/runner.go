package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/javafix/internal/logging"
	"github.com/yaklabco/javafix/pkg/inspect"
	"github.com/yaklabco/javafix/pkg/project"
)

// Runner processes the Java files of a project through an inspect.Pipeline.
type Runner struct {
	Project  *project.Project
	Pipeline *inspect.Pipeline
}

// New creates a Runner. The pipeline's engine resolves classes through the
// project's index and its fixes are limited to the project's scope.
func New(proj *project.Project, registry *inspect.Registry) *Runner {
	engine := inspect.NewEngine(registry, proj.Index())
	engine.Parser = proj.Parser()
	return &Runner{
		Project:  proj,
		Pipeline: inspect.NewPipeline(engine, proj.Scope),
	}
}

// Run indexes the project, then processes the files under opts.Paths
// concurrently. Outcomes are ordered by path whatever order workers finish
// in.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	if _, err := r.Project.Load(ctx); err != nil {
		return nil, err
	}
	files, err := r.Project.Discover(ctx, opts.Paths...)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("files discovered",
		logging.FieldRoot, r.Project.Root(),
		logging.FieldFilesDiscovered, len(files),
	)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	pipelineOpts := inspect.PipelineOptionsFromConfig(opts.Config, opts.Fix)

	outcomes := make([]FileOutcome, len(files))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcome := FileOutcome{Path: path}
			outcome.Result, outcome.Error = r.Pipeline.ProcessFile(gctx, path, opts.Config, pipelineOpts)
			if outcome.Error != nil {
				logger.Debug("file failed", logging.FieldPath, path, logging.FieldError, outcome.Error)
			}
			outcomes[i] = outcome
			return nil
		})
	}
	waitErr := group.Wait()

	for _, outcome := range outcomes {
		if outcome.Path != "" {
			result.accumulate(outcome)
		}
	}

	if waitErr != nil {
		return result, fmt.Errorf("run cancelled: %w", waitErr)
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldProblemsTotal, result.Stats.ProblemsTotal,
		logging.FieldFixesApplied, result.Stats.FixesApplied,
	)
	return result, nil
}
