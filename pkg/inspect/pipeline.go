package inspect

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/javafix/internal/logging"
	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/editor"
	"github.com/yaklabco/javafix/pkg/fix"
	"github.com/yaklabco/javafix/pkg/fsutil"
	"github.com/yaklabco/javafix/pkg/quickfix"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParseFailure indicates the source could not be parsed.
	ErrParseFailure = errors.New("parse failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// PipelineResult is the outcome of processing one file.
type PipelineResult struct {
	// DocumentResult holds the problems of the final document version.
	*DocumentResult

	Path string

	// OriginalInfo is the file state before processing; nil for in-memory
	// content.
	OriginalInfo *fsutil.FileInfo

	// Modified is true if fixes changed the content.
	Modified bool

	// ModifiedContent is the fixed content (nil if not modified).
	ModifiedContent []byte

	// Diff is set in dry-run mode when the content changed.
	Diff *fix.Diff

	// Skipped is true if the result was not written, e.g. because the file
	// changed on disk meanwhile.
	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool

	// FixPasses counts the passes that applied at least one fix.
	FixPasses int

	// FixesApplied is the number of fixes applied across all passes.
	FixesApplied int

	// FixFailures holds the errors of fixes that were attempted and failed.
	FixFailures []error
}

// Summary returns a short human-readable description of the outcome.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.DocumentResult != nil && pr.HasProblems():
		return "problems found"
	default:
		return "ok"
	}
}

// PipelineOptions controls pipeline behavior.
type PipelineOptions struct {
	// Fix applies offered fixes.
	Fix bool

	// DryRun produces a diff instead of writing.
	DryRun bool

	Backup fsutil.BackupConfig

	// MaxPasses bounds the inspect-then-fix loop. Zero means
	// config.DefaultMaxPasses.
	MaxPasses int

	// Families restricts which fix families may be applied. Empty allows all.
	Families []string
}

// DefaultPipelineOptions returns report-only options.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:    fsutil.DefaultBackupConfig(),
		MaxPasses: config.DefaultMaxPasses,
	}
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from cfg.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig builds options from cfg; fixMode turns fixing on.
func PipelineOptionsFromConfig(cfg *config.Config, fixMode bool) PipelineOptions {
	if cfg == nil {
		opts := DefaultPipelineOptions()
		opts.Fix = fixMode
		return opts
	}
	return PipelineOptions{
		Fix:       fixMode,
		DryRun:    cfg.DryRun,
		Backup:    BackupConfigFromConfig(cfg),
		MaxPasses: cfg.Fixes.MaxPasses,
		Families:  cfg.Fixes.Families,
	}
}

// Pipeline inspects files, applies fixes in passes, and writes the result
// back safely.
type Pipeline struct {
	Engine *Engine

	// Scope limits which files fixes may edit. Nil allows every file.
	Scope quickfix.Scope
}

// NewPipeline creates a pipeline over engine.
func NewPipeline(engine *Engine, scope quickfix.Scope) *Pipeline {
	return &Pipeline{Engine: engine, Scope: scope}
}

// ProcessFile runs the pipeline for a file on disk:
//  1. Read and snapshot the file.
//  2. Inspect, apply the first available fix of every problem, and repeat
//     until nothing applies or MaxPasses is reached.
//  3. In dry-run mode, produce a diff and stop.
//  4. Otherwise refuse if the file changed on disk, back it up, and write it
//     atomically.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, cfg *config.Config, opts PipelineOptions) (*PipelineResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, content, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !result.Modified || opts.DryRun {
		return result, nil
	}

	saved, err := fsutil.Save(ctx, info, result.ModifiedContent, opts.Backup)
	result.BackupCreated = saved.BackupCreated
	if errors.Is(err, fsutil.ErrModified) {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = saved.Written

	return result, nil
}

// ProcessContent runs the inspect and fix passes over in-memory content
// without touching the file system.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	doc, err := p.Engine.OpenDocument(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	result := &PipelineResult{Path: path}
	if err := p.FixDocument(ctx, doc, cfg, opts, result); err != nil {
		return nil, err
	}

	if result.FixesApplied == 0 {
		return result, nil
	}
	result.Modified = true
	result.ModifiedContent = doc.Content()

	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, content, result.ModifiedContent)
	}
	return result, nil
}

// FixDocument runs the inspect and fix passes on doc in place and records
// the outcome in result. Each pass asks for fresh fixes; within a pass, fixes
// whose target an earlier fix invalidated are no longer available and wait
// for the next pass.
func (p *Pipeline) FixDocument(
	ctx context.Context,
	doc *editor.Document,
	cfg *config.Config,
	opts PipelineOptions,
	result *PipelineResult,
) error {
	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = config.DefaultMaxPasses
	}

	logger := logging.FromContext(ctx)
	qc := quickfix.NewContext(editor.NewEditor(doc), p.Scope)

	for pass := 1; pass <= maxPasses; pass++ {
		inspected, err := p.Engine.InspectDocument(ctx, doc, cfg)
		if err != nil {
			return err
		}
		result.DocumentResult = inspected
		if !opts.Fix {
			return nil
		}

		applied := 0
		for i := range inspected.Problems {
			prob := &inspected.Problems[i]
			if !prob.autoFix || !prob.HasFix() {
				continue
			}
			offered := quickfix.FilterFamilies(quickfix.Offer(qc, prob.Fixes...), opts.Families)
			if len(offered) == 0 {
				continue
			}
			if _, err := offered[0].Invoke(ctx, qc); err != nil {
				result.FixFailures = append(result.FixFailures, err)
				continue
			}
			applied++
		}

		logger.Debug("fix pass",
			logging.FieldPath, doc.Path(),
			logging.FieldPass, pass,
			logging.FieldFixesApplied, applied,
		)
		if applied == 0 {
			return nil
		}
		result.FixPasses++
		result.FixesApplied += applied
	}

	// The last pass applied fixes; report on the final content.
	inspected, err := p.Engine.InspectDocument(ctx, doc, cfg)
	if err != nil {
		return err
	}
	result.DocumentResult = inspected
	return nil
}

// categorizeError wraps an error with the matching pipeline error type.
func categorizeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrWriteFailure)
}
