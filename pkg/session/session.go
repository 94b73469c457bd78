// Package session hosts interactive editing over a project: it opens
// documents, offers the quick-fixes available at a position, invokes them
// and saves the result the same way the batch pipeline does.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yaklabco/javafix/internal/logging"
	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/editor"
	"github.com/yaklabco/javafix/pkg/fix"
	"github.com/yaklabco/javafix/pkg/fsutil"
	"github.com/yaklabco/javafix/pkg/inspect"
	"github.com/yaklabco/javafix/pkg/lang"
	"github.com/yaklabco/javafix/pkg/project"
	"github.com/yaklabco/javafix/pkg/quickfix"
	"github.com/yaklabco/javafix/pkg/runner"
)

// ErrNoSuchFix is returned when a fix is requested by an index that is not
// offered at the position.
var ErrNoSuchFix = errors.New("no such fix")

// Session is an editing session over one project. It is safe for
// concurrent use; edits are serialized.
type Session struct {
	Project *project.Project
	Engine  *inspect.Engine
	Config  *config.Config

	mu sync.Mutex
}

// Open opens the project containing start and indexes it.
func Open(ctx context.Context, start string, cfg *config.Config, registry *inspect.Registry) (*Session, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	proj, err := project.Open(start, cfg)
	if err != nil {
		return nil, err
	}
	if _, err := proj.Load(ctx); err != nil {
		return nil, err
	}

	engine := inspect.NewEngine(registry, proj.Index())
	engine.Parser = proj.Parser()

	return &Session{Project: proj, Engine: engine, Config: cfg}, nil
}

// Fix is a quick-fix offered at a position.
type Fix struct {
	// Index is the 1-based position of the fix in the offer list.
	Index  int
	Label  string
	Family string

	// Problem is the problem offering the fix.
	Problem inspect.Problem

	instance *quickfix.Instance
}

// Offer is the outcome of querying a position for fixes.
type Offer struct {
	Path string

	// Problems are the problems at the position.
	Problems []inspect.Problem

	// Fixes are the available fixes of those problems, in order.
	Fixes []Fix

	doc *project.OpenDocument
	qc  *quickfix.Context
}

// FixesAt inspects path and returns the fixes available at the 1-based line
// and column.
func (s *Session) FixesAt(ctx context.Context, path string, line, col int) (*Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fixesAt(ctx, path, line, col)
}

func (s *Session) fixesAt(ctx context.Context, path string, line, col int) (*Offer, error) {
	doc, err := s.Project.OpenDocument(ctx, path)
	if err != nil {
		return nil, err
	}

	ed := editor.NewEditor(doc.Document)
	if err := ed.MoveCaretTo(line, col); err != nil {
		return nil, err
	}

	result, err := s.Engine.InspectDocument(ctx, doc.Document, s.Config)
	if err != nil {
		return nil, err
	}

	offer := &Offer{
		Path:     doc.Path(),
		Problems: inspect.ProblemsAt(result, ed.Caret()),
		doc:      doc,
		qc:       quickfix.NewContext(ed, s.Project.Scope),
	}
	for _, problem := range offer.Problems {
		for _, inst := range quickfix.Offer(offer.qc, problem.Fixes...) {
			offer.Fixes = append(offer.Fixes, Fix{
				Index:    len(offer.Fixes) + 1,
				Label:    inst.Text(),
				Family:   inst.FamilyName(),
				Problem:  problem,
				instance: inst,
			})
		}
	}
	return offer, nil
}

// ApplyOptions controls Apply and ToggleComment.
type ApplyOptions struct {
	// DryRun computes the change and its diff but leaves the file and the
	// open document untouched.
	DryRun bool
}

// Change describes an edit made through the session.
type Change struct {
	Path string

	// Label names the command that ran.
	Label  string
	Family string

	// Line and Column are the 1-based caret position after the edit.
	Line   int
	Column int

	Diff *fix.Diff

	Written       bool
	BackupCreated bool
}

// Apply invokes fix number n (1-based) of those offered at line:col and
// saves the file.
func (s *Session) Apply(ctx context.Context, path string, line, col, n int, opts ApplyOptions) (*Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offer, err := s.fixesAt(ctx, path, line, col)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(offer.Fixes) {
		return nil, fmt.Errorf("%w: %d (%d offered at %d:%d)", ErrNoSuchFix, n, len(offer.Fixes), line, col)
	}
	chosen := offer.Fixes[n-1]

	original := offer.doc.Content()
	if _, err := chosen.instance.Invoke(ctx, offer.qc); err != nil {
		return nil, err
	}

	change := &Change{Path: offer.Path, Label: chosen.Label, Family: chosen.Family}
	if err := s.finish(ctx, offer.doc, offer.qc.Editor, original, change, opts); err != nil {
		return nil, err
	}
	return change, nil
}

// ToggleComment comments out lines from..to of path, or uncomments them
// when they are all commented, using the commenter of the file's language.
func (s *Session) ToggleComment(ctx context.Context, path string, from, to int, opts ApplyOptions) (*Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Project.OpenDocument(ctx, path)
	if err != nil {
		return nil, err
	}

	content := doc.Content()
	language := lang.Detect(doc.Path(), content)
	commenter, ok := lang.CommenterFor(language)
	if !ok {
		return nil, fmt.Errorf("toggle comment in %s: no commenter for language %q", path, language)
	}

	ed := editor.NewEditor(doc.Document)
	cmd, err := editor.ToggleLineComment(ctx, ed, commenter, from, to)
	if err != nil {
		return nil, err
	}

	change := &Change{Path: doc.Path(), Label: cmd.Name}
	if err := s.finish(ctx, doc, ed, content, change, opts); err != nil {
		return nil, err
	}
	return change, nil
}

// finish records the caret and diff of an edit already made to doc, then
// either rolls it back (dry run or failed save) or writes the file.
func (s *Session) finish(
	ctx context.Context,
	doc *project.OpenDocument,
	ed *editor.Editor,
	original []byte,
	change *Change,
	opts ApplyOptions,
) error {
	logger := logging.FromContext(ctx)

	change.Line, change.Column = ed.CaretPosition()
	change.Diff = fix.GenerateDiff(change.Path, original, doc.Content())
	s.Project.Reindex(doc.Document)

	rollback := func() {
		if err := ed.Undo(ctx); err != nil {
			logger.Warn("rollback failed", logging.FieldPath, change.Path, logging.FieldError, err)
			s.Project.CloseDocument(change.Path)
			return
		}
		s.Project.Reindex(doc.Document)
	}

	if opts.DryRun || !change.Diff.HasChanges() {
		if change.Diff.HasChanges() {
			rollback()
		}
		return nil
	}

	saved, err := fsutil.Save(ctx, doc.Info, doc.Content(), inspect.BackupConfigFromConfig(s.Config))
	change.BackupCreated = saved.BackupCreated
	if err != nil {
		rollback()
		return fmt.Errorf("%w: %w", inspect.ErrWriteFailure, err)
	}
	change.Written = saved.Written

	// Later saves compare against what was just written.
	if _, info, err := fsutil.ReadFile(ctx, doc.Path()); err == nil {
		doc.Info = info
	}

	logger.Debug("change saved",
		logging.FieldPath, change.Path,
		logging.FieldLabel, change.Label,
		logging.FieldLine, change.Line,
		logging.FieldColumn, change.Column,
	)
	return nil
}

// Check runs the inspections over paths, or the whole project when paths is
// empty, without fixing anything.
func (s *Session) Check(ctx context.Context, paths ...string) (*runner.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := runner.New(s.Project, s.Engine.Registry)
	return r.Run(ctx, runner.Options{
		Paths:  paths,
		Jobs:   s.Config.Jobs,
		Config: s.Config,
	})
}
