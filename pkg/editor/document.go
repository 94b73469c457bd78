// Package editor holds open documents and the editing primitives quick-fixes
// run against: versioned content, element pointers, write actions, caret
// and undo.
package editor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/yaklabco/javafix/pkg/fix"
	"github.com/yaklabco/javafix/pkg/javatree"
)

// Sentinel errors for rejected document mutations.
var (
	// ErrReadOnly is returned when a write is attempted on a read-only document.
	ErrReadOnly = errors.New("document is read-only")

	// ErrClosed is returned when a closed document is used.
	ErrClosed = errors.New("document is closed")

	// ErrEditRejected is returned when staged edits fail validation.
	ErrEditRejected = errors.New("edit rejected")

	// ErrNothingToUndo is returned by Undo and Redo on an empty stack.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Parser produces a File snapshot from content. *javatree.Parser satisfies it.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*javatree.File, error)
}

// PlainParser builds Files without syntax trees, for non-Java documents.
type PlainParser struct{}

// Parse wraps content with javatree.Plain.
func (PlainParser) Parse(_ context.Context, path string, content []byte) (*javatree.File, error) {
	return javatree.Plain(path, content), nil
}

// revision is one applied step: sorted edits in the coordinates of the
// preceding version.
type revision struct {
	version int
	edits   []fix.TextEdit
}

// Document is an open, versioned source file. Its mutex is the scoped write
// permission: WriteAction holds it exclusively, readers take the shared side.
type Document struct {
	mu sync.RWMutex

	path     string
	parser   Parser
	file     *javatree.File
	version  int
	readOnly bool
	closed   bool
	history  []revision
	undo     *UndoManager
}

// NewDocument parses content and opens it as version 1.
func NewDocument(ctx context.Context, parser Parser, path string, content []byte) (*Document, error) {
	if parser == nil {
		parser = PlainParser{}
	}

	file, err := parser.Parse(ctx, path, content)
	if err != nil {
		return nil, err
	}

	return &Document{
		path:    path,
		parser:  parser,
		file:    file,
		version: 1,
		undo:    NewUndoManager(DefaultUndoLimit),
	}, nil
}

// Path returns the document's file path.
func (d *Document) Path() string {
	return d.path
}

// File returns the current parse. The snapshot is immutable and remains
// valid after later edits.
func (d *Document) File() *javatree.File {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.file
}

// Content returns the current text. Callers must not modify it.
func (d *Document) Content() []byte {
	return d.File().Content
}

// Version returns the current version. Every applied edit step increments it.
func (d *Document) Version() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// SetReadOnly toggles the read-only flag.
func (d *Document) SetReadOnly(readOnly bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.readOnly = readOnly
}

// IsWritable reports whether the document accepts writes.
func (d *Document) IsWritable() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return !d.readOnly && !d.closed
}

// Close marks the document closed. Pointers into it stop resolving.
func (d *Document) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}

// IsClosed reports whether Close was called.
func (d *Document) IsClosed() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.closed
}

// UndoManager returns the document's undo stack.
func (d *Document) UndoManager() *UndoManager {
	return d.undo
}

// Reload replaces the whole content, as when the file changed on disk.
// Every outstanding pointer is invalidated and the undo stack is cleared.
func (d *Document) Reload(ctx context.Context, content []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}

	file, err := d.parser.Parse(ctx, d.path, content)
	if err != nil {
		return err
	}

	edit := fix.TextEdit{StartOffset: 0, EndOffset: len(d.file.Content), NewText: string(content)}
	d.commit(file, [][]fix.TextEdit{{edit}})
	d.undo.Clear()
	return nil
}

// WriteAction runs fn under the write permission against a staged copy of
// the document. When fn returns nil the staged content becomes current and
// one undo entry named name is recorded; otherwise nothing changes.
func (d *Document) WriteAction(ctx context.Context, name string, caret int, fn func(*Transaction) error) (*Command, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrClosed
	}
	if d.readOnly {
		return nil, ErrReadOnly
	}

	tx := &Transaction{
		ctx:   ctx,
		doc:   d,
		base:  d.file,
		file:  d.file,
		caret: caret,
	}

	if err := fn(tx); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("write action %q: %w", name, err)
	}
	if len(tx.steps) == 0 {
		return &Command{Name: name, CaretBefore: caret, CaretAfter: tx.caret}, nil
	}

	cmd := &Command{
		Name:        name,
		Steps:       tx.steps,
		Inverse:     tx.inverse(),
		CaretBefore: caret,
		CaretAfter:  tx.caret,
	}
	d.commit(tx.file, tx.steps)
	d.undo.push(cmd)
	return cmd, nil
}

// apply replays steps outside a transaction (undo and redo).
func (d *Document) apply(ctx context.Context, steps [][]fix.TextEdit) error {
	content := d.file.Content
	for _, edits := range steps {
		content = fix.ApplyEdits(content, edits)
	}

	file, err := d.parser.Parse(ctx, d.path, content)
	if err != nil {
		return err
	}
	d.commit(file, steps)
	return nil
}

func (d *Document) commit(file *javatree.File, steps [][]fix.TextEdit) {
	for _, edits := range steps {
		d.version++
		d.history = append(d.history, revision{version: d.version, edits: slices.Clone(edits)})
	}
	d.file = file
}

// undoStep pops one command and applies its inverse. Callers hold no lock.
func (d *Document) undoStep(ctx context.Context, redo bool) (*Command, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrClosed
	}
	if d.readOnly {
		return nil, ErrReadOnly
	}

	var cmd *Command
	if redo {
		cmd = d.undo.popRedo()
	} else {
		cmd = d.undo.popUndo()
	}
	if cmd == nil {
		return nil, ErrNothingToUndo
	}

	steps := cmd.Inverse
	if redo {
		steps = cmd.Steps
	}
	if err := d.apply(ctx, steps); err != nil {
		// Put it back so the stacks stay consistent with the content.
		if redo {
			d.undo.pushRedo(cmd)
		} else {
			d.undo.pushUndo(cmd)
		}
		return nil, err
	}

	if redo {
		d.undo.pushUndo(cmd)
	} else {
		d.undo.pushRedo(cmd)
	}
	return cmd, nil
}

// changesSince returns the edit steps applied after version.
func (d *Document) changesSince(version int) [][]fix.TextEdit {
	idx, _ := slices.BinarySearchFunc(d.history, version+1, func(r revision, v int) int {
		return r.version - v
	})
	steps := make([][]fix.TextEdit, 0, len(d.history)-idx)
	for _, r := range d.history[idx:] {
		steps = append(steps, r.edits)
	}
	return steps
}
