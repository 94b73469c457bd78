package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/yaklabco/javafix/pkg/javatree"
)

// Editor is a view onto a document with a caret and selection.
type Editor struct {
	doc *Document

	mu        sync.Mutex
	caret     int
	selection javatree.Range
}

// NewEditor opens an editor on doc with the caret at offset 0.
func NewEditor(doc *Document) *Editor {
	return &Editor{doc: doc}
}

// Document returns the edited document.
func (e *Editor) Document() *Document {
	return e.doc
}

// Caret returns the caret offset.
func (e *Editor) Caret() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.caret
}

// CaretPosition returns the caret as 1-based line and column.
func (e *Editor) CaretPosition() (int, int) {
	return e.doc.File().LineAt(e.Caret())
}

// MoveCaret places the caret at offset and clears the selection.
func (e *Editor) MoveCaret(offset int) error {
	size := len(e.doc.Content())
	if offset < 0 || offset > size {
		return fmt.Errorf("caret offset %d outside [0, %d]", offset, size)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.caret = offset
	e.selection = javatree.Range{Start: offset, End: offset}
	return nil
}

// MoveCaretTo places the caret at a 1-based line and column.
func (e *Editor) MoveCaretTo(line, col int) error {
	offset, ok := e.doc.File().Offset(line, col)
	if !ok {
		return fmt.Errorf("position %d:%d outside document", line, col)
	}
	return e.MoveCaret(offset)
}

// Selection returns the selected range. It is empty at the caret when
// nothing is selected.
func (e *Editor) Selection() javatree.Range {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection
}

// Select selects r and moves the caret to its end.
func (e *Editor) Select(r javatree.Range) error {
	if err := e.MoveCaret(r.End); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection = r
	return nil
}

// Execute runs fn as a write action seeded with the editor's caret. On
// success the staged caret becomes the editor's caret.
func (e *Editor) Execute(ctx context.Context, name string, fn func(*Transaction) error) (*Command, error) {
	cmd, err := e.doc.WriteAction(ctx, name, e.Caret(), fn)
	if err != nil {
		return nil, err
	}
	e.setCaret(cmd.CaretAfter)
	return cmd, nil
}

// Undo reverts the last command as one step and restores the caret it
// started from.
func (e *Editor) Undo(ctx context.Context) error {
	cmd, err := e.doc.undoStep(ctx, false)
	if err != nil {
		return err
	}
	e.setCaret(cmd.CaretBefore)
	return nil
}

// Redo reapplies the last undone command.
func (e *Editor) Redo(ctx context.Context) error {
	cmd, err := e.doc.undoStep(ctx, true)
	if err != nil {
		return err
	}
	e.setCaret(cmd.CaretAfter)
	return nil
}

func (e *Editor) setCaret(offset int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.caret = offset
	e.selection = javatree.Range{Start: offset, End: offset}
}
