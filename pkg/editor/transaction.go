package editor

import (
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/javafix/pkg/fix"
	"github.com/yaklabco/javafix/pkg/javatree"
)

// Transaction is the staged state of a running WriteAction. Every edit is
// applied and re-parsed immediately, so File always reflects the edits made
// so far.
type Transaction struct {
	ctx  context.Context
	doc  *Document
	base *javatree.File
	file *javatree.File

	steps      [][]fix.TextEdit
	contents   [][]byte
	caret      int
	caretMoved bool
}

// Context returns the context the write action runs under.
func (tx *Transaction) Context() context.Context {
	return tx.ctx
}

// Document returns the document being edited.
func (tx *Transaction) Document() *Document {
	return tx.doc
}

// File returns the staged parse.
func (tx *Transaction) File() *javatree.File {
	return tx.file
}

// Caret returns the staged caret offset.
func (tx *Transaction) Caret() int {
	return tx.caret
}

// Replace replaces [start, end) with text.
func (tx *Transaction) Replace(start, end int, text string) error {
	return tx.Apply([]fix.TextEdit{{StartOffset: start, EndOffset: end, NewText: text}})
}

// Insert inserts text at offset.
func (tx *Transaction) Insert(offset int, text string) error {
	return tx.Replace(offset, offset, text)
}

// Delete removes [start, end).
func (tx *Transaction) Delete(start, end int) error {
	return tx.Replace(start, end, "")
}

// Apply applies a batch of edits, expressed in the staged coordinates, as one
// step and re-parses. An unmoved caret follows the text it sits in.
func (tx *Transaction) Apply(edits []fix.TextEdit) error {
	prepared, err := fix.PrepareEdits(edits, len(tx.file.Content))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEditRejected, err)
	}
	if len(prepared) == 0 {
		return nil
	}

	content := fix.ApplyEdits(tx.file.Content, prepared)
	file, err := tx.doc.parser.Parse(tx.ctx, tx.doc.path, content)
	if err != nil {
		return err
	}

	if !tx.caretMoved {
		tx.caret = fix.MapOffset(tx.caret, prepared, fix.BiasLeft)
	}
	tx.contents = append(tx.contents, tx.file.Content)
	tx.steps = append(tx.steps, prepared)
	tx.file = file
	return nil
}

// MoveCaret stages a caret position in the staged content.
func (tx *Transaction) MoveCaret(offset int) error {
	if offset < 0 || offset > len(tx.file.Content) {
		return fmt.Errorf("%w: caret offset %d outside [0, %d]", ErrEditRejected, offset, len(tx.file.Content))
	}
	tx.caret = offset
	tx.caretMoved = true
	return nil
}

// Resolve maps p into the staged state and returns the node range it points
// at, if the element survived.
func (tx *Transaction) Resolve(p *ElementPointer) (javatree.Range, bool) {
	if p == nil || p.doc != tx.doc {
		return javatree.Range{}, false
	}
	steps := append(tx.doc.changesSince(p.version), tx.steps...)
	return p.resolveIn(tx.file, steps)
}

// inverse returns the steps that undo this transaction, in application order.
func (tx *Transaction) inverse() [][]fix.TextEdit {
	inv := make([][]fix.TextEdit, 0, len(tx.steps))
	for i, edits := range slices.Backward(tx.steps) {
		inv = append(inv, fix.Invert(tx.contents[i], edits))
	}
	return inv
}
