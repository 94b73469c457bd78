// Package fixes holds the built-in quick-fixes.
package fixes

import (
	"context"
	"errors"
	"strings"

	"github.com/yaklabco/javafix/pkg/editor"
	"github.com/yaklabco/javafix/pkg/javatree"
	"github.com/yaklabco/javafix/pkg/quickfix"
)

// errNoWriteAction is returned when a fix that edits is invoked outside a
// write action.
var errNoWriteAction = errors.New("fix must run inside a write action")

// InsertSuper inserts "super();" as the first statement of a constructor.
type InsertSuper struct {
	ctor *editor.ElementPointer
	msgs *quickfix.Messages
}

var _ quickfix.Action = (*InsertSuper)(nil)

// NewInsertSuper creates the fix for the constructor ctor points at. A nil
// msgs uses English labels.
func NewInsertSuper(ctor *editor.ElementPointer, msgs *quickfix.Messages) *InsertSuper {
	if msgs == nil {
		msgs = quickfix.DefaultMessages()
	}
	return &InsertSuper{ctor: ctor, msgs: msgs}
}

// Text implements quickfix.Action.
func (f *InsertSuper) Text() string {
	return f.msgs.Get(quickfix.MsgInsertSuperText)
}

// FamilyName implements quickfix.Action.
func (f *InsertSuper) FamilyName() string {
	return f.msgs.Get(quickfix.MsgInsertSuperFamily)
}

// StartInWriteAction implements quickfix.Action.
func (f *InsertSuper) StartInWriteAction() bool {
	return true
}

// IsAvailable reports whether the constructor still exists, has a body with
// an opening brace and lives in a writable project file.
func (f *InsertSuper) IsAvailable(qc *quickfix.Context) bool {
	if qc.CheckTarget(f.ctor) != nil {
		return false
	}
	file, r, ok := f.ctor.Resolve()
	if !ok {
		return false
	}
	ctor, ok := file.Constructor(r)
	return ok && ctor.LBrace >= 0
}

// Invoke inserts the call on its own line after the body's opening brace and
// puts the caret just after the call's "(".
func (f *InsertSuper) Invoke(_ context.Context, qc *quickfix.Context) error {
	tx := qc.Tx
	if tx == nil {
		return errNoWriteAction
	}
	if err := qc.CheckTarget(f.ctor); err != nil {
		return err
	}

	r, _ := tx.Resolve(f.ctor)
	file := tx.File()
	ctor, ok := file.Constructor(r)
	if !ok || ctor.LBrace < 0 {
		return quickfix.ErrStaleTarget
	}

	newline := file.LineEnding()
	outer := file.IndentAt(ctor.Range.Start)
	indent := outer + file.IndentUnit()

	var text strings.Builder
	text.WriteString(newline)
	text.WriteString(indent)
	text.WriteString("super();")
	// A one-line body "{}" gets its closing brace moved to its own line.
	if closesOnSameLine(file, ctor.LBrace) {
		text.WriteString(newline)
		text.WriteString(outer)
	}

	if err := tx.Insert(ctor.LBrace+1, text.String()); err != nil {
		return err
	}

	callStart := ctor.LBrace + 1 + len(newline) + len(indent)
	call := tx.File().NodeStartingAt(javatree.KindExplicitConstructorInvoke, callStart)
	if call == nil {
		return quickfix.ErrInsertionPointLost
	}
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return quickfix.ErrInsertionPointLost
	}

	return tx.MoveCaret(int(args.StartByte()) + 1)
}

// closesOnSameLine reports whether only blanks separate the brace at lbrace
// from a closing brace on the same line.
func closesOnSameLine(file *javatree.File, lbrace int) bool {
	for i := lbrace + 1; i < len(file.Content); i++ {
		switch file.Content[i] {
		case ' ', '\t':
			continue
		case '}':
			return true
		default:
			return false
		}
	}
	return false
}
