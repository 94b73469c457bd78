// Package quickfix defines the fix action contract: small, user-invocable
// edits offered against a document, with availability checks, single-use
// invocation and caret placement.
package quickfix

import (
	"context"

	"github.com/yaklabco/javafix/pkg/editor"
)

// Action is a quick-fix offered to the user.
type Action interface {
	// Text is the user-facing label.
	Text() string

	// FamilyName groups related fixes, for example to apply all of a kind.
	FamilyName() string

	// IsAvailable reports whether the fix can run right now. It must be
	// cheap and free of side effects.
	IsAvailable(qc *Context) bool

	// Invoke performs the fix. When StartInWriteAction is true the host has
	// opened a write action and qc.Tx is set; the action must make all its
	// edits and caret moves through it.
	Invoke(ctx context.Context, qc *Context) error

	// StartInWriteAction reports whether the host must wrap Invoke in a
	// write action.
	StartInWriteAction() bool
}

// Scope decides whether a file belongs to the project.
type Scope interface {
	Contains(path string) bool
}

// Context is the editing context a fix is queried and invoked against.
type Context struct {
	// Editor is the editor the fix applies to.
	Editor *editor.Editor

	// Scope limits fixes to project files. Nil means every file is in scope.
	Scope Scope

	// Tx is the running write action during Invoke, nil otherwise.
	Tx *editor.Transaction
}

// NewContext creates a context for ed.
func NewContext(ed *editor.Editor, scope Scope) *Context {
	return &Context{Editor: ed, Scope: scope}
}

// Document returns the edited document.
func (qc *Context) Document() *editor.Document {
	return qc.Editor.Document()
}

// InScope reports whether the edited document is part of the project.
func (qc *Context) InScope() bool {
	return qc.Scope == nil || qc.Scope.Contains(qc.Document().Path())
}

// CheckTarget validates the common preconditions of a fix on ptr: the
// document is writable and in scope, and the pointer still resolves.
//
// Inside a write action the document lock is already held and writability
// was checked when it was taken, so only scope and the staged pointer are
// checked.
func (qc *Context) CheckTarget(ptr *editor.ElementPointer) error {
	if ptr == nil || ptr.Document() != qc.Document() {
		return ErrStaleTarget
	}
	if !qc.InScope() {
		return ErrMutationRejected
	}
	if qc.Tx != nil {
		if _, ok := qc.Tx.Resolve(ptr); !ok {
			return ErrStaleTarget
		}
		return nil
	}
	if !qc.Document().IsWritable() {
		return ErrMutationRejected
	}
	if !ptr.IsValid() {
		return ErrStaleTarget
	}
	return nil
}
