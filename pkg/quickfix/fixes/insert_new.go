package fixes

import (
	"context"

	"github.com/yaklabco/javafix/pkg/editor"
	"github.com/yaklabco/javafix/pkg/fix"
	"github.com/yaklabco/javafix/pkg/javatree"
	"github.com/yaklabco/javafix/pkg/project"
	"github.com/yaklabco/javafix/pkg/quickfix"
)

// InsertNew turns a call that names a class, X(a, b), into the instance
// creation new X(a, b).
type InsertNew struct {
	call  *editor.ElementPointer
	class project.ClassInfo
	msgs  *quickfix.Messages
}

var _ quickfix.Action = (*InsertNew)(nil)

// NewInsertNew creates the fix for the method invocation call points at. A
// nil msgs uses English labels.
func NewInsertNew(call *editor.ElementPointer, class project.ClassInfo, msgs *quickfix.Messages) *InsertNew {
	if msgs == nil {
		msgs = quickfix.DefaultMessages()
	}
	return &InsertNew{call: call, class: class, msgs: msgs}
}

// Class returns the class the call will instantiate.
func (f *InsertNew) Class() project.ClassInfo {
	return f.class
}

// Text implements quickfix.Action.
func (f *InsertNew) Text() string {
	return f.msgs.Get(quickfix.MsgInsertNewText)
}

// FamilyName implements quickfix.Action.
func (f *InsertNew) FamilyName() string {
	return f.msgs.Get(quickfix.MsgInsertNewFamily)
}

// StartInWriteAction implements quickfix.Action.
func (f *InsertNew) StartInWriteAction() bool {
	return true
}

// IsAvailable reports whether the call still exists in a writable project
// file.
func (f *InsertNew) IsAvailable(qc *quickfix.Context) bool {
	return qc.CheckTarget(f.call) == nil
}

// Invoke replaces the call with a new expression that keeps the original
// argument list, importing the class when needed, and leaves the caret at
// the end of the new expression. Both edits form one step.
func (f *InsertNew) Invoke(_ context.Context, qc *quickfix.Context) error {
	tx := qc.Tx
	if tx == nil {
		return errNoWriteAction
	}
	if err := qc.CheckTarget(f.call); err != nil {
		return err
	}

	r, _ := tx.Resolve(f.call)
	file := tx.File()
	call, ok := file.Invocation(r)
	if !ok || call.Arguments.Len() == 0 {
		return quickfix.ErrStaleTarget
	}

	reference, importName := f.reference(file)
	expression := "new " + reference + file.Text(call.Arguments)

	edits := []fix.TextEdit{{StartOffset: r.Start, EndOffset: r.End, NewText: expression}}
	shift := 0
	if importName != "" {
		imp := importEdit(file, f.class.Package+"."+importName)
		edits = append(edits, imp)
		if imp.StartOffset <= r.Start {
			shift = len(imp.NewText)
		}
	}

	if err := tx.Apply(edits); err != nil {
		return err
	}

	created := javatree.Range{Start: r.Start + shift, End: r.Start + shift + len(expression)}
	if tx.File().FindNode(javatree.KindObjectCreation, created) == nil {
		return quickfix.ErrInsertionPointLost
	}
	return tx.MoveCaret(created.End)
}

// reference returns how file should name the class and, when an import is
// required, the simple name to import from the class's package.
func (f *InsertNew) reference(file *javatree.File) (string, string) {
	name, top := f.class.Name, f.class.Name
	if f.class.Outer != "" && f.class.Path != file.Path {
		name = f.class.Outer + "." + f.class.Name
		top = f.class.Outer
	}
	if f.class.Path == file.Path || file.ImportsClass(f.class.Package, top) {
		return name, ""
	}
	return name, top
}

// importEdit builds the insertion of "import qualified;" after the last
// import, after the package declaration, or at the top of the file.
func importEdit(file *javatree.File, qualified string) fix.TextEdit {
	newline := file.LineEnding()
	stmt := "import " + qualified + ";"

	if imports := file.Imports(); len(imports) > 0 {
		end := imports[len(imports)-1].Range.End
		return fix.TextEdit{StartOffset: end, EndOffset: end, NewText: newline + stmt}
	}
	if pkg, ok := file.PackageRange(); ok {
		return fix.TextEdit{StartOffset: pkg.End, EndOffset: pkg.End, NewText: newline + newline + stmt}
	}
	return fix.TextEdit{StartOffset: 0, EndOffset: 0, NewText: stmt + newline + newline}
}
