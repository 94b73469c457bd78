package inspections

import (
	"fmt"

	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/inspect"
	"github.com/yaklabco/javafix/pkg/javatree"
	"github.com/yaklabco/javafix/pkg/quickfix"
	"github.com/yaklabco/javafix/pkg/quickfix/fixes"
)

// MissingSuperCall reports constructors that rely on an implicit super()
// call although the superclass has no constructor taking no arguments.
type MissingSuperCall struct {
	inspect.Base
}

// NewMissingSuperCall creates the missing-super-call inspection.
func NewMissingSuperCall() *MissingSuperCall {
	return &MissingSuperCall{
		Base: inspect.NewBase(
			"JF001",
			"missing-super-call",
			"Constructor does not call super(...) but the superclass has no default constructor",
			[]string{"constructor", "compile-error"},
			[]string{"Insert super constructor call"},
		),
	}
}

// DefaultSeverity returns error; javac rejects such constructors.
func (i *MissingSuperCall) DefaultSeverity() config.Severity {
	return config.SeverityError
}

// Check implements inspect.Inspection.
func (i *MissingSuperCall) Check(ic *inspect.Context) ([]inspect.Problem, error) {
	if ic.Index == nil {
		return nil, nil
	}

	var problems []inspect.Problem
	for _, class := range ic.File.Classes() {
		if ic.Cancelled() {
			return problems, fmt.Errorf("inspection cancelled: %w", ic.Ctx.Err())
		}
		if class.Superclass == "" || len(class.Constructors) == 0 {
			continue
		}

		super, ok := ic.Index.Resolve(ic.File, class.Superclass)
		if !ok || super.HasDefaultConstructor {
			continue
		}

		for _, ctor := range class.Constructors {
			if ctor.ExplicitCall || ctor.LBrace < 0 {
				continue
			}
			ptr := ic.Pointer(javatree.KindConstructor, ctor.Range)
			p := ic.Problem(ctor.Range,
				fmt.Sprintf("Constructor %s must call a constructor of %s: there is no default constructor available in %s",
					ctor.Name, super.Name, super.QualifiedName()),
				fixes.NewInsertSuper(ptr, ic.Messages),
			)
			p.Suggestion = ic.Messages.Get(quickfix.MsgInsertSuperText)
			problems = append(problems, p)
		}
	}
	return problems, nil
}
