package inspections

import (
	"fmt"

	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/inspect"
	"github.com/yaklabco/javafix/pkg/javatree"
	"github.com/yaklabco/javafix/pkg/quickfix"
	"github.com/yaklabco/javafix/pkg/quickfix/fixes"
)

// CallToClassName reports unqualified method calls such as Point(1, 2) whose
// name is not a method in scope but a class, i.e. a missing "new".
type CallToClassName struct {
	inspect.Base
}

// NewCallToClassName creates the call-to-class-name inspection.
func NewCallToClassName() *CallToClassName {
	return &CallToClassName{
		Base: inspect.NewBase(
			"JF002",
			"call-to-class-name",
			"Method call names a class; 'new' is probably missing",
			[]string{"expression", "compile-error"},
			[]string{"Insert new"},
		),
	}
}

// DefaultSeverity returns error; javac cannot resolve such calls.
func (i *CallToClassName) DefaultSeverity() config.Severity {
	return config.SeverityError
}

// Check implements inspect.Inspection. With the "check_arity" option (on by
// default) a call is only reported when some constructor of the class
// accepts its argument count.
func (i *CallToClassName) Check(ic *inspect.Context) ([]inspect.Problem, error) {
	if ic.Index == nil {
		return nil, nil
	}

	checkArity := ic.OptionBool("check_arity", true)
	classes := make(map[string]javatree.ClassDecl)
	for _, c := range ic.File.Classes() {
		classes[c.Name] = c
	}

	var problems []inspect.Problem
	for _, call := range ic.File.Invocations() {
		if ic.Cancelled() {
			return problems, fmt.Errorf("inspection cancelled: %w", ic.Ctx.Err())
		}
		if call.Qualified || call.Name == "" || call.Arguments.Len() == 0 {
			continue
		}
		if methodInScope(ic.File, classes, call) {
			continue
		}

		info, ok := ic.Index.Resolve(ic.File, call.Name)
		if !ok || (checkArity && !info.AcceptsArity(call.ArgCount)) {
			continue
		}

		ptr := ic.Pointer(javatree.KindMethodInvocation, call.Range)
		p := ic.Problem(call.Range,
			fmt.Sprintf("Cannot resolve method %s: %s is a class", call.Name, info.QualifiedName()),
			fixes.NewInsertNew(ptr, info, ic.Messages),
		)
		p.Suggestion = ic.Messages.Get(quickfix.MsgInsertNewWithName, call.Name)
		problems = append(problems, p)
	}
	return problems, nil
}

// methodInScope reports whether the class around call, or any class it is
// nested in, declares a method with the call's name.
func methodInScope(file *javatree.File, classes map[string]javatree.ClassDecl, call javatree.Invocation) bool {
	class, ok := file.EnclosingClass(call.Range.Start)
	for seen := 0; ok && seen <= len(classes); seen++ {
		if class.HasMethod(call.Name) {
			return true
		}
		if class.Outer == "" {
			return false
		}
		class, ok = classes[class.Outer]
	}
	return false
}
