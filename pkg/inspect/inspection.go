// Package inspect runs inspections over Java documents, reports the problems
// they find, and drives the quick-fixes those problems offer.
package inspect

import (
	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/javatree"
	"github.com/yaklabco/javafix/pkg/quickfix"
)

// Problem is a single issue an inspection found in a document.
type Problem struct {
	// InspectionID is the identifier of the inspection (e.g., "JF001").
	InspectionID string

	// InspectionName is the human-readable name (e.g., "missing-super-call").
	InspectionName string

	Message  string
	Severity config.Severity
	Path     string

	// Suggestion is an optional human-readable hint at the fix.
	Suggestion string

	// Range is the byte range the problem covers.
	Range javatree.Range

	// 1-based positions derived from Range.
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	// Fixes are the quick-fixes offered for the problem, in preference order.
	Fixes []quickfix.Action

	autoFix bool
}

// HasFix reports whether the problem offers at least one quick-fix.
func (p *Problem) HasFix() bool {
	return len(p.Fixes) > 0
}

// FixTexts returns the labels of the offered fixes.
func (p *Problem) FixTexts() []string {
	texts := make([]string, 0, len(p.Fixes))
	for _, f := range p.Fixes {
		texts = append(texts, f.Text())
	}
	return texts
}

// Inspection is implemented by everything that checks a document for
// problems.
type Inspection interface {
	// ID returns the unique identifier (e.g., "JF001").
	ID() string

	// Name returns the human-readable name.
	Name() string

	// Description returns what the inspection looks for.
	Description() string

	DefaultEnabled() bool
	DefaultSeverity() config.Severity

	// Tags returns categorization tags.
	Tags() []string

	// FixFamilies names the families of the quick-fixes the inspection offers.
	FixFamilies() []string

	// Check inspects ic.File and returns the problems found. Inspections must
	// respect cancellation and return an error only for internal failures.
	Check(ic *Context) ([]Problem, error)
}

// Base carries the metadata part of an Inspection so implementations only
// need to provide Check.
type Base struct {
	id       string
	name     string
	desc     string
	tags     []string
	families []string
}

// NewBase creates the metadata for an inspection.
func NewBase(id, name, desc string, tags, families []string) Base {
	return Base{id: id, name: name, desc: desc, tags: tags, families: families}
}

func (b *Base) ID() string          { return b.id }
func (b *Base) Name() string        { return b.name }
func (b *Base) Description() string { return b.desc }
func (b *Base) Tags() []string      { return b.tags }

// FixFamilies returns the fix families given to NewBase.
func (b *Base) FixFamilies() []string { return b.families }

// DefaultEnabled returns true; inspections are on unless configured off.
func (b *Base) DefaultEnabled() bool { return true }

// DefaultSeverity returns warning.
func (b *Base) DefaultSeverity() config.Severity { return config.SeverityWarning }
