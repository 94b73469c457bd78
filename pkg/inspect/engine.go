package inspect

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/editor"
	"github.com/yaklabco/javafix/pkg/javatree"
	"github.com/yaklabco/javafix/pkg/project"
	"github.com/yaklabco/javafix/pkg/quickfix"
)

// DocumentResult contains the problems found in one document version.
type DocumentResult struct {
	Path string

	// Version is the document version that was inspected.
	Version int

	// Content is the text of that version.
	Content []byte

	// Problems are ordered by position, then inspection ID.
	Problems []Problem

	// InspectionErrors maps inspection IDs to internal failures.
	InspectionErrors map[string]error
}

// Line returns the 1-based line n of Content without its line terminator,
// or "" when n is out of range.
func (dr *DocumentResult) Line(n int) string {
	if n < 1 {
		return ""
	}
	rest := dr.Content
	for i := 1; i < n; i++ {
		idx := bytes.IndexByte(rest, '\n')
		if idx < 0 {
			return ""
		}
		rest = rest[idx+1:]
	}
	if idx := bytes.IndexByte(rest, '\n'); idx >= 0 {
		rest = rest[:idx]
	}
	return string(bytes.TrimSuffix(rest, []byte("\r")))
}

// HasProblems returns true if any problems were found.
func (dr *DocumentResult) HasProblems() bool {
	return len(dr.Problems) > 0
}

// ProblemCount returns the number of problems.
func (dr *DocumentResult) ProblemCount() int {
	return len(dr.Problems)
}

// FixableCount returns the number of problems that offer a fix.
func (dr *DocumentResult) FixableCount() int {
	n := 0
	for i := range dr.Problems {
		if dr.Problems[i].HasFix() {
			n++
		}
	}
	return n
}

// Engine runs the registered inspections against documents.
type Engine struct {
	// Parser parses Java sources into documents.
	Parser *javatree.Parser

	Registry *Registry

	// Index resolves class names. May be nil, in which case inspections that
	// need cross-file information find nothing.
	Index *project.ClassIndex

	// Messages localizes fix labels.
	Messages *quickfix.Messages
}

// NewEngine creates an Engine over registry and index.
func NewEngine(registry *Registry, index *project.ClassIndex) *Engine {
	return &Engine{
		Parser:   javatree.NewParser(),
		Registry: registry,
		Index:    index,
		Messages: quickfix.DefaultMessages(),
	}
}

// OpenDocument parses content into a new document for inspection.
func (e *Engine) OpenDocument(ctx context.Context, path string, content []byte) (*editor.Document, error) {
	doc, err := editor.NewDocument(ctx, e.Parser, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// InspectDocument runs every enabled inspection on the current version of
// doc. Documents without a syntax tree have no problems.
func (e *Engine) InspectDocument(ctx context.Context, doc *editor.Document, cfg *config.Config) (*DocumentResult, error) {
	file := doc.File()
	result := &DocumentResult{
		Path:             doc.Path(),
		Version:          doc.Version(),
		Content:          doc.Content(),
		InspectionErrors: make(map[string]error),
	}
	if !file.HasSyntaxTree() {
		return result, nil
	}

	for _, ri := range ResolveInspections(e.Registry, cfg) {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("inspection cancelled: %w", err)
		}

		ic := NewContext(ctx, doc, e.Index, cfg, ri.Config)
		if e.Messages != nil {
			ic.Messages = e.Messages
		}

		problems, err := ri.Inspection.Check(ic)
		if err != nil {
			result.InspectionErrors[ri.Inspection.ID()] = err
			continue
		}

		for i := range problems {
			p := &problems[i]
			p.InspectionID = ri.Inspection.ID()
			p.InspectionName = ri.Inspection.Name()
			p.Severity = ri.Severity
			p.autoFix = ri.AutoFix
			if p.Path == "" {
				p.Path = doc.Path()
			}
			p.StartLine, p.StartColumn = file.LineAt(p.Range.Start)
			p.EndLine, p.EndColumn = file.LineAt(p.Range.End)
		}
		result.Problems = append(result.Problems, problems...)
	}

	slices.SortStableFunc(result.Problems, func(a, b Problem) int {
		return cmp.Or(
			cmp.Compare(a.Range.Start, b.Range.Start),
			cmp.Compare(a.InspectionID, b.InspectionID),
		)
	})

	return result, nil
}

// ProblemsAt returns the problems of result whose range contains offset or
// ends exactly at it.
func ProblemsAt(result *DocumentResult, offset int) []Problem {
	var out []Problem
	for _, p := range result.Problems {
		if p.Range.Contains(offset) || p.Range.End == offset {
			out = append(out, p)
		}
	}
	return out
}
