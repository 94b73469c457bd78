package editor

import (
	"github.com/yaklabco/javafix/pkg/fix"
	"github.com/yaklabco/javafix/pkg/javatree"
)

// ElementPointer is a non-owning reference to a syntax node. It records the
// node's kind and range at the version it was taken and re-maps them through
// later edits. Edits before the element shift it, edits strictly inside it
// resize it, and edits that replace it or cross one of its boundaries
// invalidate it.
type ElementPointer struct {
	doc     *Document
	kind    string
	rng     javatree.Range
	version int
}

// Pointer creates a pointer to the node of the given kind covering r in the
// current version.
func (d *Document) Pointer(kind string, r javatree.Range) *ElementPointer {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return &ElementPointer{doc: d, kind: kind, rng: r, version: d.version}
}

// Document returns the document the pointer refers into.
func (p *ElementPointer) Document() *Document {
	return p.doc
}

// Kind returns the node kind the pointer expects.
func (p *ElementPointer) Kind() string {
	return p.kind
}

// Resolve returns the element's current range and the file it resolved in.
func (p *ElementPointer) Resolve() (*javatree.File, javatree.Range, bool) {
	if p == nil || p.doc == nil {
		return nil, javatree.Range{}, false
	}

	p.doc.mu.RLock()
	defer p.doc.mu.RUnlock()

	if p.doc.closed {
		return nil, javatree.Range{}, false
	}

	file := p.doc.file
	r, ok := p.resolveIn(file, p.doc.changesSince(p.version))
	return file, r, ok
}

// IsValid reports whether the element still exists.
func (p *ElementPointer) IsValid() bool {
	_, _, ok := p.Resolve()
	return ok
}

func (p *ElementPointer) resolveIn(file *javatree.File, steps [][]fix.TextEdit) (javatree.Range, bool) {
	r := p.rng
	for _, edits := range steps {
		var ok bool
		if r, ok = MapRange(r, edits); !ok {
			return javatree.Range{}, false
		}
	}

	if file.FindNode(p.kind, r) == nil {
		return javatree.Range{}, false
	}
	return r, true
}

// MapRange maps r through one step of sorted edits. It reports false when an
// edit replaces r or crosses one of its boundaries.
func MapRange(r javatree.Range, edits []fix.TextEdit) (javatree.Range, bool) {
	before, inside := 0, 0
	for _, e := range edits {
		switch {
		case e.EndOffset <= r.Start:
			before += e.Delta()
		case e.StartOffset >= r.End:
		case e.StartOffset > r.Start && e.EndOffset < r.End:
			inside += e.Delta()
		default:
			return javatree.Range{}, false
		}
	}
	return javatree.Range{Start: r.Start + before, End: r.End + before + inside}, true
}
