// Package fix provides the text edit primitives that structural edits are
// lowered to: edit construction, validation, application, inversion and
// offset mapping.
package fix

// TextEdit represents a single text replacement in a document.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Len returns the number of bytes the edit replaces.
func (e TextEdit) Len() int {
	return e.EndOffset - e.StartOffset
}

// Delta returns how much the document grows (or shrinks) when the edit is applied.
func (e TextEdit) Delta() int {
	return len(e.NewText) - e.Len()
}

// IsInsert reports whether the edit replaces nothing.
func (e TextEdit) IsInsert() bool {
	return e.StartOffset == e.EndOffset
}

// EditBuilder accumulates text edits for a single command.
type EditBuilder struct {
	edits []TextEdit
}

// NewEditBuilder creates an empty EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{edits: make([]TextEdit, 0)}
}

// Replace adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) Replace(start, end int, newText string) {
	b.edits = append(b.edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// Insert adds an edit that inserts text at offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.Replace(offset, offset, text)
}

// Delete adds an edit that removes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.Replace(start, end, "")
}

// Edits returns the accumulated edits in insertion order.
func (b *EditBuilder) Edits() []TextEdit {
	return b.edits
}

// Len returns the number of accumulated edits.
func (b *EditBuilder) Len() int {
	return len(b.edits)
}
