package fix

import "bytes"

// Bias decides where an offset sitting exactly on an insertion point ends up.
type Bias int

const (
	// BiasLeft keeps the offset before text inserted at it.
	BiasLeft Bias = iota

	// BiasRight moves the offset after text inserted at it.
	BiasRight
)

// ApplyEdits applies sorted, conflict-free edits to content and returns the
// new content. Edits must come from PrepareEdits.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += e.Delta()
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}

// Invert returns the edits that undo applying edits to content. The result is
// expressed in the coordinates of the edited content and is itself sorted.
func Invert(content []byte, edits []TextEdit) []TextEdit {
	inverse := make([]TextEdit, 0, len(edits))
	shift := 0
	for _, e := range edits {
		start := e.StartOffset + shift
		inverse = append(inverse, TextEdit{
			StartOffset: start,
			EndOffset:   start + len(e.NewText),
			NewText:     string(content[e.StartOffset:e.EndOffset]),
		})
		shift += e.Delta()
	}
	return inverse
}

// MapOffset translates an offset in the original content to the matching
// offset after sorted edits were applied. Offsets inside a replaced range
// collapse to the end of the replacement text.
func MapOffset(offset int, edits []TextEdit, bias Bias) int {
	shift := 0
	for _, e := range edits {
		switch {
		case offset < e.StartOffset:
			return offset + shift
		case offset == e.StartOffset && e.IsInsert():
			if bias == BiasLeft {
				return offset + shift
			}
			shift += e.Delta()
		case offset == e.StartOffset:
			return offset + shift
		case offset < e.EndOffset:
			return e.StartOffset + shift + len(e.NewText)
		default:
			shift += e.Delta()
		}
	}
	return offset + shift
}
