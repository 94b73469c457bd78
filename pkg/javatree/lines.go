package javatree

import (
	"sort"
	"strings"
)

// LineInfo describes one line of a file.
type LineInfo struct {
	// StartOffset is the byte offset of the first byte of the line.
	StartOffset int

	// NewlineStart is the offset of the line terminator ("\n" or "\r\n"),
	// or the content length for a final line without one.
	NewlineStart int

	// EndOffset is the offset just past the terminator.
	EndOffset int
}

// BuildLines computes line boundaries, recognising LF and CRLF endings.
func BuildLines(content []byte) []LineInfo {
	lines := make([]LineInfo, 0, 64)
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})
	return lines
}

// LineAt converts a byte offset to 1-based line and column (columns count
// bytes). It returns (0, 0) for offsets outside the file.
func (f *File) LineAt(offset int) (int, int) {
	if offset < 0 || offset > len(f.Content) || len(f.Lines) == 0 {
		return 0, 0
	}

	lineIdx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(f.Lines) {
		lineIdx = len(f.Lines) - 1
	}

	return lineIdx + 1, offset - f.Lines[lineIdx].StartOffset + 1
}

// Offset converts a 1-based line and column into a byte offset. The column
// may point one past the last byte of the line.
func (f *File) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(f.Lines) || col < 1 {
		return 0, false
	}

	info := f.Lines[line-1]
	offset := info.StartOffset + col - 1
	if offset > info.NewlineStart {
		return 0, false
	}
	return offset, true
}

// LineContent returns line (1-based) without its terminator.
func (f *File) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}
	info := f.Lines[line-1]
	return f.Content[info.StartOffset:info.NewlineStart]
}

// LineEnding returns the file's line terminator: "\r\n" when the first line
// ends with one, "\n" otherwise.
func (f *File) LineEnding() string {
	if len(f.Lines) > 1 && f.Lines[0].EndOffset-f.Lines[0].NewlineStart == 2 {
		return "\r\n"
	}
	return "\n"
}

// IndentAt returns the leading whitespace of the line containing offset.
func (f *File) IndentAt(offset int) string {
	line, _ := f.LineAt(offset)
	content := f.LineContent(line)
	end := 0
	for end < len(content) && (content[end] == ' ' || content[end] == '\t') {
		end++
	}
	return string(content[:end])
}

// IndentUnit guesses one indentation step for the file: a tab when any line
// is tab-indented, otherwise the smallest non-zero space indentation, capped
// at four spaces.
func (f *File) IndentUnit() string {
	smallest := 0
	for line := 1; line <= len(f.Lines); line++ {
		content := f.LineContent(line)
		if len(content) == 0 {
			continue
		}
		if content[0] == '\t' {
			return "\t"
		}
		spaces := 0
		for spaces < len(content) && content[spaces] == ' ' {
			spaces++
		}
		if spaces == len(content) || spaces == 0 {
			continue
		}
		// Javadoc continuation lines (" * ...") sit one column in.
		if content[spaces] == '*' {
			continue
		}
		if smallest == 0 || spaces < smallest {
			smallest = spaces
		}
	}

	if smallest == 0 || smallest > defaultIndentWidth {
		smallest = defaultIndentWidth
	}
	return strings.Repeat(" ", smallest)
}

const defaultIndentWidth = 4
