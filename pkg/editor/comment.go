package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/javafix/pkg/fix"
	"github.com/yaklabco/javafix/pkg/lang"
)

// ErrNoLineComments is returned when the document's language has no line
// comment syntax.
var ErrNoLineComments = errors.New("language has no line comments")

// ToggleLineComment comments out lines fromLine..toLine (1-based, inclusive)
// with the language's line comment prefix, or uncomments them when every
// non-blank line in the range is already commented. The change is one undo
// step.
func ToggleLineComment(ctx context.Context, ed *Editor, commenter lang.Commenter, fromLine, toLine int) (*Command, error) {
	if !commenter.HasLineComments() {
		return nil, ErrNoLineComments
	}

	return ed.Execute(ctx, "Comment with Line Comment", func(tx *Transaction) error {
		file := tx.File()
		if fromLine < 1 || toLine > len(file.Lines) || fromLine > toLine {
			return fmt.Errorf("%w: lines %d-%d outside document", ErrEditRejected, fromLine, toLine)
		}

		prefix := []byte(commenter.LineCommentPrefix)
		allCommented := true
		minIndent := -1
		for line := fromLine; line <= toLine; line++ {
			content := file.LineContent(line)
			trimmed := bytes.TrimLeft(content, " \t")
			if len(trimmed) == 0 {
				continue
			}
			if !bytes.HasPrefix(trimmed, prefix) {
				allCommented = false
			}
			if indent := len(content) - len(trimmed); minIndent < 0 || indent < minIndent {
				minIndent = indent
			}
		}
		if minIndent < 0 {
			return nil
		}

		builder := fix.NewEditBuilder()
		for line := fromLine; line <= toLine; line++ {
			content := file.LineContent(line)
			trimmed := bytes.TrimLeft(content, " \t")
			if len(trimmed) == 0 {
				continue
			}
			lineStart := file.Lines[line-1].StartOffset

			if allCommented {
				start := lineStart + len(content) - len(trimmed)
				end := start + len(prefix)
				if bytes.HasPrefix(trimmed[len(prefix):], []byte(" ")) {
					end++
				}
				builder.Delete(start, end)
				continue
			}
			builder.Insert(lineStart+minIndent, commenter.LineCommentPrefix+" ")
		}

		return tx.Apply(builder.Edits())
	})
}
