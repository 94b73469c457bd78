// Package lang holds per-language editor metadata: comment syntax and
// language detection for source files.
package lang

import "strings"

// Commenter describes the comment syntax of a language. Empty strings mean
// the language has no such construct.
type Commenter struct {
	LineCommentPrefix string

	BlockCommentPrefix string
	BlockCommentSuffix string

	// CommentedBlockCommentPrefix/Suffix replace block comment delimiters
	// found inside a region that is being block-commented.
	CommentedBlockCommentPrefix string
	CommentedBlockCommentSuffix string

	DocumentationCommentPrefix     string
	DocumentationCommentLinePrefix string
	DocumentationCommentSuffix     string
}

// HasLineComments reports whether the language supports line comments.
func (c Commenter) HasLineComments() bool {
	return c.LineCommentPrefix != ""
}

// HasBlockComments reports whether the language supports block comments.
func (c Commenter) HasBlockComments() bool {
	return c.BlockCommentPrefix != "" && c.BlockCommentSuffix != ""
}

// IsDocumentationComment reports whether the comment text is a
// documentation comment.
func (c Commenter) IsDocumentationComment(text string) bool {
	if c.DocumentationCommentPrefix == "" {
		return false
	}
	text = strings.TrimSpace(text)
	// "/**/" is an empty block comment, not a doc comment.
	if text == c.BlockCommentPrefix+c.BlockCommentSuffix {
		return false
	}
	return strings.HasPrefix(text, c.DocumentationCommentPrefix) &&
		strings.HasSuffix(text, c.DocumentationCommentSuffix)
}

// Java comment syntax.
//
//nolint:gochecknoglobals // Read-only language table.
var Java = Commenter{
	LineCommentPrefix:              "//",
	BlockCommentPrefix:             "/*",
	BlockCommentSuffix:             "*/",
	CommentedBlockCommentPrefix:    "&#47;*",
	CommentedBlockCommentSuffix:    "*&#47;",
	DocumentationCommentPrefix:     "/**",
	DocumentationCommentLinePrefix: "*",
	DocumentationCommentSuffix:     "*/",
}

// Python only has line comments; docstrings are string literals, not comments.
//
//nolint:gochecknoglobals // Read-only language table.
var Python = Commenter{
	LineCommentPrefix: "#",
}
