// Package javatree parses Java sources with tree-sitter and answers the
// structural queries quick-fixes and inspections need.
package javatree

import (
	"context"
	"fmt"
	"slices"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// Node kinds used across the repository. They are the tree-sitter Java
// grammar's node type names.
const (
	KindProgram                   = "program"
	KindClass                     = "class_declaration"
	KindClassBody                 = "class_body"
	KindConstructor               = "constructor_declaration"
	KindConstructorBody           = "constructor_body"
	KindMethod                    = "method_declaration"
	KindMethodInvocation          = "method_invocation"
	KindExplicitConstructorInvoke = "explicit_constructor_invocation"
	KindArgumentList              = "argument_list"
	KindObjectCreation            = "object_creation_expression"
	KindPackage                   = "package_declaration"
	KindImport                    = "import_declaration"
)

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether offset lies in [Start, End).
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Covers reports whether other lies entirely within r.
func (r Range) Covers(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// NodeRange returns the byte range of n.
func NodeRange(n *sitter.Node) Range {
	return Range{Start: int(n.StartByte()), End: int(n.EndByte())}
}

// File is an immutable parse of one source file.
type File struct {
	// Path is the file path the content was read from.
	Path string

	// Content is the parsed source. It must not be modified.
	Content []byte

	// Lines holds line boundaries for offset/position conversion.
	Lines []LineInfo

	tree *sitter.Tree
}

// Root returns the program node, or nil for a file without a syntax tree.
func (f *File) Root() *sitter.Node {
	if f.tree == nil {
		return nil
	}
	return f.tree.RootNode()
}

// HasSyntaxTree reports whether the file was parsed as Java.
func (f *File) HasSyntaxTree() bool {
	return f.tree != nil
}

// HasSyntaxErrors reports whether tree-sitter needed error recovery.
func (f *File) HasSyntaxErrors() bool {
	root := f.Root()
	return root != nil && root.HasError()
}

// Text returns the source text covered by r.
func (f *File) Text(r Range) string {
	if r.Start < 0 || r.End > len(f.Content) || r.Start > r.End {
		return ""
	}
	return string(f.Content[r.Start:r.End])
}

// NodeText returns the source text of n.
func (f *File) NodeText(n *sitter.Node) string {
	return n.Content(f.Content)
}

// Plain wraps content that is not Java (or must not be parsed) in a File
// with line information but no syntax tree. Structural queries on it return
// nothing.
func Plain(path string, content []byte) *File {
	src := slices.Clone(content)
	return &File{Path: path, Content: src, Lines: BuildLines(src)}
}

// Parser turns source bytes into Files. It is safe for concurrent use; each
// Parse call builds its own tree-sitter parser.
type Parser struct{}

// NewParser creates a Java parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses content as Java. The content slice is copied.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*File, error) {
	src := slices.Clone(content)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &File{
		Path:    path,
		Content: src,
		Lines:   BuildLines(src),
		tree:    tree,
	}, nil
}
