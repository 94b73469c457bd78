package javatree

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// ClassDecl summarises a class declaration.
type ClassDecl struct {
	Name string

	// Superclass is the simple name of the extended class, empty when the
	// class has no extends clause.
	Superclass string

	// Outer is the enclosing class name for nested classes.
	Outer string

	Range        Range
	Constructors []ConstructorDecl
	Methods      []MethodDecl
}

// HasDefaultConstructor reports whether the class can be constructed with no
// arguments: either it declares no constructors, or one of them takes no
// arguments or only varargs.
func (c *ClassDecl) HasDefaultConstructor() bool {
	if len(c.Constructors) == 0 {
		return true
	}
	for _, ctor := range c.Constructors {
		if ctor.AcceptsArity(0) {
			return true
		}
	}
	return false
}

// HasMethod reports whether the class declares a method called name.
func (c *ClassDecl) HasMethod(name string) bool {
	for _, m := range c.Methods {
		if m.Name == name {
			return true
		}
	}
	return false
}

// ConstructorDecl summarises a constructor.
type ConstructorDecl struct {
	Name    string
	Range   Range
	Params  int
	Varargs bool

	// Body is the constructor_body range; zero when the body is missing.
	Body Range

	// LBrace is the offset of the body's opening brace, or -1.
	LBrace int

	// ExplicitCall is true when the body starts with this(...) or super(...).
	ExplicitCall bool
}

// AcceptsArity reports whether a call with n arguments can bind to the constructor.
func (c ConstructorDecl) AcceptsArity(n int) bool {
	if c.Varargs {
		return n >= c.Params-1
	}
	return n == c.Params
}

// MethodDecl summarises a method.
type MethodDecl struct {
	Name    string
	Range   Range
	Params  int
	Varargs bool
}

// Invocation summarises a method_invocation expression.
type Invocation struct {
	Name string

	// Qualified is true when the call has a receiver (a.b()).
	Qualified bool

	Range     Range
	Arguments Range
	ArgCount  int
}

// PackageName returns the file's package, or "" for the default package.
func (f *File) PackageName() string {
	root := f.Root()
	if root == nil {
		return ""
	}
	for i := range int(root.NamedChildCount()) {
		child := root.NamedChild(i)
		if child.Type() != KindPackage {
			continue
		}
		for j := range int(child.NamedChildCount()) {
			name := child.NamedChild(j)
			if name.Type() == "scoped_identifier" || name.Type() == "identifier" {
				return f.NodeText(name)
			}
		}
	}
	return ""
}

// Import is one import declaration.
type Import struct {
	// Path is the imported name without "import", "static" or ";".
	Path     string
	Static   bool
	Wildcard bool
	Range    Range
}

// Imports lists the file's import declarations in source order.
func (f *File) Imports() []Import {
	var imports []Import
	root := f.Root()
	if root == nil {
		return nil
	}
	for i := range int(root.NamedChildCount()) {
		child := root.NamedChild(i)
		if child.Type() != KindImport {
			continue
		}

		text := strings.TrimSpace(f.NodeText(child))
		text = strings.TrimSuffix(strings.TrimPrefix(text, "import"), ";")
		text = strings.TrimSpace(text)

		imp := Import{Range: NodeRange(child)}
		if rest, ok := strings.CutPrefix(text, "static "); ok {
			imp.Static = true
			text = strings.TrimSpace(rest)
		}
		text = strings.Join(strings.Fields(text), "")
		if base, ok := strings.CutSuffix(text, ".*"); ok {
			imp.Wildcard = true
			text = base
		}
		imp.Path = text
		imports = append(imports, imp)
	}
	return imports
}

// ImportsClass reports whether the file can refer to class pkg.name by
// its simple name.
func (f *File) ImportsClass(pkg, name string) bool {
	if pkg == "" || pkg == f.PackageName() || pkg == "java.lang" {
		return true
	}
	for _, imp := range f.Imports() {
		if imp.Static {
			continue
		}
		if imp.Wildcard && imp.Path == pkg {
			return true
		}
		if !imp.Wildcard && imp.Path == pkg+"."+name {
			return true
		}
	}
	return false
}

// Classes returns every class declaration in the file, nested ones included,
// in source order.
func (f *File) Classes() []ClassDecl {
	var classes []ClassDecl
	Walk(f.Root(), func(n *sitter.Node) bool {
		if n.Type() == KindClass {
			classes = append(classes, f.classDecl(n))
		}
		return true
	})
	return classes
}

func (f *File) classDecl(n *sitter.Node) ClassDecl {
	decl := ClassDecl{Range: NodeRange(n)}
	if name := n.ChildByFieldName("name"); name != nil {
		decl.Name = f.NodeText(name)
	}
	if super := n.ChildByFieldName("superclass"); super != nil {
		decl.Superclass = f.simpleTypeName(super)
	}
	if outer := enclosing(n.Parent(), KindClass); outer != nil {
		if name := outer.ChildByFieldName("name"); name != nil {
			decl.Outer = f.NodeText(name)
		}
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return decl
	}
	for i := range int(body.NamedChildCount()) {
		member := body.NamedChild(i)
		switch member.Type() {
		case KindConstructor:
			decl.Constructors = append(decl.Constructors, f.constructorDecl(member))
		case KindMethod:
			decl.Methods = append(decl.Methods, f.methodDecl(member))
		}
	}
	return decl
}

// simpleTypeName extracts the simple class name from a superclass clause or
// any type node: List<T> -> List, a.b.C -> C.
func (f *File) simpleTypeName(n *sitter.Node) string {
	switch n.Type() {
	case "type_identifier", "identifier":
		return f.NodeText(n)
	case "generic_type":
		if n.NamedChildCount() > 0 {
			return f.simpleTypeName(n.NamedChild(0))
		}
	case "scoped_type_identifier":
		if count := int(n.NamedChildCount()); count > 0 {
			return f.simpleTypeName(n.NamedChild(count - 1))
		}
	default:
		for i := range int(n.NamedChildCount()) {
			if name := f.simpleTypeName(n.NamedChild(i)); name != "" {
				return name
			}
		}
	}
	return ""
}

func (f *File) constructorDecl(n *sitter.Node) ConstructorDecl {
	decl := ConstructorDecl{Range: NodeRange(n), LBrace: -1}
	if name := n.ChildByFieldName("name"); name != nil {
		decl.Name = f.NodeText(name)
	}
	decl.Params, decl.Varargs = countParams(n.ChildByFieldName("parameters"))

	body := n.ChildByFieldName("body")
	if body == nil {
		return decl
	}
	decl.Body = NodeRange(body)
	if lbrace := firstToken(body, "{"); lbrace != nil {
		decl.LBrace = int(lbrace.StartByte())
	}
	if first := firstNamedNonComment(body); first != nil && first.Type() == KindExplicitConstructorInvoke {
		decl.ExplicitCall = true
	}
	return decl
}

func (f *File) methodDecl(n *sitter.Node) MethodDecl {
	decl := MethodDecl{Range: NodeRange(n)}
	if name := n.ChildByFieldName("name"); name != nil {
		decl.Name = f.NodeText(name)
	}
	decl.Params, decl.Varargs = countParams(n.ChildByFieldName("parameters"))
	return decl
}

func countParams(params *sitter.Node) (int, bool) {
	if params == nil {
		return 0, false
	}
	count, varargs := 0, false
	for i := range int(params.NamedChildCount()) {
		switch params.NamedChild(i).Type() {
		case "formal_parameter":
			count++
		case "spread_parameter":
			count++
			varargs = true
		}
	}
	return count, varargs
}

// Invocations returns every method invocation in the file in source order.
func (f *File) Invocations() []Invocation {
	var calls []Invocation
	Walk(f.Root(), func(n *sitter.Node) bool {
		if n.Type() == KindMethodInvocation {
			calls = append(calls, f.invocation(n))
		}
		return true
	})
	return calls
}

func (f *File) invocation(n *sitter.Node) Invocation {
	call := Invocation{
		Range:     NodeRange(n),
		Qualified: n.ChildByFieldName("object") != nil,
	}
	if name := n.ChildByFieldName("name"); name != nil {
		call.Name = f.NodeText(name)
	}
	if args := n.ChildByFieldName("arguments"); args != nil {
		call.Arguments = NodeRange(args)
		for i := range int(args.NamedChildCount()) {
			if !isComment(args.NamedChild(i)) {
				call.ArgCount++
			}
		}
	}
	return call
}

// EnclosingClass returns the innermost class declaration containing offset.
func (f *File) EnclosingClass(offset int) (ClassDecl, bool) {
	var found *sitter.Node
	Walk(f.Root(), func(n *sitter.Node) bool {
		r := NodeRange(n)
		if offset < r.Start || offset >= r.End {
			return false
		}
		if n.Type() == KindClass {
			found = n
		}
		return true
	})
	if found == nil {
		return ClassDecl{}, false
	}
	return f.classDecl(found), true
}

// FindNode returns the node of the given kind spanning exactly r, or nil.
func (f *File) FindNode(kind string, r Range) *sitter.Node {
	var found *sitter.Node
	Walk(f.Root(), func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		nr := NodeRange(n)
		if !nr.Covers(r) {
			return false
		}
		if nr == r && n.Type() == kind {
			found = n
			return false
		}
		return true
	})
	return found
}

// NodeStartingAt returns the outermost node of the given kind that starts at
// offset, or nil.
func (f *File) NodeStartingAt(kind string, offset int) *sitter.Node {
	var found *sitter.Node
	Walk(f.Root(), func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		nr := NodeRange(n)
		if offset < nr.Start || offset > nr.End {
			return false
		}
		if nr.Start == offset && n.Type() == kind {
			found = n
			return false
		}
		return true
	})
	return found
}

// PackageRange returns the range of the package declaration.
func (f *File) PackageRange() (Range, bool) {
	root := f.Root()
	if root == nil {
		return Range{}, false
	}
	if pkg := FirstChild(root, KindPackage); pkg != nil {
		return NodeRange(pkg), true
	}
	return Range{}, false
}

// Constructor returns the summary of the constructor spanning exactly r.
func (f *File) Constructor(r Range) (ConstructorDecl, bool) {
	n := f.FindNode(KindConstructor, r)
	if n == nil {
		return ConstructorDecl{}, false
	}
	return f.constructorDecl(n), true
}

// Invocation returns the summary of the method invocation spanning exactly r.
func (f *File) Invocation(r Range) (Invocation, bool) {
	n := f.FindNode(KindMethodInvocation, r)
	if n == nil {
		return Invocation{}, false
	}
	return f.invocation(n), true
}

// Walk visits n and its descendants depth-first. Returning false from visit
// skips the node's children.
func Walk(n *sitter.Node, visit func(*sitter.Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for i := range int(n.ChildCount()) {
		Walk(n.Child(i), visit)
	}
}

// FirstChild returns the first direct child of n of the given type.
func FirstChild(n *sitter.Node, kind string) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := range int(n.ChildCount()) {
		if child := n.Child(i); child.Type() == kind {
			return child
		}
	}
	return nil
}

func firstToken(n *sitter.Node, text string) *sitter.Node {
	return FirstChild(n, text)
}

func firstNamedNonComment(n *sitter.Node) *sitter.Node {
	for i := range int(n.NamedChildCount()) {
		if child := n.NamedChild(i); !isComment(child) {
			return child
		}
	}
	return nil
}

func isComment(n *sitter.Node) bool {
	switch n.Type() {
	case "comment", "line_comment", "block_comment":
		return true
	}
	return false
}

func enclosing(n *sitter.Node, kind string) *sitter.Node {
	for ; n != nil; n = n.Parent() {
		if n.Type() == kind {
			return n
		}
	}
	return nil
}
