package ast

// Parameter is a module/function parameter: a name with an optional
// default expression (nil when absent).
type Parameter struct {
	BaseNode
	Name    string
	Default Node
}

func (n *Parameter) String() string { return "param:" + n.Name }

// Assignment is `name = expr;` at statement level, or `name = expr` inside
// a let(...)/for(...) argument list.
type Assignment struct {
	BaseNode
	Name  string
	Value Node
}

func (n *Assignment) String() string { return n.Name + " = " + n.Value.String() }

// ModuleDeclaration's body is an ordered sequence of modular instantiations.
type ModuleDeclaration struct {
	BaseNode
	Name       string
	Parameters []*Parameter
	Body       []ModuleInstantiation
}

func (n *ModuleDeclaration) String() string { return "module:" + n.Name }

// FunctionDeclaration's body is a single expression.
type FunctionDeclaration struct {
	BaseNode
	Name       string
	Parameters []*Parameter
	Body       Node
}

func (n *FunctionDeclaration) String() string { return "function:" + n.Name }

// UseStatement survives regardless of process_includes (spec.md §4.7).
type UseStatement struct {
	BaseNode
	Path string
}

func (n *UseStatement) String() string { return "use <" + n.Path + ">" }

// IncludeStatement is only present in the AST when process_includes=false;
// otherwise the included file's content is spliced in via IPP before parsing.
type IncludeStatement struct {
	BaseNode
	Path string
}

func (n *IncludeStatement) String() string { return "include <" + n.Path + ">" }

type CommentLine struct {
	BaseNode
	Text string
}

func (n *CommentLine) String() string { return n.Text }

type CommentBlock struct {
	BaseNode
	Text string
}

func (n *CommentBlock) String() string { return n.Text }

// File is the root node: an ordered sequence of top-level statements
// (assignments, declarations, instantiations, use/include).
type File struct {
	BaseNode
	Statements []Node
}

func (n *File) String() string { return "file" }
