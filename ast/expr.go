package ast

import "github.com/shopspring/decimal"

// NumberLiteral carries both the exact source text and its decimal value,
// so round-tripping through ToDict/FromDict never loses precision-sensitive
// text such as "0.1".
type NumberLiteral struct {
	BaseNode
	Text  string
	Value decimal.Decimal
}

func (n *NumberLiteral) String() string { return n.Text }

// StringLiteral's Value holds the escape-decoded text; Raw keeps the
// original quoted source text (including quotes).
type StringLiteral struct {
	BaseNode
	Raw   string
	Value string
}

func (n *StringLiteral) String() string { return n.Raw }

type BooleanLiteral struct {
	BaseNode
	Value bool
}

func (n *BooleanLiteral) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}

type UndefLiteral struct {
	BaseNode
}

func (n *UndefLiteral) String() string { return "undef" }

type Identifier struct {
	BaseNode
	Name string
}

func (n *Identifier) String() string { return n.Name }

// RangeLiteral is `[start:end]` (Step nil) or `[start:step:end]`.
type RangeLiteral struct {
	BaseNode
	Start Node
	Step  Node // nil when absent
	End   Node
}

func (n *RangeLiteral) String() string { return "range" }

type BinaryExpr struct {
	BaseNode
	Op    BinaryOp
	Left  Node
	Right Node
}

func (n *BinaryExpr) String() string { return "(" + n.Left.String() + " " + n.Op.String() + " " + n.Right.String() + ")" }

type UnaryExpr struct {
	BaseNode
	Op      UnaryOp
	Operand Node
}

func (n *UnaryExpr) String() string { return n.Op.String() + n.Operand.String() }

// TernaryExpr is `cond ? then : else`, right-associative.
type TernaryExpr struct {
	BaseNode
	Cond Node
	Then Node
	Else Node
}

func (n *TernaryExpr) String() string { return "ternary" }

// LetExpr is the expression form `let(a=1, b=2) body`.
type LetExpr struct {
	BaseNode
	Assignments []*Assignment
	Body        Node
}

func (n *LetExpr) String() string { return "let-expr" }

// EchoExpr is the expression form `echo(...) body`, distinct from the
// statement-level ModEcho per spec.md §9's Open Question.
type EchoExpr struct {
	BaseNode
	Arguments []Argument
	Body      Node
}

func (n *EchoExpr) String() string { return "echo-expr" }

// AssertExpr is the expression form `assert(...) body`, distinct from the
// statement-level ModAssert.
type AssertExpr struct {
	BaseNode
	Arguments []Argument
	Body      Node
}

func (n *AssertExpr) String() string { return "assert-expr" }

// FunctionLiteral is an anonymous `function(params) expr`.
type FunctionLiteral struct {
	BaseNode
	Parameters []*Parameter
	Body       Node
}

func (n *FunctionLiteral) String() string { return "function-literal" }

type CallExpr struct {
	BaseNode
	Callee    Node
	Arguments []Argument
}

func (n *CallExpr) String() string { return "call" }

type IndexExpr struct {
	BaseNode
	Target Node
	Index  Node
}

func (n *IndexExpr) String() string { return "index" }

type MemberExpr struct {
	BaseNode
	Target Node
	Name   string
}

func (n *MemberExpr) String() string { return "member:" + n.Name }

// VectorLiteral is a plain `[a, b, c]` vector (no comprehension fragments).
type VectorLiteral struct {
	BaseNode
	Elements []Node
}

func (n *VectorLiteral) String() string { return "vector" }

// ListComprehension is a bracketed expression whose top-level content is a
// chain of for/let/if/each fragments terminated by a plain body expression.
type ListComprehension struct {
	BaseNode
	Body Node
}

func (n *ListComprehension) String() string { return "list-comprehension" }

type ListCompFor struct {
	BaseNode
	Vars []*Assignment
	Body Node
}

func (n *ListCompFor) String() string { return "listcomp-for" }

type ListCompCFor struct {
	BaseNode
	Init   []*Assignment
	Cond   Node
	Update []*Assignment
	Body   Node
}

func (n *ListCompCFor) String() string { return "listcomp-cfor" }

type ListCompIf struct {
	BaseNode
	Cond Node
	Body Node
}

func (n *ListCompIf) String() string { return "listcomp-if" }

type ListCompIfElse struct {
	BaseNode
	Cond Node
	Then Node
	Else Node
}

func (n *ListCompIfElse) String() string { return "listcomp-if-else" }

type ListCompLet struct {
	BaseNode
	Assignments []*Assignment
	Body        Node
}

func (n *ListCompLet) String() string { return "listcomp-let" }

type ListCompEach struct {
	BaseNode
	Body Node
}

func (n *ListCompEach) String() string { return "listcomp-each" }

// PositionalArgument is an unnamed call argument.
type PositionalArgument struct {
	BaseNode
	Value Node
}

func (a *PositionalArgument) String() string { return "positional-arg" }
func (a *PositionalArgument) isArgument()     {}

// NamedArgument is `name = expr` within a call's argument list.
type NamedArgument struct {
	BaseNode
	Name  string
	Value Node
}

func (a *NamedArgument) String() string { return "named-arg:" + a.Name }
func (a *NamedArgument) isArgument()     {}
