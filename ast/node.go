// Package ast defines the closed, tagged-union abstract syntax tree
// produced by the OpenSCAD parser: literals, operators, compound
// expressions, list-comprehension fragments, modular instantiations,
// declarations, statements, arguments, and optional comments.
//
// Every concrete node type embeds BaseNode, which carries the node's
// NodeType tag and its Position. Nodes are built exclusively by the
// parser's Trans callbacks (package parser) and are immutable once
// constructed.
package ast

import "github.com/shibukawa/scadparse/sourcemap"

// NodeType discriminates the closed set of AST node variants.
type NodeType int

const (
	NumberLit NodeType = iota
	StringLit
	BoolLit
	UndefLit
	IdentLit
	RangeLit

	BinaryExprNode
	UnaryExprNode
	TernaryExprNode
	LetExprNode
	EchoExprNode
	AssertExprNode
	FunctionLiteralNode
	CallExprNode
	IndexExprNode
	MemberExprNode

	VectorLiteralNode
	ListComprehensionNode
	ListCompForNode
	ListCompCForNode
	ListCompIfNode
	ListCompIfElseNode
	ListCompLetNode
	ListCompEachNode

	ModuleCallNode
	ModForNode
	ModCForNode
	ModIntersectionForNode
	ModLetNode
	ModEchoNode
	ModAssertNode
	ModIfNode
	ModIfElseNode
	ModifierNode

	ModuleDeclNode
	FunctionDeclNode
	ParameterNode
	AssignmentNode

	UseStatementNode
	IncludeStatementNode

	PositionalArgNode
	NamedArgNode

	CommentLineNode
	CommentBlockNode

	FileNode
)

var nodeTypeNames = map[NodeType]string{
	NumberLit: "NumberLit", StringLit: "StringLit", BoolLit: "BoolLit",
	UndefLit: "UndefLit", IdentLit: "IdentLit", RangeLit: "RangeLit",
	BinaryExprNode: "BinaryExpr", UnaryExprNode: "UnaryExpr",
	TernaryExprNode: "TernaryExpr", LetExprNode: "LetExpr",
	EchoExprNode: "EchoExpr", AssertExprNode: "AssertExpr",
	FunctionLiteralNode: "FunctionLiteral", CallExprNode: "CallExpr",
	IndexExprNode: "IndexExpr", MemberExprNode: "MemberExpr",
	VectorLiteralNode: "VectorLiteral", ListComprehensionNode: "ListComprehension",
	ListCompForNode: "ListCompFor", ListCompCForNode: "ListCompCFor",
	ListCompIfNode: "ListCompIf", ListCompIfElseNode: "ListCompIfElse",
	ListCompLetNode: "ListCompLet", ListCompEachNode: "ListCompEach",
	ModuleCallNode: "ModuleCall", ModForNode: "ModFor", ModCForNode: "ModCFor",
	ModIntersectionForNode: "ModIntersectionFor", ModLetNode: "ModLet",
	ModEchoNode: "ModEcho", ModAssertNode: "ModAssert", ModIfNode: "ModIf",
	ModIfElseNode: "ModIfElse", ModifierNode: "Modifier",
	ModuleDeclNode: "ModuleDecl", FunctionDeclNode: "FunctionDecl",
	ParameterNode: "Parameter", AssignmentNode: "Assignment",
	UseStatementNode: "UseStatement", IncludeStatementNode: "IncludeStatement",
	PositionalArgNode: "PositionalArg", NamedArgNode: "NamedArg",
	CommentLineNode: "CommentLine", CommentBlockNode: "CommentBlock",
	FileNode: "File",
}

// String returns the node type's tag name, used as the "type" discriminator
// in the dict/JSON/YAML encoding.
func (n NodeType) String() string {
	if name, ok := nodeTypeNames[n]; ok {
		return name
	}
	return "Unknown"
}

var nodeTypeByName = func() map[string]NodeType {
	m := make(map[string]NodeType, len(nodeTypeNames))
	for ty, name := range nodeTypeNames {
		m[name] = ty
	}
	return m
}()

// Node is implemented by every AST node.
type Node interface {
	Type() NodeType
	Pos() sourcemap.Position
	String() string
}

// BaseNode carries the fields common to every node.
type BaseNode struct {
	NType    NodeType
	Position sourcemap.Position
}

func (b BaseNode) Type() NodeType          { return b.NType }
func (b BaseNode) Pos() sourcemap.Position { return b.Position }

// Argument is implemented by PositionalArgument and NamedArgument.
type Argument interface {
	Node
	isArgument()
}

// ModuleInstantiation is implemented by every statement-level construct
// (calls, control constructs, and modifier wrappers).
type ModuleInstantiation interface {
	Node
	isModuleInstantiation()
}

// BinaryOp enumerates binary operators in precedence-table order (spec.md §4.1).
type BinaryOp int

const (
	OpOr BinaryOp = iota
	OpAnd
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpBitOr
	OpBitAnd
	OpShl
	OpShr
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpExp
)

var binaryOpNames = map[BinaryOp]string{
	OpOr: "||", OpAnd: "&&", OpEq: "==", OpNe: "!=", OpLt: "<", OpLe: "<=",
	OpGt: ">", OpGe: ">=", OpBitOr: "|", OpBitAnd: "&", OpShl: "<<", OpShr: ">>",
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%", OpExp: "^",
}

func (o BinaryOp) String() string { return binaryOpNames[o] }

var binaryOpByName = func() map[string]BinaryOp {
	m := make(map[string]BinaryOp, len(binaryOpNames))
	for op, name := range binaryOpNames {
		m[name] = op
	}
	return m
}()

// UnaryOp enumerates unary prefix operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
	OpBitNot
)

var unaryOpNames = map[UnaryOp]string{OpNeg: "-", OpNot: "!", OpBitNot: "~"}

func (o UnaryOp) String() string { return unaryOpNames[o] }

var unaryOpByName = func() map[string]UnaryOp {
	m := make(map[string]UnaryOp, len(unaryOpNames))
	for op, name := range unaryOpNames {
		m[name] = op
	}
	return m
}()

// ModifierKind enumerates the four module-instantiation modifier prefixes.
type ModifierKind int

const (
	ModifierShowOnly ModifierKind = iota
	ModifierHighlight
	ModifierBackground
	ModifierDisable
)

var modifierKindNames = map[ModifierKind]string{
	ModifierShowOnly: "!", ModifierHighlight: "#", ModifierBackground: "%", ModifierDisable: "*",
}

func (m ModifierKind) String() string { return modifierKindNames[m] }

var modifierKindByName = func() map[string]ModifierKind {
	m := make(map[string]ModifierKind, len(modifierKindNames))
	for k, name := range modifierKindNames {
		m[name] = k
	}
	return m
}()
