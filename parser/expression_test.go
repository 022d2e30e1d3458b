package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/scadparse/ast"
)

func binExpr(t *testing.T, source string) *ast.BinaryExpr {
	t.Helper()
	file, err := Parse("test.scad", source, DefaultOptions)
	assert.NoError(t, err)
	assign := file.Statements[0].(*ast.Assignment)
	bin, ok := assign.Value.(*ast.BinaryExpr)
	assert.True(t, ok)
	return bin
}

func TestParse_MultiplicativeBindsTighterThanAdditive(t *testing.T) {
	bin := binExpr(t, "x = 1 + 2 * 3;\n")
	assert.Equal(t, ast.OpAdd, bin.Op)
	_, leftIsNum := bin.Left.(*ast.NumberLiteral)
	assert.True(t, leftIsNum)

	right, ok := bin.Right.(*ast.BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.OpMul, right.Op)
}

func TestParse_AdditiveBindsTighterThanShift(t *testing.T) {
	bin := binExpr(t, "x = 1 << 2 + 3;\n")
	assert.Equal(t, ast.OpShl, bin.Op)
	right, ok := bin.Right.(*ast.BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.OpAdd, right.Op)
}

func TestParse_ShiftBindsTighterThanBitwiseAnd(t *testing.T) {
	bin := binExpr(t, "x = 1 & 2 << 3;\n")
	assert.Equal(t, ast.OpBitAnd, bin.Op)
	right, ok := bin.Right.(*ast.BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.OpShl, right.Op)
}

func TestParse_BitwiseAndBindsTighterThanBitwiseOr(t *testing.T) {
	bin := binExpr(t, "x = 1 | 2 & 3;\n")
	assert.Equal(t, ast.OpBitOr, bin.Op)
	right, ok := bin.Right.(*ast.BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.OpBitAnd, right.Op)
}

func TestParse_BitwiseOrBindsTighterThanRelational(t *testing.T) {
	bin := binExpr(t, "x = 1 < 2 | 3;\n")
	assert.Equal(t, ast.OpLt, bin.Op)
	right, ok := bin.Right.(*ast.BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.OpBitOr, right.Op)
}

func TestParse_RelationalBindsTighterThanEquality(t *testing.T) {
	bin := binExpr(t, "x = 1 == 2 < 3;\n")
	assert.Equal(t, ast.OpEq, bin.Op)
	right, ok := bin.Right.(*ast.BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.OpLt, right.Op)
}

func TestParse_EqualityBindsTighterThanLogicalAnd(t *testing.T) {
	bin := binExpr(t, "x = a && b == c;\n")
	assert.Equal(t, ast.OpAnd, bin.Op)
	right, ok := bin.Right.(*ast.BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.OpEq, right.Op)
}

func TestParse_LogicalAndBindsTighterThanLogicalOr(t *testing.T) {
	bin := binExpr(t, "x = a || b && c;\n")
	assert.Equal(t, ast.OpOr, bin.Op)
	right, ok := bin.Right.(*ast.BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.OpAnd, right.Op)
}

func TestParse_ExponentIsRightAssociative(t *testing.T) {
	bin := binExpr(t, "x = 2 ^ 3 ^ 2;\n")
	assert.Equal(t, ast.OpExp, bin.Op)
	_, leftIsNum := bin.Left.(*ast.NumberLiteral)
	assert.True(t, leftIsNum)

	right, ok := bin.Right.(*ast.BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.OpExp, right.Op)
}

func TestParse_AdditiveIsLeftAssociative(t *testing.T) {
	bin := binExpr(t, "x = 1 - 2 - 3;\n")
	assert.Equal(t, ast.OpSub, bin.Op)
	left, ok := bin.Left.(*ast.BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.OpSub, left.Op)
	_, rightIsNum := bin.Right.(*ast.NumberLiteral)
	assert.True(t, rightIsNum)
}

func TestParse_RangeLiteralWithStep(t *testing.T) {
	file, err := Parse("test.scad", "x = [0:2:10];\n", DefaultOptions)
	assert.NoError(t, err)

	assign := file.Statements[0].(*ast.Assignment)
	rng, ok := assign.Value.(*ast.RangeLiteral)
	assert.True(t, ok)
	assert.True(t, rng.Step != nil)
	assert.True(t, rng.Start != nil)
	assert.True(t, rng.End != nil)
}

func TestParse_RangeLiteralWithoutStep(t *testing.T) {
	file, err := Parse("test.scad", "x = [0:10];\n", DefaultOptions)
	assert.NoError(t, err)

	assign := file.Statements[0].(*ast.Assignment)
	rng, ok := assign.Value.(*ast.RangeLiteral)
	assert.True(t, ok)
	assert.True(t, rng.Step == nil)
}

func TestParse_EmptyVectorLiteral(t *testing.T) {
	file, err := Parse("test.scad", "x = [];\n", DefaultOptions)
	assert.NoError(t, err)

	assign := file.Statements[0].(*ast.Assignment)
	vec, ok := assign.Value.(*ast.VectorLiteral)
	assert.True(t, ok)
	assert.Equal(t, 0, len(vec.Elements))
}

func TestParse_PostfixCallIndexMemberChain(t *testing.T) {
	file, err := Parse("test.scad", "x = f(1)[0].y;\n", DefaultOptions)
	assert.NoError(t, err)

	assign := file.Statements[0].(*ast.Assignment)
	member, ok := assign.Value.(*ast.MemberExpr)
	assert.True(t, ok)
	assert.Equal(t, "y", member.Name)

	index, ok := member.Target.(*ast.IndexExpr)
	assert.True(t, ok)

	call, ok := index.Target.(*ast.CallExpr)
	assert.True(t, ok)
	callee, ok := call.Callee.(*ast.Identifier)
	assert.True(t, ok)
	assert.Equal(t, "f", callee.Name)
}

func TestParse_StringEscapes(t *testing.T) {
	file, err := Parse("test.scad", `x = "a\nb\tc\"d";`+"\n", DefaultOptions)
	assert.NoError(t, err)

	assign := file.Statements[0].(*ast.Assignment)
	str, ok := assign.Value.(*ast.StringLiteral)
	assert.True(t, ok)
	assert.Equal(t, "a\nb\tc\"d", str.Value)
}

func TestParse_StringNonASCIILiteral(t *testing.T) {
	file, err := Parse("test.scad", `x = "é";`+"\n", DefaultOptions)
	assert.NoError(t, err)

	assign := file.Statements[0].(*ast.Assignment)
	str, ok := assign.Value.(*ast.StringLiteral)
	assert.True(t, ok)
	assert.Equal(t, "é", str.Value)
}

func TestParse_NamedAndPositionalArguments(t *testing.T) {
	file, err := Parse("test.scad", "cube(10, center=true);\n", DefaultOptions)
	assert.NoError(t, err)

	call, ok := file.Statements[0].(*ast.ModuleCall)
	assert.True(t, ok)
	assert.Equal(t, 2, len(call.Arguments))

	_, ok = call.Arguments[0].(*ast.PositionalArgument)
	assert.True(t, ok)

	named, ok := call.Arguments[1].(*ast.NamedArgument)
	assert.True(t, ok)
	assert.Equal(t, "center", named.Name)
}
