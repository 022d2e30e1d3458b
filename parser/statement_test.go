package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/scadparse/ast"
)

func TestParse_ForInstantiation(t *testing.T) {
	file, err := Parse("test.scad", "for (i = [0:10]) cube(i);\n", DefaultOptions)
	assert.NoError(t, err)

	forInst, ok := file.Statements[0].(*ast.ModFor)
	assert.True(t, ok)
	assert.Equal(t, 1, len(forInst.Vars))
	assert.Equal(t, "i", forInst.Vars[0].Name)

	rng, ok := forInst.Vars[0].Value.(*ast.RangeLiteral)
	assert.True(t, ok)
	assert.True(t, rng.Step == nil)

	assert.Equal(t, 1, len(forInst.Body))
}

func TestParse_LetInstantiation(t *testing.T) {
	file, err := Parse("test.scad", "let (a = 1, b = 2) cube(a + b);\n", DefaultOptions)
	assert.NoError(t, err)

	letInst, ok := file.Statements[0].(*ast.ModLet)
	assert.True(t, ok)
	assert.Equal(t, 2, len(letInst.Assignments))
}

func TestParse_EchoAndAssertStatements(t *testing.T) {
	file, err := Parse("test.scad", "echo(\"hi\");\nassert(true);\n", DefaultOptions)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(file.Statements))

	_, ok := file.Statements[0].(*ast.ModEcho)
	assert.True(t, ok)
	_, ok = file.Statements[1].(*ast.ModAssert)
	assert.True(t, ok)
}

func TestParse_FunctionDeclaration(t *testing.T) {
	file, err := Parse("test.scad", "function add(a, b) = a + b;\n", DefaultOptions)
	assert.NoError(t, err)

	fn, ok := file.Statements[0].(*ast.FunctionDeclaration)
	assert.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, 2, len(fn.Parameters))

	body, ok := fn.Body.(*ast.BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.OpAdd, body.Op)
}

func TestParse_TernaryExpr(t *testing.T) {
	file, err := Parse("test.scad", "x = a ? 1 : 2;\n", DefaultOptions)
	assert.NoError(t, err)

	assign := file.Statements[0].(*ast.Assignment)
	ternary, ok := assign.Value.(*ast.TernaryExpr)
	assert.True(t, ok)
	assert.True(t, ternary.Cond != nil)
	assert.True(t, ternary.Then != nil)
	assert.True(t, ternary.Else != nil)
}

func TestParse_VectorLiteral(t *testing.T) {
	file, err := Parse("test.scad", "v = [1, 2, 3];\n", DefaultOptions)
	assert.NoError(t, err)

	assign := file.Statements[0].(*ast.Assignment)
	vec, ok := assign.Value.(*ast.VectorLiteral)
	assert.True(t, ok)
	assert.Equal(t, 3, len(vec.Elements))
}

func TestParse_ListComprehension(t *testing.T) {
	file, err := Parse("test.scad", "v = [for (i = [0:5]) i * 2];\n", DefaultOptions)
	assert.NoError(t, err)

	assign := file.Statements[0].(*ast.Assignment)
	_, ok := assign.Value.(*ast.ListComprehension)
	assert.True(t, ok)
}

func TestParse_CommentsDroppedByDefault(t *testing.T) {
	file, err := Parse("test.scad", "// a comment\ncube(1);\n", DefaultOptions)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(file.Statements))

	_, ok := file.Statements[0].(*ast.ModuleCall)
	assert.True(t, ok)
}

func TestParse_IncludeCommentsInterleavesCommentNodes(t *testing.T) {
	source := "// leading\ncube(1);\n/* trailing */\nsphere(1);\n"
	file, err := Parse("test.scad", source, Options{IncludeComments: true})
	assert.NoError(t, err)
	assert.Equal(t, 4, len(file.Statements))

	_, ok := file.Statements[0].(*ast.CommentLine)
	assert.True(t, ok)
	_, ok = file.Statements[1].(*ast.ModuleCall)
	assert.True(t, ok)
	_, ok = file.Statements[2].(*ast.CommentBlock)
	assert.True(t, ok)
	_, ok = file.Statements[3].(*ast.ModuleCall)
	assert.True(t, ok)
}

func TestParse_IntersectionFor(t *testing.T) {
	file, err := Parse("test.scad", "intersection_for (i = [0:3]) cube(i);\n", DefaultOptions)
	assert.NoError(t, err)

	_, ok := file.Statements[0].(*ast.ModIntersectionFor)
	assert.True(t, ok)
}
