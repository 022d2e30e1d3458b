package parser

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/scadparse/ast"
)

func TestParse_EmptyFile(t *testing.T) {
	file, err := Parse("test.scad", "", DefaultOptions)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(file.Statements))
}

func TestParse_NumberLiteral(t *testing.T) {
	file, err := Parse("test.scad", "x = 1.5;\n", DefaultOptions)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(file.Statements))

	assign, ok := file.Statements[0].(*ast.Assignment)
	assert.True(t, ok)
	assert.Equal(t, "x", assign.Name)

	num, ok := assign.Value.(*ast.NumberLiteral)
	assert.True(t, ok)
	assert.Equal(t, "1.5", num.Text)
}

func TestParse_UnaryBindsTighterThanExponent(t *testing.T) {
	file, err := Parse("test.scad", "x = -2^2;\n", DefaultOptions)
	assert.NoError(t, err)

	assign := file.Statements[0].(*ast.Assignment)
	bin, ok := assign.Value.(*ast.BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.OpExp, bin.Op)

	left, ok := bin.Left.(*ast.UnaryExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.OpNeg, left.Op)
}

func TestParse_ModuleDeclAndCall(t *testing.T) {
	source := "module box(size=1) { cube(size); }\nbox(2);\n"
	file, err := Parse("test.scad", source, DefaultOptions)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(file.Statements))

	decl, ok := file.Statements[0].(*ast.ModuleDeclaration)
	assert.True(t, ok)
	assert.Equal(t, "box", decl.Name)
	assert.Equal(t, 1, len(decl.Parameters))
	assert.Equal(t, "size", decl.Parameters[0].Name)
	assert.Equal(t, 1, len(decl.Body))

	inner, ok := decl.Body[0].(*ast.ModuleCall)
	assert.True(t, ok)
	assert.Equal(t, "cube", inner.Name)

	call, ok := file.Statements[1].(*ast.ModuleCall)
	assert.True(t, ok)
	assert.Equal(t, "box", call.Name)
}

func TestParse_IfElseInstantiation(t *testing.T) {
	source := "if (x > 0) { cube(1); } else { sphere(1); }\n"
	file, err := Parse("test.scad", source, DefaultOptions)
	assert.NoError(t, err)

	ifElse, ok := file.Statements[0].(*ast.ModIfElse)
	assert.True(t, ok)
	assert.Equal(t, 1, len(ifElse.Then))
	assert.Equal(t, 1, len(ifElse.Else))
}

func TestParse_ModifierPrefix(t *testing.T) {
	file, err := Parse("test.scad", "#cube(1);\n", DefaultOptions)
	assert.NoError(t, err)

	mod, ok := file.Statements[0].(*ast.Modifier)
	assert.True(t, ok)
	assert.Equal(t, ast.ModifierHighlight, mod.Kind)

	target, ok := mod.Target.(*ast.ModuleCall)
	assert.True(t, ok)
	assert.Equal(t, "cube", target.Name)
}

func TestParse_UseStatementAlwaysSurvives(t *testing.T) {
	file, err := Parse("test.scad", "use <helpers.scad>\n", DefaultOptions)
	assert.NoError(t, err)

	use, ok := file.Statements[0].(*ast.UseStatement)
	assert.True(t, ok)
	assert.Equal(t, "helpers.scad", use.Path)
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse("test.scad", "module (", DefaultOptions)
	assert.Error(t, err)

	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}
