package scadparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shibukawa/scadparse/ast"
	"github.com/shibukawa/scadparse/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseString_NoFileContext(t *testing.T) {
	file, err := ParseString("cube(10);\n", parser.DefaultOptions)
	require.NoError(t, err)
	require.Len(t, file.Statements, 1)
}

func TestParseString_IncludeSurvivesAsStatement(t *testing.T) {
	file, err := ParseString("include <lib.scad>\n", parser.DefaultOptions)
	require.NoError(t, err)
	require.Len(t, file.Statements, 1)
	_, ok := file.Statements[0].(*ast.IncludeStatement)
	assert.True(t, ok)
}

func TestParseFile_MissingFile(t *testing.T) {
	ClearCache()
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.scad"), parser.DefaultOptions)
	var nf *FileNotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestParseFile_ExpandsIncludes(t *testing.T) {
	ClearCache()
	dir := t.TempDir()
	libPath := filepath.Join(dir, "lib.scad")
	require.NoError(t, os.WriteFile(libPath, []byte("module m() {}\n"), 0o644))
	mainPath := filepath.Join(dir, "main.scad")
	require.NoError(t, os.WriteFile(mainPath, []byte("include <lib.scad>\nm();\n"), 0o644))

	file, err := ParseFile(mainPath, parser.DefaultOptions)
	require.NoError(t, err)
	require.Len(t, file.Statements, 2)
	decl, isModuleDecl := file.Statements[0].(*ast.ModuleDeclaration)
	assert.True(t, isModuleDecl)
	assert.Equal(t, libPath, decl.Pos().File)
	assert.Equal(t, 1, decl.Pos().Line)

	call, isCall := file.Statements[1].(*ast.ModuleCall)
	assert.True(t, isCall)
	assert.Equal(t, mainPath, call.Pos().File)
	assert.Equal(t, 2, call.Pos().Line)
}

func TestParseFile_NestedIncludePositionsReportOwnFile(t *testing.T) {
	ClearCache()
	dir := t.TempDir()
	grandchild := filepath.Join(dir, "grandchild.scad")
	require.NoError(t, os.WriteFile(grandchild, []byte("module leaf() {}\n"), 0o644))
	child := filepath.Join(dir, "child.scad")
	require.NoError(t, os.WriteFile(child, []byte("include <grandchild.scad>\nmodule mid() {}\n"), 0o644))
	mainPath := filepath.Join(dir, "main.scad")
	require.NoError(t, os.WriteFile(mainPath, []byte("include <child.scad>\nleaf();\n"), 0o644))

	file, err := ParseFile(mainPath, parser.DefaultOptions)
	require.NoError(t, err)
	require.Len(t, file.Statements, 3)

	leaf, ok := file.Statements[0].(*ast.ModuleDeclaration)
	require.True(t, ok)
	assert.Equal(t, grandchild, leaf.Pos().File)

	mid, ok := file.Statements[1].(*ast.ModuleDeclaration)
	require.True(t, ok)
	assert.Equal(t, child, mid.Pos().File)

	call, ok := file.Statements[2].(*ast.ModuleCall)
	require.True(t, ok)
	assert.Equal(t, mainPath, call.Pos().File)
}

func TestParseFile_ProcessIncludesFalseKeepsDirective(t *testing.T) {
	ClearCache()
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "main.scad")
	require.NoError(t, os.WriteFile(mainPath, []byte("include <lib.scad>\n"), 0o644))

	file, err := ParseFile(mainPath, parser.Options{ProcessIncludes: false})
	require.NoError(t, err)
	require.Len(t, file.Statements, 1)
	_, ok := file.Statements[0].(*ast.IncludeStatement)
	assert.True(t, ok)
}

func TestParseFile_CachesResult(t *testing.T) {
	ClearCache()
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "main.scad")
	require.NoError(t, os.WriteFile(mainPath, []byte("cube(1);\n"), 0o644))

	first, err := ParseFile(mainPath, parser.DefaultOptions)
	require.NoError(t, err)
	second, err := ParseFile(mainPath, parser.DefaultOptions)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestFindLibraryFile_NotFound(t *testing.T) {
	t.Setenv("OPENSCADPATH", "")
	_, err := FindLibraryFile("", "does-not-exist.scad")
	var nf *LibraryNotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestParseLibraryFile_ResolvesAndParses(t *testing.T) {
	ClearCache()
	dir := t.TempDir()
	libPath := filepath.Join(dir, "lib.scad")
	require.NoError(t, os.WriteFile(libPath, []byte("module m() {}\n"), 0o644))
	currentFile := filepath.Join(dir, "main.scad")

	file, resolved, err := ParseLibraryFile(currentFile, "lib.scad", parser.DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, libPath, resolved)
	require.Len(t, file.Statements, 1)
}
