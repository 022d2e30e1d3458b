package include

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeReader(files map[string]string) Reader {
	return func(path string) ([]byte, error) {
		content, ok := files[path]
		if !ok {
			return nil, fmt.Errorf("no such file: %s", path)
		}
		return []byte(content), nil
	}
}

func fakeResolver(t *testing.T) Resolver {
	return func(currentFile, libfile string) (string, error) {
		return libfile, nil
	}
}

func TestExpand_NoDirectives(t *testing.T) {
	source := "cube(10);\n"
	out, sm, err := Expand("main.scad", source, fakeResolver(t), fakeReader(nil))
	require.NoError(t, err)
	assert.Equal(t, source, out)

	loc, err := sm.GetLocation(0)
	require.NoError(t, err)
	assert.Equal(t, "main.scad", loc.File)
}

func TestExpand_SingleInclude(t *testing.T) {
	source := "include <lib.scad>\ncube(10);\n"
	files := map[string]string{"lib.scad": "module m() {}\n"}

	out, sm, err := Expand("main.scad", source, fakeResolver(t), fakeReader(files))
	require.NoError(t, err)
	assert.Equal(t, "module m() {}\ncube(10);\n", out)

	loc, err := sm.GetLocation(0)
	require.NoError(t, err)
	assert.Equal(t, "lib.scad", loc.File)

	cubeOffset := len("module m() {}\n")
	loc, err = sm.GetLocation(cubeOffset)
	require.NoError(t, err)
	assert.Equal(t, "main.scad", loc.File)
}

func TestExpand_NestedInclude(t *testing.T) {
	source := "include <a.scad>\n"
	files := map[string]string{
		"a.scad": "include <b.scad>\n",
		"b.scad": "module m() {}\n",
	}

	out, _, err := Expand("main.scad", source, fakeResolver(t), fakeReader(files))
	require.NoError(t, err)
	assert.Equal(t, "module m() {}\n", out)
}

func TestExpand_CycleSkipped(t *testing.T) {
	source := "include <a.scad>\n"
	files := map[string]string{
		"a.scad": "include <main.scad>\nmodule m() {}\n",
	}

	out, _, err := Expand("main.scad", source, fakeResolver(t), fakeReader(files))
	require.NoError(t, err)
	assert.NotContains(t, out, "include")
	assert.Contains(t, out, "module m() {}")
}

func TestExpand_UseDirectiveUntouched(t *testing.T) {
	source := "use <helpers.scad>\ncube(1);\n"
	out, _, err := Expand("main.scad", source, fakeResolver(t), fakeReader(nil))
	require.NoError(t, err)
	assert.Equal(t, source, out)
}

func TestExpand_ResolverError(t *testing.T) {
	source := "include <missing.scad>\n"
	resolve := func(currentFile, libfile string) (string, error) {
		return "", fmt.Errorf("not found: %s", libfile)
	}

	_, _, err := Expand("main.scad", source, resolve, fakeReader(nil))
	assert.Error(t, err)
}
