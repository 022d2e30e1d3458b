package scadparse

import (
	"testing"

	"github.com/shibukawa/scadparse/ast"
	"github.com/shibukawa/scadparse/parser"
	"github.com/stretchr/testify/assert"
)

func TestAstCache_GetMiss(t *testing.T) {
	c := &astCache{entries: make(map[cacheKey]cacheEntry)}
	_, ok := c.get("foo.scad", parser.DefaultOptions, 1)
	assert.False(t, ok)
}

func TestAstCache_PutThenGet(t *testing.T) {
	c := &astCache{entries: make(map[cacheKey]cacheEntry)}
	file := &ast.File{}

	c.put("foo.scad", parser.DefaultOptions, 100, file)

	got, ok := c.get("foo.scad", parser.DefaultOptions, 100)
	assert.True(t, ok)
	assert.Same(t, file, got)
}

func TestAstCache_StaleMtimeMisses(t *testing.T) {
	c := &astCache{entries: make(map[cacheKey]cacheEntry)}
	c.put("foo.scad", parser.DefaultOptions, 100, &ast.File{})

	_, ok := c.get("foo.scad", parser.DefaultOptions, 200)
	assert.False(t, ok)
}

func TestAstCache_DifferentOptionsDoNotShareEntry(t *testing.T) {
	c := &astCache{entries: make(map[cacheKey]cacheEntry)}
	withIncludes := parser.Options{ProcessIncludes: true}
	withoutIncludes := parser.Options{ProcessIncludes: false}

	c.put("foo.scad", withIncludes, 100, &ast.File{})

	_, ok := c.get("foo.scad", withoutIncludes, 100)
	assert.False(t, ok)
}

func TestAstCache_Clear(t *testing.T) {
	c := &astCache{entries: make(map[cacheKey]cacheEntry)}
	c.put("foo.scad", parser.DefaultOptions, 100, &ast.File{})

	c.clear()

	_, ok := c.get("foo.scad", parser.DefaultOptions, 100)
	assert.False(t, ok)
}
