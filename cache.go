package scadparse

import (
	"sync"

	"github.com/shibukawa/scadparse/ast"
	"github.com/shibukawa/scadparse/parser"
)

// cacheKey identifies one cached parse: ParseFile results differ by
// requested options as well as by path, so both are part of the key
// (spec's "options_signature").
type cacheKey struct {
	path    string
	options parser.Options
}

type cacheEntry struct {
	mtime int64
	file  *ast.File
}

// astCache is the process-wide AST cache backing ParseFile/
// ParseLibraryFile. Mutations are mutually exclusive with reads; the
// returned *ast.File values are immutable after construction so callers
// never need to hold the lock while using a cached result.
type astCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
}

var defaultCache = &astCache{entries: make(map[cacheKey]cacheEntry)}

func (c *astCache) get(path string, options parser.Options, mtime int64) (*ast.File, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[cacheKey{path, options}]
	if !ok || entry.mtime != mtime {
		return nil, false
	}
	return entry.file, true
}

func (c *astCache) put(path string, options parser.Options, mtime int64, file *ast.File) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{path, options}] = cacheEntry{mtime: mtime, file: file}
}

func (c *astCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}
