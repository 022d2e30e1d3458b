// Package scadparse parses OpenSCAD source into an AST. ParseString
// parses an in-memory string with no file context; ParseFile and
// ParseLibraryFile additionally run the include pre-processor and
// library resolver and cache their result keyed by file mtime.
package scadparse

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shibukawa/scadparse/ast"
	"github.com/shibukawa/scadparse/include"
	"github.com/shibukawa/scadparse/parser"
	"github.com/shibukawa/scadparse/resolver"
)

// ParseString parses source with no originating file. The include
// pre-processor and library resolver never run for string input:
// `include`/`use` directives, if present, survive as IncludeStatement/
// UseStatement nodes regardless of options.ProcessIncludes.
func ParseString(source string, options parser.Options) (*ast.File, error) {
	invocationID := uuid.NewString()
	file, err := parser.Parse("<string>", source, options)
	if err != nil {
		return nil, errors.Wrapf(err, "parse invocation %s", invocationID)
	}
	return file, nil
}

// ParseFile parses the file at path. Unless options.ProcessIncludes is
// false, `include` directives are spliced in first via the include
// pre-processor and library resolver, and every node's position is
// resolved back to its true originating file. Results are cached by
// absolute path, options, and the file's modification time.
func ParseFile(path string, options parser.Options) (*ast.File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving absolute path for %q", path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &FileNotFoundError{Path: abs}
		}
		return nil, errors.Wrapf(err, "stat %q", abs)
	}
	mtime := info.ModTime().UnixNano()

	if cached, ok := defaultCache.get(abs, options, mtime); ok {
		return cached, nil
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", abs)
	}

	invocationID := uuid.NewString()
	file, err := parseFileContent(abs, string(content), options)
	if err != nil {
		return nil, errors.Wrapf(err, "parse invocation %s", invocationID)
	}

	defaultCache.put(abs, options, mtime, file)
	return file, nil
}

func parseFileContent(abs, source string, options parser.Options) (*ast.File, error) {
	if !options.ProcessIncludes {
		return parser.Parse(abs, source, options)
	}
	combined, sm, err := include.Expand(abs, source, resolver.Resolve, os.ReadFile)
	if err != nil {
		return nil, err
	}
	return parser.ParseCombined(combined, options, sm)
}

// ParseLibraryFile resolves libfile relative to currentFile via the
// library resolver, then parses it, returning the AST and the resolved
// absolute path.
func ParseLibraryFile(currentFile, libfile string, options parser.Options) (*ast.File, string, error) {
	resolved, err := FindLibraryFile(currentFile, libfile)
	if err != nil {
		return nil, "", err
	}
	file, err := ParseFile(resolved, options)
	if err != nil {
		return nil, "", err
	}
	return file, resolved, nil
}

// FindLibraryFile searches for libfile using the library resolver's
// fixed search order: absolute-and-exists, relative to currentFile's
// directory, OPENSCADPATH, then platform-default library directories.
func FindLibraryFile(currentFile, libfile string) (string, error) {
	resolved, err := resolver.Resolve(currentFile, libfile)
	if err != nil {
		var nf *resolver.NotFoundError
		if errors.As(err, &nf) {
			return "", &LibraryNotFoundError{CurrentFile: nf.CurrentFile, LibFile: nf.LibFile}
		}
		return "", err
	}
	return resolved, nil
}

// ClearCache empties the process-wide AST cache used by ParseFile and
// ParseLibraryFile. Intended for long-running hosts (editors, servers)
// that want to force a re-parse after external file changes they
// couldn't observe via mtime.
func ClearCache() {
	defaultCache.clear()
}
