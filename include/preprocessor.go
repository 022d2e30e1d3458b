// Package include implements the include pre-processor (IPP): it scans
// raw source for `include <path>` directives and splices the resolved
// file's content into a sourcemap.SourceMap-backed combined buffer so
// the grammar never has to know an include happened. `use` directives
// are left untouched; they survive into the AST as UseStatement nodes.
package include

import (
	"strings"

	"github.com/pkg/errors"
	pc "github.com/shibukawa/parsercombinator"
	"github.com/shibukawa/scadparse/parser/parsercommon"
	"github.com/shibukawa/scadparse/sourcemap"
	tok "github.com/shibukawa/scadparse/tokenizer"
)

// ErrCycle indicates an include directive re-entered a path already
// being expanded; the directive is skipped (treated as already
// expanded) rather than erroring, per spec, so this is exported for
// tests/observability, not returned by Expand.
var ErrCycle = errors.New("include cycle detected")

// Resolver finds an absolute path for libfile relative to currentFile.
// Satisfied by resolver.Resolve.
type Resolver func(currentFile, libfile string) (string, error)

// Reader reads a resolved file's contents. Satisfied by os.ReadFile.
type Reader func(path string) ([]byte, error)

var directivePattern = pc.Seq(parsercommon.KwInclude, parsercommon.Layout, parsercommon.Path)

type directiveMatch struct {
	outerStart int
	outerEnd   int
	path       string
}

// firstDirective returns the leftmost `include <path>` directive in
// source, or found=false if none remain. Strings and comments are
// never matched because they never tokenize as KwInclude/Path.
func firstDirective(source string) (directiveMatch, bool, error) {
	tz := tok.NewScadTokenizer(source)
	tokens, err := tz.AllTokens()
	if err != nil {
		return directiveMatch{}, false, errors.Wrap(err, "tokenizing for include scan")
	}
	pcTokens := parsercommon.ToParserToken(tokens)
	pctx := &pc.ParseContext[tok.Token]{}

	for i := range pcTokens {
		if pcTokens[i].Val.Type != tok.INCLUDE {
			continue
		}
		_, result, err := directivePattern(pctx, pcTokens[i:])
		if err != nil {
			continue
		}
		pathTok := result[len(result)-1]
		// PATH's Raw is the bracket-stripped content (tokenizer.readPath
		// excludes the delimiters from Value) but Pos points at the
		// opening '<', so the directive's full text spans Raw plus both
		// delimiters.
		return directiveMatch{
			outerStart: pcTokens[i].Pos.Index,
			outerEnd:   pathTok.Pos.Index + len(pathTok.Raw) + 2,
			path:       pathTok.Raw,
		}, true, nil
	}
	return directiveMatch{}, false, nil
}

// Expand builds a SourceMap seeded with origin/source, then repeatedly
// finds the leftmost include directive in the combined buffer -
// including ones that appeared inside just-spliced content - resolving
// it against the origin that directive's text actually belongs to
// (via sm.GetLocation), until no directives remain.
func Expand(origin, source string, resolve Resolver, read Reader) (string, *sourcemap.SourceMap, error) {
	sm := &sourcemap.SourceMap{}
	sm.AddOrigin(origin, source, -1, 0, 1, 1, false)

	stack := map[string]bool{origin: true}

	for {
		combined := sm.GetCombinedString()
		d, found, err := firstDirective(combined)
		if err != nil {
			return "", nil, err
		}
		if !found {
			break
		}

		loc, err := sm.GetLocation(d.outerStart)
		if err != nil {
			return "", nil, errors.Wrap(err, "locating include directive")
		}
		ownerOrigin := loc.File

		resolved, err := resolve(ownerOrigin, d.path)
		if err != nil {
			return "", nil, err
		}

		replaceLength := d.outerEnd - d.outerStart
		if stack[resolved] {
			sm.AddOrigin(ownerOrigin, strings.Repeat(" ", replaceLength), d.outerStart, replaceLength, loc.Line, loc.Column, false)
			continue
		}

		content, err := read(resolved)
		if err != nil {
			return "", nil, errors.Wrapf(err, "reading included file %q", resolved)
		}

		stack[resolved] = true
		sm.AddOrigin(resolved, string(content), d.outerStart, replaceLength, 1, 1, true)
	}

	return sm.GetCombinedString(), sm, nil
}
