// Package parser implements the OpenSCAD PEG grammar and AST builder (P
// and B) on top of github.com/shibukawa/parsercombinator. The grammar is
// rebuilt fresh for every call to Parse so that packrat memoization never
// leaks between independent parses (spec's "parser memoization edge
// case" design note).
package parser

import (
	pc "github.com/shibukawa/parsercombinator"
	"github.com/shibukawa/scadparse/ast"
	"github.com/shibukawa/scadparse/sourcemap"
	tok "github.com/shibukawa/scadparse/tokenizer"
)

// grammar holds the mutually recursive rule set for a single parse. Rules
// reference each other through the struct's fields via pc.Lazy, so field
// order doesn't matter; newGrammar builds every rule before any is used.
type grammar struct {
	origin  string
	options Options
	// sm is non-nil when the source being parsed is a combined buffer
	// produced by the include pre-processor; node positions are then
	// resolved through it instead of the raw tokenizer position.
	sm *sourcemap.SourceMap
	// comments holds every LINE_COMMENT/BLOCK_COMMENT token from the raw
	// token stream, set before g.file runs when options.IncludeComments
	// is true so its Trans callback can interleave CommentLine/
	// CommentBlock nodes among the statements.
	comments []tok.Token

	expr       pc.Parser[Entity]
	primary    pc.Parser[Entity]
	postfix    pc.Parser[Entity]
	argList    pc.Parser[Entity]
	paramList  pc.Parser[Entity]
	assignList pc.Parser[Entity]
	vectorLike pc.Parser[Entity]
	compFrag   pc.Parser[Entity]

	instantiation pc.Parser[Entity]
	instBlock     pc.Parser[Entity]
	statement     pc.Parser[Entity]
	file          pc.Parser[Entity]
}

func newGrammar(origin string, options Options, sm *sourcemap.SourceMap) *grammar {
	g := &grammar{origin: origin, options: options, sm: sm}
	g.buildExpressionGrammar()
	g.buildStatementGrammar()
	return g
}

// Parse runs the grammar's entry rule ("file") against source, tagging
// every node's position with origin directly. Used for string input and
// for file input parsed with ProcessIncludes off.
func Parse(origin, source string, options Options) (*ast.File, error) {
	return parseWithMap(origin, source, options, nil)
}

// ParseCombined runs the grammar against a buffer already produced by
// the include pre-processor (include/preprocessor.go), resolving each
// node's position through sm so included content reports its own
// origin/line/column rather than the combined buffer's.
func ParseCombined(source string, options Options, sm *sourcemap.SourceMap) (*ast.File, error) {
	return parseWithMap("", source, options, sm)
}

func parseWithMap(origin, source string, options Options, sm *sourcemap.SourceMap) (*ast.File, error) {
	tz := tok.NewScadTokenizer(source)
	tokens, err := tz.AllTokens()
	if err != nil {
		return nil, &ParseError{Message: err.Error()}
	}

	g := newGrammar(origin, options, sm)
	if options.IncludeComments {
		g.comments = commentTokens(tokens)
	}
	pctx := &pc.ParseContext[Entity]{}
	pcTokens := TokenToEntity(tokens)

	consumed, result, err := g.file(pctx, pcTokens)
	if err != nil {
		return nil, translateParseError(err, pcTokens)
	}
	if consumed < len(pcTokens) {
		return nil, &ParseError{
			Offset:   pcTokens[consumed].Pos.Index,
			Expected: []string{"statement", "EOF"},
			Message:  "unexpected token after top-level statements",
		}
	}
	if len(result) == 0 {
		return nil, &ParseError{Message: "empty parse result"}
	}

	file, ok := result[0].Val.Node.(*ast.File)
	if !ok {
		return nil, &ParseError{Message: "grammar did not produce a File node"}
	}
	return file, nil
}

// commentTokens filters the raw token stream down to comment tokens, in
// source order.
func commentTokens(tokens []tok.Token) []tok.Token {
	var out []tok.Token
	for _, t := range tokens {
		if t.Type == tok.LINE_COMMENT || t.Type == tok.BLOCK_COMMENT {
			out = append(out, t)
		}
	}
	return out
}
