package parser

import (
	"github.com/shibukawa/scadparse/ast"
	"github.com/shibukawa/scadparse/sourcemap"
	tok "github.com/shibukawa/scadparse/tokenizer"
)

// Entity is the value carried through the expression/statement grammar's
// parsercombinator.Token[Entity] stream. Original holds the raw token for
// entities produced by a single-token primitive (and the member name for
// a member tail); entities built by composite rules leave it zero. At
// most one of the payload fields below is set, depending on which rule
// produced the entity.
type Entity struct {
	Original tok.Token
	spaces   []tok.Token

	Node    ast.Node
	Args    []ast.Argument
	Params  []*ast.Parameter
	Assigns []*ast.Assignment
	Insts   []ast.ModuleInstantiation
	Stmts   []ast.Node
}

// pos resolves a matched token's position. When the grammar carries a
// SourceMap (the main file included other files), the combined-buffer
// offset is mapped back through it to the token's true origin/line/
// column; otherwise the raw tokenizer position is reported against the
// single origin the grammar was built for.
func (g *grammar) pos(t tok.Token) sourcemap.Position {
	if g.sm != nil {
		if loc, err := g.sm.GetLocation(t.Position.Offset); err == nil {
			return loc
		}
	}
	return sourcemap.Position{File: g.origin, Offset: t.Position.Offset, Line: t.Position.Line, Column: t.Position.Column}
}
