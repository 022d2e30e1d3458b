// Package parsercommon provides the primitive parsercombinator.Parser
// values shared by the expression and statement grammars: single-token
// matchers over tokenizer.Token, layout skipping, and small conversion
// helpers between tokenizer.Token and parsercombinator.Token.
package parsercommon

import (
	pc "github.com/shibukawa/parsercombinator"
	tok "github.com/shibukawa/scadparse/tokenizer"
)

var (
	// Space parses a whitespace token.
	Space = PrimitiveType("space", tok.WHITESPACE)
	// Comment parses a line or block comment token.
	Comment = PrimitiveType("comment", tok.LINE_COMMENT, tok.BLOCK_COMMENT)

	LParen   = PrimitiveType("lparen", tok.LPAREN)
	RParen   = PrimitiveType("rparen", tok.RPAREN)
	LBracket = PrimitiveType("lbracket", tok.LBRACKET)
	RBracket = PrimitiveType("rbracket", tok.RBRACKET)
	LBrace   = PrimitiveType("lbrace", tok.LBRACE)
	RBrace   = PrimitiveType("rbrace", tok.RBRACE)
	Comma    = PrimitiveType("comma", tok.COMMA)
	Semi     = PrimitiveType("semicolon", tok.SEMICOLON)
	Dot      = PrimitiveType("dot", tok.DOT)
	Colon    = PrimitiveType("colon", tok.COLON)
	Question = PrimitiveType("question", tok.QUESTION)
	Assign   = PrimitiveType("assign", tok.ASSIGN)

	Number = PrimitiveType("number", tok.NUMBER)
	Str    = PrimitiveType("string", tok.STRING)
	Path   = PrimitiveType("path", tok.PATH)
	True   = PrimitiveType("true", tok.TRUE)
	False  = PrimitiveType("false", tok.FALSE)
	Undef  = PrimitiveType("undef", tok.UNDEF)

	Identifier = PrimitiveType("identifier", tok.IDENTIFIER)

	KwModule           = PrimitiveType("module", tok.MODULE)
	KwFunction         = PrimitiveType("function", tok.FUNCTION)
	KwIf               = PrimitiveType("if", tok.IF)
	KwElse             = PrimitiveType("else", tok.ELSE)
	KwFor              = PrimitiveType("for", tok.FOR)
	KwLet              = PrimitiveType("let", tok.LET)
	KwAssert           = PrimitiveType("assert", tok.ASSERT)
	KwEcho             = PrimitiveType("echo", tok.ECHO)
	KwEach             = PrimitiveType("each", tok.EACH)
	KwUse              = PrimitiveType("use", tok.USE)
	KwInclude          = PrimitiveType("include", tok.INCLUDE)
	KwIntersectionFor  = PrimitiveType("intersection_for", tok.INTERSECTION_FOR)

	OpEq     = PrimitiveType("eq", tok.EQ)
	OpNe     = PrimitiveType("ne", tok.NE)
	OpLt     = PrimitiveType("lt", tok.LT)
	OpLe     = PrimitiveType("le", tok.LE)
	OpGt     = PrimitiveType("gt", tok.GT)
	OpGe     = PrimitiveType("ge", tok.GE)
	OpPlus   = PrimitiveType("plus", tok.PLUS)
	OpMinus  = PrimitiveType("minus", tok.MINUS)
	OpStar   = PrimitiveType("star", tok.STAR)
	OpSlash  = PrimitiveType("slash", tok.SLASH)
	OpPct    = PrimitiveType("percent", tok.PERCENT)
	OpCaret  = PrimitiveType("caret", tok.CARET)
	OpAnd    = PrimitiveType("and", tok.AND)
	OpOr     = PrimitiveType("or", tok.OR)
	OpBang   = PrimitiveType("bang", tok.BANG)
	OpBitAnd = PrimitiveType("bitand", tok.BITAND)
	OpBitOr  = PrimitiveType("bitor", tok.BITOR)
	OpBitNot = PrimitiveType("bitnot", tok.BITNOT)
	OpShl    = PrimitiveType("shl", tok.SHL)
	OpShr    = PrimitiveType("shr", tok.SHR)
	OpHash   = PrimitiveType("hash", tok.HASH)

	// Layout consumes zero or more whitespace/comment tokens and drops them.
	Layout = pc.Drop(pc.ZeroOrMore("layout", pc.Or(Space, Comment)))
	// EOS matches end of token stream.
	EOS = pc.EOS[tok.Token]()
)

// PrimitiveType returns a parser matching a single token of one of the
// given types.
func PrimitiveType(name string, types ...tok.TokenType) pc.Parser[tok.Token] {
	return func(pctx *pc.ParseContext[tok.Token], tokens []pc.Token[tok.Token]) (int, []pc.Token[tok.Token], error) {
		if len(tokens) == 0 {
			return 0, nil, pc.ErrNotMatch
		}
		for _, ty := range types {
			if tokens[0].Val.Type == ty {
				return 1, tokens[:1], nil
			}
		}
		return 0, nil, pc.ErrNotMatch
	}
}

// WS wraps a token parser to consume trailing layout.
func WS(p pc.Parser[tok.Token]) pc.Parser[tok.Token] {
	return pc.Seq(p, Layout)
}

// ToParserToken converts raw tokenizer output into parsercombinator's
// token wrapper, carrying position and the original tok.Token as Val.
func ToParserToken(tokens []tok.Token) []pc.Token[tok.Token] {
	out := make([]pc.Token[tok.Token], len(tokens))
	for i, t := range tokens {
		out[i] = pc.Token[tok.Token]{
			Type: t.Type.String(),
			Pos: &pc.Pos{
				Line:  t.Position.Line,
				Col:   t.Position.Column,
				Index: t.Position.Offset,
			},
			Val: t,
			Raw: t.Value,
		}
	}
	return out
}
