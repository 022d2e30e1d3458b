package parser

import (
	pc "github.com/shibukawa/parsercombinator"
	tok "github.com/shibukawa/scadparse/tokenizer"
)

func space() pc.Parser[Entity] {
	return func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) (int, []pc.Token[Entity], error) {
		if len(tokens) == 0 || tokens[0].Val.Original.Type != tok.WHITESPACE {
			return 0, nil, pc.ErrNotMatch
		}
		return 1, tokens[:1], nil
	}
}

func comment() pc.Parser[Entity] {
	return func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) (int, []pc.Token[Entity], error) {
		if len(tokens) == 0 {
			return 0, nil, pc.ErrNotMatch
		}
		ty := tokens[0].Val.Original.Type
		if ty != tok.LINE_COMMENT && ty != tok.BLOCK_COMMENT {
			return 0, nil, pc.ErrNotMatch
		}
		return 1, tokens[:1], nil
	}
}

// ws consumes trailing whitespace/comment tokens and records them on the
// matched token's Entity.spaces. Nothing reads spaces back: comment nodes
// for IncludeComments are built from the raw token stream (commentTokens).
func ws(token pc.Parser[Entity]) pc.Parser[Entity] {
	return pc.Trans(
		pc.Seq(token, pc.ZeroOrMore("layout", pc.Or(space(), comment()))),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			var spaces []tok.Token
			for _, t := range tokens[1:] {
				spaces = append(spaces, t.Val.Original)
			}
			tokens[0].Val.spaces = spaces
			return tokens[:1], nil
		},
	)
}

func primitive(name string, types ...tok.TokenType) pc.Parser[Entity] {
	return ws(func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) (int, []pc.Token[Entity], error) {
		if len(tokens) == 0 {
			return 0, nil, pc.ErrNotMatch
		}
		o := tokens[0].Val.Original
		for _, ty := range types {
			if o.Type == ty {
				return 1, []pc.Token[Entity]{{Type: name, Pos: tokens[0].Pos, Val: Entity{Original: o}, Raw: o.Value}}, nil
			}
		}
		return 0, nil, pc.ErrNotMatch
	})
}

var (
	lparen    = primitive("lparen", tok.LPAREN)
	rparen    = primitive("rparen", tok.RPAREN)
	lbracket  = primitive("lbracket", tok.LBRACKET)
	rbracket  = primitive("rbracket", tok.RBRACKET)
	lbrace    = primitive("lbrace", tok.LBRACE)
	rbrace    = primitive("rbrace", tok.RBRACE)
	comma     = primitive("comma", tok.COMMA)
	semi      = primitive("semi", tok.SEMICOLON)
	dot       = primitive("dot", tok.DOT)
	colon     = primitive("colon", tok.COLON)
	question  = primitive("question", tok.QUESTION)
	assignTok = primitive("assign", tok.ASSIGN)
	hashTok   = primitive("hash", tok.HASH)
	bangTok   = primitive("bang", tok.BANG)

	numberTok = primitive("number", tok.NUMBER)
	stringTok = primitive("string", tok.STRING)
	pathTok   = primitive("path", tok.PATH)
	trueTok   = primitive("true", tok.TRUE)
	falseTok  = primitive("false", tok.FALSE)
	undefTok  = primitive("undef", tok.UNDEF)
	identTok  = primitive("identifier", tok.IDENTIFIER)

	kwModule          = primitive("module", tok.MODULE)
	kwFunction        = primitive("function", tok.FUNCTION)
	kwIf              = primitive("if", tok.IF)
	kwElse            = primitive("else", tok.ELSE)
	kwFor             = primitive("for", tok.FOR)
	kwLet             = primitive("let", tok.LET)
	kwAssert          = primitive("assert", tok.ASSERT)
	kwEcho            = primitive("echo", tok.ECHO)
	kwEach            = primitive("each", tok.EACH)
	kwUse             = primitive("use", tok.USE)
	kwInclude         = primitive("include", tok.INCLUDE)
	kwIntersectionFor = primitive("intersection_for", tok.INTERSECTION_FOR)

	eqOp     = primitive("eq", tok.EQ)
	neOp     = primitive("ne", tok.NE)
	ltOp     = primitive("lt", tok.LT)
	leOp     = primitive("le", tok.LE)
	gtOp     = primitive("gt", tok.GT)
	geOp     = primitive("ge", tok.GE)
	plusOp   = primitive("plus", tok.PLUS)
	minusOp  = primitive("minus", tok.MINUS)
	starOp   = primitive("star", tok.STAR)
	slashOp  = primitive("slash", tok.SLASH)
	pctOp    = primitive("percent", tok.PERCENT)
	caretOp  = primitive("caret", tok.CARET)
	andOp    = primitive("and", tok.AND)
	orOp     = primitive("or", tok.OR)
	bitandOp = primitive("bitand", tok.BITAND)
	bitorOp  = primitive("bitor", tok.BITOR)
	bitnotOp = primitive("bitnot", tok.BITNOT)
	shlOp    = primitive("shl", tok.SHL)
	shrOp    = primitive("shr", tok.SHR)

	eos = pc.EOS[Entity]()
)

// TokenToEntity wraps raw tokenizer output for the Entity-level grammar,
// discarding EOF (EOS matches stream exhaustion directly).
func TokenToEntity(tokens []tok.Token) []pc.Token[Entity] {
	out := make([]pc.Token[Entity], 0, len(tokens))
	for _, t := range tokens {
		if t.Type == tok.EOF {
			continue
		}
		out = append(out, pc.Token[Entity]{
			Type: "raw",
			Pos:  &pc.Pos{Line: t.Position.Line, Col: t.Position.Column, Index: t.Position.Offset},
			Val:  Entity{Original: t},
			Raw:  t.Value,
		})
	}
	return out
}
