package parser

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	pc "github.com/shibukawa/parsercombinator"
	"github.com/shibukawa/scadparse/ast"
	tok "github.com/shibukawa/scadparse/tokenizer"
	"github.com/shopspring/decimal"
)

// decodeString turns a STRING token's raw quoted text (escapes intact)
// into its decoded value. Raw includes the surrounding quotes.
func decodeString(raw string) (string, error) {
	if len(raw) < 2 {
		return "", errors.New("string literal too short")
	}
	body := raw[1 : len(raw)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", errors.New("dangling escape in string literal")
		}
		switch body[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'u':
			if i+4 >= len(body) {
				return "", errors.New("truncated \\u escape")
			}
			n, err := strconv.ParseUint(body[i+1:i+5], 16, 32)
			if err != nil {
				return "", errors.Wrap(err, "invalid \\u escape")
			}
			b.WriteRune(rune(n))
			i += 4
		default:
			return "", errors.Errorf("invalid escape \\%c", body[i])
		}
	}
	return b.String(), nil
}

func (g *grammar) buildExpressionGrammar() {
	numberLit := pc.Trans(numberTok, func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
		t := tokens[0].Val.Original
		val, err := decimal.NewFromString(t.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing number %q", t.Value)
		}
		tokens[0].Val.Node = &ast.NumberLiteral{
			BaseNode: ast.BaseNode{NType: ast.NumberLit, Position: g.pos(t)},
			Text:     t.Value, Value: val,
		}
		return tokens[:1], nil
	})

	stringLit := pc.Trans(stringTok, func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
		t := tokens[0].Val.Original
		val, err := decodeString(t.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing string literal at offset %d", t.Position.Offset)
		}
		tokens[0].Val.Node = &ast.StringLiteral{
			BaseNode: ast.BaseNode{NType: ast.StringLit, Position: g.pos(t)},
			Raw:      t.Value, Value: val,
		}
		return tokens[:1], nil
	})

	boolLit := pc.Trans(pc.Or(trueTok, falseTok), func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
		t := tokens[0].Val.Original
		tokens[0].Val.Node = &ast.BooleanLiteral{
			BaseNode: ast.BaseNode{NType: ast.BoolLit, Position: g.pos(t)},
			Value:    t.Value == "true",
		}
		return tokens[:1], nil
	})

	undefLit := pc.Trans(undefTok, func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
		t := tokens[0].Val.Original
		tokens[0].Val.Node = &ast.UndefLiteral{BaseNode: ast.BaseNode{NType: ast.UndefLit, Position: g.pos(t)}}
		return tokens[:1], nil
	})

	identifierExpr := pc.Trans(identTok, func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
		t := tokens[0].Val.Original
		tokens[0].Val.Node = &ast.Identifier{BaseNode: ast.BaseNode{NType: ast.IdentLit, Position: g.pos(t)}, Name: t.Value}
		return tokens[:1], nil
	})

	// argument := [identifier '='] expr
	argument := pc.Trans(
		pc.Seq(pc.Optional(pc.Seq(identTok, assignTok)), pc.Lazy(func() pc.Parser[Entity] { return g.expr })),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			valueTok := tokens[len(tokens)-1]
			value := valueTok.Val.Node
			var arg ast.Argument
			if len(tokens) == 3 {
				name := tokens[0].Val.Original
				arg = &ast.NamedArgument{
					BaseNode: ast.BaseNode{NType: ast.NamedArgNode, Position: g.pos(name)},
					Name:     name.Value, Value: value,
				}
			} else {
				arg = &ast.PositionalArgument{
					BaseNode: ast.BaseNode{NType: ast.PositionalArgNode, Position: valueTok.Val.Node.Pos()},
					Value:    value,
				}
			}
			return []pc.Token[Entity]{{Type: "argument", Pos: tokens[0].Pos, Val: Entity{Args: []ast.Argument{arg}}}}, nil
		},
	)

	g.argList = pc.Trans(
		pc.Optional(pc.Seq(argument, pc.ZeroOrMore("more-args", pc.Seq(comma, argument)))),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			var args []ast.Argument
			for _, t := range tokens {
				args = append(args, t.Val.Args...)
			}
			pos := &pc.Pos{}
			if len(tokens) > 0 {
				pos = tokens[0].Pos
			}
			return []pc.Token[Entity]{{Type: "arglist", Pos: pos, Val: Entity{Args: args}}}, nil
		},
	)

	// parameter := identifier ['=' expr]
	parameter := pc.Trans(
		pc.Seq(identTok, pc.Optional(pc.Seq(assignTok, pc.Lazy(func() pc.Parser[Entity] { return g.expr })))),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			name := tokens[0].Val.Original
			p := &ast.Parameter{BaseNode: ast.BaseNode{NType: ast.ParameterNode, Position: g.pos(name)}, Name: name.Value}
			if len(tokens) == 3 {
				p.Default = tokens[2].Val.Node
			}
			return []pc.Token[Entity]{{Type: "parameter", Pos: tokens[0].Pos, Val: Entity{Params: []*ast.Parameter{p}}}}, nil
		},
	)

	g.paramList = pc.Trans(
		pc.Optional(pc.Seq(parameter, pc.ZeroOrMore("more-params", pc.Seq(comma, parameter)))),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			var params []*ast.Parameter
			for _, t := range tokens {
				params = append(params, t.Val.Params...)
			}
			pos := &pc.Pos{}
			if len(tokens) > 0 {
				pos = tokens[0].Pos
			}
			return []pc.Token[Entity]{{Type: "paramlist", Pos: pos, Val: Entity{Params: params}}}, nil
		},
	)

	// assignment := identifier '=' expr  (used by let(...) and for(...) headers)
	assignment := pc.Trans(
		pc.Seq(identTok, assignTok, pc.Lazy(func() pc.Parser[Entity] { return g.expr })),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			name := tokens[0].Val.Original
			a := &ast.Assignment{
				BaseNode: ast.BaseNode{NType: ast.AssignmentNode, Position: g.pos(name)},
				Name:     name.Value, Value: tokens[2].Val.Node,
			}
			return []pc.Token[Entity]{{Type: "assignment", Pos: tokens[0].Pos, Val: Entity{Assigns: []*ast.Assignment{a}}}}, nil
		},
	)

	g.assignList = pc.Trans(
		pc.Seq(assignment, pc.ZeroOrMore("more-assigns", pc.Seq(comma, assignment))),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			var assigns []*ast.Assignment
			for _, t := range tokens {
				assigns = append(assigns, t.Val.Assigns...)
			}
			return []pc.Token[Entity]{{Type: "assignlist", Pos: tokens[0].Pos, Val: Entity{Assigns: assigns}}}, nil
		},
	)

	call := pc.Trans(
		pc.Seq(lparen, g.argList, rparen),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			return []pc.Token[Entity]{{Type: "call-tail", Pos: tokens[0].Pos, Val: Entity{Args: tokens[1].Val.Args}}}, nil
		},
	)

	index := pc.Trans(
		pc.Seq(lbracket, pc.Lazy(func() pc.Parser[Entity] { return g.expr }), rbracket),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			return []pc.Token[Entity]{{Type: "index-tail", Pos: tokens[0].Pos, Val: Entity{Node: tokens[1].Val.Node}}}, nil
		},
	)

	member := pc.Trans(
		pc.Seq(dot, identTok),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			name := tokens[1].Val.Original
			return []pc.Token[Entity]{{Type: "member-tail", Pos: tokens[0].Pos, Val: Entity{Original: name}}}, nil
		},
	)

	// vector := '[' expr (',' expr)* ']' ; range := '[' expr ':' expr [':' expr] ']'
	g.vectorLike = pc.Trans(
		pc.Seq(lbracket, pc.Optional(pc.Seq(
			pc.Lazy(func() pc.Parser[Entity] { return g.expr }),
			pc.Or(
				pc.OneOrMore("range-colon", pc.Seq(colon, pc.Lazy(func() pc.Parser[Entity] { return g.expr }))),
				pc.ZeroOrMore("more-elems", pc.Seq(comma, pc.Lazy(func() pc.Parser[Entity] { return g.expr }))),
			),
		)), rbracket),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			open := tokens[0]
			p := g.pos(open.Val.Original)
			if len(tokens) == 2 { // empty vector
				return []pc.Token[Entity]{{Type: "vector", Pos: open.Pos, Val: Entity{Node: &ast.VectorLiteral{BaseNode: ast.BaseNode{NType: ast.VectorLiteralNode, Position: p}}}}}, nil
			}
			body := tokens[1 : len(tokens)-1]
			first := body[0].Val.Node
			rest := body[1:]
			if len(rest) > 0 && rest[0].Type == "colon" {
				exprs := []ast.Node{first}
				for _, t := range rest {
					if t.Type == "colon" {
						continue
					}
					exprs = append(exprs, t.Val.Node)
				}
				r := &ast.RangeLiteral{BaseNode: ast.BaseNode{NType: ast.RangeLit, Position: p}, Start: exprs[0]}
				switch len(exprs) {
				case 2:
					r.End = exprs[1]
				case 3:
					r.Step = exprs[1]
					r.End = exprs[2]
				default:
					return nil, errors.New("range literal takes 2 or 3 parts")
				}
				return []pc.Token[Entity]{{Type: "range", Pos: open.Pos, Val: Entity{Node: r}}}, nil
			}
			elems := []ast.Node{first}
			for _, t := range rest {
				if t.Type == "comma" {
					continue
				}
				elems = append(elems, t.Val.Node)
			}
			return []pc.Token[Entity]{{Type: "vector", Pos: open.Pos, Val: Entity{Node: &ast.VectorLiteral{BaseNode: ast.BaseNode{NType: ast.VectorLiteralNode, Position: p}, Elements: elems}}}}, nil
		},
	)

	parenExpr := pc.Trans(
		pc.Seq(lparen, pc.Lazy(func() pc.Parser[Entity] { return g.expr }), rparen),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			return []pc.Token[Entity]{{Type: "paren", Pos: tokens[0].Pos, Val: Entity{Node: tokens[1].Val.Node}}}, nil
		},
	)

	letExpr := pc.Trans(
		pc.Seq(kwLet, lparen, g.assignList, rparen, pc.Lazy(func() pc.Parser[Entity] { return g.expr })),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			t := tokens[0].Val.Original
			return []pc.Token[Entity]{{Type: "let-expr", Pos: tokens[0].Pos, Val: Entity{Node: &ast.LetExpr{
				BaseNode: ast.BaseNode{NType: ast.LetExprNode, Position: g.pos(t)}, Assignments: tokens[2].Val.Assigns, Body: tokens[4].Val.Node,
			}}}}, nil
		},
	)

	echoExpr := pc.Trans(
		pc.Seq(kwEcho, lparen, g.argList, rparen, pc.Lazy(func() pc.Parser[Entity] { return g.expr })),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			t := tokens[0].Val.Original
			return []pc.Token[Entity]{{Type: "echo-expr", Pos: tokens[0].Pos, Val: Entity{Node: &ast.EchoExpr{
				BaseNode: ast.BaseNode{NType: ast.EchoExprNode, Position: g.pos(t)}, Arguments: tokens[2].Val.Args, Body: tokens[4].Val.Node,
			}}}}, nil
		},
	)

	assertExpr := pc.Trans(
		pc.Seq(kwAssert, lparen, g.argList, rparen, pc.Lazy(func() pc.Parser[Entity] { return g.expr })),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			t := tokens[0].Val.Original
			return []pc.Token[Entity]{{Type: "assert-expr", Pos: tokens[0].Pos, Val: Entity{Node: &ast.AssertExpr{
				BaseNode: ast.BaseNode{NType: ast.AssertExprNode, Position: g.pos(t)}, Arguments: tokens[2].Val.Args, Body: tokens[4].Val.Node,
			}}}}, nil
		},
	)

	functionLit := pc.Trans(
		pc.Seq(kwFunction, lparen, g.paramList, rparen, pc.Lazy(func() pc.Parser[Entity] { return g.expr })),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			t := tokens[0].Val.Original
			return []pc.Token[Entity]{{Type: "function-literal", Pos: tokens[0].Pos, Val: Entity{Node: &ast.FunctionLiteral{
				BaseNode: ast.BaseNode{NType: ast.FunctionLiteralNode, Position: g.pos(t)}, Parameters: tokens[2].Val.Params, Body: tokens[4].Val.Node,
			}}}}, nil
		},
	)

	// list comprehension fragment chain: (for(...)|let(...)|if(...)[else ...]|each)* body
	forFrag := pc.Trans(
		pc.Seq(kwFor, lparen, g.assignList, rparen, pc.Lazy(func() pc.Parser[Entity] { return g.compFrag })),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			t := tokens[0].Val.Original
			return []pc.Token[Entity]{{Type: "comp", Pos: tokens[0].Pos, Val: Entity{Node: &ast.ListCompFor{
				BaseNode: ast.BaseNode{NType: ast.ListCompForNode, Position: g.pos(t)}, Vars: tokens[2].Val.Assigns, Body: tokens[4].Val.Node,
			}}}}, nil
		},
	)
	cforFrag := pc.Trans(
		pc.Seq(kwFor, lparen, g.assignList, semi, pc.Lazy(func() pc.Parser[Entity] { return g.expr }), semi, g.assignList, rparen, pc.Lazy(func() pc.Parser[Entity] { return g.compFrag })),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			t := tokens[0].Val.Original
			return []pc.Token[Entity]{{Type: "comp", Pos: tokens[0].Pos, Val: Entity{Node: &ast.ListCompCFor{
				BaseNode: ast.BaseNode{NType: ast.ListCompCForNode, Position: g.pos(t)},
				Init:     tokens[2].Val.Assigns, Cond: tokens[4].Val.Node, Update: tokens[6].Val.Assigns, Body: tokens[8].Val.Node,
			}}}}, nil
		},
	)
	letFrag := pc.Trans(
		pc.Seq(kwLet, lparen, g.assignList, rparen, pc.Lazy(func() pc.Parser[Entity] { return g.compFrag })),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			t := tokens[0].Val.Original
			return []pc.Token[Entity]{{Type: "comp", Pos: tokens[0].Pos, Val: Entity{Node: &ast.ListCompLet{
				BaseNode: ast.BaseNode{NType: ast.ListCompLetNode, Position: g.pos(t)}, Assignments: tokens[2].Val.Assigns, Body: tokens[4].Val.Node,
			}}}}, nil
		},
	)
	eachFrag := pc.Trans(
		pc.Seq(kwEach, pc.Lazy(func() pc.Parser[Entity] { return g.compFrag })),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			t := tokens[0].Val.Original
			return []pc.Token[Entity]{{Type: "comp", Pos: tokens[0].Pos, Val: Entity{Node: &ast.ListCompEach{
				BaseNode: ast.BaseNode{NType: ast.ListCompEachNode, Position: g.pos(t)}, Body: tokens[1].Val.Node,
			}}}}, nil
		},
	)
	ifFrag := pc.Trans(
		pc.Seq(kwIf, lparen, pc.Lazy(func() pc.Parser[Entity] { return g.expr }), rparen, pc.Lazy(func() pc.Parser[Entity] { return g.compFrag }),
			pc.Optional(pc.Seq(kwElse, pc.Lazy(func() pc.Parser[Entity] { return g.compFrag })))),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			t := tokens[0].Val.Original
			if len(tokens) == 7 {
				return []pc.Token[Entity]{{Type: "comp", Pos: tokens[0].Pos, Val: Entity{Node: &ast.ListCompIfElse{
					BaseNode: ast.BaseNode{NType: ast.ListCompIfElseNode, Position: g.pos(t)},
					Cond:     tokens[2].Val.Node, Then: tokens[4].Val.Node, Else: tokens[6].Val.Node,
				}}}}, nil
			}
			return []pc.Token[Entity]{{Type: "comp", Pos: tokens[0].Pos, Val: Entity{Node: &ast.ListCompIf{
				BaseNode: ast.BaseNode{NType: ast.ListCompIfNode, Position: g.pos(t)}, Cond: tokens[2].Val.Node, Body: tokens[4].Val.Node,
			}}}}, nil
		},
	)

	g.compFrag = pc.Or(forFrag, cforFrag, letFrag, eachFrag, ifFrag, pc.Lazy(func() pc.Parser[Entity] { return g.expr }))

	listComprehension := pc.Trans(
		pc.Seq(lbracket, pc.Or(forFrag, cforFrag, letFrag, eachFrag, ifFrag), rbracket),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			open := tokens[0].Val.Original
			return []pc.Token[Entity]{{Type: "listcomp", Pos: tokens[0].Pos, Val: Entity{Node: &ast.ListComprehension{
				BaseNode: ast.BaseNode{NType: ast.ListComprehensionNode, Position: g.pos(open)}, Body: tokens[1].Val.Node,
			}}}}, nil
		},
	)

	g.primary = pc.Or(
		listComprehension,
		g.vectorLike,
		parenExpr,
		letExpr,
		echoExpr,
		assertExpr,
		functionLit,
		numberLit,
		stringLit,
		boolLit,
		undefLit,
		identifierExpr,
	)

	g.postfix = pc.Trans(
		pc.Seq(g.primary, pc.ZeroOrMore("postfix-tail", pc.Or(call, index, member))),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			node := tokens[0].Val.Node
			for _, tail := range tokens[1:] {
				switch tail.Type {
				case "call-tail":
					node = &ast.CallExpr{BaseNode: ast.BaseNode{NType: ast.CallExprNode, Position: node.Pos()}, Callee: node, Arguments: tail.Val.Args}
				case "index-tail":
					node = &ast.IndexExpr{BaseNode: ast.BaseNode{NType: ast.IndexExprNode, Position: node.Pos()}, Target: node, Index: tail.Val.Node}
				case "member-tail":
					node = &ast.MemberExpr{BaseNode: ast.BaseNode{NType: ast.MemberExprNode, Position: node.Pos()}, Target: node, Name: tail.Val.Original.Value}
				}
			}
			return []pc.Token[Entity]{{Type: "postfix", Pos: tokens[0].Pos, Val: Entity{Node: node}}}, nil
		},
	)

	g.expr = g.buildPrecedenceChain()
}

// unaryOpFor maps a matched prefix-operator token to its UnaryOp tag.
func unaryOpFor(t tok.Token) ast.UnaryOp {
	switch t.Type {
	case tok.BANG:
		return ast.OpNot
	case tok.BITNOT:
		return ast.OpBitNot
	default:
		return ast.OpNeg
	}
}

// binaryOpFor maps a matched infix-operator token to its BinaryOp tag.
func binaryOpFor(t tok.Token) ast.BinaryOp {
	switch t.Type {
	case tok.OR:
		return ast.OpOr
	case tok.AND:
		return ast.OpAnd
	case tok.EQ:
		return ast.OpEq
	case tok.NE:
		return ast.OpNe
	case tok.LT:
		return ast.OpLt
	case tok.LE:
		return ast.OpLe
	case tok.GT:
		return ast.OpGt
	case tok.GE:
		return ast.OpGe
	case tok.BITOR:
		return ast.OpBitOr
	case tok.BITAND:
		return ast.OpBitAnd
	case tok.SHL:
		return ast.OpShl
	case tok.SHR:
		return ast.OpShr
	case tok.PLUS:
		return ast.OpAdd
	case tok.MINUS:
		return ast.OpSub
	case tok.STAR:
		return ast.OpMul
	case tok.SLASH:
		return ast.OpDiv
	case tok.PERCENT:
		return ast.OpMod
	default:
		return ast.OpExp
	}
}

// leftAssocLevel builds a left-associative binary-operator precedence
// level: next (op next)*, folding left-to-right.
func leftAssocLevel(next pc.Parser[Entity], ops ...pc.Parser[Entity]) pc.Parser[Entity] {
	return pc.Trans(
		pc.Seq(next, pc.ZeroOrMore("binop-tail", pc.Seq(pc.Or(ops...), next))),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			node := tokens[0].Val.Node
			rest := tokens[1:]
			for i := 0; i+1 < len(rest); i += 2 {
				op := rest[i].Val.Original
				right := rest[i+1].Val.Node
				node = &ast.BinaryExpr{BaseNode: ast.BaseNode{NType: ast.BinaryExprNode, Position: node.Pos()}, Op: binaryOpFor(op), Left: node, Right: right}
			}
			return []pc.Token[Entity]{{Type: "binop", Pos: tokens[0].Pos, Val: Entity{Node: node}}}, nil
		},
	)
}

// rightAssocLevel builds a right-associative binary-operator precedence
// level: next (op next)*, folding right-to-left. Used for exponentiation.
func rightAssocLevel(next pc.Parser[Entity], ops ...pc.Parser[Entity]) pc.Parser[Entity] {
	return pc.Trans(
		pc.Seq(next, pc.ZeroOrMore("binop-tail", pc.Seq(pc.Or(ops...), next))),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			rest := tokens[1:]
			operands := []ast.Node{tokens[0].Val.Node}
			var operators []tok.Token
			for i := 0; i+1 < len(rest); i += 2 {
				operators = append(operators, rest[i].Val.Original)
				operands = append(operands, rest[i+1].Val.Node)
			}
			node := operands[len(operands)-1]
			for i := len(operators) - 1; i >= 0; i-- {
				node = &ast.BinaryExpr{BaseNode: ast.BaseNode{NType: ast.BinaryExprNode, Position: operands[i].Pos()}, Op: binaryOpFor(operators[i]), Left: operands[i], Right: node}
			}
			return []pc.Token[Entity]{{Type: "binop", Pos: tokens[0].Pos, Val: Entity{Node: node}}}, nil
		},
	)
}

// buildPrecedenceChain wires the 13-level precedence table of spec §4.1,
// low to high, each level delegating to the next on failure (PEG ordered
// choice is unnecessary here since every level always eventually matches
// by falling through to its operand when no operator follows).
func (g *grammar) buildPrecedenceChain() pc.Parser[Entity] {
	unary := pc.Trans(
		pc.Seq(pc.ZeroOrMore("unary-ops", pc.Or(minusOp, bangTok, bitnotOp)), g.postfix),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			node := tokens[len(tokens)-1].Val.Node
			ops := tokens[:len(tokens)-1]
			for i := len(ops) - 1; i >= 0; i-- {
				op := ops[i].Val.Original
				node = &ast.UnaryExpr{BaseNode: ast.BaseNode{NType: ast.UnaryExprNode, Position: g.pos(op)}, Op: unaryOpFor(op), Operand: node}
			}
			return []pc.Token[Entity]{{Type: "unary", Pos: tokens[0].Pos, Val: Entity{Node: node}}}, nil
		},
	)

	exponent := rightAssocLevel(unary, caretOp)
	multiplicative := leftAssocLevel(exponent, starOp, slashOp, pctOp)
	additive := leftAssocLevel(multiplicative, plusOp, minusOp)
	shift := leftAssocLevel(additive, shlOp, shrOp)
	bitwiseAnd := leftAssocLevel(shift, bitandOp)
	bitwiseOr := leftAssocLevel(bitwiseAnd, bitorOp)
	relational := leftAssocLevel(bitwiseOr, ltOp, leOp, gtOp, geOp)
	equality := leftAssocLevel(relational, eqOp, neOp)
	logicalAnd := leftAssocLevel(equality, andOp)
	logicalOr := leftAssocLevel(logicalAnd, orOp)

	ternary := pc.Trans(
		pc.Seq(logicalOr, pc.Optional(pc.Seq(question, pc.Lazy(func() pc.Parser[Entity] { return g.expr }), colon, pc.Lazy(func() pc.Parser[Entity] { return g.expr })))),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			cond := tokens[0].Val.Node
			if len(tokens) == 1 {
				return []pc.Token[Entity]{{Type: "ternary", Pos: tokens[0].Pos, Val: Entity{Node: cond}}}, nil
			}
			node := &ast.TernaryExpr{
				BaseNode: ast.BaseNode{NType: ast.TernaryExprNode, Position: cond.Pos()},
				Cond:     cond, Then: tokens[2].Val.Node, Else: tokens[4].Val.Node,
			}
			return []pc.Token[Entity]{{Type: "ternary", Pos: tokens[0].Pos, Val: Entity{Node: node}}}, nil
		},
	)

	return ternary
}
