package parser

import (
	"sort"

	pc "github.com/shibukawa/parsercombinator"
	"github.com/shibukawa/scadparse/ast"
	tok "github.com/shibukawa/scadparse/tokenizer"
)

// commentNode builds the CommentLine/CommentBlock sibling node for a raw
// comment token, used only when Options.IncludeComments is true.
func commentNode(g *grammar, c tok.Token) ast.Node {
	if c.Type == tok.LINE_COMMENT {
		return &ast.CommentLine{BaseNode: ast.BaseNode{NType: ast.CommentLineNode, Position: g.pos(c)}, Text: c.Value}
	}
	return &ast.CommentBlock{BaseNode: ast.BaseNode{NType: ast.CommentBlockNode, Position: g.pos(c)}, Text: c.Value}
}

func modifierKindFor(raw string) ast.ModifierKind {
	switch raw {
	case "#":
		return ast.ModifierHighlight
	case "%":
		return ast.ModifierBackground
	case "*":
		return ast.ModifierDisable
	default:
		return ast.ModifierShowOnly
	}
}

func (g *grammar) buildStatementGrammar() {
	modifierTok := pc.Or(bangTok, hashTok, pctOp, starOp)

	// instOrBlock matches the trailing part of any modular construct:
	// ';' (empty body), '{' instantiation* '}' (block), or a single bare
	// instantiation (braces are optional when there is exactly one).
	instOrBlock := pc.Trans(
		pc.Or(
			pc.Trans(semi, func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
				return []pc.Token[Entity]{{Type: "body", Pos: tokens[0].Pos, Val: Entity{Insts: nil}}}, nil
			}),
			pc.Trans(
				pc.Seq(lbrace, pc.ZeroOrMore("insts", pc.Lazy(func() pc.Parser[Entity] { return g.instantiation })), rbrace),
				func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
					var insts []ast.ModuleInstantiation
					for _, t := range tokens[1 : len(tokens)-1] {
						insts = append(insts, t.Val.Node.(ast.ModuleInstantiation))
					}
					return []pc.Token[Entity]{{Type: "body", Pos: tokens[0].Pos, Val: Entity{Insts: insts}}}, nil
				},
			),
			pc.Trans(
				pc.Lazy(func() pc.Parser[Entity] { return g.instantiation }),
				func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
					return []pc.Token[Entity]{{Type: "body", Pos: tokens[0].Pos, Val: Entity{Insts: []ast.ModuleInstantiation{tokens[0].Val.Node.(ast.ModuleInstantiation)}}}}, nil
				},
			),
		),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			return tokens, nil
		},
	)

	moduleCall := pc.Trans(
		pc.Seq(identTok, lparen, g.argList, rparen, instOrBlock),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			name := tokens[0].Val.Original
			return []pc.Token[Entity]{{Type: "inst", Pos: tokens[0].Pos, Val: Entity{Node: &ast.ModuleCall{
				BaseNode: ast.BaseNode{NType: ast.ModuleCallNode, Position: g.pos(name)},
				Name:     name.Value, Arguments: tokens[2].Val.Args, Children: tokens[4].Val.Insts,
			}}}}, nil
		},
	)

	forInst := pc.Trans(
		pc.Seq(kwFor, lparen, g.assignList, rparen, instOrBlock),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			t := tokens[0].Val.Original
			return []pc.Token[Entity]{{Type: "inst", Pos: tokens[0].Pos, Val: Entity{Node: &ast.ModFor{
				BaseNode: ast.BaseNode{NType: ast.ModForNode, Position: g.pos(t)}, Vars: tokens[2].Val.Assigns, Body: tokens[4].Val.Insts,
			}}}}, nil
		},
	)

	cforInst := pc.Trans(
		pc.Seq(kwFor, lparen, g.assignList, semi, pc.Lazy(func() pc.Parser[Entity] { return g.expr }), semi, g.assignList, rparen, instOrBlock),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			t := tokens[0].Val.Original
			return []pc.Token[Entity]{{Type: "inst", Pos: tokens[0].Pos, Val: Entity{Node: &ast.ModCFor{
				BaseNode: ast.BaseNode{NType: ast.ModCForNode, Position: g.pos(t)},
				Init:     tokens[2].Val.Assigns, Cond: tokens[4].Val.Node, Update: tokens[6].Val.Assigns, Body: tokens[8].Val.Insts,
			}}}}, nil
		},
	)

	intersectionForInst := pc.Trans(
		pc.Seq(kwIntersectionFor, lparen, g.assignList, rparen, instOrBlock),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			t := tokens[0].Val.Original
			return []pc.Token[Entity]{{Type: "inst", Pos: tokens[0].Pos, Val: Entity{Node: &ast.ModIntersectionFor{
				BaseNode: ast.BaseNode{NType: ast.ModIntersectionForNode, Position: g.pos(t)}, Vars: tokens[2].Val.Assigns, Body: tokens[4].Val.Insts,
			}}}}, nil
		},
	)

	letInst := pc.Trans(
		pc.Seq(kwLet, lparen, g.assignList, rparen, instOrBlock),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			t := tokens[0].Val.Original
			return []pc.Token[Entity]{{Type: "inst", Pos: tokens[0].Pos, Val: Entity{Node: &ast.ModLet{
				BaseNode: ast.BaseNode{NType: ast.ModLetNode, Position: g.pos(t)}, Assignments: tokens[2].Val.Assigns, Body: tokens[4].Val.Insts,
			}}}}, nil
		},
	)

	echoInst := pc.Trans(
		pc.Seq(kwEcho, lparen, g.argList, rparen, instOrBlock),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			t := tokens[0].Val.Original
			return []pc.Token[Entity]{{Type: "inst", Pos: tokens[0].Pos, Val: Entity{Node: &ast.ModEcho{
				BaseNode: ast.BaseNode{NType: ast.ModEchoNode, Position: g.pos(t)}, Arguments: tokens[2].Val.Args, Body: tokens[4].Val.Insts,
			}}}}, nil
		},
	)

	assertInst := pc.Trans(
		pc.Seq(kwAssert, lparen, g.argList, rparen, instOrBlock),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			t := tokens[0].Val.Original
			return []pc.Token[Entity]{{Type: "inst", Pos: tokens[0].Pos, Val: Entity{Node: &ast.ModAssert{
				BaseNode: ast.BaseNode{NType: ast.ModAssertNode, Position: g.pos(t)}, Arguments: tokens[2].Val.Args, Body: tokens[4].Val.Insts,
			}}}}, nil
		},
	)

	ifInst := pc.Trans(
		pc.Seq(kwIf, lparen, pc.Lazy(func() pc.Parser[Entity] { return g.expr }), rparen, instOrBlock,
			pc.Optional(pc.Seq(kwElse, instOrBlock))),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			t := tokens[0].Val.Original
			if len(tokens) == 7 {
				return []pc.Token[Entity]{{Type: "inst", Pos: tokens[0].Pos, Val: Entity{Node: &ast.ModIfElse{
					BaseNode: ast.BaseNode{NType: ast.ModIfElseNode, Position: g.pos(t)},
					Cond:     tokens[2].Val.Node, Then: tokens[4].Val.Insts, Else: tokens[6].Val.Insts,
				}}}}, nil
			}
			return []pc.Token[Entity]{{Type: "inst", Pos: tokens[0].Pos, Val: Entity{Node: &ast.ModIf{
				BaseNode: ast.BaseNode{NType: ast.ModIfNode, Position: g.pos(t)}, Cond: tokens[2].Val.Node, Then: tokens[4].Val.Insts,
			}}}}, nil
		},
	)

	bareInst := pc.Or(moduleCall, forInst, cforInst, intersectionForInst, letInst, echoInst, assertInst, ifInst)

	modifierWrap := pc.Trans(
		pc.Seq(modifierTok, pc.Lazy(func() pc.Parser[Entity] { return g.instantiation })),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			mark := tokens[0].Val.Original
			target := tokens[1].Val.Node.(ast.ModuleInstantiation)
			return []pc.Token[Entity]{{Type: "inst", Pos: tokens[0].Pos, Val: Entity{Node: &ast.Modifier{
				BaseNode: ast.BaseNode{NType: ast.ModifierNode, Position: g.pos(mark)}, Kind: modifierKindFor(mark.Value), Target: target,
			}}}}, nil
		},
	)

	g.instantiation = pc.Or(modifierWrap, bareInst)

	moduleDecl := pc.Trans(
		pc.Seq(kwModule, identTok, lparen, g.paramList, rparen, instOrBlock),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			name := tokens[1].Val.Original
			return []pc.Token[Entity]{{Type: "stmt", Pos: tokens[0].Pos, Val: Entity{Node: &ast.ModuleDeclaration{
				BaseNode: ast.BaseNode{NType: ast.ModuleDeclNode, Position: g.pos(name)},
				Name:     name.Value, Parameters: tokens[3].Val.Params, Body: tokens[5].Val.Insts,
			}}}}, nil
		},
	)

	functionDecl := pc.Trans(
		pc.Seq(kwFunction, identTok, lparen, g.paramList, rparen, assignTok, pc.Lazy(func() pc.Parser[Entity] { return g.expr }), semi),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			name := tokens[1].Val.Original
			return []pc.Token[Entity]{{Type: "stmt", Pos: tokens[0].Pos, Val: Entity{Node: &ast.FunctionDeclaration{
				BaseNode: ast.BaseNode{NType: ast.FunctionDeclNode, Position: g.pos(name)},
				Name:     name.Value, Parameters: tokens[3].Val.Params, Body: tokens[6].Val.Node,
			}}}}, nil
		},
	)

	assignStmt := pc.Trans(
		pc.Seq(identTok, assignTok, pc.Lazy(func() pc.Parser[Entity] { return g.expr }), semi),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			name := tokens[0].Val.Original
			return []pc.Token[Entity]{{Type: "stmt", Pos: tokens[0].Pos, Val: Entity{Node: &ast.Assignment{
				BaseNode: ast.BaseNode{NType: ast.AssignmentNode, Position: g.pos(name)}, Name: name.Value, Value: tokens[2].Val.Node,
			}}}}, nil
		},
	)

	useStmt := pc.Trans(
		pc.Seq(kwUse, pathTok, pc.Optional(semi)),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			t := tokens[0].Val.Original
			path := tokens[1].Val.Original.Value
			return []pc.Token[Entity]{{Type: "stmt", Pos: tokens[0].Pos, Val: Entity{Node: &ast.UseStatement{
				BaseNode: ast.BaseNode{NType: ast.UseStatementNode, Position: g.pos(t)}, Path: path,
			}}}}, nil
		},
	)

	includeStmt := pc.Trans(
		pc.Seq(kwInclude, pathTok, pc.Optional(semi)),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			t := tokens[0].Val.Original
			path := tokens[1].Val.Original.Value
			return []pc.Token[Entity]{{Type: "stmt", Pos: tokens[0].Pos, Val: Entity{Node: &ast.IncludeStatement{
				BaseNode: ast.BaseNode{NType: ast.IncludeStatementNode, Position: g.pos(t)}, Path: path,
			}}}}, nil
		},
	)

	statementAsInst := pc.Trans(
		g.instantiation,
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			return []pc.Token[Entity]{{Type: "stmt", Pos: tokens[0].Pos, Val: Entity{Node: tokens[0].Val.Node}}}, nil
		},
	)

	g.statement = pc.Or(useStmt, includeStmt, moduleDecl, functionDecl, assignStmt, statementAsInst)

	g.file = pc.Trans(
		pc.Seq(pc.Drop(pc.ZeroOrMore("leading", pc.Or(space(), comment()))), pc.ZeroOrMore("statements", g.statement), eos),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			type positioned struct {
				offset int
				node   ast.Node
			}
			var items []positioned
			for _, t := range tokens {
				if t.Type == "stmt" {
					items = append(items, positioned{offset: t.Pos.Index, node: t.Val.Node})
				}
			}
			if len(g.comments) > 0 {
				for _, c := range g.comments {
					items = append(items, positioned{offset: c.Position.Offset, node: commentNode(g, c)})
				}
				sort.Slice(items, func(i, j int) bool { return items[i].offset < items[j].offset })
			}

			stmts := make([]ast.Node, len(items))
			for i, it := range items {
				stmts[i] = it.node
			}

			p := ast.BaseNode{NType: ast.FileNode}
			if len(stmts) > 0 {
				p.Position = stmts[0].Pos()
			}
			return []pc.Token[Entity]{{Val: Entity{Node: &ast.File{BaseNode: p, Statements: stmts}}}}, nil
		},
	)
}
