package ast

import (
	"encoding/json"
	"fmt"

	goyaml "github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/shibukawa/scadparse/sourcemap"
	"github.com/shopspring/decimal"
	yamlv3 "gopkg.in/yaml.v3"
)

// ErrUnknownNodeType is returned by FromDict when a dict's "type" field
// does not name a known NodeType.
var ErrUnknownNodeType = errors.New("ast: unknown node type")

// ErrMissingField is returned by FromDict when a required field is absent
// or has the wrong shape.
var ErrMissingField = errors.New("ast: missing or malformed field")

// ToDict converts an AST node (and, recursively, its children) into a
// plain map[string]any tree tagged by "type". When includePosition is
// true, every node also carries its "position" as {file, offset, line,
// column}.
func ToDict(n Node, includePosition bool) map[string]any {
	if n == nil {
		return nil
	}

	d := map[string]any{"type": n.Type().String()}
	if includePosition {
		d["position"] = encodePosition(n.Pos())
	}

	switch v := n.(type) {
	case *NumberLiteral:
		d["text"] = v.Text
		d["value"] = v.Value.String()
	case *StringLiteral:
		d["raw"] = v.Raw
		d["value"] = v.Value
	case *BooleanLiteral:
		d["value"] = v.Value
	case *UndefLiteral:
		// no fields
	case *Identifier:
		d["name"] = v.Name
	case *RangeLiteral:
		d["start"] = ToDict(v.Start, includePosition)
		d["step"] = ToDict(v.Step, includePosition)
		d["end"] = ToDict(v.End, includePosition)
	case *BinaryExpr:
		d["op"] = v.Op.String()
		d["left"] = ToDict(v.Left, includePosition)
		d["right"] = ToDict(v.Right, includePosition)
	case *UnaryExpr:
		d["op"] = v.Op.String()
		d["operand"] = ToDict(v.Operand, includePosition)
	case *TernaryExpr:
		d["cond"] = ToDict(v.Cond, includePosition)
		d["then"] = ToDict(v.Then, includePosition)
		d["else"] = ToDict(v.Else, includePosition)
	case *LetExpr:
		d["assignments"] = encodeAssignments(v.Assignments, includePosition)
		d["body"] = ToDict(v.Body, includePosition)
	case *EchoExpr:
		d["arguments"] = encodeArgs(v.Arguments, includePosition)
		d["body"] = ToDict(v.Body, includePosition)
	case *AssertExpr:
		d["arguments"] = encodeArgs(v.Arguments, includePosition)
		d["body"] = ToDict(v.Body, includePosition)
	case *FunctionLiteral:
		d["parameters"] = encodeParams(v.Parameters, includePosition)
		d["body"] = ToDict(v.Body, includePosition)
	case *CallExpr:
		d["callee"] = ToDict(v.Callee, includePosition)
		d["arguments"] = encodeArgs(v.Arguments, includePosition)
	case *IndexExpr:
		d["target"] = ToDict(v.Target, includePosition)
		d["index"] = ToDict(v.Index, includePosition)
	case *MemberExpr:
		d["target"] = ToDict(v.Target, includePosition)
		d["name"] = v.Name
	case *VectorLiteral:
		d["elements"] = encodeNodes(v.Elements, includePosition)
	case *ListComprehension:
		d["body"] = ToDict(v.Body, includePosition)
	case *ListCompFor:
		d["vars"] = encodeAssignments(v.Vars, includePosition)
		d["body"] = ToDict(v.Body, includePosition)
	case *ListCompCFor:
		d["init"] = encodeAssignments(v.Init, includePosition)
		d["cond"] = ToDict(v.Cond, includePosition)
		d["update"] = encodeAssignments(v.Update, includePosition)
		d["body"] = ToDict(v.Body, includePosition)
	case *ListCompIf:
		d["cond"] = ToDict(v.Cond, includePosition)
		d["body"] = ToDict(v.Body, includePosition)
	case *ListCompIfElse:
		d["cond"] = ToDict(v.Cond, includePosition)
		d["then"] = ToDict(v.Then, includePosition)
		d["else"] = ToDict(v.Else, includePosition)
	case *ListCompLet:
		d["assignments"] = encodeAssignments(v.Assignments, includePosition)
		d["body"] = ToDict(v.Body, includePosition)
	case *ListCompEach:
		d["body"] = ToDict(v.Body, includePosition)
	case *PositionalArgument:
		d["value"] = ToDict(v.Value, includePosition)
	case *NamedArgument:
		d["name"] = v.Name
		d["value"] = ToDict(v.Value, includePosition)
	case *Parameter:
		d["name"] = v.Name
		d["default"] = ToDict(v.Default, includePosition)
	case *Assignment:
		d["name"] = v.Name
		d["value"] = ToDict(v.Value, includePosition)
	case *ModuleDeclaration:
		d["name"] = v.Name
		d["parameters"] = encodeParams(v.Parameters, includePosition)
		d["body"] = encodeInstantiations(v.Body, includePosition)
	case *FunctionDeclaration:
		d["name"] = v.Name
		d["parameters"] = encodeParams(v.Parameters, includePosition)
		d["body"] = ToDict(v.Body, includePosition)
	case *UseStatement:
		d["path"] = v.Path
	case *IncludeStatement:
		d["path"] = v.Path
	case *CommentLine:
		d["text"] = v.Text
	case *CommentBlock:
		d["text"] = v.Text
	case *File:
		d["statements"] = encodeNodes(v.Statements, includePosition)

	case *ModuleCall:
		d["name"] = v.Name
		d["arguments"] = encodeArgs(v.Arguments, includePosition)
		d["children"] = encodeInstantiations(v.Children, includePosition)
	case *ModFor:
		d["vars"] = encodeAssignments(v.Vars, includePosition)
		d["body"] = encodeInstantiations(v.Body, includePosition)
	case *ModCFor:
		d["init"] = encodeAssignments(v.Init, includePosition)
		d["cond"] = ToDict(v.Cond, includePosition)
		d["update"] = encodeAssignments(v.Update, includePosition)
		d["body"] = encodeInstantiations(v.Body, includePosition)
	case *ModIntersectionFor:
		d["vars"] = encodeAssignments(v.Vars, includePosition)
		d["body"] = encodeInstantiations(v.Body, includePosition)
	case *ModLet:
		d["assignments"] = encodeAssignments(v.Assignments, includePosition)
		d["body"] = encodeInstantiations(v.Body, includePosition)
	case *ModEcho:
		d["arguments"] = encodeArgs(v.Arguments, includePosition)
		d["body"] = encodeInstantiations(v.Body, includePosition)
	case *ModAssert:
		d["arguments"] = encodeArgs(v.Arguments, includePosition)
		d["body"] = encodeInstantiations(v.Body, includePosition)
	case *ModIf:
		d["cond"] = ToDict(v.Cond, includePosition)
		d["then"] = encodeInstantiations(v.Then, includePosition)
	case *ModIfElse:
		d["cond"] = ToDict(v.Cond, includePosition)
		d["then"] = encodeInstantiations(v.Then, includePosition)
		d["else"] = encodeInstantiations(v.Else, includePosition)
	case *Modifier:
		d["kind"] = v.Kind.String()
		var target Node = v.Target
		d["target"] = ToDict(target, includePosition)

	default:
		panic(fmt.Sprintf("ast: ToDict: unhandled node type %T", n))
	}

	return d
}

func encodePosition(p sourcemap.Position) map[string]any {
	return map[string]any{"file": p.File, "offset": p.Offset, "line": p.Line, "column": p.Column}
}

func encodeNodes(nodes []Node, includePosition bool) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = ToDict(n, includePosition)
	}
	return out
}

func encodeArgs(args []Argument, includePosition bool) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = ToDict(a, includePosition)
	}
	return out
}

func encodeInstantiations(insts []ModuleInstantiation, includePosition bool) []any {
	out := make([]any, len(insts))
	for i, inst := range insts {
		out[i] = ToDict(inst, includePosition)
	}
	return out
}

func encodeParams(params []*Parameter, includePosition bool) []any {
	out := make([]any, len(params))
	for i, p := range params {
		out[i] = ToDict(p, includePosition)
	}
	return out
}

func encodeAssignments(assigns []*Assignment, includePosition bool) []any {
	out := make([]any, len(assigns))
	for i, a := range assigns {
		out[i] = ToDict(a, includePosition)
	}
	return out
}

// ToJSON serializes a node to JSON via ToDict.
func ToJSON(n Node, includePosition bool) ([]byte, error) {
	return json.Marshal(ToDict(n, includePosition))
}

// ToYAML serializes a node to YAML via ToDict, using goccy/go-yaml.
func ToYAML(n Node, includePosition bool) ([]byte, error) {
	return goyaml.Marshal(ToDict(n, includePosition))
}

// FromJSON decodes JSON produced by ToJSON back into an AST.
func FromJSON(data []byte) (Node, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "ast: decoding JSON")
	}
	return FromDict(raw)
}

// FromYAML decodes YAML produced by ToYAML back into an AST. It walks the
// raw yaml.Node tree (rather than unmarshalling into map[string]any
// directly) so integer/float/bool scalars decode the same way regardless
// of which YAML encoder produced the document.
func FromYAML(data []byte) (Node, error) {
	var doc yamlv3.Node
	if err := yamlv3.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "ast: decoding YAML")
	}
	if len(doc.Content) == 0 {
		return nil, errors.Wrap(ErrMissingField, "ast: empty YAML document")
	}

	raw, err := yamlNodeToAny(doc.Content[0])
	if err != nil {
		return nil, err
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.Wrap(ErrMissingField, "ast: YAML document root is not a mapping")
	}
	return FromDict(m)
}

// yamlNodeToAny converts a *yaml.v3.Node into map[string]any/[]any/scalar,
// mirroring the node-walking idiom used for ordered YAML parameter decoding.
func yamlNodeToAny(node *yamlv3.Node) (any, error) {
	switch node.Kind {
	case yamlv3.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, errors.Wrap(err, "ast: decoding YAML scalar")
		}
		return v, nil
	case yamlv3.MappingNode:
		m := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			val, err := yamlNodeToAny(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[key] = val
		}
		return m, nil
	case yamlv3.SequenceNode:
		s := make([]any, len(node.Content))
		for i, child := range node.Content {
			val, err := yamlNodeToAny(child)
			if err != nil {
				return nil, err
			}
			s[i] = val
		}
		return s, nil
	case yamlv3.AliasNode:
		return yamlNodeToAny(node.Alias)
	default:
		return nil, nil
	}
}

// FromDict reconstructs an AST node from the map[string]any tree produced
// by ToDict. Position is restored only when the dict carries it.
func FromDict(d map[string]any) (Node, error) {
	if d == nil {
		return nil, nil
	}

	tyName, ok := d["type"].(string)
	if !ok {
		return nil, errors.Wrapf(ErrMissingField, "missing \"type\" field")
	}
	ty, ok := nodeTypeByName[tyName]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownNodeType, "%q", tyName)
	}

	pos := decodePosition(d["position"])
	base := BaseNode{NType: ty, Position: pos}

	switch ty {
	case NumberLit:
		text, _ := d["text"].(string)
		valStr, _ := d["value"].(string)
		val, err := decimal.NewFromString(valStr)
		if err != nil {
			return nil, errors.Wrap(err, "ast: decoding NumberLit value")
		}
		return &NumberLiteral{BaseNode: base, Text: text, Value: val}, nil
	case StringLit:
		raw, _ := d["raw"].(string)
		val, _ := d["value"].(string)
		return &StringLiteral{BaseNode: base, Raw: raw, Value: val}, nil
	case BoolLit:
		val, _ := d["value"].(bool)
		return &BooleanLiteral{BaseNode: base, Value: val}, nil
	case UndefLit:
		return &UndefLiteral{BaseNode: base}, nil
	case IdentLit:
		name, _ := d["name"].(string)
		return &Identifier{BaseNode: base, Name: name}, nil
	case RangeLit:
		start, err := decodeChild(d, "start")
		if err != nil {
			return nil, err
		}
		step, err := decodeChild(d, "step")
		if err != nil {
			return nil, err
		}
		end, err := decodeChild(d, "end")
		if err != nil {
			return nil, err
		}
		return &RangeLiteral{BaseNode: base, Start: start, Step: step, End: end}, nil
	case BinaryExprNode:
		opName, _ := d["op"].(string)
		left, err := decodeChild(d, "left")
		if err != nil {
			return nil, err
		}
		right, err := decodeChild(d, "right")
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{BaseNode: base, Op: binaryOpByName[opName], Left: left, Right: right}, nil
	case UnaryExprNode:
		opName, _ := d["op"].(string)
		operand, err := decodeChild(d, "operand")
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{BaseNode: base, Op: unaryOpByName[opName], Operand: operand}, nil
	case TernaryExprNode:
		cond, err := decodeChild(d, "cond")
		if err != nil {
			return nil, err
		}
		then, err := decodeChild(d, "then")
		if err != nil {
			return nil, err
		}
		els, err := decodeChild(d, "else")
		if err != nil {
			return nil, err
		}
		return &TernaryExpr{BaseNode: base, Cond: cond, Then: then, Else: els}, nil
	case LetExprNode:
		assigns, err := decodeAssignments(d, "assignments")
		if err != nil {
			return nil, err
		}
		body, err := decodeChild(d, "body")
		if err != nil {
			return nil, err
		}
		return &LetExpr{BaseNode: base, Assignments: assigns, Body: body}, nil
	case EchoExprNode:
		args, err := decodeArgs(d, "arguments")
		if err != nil {
			return nil, err
		}
		body, err := decodeChild(d, "body")
		if err != nil {
			return nil, err
		}
		return &EchoExpr{BaseNode: base, Arguments: args, Body: body}, nil
	case AssertExprNode:
		args, err := decodeArgs(d, "arguments")
		if err != nil {
			return nil, err
		}
		body, err := decodeChild(d, "body")
		if err != nil {
			return nil, err
		}
		return &AssertExpr{BaseNode: base, Arguments: args, Body: body}, nil
	case FunctionLiteralNode:
		params, err := decodeParams(d, "parameters")
		if err != nil {
			return nil, err
		}
		body, err := decodeChild(d, "body")
		if err != nil {
			return nil, err
		}
		return &FunctionLiteral{BaseNode: base, Parameters: params, Body: body}, nil
	case CallExprNode:
		callee, err := decodeChild(d, "callee")
		if err != nil {
			return nil, err
		}
		args, err := decodeArgs(d, "arguments")
		if err != nil {
			return nil, err
		}
		return &CallExpr{BaseNode: base, Callee: callee, Arguments: args}, nil
	case IndexExprNode:
		target, err := decodeChild(d, "target")
		if err != nil {
			return nil, err
		}
		index, err := decodeChild(d, "index")
		if err != nil {
			return nil, err
		}
		return &IndexExpr{BaseNode: base, Target: target, Index: index}, nil
	case MemberExprNode:
		target, err := decodeChild(d, "target")
		if err != nil {
			return nil, err
		}
		name, _ := d["name"].(string)
		return &MemberExpr{BaseNode: base, Target: target, Name: name}, nil
	case VectorLiteralNode:
		elems, err := decodeNodeList(d, "elements")
		if err != nil {
			return nil, err
		}
		return &VectorLiteral{BaseNode: base, Elements: elems}, nil
	case ListComprehensionNode:
		body, err := decodeChild(d, "body")
		if err != nil {
			return nil, err
		}
		return &ListComprehension{BaseNode: base, Body: body}, nil
	case ListCompForNode:
		vars, err := decodeAssignments(d, "vars")
		if err != nil {
			return nil, err
		}
		body, err := decodeChild(d, "body")
		if err != nil {
			return nil, err
		}
		return &ListCompFor{BaseNode: base, Vars: vars, Body: body}, nil
	case ListCompCForNode:
		init, err := decodeAssignments(d, "init")
		if err != nil {
			return nil, err
		}
		cond, err := decodeChild(d, "cond")
		if err != nil {
			return nil, err
		}
		update, err := decodeAssignments(d, "update")
		if err != nil {
			return nil, err
		}
		body, err := decodeChild(d, "body")
		if err != nil {
			return nil, err
		}
		return &ListCompCFor{BaseNode: base, Init: init, Cond: cond, Update: update, Body: body}, nil
	case ListCompIfNode:
		cond, err := decodeChild(d, "cond")
		if err != nil {
			return nil, err
		}
		body, err := decodeChild(d, "body")
		if err != nil {
			return nil, err
		}
		return &ListCompIf{BaseNode: base, Cond: cond, Body: body}, nil
	case ListCompIfElseNode:
		cond, err := decodeChild(d, "cond")
		if err != nil {
			return nil, err
		}
		then, err := decodeChild(d, "then")
		if err != nil {
			return nil, err
		}
		els, err := decodeChild(d, "else")
		if err != nil {
			return nil, err
		}
		return &ListCompIfElse{BaseNode: base, Cond: cond, Then: then, Else: els}, nil
	case ListCompLetNode:
		assigns, err := decodeAssignments(d, "assignments")
		if err != nil {
			return nil, err
		}
		body, err := decodeChild(d, "body")
		if err != nil {
			return nil, err
		}
		return &ListCompLet{BaseNode: base, Assignments: assigns, Body: body}, nil
	case ListCompEachNode:
		body, err := decodeChild(d, "body")
		if err != nil {
			return nil, err
		}
		return &ListCompEach{BaseNode: base, Body: body}, nil
	case PositionalArgNode:
		value, err := decodeChild(d, "value")
		if err != nil {
			return nil, err
		}
		return &PositionalArgument{BaseNode: base, Value: value}, nil
	case NamedArgNode:
		name, _ := d["name"].(string)
		value, err := decodeChild(d, "value")
		if err != nil {
			return nil, err
		}
		return &NamedArgument{BaseNode: base, Name: name, Value: value}, nil
	case ParameterNode:
		name, _ := d["name"].(string)
		def, err := decodeChild(d, "default")
		if err != nil {
			return nil, err
		}
		return &Parameter{BaseNode: base, Name: name, Default: def}, nil
	case AssignmentNode:
		name, _ := d["name"].(string)
		value, err := decodeChild(d, "value")
		if err != nil {
			return nil, err
		}
		return &Assignment{BaseNode: base, Name: name, Value: value}, nil
	case ModuleDeclNode:
		name, _ := d["name"].(string)
		params, err := decodeParams(d, "parameters")
		if err != nil {
			return nil, err
		}
		body, err := decodeInstantiationList(d, "body")
		if err != nil {
			return nil, err
		}
		return &ModuleDeclaration{BaseNode: base, Name: name, Parameters: params, Body: body}, nil
	case FunctionDeclNode:
		name, _ := d["name"].(string)
		params, err := decodeParams(d, "parameters")
		if err != nil {
			return nil, err
		}
		body, err := decodeChild(d, "body")
		if err != nil {
			return nil, err
		}
		return &FunctionDeclaration{BaseNode: base, Name: name, Parameters: params, Body: body}, nil
	case UseStatementNode:
		path, _ := d["path"].(string)
		return &UseStatement{BaseNode: base, Path: path}, nil
	case IncludeStatementNode:
		path, _ := d["path"].(string)
		return &IncludeStatement{BaseNode: base, Path: path}, nil
	case CommentLineNode:
		text, _ := d["text"].(string)
		return &CommentLine{BaseNode: base, Text: text}, nil
	case CommentBlockNode:
		text, _ := d["text"].(string)
		return &CommentBlock{BaseNode: base, Text: text}, nil
	case FileNode:
		stmts, err := decodeNodeList(d, "statements")
		if err != nil {
			return nil, err
		}
		return &File{BaseNode: base, Statements: stmts}, nil

	case ModuleCallNode:
		name, _ := d["name"].(string)
		args, err := decodeArgs(d, "arguments")
		if err != nil {
			return nil, err
		}
		children, err := decodeInstantiationList(d, "children")
		if err != nil {
			return nil, err
		}
		return &ModuleCall{BaseNode: base, Name: name, Arguments: args, Children: children}, nil
	case ModForNode:
		vars, err := decodeAssignments(d, "vars")
		if err != nil {
			return nil, err
		}
		body, err := decodeInstantiationList(d, "body")
		if err != nil {
			return nil, err
		}
		return &ModFor{BaseNode: base, Vars: vars, Body: body}, nil
	case ModCForNode:
		init, err := decodeAssignments(d, "init")
		if err != nil {
			return nil, err
		}
		cond, err := decodeChild(d, "cond")
		if err != nil {
			return nil, err
		}
		update, err := decodeAssignments(d, "update")
		if err != nil {
			return nil, err
		}
		body, err := decodeInstantiationList(d, "body")
		if err != nil {
			return nil, err
		}
		return &ModCFor{BaseNode: base, Init: init, Cond: cond, Update: update, Body: body}, nil
	case ModIntersectionForNode:
		vars, err := decodeAssignments(d, "vars")
		if err != nil {
			return nil, err
		}
		body, err := decodeInstantiationList(d, "body")
		if err != nil {
			return nil, err
		}
		return &ModIntersectionFor{BaseNode: base, Vars: vars, Body: body}, nil
	case ModLetNode:
		assigns, err := decodeAssignments(d, "assignments")
		if err != nil {
			return nil, err
		}
		body, err := decodeInstantiationList(d, "body")
		if err != nil {
			return nil, err
		}
		return &ModLet{BaseNode: base, Assignments: assigns, Body: body}, nil
	case ModEchoNode:
		args, err := decodeArgs(d, "arguments")
		if err != nil {
			return nil, err
		}
		body, err := decodeInstantiationList(d, "body")
		if err != nil {
			return nil, err
		}
		return &ModEcho{BaseNode: base, Arguments: args, Body: body}, nil
	case ModAssertNode:
		args, err := decodeArgs(d, "arguments")
		if err != nil {
			return nil, err
		}
		body, err := decodeInstantiationList(d, "body")
		if err != nil {
			return nil, err
		}
		return &ModAssert{BaseNode: base, Arguments: args, Body: body}, nil
	case ModIfNode:
		cond, err := decodeChild(d, "cond")
		if err != nil {
			return nil, err
		}
		then, err := decodeInstantiationList(d, "then")
		if err != nil {
			return nil, err
		}
		return &ModIf{BaseNode: base, Cond: cond, Then: then}, nil
	case ModIfElseNode:
		cond, err := decodeChild(d, "cond")
		if err != nil {
			return nil, err
		}
		then, err := decodeInstantiationList(d, "then")
		if err != nil {
			return nil, err
		}
		els, err := decodeInstantiationList(d, "else")
		if err != nil {
			return nil, err
		}
		return &ModIfElse{BaseNode: base, Cond: cond, Then: then, Else: els}, nil
	case ModifierNode:
		kindName, _ := d["kind"].(string)
		targetDict, _ := d["target"].(map[string]any)
		targetNode, err := FromDict(targetDict)
		if err != nil {
			return nil, err
		}
		target, ok := targetNode.(ModuleInstantiation)
		if !ok {
			return nil, errors.Wrap(ErrMissingField, "ast: Modifier.target is not a ModuleInstantiation")
		}
		return &Modifier{BaseNode: base, Kind: modifierKindByName[kindName], Target: target}, nil

	default:
		return nil, errors.Wrapf(ErrUnknownNodeType, "%q", tyName)
	}
}

func decodePosition(v any) sourcemap.Position {
	m, ok := v.(map[string]any)
	if !ok {
		return sourcemap.Position{}
	}
	file, _ := m["file"].(string)
	return sourcemap.Position{
		File:   file,
		Offset: toInt(m["offset"]),
		Line:   toInt(m["line"]),
		Column: toInt(m["column"]),
	}
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func decodeChild(d map[string]any, key string) (Node, error) {
	raw := d[key]
	if raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.Wrapf(ErrMissingField, "field %q is not a node", key)
	}
	return FromDict(m)
}

func decodeNodeList(d map[string]any, key string) ([]Node, error) {
	raw, _ := d[key].([]any)
	out := make([]Node, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, errors.Wrapf(ErrMissingField, "field %q[%d] is not a node", key, i)
		}
		n, err := FromDict(m)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func decodeArgs(d map[string]any, key string) ([]Argument, error) {
	nodes, err := decodeNodeList(d, key)
	if err != nil {
		return nil, err
	}
	out := make([]Argument, len(nodes))
	for i, n := range nodes {
		arg, ok := n.(Argument)
		if !ok {
			return nil, errors.Wrapf(ErrMissingField, "field %q[%d] is not an Argument", key, i)
		}
		out[i] = arg
	}
	return out, nil
}

func decodeInstantiationList(d map[string]any, key string) ([]ModuleInstantiation, error) {
	nodes, err := decodeNodeList(d, key)
	if err != nil {
		return nil, err
	}
	out := make([]ModuleInstantiation, len(nodes))
	for i, n := range nodes {
		inst, ok := n.(ModuleInstantiation)
		if !ok {
			return nil, errors.Wrapf(ErrMissingField, "field %q[%d] is not a ModuleInstantiation", key, i)
		}
		out[i] = inst
	}
	return out, nil
}

func decodeParams(d map[string]any, key string) ([]*Parameter, error) {
	nodes, err := decodeNodeList(d, key)
	if err != nil {
		return nil, err
	}
	out := make([]*Parameter, len(nodes))
	for i, n := range nodes {
		p, ok := n.(*Parameter)
		if !ok {
			return nil, errors.Wrapf(ErrMissingField, "field %q[%d] is not a Parameter", key, i)
		}
		out[i] = p
	}
	return out, nil
}

func decodeAssignments(d map[string]any, key string) ([]*Assignment, error) {
	nodes, err := decodeNodeList(d, key)
	if err != nil {
		return nil, err
	}
	out := make([]*Assignment, len(nodes))
	for i, n := range nodes {
		a, ok := n.(*Assignment)
		if !ok {
			return nil, errors.Wrapf(ErrMissingField, "field %q[%d] is not an Assignment", key, i)
		}
		out[i] = a
	}
	return out, nil
}
