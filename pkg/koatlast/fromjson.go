package koatlast

// This file implements the JSON embedding boundary SPEC_FULL.md §6
// describes for cmd/koatlc: since a Koatl lexer/parser is out of
// scope, the CLI reads an already-parsed Block serialized as JSON
// using the "type" tag + json.RawMessage dispatch idiom (the standard
// library's own documented pattern for decoding a sum type, see
// encoding/json's RawMessage doc). No example repo in the pack ships a
// JSON codec for a sum-type AST, so this file is stdlib-only by
// necessity rather than by omission; see DESIGN.md.

import (
	"encoding/json"
	"fmt"
)

type rawNode struct {
	Type string          `json:"type"`
	Span [2]int          `json:"span"`
	Data json.RawMessage `json:"-"`
}

// BlockFromJSON decodes one JSON-encoded Block, the input shape
// cmd/koatlc reads from the file named by `koatlc build`'s positional
// argument.
func BlockFromJSON(data []byte) (*Block, error) {
	var raw jsonBlock
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding block: %w", err)
	}
	return raw.toBlock()
}

type jsonSpan = [2]int

func spanOf(s jsonSpan) Span { return Span{Start: s[0], End: s[1]} }

type jsonBlock struct {
	Span   jsonSpan          `json:"span"`
	IsExpr bool              `json:"is_expr"`
	Stmts  []json.RawMessage `json:"stmts"`
	Expr   json.RawMessage   `json:"expr"`
}

func (b *jsonBlock) toBlock() (*Block, error) {
	if b.IsExpr {
		e, err := exprFromJSON(b.Expr)
		if err != nil {
			return nil, err
		}
		return &Block{Sp: spanOf(b.Span), IsExpr: true, Expr: e}, nil
	}
	stmts := make([]Stmt, 0, len(b.Stmts))
	for _, raw := range b.Stmts {
		s, err := stmtFromJSON(raw)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return &Block{Sp: spanOf(b.Span), Stmts: stmts}, nil
}

func blockFromJSONField(raw json.RawMessage) (*Block, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var jb jsonBlock
	if err := json.Unmarshal(raw, &jb); err != nil {
		return nil, fmt.Errorf("decoding block: %w", err)
	}
	return jb.toBlock()
}

func typeTag(raw json.RawMessage) (string, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return "", fmt.Errorf("decoding node tag: %w", err)
	}
	if tag.Type == "" {
		return "", fmt.Errorf("node is missing its \"type\" tag")
	}
	return tag.Type, nil
}

func exprFromJSON(raw json.RawMessage) (Expr, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	kind, err := typeTag(raw)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "Literal":
		var v struct {
			Span jsonSpan `json:"span"`
			Kind string   `json:"kind"`
			Text string   `json:"text"`
			Bool bool     `json:"bool"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		lk, err := literalKindFromJSON(v.Kind)
		if err != nil {
			return nil, err
		}
		return &ELiteral{exprBase{spanOf(v.Span)}, Literal{Kind: lk, Text: v.Text, Bool: v.Bool}}, nil

	case "Ident":
		var v struct {
			Span jsonSpan `json:"span"`
			Name string   `json:"name"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return &EIdent{exprBase{spanOf(v.Span)}, v.Name}, nil

	case "Placeholder":
		var v struct {
			Span jsonSpan `json:"span"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return &EPlaceholder{exprBase{spanOf(v.Span)}}, nil

	case "List", "Tuple":
		var v struct {
			Span  jsonSpan          `json:"span"`
			Items []json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		items, err := listItemsFromJSON(v.Items)
		if err != nil {
			return nil, err
		}
		if kind == "Tuple" {
			return &ETuple{exprBase{spanOf(v.Span)}, items}, nil
		}
		return &EList{exprBase{spanOf(v.Span)}, items}, nil

	case "Mapping":
		var v struct {
			Span  jsonSpan          `json:"span"`
			Items []json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		items, err := mappingItemsFromJSON(v.Items)
		if err != nil {
			return nil, err
		}
		return &EMapping{exprBase{spanOf(v.Span)}, items}, nil

	case "Slice":
		var v struct {
			Span  jsonSpan        `json:"span"`
			Start json.RawMessage `json:"start"`
			End   json.RawMessage `json:"end"`
			Step  json.RawMessage `json:"step"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		start, err := exprFromJSON(v.Start)
		if err != nil {
			return nil, err
		}
		end, err := exprFromJSON(v.End)
		if err != nil {
			return nil, err
		}
		step, err := exprFromJSON(v.Step)
		if err != nil {
			return nil, err
		}
		return &ESlice{exprBase{spanOf(v.Span)}, start, end, step}, nil

	case "Unary":
		var v struct {
			Span jsonSpan        `json:"span"`
			Op   string          `json:"op"`
			X    json.RawMessage `json:"x"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		op, err := unaryOpFromJSON(v.Op)
		if err != nil {
			return nil, err
		}
		x, err := exprFromJSON(v.X)
		if err != nil {
			return nil, err
		}
		return &EUnary{exprBase{spanOf(v.Span)}, op, x}, nil

	case "Binary":
		var v struct {
			Span jsonSpan        `json:"span"`
			Op   string          `json:"op"`
			L    json.RawMessage `json:"l"`
			R    json.RawMessage `json:"r"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		op, err := binaryOpFromJSON(v.Op)
		if err != nil {
			return nil, err
		}
		l, err := exprFromJSON(v.L)
		if err != nil {
			return nil, err
		}
		r, err := exprFromJSON(v.R)
		if err != nil {
			return nil, err
		}
		return &EBinary{exprBase{spanOf(v.Span)}, op, l, r}, nil

	case "If":
		var v struct {
			Span jsonSpan        `json:"span"`
			Cond json.RawMessage `json:"cond"`
			Then json.RawMessage `json:"then"`
			Else json.RawMessage `json:"else"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		cond, err := exprFromJSON(v.Cond)
		if err != nil {
			return nil, err
		}
		then, err := blockFromJSONField(v.Then)
		if err != nil {
			return nil, err
		}
		els, err := blockFromJSONField(v.Else)
		if err != nil {
			return nil, err
		}
		return &EIf{exprBase{spanOf(v.Span)}, cond, then, els}, nil

	case "Match":
		var v struct {
			Span    jsonSpan          `json:"span"`
			Subject json.RawMessage   `json:"subject"`
			Cases   []json.RawMessage `json:"cases"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		subject, err := exprFromJSON(v.Subject)
		if err != nil {
			return nil, err
		}
		cases, err := matchCasesFromJSON(v.Cases)
		if err != nil {
			return nil, err
		}
		return &EMatch{exprBase{spanOf(v.Span)}, subject, cases}, nil

	case "Class":
		var v struct {
			Span  jsonSpan          `json:"span"`
			Bases []json.RawMessage `json:"bases"`
			Body  json.RawMessage   `json:"body"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		bases, err := callItemsFromJSON(v.Bases)
		if err != nil {
			return nil, err
		}
		body, err := blockFromJSONField(v.Body)
		if err != nil {
			return nil, err
		}
		return &EClass{exprBase{spanOf(v.Span)}, bases, body}, nil

	case "Call", "MappedCall":
		var v struct {
			Span jsonSpan          `json:"span"`
			Fn   json.RawMessage   `json:"fn"`
			Obj  json.RawMessage   `json:"obj"`
			Args []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		args, err := callItemsFromJSON(v.Args)
		if err != nil {
			return nil, err
		}
		if kind == "MappedCall" {
			obj, err := exprFromJSON(v.Obj)
			if err != nil {
				return nil, err
			}
			return &EMappedCall{exprBase{spanOf(v.Span)}, obj, args}, nil
		}
		fn, err := exprFromJSON(v.Fn)
		if err != nil {
			return nil, err
		}
		return &ECall{exprBase{spanOf(v.Span)}, fn, args}, nil

	case "Subscript", "MappedSubscript":
		var v struct {
			Span    jsonSpan          `json:"span"`
			Obj     json.RawMessage   `json:"obj"`
			Indices []json.RawMessage `json:"indices"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		obj, err := exprFromJSON(v.Obj)
		if err != nil {
			return nil, err
		}
		indices, err := listItemsFromJSON(v.Indices)
		if err != nil {
			return nil, err
		}
		if kind == "MappedSubscript" {
			return &EMappedSubscript{exprBase{spanOf(v.Span)}, obj, indices}, nil
		}
		return &ESubscript{exprBase{spanOf(v.Span)}, obj, indices}, nil

	case "Attribute", "MappedAttribute":
		var v struct {
			Span jsonSpan        `json:"span"`
			Obj  json.RawMessage `json:"obj"`
			Name string          `json:"name"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		obj, err := exprFromJSON(v.Obj)
		if err != nil {
			return nil, err
		}
		if kind == "MappedAttribute" {
			return &EMappedAttribute{exprBase{spanOf(v.Span)}, obj, v.Name}, nil
		}
		return &EAttribute{exprBase{spanOf(v.Span)}, obj, v.Name}, nil

	case "Then", "MappedThen":
		var v struct {
			Span jsonSpan        `json:"span"`
			Obj  json.RawMessage `json:"obj"`
			Rhs  json.RawMessage `json:"rhs"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		obj, err := exprFromJSON(v.Obj)
		if err != nil {
			return nil, err
		}
		rhs, err := exprFromJSON(v.Rhs)
		if err != nil {
			return nil, err
		}
		if kind == "MappedThen" {
			return &EMappedThen{exprBase{spanOf(v.Span)}, obj, rhs}, nil
		}
		return &EThen{exprBase{spanOf(v.Span)}, obj, rhs}, nil

	case "Checked":
		var v struct {
			Span        jsonSpan        `json:"span"`
			X           json.RawMessage `json:"x"`
			ExceptTypes json.RawMessage `json:"except_types"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		x, err := exprFromJSON(v.X)
		if err != nil {
			return nil, err
		}
		et, err := exceptTypesFromJSON(v.ExceptTypes)
		if err != nil {
			return nil, err
		}
		return &EChecked{exprBase{spanOf(v.Span)}, x, et}, nil

	case "Fn":
		var v struct {
			Span jsonSpan          `json:"span"`
			Args []json.RawMessage `json:"args"`
			Body json.RawMessage   `json:"body"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		args, err := argDefItemsFromJSON(v.Args)
		if err != nil {
			return nil, err
		}
		body, err := blockFromJSONField(v.Body)
		if err != nil {
			return nil, err
		}
		return &EFn{exprBase{spanOf(v.Span)}, args, body}, nil

	case "Fstr":
		var v struct {
			Span  jsonSpan          `json:"span"`
			Head  string            `json:"head"`
			Parts []json.RawMessage `json:"parts"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		parts := make([]FstrPart, 0, len(v.Parts))
		for _, p := range v.Parts {
			var pv struct {
				Expr json.RawMessage `json:"expr"`
				Tail string          `json:"tail"`
			}
			if err := json.Unmarshal(p, &pv); err != nil {
				return nil, err
			}
			block, err := blockFromJSONField(pv.Expr)
			if err != nil {
				return nil, err
			}
			parts = append(parts, FstrPart{Expr: block, Tail: pv.Tail})
		}
		return &EFstr{exprBase{spanOf(v.Span)}, v.Head, parts}, nil

	case "Block":
		var v struct {
			Span  jsonSpan        `json:"span"`
			Block json.RawMessage `json:"block"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		block, err := blockFromJSONField(v.Block)
		if err != nil {
			return nil, err
		}
		return &EBlock{exprBase{spanOf(v.Span)}, block}, nil

	default:
		return nil, fmt.Errorf("unknown expression node type %q", kind)
	}
}

func stmtFromJSON(raw json.RawMessage) (Stmt, error) {
	kind, err := typeTag(raw)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "Assign":
		var v struct {
			Span      jsonSpan        `json:"span"`
			Lhs       json.RawMessage `json:"lhs"`
			Rhs       json.RawMessage `json:"rhs"`
			Modifiers []string        `json:"modifiers"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		lhs, err := exprFromJSON(v.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := exprFromJSON(v.Rhs)
		if err != nil {
			return nil, err
		}
		mods, err := assignModifiersFromJSON(v.Modifiers)
		if err != nil {
			return nil, err
		}
		return &SAssign{stmtBase{spanOf(v.Span)}, lhs, rhs, mods}, nil

	case "ExprStmt":
		var v struct {
			Span      jsonSpan        `json:"span"`
			X         json.RawMessage `json:"x"`
			Modifiers []string        `json:"modifiers"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		x, err := exprFromJSON(v.X)
		if err != nil {
			return nil, err
		}
		mods, err := assignModifiersFromJSON(v.Modifiers)
		if err != nil {
			return nil, err
		}
		return &SExprStmt{stmtBase{spanOf(v.Span)}, x, mods}, nil

	case "Return":
		var v struct {
			Span jsonSpan        `json:"span"`
			X    json.RawMessage `json:"x"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		x, err := exprFromJSON(v.X)
		if err != nil {
			return nil, err
		}
		return &SReturn{stmtBase{spanOf(v.Span)}, x}, nil

	case "While":
		var v struct {
			Span jsonSpan        `json:"span"`
			Cond json.RawMessage `json:"cond"`
			Body json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		cond, err := exprFromJSON(v.Cond)
		if err != nil {
			return nil, err
		}
		body, err := blockFromJSONField(v.Body)
		if err != nil {
			return nil, err
		}
		return &SWhile{stmtBase{spanOf(v.Span)}, cond, body}, nil

	case "For":
		var v struct {
			Span   jsonSpan        `json:"span"`
			Target json.RawMessage `json:"target"`
			Iter   json.RawMessage `json:"iter"`
			Body   json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		target, err := exprFromJSON(v.Target)
		if err != nil {
			return nil, err
		}
		iter, err := exprFromJSON(v.Iter)
		if err != nil {
			return nil, err
		}
		body, err := blockFromJSONField(v.Body)
		if err != nil {
			return nil, err
		}
		return &SFor{stmtBase{spanOf(v.Span)}, target, iter, body}, nil

	case "Import":
		var v struct {
			Span     jsonSpan `json:"span"`
			Trunk    []string `json:"trunk"`
			Star     bool     `json:"star"`
			Leaves   []struct {
				Name  string `json:"name"`
				Alias string `json:"alias"`
			} `json:"leaves"`
			Level    int  `json:"level"`
			Reexport bool `json:"reexport"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		leaves := make([]ImportLeaf, 0, len(v.Leaves))
		for _, l := range v.Leaves {
			leaves = append(leaves, ImportLeaf{Name: l.Name, Alias: l.Alias})
		}
		return &SImport{stmtBase{spanOf(v.Span)}, ImportStmt{
			Trunk:    v.Trunk,
			Imports:  ImportList{Star: v.Star, Leaves: leaves},
			Level:    v.Level,
			Reexport: v.Reexport,
		}}, nil

	case "Try":
		var v struct {
			Span     jsonSpan          `json:"span"`
			Body     json.RawMessage   `json:"body"`
			Handlers []json.RawMessage `json:"handlers"`
			Finally  json.RawMessage   `json:"finally"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		body, err := blockFromJSONField(v.Body)
		if err != nil {
			return nil, err
		}
		handlers, err := exceptHandlersFromJSON(v.Handlers)
		if err != nil {
			return nil, err
		}
		finally, err := blockFromJSONField(v.Finally)
		if err != nil {
			return nil, err
		}
		return &STry{stmtBase{spanOf(v.Span)}, body, handlers, finally}, nil

	case "Assert":
		var v struct {
			Span jsonSpan        `json:"span"`
			X    json.RawMessage `json:"x"`
			Msg  json.RawMessage `json:"msg"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		x, err := exprFromJSON(v.X)
		if err != nil {
			return nil, err
		}
		msg, err := exprFromJSON(v.Msg)
		if err != nil {
			return nil, err
		}
		return &SAssert{stmtBase{spanOf(v.Span)}, x, msg}, nil

	case "Raise":
		var v struct {
			Span jsonSpan        `json:"span"`
			X    json.RawMessage `json:"x"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		x, err := exprFromJSON(v.X)
		if err != nil {
			return nil, err
		}
		return &SRaise{stmtBase{spanOf(v.Span)}, x}, nil

	case "Break":
		var v struct {
			Span jsonSpan `json:"span"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return &SBreak{stmtBase{spanOf(v.Span)}}, nil

	case "Continue":
		var v struct {
			Span jsonSpan `json:"span"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return &SContinue{stmtBase{spanOf(v.Span)}}, nil

	default:
		return nil, fmt.Errorf("unknown statement node type %q", kind)
	}
}

func listItemsFromJSON(raw []json.RawMessage) ([]ListItem, error) {
	items := make([]ListItem, 0, len(raw))
	for _, r := range raw {
		var v struct {
			Spread bool            `json:"spread"`
			X      json.RawMessage `json:"x"`
		}
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, err
		}
		x, err := exprFromJSON(v.X)
		if err != nil {
			return nil, err
		}
		items = append(items, ListItem{Spread: v.Spread, X: x})
	}
	return items, nil
}

func mappingItemsFromJSON(raw []json.RawMessage) ([]MappingItem, error) {
	items := make([]MappingItem, 0, len(raw))
	for _, r := range raw {
		var v struct {
			Spread bool            `json:"spread"`
			Key    json.RawMessage `json:"key"`
			Value  json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, err
		}
		key, err := exprFromJSON(v.Key)
		if err != nil {
			return nil, err
		}
		value, err := exprFromJSON(v.Value)
		if err != nil {
			return nil, err
		}
		items = append(items, MappingItem{Spread: v.Spread, Key: key, Value: value})
	}
	return items, nil
}

func callItemsFromJSON(raw []json.RawMessage) ([]CallItem, error) {
	items := make([]CallItem, 0, len(raw))
	for _, r := range raw {
		var v struct {
			Kind string          `json:"kind"`
			Name string          `json:"name"`
			X    json.RawMessage `json:"x"`
		}
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, err
		}
		k, err := callItemKindFromJSON(v.Kind)
		if err != nil {
			return nil, err
		}
		x, err := exprFromJSON(v.X)
		if err != nil {
			return nil, err
		}
		items = append(items, CallItem{Kind: k, Name: v.Name, X: x})
	}
	return items, nil
}

func argDefItemsFromJSON(raw []json.RawMessage) ([]ArgDefItem, error) {
	items := make([]ArgDefItem, 0, len(raw))
	for _, r := range raw {
		var v struct {
			Kind    string          `json:"kind"`
			Name    string          `json:"name"`
			Pattern json.RawMessage `json:"pattern"`
			Default json.RawMessage `json:"default"`
		}
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, err
		}
		k, err := argDefKindFromJSON(v.Kind)
		if err != nil {
			return nil, err
		}
		pattern, err := exprFromJSON(v.Pattern)
		if err != nil {
			return nil, err
		}
		def, err := exprFromJSON(v.Default)
		if err != nil {
			return nil, err
		}
		items = append(items, ArgDefItem{Kind: k, Name: v.Name, Pattern: pattern, Default: def})
	}
	return items, nil
}

func matchCasesFromJSON(raw []json.RawMessage) ([]MatchCase, error) {
	cases := make([]MatchCase, 0, len(raw))
	for _, r := range raw {
		var v struct {
			Pattern json.RawMessage `json:"pattern"`
			Body    json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, err
		}
		pattern, err := exprFromJSON(v.Pattern)
		if err != nil {
			return nil, err
		}
		body, err := blockFromJSONField(v.Body)
		if err != nil {
			return nil, err
		}
		cases = append(cases, MatchCase{Pattern: pattern, Body: body})
	}
	return cases, nil
}

func exceptHandlersFromJSON(raw []json.RawMessage) ([]ExceptHandler, error) {
	handlers := make([]ExceptHandler, 0, len(raw))
	for _, r := range raw {
		var v struct {
			Types json.RawMessage `json:"types"`
			Name  string          `json:"name"`
			Body  json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, err
		}
		types, err := exceptTypesFromJSON(v.Types)
		if err != nil {
			return nil, err
		}
		body, err := blockFromJSONField(v.Body)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, ExceptHandler{Types: types, Name: v.Name, Body: body})
	}
	return handlers, nil
}

func exceptTypesFromJSON(raw json.RawMessage) (*ExceptTypes, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var v struct {
		Multiple bool              `json:"multiple"`
		Types    []json.RawMessage `json:"types"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	types := make([]Expr, 0, len(v.Types))
	for _, t := range v.Types {
		x, err := exprFromJSON(t)
		if err != nil {
			return nil, err
		}
		types = append(types, x)
	}
	return &ExceptTypes{Multiple: v.Multiple, Types: types}, nil
}

func literalKindFromJSON(s string) (LiteralKind, error) {
	switch s {
	case "num":
		return LiteralNum, nil
	case "str":
		return LiteralStr, nil
	case "bool":
		return LiteralBool, nil
	case "none":
		return LiteralNone, nil
	default:
		return 0, fmt.Errorf("unknown literal kind %q", s)
	}
}

func unaryOpFromJSON(s string) (UnaryOp, error) {
	switch s {
	case "inv":
		return OpInv, nil
	case "pos":
		return OpPos, nil
	case "neg":
		return OpNeg, nil
	case "yield":
		return OpYield, nil
	case "yield_from":
		return OpYieldFrom, nil
	default:
		return 0, fmt.Errorf("unknown unary operator %q", s)
	}
}

func binaryOpFromJSON(s string) (BinaryOp, error) {
	switch s {
	case "add":
		return OpAdd, nil
	case "sub":
		return OpSub, nil
	case "mul":
		return OpMul, nil
	case "mod":
		return OpMod, nil
	case "matmul":
		return OpMatMul, nil
	case "div":
		return OpDiv, nil
	case "exp":
		return OpExp, nil
	case "lt":
		return OpLt, nil
	case "leq":
		return OpLeq, nil
	case "gt":
		return OpGt, nil
	case "geq":
		return OpGeq, nil
	case "eq":
		return OpEq, nil
	case "neq":
		return OpNeq, nil
	case "is":
		return OpIs, nil
	case "nis":
		return OpNis, nil
	case "coalesce":
		return OpCoalesce, nil
	case "pipe":
		return OpPipe, nil
	default:
		return 0, fmt.Errorf("unknown binary operator %q", s)
	}
}

func callItemKindFromJSON(s string) (CallItemKind, error) {
	switch s {
	case "arg":
		return CallArg, nil
	case "kwarg":
		return CallKwarg, nil
	case "arg_spread":
		return CallArgSpread, nil
	case "kwarg_spread":
		return CallKwargSpread, nil
	default:
		return 0, fmt.Errorf("unknown call item kind %q", s)
	}
}

func argDefKindFromJSON(s string) (ArgDefKind, error) {
	switch s {
	case "plain":
		return ArgPlain, nil
	case "spread":
		return ArgSpread, nil
	case "kwarg_spread":
		return KwargSpread, nil
	default:
		return 0, fmt.Errorf("unknown argument kind %q", s)
	}
}

func assignModifiersFromJSON(raw []string) ([]AssignModifier, error) {
	mods := make([]AssignModifier, 0, len(raw))
	for _, s := range raw {
		switch s {
		case "export":
			mods = append(mods, ModExport)
		case "global":
			mods = append(mods, ModGlobal)
		case "nonlocal":
			mods = append(mods, ModNonlocal)
		default:
			return nil, fmt.Errorf("unknown assignment modifier %q", s)
		}
	}
	return mods, nil
}
