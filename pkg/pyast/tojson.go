package pyast

// ToJSON serializes one TransformOutput into the same "type"-tagged
// shape pkg/koatlast.BlockFromJSON reads on the way in, so a host
// Python runtime (or a test fixture) can walk the tree without a
// second schema to learn. Grounded on the standard library's own
// encoding/json.RawMessage sum-type idiom; see pkg/koatlast/fromjson.go
// and DESIGN.md for why no pack example offered a closer model.

import "encoding/json"

// ToJSON renders out as an indented JSON document.
func ToJSON(out TransformOutput) ([]byte, error) {
	doc := map[string]any{
		"pyblock":             stmtsToJSON(out.PyBlock),
		"exports":             out.Exports,
		"module_star_exports": out.ModuleStarExports,
	}
	return json.MarshalIndent(doc, "", "  ")
}

func spanToJSON(s Span) [2]int { return [2]int{s.Start, s.End} }

func exprToJSON(e Expr) any {
	if e == nil {
		return nil
	}
	switch x := e.(type) {
	case *EIdent:
		return map[string]any{"type": "Ident", "span": spanToJSON(x.Sp), "name": x.Name, "ctx": ctxToJSON(x.Ctx)}
	case *ELiteral:
		return map[string]any{"type": "Literal", "span": spanToJSON(x.Sp), "kind": int(x.Lit.Kind), "text": x.Lit.Text, "bool": x.Lit.Bool}
	case *ECall:
		return map[string]any{"type": "Call", "span": spanToJSON(x.Sp), "fn": exprToJSON(x.Fn), "args": callItemsToJSON(x.Args)}
	case *EAttribute:
		return map[string]any{"type": "Attribute", "span": spanToJSON(x.Sp), "obj": exprToJSON(x.Obj), "name": x.Name, "ctx": ctxToJSON(x.Ctx)}
	case *ESubscript:
		return map[string]any{"type": "Subscript", "span": spanToJSON(x.Sp), "obj": exprToJSON(x.Obj), "index": exprToJSON(x.Index), "ctx": ctxToJSON(x.Ctx)}
	case *ETuple:
		return map[string]any{"type": "Tuple", "span": spanToJSON(x.Sp), "items": listItemsToJSON(x.Items)}
	case *EList:
		return map[string]any{"type": "List", "span": spanToJSON(x.Sp), "items": listItemsToJSON(x.Items)}
	case *EDict:
		return map[string]any{"type": "Dict", "span": spanToJSON(x.Sp), "items": dictItemsToJSON(x.Items)}
	case *EBinary:
		return map[string]any{"type": "Binary", "span": spanToJSON(x.Sp), "op": int(x.Op), "l": exprToJSON(x.L), "r": exprToJSON(x.R)}
	case *EUnary:
		return map[string]any{"type": "Unary", "span": spanToJSON(x.Sp), "op": int(x.Op), "x": exprToJSON(x.X)}
	case *ELambda:
		return map[string]any{"type": "Lambda", "span": spanToJSON(x.Sp), "args": argDefItemsToJSON(x.Args), "body": exprToJSON(x.Body)}
	case *EIfExpr:
		return map[string]any{"type": "IfExpr", "span": spanToJSON(x.Sp), "cond": exprToJSON(x.Cond), "then": exprToJSON(x.Then), "else": exprToJSON(x.Else)}
	case *EFstr:
		return map[string]any{"type": "Fstr", "span": spanToJSON(x.Sp), "parts": fstrPartsToJSON(x.Parts)}
	case *EYield:
		return map[string]any{"type": "Yield", "span": spanToJSON(x.Sp), "x": exprToJSON(x.X)}
	case *EYieldFrom:
		return map[string]any{"type": "YieldFrom", "span": spanToJSON(x.Sp), "x": exprToJSON(x.X)}
	default:
		return map[string]any{"type": "Unknown"}
	}
}

func ctxToJSON(ctx AccessCtx) string {
	if ctx == Store {
		return "store"
	}
	return "load"
}

func listItemsToJSON(items []ListItem) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = map[string]any{"spread": it.Spread, "x": exprToJSON(it.X)}
	}
	return out
}

func dictItemsToJSON(items []DictItem) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = map[string]any{"spread": it.Spread, "key": exprToJSON(it.Key), "value": exprToJSON(it.Value)}
	}
	return out
}

func callItemsToJSON(items []CallItem) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = map[string]any{"kind": int(it.Kind), "name": it.Name, "x": exprToJSON(it.X)}
	}
	return out
}

func argDefItemsToJSON(items []ArgDefItem) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = map[string]any{
			"kind":     int(it.Kind),
			"name":     it.Name,
			"arg_name": it.ArgName,
			"default":  exprToJSON(it.Default),
		}
	}
	return out
}

func fstrPartsToJSON(parts []FstrPart) []any {
	out := make([]any, len(parts))
	for i, p := range parts {
		out[i] = map[string]any{
			"is_expr": p.IsExpr,
			"str":     p.Str,
			"expr":    exprToJSON(p.Expr),
			"format":  p.Format,
		}
	}
	return out
}

func stmtsToJSON(stmts []Stmt) []any {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		out[i] = stmtToJSON(s)
	}
	return out
}

func stmtToJSON(s Stmt) any {
	switch x := s.(type) {
	case *SAssign:
		return map[string]any{"type": "Assign", "span": spanToJSON(x.Sp), "target": exprToJSON(x.Target), "value": exprToJSON(x.Value)}
	case *SExpr:
		return map[string]any{"type": "Expr", "span": spanToJSON(x.Sp), "x": exprToJSON(x.X)}
	case *SIf:
		return map[string]any{"type": "If", "span": spanToJSON(x.Sp), "cond": exprToJSON(x.Cond), "then": stmtsToJSON(x.Then), "else": stmtsToJSON(x.Else)}
	case *SWhile:
		return map[string]any{"type": "While", "span": spanToJSON(x.Sp), "cond": exprToJSON(x.Cond), "body": stmtsToJSON(x.Body)}
	case *SFor:
		return map[string]any{"type": "For", "span": spanToJSON(x.Sp), "target": exprToJSON(x.Target), "iter": exprToJSON(x.Iter), "body": stmtsToJSON(x.Body)}
	case *STry:
		return map[string]any{"type": "Try", "span": spanToJSON(x.Sp), "body": stmtsToJSON(x.Body), "handlers": exceptHandlersToJSON(x.Handlers), "finally": stmtsToJSON(x.Finally)}
	case *SMatch:
		return map[string]any{"type": "Match", "span": spanToJSON(x.Sp), "subject": exprToJSON(x.Subject), "cases": matchCasesToJSON(x.Cases)}
	case *SFnDef:
		return map[string]any{"type": "FnDef", "span": spanToJSON(x.Sp), "name": x.Name, "args": argDefItemsToJSON(x.Args), "body": stmtsToJSON(x.Body), "decorators": decoratorsToJSON(x.Decorators)}
	case *SClassDef:
		return map[string]any{"type": "ClassDef", "span": spanToJSON(x.Sp), "name": x.Name, "bases": callItemsToJSON(x.Bases), "body": stmtsToJSON(x.Body), "decorators": decoratorsToJSON(x.Decorators)}
	case *SImport:
		return map[string]any{"type": "Import", "span": spanToJSON(x.Sp), "aliases": importAliasesToJSON(x.Aliases)}
	case *SImportFrom:
		return map[string]any{"type": "ImportFrom", "span": spanToJSON(x.Sp), "module": x.Module, "aliases": importAliasesToJSON(x.Aliases), "level": x.Level}
	case *SGlobal:
		return map[string]any{"type": "Global", "span": spanToJSON(x.Sp), "names": x.Names}
	case *SNonlocal:
		return map[string]any{"type": "Nonlocal", "span": spanToJSON(x.Sp), "names": x.Names}
	case *SReturn:
		return map[string]any{"type": "Return", "span": spanToJSON(x.Sp), "x": exprToJSON(x.X)}
	case *SRaise:
		return map[string]any{"type": "Raise", "span": spanToJSON(x.Sp), "x": exprToJSON(x.X)}
	case *SAssert:
		return map[string]any{"type": "Assert", "span": spanToJSON(x.Sp), "x": exprToJSON(x.X), "msg": exprToJSON(x.Msg)}
	case *SBreak:
		return map[string]any{"type": "Break", "span": spanToJSON(x.Sp)}
	case *SContinue:
		return map[string]any{"type": "Continue", "span": spanToJSON(x.Sp)}
	default:
		return map[string]any{"type": "Unknown"}
	}
}

func exceptHandlersToJSON(handlers []ExceptHandler) []any {
	out := make([]any, len(handlers))
	for i, h := range handlers {
		out[i] = map[string]any{"typ": exprToJSON(h.Typ), "name": h.Name, "body": stmtsToJSON(h.Body)}
	}
	return out
}

func matchCasesToJSON(cases []MatchCase) []any {
	out := make([]any, len(cases))
	for i, c := range cases {
		out[i] = map[string]any{"pattern": exprToJSON(c.Pattern), "body": stmtsToJSON(c.Body)}
	}
	return out
}

func importAliasesToJSON(aliases []ImportAlias) []any {
	out := make([]any, len(aliases))
	for i, a := range aliases {
		out[i] = map[string]any{"name": a.Name, "as_name": a.AsName}
	}
	return out
}

func decoratorsToJSON(decorators Decorators) []any {
	out := make([]any, len(decorators))
	for i, d := range decorators {
		out[i] = exprToJSON(d)
	}
	return out
}
