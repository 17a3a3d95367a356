package lower

import (
	"github.com/koatl-lang/koatl/pkg/koatlast"
	"github.com/koatl-lang/koatl/pkg/lowerr"
	"github.com/koatl-lang/koatl/pkg/pyast"
)

var binOpTable = map[koatlast.BinaryOp]pyast.BinaryOp{
	koatlast.OpAdd:    pyast.Add,
	koatlast.OpSub:    pyast.Sub,
	koatlast.OpMul:    pyast.Mult,
	koatlast.OpMod:    pyast.Mod,
	koatlast.OpMatMul: pyast.MatMult,
	koatlast.OpDiv:    pyast.Div,
	koatlast.OpExp:    pyast.Pow,
	koatlast.OpLt:     pyast.Lt,
	koatlast.OpLeq:    pyast.Leq,
	koatlast.OpGt:     pyast.Gt,
	koatlast.OpGeq:    pyast.Geq,
	koatlast.OpEq:     pyast.Eq,
	koatlast.OpNeq:    pyast.Neq,
	koatlast.OpIs:     pyast.Is,
	koatlast.OpNis:    pyast.Nis,
}

var unaryOpTable = map[koatlast.UnaryOp]pyast.UnaryOp{
	koatlast.OpInv: pyast.Inv,
	koatlast.OpPos: pyast.Pos,
	koatlast.OpNeg: pyast.Neg,
}

// transform lowers x for its value, in Load access context.
func (c *Context) transform(x koatlast.Expr) (exprWithPre, error) {
	return c.transformWithAccess(x, pyast.Load)
}

// transformLifted lowers x purely for effect: its prelude and its own
// value both become part of the surrounding statement sequence (spec.md
// §7.1 "Expression statement").
func (c *Context) transformLifted(x koatlast.Expr) (exprWithPre, error) {
	return c.transform(x)
}

// transformWithPlaceholderGuard lowers x under a fresh placeholder
// frame keyed to its own span (spec.md §4.5): a bare `$` anywhere
// within x (but not within a nested guard) resolves to x's own
// implicit parameter.
func (c *Context) transformWithPlaceholderGuard(x koatlast.Expr) (exprWithPre, error) {
	return c.placeholderGuard(x.Span(), func() (exprWithPre, error) {
		return c.transform(x)
	})
}

// transformWithAccess lowers x, threading ctx into the leaf node kinds
// that carry a Load/Store distinction (identifiers, attributes,
// subscripts); every other expression kind is Load-only and ctx is
// ignored for it.
func (c *Context) transformWithAccess(x koatlast.Expr, ctx pyast.AccessCtx) (exprWithPre, error) {
	switch e := x.(type) {
	case *koatlast.ELiteral:
		return exprWithPre{expr: &pyast.ELiteral{EBase: pyast.EBase{Sp: e.Span()}, Lit: pyast.Literal{Kind: e.Lit.Kind, Text: e.Lit.Text, Bool: e.Lit.Bool}}}, nil

	case *koatlast.EIdent:
		return exprWithPre{expr: &pyast.EIdent{EBase: pyast.EBase{Sp: e.Span()}, Name: e.Name, Ctx: ctx}}, nil

	case *koatlast.EPlaceholder:
		return c.transformPlaceholder(e.Span(), ctx)

	case *koatlast.EList:
		return c.transformListLike(e.Span(), e.Items, ctx, false)

	case *koatlast.ETuple:
		return c.transformListLike(e.Span(), e.Items, ctx, true)

	case *koatlast.EMapping:
		return c.transformMapping(e)

	case *koatlast.ESlice:
		return c.transformSlice(e)

	case *koatlast.EUnary:
		return c.transformUnary(e)

	case *koatlast.EBinary:
		return c.transformBinary(e)

	case *koatlast.EIf:
		return c.transformIfExpr(e)

	case *koatlast.EMatch:
		return c.transformMatchExpr(e)

	case *koatlast.EClass:
		return c.transformClassExpr(e)

	case *koatlast.ECall:
		return c.transformCall(e)

	case *koatlast.ESubscript:
		return c.transformSubscript(e, ctx)

	case *koatlast.EAttribute:
		return c.transformAttribute(e, ctx)

	case *koatlast.EThen:
		return c.transformThen(e)

	case *koatlast.EMappedCall, *koatlast.EMappedSubscript, *koatlast.EMappedAttribute, *koatlast.EMappedThen:
		return c.transformPostfixExpr(x, ctx)

	case *koatlast.EChecked:
		return c.transformChecked(e)

	case *koatlast.EFn:
		return c.transformFn(e)

	case *koatlast.EFstr:
		return c.transformFstr(e)

	case *koatlast.EBlock:
		return c.transformBlockExpr(e)

	default:
		return exprWithPre{}, internalErr(x.Span(), "unhandled expression node %T", x)
	}
}

// transformListLike lowers a list/tuple/tuple-shaped-index's items.
// Each item is lowered under its own placeholder guard (spec.md §4.5
// "deep guard"), so a bare `$` list element becomes a one-argument
// lambda scoped to that element alone.
func (c *Context) transformListLike(span koatlast.Span, items []koatlast.ListItem, ctx pyast.AccessCtx, tuple bool) (exprWithPre, error) {
	var pre []pyast.Stmt
	out := make([]pyast.ListItem, 0, len(items))
	for _, item := range items {
		node, err := c.placeholderGuard(item.X.Span(), func() (exprWithPre, error) {
			return c.transformWithAccess(item.X, ctx)
		})
		if err != nil {
			return exprWithPre{}, err
		}
		pre = append(pre, node.pre...)
		out = append(out, pyast.ListItem{Spread: item.Spread, X: node.expr})
	}
	if tuple {
		return exprWithPre{pre: pre, expr: &pyast.ETuple{EBase: pyast.EBase{Sp: span}, Items: out}}, nil
	}
	return exprWithPre{pre: pre, expr: &pyast.EList{EBase: pyast.EBase{Sp: span}, Items: out}}, nil
}

// transformMapping lowers a mapping literal's items. Each key and each
// value is lowered under its own placeholder guard (spec.md §4.5 "deep
// guard"), the same per-slot treatment transformSlice gives a slice's
// bounds.
func (c *Context) transformMapping(e *koatlast.EMapping) (exprWithPre, error) {
	var pre []pyast.Stmt
	out := make([]pyast.DictItem, 0, len(e.Items))
	for _, item := range e.Items {
		if item.Spread {
			node, err := c.placeholderGuard(item.Value.Span(), func() (exprWithPre, error) {
				return c.transform(item.Value)
			})
			if err != nil {
				return exprWithPre{}, err
			}
			pre = append(pre, node.pre...)
			out = append(out, pyast.DictItem{Spread: true, Value: node.expr})
			continue
		}
		keyNode, err := c.placeholderGuard(item.Key.Span(), func() (exprWithPre, error) {
			return c.transform(item.Key)
		})
		if err != nil {
			return exprWithPre{}, err
		}
		valNode, err := c.placeholderGuard(item.Value.Span(), func() (exprWithPre, error) {
			return c.transform(item.Value)
		})
		if err != nil {
			return exprWithPre{}, err
		}
		pre = append(pre, keyNode.pre...)
		pre = append(pre, valNode.pre...)
		out = append(out, pyast.DictItem{Key: keyNode.expr, Value: valNode.expr})
	}
	return exprWithPre{pre: pre, expr: &pyast.EDict{EBase: pyast.EBase{Sp: e.Span()}, Items: out}}, nil
}

// transformSlice lowers a[start:end:step] (SPEC_FULL.md §3, slice
// lowering supplement): each bound is lowered under its own deep
// placeholder guard, an omitted bound becomes PyAST's `None` literal,
// and the result is a call to the builtin `slice(...)`.
func (c *Context) transformSlice(e *koatlast.ESlice) (exprWithPre, error) {
	lower := func(bound koatlast.Expr) (pyast.Expr, []pyast.Stmt, error) {
		if bound == nil {
			return nil, nil, nil
		}
		node, err := c.transformWithPlaceholderGuard(bound)
		if err != nil {
			return nil, nil, err
		}
		return node.expr, node.pre, nil
	}

	startExpr, startPre, err := lower(e.Start)
	if err != nil {
		return exprWithPre{}, err
	}
	endExpr, endPre, err := lower(e.End)
	if err != nil {
		return exprWithPre{}, err
	}
	stepExpr, stepPre, err := lower(e.Step)
	if err != nil {
		return exprWithPre{}, err
	}

	var pre []pyast.Stmt
	pre = append(pre, startPre...)
	pre = append(pre, endPre...)
	pre = append(pre, stepPre...)

	b := pyast.NewBuilder(e.Span())
	return exprWithPre{pre: pre, expr: b.Slice(startExpr, endExpr, stepExpr)}, nil
}

func (c *Context) transformUnary(e *koatlast.EUnary) (exprWithPre, error) {
	if e.Op == koatlast.OpYield || e.Op == koatlast.OpYieldFrom {
		if e.X == nil {
			return exprWithPre{expr: &pyast.EYield{EBase: pyast.EBase{Sp: e.Span()}}}, nil
		}
		node, err := c.transform(e.X)
		if err != nil {
			return exprWithPre{}, err
		}
		if e.Op == koatlast.OpYieldFrom {
			return exprWithPre{pre: node.pre, expr: &pyast.EYieldFrom{EBase: pyast.EBase{Sp: e.Span()}, X: node.expr}}, nil
		}
		return exprWithPre{pre: node.pre, expr: &pyast.EYield{EBase: pyast.EBase{Sp: e.Span()}, X: node.expr}}, nil
	}

	node, err := c.transform(e.X)
	if err != nil {
		return exprWithPre{}, err
	}
	return exprWithPre{pre: node.pre, expr: &pyast.EUnary{EBase: pyast.EBase{Sp: e.Span()}, Op: unaryOpTable[e.Op], X: node.expr}}, nil
}

// transformBinary lowers a binary expression. Coalesce (`??`) and Pipe
// (`|`) never reach PyAST directly (pkg/pyast doc comment): Coalesce
// becomes a single-evaluation IfExpr guarded by `__coalesces`, and Pipe
// becomes a direct call application, sharing machinery with EThen.
func (c *Context) transformBinary(e *koatlast.EBinary) (exprWithPre, error) {
	switch e.Op {
	case koatlast.OpCoalesce:
		return c.transformCoalesce(e)
	case koatlast.OpPipe:
		return c.applyThen(e.Span(), e.L, e.R)
	default:
		lNode, err := c.transform(e.L)
		if err != nil {
			return exprWithPre{}, err
		}
		rNode, err := c.transform(e.R)
		if err != nil {
			return exprWithPre{}, err
		}
		pre := append(lNode.pre, rNode.pre...)
		return exprWithPre{pre: pre, expr: &pyast.EBinary{EBase: pyast.EBase{Sp: e.Span()}, Op: binOpTable[e.Op], L: lNode.expr, R: rNode.expr}}, nil
	}
}

func (c *Context) transformCoalesce(e *koatlast.EBinary) (exprWithPre, error) {
	b := pyast.NewBuilder(e.Span())
	lNode, err := c.transform(e.L)
	if err != nil {
		return exprWithPre{}, err
	}
	tmp := c.TempVarName("coalesce", e.Span().Start)
	pre := append(lNode.pre, b.Assign(b.Ident(tmp, pyast.Store), lNode.expr))

	rNode, err := c.lazyBranch(e.R)
	if err != nil {
		return exprWithPre{}, err
	}
	pre = append(pre, rNode.pre...)

	cond := b.Call(b.LoadIdent("__coalesces"), []pyast.CallItem{b.CallArg(b.LoadIdent(tmp))})
	return exprWithPre{pre: pre, expr: b.IfExpr(cond, rNode.expr, b.LoadIdent(tmp))}, nil
}

// lazyBranch lowers x so its evaluation can be deferred: if it needs no
// prelude it is returned as-is, otherwise it is wrapped in a
// zero-argument function and replaced by a call to it, so embedding it
// in a PyAST IfExpr branch doesn't run its side effects unconditionally.
func (c *Context) lazyBranch(x koatlast.Expr) (exprWithPre, error) {
	node, err := c.transform(x)
	if err != nil {
		return exprWithPre{}, err
	}
	if len(node.pre) == 0 {
		return node, nil
	}
	fnExp, err := c.makeFnExp(nil, fnDefBody{stmts: appendReturn(node.pre, node.expr)}, x.Span())
	if err != nil {
		return exprWithPre{}, err
	}
	b := pyast.NewBuilder(x.Span())
	return exprWithPre{pre: fnExp.pre, expr: b.Call(fnExp.expr, nil)}, nil
}

// applyThen lowers `obj.(rhs)`/`obj | rhs` to `rhs(obj)` (spec.md §7.4
// "Then sugar").
func (c *Context) applyThen(span koatlast.Span, obj, rhs koatlast.Expr) (exprWithPre, error) {
	objNode, err := c.transform(obj)
	if err != nil {
		return exprWithPre{}, err
	}
	rhsNode, err := c.transform(rhs)
	if err != nil {
		return exprWithPre{}, err
	}
	pre := append(objNode.pre, rhsNode.pre...)
	b := pyast.NewBuilder(span)
	return exprWithPre{pre: pre, expr: b.Call(rhsNode.expr, []pyast.CallItem{b.CallArg(objNode.expr)})}, nil
}

func (c *Context) transformThen(e *koatlast.EThen) (exprWithPre, error) {
	return c.applyThen(e.Span(), e.Obj, e.Rhs)
}

func (c *Context) transformAttribute(e *koatlast.EAttribute, ctx pyast.AccessCtx) (exprWithPre, error) {
	node, err := c.transform(e.Obj)
	if err != nil {
		return exprWithPre{}, err
	}
	return exprWithPre{pre: node.pre, expr: &pyast.EAttribute{EBase: pyast.EBase{Sp: e.Span()}, Obj: node.expr, Name: e.Name, Ctx: ctx}}, nil
}

func (c *Context) transformCall(e *koatlast.ECall) (exprWithPre, error) {
	fnNode, err := c.transform(e.Fn)
	if err != nil {
		return exprWithPre{}, err
	}
	args, argsPre, err := c.transformCallItems(e.Args)
	if err != nil {
		return exprWithPre{}, err
	}
	pre := append(fnNode.pre, argsPre...)
	return exprWithPre{pre: pre, expr: &pyast.ECall{EBase: pyast.EBase{Sp: e.Span()}, Fn: fnNode.expr, Args: args}}, nil
}

func (c *Context) transformSubscript(e *koatlast.ESubscript, ctx pyast.AccessCtx) (exprWithPre, error) {
	objNode, err := c.transform(e.Obj)
	if err != nil {
		return exprWithPre{}, err
	}
	index, indexPre, err := c.transformSubscriptItems(e.Indices)
	if err != nil {
		return exprWithPre{}, err
	}
	pre := append(objNode.pre, indexPre...)
	return exprWithPre{pre: pre, expr: &pyast.ESubscript{EBase: pyast.EBase{Sp: e.Span()}, Obj: objNode.expr, Index: index, Ctx: ctx}}, nil
}

func (c *Context) transformChecked(e *koatlast.EChecked) (exprWithPre, error) {
	b := pyast.NewBuilder(e.Span())
	tmp := c.TempVarName("checked", e.Span().Start)

	node, err := c.transform(e.X)
	if err != nil {
		return exprWithPre{}, err
	}
	tryBody := append(append([]pyast.Stmt{}, node.pre...), b.Assign(b.Ident(tmp, pyast.Store), node.expr))

	typ, err := c.transformExceptTypes(e.ExceptTypes, e.Span())
	if err != nil {
		return exprWithPre{}, err
	}
	handler := b.ExceptHandler(typ, "__e", []pyast.Stmt{
		b.Assign(b.Ident(tmp, pyast.Store), b.LoadIdent("__e")),
	})

	tryStmt := b.Try(tryBody, []pyast.ExceptHandler{handler}, nil)
	return exprWithPre{pre: []pyast.Stmt{tryStmt}, expr: b.LoadIdent(tmp)}, nil
}

func (c *Context) transformBlockExpr(e *koatlast.EBlock) (exprWithPre, error) {
	result, err := c.transformBlockFinalExpr(e.Block)
	if err != nil {
		return exprWithPre{}, err
	}
	if result.kind != finalExprKindExpr {
		return exprWithPre{}, lowerr.New(lowerr.MissingFinalExpr, e.Span(), "block expression is missing a final expression")
	}
	return exprWithPre{pre: result.stmts, expr: result.expr}, nil
}
