package lower

import (
	"github.com/koatl-lang/koatl/pkg/koatlast"
	"github.com/koatl-lang/koatl/pkg/lowerr"
	"github.com/koatl-lang/koatl/pkg/pyast"
)

// transformPostfixExpr lowers a mapped postfix operator (`?.`, `?(...)`,
// `?[...]`, `?then`) (spec.md §6.4): the receiver is lifted into a temp
// for single evaluation unless it is already a bare identifier, and the
// result is `recv if __coalesces(recv) else step(recv)` — the step
// only runs when the receiver isn't the designated-empty value.
func (c *Context) transformPostfixExpr(x koatlast.Expr, ctx pyast.AccessCtx) (exprWithPre, error) {
	if ctx == pyast.Store {
		return exprWithPre{}, lowerr.New(lowerr.InvalidPostfix, x.Span(), "a mapped postfix operator is not a valid assignment target")
	}

	var obj koatlast.Expr
	var span koatlast.Span
	var buildStep func(b pyast.Builder, recv pyast.Expr) (pyast.Expr, []pyast.Stmt, error)

	switch e := x.(type) {
	case *koatlast.EMappedAttribute:
		obj, span = e.Obj, e.Span()
		buildStep = func(b pyast.Builder, recv pyast.Expr) (pyast.Expr, []pyast.Stmt, error) {
			return b.Attribute(recv, e.Name, pyast.Load), nil, nil
		}

	case *koatlast.EMappedSubscript:
		obj, span = e.Obj, e.Span()
		buildStep = func(b pyast.Builder, recv pyast.Expr) (pyast.Expr, []pyast.Stmt, error) {
			index, pre, err := c.transformSubscriptItems(e.Indices)
			if err != nil {
				return nil, nil, err
			}
			return b.Subscript(recv, index, pyast.Load), pre, nil
		}

	case *koatlast.EMappedCall:
		obj, span = e.Obj, e.Span()
		buildStep = func(b pyast.Builder, recv pyast.Expr) (pyast.Expr, []pyast.Stmt, error) {
			args, pre, err := c.transformCallItems(e.Args)
			if err != nil {
				return nil, nil, err
			}
			return b.Call(recv, args), pre, nil
		}

	case *koatlast.EMappedThen:
		obj, span = e.Obj, e.Span()
		buildStep = func(b pyast.Builder, recv pyast.Expr) (pyast.Expr, []pyast.Stmt, error) {
			rhsNode, err := c.transform(e.Rhs)
			if err != nil {
				return nil, nil, err
			}
			return b.Call(rhsNode.expr, []pyast.CallItem{b.CallArg(recv)}), rhsNode.pre, nil
		}

	default:
		return exprWithPre{}, internalErr(x.Span(), "unhandled mapped postfix node %T", x)
	}

	b := pyast.NewBuilder(span)
	objNode, err := c.transformWithPlaceholderGuard(obj)
	if err != nil {
		return exprWithPre{}, err
	}

	var pre []pyast.Stmt
	pre = append(pre, objNode.pre...)

	var recv pyast.Expr
	if ident, ok := objNode.expr.(*pyast.EIdent); ok && len(objNode.pre) == 0 {
		recv = ident
	} else {
		tmp := c.TempVarName("mapped", span.Start)
		pre = append(pre, b.Assign(b.Ident(tmp, pyast.Store), objNode.expr))
		recv = b.LoadIdent(tmp)
	}

	stepExpr, stepPre, err := buildStep(b, recv)
	if err != nil {
		return exprWithPre{}, err
	}
	pre = append(pre, stepPre...)

	cond := b.Call(b.LoadIdent("__coalesces"), []pyast.CallItem{b.CallArg(recv)})
	return exprWithPre{pre: pre, expr: b.IfExpr(cond, recv, stepExpr)}, nil
}
