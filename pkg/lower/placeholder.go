package lower

import (
	"github.com/koatl-lang/koatl/pkg/koatlast"
	"github.com/koatl-lang/koatl/pkg/lowerr"
	"github.com/koatl-lang/koatl/pkg/pyast"
)

// exprWithPre is the ⟨prelude, value⟩ pair spec.md §2 describes: every
// lowered expression is a PyAST expression plus the ordered statements
// that must run before it.
type exprWithPre struct {
	pre  []pyast.Stmt
	expr pyast.Expr
}

// placeholderGuard pushes a fresh placeholder frame keyed off span,
// runs body, and pops it. If a bare `$` activated the frame while body
// ran, the result is wrapped into a single-argument function whose
// parameter is the frame's placeholder variable (a Lambda when the
// body is exactly `return e`, otherwise a named FnDef); otherwise the
// result passes through unchanged.
func (c *Context) placeholderGuard(span koatlast.Span, body func() (exprWithPre, error)) (exprWithPre, error) {
	c.placeholders = append(c.placeholders, placeholderFrame{span: span})
	inner, err := body()
	n := len(c.placeholders)
	frame := c.placeholders[n-1]
	c.placeholders = c.placeholders[:n-1]
	if err != nil {
		return exprWithPre{}, err
	}

	if !frame.activated {
		return inner, nil
	}

	varName := frame.varName(c)
	fnBody := appendReturn(inner.pre, inner.expr)
	fnExp, err := c.makeFnExp(
		[]fnDefArg{{kind: argPlain, argName: varName}},
		fnDefBody{stmts: fnBody},
		span,
	)
	if err != nil {
		return exprWithPre{}, err
	}
	return fnExp, nil
}

// transformPlaceholder resolves a bare `$` against the innermost
// placeholder frame, activating it, and returns a load/store of its
// variable.
func (c *Context) transformPlaceholder(span koatlast.Span, ctx pyast.AccessCtx) (exprWithPre, error) {
	if len(c.placeholders) == 0 {
		return exprWithPre{}, lowerr.New(lowerr.PlaceholderOutsideContext, span, "placeholder expression outside of placeholder context")
	}
	frame := &c.placeholders[len(c.placeholders)-1]
	frame.activated = true
	varName := frame.varName(c)
	return exprWithPre{expr: &pyast.EIdent{EBase: pyast.EBase{Sp: span}, Name: varName, Ctx: ctx}}, nil
}

func appendReturn(pre []pyast.Stmt, expr pyast.Expr) []pyast.Stmt {
	out := append([]pyast.Stmt{}, pre...)
	out = append(out, &pyast.SReturn{X: expr})
	return out
}
