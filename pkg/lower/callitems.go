package lower

import (
	"github.com/koatl-lang/koatl/pkg/koatlast"
	"github.com/koatl-lang/koatl/pkg/pyast"
)

var callItemKindTable = map[koatlast.CallItemKind]pyast.CallItemKind{
	koatlast.CallArg:         pyast.CallArg,
	koatlast.CallKwarg:       pyast.CallKwarg,
	koatlast.CallArgSpread:   pyast.CallArgSpread,
	koatlast.CallKwargSpread: pyast.CallKwargSpread,
}

// transformCallItems lowers a call's argument list in source order,
// preserving plain/kwarg/spread shape (spec.md §6.3 "Call argument
// lowering"). Each argument is lowered under its own placeholder guard
// (spec.md §4.5 "deep guard"): a bare `$` argument becomes a one-argument
// lambda scoped to that argument alone.
func (c *Context) transformCallItems(items []koatlast.CallItem) ([]pyast.CallItem, []pyast.Stmt, error) {
	var pre []pyast.Stmt
	out := make([]pyast.CallItem, 0, len(items))
	for _, item := range items {
		node, err := c.placeholderGuard(item.X.Span(), func() (exprWithPre, error) {
			return c.transform(item.X)
		})
		if err != nil {
			return nil, nil, err
		}
		pre = append(pre, node.pre...)
		out = append(out, pyast.CallItem{Kind: callItemKindTable[item.Kind], Name: item.Name, X: node.expr})
	}
	return out, pre, nil
}

// transformSubscriptItems lowers a subscript's index list: a single
// index lowers to a plain expression (possibly an ESlice already
// handled by transform), while multiple indices lower to a Tuple index,
// matching Python's `a[i, j]` desugaring to `a[(i, j)]`. Each index is
// lowered under its own placeholder guard (spec.md §4.5 "deep guard").
func (c *Context) transformSubscriptItems(indices []koatlast.ListItem) (pyast.Expr, []pyast.Stmt, error) {
	if len(indices) == 1 && !indices[0].Spread {
		index := indices[0].X
		node, err := c.placeholderGuard(index.Span(), func() (exprWithPre, error) {
			return c.transform(index)
		})
		if err != nil {
			return nil, nil, err
		}
		return node.expr, node.pre, nil
	}

	node, err := c.transformListLike(indices[0].X.Span(), indices, pyast.Load, true)
	if err != nil {
		return nil, nil, err
	}
	return node.expr, node.pre, nil
}

// transformExceptTypes lowers an except/Checked type clause to a
// single PyAST expression: absent means `Exception`, one type is used
// directly, more than one becomes a Tuple (SPEC_FULL.md §3 — Checked's
// except-type transform and Try's handler type transform share this
// helper, following the original's single ExceptTypesExt::transform).
func (c *Context) transformExceptTypes(et *koatlast.ExceptTypes, span koatlast.Span) (pyast.Expr, error) {
	b := pyast.NewBuilder(span)
	if et == nil {
		return b.LoadIdent("Exception"), nil
	}
	if !et.Multiple {
		node, err := c.transform(et.Types[0])
		if err != nil {
			return nil, err
		}
		return node.expr, nil
	}

	items := make([]pyast.ListItem, 0, len(et.Types))
	for _, t := range et.Types {
		node, err := c.transform(t)
		if err != nil {
			return nil, err
		}
		items = append(items, pyast.ListItem{X: node.expr})
	}
	return &pyast.ETuple{EBase: pyast.EBase{Sp: span}, Items: items}, nil
}
