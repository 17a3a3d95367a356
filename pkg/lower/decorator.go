package lower

import (
	"github.com/koatl-lang/koatl/pkg/koatlast"
	"github.com/koatl-lang/koatl/pkg/lowerr"
	"github.com/koatl-lang/koatl/pkg/pyast"
)

// peelDecorators recovers a decorator chain from an assignment RHS
// built out of Then (`.( )`), Pipe (`|`), or single-argument Call
// wrappers around a function/class expression (spec.md §7.2 "Decorator
// sugar"): `f = body.(dec1).(dec2)` is exactly `dec2(dec1(body))`,
// which Python spells `@dec2 @dec1 def f(): body`. The chain is peeled
// back to its innermost expression and the decorators are returned in
// application order (closest-to-def first, matching pyast.Decorators'
// own ordering contract).
func (c *Context) peelDecorators(rhs koatlast.Expr) (decorators []koatlast.Expr, inner koatlast.Expr) {
	cur := rhs
	for {
		switch e := cur.(type) {
		case *koatlast.EThen:
			decorators = append([]koatlast.Expr{e.Rhs}, decorators...)
			cur = e.Obj
		case *koatlast.EBinary:
			if e.Op != koatlast.OpPipe {
				return decorators, cur
			}
			decorators = append([]koatlast.Expr{e.R}, decorators...)
			cur = e.L
		case *koatlast.ECall:
			if len(e.Args) != 1 || e.Args[0].Kind != koatlast.CallArg {
				return decorators, cur
			}
			decorators = append([]koatlast.Expr{e.Fn}, decorators...)
			cur = e.Args[0].X
		default:
			return decorators, cur
		}
	}
}

func (c *Context) transformDecorators(decorators []koatlast.Expr) (pyast.Decorators, []pyast.Stmt, error) {
	var pre []pyast.Stmt
	out := make(pyast.Decorators, 0, len(decorators))
	for _, d := range decorators {
		node, err := c.transform(d)
		if err != nil {
			return nil, nil, err
		}
		pre = append(pre, node.pre...)
		out = append(out, node.expr)
	}
	return out, pre, nil
}

func hasModifier(modifiers []koatlast.AssignModifier, m koatlast.AssignModifier) bool {
	for _, x := range modifiers {
		if x == m {
			return true
		}
	}
	return false
}

// validateModifiers enforces spec.md §4.8's modifier rules: at most one
// scope modifier per statement, and Export only at the top level of the
// block passed to TransformAST.
func validateModifiers(modifiers []koatlast.AssignModifier, isTopLevel bool, span koatlast.Span) error {
	if len(modifiers) > 1 {
		return lowerr.New(lowerr.InvalidModifier, span, "at most one scope modifier is allowed per statement")
	}
	if hasModifier(modifiers, koatlast.ModExport) && !isTopLevel {
		return lowerr.New(lowerr.InvalidModifier, span, "export is only allowed at the top level")
	}
	return nil
}

// scopeModifyingStatements emits the `global`/`nonlocal` declarations
// an assignment's modifiers require (spec.md §7.1 "Assignment
// modifiers"); `export` carries no PyAST statement of its own, it only
// records names in the module's export table (see transformAssignment).
func scopeModifyingStatements(modifiers []koatlast.AssignModifier, names []string, span koatlast.Span) []pyast.Stmt {
	var stmts []pyast.Stmt
	if hasModifier(modifiers, koatlast.ModGlobal) {
		stmts = append(stmts, &pyast.SGlobal{SBase: pyast.SBase{Sp: span}, Names: names})
	}
	if hasModifier(modifiers, koatlast.ModNonlocal) {
		stmts = append(stmts, &pyast.SNonlocal{SBase: pyast.SBase{Sp: span}, Names: names})
	}
	return stmts
}

// transformAssignment lowers one `lhs = rhs` (spec.md §7.1): a plain
// identifier target whose RHS peels down to a function or class
// expression becomes a named FnDef/ClassDef (picking up any peeled
// decorators); every other shape falls back to a destructuring
// assignment, which is always legal but never produces a named def.
func (c *Context) transformAssignment(lhs, rhs koatlast.Expr, modifiers []koatlast.AssignModifier, isTopLevel bool) ([]pyast.Stmt, error) {
	if err := validateModifiers(modifiers, isTopLevel, lhs.Span()); err != nil {
		return nil, err
	}

	decorators, inner := c.peelDecorators(rhs)

	if ident, ok := lhs.(*koatlast.EIdent); ok {
		switch body := inner.(type) {
		case *koatlast.EFn:
			auxStmts, bodyPrelude, args, err := c.makeArglist(body.Args)
			if err != nil {
				return nil, err
			}
			pyDecorators, decPre, err := c.transformDecorators(decorators)
			if err != nil {
				return nil, err
			}
			aux := append(append([]pyast.Stmt{}, decPre...), auxStmts...)
			stmts, err := c.makeFnDef(ident.Name, args, aux, fnDefBody{block: body.Body, prelude: bodyPrelude}, pyDecorators, lhs.Span())
			if err != nil {
				return nil, err
			}
			if hasModifier(modifiers, koatlast.ModExport) {
				c.exports = append(c.exports, ident.Name)
			}
			return stmts, nil

		case *koatlast.EClass:
			pyDecorators, decPre, err := c.transformDecorators(decorators)
			if err != nil {
				return nil, err
			}
			stmts, err := c.makeClassDef(ident.Name, body.Bases, body.Body, pyDecorators, lhs.Span())
			if err != nil {
				return nil, err
			}
			if hasModifier(modifiers, koatlast.ModExport) {
				c.exports = append(c.exports, ident.Name)
			}
			return append(decPre, stmts...), nil
		}
	}

	declOnly := hasModifier(modifiers, koatlast.ModGlobal) || hasModifier(modifiers, koatlast.ModNonlocal)

	rhsNode, err := c.transformWithPlaceholderGuard(rhs)
	if err != nil {
		return nil, err
	}
	bindings, err := c.destructure(lhs, declOnly)
	if err != nil {
		return nil, err
	}

	var stmts []pyast.Stmt
	stmts = append(stmts, rhsNode.pre...)
	stmts = append(stmts, scopeModifyingStatements(modifiers, bindings.declarations, lhs.Span())...)
	stmts = append(stmts, pyast.NewBuilder(lhs.Span()).Assign(bindings.assignTo, rhsNode.expr))
	stmts = append(stmts, bindings.postStmts...)

	if hasModifier(modifiers, koatlast.ModExport) {
		c.exports = append(c.exports, bindings.declarations...)
	}

	return stmts, nil
}
