package lower

import (
	"github.com/koatl-lang/koatl/pkg/koatlast"
	"github.com/koatl-lang/koatl/pkg/lowerr"
	"github.com/koatl-lang/koatl/pkg/pyast"
)

// fnArgKind mirrors pyast.ArgDefKind one level up, before a parameter
// list has been flattened into plain PyAST identifiers.
type fnArgKind int

const (
	argPlain fnArgKind = iota
	argSpread
	kwargSpread
)

// fnDefArg is one already-resolved parameter: a plain PyAST argument
// name (patterns have been destructured away into the function's body
// prelude by makeArglist, or were never patterned to begin with, as
// for the single synthesized parameter of a placeholder/postfix guard).
type fnDefArg struct {
	kind    fnArgKind
	argName string
	default_ pyast.Expr
}

// fnDefBody is either a pre-lowered PyAST statement list (stmts) or a
// Koatl block still needing to be transformed with its final
// expression promoted to a `return` (block); exactly one of the two is
// set. prelude, if present, is spliced in front of whichever form the
// body takes — it holds statements (typically destructured parameter
// bindings from makeArglist) that must run before the body proper.
type fnDefBody struct {
	stmts   []pyast.Stmt
	block   *koatlast.Block
	prelude []pyast.Stmt
}

func pyArgsOf(args []fnDefArg) []pyast.ArgDefItem {
	out := make([]pyast.ArgDefItem, len(args))
	for i, a := range args {
		switch a.kind {
		case argSpread:
			out[i] = pyast.ArgDefItem{Kind: pyast.ArgSpread, Name: a.argName}
		case kwargSpread:
			out[i] = pyast.ArgDefItem{Kind: pyast.KwargSpread, Name: a.argName}
		default:
			out[i] = pyast.ArgDefItem{Kind: pyast.ArgPlain, ArgName: a.argName, Default: a.default_}
		}
	}
	return out
}

// makeArglist lowers a Koatl parameter list (spec.md §4.2 "Argument
// list lowering"): default values are lowered under a placeholder
// guard into auxStmts (they run once, at `def` time, before the
// function object exists), and patterned parameters (anything other
// than a bare identifier) get a synthesized plain name whose value is
// destructured into bodyPrelude, the first statements of the body.
func (c *Context) makeArglist(raw []koatlast.ArgDefItem) (auxStmts, bodyPrelude []pyast.Stmt, args []fnDefArg, err error) {
	for _, item := range raw {
		switch item.Kind {
		case koatlast.ArgSpread:
			args = append(args, fnDefArg{kind: argSpread, argName: item.Name})

		case koatlast.KwargSpread:
			args = append(args, fnDefArg{kind: kwargSpread, argName: item.Name})

		default:
			var defaultExpr pyast.Expr
			if item.Default != nil {
				node, derr := c.placeholderGuard(item.Default.Span(), func() (exprWithPre, error) {
					return c.transform(item.Default)
				})
				if derr != nil {
					return nil, nil, nil, derr
				}
				auxStmts = append(auxStmts, node.pre...)
				defaultExpr = node.expr
			}

			if ident, ok := item.Pattern.(*koatlast.EIdent); ok {
				args = append(args, fnDefArg{kind: argPlain, argName: ident.Name, default_: defaultExpr})
				continue
			}

			paramName := c.TempVarName("arg", item.Pattern.Span().Start)
			bindings, derr := c.destructure(item.Pattern, true)
			if derr != nil {
				return nil, nil, nil, derr
			}
			b := pyast.NewBuilder(item.Pattern.Span())
			bodyPrelude = append(bodyPrelude, b.Assign(bindings.assignTo, b.LoadIdent(paramName)))
			bodyPrelude = append(bodyPrelude, bindings.postStmts...)
			args = append(args, fnDefArg{kind: argPlain, argName: paramName, default_: defaultExpr})
		}
	}
	return auxStmts, bodyPrelude, args, nil
}

// resolveBody lowers a fnDefBody into its final statement list,
// promoting a block's final expression to an explicit `return`
// (spec.md §7.2 "Function body as block").
func (c *Context) resolveBody(body fnDefBody, span koatlast.Span) ([]pyast.Stmt, error) {
	if body.block == nil {
		return append(append([]pyast.Stmt{}, body.prelude...), body.stmts...), nil
	}

	result, err := c.transformBlockFinalExpr(body.block)
	if err != nil {
		return nil, err
	}

	stmts := append(append([]pyast.Stmt{}, body.prelude...), result.stmts...)
	switch result.kind {
	case finalExprKindExpr:
		stmts = append(stmts, &pyast.SReturn{SBase: pyast.SBase{Sp: span}, X: result.expr})
	case finalExprKindNothing:
		stmts = append(stmts, &pyast.SReturn{SBase: pyast.SBase{Sp: span}})
	}
	return stmts, nil
}

// makeFnExp builds an anonymous function value (spec.md §7.2): a
// Lambda when its body reduces to exactly `return <expr>`, otherwise a
// synthesized named FnDef hoisted into the prelude and referenced by
// identifier.
func (c *Context) makeFnExp(args []fnDefArg, body fnDefBody, span koatlast.Span) (exprWithPre, error) {
	bodyStmts, err := c.resolveBody(body, span)
	if err != nil {
		return exprWithPre{}, err
	}

	pyArgs := pyArgsOf(args)

	if len(bodyStmts) == 1 {
		if ret, ok := bodyStmts[0].(*pyast.SReturn); ok && ret.X != nil {
			return exprWithPre{expr: &pyast.ELambda{EBase: pyast.EBase{Sp: span}, Args: pyArgs, Body: ret.X}}, nil
		}
	}

	name := c.TempVarName("fnexp", span.Start)
	fnDef := &pyast.SFnDef{SBase: pyast.SBase{Sp: span}, Name: name, Args: pyArgs, Body: bodyStmts}
	return exprWithPre{
		pre:  []pyast.Stmt{fnDef},
		expr: &pyast.EIdent{EBase: pyast.EBase{Sp: span}, Name: name, Ctx: pyast.Load},
	}, nil
}

// makeFnDef builds a named function definition (spec.md §7.2
// "Function statement"), returning the prelude of default-value
// statements followed by the def itself.
func (c *Context) makeFnDef(name string, args []fnDefArg, aux []pyast.Stmt, body fnDefBody, decorators pyast.Decorators, span koatlast.Span) ([]pyast.Stmt, error) {
	bodyStmts, err := c.resolveBody(body, span)
	if err != nil {
		return nil, err
	}

	fnDef := &pyast.SFnDef{SBase: pyast.SBase{Sp: span}, Name: name, Args: pyArgsOf(args), Body: bodyStmts, Decorators: decorators}
	return append(aux, fnDef), nil
}

// makeClassDef builds a class definition (spec.md §7.3): base
// expressions are lowered under a placeholder guard each (spread bases
// are rejected, matching Python's own class-base grammar), and the
// body is lowered as a statement block with no final-expression
// promotion.
func (c *Context) makeClassDef(name string, bases []koatlast.CallItem, body *koatlast.Block, decorators pyast.Decorators, span koatlast.Span) ([]pyast.Stmt, error) {
	var aux []pyast.Stmt
	var pyBases []pyast.CallItem

	for _, base := range bases {
		switch base.Kind {
		case koatlast.CallArg:
			node, err := c.placeholderGuard(base.X.Span(), func() (exprWithPre, error) {
				return c.transform(base.X)
			})
			if err != nil {
				return nil, err
			}
			aux = append(aux, node.pre...)
			pyBases = append(pyBases, pyast.CallItem{Kind: pyast.CallArg, X: node.expr})

		case koatlast.CallKwarg:
			node, err := c.placeholderGuard(base.X.Span(), func() (exprWithPre, error) {
				return c.transform(base.X)
			})
			if err != nil {
				return nil, err
			}
			aux = append(aux, node.pre...)
			pyBases = append(pyBases, pyast.CallItem{Kind: pyast.CallKwarg, Name: base.Name, X: node.expr})

		default:
			return nil, internalErr(span, "spread arguments are not allowed in class bases")
		}
	}

	bodyStmts, err := c.transformBlockStmtsOnly(body)
	if err != nil {
		return nil, err
	}
	if len(bodyStmts) == 0 {
		bodyStmts = []pyast.Stmt{&pyast.SExpr{SBase: pyast.SBase{Sp: span}, X: &pyast.ELiteral{EBase: pyast.EBase{Sp: span}, Lit: pyast.Literal{Kind: koatlast.LiteralNone}}}}
	}

	classDef := &pyast.SClassDef{SBase: pyast.SBase{Sp: span}, Name: name, Bases: pyBases, Body: bodyStmts, Decorators: decorators}
	return append(aux, classDef), nil
}

// transformFn lowers a Koatl function expression into its PyAST value
// form via makeArglist + makeFnExp (spec.md §7.2).
func (c *Context) transformFn(e *koatlast.EFn) (exprWithPre, error) {
	auxStmts, bodyPrelude, args, err := c.makeArglist(e.Args)
	if err != nil {
		return exprWithPre{}, err
	}
	fnExp, err := c.makeFnExp(args, fnDefBody{block: e.Body, prelude: bodyPrelude}, e.Span())
	if err != nil {
		return exprWithPre{}, err
	}
	fnExp.pre = append(append([]pyast.Stmt{}, auxStmts...), fnExp.pre...)
	return fnExp, nil
}

// transformFstr lowers an interpolated string literal (SPEC_FULL.md
// §3): each embedded expression block must reduce to a final
// expression, exactly as a block-expression would, and its prelude
// statements bubble up to the surrounding statement rather than being
// embedded in the f-string itself (PyAST f-strings cannot hold
// statements).
func (c *Context) transformFstr(e *koatlast.EFstr) (exprWithPre, error) {
	var pre []pyast.Stmt
	var parts []pyast.FstrPart
	if e.Head != "" {
		parts = append(parts, pyast.FstrPart{Str: e.Head})
	}
	for _, part := range e.Parts {
		result, err := c.transformBlockFinalExpr(part.Expr)
		if err != nil {
			return exprWithPre{}, err
		}
		if result.kind != finalExprKindExpr {
			return exprWithPre{}, lowerr.New(lowerr.MissingFinalExpr, part.Expr.Span(), "f-string expression is missing a final expression")
		}
		pre = append(pre, result.stmts...)
		parts = append(parts, pyast.FstrPart{IsExpr: true, Expr: result.expr})
		if part.Tail != "" {
			parts = append(parts, pyast.FstrPart{Str: part.Tail})
		}
	}
	return exprWithPre{pre: pre, expr: &pyast.EFstr{EBase: pyast.EBase{Sp: e.Span()}, Parts: parts}}, nil
}
