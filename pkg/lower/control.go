package lower

import (
	"github.com/koatl-lang/koatl/pkg/koatlast"
	"github.com/koatl-lang/koatl/pkg/lowerr"
	"github.com/koatl-lang/koatl/pkg/pyast"
)

// transformIfExpr lowers an if-expression (spec.md §7.5): when both
// branches reduce to a prelude-free value it becomes a native PyAST
// IfExpr; otherwise (either branch needs statements of its own) it is
// lowered to an `if`/`else` statement assigning a shared temp, which is
// then referenced as the expression's value — Python's ternary syntax
// cannot hold statements, so this fallback is unconditional whenever
// either arm does.
func (c *Context) transformIfExpr(e *koatlast.EIf) (exprWithPre, error) {
	if e.Else == nil {
		return exprWithPre{}, lowerr.New(lowerr.MissingFinalExpr, e.Span(), "if-expression requires an else branch")
	}

	condNode, err := c.transformWithPlaceholderGuard(e.Cond)
	if err != nil {
		return exprWithPre{}, err
	}
	thenResult, err := c.transformBlockFinalExpr(e.Then)
	if err != nil {
		return exprWithPre{}, err
	}
	if thenResult.kind != finalExprKindExpr {
		return exprWithPre{}, lowerr.New(lowerr.MissingFinalExpr, e.Then.Span(), "if-expression branch is missing a final expression")
	}
	elseResult, err := c.transformBlockFinalExpr(e.Else)
	if err != nil {
		return exprWithPre{}, err
	}
	if elseResult.kind != finalExprKindExpr {
		return exprWithPre{}, lowerr.New(lowerr.MissingFinalExpr, e.Else.Span(), "if-expression branch is missing a final expression")
	}

	b := pyast.NewBuilder(e.Span())

	if len(thenResult.stmts) == 0 && len(elseResult.stmts) == 0 {
		return exprWithPre{pre: condNode.pre, expr: b.IfExpr(condNode.expr, thenResult.expr, elseResult.expr)}, nil
	}

	tmp := c.TempVarName("if", e.Span().Start)
	thenStmts := append(thenResult.stmts, b.Assign(b.Ident(tmp, pyast.Store), thenResult.expr))
	elseStmts := append(elseResult.stmts, b.Assign(b.Ident(tmp, pyast.Store), elseResult.expr))
	ifStmt := &pyast.SIf{SBase: pyast.SBase{Sp: e.Span()}, Cond: condNode.expr, Then: thenStmts, Else: elseStmts}

	pre := append(condNode.pre, ifStmt)
	return exprWithPre{pre: pre, expr: b.LoadIdent(tmp)}, nil
}

// transformIfStmt lowers an if used in statement position, where
// neither branch needs to produce a value (spec.md §7.5).
func (c *Context) transformIfStmt(e *koatlast.EIf) ([]pyast.Stmt, error) {
	condNode, err := c.transformWithPlaceholderGuard(e.Cond)
	if err != nil {
		return nil, err
	}
	thenStmts, err := c.transformBlockStmtsOnly(e.Then)
	if err != nil {
		return nil, err
	}
	var elseStmts []pyast.Stmt
	if e.Else != nil {
		elseStmts, err = c.transformBlockStmtsOnly(e.Else)
		if err != nil {
			return nil, err
		}
	}
	ifStmt := &pyast.SIf{SBase: pyast.SBase{Sp: e.Span()}, Cond: condNode.expr, Then: thenStmts, Else: elseStmts}
	return append(condNode.pre, ifStmt), nil
}

// transformPattern lowers a match arm's pattern. A nil Pattern is the
// default arm and becomes Python's wildcard `_`; a bare identifier is a
// capture pattern (Store context, binding the subject); anything else
// is lowered as a value pattern.
func (c *Context) transformPattern(pattern koatlast.Expr, span koatlast.Span) (pyast.Expr, error) {
	if pattern == nil {
		return &pyast.EIdent{EBase: pyast.EBase{Sp: span}, Name: "_", Ctx: pyast.Store}, nil
	}
	if ident, ok := pattern.(*koatlast.EIdent); ok {
		return &pyast.EIdent{EBase: pyast.EBase{Sp: ident.Span()}, Name: ident.Name, Ctx: pyast.Store}, nil
	}
	node, err := c.transform(pattern)
	if err != nil {
		return nil, err
	}
	if len(node.pre) > 0 {
		return nil, internalErr(pattern.Span(), "match pattern must not require a statement prelude")
	}
	return node.expr, nil
}

// transformMatchExpr lowers a match used for its value. Python's match
// is a statement form only, so every case body's final expression is
// assigned into one shared temp, unconditionally (spec.md §7.6).
func (c *Context) transformMatchExpr(e *koatlast.EMatch) (exprWithPre, error) {
	b := pyast.NewBuilder(e.Span())
	subjNode, err := c.transformWithPlaceholderGuard(e.Subject)
	if err != nil {
		return exprWithPre{}, err
	}

	tmp := c.TempVarName("match", e.Span().Start)
	cases := make([]pyast.MatchCase, 0, len(e.Cases))
	for _, kase := range e.Cases {
		pattern, err := c.transformPattern(kase.Pattern, e.Span())
		if err != nil {
			return exprWithPre{}, err
		}
		caseResult, err := c.transformBlockFinalExpr(kase.Body)
		if err != nil {
			return exprWithPre{}, err
		}
		if caseResult.kind != finalExprKindExpr {
			return exprWithPre{}, lowerr.New(lowerr.MissingFinalExpr, kase.Body.Span(), "match arm is missing a final expression")
		}
		body := append(caseResult.stmts, b.Assign(b.Ident(tmp, pyast.Store), caseResult.expr))
		cases = append(cases, pyast.MatchCase{Pattern: pattern, Body: body})
	}

	matchStmt := &pyast.SMatch{SBase: pyast.SBase{Sp: e.Span()}, Subject: subjNode.expr, Cases: cases}
	pre := append(subjNode.pre, matchStmt)
	return exprWithPre{pre: pre, expr: b.LoadIdent(tmp)}, nil
}

// transformMatchStmt lowers a match used in statement position: case
// bodies are lowered as plain statement lists with no value required.
func (c *Context) transformMatchStmt(e *koatlast.EMatch) ([]pyast.Stmt, error) {
	subjNode, err := c.transformWithPlaceholderGuard(e.Subject)
	if err != nil {
		return nil, err
	}

	cases := make([]pyast.MatchCase, 0, len(e.Cases))
	for _, kase := range e.Cases {
		pattern, err := c.transformPattern(kase.Pattern, e.Span())
		if err != nil {
			return nil, err
		}
		body, err := c.transformBlockStmtsOnly(kase.Body)
		if err != nil {
			return nil, err
		}
		cases = append(cases, pyast.MatchCase{Pattern: pattern, Body: body})
	}

	matchStmt := &pyast.SMatch{SBase: pyast.SBase{Sp: e.Span()}, Subject: subjNode.expr, Cases: cases}
	return append(subjNode.pre, matchStmt), nil
}

// transformClassExpr lowers a class used for its value: the class body
// is hoisted into the prelude under a synthesized name, which becomes
// the expression's value, mirroring makeFnExp's lambda/FnDef split for
// function values (spec.md §7.3).
func (c *Context) transformClassExpr(e *koatlast.EClass) (exprWithPre, error) {
	name := c.TempVarName("classexp", e.Span().Start)
	stmts, err := c.makeClassDef(name, e.Bases, e.Body, nil, e.Span())
	if err != nil {
		return exprWithPre{}, err
	}
	return exprWithPre{pre: stmts, expr: &pyast.EIdent{EBase: pyast.EBase{Sp: e.Span()}, Name: name, Ctx: pyast.Load}}, nil
}
