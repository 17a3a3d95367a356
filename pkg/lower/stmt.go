package lower

import (
	"strings"

	"github.com/koatl-lang/koatl/pkg/koatlast"
	"github.com/koatl-lang/koatl/pkg/lowerr"
	"github.com/koatl-lang/koatl/pkg/pyast"
)

// finalKind classifies a block's trailing value (spec.md §5 "Block
// shaper"): a block either ends in a genuine expression, ends in
// control flow that never falls through (a `return`/`raise`/`break`/
// `continue` as its last statement), or simply has no final value at
// all (a pure statement block).
type finalKind int

const (
	finalExprKindNothing finalKind = iota
	finalExprKindExpr
	finalExprKindNever
)

// blockResult is the block shaper's ⟨stmts, final⟩ pair.
type blockResult struct {
	stmts []pyast.Stmt
	kind  finalKind
	expr  pyast.Expr // kind == finalExprKindExpr
}

func lastNeverReturns(stmts []pyast.Stmt) bool {
	if len(stmts) == 0 {
		return false
	}
	switch stmts[len(stmts)-1].(type) {
	case *pyast.SReturn, *pyast.SRaise, *pyast.SBreak, *pyast.SContinue:
		return true
	default:
		return false
	}
}

// transformBlock is the block shaper (spec.md §4.2): it lowers every
// statement in order, collecting lowering errors across the whole
// block rather than failing on the first one (spec.md §9 "Error
// accumulation"), then decides the block's final value. treatFinalAsExpr
// selects whether a trailing expression is kept as a value (function
// bodies, if/match arms) or is itself lowered purely for effect
// (statement-position blocks). isTopLevel gates Export's legality and is
// true only for the block TransformAST was invoked with directly.
//
// For a statement-list block whose last statement is a bare expression
// statement, treatFinalAsExpr promotes that statement's expression to
// the block's final value instead of lowering it purely for effect —
// the shape every non-trivial function/if/match body actually takes.
func (c *Context) transformBlock(block *koatlast.Block, treatFinalAsExpr, isTopLevel bool) (blockResult, error) {
	bodyStmts := block.Stmts
	var promoted *koatlast.SExprStmt
	if !block.IsExpr && treatFinalAsExpr && len(bodyStmts) > 0 {
		if es, ok := bodyStmts[len(bodyStmts)-1].(*koatlast.SExprStmt); ok {
			promoted = es
			bodyStmts = bodyStmts[:len(bodyStmts)-1]
		}
	}

	var stmts []pyast.Stmt
	var errs lowerr.Errors

	for _, s := range bodyStmts {
		ss, err := c.transformStmt(s, isTopLevel)
		if err != nil {
			if le, ok := lowerr.AsErrors(err); ok {
				errs.Extend(le)
				continue
			}
			return blockResult{}, err
		}
		stmts = append(stmts, ss...)
	}

	if promoted != nil {
		if len(promoted.Modifiers) > 0 {
			errs.Extend(lowerr.New(lowerr.InvalidModifier, promoted.Span(), "a block's final expression statement cannot carry modifiers"))
		} else if node, err := c.transformWithPlaceholderGuard(promoted.X); err != nil {
			if le, ok := lowerr.AsErrors(err); ok {
				errs.Extend(le)
			} else {
				return blockResult{}, err
			}
		} else if len(errs) == 0 {
			stmts = append(stmts, node.pre...)
			return blockResult{stmts: stmts, kind: finalExprKindExpr, expr: node.expr}, nil
		}
	}

	if len(errs) > 0 {
		return blockResult{}, &errs
	}

	if !block.IsExpr {
		if lastNeverReturns(stmts) {
			return blockResult{stmts: stmts, kind: finalExprKindNever}, nil
		}
		return blockResult{stmts: stmts}, nil
	}

	if block.Expr == nil {
		return blockResult{}, lowerr.New(lowerr.MissingFinalExpr, block.Span(), "block is missing a final expression")
	}

	if !treatFinalAsExpr {
		node, err := c.transformLifted(block.Expr)
		if err != nil {
			return blockResult{}, err
		}
		stmts = append(stmts, node.pre...)
		stmts = append(stmts, &pyast.SExpr{SBase: pyast.SBase{Sp: block.Expr.Span()}, X: node.expr})
		return blockResult{stmts: stmts}, nil
	}

	node, err := c.transform(block.Expr)
	if err != nil {
		return blockResult{}, err
	}
	stmts = append(stmts, node.pre...)
	return blockResult{stmts: stmts, kind: finalExprKindExpr, expr: node.expr}, nil
}

// transformBlockFinalExpr and transformBlockStmtsOnly are always called
// for a nested body (a function/if/match/while/for/try body never is
// the block TransformAST was invoked with), so isTopLevel is always
// false here; only TransformAST's direct transformBlock call passes true.

func (c *Context) transformBlockFinalExpr(block *koatlast.Block) (blockResult, error) {
	return c.transformBlock(block, true, false)
}

func (c *Context) transformBlockStmtsOnly(block *koatlast.Block) ([]pyast.Stmt, error) {
	r, err := c.transformBlock(block, false, false)
	if err != nil {
		return nil, err
	}
	return r.stmts, nil
}

// transformStmt dispatches over every koatlast.Stmt variant. isTopLevel
// is threaded down from the block shaper (spec.md §4.1, §4.8) so Assign
// and Import can validate Export's top-level-only rule.
func (c *Context) transformStmt(s koatlast.Stmt, isTopLevel bool) ([]pyast.Stmt, error) {
	switch st := s.(type) {
	case *koatlast.SModule:
		return nil, internalErr(st.Span(), "module marker statement reached the transform pass")

	case *koatlast.SErr:
		return nil, internalErr(st.Span(), "error-recovery statement reached the transform pass")

	case *koatlast.SAssign:
		return c.transformAssignment(st.Lhs, st.Rhs, st.Modifiers, isTopLevel)

	case *koatlast.SExprStmt:
		return c.transformExprStmt(st, isTopLevel)

	case *koatlast.SReturn:
		if st.X == nil {
			return []pyast.Stmt{&pyast.SReturn{SBase: pyast.SBase{Sp: st.Span()}}}, nil
		}
		node, err := c.transformWithPlaceholderGuard(st.X)
		if err != nil {
			return nil, err
		}
		return append(node.pre, &pyast.SReturn{SBase: pyast.SBase{Sp: st.Span()}, X: node.expr}), nil

	case *koatlast.SWhile:
		return c.transformWhile(st)

	case *koatlast.SFor:
		return c.transformFor(st)

	case *koatlast.SImport:
		return c.transformImport(st, isTopLevel)

	case *koatlast.STry:
		return c.transformTry(st)

	case *koatlast.SAssert:
		return c.transformAssert(st)

	case *koatlast.SRaise:
		if st.X == nil {
			return []pyast.Stmt{&pyast.SRaise{SBase: pyast.SBase{Sp: st.Span()}}}, nil
		}
		node, err := c.transformWithPlaceholderGuard(st.X)
		if err != nil {
			return nil, err
		}
		return append(node.pre, &pyast.SRaise{SBase: pyast.SBase{Sp: st.Span()}, X: node.expr}), nil

	case *koatlast.SBreak:
		return []pyast.Stmt{&pyast.SBreak{SBase: pyast.SBase{Sp: st.Span()}}}, nil

	case *koatlast.SContinue:
		return []pyast.Stmt{&pyast.SContinue{SBase: pyast.SBase{Sp: st.Span()}}}, nil

	default:
		return nil, internalErr(s.Span(), "unhandled statement node %T", s)
	}
}

// transformExprStmt lowers an expression used purely for effect
// (spec.md §7.1). if/match/block expressions get their dedicated
// statement-form lowering so discarding their value never requires
// synthesizing a temp variable that's immediately thrown away.
func (c *Context) transformExprStmt(s *koatlast.SExprStmt, isTopLevel bool) ([]pyast.Stmt, error) {
	if err := validateModifiers(s.Modifiers, isTopLevel, s.Span()); err != nil {
		return nil, err
	}

	var stmts []pyast.Stmt
	var err error

	switch e := s.X.(type) {
	case *koatlast.EIf:
		stmts, err = c.transformIfStmt(e)
	case *koatlast.EMatch:
		stmts, err = c.transformMatchStmt(e)
	case *koatlast.EBlock:
		stmts, err = c.transformBlockStmtsOnly(e.Block)
	default:
		var node exprWithPre
		node, err = c.transformLifted(s.X)
		if err == nil {
			stmts = append(append([]pyast.Stmt{}, node.pre...), &pyast.SExpr{SBase: pyast.SBase{Sp: s.Span()}, X: node.expr})
		}
	}
	if err != nil {
		return nil, err
	}

	var declNames []string
	if ident, ok := s.X.(*koatlast.EIdent); ok {
		declNames = []string{ident.Name}
	}
	if hasModifier(s.Modifiers, koatlast.ModExport) && len(declNames) > 0 {
		c.exports = append(c.exports, declNames...)
	}

	scopeStmts := scopeModifyingStatements(s.Modifiers, declNames, s.Span())
	return append(scopeStmts, stmts...), nil
}

// transformWhile lowers a while loop (spec.md §7.7). Python's `while`
// cannot re-evaluate a condition with its own statement prelude on
// every iteration, so when the condition needs one, the loop is
// restructured into `while True: <prelude>; if not cond: break; <body>`.
func (c *Context) transformWhile(s *koatlast.SWhile) ([]pyast.Stmt, error) {
	condNode, err := c.transform(s.Cond)
	if err != nil {
		return nil, err
	}
	bodyStmts, err := c.transformBlockStmtsOnly(s.Body)
	if err != nil {
		return nil, err
	}

	if len(condNode.pre) == 0 {
		return []pyast.Stmt{&pyast.SWhile{SBase: pyast.SBase{Sp: s.Span()}, Cond: condNode.expr, Body: bodyStmts}}, nil
	}

	breakIf := &pyast.SIf{
		SBase: pyast.SBase{Sp: s.Span()},
		Cond:  &pyast.EUnary{EBase: pyast.EBase{Sp: s.Span()}, Op: pyast.Inv, X: condNode.expr},
		Then:  []pyast.Stmt{&pyast.SBreak{SBase: pyast.SBase{Sp: s.Span()}}},
	}
	innerBody := append(append([]pyast.Stmt{}, condNode.pre...), breakIf)
	innerBody = append(innerBody, bodyStmts...)

	trueLit := &pyast.ELiteral{EBase: pyast.EBase{Sp: s.Span()}, Lit: pyast.Literal{Kind: koatlast.LiteralBool, Bool: true}}
	return []pyast.Stmt{&pyast.SWhile{SBase: pyast.SBase{Sp: s.Span()}, Cond: trueLit, Body: innerBody}}, nil
}

// transformFor lowers a for loop (spec.md §7.8): the destructuring
// target's cursor variable becomes the PyAST for-target directly, and
// its unpacking statements are prepended to the body — the same shape
// makeArglist uses for patterned function parameters.
func (c *Context) transformFor(s *koatlast.SFor) ([]pyast.Stmt, error) {
	iterNode, err := c.transform(s.Iter)
	if err != nil {
		return nil, err
	}
	bindings, err := c.destructure(s.Target, true)
	if err != nil {
		return nil, err
	}
	bodyStmts, err := c.transformBlockStmtsOnly(s.Body)
	if err != nil {
		return nil, err
	}

	fullBody := append(append([]pyast.Stmt{}, bindings.postStmts...), bodyStmts...)
	forStmt := &pyast.SFor{SBase: pyast.SBase{Sp: s.Span()}, Target: bindings.assignTo, Iter: iterNode.expr, Body: fullBody}
	return append(iterNode.pre, forStmt), nil
}

// transformTry lowers a try/except/finally (spec.md §7.9), sharing the
// except-type lowering helper with Checked expressions.
func (c *Context) transformTry(s *koatlast.STry) ([]pyast.Stmt, error) {
	body, err := c.transformBlockStmtsOnly(s.Body)
	if err != nil {
		return nil, err
	}

	handlers := make([]pyast.ExceptHandler, 0, len(s.Handlers))
	for _, h := range s.Handlers {
		typ, err := c.transformExceptTypes(h.Types, s.Span())
		if err != nil {
			return nil, err
		}
		handlerBody, err := c.transformBlockStmtsOnly(h.Body)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, pyast.ExceptHandler{Typ: typ, Name: h.Name, Body: handlerBody})
	}

	var finally []pyast.Stmt
	if s.Finally != nil {
		finally, err = c.transformBlockStmtsOnly(s.Finally)
		if err != nil {
			return nil, err
		}
	}

	return []pyast.Stmt{&pyast.STry{SBase: pyast.SBase{Sp: s.Span()}, Body: body, Handlers: handlers, Finally: finally}}, nil
}

func (c *Context) transformAssert(s *koatlast.SAssert) ([]pyast.Stmt, error) {
	xNode, err := c.transformWithPlaceholderGuard(s.X)
	if err != nil {
		return nil, err
	}
	var msgExpr pyast.Expr
	pre := append([]pyast.Stmt{}, xNode.pre...)
	if s.Msg != nil {
		msgNode, err := c.transform(s.Msg)
		if err != nil {
			return nil, err
		}
		pre = append(pre, msgNode.pre...)
		msgExpr = msgNode.expr
	}
	return append(pre, &pyast.SAssert{SBase: pyast.SBase{Sp: s.Span()}, X: xNode.expr, Msg: msgExpr}), nil
}

// transformImport lowers an import statement (spec.md §7.10),
// recording reexported names for the module's export table: a
// reexported star import widens the wildcard re-export set, while a
// reexported leaf import adds its bound name directly. `export import`
// is top-level-only (spec.md §4.8, §9 InvalidReexport).
func (c *Context) transformImport(s *koatlast.SImport, isTopLevel bool) ([]pyast.Stmt, error) {
	imp := s.Stmt
	if imp.Reexport && !isTopLevel {
		return nil, lowerr.New(lowerr.InvalidReexport, s.Span(), "export import is only allowed at the top level")
	}
	module := strings.Join(imp.Trunk, ".")

	if imp.Imports.Star {
		if imp.Reexport {
			c.moduleStarExports = append(c.moduleStarExports, module)
		}
		return []pyast.Stmt{&pyast.SImportFrom{SBase: pyast.SBase{Sp: s.Span()}, Module: module, Aliases: []pyast.ImportAlias{{Name: "*"}}, Level: imp.Level}}, nil
	}

	if len(imp.Imports.Leaves) == 0 {
		return []pyast.Stmt{&pyast.SImport{SBase: pyast.SBase{Sp: s.Span()}, Aliases: []pyast.ImportAlias{{Name: module}}}}, nil
	}

	aliases := make([]pyast.ImportAlias, 0, len(imp.Imports.Leaves))
	for _, leaf := range imp.Imports.Leaves {
		aliases = append(aliases, pyast.ImportAlias{Name: leaf.Name, AsName: leaf.Alias})
		if imp.Reexport {
			bound := leaf.Name
			if leaf.Alias != "" {
				bound = leaf.Alias
			}
			c.exports = append(c.exports, bound)
		}
	}

	return []pyast.Stmt{&pyast.SImportFrom{SBase: pyast.SBase{Sp: s.Span()}, Module: module, Aliases: aliases, Level: imp.Level}}, nil
}
