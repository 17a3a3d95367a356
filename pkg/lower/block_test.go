package lower

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/koatl-lang/koatl/pkg/koatlast"
	"github.com/koatl-lang/koatl/pkg/lowerr"
	"github.com/koatl-lang/koatl/pkg/pyast"
)

// A pure statement block (IsExpr false) carries no final value.
func TestTransformBlock_StmtsOnlyHasNoFinal(t *testing.T) {
	c := newContext("x = 1")
	block := koatlast.NewStmtsBlock(sp0, []koatlast.Stmt{
		koatlast.NewAssign(sp0, koatlast.NewIdent(sp0, "x"), koatlast.NewNumLit(sp0, "1")),
	})

	result, err := c.transformBlock(block, true, false)
	require.NoError(t, err)
	require.Equal(t, finalExprKindNothing, result.kind)
	require.Len(t, result.stmts, 1)
}

// A block whose last statement is a `return` never falls through
// (spec.md §5 "Block shaper" never-returns case).
func TestTransformBlock_TrailingReturnIsNever(t *testing.T) {
	c := newContext("return 1")
	block := koatlast.NewStmtsBlock(sp0, []koatlast.Stmt{
		koatlast.NewReturn(sp0, koatlast.NewNumLit(sp0, "1")),
	})

	result, err := c.transformBlock(block, true, false)
	require.NoError(t, err)
	require.Equal(t, finalExprKindNever, result.kind)
}

// An expression block (IsExpr true) with treatFinalAsExpr=true reports
// its trailing value as finalExprKindExpr and carries the lowered expr.
func TestTransformBlock_ExprBlockKeepsFinalValue(t *testing.T) {
	c := newContext("1")
	block := koatlast.NewExprBlock(sp0, koatlast.NewNumLit(sp0, "1"))

	result, err := c.transformBlock(block, true, false)
	require.NoError(t, err)
	require.Equal(t, finalExprKindExpr, result.kind)
	require.NotNil(t, result.expr)

	num, ok := result.expr.(*pyast.ELiteral)
	require.True(t, ok)
	require.Equal(t, "1", num.Lit.Text)
}

// With treatFinalAsExpr=false, the same expression block is lowered
// purely for effect: an SExpr statement, no reported final value.
func TestTransformBlock_ExprBlockDiscardedWhenStatementPosition(t *testing.T) {
	c := newContext("1")
	block := koatlast.NewExprBlock(sp0, koatlast.NewNumLit(sp0, "1"))

	result, err := c.transformBlock(block, false, false)
	require.NoError(t, err)
	require.Equal(t, finalExprKindNothing, result.kind)
	require.Len(t, result.stmts, 1)
	_, ok := result.stmts[0].(*pyast.SExpr)
	require.True(t, ok)
}

// A statement-list block whose last statement is a bare expression
// statement promotes that expression to the block's final value instead
// of discarding it — the shape a real multi-line function/if/match body
// takes (spec.md §4.2): `{ x = 1; x }` reports "x" as its final value,
// it never silently lowers to a bare `return` with no expression.
func TestTransformBlock_StmtsListPromotesTrailingExprStmt(t *testing.T) {
	c := newContext("x = 1\nx")
	block := koatlast.NewStmtsBlock(sp0, []koatlast.Stmt{
		koatlast.NewAssign(sp0, koatlast.NewIdent(sp0, "x"), koatlast.NewNumLit(sp0, "1")),
		koatlast.NewExprStmt(sp0, koatlast.NewIdent(sp0, "x")),
	})

	result, err := c.transformBlock(block, true, false)
	require.NoError(t, err)
	require.Equal(t, finalExprKindExpr, result.kind)
	require.Len(t, result.stmts, 1)

	ident, ok := result.expr.(*pyast.EIdent)
	require.True(t, ok)
	require.Equal(t, "x", ident.Name)
}

// The same shape with treatFinalAsExpr=false lowers the trailing
// expression statement normally, purely for effect, reporting no final
// value.
func TestTransformBlock_StmtsListTrailingExprStmtNotPromotedOutsideExprPosition(t *testing.T) {
	c := newContext("x = 1\nx")
	block := koatlast.NewStmtsBlock(sp0, []koatlast.Stmt{
		koatlast.NewAssign(sp0, koatlast.NewIdent(sp0, "x"), koatlast.NewNumLit(sp0, "1")),
		koatlast.NewExprStmt(sp0, koatlast.NewIdent(sp0, "x")),
	})

	result, err := c.transformBlock(block, false, false)
	require.NoError(t, err)
	require.Equal(t, finalExprKindNothing, result.kind)
	require.Len(t, result.stmts, 2)
}

// A trailing expression statement carrying a scope modifier cannot be
// promoted to a final value (spec.md §4.2 InvalidModifier case).
func TestTransformBlock_ModifiersOnPromotedFinalExprRejected(t *testing.T) {
	c := newContext("export x")
	block := koatlast.NewStmtsBlock(sp0, []koatlast.Stmt{
		koatlast.NewExprStmt(sp0, koatlast.NewIdent(sp0, "x"), koatlast.ModExport),
	})

	_, err := c.transformBlock(block, true, true)
	require.Error(t, err)
}

// An expression block with a nil Expr is a MissingFinalExpr error.
func TestTransformBlock_MissingFinalExprErrors(t *testing.T) {
	c := newContext("")
	block := &koatlast.Block{Sp: sp0, IsExpr: true}

	_, err := c.transformBlock(block, true, false)
	require.Error(t, err)
}

// Errors from multiple statements in the same block accumulate rather
// than stopping at the first failure (spec.md §9 "Error accumulation").
func TestTransformBlock_AccumulatesErrorsAcrossStatements(t *testing.T) {
	c := newContext("$\n$\n1")
	block := koatlast.NewStmtsBlock(sp0, []koatlast.Stmt{
		koatlast.NewExprStmt(sp0, koatlast.NewPlaceholder(sp0)),
		koatlast.NewExprStmt(sp0, koatlast.NewPlaceholder(sp0)),
		koatlast.NewExprStmt(sp0, koatlast.NewNumLit(sp0, "1")),
	})

	_, err := c.transformBlock(block, true, false)
	require.Error(t, err)

	errs, ok := lowerr.AsErrors(err)
	require.True(t, ok)
	require.Len(t, *errs, 2)
}
