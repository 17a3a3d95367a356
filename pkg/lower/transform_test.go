package lower

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/koatl-lang/koatl/pkg/config"
	"github.com/koatl-lang/koatl/pkg/koatlast"
	"github.com/koatl-lang/koatl/pkg/pyast"
)

var sp0 = koatlast.NewSpan(0, 1)

// S1: `x = 1` lowers to a single SAssign whose Value is a PyAST Num
// literal (spec.md §8 scenario S1).
func TestTransformAST_SimpleAssign(t *testing.T) {
	block := koatlast.NewStmtsBlock(sp0, []koatlast.Stmt{
		koatlast.NewAssign(sp0, koatlast.NewIdent(sp0, "x"), koatlast.NewNumLit(sp0, "1")),
	})

	out, err := TransformAST("x = 1", block, config.TranspileOptions{Mode: config.ModeModule})
	require.NoError(t, err)
	require.Len(t, out.PyBlock, 1)

	assign, ok := out.PyBlock[0].(*pyast.SAssign)
	require.True(t, ok, "expected an SAssign, got %T", out.PyBlock[0])
	ident, ok := assign.Target.(*pyast.EIdent)
	require.True(t, ok)
	require.Equal(t, "x", ident.Name)
	require.Equal(t, pyast.Store, ident.Ctx)

	num, ok := assign.Value.(*pyast.ELiteral)
	require.True(t, ok)
	require.Equal(t, "1", num.Lit.Text)
}

// S2: `export x = 1` records x in the module's export table.
func TestTransformAST_ExportModifier(t *testing.T) {
	block := koatlast.NewStmtsBlock(sp0, []koatlast.Stmt{
		koatlast.NewAssign(sp0, koatlast.NewIdent(sp0, "x"), koatlast.NewNumLit(sp0, "1"), koatlast.ModExport),
	})

	out, err := TransformAST("export x = 1", block, config.TranspileOptions{Mode: config.ModeModule})
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, out.Exports)
}

// ModeInteractive keeps a trailing bare expression's value as an
// emitted SExpr instead of discarding it; ModeModule discards it.
func TestTransformAST_InteractiveKeepsFinalExpr(t *testing.T) {
	mkBlock := func() *koatlast.Block {
		return koatlast.NewStmtsBlock(sp0, []koatlast.Stmt{
			koatlast.NewExprStmt(sp0, koatlast.NewNumLit(sp0, "42")),
		})
	}

	interactive, err := TransformAST("42", mkBlock(), config.TranspileOptions{Mode: config.ModeInteractive})
	require.NoError(t, err)
	require.Len(t, interactive.PyBlock, 1)
	_, ok := interactive.PyBlock[0].(*pyast.SExpr)
	require.True(t, ok)

	module, err := TransformAST("42", mkBlock(), config.TranspileOptions{Mode: config.ModeModule})
	require.NoError(t, err)
	require.Len(t, module.PyBlock, 1)
}

// A bare identifier assignment whose RHS peels to an EFn becomes a
// named FnDef (spec.md §7.2/§4.4 decorator sugar with zero decorators).
func TestTransformAST_FunctionAssignmentBecomesFnDef(t *testing.T) {
	fnBody := koatlast.NewExprBlock(sp0, koatlast.NewIdent(sp0, "x"))
	fn := koatlast.NewFn(sp0, []koatlast.ArgDefItem{
		{Kind: koatlast.ArgPlain, Pattern: koatlast.NewIdent(sp0, "x")},
	}, fnBody)

	block := koatlast.NewStmtsBlock(sp0, []koatlast.Stmt{
		koatlast.NewAssign(sp0, koatlast.NewIdent(sp0, "identity"), fn),
	})

	out, err := TransformAST("identity = x -> x", block, config.TranspileOptions{Mode: config.ModeModule})
	require.NoError(t, err)
	require.Len(t, out.PyBlock, 1)

	def, ok := out.PyBlock[0].(*pyast.SFnDef)
	require.True(t, ok, "expected SFnDef, got %T", out.PyBlock[0])
	require.Equal(t, "identity", def.Name)
	require.Len(t, def.Body, 1)
	ret, ok := def.Body[0].(*pyast.SReturn)
	require.True(t, ok)
	require.NotNil(t, ret.X)
}

// A bare `$` outside of any call/operator placeholder context is a
// PlaceholderOutsideContext error, not a panic (spec.md §9).
func TestTransformAST_BarePlaceholderIsRejected(t *testing.T) {
	block := koatlast.NewStmtsBlock(sp0, []koatlast.Stmt{
		koatlast.NewExprStmt(sp0, koatlast.NewPlaceholder(sp0)),
	})

	_, err := TransformAST("$", block, config.TranspileOptions{Mode: config.ModeModule})
	require.Error(t, err)
}
