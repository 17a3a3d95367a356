package lower

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/koatl-lang/koatl/pkg/koatlast"
)

// A plain function expression with no decorator wrapper peels to zero
// decorators and itself as the inner expression.
func TestPeelDecorators_NoWrapper(t *testing.T) {
	c := newContext("x -> x")
	fn := koatlast.NewFn(sp0, nil, koatlast.NewExprBlock(sp0, koatlast.NewIdent(sp0, "x")))

	decorators, inner := c.peelDecorators(fn)
	require.Empty(t, decorators)
	require.Same(t, koatlast.Expr(fn), inner)
}

// `body.(dec1).(dec2)` peels to [dec1, dec2] in closest-to-def-first
// order: dec1 is applied first, as in Python's `@dec2 @dec1 def f(): ...`.
func TestPeelDecorators_ThenChainOrdering(t *testing.T) {
	c := newContext("body.(dec1).(dec2)")

	body := koatlast.NewFn(sp0, nil, koatlast.NewExprBlock(sp0, koatlast.NewIdent(sp0, "x")))
	dec1 := koatlast.NewIdent(sp0, "dec1")
	dec2 := koatlast.NewIdent(sp0, "dec2")

	chain := koatlast.NewThen(sp0, koatlast.NewThen(sp0, body, dec1), dec2)

	decorators, inner := c.peelDecorators(chain)
	require.Len(t, decorators, 2)
	require.Same(t, koatlast.Expr(dec1), decorators[0])
	require.Same(t, koatlast.Expr(dec2), decorators[1])
	require.Same(t, koatlast.Expr(body), inner)
}

// `body | dec1 | dec2` (pipe sugar) peels the same way as the Then
// chain form.
func TestPeelDecorators_PipeChain(t *testing.T) {
	c := newContext("body | dec1 | dec2")

	body := koatlast.NewFn(sp0, nil, koatlast.NewExprBlock(sp0, koatlast.NewIdent(sp0, "x")))
	dec1 := koatlast.NewIdent(sp0, "dec1")
	dec2 := koatlast.NewIdent(sp0, "dec2")

	chain := koatlast.NewBinary(sp0, koatlast.OpPipe, koatlast.NewBinary(sp0, koatlast.OpPipe, body, dec1), dec2)

	decorators, inner := c.peelDecorators(chain)
	require.Len(t, decorators, 2)
	require.Same(t, koatlast.Expr(dec1), decorators[0])
	require.Same(t, koatlast.Expr(dec2), decorators[1])
	require.Same(t, koatlast.Expr(body), inner)
}

// A non-pipe binary operator stops the peel immediately: `a + b` is
// not decorator sugar, even though it is an EBinary.
func TestPeelDecorators_NonPipeBinaryStopsPeel(t *testing.T) {
	c := newContext("a + b")
	expr := koatlast.NewBinary(sp0, koatlast.OpAdd, koatlast.NewIdent(sp0, "a"), koatlast.NewIdent(sp0, "b"))

	decorators, inner := c.peelDecorators(expr)
	require.Empty(t, decorators)
	require.Same(t, koatlast.Expr(expr), inner)
}

// A single-argument call `dec(body)` is equivalent decorator sugar to
// `body.(dec)`.
func TestPeelDecorators_SingleArgCall(t *testing.T) {
	c := newContext("dec(body)")
	body := koatlast.NewFn(sp0, nil, koatlast.NewExprBlock(sp0, koatlast.NewIdent(sp0, "x")))
	dec := koatlast.NewIdent(sp0, "dec")

	call := koatlast.NewCall(sp0, dec, []koatlast.CallItem{{Kind: koatlast.CallArg, X: body}})

	decorators, inner := c.peelDecorators(call)
	require.Len(t, decorators, 1)
	require.Same(t, koatlast.Expr(dec), decorators[0])
	require.Same(t, koatlast.Expr(body), inner)
}

// A call with a kwarg or more than one argument is an ordinary call,
// not decorator sugar, and stops the peel.
func TestPeelDecorators_MultiArgCallStopsPeel(t *testing.T) {
	c := newContext("f(a, b)")
	call := koatlast.NewCall(sp0, koatlast.NewIdent(sp0, "f"), []koatlast.CallItem{
		{Kind: koatlast.CallArg, X: koatlast.NewIdent(sp0, "a")},
		{Kind: koatlast.CallArg, X: koatlast.NewIdent(sp0, "b")},
	})

	decorators, inner := c.peelDecorators(call)
	require.Empty(t, decorators)
	require.Same(t, koatlast.Expr(call), inner)
}

// At most one scope modifier is allowed per assignment (spec.md §4.8):
// `global nonlocal x = 1` is InvalidModifier even though each modifier
// is individually valid.
func TestTransformAssignment_MultipleModifiersRejected(t *testing.T) {
	c := newContext("global nonlocal x = 1")
	lhs := koatlast.NewIdent(sp0, "x")
	rhs := koatlast.NewNumLit(sp0, "1")

	_, err := c.transformAssignment(lhs, rhs, []koatlast.AssignModifier{koatlast.ModGlobal, koatlast.ModNonlocal}, true)
	require.Error(t, err)
}

// Export is only legal at the top level of the block TransformAST was
// invoked with (spec.md §4.8): a nested `export x = 1` is InvalidModifier.
func TestTransformAssignment_ExportOutsideTopLevelRejected(t *testing.T) {
	c := newContext("export x = 1")
	lhs := koatlast.NewIdent(sp0, "x")
	rhs := koatlast.NewNumLit(sp0, "1")

	_, err := c.transformAssignment(lhs, rhs, []koatlast.AssignModifier{koatlast.ModExport}, false)
	require.Error(t, err)
}

// Export at the actual top level succeeds and records the bound name.
func TestTransformAssignment_ExportAtTopLevelSucceeds(t *testing.T) {
	c := newContext("export x = 1")
	lhs := koatlast.NewIdent(sp0, "x")
	rhs := koatlast.NewNumLit(sp0, "1")

	_, err := c.transformAssignment(lhs, rhs, []koatlast.AssignModifier{koatlast.ModExport}, true)
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, c.exports)
}
