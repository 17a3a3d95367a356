package lower

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/koatl-lang/koatl/pkg/koatlast"
	"github.com/koatl-lang/koatl/pkg/pyast"
)

// A bare `$` with no enclosing placeholder frame is rejected (spec.md
// §9 "Placeholder context stack" — there is no frame to activate).
func TestTransformPlaceholder_NoFrameErrors(t *testing.T) {
	c := newContext("$")

	_, err := c.transformPlaceholder(sp0, pyast.Load)
	require.Error(t, err)
}

// Inside a guard, `$` resolves to the frame's variable and marks the
// frame activated.
func TestTransformPlaceholder_ActivatesFrame(t *testing.T) {
	c := newContext("$ + 1")

	result, err := c.placeholderGuard(sp0, func() (exprWithPre, error) {
		node, err := c.transformPlaceholder(sp0, pyast.Load)
		require.NoError(t, err)
		return node, nil
	})
	require.NoError(t, err)

	// The guard wraps an activated body into a single-argument
	// function (spec.md §4.5): its expr is now an ELambda or an
	// SFnDef-producing construct, never the bare placeholder load.
	switch result.expr.(type) {
	case *pyast.ELambda:
	default:
		t.Fatalf("expected activated guard to produce a callable expression, got %T", result.expr)
	}
}

// A guard whose body never touches `$` passes its inner result through
// unchanged — no function wrapper is synthesized.
func TestPlaceholderGuard_PassesThroughWhenUnused(t *testing.T) {
	c := newContext("1")

	inner := exprWithPre{expr: &pyast.ELiteral{Lit: pyast.Literal{Kind: koatlast.LiteralNum, Text: "1"}}}
	result, err := c.placeholderGuard(sp0, func() (exprWithPre, error) {
		return inner, nil
	})
	require.NoError(t, err)
	require.Same(t, inner.expr, result.expr)
}

// Nested guards each track their own activation independently: an
// inner `$` only activates the innermost frame.
func TestPlaceholderGuard_NestedFramesAreIndependent(t *testing.T) {
	c := newContext("$.(x -> $)")

	_, err := c.placeholderGuard(sp0, func() (exprWithPre, error) {
		outerNode, err := c.transformPlaceholder(sp0, pyast.Load)
		require.NoError(t, err)

		inner, err := c.placeholderGuard(sp0, func() (exprWithPre, error) {
			return c.transformPlaceholder(sp0, pyast.Load)
		})
		require.NoError(t, err)

		switch inner.expr.(type) {
		case *pyast.ELambda:
		default:
			t.Fatalf("expected inner guard to activate, got %T", inner.expr)
		}

		return outerNode, nil
	})
	require.NoError(t, err)
	require.Empty(t, c.placeholders, "all frames must be popped after both guards return")
}
