package lower

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/koatl-lang/koatl/pkg/koatlast"
	"github.com/koatl-lang/koatl/pkg/pyast"
)

// A plain identifier target (spec.md §4.3 "Leaf target") resolves
// directly, with no postStmts and a single declaration.
func TestDestructure_IdentLeaf(t *testing.T) {
	c := newContext("a")

	bindings, err := c.destructure(koatlast.NewIdent(sp0, "a"), false)
	require.NoError(t, err)
	require.Empty(t, bindings.postStmts)
	require.Equal(t, []string{"a"}, bindings.declarations)

	ident, ok := bindings.assignTo.(*pyast.EIdent)
	require.True(t, ok)
	require.Equal(t, "a", ident.Name)
	require.Equal(t, pyast.Store, ident.Ctx)
}

// declOnly rejects an Attribute/Subscript leaf (spec.md §4.3: `for`
// targets and scope-modified assignments only allow plain bindings).
func TestDestructure_DeclOnlyRejectsAttribute(t *testing.T) {
	c := newContext("a.b")

	_, err := c.destructure(koatlast.NewAttribute(sp0, koatlast.NewIdent(sp0, "a"), "b"), true)
	require.Error(t, err)
}

// Without declOnly, an Attribute leaf is allowed (plain `a.b = ...`
// lowers through the same destructuring path as any other assignment).
func TestDestructure_AttributeLeafAllowedOutsideDeclOnly(t *testing.T) {
	c := newContext("a.b")

	bindings, err := c.destructure(koatlast.NewAttribute(sp0, koatlast.NewIdent(sp0, "a"), "b"), false)
	require.NoError(t, err)
	require.Empty(t, bindings.declarations)

	attr, ok := bindings.assignTo.(*pyast.EAttribute)
	require.True(t, ok)
	require.Equal(t, "b", attr.Name)
}

// `[a, *b, c]` declares all three names and assigns the spread slice
// via a length-relative slice expression (spec.md §4.3 list spread).
func TestDestructureList_Spread(t *testing.T) {
	c := newContext("[a, *b, c]")

	target := koatlast.NewList(sp0, nil)
	items := []koatlast.ListItem{
		{X: koatlast.NewIdent(sp0, "a")},
		{Spread: true, X: koatlast.NewIdent(sp0, "b")},
		{X: koatlast.NewIdent(sp0, "c")},
	}

	bindings, err := c.destructureList(target, items, false)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b", "c"}, bindings.declarations)
	require.NotEmpty(t, bindings.postStmts)

	cursorIdent, ok := bindings.assignTo.(*pyast.EIdent)
	require.True(t, ok)
	require.Equal(t, pyast.Store, cursorIdent.Ctx)
}

// Two spreads in one list target is rejected (spec.md §4.3 edge case).
func TestDestructureList_MultipleSpreadsRejected(t *testing.T) {
	c := newContext("[*a, *b]")

	target := koatlast.NewList(sp0, nil)
	items := []koatlast.ListItem{
		{Spread: true, X: koatlast.NewIdent(sp0, "a")},
		{Spread: true, X: koatlast.NewIdent(sp0, "b")},
	}

	_, err := c.destructureList(target, items, false)
	require.Error(t, err)
}

// `[k: p, **rest]` pops each named key off a dict copy, then binds the
// remainder to rest (spec.md §4.3 mapping spread).
func TestDestructureMapping_Spread(t *testing.T) {
	c := newContext("[k: p, **rest]")

	target := koatlast.NewMapping(sp0, nil)
	items := []koatlast.MappingItem{
		{Key: koatlast.NewStrLit(sp0, "k"), Value: koatlast.NewIdent(sp0, "p")},
		{Spread: true, Value: koatlast.NewIdent(sp0, "rest")},
	}

	bindings, err := c.destructureMapping(target, items, false)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"p", "rest"}, bindings.declarations)
	require.NotEmpty(t, bindings.postStmts)
}

// Two spreads in one mapping target is rejected, same as the list case.
func TestDestructureMapping_MultipleSpreadsRejected(t *testing.T) {
	c := newContext("[**a, **b]")

	target := koatlast.NewMapping(sp0, nil)
	items := []koatlast.MappingItem{
		{Spread: true, Value: koatlast.NewIdent(sp0, "a")},
		{Spread: true, Value: koatlast.NewIdent(sp0, "b")},
	}

	_, err := c.destructureMapping(target, items, false)
	require.Error(t, err)
}

// Nested destructuring: `[a, [b, c]]` recurses destructureList inside
// destructureList, and both leaves' declarations surface.
func TestDestructureList_Nested(t *testing.T) {
	c := newContext("[a, [b, c]]")

	inner := koatlast.NewList(sp0, []koatlast.ListItem{
		{X: koatlast.NewIdent(sp0, "b")},
		{X: koatlast.NewIdent(sp0, "c")},
	})
	target := koatlast.NewList(sp0, nil)
	items := []koatlast.ListItem{
		{X: koatlast.NewIdent(sp0, "a")},
		{X: inner},
	}

	bindings, err := c.destructureList(target, items, false)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b", "c"}, bindings.declarations)
}

// A literal target (not an Ident/Attribute/Subscript/List/Mapping) is
// not assignable.
func TestDestructure_LiteralTargetRejected(t *testing.T) {
	c := newContext("1")

	_, err := c.destructure(koatlast.NewNumLit(sp0, "1"), false)
	require.Error(t, err)
}
