package lower

import (
	"strconv"

	"github.com/koatl-lang/koatl/pkg/koatlast"
	"github.com/koatl-lang/koatl/pkg/lowerr"
	"github.com/koatl-lang/koatl/pkg/pyast"
)

// destructureBindings is the result of expanding one destructuring
// target: assignTo receives the cursor value (a Store-context PyAST
// expression), postStmts realize the nested unpacking, and
// declarations lists every identifier the target introduces.
type destructureBindings struct {
	assignTo     pyast.Expr
	postStmts    []pyast.Stmt
	declarations []string
}

// destructureList expands a `[a, *b, c]` target (spec.md §4.3).
func (c *Context) destructureList(target koatlast.Expr, items []koatlast.ListItem, declOnly bool) (destructureBindings, error) {
	sp := target.Span()
	b := pyast.NewBuilder(sp)

	cursorVar := c.TempVarName("des_curs", sp.Start)
	listVar := c.TempVarName("des_list", sp.Start)
	lenVar := c.TempVarName("des_len", sp.Start)

	stmts := []pyast.Stmt{
		b.Assign(b.Ident(listVar, pyast.Store), b.Call(b.LoadIdent("list"), []pyast.CallItem{b.CallArg(b.LoadIdent(cursorVar))})),
		b.Assign(b.Ident(lenVar, pyast.Store), b.Call(b.LoadIdent("len"), []pyast.CallItem{b.CallArg(b.LoadIdent(listVar))})),
	}

	var post []pyast.Stmt
	var decls []string
	seenSpread := false

	for i, item := range items {
		if item.Spread {
			if seenSpread {
				return destructureBindings{}, lowerr.New(lowerr.MultipleSpreads, sp, "destructuring assignment with multiple spreads is not allowed")
			}
			seenSpread = true

			bindings, err := c.destructure(item.X, declOnly)
			if err != nil {
				return destructureBindings{}, err
			}
			post = append(post, bindings.postStmts...)
			decls = append(decls, bindings.declarations...)

			stmts = append(stmts, b.Assign(bindings.assignTo, b.Subscript(
				b.LoadIdent(listVar),
				b.Slice(b.Num(strconv.Itoa(i)), b.Binary(pyast.Sub, b.LoadIdent(lenVar), b.Num(strconv.Itoa(len(items)-2))), nil),
				pyast.Load,
			)))
			continue
		}

		bindings, err := c.destructure(item.X, declOnly)
		if err != nil {
			return destructureBindings{}, err
		}
		post = append(post, bindings.postStmts...)
		decls = append(decls, bindings.declarations...)

		idx := i
		if seenSpread {
			idx = -(len(items) - i)
		}
		stmts = append(stmts, b.Assign(bindings.assignTo, b.Subscript(b.LoadIdent(listVar), b.Num(strconv.Itoa(idx)), pyast.Load)))
	}

	stmts = append(stmts, post...)

	return destructureBindings{
		assignTo:     b.Ident(cursorVar, pyast.Store),
		postStmts:    stmts,
		declarations: decls,
	}, nil
}

// destructureMapping expands a `[k1: p1, **rest]` target (spec.md §4.3).
func (c *Context) destructureMapping(target koatlast.Expr, items []koatlast.MappingItem, declOnly bool) (destructureBindings, error) {
	sp := target.Span()
	b := pyast.NewBuilder(sp)

	cursorVar := c.TempVarName("des_curs", sp.Start)
	dictVar := c.TempVarName("des_dict", sp.Start)

	stmts := []pyast.Stmt{
		b.Assign(b.Ident(dictVar, pyast.Store), b.Call(b.LoadIdent("dict"), []pyast.CallItem{b.CallArg(b.LoadIdent(cursorVar))})),
	}

	var post []pyast.Stmt
	var decls []string
	var spreadTarget koatlast.Expr

	for _, item := range items {
		if item.Spread {
			if spreadTarget != nil {
				return destructureBindings{}, lowerr.New(lowerr.MultipleSpreads, sp, "destructuring assignment with multiple spreads is not allowed")
			}
			spreadTarget = item.Value
			continue
		}

		bindings, err := c.destructure(item.Value, declOnly)
		if err != nil {
			return destructureBindings{}, err
		}
		keyNode, err := c.transform(item.Key)
		if err != nil {
			return destructureBindings{}, err
		}
		post = append(post, keyNode.pre...)
		post = append(post, bindings.postStmts...)
		decls = append(decls, bindings.declarations...)

		stmts = append(stmts, b.Assign(bindings.assignTo, b.Call(
			b.Attribute(b.LoadIdent(dictVar), "pop", pyast.Load),
			[]pyast.CallItem{b.CallArg(keyNode.expr)},
		)))
	}

	if spreadTarget != nil {
		bindings, err := c.destructure(spreadTarget, declOnly)
		if err != nil {
			return destructureBindings{}, err
		}
		post = append(post, bindings.postStmts...)
		decls = append(decls, bindings.declarations...)
		stmts = append(stmts, b.Assign(bindings.assignTo, b.LoadIdent(dictVar)))
	}

	stmts = append(stmts, post...)

	return destructureBindings{
		assignTo:     b.Ident(cursorVar, pyast.Store),
		postStmts:    stmts,
		declarations: decls,
	}, nil
}

// destructure dispatches on the target's shape (spec.md §4.3 "Leaf
// target"). Ident/Attribute/Subscript leaves are returned directly in
// Store access context; List/Mapping recurse. declOnly forbids
// Attribute/Subscript leaves (used for `for` targets and scope-modified
// assignments, where only plain bindings make sense).
func (c *Context) destructure(target koatlast.Expr, declOnly bool) (destructureBindings, error) {
	sp := target.Span()

	switch t := target.(type) {
	case *koatlast.EIdent:
		node, err := c.transformWithAccess(target, pyast.Store)
		if err != nil {
			return destructureBindings{}, err
		}
		return destructureBindings{assignTo: node.expr, postStmts: node.pre, declarations: []string{t.Name}}, nil

	case *koatlast.EAttribute, *koatlast.ESubscript:
		if declOnly {
			return destructureBindings{}, lowerr.New(lowerr.InvalidAssignTarget, sp, "only identifiers allowed in this destructuring")
		}
		node, err := c.transformWithAccess(target, pyast.Store)
		if err != nil {
			return destructureBindings{}, err
		}
		return destructureBindings{assignTo: node.expr, postStmts: node.pre}, nil

	case *koatlast.EList:
		return c.destructureList(target, t.Items, declOnly)

	case *koatlast.EMapping:
		return c.destructureMapping(target, t.Items, declOnly)

	default:
		return destructureBindings{}, lowerr.New(lowerr.InvalidAssignTarget, sp, "assignment target is not allowed")
	}
}
