// Package lower implements the Koatl->PyAST lowering pass: a single
// recursive descent over a koatlast.Block that produces a
// pyast.TransformOutput. It is grounded line-by-line on
// coatl-core/src/transform.rs from the original (Rust) implementation,
// re-expressed in Go idiom: explicit error returns instead of Result,
// a mutable *Context threaded by pointer receiver instead of a
// borrowed &mut TfCtx, and []T slices instead of the original's
// growable PyBlock wrapper.
package lower

import (
	"fmt"

	"github.com/koatl-lang/koatl/pkg/koatlast"
	"github.com/koatl-lang/koatl/pkg/linecol"
	"github.com/koatl-lang/koatl/pkg/lowerr"
	"github.com/koatl-lang/koatl/pkg/pyast"
)

// placeholderFrame is one entry of the explicit placeholder-context
// stack (spec.md §4.5, §9 "Placeholder context stack"). It is a
// mutable stack rather than an argument-threaded value because the
// activation signal is set by a deep descendant (a bare `$`) and read
// by its enclosing guard.
type placeholderFrame struct {
	span      koatlast.Span
	activated bool
}

func (f *placeholderFrame) varName(c *Context) string {
	return c.TempVarName("ph", f.span.Start)
}

// Context is the mutable state threaded through one lowering
// invocation. It is built once per TransformAST call, used
// single-threaded, and discarded.
type Context struct {
	source string
	lines  *linecol.Cache

	exports           []string
	moduleStarExports []string

	placeholders []placeholderFrame
}

func newContext(source string) *Context {
	return &Context{
		source: source,
		lines:  linecol.New(source),
	}
}

// LineCol returns the 1-indexed (line, col) of a byte offset into the
// source the context was built from.
func (c *Context) LineCol(offset int) (line, col int) {
	return c.lines.LineCol(offset)
}

// TempVarName returns a temporary identifier deterministic in kind and
// source offset: "__tl_{kind}_l{line}c{col}". No synthesized name
// collides with user identifiers, which never begin with "__tl_".
func (c *Context) TempVarName(kind string, offset int) string {
	line, col := c.LineCol(offset)
	return fmt.Sprintf("__tl_%s_l%dc%d", kind, line, col)
}

func internalErr(span koatlast.Span, format string, args ...any) error {
	return lowerr.New(lowerr.InternalError, span, format, args...)
}
