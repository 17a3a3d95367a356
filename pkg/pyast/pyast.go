// Package pyast defines the PyAST output tree: the Python AST subset
// the lowering pass constructs. It mirrors Python's ast module closely
// enough to be emitted directly by a host runtime, following the same
// sealed-interface sum-type idiom as pkg/koatlast and the teacher's
// pkg/ast/ast.go (hybrid AST: exported struct per node kind, a Span()
// method via an embedded EBase/SBase, a marker method per sum type).
package pyast

import "github.com/koatl-lang/koatl/pkg/koatlast"

// Span reuses the Koatl AST's span representation: PyAST nodes are
// spanned with the Koatl source span they were synthesized from, so a
// downstream emitter can still produce a source map without this
// package depending on one.
type Span = koatlast.Span

// AccessCtx marks whether an identifier/attribute/subscript node is
// being read (Load) or written to (Store). Every Store-context node
// emitted by the lowering pass must be directly assignable: Ident,
// Attribute(..., Store), Subscript(..., Store), or a Tuple of same.
type AccessCtx int

const (
	Load AccessCtx = iota
	Store
)

// Literal mirrors koatlast.Literal; kept as a separate type because
// the two ASTs are allowed to diverge (e.g. a future PyAST-only
// literal kind) even though today they're identical in shape.
type Literal struct {
	Kind koatlast.LiteralKind
	Text string
	Bool bool
}

// BinaryOp is the PyAST arithmetic/comparison operator set. Koatl's
// Pipe and Coalesce operators never reach PyAST: they lower to Call
// and IfExpr nodes respectively (see pkg/lower).
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mult
	Div
	Mod
	Pow
	MatMult
	Lt
	Gt
	Leq
	Geq
	Eq
	Neq
	Is
	Nis
)

type UnaryOp int

const (
	Neg UnaryOp = iota
	Pos
	Inv
)

// Decorators is an ordered list of decorator expressions attached to a
// FnDef or ClassDef, in application order: the first entry is applied
// to the function first and the last entry is applied last (outermost).
// This is the reverse of the top-to-bottom order of Python's `@` lines.
type Decorators []Expr
