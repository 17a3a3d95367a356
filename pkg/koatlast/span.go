// Package koatlast defines the Koatl input AST: the parsed surface
// syntax handed to the lowering pass. It mirrors
// coatl-core/parser/src/ast.rs one to one, using a sealed-interface sum
// type per node kind instead of Rust enums, in the style of go/ast and
// of the teacher's pkg/ast/ast.go (exported struct per variant, a Span()
// method supplied by an embedded exprBase/stmtBase, a marker method per
// sum type).
package koatlast

// Span is a half-open byte range [Start, End) carried on every node.
// Spans never affect lowering semantics, only diagnostics and
// temp-name generation.
type Span struct {
	Start int
	End   int
}

// Node is implemented by every AST node.
type Node interface {
	Span() Span
}
