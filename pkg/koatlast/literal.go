package koatlast

// LiteralKind discriminates the four literal forms the lexer/parser
// can produce. Num and Str keep their original textual spelling
// (radix/escapes are the emitter's concern, not the lowering pass's).
type LiteralKind int

const (
	LiteralNum LiteralKind = iota
	LiteralStr
	LiteralBool
	LiteralNone
)

// Literal is a leaf value. Only one of Text/Bool is meaningful,
// selected by Kind.
type Literal struct {
	Kind LiteralKind
	Text string // Num, Str
	Bool bool   // Bool
}

// BinaryOp enumerates Koatl's infix operators.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpMod
	OpMatMul
	OpDiv
	OpExp
	OpLt
	OpLeq
	OpGt
	OpGeq
	OpEq
	OpNeq
	OpIs
	OpNis
	OpCoalesce // ??
	OpPipe     // |
)

// UnaryOp enumerates Koatl's prefix operators.
type UnaryOp int

const (
	OpInv UnaryOp = iota
	OpPos
	OpNeg
	OpYield
	OpYieldFrom
)

// AssignModifier is at most one per assignment; Export is legal only
// at the top level of a module.
type AssignModifier int

const (
	ModExport AssignModifier = iota
	ModGlobal
	ModNonlocal
)
