package koatlast

// Stmt is implemented by every Koatl statement node.
type Stmt interface {
	Node
	stmtNode()
}

type stmtBase struct{ Sp Span }

func (s stmtBase) Span() Span { return s.Sp }
func (stmtBase) stmtNode()    {}

// SModule marks the synthetic module-root statement; it is never
// legal inside the transform phase and is rejected with InternalError.
type SModule struct{ stmtBase }

type SAssign struct {
	stmtBase
	Lhs       Expr
	Rhs       Expr
	Modifiers []AssignModifier
}

type SExprStmt struct {
	stmtBase
	X         Expr
	Modifiers []AssignModifier
}

type SReturn struct {
	stmtBase
	X Expr // nil for a bare `return`
}

type SWhile struct {
	stmtBase
	Cond Expr
	Body *Block
}

type SFor struct {
	stmtBase
	Target Expr
	Iter   Expr
	Body   *Block
}

type SImport struct {
	stmtBase
	Stmt ImportStmt
}

type STry struct {
	stmtBase
	Body     *Block
	Handlers []ExceptHandler
	Finally  *Block // nil if absent
}

type SAssert struct {
	stmtBase
	X   Expr
	Msg Expr // nil if absent
}

type SRaise struct {
	stmtBase
	X Expr
}

type SBreak struct{ stmtBase }
type SContinue struct{ stmtBase }

// SErr marks a statement the lexer/parser recovered from a syntax
// error; reaching the transform phase is internal misuse.
type SErr struct{ stmtBase }
