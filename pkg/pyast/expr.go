package pyast

// Expr is implemented by every PyAST expression node.
type Expr interface {
	Span() Span
	exprNode()
}

// EBase is the embedded span-carrying base of every Expr node. It is
// exported (unlike go/ast's own unexported bases) so pkg/lower can
// construct PyAST nodes with a keyed struct literal.
type EBase struct{ Sp Span }

func (e EBase) Span() Span { return e.Sp }
func (EBase) exprNode()    {}

type EIdent struct {
	EBase
	Name string
	Ctx  AccessCtx
}

type ELiteral struct {
	EBase
	Lit Literal
}

type ECall struct {
	EBase
	Fn   Expr
	Args []CallItem
}

type EAttribute struct {
	EBase
	Obj  Expr
	Name string
	Ctx  AccessCtx
}

type ESubscript struct {
	EBase
	Obj   Expr
	Index Expr
	Ctx   AccessCtx
}

type ETuple struct {
	EBase
	Items []ListItem
}

type EList struct {
	EBase
	Items []ListItem
}

type EDict struct {
	EBase
	Items []DictItem
}

type EBinary struct {
	EBase
	Op   BinaryOp
	L, R Expr
}

type EUnary struct {
	EBase
	Op UnaryOp
	X  Expr
}

// ELambda is only emitted when a synthesized function's body is
// exactly `return <expr>`; every other synthesized function becomes a
// named FnDef instead (PyAST lambdas cannot hold statements).
type ELambda struct {
	EBase
	Args []ArgDefItem
	Body Expr
}

type EIfExpr struct {
	EBase
	Cond Expr
	Then Expr
	Else Expr
}

type EFstr struct {
	EBase
	Parts []FstrPart
}

type EYield struct {
	EBase
	X Expr // nil for a bare `yield`
}

type EYieldFrom struct {
	EBase
	X Expr
}
