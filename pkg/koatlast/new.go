package koatlast

// Constructors for every node kind, mirroring NewSpan/NewStmtsBlock/
// NewExprBlock above. exprBase/stmtBase are unexported (by design: the
// lowering pass only ever reads koatlast nodes via type-switch, never
// builds them — see pkg/pyast's EBase/SBase for the package that
// needs outside construction), so anything outside this package that
// needs to build a tree — principally pkg/lower's tests, the mirror
// image of pkg/koatlast/fromjson.go's decode direction — goes through
// these instead of a keyed struct literal.

func NewIdent(sp Span, name string) *EIdent { return &EIdent{exprBase{sp}, name} }

func NewPlaceholder(sp Span) *EPlaceholder { return &EPlaceholder{exprBase{sp}} }

func NewNumLit(sp Span, text string) *ELiteral {
	return &ELiteral{exprBase{sp}, Literal{Kind: LiteralNum, Text: text}}
}

func NewStrLit(sp Span, text string) *ELiteral {
	return &ELiteral{exprBase{sp}, Literal{Kind: LiteralStr, Text: text}}
}

func NewBoolLit(sp Span, v bool) *ELiteral {
	return &ELiteral{exprBase{sp}, Literal{Kind: LiteralBool, Bool: v}}
}

func NewNoneLit(sp Span) *ELiteral {
	return &ELiteral{exprBase{sp}, Literal{Kind: LiteralNone}}
}

func NewList(sp Span, items []ListItem) *EList   { return &EList{exprBase{sp}, items} }
func NewTuple(sp Span, items []ListItem) *ETuple { return &ETuple{exprBase{sp}, items} }
func NewMapping(sp Span, items []MappingItem) *EMapping {
	return &EMapping{exprBase{sp}, items}
}

func NewSlice(sp Span, start, end, step Expr) *ESlice {
	return &ESlice{exprBase{sp}, start, end, step}
}

func NewUnary(sp Span, op UnaryOp, x Expr) *EUnary { return &EUnary{exprBase{sp}, op, x} }
func NewBinary(sp Span, op BinaryOp, l, r Expr) *EBinary {
	return &EBinary{exprBase{sp}, op, l, r}
}

func NewIf(sp Span, cond Expr, then, els *Block) *EIf {
	return &EIf{exprBase{sp}, cond, then, els}
}

func NewMatch(sp Span, subject Expr, cases []MatchCase) *EMatch {
	return &EMatch{exprBase{sp}, subject, cases}
}

func NewClass(sp Span, bases []CallItem, body *Block) *EClass {
	return &EClass{exprBase{sp}, bases, body}
}

func NewCall(sp Span, fn Expr, args []CallItem) *ECall { return &ECall{exprBase{sp}, fn, args} }

func NewSubscript(sp Span, obj Expr, indices []ListItem) *ESubscript {
	return &ESubscript{exprBase{sp}, obj, indices}
}

func NewAttribute(sp Span, obj Expr, name string) *EAttribute {
	return &EAttribute{exprBase{sp}, obj, name}
}

func NewThen(sp Span, obj, rhs Expr) *EThen { return &EThen{exprBase{sp}, obj, rhs} }

func NewMappedCall(sp Span, obj Expr, args []CallItem) *EMappedCall {
	return &EMappedCall{exprBase{sp}, obj, args}
}

func NewMappedSubscript(sp Span, obj Expr, indices []ListItem) *EMappedSubscript {
	return &EMappedSubscript{exprBase{sp}, obj, indices}
}

func NewMappedAttribute(sp Span, obj Expr, name string) *EMappedAttribute {
	return &EMappedAttribute{exprBase{sp}, obj, name}
}

func NewMappedThen(sp Span, obj, rhs Expr) *EMappedThen {
	return &EMappedThen{exprBase{sp}, obj, rhs}
}

func NewChecked(sp Span, x Expr, et *ExceptTypes) *EChecked {
	return &EChecked{exprBase{sp}, x, et}
}

func NewFn(sp Span, args []ArgDefItem, body *Block) *EFn { return &EFn{exprBase{sp}, args, body} }

func NewFstr(sp Span, head string, parts []FstrPart) *EFstr {
	return &EFstr{exprBase{sp}, head, parts}
}

func NewBlockExpr(sp Span, block *Block) *EBlock { return &EBlock{exprBase{sp}, block} }

func NewAssign(sp Span, lhs, rhs Expr, modifiers ...AssignModifier) *SAssign {
	return &SAssign{stmtBase{sp}, lhs, rhs, modifiers}
}

func NewExprStmt(sp Span, x Expr, modifiers ...AssignModifier) *SExprStmt {
	return &SExprStmt{stmtBase{sp}, x, modifiers}
}

func NewReturn(sp Span, x Expr) *SReturn { return &SReturn{stmtBase{sp}, x} }

func NewWhile(sp Span, cond Expr, body *Block) *SWhile {
	return &SWhile{stmtBase{sp}, cond, body}
}

func NewFor(sp Span, target, iter Expr, body *Block) *SFor {
	return &SFor{stmtBase{sp}, target, iter, body}
}

func NewImport(sp Span, stmt ImportStmt) *SImport { return &SImport{stmtBase{sp}, stmt} }

func NewTry(sp Span, body *Block, handlers []ExceptHandler, finally *Block) *STry {
	return &STry{stmtBase{sp}, body, handlers, finally}
}

func NewAssert(sp Span, x, msg Expr) *SAssert { return &SAssert{stmtBase{sp}, x, msg} }
func NewRaise(sp Span, x Expr) *SRaise        { return &SRaise{stmtBase{sp}, x} }
func NewBreak(sp Span) *SBreak                { return &SBreak{stmtBase{sp}} }
func NewContinue(sp Span) *SContinue          { return &SContinue{stmtBase{sp}} }
