package pyast

import "github.com/koatl-lang/koatl/pkg/koatlast"

// Builder is a convenience factory producing spanned PyAST nodes, all
// keyed off one span (typically the Koatl node currently being
// lowered). It exists so pkg/lower's recursive descent doesn't repeat
// `Span: span` on every literal node construction, mirroring the role
// of the original's PyAstBuilder.
type Builder struct {
	Sp Span
}

// NewBuilder returns a Builder that stamps every node it constructs
// with sp.
func NewBuilder(sp Span) Builder { return Builder{Sp: sp} }

func (b Builder) Ident(name string, ctx AccessCtx) Expr {
	return &EIdent{EBase{b.Sp}, name, ctx}
}

func (b Builder) LoadIdent(name string) Expr { return b.Ident(name, Load) }

func (b Builder) Num(text string) Expr {
	return &ELiteral{EBase{b.Sp}, Literal{Kind: koatlast.LiteralNum, Text: text}}
}

func (b Builder) Call(fn Expr, args []CallItem) Expr {
	return &ECall{EBase{b.Sp}, fn, args}
}

func (b Builder) CallArg(x Expr) CallItem { return CallItem{Kind: CallArg, X: x} }

func (b Builder) Attribute(obj Expr, name string, ctx AccessCtx) Expr {
	return &EAttribute{EBase{b.Sp}, obj, name, ctx}
}

func (b Builder) Subscript(obj, index Expr, ctx AccessCtx) Expr {
	return &ESubscript{EBase{b.Sp}, obj, index, ctx}
}

func (b Builder) Slice(start, end, step Expr) Expr {
	none := func(x Expr) CallItem {
		if x == nil {
			return CallItem{Kind: CallArg, X: &ELiteral{EBase{b.Sp}, Literal{Kind: koatlast.LiteralNone}}}
		}
		return CallItem{Kind: CallArg, X: x}
	}
	return b.Call(b.LoadIdent("slice"), []CallItem{none(start), none(end), none(step)})
}

func (b Builder) Binary(op BinaryOp, l, r Expr) Expr {
	return &EBinary{EBase{b.Sp}, op, l, r}
}

func (b Builder) IfExpr(cond, then, els Expr) Expr {
	return &EIfExpr{EBase{b.Sp}, cond, then, els}
}

func (b Builder) Assign(target, value Expr) Stmt {
	return &SAssign{SBase{b.Sp}, target, value}
}

func (b Builder) ExprStmt(x Expr) Stmt { return &SExpr{SBase{b.Sp}, x} }

func (b Builder) Try(body []Stmt, handlers []ExceptHandler, finally []Stmt) Stmt {
	return &STry{SBase{b.Sp}, body, handlers, finally}
}

func (b Builder) ExceptHandler(typ Expr, name string, body []Stmt) ExceptHandler {
	return ExceptHandler{Typ: typ, Name: name, Body: body}
}
