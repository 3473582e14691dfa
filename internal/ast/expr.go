package ast

import "github.com/nyxlang/nyxc/internal/span"

// Node is implemented by every AST node and exposes the span it was
// parsed from.
type Node interface {
	NodeSpan() span.Span
}

// Expr is the spec's Expression sum: NumberLiteral, Identifier,
// BinaryOp, UnaryOp, Scope (a braced block used as an expression), and
// Call.
type Expr interface {
	Node
	exprNode()
}

// NumberLiteral carries the literal text as scanned; the infer stage
// (not the lexer) decides its numeric kind from any iN/uN/fN suffix.
type NumberLiteral struct {
	Sp      span.Span
	Literal string
}

func (n *NumberLiteral) NodeSpan() span.Span { return n.Sp }
func (*NumberLiteral) exprNode()             {}

// IdentExpr is an identifier used in expression position.
type IdentExpr struct {
	Sp    span.Span
	Ident Ident
}

func (i *IdentExpr) NodeSpan() span.Span { return i.Sp }
func (*IdentExpr) exprNode()             {}

// BinaryOp is one of the four additive/multiplicative operators: + - * /.
type BinaryOp struct {
	Sp  span.Span
	LHS Expr
	Op  string
	RHS Expr
}

func (b *BinaryOp) NodeSpan() span.Span { return b.Sp }
func (*BinaryOp) exprNode()             {}

// UnaryOp is the single supported unary operator: numeric negation.
type UnaryOp struct {
	Sp      span.Span
	Op      string
	Operand Expr
}

func (u *UnaryOp) NodeSpan() span.Span { return u.Sp }
func (*UnaryOp) exprNode()             {}

// ScopeExpr is a braced block used in expression position; its last
// statement, if a non-returning Return, supplies the block's value.
type ScopeExpr struct {
	Sp    span.Span
	Scope *Scope
}

func (s *ScopeExpr) NodeSpan() span.Span { return s.Sp }
func (*ScopeExpr) exprNode()             {}

// CallExpr is a function call, with an optional explicit generic
// argument list: callee<Generics>(Args).
type CallExpr struct {
	Sp          span.Span
	Callee      Expr
	HasGenerics bool
	Generics    []Type
	Args        []Expr
}

func (c *CallExpr) NodeSpan() span.Span { return c.Sp }
func (*CallExpr) exprNode()             {}
