package ast

import "github.com/nyxlang/nyxc/internal/span"

// Stmt is the spec's Statement sum: Create, Set, Func, Return.
type Stmt interface {
	Node
	stmtNode()
}

// TypedIdent pairs a type with an identifier: `i32 x`, `T a`. Per
// spec.md §3, a Discarded ident may only legally appear here, as a
// function argument placeholder — the parser enforces that, not this
// type.
type TypedIdent struct {
	Sp    span.Span
	Ty    Type
	Ident Ident
}

// CreateStmt declares a new variable, with an optional initializer
// (absent only for the `mut`?-type-ident declare-without-init form the
// full create grammar allows).
type CreateStmt struct {
	Sp      span.Span
	TyIdent TypedIdent
	Mutable bool
	Value   Expr // nil if no initializer
}

func (c *CreateStmt) NodeSpan() span.Span { return c.Sp }
func (*CreateStmt) stmtNode()             {}

// SetStmt assigns to an existing variable. Compound assignment
// (`id op= expr`) is desugared by the parser into `id = id op expr`
// before a SetStmt is ever constructed.
type SetStmt struct {
	Sp    span.Span
	ID    Ident
	Value Expr
}

func (s *SetStmt) NodeSpan() span.Span { return s.Sp }
func (*SetStmt) stmtNode()             {}

// Linkage distinguishes extern (no mangling, no body required) from
// ordinary function declarations.
type Linkage int

const (
	DefaultLinkage Linkage = iota
	ExternalLinkage
)

// Attribs holds the function attribute keywords (`pure`, `unsafe`).
type Attribs struct {
	Pure   bool
	Unsafe bool
}

// Signature is the structural shape of a function: its attributes,
// linkage, declared return type (Inferred if omitted), argument list,
// and generic parameter list.
type Signature struct {
	Attribs   Attribs
	Linkage   Linkage
	ReturnTy  Type
	Args      []TypedIdent
	Generics  []Ident
}

// FuncStmt is a function definition or (when Body is nil) an extern
// declaration.
type FuncStmt struct {
	Sp        span.Span
	ID        Ident
	Signature Signature
	Body      *Scope // nil for extern declarations
}

func (f *FuncStmt) NodeSpan() span.Span { return f.Sp }
func (*FuncStmt) stmtNode()             {}

// ReturnStmt terminates a scope with a value: `return` from a function,
// or `yield` from a block-expression.
type ReturnStmt struct {
	Sp      span.Span
	Value   Expr
	IsYield bool
}

func (r *ReturnStmt) NodeSpan() span.Span { return r.Sp }
func (*ReturnStmt) stmtNode()             {}

// ExprStmt wraps a bare expression used as a statement — in practice
// only a call, since nyx's expression grammar has nothing else worth
// evaluating for effect alone (`foo();`). Not one of the spec's four
// named statement kinds, but required to parse a forward-referencing
// call at statement position without binding its result anywhere.
type ExprStmt struct {
	Sp    span.Span
	Value Expr
}

func (e *ExprStmt) NodeSpan() span.Span { return e.Sp }
func (*ExprStmt) stmtNode()             {}
