package ast

import "github.com/nyxlang/nyxc/internal/span"

// Scope is an ordered sequence of statements. Table is nil until the
// hoister runs; after hoisting it carries the scope's precomputed
// declaration table and Stmts no longer contains any FuncStmt (those
// moved into Table.Funcs — see spec.md §4.3).
type Scope struct {
	Sp    span.Span
	Stmts []Stmt
	Table *ScopeTable
}

func (s *Scope) NodeSpan() span.Span { return s.Sp }

// VarEntry records a hoisted variable's declaration: its declared type
// (possibly Inferred), mutability, and declaring span. ID is zero until
// the resolver assigns it, at the variable's own Create statement (not
// pre-injected, unlike FuncEntry.ID — see internal/resolver).
type VarEntry struct {
	Span    span.Span
	Ty      Type
	Mutable bool
	ID      int
}

// FuncEntry records a hoisted function's full signature, its body (nil
// for extern declarations), and declaring span — so forward references
// within the enclosing scope can see it before its textual position.
// ID is assigned by the resolver before the enclosing scope's
// statements are walked, precisely so those forward references resolve.
type FuncEntry struct {
	Span      span.Span
	Signature Signature
	Body      *Scope
	ID        int
}

// ScopeTable is the per-scope declaration table spec.md §4.3
// describes: a name-keyed map of the scope's hoisted variables and
// functions, additive under lexical nesting (child scopes get their
// own table; a lookup that misses locally is the resolver's job to
// walk outward through enclosing scopes, not this table's).
//
// VarOrder and FuncOrder record each name's hoisting order so later
// stages can walk the table deterministically — Go map iteration order
// is randomized, and the resolver/infer stages must visit hoisted
// functions in a stable, reproducible order for diagnostics and test
// output to be reproducible.
type ScopeTable struct {
	Vars  map[string]*VarEntry
	Funcs map[string]*FuncEntry

	VarOrder  []string
	FuncOrder []string
}

func NewScopeTable() *ScopeTable {
	return &ScopeTable{
		Vars:  make(map[string]*VarEntry),
		Funcs: make(map[string]*FuncEntry),
	}
}

// AddVar records a variable declaration, appending to VarOrder iff name
// is new (redeclaration in the same scope overwrites in place).
func (t *ScopeTable) AddVar(name string, entry *VarEntry) {
	if _, exists := t.Vars[name]; !exists {
		t.VarOrder = append(t.VarOrder, name)
	}
	t.Vars[name] = entry
}

// AddFunc records a function declaration, appending to FuncOrder iff
// name is new.
func (t *ScopeTable) AddFunc(name string, entry *FuncEntry) {
	if _, exists := t.Funcs[name]; !exists {
		t.FuncOrder = append(t.FuncOrder, name)
	}
	t.Funcs[name] = entry
}
