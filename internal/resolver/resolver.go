// Package resolver implements the resolution stage (spec.md §4.4): it
// walks a hoisted scope and assigns every binding site a process-
// unique integer id, rewriting each Named ident into Resolved(id) in
// place. Grounded on the original's resolver.rs, resolver/mappings.rs
// and resolver/resolve_specific.rs, adapted from the original's trait-
// dispatch (Resolve/ResolveSpecific/ResolveData) into plain methods on
// a Resolver value that owns the id counter explicitly, per spec.md's
// DESIGN NOTES recommendation against hidden global state (the
// original uses a lazy_static Mutex<Id> counter).
//
// One deliberate divergence from the original, recorded in DESIGN.md:
// spec.md §4.4 documents resolve-must-exist as validating that the
// resolved id's recorded kind matches the role it's being used in
// (variable/function/type). The original's plain-Ident resolve_must_
// exist performs no such check at all — ensure_repr is only ever
// called from a handful of call sites (a function's own declaration,
// a variable's own declaration, a type position) and never from a
// plain use-site lookup, making its kind validation inconsistent
// across the original codebase. This port follows spec.md's documented
// contract literally: every resolve-must-exist call validates kind.
package resolver

import (
	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/diag"
	"github.com/nyxlang/nyxc/internal/span"
)

// sentinelID is the id substituted for any reference the resolver
// could not make sense of — a use of `_`, a qualified name, or a
// nonexistent item. Every later stage treats id 0 as inert.
const sentinelID = 0

// Resolver assigns ids via an explicit monotonic counter: alloc's
// first call returns 1, leaving 0 as the permanent sentinel.
type Resolver struct {
	diags  *diag.Bag
	nextID int
}

func New(diags *diag.Bag) *Resolver {
	return &Resolver{diags: diags}
}

func (r *Resolver) alloc() int {
	r.nextID++
	return r.nextID
}

// Resolve resolves a top-level, already-hoisted scope in place.
func (r *Resolver) Resolve(scope *ast.Scope) {
	r.resolveScope(scope, newMappings())
}

// resolveScope clones parent's mappings (shadowing isolation), pre-
// injects every function hoisted directly into this scope so sibling
// statements and other hoisted functions can forward-reference them,
// then walks the scope's statements and finally each hoisted
// function's own signature and body.
func (r *Resolver) resolveScope(scope *ast.Scope, parent *mappings) {
	m := parent.clone()

	if scope.Table != nil {
		for _, name := range scope.Table.FuncOrder {
			entry := scope.Table.Funcs[name]
			id := r.alloc()
			entry.ID = id
			m.insert(name, id, KindFunc)
		}
	}

	for _, stmt := range scope.Stmts {
		r.resolveStmt(stmt, scope, m)
	}

	if scope.Table != nil {
		for _, name := range scope.Table.FuncOrder {
			r.resolveFuncEntry(scope.Table.Funcs[name], m)
		}
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt, scope *ast.Scope, m *mappings) {
	switch s := stmt.(type) {
	case *ast.CreateStmt:
		// Type must already exist, then the ident is freshly bound —
		// in that order, exactly as the original's TypedIdent::
		// resolve_make_new resolves ty before ident. The initializer
		// is resolved last, after the new binding is visible, which
		// lets `mut x = x;`-style self-reference see the new x rather
		// than an outer shadowed one (preserved as-is, not "fixed").
		name := s.TyIdent.Ident.Name
		r.resolveTypeMustExist(&s.TyIdent.Ty, s.TyIdent.Sp, m)
		id := r.resolveMakeNew(&s.TyIdent.Ident, KindVar, m)
		if scope.Table != nil {
			if entry, ok := scope.Table.Vars[name]; ok {
				entry.ID = id
				entry.Ty = s.TyIdent.Ty
			}
		}
		if s.Value != nil {
			r.resolveExpr(s.Value, m)
		}

	case *ast.SetStmt:
		r.resolveUseIdent(&s.ID, s.Sp, KindVar, m)
		if s.Value != nil {
			r.resolveExpr(s.Value, m)
		}

	case *ast.ReturnStmt:
		if s.Value != nil {
			r.resolveExpr(s.Value, m)
		}

	case *ast.ExprStmt:
		r.resolveExpr(s.Value, m)
	}
}

// resolveFuncEntry resolves one hoisted function's generics, then its
// args, then its return type (in that order — generics must be bound
// before args and return type can reference them), then its body, all
// in a mappings clone scoped to this function alone.
func (r *Resolver) resolveFuncEntry(entry *ast.FuncEntry, parent *mappings) {
	m := parent.clone()
	sig := &entry.Signature

	for i := range sig.Generics {
		g := &sig.Generics[i]
		if g.Kind != ast.Named {
			continue
		}
		id := r.alloc()
		m.insert(g.Name, id, KindType)
		*g = ast.NewResolved(id)
	}

	for i := range sig.Args {
		a := &sig.Args[i]
		r.resolveTypeMustExist(&a.Ty, a.Sp, m)
		// A discarded argument name stays Discarded and never gets an
		// id — it's a placeholder, not a binding (see ast.Ident docs).
		if a.Ident.Kind == ast.Discarded {
			continue
		}
		r.resolveMakeNew(&a.Ident, KindVar, m)
	}

	r.resolveTypeMustExist(&sig.ReturnTy, entry.Span, m)

	if entry.Body != nil {
		r.resolveScope(entry.Body, m)
	}
}

func (r *Resolver) resolveExpr(expr ast.Expr, m *mappings) {
	switch e := expr.(type) {
	case nil:
	case *ast.NumberLiteral:
	case *ast.IdentExpr:
		r.resolveUseIdent(&e.Ident, e.Sp, KindVar, m)
	case *ast.BinaryOp:
		r.resolveExpr(e.LHS, m)
		r.resolveExpr(e.RHS, m)
	case *ast.UnaryOp:
		r.resolveExpr(e.Operand, m)
	case *ast.ScopeExpr:
		r.resolveScope(e.Scope, m)
	case *ast.CallExpr:
		r.resolveCallee(e.Callee, m)
		for i := range e.Generics {
			r.resolveTypeMustExist(&e.Generics[i], e.Sp, m)
		}
		for _, arg := range e.Args {
			r.resolveExpr(arg, m)
		}
	}
}

// resolveCallee resolves a call's callee as Kind=Func specifically —
// the one place an identifier use-site demands a different kind than
// the default KindVar, since nyx has no function values: calling a
// variable is always a type mismatch, never a valid indirect call.
func (r *Resolver) resolveCallee(expr ast.Expr, m *mappings) {
	if ie, ok := expr.(*ast.IdentExpr); ok {
		r.resolveUseIdent(&ie.Ident, ie.Sp, KindFunc, m)
		return
	}
	r.resolveExpr(expr, m)
}

// resolveTypeMustExist resolves a type reference: a user type name is
// looked up as resolve-must-exist (Kind=Type); a generic type's base
// and every type argument are completed recursively — this recursive
// completion goes beyond the original, whose generic-type arm is an
// unimplemented todo!(), because this front-end's parser (unlike the
// original's) already parses generic type syntax — see DESIGN.md.
// Built-in and inferred types carry no ident and need no resolution.
func (r *Resolver) resolveTypeMustExist(ty *ast.Type, sp span.Span, m *mappings) {
	switch ty.Kind {
	case ast.UserType:
		r.resolveUseIdent(&ty.User, sp, KindType, m)
	case ast.GenericType:
		r.resolveTypeMustExist(ty.GenericBase, sp, m)
		for i := range ty.GenericArgs {
			r.resolveTypeMustExist(&ty.GenericArgs[i], sp, m)
		}
	}
}

// resolveMakeNew is resolve-make-new: a fresh declaration site. A
// discarded binding name stays Discarded and is never assigned an id.
func (r *Resolver) resolveMakeNew(ident *ast.Ident, kind Kind, m *mappings) int {
	if ident.Kind == ast.Discarded {
		return sentinelID
	}
	id := r.alloc()
	m.insert(ident.Name, id, kind)
	*ident = ast.NewResolved(id)
	return id
}

// resolveUseIdent is resolve-must-exist: a use-site reference. `_` and
// qualified names are rejected outright; a name missing from every
// enclosing scope is a nonexistent-item error; a name found but
// recorded under a different kind is a type-mismatch error (the
// recorded kind is left untouched on mismatch, matching the original's
// ensure_repr, which only ever sets a kind that wasn't recorded yet).
// Every failure path rewrites ident to the sentinel Resolved(0) so
// later stages never see a dangling Named ident.
func (r *Resolver) resolveUseIdent(ident *ast.Ident, sp span.Span, want Kind, m *mappings) int {
	switch ident.Kind {
	case ast.Discarded:
		r.diags.Add(diag.DiscardedIdent(sp))
		*ident = ast.NewResolved(sentinelID)
		return sentinelID

	case ast.Qualified:
		r.diags.Add(diag.UnsupportedQualifiedIdent(sp))
		*ident = ast.NewResolved(sentinelID)
		return sentinelID

	case ast.Resolved:
		return ident.ID

	default: // ast.Named
		id, ok := m.lookup(ident.Name)
		if !ok {
			r.diags.Add(diag.NonexistentItem(sp, ident.Name))
			*ident = ast.NewResolved(sentinelID)
			return sentinelID
		}
		if have, known := m.getKind(id); known {
			if have != want {
				r.diags.Add(diag.TypeMismatch(sp, have.String(), want.String()))
			}
		} else {
			m.setKind(id, want)
		}
		*ident = ast.NewResolved(id)
		return id
	}
}
