// Package hoister implements the hoisting stage (spec.md §4.3): it
// walks a freshly-checked scope and, for every nested scope, builds a
// declaration table of the names visible within it. Grounded on the
// original's hoister.rs, with one deliberate divergence recorded in
// DESIGN.md: spec.md §4.3 has a Func statement disappear from its
// scope's statement list and reappear only in that scope's funcs
// table, whereas the original keeps the statement in place as well as
// recording it — our port follows spec.md's documented contract.
// Variables are never hoisted out of their textual position; only
// their declaration metadata is recorded, so visibility stays
// sequential exactly as the original leaves it.
package hoister

import "github.com/nyxlang/nyxc/internal/ast"

// Hoist mutates scope (and every scope nested within it — function
// bodies and braced scope-expressions) in place: each scope's Table is
// populated, and each Func statement is removed from its own Stmts
// slice once recorded in the Table.
func Hoist(scope *ast.Scope) {
	hoistScope(scope)
}

func hoistScope(scope *ast.Scope) {
	table := ast.NewScopeTable()
	kept := scope.Stmts[:0:0]

	for _, stmt := range scope.Stmts {
		switch s := stmt.(type) {
		case *ast.CreateStmt:
			table.AddVar(s.TyIdent.Ident.Name, &ast.VarEntry{
				Span:    s.Sp,
				Ty:      s.TyIdent.Ty,
				Mutable: s.Mutable,
			})
			hoistExpr(s.Value)
			kept = append(kept, s)

		case *ast.FuncStmt:
			table.AddFunc(s.ID.Name, &ast.FuncEntry{
				Span:      s.Sp,
				Signature: s.Signature,
				Body:      s.Body,
			})
			if s.Body != nil {
				hoistScope(s.Body)
			}
			// s is deliberately not appended to kept — see the
			// package doc comment.

		case *ast.SetStmt:
			hoistExpr(s.Value)
			kept = append(kept, s)

		case *ast.ReturnStmt:
			hoistExpr(s.Value)
			kept = append(kept, s)

		case *ast.ExprStmt:
			hoistExpr(s.Value)
			kept = append(kept, s)

		default:
			kept = append(kept, s)
		}
	}

	scope.Stmts = kept
	scope.Table = table
}

// hoistExpr recurses into every expression shape that can contain a
// nested scope (braced block expressions) or other sub-expressions
// worth descending into, so a scope-expression buried in an
// initializer, assignment, return value or call argument still gets
// its own Table populated.
func hoistExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case nil:
	case *ast.ScopeExpr:
		hoistScope(e.Scope)
	case *ast.BinaryOp:
		hoistExpr(e.LHS)
		hoistExpr(e.RHS)
	case *ast.UnaryOp:
		hoistExpr(e.Operand)
	case *ast.CallExpr:
		hoistExpr(e.Callee)
		for _, arg := range e.Args {
			hoistExpr(arg)
		}
	}
}
