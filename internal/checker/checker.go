// Package checker implements the structural-checker stage (spec.md
// §4.2): a best-effort pass over the freshly-parsed tree that never
// mutates it, emitting two independent diagnostic classes — statements
// illegal in their enclosing context, and identifiers spelled in the
// wrong case convention. Grounded on the original's checker.rs,
// checker/context.rs and checker/case.rs, adapted from the original's
// macro-generated check_stmt dispatch into a plain type switch and from
// its process-wide add_diagnostic into an explicit *diag.Bag.
package checker

import (
	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/diag"
	"github.com/nyxlang/nyxc/internal/span"
)

// Context distinguishes top-level scope from a function body; several
// statement kinds are legal in one but not the other.
type Context int

const (
	TopLevel Context = iota
	Func
)

func (c Context) String() string {
	if c == Func {
		return "function"
	}
	return "top level"
}

// Convention selects the identifier-case policy applied to variable,
// function and argument names. SPEC_FULL.md's case_convention config
// option toggles between these: "snake" (the original's sole, strict
// behavior) and "snake_or_camel" (a supplemented relaxation that also
// accepts camelCase — see DESIGN.md).
type Convention int

const (
	Snake Convention = iota
	SnakeOrCamel
)

// Check runs the structural checker over a freshly-parsed top-level
// scope, appending every diagnostic it finds to diags. It never
// returns an error and never stops early — check, hoist, resolve and
// infer all run unconditionally per spec.md §2.
func Check(scope *ast.Scope, diags *diag.Bag, conv Convention) {
	checkScope(scope, TopLevel, diags, conv)
}

func checkScope(scope *ast.Scope, context Context, diags *diag.Bag, conv Convention) {
	for _, stmt := range scope.Stmts {
		checkStmtContext(stmt, context, diags)
		checkStmtCase(stmt, diags, conv)
		if fn, ok := stmt.(*ast.FuncStmt); ok && fn.Body != nil {
			checkScope(fn.Body, Func, diags, conv)
		}
	}
}

// checkStmtContext is the Go rendering of context.rs's check_stmt!
// macro: Create/Set/Return/ExprStmt are legal only inside a function
// body, Func is legal at top level and nested inside another function.
func checkStmtContext(stmt ast.Stmt, context Context, diags *diag.Bag) {
	var kind string
	legal := false
	switch stmt.(type) {
	case *ast.CreateStmt:
		kind, legal = "create", context == Func
	case *ast.SetStmt:
		kind, legal = "set", context == Func
	case *ast.ReturnStmt:
		kind, legal = "return", context == Func
	case *ast.ExprStmt:
		kind, legal = "expression", context == Func
	case *ast.FuncStmt:
		kind, legal = "func", true
	default:
		return
	}
	if !legal {
		diags.Add(diag.InvalidStmt(stmt.NodeSpan(), kind, context.String()))
	}
}

// checkStmtCase is checker.rs's check_inner body: a Create statement's
// variable name must follow the variable convention (this checks the
// binding's own name, matching the original's `ty_id.value.ident`
// check — not its type annotation), and a Func statement's name,
// generics and arguments are each checked against their expected
// convention.
func checkStmtCase(stmt ast.Stmt, diags *diag.Bag, conv Convention) {
	switch s := stmt.(type) {
	case *ast.CreateStmt:
		checkIdentCase(s.TyIdent.Ident, s.TyIdent.Sp, varWanted(conv), diags)
	case *ast.FuncStmt:
		checkIdentCase(s.ID, s.Sp, varWanted(conv), diags)
		for _, g := range s.Signature.Generics {
			checkIdentCase(g, s.Sp, PascalCase, diags)
		}
		for _, a := range s.Signature.Args {
			checkIdentCase(a.Ident, a.Sp, varWanted(conv), diags)
		}
	}
}

// varWanted is the convention applied to variable/function/argument
// names; SnakeOrCamel relaxes the strict SnakeCase the original always
// demands to also tolerate CamelCase — see the SnakeCamel check at the
// end of checkCase.
func varWanted(conv Convention) Case {
	if conv == SnakeOrCamel {
		return SnakeCamel
	}
	return SnakeCase
}

// checkIdentCase checks a Named ident's spelling against wanted,
// emitting diag.InvalidCase on mismatch. Discarded, Qualified and
// Resolved idents carry no spelling of their own to check.
func checkIdentCase(id ast.Ident, sp span.Span, wanted Case, diags *diag.Bag) {
	if id.Kind != ast.Named {
		return
	}
	checkCase(sp, id.Name, wanted, diags)
}
