package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/diag"
	"github.com/nyxlang/nyxc/internal/hoister"
	"github.com/nyxlang/nyxc/internal/lexer"
	"github.com/nyxlang/nyxc/internal/parser"
	"github.com/nyxlang/nyxc/internal/resolver"
)

func prepare(t *testing.T, src string) (*ast.Scope, *diag.Bag) {
	t.Helper()
	diags := diag.NewBag()
	p := parser.New(lexer.New(src), 0, diags)
	scope := p.ParseScope()
	require.False(t, diags.HasErrors(), "unexpected parse errors: %v", diags.All())
	hoister.Hoist(scope)
	return scope, diags
}

func TestResolveForwardReferencedCall(t *testing.T) {
	scope, diags := prepare(t, "func main() { foo(); } func foo() {}")
	resolver.New(diags).Resolve(scope)
	require.False(t, diags.HasErrors(), "diags: %v", diags.All())

	main := scope.Table.Funcs["main"]
	foo := scope.Table.Funcs["foo"]
	require.NotZero(t, foo.ID)

	call := main.Body.Stmts[0].(*ast.ExprStmt).Value.(*ast.CallExpr)
	callee := call.Callee.(*ast.IdentExpr)
	assert.True(t, callee.Ident.IsResolved())
	assert.Equal(t, foo.ID, callee.Ident.MustID())
}

func TestResolveNonexistentItemGetsSentinelID(t *testing.T) {
	scope, diags := prepare(t, "func main() { i32 x = 1; x = y; }")
	resolver.New(diags).Resolve(scope)
	require.True(t, diags.HasErrors())

	main := scope.Table.Funcs["main"]
	set := main.Body.Stmts[1].(*ast.SetStmt)
	ref := set.Value.(*ast.IdentExpr)
	require.True(t, ref.Ident.IsResolved())
	assert.Equal(t, 0, ref.Ident.MustID())
}

func TestResolveVariableReferencedAsFunctionIsTypeMismatch(t *testing.T) {
	scope, diags := prepare(t, "i32 x = 1; func main() { x(); }")
	resolver.New(diags).Resolve(scope)
	require.True(t, diags.HasErrors())
	assert.Contains(t, diags.All()[0].Title, "type mismatch")
}

func TestResolveDiscardedArgGetsNoID(t *testing.T) {
	scope, diags := prepare(t, "func f(i32 _) {}")
	resolver.New(diags).Resolve(scope)
	require.False(t, diags.HasErrors())

	f := scope.Table.Funcs["f"]
	assert.True(t, f.Signature.Args[0].Ident.IsDiscarded())
}

func TestResolveAssignsDistinctIDsPerDeclaration(t *testing.T) {
	scope, diags := prepare(t, "func main() { i32 x = 1; i32 y = 2; }")
	resolver.New(diags).Resolve(scope)
	require.False(t, diags.HasErrors())

	main := scope.Table.Funcs["main"]
	x := main.Body.Table.Vars["x"]
	y := main.Body.Table.Vars["y"]
	require.NotZero(t, x.ID)
	require.NotZero(t, y.ID)
	assert.NotEqual(t, x.ID, y.ID)
}

func TestResolveSelfReferencingInitializerSeesNewBinding(t *testing.T) {
	// Preserves the original's exact Create order: the new binding is
	// registered before its initializer is resolved.
	scope, diags := prepare(t, "i32 x = 1; func main() { i32 x = x; }")
	resolver.New(diags).Resolve(scope)
	require.False(t, diags.HasErrors())

	main := scope.Table.Funcs["main"]
	create := main.Body.Stmts[0].(*ast.CreateStmt)
	innerID := create.TyIdent.Ident.MustID()
	refID := create.Value.(*ast.IdentExpr).Ident.MustID()
	assert.Equal(t, innerID, refID, "initializer should resolve to the new x, not the outer one")
}

func TestResolveNestedScopeShadowsOuterBinding(t *testing.T) {
	scope, diags := prepare(t, "func main() { i32 x = 1; i32 y = { i32 x = 2; yield x; }; }")
	resolver.New(diags).Resolve(scope)
	require.False(t, diags.HasErrors())

	main := scope.Table.Funcs["main"]
	outerX := main.Body.Table.Vars["x"]
	yCreate := main.Body.Stmts[1].(*ast.CreateStmt)
	innerScope := yCreate.Value.(*ast.ScopeExpr).Scope
	innerX := innerScope.Table.Vars["x"]
	assert.NotEqual(t, outerX.ID, innerX.ID)

	yieldStmt := innerScope.Stmts[1].(*ast.ReturnStmt)
	assert.Equal(t, innerX.ID, yieldStmt.Value.(*ast.IdentExpr).Ident.MustID())
}
