package hoister_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/diag"
	"github.com/nyxlang/nyxc/internal/hoister"
	"github.com/nyxlang/nyxc/internal/lexer"
	"github.com/nyxlang/nyxc/internal/parser"
)

func mustParse(t *testing.T, src string) *ast.Scope {
	t.Helper()
	diags := diag.NewBag()
	p := parser.New(lexer.New(src), 0, diags)
	scope := p.ParseScope()
	require.False(t, diags.HasErrors(), "unexpected parse errors: %v", diags.All())
	return scope
}

func TestHoistRemovesFuncFromStmtsButRecordsIt(t *testing.T) {
	scope := mustParse(t, "func main() { foo(); } func foo() {}")
	require.Len(t, scope.Stmts, 2)

	hoister.Hoist(scope)

	assert.Empty(t, scope.Stmts, "func statements should be hoisted out of Stmts")
	require.NotNil(t, scope.Table)
	assert.Contains(t, scope.Table.Funcs, "main")
	assert.Contains(t, scope.Table.Funcs, "foo")
	assert.Equal(t, []string{"main", "foo"}, scope.Table.FuncOrder)
}

func TestHoistDoesNotRemoveVars(t *testing.T) {
	scope := mustParse(t, "func main() { let x = 1; }")
	hoister.Hoist(scope)

	main := scope.Table.Funcs["main"]
	require.NotNil(t, main.Body)
	require.Len(t, main.Body.Stmts, 1, "create statements stay in place, unlike funcs")
	assert.Contains(t, main.Body.Table.Vars, "x")
}

func TestHoistRecursesIntoNestedFuncBody(t *testing.T) {
	scope := mustParse(t, "func outer() { func inner() {} }")
	hoister.Hoist(scope)

	outer := scope.Table.Funcs["outer"]
	require.NotNil(t, outer.Body)
	assert.Empty(t, outer.Body.Stmts)
	assert.Contains(t, outer.Body.Table.Funcs, "inner")
}

func TestHoistRecursesIntoScopeExpression(t *testing.T) {
	scope := mustParse(t, "func main() { i32 x = { let y = 1; yield y; }; }")
	hoister.Hoist(scope)

	main := scope.Table.Funcs["main"]
	require.Len(t, main.Body.Stmts, 1)
	create := main.Body.Stmts[0].(*ast.CreateStmt)
	scopeExpr, ok := create.Value.(*ast.ScopeExpr)
	require.True(t, ok, "initializer should be a scope expression")
	require.NotNil(t, scopeExpr.Scope.Table)
	assert.Contains(t, scopeExpr.Scope.Table.Vars, "y")
}
