package checker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/checker"
	"github.com/nyxlang/nyxc/internal/diag"
	"github.com/nyxlang/nyxc/internal/lexer"
	"github.com/nyxlang/nyxc/internal/parser"
)

func mustParse(t *testing.T, src string) (*ast.Scope, *diag.Bag) {
	t.Helper()
	diags := diag.NewBag()
	l := lexer.New(src)
	p := parser.New(l, 0, diags)
	scope := p.ParseScope()
	require.False(t, diags.HasErrors(), "unexpected parse errors: %v", diags.All())
	return scope, diags
}

func TestCheckRejectsCreateAtTopLevel(t *testing.T) {
	scope, parseDiags := mustParse(t, "let x = 3;")
	checker.Check(scope, parseDiags, checker.Snake)
	require.True(t, parseDiags.HasErrors())
	assert.Contains(t, parseDiags.All()[0].Title, "invalid create statement in top level context")
}

func TestCheckAllowsCreateInsideFunc(t *testing.T) {
	scope, diags := mustParse(t, "func main() { let x = 3; }")
	checker.Check(scope, diags, checker.Snake)
	assert.False(t, diags.HasErrors())
}

func TestCheckAllowsBareCallStatement(t *testing.T) {
	scope, diags := mustParse(t, "func main() { foo(); } func foo() {}")
	checker.Check(scope, diags, checker.Snake)
	assert.False(t, diags.HasErrors())
}

func TestCheckFuncLegalAtTopLevelAndNested(t *testing.T) {
	scope, diags := mustParse(t, "func outer() { func inner() {} }")
	checker.Check(scope, diags, checker.Snake)
	assert.False(t, diags.HasErrors())
}

func TestCheckWarnsOnPascalCaseFuncName(t *testing.T) {
	scope, diags := mustParse(t, "func DoThing() {}")
	checker.Check(scope, diags, checker.Snake)
	assert.False(t, diags.HasErrors())
	require.Equal(t, 1, diags.WarningCount())
	assert.Contains(t, diags.All()[0].Title, "wrong case system used")
}

func TestCheckWarnsOnSnakeCaseGeneric(t *testing.T) {
	scope, diags := mustParse(t, "func identity<t>(t x) -> t => x;")
	checker.Check(scope, diags, checker.Snake)
	found := false
	for _, d := range diags.All() {
		if d.Severity == diag.Warning {
			found = true
		}
	}
	assert.True(t, found, "expected a case warning for lowercase generic %q", "t")
}

func TestCheckAcceptsSnakeCaseVarAndArgs(t *testing.T) {
	scope, diags := mustParse(t, "func add(i32 left, i32 right) -> i32 { return left; }")
	checker.Check(scope, diags, checker.Snake)
	assert.False(t, diags.HasErrors())
	assert.Equal(t, 0, diags.WarningCount())
}

func TestCheckCamelCaseRejectedUnderStrictSnake(t *testing.T) {
	scope, diags := mustParse(t, "func main() { i32 myVar = 1; }")
	checker.Check(scope, diags, checker.Snake)
	assert.Greater(t, diags.WarningCount(), 0)
}

func TestCheckCamelCaseAllowedUnderSnakeOrCamel(t *testing.T) {
	scope, diags := mustParse(t, "func main() { i32 myVar = 1; }")
	checker.Check(scope, diags, checker.SnakeOrCamel)
	assert.Equal(t, 0, diags.WarningCount())
}
