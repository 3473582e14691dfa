package infer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/diag"
	"github.com/nyxlang/nyxc/internal/hoister"
	"github.com/nyxlang/nyxc/internal/infer"
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
	resolver.New(diags).Resolve(scope)
	require.False(t, diags.HasErrors(), "unexpected resolve errors: %v", diags.All())
	return scope, diags
}

func titles(diags *diag.Bag) []string {
	out := make([]string, 0, diags.Len())
	for _, d := range diags.All() {
		out = append(out, d.Title)
	}
	return out
}

func TestInferBareNumberLiteralMatchesDeclaredWidthWithNoDiagnostic(t *testing.T) {
	scope, diags := prepare(t, "i32 x = 42;")
	infer.Infer(scope, diags)
	assert.False(t, diags.HasErrors(), "diags: %v", titles(diags))
}

func TestInferMismatchedCreateInitializerIsError(t *testing.T) {
	scope, diags := prepare(t, "func main() { i32 x = 1f32; }")
	infer.Infer(scope, diags)
	require.True(t, diags.HasErrors())
	assert.Contains(t, diags.All()[0].Notes[len(diags.All()[0].Notes)-1], "disallowed implicit cast between numeric types")
}

func TestInferSetStatementUnifiesAgainstDeclaredType(t *testing.T) {
	scope, diags := prepare(t, "func main() { i32 x = 1; x = 2; }")
	infer.Infer(scope, diags)
	assert.False(t, diags.HasErrors(), "diags: %v", titles(diags))
}

func TestInferForwardReferencedCallIsClean(t *testing.T) {
	scope, diags := prepare(t, "func main() { foo(1); } func foo(i32 x) -> i32 { return x; }")
	infer.Infer(scope, diags)
	assert.False(t, diags.HasErrors(), "diags: %v", titles(diags))
}

func TestInferCallArgumentNotCheckedAgainstSignature(t *testing.T) {
	// Call-expression type inference is a deliberate gap, matching the
	// original and spec.md's Open Question resolution: a call always
	// infers as Unknown, so a mismatched argument is not itself flagged
	// here (unlike a mismatched Create/Set/return, which always are).
	scope, diags := prepare(t, "func main() { foo(1f32); } func foo(i32 x) -> i32 { return x; }")
	infer.Infer(scope, diags)
	assert.False(t, diags.HasErrors(), "diags: %v", titles(diags))
}

func TestInferIncorrectReturnTypeReportsExactTitle(t *testing.T) {
	scope, diags := prepare(t, "func main() -> i32 { return 1f32; }")
	infer.Infer(scope, diags)
	require.True(t, diags.HasErrors())
	assert.Equal(t, "type conflict: incorrect return type", diags.All()[0].Title)
}

func TestInferMissingReturnStatementNotesNoReturn(t *testing.T) {
	scope, diags := prepare(t, "func main() -> i32 { return; }")
	infer.Infer(scope, diags)
	require.True(t, diags.HasErrors())
	d := diags.All()[0]
	assert.Equal(t, "type conflict: incorrect return type", d.Title)
	require.NotEmpty(t, d.Notes)
	assert.Contains(t, d.Notes[0], "(or no return statement exists)")
}

func TestInferGenericFunctionReturningItsOwnArgIsClean(t *testing.T) {
	scope, diags := prepare(t, "func id<T>(T x) -> T { return x; }")
	infer.Infer(scope, diags)
	assert.False(t, diags.HasErrors(), "diags: %v", titles(diags))
}

func TestInferStatementAfterReturnWarnsUnnecessary(t *testing.T) {
	scope, diags := prepare(t, "func main() { return; i32 x = 1; }")
	infer.Infer(scope, diags)
	require.NotEmpty(t, diags.All())
	found := false
	for _, d := range diags.All() {
		if d.Title == "unnecessary statement" {
			found = true
		}
	}
	assert.True(t, found, "diags: %v", titles(diags))
}

func TestInferBinaryOpUnifiesOperands(t *testing.T) {
	scope, diags := prepare(t, "func main() { i32 x = 1 + 2; }")
	infer.Infer(scope, diags)
	assert.False(t, diags.HasErrors(), "diags: %v", titles(diags))
}

func TestInferBinaryOpMismatchIsError(t *testing.T) {
	scope, diags := prepare(t, "func main() { i32 x = 1i32 + 1f32; }")
	infer.Infer(scope, diags)
	assert.True(t, diags.HasErrors())
}
