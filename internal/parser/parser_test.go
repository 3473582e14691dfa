package parser

import (
	"testing"

	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/diag"
	"github.com/nyxlang/nyxc/internal/lexer"
)

func parseScope(t *testing.T, input string) (*ast.Scope, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag()
	p := New(lexer.New(input), 0, bag)
	scope := p.ParseScope()
	return scope, bag
}

func requireNoErrors(t *testing.T, bag *diag.Bag) {
	t.Helper()
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.All())
	}
}

func TestParseCreateSugarForms(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		mutable bool
	}{
		{"let", "let x = 1;", false},
		{"mut sugar", "mut x = 1;", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			scope, bag := parseScope(t, c.input)
			requireNoErrors(t, bag)
			if len(scope.Stmts) != 1 {
				t.Fatalf("got %d statements, want 1", len(scope.Stmts))
			}
			create, ok := scope.Stmts[0].(*ast.CreateStmt)
			if !ok {
				t.Fatalf("got %T, want *ast.CreateStmt", scope.Stmts[0])
			}
			if create.Mutable != c.mutable {
				t.Errorf("mutable = %v, want %v", create.Mutable, c.mutable)
			}
			if create.TyIdent.Ty.Kind != ast.InferredType {
				t.Errorf("type kind = %v, want InferredType", create.TyIdent.Ty.Kind)
			}
			if create.TyIdent.Ident.Name != "x" {
				t.Errorf("ident = %q, want x", create.TyIdent.Ident.Name)
			}
			if create.Value == nil {
				t.Error("value is nil, want a literal")
			}
		})
	}
}

func TestParseFullCreateForm(t *testing.T) {
	scope, bag := parseScope(t, "i32 x = 1;")
	requireNoErrors(t, bag)
	create := scope.Stmts[0].(*ast.CreateStmt)
	if create.Mutable {
		t.Error("mutable = true, want false")
	}
	if create.TyIdent.Ty.Kind != ast.BuiltInType {
		t.Fatalf("type kind = %v, want BuiltInType", create.TyIdent.Ty.Kind)
	}
	if create.TyIdent.Ty.String() != "i32" {
		t.Errorf("type = %s, want i32", create.TyIdent.Ty.String())
	}
}

func TestParseFullCreateFormNoInitializer(t *testing.T) {
	scope, bag := parseScope(t, "i32 x;")
	requireNoErrors(t, bag)
	create := scope.Stmts[0].(*ast.CreateStmt)
	if create.Value != nil {
		t.Errorf("value = %v, want nil", create.Value)
	}
}

// TestParseMutDisambiguation is the reason the parser carries a
// 3-token lookahead: `mut x = 1` (sugar) and `mut i32 x = 1` (full
// form) both start `mut IDENT`, and only the token after that second
// identifier tells them apart.
func TestParseMutDisambiguation(t *testing.T) {
	scope, bag := parseScope(t, "mut i32 x = 1;")
	requireNoErrors(t, bag)
	create := scope.Stmts[0].(*ast.CreateStmt)
	if !create.Mutable {
		t.Error("mutable = false, want true")
	}
	if create.TyIdent.Ty.Kind != ast.BuiltInType {
		t.Fatalf("type kind = %v, want BuiltInType (full form)", create.TyIdent.Ty.Kind)
	}
	if create.TyIdent.Ident.Name != "x" {
		t.Errorf("ident = %q, want x", create.TyIdent.Ident.Name)
	}
}

func TestParseSetStmt(t *testing.T) {
	scope, bag := parseScope(t, "x = 2;")
	requireNoErrors(t, bag)
	set := scope.Stmts[0].(*ast.SetStmt)
	if set.ID.Name != "x" {
		t.Errorf("id = %q, want x", set.ID.Name)
	}
	if _, ok := set.Value.(*ast.NumberLiteral); !ok {
		t.Errorf("value = %T, want *ast.NumberLiteral", set.Value)
	}
}

// TestParseCompoundAssignDesugars checks `x += 1` desugars to
// `x = x + 1`, per spec.md §4.1.
func TestParseCompoundAssignDesugars(t *testing.T) {
	scope, bag := parseScope(t, "x += 1;")
	requireNoErrors(t, bag)
	set := scope.Stmts[0].(*ast.SetStmt)
	bin, ok := set.Value.(*ast.BinaryOp)
	if !ok {
		t.Fatalf("value = %T, want *ast.BinaryOp", set.Value)
	}
	if bin.Op != "+" {
		t.Errorf("op = %q, want +", bin.Op)
	}
	lhs, ok := bin.LHS.(*ast.IdentExpr)
	if !ok || lhs.Ident.Name != "x" {
		t.Errorf("lhs = %+v, want ident x", bin.LHS)
	}
}

// TestParseBareCallStmt is spec.md §8 scenario 6: a call used as a
// statement, with no assignment target, must parse clean so the
// hoister can resolve the forward reference.
func TestParseBareCallStmt(t *testing.T) {
	scope, bag := parseScope(t, "func main() { foo(); } func foo() {}")
	requireNoErrors(t, bag)
	if len(scope.Stmts) != 2 {
		t.Fatalf("got %d top-level statements, want 2", len(scope.Stmts))
	}
	main := scope.Stmts[0].(*ast.FuncStmt)
	if len(main.Body.Stmts) != 1 {
		t.Fatalf("got %d body statements, want 1", len(main.Body.Stmts))
	}
	exprStmt, ok := main.Body.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprStmt", main.Body.Stmts[0])
	}
	call, ok := exprStmt.Value.(*ast.CallExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.CallExpr", exprStmt.Value)
	}
	callee, ok := call.Callee.(*ast.IdentExpr)
	if !ok || callee.Ident.Name != "foo" {
		t.Errorf("callee = %+v, want ident foo", call.Callee)
	}
}

func TestParseFuncBlockBody(t *testing.T) {
	scope, bag := parseScope(t, "func main() -> i32 { let x = 1; return x; }")
	requireNoErrors(t, bag)
	fn := scope.Stmts[0].(*ast.FuncStmt)
	if fn.ID.Name != "main" {
		t.Errorf("id = %q, want main", fn.ID.Name)
	}
	if fn.Signature.ReturnTy.Kind != ast.BuiltInType || fn.Signature.ReturnTy.String() != "i32" {
		t.Errorf("return type = %s, want i32", fn.Signature.ReturnTy.String())
	}
	if fn.Body == nil || len(fn.Body.Stmts) != 2 {
		t.Fatalf("body = %+v, want 2 statements", fn.Body)
	}
	ret, ok := fn.Body.Stmts[1].(*ast.ReturnStmt)
	if !ok || ret.IsYield {
		t.Errorf("got %+v, want non-yielding return", fn.Body.Stmts[1])
	}
}

// TestParseFuncArrowBody checks the `=> expr ;` desugars to a scope
// containing one non-yielding return.
func TestParseFuncArrowBody(t *testing.T) {
	scope, bag := parseScope(t, "func id<T>(T x) -> T => x;")
	requireNoErrors(t, bag)
	fn := scope.Stmts[0].(*ast.FuncStmt)
	if len(fn.Signature.Generics) != 1 || fn.Signature.Generics[0].Name != "T" {
		t.Fatalf("generics = %+v, want [T]", fn.Signature.Generics)
	}
	if len(fn.Signature.Args) != 1 || fn.Signature.Args[0].Ident.Name != "x" {
		t.Fatalf("args = %+v, want [T x]", fn.Signature.Args)
	}
	if fn.Body == nil || len(fn.Body.Stmts) != 1 {
		t.Fatalf("body = %+v, want exactly one desugared return", fn.Body)
	}
	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ReturnStmt", fn.Body.Stmts[0])
	}
	if ret.IsYield {
		t.Error("arrow-desugared return must not be a yield")
	}
	ident, ok := ret.Value.(*ast.IdentExpr)
	if !ok || ident.Ident.Name != "x" {
		t.Errorf("return value = %+v, want ident x", ret.Value)
	}
}

func TestParseExternFuncDeclaration(t *testing.T) {
	scope, bag := parseScope(t, "extern func printf(i32 fmt) -> void;")
	requireNoErrors(t, bag)
	fn := scope.Stmts[0].(*ast.FuncStmt)
	if fn.Signature.Linkage != ast.ExternalLinkage {
		t.Errorf("linkage = %v, want ExternalLinkage", fn.Signature.Linkage)
	}
	if fn.Body != nil {
		t.Errorf("body = %+v, want nil for extern declaration", fn.Body)
	}
	if fn.Signature.ReturnTy.String() != "void" {
		t.Errorf("return type = %s, want void", fn.Signature.ReturnTy.String())
	}
}

func TestParseFuncAttribs(t *testing.T) {
	scope, bag := parseScope(t, "func add<T>(T a, T b) pure => a + b;")
	requireNoErrors(t, bag)
	fn := scope.Stmts[0].(*ast.FuncStmt)
	if !fn.Signature.Attribs.Pure {
		t.Error("Pure = false, want true")
	}
	if fn.Signature.Attribs.Unsafe {
		t.Error("Unsafe = true, want false")
	}
	if len(fn.Signature.Args) != 2 {
		t.Fatalf("args = %+v, want 2", fn.Signature.Args)
	}
}

func TestParseDuplicateAttribute(t *testing.T) {
	_, bag := parseScope(t, "func f() pure pure {}")
	found := false
	for _, d := range bag.All() {
		if d.Title == "duplicate attribute" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a duplicate attribute diagnostic, got %v", bag.All())
	}
}

func TestParseQualifiedType(t *testing.T) {
	scope, bag := parseScope(t, "foo.Bar x;")
	requireNoErrors(t, bag)
	create := scope.Stmts[0].(*ast.CreateStmt)
	if create.TyIdent.Ty.Kind != ast.UserType {
		t.Fatalf("type kind = %v, want UserType", create.TyIdent.Ty.Kind)
	}
	if create.TyIdent.Ty.User.Kind != ast.Qualified {
		t.Fatalf("ident kind = %v, want Qualified", create.TyIdent.Ty.User.Kind)
	}
	if create.TyIdent.Ty.User.String() != "foo::Bar" {
		t.Errorf("qualified ident = %s, want foo::Bar", create.TyIdent.Ty.User.String())
	}
}

func TestParseGenericType(t *testing.T) {
	scope, bag := parseScope(t, "List<i32> xs;")
	requireNoErrors(t, bag)
	create := scope.Stmts[0].(*ast.CreateStmt)
	ty := create.TyIdent.Ty
	if ty.Kind != ast.GenericType {
		t.Fatalf("type kind = %v, want GenericType", ty.Kind)
	}
	if ty.GenericBase.User.Name != "List" {
		t.Errorf("base = %+v, want List", ty.GenericBase)
	}
	if len(ty.GenericArgs) != 1 || ty.GenericArgs[0].String() != "i32" {
		t.Errorf("args = %+v, want [i32]", ty.GenericArgs)
	}
}

func TestParseGenericCallExpression(t *testing.T) {
	scope, bag := parseScope(t, "id<i32>(1);")
	requireNoErrors(t, bag)
	exprStmt := scope.Stmts[0].(*ast.ExprStmt)
	call := exprStmt.Value.(*ast.CallExpr)
	if !call.HasGenerics {
		t.Error("HasGenerics = false, want true")
	}
	if len(call.Generics) != 1 || call.Generics[0].String() != "i32" {
		t.Errorf("generics = %+v, want [i32]", call.Generics)
	}
	if len(call.Args) != 1 {
		t.Errorf("args = %+v, want 1 argument", call.Args)
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	scope, bag := parseScope(t, "x = 1 + 2 * 3;")
	requireNoErrors(t, bag)
	set := scope.Stmts[0].(*ast.SetStmt)
	top, ok := set.Value.(*ast.BinaryOp)
	if !ok || top.Op != "+" {
		t.Fatalf("top = %+v, want + at the root", set.Value)
	}
	rhs, ok := top.RHS.(*ast.BinaryOp)
	if !ok || rhs.Op != "*" {
		t.Fatalf("rhs = %+v, want * nested under +", top.RHS)
	}
}

func TestParseUnaryMinus(t *testing.T) {
	scope, bag := parseScope(t, "x = -1;")
	requireNoErrors(t, bag)
	set := scope.Stmts[0].(*ast.SetStmt)
	un, ok := set.Value.(*ast.UnaryOp)
	if !ok || un.Op != "-" {
		t.Fatalf("value = %+v, want unary -", set.Value)
	}
}

func TestParseScopeExpression(t *testing.T) {
	scope, bag := parseScope(t, "mut x = { yield 1; };")
	requireNoErrors(t, bag)
	create := scope.Stmts[0].(*ast.CreateStmt)
	scExpr, ok := create.Value.(*ast.ScopeExpr)
	if !ok {
		t.Fatalf("value = %T, want *ast.ScopeExpr", create.Value)
	}
	ret, ok := scExpr.Scope.Stmts[0].(*ast.ReturnStmt)
	if !ok || !ret.IsYield {
		t.Errorf("got %+v, want a yielding return", scExpr.Scope.Stmts[0])
	}
}

// TestParseDiscardDisallowedPositions checks all three binding
// positions where `_` is rejected: the full-create target, the set
// target, and the function name.
func TestParseDiscardDisallowedPositions(t *testing.T) {
	cases := []string{
		"i32 _ = 1;",
		"_ = 1;",
		"func _() {}",
	}
	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			_, bag := parseScope(t, input)
			found := false
			for _, d := range bag.All() {
				if d.Title == "discarded ident used where disallowed" {
					found = true
				}
			}
			if !found {
				t.Errorf("expected a discarded-ident diagnostic for %q, got %v", input, bag.All())
			}
		})
	}
}

// TestParseDiscardAllowedAsArgument checks `_` is legal as a function
// argument placeholder, the one binding position that permits it.
func TestParseDiscardAllowedAsArgument(t *testing.T) {
	_, bag := parseScope(t, "func f(i32 _) {}")
	requireNoErrors(t, bag)
}

func TestParseTopLevelCaseScenario(t *testing.T) {
	scope, bag := parseScope(t, "let X = 3;")
	requireNoErrors(t, bag)
	if len(scope.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(scope.Stmts))
	}
}
