package infer

import (
	"fmt"

	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/diag"
	"github.com/nyxlang/nyxc/internal/span"
)

// sentinelID mirrors the resolver's sentinel: an ident the resolver
// could not make sense of resolves here to Bottom, never to a lookup
// miss.
const sentinelID = 0

// inferrer walks an already-resolved scope, registering every hoisted
// binding's TypeID before its body is touched, then unifying each
// statement's types. Grounded on the original's infer.rs orchestrator:
// ToInfo for Spanned<HoistedScope>/Spanned<HoistedExpr>/Spanned<Signature>,
// with Mappings threaded as a plain field instead of a free function
// argument everywhere.
type inferrer struct {
	engine   *Engine
	mappings *Mappings
}

// Infer runs the inference stage over a resolved, hoisted scope and
// returns the populated Engine, for a caller (the CLI's `check`
// pipeline, or a test) to Dump or query.
func Infer(scope *ast.Scope, diags *diag.Bag) *Engine {
	inf := &inferrer{engine: NewEngine(diags), mappings: NewMappings()}
	inf.inferScope(scope)
	return inf.engine
}

// convertType is the original's ToInfo for Spanned<Type> fused with its
// convert_and_add: it both computes the TypeInfo and allocates its
// TypeID in one step, since nothing here ever needs the intermediate
// Info on its own.
func (inf *inferrer) convertType(ty *ast.Type, sp span.Span) TypeID {
	switch ty.Kind {
	case ast.BuiltInType:
		return inf.engine.AddTy(BuiltInTy(ty.BuiltIn))

	case ast.InferredType:
		return inf.engine.AddTy(UnknownTy())

	case ast.UserType:
		// The only Type::User targets a resolved program ever contains
		// are generic type parameters — this front-end has no separate
		// user-defined type declarations — so a miss here means the
		// resolver already reported the reference and substituted the
		// sentinel; infer reports nothing further and folds to Bottom.
		id := ty.User.MustID()
		if id == sentinelID {
			return inf.engine.AddTy(BottomTy())
		}
		if tid, ok := inf.mappings.getNamedTy(id); ok {
			return inf.engine.AddTy(SameAsTy(tid))
		}
		return inf.engine.AddTy(UnknownTy())

	case ast.GenericType:
		// The original leaves generic type instantiation as an
		// unimplemented todo!(); this front-end parses and resolves it
		// (see internal/resolver) but spec.md defines no distinct
		// instantiated-type representation to unify against, so a
		// generic type converts to its base type, with each argument
		// still converted (for its own nested diagnostics) and discarded.
		base := inf.convertType(ty.GenericBase, sp)
		for i := range ty.GenericArgs {
			inf.convertType(&ty.GenericArgs[i], sp)
		}
		return base
	}
	return inf.engine.AddTy(BottomTy())
}

// convertSignature is the original's ToInfo for Spanned<Signature>:
// generics are registered first (as flexible UnknownGeneric bindings)
// so a following arg or return type naming one of them resolves
// correctly, then args, then the return type.
func (inf *inferrer) convertSignature(sig *ast.Signature, sp span.Span) Info {
	generics := make([]TypeID, 0, len(sig.Generics))
	for _, g := range sig.Generics {
		id := g.MustID()
		tid := inf.engine.AddTy(UnknownGenericTy(id))
		inf.mappings.insertNamedTy(id, tid)
		generics = append(generics, tid)
	}

	args := make([]TypeID, 0, len(sig.Args))
	for i := range sig.Args {
		args = append(args, inf.convertType(&sig.Args[i].Ty, sig.Args[i].Sp))
	}

	returnTy := inf.convertType(&sig.ReturnTy, sp)
	return FuncSignatureTy(returnTy, args, generics)
}

// inferScope is the original's ToInfo for Spanned<HoistedScope>: every
// hoisted var and func gets a TypeID before any statement is walked
// (so forward references and recursive calls see a real signature),
// then the statements are unified in order, and finally each hoisted
// function's own body is processed as its own nested context.
func (inf *inferrer) inferScope(scope *ast.Scope) TypeID {
	if scope.Table != nil {
		for _, name := range scope.Table.VarOrder {
			entry := scope.Table.Vars[name]
			tid := inf.convertType(&entry.Ty, entry.Span)
			inf.mappings.insertVarTy(entry.ID, tid)
		}
		// A function's own declared-symbol id shares the var table with
		// ordinary variables, not the named-type table — matching the
		// original's HoistedScope::to_info, which inserts a function's
		// FuncSignature TypeID via insert_var_ty.
		for _, name := range scope.Table.FuncOrder {
			entry := scope.Table.Funcs[name]
			info := inf.convertSignature(&entry.Signature, entry.Span)
			tid := inf.engine.AddTy(info)
			inf.mappings.insertVarTy(entry.ID, tid)
		}
	}

	resultTy := inf.engine.AddTy(BuiltInTy(ast.NewVoidBuiltIn()))
	hasReturned := false

	for _, stmt := range scope.Stmts {
		if hasReturned {
			inf.engine.diags.Add(diag.Diagnostic{
				Severity: diag.Warning,
				Title:    "unnecessary statement",
				Labels: []diag.Label{{
					Span:    stmt.NodeSpan(),
					Message: "unreachable: control flow has already returned",
				}},
			})
		}

		switch s := stmt.(type) {
		case *ast.CreateStmt:
			var valTy TypeID
			if s.Value != nil {
				valTy = inf.inferExpr(s.Value)
			}
			id := s.TyIdent.Ident.MustID()
			if id != sentinelID && s.Value != nil {
				if declTy, ok := inf.mappings.getVarTy(id); ok {
					inf.engine.Unify(span.At(s.TyIdent.Sp, declTy), span.At(s.Value.NodeSpan(), valTy))
				}
			}

		case *ast.SetStmt:
			var valTy TypeID
			if s.Value != nil {
				valTy = inf.inferExpr(s.Value)
			}
			id := s.ID.MustID()
			if id != sentinelID && s.Value != nil {
				if declTy, ok := inf.mappings.getVarTy(id); ok {
					inf.engine.Unify(span.At(s.Sp, declTy), span.At(s.Value.NodeSpan(), valTy))
				}
			}

		case *ast.ReturnStmt:
			hasReturned = true
			if s.Value != nil {
				resultTy = inf.inferExpr(s.Value)
			} else {
				resultTy = inf.engine.AddTy(BuiltInTy(ast.NewVoidBuiltIn()))
			}

		case *ast.ExprStmt:
			inf.inferExpr(s.Value)
		}
	}

	if scope.Table != nil {
		for _, name := range scope.Table.FuncOrder {
			inf.inferFuncEntry(scope.Table.Funcs[name])
		}
	}

	return resultTy
}

// inferFuncEntry processes one hoisted function's own body: generics
// are re-registered as rigid Generic bindings (overwriting the
// flexible UnknownGeneric the enclosing scope's convertSignature
// registered for the same id — safe since every generic id is globally
// unique, so there is nothing stale to collide with), args become
// concrete bindings, and the body's actual return type is unified
// against the declared one.
func (inf *inferrer) inferFuncEntry(entry *ast.FuncEntry) {
	sig := &entry.Signature

	for _, g := range sig.Generics {
		id := g.MustID()
		tid := inf.engine.AddTy(GenericTy(id))
		inf.mappings.insertNamedTy(id, tid)
	}

	for i := range sig.Args {
		a := &sig.Args[i]
		if a.Ident.IsDiscarded() {
			continue
		}
		tid := inf.convertType(&a.Ty, a.Sp)
		inf.mappings.insertVarTy(a.Ident.MustID(), tid)
	}

	declaredReturnTy := inf.convertType(&sig.ReturnTy, entry.Span)

	if entry.Body == nil {
		return // extern declaration: no body to check
	}

	actualReturnTy := inf.inferScope(entry.Body)

	// Matches spec.md §8 scenario 3's phrasing directly, rather than the
	// generic two-operand mismatch note Unify produces elsewhere: the
	// reader is told what was declared, what was actually returned, and
	// — since a body with no return statement resolves to Void here —
	// that a forgotten return is the likely cause.
	note := fmt.Sprintf("return type was declared to be %s but a value of type %s was returned instead",
		inf.engine.Display(declaredReturnTy), inf.engine.Display(actualReturnTy))
	if inf.engine.Resolve(actualReturnTy).isVoid() {
		note += " (or no return statement exists)"
	}
	inf.engine.UnifyCustomError(
		span.At(entry.Span, declaredReturnTy),
		span.At(entry.Body.NodeSpan(), actualReturnTy),
		"type conflict: incorrect return type",
		[]string{note},
	)
}

// inferExpr is the original's ToInfo for Spanned<HoistedExpr>, with
// convert_and_add folded in.
func (inf *inferrer) inferExpr(expr ast.Expr) TypeID {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		b, suffix := classifyLiteral(e.Literal)
		if b != nil {
			return inf.engine.AddTy(BuiltInTy(*b))
		}
		return inf.engine.AddTy(NumberTy(suffix))

	case *ast.IdentExpr:
		id := e.Ident.MustID()
		if id == sentinelID {
			return inf.engine.AddTy(BottomTy())
		}
		if tid, ok := inf.mappings.getVarTy(id); ok {
			return inf.engine.AddTy(SameAsTy(tid))
		}
		return inf.engine.AddTy(UnknownTy())

	case *ast.BinaryOp:
		lhsTy := inf.inferExpr(e.LHS)
		rhsTy := inf.inferExpr(e.RHS)
		result := inf.engine.Unify(span.At(e.LHS.NodeSpan(), lhsTy), span.At(e.RHS.NodeSpan(), rhsTy))
		return inf.engine.AddTy(result)

	case *ast.UnaryOp:
		return inf.inferExpr(e.Operand)

	case *ast.ScopeExpr:
		return inf.inferScope(e.Scope)

	case *ast.CallExpr:
		return inf.inferCall(e)
	}
	return inf.engine.AddTy(UnknownTy())
}

// inferCall always yields Unknown, exactly as the original's Call arm
// does (infer.rs, with a TODO noting call-site type inference is
// unimplemented) — spec.md's Open Question resolution keeps this a
// deliberate, revisitable gap rather than completing it, unlike the
// other under-implemented corners of the original this port does
// complete (see DESIGN.md). Each argument is still walked so any
// literal/sub-expression it contains gets its own TypeID and
// diagnostics, even though the call itself doesn't check them against
// the callee's signature.
func (inf *inferrer) inferCall(e *ast.CallExpr) TypeID {
	for _, arg := range e.Args {
		inf.inferExpr(arg)
	}
	return inf.engine.AddTy(UnknownTy())
}
