// Package infer implements the type-inference stage (spec.md §4.5): a
// union-find-style engine over TypeInfo slots, plus a walk over a
// resolved scope that registers, unifies and reports. Grounded on the
// original's infer/engine.rs, infer/type_info.rs and infer.rs, with
// its lazy_static Mutex<Engine> replaced by an explicit Engine value
// the caller owns, and its richer spec.md §4.5 unification table
// (Void-vs-anything, BuiltIn-vs-BuiltIn, Number-vs-BuiltIn coercion)
// implemented literally — the original's unify_inner is a strict
// subset of this table (only SameAs/Bottom/Unknown/equality), which
// spec.md's documented contract supersedes; see DESIGN.md.
package infer

import (
	"fmt"
	"strings"

	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/diag"
	"github.com/nyxlang/nyxc/internal/span"
)

// TypeID indexes one slot in an Engine's unification table. Zero is
// never allocated (AddTy starts counting at 1), so a zero TypeID is
// always a programmer error, not a sentinel — failed inference is
// represented by a Bottom-kind Info, not by TypeID 0.
type TypeID int

// Kind selects which TypeInfo variant an Info value represents.
type Kind int

const (
	KUnknown Kind = iota
	KSameAs
	KBuiltIn
	KNumber
	KFuncSignature
	KGeneric
	KUnknownGeneric
	KBottom
)

// Info is the Go rendering of the original's TypeInfo enum: one
// struct tagged by Kind, since Go has no algebraic sum types.
type Info struct {
	Kind Kind

	SameAs TypeID

	BuiltIn ast.BuiltIn

	// Number is nil for a bare, wholly unsuffixed literal ("num");
	// non-nil records a stated family with no concrete width.
	Number *NumberSuffix

	FuncReturnTy TypeID
	FuncArgs     []TypeID
	FuncGenerics []TypeID

	// GenericID identifies a Generic/UnknownGeneric binding site.
	GenericID int
}

func UnknownTy() Info                { return Info{Kind: KUnknown} }
func SameAsTy(id TypeID) Info        { return Info{Kind: KSameAs, SameAs: id} }
func BuiltInTy(b ast.BuiltIn) Info   { return Info{Kind: KBuiltIn, BuiltIn: b} }
func NumberTy(s *NumberSuffix) Info  { return Info{Kind: KNumber, Number: s} }
func GenericTy(id int) Info          { return Info{Kind: KGeneric, GenericID: id} }
func UnknownGenericTy(id int) Info   { return Info{Kind: KUnknownGeneric, GenericID: id} }
func BottomTy() Info                 { return Info{Kind: KBottom} }
func FuncSignatureTy(returnTy TypeID, args, generics []TypeID) Info {
	return Info{Kind: KFuncSignature, FuncReturnTy: returnTy, FuncArgs: args, FuncGenerics: generics}
}

func (i Info) isVoid() bool {
	return i.Kind == KBuiltIn && i.BuiltIn.Kind == ast.VoidBuiltIn
}

// equal is the original's PartialEq derive: structural equality, not
// unification — used only as unify_inner's first, fast-path check.
func (i Info) equal(other Info) bool {
	if i.Kind != other.Kind {
		return false
	}
	switch i.Kind {
	case KSameAs:
		return i.SameAs == other.SameAs
	case KBuiltIn:
		return i.BuiltIn.Equal(other.BuiltIn)
	case KNumber:
		if (i.Number == nil) != (other.Number == nil) {
			return false
		}
		return i.Number == nil || i.Number.Equal(*other.Number)
	case KGeneric, KUnknownGeneric:
		return i.GenericID == other.GenericID
	case KFuncSignature:
		return false
	default: // Unknown, Bottom
		return true
	}
}

// Engine is the unification table: AddTy allocates a fresh slot, Unify
// merges two slots per spec.md §4.5's ordered table, appending a
// diagnostic and collapsing to Bottom on failure.
type Engine struct {
	diags   *diag.Bag
	counter TypeID
	tys     map[TypeID]Info
}

func NewEngine(diags *diag.Bag) *Engine {
	return &Engine{diags: diags, tys: make(map[TypeID]Info)}
}

func (e *Engine) AddTy(info Info) TypeID {
	e.counter++
	e.tys[e.counter] = info
	return e.counter
}

// Get returns the raw, possibly-SameAs Info stored at id.
func (e *Engine) Get(id TypeID) Info { return e.tys[id] }

// Resolve follows a chain of SameAs links to the first non-SameAs
// Info, the way a caller that wants "the actual type" rather than a
// union-find pointer needs to.
func (e *Engine) Resolve(id TypeID) Info {
	seen := map[TypeID]bool{}
	for {
		info := e.tys[id]
		if info.Kind != KSameAs || seen[id] {
			return info
		}
		seen[id] = true
		id = info.SameAs
	}
}

// Display pretty-prints the type at id, following SameAs links and
// recursing into FuncSignature's component types.
func (e *Engine) Display(id TypeID) string {
	return e.display(id, map[TypeID]bool{})
}

func (e *Engine) display(id TypeID, seen map[TypeID]bool) string {
	if seen[id] {
		return fmt.Sprintf("@%d", id)
	}
	seen[id] = true
	info := e.tys[id]
	switch info.Kind {
	case KUnknown:
		return "?"
	case KSameAs:
		return e.display(info.SameAs, seen)
	case KBuiltIn:
		return info.BuiltIn.String()
	case KNumber:
		if info.Number == nil {
			return "num"
		}
		return info.Number.String()
	case KFuncSignature:
		generics := make([]string, len(info.FuncGenerics))
		for i, g := range info.FuncGenerics {
			generics[i] = e.display(g, seen)
		}
		args := make([]string, len(info.FuncArgs))
		for i, a := range info.FuncArgs {
			args[i] = e.display(a, seen)
		}
		genPart := ""
		if len(generics) > 0 {
			genPart = "<" + strings.Join(generics, ", ") + ">"
		}
		return fmt.Sprintf("%s(%s) -> %s", genPart, strings.Join(args, ", "), e.display(info.FuncReturnTy, seen))
	case KGeneric:
		return fmt.Sprintf("[generic @%d]", info.GenericID)
	case KUnknownGeneric:
		return fmt.Sprintf("[unresolved generic @%d]", info.GenericID)
	case KBottom:
		return "[!]"
	}
	return "<invalid type>"
}

// Dump renders every slot in the engine, sorted by id, for debugging —
// the Go rendering of engine.rs's Engine::dump (println! there,
// returned as lines here so a CLI caller decides where they go).
func (e *Engine) Dump() []string {
	ids := make([]int, 0, len(e.tys))
	for id := range e.tys {
		ids = append(ids, int(id))
	}
	sortInts(ids)
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, fmt.Sprintf("@%d -> %s", id, e.display(TypeID(id), map[TypeID]bool{})))
	}
	return lines
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

type mismatch struct {
	message  string
	aDisplay string
	bDisplay string
}

func numberMatchesBuiltIn(n *NumberSuffix, b ast.BuiltIn) bool {
	if n == nil {
		return b.Kind == ast.IntegerBuiltIn || b.Kind == ast.FloatBuiltIn
	}
	if n.IsFloat {
		return b.Kind == ast.FloatBuiltIn
	}
	return b.Kind == ast.IntegerBuiltIn && b.Signed == n.Signed
}

// unifyInner implements spec.md §4.5's unification table, first-match-
// wins, checking both operand orders where the table isn't already
// symmetric.
func (e *Engine) unifyInner(a, b span.Spanned[TypeID]) *mismatch {
	ia, ib := e.tys[a.Value], e.tys[b.Value]

	if ia.equal(ib) {
		return nil
	}
	if ia.Kind == KSameAs {
		return e.unifyInner(span.At(a.Span, ia.SameAs), b)
	}
	if ib.Kind == KSameAs {
		return e.unifyInner(a, span.At(b.Span, ib.SameAs))
	}
	if ia.Kind == KBottom || ib.Kind == KBottom {
		return nil
	}
	if ia.Kind == KUnknown {
		e.tys[a.Value] = SameAsTy(b.Value)
		return nil
	}
	if ib.Kind == KUnknown {
		e.tys[b.Value] = SameAsTy(a.Value)
		return nil
	}

	aVoid, bVoid := ia.isVoid(), ib.isVoid()
	if aVoid || bVoid {
		if aVoid && bVoid {
			return nil
		}
		nonVoid, nonVoidDisplay := a, e.display(a.Value, map[TypeID]bool{})
		if aVoid {
			nonVoid, nonVoidDisplay = b, e.display(b.Value, map[TypeID]bool{})
		}
		_ = nonVoid
		return &mismatch{
			message:  fmt.Sprintf("%s is a non-void type", nonVoidDisplay),
			aDisplay: e.display(a.Value, map[TypeID]bool{}),
			bDisplay: e.display(b.Value, map[TypeID]bool{}),
		}
	}

	if ia.Kind == KBuiltIn && ib.Kind == KBuiltIn {
		if ia.BuiltIn.Equal(ib.BuiltIn) {
			return nil
		}
		return e.castMismatch(a, b)
	}
	if ia.Kind == KNumber && ib.Kind == KBuiltIn {
		if numberMatchesBuiltIn(ia.Number, ib.BuiltIn) {
			e.tys[a.Value] = SameAsTy(b.Value)
			return nil
		}
		return e.castMismatch(a, b)
	}
	if ib.Kind == KNumber && ia.Kind == KBuiltIn {
		if numberMatchesBuiltIn(ib.Number, ia.BuiltIn) {
			e.tys[b.Value] = SameAsTy(a.Value)
			return nil
		}
		return e.castMismatch(a, b)
	}

	aDisp, bDisp := e.display(a.Value, map[TypeID]bool{}), e.display(b.Value, map[TypeID]bool{})
	return &mismatch{
		message:  fmt.Sprintf("could not unify %s and %s", aDisp, bDisp),
		aDisplay: aDisp,
		bDisplay: bDisp,
	}
}

func (e *Engine) castMismatch(a, b span.Spanned[TypeID]) *mismatch {
	aDisp, bDisp := e.display(a.Value, map[TypeID]bool{}), e.display(b.Value, map[TypeID]bool{})
	return &mismatch{
		message:  fmt.Sprintf("disallowed implicit cast between numeric types %s and %s", aDisp, bDisp),
		aDisplay: aDisp,
		bDisplay: bDisp,
	}
}

// Unify merges a and b, reporting a generic "type conflict" diagnostic
// on failure.
func (e *Engine) Unify(a, b span.Spanned[TypeID]) Info {
	return e.UnifyCustomError(a, b, "type conflict", nil)
}

// UnifyCustomError merges a and b; on failure it appends title/notes
// plus the underlying mismatch message to the diagnostic, with a
// primary label on each operand's span, then returns Bottom. On
// success it returns the (possibly now-linked) Info at a.
func (e *Engine) UnifyCustomError(a, b span.Spanned[TypeID], title string, notes []string) Info {
	mm := e.unifyInner(a, b)
	if mm == nil {
		return e.tys[a.Value]
	}
	allNotes := append(append([]string{}, notes...), mm.message)
	e.diags.Add(diag.Diagnostic{
		Severity: diag.Error,
		Title:    title,
		Labels: []diag.Label{
			{Span: a.Span, Message: fmt.Sprintf("(%s)", mm.aDisplay)},
			{Span: b.Span, Message: fmt.Sprintf("(%s)", mm.bDisplay)},
		},
		Notes: allNotes,
	})
	return BottomTy()
}
