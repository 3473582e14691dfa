// Package diag is the compiler's diagnostic model: a severity-tagged
// message with labeled source spans and free-form notes. Shape follows
// the teacher's errors package (btouchard-gmx/internal/compiler/errors:
// CompileError + ErrorList), generalized per spec.md §4.6/§7 with the
// label/notes structure the original's codespan-reporting-backed
// diagnostics.rs builds (see common/diagnostics.rs), minus the
// process-wide global: diagnostics here are collected in a Bag owned
// by the caller (pipeline.Run creates one per run), per spec.md's DESIGN NOTES
// recommendation to carry what had been process-wide state explicitly.
package diag

import (
	"fmt"
	"strings"

	"github.com/nyxlang/nyxc/internal/span"
)

// Severity distinguishes fatal diagnostics from advisory ones.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Label attaches a message to a specific span within a diagnostic,
// e.g. "used as a variable" pointing at the use-site.
type Label struct {
	Span    span.Span
	Message string
}

// Diagnostic is one compiler-reported problem: a severity, a short
// title, zero or more labeled spans, and free-form notes.
type Diagnostic struct {
	Severity Severity
	Title    string
	Labels   []Label
	Notes    []string
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", d.Severity, d.Title)
	for _, l := range d.Labels {
		fmt.Fprintf(&b, "\n  at %s: %s", l.Span, l.Message)
	}
	for _, n := range d.Notes {
		fmt.Fprintf(&b, "\n  note: %s", n)
	}
	return b.String()
}

// Bag is an append-only collection of diagnostics for one compilation.
// It replaces the original's process-wide lazy_static Mutex<Vec<...>>
// with an explicit value threaded through the pipeline, so independent
// compilations (and tests) never share state.
type Bag struct {
	diagnostics []Diagnostic
}

func NewBag() *Bag { return &Bag{} }

func (b *Bag) Add(d Diagnostic) { b.diagnostics = append(b.diagnostics, d) }

func (b *Bag) All() []Diagnostic { return b.diagnostics }

func (b *Bag) Len() int { return len(b.diagnostics) }

func (b *Bag) HasErrors() bool {
	for _, d := range b.diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

func (b *Bag) ErrorCount() int {
	n := 0
	for _, d := range b.diagnostics {
		if d.Severity == Error {
			n++
		}
	}
	return n
}

func (b *Bag) WarningCount() int {
	n := 0
	for _, d := range b.diagnostics {
		if d.Severity == Warning {
			n++
		}
	}
	return n
}

func simple(sev Severity, sp span.Span, title, labelMsg string, notes ...string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Title:    title,
		Labels:   []Label{{Span: sp, Message: labelMsg}},
		Notes:    notes,
	}
}

// TypeMismatch reports a symbol used in a role inconsistent with its
// declared kind, e.g. a variable referenced in type position.
func TypeMismatch(sp span.Span, used, desired string) Diagnostic {
	return simple(Error, sp, "type mismatch", fmt.Sprintf("used %s as %s", used, desired))
}

// NonexistentItem reports a reference to a name not present in any
// enclosing scope.
func NonexistentItem(sp span.Span, name string) Diagnostic {
	return simple(Error, sp, "referenced nonexistent item",
		fmt.Sprintf("%q is not defined in the current scope", name))
}

// DiscardedIdentDisallowed reports the parser rejecting `_` at a
// binding-name position (function name, value-bearing Set target, or
// full-form Create target) where a real name is required.
func DiscardedIdentDisallowed(sp span.Span) Diagnostic {
	return simple(Error, sp, "discarded ident used where disallowed",
		"`_` cannot be used as a binding name here")
}

// DiscardedIdent reports use of `_` where a value is required.
func DiscardedIdent(sp span.Span) Diagnostic {
	return simple(Error, sp, "referenced discarded item where value is required",
		"the operation you are trying to perform requires a value, but you passed in a discarded item")
}

// InvalidStmt reports a statement kind illegal in its enclosing
// context (e.g. a Create statement at top level).
func InvalidStmt(sp span.Span, stmtKind, context string) Diagnostic {
	return simple(Error, sp, fmt.Sprintf("invalid %s statement in %s context", stmtKind, context), "")
}

// InvalidCase reports an identifier spelled in an unexpected case
// convention.
func InvalidCase(sp span.Span, wanted, found string) Diagnostic {
	return simple(Warning, sp, "wrong case system used",
		fmt.Sprintf("expected %s, found %s", wanted, found))
}

// UnexpectedToken reports a parse error where none of the expected
// token kinds were found.
func UnexpectedToken(sp span.Span, expected []string, got string) Diagnostic {
	return simple(Error, sp, "unexpected token",
		fmt.Sprintf("expected one of %s, found %s", strings.Join(expected, ", "), got))
}

// DuplicateAttribute reports a function attribute keyword repeated in
// the same signature (e.g. `pure pure`).
func DuplicateAttribute(sp span.Span, name string) Diagnostic {
	return simple(Error, sp, "duplicate attribute", fmt.Sprintf("attribute %q already given", name))
}

// UnsupportedQualifiedIdent reports a dotted/qualified identifier used
// where this front-end cannot resolve it, per SPEC_FULL.md's
// supplemented feature #5 (parsed, never silently dropped).
func UnsupportedQualifiedIdent(sp span.Span) Diagnostic {
	return simple(Error, sp, "qualified identifiers are not supported",
		"this front-end parses qualified names but cannot resolve them yet")
}
