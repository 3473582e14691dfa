// Package ast defines the span-carrying recursive syntax tree nyx's
// parser produces and every later stage (checker, hoister, resolver,
// infer) progressively enriches in place. Structurally it follows the
// teacher's ast package (btouchard-gmx/internal/compiler/ast): plain
// structs implementing small marker interfaces, each carrying its own
// source position — upgraded here from a single Line int to a full
// span.Span per spec.md §3.
package ast

import "strings"

// Kind distinguishes the four variants of an Ident.
type Kind int

const (
	// Named is a plain source name: foo, Bar, T.
	Named Kind = iota
	// Qualified is a namespaced name (parsed, never resolved in this
	// front-end — see spec.md §3 and SPEC_FULL.md for why it stays inert).
	Qualified
	// Discarded is the wildcard `_`.
	Discarded
	// Resolved is a process-unique symbol id assigned by the resolver.
	Resolved
)

// Ident is the four-variant sum type described in spec.md §3. Name
// equality is structural; a Discarded ident equals only another
// Discarded ident.
type Ident struct {
	Kind  Kind
	Name  string  // set when Kind == Named
	Parts []Ident // set when Kind == Qualified
	ID    int     // set when Kind == Resolved
}

// DiscardedIdent is the shared value for the `_` wildcard.
var DiscardedIdent = Ident{Kind: Discarded}

func NewNamed(name string) Ident       { return Ident{Kind: Named, Name: name} }
func NewQualified(parts []Ident) Ident { return Ident{Kind: Qualified, Parts: parts} }
func NewResolved(id int) Ident         { return Ident{Kind: Resolved, ID: id} }

func (i Ident) IsDiscarded() bool { return i.Kind == Discarded }
func (i Ident) IsResolved() bool  { return i.Kind == Resolved }

// MustID returns the resolved symbol id, panicking if the ident was
// never resolved — mirrors the original's Ident::id(), which is only
// ever called on idents the resolver has already rewritten.
func (i Ident) MustID() int {
	if i.Kind != Resolved {
		panic("ast: tried to get id of an unresolved ident")
	}
	return i.ID
}

// Equal implements the spec's structural-equality rule for idents.
func (i Ident) Equal(other Ident) bool {
	if i.Kind != other.Kind {
		return false
	}
	switch i.Kind {
	case Named:
		return i.Name == other.Name
	case Resolved:
		return i.ID == other.ID
	case Discarded:
		return true
	case Qualified:
		if len(i.Parts) != len(other.Parts) {
			return false
		}
		for k := range i.Parts {
			if !i.Parts[k].Equal(other.Parts[k]) {
				return false
			}
		}
		return true
	}
	return false
}

func (i Ident) String() string {
	switch i.Kind {
	case Named:
		return i.Name
	case Discarded:
		return "_"
	case Resolved:
		return "@" + itoa(i.ID)
	case Qualified:
		parts := make([]string, len(i.Parts))
		for k, p := range i.Parts {
			parts[k] = p.String()
		}
		return strings.Join(parts, "::")
	}
	return "<invalid ident>"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
