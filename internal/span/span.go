// Package span provides the source-location primitives threaded through
// every stage of the nyx compiler front-end: a byte-range Span and the
// generic Spanned[T] wrapper that every AST node is built from.
package span

import "fmt"

// Span identifies a byte range within a single source file.
type Span struct {
	FileID int
	Start  int
	End    int
}

// New builds a Span over [start, end) in the given file.
func New(fileID, start, end int) Span {
	return Span{FileID: fileID, Start: start, End: end}
}

// Add composes two spans from the same file by taking the minimum of
// their starts and the maximum of their ends. Composing spans from
// different files panics: derived spans should never cross a file
// boundary.
func (s Span) Add(other Span) Span {
	if s.FileID != other.FileID {
		panic(fmt.Sprintf("span: cannot compose spans from different files (%d vs %d)", s.FileID, other.FileID))
	}
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Span{FileID: s.FileID, Start: start, End: end}
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Spanned pairs a value with the span of source text it was parsed from.
type Spanned[T any] struct {
	Span  Span
	Value T
}

// At wraps a value with a span.
func At[T any](sp Span, v T) Spanned[T] {
	return Spanned[T]{Span: sp, Value: v}
}

// Map transforms the wrapped value, preserving the span.
func Map[T, U any](s Spanned[T], f func(T) U) Spanned[U] {
	return Spanned[U]{Span: s.Span, Value: f(s.Value)}
}
