package checker

import (
	"unicode"

	"github.com/nyxlang/nyxc/internal/diag"
	"github.com/nyxlang/nyxc/internal/span"
)

// Case is the five-way case-convention classification checker/case.rs
// ports: CamelCase is only ever an observed convention, never a wanted
// one; SnakeCamel is wanted under the relaxed snake_or_camel policy.
type Case int

const (
	PascalCase Case = iota
	SnakeCase
	SnakeCamel
	CamelCase
	UpperSnakeCase
)

func (c Case) String() string {
	switch c {
	case PascalCase:
		return "pascal case"
	case SnakeCase:
		return "snake case"
	case SnakeCamel:
		return "snake or camel case"
	case CamelCase:
		return "camel case"
	case UpperSnakeCase:
		return "upper snake case"
	}
	return "<invalid case>"
}

func isUppercase(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && unicode.IsLower(r) {
			return false
		}
	}
	return true
}

func hasUppercase(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func beginsWithUppercase(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func containsUnderscore(s string) bool {
	for _, r := range s {
		if r == '_' {
			return true
		}
	}
	return false
}

// checkCase classifies name against wanted exactly as case.rs's
// check_case does, and appends a diag.InvalidCase warning when the
// classification disagrees with what was wanted.
func checkCase(sp span.Span, name string, wanted Case, diags *diag.Bag) {
	var found Case
	switch wanted {
	case PascalCase:
		switch {
		case containsUnderscore(name):
			if isUppercase(name) {
				found = UpperSnakeCase
			} else {
				found = SnakeCase
			}
		case !beginsWithUppercase(name):
			if hasUppercase(name) {
				found = CamelCase
			} else {
				found = SnakeCamel
			}
		default:
			found = PascalCase
		}
	case SnakeCase, SnakeCamel:
		if hasUppercase(name) {
			switch {
			case containsUnderscore(name) && !isUppercase(name):
				found = SnakeCase
			case containsUnderscore(name):
				found = UpperSnakeCase
			case beginsWithUppercase(name):
				found = PascalCase
			default:
				found = CamelCase
			}
		} else {
			found = SnakeCase
		}
	case UpperSnakeCase:
		switch {
		case isUppercase(name):
			found = UpperSnakeCase
		case containsUnderscore(name):
			found = SnakeCase
		default:
			found = PascalCase
		}
	default:
		return
	}

	// SnakeCamel (the relaxed snake_or_camel convention) accepts both
	// SnakeCase and CamelCase, matching the original's classifier but
	// widening its acceptance set — see DESIGN.md.
	if wanted == SnakeCamel && (found == SnakeCase || found == CamelCase) {
		return
	}
	if found != wanted {
		diags.Add(diag.InvalidCase(sp, wanted.String(), found.String()))
	}
}
