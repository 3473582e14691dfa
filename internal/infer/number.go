package infer

import "github.com/nyxlang/nyxc/internal/ast"

// NumberSuffix records a numeric literal's stated family when its
// suffix carries no concrete width — `i`, `u`, `f`/`p` alone. A
// literal with a concrete width (`i32`, `uz`, `f64`, ...) never reaches
// this type; classifyLiteral converts it straight to an ast.BuiltIn,
// mirroring the original's NumberLiteralType::has_bits() shortcut.
type NumberSuffix struct {
	IsFloat bool
	Signed  bool
}

func (n NumberSuffix) String() string {
	switch {
	case n.IsFloat:
		return "float"
	case n.Signed:
		return "int"
	default:
		return "uint"
	}
}

func (n NumberSuffix) Equal(other NumberSuffix) bool {
	return n.IsFloat == other.IsFloat && n.Signed == other.Signed
}

// classifyLiteral splits a scanned number-literal's text (spec.md §6:
// decimal/0b/0o/0x digits, then an optional i[N|z]/u[N|z]/f[16|32|64|
// 128] suffix, with `p` standing in for `f` on hex literals) into
// either a concrete ast.BuiltIn (width stated) or a bare NumberSuffix
// (family stated, no width) or neither (no suffix at all — a fully
// unconstrained numeric literal).
func classifyLiteral(lit string) (*ast.BuiltIn, *NumberSuffix) {
	hex := len(lit) >= 2 && lit[0] == '0' && (lit[1] == 'x' || lit[1] == 'X')
	floatLetter := byte('f')
	if hex {
		floatLetter = 'p'
	}

	i := 0
	if len(lit) >= 2 && lit[0] == '0' && (lit[1] == 'b' || lit[1] == 'o' || lit[1] == 'x') {
		i = 2
	}
	for i < len(lit) {
		c := lit[i]
		if c == 'i' || c == 'u' || c == floatLetter {
			break
		}
		i++
	}
	suffix := lit[i:]
	if suffix == "" {
		return nil, nil
	}

	switch suffix[0] {
	case 'i', 'u':
		signed := suffix[0] == 'i'
		rest := suffix[1:]
		switch {
		case rest == "":
			return nil, &NumberSuffix{Signed: signed}
		case rest == "z":
			b := ast.NewIntegerBuiltIn(nil, signed)
			return &b, nil
		default:
			if bits, ok := parseDigits(rest); ok {
				b := ast.NewIntegerBuiltIn(&bits, signed)
				return &b, nil
			}
			return nil, &NumberSuffix{Signed: signed}
		}
	default: // floatLetter
		rest := suffix[1:]
		if rest == "" {
			return nil, &NumberSuffix{IsFloat: true}
		}
		if bits, ok := parseDigits(rest); ok {
			b := ast.NewFloatBuiltIn(bits)
			return &b, nil
		}
		return nil, &NumberSuffix{IsFloat: true}
	}
}

func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
