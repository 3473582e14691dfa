package ast

import "fmt"

// TypeKind distinguishes the four variants of a Type.
type TypeKind int

const (
	UserType TypeKind = iota
	BuiltInType
	GenericType
	InferredType
)

// Type is the spec's Type sum: a user-named type, a built-in primitive,
// a generic instantiation, or a placeholder awaiting inference.
type Type struct {
	Kind TypeKind

	User Ident // UserType

	BuiltIn BuiltIn // BuiltInType

	GenericBase *Type  // GenericType: the base being instantiated
	GenericArgs []Type // GenericType: its type arguments
}

func NewUserType(id Ident) Type    { return Type{Kind: UserType, User: id} }
func NewBuiltInType(b BuiltIn) Type { return Type{Kind: BuiltInType, BuiltIn: b} }
func NewInferredType() Type        { return Type{Kind: InferredType} }
func NewGenericType(base Type, args []Type) Type {
	return Type{Kind: GenericType, GenericBase: &base, GenericArgs: args}
}

func (t Type) String() string {
	switch t.Kind {
	case UserType:
		return t.User.String()
	case BuiltInType:
		return t.BuiltIn.String()
	case InferredType:
		return "<inferred>"
	case GenericType:
		return fmt.Sprintf("%s<...>", t.GenericBase.String())
	}
	return "<invalid type>"
}

// BuiltInKind distinguishes the three primitive families.
type BuiltInKind int

const (
	IntegerBuiltIn BuiltInKind = iota
	FloatBuiltIn
	VoidBuiltIn
)

// BuiltIn mirrors common/type.rs's BuiltIn enum: integers carry an
// optional bit width (nil means pointer-width, the `z` suffix) and a
// signedness flag; floats carry a fixed width; void carries nothing.
type BuiltIn struct {
	Kind BuiltInKind

	// Bits is nil for pointer-width integers (iz/uz), otherwise the bit
	// width requested by the iN/uN suffix.
	Bits   *int
	Signed bool

	FloatBits int // 16, 32, 64, or 128
}

func NewIntegerBuiltIn(bits *int, signed bool) BuiltIn {
	return BuiltIn{Kind: IntegerBuiltIn, Bits: bits, Signed: signed}
}

func NewFloatBuiltIn(bits int) BuiltIn {
	return BuiltIn{Kind: FloatBuiltIn, FloatBits: bits}
}

func NewVoidBuiltIn() BuiltIn { return BuiltIn{Kind: VoidBuiltIn} }

// Valid reports whether the built-in's width is one this front-end
// accepts: integer widths are any 0 < bits < 2^23 (or pointer-width),
// float widths must be exactly one of 16/32/64/128.
func (b BuiltIn) Valid() bool {
	switch b.Kind {
	case IntegerBuiltIn:
		if b.Bits == nil {
			return true
		}
		return *b.Bits > 0 && *b.Bits < (1<<23)
	case FloatBuiltIn:
		switch b.FloatBits {
		case 16, 32, 64, 128:
			return true
		}
		return false
	case VoidBuiltIn:
		return true
	}
	return false
}

// Width returns the bit width, or nil for pointer-width integers.
func (b BuiltIn) Width() *int {
	switch b.Kind {
	case IntegerBuiltIn:
		return b.Bits
	case FloatBuiltIn:
		bits := b.FloatBits
		return &bits
	}
	return nil
}

func (b BuiltIn) Equal(other BuiltIn) bool {
	if b.Kind != other.Kind {
		return false
	}
	switch b.Kind {
	case IntegerBuiltIn:
		if b.Signed != other.Signed {
			return false
		}
		if (b.Bits == nil) != (other.Bits == nil) {
			return false
		}
		return b.Bits == nil || *b.Bits == *other.Bits
	case FloatBuiltIn:
		return b.FloatBits == other.FloatBits
	case VoidBuiltIn:
		return true
	}
	return false
}

func (b BuiltIn) String() string {
	switch b.Kind {
	case VoidBuiltIn:
		return "void"
	case FloatBuiltIn:
		return fmt.Sprintf("f%d", b.FloatBits)
	case IntegerBuiltIn:
		prefix := "i"
		if !b.Signed {
			prefix = "u"
		}
		if b.Bits == nil {
			return prefix + "z"
		}
		if *b.Bits == 1 && !b.Signed {
			return "bool"
		}
		return fmt.Sprintf("%s%d", prefix, *b.Bits)
	}
	return "<invalid builtin>"
}

// BuiltInFromName parses the `common/type.rs` BuiltIn::from_name table,
// adjusted to the spec's `z` pointer-width suffix (iz/uz) rather than
// the original's `size` word (isize/usize). Recognizes: void, bool,
// i<N>, u<N>, f<N>, iz, uz.
func BuiltInFromName(name string) (BuiltIn, bool) {
	switch name {
	case "void":
		return NewVoidBuiltIn(), true
	case "bool":
		one := 1
		return NewIntegerBuiltIn(&one, false), true
	case "iz":
		return NewIntegerBuiltIn(nil, true), true
	case "uz":
		return NewIntegerBuiltIn(nil, false), true
	}
	if len(name) < 2 {
		return BuiltIn{}, false
	}
	prefix, rest := name[:1], name[1:]
	switch prefix {
	case "i", "u":
		bits, ok := parseUint(rest)
		if !ok {
			return BuiltIn{}, false
		}
		return NewIntegerBuiltIn(&bits, prefix == "i"), true
	case "f":
		bits, ok := parseUint(rest)
		if !ok {
			return BuiltIn{}, false
		}
		return NewFloatBuiltIn(bits), true
	}
	return BuiltIn{}, false
}

func parseUint(s string) (int, bool) {
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
