package catalog

import "github.com/fhelab/overloadgen/internal/ir"

// Catalog bundles the operator and type descriptors for one generation
// run.
type Catalog struct {
	Operators []ir.OperatorDescriptor
	Types     []ir.TypeDescriptor
}

// allOperatorNames lists every operator in the default catalog, in
// declaration order. The small and mid widths support all of them.
var allOperatorNames = []string{
	"add", "sub", "mul", "div", "rem",
	"and", "or", "xor",
	"shl", "shr", "rotl", "rotr",
	"eq", "ne", "ge", "gt", "le", "lt",
	"min", "max",
	"neg", "not",
}

// wideOperatorNames is the reduced surface of the 128-bit width:
// multiplication, division and remainder are not available.
var wideOperatorNames = []string{
	"add", "sub",
	"and", "or", "xor",
	"shl", "shr", "rotl", "rotr",
	"eq", "ne", "ge", "gt", "le", "lt",
	"min", "max",
	"neg", "not",
}

// maxWidthOperatorNames is the 256-bit surface: bitwise, shift/rotate and
// equality only.
var maxWidthOperatorNames = []string{
	"and", "or", "xor",
	"shl", "shr", "rotl", "rotr",
	"eq", "ne",
	"neg", "not",
}

// DefaultOperators returns the operator descriptors of the arithmetic
// library. Division and remainder only accept a plaintext divisor, with
// the scalar disallowed on the left; comparisons return the encrypted
// boolean; shifts and rotations follow the dedicated enumeration rule.
func DefaultOperators() []ir.OperatorDescriptor {
	return []ir.OperatorDescriptor{
		{Name: "add", Arity: ir.Binary, Encrypted: true, Scalar: true, BinarySymbol: "+"},
		{Name: "sub", Arity: ir.Binary, Encrypted: true, Scalar: true, BinarySymbol: "-"},
		{Name: "mul", Arity: ir.Binary, Encrypted: true, Scalar: true, BinarySymbol: "*"},
		{Name: "div", Arity: ir.Binary, Scalar: true, NoScalarLeft: true},
		{Name: "rem", Arity: ir.Binary, Scalar: true, NoScalarLeft: true},
		{Name: "and", Arity: ir.Binary, Encrypted: true, Scalar: true, BinarySymbol: "&"},
		{Name: "or", Arity: ir.Binary, Encrypted: true, Scalar: true, BinarySymbol: "|"},
		{Name: "xor", Arity: ir.Binary, Encrypted: true, Scalar: true, BinarySymbol: "^"},
		{Name: "shl", Arity: ir.Binary, Shift: true},
		{Name: "shr", Arity: ir.Binary, Shift: true},
		{Name: "rotl", Arity: ir.Binary, Rotate: true},
		{Name: "rotr", Arity: ir.Binary, Rotate: true},
		{Name: "eq", Arity: ir.Binary, Encrypted: true, Scalar: true, BooleanResult: true, BinarySymbol: "=="},
		{Name: "ne", Arity: ir.Binary, Encrypted: true, Scalar: true, BooleanResult: true, BinarySymbol: "!="},
		{Name: "ge", Arity: ir.Binary, Encrypted: true, Scalar: true, BooleanResult: true},
		{Name: "gt", Arity: ir.Binary, Encrypted: true, Scalar: true, BooleanResult: true},
		{Name: "le", Arity: ir.Binary, Encrypted: true, Scalar: true, BooleanResult: true},
		{Name: "lt", Arity: ir.Binary, Encrypted: true, Scalar: true, BooleanResult: true},
		{Name: "min", Arity: ir.Binary, Encrypted: true, Scalar: true},
		{Name: "max", Arity: ir.Binary, Encrypted: true, Scalar: true},
		{Name: "neg", Arity: ir.Unary, UnarySymbol: "-"},
		{Name: "not", Arity: ir.Unary, UnarySymbol: "~"},
	}
}

// DefaultTypes returns the unsigned type descriptors of the arithmetic
// library with their per-width operator support.
func DefaultTypes() []ir.TypeDescriptor {
	return []ir.TypeDescriptor{
		{DisplayName: "Uint8", BitLength: 8, Operators: allOperatorNames},
		{DisplayName: "Uint16", BitLength: 16, Operators: allOperatorNames},
		{DisplayName: "Uint32", BitLength: 32, Operators: allOperatorNames},
		{DisplayName: "Uint64", BitLength: 64, Operators: allOperatorNames},
		{DisplayName: "Uint128", BitLength: 128, Operators: wideOperatorNames},
		{DisplayName: "Uint256", BitLength: 256, Operators: maxWidthOperatorNames},
	}
}

// Default returns the built-in catalog.
func Default() Catalog {
	return Catalog{
		Operators: DefaultOperators(),
		Types:     DefaultTypes(),
	}
}
