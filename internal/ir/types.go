package ir

import (
	"math/big"
	"strings"
)

// OperandKind identifies the representation class of an operand.
// The set is closed: the registry package panics on any value outside it.
type OperandKind int

const (
	// KindEncryptedInteger is a ciphertext integer of a given bit width.
	KindEncryptedInteger OperandKind = iota

	// KindPlainInteger is a plaintext scalar paired with an encrypted
	// operand in a mixed overload.
	KindPlainInteger

	// KindEncryptedBoolean is the fixed-width encrypted boolean. Display
	// renderings ignore the bit width; range checks still use the nominal
	// width carried on the operand.
	KindEncryptedBoolean
)

// String returns the kind name for diagnostics.
func (k OperandKind) String() string {
	switch k {
	case KindEncryptedInteger:
		return "EncryptedInteger"
	case KindPlainInteger:
		return "PlainInteger"
	case KindEncryptedBoolean:
		return "EncryptedBoolean"
	default:
		return "Unknown"
	}
}

// BooleanBits is the nominal width carried by encrypted boolean operands.
// It only participates in range checks, never in display renderings.
const BooleanBits = 2

// TypedOperand pairs an operand kind with a bit width.
type TypedOperand struct {
	Kind OperandKind `json:"kind"`
	Bits int         `json:"bits"`
}

// Arity distinguishes unary from binary operators.
type Arity int

const (
	Unary Arity = iota + 1
	Binary
)

// OperatorDescriptor describes one operator of the arithmetic library and
// the enumeration rules that apply to it.
//
// Invariant: at most one of Shift and Rotate may be true. When either is
// true the operator follows the dedicated shift/rotate enumeration rule and
// the Encrypted/Scalar/NoScalarLeft flags are ignored.
type OperatorDescriptor struct {
	// Name is the library-level operator name, unique across the catalog.
	Name string `json:"name"`

	Arity Arity `json:"arity"`

	// Encrypted enables the encrypted x encrypted binary category.
	Encrypted bool `json:"encrypted"`

	// Scalar enables the encrypted x plaintext binary category.
	Scalar bool `json:"scalar"`

	// NoScalarLeft suppresses the (plaintext, encrypted) ordering in the
	// scalar category (division and remainder only accept the scalar on
	// the right).
	NoScalarLeft bool `json:"no_scalar_left,omitempty"`

	Shift  bool `json:"shift,omitempty"`
	Rotate bool `json:"rotate,omitempty"`

	// BooleanResult marks comparison operators: the return type is the
	// encrypted boolean regardless of operand widths.
	BooleanResult bool `json:"boolean_result,omitempty"`

	// BinarySymbol is the native Solidity infix symbol bound to this
	// operator, if any. When set the contract emitter uses the symbol
	// instead of a library call.
	BinarySymbol string `json:"binary_symbol,omitempty"`

	// UnarySymbol is the native Solidity prefix symbol, if any.
	UnarySymbol string `json:"unary_symbol,omitempty"`
}

// TypeDescriptor describes one integer type of the arithmetic library.
type TypeDescriptor struct {
	// DisplayName is prefixed "Uint" or "Int" (e.g. "Uint8").
	DisplayName string `json:"display_name"`

	BitLength int `json:"bit_length"`

	// Operators lists the names of operators this type supports. Types
	// with an empty list do not participate in enumeration.
	Operators []string `json:"operators"`
}

// Unsigned reports whether the type is an unsigned integer type.
func (t TypeDescriptor) Unsigned() bool {
	return strings.HasPrefix(t.DisplayName, "Uint")
}

// Supports reports whether the type lists the operator name as supported.
func (t TypeDescriptor) Supports(name string) bool {
	for _, op := range t.Operators {
		if op == name {
			return true
		}
	}
	return false
}

// OverloadSignature identifies one generated callable unit. Identity is the
// (Name, Arguments) tuple.
type OverloadSignature struct {
	Name      string         `json:"name"`
	Arguments []TypedOperand `json:"arguments"`
	Return    TypedOperand   `json:"return"`
}

// OverloadShard is a fixed-capacity, ordered group of overload signatures
// assigned to one emitted contract.
//
// Invariant: concatenating all shards' overloads in shard order reproduces
// the exact sequence produced by the generator (after optional shuffle).
type OverloadShard struct {
	// Number is 1-based and contiguous in slice order.
	Number    int                 `json:"number"`
	Overloads []OverloadSignature `json:"overloads"`
}

// TestVector is one input/expected-output row for an overload. Vectors are
// keyed externally by the signature's canonical method name.
type TestVector struct {
	Inputs []*big.Int
	Output *big.Int
}
