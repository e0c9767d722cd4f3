package gen

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fhelab/overloadgen/internal/catalog"
	"github.com/fhelab/overloadgen/internal/ir"
	"github.com/fhelab/overloadgen/internal/registry"
)

// Test helper for a binary operator supporting both encrypted and scalar
// operands.
func makeBinaryOp(name string) ir.OperatorDescriptor {
	return ir.OperatorDescriptor{
		Name:      name,
		Arity:     ir.Binary,
		Encrypted: true,
		Scalar:    true,
	}
}

func makeUintType(bits int, ops ...string) ir.TypeDescriptor {
	return ir.TypeDescriptor{
		DisplayName: fmt.Sprintf("Uint%d", bits),
		BitLength:   bits,
		Operators:   ops,
	}
}

func makeIntType(bits int, ops ...string) ir.TypeDescriptor {
	return ir.TypeDescriptor{
		DisplayName: fmt.Sprintf("Int%d", bits),
		BitLength:   bits,
		Operators:   ops,
	}
}

func TestGenerate_SingleTypeSingleOperator(t *testing.T) {
	// One Uint8 type and one binary add operator yield exactly three
	// signatures: (euint8, euint8), (euint8, uint8), (uint8, euint8).
	sigs, err := Generate(
		[]ir.OperatorDescriptor{makeBinaryOp("add")},
		[]ir.TypeDescriptor{makeUintType(8, "add")},
		Options{},
	)
	require.NoError(t, err)
	require.Len(t, sigs, 3)

	assert.Equal(t, "add_euint8_euint8", registry.MethodName(sigs[0]))
	assert.Equal(t, "add_euint8_uint8", registry.MethodName(sigs[1]))
	assert.Equal(t, "add_uint8_euint8", registry.MethodName(sigs[2]))

	for _, s := range sigs {
		assert.Equal(t, ir.KindEncryptedInteger, s.Return.Kind)
		assert.Equal(t, 8, s.Return.Bits)
	}
}

func TestGenerate_EncryptedPairWidensToMax(t *testing.T) {
	op := makeBinaryOp("add")
	op.Scalar = false
	sigs, err := Generate(
		[]ir.OperatorDescriptor{op},
		[]ir.TypeDescriptor{makeUintType(8, "add"), makeUintType(32, "add")},
		Options{},
	)
	require.NoError(t, err)
	require.Len(t, sigs, 4)

	for _, s := range sigs {
		wider := s.Arguments[0].Bits
		if s.Arguments[1].Bits > wider {
			wider = s.Arguments[1].Bits
		}
		assert.Equal(t, wider, s.Return.Bits, "return width must be max of operand widths for %s", registry.MethodName(s))
	}
}

func TestGenerate_BooleanResult(t *testing.T) {
	// Comparison on two Uint16 types returns the boolean kind regardless
	// of operand width.
	op := makeBinaryOp("eq")
	op.BooleanResult = true
	sigs, err := Generate(
		[]ir.OperatorDescriptor{op},
		[]ir.TypeDescriptor{makeUintType(16, "eq")},
		Options{},
	)
	require.NoError(t, err)
	require.NotEmpty(t, sigs)

	for _, s := range sigs {
		assert.Equal(t, ir.KindEncryptedBoolean, s.Return.Kind, "%s", registry.MethodName(s))
	}
}

func TestGenerate_NoScalarLeft(t *testing.T) {
	div := ir.OperatorDescriptor{
		Name:         "div",
		Arity:        ir.Binary,
		Scalar:       true,
		NoScalarLeft: true,
	}
	sigs, err := Generate(
		[]ir.OperatorDescriptor{div},
		[]ir.TypeDescriptor{makeUintType(8, "div")},
		Options{},
	)
	require.NoError(t, err)
	require.Len(t, sigs, 1)

	assert.Equal(t, "div_euint8_uint8", registry.MethodName(sigs[0]))
	for _, s := range sigs {
		assert.NotEqual(t, ir.KindPlainInteger, s.Arguments[0].Kind, "no scalar-on-left ordering may be produced")
	}
}

func TestGenerate_ShiftAmountWidth(t *testing.T) {
	shl := ir.OperatorDescriptor{Name: "shl", Arity: ir.Binary, Shift: true}
	sigs, err := Generate(
		[]ir.OperatorDescriptor{shl},
		[]ir.TypeDescriptor{makeUintType(64, "shl"), makeUintType(256, "shl")},
		Options{},
	)
	require.NoError(t, err)
	require.Len(t, sigs, 4)

	for _, s := range sigs {
		require.Len(t, s.Arguments, 2)
		// The amount operand keeps the fixed shift width regardless of
		// the base operand's width.
		assert.Equal(t, DefaultShiftAmountBits, s.Arguments[1].Bits, "%s", registry.MethodName(s))
		// The return type always matches the left operand.
		assert.Equal(t, s.Arguments[0], s.Return)
	}
}

func TestGenerate_ShiftAmountWidthOverride(t *testing.T) {
	shr := ir.OperatorDescriptor{Name: "shr", Arity: ir.Binary, Shift: true}
	sigs, err := Generate(
		[]ir.OperatorDescriptor{shr},
		[]ir.TypeDescriptor{makeUintType(32, "shr")},
		Options{ShiftAmountBits: 16},
	)
	require.NoError(t, err)
	require.Len(t, sigs, 2)
	for _, s := range sigs {
		assert.Equal(t, 16, s.Arguments[1].Bits)
	}
}

func TestGenerate_ShiftEmitsEncryptedAndPlainAmount(t *testing.T) {
	rotl := ir.OperatorDescriptor{Name: "rotl", Arity: ir.Binary, Rotate: true}
	sigs, err := Generate(
		[]ir.OperatorDescriptor{rotl},
		[]ir.TypeDescriptor{makeUintType(8, "rotl")},
		Options{},
	)
	require.NoError(t, err)
	require.Len(t, sigs, 2)

	assert.Equal(t, ir.KindEncryptedInteger, sigs[0].Arguments[1].Kind)
	assert.Equal(t, ir.KindPlainInteger, sigs[1].Arguments[1].Kind)
}

func TestGenerate_Unary(t *testing.T) {
	neg := ir.OperatorDescriptor{Name: "neg", Arity: ir.Unary}
	sigs, err := Generate(
		[]ir.OperatorDescriptor{neg},
		[]ir.TypeDescriptor{makeUintType(8, "neg"), makeUintType(16, "neg")},
		Options{},
	)
	require.NoError(t, err)
	require.Len(t, sigs, 2)

	for _, s := range sigs {
		require.Len(t, s.Arguments, 1)
		assert.Equal(t, s.Arguments[0], s.Return)
	}
}

func TestGenerate_SignedPairFailsFast(t *testing.T) {
	op := makeBinaryOp("add")
	sigs, err := Generate(
		[]ir.OperatorDescriptor{op},
		[]ir.TypeDescriptor{makeIntType(8, "add")},
		Options{},
	)
	require.Error(t, err)
	assert.Nil(t, sigs)
	assert.True(t, IsSignedPairError(err))
	assert.Contains(t, err.Error(), "not supported yet")
	assert.Contains(t, err.Error(), "Int8")
}

func TestGenerate_MixedPairSkippedSilently(t *testing.T) {
	// Signed types are silently excluded from mixed pairs and from the
	// scalar/shift/unary categories; only signed x signed raises.
	op := makeBinaryOp("add")
	op.Scalar = false
	sigs, err := Generate(
		[]ir.OperatorDescriptor{op},
		[]ir.TypeDescriptor{makeUintType(8, "add"), makeIntType(8, "add")},
		Options{},
	)
	require.Error(t, err, "the Int8 x Int8 ordered pair still exists and must raise")
	assert.True(t, IsSignedPairError(err))

	// Without the signed x signed pair, mixed orderings are skipped.
	sigs, err = Generate(
		[]ir.OperatorDescriptor{op},
		[]ir.TypeDescriptor{makeUintType(8, "add"), makeIntType(8)},
		Options{},
	)
	require.NoError(t, err)
	require.Len(t, sigs, 1)
	assert.Equal(t, "add_euint8_euint8", registry.MethodName(sigs[0]))
}

func TestGenerate_SignedExcludedFromScalarShiftUnary(t *testing.T) {
	ops := []ir.OperatorDescriptor{
		{Name: "add", Arity: ir.Binary, Scalar: true},
		{Name: "shl", Arity: ir.Binary, Shift: true},
		{Name: "neg", Arity: ir.Unary},
	}
	sigs, err := Generate(ops, []ir.TypeDescriptor{makeIntType(8, "add", "shl", "neg")}, Options{})
	require.NoError(t, err)
	assert.Empty(t, sigs)
}

func TestGenerate_TypesWithoutOperatorsExcluded(t *testing.T) {
	sigs, err := Generate(
		[]ir.OperatorDescriptor{makeBinaryOp("add")},
		[]ir.TypeDescriptor{makeUintType(8)},
		Options{},
	)
	require.NoError(t, err)
	assert.Empty(t, sigs)
}

func TestGenerate_EmptyInputs(t *testing.T) {
	sigs, err := Generate(nil, nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, sigs)
}

func TestGenerate_Deterministic(t *testing.T) {
	cat := catalog.Default()
	a, err := Generate(cat.Operators, cat.Types, Options{})
	require.NoError(t, err)
	b, err := Generate(cat.Operators, cat.Types, Options{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_DefaultCatalogSignaturesUnique(t *testing.T) {
	// Every (name, arguments) tuple across the full default catalog must
	// be unique by construction.
	cat := catalog.Default()
	sigs, err := Generate(cat.Operators, cat.Types, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, sigs)

	seen := make(map[string]bool, len(sigs))
	for _, s := range sigs {
		key := registry.MethodName(s)
		assert.False(t, seen[key], "duplicate signature %s", key)
		seen[key] = true
	}
}
