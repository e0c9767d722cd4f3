package gen

import (
	"github.com/fhelab/overloadgen/internal/ir"
)

// DefaultShiftAmountBits is the fixed width of shift/rotate amount
// operands. Shift counts never need to exceed the operand's bit length,
// and 8 bits covers every supported width.
const DefaultShiftAmountBits = 8

// Options configures enumeration.
type Options struct {
	// ShiftAmountBits overrides the shift-amount operand width.
	// Zero means DefaultShiftAmountBits.
	ShiftAmountBits int
}

func (o Options) shiftBits() int {
	if o.ShiftAmountBits == 0 {
		return DefaultShiftAmountBits
	}
	return o.ShiftAmountBits
}

// Generate enumerates every legal overload signature for the given
// operator and type catalogs. The result order is generation order:
// categories in fixed sequence, each category walking its inputs in the
// order given.
func Generate(operators []ir.OperatorDescriptor, types []ir.TypeDescriptor, opts Options) ([]ir.OverloadSignature, error) {
	eligible := eligibleTypes(types)

	var sigs []ir.OverloadSignature

	pairs, err := encryptedPairs(operators, eligible)
	if err != nil {
		return nil, err
	}
	sigs = append(sigs, pairs...)
	sigs = append(sigs, scalarPairs(operators, eligible)...)
	sigs = append(sigs, shiftRotate(operators, eligible, opts.shiftBits())...)
	sigs = append(sigs, unary(operators, eligible)...)

	return sigs, nil
}

// eligibleTypes filters the catalog to types with at least one supported
// operator name.
func eligibleTypes(types []ir.TypeDescriptor) []ir.TypeDescriptor {
	var out []ir.TypeDescriptor
	for _, t := range types {
		if len(t.Operators) > 0 {
			out = append(out, t)
		}
	}
	return out
}

// returnOperand computes the return type shared by the binary categories:
// the encrypted boolean for comparison operators, otherwise the encrypted
// integer at the given width.
func returnOperand(op ir.OperatorDescriptor, bits int) ir.TypedOperand {
	if op.BooleanResult {
		return ir.TypedOperand{Kind: ir.KindEncryptedBoolean, Bits: ir.BooleanBits}
	}
	return ir.TypedOperand{Kind: ir.KindEncryptedInteger, Bits: bits}
}

// encryptedPairs enumerates the encrypted x encrypted binary category:
// every ordered type pair against every binary, non-shift/rotate operator
// that supports encrypted operands and is listed by both types. The output
// width is the wider of the two operands.
//
// Only unsigned pairs are enumerable. A signed x signed pair aborts with
// an UnsupportedSignedPair error; mixed pairs are skipped.
func encryptedPairs(operators []ir.OperatorDescriptor, types []ir.TypeDescriptor) ([]ir.OverloadSignature, error) {
	var sigs []ir.OverloadSignature
	for _, lhs := range types {
		for _, rhs := range types {
			for _, op := range operators {
				if op.Arity != ir.Binary || op.Shift || op.Rotate || !op.Encrypted {
					continue
				}
				if !lhs.Supports(op.Name) || !rhs.Supports(op.Name) {
					continue
				}
				if !lhs.Unsigned() && !rhs.Unsigned() {
					return nil, NewSignedPairError(op.Name, lhs.DisplayName, rhs.DisplayName)
				}
				if !lhs.Unsigned() || !rhs.Unsigned() {
					continue
				}
				bits := lhs.BitLength
				if rhs.BitLength > bits {
					bits = rhs.BitLength
				}
				sigs = append(sigs, ir.OverloadSignature{
					Name: op.Name,
					Arguments: []ir.TypedOperand{
						{Kind: ir.KindEncryptedInteger, Bits: lhs.BitLength},
						{Kind: ir.KindEncryptedInteger, Bits: rhs.BitLength},
					},
					Return: returnOperand(op, bits),
				})
			}
		}
	}
	return sigs, nil
}

// scalarPairs enumerates the encrypted x scalar binary category. Both
// operands share one width, so no widening applies. The (plaintext,
// encrypted) ordering is emitted unless the operator disallows a scalar
// on the left.
func scalarPairs(operators []ir.OperatorDescriptor, types []ir.TypeDescriptor) []ir.OverloadSignature {
	var sigs []ir.OverloadSignature
	for _, t := range types {
		if !t.Unsigned() {
			continue
		}
		for _, op := range operators {
			if op.Arity != ir.Binary || op.Shift || op.Rotate || !op.Scalar {
				continue
			}
			if !t.Supports(op.Name) {
				continue
			}
			enc := ir.TypedOperand{Kind: ir.KindEncryptedInteger, Bits: t.BitLength}
			plain := ir.TypedOperand{Kind: ir.KindPlainInteger, Bits: t.BitLength}
			ret := returnOperand(op, t.BitLength)

			sigs = append(sigs, ir.OverloadSignature{
				Name:      op.Name,
				Arguments: []ir.TypedOperand{enc, plain},
				Return:    ret,
			})
			if !op.NoScalarLeft {
				sigs = append(sigs, ir.OverloadSignature{
					Name:      op.Name,
					Arguments: []ir.TypedOperand{plain, enc},
					Return:    ret,
				})
			}
		}
	}
	return sigs
}

// shiftRotate enumerates shift and rotate operators: per unsigned type,
// one (encrypted, encrypted amount) and one (encrypted, plain amount)
// signature. The amount operand uses the fixed shift width regardless of
// the base operand's width; the return type always matches the left
// operand.
func shiftRotate(operators []ir.OperatorDescriptor, types []ir.TypeDescriptor, shiftBits int) []ir.OverloadSignature {
	var sigs []ir.OverloadSignature
	for _, t := range types {
		if !t.Unsigned() {
			continue
		}
		for _, op := range operators {
			if !op.Shift && !op.Rotate {
				continue
			}
			if !t.Supports(op.Name) {
				continue
			}
			base := ir.TypedOperand{Kind: ir.KindEncryptedInteger, Bits: t.BitLength}
			sigs = append(sigs,
				ir.OverloadSignature{
					Name: op.Name,
					Arguments: []ir.TypedOperand{
						base,
						{Kind: ir.KindEncryptedInteger, Bits: shiftBits},
					},
					Return: base,
				},
				ir.OverloadSignature{
					Name: op.Name,
					Arguments: []ir.TypedOperand{
						base,
						{Kind: ir.KindPlainInteger, Bits: shiftBits},
					},
					Return: base,
				},
			)
		}
	}
	return sigs
}

// unary enumerates unary operators: per unsigned type, one encrypted
// operand in, same representation out.
func unary(operators []ir.OperatorDescriptor, types []ir.TypeDescriptor) []ir.OverloadSignature {
	var sigs []ir.OverloadSignature
	for _, t := range types {
		if !t.Unsigned() {
			continue
		}
		for _, op := range operators {
			if op.Arity != ir.Unary {
				continue
			}
			if !t.Supports(op.Name) {
				continue
			}
			operand := ir.TypedOperand{Kind: ir.KindEncryptedInteger, Bits: t.BitLength}
			sigs = append(sigs, ir.OverloadSignature{
				Name:      op.Name,
				Arguments: []ir.TypedOperand{operand},
				Return:    operand,
			})
		}
	}
	return sigs
}
