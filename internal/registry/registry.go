package registry

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fhelab/overloadgen/internal/ir"
)

// entry holds the four renderings for one operand kind.
//
// The storage prefix is carried structurally (prefix + width flag) rather
// than re-derived from a generated name, so emitters never have to strip
// string prefixes to recover the type.
type entry struct {
	plain     func(bits int) string
	encrypted func(bits int) string
	external  func(bits int) string

	storagePrefix string
	// widthSuffix is false for the boolean kind: the encrypted boolean has
	// no parametrized width, so its storage variable is the bare prefix.
	widthSuffix bool
}

var table = map[ir.OperandKind]entry{
	ir.KindEncryptedInteger: {
		plain:         func(bits int) string { return "uint" + strconv.Itoa(bits) },
		encrypted:     func(bits int) string { return "euint" + strconv.Itoa(bits) },
		external:      func(bits int) string { return "externalEuint" + strconv.Itoa(bits) },
		storagePrefix: "resEuint",
		widthSuffix:   true,
	},
	ir.KindPlainInteger: {
		plain:         func(bits int) string { return "uint" + strconv.Itoa(bits) },
		encrypted:     func(bits int) string { return "euint" + strconv.Itoa(bits) },
		external:      func(bits int) string { return "uint" + strconv.Itoa(bits) },
		storagePrefix: "resUint",
		widthSuffix:   true,
	},
	ir.KindEncryptedBoolean: {
		plain:         func(int) string { return "bool" },
		encrypted:     func(int) string { return "ebool" },
		external:      func(int) string { return "externalEbool" },
		storagePrefix: "resEbool",
		widthSuffix:   false,
	},
}

func lookup(kind ir.OperandKind) entry {
	e, ok := table[kind]
	if !ok {
		panic(fmt.Sprintf("registry: unknown operand kind %d", int(kind)))
	}
	return e
}

// Plain returns the plain numeric type for the operand (e.g. "uint8").
func Plain(op ir.TypedOperand) string {
	return lookup(op.Kind).plain(op.Bits)
}

// Encrypted returns the encrypted type for the operand (e.g. "euint8").
func Encrypted(op ir.TypedOperand) string {
	return lookup(op.Kind).encrypted(op.Bits)
}

// External returns the external/calldata type for the operand
// (e.g. "externalEuint8"). Plain operands are passed through unchanged, so
// their external type equals their plain type.
func External(op ir.TypedOperand) string {
	return lookup(op.Kind).external(op.Bits)
}

// StorageVar returns the shared result-storage variable name for the
// operand's representation: prefix plus bit width, except the boolean kind
// which uses the bare prefix.
func StorageVar(op ir.TypedOperand) string {
	e := lookup(op.Kind)
	if !e.widthSuffix {
		return e.storagePrefix
	}
	return e.storagePrefix + strconv.Itoa(op.Bits)
}

// ArgumentName returns the rendering used in canonical method names: the
// declaration type of the argument (encrypted operands render encrypted,
// plain operands render plain).
func ArgumentName(op ir.TypedOperand) string {
	if op.Kind == ir.KindPlainInteger {
		return Plain(op)
	}
	return Encrypted(op)
}

// MethodName returns the canonical method name for a signature: the
// operator name joined with each argument's rendering by underscores
// (e.g. "add_euint8_uint8"). Test fixtures are keyed by this name, and the
// contract emitter uses it as the emitted function name so every overload
// has a distinct, callable entry point.
func MethodName(sig ir.OverloadSignature) string {
	parts := make([]string, 0, len(sig.Arguments)+1)
	parts = append(parts, sig.Name)
	for _, arg := range sig.Arguments {
		parts = append(parts, ArgumentName(arg))
	}
	return strings.Join(parts, "_")
}

var titleCaser = cases.Title(language.Und, cases.NoLower)

// EncryptedTitle returns the encrypted type name with its first letter
// upper-cased (e.g. "Euint8", "Ebool"), as used by per-width decrypt
// helpers in the generated test harness.
func EncryptedTitle(op ir.TypedOperand) string {
	return titleCaser.String(Encrypted(op))
}
