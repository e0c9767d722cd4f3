package solgen

import (
	"fmt"
	"strings"

	"github.com/fhelab/overloadgen/internal/ir"
	"github.com/fhelab/overloadgen/internal/registry"
)

// Options configures contract emission.
type Options struct {
	// Imports are emitted verbatim after the pragma, one per line.
	Imports []string

	// ParentContract, when set, is inherited by the emitted contract and
	// replaces the local constructor: coprocessor setup is assumed to be
	// performed by the parent.
	ParentContract string

	// PublicDecrypt selects the result disclosure mode: broadcast the
	// result as publicly decryptable instead of granting decrypt access
	// to the calling account.
	PublicDecrypt bool

	// Operators supplies the operator descriptors so native Solidity
	// symbols can be used where the library binds them.
	Operators []ir.OperatorDescriptor
}

// ContractName returns the emitted contract name for a shard number.
func ContractName(number int) string {
	return fmt.Sprintf("FHETestSuite%d", number)
}

// resultSlot is one distinct return representation used by a shard. The
// operand is carried structurally alongside the variable name so nothing
// downstream has to re-derive the type from the generated name.
type resultSlot struct {
	Name    string
	Operand ir.TypedOperand
}

// resultSlots returns the distinct return representations of a shard's
// overloads in first-seen order.
func resultSlots(s ir.OverloadShard) []resultSlot {
	seen := make(map[string]bool)
	var slots []resultSlot
	for _, o := range s.Overloads {
		name := registry.StorageVar(o.Return)
		if seen[name] {
			continue
		}
		seen[name] = true
		slots = append(slots, resultSlot{Name: name, Operand: o.Return})
	}
	return slots
}

// Emit renders the Solidity test contract for one shard.
func Emit(s ir.OverloadShard, opts Options) string {
	symbols := make(map[string]ir.OperatorDescriptor, len(opts.Operators))
	for _, op := range opts.Operators {
		symbols[op.Name] = op
	}

	var b strings.Builder
	b.WriteString("// SPDX-License-Identifier: BSD-3-Clause-Clear\n")
	b.WriteString("pragma solidity ^0.8.24;\n\n")
	for _, imp := range opts.Imports {
		b.WriteString(imp)
		b.WriteString("\n")
	}
	if len(opts.Imports) > 0 {
		b.WriteString("\n")
	}

	if opts.ParentContract != "" {
		fmt.Fprintf(&b, "contract %s is %s {\n", ContractName(s.Number), opts.ParentContract)
	} else {
		fmt.Fprintf(&b, "contract %s {\n", ContractName(s.Number))
	}

	for _, slot := range resultSlots(s) {
		fmt.Fprintf(&b, "    %s public %s;\n", registry.Encrypted(slot.Operand), slot.Name)
	}

	if opts.ParentContract == "" {
		b.WriteString("\n    constructor() {\n")
		b.WriteString("        FHE.setCoprocessor(FHEVMConfig.defaultConfig());\n")
		b.WriteString("    }\n")
	}

	for _, o := range s.Overloads {
		b.WriteString("\n")
		emitFunction(&b, o, symbols[o.Name], opts.PublicDecrypt)
	}

	b.WriteString("}\n")
	return b.String()
}

// argLetters names function arguments in order.
const argLetters = "abcdefgh"

// emitFunction renders one externally callable unit: cast each argument to
// its internal encrypted representation, invoke the operator, grant the
// configured decrypt permission, store the result.
func emitFunction(b *strings.Builder, o ir.OverloadSignature, op ir.OperatorDescriptor, publicDecrypt bool) {
	params := make([]string, 0, len(o.Arguments)+1)
	needsProof := false
	for i, arg := range o.Arguments {
		name := string(argLetters[i])
		switch arg.Kind {
		case ir.KindEncryptedInteger:
			params = append(params, registry.External(arg)+" "+name)
			needsProof = true
		case ir.KindEncryptedBoolean:
			params = append(params, registry.Plain(arg)+" "+name)
		default:
			params = append(params, registry.Plain(arg)+" "+name)
		}
	}
	if needsProof {
		params = append(params, "bytes calldata inputProof")
	}

	fmt.Fprintf(b, "    function %s(%s) public {\n", registry.MethodName(o), strings.Join(params, ", "))

	// Cast arguments to their internal representations.
	values := make([]string, len(o.Arguments))
	for i, arg := range o.Arguments {
		name := string(argLetters[i])
		switch arg.Kind {
		case ir.KindEncryptedInteger:
			fmt.Fprintf(b, "        %s %sProc = FHE.fromExternal(%s, inputProof);\n", registry.Encrypted(arg), name, name)
			values[i] = name + "Proc"
		case ir.KindEncryptedBoolean:
			fmt.Fprintf(b, "        %s %sProc = FHE.asEbool(%s);\n", registry.Encrypted(arg), name, name)
			values[i] = name + "Proc"
		default:
			values[i] = name
		}
	}

	fmt.Fprintf(b, "        %s result = %s;\n", registry.Encrypted(o.Return), invocation(o, op, values))

	b.WriteString("        FHE.allowThis(result);\n")
	if publicDecrypt {
		b.WriteString("        FHE.makePubliclyDecryptable(result);\n")
	} else {
		b.WriteString("        FHE.allow(result, msg.sender);\n")
	}
	fmt.Fprintf(b, "        %s = result;\n", registry.StorageVar(o.Return))
	b.WriteString("    }\n")
}

// invocation renders the operator application, preferring the native
// infix/prefix symbol when the descriptor declares one.
func invocation(o ir.OverloadSignature, op ir.OperatorDescriptor, values []string) string {
	if len(values) == 1 {
		if op.UnarySymbol != "" {
			return op.UnarySymbol + values[0]
		}
		return fmt.Sprintf("FHE.%s(%s)", o.Name, values[0])
	}
	// Native infix symbols are only bound for encrypted operands; mixed
	// scalar overloads always go through the library call.
	if op.BinarySymbol != "" && o.Arguments[0].Kind != ir.KindPlainInteger && o.Arguments[1].Kind != ir.KindPlainInteger {
		return fmt.Sprintf("%s %s %s", values[0], op.BinarySymbol, values[1])
	}
	return fmt.Sprintf("FHE.%s(%s)", o.Name, strings.Join(values, ", "))
}
