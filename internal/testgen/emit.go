package testgen

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/fhelab/overloadgen/internal/ir"
	"github.com/fhelab/overloadgen/internal/registry"
	"github.com/fhelab/overloadgen/internal/shard"
	"github.com/fhelab/overloadgen/internal/solgen"
)

// ImportConfig carries the three import paths used verbatim in generated
// preambles.
type ImportConfig struct {
	// Signers is the signer-helper module path.
	Signers string

	// Instance is the encrypted-instance-helper module path.
	Instance string

	// Types is the generated-types-helper module path (contract fixture
	// deployment).
	Types string
}

// Options configures test emission.
type Options struct {
	// PublicDecrypt selects the public-decrypt test flow instead of the
	// per-caller user-decrypt flow.
	PublicDecrypt bool

	// Shuffle reorders each shard's overloads independently before
	// streaming. The reorder mutates the shard's overload list in place.
	Shuffle shard.ShuffleMode
}

// streamEntry is one overload tagged with its owning shard number; the
// emitted test must call the contract that actually hosts the overload.
type streamEntry struct {
	shardNumber int
	sig         ir.OverloadSignature
}

// Emit renders one TypeScript source text per output group. The per-group
// size is the ceiling of total overload count over groupCount, so coverage
// is complete even when the split is uneven.
func Emit(shards []ir.OverloadShard, groupCount int, fixtures map[string][]ir.TestVector, imports ImportConfig, opts Options) ([]string, error) {
	if groupCount < 1 {
		return nil, fmt.Errorf("testgen: group count must be positive, got %d", groupCount)
	}

	total := 0
	for i := range shards {
		shard.Shuffle(shards[i].Overloads, opts.Shuffle)
		total += len(shards[i].Overloads)
	}
	if total == 0 {
		return nil, nil
	}
	groupSize := (total + groupCount - 1) / groupCount

	// Flatten shard-by-shard, overload-by-overload.
	stream := make([]streamEntry, 0, total)
	for _, s := range shards {
		for _, o := range s.Overloads {
			stream = append(stream, streamEntry{shardNumber: s.Number, sig: o})
		}
	}

	var sources []string
	for start := 0; start < len(stream); start += groupSize {
		end := start + groupSize
		if end > len(stream) {
			end = len(stream)
		}
		src, err := emitGroup(stream[start:end], len(sources)+1, fixtures, imports, opts)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// emitGroup renders one output group: preamble, one test case per fixture
// per overload, closing block.
func emitGroup(entries []streamEntry, groupIndex int, fixtures map[string][]ir.TestVector, imports ImportConfig, opts Options) (string, error) {
	var b strings.Builder
	writePreamble(&b, entries, groupIndex, imports, opts)

	for _, e := range entries {
		method := registry.MethodName(e.sig)
		vectors := fixtures[method]
		if len(vectors) == 0 {
			return "", NewMissingFixturesError(method)
		}
		for i, v := range vectors {
			if err := checkRanges(e.sig, method, i+1, v); err != nil {
				return "", err
			}
			writeTestCase(&b, e, method, i+1, v, opts)
		}
	}

	b.WriteString("});\n")
	return b.String(), nil
}

// writePreamble renders the imports, the suite header and the before hook
// deploying every contract the group's overloads live in.
func writePreamble(b *strings.Builder, entries []streamEntry, groupIndex int, imports ImportConfig, opts Options) {
	b.WriteString("import { expect } from 'chai';\n\n")
	fmt.Fprintf(b, "import { createInstance } from '%s';\n", imports.Instance)
	fmt.Fprintf(b, "import { getSigner, initSigners } from '%s';\n", imports.Signers)
	fmt.Fprintf(b, "import { deployFHETestSuiteFixture } from '%s';\n\n", imports.Types)

	if opts.PublicDecrypt {
		fmt.Fprintf(b, "describe('FHE operations (public decrypt) %d', function () {\n", groupIndex)
	} else {
		fmt.Fprintf(b, "describe('FHE operations %d', function () {\n", groupIndex)
	}
	b.WriteString("  before(async function () {\n")
	b.WriteString("    await initSigners();\n")
	b.WriteString("    this.signer = await getSigner(0);\n")
	b.WriteString("    this.instance = await createInstance();\n")

	seen := make(map[int]bool)
	for _, e := range entries {
		if seen[e.shardNumber] {
			continue
		}
		seen[e.shardNumber] = true
		name := solgen.ContractName(e.shardNumber)
		fmt.Fprintf(b, "\n    const contract%d = await deployFHETestSuiteFixture('%s');\n", e.shardNumber, name)
		fmt.Fprintf(b, "    this.contract%dAddress = await contract%d.getAddress();\n", e.shardNumber, e.shardNumber)
		fmt.Fprintf(b, "    this.contract%d = contract%d;\n", e.shardNumber, e.shardNumber)
	}
	b.WriteString("  });\n")
}

// checkRanges verifies every input and the expected output against the
// declared operand widths. Values must lie in [0, 2^bits].
func checkRanges(sig ir.OverloadSignature, method string, testIndex int, v ir.TestVector) error {
	if len(v.Inputs) != len(sig.Arguments) {
		return fmt.Errorf("testgen: fixture %d for %s has %d inputs, want %d", testIndex, method, len(v.Inputs), len(sig.Arguments))
	}
	for i, in := range v.Inputs {
		if outOfRange(in, sig.Arguments[i].Bits) {
			return NewRangeError(method, testIndex, sig.Arguments[i].Bits, in)
		}
	}
	if outOfRange(v.Output, sig.Return.Bits) {
		return NewRangeError(method, testIndex, sig.Return.Bits, v.Output)
	}
	return nil
}

// outOfRange reports whether v lies outside [0, 2^bits]. The upper bound
// is inclusive, matching the original generator's check.
func outOfRange(v *big.Int, bits int) bool {
	if v.Sign() < 0 {
		return true
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return v.Cmp(limit) > 0
}

// writeTestCase renders one it-block for one fixture.
func writeTestCase(b *strings.Builder, e streamEntry, method string, testIndex int, v ir.TestVector, opts Options) {
	sig := e.sig
	n := e.shardNumber

	fmt.Fprintf(b, "\n  it('test operator \"%s\" overload (%s) => %s test %d (%s)', async function () {\n",
		sig.Name, argumentList(sig), registry.ArgumentName(sig.Return), testIndex, inputList(v))

	fmt.Fprintf(b, "    const input = this.instance.createEncryptedInput(this.contract%dAddress, this.signer.address);\n", n)
	for i, arg := range sig.Arguments {
		switch arg.Kind {
		case ir.KindEncryptedInteger:
			fmt.Fprintf(b, "    input.add%d(%sn);\n", arg.Bits, v.Inputs[i].String())
		case ir.KindEncryptedBoolean:
			fmt.Fprintf(b, "    input.addBool(%s);\n", boolLiteral(v.Inputs[i]))
		}
	}
	b.WriteString("    const encryptedAmount = await input.encrypt();\n")

	fmt.Fprintf(b, "    const tx = await this.contract%d.%s(\n", n, method)
	handle := 0
	for i, arg := range sig.Arguments {
		switch arg.Kind {
		case ir.KindEncryptedInteger:
			fmt.Fprintf(b, "      encryptedAmount.handles[%d],\n", handle)
			handle++
		case ir.KindEncryptedBoolean:
			fmt.Fprintf(b, "      %s,\n", boolLiteral(v.Inputs[i]))
		default:
			fmt.Fprintf(b, "      %sn,\n", v.Inputs[i].String())
		}
	}
	if handle > 0 {
		b.WriteString("      encryptedAmount.inputProof,\n")
	}
	b.WriteString("    );\n")
	b.WriteString("    await tx.wait();\n")

	fmt.Fprintf(b, "    const handle = await this.contract%d.%s();\n", n, registry.StorageVar(sig.Return))
	if opts.PublicDecrypt {
		b.WriteString("    const results = await this.instance.publicDecrypt([handle]);\n")
		fmt.Fprintf(b, "    expect(results[handle]).to.equal(%s);\n", expectedLiteral(sig.Return, v.Output))
	} else {
		fmt.Fprintf(b, "    const res = await this.instance.decrypt%s(handle);\n", registry.EncryptedTitle(sig.Return))
		fmt.Fprintf(b, "    expect(res).to.equal(%s);\n", expectedLiteral(sig.Return, v.Output))
	}
	b.WriteString("  });\n")
}

// argumentList renders a signature's argument types for the test title.
func argumentList(sig ir.OverloadSignature) string {
	names := make([]string, len(sig.Arguments))
	for i, arg := range sig.Arguments {
		names[i] = registry.ArgumentName(arg)
	}
	return strings.Join(names, ", ")
}

// inputList renders a fixture's input values for the test title.
func inputList(v ir.TestVector) string {
	vals := make([]string, len(v.Inputs))
	for i, in := range v.Inputs {
		vals[i] = in.String()
	}
	return strings.Join(vals, ", ")
}

func boolLiteral(v *big.Int) string {
	if v.Sign() != 0 {
		return "true"
	}
	return "false"
}

// expectedLiteral renders the expected output: a boolean literal for the
// encrypted boolean return, a bigint literal otherwise.
func expectedLiteral(ret ir.TypedOperand, out *big.Int) string {
	if ret.Kind == ir.KindEncryptedBoolean {
		return boolLiteral(out)
	}
	return out.String() + "n"
}
