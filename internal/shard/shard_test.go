package shard

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fhelab/overloadgen/internal/ir"
)

// Test helper producing n distinct signatures.
func makeSignatures(n int) []ir.OverloadSignature {
	sigs := make([]ir.OverloadSignature, n)
	for i := range sigs {
		sigs[i] = ir.OverloadSignature{
			Name: fmt.Sprintf("op%d", i),
			Arguments: []ir.TypedOperand{
				{Kind: ir.KindEncryptedInteger, Bits: 8},
			},
			Return: ir.TypedOperand{Kind: ir.KindEncryptedInteger, Bits: 8},
		}
	}
	return sigs
}

func TestPartition_ExactWindows(t *testing.T) {
	shards := Partition(makeSignatures(180), 90, ShuffleNone)
	require.Len(t, shards, 2)
	assert.Equal(t, 1, shards[0].Number)
	assert.Equal(t, 2, shards[1].Number)
	assert.Len(t, shards[0].Overloads, 90)
	assert.Len(t, shards[1].Overloads, 90)
}

func TestPartition_LastShardSmaller(t *testing.T) {
	// 91 signatures at capacity 90 yield two shards of sizes 90 and 1.
	shards := Partition(makeSignatures(91), 90, ShuffleNone)
	require.Len(t, shards, 2)
	assert.Len(t, shards[0].Overloads, 90)
	assert.Len(t, shards[1].Overloads, 1)
}

func TestPartition_EmptyInput(t *testing.T) {
	shards := Partition(nil, 90, ShuffleNone)
	assert.Empty(t, shards)
}

func TestPartition_SingleUnderCapacity(t *testing.T) {
	shards := Partition(makeSignatures(10), 90, ShuffleNone)
	require.Len(t, shards, 1)
	assert.Equal(t, 1, shards[0].Number)
	assert.Len(t, shards[0].Overloads, 10)
}

func TestPartition_DefaultCapacity(t *testing.T) {
	shards := Partition(makeSignatures(DefaultCapacity+1), 0, ShuffleNone)
	require.Len(t, shards, 2)
	assert.Len(t, shards[0].Overloads, DefaultCapacity)
}

func TestPartition_ShardNumbersContiguous(t *testing.T) {
	shards := Partition(makeSignatures(250), 90, ShuffleNone)
	require.Len(t, shards, 3)
	for i, s := range shards {
		assert.Equal(t, i+1, s.Number)
	}
}

func TestPartition_ConcatenationReproducesInput(t *testing.T) {
	sigs := makeSignatures(250)
	want := append([]ir.OverloadSignature(nil), sigs...)

	shards := Partition(sigs, 90, ShuffleNone)

	var got []ir.OverloadSignature
	for _, s := range shards {
		got = append(got, s.Overloads...)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("concatenated shards differ from generator output (-want +got):\n%s", diff)
	}
}

func TestPartition_ShuffledConcatenationLosesNothing(t *testing.T) {
	sigs := makeSignatures(95)
	shards := Partition(sigs, 30, ShuffleDeterministic)

	var got []ir.OverloadSignature
	for _, s := range shards {
		got = append(got, s.Overloads...)
	}
	require.Len(t, got, 95)

	seen := make(map[string]int)
	for _, s := range got {
		seen[s.Name]++
	}
	for i := 0; i < 95; i++ {
		assert.Equal(t, 1, seen[fmt.Sprintf("op%d", i)], "every signature appears exactly once")
	}
}

func TestShuffle_NoneIsNoop(t *testing.T) {
	sigs := makeSignatures(20)
	want := append([]ir.OverloadSignature(nil), sigs...)
	Shuffle(sigs, ShuffleNone)
	assert.Equal(t, want, sigs)
}

func TestShuffle_DeterministicIsRepeatable(t *testing.T) {
	a := makeSignatures(50)
	b := makeSignatures(50)
	Shuffle(a, ShuffleDeterministic)
	Shuffle(b, ShuffleDeterministic)
	assert.Equal(t, a, b, "fixed-seed shuffle must reproduce the same order")
}

func TestShuffle_MutatesInPlace(t *testing.T) {
	sigs := makeSignatures(50)
	orig := append([]ir.OverloadSignature(nil), sigs...)
	Shuffle(sigs, ShuffleDeterministic)
	// The reorder is a visible side effect on the caller's slice.
	assert.NotEqual(t, orig, sigs)
	assert.ElementsMatch(t, orig, sigs)
}
