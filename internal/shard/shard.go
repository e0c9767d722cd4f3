package shard

import (
	"math/rand"
	"sort"
	"time"

	"github.com/fhelab/overloadgen/internal/ir"
)

// DefaultCapacity is the default number of overloads per shard, chosen to
// keep each emitted contract under the deployable size limit.
const DefaultCapacity = 90

// ShuffleMode selects how (and whether) a signature list is reordered
// before slicing.
type ShuffleMode int

const (
	// ShuffleNone preserves generation order.
	ShuffleNone ShuffleMode = iota

	// ShuffleDeterministic reorders with a fixed-seed pseudo-random
	// source: the same input list always yields the same order.
	ShuffleDeterministic

	// ShuffleRandom reorders with a time-seeded source; the order differs
	// run to run.
	ShuffleRandom
)

// deterministicSeed is the fixed seed for ShuffleDeterministic.
const deterministicSeed = 0x6f766c67 // "ovlg"

// Shuffle reorders sigs in place according to mode. ShuffleNone is a
// no-op. The reordering is a comparator sort with a binary decision per
// comparison (see the package comment for why that is kept as-is).
func Shuffle(sigs []ir.OverloadSignature, mode ShuffleMode) {
	var r *rand.Rand
	switch mode {
	case ShuffleNone:
		return
	case ShuffleDeterministic:
		r = rand.New(rand.NewSource(deterministicSeed))
	case ShuffleRandom:
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	default:
		return
	}
	sort.SliceStable(sigs, func(i, j int) bool {
		return r.Intn(2) == 0
	})
}

// Partition optionally shuffles sigs in place, then slices the list into
// shards of at most capacity overloads. Shard numbers are 1-based and
// contiguous in slice order; the last shard may be smaller than capacity;
// an empty input yields zero shards. A non-positive capacity means
// DefaultCapacity.
//
// Shards alias the input slice's backing array; the concatenation of all
// shards' overloads reproduces the (possibly shuffled) input exactly.
func Partition(sigs []ir.OverloadSignature, capacity int, mode ShuffleMode) []ir.OverloadShard {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	Shuffle(sigs, mode)

	var shards []ir.OverloadShard
	for start := 0; start < len(sigs); start += capacity {
		end := start + capacity
		if end > len(sigs) {
			end = len(sigs)
		}
		shards = append(shards, ir.OverloadShard{
			Number:    len(shards) + 1,
			Overloads: sigs[start:end],
		})
	}
	return shards
}
