// Package shard partitions an ordered signature list into fixed-capacity
// shards, each backing one emitted contract.
//
// The optional shuffle is a comparator-based sort drawing one binary
// decision per comparison. That is NOT a uniform random permutation and is
// known to be biased; it reproduces the documented behavior of the
// generation pipeline and must not be replaced with a proper shuffle
// without explicit confirmation that uniformity is actually required.
//
// Shuffling reorders the caller's slice in place. Callers must treat that
// as a visible side effect of requesting a shuffle mode.
package shard
