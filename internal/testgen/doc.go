// Package testgen renders the off-chain test harness for generated
// overloads: TypeScript test files asserting decrypted results against
// registered fixtures.
//
// The already-sharded overload stream is re-partitioned into a
// caller-specified number of output groups by ceiling division, so group
// boundaries do not align with shard boundaries. Every overload reaching
// the emitter must have at least one registered fixture; a missing fixture
// aborts the run rather than skipping the case.
package testgen
