// Package gen enumerates operator overload signatures.
//
// Generation is deterministic given the same inputs and input ordering:
// four disjoint categories (encrypted x encrypted, encrypted x scalar,
// shift/rotate, unary) are enumerated by pure functions and combined by
// concatenation. No internal randomness, no shared accumulators.
//
// FAILURE POLICY:
//
// Signed x signed encrypted pairs are explicitly unsupported and abort the
// run with an UnsupportedSignedPair error rather than being skipped. This
// loud failure prevents silently shipping untested signed-type overloads.
// Signed types are however silently excluded from the scalar, shift/rotate
// and unary categories - that asymmetry is deliberate scope limiting and
// must be preserved.
package gen
