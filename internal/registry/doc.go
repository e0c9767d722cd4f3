// Package registry maps operand kinds to their canonical string renderings.
//
// Each operand kind has exactly four renderings: the plain numeric type,
// the encrypted type, the external/calldata type, and the result-storage
// variable prefix. Dispatch is a lookup table keyed by kind; adding a new
// operand kind means adding one table entry, not touching call sites.
//
// An unknown kind is a programming error, not a runtime condition: the
// lookup panics and the panic must not be recovered.
package registry
