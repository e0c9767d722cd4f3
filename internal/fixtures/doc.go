// Package fixtures loads test-vector tables from YAML files.
//
// A table maps canonical method names (e.g. "add_euint8_euint8") to
// ordered test vectors. Values are arbitrary precision: YAML scalars may
// be plain integers or quoted decimal/hex strings, since 128- and 256-bit
// operands exceed every native YAML integer width.
package fixtures
