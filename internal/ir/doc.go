// Package ir defines the canonical data model for overload generation.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This keeps the data model the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Fixture values are arbitrary precision (math/big) - operand widths
//     reach 256 bits, which no native integer type can hold
//   - All entities are transient: constructed fresh per generation run,
//     never persisted between runs
//   - Signature identity is the (Name, Arguments) tuple; enumeration rules
//     are written so duplicates never arise by construction, there is no
//     de-duplication pass
package ir
