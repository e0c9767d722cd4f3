// Package catalog provides the operator and type descriptor catalogs that
// drive enumeration.
//
// The built-in defaults mirror the arithmetic library's supported surface.
// Custom catalogs are loaded from CUE files and validated against an
// embedded schema before decoding, so malformed catalogs fail at load time
// with a position-annotated error instead of producing a partial overload
// set.
package catalog
