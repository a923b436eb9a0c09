// Package canvas enumerates every quantized image of a fixed shape and maps
// each one to a fixed-length textual identifier.
//
// A space is defined by a number of quantization steps per channel and a
// grid shape (height, width, channels). Every grid of that shape whose cells
// hold values in [0, steps) corresponds to exactly one index in
// [0, steps^cells) and to exactly one identifier of length cells.
//
// # Identifiers
//
// An identifier is the base-steps numeral of its index, most significant
// digit first, always zero-padded to the full cell count. Digit k is written
// with the k-th symbol of the alphabet (default "0-9a-zA-Z"). Only the first
// steps symbols are ever accepted, so with steps=8 the identifier "8" is
// invalid even though '8' is in the alphabet.
//
// Digit i of the identifier is cell i of the grid in row-major order with the
// channel varying fastest:
//
//	offset = (y*width + x)*channels + c
//
// # Ring Arithmetic
//
// Step treats the index space as integers modulo the cardinality, so stepping
// past the last identifier wraps to the first and vice versa.
//
// # Thread Safety
//
// A Codec is immutable after New returns and is safe for concurrent use.
// Random only consumes entropy from the source passed to it; callers sharing
// a source across goroutines must synchronize it themselves.
//
// # Errors
//
// All errors wrap one of ErrConfig, ErrOutOfRange, ErrInvalidIdentifier or
// ErrInvalidGrid. Use errors.Is to tell them apart.
package canvas
