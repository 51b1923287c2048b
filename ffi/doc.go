// Package ffi is the flat boundary surface over the shaping core.
//
// Every entry point is a method on Boundary taking and returning only
// primitives, handles and fixed-layout ABI structs, so the surface can
// be mirrored mechanically by a binding layer. Failures never escape
// as errors or panics: status-returning entry points report a negative
// sentinel, handle-returning entry points report the null handle, and
// query entry points report a documented in-band value (-1, 0 or nil).
//
// Ownership follows the handle: buffers, fonts and results belong to
// the caller until freed, a shape call consumes its buffer handle, and
// retiring a result consumes the result handle and yields a fresh
// buffer handle. Null-handle and null-argument failures are detected
// before any ownership transfer and leave every resource untouched.
package ffi
