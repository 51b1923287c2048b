// Package errors provides structured error types for the shapebridge
// library.
//
// Errors are categorized by Phase (where the error occurred) and Kind
// (error category). Nothing is ever raised across the boundary; the
// ffi layer flattens every error into a small negative status code via
// Status(), while the full error remains available for logging on the
// Go side.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseFont, errors.KindFontParse).
//		Detail("table directory truncated").
//		Cause(parseErr).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NullArgument(errors.PhaseBuffer, "text")
//	err := errors.InvalidUTF8(errors.PhaseBuffer, data)
//
// All errors implement the standard error interface and support
// errors.Is/As.
package errors
