package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseBuffer Phase = "buffer" // text buffer construction and configuration
	PhaseFont   Phase = "font"   // font store construction and queries
	PhaseShape  Phase = "shape"  // shape orchestration
	PhaseResult Phase = "result" // glyph result access and recycling
	PhaseHost   Phase = "host"   // host module registration
)

// Kind categorizes the error
type Kind string

const (
	KindNullHandle      Kind = "null_handle"      // required primary handle absent
	KindNullArgument    Kind = "null_argument"    // required secondary argument absent or invalid
	KindInvalidUTF8     Kind = "invalid_utf8"     // text bytes not valid in the declared encoding
	KindInvalidLanguage Kind = "invalid_language" // language tag failed BCP-47 parsing
	KindFontParse       Kind = "font_parse"       // font bytes failed validation
	KindReparse         Kind = "reparse"          // previously validated font failed a later transient parse
	KindConsumed        Kind = "consumed"         // buffer reused after ownership transfer
	KindInvalidated     Kind = "invalidated"      // result accessed after recycle or free
	KindRegistration    Kind = "registration"     // host function registration failure
)

// Sentinel status codes communicated across the boundary. Every
// status-returning entry point uses these; handle-returning entry
// points use the null handle instead.
const (
	StatusOK           int32 = 0
	StatusNullHandle   int32 = -1
	StatusNullArgument int32 = -2
	StatusEncoding     int32 = -3
	StatusValidation   int32 = -4
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Status flattens the error into the boundary's sentinel code.
// A nil error is StatusOK.
func (e *Error) Status() int32 {
	if e == nil {
		return StatusOK
	}
	switch e.Kind {
	case KindNullHandle, KindConsumed, KindInvalidated:
		return StatusNullHandle
	case KindNullArgument:
		return StatusNullArgument
	case KindInvalidUTF8:
		return StatusEncoding
	case KindInvalidLanguage, KindFontParse, KindReparse:
		return StatusValidation
	default:
		return StatusValidation
	}
}

// StatusOf flattens any error into a sentinel code. Errors that are
// not *Error collapse to StatusValidation.
func StatusOf(err error) int32 {
	if err == nil {
		return StatusOK
	}
	if e, ok := err.(*Error); ok {
		return e.Status()
	}
	return StatusValidation
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NullHandle creates a missing primary handle error
func NullHandle(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNullHandle,
		Detail: "required handle is null",
	}
}

// NullArgument creates a missing secondary argument error
func NullArgument(phase Phase, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNullArgument,
		Detail: fmt.Sprintf("required argument %q absent or invalid", name),
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// InvalidLanguage creates a language tag parse error
func InvalidLanguage(phase Phase, tag string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidLanguage,
		Detail: fmt.Sprintf("language tag %q is not valid BCP-47", tag),
		Value:  tag,
		Cause:  cause,
	}
}

// FontParse creates a font validation error
func FontParse(phase Phase, index int, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFontParse,
		Detail: fmt.Sprintf("font data failed to parse at face index %d", index),
		Value:  index,
		Cause:  cause,
	}
}

// Reparse creates a defensive re-parse failure error. The font was
// validated at construction, so this indicates corrupted state rather
// than bad input; it is still reported, never raised.
func Reparse(phase Phase, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindReparse,
		Detail: "previously validated font failed to re-parse",
		Cause:  cause,
	}
}

// Consumed creates an error for use of a buffer after ownership
// transfer
func Consumed(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindConsumed,
		Detail: "buffer was consumed by a shape call",
	}
}

// Invalidated creates an error for access to a recycled or freed
// result
func Invalidated(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidated,
		Detail: "result was recycled or freed",
	}
}

// Registration creates a host function registration error
func Registration(phase Phase, namespace, function string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("failed to register %s/%s", namespace, function),
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
