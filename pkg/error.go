package pkg

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Sentinel errors shared by all flagset packages.
// These errors can be tested using errors.Is for reliable error checking,
// including after they have been decorated with [Error.Wrap], [Error.With],
// or [Error.WithPosition].
var (
	// ErrEmptyPath is returned when an invocation has no namespace path in
	// front of its brace list, as in "{A | B}".
	ErrEmptyPath = NewError("empty path prefix")

	// ErrMalformedPath is returned when a path segment is not followed by
	// "::" or is not an identifier.
	ErrMalformedPath = NewError("malformed path")

	// ErrMalformedList is returned when the brace contents do not match the
	// item list grammar: a dangling separator, an item that is not a plain
	// identifier, an unrecognized separator, or an unmatched brace.
	ErrMalformedList = NewError("malformed item list")

	// ErrTrailingInput is returned when input follows the closing brace.
	ErrTrailingInput = NewError("unexpected input after item list")

	// ErrUnresolvedElement is returned by a resolver when a qualified element
	// or its containing type does not exist.
	ErrUnresolvedElement = NewError("unresolved element")

	// ErrIncompatibleType is returned when a flag-bearing type cannot be
	// combined into a set, e.g. its flag values are not integers.
	ErrIncompatibleType = NewError("incompatible type")

	// ErrReadInput is returned when reading input fails.
	ErrReadInput = NewError("failed to read input")

	// ErrLoadDefinitions is returned when a definitions file cannot be
	// loaded.
	ErrLoadDefinitions = NewError("failed to load definitions")

	// ErrInvalidFormat is returned when an invalid output format is
	// specified.
	ErrInvalidFormat = NewError("invalid format")

	// ErrNoSource is returned when a command requires definitions but none
	// were provided.
	ErrNoSource = NewError("no definitions provided")
)

// Position identifies a location in DSL source text.
// Line and Column are 1-based; Offset is a 0-based byte offset.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String returns the position formatted as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// IsValid reports whether p refers to an actual location.
func (p Position) IsValid() bool { return p.Line > 0 }

// Error represents an error with an optional source position and structured
// logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	root  *Error      // Sentinel this error was derived from
	msg   string      // Base message
	err   error       // Wrapped error (for errors.Unwrap)
	pos   *Position   // Offending source location, if known
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.root = e

	return e
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	e := &Error{err: err}
	e.root = e

	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg> at <pos>: <err>"
	//   2. "<msg>: <err>"
	//   3. "<msg>"
	//   4. "<err>"
	part := make([]string, 0, 2)

	if e.msg != "" {
		if e.pos != nil {
			part = append(part, e.msg+" at "+e.pos.String())
		} else {
			part = append(part, e.msg)
		}
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}

	return e.root != nil && e.root == t.root
}

// Position returns the source location attached to e, if any.
func (e *Error) Position() (Position, bool) {
	if e.pos == nil {
		return Position{}, false
	}

	return *e.pos, true
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.pos != nil {
		attrs = append(attrs, slog.String("position", e.pos.String()))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

func (e *Error) clone() *Error {
	c := *e

	return &c
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// Wrapf creates a new Error wrapping a formatted error message.
func (e *Error) Wrapf(format string, args ...any) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// WithPosition returns a copy of e that reports the given source location.
func (e *Error) WithPosition(pos Position) *Error {
	c := e.clone()
	c.pos = &pos

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	c := e.clone()
	c.attrs = newAttrs

	return c
}

// Attrs returns the structured logging attributes attached to e.
func (e *Error) Attrs() []slog.Attr { return e.attrs }
