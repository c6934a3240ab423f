// Package errors defines the structured error type used throughout gitkit.
package errors // import "gitkit.dev/errors"

import (
	"bytes"
	"fmt"
	"runtime"
)

// Kind classifies an error for callers that want to branch on failure mode
// without string-matching messages. It mirrors the taxonomy used by every
// component of the object store and wire-protocol client.
type Kind uint8

// The recognized error kinds.
const (
	Other Kind = iota // Unclassified error; not printed in the message.
	InvalidInput
	NotFound
	MalformedObject
	MalformedFrame
	MalformedPack
	UnsupportedScheme
	UnsupportedObjectFormat
	TransportFailure
	AlreadyExists
	UnexpectedEOF
	Interrupted
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case NotFound:
		return "not found"
	case MalformedObject:
		return "malformed object"
	case MalformedFrame:
		return "malformed frame"
	case MalformedPack:
		return "malformed pack"
	case UnsupportedScheme:
		return "unsupported scheme"
	case UnsupportedObjectFormat:
		return "unsupported object format"
	case TransportFailure:
		return "transport failure"
	case AlreadyExists:
		return "already exists"
	case UnexpectedEOF:
		return "unexpected EOF"
	case Interrupted:
		return "interrupted"
	}
	return "unknown error kind"
}

// Error is the error type produced by every gitkit component.
type Error struct {
	// Path is the object id, file path, or URL the operation concerned.
	Path string
	// Op is the operation being performed, e.g. "objstore.Write".
	Op string
	// Kind classifies the failure.
	Kind Kind
	// Err is the underlying error, if any.
	Err error
}

var _ error = (*Error)(nil)

// E builds an *Error from its arguments. The type of each argument
// determines its meaning:
//
//	string      the operation name (Op) the first time seen, Path thereafter
//	Kind        the error classification
//	error       the wrapped underlying error
//
// If more than one argument of a given type is given, the last wins. If the
// wrapped error is itself an *Error and this call's Kind is unset, the
// wrapped Kind is promoted so callers see the most specific classification.
func E(args ...interface{}) error {
	if len(args) == 0 {
		return nil
	}
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case string:
			if e.Op == "" {
				e.Op = a
			} else {
				e.Path = a
			}
		case Kind:
			e.Kind = a
		case *Error:
			cp := *a
			e.Err = &cp
		case error:
			e.Err = a
		default:
			_, file, line, _ := runtime.Caller(1)
			return Errorf("errors.E: bad call from %s:%d: %T(%v)", file, line, arg, arg)
		}
	}
	if prev, ok := e.Err.(*Error); ok && e.Kind == Other {
		e.Kind = prev.Kind
		prev.Kind = Other
	}
	return e
}

func pad(b *bytes.Buffer, s string) {
	if b.Len() > 0 {
		b.WriteString(s)
	}
}

func (e *Error) Error() string {
	b := new(bytes.Buffer)
	if e.Op != "" {
		b.WriteString(e.Op)
	}
	if e.Path != "" {
		pad(b, ": ")
		b.WriteString(e.Path)
	}
	if e.Kind != Other {
		pad(b, ": ")
		b.WriteString(e.Kind.String())
	}
	if e.Err != nil {
		pad(b, ": ")
		b.WriteString(e.Err.Error())
	}
	if b.Len() == 0 {
		return "no error"
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether err is (or wraps) an *Error of the given Kind.
func Is(kind Kind, err error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	if e.Kind != Other {
		return e.Kind == kind
	}
	return Is(kind, e.Err)
}

// Str returns an error, to be used as the error-typed argument to E, that
// formats as the given text.
func Str(text string) error {
	return &errorString{text}
}

// Errorf formats according to the given format specifier and returns an
// error suitable for use as the error-typed argument to E.
func Errorf(format string, args ...interface{}) error {
	return &errorString{fmt.Sprintf(format, args...)}
}

type errorString struct{ s string }

func (e *errorString) Error() string { return e.s }
