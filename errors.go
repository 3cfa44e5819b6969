package ltsv

import (
	"fmt"
	"unicode/utf8"
)

// ErrorKind classifies an *Error.
type ErrorKind uint8

const (
	// InvalidInput is a malformed line, or a shape, key or value that has no
	// LTSV representation.
	InvalidInput ErrorKind = iota + 1
	// Materialization wraps a failure of the value layer while converting
	// between a generic value and the caller's type.
	Materialization
	// TextDecoding is a byte-sequence key or value that is not valid UTF-8.
	TextDecoding
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case Materialization:
		return "materialization"
	case TextDecoding:
		return "text decoding"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrInvalidInput    = &Error{Kind: InvalidInput}
	ErrMaterialization = &Error{Kind: Materialization}
	ErrTextDecoding    = &Error{Kind: TextDecoding}
)

// Error is the single error type returned by Marshal, Unmarshal and friends.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("ltsv: %s: %v", e.Msg, e.Err)
	case e.Msg != "":
		return "ltsv: " + e.Msg
	case e.Err != nil:
		return "ltsv: " + e.Err.Error()
	default:
		return "ltsv: " + e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinel errors (no message, no cause) by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Msg != "" || t.Err != nil {
		return false
	}
	return t.Kind == e.Kind
}

func invalidInput(format string, args ...any) error {
	return &Error{Kind: InvalidInput, Msg: fmt.Sprintf(format, args...)}
}

func materialization(err error) error {
	return &Error{Kind: Materialization, Err: err}
}

// textDecoding reports the offset of the first byte of b that does not start
// a valid UTF-8 sequence.
func textDecoding(b []byte) error {
	off := 0
	for off < len(b) {
		r, size := utf8.DecodeRune(b[off:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		off += size
	}
	return &Error{Kind: TextDecoding, Msg: fmt.Sprintf("invalid utf-8 sequence at byte offset %d", off)}
}
