package quill

import "errors"

// Class groups errors by their origin.
type Class int

// The available error classes.
const (
	// UnpackClass errors are caused by malformed requests.
	UnpackClass Class = iota

	// AuthorizationClass errors are caused by unusable accounts.
	AuthorizationClass

	// StoreClass errors are caused by the contents or size of an account
	// buffer.
	StoreClass
)

// Error is a program error that is reported to the host.
type Error struct {
	Class Class
	Code  uint32
	Text  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return "quill: " + e.Text
}

// The program errors.
var (
	ErrInvalidInstruction = &Error{Class: UnpackClass, Code: 0, Text: "invalid instruction"}
	ErrMissingAccount     = &Error{Class: UnpackClass, Code: 1, Text: "missing account"}
	ErrWrongOwner         = &Error{Class: AuthorizationClass, Code: 2, Text: "wrong owner"}
	ErrNotWritable        = &Error{Class: AuthorizationClass, Code: 3, Text: "account not writable"}
	ErrTruncated          = &Error{Class: StoreClass, Code: 4, Text: "truncated buffer"}
	ErrCorrupt            = &Error{Class: StoreClass, Code: 5, Text: "corrupt buffer"}
	ErrCapacityExceeded   = &Error{Class: StoreClass, Code: 6, Text: "capacity exceeded"}
)

// Code returns the code of the program error wrapped by err.
func Code(err error) (uint32, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code, true
	}

	return 0, false
}
