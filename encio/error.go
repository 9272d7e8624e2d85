package encio

import (
	"errors"
	"runtime"
)

// Error handling in typedbytes is designed to provide an easy way to distinguish io errors and bad data from encoding errors,
// and to reuse a small set of common error kinds for as many errors as possible, with extra information wrapped as applicable.
// Panics are only used when there is a clear misuse of the library; programmer error.
// All error cases are grouped into two error wrappers; IOError and Error.
// IOError errors indicate a bad or truncated stream, and the caller should stop using it.
// Error errors indicate a value or definition that cannot be encoded, or data that does not follow the format.
//
// In this way, errors can be checked with
//
//	var encErr encio.Error
//	var ioErr encio.IOError
//	if errors.As(err, &encErr) {
//		//handle encoding error
//	} else if errors.As(err, &ioErr) {
//		//handle io error
//	}
//
// or, more commonly, by kind with errors.Is(err, encio.ErrBadType).
var (
	// ErrInsufficientData is returned when fewer bytes are available than a fixed-width or length-prefixed field requires.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrMalformed is returned when the read data is impossible to decode,
	// i.e. a negative size, a boolean byte other than 0 or 1, or invalid UTF-8.
	ErrMalformed = errors.New("malformed")

	// ErrBadType is returned when a value's type matches no definition,
	// or when a value cannot be represented by the chosen encoding without loss.
	ErrBadType = errors.New("bad type")

	// ErrBadValue is returned when a value is of a usable type but outside the range the encoding allows.
	ErrBadValue = errors.New("bad value")

	// ErrUnrecognizedTag is returned when a decoded type tag matches no definition in the active registry.
	ErrUnrecognizedTag = errors.New("unrecognized tag")

	// ErrBadDefinition is returned when a type definition given to a registry is unusable.
	ErrBadDefinition = errors.New("bad definition")

	// ErrTooDeep is returned alongside ErrBadValue or ErrMalformed when containers nest deeper than the configured limit.
	ErrTooDeep = errors.New("nesting too deep")

	// ErrClosed is returned when a closed session is used.
	ErrClosed = errors.New("session closed")
)

// NewIOError returns an IOError wrapping err with the given message.
// err is typically the error returned from the io.Reader/io.Writer, or another error describing why the reader isn't operating correctly.
// message has extra information about the error; if empty, it is filled with the calling function's name.
func NewIOError(err error, message string) error {
	if err == nil {
		return NewError(errors.New("unknown error"), "trying to create new IOError", "encio.NewIOError")
	}
	if message == "" {
		message = "in " + GetCaller(1)
	}

	return IOError{
		Err:     err,
		Message: message,
	}
}

// IOError is returned when io errors occur, or when the stream ends early.
type IOError struct {
	Err     error
	Message string
}

// Error implements error
func (e IOError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap implements errors's Unwrap()
func (e IOError) Unwrap() error {
	return e.Err
}

// NewError returns an Error wrapping err with message and caller.
// If caller is empty, it is automatically filled with the calling function's name.
func NewError(err error, message string, caller string) error {
	if caller == "" {
		caller = GetCaller(1)
	}

	return Error{
		Err:     err,
		Message: message,
		Caller:  caller,
	}
}

// Error is returned when a value or definition cannot be encoded, or decoded data breaks the format.
type Error struct {
	Err     error
	Message string
	Caller  string
}

// Error implements error
func (e Error) Error() (str string) {
	if e.Caller != "" {
		str = e.Caller + ": "
	}

	str += e.Err.Error()

	if e.Message != "" {
		str += " (" + e.Message + ")"
	}

	return str
}

// Unwrap implements errors's Unwrap()
func (e Error) Unwrap() error {
	return e.Err
}

// GetCaller returns the name of the calling function, skipping skip functions.
// i.e. 0 writes the calling function, 1 the function calling that etc...
func GetCaller(skip int) string {
	pcs := make([]uintptr, 1)
	n := runtime.Callers(2+skip, pcs)
	if n != 1 {
		return "Unknown Function"
	}

	frames := runtime.CallersFrames(pcs)
	frame, _ := frames.Next()
	return frame.Function
}
