// ================== pkg/errors/errors.go =================
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInternal        = errors.New("internal server error")
)

// Error is an application error tagged with one of the kinds above.
// errors.Is matches both the kind and the wrapped cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NotFound builds an ErrNotFound error with a formatted message.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidArgument builds an ErrInvalidArgument error with a formatted message.
func InvalidArgument(format string, args ...any) *Error {
	return &Error{Kind: ErrInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps a storage or infrastructure failure.
func Internal(err error, message string) *Error {
	return &Error{Kind: ErrInternal, Message: message, Err: err}
}

// Message returns the caller-facing message of err, or "" if err is not an *Error.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}
