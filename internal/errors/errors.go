package errors

import "fmt"

// Kind represents the type of error
type Kind int

const (
	ErrInternal Kind = iota
	ErrInvalidInput
	ErrConfig
	ErrIntegrity
	ErrTimeout
)

// Error is an application-level error with a kind for classification.
// InvalidInput and Config errors are recoverable by the caller; Integrity
// and Timeout errors are fatal to the count invocation that raised them.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fatal reports whether the error must abort the count invocation rather
// than be corrected and retried by the caller.
func (e *Error) Fatal() bool {
	return e.Kind == ErrInternal || e.Kind == ErrIntegrity || e.Kind == ErrTimeout
}

// Constructor functions for common error types

func InvalidInput(msg string) *Error {
	return &Error{Kind: ErrInvalidInput, Message: msg}
}

func InvalidInputf(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func Config(msg string) *Error {
	return &Error{Kind: ErrConfig, Message: msg}
}

func Configf(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrConfig, Message: fmt.Sprintf(format, args...)}
}

func Integrity(err error) *Error {
	return &Error{Kind: ErrIntegrity, Message: "count integrity violated", Err: err}
}

func Timeout(err error) *Error {
	return &Error{Kind: ErrTimeout, Message: "count budget exceeded", Err: err}
}

func Internal(err error) *Error {
	return &Error{Kind: ErrInternal, Message: "internal error", Err: err}
}

func Internalf(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}
