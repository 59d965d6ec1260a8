package jobs

import (
	"errors"
	"fmt"
)

var (
	// ErrNilTask indicates a nil task was handed to the executor.
	ErrNilTask = errors.New("jobs: task must not be nil")
	// ErrUnknownEntrypoint indicates a message entrypoint with no registered factory.
	ErrUnknownEntrypoint = errors.New("jobs: unknown entrypoint")
	// ErrEntrypointExists indicates an entrypoint registration collision.
	ErrEntrypointExists = errors.New("jobs: entrypoint already registered")
	// ErrEmptyEntrypoint indicates a registration without an entrypoint path.
	ErrEmptyEntrypoint = errors.New("jobs: entrypoint must not be empty")
)

// Kind classifies a task failure.
type Kind string

const (
	// KindValidation marks failures detected before any task logic ran.
	KindValidation Kind = "ValidationError"
	// KindRun marks failures returned by the task's own logic.
	KindRun Kind = "RunError"
	// KindPanic marks a panic recovered from the task's run logic.
	KindPanic Kind = "PanicError"
)

// Error is the structured failure consumed by the executor: a classification,
// an HTTP-flavoured numeric code, a human-readable message, and an optional
// detail map that ends up in the failure result's retval payload.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Code, e.Message)
}

// WithDetail attaches a key/value pair to the error's detail map.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, 1)
	}
	e.Details[key] = value
	return e
}

// NewError builds an Error with the given classification, code and message.
func NewError(kind Kind, code int, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// MissingParameter reports a required parameter absent from a task's
// parameter map.
func MissingParameter(name string) *Error {
	return NewError(KindValidation, 400, fmt.Sprintf("missing required parameter %q", name)).
		WithDetail("parameter", name)
}

// Unexpected wraps an unclassified failure message as a run error.
func Unexpected(message string) *Error {
	return NewError(KindRun, 500, message)
}

// AsError coerces any error into an *Error. Errors already carrying a
// classification pass through unchanged; everything else becomes an
// unexpected run error with the original message.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Unexpected(err.Error())
}
