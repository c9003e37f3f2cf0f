package apperr

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Kind classifies application errors. The string value is what clients see
// in the "type" field of an error response.
type Kind string

const (
	ConfigError     Kind = "CONFIG_ERROR"
	NetworkError    Kind = "NETWORK_ERROR"
	DataError       Kind = "DATA_ERROR"
	ValidationError Kind = "VALIDATION_ERROR" // reserved
	ServerError     Kind = "SERVER_ERROR"
)

// Error is an application error carrying a kind and a client-safe message
type Error struct {
	Kind      Kind
	Message   string
	Err       error
	Timestamp time.Time
}

// New creates an Error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{
		Kind:      kind,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Wrap creates an Error of the given kind around an underlying cause
func Wrap(kind Kind, message string, err error) *Error {
	e := New(kind, message)
	e.Err = err
	return e
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain.
// Errors that are not application errors are reported as ServerError.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ServerError
}

// Is reports whether err carries an application error of the given kind
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// StatusCode maps an error kind to the HTTP status returned to clients.
// All kinds share 500 for now; callers must go through here rather than
// hardcoding the status.
func StatusCode(kind Kind) int {
	return http.StatusInternalServerError
}
