package apperrors

import "errors"

// Data access errors
var (
	// ErrTransport means the store was unreachable or rejected the request.
	ErrTransport = errors.New("data store unavailable")
	// ErrNotFound means a single-row lookup matched nothing. Callers that
	// treat absence as a valid outcome check for it explicitly.
	ErrNotFound = errors.New("resource not found")
	// ErrNoDataFound means a well-formed query matched no rows in any lookup.
	ErrNoDataFound = errors.New("no data found")
)

// Request errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Export errors
var (
	ErrEmptyRoster = errors.New("roster has no students to export")
)

// NewTransportError wraps a store or network failure so it matches ErrTransport
// while keeping the original cause reachable through errors.Is/As.
func NewTransportError(message string, cause error) *CustomError {
	return &CustomError{
		Err:     ErrTransport,
		Message: message,
		Cause:   cause,
	}
}

// NewNotFoundError creates a new custom error for resource not found with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Cause   error
}

// Error implements error interface
func (e *CustomError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = "unknown error"
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel and the cause to errors.Is/As
func (e *CustomError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
