package errors

import "fmt"

// ErrorCode represents a tocedit error code.
type ErrorCode string

const (
	ErrInvalidRequest     ErrorCode = "INVALID_REQUEST"     // 400
	ErrNotFound           ErrorCode = "NOT_FOUND"           // 404
	ErrPersistenceFailure ErrorCode = "PERSISTENCE_FAILURE" // 503
	ErrInternal           ErrorCode = "INTERNAL"            // 500
)

// EditorError represents a structured error with code, status, and details.
// The editing core itself never raises these: validation misses, duplicate
// tags and stale ids are silent no-ops there. EditorError serves the outer
// surfaces (CLI, web, MCP) and the storage layer.
type EditorError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *EditorError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *EditorError {
	return &EditorError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a record or resource that does not exist.
func NewNotFound(identifier string) *EditorError {
	return &EditorError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewPersistenceFailure creates a 503 error for a failed storage read or write.
// The save path surfaces this to the user and leaves the dirty flag set so
// the save can be retried.
func NewPersistenceFailure(err error) *EditorError {
	msg := "storage unavailable"
	if err != nil {
		msg = err.Error()
	}
	return &EditorError{
		Code:    ErrPersistenceFailure,
		Status:  503,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *EditorError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &EditorError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is an EditorError with the given code.
func Is(err error, code ErrorCode) bool {
	if eErr, ok := err.(*EditorError); ok {
		return eErr.Code == code
	}
	return false
}
