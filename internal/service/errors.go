package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by TaskService. Callers check them with errors.Is.
//
// Error handling principles:
// 1. Expected conditions are sentinel errors (not found, invalid id, validation)
// 2. Unexpected storage failures are wrapped in TaskServiceError and match ErrStorage
// 3. The API layer maps service errors to HTTP status codes
var (
	// ErrTaskNotFound indicates no task exists with the requested id.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrStorage indicates the underlying store failed for a reason other than
	// a missing task or invalid input. API layer should map this to HTTP 500.
	ErrStorage = errors.New("storage failure")
)

// TaskServiceError wraps an unexpected failure of a task operation.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// Is reports ErrStorage as a match so every TaskServiceError is classified
// as a storage failure.
func (e *TaskServiceError) Is(target error) bool {
	return target == ErrStorage
}

// NewTaskServiceError creates a new TaskServiceError.
func NewTaskServiceError(operation, message string, err error) *TaskServiceError {
	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
