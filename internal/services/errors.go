package services

import "github.com/vholenko/it-task-manager/internal/validation"

// ValidationError carries field-level detail for input that references
// nonexistent related entities or fails basic form constraints. Handlers
// report it back to the caller; nothing is written when it is returned.
type ValidationError struct {
	Fields []validation.FieldError
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return e.Fields[0].Field + ": " + e.Fields[0].Message
	}
	return "validation failed"
}

// newValidationError wraps a failed validation result
func newValidationError(result validation.Result) *ValidationError {
	return &ValidationError{Fields: result.FieldErrors}
}
