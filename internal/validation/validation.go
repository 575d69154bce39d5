// Package validation holds the reference checks the mutation workflows run
// before touching the store, so a bad foreign reference surfaces as a
// field-level error instead of a database constraint failure.
package validation

import (
	"errors"
	"fmt"

	"github.com/vholenko/it-task-manager/internal/repository"
	"gorm.io/gorm"
)

// FieldError describes a single invalid field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result collects field errors from one validation pass
type Result struct {
	FieldErrors []FieldError
}

// Add records a failed field
func (r *Result) Add(field, message string) {
	r.FieldErrors = append(r.FieldErrors, FieldError{Field: field, Message: message})
}

// OK reports whether the validated input passed
func (r *Result) OK() bool {
	return len(r.FieldErrors) == 0
}

// PositionRef verifies that a position reference, when set, points at an
// existing position.
func PositionRef(positions repository.PositionRepository, positionID *uint64) (Result, error) {
	var result Result

	if positionID == nil {
		return result, nil
	}

	if _, err := positions.FindByID(*positionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			result.Add("position", "Position must be one of the defined in the task manager")
			return result, nil
		}
		return result, fmt.Errorf("failed to look up position: %w", err)
	}

	return result, nil
}

// TaskTypeRef verifies that a task type reference points at an existing type.
func TaskTypeRef(taskTypes repository.TaskTypeRepository, taskTypeID uint64) (Result, error) {
	var result Result

	if _, err := taskTypes.FindByID(taskTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			result.Add("task_type", "Task type must be one of the defined in the task manager")
			return result, nil
		}
		return result, fmt.Errorf("failed to look up task type: %w", err)
	}

	return result, nil
}

// WorkerRefs verifies that every id refers to an existing worker and names
// the invalid ids in the field error.
func WorkerRefs(workers repository.WorkerRepository, ids []uint64) (Result, error) {
	var result Result

	missing, err := workers.MissingIDs(ids)
	if err != nil {
		return result, fmt.Errorf("failed to look up workers: %w", err)
	}

	if len(missing) > 0 {
		result.Add("assignees", fmt.Sprintf("unknown worker ids: %v", missing))
	}

	return result, nil
}
