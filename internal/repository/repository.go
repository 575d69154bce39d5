package repository

import (
	"errors"
	"time"

	"github.com/vholenko/it-task-manager/internal/models"
)

// ErrDependentRows is returned by deletes that are blocked because other rows
// still reference the target entity.
var ErrDependentRows = errors.New("repository: delete blocked by dependent rows")

// PositionRepository defines the interface for position data access
type PositionRepository interface {
	// Create creates a new position
	Create(position *models.Position) error

	// FindByID finds a position by ID
	FindByID(id uint64) (*models.Position, error)

	// List returns all positions ordered by name
	List() ([]models.Position, error)

	// Delete removes a position; fails with ErrDependentRows while any worker
	// references it
	Delete(id uint64) error
}

// TaskTypeRepository defines the interface for task type data access
type TaskTypeRepository interface {
	// Create creates a new task type
	Create(taskType *models.TaskType) error

	// FindByID finds a task type by ID
	FindByID(id uint64) (*models.TaskType, error)

	// List returns all task types ordered by name
	List() ([]models.TaskType, error)

	// Delete removes a task type; fails with ErrDependentRows while any task
	// references it
	Delete(id uint64) error
}

// WorkerFilter holds filtering options for listing workers
type WorkerFilter struct {
	// Username filters by case-insensitive substring match when non-empty
	Username string
	Page     int
	PageSize int
}

// WorkerRepository defines the interface for worker data access
type WorkerRepository interface {
	// Create creates a new worker
	Create(worker *models.Worker) error

	// FindByID finds a worker by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Worker, error)

	// FindByUsername finds a worker by username
	FindByUsername(username string) (*models.Worker, error)

	// List retrieves workers with filtering and pagination, ordered by
	// username then position
	List(filter WorkerFilter) ([]models.Worker, int64, error)

	// ListAll returns every worker ordered by username
	ListAll() ([]models.Worker, error)

	// UpdatePosition sets (or clears) a worker's position
	UpdatePosition(workerID uint64, positionID *uint64) error

	// Delete removes a worker together with their assignment rows
	Delete(id uint64) error

	// MissingIDs returns the subset of ids with no matching worker row
	MissingIDs(ids []uint64) ([]uint64, error)

	// Count returns the total number of workers
	Count() (int64, error)
}

// TaskFilter holds filtering options for listing tasks. A non-empty Name
// takes precedence over SortBy: the filtered listing keeps the default order.
type TaskFilter struct {
	Name             string
	SortBy           string
	Priorities       []models.TaskPriority
	IsCompleted      *bool
	AssignedWorkerID *uint64
	DueBefore        *time.Time
	Page             int
	PageSize         int
}

// Task listing sort keys
const (
	SortByName      = "name"
	SortByDeadline  = "deadline"
	SortByPriority  = "priority"
	SortByCompleted = "completed"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering, sorting and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task and its assignment rows
	Delete(id uint64) error

	// ReplaceAssignees atomically replaces the task's full assignee set
	ReplaceAssignees(taskID uint64, workerIDs []uint64) error

	// ListAssignees returns the workers currently assigned to a task,
	// ordered by username
	ListAssignees(taskID uint64) ([]models.Worker, error)

	// Count returns the total number of tasks
	Count() (int64, error)

	// CountCompleted returns the number of completed tasks
	CountCompleted() (int64, error)

	// CountOpenByPriority returns the number of not-completed tasks with the
	// given priority
	CountOpenByPriority(priority models.TaskPriority) (int64, error)
}
