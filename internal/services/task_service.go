package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/vholenko/it-task-manager/internal/constants"
	"github.com/vholenko/it-task-manager/internal/models"
	"github.com/vholenko/it-task-manager/internal/repository"
	"github.com/vholenko/it-task-manager/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTaskNameRequired = errors.New("task name is required")
	ErrInvalidPriority = errors.New("priority must be one of Urgent, High, Medium, Low")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo     repository.TaskRepository
	workerRepo   repository.WorkerRepository
	taskTypeRepo repository.TaskTypeRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, workerRepo repository.WorkerRepository, taskTypeRepo repository.TaskTypeRepository) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		workerRepo:   workerRepo,
		taskTypeRepo: taskTypeRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name        string
	Description string
	Deadline    time.Time
	Priority    models.TaskPriority
	TaskTypeID  uint64
	AssigneeIDs []uint64
}

// CreateTask creates a new task after validating the task type and assignee
// references. Assignees may be empty at creation.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Name == "" {
		return nil, ErrTaskNameRequired
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	result, err := validation.TaskTypeRef(s.taskTypeRepo, input.TaskTypeID)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return nil, newValidationError(result)
	}

	assigneeIDs := uniqueUint64(input.AssigneeIDs)
	if len(assigneeIDs) > 0 {
		result, err := validation.WorkerRefs(s.workerRepo, assigneeIDs)
		if err != nil {
			return nil, err
		}
		if !result.OK() {
			return nil, newValidationError(result)
		}
	}

	task := &models.Task{
		Name:        input.Name,
		Description: input.Description,
		Deadline:    input.Deadline,
		Priority:    input.Priority,
		TaskTypeID:  input.TaskTypeID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if len(assigneeIDs) > 0 {
		if err := s.taskRepo.ReplaceAssignees(task.ID, assigneeIDs); err != nil {
			return nil, fmt.Errorf("failed to assign workers to task: %w", err)
		}
	}

	return s.taskRepo.FindByID(task.ID, "TaskType", "Assignments", "Assignments.Worker")
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Name     string
	SortBy   string
	Page     int
	PageSize int
}

// ListTasks returns tasks for the listing page. A name filter wins over the
// sort key; without either the default deadline-then-priority order applies.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		Name:     input.Name,
		SortBy:   input.SortBy,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task with its type and assignees
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "TaskType", "Assignments", "Assignments.Worker")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// SetCompletion updates a task's completion flag. A nil value leaves the task
// unchanged and is not an error. The returned bool reports whether the flag
// was applied; repeated calls with the same value are idempotent.
func (s *TaskService) SetCompletion(taskID uint64, isCompleted *bool) (*models.Task, bool, error) {
	task, err := s.taskRepo.FindByID(taskID, "TaskType", "Assignments", "Assignments.Worker")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrTaskNotFound
		}
		return nil, false, fmt.Errorf("failed to find task: %w", err)
	}

	if isCompleted == nil {
		return task, false, nil
	}

	task.IsCompleted = *isCompleted
	if err := s.taskRepo.Update(task); err != nil {
		return nil, false, fmt.Errorf("failed to update task status: %w", err)
	}

	return task, true, nil
}

// DeleteTask removes a task and its assignment rows
func (s *TaskService) DeleteTask(taskID uint64) error {
	if err := s.taskRepo.Delete(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// Assignees returns the task's current assignee set, for pre-populating the
// assignment form.
func (s *TaskService) Assignees(taskID uint64) ([]models.Worker, error) {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	workers, err := s.taskRepo.ListAssignees(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignees: %w", err)
	}

	return workers, nil
}

// ReplaceAssignees atomically replaces the task's full assignee set. Workers
// missing from workerIDs are unassigned, newly listed ones are assigned.
func (s *TaskService) ReplaceAssignees(taskID uint64, workerIDs []uint64) (*models.Task, error) {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	uniqueIDs := uniqueUint64(workerIDs)

	result, err := validation.WorkerRefs(s.workerRepo, uniqueIDs)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return nil, newValidationError(result)
	}

	if err := s.taskRepo.ReplaceAssignees(taskID, uniqueIDs); err != nil {
		return nil, fmt.Errorf("failed to replace assignees: %w", err)
	}

	return s.taskRepo.FindByID(taskID, "TaskType", "Assignments", "Assignments.Worker")
}

// UrgentHighOpenTasks returns not-completed tasks with Urgent or High priority
func (s *TaskService) UrgentHighOpenTasks() ([]models.Task, error) {
	open := false
	tasks, _, err := s.taskRepo.List(repository.TaskFilter{
		Priorities:  []models.TaskPriority{models.PriorityUrgent, models.PriorityHigh},
		IsCompleted: &open,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list urgent and high priority tasks: %w", err)
	}

	return tasks, nil
}

// CompletedTasks returns all completed tasks
func (s *TaskService) CompletedTasks() ([]models.Task, error) {
	completed := true
	tasks, _, err := s.taskRepo.List(repository.TaskFilter{
		IsCompleted: &completed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list completed tasks: %w", err)
	}

	return tasks, nil
}

// DueSoonTasks returns the worker's tasks with a deadline within the
// notification window, deadline ascending.
func (s *TaskService) DueSoonTasks(workerID uint64) ([]models.Task, error) {
	deadline := time.Now().AddDate(0, 0, constants.DueSoonDays)
	tasks, _, err := s.taskRepo.List(repository.TaskFilter{
		AssignedWorkerID: &workerID,
		DueBefore:        &deadline,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list due soon tasks: %w", err)
	}

	return tasks, nil
}

// TasksAssignedTo returns every task assigned to a worker
func (s *TaskService) TasksAssignedTo(workerID uint64) ([]models.Task, error) {
	tasks, _, err := s.taskRepo.List(repository.TaskFilter{
		AssignedWorkerID: &workerID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned tasks: %w", err)
	}

	return tasks, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
