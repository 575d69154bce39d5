package dto

import (
	"time"

	"github.com/vholenko/it-task-manager/internal/models"
	"github.com/vholenko/it-task-manager/internal/utils"
)

// TaskTypeDTO represents a task type in API responses
type TaskTypeDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Deadline    string              `json:"deadline"`
	IsCompleted bool                `json:"is_completed"`
	Priority    models.TaskPriority `json:"priority"`
	TaskType    *TaskTypeDTO        `json:"task_type,omitempty"`
	Assignees   []WorkerDTO         `json:"assignees"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// DeadlineFormat is the wire format for task deadlines (date only).
const DeadlineFormat = "2006-01-02"

// ToTaskTypeDTO converts a TaskType model to TaskTypeDTO
func ToTaskTypeDTO(taskType models.TaskType) TaskTypeDTO {
	return TaskTypeDTO{
		ID:   taskType.ID,
		Name: taskType.Name,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Deadline:    task.Deadline.Format(DeadlineFormat),
		IsCompleted: task.IsCompleted,
		Priority:    task.Priority,
		Assignees:   []WorkerDTO{},
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include task type if preloaded
	if task.TaskType.ID != 0 {
		taskType := ToTaskTypeDTO(task.TaskType)
		dto.TaskType = &taskType
	}

	// Include assignees if preloaded
	for _, assignment := range task.Assignments {
		dto.Assignees = append(dto.Assignees, ToWorkerDTO(assignment.Worker))
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToTaskListResponse builds the paginated task listing response
func ToTaskListResponse(tasks []models.Task, page, pageSize int, total int64) TaskListResponse {
	return TaskListResponse{
		Tasks: ToTaskDTOs(tasks),
		Pagination: utils.PaginationResponse{
			Page:  page,
			Limit: pageSize,
			Total: total,
		},
	}
}
