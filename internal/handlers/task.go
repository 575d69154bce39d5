package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vholenko/it-task-manager/internal/constants"
	"github.com/vholenko/it-task-manager/internal/dto"
	apierrors "github.com/vholenko/it-task-manager/internal/errors"
	"github.com/vholenko/it-task-manager/internal/middleware"
	"github.com/vholenko/it-task-manager/internal/models"
	"github.com/vholenko/it-task-manager/internal/services"
	"github.com/vholenko/it-task-manager/internal/utils"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the task listing. ?name= filters by case-insensitive
// substring and then wins over ?sort_by=; otherwise sort_by is one of
// name, deadline, priority, completed.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c, constants.TaskPageSize)

	tasks, total, err := h.taskService.ListTasks(services.ListTasksInput{
		Name:     c.Query("name"),
		SortBy:   c.Query("sort_by"),
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task. Assignees may be empty.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		Deadline    string   `json:"deadline" binding:"required"`
		Priority    string   `json:"priority" binding:"required"`
		TaskTypeID  uint64   `json:"task_type_id" binding:"required"`
		AssigneeIDs []uint64 `json:"assignee_ids"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	deadline, err := time.Parse(dto.DeadlineFormat, req.Deadline)
	if err != nil {
		apierrors.BadRequest(c, "Deadline must be a date in YYYY-MM-DD format")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    deadline,
		Priority:    models.TaskPriority(req.Priority),
		TaskTypeID:  req.TaskTypeID,
		AssigneeIDs: req.AssigneeIDs,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateStatus sets the task's completion flag. A null is_completed leaves
// the task unchanged and is not an error.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		IsCompleted *bool `json:"is_completed"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, changed, err := h.taskService.SetCompletion(taskID, req.IsCompleted)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response := gin.H{"task": dto.ToTaskDTO(*task)}
	if changed {
		response["message"] = "Task status updated successfully"
	}

	c.JSON(http.StatusOK, response)
}

// DeleteTask removes a task and its assignment rows
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// GetAssignees returns the task's current assignee set, for pre-populating
// the assignment form.
func (h *TaskHandler) GetAssignees(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	workers, err := h.taskService.Assignees(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assignees": dto.ToWorkerDTOs(workers),
	})
}

// ReplaceAssignees replaces the task's full assignee set. Reachable only via
// POST so a page load can never trigger a mass reassignment.
func (h *TaskHandler) ReplaceAssignees(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type ReplaceAssigneesRequest struct {
		WorkerIDs []uint64 `json:"worker_ids"`
	}

	var req ReplaceAssigneesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.ReplaceAssignees(taskID, req.WorkerIDs)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ListUrgentHigh returns not-completed tasks with Urgent or High priority
func (h *TaskHandler) ListUrgentHigh(c *gin.Context) {
	tasks, err := h.taskService.UrgentHighOpenTasks()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// ListCompleted returns all completed tasks
func (h *TaskHandler) ListCompleted(c *gin.Context) {
	tasks, err := h.taskService.CompletedTasks()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// ListDueSoon returns the caller's tasks with a deadline inside the
// notification window, deadline ascending.
func (h *TaskHandler) ListDueSoon(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.DueSoonTasks(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

func respondTaskError(c *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &validationErr):
		apierrors.ValidationFailed(c, "Validation failed", validationErr.Fields)
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskNameRequired),
		errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
