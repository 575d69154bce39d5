package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vholenko/it-task-manager/internal/constants"
	"github.com/vholenko/it-task-manager/internal/dto"
	apierrors "github.com/vholenko/it-task-manager/internal/errors"
	"github.com/vholenko/it-task-manager/internal/services"
	"github.com/vholenko/it-task-manager/internal/utils"
)

// WorkerHandler coordinates worker listing and lifecycle HTTP handlers.
type WorkerHandler struct {
	workerService *services.WorkerService
	authService   *services.AuthService
}

// NewWorkerHandler creates a new WorkerHandler
func NewWorkerHandler(workerService *services.WorkerService, authService *services.AuthService) *WorkerHandler {
	return &WorkerHandler{
		workerService: workerService,
		authService:   authService,
	}
}

// ListWorkers returns workers ordered by username, optionally filtered by a
// case-insensitive username substring (?username=).
func (h *WorkerHandler) ListWorkers(c *gin.Context) {
	params := utils.GetPaginationParams(c, constants.WorkerPageSize)

	workers, total, err := h.workerService.ListWorkers(services.ListWorkersInput{
		Username: c.Query("username"),
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch workers")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkerListResponse(workers, params.Page, params.Limit, total))
}

// GetWorker returns a specific worker by ID
func (h *WorkerHandler) GetWorker(c *gin.Context) {
	workerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	worker, err := h.workerService.GetWorker(workerID)
	if err != nil {
		respondWorkerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkerDTO(*worker))
}

// CreateWorker registers a worker on behalf of an administrator.
func (h *WorkerHandler) CreateWorker(c *gin.Context) {
	type CreateWorkerRequest struct {
		Username    string  `json:"username" binding:"required,min=3,max=50"`
		Password    string  `json:"password" binding:"required"`
		FirstName   string  `json:"first_name"`
		LastName    string  `json:"last_name"`
		Email       string  `json:"email"`
		PositionID  *uint64 `json:"position_id"`
		IsSuperuser bool    `json:"is_superuser"`
	}

	var req CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	worker, err := h.authService.Signup(services.SignupInput{
		Username:    req.Username,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PositionID:  req.PositionID,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkerDTO(*worker))
}

// UpdatePosition moves a worker to a new position via the dedicated update
// workflow. A null position_id clears the assignment.
func (h *WorkerHandler) UpdatePosition(c *gin.Context) {
	workerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdatePositionRequest struct {
		PositionID *uint64 `json:"position_id"`
	}

	var req UpdatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	worker, err := h.workerService.UpdatePosition(workerID, req.PositionID)
	if err != nil {
		respondWorkerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkerDTO(*worker))
}

// DeleteWorker removes a worker and their task assignments
func (h *WorkerHandler) DeleteWorker(c *gin.Context) {
	workerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.workerService.DeleteWorker(workerID); err != nil {
		respondWorkerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Worker deleted successfully",
	})
}

func respondWorkerError(c *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &validationErr):
		apierrors.ValidationFailed(c, "Validation failed", validationErr.Fields)
	case errors.Is(err, services.ErrWorkerNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

// parseIDParam parses the :id URL parameter, responding with 400 on garbage
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}
