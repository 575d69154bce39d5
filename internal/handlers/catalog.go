package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vholenko/it-task-manager/internal/dto"
	apierrors "github.com/vholenko/it-task-manager/internal/errors"
	"github.com/vholenko/it-task-manager/internal/services"
)

// CatalogHandler serves the reference entities: positions and task types.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

type createNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreatePosition creates a new position
func (h *CatalogHandler) CreatePosition(c *gin.Context) {
	var req createNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	position, err := h.catalogService.CreatePosition(req.Name)
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPositionDTO(*position))
}

// ListPositions returns all positions ordered by name
func (h *CatalogHandler) ListPositions(c *gin.Context) {
	positions, err := h.catalogService.ListPositions()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch positions")
		return
	}

	dtos := make([]dto.PositionDTO, len(positions))
	for i, position := range positions {
		dtos[i] = dto.ToPositionDTO(position)
	}

	c.JSON(http.StatusOK, gin.H{"positions": dtos})
}

// DeletePosition removes a position unless workers still hold it
func (h *CatalogHandler) DeletePosition(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeletePosition(id); err != nil {
		respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Position deleted successfully",
	})
}

// CreateTaskType creates a new task type
func (h *CatalogHandler) CreateTaskType(c *gin.Context) {
	var req createNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	taskType, err := h.catalogService.CreateTaskType(req.Name)
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskTypeDTO(*taskType))
}

// ListTaskTypes returns all task types ordered by name
func (h *CatalogHandler) ListTaskTypes(c *gin.Context) {
	taskTypes, err := h.catalogService.ListTaskTypes()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch task types")
		return
	}

	dtos := make([]dto.TaskTypeDTO, len(taskTypes))
	for i, taskType := range taskTypes {
		dtos[i] = dto.ToTaskTypeDTO(taskType)
	}

	c.JSON(http.StatusOK, gin.H{"task_types": dtos})
}

// DeleteTaskType removes a task type unless tasks still use it
func (h *CatalogHandler) DeleteTaskType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteTaskType(id); err != nil {
		respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task type deleted successfully",
	})
}

func respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPositionNotFound),
		errors.Is(err, services.ErrTaskTypeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPositionInUse),
		errors.Is(err, services.ErrTaskTypeInUse):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
