package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/vholenko/it-task-manager/internal/dto"
	apierrors "github.com/vholenko/it-task-manager/internal/errors"
	"github.com/vholenko/it-task-manager/internal/middleware"
	"github.com/vholenko/it-task-manager/internal/services"
	sessionstore "github.com/vholenko/it-task-manager/internal/session"
)

// DashboardHandler serves the home page aggregate.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Index returns the dashboard counters, the caller's own task list and the
// per-session visit counter.
func (h *DashboardHandler) Index(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	summary, err := h.dashboardService.Summary(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to build dashboard")
		return
	}

	visits, err := sessionstore.BumpVisits(sessions.Default(c))
	if err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardDTO(summary, visits))
}
