package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/dto"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/service"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/response"
)

// DeadlineHandler exposes module deadline administration.
type DeadlineHandler struct {
	deadlineSvc service.DeadlineService
}

// NewDeadlineHandler creates a DeadlineHandler.
func NewDeadlineHandler(deadlineSvc service.DeadlineService) *DeadlineHandler {
	return &DeadlineHandler{deadlineSvc: deadlineSvc}
}

// Set creates or replaces a module's cutoff for a year.
// POST /api/v1/module-deadlines
func (h *DeadlineHandler) Set(c *gin.Context) {
	var req dto.SetDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	deadline, err := h.deadlineSvc.Set(c.Request.Context(), &req)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, deadline)
}

// Get returns one module's cutoff.
// GET /api/v1/module-deadlines/:yearID/:module
func (h *DeadlineHandler) Get(c *gin.Context) {
	yearID := c.Param("yearID")
	module := c.Param("module")
	if yearID == "" || module == "" {
		response.BadRequest(c, 10001, "academic year ID and module are required")
		return
	}

	deadline, err := h.deadlineSvc.Get(c.Request.Context(), yearID, module)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, deadline)
}

// ListForYear returns every module cutoff of one year.
// GET /api/v1/module-deadlines/:yearID
func (h *DeadlineHandler) ListForYear(c *gin.Context) {
	yearID := c.Param("yearID")
	if yearID == "" {
		response.BadRequest(c, 10001, "academic year ID is required")
		return
	}

	deadlines, err := h.deadlineSvc.ListForYear(c.Request.Context(), yearID)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, gin.H{"list": deadlines})
}
