package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/dto"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/service"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/response"
)

// OverrideHandler exposes deadline override administration. Routing
// restricts the mutating endpoints to principal and admin.
type OverrideHandler struct {
	overrideSvc service.OverrideService
}

// NewOverrideHandler creates an OverrideHandler.
func NewOverrideHandler(overrideSvc service.OverrideService) *OverrideHandler {
	return &OverrideHandler{overrideSvc: overrideSvc}
}

// Grant grants or re-grants an override.
// POST /api/v1/deadline-overrides
func (h *OverrideHandler) Grant(c *gin.Context) {
	var req dto.GrantOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	override, err := h.overrideSvc.Grant(c.Request.Context(), &req)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.Created(c, override)
}

// BulkGrant grants the same override to several departments.
// POST /api/v1/deadline-overrides/bulk
func (h *OverrideHandler) BulkGrant(c *gin.Context) {
	var req dto.BulkGrantOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	results := h.overrideSvc.BulkGrant(c.Request.Context(), &req)
	response.OK(c, gin.H{"list": results})
}

// Extend lengthens an existing override from its prior expiry.
// PUT /api/v1/deadline-overrides/extend
func (h *OverrideHandler) Extend(c *gin.Context) {
	var req dto.ExtendOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	override, err := h.overrideSvc.Extend(c.Request.Context(), &req)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, override)
}

// Revoke removes an override immediately.
// DELETE /api/v1/deadline-overrides?department_id=&academic_year_id=&module=
func (h *OverrideHandler) Revoke(c *gin.Context) {
	departmentID, academicYearID, ok := aggregateQuery(c)
	if !ok {
		return
	}
	module := c.Query("module")
	if module == "" {
		response.BadRequest(c, 10001, "module is required")
		return
	}

	if err := h.overrideSvc.Revoke(c.Request.Context(), departmentID, academicYearID, module); err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, nil)
}

// List returns all overrides of one academic year with their active state.
// GET /api/v1/deadline-overrides/:yearID
func (h *OverrideHandler) List(c *gin.Context) {
	yearID := c.Param("yearID")
	if yearID == "" {
		response.BadRequest(c, 10001, "academic year ID is required")
		return
	}

	overrides, err := h.overrideSvc.List(c.Request.Context(), yearID)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, gin.H{"list": overrides})
}

// Check reports whether an override is in force right now.
// GET /api/v1/deadline-overrides/check?department_id=&academic_year_id=&module=
func (h *OverrideHandler) Check(c *gin.Context) {
	departmentID, academicYearID, ok := aggregateQuery(c)
	if !ok {
		return
	}
	module := c.Query("module")
	if module == "" {
		response.BadRequest(c, 10001, "module is required")
		return
	}

	active, err := h.overrideSvc.IsActive(c.Request.Context(), departmentID, academicYearID, module, time.Now())
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, gin.H{"active": active})
}
