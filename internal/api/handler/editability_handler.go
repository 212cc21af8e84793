package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/service"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/response"
)

// EditabilityHandler exposes the editability resolver.
type EditabilityHandler struct {
	editabilitySvc service.EditabilityService
}

// NewEditabilityHandler creates an EditabilityHandler.
func NewEditabilityHandler(editabilitySvc service.EditabilityService) *EditabilityHandler {
	return &EditabilityHandler{editabilitySvc: editabilitySvc}
}

// Resolve reports what the caller may currently edit on one aggregate.
// GET /api/v1/editability?department_id=&academic_year_id=
func (h *EditabilityHandler) Resolve(c *gin.Context) {
	departmentID, academicYearID, ok := aggregateQuery(c)
	if !ok {
		return
	}

	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	resp, err := h.editabilitySvc.Resolve(c.Request.Context(), role, departmentID, academicYearID)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, resp)
}
