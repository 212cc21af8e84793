package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/service"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/response"
)

// ReferenceHandler exposes the read-only lookup lists.
type ReferenceHandler struct {
	referenceSvc service.ReferenceService
}

// NewReferenceHandler creates a ReferenceHandler.
func NewReferenceHandler(referenceSvc service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{referenceSvc: referenceSvc}
}

// ListAcademicYears returns every academic year.
// GET /api/v1/academic-years
func (h *ReferenceHandler) ListAcademicYears(c *gin.Context) {
	years, err := h.referenceSvc.ListAcademicYears(c.Request.Context())
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, gin.H{"list": years})
}

// ListDepartments returns every department.
// GET /api/v1/departments
func (h *ReferenceHandler) ListDepartments(c *gin.Context) {
	departments, err := h.referenceSvc.ListDepartments(c.Request.Context())
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, gin.H{"list": departments})
}

// ListProgramTypes returns the program type catalogue.
// GET /api/v1/program-types
func (h *ReferenceHandler) ListProgramTypes(c *gin.Context) {
	types, err := h.referenceSvc.ListProgramTypes(c.Request.Context())
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, gin.H{"list": types})
}
