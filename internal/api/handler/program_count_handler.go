package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/dto"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/service"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/response"
)

// ProgramCountHandler exposes budget entry submission.
type ProgramCountHandler struct {
	programCountSvc service.ProgramCountService
}

// NewProgramCountHandler creates a ProgramCountHandler.
func NewProgramCountHandler(programCountSvc service.ProgramCountService) *ProgramCountHandler {
	return &ProgramCountHandler{programCountSvc: programCountSvc}
}

// List returns the stored budget rows of one aggregate.
// GET /api/v1/program-counts?department_id=&academic_year_id=
func (h *ProgramCountHandler) List(c *gin.Context) {
	departmentID, academicYearID, ok := aggregateQuery(c)
	if !ok {
		return
	}

	rows, err := h.programCountSvc.List(c.Request.Context(), departmentID, academicYearID)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rows})
}

// SubmitBudget validates and stores a budget batch.
// POST /api/v1/program-counts
func (h *ProgramCountHandler) SubmitBudget(c *gin.Context) {
	var req dto.SubmitBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	rows, err := h.programCountSvc.SubmitBudget(c.Request.Context(), &req, role)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rows})
}

// SetPrincipalRemarks records the principal's remarks on a department's
// budget rows.
// PUT /api/v1/program-counts/principal-remarks
func (h *ProgramCountHandler) SetPrincipalRemarks(c *gin.Context) {
	var req dto.PrincipalRemarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.programCountSvc.SetPrincipalRemarks(c.Request.Context(), &req, role); err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, nil)
}
