package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/dto"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/service"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/response"
)

// WorkflowHandler exposes the approval state machine.
type WorkflowHandler struct {
	workflowSvc service.WorkflowService
}

// NewWorkflowHandler creates a WorkflowHandler.
func NewWorkflowHandler(workflowSvc service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflowSvc: workflowSvc}
}

// GetStatus returns the workflow status of one aggregate.
// GET /api/v1/workflow-status?department_id=&academic_year_id=
func (h *WorkflowHandler) GetStatus(c *gin.Context) {
	departmentID, academicYearID, ok := aggregateQuery(c)
	if !ok {
		return
	}

	status, err := h.workflowSvc.Get(c.Request.Context(), departmentID, academicYearID)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, status)
}

// Transition advances one aggregate's workflow status.
// POST /api/v1/workflow-status/transition
func (h *WorkflowHandler) Transition(c *gin.Context) {
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	status, err := h.workflowSvc.Transition(c.Request.Context(), req.DepartmentID, req.AcademicYearID, req.Target, role)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, status)
}

// StatusSummary returns the per-department dashboard for one year.
// GET /api/v1/workflow-status/summary/:yearID
func (h *WorkflowHandler) StatusSummary(c *gin.Context) {
	yearID := c.Param("yearID")
	if yearID == "" {
		response.BadRequest(c, 10001, "academic year ID is required")
		return
	}

	summaries, err := h.workflowSvc.StatusSummary(c.Request.Context(), yearID)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, gin.H{"list": summaries})
}
