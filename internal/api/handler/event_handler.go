package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/dto"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/service"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/response"
)

// EventHandler exposes event planning.
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// List returns every stored event of one aggregate.
// GET /api/v1/events?department_id=&academic_year_id=
func (h *EventHandler) List(c *gin.Context) {
	departmentID, academicYearID, ok := aggregateQuery(c)
	if !ok {
		return
	}

	events, err := h.eventSvc.List(c.Request.Context(), departmentID, academicYearID)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, gin.H{"list": events})
}

// Get returns one stored event.
// GET /api/v1/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, 10001, "event ID is required")
		return
	}

	event, err := h.eventSvc.Get(c.Request.Context(), eventID)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, event)
}

// GenerateSlots computes placeholder events for every counted program type.
// POST /api/v1/events/generate-slots
func (h *EventHandler) GenerateSlots(c *gin.Context) {
	var req dto.GenerateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	slots, err := h.eventSvc.GenerateSlots(c.Request.Context(), &req, role)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, gin.H{"list": slots})
}

// SaveEvents replaces the event plan of one program type.
// POST /api/v1/events
func (h *EventHandler) SaveEvents(c *gin.Context) {
	var req dto.SaveEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	events, err := h.eventSvc.SaveEvents(c.Request.Context(), &req, role)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, gin.H{"list": events})
}

// ClearEvents deletes every event of one aggregate.
// DELETE /api/v1/events
func (h *EventHandler) ClearEvents(c *gin.Context) {
	var req dto.ClearEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	deleted, err := h.eventSvc.ClearEvents(c.Request.Context(), &req, role)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, gin.H{"deleted": deleted})
}

// UpdateStatus moves one event between execution statuses.
// PUT /api/v1/events/:id/status
func (h *EventHandler) UpdateStatus(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, 10001, "event ID is required")
		return
	}

	var req dto.UpdateEventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.eventSvc.UpdateEventStatus(c.Request.Context(), eventID, req.Status, role); err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, nil)
}

// BudgetSummary returns the planned-versus-approved reconciliation view.
// GET /api/v1/events/budget-summary?department_id=&academic_year_id=
func (h *EventHandler) BudgetSummary(c *gin.Context) {
	departmentID, academicYearID, ok := aggregateQuery(c)
	if !ok {
		return
	}

	summary, err := h.eventSvc.BudgetSummary(c.Request.Context(), departmentID, academicYearID)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, summary)
}

// ExportCalendar streams the aggregate's events as an iCalendar file.
// GET /api/v1/events/calendar.ics?department_id=&academic_year_id=
func (h *EventHandler) ExportCalendar(c *gin.Context) {
	departmentID, academicYearID, ok := aggregateQuery(c)
	if !ok {
		return
	}

	serialized, err := h.eventSvc.ExportCalendar(c.Request.Context(), departmentID, academicYearID)
	if err != nil {
		response.AppError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=events-%s.ics", academicYearID))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(serialized))
}
