package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/dto"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/service"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/response"
)

// ReminderHandler exposes deadline reminders.
type ReminderHandler struct {
	reminderSvc service.ReminderService
}

// NewReminderHandler creates a ReminderHandler.
func NewReminderHandler(reminderSvc service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderSvc: reminderSvc}
}

// SendReminders nudges the named departments about a module deadline.
// POST /api/v1/reminders
func (h *ReminderHandler) SendReminders(c *gin.Context) {
	var req dto.SendRemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	results, err := h.reminderSvc.SendDeadlineReminders(c.Request.Context(), &req, role)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.OK(c, gin.H{"list": results})
}
