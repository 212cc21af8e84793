package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/service"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/response"
)

// NotificationHandler exposes the actor's inbox.
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// Inbox returns the calling actor's notifications, newest first.
// GET /api/v1/notifications?unread_only=true&limit=50
func (h *NotificationHandler) Inbox(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	unreadOnly := c.Query("unread_only") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := h.notificationSvc.Inbox(c.Request.Context(), userID, unreadOnly, limit)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, gin.H{"list": notifications})
}

// MarkRead marks one of the calling actor's notifications as read.
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "notification ID is required")
		return
	}

	if err := h.notificationSvc.MarkRead(c.Request.Context(), id, userID); err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, gin.H{"marked_read": id})
}
