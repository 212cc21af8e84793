package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/dto"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/repository"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/apperr"
)

// NotificationService is the read side of the inbox the engine writes
// through the Notifier. Each actor sees only their own rows.
type NotificationService interface {
	Inbox(ctx context.Context, recipient string, unreadOnly bool, limit int) ([]dto.NotificationResponse, error)
	// MarkRead is scoped to the recipient: marking another actor's
	// notification reads as not found.
	MarkRead(ctx context.Context, id, recipient string) error
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) Inbox(ctx context.Context, recipient string, unreadOnly bool, limit int) ([]dto.NotificationResponse, error) {
	rows, err := s.repo.Notification.ListByRecipient(ctx, recipient, unreadOnly, limit)
	if err != nil {
		s.logger.Error("list notifications failed",
			zap.String("recipient", recipient),
			zap.Error(err),
		)
		return nil, err
	}
	result := make([]dto.NotificationResponse, 0, len(rows))
	for _, n := range rows {
		result = append(result, dto.NotificationResponse{
			ID:        n.NotificationID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			Read:      n.Read,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, recipient string) error {
	affected, err := s.repo.Notification.MarkRead(ctx, id, recipient)
	if err != nil {
		s.logger.Error("mark notification read failed",
			zap.String("notification_id", id),
			zap.Error(err),
		)
		return err
	}
	if affected == 0 {
		return apperr.NotFound("notification not found")
	}
	return nil
}
