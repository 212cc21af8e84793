package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/model"
)

// NotificationRepository is the notifications data-access interface.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByRecipient(ctx context.Context, recipient string, unreadOnly bool, limit int) ([]model.Notification, error)
	// MarkRead affects at most the recipient's own row; zero rows means
	// the id is unknown or belongs to someone else.
	MarkRead(ctx context.Context, id, recipient string) (int64, error)
}

type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo creates a NotificationRepository.
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) ListByRecipient(ctx context.Context, recipient string, unreadOnly bool, limit int) ([]model.Notification, error) {
	q := r.db.WithContext(ctx).Where("recipient = ?", recipient)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	if limit <= 0 {
		limit = 50
	}
	var notifications []model.Notification
	err := q.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, id, recipient string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("notification_id = ? AND recipient = ?", id, recipient).
		Update("read", true)
	return res.RowsAffected, res.Error
}
