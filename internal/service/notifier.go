package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/model"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/repository"
)

// Notification event types emitted by the engine.
const (
	NotifyBudgetSubmitted = "budget_submitted"
	NotifyBudgetApproved  = "budget_approved"
	NotifyEventsSubmitted = "events_submitted"
	NotifyEventsPlanned   = "events_planned"
	NotifyCompleted       = "workflow_completed"
	NotifyForced          = "workflow_forced"
	NotifyDeadlineClose   = "deadline_reminder"
)

// Notifier is the outward notification collaborator. Calls are
// fire-and-forget: implementations log failures and never propagate them
// into the caller's result.
type Notifier interface {
	Notify(ctx context.Context, eventType, recipient, title, message string)
}

// inboxNotifier writes notifications to the portal inbox table. Mail and
// push delivery are external collaborators reading the same table.
type inboxNotifier struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewInboxNotifier creates the inbox-backed Notifier.
func NewInboxNotifier(repo *repository.Repository, logger *zap.Logger) Notifier {
	return &inboxNotifier{repo: repo, logger: logger}
}

func (n *inboxNotifier) Notify(ctx context.Context, eventType, recipient, title, message string) {
	err := n.repo.Notification.Create(ctx, &model.Notification{
		Recipient: recipient,
		Title:     title,
		Message:   message,
		Type:      eventType,
	})
	if err != nil {
		// Swallowed on purpose: a failed notification never fails the
		// mutation that triggered it.
		n.logger.Warn("notification write failed",
			zap.String("event_type", eventType),
			zap.String("recipient", recipient),
			zap.Error(err),
		)
	}
}
