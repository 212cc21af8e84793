package service

import (
	"go.uber.org/zap"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/config"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/repository"
)

// Service aggregates every business service.
type Service struct {
	Workflow     WorkflowService
	ProgramCount ProgramCountService
	Override     OverrideService
	Deadline     DeadlineService
	Event        EventService
	Editability  EditabilityService
	Reminder     ReminderService
	Reference    ReferenceService
	Notification NotificationService
}

// NewService wires the service layer. cache may be nil; the summary then
// recomputes on every read.
func NewService(cfg *config.Config, repo *repository.Repository, notifier Notifier, cache SummaryCache, logger *zap.Logger) *Service {
	return &Service{
		Workflow:     NewWorkflowService(repo, notifier, cache, cfg.Workflow.SummaryCacheTTL, logger),
		ProgramCount: NewProgramCountService(repo, logger),
		Override:     NewOverrideService(repo, cfg.Workflow.DefaultOverrideHours, logger),
		Deadline:     NewDeadlineService(repo, logger),
		Event:        NewEventService(repo, logger),
		Editability:  NewEditabilityService(repo, logger),
		Reminder:     NewReminderService(repo, notifier, logger),
		Reference:    NewReferenceService(repo, logger),
		Notification: NewNotificationService(repo, logger),
	}
}
