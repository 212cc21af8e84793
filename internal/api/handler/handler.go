package handler

import "github.com/sravivarmanvce/academic-activity-portal-sub000/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Workflow     *WorkflowHandler
	ProgramCount *ProgramCountHandler
	Override     *OverrideHandler
	Deadline     *DeadlineHandler
	Event        *EventHandler
	Editability  *EditabilityHandler
	Reminder     *ReminderHandler
	Reference    *ReferenceHandler
	Notification *NotificationHandler
}

// NewHandler creates the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Workflow:     NewWorkflowHandler(svc.Workflow),
		ProgramCount: NewProgramCountHandler(svc.ProgramCount),
		Override:     NewOverrideHandler(svc.Override),
		Deadline:     NewDeadlineHandler(svc.Deadline),
		Event:        NewEventHandler(svc.Event),
		Editability:  NewEditabilityHandler(svc.Editability),
		Reminder:     NewReminderHandler(svc.Reminder),
		Reference:    NewReferenceHandler(svc.Reference),
		Notification: NewNotificationHandler(svc.Notification),
	}
}
