package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/dto"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/workflow"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/apperr"
)

func reminderServiceAt(env *testEnv, notifier Notifier, at time.Time) *reminderService {
	return &reminderService{
		repo:     env.repo,
		notifier: notifier,
		logger:   zap.NewNop(),
		now:      func() time.Time { return at },
	}
}

func TestReminderService_SendDeadlineReminders(t *testing.T) {
	env := newTestEnv()
	yearID := env.academicYears.add("2025-2026")
	env.deadlines.set(yearID, ModuleProgramEntry, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	drafting := env.departments.add("CSE", "hod.cse@example.edu")
	submitted := env.departments.add("ECE", "hod.ece@example.edu")
	env.statuses.seed(submitted, yearID, "submitted", 2)

	notifier := &captureNotifier{}
	svc := reminderServiceAt(env, notifier, time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC))

	results, err := svc.SendDeadlineReminders(context.Background(), &dto.SendRemindersRequest{
		AcademicYearID: yearID,
		Module:         ModuleProgramEntry,
		DepartmentIDs:  []string{drafting, submitted, "missing-dept"},
	}, workflow.RolePrincipal)
	if err != nil {
		t.Fatalf("SendDeadlineReminders: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	if !results[0].Sent {
		t.Error("drafting department should receive a reminder")
	}
	if results[1].Sent || results[1].Skipped == "" {
		t.Errorf("submitted department should be skipped, got %+v", results[1])
	}
	if results[2].Sent || results[2].Error == "" {
		t.Errorf("unknown department should report an error, got %+v", results[2])
	}

	if len(notifier.calls) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifier.calls))
	}
	if notifier.calls[0].Recipient != "hod.cse@example.edu" {
		t.Errorf("recipient = %q, want the drafting HoD", notifier.calls[0].Recipient)
	}
	if notifier.calls[0].EventType != NotifyDeadlineClose {
		t.Errorf("event type = %q, want %q", notifier.calls[0].EventType, NotifyDeadlineClose)
	}
}

func TestReminderService_SendDeadlineReminders_Guards(t *testing.T) {
	env := newTestEnv()
	yearID := env.academicYears.add("2025-2026")
	deptID := env.departments.add("CSE", "")
	svc := reminderServiceAt(env, &captureNotifier{}, time.Now())

	req := &dto.SendRemindersRequest{
		AcademicYearID: yearID,
		Module:         ModuleProgramEntry,
		DepartmentIDs:  []string{deptID},
	}

	if _, err := svc.SendDeadlineReminders(context.Background(), req, workflow.RoleHoD); apperr.KindOf(err) != apperr.KindForbidden {
		t.Errorf("HoD kind = %q, want forbidden", apperr.KindOf(err))
	}
	// No deadline configured for the module.
	if _, err := svc.SendDeadlineReminders(context.Background(), req, workflow.RoleAdmin); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("missing deadline kind = %q, want not_found", apperr.KindOf(err))
	}
}

func TestInboxNotifier_WritesInboxRow(t *testing.T) {
	env := newTestEnv()
	notifier := NewInboxNotifier(env.repo, zap.NewNop())

	notifier.Notify(context.Background(), NotifyBudgetApproved, "hod:dept-1", "Budget approved", "your budget was approved")

	rows, err := env.notifications.ListByRecipient(context.Background(), "hod:dept-1", true, 10)
	if err != nil {
		t.Fatalf("ListByRecipient: %v", err)
	}
	if len(rows) != 1 || rows[0].Type != NotifyBudgetApproved {
		t.Fatalf("rows = %+v, want one budget_approved notification", rows)
	}
}
