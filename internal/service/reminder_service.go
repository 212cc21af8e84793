package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/dto"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/repository"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/workflow"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/apperr"
)

// ReminderService nudges departments that have not yet submitted before a
// module deadline.
type ReminderService interface {
	// SendDeadlineReminders processes every named department independently:
	// one failure or skip never blocks the rest of the batch.
	SendDeadlineReminders(ctx context.Context, req *dto.SendRemindersRequest, role workflow.Role) ([]dto.ReminderResult, error)
}

type reminderService struct {
	repo     *repository.Repository
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewReminderService creates a ReminderService.
func NewReminderService(repo *repository.Repository, notifier Notifier, logger *zap.Logger) ReminderService {
	return &reminderService{repo: repo, notifier: notifier, logger: logger, now: time.Now}
}

func (s *reminderService) SendDeadlineReminders(ctx context.Context, req *dto.SendRemindersRequest, role workflow.Role) ([]dto.ReminderResult, error) {
	if role != workflow.RoleAdmin && role != workflow.RolePrincipal {
		return nil, apperr.Forbidden("only principal or admin may send reminders", "role_not_allowed")
	}

	md, err := s.repo.ModuleDeadline.Get(ctx, req.AcademicYearID, req.Module)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no deadline configured for module")
		}
		s.logger.Error("load module deadline failed", zap.Error(err))
		return nil, err
	}

	results := make([]dto.ReminderResult, 0, len(req.DepartmentIDs))
	for _, deptID := range req.DepartmentIDs {
		results = append(results, s.remindDepartment(ctx, deptID, req.AcademicYearID, req.Module, md.Deadline))
	}
	return results, nil
}

func (s *reminderService) remindDepartment(ctx context.Context, departmentID, academicYearID, module string, deadline time.Time) dto.ReminderResult {
	result := dto.ReminderResult{DepartmentID: departmentID}

	dept, err := s.repo.Department.GetByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			result.Error = "department not found"
			return result
		}
		s.logger.Error("load department failed",
			zap.String("department_id", departmentID), zap.Error(err))
		result.Error = "lookup failed"
		return result
	}

	ws, err := s.repo.WorkflowStatus.GetOrCreate(ctx, departmentID, academicYearID)
	if err != nil {
		s.logger.Error("load workflow status failed",
			zap.String("department_id", departmentID), zap.Error(err))
		result.Error = "lookup failed"
		return result
	}
	// A department that already moved past draft has nothing left to
	// submit for this module.
	if workflow.Status(ws.Status) != workflow.StatusDraft {
		result.Skipped = fmt.Sprintf("already %s", ws.Status)
		return result
	}

	s.notifier.Notify(ctx, NotifyDeadlineClose, dept.HodEmail,
		fmt.Sprintf("Deadline reminder: %s", module),
		fmt.Sprintf("The %s deadline for %s is %s. Your submission is still in draft.",
			module, dept.Name, deadline.Format(time.RFC3339)),
	)
	result.Sent = true
	return result
}
