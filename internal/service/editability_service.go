package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/dto"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/repository"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/workflow"
)

// Deadline module names. Each module carries its own cutoff per academic
// year; overrides are granted per (department, year, module).
const (
	ModuleProgramEntry  = "program_entry"
	ModuleEventPlanning = "event_planning"
)

// EditabilityService resolves the full editability picture for one actor
// and aggregate. The decision logic itself lives in the pure workflow
// package; this service only gathers its inputs.
type EditabilityService interface {
	Resolve(ctx context.Context, role workflow.Role, departmentID, academicYearID string) (*dto.EditabilityResponse, error)
}

type editabilityService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewEditabilityService creates an EditabilityService.
func NewEditabilityService(repo *repository.Repository, logger *zap.Logger) EditabilityService {
	return &editabilityService{repo: repo, logger: logger, now: time.Now}
}

func (s *editabilityService) Resolve(ctx context.Context, role workflow.Role, departmentID, academicYearID string) (*dto.EditabilityResponse, error) {
	ws, err := s.repo.WorkflowStatus.GetOrCreate(ctx, departmentID, academicYearID)
	if err != nil {
		s.logger.Error("resolve workflow status failed", zap.Error(err))
		return nil, err
	}
	status := workflow.Status(ws.Status)

	now := s.now()
	deadline, overrideActive, err := budgetWindow(ctx, s.repo, departmentID, academicYearID, now)
	if err != nil {
		s.logger.Error("resolve budget window failed", zap.Error(err))
		return nil, err
	}

	budget := workflow.BudgetEditability(role, status, now, deadline, overrideActive)
	events := workflow.EventEditability(role, status)

	resp := &dto.EditabilityResponse{
		BudgetAllowed:  budget.Allowed,
		BudgetReason:   string(budget.Reason),
		EventsAllowed:  events.Allowed,
		EventsReason:   string(events.Reason),
		Status:         ws.Status,
		OverrideActive: overrideActive,
	}
	if deadline != nil {
		resp.Deadline = deadline.Format(time.RFC3339)
	}
	return resp, nil
}

// budgetWindow fetches the program-entry deadline and override state for
// one aggregate. A missing deadline row means no cutoff is configured.
func budgetWindow(ctx context.Context, repo *repository.Repository, departmentID, academicYearID string, now time.Time) (*time.Time, bool, error) {
	var deadline *time.Time
	md, err := repo.ModuleDeadline.Get(ctx, academicYearID, ModuleProgramEntry)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	if md != nil {
		deadline = &md.Deadline
	}

	overrideActive := false
	o, err := repo.DeadlineOverride.Get(ctx, departmentID, academicYearID, ModuleProgramEntry)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	if o != nil {
		overrideActive = o.ActiveAt(now)
	}

	return deadline, overrideActive, nil
}
