package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/dto"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/model"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/repository"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/workflow"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/apperr"
)

// SummaryCache is the optional read cache for the status-summary
// dashboard. *redis.Client satisfies it; a nil cache disables caching.
type SummaryCache interface {
	GetSummary(ctx context.Context, academicYearID string) (string, error)
	SetSummary(ctx context.Context, academicYearID, payload string, ttl time.Duration) error
	InvalidateSummary(ctx context.Context, academicYearID string) error
}

// WorkflowService is the authoritative state machine for each
// (department, academic year) aggregate. All status mutation funnels
// through Transition; nothing else writes the status column.
type WorkflowService interface {
	Get(ctx context.Context, departmentID, academicYearID string) (*dto.WorkflowStatusResponse, error)
	// Transition advances the aggregate to the target status, enforcing
	// the role and precondition of the transition table. Admin actors
	// bypass every check and may force any movement. The transition is
	// atomic: state advances fully or not at all.
	Transition(ctx context.Context, departmentID, academicYearID, target string, role workflow.Role) (*dto.WorkflowStatusResponse, error)
	// StatusSummary is the lock-free dashboard read; results may lag
	// writes by up to the cache TTL.
	StatusSummary(ctx context.Context, academicYearID string) ([]dto.DepartmentSummary, error)
}

type workflowService struct {
	repo     *repository.Repository
	notifier Notifier
	cache    SummaryCache
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewWorkflowService creates a WorkflowService. cache may be nil.
func NewWorkflowService(repo *repository.Repository, notifier Notifier, cache SummaryCache, cacheTTL time.Duration, logger *zap.Logger) WorkflowService {
	return &workflowService{
		repo:     repo,
		notifier: notifier,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *workflowService) Get(ctx context.Context, departmentID, academicYearID string) (*dto.WorkflowStatusResponse, error) {
	ws, err := s.repo.WorkflowStatus.GetOrCreate(ctx, departmentID, academicYearID)
	if err != nil {
		s.logger.Error("get workflow status failed", zap.Error(err))
		return nil, err
	}
	return toWorkflowStatusResponse(ws), nil
}

func (s *workflowService) Transition(ctx context.Context, departmentID, academicYearID, targetStr string, role workflow.Role) (*dto.WorkflowStatusResponse, error) {
	target, err := workflow.ParseStatus(targetStr)
	if err != nil {
		return nil, apperr.Validation("unknown target status",
			apperr.Detail{Field: "target", Reason: err.Error()})
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("begin tx failed", zap.Error(err))
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	ws, err := txRepo.WorkflowStatus.GetForUpdate(ctx, departmentID, academicYearID)
	if err != nil {
		rollback(tx)
		s.logger.Error("lock workflow status failed", zap.Error(err))
		return nil, err
	}
	current := workflow.Status(ws.Status)

	forced := role == workflow.RoleAdmin
	if !forced {
		// Idempotent edges admit a repeat of their target: the document
		// approval collaborator may signal completion more than once.
		if workflow.IdempotentRepeat(current, target) {
			rollback(tx)
			return toWorkflowStatusResponse(ws), nil
		}

		rule, ok := workflow.RuleFor(current, target)
		if !ok {
			rollback(tx)
			return nil, apperr.InvalidTransition(string(current), string(target),
				fmt.Sprintf("no transition from %s to %s", current, target))
		}
		if !rule.AllowedFor(role) {
			rollback(tx)
			return nil, apperr.InvalidTransition(string(current), string(target),
				fmt.Sprintf("role %s may not perform this transition", role))
		}

		switch rule.Precondition {
		case workflow.PrecondBudgetValid:
			err = s.checkBudgetValid(ctx, txRepo, departmentID, academicYearID, role, current)
		case workflow.PrecondEventsReconciled:
			err = s.checkEventsReconciled(ctx, txRepo, departmentID, academicYearID)
		}
		if err != nil {
			rollback(tx)
			return nil, err
		}
	}

	affected, err := txRepo.WorkflowStatus.UpdateStatusVersioned(ctx, ws.WorkflowStatusID, string(target), ws.Version)
	if err != nil {
		rollback(tx)
		s.logger.Error("update workflow status failed", zap.Error(err))
		return nil, err
	}
	if affected == 0 {
		rollback(tx)
		return nil, apperr.Conflict("workflow was modified by a concurrent transition")
	}

	if err := commit(tx); err != nil {
		s.logger.Error("commit transition failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("workflow transition",
		zap.String("department_id", departmentID),
		zap.String("academic_year_id", academicYearID),
		zap.String("from", string(current)),
		zap.String("to", string(target)),
		zap.String("role", string(role)),
		zap.Bool("forced", forced),
	)

	s.invalidateSummary(ctx, academicYearID)
	s.notifyTransition(ctx, departmentID, current, target, forced)

	ws.Status = string(target)
	ws.Version++
	ws.UpdatedAt = s.now()
	return toWorkflowStatusResponse(ws), nil
}

// checkBudgetValid gates draft -> submitted: the window must still be open
// for the actor and every stored budget row must pass validation.
func (s *workflowService) checkBudgetValid(ctx context.Context, txRepo *repository.Repository, departmentID, academicYearID string, role workflow.Role, current workflow.Status) error {
	now := s.now()
	deadline, overrideActive, err := budgetWindow(ctx, txRepo, departmentID, academicYearID, now)
	if err != nil {
		return err
	}
	decision := workflow.BudgetEditability(role, current, now, deadline, overrideActive)
	if !decision.Allowed {
		return apperr.Forbidden("budget submission window is closed", string(decision.Reason))
	}

	counts, err := txRepo.ProgramCount.ListByAggregate(ctx, departmentID, academicYearID)
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		return apperr.Validation("no budget entries to submit")
	}

	var details []apperr.Detail
	for i := range counts {
		pc := &counts[i]
		if pc.BudgetMode == model.BudgetModeVariable && (pc.Count > 0) != (pc.TotalBudget > 0) {
			details = append(details, apperr.Detail{
				ProgramType:    pc.ProgramType,
				SubProgramType: pc.SubProgramType,
				Reason:         "count and total budget must be both zero or both positive",
			})
		}
	}
	if len(details) > 0 {
		return apperr.Validation("budget entries are inconsistent", details...)
	}
	return nil
}

// checkEventsReconciled gates approved -> events_submitted: every program
// type with a positive count needs complete events whose budgets sum to
// the approved total within one currency unit.
func (s *workflowService) checkEventsReconciled(ctx context.Context, txRepo *repository.Repository, departmentID, academicYearID string) error {
	counts, err := txRepo.ProgramCount.ListByAggregate(ctx, departmentID, academicYearID)
	if err != nil {
		return err
	}

	var details []apperr.Detail
	for i := range counts {
		pc := &counts[i]
		if pc.Count == 0 {
			continue
		}

		pt, err := txRepo.ProgramType.GetByIdentity(ctx, pc.ProgramType, pc.SubProgramType)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				details = append(details, apperr.Detail{
					ProgramType:    pc.ProgramType,
					SubProgramType: pc.SubProgramType,
					Reason:         "program type is not catalogued",
				})
				continue
			}
			return err
		}

		events, err := txRepo.Event.ListByProgramType(ctx, departmentID, academicYearID, pt.ProgramTypeID)
		if err != nil {
			return err
		}

		if reason := reconcileEvents(events, pc.TotalBudget); reason != "" {
			details = append(details, apperr.Detail{
				ProgramType:    pc.ProgramType,
				SubProgramType: pc.SubProgramType,
				Reason:         reason,
			})
		}
	}

	if len(details) > 0 {
		return apperr.Validation("event plans are incomplete or do not reconcile", details...)
	}
	return nil
}

// reconcileEvents checks completeness and the +-1 budget tolerance for one
// program type's events. It returns "" when everything reconciles.
func reconcileEvents(events []model.Event, totalBudget int64) string {
	if len(events) == 0 {
		return "no events planned"
	}
	var sum int64
	for i := range events {
		ev := &events[i]
		if ev.Title == "" {
			return "an event is missing its title"
		}
		if ev.EventDate.IsZero() {
			return "an event is missing its date"
		}
		if ev.BudgetAmount <= 0 {
			return "an event has a non-positive budget"
		}
		sum += ev.BudgetAmount
	}
	if diff := sum - totalBudget; diff > 1 || diff < -1 {
		return fmt.Sprintf("event budgets sum to %d, approved total is %d", sum, totalBudget)
	}
	return ""
}

func (s *workflowService) StatusSummary(ctx context.Context, academicYearID string) ([]dto.DepartmentSummary, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetSummary(ctx, academicYearID); err == nil && cached != "" {
			var summaries []dto.DepartmentSummary
			if json.Unmarshal([]byte(cached), &summaries) == nil {
				return summaries, nil
			}
		}
	}

	depts, err := s.repo.Department.ListActive(ctx)
	if err != nil {
		s.logger.Error("list departments failed", zap.Error(err))
		return nil, err
	}
	statuses, err := s.repo.WorkflowStatus.ListByYear(ctx, academicYearID)
	if err != nil {
		s.logger.Error("list workflow statuses failed", zap.Error(err))
		return nil, err
	}
	counts, err := s.repo.ProgramCount.ListByYear(ctx, academicYearID)
	if err != nil {
		s.logger.Error("list program counts failed", zap.Error(err))
		return nil, err
	}

	statusByDept := make(map[string]*model.WorkflowStatus, len(statuses))
	for i := range statuses {
		statusByDept[statuses[i].DepartmentID] = &statuses[i]
	}
	totalByDept := make(map[string]int64)
	entriesByDept := make(map[string]int)
	for i := range counts {
		totalByDept[counts[i].DepartmentID] += counts[i].TotalBudget
		entriesByDept[counts[i].DepartmentID]++
	}

	summaries := make([]dto.DepartmentSummary, 0, len(depts))
	for i := range depts {
		d := &depts[i]
		summary := dto.DepartmentSummary{
			DepartmentID:     d.DepartmentID,
			DepartmentName:   d.Name,
			Submitted:        entriesByDept[d.DepartmentID] > 0,
			WorkflowStatus:   string(workflow.StatusDraft),
			GrandTotalBudget: totalByDept[d.DepartmentID],
		}
		if ws, ok := statusByDept[d.DepartmentID]; ok {
			summary.WorkflowStatus = ws.Status
			summary.LastUpdated = ws.UpdatedAt.Format(time.RFC3339)
		}
		summaries = append(summaries, summary)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(summaries); err == nil {
			if err := s.cache.SetSummary(ctx, academicYearID, string(payload), s.cacheTTL); err != nil {
				s.logger.Warn("cache summary failed", zap.Error(err))
			}
		}
	}
	return summaries, nil
}

// ── Internal helpers ──

func (s *workflowService) invalidateSummary(ctx context.Context, academicYearID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSummary(ctx, academicYearID); err != nil {
		s.logger.Warn("invalidate summary cache failed", zap.Error(err))
	}
}

func (s *workflowService) notifyTransition(ctx context.Context, departmentID string, from, to workflow.Status, forced bool) {
	if s.notifier == nil {
		return
	}
	eventType := NotifyForced
	recipient := string(workflow.RolePrincipal)
	switch {
	case forced:
		// keep defaults
	case to == workflow.StatusSubmitted:
		eventType = NotifyBudgetSubmitted
	case to == workflow.StatusApproved:
		eventType, recipient = NotifyBudgetApproved, "hod:"+departmentID
	case to == workflow.StatusEventsSubmitted:
		eventType = NotifyEventsSubmitted
	case to == workflow.StatusEventsPlanned:
		eventType, recipient = NotifyEventsPlanned, "hod:"+departmentID
	case to == workflow.StatusCompleted:
		eventType, recipient = NotifyCompleted, "hod:"+departmentID
	}
	s.notifier.Notify(ctx, eventType, recipient,
		"Workflow update",
		fmt.Sprintf("Department %s moved from %s to %s", departmentID, from, to),
	)
}

func toWorkflowStatusResponse(ws *model.WorkflowStatus) *dto.WorkflowStatusResponse {
	return &dto.WorkflowStatusResponse{
		DepartmentID:   ws.DepartmentID,
		AcademicYearID: ws.AcademicYearID,
		Status:         ws.Status,
		Version:        ws.Version,
		UpdatedAt:      ws.UpdatedAt.Format(time.RFC3339),
	}
}
