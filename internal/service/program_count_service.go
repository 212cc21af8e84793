package service

import (
	"context"
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

// ProgramCountService owns budget entry submission and its validators.
type ProgramCountService interface {
	// SubmitBudget validates and upserts a batch of budget entries.
	// The batch is all-or-nothing: one invalid entry rejects every entry,
	// and the error enumerates every offender. It never advances the
	// workflow status; callers issue that transition separately.
	SubmitBudget(ctx context.Context, req *dto.SubmitBudgetRequest, role workflow.Role) ([]dto.ProgramCountResponse, error)
	List(ctx context.Context, departmentID, academicYearID string) ([]dto.ProgramCountResponse, error)
	SetPrincipalRemarks(ctx context.Context, req *dto.PrincipalRemarksRequest, role workflow.Role) error
}

type programCountService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewProgramCountService creates a ProgramCountService.
func NewProgramCountService(repo *repository.Repository, logger *zap.Logger) ProgramCountService {
	return &programCountService{repo: repo, logger: logger, now: time.Now}
}

func (s *programCountService) SubmitBudget(ctx context.Context, req *dto.SubmitBudgetRequest, role workflow.Role) ([]dto.ProgramCountResponse, error) {
	ws, err := s.repo.WorkflowStatus.GetOrCreate(ctx, req.DepartmentID, req.AcademicYearID)
	if err != nil {
		s.logger.Error("load workflow status failed", zap.Error(err))
		return nil, err
	}

	now := s.now()
	deadline, overrideActive, err := budgetWindow(ctx, s.repo, req.DepartmentID, req.AcademicYearID, now)
	if err != nil {
		s.logger.Error("load budget window failed", zap.Error(err))
		return nil, err
	}

	decision := workflow.BudgetEditability(role, workflow.Status(ws.Status), now, deadline, overrideActive)
	if !decision.Allowed {
		return nil, apperr.Forbidden("budget entries are not editable", string(decision.Reason))
	}

	rows, details, err := s.normalizeEntries(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(details) > 0 {
		// Atomic rejection: nothing from this batch persists.
		return nil, apperr.Validation("budget batch rejected", details...)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("begin tx failed", zap.Error(err))
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	for i := range rows {
		if err := txRepo.ProgramCount.Upsert(ctx, &rows[i]); err != nil {
			rollback(tx)
			s.logger.Error("upsert program count failed",
				zap.String("program_type", rows[i].ProgramType),
				zap.Error(err),
			)
			return nil, err
		}
	}

	if err := commit(tx); err != nil {
		s.logger.Error("commit budget batch failed", zap.Error(err))
		return nil, err
	}

	stored, err := s.repo.ProgramCount.ListByAggregate(ctx, req.DepartmentID, req.AcademicYearID)
	if err != nil {
		s.logger.Error("reload program counts failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProgramCountResponse, 0, len(stored))
	for i := range stored {
		result = append(result, toProgramCountResponse(&stored[i]))
	}
	return result, nil
}

// normalizeEntries applies the budget-mode arithmetic and collects every
// violation in the batch. Fixed totals are recomputed from the program
// type's authoritative rate; client-supplied totals are discarded.
func (s *programCountService) normalizeEntries(ctx context.Context, req *dto.SubmitBudgetRequest) ([]model.ProgramCount, []apperr.Detail, error) {
	rows := make([]model.ProgramCount, 0, len(req.Entries))
	var details []apperr.Detail

	for _, e := range req.Entries {
		if e.Count < 0 || e.TotalBudget < 0 {
			details = append(details, apperr.Detail{
				ProgramType:    e.ProgramType,
				SubProgramType: e.SubProgramType,
				Reason: fmt.Sprintf(
					"count and total budget must not be negative (count=%d, total_budget=%d)",
					e.Count, e.TotalBudget,
				),
			})
			continue
		}

		row := model.ProgramCount{
			DepartmentID:   req.DepartmentID,
			AcademicYearID: req.AcademicYearID,
			ProgramType:    e.ProgramType,
			SubProgramType: e.SubProgramType,
			BudgetMode:     e.BudgetMode,
			Count:          e.Count,
			TotalBudget:    e.TotalBudget,
			Remarks:        e.Remarks,
		}

		switch e.BudgetMode {
		case model.BudgetModeFixed:
			rate, err := s.fixedRate(ctx, e)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					details = append(details, apperr.Detail{
						ProgramType:    e.ProgramType,
						SubProgramType: e.SubProgramType,
						Reason:         "unknown program type",
					})
					continue
				}
				return nil, nil, err
			}
			row.TotalBudget = int64(e.Count) * rate
		case model.BudgetModeVariable:
			if (e.Count > 0) != (e.TotalBudget > 0) {
				details = append(details, apperr.Detail{
					ProgramType:    e.ProgramType,
					SubProgramType: e.SubProgramType,
					Reason: fmt.Sprintf(
						"variable mode requires count and total budget to be both zero or both positive (count=%d, total_budget=%d)",
						e.Count, e.TotalBudget,
					),
				})
				continue
			}
		}

		rows = append(rows, row)
	}

	return rows, details, nil
}

// fixedRate returns the authoritative per-event budget for a fixed-mode
// entry, preferring the catalogued program type over the client's value.
func (s *programCountService) fixedRate(ctx context.Context, e dto.BudgetEntry) (int64, error) {
	pt, err := s.repo.ProgramType.GetByIdentity(ctx, e.ProgramType, e.SubProgramType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) && e.BudgetPerEvent > 0 {
			return e.BudgetPerEvent, nil
		}
		return 0, err
	}
	return pt.BudgetPerEvent, nil
}

func (s *programCountService) List(ctx context.Context, departmentID, academicYearID string) ([]dto.ProgramCountResponse, error) {
	stored, err := s.repo.ProgramCount.ListByAggregate(ctx, departmentID, academicYearID)
	if err != nil {
		s.logger.Error("list program counts failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ProgramCountResponse, 0, len(stored))
	for i := range stored {
		result = append(result, toProgramCountResponse(&stored[i]))
	}
	return result, nil
}

func (s *programCountService) SetPrincipalRemarks(ctx context.Context, req *dto.PrincipalRemarksRequest, role workflow.Role) error {
	if role != workflow.RolePrincipal && role != workflow.RoleAdmin {
		return apperr.Forbidden("only the principal may set principal remarks", "role_not_allowed")
	}
	affected, err := s.repo.ProgramCount.UpdatePrincipalRemarks(ctx, req.DepartmentID, req.AcademicYearID, req.Remarks)
	if err != nil {
		s.logger.Error("update principal remarks failed", zap.Error(err))
		return err
	}
	if affected == 0 {
		return apperr.NotFound("no budget entries found for department and year")
	}
	return nil
}

// ── Internal helpers ──

func toProgramCountResponse(pc *model.ProgramCount) dto.ProgramCountResponse {
	return dto.ProgramCountResponse{
		ID:               pc.ProgramCountID,
		DepartmentID:     pc.DepartmentID,
		AcademicYearID:   pc.AcademicYearID,
		ProgramType:      pc.ProgramType,
		SubProgramType:   pc.SubProgramType,
		BudgetMode:       pc.BudgetMode,
		Count:            pc.Count,
		TotalBudget:      pc.TotalBudget,
		Remarks:          pc.Remarks,
		PrincipalRemarks: pc.PrincipalRemarks,
		UpdatedAt:        pc.UpdatedAt.Format(time.RFC3339),
	}
}
