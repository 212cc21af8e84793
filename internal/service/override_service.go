package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/dto"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/model"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/repository"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/apperr"
)

// OverrideService grants, extends and revokes time-bound deadline
// exceptions. Lapsed records are left in place; activity is derived from
// expires_at at read time.
type OverrideService interface {
	Grant(ctx context.Context, req *dto.GrantOverrideRequest) (*dto.OverrideResponse, error)
	// IsActive reports whether an override is in force at the given
	// instant. Absence is simply "false", never an error.
	IsActive(ctx context.Context, departmentID, academicYearID, module string, now time.Time) (bool, error)
	// Extend adds hours to the existing expiry (not to now); it fails with
	// a not-found error when no record exists, active or lapsed.
	Extend(ctx context.Context, req *dto.ExtendOverrideRequest) (*dto.OverrideResponse, error)
	Revoke(ctx context.Context, departmentID, academicYearID, module string) error
	// BulkGrant applies Grant independently per department; failures are
	// collected per department and never roll back prior successes.
	BulkGrant(ctx context.Context, req *dto.BulkGrantOverrideRequest) []dto.BulkGrantResult
	List(ctx context.Context, academicYearID string) ([]dto.OverrideResponse, error)
}

type overrideService struct {
	repo                 *repository.Repository
	logger               *zap.Logger
	defaultDurationHours int
	now                  func() time.Time
}

// NewOverrideService creates an OverrideService.
func NewOverrideService(repo *repository.Repository, defaultDurationHours int, logger *zap.Logger) OverrideService {
	return &overrideService{
		repo:                 repo,
		logger:               logger,
		defaultDurationHours: defaultDurationHours,
		now:                  time.Now,
	}
}

func (s *overrideService) Grant(ctx context.Context, req *dto.GrantOverrideRequest) (*dto.OverrideResponse, error) {
	if req.DurationHours <= 0 {
		return nil, apperr.Validation("override duration must be positive",
			apperr.Detail{Field: "duration_hours", Reason: "must be greater than zero"})
	}

	now := s.now()
	o := &model.DeadlineOverride{
		DepartmentID:   req.DepartmentID,
		AcademicYearID: req.AcademicYearID,
		Module:         req.Module,
		Reason:         req.Reason,
		DurationHours:  req.DurationHours,
		GrantedAt:      now,
		ExpiresAt:      now.Add(time.Duration(req.DurationHours) * time.Hour),
	}

	// A re-grant replaces the existing record outright; the new expiry is
	// computed from now, not stacked on the old one.
	if err := s.repo.DeadlineOverride.Replace(ctx, o); err != nil {
		s.logger.Error("grant override failed",
			zap.String("department_id", req.DepartmentID),
			zap.String("module", req.Module),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("deadline override granted",
		zap.String("department_id", req.DepartmentID),
		zap.String("module", req.Module),
		zap.Int("duration_hours", req.DurationHours),
	)

	resp := s.toOverrideResponse(o, now)
	return &resp, nil
}

func (s *overrideService) IsActive(ctx context.Context, departmentID, academicYearID, module string, now time.Time) (bool, error) {
	o, err := s.repo.DeadlineOverride.Get(ctx, departmentID, academicYearID, module)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return o.ActiveAt(now), nil
}

func (s *overrideService) Extend(ctx context.Context, req *dto.ExtendOverrideRequest) (*dto.OverrideResponse, error) {
	if req.AdditionalHours <= 0 {
		return nil, apperr.Validation("extension must be positive",
			apperr.Detail{Field: "additional_hours", Reason: "must be greater than zero"})
	}

	o, err := s.repo.DeadlineOverride.Get(ctx, req.DepartmentID, req.AcademicYearID, req.Module)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no override exists for department, year and module")
		}
		s.logger.Error("load override failed", zap.Error(err))
		return nil, err
	}

	// Hours extend the prior expiry, so extending a lapsed override may
	// still leave it lapsed.
	o.ExpiresAt = o.ExpiresAt.Add(time.Duration(req.AdditionalHours) * time.Hour)
	o.DurationHours += req.AdditionalHours

	if err := s.repo.DeadlineOverride.Update(ctx, o); err != nil {
		s.logger.Error("extend override failed", zap.Error(err))
		return nil, err
	}

	resp := s.toOverrideResponse(o, s.now())
	return &resp, nil
}

func (s *overrideService) Revoke(ctx context.Context, departmentID, academicYearID, module string) error {
	affected, err := s.repo.DeadlineOverride.Delete(ctx, departmentID, academicYearID, module)
	if err != nil {
		s.logger.Error("revoke override failed", zap.Error(err))
		return err
	}
	if affected == 0 {
		return apperr.NotFound("no override exists for department, year and module")
	}
	s.logger.Info("deadline override revoked",
		zap.String("department_id", departmentID),
		zap.String("module", module),
	)
	return nil
}

func (s *overrideService) BulkGrant(ctx context.Context, req *dto.BulkGrantOverrideRequest) []dto.BulkGrantResult {
	duration := req.DurationHours
	if duration <= 0 {
		duration = s.defaultDurationHours
	}

	results := make([]dto.BulkGrantResult, 0, len(req.DepartmentIDs))
	for _, deptID := range req.DepartmentIDs {
		_, err := s.Grant(ctx, &dto.GrantOverrideRequest{
			DepartmentID:   deptID,
			AcademicYearID: req.AcademicYearID,
			Module:         req.Module,
			DurationHours:  duration,
			Reason:         req.Reason,
		})
		res := dto.BulkGrantResult{DepartmentID: deptID, OK: err == nil}
		if err != nil {
			res.Error = err.Error()
		}
		results = append(results, res)
	}
	return results
}

func (s *overrideService) List(ctx context.Context, academicYearID string) ([]dto.OverrideResponse, error) {
	overrides, err := s.repo.DeadlineOverride.ListByYear(ctx, academicYearID)
	if err != nil {
		s.logger.Error("list overrides failed", zap.Error(err))
		return nil, err
	}
	now := s.now()
	result := make([]dto.OverrideResponse, 0, len(overrides))
	for i := range overrides {
		result = append(result, s.toOverrideResponse(&overrides[i], now))
	}
	return result, nil
}

// ── Internal helpers ──

func (s *overrideService) toOverrideResponse(o *model.DeadlineOverride, now time.Time) dto.OverrideResponse {
	return dto.OverrideResponse{
		ID:             o.DeadlineOverrideID,
		DepartmentID:   o.DepartmentID,
		AcademicYearID: o.AcademicYearID,
		Module:         o.Module,
		Reason:         o.Reason,
		DurationHours:  o.DurationHours,
		GrantedAt:      o.GrantedAt.Format(time.RFC3339),
		ExpiresAt:      o.ExpiresAt.Format(time.RFC3339),
		Active:         o.ActiveAt(now),
	}
}
