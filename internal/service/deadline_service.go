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

// DeadlineService maintains the per-(year, module) submission cutoffs.
type DeadlineService interface {
	Set(ctx context.Context, req *dto.SetDeadlineRequest) (*dto.DeadlineResponse, error)
	Get(ctx context.Context, academicYearID, module string) (*dto.DeadlineResponse, error)
	ListForYear(ctx context.Context, academicYearID string) ([]dto.DeadlineResponse, error)
}

type deadlineService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDeadlineService creates a DeadlineService.
func NewDeadlineService(repo *repository.Repository, logger *zap.Logger) DeadlineService {
	return &deadlineService{repo: repo, logger: logger}
}

func (s *deadlineService) Set(ctx context.Context, req *dto.SetDeadlineRequest) (*dto.DeadlineResponse, error) {
	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		return nil, apperr.Validation("invalid deadline timestamp",
			apperr.Detail{Field: "deadline", Reason: "must be RFC 3339"})
	}

	md := &model.ModuleDeadline{
		AcademicYearID: req.AcademicYearID,
		Module:         req.Module,
		Deadline:       deadline,
	}
	if err := s.repo.ModuleDeadline.Upsert(ctx, md); err != nil {
		s.logger.Error("upsert module deadline failed",
			zap.String("module", req.Module),
			zap.Error(err),
		)
		return nil, err
	}

	resp := toDeadlineResponse(md)
	return &resp, nil
}

func (s *deadlineService) Get(ctx context.Context, academicYearID, module string) (*dto.DeadlineResponse, error) {
	md, err := s.repo.ModuleDeadline.Get(ctx, academicYearID, module)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no deadline configured for module")
		}
		s.logger.Error("get module deadline failed", zap.Error(err))
		return nil, err
	}
	resp := toDeadlineResponse(md)
	return &resp, nil
}

func (s *deadlineService) ListForYear(ctx context.Context, academicYearID string) ([]dto.DeadlineResponse, error) {
	deadlines, err := s.repo.ModuleDeadline.ListByYear(ctx, academicYearID)
	if err != nil {
		s.logger.Error("list module deadlines failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.DeadlineResponse, 0, len(deadlines))
	for i := range deadlines {
		result = append(result, toDeadlineResponse(&deadlines[i]))
	}
	return result, nil
}

func toDeadlineResponse(md *model.ModuleDeadline) dto.DeadlineResponse {
	return dto.DeadlineResponse{
		ID:             md.ModuleDeadlineID,
		AcademicYearID: md.AcademicYearID,
		Module:         md.Module,
		Deadline:       md.Deadline.Format(time.RFC3339),
	}
}
