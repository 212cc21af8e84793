package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/dto"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/repository"
)

// ReferenceService serves the read-only lookup data clients render
// selectors from: academic years, departments, and the program type
// catalogue.
type ReferenceService interface {
	ListAcademicYears(ctx context.Context) ([]dto.AcademicYearResponse, error)
	ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error)
	ListProgramTypes(ctx context.Context) ([]dto.ProgramTypeResponse, error)
}

type referenceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReferenceService creates a ReferenceService.
func NewReferenceService(repo *repository.Repository, logger *zap.Logger) ReferenceService {
	return &referenceService{repo: repo, logger: logger}
}

func (s *referenceService) ListAcademicYears(ctx context.Context) ([]dto.AcademicYearResponse, error) {
	years, err := s.repo.AcademicYear.List(ctx)
	if err != nil {
		s.logger.Error("list academic years failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.AcademicYearResponse, 0, len(years))
	for _, y := range years {
		result = append(result, dto.AcademicYearResponse{
			ID:        y.AcademicYearID,
			Year:      y.Year,
			IsEnabled: y.IsEnabled,
		})
	}
	return result, nil
}

func (s *referenceService) ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error) {
	departments, err := s.repo.Department.List(ctx)
	if err != nil {
		s.logger.Error("list departments failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		result = append(result, dto.DepartmentResponse{
			ID:        d.DepartmentID,
			Name:      d.Name,
			ShortName: d.ShortName,
			IsActive:  d.IsActive,
		})
	}
	return result, nil
}

func (s *referenceService) ListProgramTypes(ctx context.Context) ([]dto.ProgramTypeResponse, error) {
	types, err := s.repo.ProgramType.List(ctx)
	if err != nil {
		s.logger.Error("list program types failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ProgramTypeResponse, 0, len(types))
	for _, pt := range types {
		result = append(result, dto.ProgramTypeResponse{
			ID:               pt.ProgramTypeID,
			ProgramType:      pt.ProgramType,
			SubProgramType:   pt.SubProgramType,
			ActivityCategory: pt.ActivityCategory,
			BudgetMode:       pt.BudgetMode,
			BudgetPerEvent:   pt.BudgetPerEvent,
		})
	}
	return result, nil
}
