package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/model"
)

// AcademicYearRepository is the academic_years data-access interface.
type AcademicYearRepository interface {
	GetByID(ctx context.Context, id string) (*model.AcademicYear, error)
	List(ctx context.Context) ([]model.AcademicYear, error)
}

type academicYearRepo struct {
	db *gorm.DB
}

// NewAcademicYearRepo creates an AcademicYearRepository.
func NewAcademicYearRepo(db *gorm.DB) AcademicYearRepository {
	return &academicYearRepo{db: db}
}

func (r *academicYearRepo) GetByID(ctx context.Context, id string) (*model.AcademicYear, error) {
	var year model.AcademicYear
	err := r.db.WithContext(ctx).
		Where("academic_year_id = ?", id).
		First(&year).Error
	if err != nil {
		return nil, err
	}
	return &year, nil
}

func (r *academicYearRepo) List(ctx context.Context) ([]model.AcademicYear, error) {
	var years []model.AcademicYear
	err := r.db.WithContext(ctx).
		Order("year DESC").
		Find(&years).Error
	return years, err
}
