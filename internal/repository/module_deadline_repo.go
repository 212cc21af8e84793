package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/model"
)

// ModuleDeadlineRepository is the module_deadlines data-access interface.
type ModuleDeadlineRepository interface {
	Get(ctx context.Context, academicYearID, module string) (*model.ModuleDeadline, error)
	ListByYear(ctx context.Context, academicYearID string) ([]model.ModuleDeadline, error)
	Upsert(ctx context.Context, md *model.ModuleDeadline) error
}

type moduleDeadlineRepo struct {
	db *gorm.DB
}

// NewModuleDeadlineRepo creates a ModuleDeadlineRepository.
func NewModuleDeadlineRepo(db *gorm.DB) ModuleDeadlineRepository {
	return &moduleDeadlineRepo{db: db}
}

func (r *moduleDeadlineRepo) Get(ctx context.Context, academicYearID, module string) (*model.ModuleDeadline, error) {
	var md model.ModuleDeadline
	err := r.db.WithContext(ctx).
		Where("academic_year_id = ? AND module = ?", academicYearID, module).
		First(&md).Error
	if err != nil {
		return nil, err
	}
	return &md, nil
}

func (r *moduleDeadlineRepo) ListByYear(ctx context.Context, academicYearID string) ([]model.ModuleDeadline, error) {
	var deadlines []model.ModuleDeadline
	err := r.db.WithContext(ctx).
		Where("academic_year_id = ?", academicYearID).
		Order("module ASC").
		Find(&deadlines).Error
	return deadlines, err
}

func (r *moduleDeadlineRepo) Upsert(ctx context.Context, md *model.ModuleDeadline) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "academic_year_id"},
				{Name: "module"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"deadline", "updated_at"}),
		}).
		Create(md).Error
}
