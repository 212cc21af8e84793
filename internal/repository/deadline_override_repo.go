package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/model"
)

// DeadlineOverrideRepository is the deadline_overrides data-access
// interface. The unique key is (department, academic year, module).
type DeadlineOverrideRepository interface {
	Get(ctx context.Context, departmentID, academicYearID, module string) (*model.DeadlineOverride, error)
	ListByYear(ctx context.Context, academicYearID string) ([]model.DeadlineOverride, error)
	// Replace inserts the record or fully overwrites an existing one for
	// the same key (a re-grant).
	Replace(ctx context.Context, o *model.DeadlineOverride) error
	Update(ctx context.Context, o *model.DeadlineOverride) error
	Delete(ctx context.Context, departmentID, academicYearID, module string) (int64, error)
}

type deadlineOverrideRepo struct {
	db *gorm.DB
}

// NewDeadlineOverrideRepo creates a DeadlineOverrideRepository.
func NewDeadlineOverrideRepo(db *gorm.DB) DeadlineOverrideRepository {
	return &deadlineOverrideRepo{db: db}
}

func (r *deadlineOverrideRepo) Get(ctx context.Context, departmentID, academicYearID, module string) (*model.DeadlineOverride, error) {
	var o model.DeadlineOverride
	err := r.db.WithContext(ctx).
		Where("department_id = ? AND academic_year_id = ? AND module = ?",
			departmentID, academicYearID, module).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *deadlineOverrideRepo) ListByYear(ctx context.Context, academicYearID string) ([]model.DeadlineOverride, error) {
	var overrides []model.DeadlineOverride
	err := r.db.WithContext(ctx).
		Where("academic_year_id = ?", academicYearID).
		Order("expires_at DESC").
		Find(&overrides).Error
	return overrides, err
}

func (r *deadlineOverrideRepo) Replace(ctx context.Context, o *model.DeadlineOverride) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "department_id"},
				{Name: "academic_year_id"},
				{Name: "module"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"reason", "duration_hours", "granted_at", "expires_at", "updated_at",
			}),
		}).
		Create(o).Error
}

func (r *deadlineOverrideRepo) Update(ctx context.Context, o *model.DeadlineOverride) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *deadlineOverrideRepo) Delete(ctx context.Context, departmentID, academicYearID, module string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("department_id = ? AND academic_year_id = ? AND module = ?",
			departmentID, academicYearID, module).
		Delete(&model.DeadlineOverride{})
	return res.RowsAffected, res.Error
}
