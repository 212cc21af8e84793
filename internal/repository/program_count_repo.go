package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/model"
)

// ProgramCountRepository is the program_counts data-access interface.
type ProgramCountRepository interface {
	ListByAggregate(ctx context.Context, departmentID, academicYearID string) ([]model.ProgramCount, error)
	ListByYear(ctx context.Context, academicYearID string) ([]model.ProgramCount, error)
	Upsert(ctx context.Context, pc *model.ProgramCount) error
	UpdatePrincipalRemarks(ctx context.Context, departmentID, academicYearID, remarks string) (int64, error)
}

type programCountRepo struct {
	db *gorm.DB
}

// NewProgramCountRepo creates a ProgramCountRepository.
func NewProgramCountRepo(db *gorm.DB) ProgramCountRepository {
	return &programCountRepo{db: db}
}

func (r *programCountRepo) ListByAggregate(ctx context.Context, departmentID, academicYearID string) ([]model.ProgramCount, error) {
	var counts []model.ProgramCount
	err := r.db.WithContext(ctx).
		Where("department_id = ? AND academic_year_id = ?", departmentID, academicYearID).
		Order("program_type ASC, sub_program_type ASC").
		Find(&counts).Error
	return counts, err
}

func (r *programCountRepo) ListByYear(ctx context.Context, academicYearID string) ([]model.ProgramCount, error) {
	var counts []model.ProgramCount
	err := r.db.WithContext(ctx).
		Where("academic_year_id = ?", academicYearID).
		Find(&counts).Error
	return counts, err
}

// Upsert inserts or updates by the (department, year, program type,
// sub program type) identity.
func (r *programCountRepo) Upsert(ctx context.Context, pc *model.ProgramCount) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "department_id"},
				{Name: "academic_year_id"},
				{Name: "program_type"},
				{Name: "sub_program_type"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"budget_mode", "count", "total_budget", "remarks", "updated_at",
			}),
		}).
		Create(pc).Error
}

func (r *programCountRepo) UpdatePrincipalRemarks(ctx context.Context, departmentID, academicYearID, remarks string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ProgramCount{}).
		Where("department_id = ? AND academic_year_id = ?", departmentID, academicYearID).
		Update("principal_remarks", remarks)
	return res.RowsAffected, res.Error
}
