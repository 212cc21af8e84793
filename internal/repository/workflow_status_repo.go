package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/model"
)

// WorkflowStatusRepository is the workflow_statuses data-access interface.
type WorkflowStatusRepository interface {
	// GetOrCreate returns the row for the aggregate, creating it at draft
	// on first touch.
	GetOrCreate(ctx context.Context, departmentID, academicYearID string) (*model.WorkflowStatus, error)
	// GetForUpdate locks the aggregate's row for the duration of the
	// surrounding transaction, creating it at draft if absent.
	GetForUpdate(ctx context.Context, departmentID, academicYearID string) (*model.WorkflowStatus, error)
	// UpdateStatusVersioned advances the row only if the version still
	// matches; it reports the number of rows changed.
	UpdateStatusVersioned(ctx context.Context, id, status string, expectedVersion int) (int64, error)
	ListByYear(ctx context.Context, academicYearID string) ([]model.WorkflowStatus, error)
}

type workflowStatusRepo struct {
	db *gorm.DB
}

// NewWorkflowStatusRepo creates a WorkflowStatusRepository.
func NewWorkflowStatusRepo(db *gorm.DB) WorkflowStatusRepository {
	return &workflowStatusRepo{db: db}
}

func (r *workflowStatusRepo) GetOrCreate(ctx context.Context, departmentID, academicYearID string) (*model.WorkflowStatus, error) {
	return r.getOrCreate(ctx, departmentID, academicYearID, false)
}

func (r *workflowStatusRepo) GetForUpdate(ctx context.Context, departmentID, academicYearID string) (*model.WorkflowStatus, error) {
	return r.getOrCreate(ctx, departmentID, academicYearID, true)
}

func (r *workflowStatusRepo) getOrCreate(ctx context.Context, departmentID, academicYearID string, forUpdate bool) (*model.WorkflowStatus, error) {
	q := r.db.WithContext(ctx)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var ws model.WorkflowStatus
	err := q.
		Where("department_id = ? AND academic_year_id = ?", departmentID, academicYearID).
		First(&ws).Error
	if err == nil {
		return &ws, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ws = model.WorkflowStatus{
		DepartmentID:   departmentID,
		AcademicYearID: academicYearID,
		Status:         "draft",
		Version:        1,
	}
	if err := r.db.WithContext(ctx).Create(&ws).Error; err != nil {
		return nil, err
	}
	if !forUpdate {
		return &ws, nil
	}
	// Re-read under the lock so the caller holds the freshly created row.
	err = r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("department_id = ? AND academic_year_id = ?", departmentID, academicYearID).
		First(&ws).Error
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *workflowStatusRepo) UpdateStatusVersioned(ctx context.Context, id, status string, expectedVersion int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.WorkflowStatus{}).
		Where("workflow_status_id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			"status":     status,
			"version":    expectedVersion + 1,
			"updated_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *workflowStatusRepo) ListByYear(ctx context.Context, academicYearID string) ([]model.WorkflowStatus, error) {
	var rows []model.WorkflowStatus
	err := r.db.WithContext(ctx).
		Where("academic_year_id = ?", academicYearID).
		Find(&rows).Error
	return rows, err
}
