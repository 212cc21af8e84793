package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/model"
)

// EventRepository is the events data-access interface.
type EventRepository interface {
	GetByID(ctx context.Context, id string) (*model.Event, error)
	ListByAggregate(ctx context.Context, departmentID, academicYearID string) ([]model.Event, error)
	ListByProgramType(ctx context.Context, departmentID, academicYearID, programTypeID string) ([]model.Event, error)
	// ReplaceForProgramType swaps out every event of one program type in a
	// single statement pair; callers wrap it in a transaction.
	ReplaceForProgramType(ctx context.Context, departmentID, academicYearID, programTypeID string, events []model.Event) error
	DeleteByAggregate(ctx context.Context, departmentID, academicYearID string) (int64, error)
	UpdateStatus(ctx context.Context, id, status string) (int64, error)
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo creates an EventRepository.
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var ev model.Event
	err := r.db.WithContext(ctx).
		Where("event_id = ?", id).
		First(&ev).Error
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *eventRepo) ListByAggregate(ctx context.Context, departmentID, academicYearID string) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("department_id = ? AND academic_year_id = ?", departmentID, academicYearID).
		Order("event_date ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepo) ListByProgramType(ctx context.Context, departmentID, academicYearID, programTypeID string) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("department_id = ? AND academic_year_id = ? AND program_type_id = ?",
			departmentID, academicYearID, programTypeID).
		Order("event_date ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepo) ReplaceForProgramType(ctx context.Context, departmentID, academicYearID, programTypeID string, events []model.Event) error {
	err := r.db.WithContext(ctx).
		Where("department_id = ? AND academic_year_id = ? AND program_type_id = ?",
			departmentID, academicYearID, programTypeID).
		Delete(&model.Event{}).Error
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&events).Error
}

func (r *eventRepo) DeleteByAggregate(ctx context.Context, departmentID, academicYearID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("department_id = ? AND academic_year_id = ?", departmentID, academicYearID).
		Delete(&model.Event{})
	return res.RowsAffected, res.Error
}

func (r *eventRepo) UpdateStatus(ctx context.Context, id, status string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("event_id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}
