package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every data-access interface.
type Repository struct {
	db *gorm.DB

	Department       DepartmentRepository
	AcademicYear     AcademicYearRepository
	ProgramType      ProgramTypeRepository
	ProgramCount     ProgramCountRepository
	WorkflowStatus   WorkflowStatusRepository
	ModuleDeadline   ModuleDeadlineRepository
	DeadlineOverride DeadlineOverrideRepository
	Event            EventRepository
	Notification     NotificationRepository
}

// NewRepository builds the repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:               db,
		Department:       NewDepartmentRepo(db),
		AcademicYear:     NewAcademicYearRepo(db),
		ProgramType:      NewProgramTypeRepo(db),
		ProgramCount:     NewProgramCountRepo(db),
		WorkflowStatus:   NewWorkflowStatusRepo(db),
		ModuleDeadline:   NewModuleDeadlineRepo(db),
		DeadlineOverride: NewDeadlineOverrideRepo(db),
		Event:            NewEventRepo(db),
		Notification:     NewNotificationRepo(db),
	}
}

// BeginTx opens a transaction. The caller commits or rolls back. Without
// an underlying database the transaction is nil and operations run
// directly against the aggregate's stores.
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx returns a repository aggregate bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
