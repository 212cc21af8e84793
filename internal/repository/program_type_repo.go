package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/model"
)

// ProgramTypeRepository is the program_types data-access interface.
type ProgramTypeRepository interface {
	GetByID(ctx context.Context, id string) (*model.ProgramType, error)
	GetByIdentity(ctx context.Context, programType, subProgramType string) (*model.ProgramType, error)
	List(ctx context.Context) ([]model.ProgramType, error)
}

type programTypeRepo struct {
	db *gorm.DB
}

// NewProgramTypeRepo creates a ProgramTypeRepository.
func NewProgramTypeRepo(db *gorm.DB) ProgramTypeRepository {
	return &programTypeRepo{db: db}
}

func (r *programTypeRepo) GetByID(ctx context.Context, id string) (*model.ProgramType, error) {
	var pt model.ProgramType
	err := r.db.WithContext(ctx).
		Where("program_type_id = ?", id).
		First(&pt).Error
	if err != nil {
		return nil, err
	}
	return &pt, nil
}

func (r *programTypeRepo) GetByIdentity(ctx context.Context, programType, subProgramType string) (*model.ProgramType, error) {
	var pt model.ProgramType
	err := r.db.WithContext(ctx).
		Where("program_type = ? AND COALESCE(sub_program_type, '') = ?", programType, subProgramType).
		First(&pt).Error
	if err != nil {
		return nil, err
	}
	return &pt, nil
}

func (r *programTypeRepo) List(ctx context.Context) ([]model.ProgramType, error) {
	var types []model.ProgramType
	err := r.db.WithContext(ctx).
		Order("program_type ASC, sub_program_type ASC").
		Find(&types).Error
	return types, err
}
