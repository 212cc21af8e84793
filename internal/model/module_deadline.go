package model

import "time"

// ModuleDeadline maps to the module_deadlines table. One submission cutoff
// per (academic year, module).
type ModuleDeadline struct {
	ModuleDeadlineID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"              json:"module_deadline_id"`
	AcademicYearID   string    `gorm:"type:uuid;not null;uniqueIndex:uq_module_deadline_identity"  json:"academic_year_id"`
	Module           string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_module_deadline_identity" json:"module"`
	Deadline         time.Time `gorm:"not null"                                                    json:"deadline"`
	BaseModel
}

// TableName sets the table name.
func (ModuleDeadline) TableName() string { return "module_deadlines" }
