package model

// ProgramCount maps to the program_counts table. One row per
// (department, academic year, program type, sub program type); rows are
// upserted on each budget submission.
//
// For fixed-mode rows TotalBudget is derived (count x budget_per_event)
// and never taken from client input. For variable-mode rows count and
// total must be both zero or both positive.
type ProgramCount struct {
	ProgramCountID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                            json:"program_count_id"`
	DepartmentID     string `gorm:"type:uuid;not null;uniqueIndex:uq_program_counts_identity"                 json:"department_id"`
	AcademicYearID   string `gorm:"type:uuid;not null;uniqueIndex:uq_program_counts_identity"                 json:"academic_year_id"`
	ProgramType      string `gorm:"type:varchar(100);not null;uniqueIndex:uq_program_counts_identity"         json:"program_type"`
	SubProgramType   string `gorm:"type:varchar(100);not null;default:'';uniqueIndex:uq_program_counts_identity" json:"sub_program_type"`
	BudgetMode       string `gorm:"type:varchar(10);not null"                                                 json:"budget_mode"`
	Count            int    `gorm:"not null;default:0"                                                        json:"count"`
	TotalBudget      int64  `gorm:"type:bigint;not null;default:0"                                            json:"total_budget"`
	Remarks          string `gorm:"type:text"                                                                 json:"remarks,omitempty"`
	PrincipalRemarks string `gorm:"type:text"                                                                 json:"principal_remarks,omitempty"`
	BaseModel
}

// TableName sets the table name.
func (ProgramCount) TableName() string { return "program_counts" }
