package model

// Budget modes. Fixed derives the total from a per-event rate; variable
// takes an independently entered total.
const (
	BudgetModeFixed    = "fixed"
	BudgetModeVariable = "variable"
)

// ProgramType maps to the program_types table. BudgetPerEvent is only
// meaningful for fixed-mode types.
type ProgramType struct {
	ProgramTypeID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"program_type_id"`
	ProgramType      string `gorm:"type:varchar(100);not null"                     json:"program_type"`
	SubProgramType   string `gorm:"type:varchar(100)"                              json:"sub_program_type,omitempty"`
	ActivityCategory string `gorm:"type:varchar(100);not null"                     json:"activity_category"`
	BudgetMode       string `gorm:"type:varchar(10);not null"                      json:"budget_mode"` // fixed | variable
	BudgetPerEvent   int64  `gorm:"type:bigint"                                    json:"budget_per_event,omitempty"`
	BaseModel
}

// TableName sets the table name.
func (ProgramType) TableName() string { return "program_types" }
