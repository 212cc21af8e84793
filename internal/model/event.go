package model

import "time"

// Event execution statuses. Distinct from the workflow status: these track
// an individual event after planning.
const (
	EventStatusPlanned   = "planned"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// Event maps to the events table. Rows exist only from the approved
// workflow status onward and are destroyed wholesale by an explicit clear.
type Event struct {
	EventID            string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	DepartmentID       string    `gorm:"type:uuid;not null;index:idx_events_dept_year"  json:"department_id"`
	AcademicYearID     string    `gorm:"type:uuid;not null;index:idx_events_dept_year"  json:"academic_year_id"`
	ProgramTypeID      string    `gorm:"type:uuid;not null;index"                       json:"program_type_id"`
	Title              string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description        string    `gorm:"type:text"                                      json:"description,omitempty"`
	EventDate          time.Time `gorm:"type:date;not null"                             json:"event_date"`
	BudgetAmount       int64     `gorm:"type:bigint;not null"                           json:"budget_amount"`
	CoordinatorName    string    `gorm:"type:varchar(100)"                              json:"coordinator_name,omitempty"`
	CoordinatorContact string    `gorm:"type:varchar(100)"                              json:"coordinator_contact,omitempty"`
	Status             string    `gorm:"type:varchar(20);not null;default:'planned'"    json:"status"`
	BaseModel

	ProgramType *ProgramType `gorm:"foreignKey:ProgramTypeID;references:ProgramTypeID" json:"program_type,omitempty"`
}

// TableName sets the table name.
func (Event) TableName() string { return "events" }
