package model

// WorkflowStatus maps to the workflow_statuses table. Exactly one row per
// (department, academic year); created implicitly at draft on first touch.
// Version guards concurrent transitions on the same aggregate.
type WorkflowStatus struct {
	WorkflowStatusID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"        json:"workflow_status_id"`
	DepartmentID     string `gorm:"type:uuid;not null;uniqueIndex:uq_workflow_identity"   json:"department_id"`
	AcademicYearID   string `gorm:"type:uuid;not null;uniqueIndex:uq_workflow_identity"   json:"academic_year_id"`
	Status           string `gorm:"type:varchar(30);not null;default:'draft'"             json:"status"`
	Version          int    `gorm:"not null;default:1"                                    json:"version"`
	BaseModel
}

// TableName sets the table name.
func (WorkflowStatus) TableName() string { return "workflow_statuses" }
