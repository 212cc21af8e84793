package model

import "time"

// DeadlineOverride maps to the deadline_overrides table. At most one row
// per (department, academic year, module); re-grants replace the row,
// revoke deletes it, and lapsed rows stay in place past ExpiresAt
// (presence does not imply active).
type DeadlineOverride struct {
	DeadlineOverrideID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"          json:"deadline_override_id"`
	DepartmentID       string    `gorm:"type:uuid;not null;uniqueIndex:uq_override_identity"     json:"department_id"`
	AcademicYearID     string    `gorm:"type:uuid;not null;uniqueIndex:uq_override_identity"     json:"academic_year_id"`
	Module             string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_override_identity" json:"module"`
	Reason             string    `gorm:"type:varchar(500);not null"                              json:"reason"`
	DurationHours      int       `gorm:"not null"                                                json:"duration_hours"`
	GrantedAt          time.Time `gorm:"not null"                                                json:"granted_at"`
	ExpiresAt          time.Time `gorm:"not null"                                                json:"expires_at"`
	BaseModel
}

// TableName sets the table name.
func (DeadlineOverride) TableName() string { return "deadline_overrides" }

// ActiveAt reports whether the override is in force at the given instant.
func (o *DeadlineOverride) ActiveAt(now time.Time) bool {
	return now.Before(o.ExpiresAt)
}
