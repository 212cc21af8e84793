package dto

// ── Deadline override DTOs ──

// GrantOverrideRequest grants (or re-grants) a time-bound exception.
type GrantOverrideRequest struct {
	DepartmentID   string `json:"department_id"    binding:"required,uuid"`
	AcademicYearID string `json:"academic_year_id" binding:"required,uuid"`
	Module         string `json:"module"           binding:"required,max=50"`
	DurationHours  int    `json:"duration_hours"   binding:"required"`
	Reason         string `json:"reason"           binding:"required,max=500"`
}

// BulkGrantOverrideRequest grants the same exception to several
// departments independently; one failure never rolls back the others.
type BulkGrantOverrideRequest struct {
	DepartmentIDs  []string `json:"department_ids"   binding:"required,min=1,dive,uuid"`
	AcademicYearID string   `json:"academic_year_id" binding:"required,uuid"`
	Module         string   `json:"module"           binding:"required,max=50"`
	DurationHours  int      `json:"duration_hours"`
	Reason         string   `json:"reason"           binding:"required,max=500"`
}

// ExtendOverrideRequest lengthens an existing override.
type ExtendOverrideRequest struct {
	DepartmentID    string `json:"department_id"    binding:"required,uuid"`
	AcademicYearID  string `json:"academic_year_id" binding:"required,uuid"`
	Module          string `json:"module"           binding:"required,max=50"`
	AdditionalHours int    `json:"additional_hours" binding:"required"`
}

// OverrideResponse is one override record with its derived state.
type OverrideResponse struct {
	ID             string `json:"id"`
	DepartmentID   string `json:"department_id"`
	AcademicYearID string `json:"academic_year_id"`
	Module         string `json:"module"`
	Reason         string `json:"reason"`
	DurationHours  int    `json:"duration_hours"`
	GrantedAt      string `json:"granted_at"`
	ExpiresAt      string `json:"expires_at"`
	Active         bool   `json:"active"`
}

// BulkGrantResult reports one department's outcome inside a bulk grant.
type BulkGrantResult struct {
	DepartmentID string `json:"department_id"`
	OK           bool   `json:"ok"`
	Error        string `json:"error,omitempty"`
}
