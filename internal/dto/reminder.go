package dto

// ── Reminder DTOs ──

// SendRemindersRequest nudges the named departments about a module
// deadline. Departments already past draft are skipped.
type SendRemindersRequest struct {
	AcademicYearID string   `json:"academic_year_id" binding:"required,uuid"`
	Module         string   `json:"module"           binding:"required,max=50"`
	DepartmentIDs  []string `json:"department_ids"   binding:"required,min=1,dive,uuid"`
}

// ReminderResult reports one department's outcome inside a bulk reminder.
type ReminderResult struct {
	DepartmentID string `json:"department_id"`
	Sent         bool   `json:"sent"`
	Skipped      string `json:"skipped,omitempty"` // reason, when not sent
	Error        string `json:"error,omitempty"`
}
