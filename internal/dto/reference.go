package dto

// ── Reference data DTOs ──

// AcademicYearResponse is one academic year the portal plans against.
type AcademicYearResponse struct {
	ID        string `json:"id"`
	Year      string `json:"year"`
	IsEnabled bool   `json:"is_enabled"`
}

// DepartmentResponse is one department row.
type DepartmentResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	IsActive  bool   `json:"is_active"`
}

// ProgramTypeResponse is one catalogued program type.
type ProgramTypeResponse struct {
	ID               string `json:"id"`
	ProgramType      string `json:"program_type"`
	SubProgramType   string `json:"sub_program_type,omitempty"`
	ActivityCategory string `json:"activity_category"`
	BudgetMode       string `json:"budget_mode"`
	BudgetPerEvent   int64  `json:"budget_per_event,omitempty"`
}
