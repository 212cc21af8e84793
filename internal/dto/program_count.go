package dto

// ── Program count (budget entry) DTOs ──

// BudgetEntry is one row of a budget submission.
type BudgetEntry struct {
	ProgramType    string `json:"program_type"     binding:"required,max=100"`
	SubProgramType string `json:"sub_program_type" binding:"omitempty,max=100"`
	BudgetMode     string `json:"budget_mode"      binding:"required,oneof=fixed variable"`
	Count          int    `json:"count"            binding:"min=0"`
	// TotalBudget is taken as-is for variable mode and recomputed for
	// fixed mode regardless of what the client sends.
	TotalBudget    int64  `json:"total_budget"     binding:"min=0"`
	BudgetPerEvent int64  `json:"budget_per_event" binding:"min=0"`
	Remarks        string `json:"remarks"          binding:"omitempty,max=2000"`
}

// SubmitBudgetRequest is the all-or-nothing budget submission batch.
type SubmitBudgetRequest struct {
	DepartmentID   string        `json:"department_id"    binding:"required,uuid"`
	AcademicYearID string        `json:"academic_year_id" binding:"required,uuid"`
	Entries        []BudgetEntry `json:"entries"          binding:"required,min=1,dive"`
}

// PrincipalRemarksRequest sets the principal's remarks across a
// department's budget rows.
type PrincipalRemarksRequest struct {
	DepartmentID   string `json:"department_id"    binding:"required,uuid"`
	AcademicYearID string `json:"academic_year_id" binding:"required,uuid"`
	Remarks        string `json:"remarks"          binding:"required,max=2000"`
}

// ProgramCountResponse is one stored budget row.
type ProgramCountResponse struct {
	ID               string `json:"id"`
	DepartmentID     string `json:"department_id"`
	AcademicYearID   string `json:"academic_year_id"`
	ProgramType      string `json:"program_type"`
	SubProgramType   string `json:"sub_program_type,omitempty"`
	BudgetMode       string `json:"budget_mode"`
	Count            int    `json:"count"`
	TotalBudget      int64  `json:"total_budget"`
	Remarks          string `json:"remarks,omitempty"`
	PrincipalRemarks string `json:"principal_remarks,omitempty"`
	UpdatedAt        string `json:"updated_at"`
}

// DepartmentSummary is one department's row in the status-summary
// dashboard.
type DepartmentSummary struct {
	DepartmentID     string `json:"department_id"`
	DepartmentName   string `json:"department_name"`
	Submitted        bool   `json:"submitted"`
	WorkflowStatus   string `json:"workflow_status"`
	GrandTotalBudget int64  `json:"grand_total_budget"`
	LastUpdated      string `json:"last_updated,omitempty"`
}
