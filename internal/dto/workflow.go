package dto

// ── Workflow DTOs ──

// TransitionRequest asks the state machine to advance one aggregate.
type TransitionRequest struct {
	DepartmentID   string `json:"department_id"    binding:"required,uuid"`
	AcademicYearID string `json:"academic_year_id" binding:"required,uuid"`
	Target         string `json:"target"           binding:"required"`
}

// WorkflowStatusResponse is the current state of one aggregate.
type WorkflowStatusResponse struct {
	DepartmentID   string `json:"department_id"`
	AcademicYearID string `json:"academic_year_id"`
	Status         string `json:"status"`
	Version        int    `json:"version"`
	UpdatedAt      string `json:"updated_at"`
}

// EditabilityResponse reports the server-side editability decision plus
// the inputs it was derived from. Clients may cache this for display but
// every mutation re-evaluates it.
type EditabilityResponse struct {
	BudgetAllowed  bool   `json:"budget_allowed"`
	BudgetReason   string `json:"budget_reason"`
	EventsAllowed  bool   `json:"events_allowed"`
	EventsReason   string `json:"events_reason"`
	Status         string `json:"status"`
	Deadline       string `json:"deadline,omitempty"`
	OverrideActive bool   `json:"override_active"`
}
