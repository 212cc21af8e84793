package dto

// ── Event planning DTOs ──

// EventInput is one event inside a per-program-type save.
type EventInput struct {
	Title              string `json:"title"               binding:"required,max=200"`
	Description        string `json:"description"         binding:"omitempty,max=2000"`
	EventDate          string `json:"event_date"          binding:"required"` // "2006-01-02"
	BudgetAmount       int64  `json:"budget_amount"`
	CoordinatorName    string `json:"coordinator_name"    binding:"omitempty,max=100"`
	CoordinatorContact string `json:"coordinator_contact" binding:"omitempty,max=100"`
}

// SaveEventsRequest replaces the planned events of one program type.
// Validation and persistence are scoped to that program type only.
type SaveEventsRequest struct {
	DepartmentID   string       `json:"department_id"    binding:"required,uuid"`
	AcademicYearID string       `json:"academic_year_id" binding:"required,uuid"`
	ProgramTypeID  string       `json:"program_type_id"  binding:"required,uuid"`
	Events         []EventInput `json:"events"           binding:"required,dive"`
}

// GenerateSlotsRequest produces placeholder events for every counted
// program type. Destructive relative to unsaved work; callers gate it.
type GenerateSlotsRequest struct {
	DepartmentID   string `json:"department_id"    binding:"required,uuid"`
	AcademicYearID string `json:"academic_year_id" binding:"required,uuid"`
}

// ClearEventsRequest deletes every event of the aggregate immediately.
// Any confirmation step is the caller's responsibility.
type ClearEventsRequest struct {
	DepartmentID   string `json:"department_id"    binding:"required,uuid"`
	AcademicYearID string `json:"academic_year_id" binding:"required,uuid"`
}

// UpdateEventStatusRequest moves one event between execution statuses.
type UpdateEventStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=planned ongoing completed cancelled"`
}

// EventResponse is one stored or generated event.
type EventResponse struct {
	ID                 string `json:"id,omitempty"`
	DepartmentID       string `json:"department_id"`
	AcademicYearID     string `json:"academic_year_id"`
	ProgramTypeID      string `json:"program_type_id"`
	Title              string `json:"title"`
	Description        string `json:"description,omitempty"`
	EventDate          string `json:"event_date"`
	BudgetAmount       int64  `json:"budget_amount"`
	CoordinatorName    string `json:"coordinator_name,omitempty"`
	CoordinatorContact string `json:"coordinator_contact,omitempty"`
	Status             string `json:"status,omitempty"`
}

// EventSlot is one generated placeholder. The default budget split is a
// display default only; reconciliation checks whatever is actually saved.
type EventSlot struct {
	ProgramTypeID  string `json:"program_type_id"`
	ProgramType    string `json:"program_type"`
	SubProgramType string `json:"sub_program_type,omitempty"`
	SlotNumber     int    `json:"slot_number"`
	DefaultBudget  int64  `json:"default_budget"`
}

// ProgramTypeBudgetSummary aggregates the planned spend of one program
// type against its approved total.
type ProgramTypeBudgetSummary struct {
	ProgramTypeID  string `json:"program_type_id"`
	ProgramType    string `json:"program_type"`
	EventCount     int    `json:"event_count"`
	PlannedBudget  int64  `json:"planned_budget"`
	ApprovedBudget int64  `json:"approved_budget"`
	Reconciled     bool   `json:"reconciled"`
}

// BudgetSummaryResponse is the per-aggregate reconciliation dashboard.
type BudgetSummaryResponse struct {
	ProgramTypes       []ProgramTypeBudgetSummary `json:"program_types"`
	TotalPlannedBudget int64                      `json:"total_planned_budget"`
	TotalEvents        int                        `json:"total_events"`
}
