package dto

// ── Module deadline DTOs ──

// SetDeadlineRequest creates or replaces a module's submission cutoff for
// an academic year.
type SetDeadlineRequest struct {
	AcademicYearID string `json:"academic_year_id" binding:"required,uuid"`
	Module         string `json:"module"           binding:"required,max=50"`
	Deadline       string `json:"deadline"         binding:"required"` // RFC 3339
}

// DeadlineResponse is one module deadline.
type DeadlineResponse struct {
	ID             string `json:"id"`
	AcademicYearID string `json:"academic_year_id"`
	Module         string `json:"module"`
	Deadline       string `json:"deadline"`
}
