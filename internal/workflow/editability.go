package workflow

import "time"

// ReasonCode explains an editability decision.
type ReasonCode string

// Reason codes returned by the resolvers.
const (
	ReasonEditable        ReasonCode = "editable"
	ReasonAdminBypass     ReasonCode = "admin_bypass"
	ReasonOverrideActive  ReasonCode = "override_active"
	ReasonDeadlinePassed  ReasonCode = "deadline_passed"
	ReasonWorkflowLocked  ReasonCode = "workflow_locked"
	ReasonNotYetApproved  ReasonCode = "not_yet_approved"
	ReasonViewOnly        ReasonCode = "view_only"
)

// Decision is the outcome of an editability check.
type Decision struct {
	Allowed bool       `json:"allowed"`
	Reason  ReasonCode `json:"reason"`
}

func allow(reason ReasonCode) Decision { return Decision{Allowed: true, Reason: reason} }
func deny(reason ReasonCode) Decision  { return Decision{Allowed: false, Reason: reason} }

// BudgetEditability decides whether budget-entry fields may be mutated.
// It is re-evaluated server-side before every mutating call; any client
// cache of the result is advisory only. A nil deadline means no cutoff is
// configured for the module.
func BudgetEditability(role Role, status Status, now time.Time, deadline *time.Time, overrideActive bool) Decision {
	switch role {
	case RoleAdmin:
		return allow(ReasonAdminBypass)
	case RolePrincipal:
		return allow(ReasonEditable)
	}

	// HoD: only while still drafting, and only inside the submission
	// window unless an override is in force.
	if status != StatusDraft {
		return deny(ReasonWorkflowLocked)
	}
	if deadline != nil && now.After(*deadline) {
		if overrideActive {
			return allow(ReasonOverrideActive)
		}
		return deny(ReasonDeadlinePassed)
	}
	return allow(ReasonEditable)
}

// EventEditability decides whether event-planning fields may be mutated.
// Both HoD and Principal lose access once the workflow advances past
// approved; only an admin-forced transition can reopen the gate.
func EventEditability(role Role, status Status) Decision {
	if role == RoleAdmin {
		return allow(ReasonAdminBypass)
	}
	if status == StatusApproved {
		return allow(ReasonEditable)
	}
	if status.Before(StatusApproved) {
		return deny(ReasonNotYetApproved)
	}
	return deny(ReasonViewOnly)
}
