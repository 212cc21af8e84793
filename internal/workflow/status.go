// Package workflow holds the pure rules of the budget approval pipeline:
// status and role enums, the transition table, and the editability
// resolver. Nothing in this package touches a clock, a database or a
// logger; services supply every input.
package workflow

import "fmt"

// Status is a workflow state for one (department, academic year) pair.
type Status string

// Workflow states, in pipeline order.
const (
	StatusDraft           Status = "draft"
	StatusSubmitted       Status = "submitted"
	StatusApproved        Status = "approved"
	StatusEventsSubmitted Status = "events_submitted"
	StatusEventsPlanned   Status = "events_planned"
	StatusCompleted       Status = "completed"
)

var statusOrder = map[Status]int{
	StatusDraft:           0,
	StatusSubmitted:       1,
	StatusApproved:        2,
	StatusEventsSubmitted: 3,
	StatusEventsPlanned:   4,
	StatusCompleted:       5,
}

// ParseStatus validates a raw status string.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := statusOrder[st]; !ok {
		return "", fmt.Errorf("unknown workflow status %q", s)
	}
	return st, nil
}

// Before reports whether s comes earlier in the pipeline than other.
func (s Status) Before(other Status) bool {
	return statusOrder[s] < statusOrder[other]
}

// Role is an actor role in the approval pipeline.
type Role string

// Actor roles.
const (
	RoleHoD       Role = "hod"
	RolePrincipal Role = "principal"
	RoleAdmin     Role = "admin"
)

// ParseRole validates a raw role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleHoD, RolePrincipal, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}
