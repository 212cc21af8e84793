package workflow

// Precondition names the extra check a service must run before committing
// a transition. The checks themselves need repository access, so they live
// in the service layer; the table only declares which one applies.
type Precondition string

// Preconditions referenced by the transition table.
const (
	// PrecondNone requires nothing beyond the actor role.
	PrecondNone Precondition = ""
	// PrecondBudgetValid requires editability plus a passing validation of
	// every stored program-count row.
	PrecondBudgetValid Precondition = "budget_valid"
	// PrecondEventsReconciled requires every counted program type to have
	// complete events whose budgets reconcile with the approved total.
	PrecondEventsReconciled Precondition = "events_reconciled"
)

// Transition is one allowed edge in the workflow state machine.
type Transition struct {
	From         Status
	To           Status
	Role         Role // required actor; empty means any role
	Precondition Precondition
	// Idempotent marks edges where re-requesting the target state on a
	// row already in that state succeeds without change.
	Idempotent bool
}

var transitionsTable = []Transition{
	{From: StatusDraft, To: StatusSubmitted, Role: RoleHoD, Precondition: PrecondBudgetValid},
	{From: StatusSubmitted, To: StatusApproved, Role: RolePrincipal},
	{From: StatusApproved, To: StatusEventsSubmitted, Role: RoleHoD, Precondition: PrecondEventsReconciled},
	{From: StatusEventsSubmitted, To: StatusEventsPlanned, Role: RolePrincipal},
	// Any role, or the document approval collaborator, may complete.
	{From: StatusEventsPlanned, To: StatusCompleted, Idempotent: true},
}

// RuleFor returns the transition rule for a source/target pair, or false
// when the edge does not exist. Admin actors bypass this table entirely.
func RuleFor(from, to Status) (Transition, bool) {
	for _, tr := range transitionsTable {
		if tr.From == from && tr.To == to {
			return tr, true
		}
	}
	return Transition{}, false
}

// AllowedFor reports whether the rule's role requirement admits the actor.
func (t Transition) AllowedFor(role Role) bool {
	return t.Role == "" || t.Role == role
}

// IdempotentRepeat reports whether re-requesting target on a row already
// at target is a sanctioned no-op, per the edges marked Idempotent.
func IdempotentRepeat(current, target Status) bool {
	if current != target {
		return false
	}
	for _, tr := range transitionsTable {
		if tr.To == target && tr.Idempotent {
			return true
		}
	}
	return false
}
