// Package apperr defines the typed error taxonomy shared by all services.
// Every mutating operation surfaces one of these kinds so that callers can
// distinguish recoverable input errors from lost races without parsing
// message text.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an application error.
type Kind string

const (
	// KindValidation covers budget inconsistencies, incomplete event
	// fields and reconciliation mismatches. No partial commit occurs.
	KindValidation Kind = "validation"
	// KindInvalidTransition covers a wrong actor role or a wrong source
	// state for a requested workflow transition.
	KindInvalidTransition Kind = "invalid_transition"
	// KindForbidden covers editability denials (deadline passed, workflow
	// advanced past the editable gate).
	KindForbidden Kind = "forbidden"
	// KindNotFound covers operations on records that do not exist.
	KindNotFound Kind = "not_found"
	// KindConflict covers lost races on the same aggregate; the loser may
	// safely retry.
	KindConflict Kind = "conflict"
)

// ErrOptimisticLock is the root cause behind KindConflict: the row was
// modified by another operation since it was read.
var ErrOptimisticLock = errors.New("record was modified by another operation, refresh and retry")

// Detail is one item-level entry in an error's detail list.
type Detail struct {
	Field          string `json:"field,omitempty"`
	ProgramType    string `json:"program_type,omitempty"`
	SubProgramType string `json:"sub_program_type,omitempty"`
	Reason         string `json:"reason"`
}

// Error is a kinded application error with optional item-level details.
type Error struct {
	Kind    Kind
	Message string
	Details []Detail
	cause   error
}

func (e *Error) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	reasons := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		reasons = append(reasons, d.Reason)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, strings.Join(reasons, "; "))
}

// Unwrap exposes the underlying cause for errors.Is chains.
func (e *Error) Unwrap() error { return e.cause }

// Is matches two apperr.Errors by kind, so services can assert categories
// without comparing messages.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// ── Constructors ──

// Validation builds a KindValidation error.
func Validation(message string, details ...Detail) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

// InvalidTransition builds a KindInvalidTransition error naming the current
// and requested states.
func InvalidTransition(from, to, message string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: message,
		Details: []Detail{{Field: "status", Reason: fmt.Sprintf("transition %s -> %s", from, to)}},
	}
}

// Forbidden builds a KindForbidden error with the resolver's reason code.
func Forbidden(message, reasonCode string) *Error {
	return &Error{
		Kind:    KindForbidden,
		Message: message,
		Details: []Detail{{Reason: reasonCode}},
	}
}

// NotFound builds a KindNotFound error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict builds a KindConflict error wrapping ErrOptimisticLock.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message, cause: ErrOptimisticLock}
}

// ── Inspection helpers ──

// KindOf returns the kind of err, or "" if err is not an apperr.Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// DetailsOf returns the detail list of err, if any.
func DetailsOf(err error) []Detail {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}
