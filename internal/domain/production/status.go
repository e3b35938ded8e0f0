package production

import (
	"fmt"

	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
)

// Status represents the status of a production order
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusExecuted  Status = "EXECUTED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusExecuted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Transition is a status change computed before anything is written.
// From is the status the order had when the change was requested.
type Transition struct {
	From Status
	To   Status
}

// IsNoOp is true for CANCELLED -> CANCELLED
func (t Transition) IsNoOp() bool {
	return t.From == t.To
}

// AppliesStock is true when the transition must write a ledger entry
func (t Transition) AppliesStock() bool {
	return t.From == StatusPending && t.To == StatusExecuted
}

// RevertsStock is true when the transition must undo an executed ledger entry
func (t Transition) RevertsStock() bool {
	return t.From == StatusExecuted && t.To == StatusCancelled
}

// Transition validates a move from s to target.
//
//	PENDING  -> EXECUTED | CANCELLED
//	EXECUTED -> CANCELLED
//	CANCELLED -> CANCELLED (no-op)
func (s Status) Transition(target Status) (Transition, error) {
	if !target.IsValid() {
		return Transition{}, validationError("Unknown production order status %q", target)
	}
	t := Transition{From: s, To: target}
	switch {
	case s == StatusPending && (target == StatusExecuted || target == StatusCancelled):
		return t, nil
	case s == StatusExecuted && target == StatusCancelled:
		return t, nil
	case s == StatusCancelled && target == StatusCancelled:
		return t, nil
	}
	return Transition{}, shared.NewDomainError(CodeIllegalStateTransition,
		fmt.Sprintf("Cannot change production order status from %s to %s", s, target))
}
