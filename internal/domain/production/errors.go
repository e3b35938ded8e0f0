package production

import (
	"fmt"

	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
)

// Error codes raised by the production domain
const (
	CodeValidation             = "VALIDATION_ERROR"
	CodeNoEligibleOrders       = "NO_ELIGIBLE_ORDERS"
	CodeNoEligibleLines        = "NO_ELIGIBLE_LINES"
	CodeIllegalStateTransition = "ILLEGAL_STATE_TRANSITION"
	CodeConsistencyViolation   = "CONSISTENCY_VIOLATION"
	CodeCancelBlocked          = "CANCEL_BLOCKED"
)

// Sentinels for errors.Is
var (
	ErrValidation             = shared.NewDomainError(CodeValidation, "Invalid production input")
	ErrNoEligibleOrders       = shared.NewDomainError(CodeNoEligibleOrders, "None of the selected orders can be produced")
	ErrNoEligibleLines        = shared.NewDomainError(CodeNoEligibleLines, "The selected orders have no lines to produce")
	ErrIllegalStateTransition = shared.NewDomainError(CodeIllegalStateTransition, "Illegal production order status transition")
	ErrConsistencyViolation   = shared.NewDomainError(CodeConsistencyViolation, "Production order data is inconsistent")
	ErrCancelBlocked          = shared.NewDomainError(CodeCancelBlocked, "Production order cannot be cancelled yet")
)

func validationError(format string, args ...any) *shared.DomainError {
	return shared.NewDomainError(CodeValidation, fmt.Sprintf(format, args...))
}

func consistencyError(format string, args ...any) *shared.DomainError {
	return shared.NewDomainError(CodeConsistencyViolation, fmt.Sprintf(format, args...))
}

// NewNoEligibleOrdersError reports how many requested orders were rejected
func NewNoEligibleOrdersError(requested int) *shared.DomainError {
	return shared.NewDomainError(CodeNoEligibleOrders,
		fmt.Sprintf("None of the %d selected orders is PROCESSED or PARTIALLY_SCHEDULED", requested))
}

// NewNoEligibleLinesError is raised when eligible orders contribute no line
func NewNoEligibleLinesError(orders int) *shared.DomainError {
	return shared.NewDomainError(CodeNoEligibleLines,
		fmt.Sprintf("The %d eligible orders have no lines for the selected production areas", orders))
}

// NewCancelBlockedError names the later execution that must be cancelled first
func NewCancelBlockedError(blockingSequence int64) *shared.DomainError {
	return shared.NewDomainError(CodeCancelBlocked,
		fmt.Sprintf("Production order #%d executed later for the same schedule; cancel it first", blockingSequence))
}
