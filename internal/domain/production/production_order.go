package production

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
)

// AggregateTypeProductionOrder is the aggregate type for production orders
const AggregateTypeProductionOrder = "ProductionOrder"

// ProductionOrder is a planned manufacturing run over a dispatch window
type ProductionOrder struct {
	shared.BaseAggregateRoot
	// Sequence orders production orders by creation; "created before" means a lower sequence
	Sequence            int64
	PreparationDatetime time.Time
	Window              DispatchWindow
	Status              Status
	ProductionAreaIDs   []uuid.UUID
	Description         string
	CancelledAt         *time.Time
	CancelledBy         string
	CancellationReason  string

	mode CreationMode
}

// NewFromOrders creates a production order over an explicit list of customer orders
func NewFromOrders(sequence int64, preparation time.Time, window DispatchWindow, areaIDs []uuid.UUID, description string) (*ProductionOrder, error) {
	return newProductionOrder(ExplicitOrders{}, sequence, preparation, window, areaIDs, description)
}

// NewFromDateRange creates a production order covering a dispatch window
func NewFromDateRange(sequence int64, preparation time.Time, window DispatchWindow, areaIDs []uuid.UUID, description string) (*ProductionOrder, error) {
	return newProductionOrder(DateRange{}, sequence, preparation, window, areaIDs, description)
}

func newProductionOrder(mode CreationMode, sequence int64, preparation time.Time, window DispatchWindow, areaIDs []uuid.UUID, description string) (*ProductionOrder, error) {
	if sequence <= 0 {
		return nil, consistencyError("Production order sequence must be positive")
	}
	if preparation.IsZero() {
		return nil, validationError("Preparation datetime is required")
	}
	if window.Initial.After(window.Final) {
		return nil, consistencyError("Initial dispatch date is after final dispatch date")
	}

	o := &ProductionOrder{
		BaseAggregateRoot:   shared.NewBaseAggregateRoot(),
		Sequence:            sequence,
		PreparationDatetime: preparation,
		Window:              window,
		Status:              StatusPending,
		ProductionAreaIDs:   dedupeIDs(areaIDs),
		Description:         strings.TrimSpace(description),
		mode:                mode,
	}
	if o.Description == "" {
		o.Description = fmt.Sprintf("OP #%d %s", sequence, window)
	}
	o.AddDomainEvent(NewProductionOrderCreatedEvent(o))
	return o, nil
}

// RestoreProductionOrder rebuilds an order loaded from storage
func RestoreProductionOrder(state ProductionOrder, mode CreationMode) *ProductionOrder {
	o := state
	o.mode = mode
	return &o
}

// Mode returns the creation mode fixed at construction
func (o *ProductionOrder) Mode() CreationMode {
	return o.mode
}

// IsExplicit is true for EXPLICIT_ORDERS production orders
func (o *ProductionOrder) IsExplicit() bool {
	_, ok := o.mode.(ExplicitOrders)
	return ok
}

// IsPending reports whether line items can still change
func (o *ProductionOrder) IsPending() bool {
	return o.Status == StatusPending
}

// EnsureEditable rejects product edits outside PENDING
func (o *ProductionOrder) EnsureEditable() error {
	if o.Status != StatusPending {
		return shared.NewDomainError(CodeIllegalStateTransition,
			fmt.Sprintf("Products of a %s production order cannot be changed", o.Status))
	}
	return nil
}

// ChangeStatus applies a validated transition. The returned Transition carries
// the status the order had before this call; callers use it to decide on
// ledger work instead of re-reading the order.
func (o *ProductionOrder) ChangeStatus(target Status, by, reason string, at time.Time) (Transition, error) {
	t, err := o.Status.Transition(target)
	if err != nil {
		return Transition{}, err
	}
	if t.IsNoOp() {
		return t, nil
	}

	o.Status = t.To
	if t.To == StatusCancelled {
		o.CancelledAt = &at
		o.CancelledBy = by
		o.CancellationReason = reason
	}
	o.UpdatedAt = at
	o.IncrementVersion()
	o.AddDomainEvent(NewProductionOrderStatusChangedEvent(o, t))
	return t, nil
}

// EnsureDeletable only lets cancelled orders go
func (o *ProductionOrder) EnsureDeletable() error {
	if o.Status != StatusCancelled {
		return shared.NewDomainError(CodeIllegalStateTransition,
			fmt.Sprintf("Only CANCELLED production orders can be deleted, this one is %s", o.Status))
	}
	return nil
}

// MarkDeleted records the deletion event with the customer orders the pivot referenced
func (o *ProductionOrder) MarkDeleted(customerOrderIDs []uuid.UUID) {
	o.AddDomainEvent(NewProductionOrderDeletedEvent(o, customerOrderIDs))
}

// OverlapsWith reports whether both windows share a dispatch date
func (o *ProductionOrder) OverlapsWith(other *ProductionOrder) bool {
	return o.Window.Overlaps(other.Window)
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
