package production

import (
	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
)

// Event type constants
const (
	EventTypeProductionOrderCreated       = "ProductionOrderCreated"
	EventTypeProductionOrderStatusChanged = "ProductionOrderStatusChanged"
	EventTypeProductionOrderDeleted       = "ProductionOrderDeleted"
)

// ProductionOrderCreatedEvent is raised when a production order is created
type ProductionOrderCreatedEvent struct {
	shared.BaseDomainEvent
	Sequence int64            `json:"sequence"`
	Mode     CreationModeKind `json:"mode"`
	Window   DispatchWindow   `json:"window"`
}

// NewProductionOrderCreatedEvent creates a new ProductionOrderCreatedEvent
func NewProductionOrderCreatedEvent(o *ProductionOrder) *ProductionOrderCreatedEvent {
	return &ProductionOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductionOrderCreated, AggregateTypeProductionOrder, o.ID),
		Sequence:        o.Sequence,
		Mode:            o.mode.Kind(),
		Window:          o.Window,
	}
}

// ProductionOrderStatusChangedEvent is raised on every effective status change
type ProductionOrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	Sequence  int64  `json:"sequence"`
	OldStatus Status `json:"old_status"`
	NewStatus Status `json:"new_status"`
}

// NewProductionOrderStatusChangedEvent creates a new ProductionOrderStatusChangedEvent
func NewProductionOrderStatusChangedEvent(o *ProductionOrder, t Transition) *ProductionOrderStatusChangedEvent {
	return &ProductionOrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductionOrderStatusChanged, AggregateTypeProductionOrder, o.ID),
		Sequence:        o.Sequence,
		OldStatus:       t.From,
		NewStatus:       t.To,
	}
}

// ProductionOrderDeletedEvent is raised after a cancelled order is removed.
// The pivot is gone by then, so the event carries the customer orders it referenced.
type ProductionOrderDeletedEvent struct {
	shared.BaseDomainEvent
	Sequence         int64       `json:"sequence"`
	CustomerOrderIDs []uuid.UUID `json:"customer_order_ids"`
}

// NewProductionOrderDeletedEvent creates a new ProductionOrderDeletedEvent
func NewProductionOrderDeletedEvent(o *ProductionOrder, customerOrderIDs []uuid.UUID) *ProductionOrderDeletedEvent {
	return &ProductionOrderDeletedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeProductionOrderDeleted, AggregateTypeProductionOrder, o.ID),
		Sequence:         o.Sequence,
		CustomerOrderIDs: customerOrderIDs,
	}
}
