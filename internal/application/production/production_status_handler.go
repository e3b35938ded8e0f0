package production

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductionStatusHandler flags the customer orders a production order
// references whenever the quantities it produced may have changed
type ProductionStatusHandler struct {
	scope  TransactionScope
	queue  ProductionStatusQueue
	logger *zap.Logger
}

// NewProductionStatusHandler creates a new ProductionStatusHandler
func NewProductionStatusHandler(scope TransactionScope, queue ProductionStatusQueue, logger *zap.Logger) *ProductionStatusHandler {
	return &ProductionStatusHandler{scope: scope, queue: queue, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *ProductionStatusHandler) EventTypes() []string {
	return []string{
		production.EventTypeProductionOrderStatusChanged,
		production.EventTypeProductionOrderDeleted,
	}
}

// Handle marks the referenced customer orders stale and queues them
func (h *ProductionStatusHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var ids []uuid.UUID
	switch e := event.(type) {
	case *production.ProductionOrderStatusChangedEvent:
		// produced quantities only move into or out of EXECUTED
		if e.OldStatus != production.StatusExecuted && e.NewStatus != production.StatusExecuted {
			return nil
		}
		err := h.scope.Execute(ctx, func(repos Repositories) error {
			pivot, err := repos.Pivots().Load(ctx, e.AggregateID())
			if err != nil {
				return err
			}
			ids = pivot.OrderIDs()
			return repos.CustomerOrders().MarkProductionStatusStale(ctx, ids)
		})
		if err != nil {
			return fmt.Errorf("flag customer orders of production order %s: %w", e.AggregateID(), err)
		}
	case *production.ProductionOrderDeletedEvent:
		ids = e.CustomerOrderIDs
		if len(ids) == 0 {
			return nil
		}
		err := h.scope.Execute(ctx, func(repos Repositories) error {
			return repos.CustomerOrders().MarkProductionStatusStale(ctx, ids)
		})
		if err != nil {
			return fmt.Errorf("flag customer orders of deleted production order %s: %w", e.AggregateID(), err)
		}
	default:
		h.logger.Error("unexpected event type", zap.String("actual", event.EventType()))
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	if len(ids) == 0 || h.queue == nil {
		return nil
	}
	// The database flag already records the work, a failed enqueue only delays it
	if err := h.queue.Enqueue(ctx, ids...); err != nil {
		h.logger.Warn("failed to queue production status recompute",
			zap.String("production_order_id", event.AggregateID().String()),
			zap.Int("customer_orders", len(ids)),
			zap.Error(err),
		)
	}
	return nil
}
