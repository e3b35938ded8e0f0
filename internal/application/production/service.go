package production

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/inventory"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// Metrics records production activity. Implementations must be safe for
// concurrent use.
type Metrics interface {
	RecordCreated(ctx context.Context, mode string)
	RecordTransition(ctx context.Context, from, to string)
	RecordUnitsScheduled(ctx context.Context, units int64)
}

type noopMetrics struct{}

func (noopMetrics) RecordCreated(context.Context, string)            {}
func (noopMetrics) RecordTransition(context.Context, string, string) {}
func (noopMetrics) RecordUnitsScheduled(context.Context, int64)      {}

// ProductionOrderService handles production order use cases. Every
// operation runs in a single transaction; domain events are published after
// it commits.
type ProductionOrderService struct {
	scope          TransactionScope
	logger         *zap.Logger
	eventPublisher shared.EventPublisher
	metrics        Metrics
	now            func() time.Time
}

// NewProductionOrderService creates a new ProductionOrderService
func NewProductionOrderService(scope TransactionScope, logger *zap.Logger) *ProductionOrderService {
	return &ProductionOrderService{
		scope:   scope,
		logger:  logger,
		metrics: noopMetrics{},
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductionOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the production metrics recorder
func (s *ProductionOrderService) SetMetrics(metrics Metrics) {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	s.metrics = metrics
}

func (s *ProductionOrderService) publishDomainEvents(ctx context.Context, o *production.ProductionOrder) {
	events := o.GetDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish production order events",
			zap.String("production_order_id", o.ID.String()),
			zap.Error(err),
		)
	}
	o.ClearDomainEvents()
}

func productionOrderNotFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError(shared.ErrNotFound.Code, "Production order not found")
	}
	return err
}

// CreateFromOrders creates an EXPLICIT_ORDERS production order. Only the
// selected orders that are PROCESSED or PARTIALLY_SCHEDULED are claimed, and
// the dispatch window spans their dispatch dates.
func (s *ProductionOrderService) CreateFromOrders(ctx context.Context, req CreateFromOrdersRequest) (*ProductionOrderResponse, error) {
	var (
		created *production.ProductionOrder
		items   []production.LineItem
	)
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		demand, eligible, err := newOrderAggregator(repos).DemandForOrders(ctx, req.OrderIDs, req.ProductionAreaIDs)
		if err != nil {
			return err
		}
		if len(eligible) == 0 {
			return production.NewNoEligibleOrdersError(len(req.OrderIDs))
		}
		if demand.IsEmpty() {
			return production.NewNoEligibleLinesError(len(eligible))
		}

		dates := make([]time.Time, len(eligible))
		for i := range eligible {
			dates[i] = eligible[i].DispatchDate
		}
		window, _ := production.SpanOf(dates)

		seq, err := repos.ProductionOrders().NextSequence(ctx)
		if err != nil {
			return err
		}
		o, err := production.NewFromOrders(seq, req.PreparationDatetime, window, req.ProductionAreaIDs, req.Description)
		if err != nil {
			return err
		}
		if err := repos.ProductionOrders().Save(ctx, o); err != nil {
			return err
		}
		if _, err := newPivotSynchronizer(repos).Seed(ctx, o, demand); err != nil {
			return err
		}

		calc := newLineItemCalculator(repos)
		for _, productID := range demand.ProductIDs() {
			item, err := calc.Compute(ctx, o, productID, nil)
			if err != nil {
				return fmt.Errorf("compute product %s: %w", productID, err)
			}
			items = append(items, *item)
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("production order created",
		zap.String("production_order_id", created.ID.String()),
		zap.Int64("sequence", created.Sequence),
		zap.String("mode", created.Mode().Kind().String()),
		zap.Int("products", len(items)),
	)
	s.metrics.RecordCreated(ctx, created.Mode().Kind().String())
	s.publishDomainEvents(ctx, created)

	resp := ToProductionOrderResponse(created, items)
	return &resp, nil
}

// CreateFromDateRange creates a DATE_RANGE production order. Its pivot stays
// empty until the first product is attached.
func (s *ProductionOrderService) CreateFromDateRange(ctx context.Context, req CreateFromDateRangeRequest) (*ProductionOrderResponse, error) {
	initial, err := time.Parse(time.DateOnly, req.InitialDispatchDate)
	if err != nil {
		return nil, shared.NewDomainError(production.CodeValidation, "Invalid initial dispatch date")
	}
	final, err := time.Parse(time.DateOnly, req.FinalDispatchDate)
	if err != nil {
		return nil, shared.NewDomainError(production.CodeValidation, "Invalid final dispatch date")
	}
	window, err := production.NewDispatchWindow(initial, final)
	if err != nil {
		return nil, err
	}

	var created *production.ProductionOrder
	err = s.scope.Execute(ctx, func(repos Repositories) error {
		seq, err := repos.ProductionOrders().NextSequence(ctx)
		if err != nil {
			return err
		}
		o, err := production.NewFromDateRange(seq, req.PreparationDatetime, window, req.ProductionAreaIDs, req.Description)
		if err != nil {
			return err
		}
		if err := repos.ProductionOrders().Save(ctx, o); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("production order created",
		zap.String("production_order_id", created.ID.String()),
		zap.Int64("sequence", created.Sequence),
		zap.String("mode", created.Mode().Kind().String()),
	)
	s.metrics.RecordCreated(ctx, created.Mode().Kind().String())
	s.publishDomainEvents(ctx, created)

	resp := ToProductionOrderResponse(created, []production.LineItem{})
	return &resp, nil
}

// AddOrUpdateProduct attaches a product to a PENDING order or edits its
// manual quantity. The line item is computed first and the pivot is then
// synchronized in the same transaction.
func (s *ProductionOrderService) AddOrUpdateProduct(ctx context.Context, orderID, productID uuid.UUID, req AddOrUpdateProductRequest) (*LineItemResponse, error) {
	if req.Quantity != nil && *req.Quantity < 0 {
		return nil, shared.NewDomainError(production.CodeValidation, "Manual quantity cannot be negative")
	}

	var item *production.LineItem
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		o, err := repos.ProductionOrders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return productionOrderNotFound(err)
		}
		if err := o.EnsureEditable(); err != nil {
			return err
		}
		if _, err := repos.Products().FindByID(ctx, productID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError(shared.ErrNotFound.Code, "Product not found")
			}
			return err
		}

		item, err = newLineItemCalculator(repos).Compute(ctx, o, productID, req.Quantity)
		if err != nil {
			return err
		}
		plan, err := newPivotSynchronizer(repos).Sync(ctx, o, productID)
		if err != nil {
			return err
		}

		s.logger.Debug("pivot synchronized",
			zap.String("production_order_id", o.ID.String()),
			zap.String("product_id", productID.String()),
			zap.Int("new_orders", len(plan.NewOrders)),
			zap.Int("new_lines", len(plan.NewLines)),
			zap.Int("refreshed_lines", len(plan.RefreshedLines)),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToLineItemResponse(item)
	return &resp, nil
}

// SetStatus moves a production order through its state machine. Executing
// writes a ledger entry; cancelling an executed order reverts it. The
// transition is computed from the status read under lock, before any write.
func (s *ProductionOrderService) SetStatus(ctx context.Context, orderID uuid.UUID, req SetStatusRequest) (*SetStatusResponse, error) {
	target := production.Status(req.Status)
	now := s.now()

	var (
		order      *production.ProductionOrder
		items      []production.LineItem
		entry      *inventory.LedgerEntry
		transition production.Transition
	)
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		o, err := repos.ProductionOrders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return productionOrderNotFound(err)
		}

		if o.Status == production.StatusExecuted && target == production.StatusCancelled {
			later, err := repos.ProductionOrders().FindExecutedLaterSameSchedule(ctx, o)
			if err != nil {
				return err
			}
			if len(later) > 0 {
				return production.NewCancelBlockedError(later[len(later)-1].Sequence)
			}
		}

		transition, err = o.ChangeStatus(target, req.CancelledBy, req.Reason, now)
		if err != nil {
			return err
		}
		if !transition.IsNoOp() {
			ledger := newLedgerService(repos, s.logger)
			switch {
			case transition.AppliesStock():
				entry, err = ledger.Apply(ctx, o, now)
			case transition.RevertsStock():
				entry, err = ledger.Revert(ctx, o, req.CancelledBy, req.Reason, now)
			}
			if err != nil {
				return err
			}
			if err := repos.ProductionOrders().Save(ctx, o); err != nil {
				return err
			}
		}

		items, err = repos.LineItems().FindByProductionOrder(ctx, o.ID)
		if err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !transition.IsNoOp() {
		s.logger.Info("production order status changed",
			zap.String("production_order_id", order.ID.String()),
			zap.String("from", transition.From.String()),
			zap.String("to", transition.To.String()),
		)
		s.metrics.RecordTransition(ctx, transition.From.String(), transition.To.String())
		if transition.AppliesStock() {
			var units int64
			for _, item := range items {
				units += item.TotalToProduce
			}
			s.metrics.RecordUnitsScheduled(ctx, units)
		}
	}
	s.publishDomainEvents(ctx, order)

	return &SetStatusResponse{
		Order:  ToProductionOrderResponse(order, items),
		Ledger: ToLedgerEntryResponse(entry),
	}, nil
}

// Delete removes a CANCELLED production order with its line items, pivot
// rows and ledger entries. Other production orders are untouched.
func (s *ProductionOrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	var deleted *production.ProductionOrder
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		o, err := repos.ProductionOrders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return productionOrderNotFound(err)
		}
		if err := o.EnsureDeletable(); err != nil {
			return err
		}

		pivot, err := repos.Pivots().Load(ctx, o.ID)
		if err != nil {
			return err
		}
		if err := repos.Pivots().DeleteByProductionOrder(ctx, o.ID); err != nil {
			return err
		}
		if err := repos.LineItems().DeleteByProductionOrder(ctx, o.ID); err != nil {
			return err
		}
		if err := repos.Ledger().DeleteByProductionOrder(ctx, o.ID); err != nil {
			return err
		}
		if err := repos.ProductionOrders().Delete(ctx, o.ID); err != nil {
			return err
		}
		o.MarkDeleted(pivot.OrderIDs())
		deleted = o
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("production order deleted",
		zap.String("production_order_id", deleted.ID.String()),
		zap.Int64("sequence", deleted.Sequence),
	)
	s.publishDomainEvents(ctx, deleted)
	return nil
}

// GetByID returns a production order with its line items
func (s *ProductionOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*ProductionOrderResponse, error) {
	var resp ProductionOrderResponse
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		o, err := repos.ProductionOrders().FindByID(ctx, orderID)
		if err != nil {
			return productionOrderNotFound(err)
		}
		items, err := repos.LineItems().FindByProductionOrder(ctx, o.ID)
		if err != nil {
			return err
		}
		resp = ToProductionOrderResponse(o, items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns a page of production orders, newest first by default
func (s *ProductionOrderService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[ProductionOrderResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}

	var page shared.Paginated[ProductionOrderResponse]
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		orders, total, err := repos.ProductionOrders().FindAll(ctx, f)
		if err != nil {
			return err
		}
		items := make([]ProductionOrderResponse, len(orders))
		for i := range orders {
			items[i] = ToProductionOrderResponse(&orders[i], nil)
		}
		page = shared.NewPaginated(items, total, f.Page, f.PageSize)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Pivots returns the pivot snapshot of a production order
func (s *ProductionOrderService) Pivots(ctx context.Context, orderID uuid.UUID) (*PivotResponse, error) {
	var resp PivotResponse
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		if _, err := repos.ProductionOrders().FindByID(ctx, orderID); err != nil {
			return productionOrderNotFound(err)
		}
		pivot, err := repos.Pivots().Load(ctx, orderID)
		if err != nil {
			return err
		}
		resp = ToPivotResponse(orderID, pivot)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// OnOrderLineChanged recalculates PENDING production orders that claim a
// customer order line whose quantity went down or that was deleted. Growth is
// ignored: a later production order picks up the extra units. Executed and
// cancelled snapshots stay as they are. It returns how many production
// orders were recalculated.
func (s *ProductionOrderService) OnOrderLineChanged(ctx context.Context, change OrderLineChange) (int, error) {
	if !change.Deleted && change.NewQuantity >= change.OldQuantity {
		return 0, nil
	}

	recalculated := 0
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		orders, err := repos.ProductionOrders().FindPendingByOrderLine(ctx, change.LineID)
		if err != nil {
			return err
		}

		calc := newLineItemCalculator(repos)
		for i := range orders {
			o := &orders[i]
			pivot, err := repos.Pivots().LoadForUpdate(ctx, o.ID)
			if err != nil {
				return err
			}
			ref := pivot.Line(change.LineID)
			if ref == nil {
				continue
			}

			if change.Deleted {
				err = repos.Pivots().DeleteLine(ctx, o.ID, change.LineID)
			} else {
				updated := *ref
				updated.QuantityCovered = change.NewQuantity
				updated.TotalPrice = updated.UnitPrice.Mul(decimal.NewFromInt(change.NewQuantity))
				updated.UpdatedAt = s.now()
				err = repos.Pivots().Apply(ctx, production.PivotPlan{
					RefreshedLines: []production.PivotOrderLineRef{updated},
				})
			}
			if err != nil {
				return err
			}

			if _, err := repos.LineItems().FindOne(ctx, o.ID, ref.ProductID); err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					continue
				}
				return err
			}
			if _, err := calc.Compute(ctx, o, ref.ProductID, nil); err != nil {
				return err
			}
			recalculated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if recalculated > 0 {
		s.logger.Info("production orders recalculated after order line change",
			zap.String("order_line_id", change.LineID.String()),
			zap.Int64("old_quantity", change.OldQuantity),
			zap.Int64("new_quantity", change.NewQuantity),
			zap.Bool("deleted", change.Deleted),
			zap.Int("production_orders", recalculated),
		)
	}
	return recalculated, nil
}
