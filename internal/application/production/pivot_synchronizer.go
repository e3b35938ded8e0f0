package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/catalog"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/production"
)

// PivotSynchronizer writes the pivot snapshot of a production order. It must
// run inside the transaction of the operation that triggered it.
type PivotSynchronizer struct {
	aggregator *OrderAggregator
	pivots     production.PivotRepository
	products   catalog.ProductRepository
	now        func() time.Time
}

// NewPivotSynchronizer creates a new PivotSynchronizer
func NewPivotSynchronizer(aggregator *OrderAggregator, pivots production.PivotRepository, products catalog.ProductRepository) *PivotSynchronizer {
	return &PivotSynchronizer{
		aggregator: aggregator,
		pivots:     pivots,
		products:   products,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func newPivotSynchronizer(repos Repositories) *PivotSynchronizer {
	return NewPivotSynchronizer(newOrderAggregator(repos), repos.Pivots(), repos.Products())
}

// Seed claims every order and line of demand for o
func (s *PivotSynchronizer) Seed(ctx context.Context, o *production.ProductionOrder, demand production.Demand) (production.PivotPlan, error) {
	snapshots, err := s.snapshots(ctx, demand.ProductIDs())
	if err != nil {
		return production.PivotPlan{}, err
	}
	plan := production.SeedPivot(o, demand, snapshots, s.now())
	if err := s.pivots.Apply(ctx, plan); err != nil {
		return production.PivotPlan{}, err
	}
	return plan, nil
}

// Sync brings the pivot of o up to date after productID was attached or
// edited. The pivot rows are locked for the rest of the transaction.
func (s *PivotSynchronizer) Sync(ctx context.Context, o *production.ProductionOrder, productID uuid.UUID) (production.PivotPlan, error) {
	existing, err := s.pivots.LoadForUpdate(ctx, o.ID)
	if err != nil {
		return production.PivotPlan{}, err
	}

	var demand production.Demand
	switch o.Mode().(type) {
	case production.DateRange:
		demand, err = s.aggregator.Demand(ctx, o.Window, o.ProductionAreaIDs)
	case production.ExplicitOrders:
		if existing.IsEmpty() {
			return production.PivotPlan{}, nil
		}
		demand, _, err = s.aggregator.DemandForOrders(ctx, existing.OrderIDs(), o.ProductionAreaIDs)
	}
	if err != nil {
		return production.PivotPlan{}, err
	}

	snapshots, err := s.snapshots(ctx, []uuid.UUID{productID})
	if err != nil {
		return production.PivotPlan{}, err
	}

	plan := production.PlanPivotSync(o, existing, demand, productID, snapshots, s.now())
	if err := s.pivots.Apply(ctx, plan); err != nil {
		return production.PivotPlan{}, err
	}
	return plan, nil
}

func (s *PivotSynchronizer) snapshots(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]production.ProductSnapshot, error) {
	products, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]production.ProductSnapshot, len(products))
	for i := range products {
		out[products[i].ID] = production.ProductSnapshot{Name: products[i].Name, Code: products[i].Code}
	}
	return out, nil
}
