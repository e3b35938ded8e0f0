package production

import (
	"context"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/catalog"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/sales"
)

// OrderAggregator loads customer orders and folds them into per-product demand
type OrderAggregator struct {
	orders   sales.CustomerOrderRepository
	products catalog.ProductRepository
}

// NewOrderAggregator creates a new OrderAggregator
func NewOrderAggregator(orders sales.CustomerOrderRepository, products catalog.ProductRepository) *OrderAggregator {
	return &OrderAggregator{orders: orders, products: products}
}

func newOrderAggregator(repos Repositories) *OrderAggregator {
	return NewOrderAggregator(repos.CustomerOrders(), repos.Products())
}

// Demand aggregates eligible orders dispatched inside w. A non-empty
// areaIDs keeps only products made in one of those areas.
func (a *OrderAggregator) Demand(ctx context.Context, w production.DispatchWindow, areaIDs []uuid.UUID) (production.Demand, error) {
	orders, err := a.orders.FindEligibleByDispatchRange(ctx, w.Initial, w.Final)
	if err != nil {
		return nil, err
	}
	filter, err := a.areaFilter(ctx, orders, areaIDs)
	if err != nil {
		return nil, err
	}
	filter.Window = &w
	return production.AggregateDemand(orders, filter), nil
}

// DemandForOrders applies the same inclusion rule to an explicit list of
// orders. It also returns the orders that passed the status check.
func (a *OrderAggregator) DemandForOrders(ctx context.Context, orderIDs []uuid.UUID, areaIDs []uuid.UUID) (production.Demand, []sales.CustomerOrder, error) {
	found, err := a.orders.FindByIDs(ctx, orderIDs)
	if err != nil {
		return nil, nil, err
	}
	eligible := make([]sales.CustomerOrder, 0, len(found))
	for _, o := range found {
		if o.Status.IsEligibleForProduction() {
			eligible = append(eligible, o)
		}
	}
	filter, err := a.areaFilter(ctx, eligible, areaIDs)
	if err != nil {
		return nil, nil, err
	}
	return production.AggregateDemand(eligible, filter), eligible, nil
}

func (a *OrderAggregator) areaFilter(ctx context.Context, orders []sales.CustomerOrder, areaIDs []uuid.UUID) (production.DemandFilter, error) {
	if len(areaIDs) == 0 {
		return production.DemandFilter{}, nil
	}

	seen := make(map[uuid.UUID]struct{})
	var productIDs []uuid.UUID
	for _, o := range orders {
		for _, l := range o.Lines {
			if _, ok := seen[l.ProductID]; !ok {
				seen[l.ProductID] = struct{}{}
				productIDs = append(productIDs, l.ProductID)
			}
		}
	}
	products, err := a.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return production.DemandFilter{}, err
	}

	included := make(map[uuid.UUID]bool, len(products))
	for i := range products {
		included[products[i].ID] = products[i].BelongsToAnyArea(areaIDs)
	}
	return production.DemandFilter{
		IncludeProduct: func(productID uuid.UUID) bool { return included[productID] },
	}, nil
}
