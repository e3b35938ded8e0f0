package production

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/inventory"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
)

// LineItemCalculator derives and stores the quantities of one product in a
// production order
type LineItemCalculator struct {
	aggregator *OrderAggregator
	resolver   *OverlapResolver
	pivots     production.PivotRepository
	lineItems  production.LineItemRepository
	warehouses inventory.WarehouseRepository
	stock      inventory.StockRepository
}

func newLineItemCalculator(repos Repositories) *LineItemCalculator {
	return &LineItemCalculator{
		aggregator: newOrderAggregator(repos),
		resolver:   NewOverlapResolver(repos.ProductionOrders(), repos.Pivots(), repos.LineItems()),
		pivots:     repos.Pivots(),
		lineItems:  repos.LineItems(),
		warehouses: repos.Warehouses(),
		stock:      repos.Stock(),
	}
}

// Compute recalculates the line item of productID in o and saves it. A nil
// manual keeps the override already stored on the line item.
func (c *LineItemCalculator) Compute(ctx context.Context, o *production.ProductionOrder, productID uuid.UUID, manual *int64) (*production.LineItem, error) {
	item, err := c.lineItems.FindOne(ctx, o.ID, productID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	in := production.CalculationInput{}
	if item != nil {
		in.ManualQuantity = item.Quantity
	}
	if manual != nil {
		in.ManualQuantity = *manual
	}

	if in.OrderedQuantity, err = c.orderedQuantity(ctx, o, productID); err != nil {
		return nil, err
	}
	if in.PreviousCoverage, err = c.resolver.PreviousCoverage(ctx, o, productID); err != nil {
		return nil, err
	}
	if in.CurrentStock, err = c.currentStock(ctx, productID); err != nil {
		return nil, err
	}

	calc, err := production.Calculate(in)
	if err != nil {
		return nil, err
	}
	if item == nil {
		item = production.NewLineItem(o.ID, productID, calc)
	} else {
		item.Apply(calc)
	}
	if err := c.lineItems.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// orderedQuantity is the live demand of the product. Explicit orders only
// count the lines their pivot claims.
func (c *LineItemCalculator) orderedQuantity(ctx context.Context, o *production.ProductionOrder, productID uuid.UUID) (int64, error) {
	if _, ok := o.Mode().(production.DateRange); ok {
		demand, err := c.aggregator.Demand(ctx, o.Window, o.ProductionAreaIDs)
		if err != nil {
			return 0, err
		}
		return demand.For(productID).OrderedQuantity, nil
	}

	pivot, err := c.pivots.Load(ctx, o.ID)
	if err != nil {
		return 0, err
	}
	claimed := pivot.LinesFor(productID)
	if len(claimed) == 0 {
		return 0, nil
	}
	demand, _, err := c.aggregator.DemandForOrders(ctx, pivot.OrderIDs(), o.ProductionAreaIDs)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, contribution := range demand.For(productID).Contributions {
		if pivot.HasLine(contribution.LineID) {
			total += contribution.Quantity
		}
	}
	return total, nil
}

// currentStock reads the default warehouse; without one every product has no stock
func (c *LineItemCalculator) currentStock(ctx context.Context, productID uuid.UUID) (int64, error) {
	warehouse, err := c.warehouses.FindDefault(ctx)
	if errors.Is(err, shared.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return c.stock.Current(ctx, productID, warehouse.ID)
}
