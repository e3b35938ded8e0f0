package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSnapshot is the product data copied into line refs
type ProductSnapshot struct {
	Name string
	Code string
}

// PivotPlan lists the pivot rows a synchronization writes
type PivotPlan struct {
	NewOrders      []PivotOrderRef
	NewLines       []PivotOrderLineRef
	RefreshedLines []PivotOrderLineRef
}

// IsEmpty reports whether the plan writes nothing
func (p PivotPlan) IsEmpty() bool {
	return len(p.NewOrders) == 0 && len(p.NewLines) == 0 && len(p.RefreshedLines) == 0
}

// SeedPivot claims every order and line in the demand. EXPLICIT_ORDERS
// orders are seeded this way on creation, since they get a line item for
// every product in their demand.
func SeedPivot(o *ProductionOrder, demand Demand, products map[uuid.UUID]ProductSnapshot, now time.Time) PivotPlan {
	var plan PivotPlan
	seen := make(map[uuid.UUID]struct{})
	for _, productID := range demand.ProductIDs() {
		for _, c := range demand[productID].Contributions {
			if _, ok := seen[c.OrderID]; !ok {
				seen[c.OrderID] = struct{}{}
				plan.NewOrders = append(plan.NewOrders, newOrderRef(o.ID, c, now))
			}
			plan.NewLines = append(plan.NewLines, newLineRef(o.ID, productID, c, products[productID], now))
		}
	}
	return plan
}

// PlanPivotSync computes the pivot rows to write after a product of the
// order was created or updated. Pivots never expand past their scope:
//
//   - EXPLICIT_ORDERS: only line refs already present are refreshed.
//   - DATE_RANGE: an empty pivot claims every order in the demand but only
//     the lines of productID; afterwards line refs are added for the product
//     only on orders already claimed.
func PlanPivotSync(o *ProductionOrder, existing Pivot, demand Demand, productID uuid.UUID, products map[uuid.UUID]ProductSnapshot, now time.Time) PivotPlan {
	switch o.Mode().(type) {
	case DateRange:
		if existing.IsEmpty() {
			return seedForProduct(o, demand, productID, products[productID], now)
		}
		plan := refreshLines(existing, demand.For(productID), products[productID], now)
		for _, c := range demand.For(productID).Contributions {
			if existing.HasOrder(c.OrderID) && !existing.HasLine(c.LineID) {
				plan.NewLines = append(plan.NewLines, newLineRef(o.ID, productID, c, products[productID], now))
			}
		}
		return plan
	case ExplicitOrders:
		return refreshLines(existing, demand.For(productID), products[productID], now)
	}
	return PivotPlan{}
}

// seedForProduct claims the orders of the whole window. Lines of products the
// order does not make stay unclaimed, otherwise later orders would see them
// as covered.
func seedForProduct(o *ProductionOrder, demand Demand, productID uuid.UUID, snap ProductSnapshot, now time.Time) PivotPlan {
	var plan PivotPlan
	seen := make(map[uuid.UUID]struct{})
	for _, id := range demand.ProductIDs() {
		for _, c := range demand[id].Contributions {
			if _, ok := seen[c.OrderID]; ok {
				continue
			}
			seen[c.OrderID] = struct{}{}
			plan.NewOrders = append(plan.NewOrders, newOrderRef(o.ID, c, now))
		}
	}
	for _, c := range demand.For(productID).Contributions {
		plan.NewLines = append(plan.NewLines, newLineRef(o.ID, productID, c, snap, now))
	}
	return plan
}

func refreshLines(existing Pivot, pd ProductDemand, snap ProductSnapshot, now time.Time) PivotPlan {
	var plan PivotPlan
	for _, c := range pd.Contributions {
		ref := existing.Line(c.LineID)
		if ref == nil {
			continue
		}
		updated := *ref
		updated.QuantityCovered = c.Quantity
		updated.DispatchDate = c.DispatchDate
		updated.OrderNumber = c.OrderNumber
		updated.UnitPrice = c.UnitPrice
		updated.TotalPrice = lineTotal(c)
		if snap.Name != "" {
			updated.ProductName = snap.Name
			updated.ProductCode = snap.Code
		}
		if lineRefChanged(*ref, updated) {
			updated.UpdatedAt = now
			plan.RefreshedLines = append(plan.RefreshedLines, updated)
		}
	}
	return plan
}

func lineRefChanged(a, b PivotOrderLineRef) bool {
	return a.QuantityCovered != b.QuantityCovered ||
		!a.DispatchDate.Equal(b.DispatchDate) ||
		a.OrderNumber != b.OrderNumber ||
		a.ProductName != b.ProductName ||
		a.ProductCode != b.ProductCode ||
		!a.UnitPrice.Equal(b.UnitPrice) ||
		!a.TotalPrice.Equal(b.TotalPrice)
}

func newOrderRef(productionOrderID uuid.UUID, c Contribution, now time.Time) PivotOrderRef {
	return PivotOrderRef{
		ID:                uuid.New(),
		ProductionOrderID: productionOrderID,
		OrderID:           c.OrderID,
		OrderNumber:       c.OrderNumber,
		DispatchDate:      c.DispatchDate,
		OrderStatus:       c.OrderStatus.String(),
		CompanyID:         c.CompanyID,
		CreatedAt:         now,
	}
}

func newLineRef(productionOrderID, productID uuid.UUID, c Contribution, snap ProductSnapshot, now time.Time) PivotOrderLineRef {
	return PivotOrderLineRef{
		ID:                uuid.New(),
		ProductionOrderID: productionOrderID,
		OrderID:           c.OrderID,
		OrderLineID:       c.LineID,
		ProductID:         productID,
		QuantityCovered:   c.Quantity,
		DispatchDate:      c.DispatchDate,
		OrderNumber:       c.OrderNumber,
		ProductName:       snap.Name,
		ProductCode:       snap.Code,
		UnitPrice:         c.UnitPrice,
		TotalPrice:        lineTotal(c),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func lineTotal(c Contribution) decimal.Decimal {
	return c.UnitPrice.Mul(decimal.NewFromInt(c.Quantity))
}
