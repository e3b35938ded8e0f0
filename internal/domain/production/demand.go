package production

import (
	"bytes"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/sales"
)

// Contribution is one order line feeding a product's demand
type Contribution struct {
	OrderID      uuid.UUID
	LineID       uuid.UUID
	OrderNumber  string
	OrderStatus  sales.OrderStatus
	CompanyID    uuid.UUID
	DispatchDate time.Time
	Quantity     int64
	UnitPrice    decimal.Decimal
}

// ProductDemand is the aggregated demand for one product
type ProductDemand struct {
	ProductID       uuid.UUID
	OrderedQuantity int64
	Contributions   []Contribution
}

// Demand maps product ids to their aggregated demand
type Demand map[uuid.UUID]*ProductDemand

// DemandFilter narrows which orders and lines are aggregated. Nil fields match everything.
type DemandFilter struct {
	Window         *DispatchWindow
	IncludeProduct func(productID uuid.UUID) bool
	IncludeLine    func(lineID uuid.UUID) bool
}

// AggregateDemand sums order lines per product. Only PROCESSED and
// PARTIALLY_SCHEDULED orders count, and partially scheduled orders only
// through their flagged lines.
func AggregateDemand(orders []sales.CustomerOrder, filter DemandFilter) Demand {
	d := make(Demand)
	for i := range orders {
		o := &orders[i]
		if !o.Status.IsEligibleForProduction() {
			continue
		}
		if filter.Window != nil && !filter.Window.Contains(o.DispatchDate) {
			continue
		}
		for _, l := range o.ProductionLines() {
			if filter.IncludeProduct != nil && !filter.IncludeProduct(l.ProductID) {
				continue
			}
			if filter.IncludeLine != nil && !filter.IncludeLine(l.ID) {
				continue
			}
			pd, ok := d[l.ProductID]
			if !ok {
				pd = &ProductDemand{ProductID: l.ProductID}
				d[l.ProductID] = pd
			}
			pd.OrderedQuantity += l.Quantity
			pd.Contributions = append(pd.Contributions, Contribution{
				OrderID:      o.ID,
				LineID:       l.ID,
				OrderNumber:  o.OrderNumber,
				OrderStatus:  o.Status,
				CompanyID:    o.CompanyID,
				DispatchDate: DateOf(o.DispatchDate),
				Quantity:     l.Quantity,
				UnitPrice:    l.UnitPrice,
			})
		}
	}
	for _, pd := range d {
		sortContributions(pd.Contributions)
	}
	return d
}

func sortContributions(cs []Contribution) {
	sort.SliceStable(cs, func(i, j int) bool {
		if !cs[i].DispatchDate.Equal(cs[j].DispatchDate) {
			return cs[i].DispatchDate.Before(cs[j].DispatchDate)
		}
		if cs[i].OrderNumber != cs[j].OrderNumber {
			return cs[i].OrderNumber < cs[j].OrderNumber
		}
		return bytes.Compare(cs[i].LineID[:], cs[j].LineID[:]) < 0
	})
}

// For returns the demand of a product, zero when absent
func (d Demand) For(productID uuid.UUID) ProductDemand {
	if pd, ok := d[productID]; ok {
		return *pd
	}
	return ProductDemand{ProductID: productID}
}

// IsEmpty reports whether no line contributed
func (d Demand) IsEmpty() bool {
	return len(d) == 0
}

// ProductIDs returns the contributing products in a stable order
func (d Demand) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids
}

// OrderIDs returns the distinct contributing orders in a stable order
func (d Demand) OrderIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, pd := range d {
		for _, c := range pd.Contributions {
			if _, ok := seen[c.OrderID]; ok {
				continue
			}
			seen[c.OrderID] = struct{}{}
			ids = append(ids, c.OrderID)
		}
	}
	sortIDs(ids)
	return ids
}

// DispatchDates returns the dispatch date of every contribution
func (d Demand) DispatchDates() []time.Time {
	dates := make([]time.Time, 0)
	for _, pd := range d {
		for _, c := range pd.Contributions {
			dates = append(dates, c.DispatchDate)
		}
	}
	return dates
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
}
