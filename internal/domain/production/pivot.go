package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PivotOrderRef records that a production order claims a customer order.
// Order fields are copied at claim time.
type PivotOrderRef struct {
	ID                uuid.UUID
	ProductionOrderID uuid.UUID
	OrderID           uuid.UUID
	OrderNumber       string
	DispatchDate      time.Time
	OrderStatus       string
	CompanyID         uuid.UUID
	CreatedAt         time.Time
}

// PivotOrderLineRef records the quantity of an order line a production order
// claims. Coverage of later production orders is computed from these rows,
// never from the live order lines.
type PivotOrderLineRef struct {
	ID                uuid.UUID
	ProductionOrderID uuid.UUID
	OrderID           uuid.UUID
	OrderLineID       uuid.UUID
	ProductID         uuid.UUID
	QuantityCovered   int64
	DispatchDate      time.Time
	OrderNumber       string
	ProductName       string
	ProductCode       string
	UnitPrice         decimal.Decimal
	TotalPrice        decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Pivot is the snapshot of everything one production order claims
type Pivot struct {
	Orders []PivotOrderRef
	Lines  []PivotOrderLineRef
}

// IsEmpty is the single discovery trigger for DATE_RANGE orders
func (p Pivot) IsEmpty() bool {
	return len(p.Orders) == 0 && len(p.Lines) == 0
}

// HasOrder reports whether the customer order is claimed
func (p Pivot) HasOrder(orderID uuid.UUID) bool {
	for _, o := range p.Orders {
		if o.OrderID == orderID {
			return true
		}
	}
	return false
}

// Line returns the ref of an order line, or nil
func (p Pivot) Line(lineID uuid.UUID) *PivotOrderLineRef {
	for i := range p.Lines {
		if p.Lines[i].OrderLineID == lineID {
			return &p.Lines[i]
		}
	}
	return nil
}

// HasLine reports whether the order line is claimed
func (p Pivot) HasLine(lineID uuid.UUID) bool {
	return p.Line(lineID) != nil
}

// OrderIDs returns the claimed customer order ids
func (p Pivot) OrderIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Orders))
	for _, o := range p.Orders {
		ids = append(ids, o.OrderID)
	}
	return ids
}

// LinesFor returns the line refs of a product
func (p Pivot) LinesFor(productID uuid.UUID) []PivotOrderLineRef {
	out := make([]PivotOrderLineRef, 0)
	for _, l := range p.Lines {
		if l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out
}

// CoveredIn sums quantity_covered of a product over line refs dispatched inside the window
func (p Pivot) CoveredIn(productID uuid.UUID, w DispatchWindow) int64 {
	var total int64
	for _, l := range p.Lines {
		if l.ProductID == productID && w.Contains(l.DispatchDate) {
			total += l.QuantityCovered
		}
	}
	return total
}
