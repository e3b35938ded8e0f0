package production

import (
	"time"

	"github.com/google/uuid"
)

// LineItem is the to-manufacture quantity of one product in a production order
type LineItem struct {
	ID                uuid.UUID
	ProductionOrderID uuid.UUID
	ProductID         uuid.UUID
	// OrderedQuantity is the live demand over the order's range
	OrderedQuantity int64
	// OrderedQuantityNew is the demand not yet claimed by earlier production orders
	OrderedQuantityNew int64
	// Quantity is the manual override; zero means unset
	Quantity       int64
	TotalToProduce int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CalculationInput feeds Calculate
type CalculationInput struct {
	OrderedQuantity  int64
	PreviousCoverage int64
	ManualQuantity   int64
	CurrentStock     int64
}

// Calculation holds the derived quantities of a line item
type Calculation struct {
	OrderedQuantity    int64
	OrderedQuantityNew int64
	Quantity           int64
	TotalToProduce     int64
}

// Calculate derives the line item quantities:
//
//	ordered_quantity_new = max(0, ordered_quantity - previous_coverage)
//	effective_target     = quantity > 0 ? quantity : ordered_quantity_new
//	total_to_produce     = max(0, effective_target - current_stock)
func Calculate(in CalculationInput) (Calculation, error) {
	if in.OrderedQuantity < 0 {
		return Calculation{}, validationError("Ordered quantity cannot be negative")
	}
	if in.PreviousCoverage < 0 {
		return Calculation{}, validationError("Previous coverage cannot be negative")
	}
	if in.ManualQuantity < 0 {
		return Calculation{}, validationError("Manual quantity cannot be negative")
	}

	c := Calculation{
		OrderedQuantity:    in.OrderedQuantity,
		OrderedQuantityNew: max(0, in.OrderedQuantity-in.PreviousCoverage),
		Quantity:           in.ManualQuantity,
	}
	target := c.OrderedQuantityNew
	if c.Quantity > 0 {
		target = c.Quantity
	}
	c.TotalToProduce = max(0, target-in.CurrentStock)
	return c, nil
}

// NewLineItem creates a line item from a calculation
func NewLineItem(productionOrderID, productID uuid.UUID, c Calculation) *LineItem {
	now := time.Now()
	li := &LineItem{
		ID:                uuid.New(),
		ProductionOrderID: productionOrderID,
		ProductID:         productID,
		CreatedAt:         now,
	}
	li.Apply(c)
	return li
}

// Apply overwrites the derived quantities
func (li *LineItem) Apply(c Calculation) {
	li.OrderedQuantity = c.OrderedQuantity
	li.OrderedQuantityNew = c.OrderedQuantityNew
	li.Quantity = c.Quantity
	li.TotalToProduce = c.TotalToProduce
	li.UpdatedAt = time.Now()
}

// EffectiveTarget is the manual quantity when set, otherwise the new demand
func (li *LineItem) EffectiveTarget() int64 {
	if li.Quantity > 0 {
		return li.Quantity
	}
	return li.OrderedQuantityNew
}
