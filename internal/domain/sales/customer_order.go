package sales

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
)

// OrderStatus represents the status of a customer order. It is owned by the
// upstream ordering flow; production only reads it.
type OrderStatus string

const (
	OrderStatusPending            OrderStatus = "PENDING"
	OrderStatusProcessed          OrderStatus = "PROCESSED"
	OrderStatusPartiallyScheduled OrderStatus = "PARTIALLY_SCHEDULED"
	OrderStatusCanceled           OrderStatus = "CANCELED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessed, OrderStatusPartiallyScheduled, OrderStatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsEligibleForProduction reports whether orders in this status feed production demand
func (s OrderStatus) IsEligibleForProduction() bool {
	return s == OrderStatusProcessed || s == OrderStatusPartiallyScheduled
}

// EligibleStatuses returns the statuses that feed production demand
func EligibleStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusProcessed, OrderStatusPartiallyScheduled}
}

// ProductionStatus summarises how much of an order has been produced
type ProductionStatus string

const (
	ProductionStatusNotProduced       ProductionStatus = "NOT_PRODUCED"
	ProductionStatusPartiallyProduced ProductionStatus = "PARTIALLY_PRODUCED"
	ProductionStatusFullyProduced     ProductionStatus = "FULLY_PRODUCED"
)

// IsValid checks if the status is a valid ProductionStatus
func (s ProductionStatus) IsValid() bool {
	switch s {
	case ProductionStatusNotProduced, ProductionStatusPartiallyProduced, ProductionStatusFullyProduced:
		return true
	}
	return false
}

// String returns the string representation of ProductionStatus
func (s ProductionStatus) String() string {
	return string(s)
}

// OrderLine is a product line of a customer order
type OrderLine struct {
	ID                 uuid.UUID
	OrderID            uuid.UUID
	ProductID          uuid.UUID
	Quantity           int64
	PartiallyScheduled bool
	UnitPrice          decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CountsForProduction reports whether the line contributes demand while its
// order is in the given status. Lines of partially scheduled orders only count
// when they are flagged themselves.
func (l OrderLine) CountsForProduction(status OrderStatus) bool {
	switch status {
	case OrderStatusProcessed:
		return true
	case OrderStatusPartiallyScheduled:
		return l.PartiallyScheduled
	}
	return false
}

// TotalPrice returns quantity times unit price
func (l OrderLine) TotalPrice() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// CustomerOrder is an order placed by a company for a dispatch date
type CustomerOrder struct {
	shared.BaseEntity
	OrderNumber                 string
	CompanyID                   uuid.UUID
	DispatchDate                time.Time
	Status                      OrderStatus
	ProductionStatus            ProductionStatus
	ProductionStatusNeedsUpdate bool
	Lines                       []OrderLine
}

// NewCustomerOrder creates a new customer order
func NewCustomerOrder(orderNumber string, companyID uuid.UUID, dispatchDate time.Time, status OrderStatus) (*CustomerOrder, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid order status")
	}
	y, m, d := dispatchDate.Date()
	return &CustomerOrder{
		BaseEntity:       shared.NewBaseEntity(),
		OrderNumber:      orderNumber,
		CompanyID:        companyID,
		DispatchDate:     time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Status:           status,
		ProductionStatus: ProductionStatusNotProduced,
		Lines:            make([]OrderLine, 0),
	}, nil
}

// AddLine appends a product line to the order
func (o *CustomerOrder) AddLine(productID uuid.UUID, quantity int64, partiallyScheduled bool, unitPrice decimal.Decimal) (*OrderLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	now := time.Now()
	o.Lines = append(o.Lines, OrderLine{
		ID:                 uuid.New(),
		OrderID:            o.ID,
		ProductID:          productID,
		Quantity:           quantity,
		PartiallyScheduled: partiallyScheduled,
		UnitPrice:          unitPrice,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	o.UpdatedAt = now
	return &o.Lines[len(o.Lines)-1], nil
}

// ProductionLines returns the lines that count for production under the current status
func (o *CustomerOrder) ProductionLines() []OrderLine {
	lines := make([]OrderLine, 0, len(o.Lines))
	for _, l := range o.Lines {
		if l.CountsForProduction(o.Status) {
			lines = append(lines, l)
		}
	}
	return lines
}

// GetLine returns the line with the given id, or nil
func (o *CustomerOrder) GetLine(lineID uuid.UUID) *OrderLine {
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			return &o.Lines[i]
		}
	}
	return nil
}

// ApplyProductionStatus stores a recomputed production status and clears the stale flag
func (o *CustomerOrder) ApplyProductionStatus(status ProductionStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PRODUCTION_STATUS", "Invalid production status")
	}
	o.ProductionStatus = status
	o.ProductionStatusNeedsUpdate = false
	o.UpdatedAt = time.Now()
	return nil
}

// Company is a customer company
type Company struct {
	shared.BaseEntity
	Name                          string
	FantasyName                   string
	ExcludeFromConsolidatedReport bool
}

// NewCompany creates a new company
func NewCompany(name, fantasyName string, excludeFromConsolidatedReport bool) (*Company, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	return &Company{
		BaseEntity:                    shared.NewBaseEntity(),
		Name:                          name,
		FantasyName:                   fantasyName,
		ExcludeFromConsolidatedReport: excludeFromConsolidatedReport,
	}, nil
}

// DisplayName prefers the fantasy name
func (c *Company) DisplayName() string {
	if c.FantasyName != "" {
		return c.FantasyName
	}
	return c.Name
}
