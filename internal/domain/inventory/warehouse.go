package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
)

// Warehouse is a stock location. Exactly one warehouse is the default one
// that production reads and writes.
type Warehouse struct {
	shared.BaseEntity
	Code      string
	Name      string
	IsDefault bool
}

// NewWarehouse creates a new warehouse
func NewWarehouse(code, name string, isDefault bool) (*Warehouse, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Warehouse code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}
	return &Warehouse{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
		IsDefault:  isDefault,
	}, nil
}

// Stock is the on-hand quantity of a product in a warehouse
type Stock struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	WarehouseID uuid.UUID
	Quantity    int64
	UpdatedAt   time.Time
}

// NewStock creates an empty stock row
func NewStock(productID, warehouseID uuid.UUID) *Stock {
	return &Stock{
		ID:          uuid.New(),
		ProductID:   productID,
		WarehouseID: warehouseID,
		UpdatedAt:   time.Now(),
	}
}

// SetQuantity overwrites the on-hand quantity
func (s *Stock) SetQuantity(quantity int64) {
	s.Quantity = quantity
	s.UpdatedAt = time.Now()
}
