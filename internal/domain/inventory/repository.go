package inventory

import (
	"context"

	"github.com/google/uuid"
)

// WarehouseRepository defines persistence operations for warehouses
type WarehouseRepository interface {
	// FindDefault returns the default warehouse or shared.ErrNotFound
	FindDefault(ctx context.Context) (*Warehouse, error)
	Save(ctx context.Context, warehouse *Warehouse) error
}

// StockRepository defines persistence operations for stock rows
type StockRepository interface {
	// Current returns the on-hand quantity, zero when no row exists
	Current(ctx context.Context, productID, warehouseID uuid.UUID) (int64, error)
	// FindForUpdate locks the row until the transaction ends. A missing row is
	// returned as a new zero-quantity Stock that Save will insert.
	FindForUpdate(ctx context.Context, productID, warehouseID uuid.UUID) (*Stock, error)
	Save(ctx context.Context, stock *Stock) error
}

// LedgerRepository defines persistence operations for ledger entries
type LedgerRepository interface {
	// FindExecutedForUpdate returns the executed entry of a production order,
	// locked, or shared.ErrNotFound
	FindExecutedForUpdate(ctx context.Context, productionOrderID uuid.UUID) (*LedgerEntry, error)
	FindByProductionOrder(ctx context.Context, productionOrderID uuid.UUID) ([]LedgerEntry, error)
	Save(ctx context.Context, entry *LedgerEntry) error
	DeleteByProductionOrder(ctx context.Context, productionOrderID uuid.UUID) error
}
