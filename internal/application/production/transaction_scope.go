package production

import (
	"context"

	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/catalog"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/inventory"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/sales"
)

// TransactionScope runs compound production operations atomically.
// Every repository handed to fn shares one database transaction, which is
// rolled back when fn returns an error and committed otherwise.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories provides access to every repository a production operation
// touches, all scoped to the same transaction.
type Repositories interface {
	ProductionOrders() production.ProductionOrderRepository
	LineItems() production.LineItemRepository
	// Pivots is the snapshot store of claimed orders and order lines
	Pivots() production.PivotRepository
	Reports() production.ReportReader
	CustomerOrders() sales.CustomerOrderRepository
	Products() catalog.ProductRepository
	Warehouses() inventory.WarehouseRepository
	// Stock is mutated only by the ledger service
	Stock() inventory.StockRepository
	Ledger() inventory.LedgerRepository
}
