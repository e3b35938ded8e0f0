package persistence

import (
	"context"

	appproduction "github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/application/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/catalog"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/inventory"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/sales"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appproduction.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormRepositories(tx))
	})
}

// GormRepositories hands out repositories bound to one *gorm.DB, either the
// pool or an open transaction.
type GormRepositories struct {
	db *gorm.DB
}

// NewGormRepositories creates repositories bound to db
func NewGormRepositories(db *gorm.DB) *GormRepositories {
	return &GormRepositories{db: db}
}

// ProductionOrders returns the production order repository
func (r *GormRepositories) ProductionOrders() production.ProductionOrderRepository {
	return NewGormProductionOrderRepository(r.db)
}

// LineItems returns the line item repository
func (r *GormRepositories) LineItems() production.LineItemRepository {
	return NewGormLineItemRepository(r.db)
}

// Pivots returns the pivot snapshot repository
func (r *GormRepositories) Pivots() production.PivotRepository {
	return NewGormPivotRepository(r.db)
}

// Reports returns the report reader
func (r *GormRepositories) Reports() production.ReportReader {
	return NewGormProductionReportRepository(r.db)
}

// CustomerOrders returns the customer order repository
func (r *GormRepositories) CustomerOrders() sales.CustomerOrderRepository {
	return NewGormCustomerOrderRepository(r.db)
}

// Products returns the product repository
func (r *GormRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.db)
}

// Warehouses returns the warehouse repository
func (r *GormRepositories) Warehouses() inventory.WarehouseRepository {
	return NewGormWarehouseRepository(r.db)
}

// Stock returns the stock repository
func (r *GormRepositories) Stock() inventory.StockRepository {
	return NewGormStockRepository(r.db)
}

// Ledger returns the ledger repository
func (r *GormRepositories) Ledger() inventory.LedgerRepository {
	return NewGormLedgerRepository(r.db)
}

var (
	_ appproduction.TransactionScope = (*GormTransactionScope)(nil)
	_ appproduction.Repositories     = (*GormRepositories)(nil)
)
