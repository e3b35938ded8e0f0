package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/catalog"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/inventory"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/sales"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// Fixtures seeds catalog, sales and inventory rows straight through the models.
type Fixtures struct {
	t  *testing.T
	db *gorm.DB
}

// NewFixtures creates a fixture builder over db
func NewFixtures(t *testing.T, db *gorm.DB) *Fixtures {
	return &Fixtures{t: t, db: db}
}

// Area creates a production area
func (f *Fixtures) Area(name string) catalog.ProductionArea {
	f.t.Helper()
	area, err := catalog.NewProductionArea(name)
	require.NoError(f.t, err)
	require.NoError(f.t, f.db.Create(models.ProductionAreaModelFromDomain(area)).Error)
	return *area
}

// Product creates a product made in the given areas
func (f *Fixtures) Product(code, name string, areas ...catalog.ProductionArea) *catalog.Product {
	f.t.Helper()
	p, err := catalog.NewProduct(code, name, areas...)
	require.NoError(f.t, err)
	require.NoError(f.t, f.db.Create(models.ProductModelFromDomain(p)).Error)
	for _, a := range areas {
		require.NoError(f.t, f.db.Create(&models.ProductProductionAreaModel{ProductID: p.ID, ProductionAreaID: a.ID}).Error)
	}
	return p
}

// Company creates a customer company
func (f *Fixtures) Company(name string, excludedFromConsolidated bool) *sales.Company {
	f.t.Helper()
	c, err := sales.NewCompany(name, "", excludedFromConsolidated)
	require.NoError(f.t, err)
	require.NoError(f.t, f.db.Create(models.CompanyModelFromDomain(c)).Error)
	return c
}

// LineSpec describes an order line to seed
type LineSpec struct {
	ProductID          uuid.UUID
	Quantity           int64
	PartiallyScheduled bool
	UnitPrice          decimal.Decimal
}

// Line is a LineSpec with a unit price of 1000
func Line(productID uuid.UUID, quantity int64) LineSpec {
	return LineSpec{ProductID: productID, Quantity: quantity, UnitPrice: decimal.NewFromInt(1000)}
}

// Flagged marks the line as partially scheduled
func (l LineSpec) Flagged() LineSpec {
	l.PartiallyScheduled = true
	return l
}

// Order creates a customer order with lines
func (f *Fixtures) Order(number string, companyID uuid.UUID, dispatch time.Time, status sales.OrderStatus, lines ...LineSpec) *sales.CustomerOrder {
	f.t.Helper()
	o, err := sales.NewCustomerOrder(number, companyID, dispatch, status)
	require.NoError(f.t, err)
	for _, l := range lines {
		_, err := o.AddLine(l.ProductID, l.Quantity, l.PartiallyScheduled, l.UnitPrice)
		require.NoError(f.t, err)
	}
	require.NoError(f.t, f.db.Create(models.CustomerOrderModelFromDomain(o)).Error)
	return o
}

// DefaultWarehouse creates the default warehouse
func (f *Fixtures) DefaultWarehouse() *inventory.Warehouse {
	f.t.Helper()
	w, err := inventory.NewWarehouse("BOD-PRINCIPAL", "Bodega principal", true)
	require.NoError(f.t, err)
	require.NoError(f.t, f.db.Create(models.WarehouseModelFromDomain(w)).Error)
	return w
}

// Stock sets the on-hand quantity of a product in a warehouse
func (f *Fixtures) Stock(productID, warehouseID uuid.UUID, quantity int64) {
	f.t.Helper()
	s := inventory.NewStock(productID, warehouseID)
	s.SetQuantity(quantity)
	require.NoError(f.t, f.db.Create(models.StockModelFromDomain(s)).Error)
}

// StockOf reads the on-hand quantity of a product, zero without a row
func (f *Fixtures) StockOf(productID, warehouseID uuid.UUID) int64 {
	f.t.Helper()
	var quantities []int64
	require.NoError(f.t, f.db.Model(&models.StockModel{}).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		Pluck("quantity", &quantities).Error)
	if len(quantities) == 0 {
		return 0
	}
	return quantities[0]
}
