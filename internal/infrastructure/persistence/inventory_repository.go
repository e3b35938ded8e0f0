package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/inventory"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWarehouseRepository implements inventory.WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindDefault finds the default warehouse
func (r *GormWarehouseRepository) FindDefault(ctx context.Context) (*inventory.Warehouse, error) {
	var model models.WarehouseModel
	if err := r.db.WithContext(ctx).
		Where("is_default = ?", true).
		Order("created_at").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a warehouse
func (r *GormWarehouseRepository) Save(ctx context.Context, warehouse *inventory.Warehouse) error {
	return r.db.WithContext(ctx).Save(models.WarehouseModelFromDomain(warehouse)).Error
}

// GormStockRepository implements inventory.StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// Current returns the on-hand quantity, zero when the product has no stock row
func (r *GormStockRepository) Current(ctx context.Context, productID, warehouseID uuid.UUID) (int64, error) {
	var quantities []int64
	if err := r.db.WithContext(ctx).
		Model(&models.StockModel{}).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		Limit(1).
		Pluck("quantity", &quantities).Error; err != nil {
		return 0, err
	}
	if len(quantities) == 0 {
		return 0, nil
	}
	return quantities[0], nil
}

// FindForUpdate loads the stock row with a row lock (SELECT ... FOR UPDATE)
func (r *GormStockRepository) FindForUpdate(ctx context.Context, productID, warehouseID uuid.UUID) (*inventory.Stock, error) {
	var model models.StockModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return inventory.NewStock(productID, warehouseID), nil
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save upserts a stock row keyed by (product, warehouse)
func (r *GormStockRepository) Save(ctx context.Context, stock *inventory.Stock) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "warehouse_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).
		Create(models.StockModelFromDomain(stock)).Error
}

// GormLedgerRepository implements inventory.LedgerRepository using GORM
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// FindExecutedForUpdate returns the locked EXECUTED entry of a production order
func (r *GormLedgerRepository) FindExecutedForUpdate(ctx context.Context, productionOrderID uuid.UUID) (*inventory.LedgerEntry, error) {
	var model models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Lines").
		Where("production_order_id = ? AND status = ?", productionOrderID, inventory.LedgerStatusExecuted).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProductionOrder returns every entry of a production order, oldest first
func (r *GormLedgerRepository) FindByProductionOrder(ctx context.Context, productionOrderID uuid.UUID) ([]inventory.LedgerEntry, error) {
	var ms []models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("production_order_id = ?", productionOrderID).
		Order("created_at").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	entries := make([]inventory.LedgerEntry, len(ms))
	for i := range ms {
		entries[i] = *ms[i].ToDomain()
	}
	return entries, nil
}

// Save creates or updates an entry; lines are immutable once written
func (r *GormLedgerRepository) Save(ctx context.Context, entry *inventory.LedgerEntry) error {
	model := models.LedgerEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		if len(model.Lines) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.Lines).Error
	})
}

// DeleteByProductionOrder removes every entry and line of a production order
func (r *GormLedgerRepository) DeleteByProductionOrder(ctx context.Context, productionOrderID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entryIDs := tx.Model(&models.LedgerEntryModel{}).
			Select("id").
			Where("production_order_id = ?", productionOrderID)
		if err := tx.Where("entry_id IN (?)", entryIDs).Delete(&models.LedgerLineModel{}).Error; err != nil {
			return err
		}
		return tx.Where("production_order_id = ?", productionOrderID).Delete(&models.LedgerEntryModel{}).Error
	})
}

var (
	_ inventory.WarehouseRepository = (*GormWarehouseRepository)(nil)
	_ inventory.StockRepository     = (*GormStockRepository)(nil)
	_ inventory.LedgerRepository    = (*GormLedgerRepository)(nil)
)
