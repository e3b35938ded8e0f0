package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/inventory"
)

// WarehouseModel is the persistence model for Warehouse.
type WarehouseModel struct {
	BaseModel
	Code      string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string `gorm:"type:varchar(200);not null"`
	IsDefault bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (WarehouseModel) TableName() string {
	return "warehouses"
}

// ToDomain converts the persistence model to a domain Warehouse.
func (m *WarehouseModel) ToDomain() *inventory.Warehouse {
	return &inventory.Warehouse{
		BaseEntity: m.BaseModel.ToDomain(),
		Code:       m.Code,
		Name:       m.Name,
		IsDefault:  m.IsDefault,
	}
}

// WarehouseModelFromDomain creates a persistence model from a domain Warehouse.
func WarehouseModelFromDomain(w *inventory.Warehouse) *WarehouseModel {
	m := &WarehouseModel{Code: w.Code, Name: w.Name, IsDefault: w.IsDefault}
	m.FromDomainBaseEntity(w.BaseEntity)
	return m
}

// StockModel is the persistence model for Stock.
type StockModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_warehouse,priority:1"`
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_warehouse,priority:2"`
	Quantity    int64     `gorm:"not null;default:0"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockModel) TableName() string {
	return "inventory_stocks"
}

// ToDomain converts the persistence model to a domain Stock.
func (m *StockModel) ToDomain() *inventory.Stock {
	return &inventory.Stock{
		ID:          m.ID,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		Quantity:    m.Quantity,
		UpdatedAt:   m.UpdatedAt,
	}
}

// StockModelFromDomain creates a persistence model from a domain Stock.
func StockModelFromDomain(s *inventory.Stock) *StockModel {
	return &StockModel{
		ID:          s.ID,
		ProductID:   s.ProductID,
		WarehouseID: s.WarehouseID,
		Quantity:    s.Quantity,
		UpdatedAt:   s.UpdatedAt,
	}
}

// LedgerEntryModel is the persistence model for LedgerEntry.
type LedgerEntryModel struct {
	BaseModel
	Code               string                 `gorm:"type:varchar(50);not null;index"`
	ProductionOrderID  uuid.UUID              `gorm:"type:uuid;not null;index"`
	WarehouseID        uuid.UUID              `gorm:"type:uuid;not null"`
	Status             inventory.LedgerStatus `gorm:"type:varchar(20);not null;index"`
	Reason             string                 `gorm:"type:varchar(500)"`
	ExecutedAt         *time.Time
	CancelledAt        *time.Time
	CancelledBy        string            `gorm:"type:varchar(100)"`
	CancellationReason string            `gorm:"type:varchar(500)"`
	Lines              []LedgerLineModel `gorm:"foreignKey:EntryID;references:ID"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "stock_ledger_entries"
}

// ToDomain converts the persistence model to a domain LedgerEntry.
func (m *LedgerEntryModel) ToDomain() *inventory.LedgerEntry {
	e := &inventory.LedgerEntry{
		BaseEntity:         m.BaseModel.ToDomain(),
		Code:               m.Code,
		ProductionOrderID:  m.ProductionOrderID,
		WarehouseID:        m.WarehouseID,
		Status:             m.Status,
		Reason:             m.Reason,
		ExecutedAt:         m.ExecutedAt,
		CancelledAt:        m.CancelledAt,
		CancelledBy:        m.CancelledBy,
		CancellationReason: m.CancellationReason,
		Lines:              make([]inventory.LedgerLine, len(m.Lines)),
	}
	for i, l := range m.Lines {
		e.Lines[i] = inventory.LedgerLine{
			ID:            l.ID,
			EntryID:       l.EntryID,
			ProductID:     l.ProductID,
			StockBefore:   l.StockBefore,
			StockAfter:    l.StockAfter,
			Difference:    l.Difference,
			UnitOfMeasure: l.UnitOfMeasure,
		}
	}
	return e
}

// LedgerEntryModelFromDomain creates a persistence model from a domain LedgerEntry.
func LedgerEntryModelFromDomain(e *inventory.LedgerEntry) *LedgerEntryModel {
	m := &LedgerEntryModel{
		Code:               e.Code,
		ProductionOrderID:  e.ProductionOrderID,
		WarehouseID:        e.WarehouseID,
		Status:             e.Status,
		Reason:             e.Reason,
		ExecutedAt:         e.ExecutedAt,
		CancelledAt:        e.CancelledAt,
		CancelledBy:        e.CancelledBy,
		CancellationReason: e.CancellationReason,
		Lines:              make([]LedgerLineModel, len(e.Lines)),
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	for i, l := range e.Lines {
		m.Lines[i] = LedgerLineModel{
			ID:            l.ID,
			EntryID:       e.ID,
			ProductID:     l.ProductID,
			StockBefore:   l.StockBefore,
			StockAfter:    l.StockAfter,
			Difference:    l.Difference,
			UnitOfMeasure: l.UnitOfMeasure,
		}
	}
	return m
}

// LedgerLineModel is the persistence model for LedgerLine.
type LedgerLineModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	EntryID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index"`
	StockBefore   int64     `gorm:"not null"`
	StockAfter    int64     `gorm:"not null"`
	Difference    int64     `gorm:"not null"`
	UnitOfMeasure string    `gorm:"type:varchar(10);not null;default:'UND'"`
}

// TableName returns the table name for GORM
func (LedgerLineModel) TableName() string {
	return "stock_ledger_lines"
}
