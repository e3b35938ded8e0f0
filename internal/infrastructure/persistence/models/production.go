package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/production"
)

// ProductionOrderModel is the persistence model for the ProductionOrder aggregate root.
type ProductionOrderModel struct {
	AggregateModel
	Sequence            int64                      `gorm:"not null;uniqueIndex"`
	PreparationDatetime time.Time                  `gorm:"not null"`
	InitialDispatchDate time.Time                  `gorm:"type:date;not null;index"`
	FinalDispatchDate   time.Time                  `gorm:"type:date;not null;index"`
	Status              production.Status          `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CreationMode        string                     `gorm:"type:varchar(30);not null"`
	Description         string                     `gorm:"type:varchar(500)"`
	CancelledAt         *time.Time
	CancelledBy         string                     `gorm:"type:varchar(100)"`
	CancellationReason  string                     `gorm:"type:varchar(500)"`
	Areas               []ProductionOrderAreaModel `gorm:"foreignKey:ProductionOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (ProductionOrderModel) TableName() string {
	return "production_orders"
}

// ToDomain converts the persistence model to a domain ProductionOrder.
func (m *ProductionOrderModel) ToDomain() (*production.ProductionOrder, error) {
	mode, err := production.ParseCreationMode(m.CreationMode)
	if err != nil {
		return nil, err
	}
	areaIDs := make([]uuid.UUID, len(m.Areas))
	for i, a := range m.Areas {
		areaIDs[i] = a.ProductionAreaID
	}
	return production.RestoreProductionOrder(production.ProductionOrder{
		BaseAggregateRoot:   m.ToDomainAggregateRoot(),
		Sequence:            m.Sequence,
		PreparationDatetime: m.PreparationDatetime.UTC(),
		Window: production.DispatchWindow{
			Initial: production.DateOf(m.InitialDispatchDate),
			Final:   production.DateOf(m.FinalDispatchDate),
		},
		Status:             m.Status,
		ProductionAreaIDs:  areaIDs,
		Description:        m.Description,
		CancelledAt:        m.CancelledAt,
		CancelledBy:        m.CancelledBy,
		CancellationReason: m.CancellationReason,
	}, mode), nil
}

// ProductionOrderModelFromDomain creates a persistence model from a domain ProductionOrder.
func ProductionOrderModelFromDomain(o *production.ProductionOrder) *ProductionOrderModel {
	m := &ProductionOrderModel{
		Sequence:            o.Sequence,
		PreparationDatetime: NormalizeTimestamp(o.PreparationDatetime),
		InitialDispatchDate: o.Window.Initial,
		FinalDispatchDate:   o.Window.Final,
		Status:              o.Status,
		CreationMode:        o.Mode().Kind().String(),
		Description:         o.Description,
		CancelledAt:         o.CancelledAt,
		CancelledBy:         o.CancelledBy,
		CancellationReason:  o.CancellationReason,
		Areas:               make([]ProductionOrderAreaModel, len(o.ProductionAreaIDs)),
	}
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	for i, id := range o.ProductionAreaIDs {
		m.Areas[i] = ProductionOrderAreaModel{ProductionOrderID: o.ID, ProductionAreaID: id}
	}
	return m
}

// ProductionOrderAreaModel scopes a production order to a production area.
type ProductionOrderAreaModel struct {
	ProductionOrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductionAreaID  uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName returns the table name for GORM
func (ProductionOrderAreaModel) TableName() string {
	return "production_order_areas"
}

// LineItemModel is the persistence model for LineItem.
type LineItemModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key"`
	ProductionOrderID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_line_item_order_product,priority:1"`
	ProductID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_line_item_order_product,priority:2;index"`
	OrderedQuantity    int64     `gorm:"not null;default:0"`
	OrderedQuantityNew int64     `gorm:"not null;default:0"`
	Quantity           int64     `gorm:"not null;default:0"`
	TotalToProduce     int64     `gorm:"not null;default:0"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LineItemModel) TableName() string {
	return "production_order_products"
}

// ToDomain converts the persistence model to a domain LineItem.
func (m *LineItemModel) ToDomain() production.LineItem {
	return production.LineItem{
		ID:                 m.ID,
		ProductionOrderID:  m.ProductionOrderID,
		ProductID:          m.ProductID,
		OrderedQuantity:    m.OrderedQuantity,
		OrderedQuantityNew: m.OrderedQuantityNew,
		Quantity:           m.Quantity,
		TotalToProduce:     m.TotalToProduce,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// LineItemModelFromDomain creates a persistence model from a domain LineItem.
func LineItemModelFromDomain(li *production.LineItem) *LineItemModel {
	return &LineItemModel{
		ID:                 li.ID,
		ProductionOrderID:  li.ProductionOrderID,
		ProductID:          li.ProductID,
		OrderedQuantity:    li.OrderedQuantity,
		OrderedQuantityNew: li.OrderedQuantityNew,
		Quantity:           li.Quantity,
		TotalToProduce:     li.TotalToProduce,
		CreatedAt:          li.CreatedAt,
		UpdatedAt:          li.UpdatedAt,
	}
}

// PivotOrderRefModel is the persistence model for PivotOrderRef.
type PivotOrderRefModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key"`
	ProductionOrderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pivot_order_ref,priority:1"`
	OrderID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pivot_order_ref,priority:2;index"`
	OrderNumber       string    `gorm:"type:varchar(50);not null"`
	DispatchDate      time.Time `gorm:"type:date;not null"`
	OrderStatus       string    `gorm:"type:varchar(30);not null"`
	CompanyID         uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PivotOrderRefModel) TableName() string {
	return "production_order_orders"
}

// ToDomain converts the persistence model to a domain PivotOrderRef.
func (m *PivotOrderRefModel) ToDomain() production.PivotOrderRef {
	return production.PivotOrderRef{
		ID:                m.ID,
		ProductionOrderID: m.ProductionOrderID,
		OrderID:           m.OrderID,
		OrderNumber:       m.OrderNumber,
		DispatchDate:      production.DateOf(m.DispatchDate),
		OrderStatus:       m.OrderStatus,
		CompanyID:         m.CompanyID,
		CreatedAt:         m.CreatedAt,
	}
}

// PivotOrderRefModelFromDomain creates a persistence model from a domain PivotOrderRef.
func PivotOrderRefModelFromDomain(r *production.PivotOrderRef) *PivotOrderRefModel {
	return &PivotOrderRefModel{
		ID:                r.ID,
		ProductionOrderID: r.ProductionOrderID,
		OrderID:           r.OrderID,
		OrderNumber:       r.OrderNumber,
		DispatchDate:      r.DispatchDate,
		OrderStatus:       r.OrderStatus,
		CompanyID:         r.CompanyID,
		CreatedAt:         r.CreatedAt,
	}
}

// PivotOrderLineRefModel is the persistence model for PivotOrderLineRef.
type PivotOrderLineRefModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	ProductionOrderID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_pivot_line_ref,priority:1"`
	OrderLineID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_pivot_line_ref,priority:2;index"`
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuantityCovered   int64           `gorm:"not null;default:0"`
	DispatchDate      time.Time       `gorm:"type:date;not null;index"`
	OrderNumber       string          `gorm:"type:varchar(50);not null"`
	ProductName       string          `gorm:"type:varchar(200)"`
	ProductCode       string          `gorm:"type:varchar(50)"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PivotOrderLineRefModel) TableName() string {
	return "production_order_order_lines"
}

// ToDomain converts the persistence model to a domain PivotOrderLineRef.
func (m *PivotOrderLineRefModel) ToDomain() production.PivotOrderLineRef {
	return production.PivotOrderLineRef{
		ID:                m.ID,
		ProductionOrderID: m.ProductionOrderID,
		OrderID:           m.OrderID,
		OrderLineID:       m.OrderLineID,
		ProductID:         m.ProductID,
		QuantityCovered:   m.QuantityCovered,
		DispatchDate:      production.DateOf(m.DispatchDate),
		OrderNumber:       m.OrderNumber,
		ProductName:       m.ProductName,
		ProductCode:       m.ProductCode,
		UnitPrice:         m.UnitPrice,
		TotalPrice:        m.TotalPrice,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// PivotOrderLineRefModelFromDomain creates a persistence model from a domain PivotOrderLineRef.
func PivotOrderLineRefModelFromDomain(r *production.PivotOrderLineRef) *PivotOrderLineRefModel {
	return &PivotOrderLineRefModel{
		ID:                r.ID,
		ProductionOrderID: r.ProductionOrderID,
		OrderID:           r.OrderID,
		OrderLineID:       r.OrderLineID,
		ProductID:         r.ProductID,
		QuantityCovered:   r.QuantityCovered,
		DispatchDate:      r.DispatchDate,
		OrderNumber:       r.OrderNumber,
		ProductName:       r.ProductName,
		ProductCode:       r.ProductCode,
		UnitPrice:         r.UnitPrice,
		TotalPrice:        r.TotalPrice,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// NormalizeTimestamp converts t to UTC at the microsecond precision Postgres
// keeps, so equality lookups match what was stored.
func NormalizeTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
