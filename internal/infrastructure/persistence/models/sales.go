package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/sales"
)

// CompanyModel is the persistence model for Company.
type CompanyModel struct {
	BaseModel
	Name                          string `gorm:"type:varchar(200);not null"`
	FantasyName                   string `gorm:"type:varchar(200)"`
	ExcludeFromConsolidatedReport bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company.
func (m *CompanyModel) ToDomain() *sales.Company {
	return &sales.Company{
		BaseEntity:                    m.BaseModel.ToDomain(),
		Name:                          m.Name,
		FantasyName:                   m.FantasyName,
		ExcludeFromConsolidatedReport: m.ExcludeFromConsolidatedReport,
	}
}

// CompanyModelFromDomain creates a persistence model from a domain Company.
func CompanyModelFromDomain(c *sales.Company) *CompanyModel {
	m := &CompanyModel{
		Name:                          c.Name,
		FantasyName:                   c.FantasyName,
		ExcludeFromConsolidatedReport: c.ExcludeFromConsolidatedReport,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// CustomerOrderModel is the persistence model for CustomerOrder.
type CustomerOrderModel struct {
	BaseModel
	OrderNumber                 string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	CompanyID                   uuid.UUID              `gorm:"type:uuid;not null;index"`
	DispatchDate                time.Time              `gorm:"type:date;not null;index"`
	Status                      sales.OrderStatus      `gorm:"type:varchar(30);not null;index"`
	ProductionStatus            sales.ProductionStatus `gorm:"type:varchar(30);not null;default:'NOT_PRODUCED'"`
	ProductionStatusNeedsUpdate bool                   `gorm:"not null;default:false;index"`
	Lines                       []OrderLineModel       `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (CustomerOrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain CustomerOrder.
func (m *CustomerOrderModel) ToDomain() *sales.CustomerOrder {
	o := &sales.CustomerOrder{
		BaseEntity:                  m.BaseModel.ToDomain(),
		OrderNumber:                 m.OrderNumber,
		CompanyID:                   m.CompanyID,
		DispatchDate:                m.DispatchDate.UTC(),
		Status:                      m.Status,
		ProductionStatus:            m.ProductionStatus,
		ProductionStatusNeedsUpdate: m.ProductionStatusNeedsUpdate,
		Lines:                       make([]sales.OrderLine, len(m.Lines)),
	}
	for i := range m.Lines {
		o.Lines[i] = m.Lines[i].ToDomain()
	}
	return o
}

// CustomerOrderModelFromDomain creates a persistence model from a domain CustomerOrder.
func CustomerOrderModelFromDomain(o *sales.CustomerOrder) *CustomerOrderModel {
	m := &CustomerOrderModel{
		OrderNumber:                 o.OrderNumber,
		CompanyID:                   o.CompanyID,
		DispatchDate:                o.DispatchDate,
		Status:                      o.Status,
		ProductionStatus:            o.ProductionStatus,
		ProductionStatusNeedsUpdate: o.ProductionStatusNeedsUpdate,
		Lines:                       make([]OrderLineModel, len(o.Lines)),
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	for i := range o.Lines {
		m.Lines[i] = *OrderLineModelFromDomain(&o.Lines[i])
		m.Lines[i].OrderID = o.ID
	}
	return m
}

// OrderLineModel is the persistence model for OrderLine.
type OrderLineModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity           int64           `gorm:"not null;default:0"`
	PartiallyScheduled bool            `gorm:"not null;default:false"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// ToDomain converts the persistence model to a domain OrderLine.
func (m *OrderLineModel) ToDomain() sales.OrderLine {
	return sales.OrderLine{
		ID:                 m.ID,
		OrderID:            m.OrderID,
		ProductID:          m.ProductID,
		Quantity:           m.Quantity,
		PartiallyScheduled: m.PartiallyScheduled,
		UnitPrice:          m.UnitPrice,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// OrderLineModelFromDomain creates a persistence model from a domain OrderLine.
func OrderLineModelFromDomain(l *sales.OrderLine) *OrderLineModel {
	return &OrderLineModel{
		ID:                 l.ID,
		OrderID:            l.OrderID,
		ProductID:          l.ProductID,
		Quantity:           l.Quantity,
		PartiallyScheduled: l.PartiallyScheduled,
		UnitPrice:          l.UnitPrice,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}
