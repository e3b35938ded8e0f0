package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/catalog"
)

// ProductionAreaModel is the persistence model for ProductionArea.
type ProductionAreaModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"type:varchar(150);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductionAreaModel) TableName() string {
	return "production_areas"
}

// ToDomain converts the persistence model to a domain ProductionArea.
func (m *ProductionAreaModel) ToDomain() catalog.ProductionArea {
	return catalog.ProductionArea{ID: m.ID, Name: m.Name}
}

// ProductionAreaModelFromDomain creates a persistence model from a domain ProductionArea.
func ProductionAreaModelFromDomain(a *catalog.ProductionArea) *ProductionAreaModel {
	now := time.Now()
	return &ProductionAreaModel{ID: a.ID, Name: a.Name, CreatedAt: now, UpdatedAt: now}
}

// ProductModel is the persistence model for the Product entity.
type ProductModel struct {
	BaseModel
	Code string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product. Areas are
// attached by the repository.
func (m *ProductModel) ToDomain(areas []catalog.ProductionArea) *catalog.Product {
	if areas == nil {
		areas = []catalog.ProductionArea{}
	}
	return &catalog.Product{
		BaseEntity:      m.BaseModel.ToDomain(),
		Code:            m.Code,
		Name:            m.Name,
		ProductionAreas: areas,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{Code: p.Code, Name: p.Name}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// ProductProductionAreaModel links products to the areas that make them.
type ProductProductionAreaModel struct {
	ProductID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductionAreaID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName returns the table name for GORM
func (ProductProductionAreaModel) TableName() string {
	return "product_production_areas"
}
