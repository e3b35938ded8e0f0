package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
)

// ProductionArea is a kitchen section that manufactures a subset of products
type ProductionArea struct {
	ID   uuid.UUID
	Name string
}

// Product is a manufacturable catalog item
type Product struct {
	shared.BaseEntity
	Code            string
	Name            string
	ProductionAreas []ProductionArea
}

// NewProduct creates a new product
func NewProduct(code, name string, areas ...ProductionArea) (*Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	return &Product{
		BaseEntity:      shared.NewBaseEntity(),
		Code:            code,
		Name:            name,
		ProductionAreas: areas,
	}, nil
}

// NewProductionArea creates a new production area
func NewProductionArea(name string) (*ProductionArea, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Production area name cannot be empty")
	}
	return &ProductionArea{ID: uuid.New(), Name: name}, nil
}

// AreaIDs returns the ids of the production areas the product belongs to
func (p *Product) AreaIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.ProductionAreas))
	for _, a := range p.ProductionAreas {
		ids = append(ids, a.ID)
	}
	return ids
}

// BelongsToAnyArea reports whether the product is made in at least one of
// the given areas. An empty filter matches every product.
func (p *Product) BelongsToAnyArea(areaIDs []uuid.UUID) bool {
	if len(areaIDs) == 0 {
		return true
	}
	for _, a := range p.ProductionAreas {
		for _, id := range areaIDs {
			if a.ID == id {
				return true
			}
		}
	}
	return false
}
