package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDs loads products with their production areas; unknown ids are skipped
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	Save(ctx context.Context, product *Product) error
}

// ProductionAreaRepository defines persistence operations for production areas
type ProductionAreaRepository interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ProductionArea, error)
	Save(ctx context.Context, area *ProductionArea) error
}
