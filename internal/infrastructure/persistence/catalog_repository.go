package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/catalog"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	areas, err := r.areasByProduct(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	return model.ToDomain(areas[id]), nil
}

// FindByIDs finds products with their production areas
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var ms []models.ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("code").Find(&ms).Error; err != nil {
		return nil, err
	}
	areas, err := r.areasByProduct(ctx, ids)
	if err != nil {
		return nil, err
	}
	products := make([]catalog.Product, len(ms))
	for i := range ms {
		products[i] = *ms[i].ToDomain(areas[ms[i].ID])
	}
	return products, nil
}

type productAreaRow struct {
	ProductID uuid.UUID
	AreaID    uuid.UUID
	AreaName  string
}

func (r *GormProductRepository) areasByProduct(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]catalog.ProductionArea, error) {
	var rows []productAreaRow
	err := r.db.WithContext(ctx).
		Table("product_production_areas AS ppa").
		Select("ppa.product_id AS product_id, pa.id AS area_id, pa.name AS area_name").
		Joins("JOIN production_areas pa ON pa.id = ppa.production_area_id").
		Where("ppa.product_id IN ?", productIDs).
		Order("pa.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[uuid.UUID][]catalog.ProductionArea)
	for _, row := range rows {
		result[row.ProductID] = append(result[row.ProductID], catalog.ProductionArea{ID: row.AreaID, Name: row.AreaName})
	}
	return result, nil
}

// Save creates or updates a product and replaces its area links
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(models.ProductModelFromDomain(product)).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductProductionAreaModel{}).Error; err != nil {
			return err
		}
		if len(product.ProductionAreas) == 0 {
			return nil
		}
		links := make([]models.ProductProductionAreaModel, len(product.ProductionAreas))
		for i, a := range product.ProductionAreas {
			links[i] = models.ProductProductionAreaModel{ProductID: product.ID, ProductionAreaID: a.ID}
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
	})
}

// GormProductionAreaRepository implements catalog.ProductionAreaRepository using GORM
type GormProductionAreaRepository struct {
	db *gorm.DB
}

// NewGormProductionAreaRepository creates a new GormProductionAreaRepository
func NewGormProductionAreaRepository(db *gorm.DB) *GormProductionAreaRepository {
	return &GormProductionAreaRepository{db: db}
}

// FindByIDs finds production areas by id, ordered by name
func (r *GormProductionAreaRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.ProductionArea, error) {
	if len(ids) == 0 {
		return []catalog.ProductionArea{}, nil
	}
	var ms []models.ProductionAreaModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name").Find(&ms).Error; err != nil {
		return nil, err
	}
	areas := make([]catalog.ProductionArea, len(ms))
	for i := range ms {
		areas[i] = ms[i].ToDomain()
	}
	return areas, nil
}

// Save creates or renames a production area
func (r *GormProductionAreaRepository) Save(ctx context.Context, area *catalog.ProductionArea) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
	}).Create(models.ProductionAreaModelFromDomain(area)).Error
}

var (
	_ catalog.ProductRepository        = (*GormProductRepository)(nil)
	_ catalog.ProductionAreaRepository = (*GormProductionAreaRepository)(nil)
)
