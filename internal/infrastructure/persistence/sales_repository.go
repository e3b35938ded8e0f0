package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/sales"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerOrderRepository implements sales.CustomerOrderRepository using GORM
type GormCustomerOrderRepository struct {
	db *gorm.DB
}

// NewGormCustomerOrderRepository creates a new GormCustomerOrderRepository
func NewGormCustomerOrderRepository(db *gorm.DB) *GormCustomerOrderRepository {
	return &GormCustomerOrderRepository{db: db}
}

func preloadLines(db *gorm.DB) *gorm.DB {
	return db.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at, id")
	})
}

// FindByID finds a customer order by its ID, lines included
func (r *GormCustomerOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.CustomerOrder, error) {
	var model models.CustomerOrderModel
	if err := preloadLines(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds customer orders by id, lines included
func (r *GormCustomerOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]sales.CustomerOrder, error) {
	if len(ids) == 0 {
		return []sales.CustomerOrder{}, nil
	}
	var ms []models.CustomerOrderModel
	if err := preloadLines(r.db.WithContext(ctx)).
		Where("id IN ?", ids).
		Order("dispatch_date, order_number").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toCustomerOrders(ms), nil
}

// FindEligibleByDispatchRange finds PROCESSED and PARTIALLY_SCHEDULED orders
// dispatched inside [from, to], lines included
func (r *GormCustomerOrderRepository) FindEligibleByDispatchRange(ctx context.Context, from, to time.Time) ([]sales.CustomerOrder, error) {
	var ms []models.CustomerOrderModel
	if err := preloadLines(r.db.WithContext(ctx)).
		Where("dispatch_date >= ? AND dispatch_date <= ?", from.UTC(), to.UTC()).
		Where("status IN ?", sales.EligibleStatuses()).
		Order("dispatch_date, order_number").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toCustomerOrders(ms), nil
}

func toCustomerOrders(ms []models.CustomerOrderModel) []sales.CustomerOrder {
	orders := make([]sales.CustomerOrder, len(ms))
	for i := range ms {
		orders[i] = *ms[i].ToDomain()
	}
	return orders
}

// FindLine finds an order line by its ID
func (r *GormCustomerOrderRepository) FindLine(ctx context.Context, lineID uuid.UUID) (*sales.OrderLine, error) {
	var model models.OrderLineModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", lineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	line := model.ToDomain()
	return &line, nil
}

// Save creates or updates a customer order with its lines
func (r *GormCustomerOrderRepository) Save(ctx context.Context, order *sales.CustomerOrder) error {
	model := models.CustomerOrderModelFromDomain(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}

		lineIDs := make([]uuid.UUID, len(model.Lines))
		for i := range model.Lines {
			lineIDs[i] = model.Lines[i].ID
		}
		stale := tx.Where("order_id = ?", order.ID)
		if len(lineIDs) > 0 {
			stale = stale.Where("id NOT IN ?", lineIDs)
		}
		if err := stale.Delete(&models.OrderLineModel{}).Error; err != nil {
			return err
		}

		for i := range model.Lines {
			if err := tx.Save(&model.Lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// MarkProductionStatusStale flags orders whose production status must be recomputed
func (r *GormCustomerOrderRepository) MarkProductionStatusStale(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.CustomerOrderModel{}).
		Where("id IN ?", ids).
		Update("production_status_needs_update", true).Error
}

// FindStaleProductionStatus returns up to limit flagged order ids, oldest update first
func (r *GormCustomerOrderRepository) FindStaleProductionStatus(ctx context.Context, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.CustomerOrderModel{}).
		Where("production_status_needs_update = ?", true).
		Order("updated_at, id").
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateProductionStatus stores a recomputed status and clears the stale flag
func (r *GormCustomerOrderRepository) UpdateProductionStatus(ctx context.Context, id uuid.UUID, status sales.ProductionStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.CustomerOrderModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"production_status":              status,
			"production_status_needs_update": false,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormCompanyRepository implements sales.CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by its ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *sales.Company) error {
	return r.db.WithContext(ctx).Save(models.CompanyModelFromDomain(company)).Error
}

var (
	_ sales.CustomerOrderRepository = (*GormCustomerOrderRepository)(nil)
	_ sales.CompanyRepository       = (*GormCompanyRepository)(nil)
)
