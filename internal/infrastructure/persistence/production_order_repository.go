package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductionOrderRepository implements production.ProductionOrderRepository using GORM
type GormProductionOrderRepository struct {
	db *gorm.DB
}

// NewGormProductionOrderRepository creates a new GormProductionOrderRepository
func NewGormProductionOrderRepository(db *gorm.DB) *GormProductionOrderRepository {
	return &GormProductionOrderRepository{db: db}
}

// FindByID finds a production order by its ID
func (r *GormProductionOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.ProductionOrder, error) {
	return r.findOne(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate finds a production order and locks its row until the transaction ends
func (r *GormProductionOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*production.ProductionOrder, error) {
	return r.findOne(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormProductionOrderRepository) findOne(query *gorm.DB, id uuid.UUID) (*production.ProductionOrder, error) {
	var model models.ProductionOrderModel
	if err := query.Preload("Areas").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByIDs finds production orders by id, ordered by sequence
func (r *GormProductionOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]production.ProductionOrder, error) {
	if len(ids) == 0 {
		return []production.ProductionOrder{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("id IN ?", ids).Order("sequence"))
}

// FindAll finds production orders matching the filter and the total count
func (r *GormProductionOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]production.ProductionOrder, int64, error) {
	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductionOrderModel{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, ProductionOrderSortFields, "sequence")
	query := r.applyFilter(r.db.WithContext(ctx), filter).
		Order(fmt.Sprintf("%s %s", orderBy, ValidateSortOrder(filter.OrderDir)))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orders, err := r.find(query)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *GormProductionOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		}
	}
	return query
}

// FindCoverageCandidates returns non-cancelled orders created before o whose
// dispatch window intersects o's, oldest first
func (r *GormProductionOrderRepository) FindCoverageCandidates(ctx context.Context, o *production.ProductionOrder) ([]production.ProductionOrder, error) {
	return r.find(r.db.WithContext(ctx).
		Where("id <> ? AND status <> ? AND sequence < ?", o.ID, production.StatusCancelled, o.Sequence).
		Where("initial_dispatch_date <= ? AND final_dispatch_date >= ?", o.Window.Final, o.Window.Initial).
		Order("sequence"))
}

// FindExecutedLaterSameSchedule returns EXECUTED orders created after o that
// share its preparation datetime and dispatch window
func (r *GormProductionOrderRepository) FindExecutedLaterSameSchedule(ctx context.Context, o *production.ProductionOrder) ([]production.ProductionOrder, error) {
	return r.find(r.db.WithContext(ctx).
		Where("status = ? AND sequence > ?", production.StatusExecuted, o.Sequence).
		Where("preparation_datetime = ?", models.NormalizeTimestamp(o.PreparationDatetime)).
		Where("initial_dispatch_date = ? AND final_dispatch_date = ?", o.Window.Initial, o.Window.Final).
		Order("sequence"))
}

// FindPendingByOrderLine returns PENDING orders whose pivot claims the order line, oldest first
func (r *GormProductionOrderRepository) FindPendingByOrderLine(ctx context.Context, orderLineID uuid.UUID) ([]production.ProductionOrder, error) {
	claimed := r.db.Model(&models.PivotOrderLineRefModel{}).
		Select("production_order_id").
		Where("order_line_id = ?", orderLineID)
	return r.find(r.db.WithContext(ctx).
		Where("status = ? AND id IN (?)", production.StatusPending, claimed).
		Order("sequence"))
}

func (r *GormProductionOrderRepository) find(query *gorm.DB) ([]production.ProductionOrder, error) {
	var ms []models.ProductionOrderModel
	if err := query.Preload("Areas").Find(&ms).Error; err != nil {
		return nil, err
	}
	orders := make([]production.ProductionOrder, 0, len(ms))
	for i := range ms {
		o, err := ms[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("production order %s: %w", ms[i].ID, err)
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

// NextSequence returns the next creation sequence. The unique index on
// sequence rejects a concurrent duplicate.
func (r *GormProductionOrderRepository) NextSequence(ctx context.Context) (int64, error) {
	var current int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductionOrderModel{}).
		Select("COALESCE(MAX(sequence), 0)").
		Scan(&current).Error; err != nil {
		return 0, err
	}
	return current + 1, nil
}

// Save creates or updates a production order and replaces its area scope
func (r *GormProductionOrderRepository) Save(ctx context.Context, o *production.ProductionOrder) error {
	model := models.ProductionOrderModelFromDomain(o)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("production_order_id = ?", o.ID).Delete(&models.ProductionOrderAreaModel{}).Error; err != nil {
			return err
		}
		if len(model.Areas) == 0 {
			return nil
		}
		return tx.Create(&model.Areas).Error
	})
}

// Delete removes a production order and its area scope
func (r *GormProductionOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("production_order_id = ?", id).Delete(&models.ProductionOrderAreaModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.ProductionOrderModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// GormLineItemRepository implements production.LineItemRepository using GORM
type GormLineItemRepository struct {
	db *gorm.DB
}

// NewGormLineItemRepository creates a new GormLineItemRepository
func NewGormLineItemRepository(db *gorm.DB) *GormLineItemRepository {
	return &GormLineItemRepository{db: db}
}

// FindByProductionOrder returns the line items of a production order in creation order
func (r *GormLineItemRepository) FindByProductionOrder(ctx context.Context, productionOrderID uuid.UUID) ([]production.LineItem, error) {
	var ms []models.LineItemModel
	if err := r.db.WithContext(ctx).
		Where("production_order_id = ?", productionOrderID).
		Order("created_at, product_id").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]production.LineItem, len(ms))
	for i := range ms {
		items[i] = ms[i].ToDomain()
	}
	return items, nil
}

// FindOne finds the line item of a product in a production order
func (r *GormLineItemRepository) FindOne(ctx context.Context, productionOrderID, productID uuid.UUID) (*production.LineItem, error) {
	var model models.LineItemModel
	if err := r.db.WithContext(ctx).
		Where("production_order_id = ? AND product_id = ?", productionOrderID, productID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	item := model.ToDomain()
	return &item, nil
}

// Save upserts a line item keyed by (production order, product)
func (r *GormLineItemRepository) Save(ctx context.Context, item *production.LineItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "production_order_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"ordered_quantity", "ordered_quantity_new", "quantity", "total_to_produce", "updated_at",
			}),
		}).
		Create(models.LineItemModelFromDomain(item)).Error
}

// DeleteByProductionOrder removes every line item of a production order
func (r *GormLineItemRepository) DeleteByProductionOrder(ctx context.Context, productionOrderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("production_order_id = ?", productionOrderID).
		Delete(&models.LineItemModel{}).Error
}

var (
	_ production.ProductionOrderRepository = (*GormProductionOrderRepository)(nil)
	_ production.LineItemRepository        = (*GormLineItemRepository)(nil)
)
