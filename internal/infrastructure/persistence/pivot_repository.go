package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPivotRepository stores the order and order-line snapshots a production
// order has claimed
type GormPivotRepository struct {
	db *gorm.DB
}

// NewGormPivotRepository creates a new GormPivotRepository
func NewGormPivotRepository(db *gorm.DB) *GormPivotRepository {
	return &GormPivotRepository{db: db}
}

// Load reads the pivot of a production order
func (r *GormPivotRepository) Load(ctx context.Context, productionOrderID uuid.UUID) (production.Pivot, error) {
	return r.load(r.db.WithContext(ctx), productionOrderID)
}

// LoadForUpdate reads the pivot of a production order with its rows locked
func (r *GormPivotRepository) LoadForUpdate(ctx context.Context, productionOrderID uuid.UUID) (production.Pivot, error) {
	return r.load(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), productionOrderID)
}

func (r *GormPivotRepository) load(query *gorm.DB, productionOrderID uuid.UUID) (production.Pivot, error) {
	var orderRefs []models.PivotOrderRefModel
	if err := query.Session(&gorm.Session{}).
		Where("production_order_id = ?", productionOrderID).
		Order("dispatch_date, order_number").
		Find(&orderRefs).Error; err != nil {
		return production.Pivot{}, err
	}
	var lineRefs []models.PivotOrderLineRefModel
	if err := query.Session(&gorm.Session{}).
		Where("production_order_id = ?", productionOrderID).
		Order("dispatch_date, order_number, order_line_id").
		Find(&lineRefs).Error; err != nil {
		return production.Pivot{}, err
	}

	pivot := production.Pivot{
		Orders: make([]production.PivotOrderRef, len(orderRefs)),
		Lines:  make([]production.PivotOrderLineRef, len(lineRefs)),
	}
	for i := range orderRefs {
		pivot.Orders[i] = orderRefs[i].ToDomain()
	}
	for i := range lineRefs {
		pivot.Lines[i] = lineRefs[i].ToDomain()
	}
	return pivot, nil
}

// Apply writes a synchronization plan. Inserts skip rows that already exist so
// a replayed plan never duplicates a claim.
func (r *GormPivotRepository) Apply(ctx context.Context, plan production.PivotPlan) error {
	if plan.IsEmpty() {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(plan.NewOrders) > 0 {
			refs := make([]*models.PivotOrderRefModel, len(plan.NewOrders))
			for i := range plan.NewOrders {
				refs[i] = models.PivotOrderRefModelFromDomain(&plan.NewOrders[i])
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "production_order_id"}, {Name: "order_id"}},
				DoNothing: true,
			}).Create(&refs).Error; err != nil {
				return err
			}
		}
		if len(plan.NewLines) > 0 {
			refs := make([]*models.PivotOrderLineRefModel, len(plan.NewLines))
			for i := range plan.NewLines {
				refs[i] = models.PivotOrderLineRefModelFromDomain(&plan.NewLines[i])
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "production_order_id"}, {Name: "order_line_id"}},
				DoNothing: true,
			}).Create(&refs).Error; err != nil {
				return err
			}
		}
		for _, ref := range plan.RefreshedLines {
			if err := tx.Model(&models.PivotOrderLineRefModel{}).
				Where("id = ?", ref.ID).
				Updates(map[string]any{
					"quantity_covered": ref.QuantityCovered,
					"dispatch_date":    ref.DispatchDate,
					"order_number":     ref.OrderNumber,
					"product_name":     ref.ProductName,
					"product_code":     ref.ProductCode,
					"unit_price":       ref.UnitPrice,
					"total_price":      ref.TotalPrice,
					"updated_at":       ref.UpdatedAt,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SumCovered sums the quantity a production order claimed for a product on
// line refs dispatched inside w
func (r *GormPivotRepository) SumCovered(ctx context.Context, productionOrderID, productID uuid.UUID, w production.DispatchWindow) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.PivotOrderLineRefModel{}).
		Select("COALESCE(SUM(quantity_covered), 0)").
		Where("production_order_id = ? AND product_id = ?", productionOrderID, productID).
		Where("dispatch_date >= ? AND dispatch_date <= ?", w.Initial, w.Final).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// DeleteLine drops the claim of a production order on an order line
func (r *GormPivotRepository) DeleteLine(ctx context.Context, productionOrderID, orderLineID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("production_order_id = ? AND order_line_id = ?", productionOrderID, orderLineID).
		Delete(&models.PivotOrderLineRefModel{}).Error
}

// DeleteByProductionOrder removes every snapshot row of a production order
func (r *GormPivotRepository) DeleteByProductionOrder(ctx context.Context, productionOrderID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("production_order_id = ?", productionOrderID).
			Delete(&models.PivotOrderLineRefModel{}).Error; err != nil {
			return err
		}
		return tx.Where("production_order_id = ?", productionOrderID).
			Delete(&models.PivotOrderRefModel{}).Error
	})
}

var _ production.PivotRepository = (*GormPivotRepository)(nil)
