package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/production"
	"gorm.io/gorm"
)

// GormProductionReportRepository implements production.ReportReader using GORM
type GormProductionReportRepository struct {
	db *gorm.DB
}

// NewGormProductionReportRepository creates a new GormProductionReportRepository
func NewGormProductionReportRepository(db *gorm.DB) *GormProductionReportRepository {
	return &GormProductionReportRepository{db: db}
}

// LineItemRows returns one row per line item and production area of its
// product, with the product's stock in the default warehouse
func (r *GormProductionReportRepository) LineItemRows(ctx context.Context, productionOrderIDs []uuid.UUID) ([]production.ReportLineItemRow, error) {
	type lineItemResult struct {
		ProductionOrderID  uuid.UUID
		Sequence           int64
		ProductID          uuid.UUID
		ProductCode        string
		ProductName        string
		AreaID             uuid.NullUUID
		AreaName           *string
		OrderedQuantity    int64
		OrderedQuantityNew int64
		ManualQuantity     int64
		TotalToProduce     int64
		CurrentStock       int64
	}

	if len(productionOrderIDs) == 0 {
		return []production.ReportLineItemRow{}, nil
	}

	var results []lineItemResult
	err := r.db.WithContext(ctx).
		Table("production_order_products li").
		Select(`
			li.production_order_id AS production_order_id,
			po.sequence AS sequence,
			li.product_id AS product_id,
			p.code AS product_code,
			p.name AS product_name,
			pa.id AS area_id,
			pa.name AS area_name,
			li.ordered_quantity AS ordered_quantity,
			li.ordered_quantity_new AS ordered_quantity_new,
			li.quantity AS manual_quantity,
			li.total_to_produce AS total_to_produce,
			COALESCE(s.quantity, 0) AS current_stock
		`).
		Joins("JOIN production_orders po ON po.id = li.production_order_id").
		Joins("JOIN products p ON p.id = li.product_id").
		Joins("LEFT JOIN product_production_areas ppa ON ppa.product_id = p.id").
		Joins("LEFT JOIN production_areas pa ON pa.id = ppa.production_area_id").
		Joins("LEFT JOIN warehouses w ON w.is_default = ?", true).
		Joins("LEFT JOIN inventory_stocks s ON s.product_id = p.id AND s.warehouse_id = w.id").
		Where("li.production_order_id IN ?", productionOrderIDs).
		Order("po.sequence, p.code").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	rows := make([]production.ReportLineItemRow, len(results))
	for i, res := range results {
		rows[i] = production.ReportLineItemRow{
			ProductionOrderID:  res.ProductionOrderID,
			Sequence:           res.Sequence,
			ProductID:          res.ProductID,
			ProductCode:        res.ProductCode,
			ProductName:        res.ProductName,
			AreaID:             res.AreaID,
			OrderedQuantity:    res.OrderedQuantity,
			OrderedQuantityNew: res.OrderedQuantityNew,
			ManualQuantity:     res.ManualQuantity,
			TotalToProduce:     res.TotalToProduce,
			CurrentStock:       res.CurrentStock,
		}
		if res.AreaName != nil {
			rows[i].AreaName = *res.AreaName
		}
	}
	return rows, nil
}

// ExcludedCompanyCoverage returns the line refs of the given production
// orders that belong to companies excluded from the consolidated report
func (r *GormProductionReportRepository) ExcludedCompanyCoverage(ctx context.Context, productionOrderIDs []uuid.UUID) ([]production.CompanyCoverageRow, error) {
	if len(productionOrderIDs) == 0 {
		return []production.CompanyCoverageRow{}, nil
	}

	var rows []production.CompanyCoverageRow
	err := r.db.WithContext(ctx).
		Table("production_order_order_lines l").
		Select(`
			l.production_order_id AS production_order_id,
			l.product_id AS product_id,
			l.order_id AS order_id,
			l.order_line_id AS order_line_id,
			c.id AS company_id,
			CASE WHEN c.fantasy_name IS NULL OR c.fantasy_name = '' THEN c.name ELSE c.fantasy_name END AS company_name,
			l.quantity_covered AS quantity_covered
		`).
		Joins("JOIN orders o ON o.id = l.order_id").
		Joins("JOIN companies c ON c.id = o.company_id").
		Where("c.exclude_from_consolidated_report = ?", true).
		Where("l.production_order_id IN ?", productionOrderIDs).
		Order("l.order_line_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ProducedByLine sums quantity_covered per order line of a customer order
// across EXECUTED production orders
func (r *GormProductionReportRepository) ProducedByLine(ctx context.Context, customerOrderID uuid.UUID) (map[uuid.UUID]int64, error) {
	type producedResult struct {
		OrderLineID uuid.UUID
		Produced    int64
	}

	var results []producedResult
	err := r.db.WithContext(ctx).
		Table("production_order_order_lines l").
		Select("l.order_line_id AS order_line_id, COALESCE(SUM(l.quantity_covered), 0) AS produced").
		Joins("JOIN production_orders po ON po.id = l.production_order_id").
		Where("l.order_id = ? AND po.status = ?", customerOrderID, production.StatusExecuted).
		Group("l.order_line_id").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	produced := make(map[uuid.UUID]int64, len(results))
	for _, res := range results {
		produced[res.OrderLineID] = res.Produced
	}
	return produced, nil
}

var _ production.ReportReader = (*GormProductionReportRepository)(nil)
