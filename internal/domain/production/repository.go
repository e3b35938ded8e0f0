package production

import (
	"context"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
)

// ProductionOrderRepository defines persistence operations for production orders
type ProductionOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductionOrder, error)
	// FindByIDForUpdate locks the order row until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ProductionOrder, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ProductionOrder, error)
	// FindAll supports the "status" filter key
	FindAll(ctx context.Context, filter shared.Filter) ([]ProductionOrder, int64, error)
	// FindCoverageCandidates returns non-cancelled orders created before o whose window overlaps o's
	FindCoverageCandidates(ctx context.Context, o *ProductionOrder) ([]ProductionOrder, error)
	// FindExecutedLaterSameSchedule returns EXECUTED orders created after o with
	// the same preparation datetime and dispatch window
	FindExecutedLaterSameSchedule(ctx context.Context, o *ProductionOrder) ([]ProductionOrder, error)
	// FindPendingByOrderLine returns PENDING orders whose pivot claims the line, oldest first
	FindPendingByOrderLine(ctx context.Context, orderLineID uuid.UUID) ([]ProductionOrder, error)
	// NextSequence must run inside the creating transaction
	NextSequence(ctx context.Context) (int64, error)
	Save(ctx context.Context, o *ProductionOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LineItemRepository defines persistence operations for line items
type LineItemRepository interface {
	FindByProductionOrder(ctx context.Context, productionOrderID uuid.UUID) ([]LineItem, error)
	// FindOne returns shared.ErrNotFound when the product is not in the order
	FindOne(ctx context.Context, productionOrderID, productID uuid.UUID) (*LineItem, error)
	Save(ctx context.Context, item *LineItem) error
	DeleteByProductionOrder(ctx context.Context, productionOrderID uuid.UUID) error
}

// PivotRepository defines persistence operations for pivot snapshots
type PivotRepository interface {
	Load(ctx context.Context, productionOrderID uuid.UUID) (Pivot, error)
	// LoadForUpdate locks the pivot rows of the order until the transaction ends
	LoadForUpdate(ctx context.Context, productionOrderID uuid.UUID) (Pivot, error)
	Apply(ctx context.Context, plan PivotPlan) error
	// SumCovered sums quantity_covered of a product in the order's line refs dispatched inside w
	SumCovered(ctx context.Context, productionOrderID, productID uuid.UUID, w DispatchWindow) (int64, error)
	DeleteLine(ctx context.Context, productionOrderID, orderLineID uuid.UUID) error
	DeleteByProductionOrder(ctx context.Context, productionOrderID uuid.UUID) error
}

// ReportReader runs the read-side queries of reports
type ReportReader interface {
	// LineItemRows returns line items of the given orders with product, area
	// and default warehouse stock
	LineItemRows(ctx context.Context, productionOrderIDs []uuid.UUID) ([]ReportLineItemRow, error)
	// ExcludedCompanyCoverage returns the line refs of the given orders whose
	// company is excluded from the consolidated report
	ExcludedCompanyCoverage(ctx context.Context, productionOrderIDs []uuid.UUID) ([]CompanyCoverageRow, error)
	// ProducedByLine sums quantity_covered per order line of a customer order
	// across EXECUTED production orders
	ProducedByLine(ctx context.Context, customerOrderID uuid.UUID) (map[uuid.UUID]int64, error)
}
