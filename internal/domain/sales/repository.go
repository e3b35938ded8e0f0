package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CustomerOrderRepository defines persistence operations for customer orders
type CustomerOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CustomerOrder, error)
	// FindByIDs loads orders with their lines; unknown ids are skipped
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]CustomerOrder, error)
	// FindEligibleByDispatchRange loads PROCESSED and PARTIALLY_SCHEDULED
	// orders dispatched inside [from, to], lines included
	FindEligibleByDispatchRange(ctx context.Context, from, to time.Time) ([]CustomerOrder, error)
	FindLine(ctx context.Context, lineID uuid.UUID) (*OrderLine, error)
	Save(ctx context.Context, order *CustomerOrder) error
	// MarkProductionStatusStale flags orders whose production status must be recomputed
	MarkProductionStatusStale(ctx context.Context, ids []uuid.UUID) error
	// FindStaleProductionStatus returns up to limit ids of flagged orders
	FindStaleProductionStatus(ctx context.Context, limit int) ([]uuid.UUID, error)
	UpdateProductionStatus(ctx context.Context, id uuid.UUID, status ProductionStatus) error
}

// CompanyRepository defines persistence operations for companies
type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	Save(ctx context.Context, company *Company) error
}
