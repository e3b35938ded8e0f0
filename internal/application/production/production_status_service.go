package production

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultProductionStatusBatchSize is how many customer orders one recompute run handles
const DefaultProductionStatusBatchSize = 15

// ProductionStatusQueue holds customer order ids whose production status must
// be recomputed. Enqueueing an id twice keeps a single entry.
type ProductionStatusQueue interface {
	Enqueue(ctx context.Context, customerOrderIDs ...uuid.UUID) error
	// Dequeue removes and returns up to n ids
	Dequeue(ctx context.Context, n int) ([]uuid.UUID, error)
}

// ProductionStatusService recomputes the production status stored on
// customer orders
type ProductionStatusService struct {
	scope     TransactionScope
	queue     ProductionStatusQueue
	batchSize int
	logger    *zap.Logger
}

// NewProductionStatusService creates a new ProductionStatusService. A nil
// queue falls back to the orders flagged in the database.
func NewProductionStatusService(scope TransactionScope, queue ProductionStatusQueue, batchSize int, logger *zap.Logger) *ProductionStatusService {
	if batchSize <= 0 {
		batchSize = DefaultProductionStatusBatchSize
	}
	return &ProductionStatusService{
		scope:     scope,
		queue:     queue,
		batchSize: batchSize,
		logger:    logger,
	}
}

// RecomputePending processes one batch and returns how many orders were
// updated. Queued ids go first; flagged orders fill the batch when the queue
// is empty or unreachable.
func (s *ProductionStatusService) RecomputePending(ctx context.Context) (int, error) {
	ids, err := s.nextBatch(ctx)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	processed := 0
	for _, id := range ids {
		err := s.scope.Execute(ctx, func(repos Repositories) error {
			detail, err := productionDetail(ctx, repos, id)
			if err != nil {
				return err
			}
			return repos.CustomerOrders().UpdateProductionStatus(ctx, id, detail.Status)
		})
		switch {
		case errors.Is(err, shared.ErrNotFound):
			s.logger.Debug("customer order gone before production status recompute",
				zap.String("customer_order_id", id.String()),
			)
		case err != nil:
			s.logger.Error("failed to recompute production status",
				zap.String("customer_order_id", id.String()),
				zap.Error(err),
			)
			s.requeue(ctx, id)
		default:
			processed++
		}
	}

	s.logger.Info("production status recomputed",
		zap.Int("requested", len(ids)),
		zap.Int("processed", processed),
	)
	return processed, nil
}

func (s *ProductionStatusService) nextBatch(ctx context.Context) ([]uuid.UUID, error) {
	if s.queue != nil {
		ids, err := s.queue.Dequeue(ctx, s.batchSize)
		if err == nil && len(ids) > 0 {
			return ids, nil
		}
		if err != nil {
			s.logger.Warn("production status queue unavailable, reading flagged orders", zap.Error(err))
		}
	}

	var ids []uuid.UUID
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		var err error
		ids, err = repos.CustomerOrders().FindStaleProductionStatus(ctx, s.batchSize)
		return err
	})
	return ids, err
}

func (s *ProductionStatusService) requeue(ctx context.Context, id uuid.UUID) {
	if s.queue == nil {
		return
	}
	if err := s.queue.Enqueue(ctx, id); err != nil {
		s.logger.Warn("failed to requeue customer order",
			zap.String("customer_order_id", id.String()),
			zap.Error(err),
		)
	}
}
