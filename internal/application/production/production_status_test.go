package production_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appproduction "github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/application/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/sales"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/persistence"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/testutil"
	"go.uber.org/zap"
)

type fakeQueue struct {
	mu   sync.Mutex
	ids  []uuid.UUID
	fail bool
}

func (q *fakeQueue) Enqueue(_ context.Context, ids ...uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.fail {
		return errors.New("queue down")
	}
	for _, id := range ids {
		if !q.has(id) {
			q.ids = append(q.ids, id)
		}
	}
	return nil
}

func (q *fakeQueue) Dequeue(_ context.Context, n int) ([]uuid.UUID, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.fail {
		return nil, errors.New("queue down")
	}
	n = min(n, len(q.ids))
	out := append([]uuid.UUID(nil), q.ids[:n]...)
	q.ids = q.ids[n:]
	return out, nil
}

func (q *fakeQueue) has(id uuid.UUID) bool {
	for _, existing := range q.ids {
		if existing == id {
			return true
		}
	}
	return false
}

func (q *fakeQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ids)
}

func TestProductionStatusRecompute(t *testing.T) {
	h := newHarness(t)
	queue := &fakeQueue{}
	h.publisher.handlers = append(h.publisher.handlers,
		appproduction.NewProductionStatusHandler(h.scope, queue, zap.NewNop()))
	statusService := appproduction.NewProductionStatusService(h.scope, queue, 0, zap.NewNop())
	customerOrders := persistence.NewGormRepositories(h.db).CustomerOrders()

	stew := h.fx.Product("P-001", "Cazuela")
	bread := h.fx.Product("P-002", "Marraqueta")
	h.fx.DefaultWarehouse()
	full := h.fx.Order("1001", h.company.ID, march(10), sales.OrderStatusProcessed, testutil.Line(stew.ID, 4))
	mixed := h.fx.Order("1002", h.company.ID, march(10), sales.OrderStatusProcessed,
		testutil.Line(stew.ID, 2), testutil.Line(bread.ID, 5))

	resp, err := h.svc.CreateFromOrders(h.ctx, appproduction.CreateFromOrdersRequest{
		OrderIDs:            []uuid.UUID{full.ID},
		PreparationDatetime: prepTime,
	})
	require.NoError(t, err)
	other, err := h.svc.CreateFromOrders(h.ctx, appproduction.CreateFromOrdersRequest{
		OrderIDs:            []uuid.UUID{mixed.ID},
		PreparationDatetime: prepTime,
	})
	require.NoError(t, err)

	t.Run("pending cancellation queues nothing", func(t *testing.T) {
		extra := h.fromRange(t, march(20), march(20))
		h.setStatus(t, extra.ID, production.StatusCancelled)
		assert.Zero(t, queue.len())
	})

	t.Run("execution queues and recomputes referenced orders", func(t *testing.T) {
		h.setStatus(t, resp.ID, production.StatusExecuted)
		h.setStatus(t, other.ID, production.StatusExecuted)
		assert.Equal(t, 2, queue.len())

		n, err := statusService.RecomputePending(h.ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Zero(t, queue.len())

		got, err := customerOrders.FindByID(h.ctx, full.ID)
		require.NoError(t, err)
		assert.Equal(t, sales.ProductionStatusFullyProduced, got.ProductionStatus)
		assert.False(t, got.ProductionStatusNeedsUpdate)

		got, err = customerOrders.FindByID(h.ctx, mixed.ID)
		require.NoError(t, err)
		assert.Equal(t, sales.ProductionStatusFullyProduced, got.ProductionStatus)
	})

	t.Run("flagged orders are picked up when the queue is down", func(t *testing.T) {
		queue.fail = true
		defer func() { queue.fail = false }()

		h.setStatus(t, other.ID, production.StatusCancelled)

		n, err := statusService.RecomputePending(h.ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		got, err := customerOrders.FindByID(h.ctx, mixed.ID)
		require.NoError(t, err)
		assert.Equal(t, sales.ProductionStatusNotProduced, got.ProductionStatus)

		got, err = customerOrders.FindByID(h.ctx, full.ID)
		require.NoError(t, err)
		assert.Equal(t, sales.ProductionStatusFullyProduced, got.ProductionStatus)
	})

	t.Run("deletion queues the orders the pivot referenced", func(t *testing.T) {
		require.NoError(t, h.svc.Delete(h.ctx, other.ID))
		assert.Equal(t, 1, queue.len())

		n, err := statusService.RecomputePending(h.ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("nothing to do", func(t *testing.T) {
		n, err := statusService.RecomputePending(h.ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
