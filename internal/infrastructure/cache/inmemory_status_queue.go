package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemoryProductionStatusQueue is a process-local set with FIFO pops. It is
// lost on restart; the needs-update flag on the order rows covers that.
type InMemoryProductionStatusQueue struct {
	mu      sync.Mutex
	order   []uuid.UUID
	pending map[uuid.UUID]struct{}
}

// NewInMemoryProductionStatusQueue returns an empty queue
func NewInMemoryProductionStatusQueue() *InMemoryProductionStatusQueue {
	return &InMemoryProductionStatusQueue{pending: make(map[uuid.UUID]struct{})}
}

// Enqueue adds ids not already pending
func (q *InMemoryProductionStatusQueue) Enqueue(_ context.Context, ids ...uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, id := range ids {
		if _, ok := q.pending[id]; ok {
			continue
		}
		q.pending[id] = struct{}{}
		q.order = append(q.order, id)
	}
	return nil
}

// Dequeue pops up to n ids in insertion order
func (q *InMemoryProductionStatusQueue) Dequeue(_ context.Context, n int) ([]uuid.UUID, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	n = min(max(n, 0), len(q.order))
	out := make([]uuid.UUID, n)
	copy(out, q.order[:n])
	q.order = q.order[n:]
	for _, id := range out {
		delete(q.pending, id)
	}
	return out, nil
}

// Len returns the number of pending ids
func (q *InMemoryProductionStatusQueue) Len(context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.order)), nil
}
