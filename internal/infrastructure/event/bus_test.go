package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "ProductionOrder", uuid.New())}
}

type testHandler struct {
	eventTypes []string
	err        error
	panics     bool

	mu      sync.Mutex
	handled []shared.DomainEvent
}

func (h *testHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	h.handled = append(h.handled, event)
	h.mu.Unlock()
	if h.panics {
		panic("boom")
	}
	return h.err
}

func (h *testHandler) EventTypes() []string { return h.eventTypes }

func (h *testHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	status := &testHandler{eventTypes: []string{"ProductionOrderStatusChanged"}}
	deleted := &testHandler{eventTypes: []string{"ProductionOrderDeleted"}}
	bus.Subscribe(status)
	bus.Subscribe(deleted)

	changed := newTestEvent("ProductionOrderStatusChanged")
	require.NoError(t, bus.Publish(context.Background(), changed, newTestEvent("ProductionOrderCreated")))

	assert.Equal(t, 1, status.count())
	assert.Same(t, changed, status.handled[0])
	assert.Zero(t, deleted.count())
}

func TestInMemoryEventBus_ExplicitTypesOverrideHandlerTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &testHandler{eventTypes: []string{"ProductionOrderDeleted"}}
	bus.Subscribe(h, "ProductionOrderCreated")

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("ProductionOrderDeleted"), newTestEvent("ProductionOrderCreated")))
	assert.Equal(t, 1, h.count())
}

func TestInMemoryEventBus_WildcardAndDuplicates(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	all := &testHandler{}
	bus.Subscribe(all)
	bus.Subscribe(all)

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("ProductionOrderCreated"), newTestEvent("ProductionOrderDeleted")))
	assert.Equal(t, 2, all.count())
}

func TestInMemoryEventBus_FailuresAreIsolated(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))

	failing := &testHandler{eventTypes: []string{"ProductionOrderDeleted"}, err: errors.New("queue down")}
	panicking := &testHandler{eventTypes: []string{"ProductionOrderDeleted"}, panics: true}
	healthy := &testHandler{eventTypes: []string{"ProductionOrderDeleted"}}
	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("ProductionOrderDeleted")))

	assert.Equal(t, 1, healthy.count())
	assert.Equal(t, 2, logs.FilterMessage("handler failed to process event").Len())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	typed := &testHandler{eventTypes: []string{"ProductionOrderDeleted"}}
	all := &testHandler{}
	bus.Subscribe(typed)
	bus.Subscribe(all)

	bus.Unsubscribe(typed)
	bus.Unsubscribe(all)
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("ProductionOrderDeleted")))

	assert.Zero(t, typed.count())
	assert.Zero(t, all.count())
	assert.Empty(t, bus.registry.handlers)
}

func TestInMemoryEventBus_Lifecycle(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	assert.NoError(t, bus.Start(context.Background()))
	assert.NoError(t, bus.Stop(context.Background()))
}
