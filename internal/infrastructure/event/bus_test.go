package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/inventory"
	"github.com/prodtrack/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingHandler collects handled events
type recordingHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	failWith   error
	panics     bool
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("boom")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.failWith
}

func (h *recordingHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func newTestEvent(eventType string) shared.DomainEvent {
	e := shared.NewBaseDomainEvent(eventType, "InventoryItem", uuid.New())
	return &e
}

func TestBus_DeliversToSubscribedHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{eventTypes: []string{inventory.EventTypeStockChanged}}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newTestEvent(inventory.EventTypeStockChanged))
	require.NoError(t, err)
	assert.Equal(t, 1, handler.count())
}

func TestBus_IgnoresUnrelatedEventTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{eventTypes: []string{inventory.EventTypeStockBelowMinimum}}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newTestEvent(inventory.EventTypeStockChanged))
	require.NoError(t, err)
	assert.Zero(t, handler.count())
}

func TestBus_WildcardHandlerReceivesEverything(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(),
		newTestEvent(inventory.EventTypeStockChanged),
		newTestEvent(inventory.EventTypeStockBelowMinimum),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, handler.count())
}

func TestBus_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{
		eventTypes: []string{inventory.EventTypeStockChanged},
		failWith:   errors.New("handler broken"),
	}
	healthy := &recordingHandler{eventTypes: []string{inventory.EventTypeStockChanged}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent(inventory.EventTypeStockChanged))
	require.NoError(t, err)
	assert.Equal(t, 1, healthy.count())
}

func TestBus_HandlerPanicIsRecovered(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	panicking := &recordingHandler{
		eventTypes: []string{inventory.EventTypeStockChanged},
		panics:     true,
	}
	healthy := &recordingHandler{eventTypes: []string{inventory.EventTypeStockChanged}}
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	require.NotPanics(t, func() {
		_ = bus.Publish(context.Background(), newTestEvent(inventory.EventTypeStockChanged))
	})
	assert.Equal(t, 1, healthy.count())
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{eventTypes: []string{inventory.EventTypeStockChanged}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	err := bus.Publish(context.Background(), newTestEvent(inventory.EventTypeStockChanged))
	require.NoError(t, err)
	assert.Zero(t, handler.count())
}

func TestBus_StartStop(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Stop(ctx))
}
