package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T) *InventoryItem {
	t.Helper()
	item, err := NewInventoryItem(uuid.New(), uuid.New())
	require.NoError(t, err)
	return item
}

func TestNewInventoryItem(t *testing.T) {
	item := newTestItem(t)
	assert.Equal(t, int64(0), item.Quantity)
	assert.Nil(t, item.LastStockIn)
	assert.Nil(t, item.LastStockOut)

	_, err := NewInventoryItem(uuid.Nil, uuid.New())
	assert.Error(t, err)

	_, err = NewInventoryItem(uuid.New(), uuid.Nil)
	assert.Error(t, err)
}

func TestInventoryItemStockIn(t *testing.T) {
	item := newTestItem(t)

	change, err := item.StockIn(50)
	require.NoError(t, err)
	assert.Equal(t, StockChange{Before: 0, After: 50, Difference: 50}, change)
	assert.Equal(t, int64(50), item.Quantity)
	assert.NotNil(t, item.LastStockIn)
	assert.Nil(t, item.LastStockOut)

	_, err = item.StockIn(0)
	assert.Error(t, err)
	_, err = item.StockIn(-5)
	assert.Error(t, err)
	assert.Equal(t, int64(50), item.Quantity)
}

func TestInventoryItemStockOut(t *testing.T) {
	item := newTestItem(t)
	_, err := item.StockIn(30)
	require.NoError(t, err)

	change, err := item.StockOut(10)
	require.NoError(t, err)
	assert.Equal(t, StockChange{Before: 30, After: 20, Difference: -10}, change)
	assert.NotNil(t, item.LastStockOut)

	_, err = item.StockOut(21)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Equal(t, int64(20), item.Quantity)

	_, err = item.StockOut(0)
	assert.Error(t, err)
}

func TestInventoryItemSetQuantity(t *testing.T) {
	item := newTestItem(t)
	_, err := item.StockIn(30)
	require.NoError(t, err)

	// absolute target, not a delta
	change, err := item.SetQuantity(5)
	require.NoError(t, err)
	assert.Equal(t, StockChange{Before: 30, After: 5, Difference: -25}, change)

	change, err = item.SetQuantity(5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), change.Difference)

	_, err = item.SetQuantity(-1)
	assert.Error(t, err)
}

func TestInventoryItemEvents(t *testing.T) {
	item := newTestItem(t)
	item.ClearDomainEvents()

	_, err := item.StockIn(10)
	require.NoError(t, err)
	_, err = item.StockOut(4)
	require.NoError(t, err)

	events := item.GetDomainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, EventTypeStockChanged, events[0].EventType())

	changed, ok := events[1].(*StockChangedEvent)
	require.True(t, ok)
	assert.Equal(t, int64(-4), changed.Difference)
}

func TestInventoryItemIsBelowMinimum(t *testing.T) {
	item := newTestItem(t)
	_, err := item.StockIn(10)
	require.NoError(t, err)

	assert.True(t, item.IsBelowMinimum(10))
	assert.True(t, item.IsBelowMinimum(15))
	assert.False(t, item.IsBelowMinimum(5))
	// threshold zero means alerting is disabled
	assert.False(t, item.IsBelowMinimum(0))
}

func TestInventoryItemAvailableQtyMirrorsQuantity(t *testing.T) {
	item := newTestItem(t)

	_, err := item.StockIn(40)
	require.NoError(t, err)
	assert.Equal(t, int64(0), item.ReservedQty)
	assert.Equal(t, int64(40), item.AvailableQty)

	_, err = item.StockOut(15)
	require.NoError(t, err)
	assert.Equal(t, int64(25), item.AvailableQty)

	_, err = item.SetQuantity(60)
	require.NoError(t, err)
	assert.Equal(t, int64(60), item.AvailableQty)

	// reservations reduce what is available without touching quantity
	item.ReservedQty = 10
	_, err = item.StockIn(5)
	require.NoError(t, err)
	assert.Equal(t, int64(65), item.Quantity)
	assert.Equal(t, int64(55), item.AvailableQty)
}
