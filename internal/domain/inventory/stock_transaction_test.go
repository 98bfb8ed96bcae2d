package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionWarehouseSides(t *testing.T) {
	productID := uuid.New()
	whA := uuid.New()
	whB := uuid.New()

	t.Run("inbound carries only destination", func(t *testing.T) {
		txn, err := NewInboundTransaction(productID, whA, 10, nil, "")
		require.NoError(t, err)
		assert.Equal(t, TransactionTypeIn, txn.Type)
		assert.Nil(t, txn.FromWarehouseID)
		require.NotNil(t, txn.ToWarehouseID)
		assert.Equal(t, whA, *txn.ToWarehouseID)
	})

	t.Run("outbound carries only source", func(t *testing.T) {
		txn, err := NewOutboundTransaction(productID, whA, 10, nil, "")
		require.NoError(t, err)
		assert.Equal(t, TransactionTypeOut, txn.Type)
		require.NotNil(t, txn.FromWarehouseID)
		assert.Nil(t, txn.ToWarehouseID)
	})

	t.Run("transfer carries both sides", func(t *testing.T) {
		txn, err := NewTransferTransaction(productID, whA, whB, 10, nil, "")
		require.NoError(t, err)
		assert.Equal(t, TransactionTypeTransfer, txn.Type)
		assert.Equal(t, whA, *txn.FromWarehouseID)
		assert.Equal(t, whB, *txn.ToWarehouseID)
	})

	t.Run("adjustment carries neither side", func(t *testing.T) {
		txn, err := NewAdjustmentTransaction(productID, 3, nil, "")
		require.NoError(t, err)
		assert.Equal(t, TransactionTypeAdjustment, txn.Type)
		assert.Nil(t, txn.FromWarehouseID)
		assert.Nil(t, txn.ToWarehouseID)
	})
}

func TestTransactionValidation(t *testing.T) {
	_, err := NewInboundTransaction(uuid.Nil, uuid.New(), 10, nil, "")
	assert.Error(t, err)

	_, err = NewOutboundTransaction(uuid.New(), uuid.New(), 0, nil, "")
	assert.Error(t, err)

	// adjustments may record a zero-magnitude change
	txn, err := NewAdjustmentTransaction(uuid.New(), 0, nil, "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), txn.Quantity)

	_, err = NewAdjustmentTransaction(uuid.New(), -1, nil, "")
	assert.Error(t, err)
}

func TestLogActionValidity(t *testing.T) {
	valid := []LogAction{
		LogActionIn, LogActionOut, LogActionAdjustment,
		LogActionTransferIn, LogActionTransferOut,
		LogActionReceive, LogActionIssue, LogActionReturn,
	}
	for _, action := range valid {
		assert.True(t, action.IsValid(), action)
	}
	assert.False(t, LogAction("MOVE").IsValid())
}

func TestNewInventoryLog(t *testing.T) {
	itemID := uuid.New()

	log, err := NewInventoryLog(itemID, LogActionOut, StockChange{Before: 10, After: 4, Difference: -6}, nil, "issued")
	require.NoError(t, err)
	assert.Equal(t, int64(6), log.Quantity)
	assert.Equal(t, int64(10), log.BeforeQuantity)
	assert.Equal(t, int64(4), log.AfterQuantity)

	_, err = NewInventoryLog(uuid.Nil, LogActionIn, StockChange{}, nil, "")
	assert.Error(t, err)

	_, err = NewInventoryLog(itemID, LogAction("BOGUS"), StockChange{}, nil, "")
	assert.Error(t, err)
}
