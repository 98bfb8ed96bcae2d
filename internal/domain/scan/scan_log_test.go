package scan

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionTypeMutatesStock(t *testing.T) {
	assert.True(t, ActionReceive.MutatesStock())
	assert.True(t, ActionIssue.MutatesStock())
	assert.True(t, ActionReturn.MutatesStock())
	assert.False(t, ActionMove.MutatesStock())
	assert.False(t, ActionInspect.MutatesStock())
	assert.False(t, ActionComplete.MutatesStock())
}

func TestActionTypeDirection(t *testing.T) {
	assert.True(t, ActionReceive.IsIncrease())
	assert.True(t, ActionReturn.IsIncrease())
	assert.False(t, ActionIssue.IsIncrease())
}

func TestNewScanLog(t *testing.T) {
	log, err := NewScanLog(uuid.New(), ActionReceive, 5, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(5), log.Quantity)

	_, err = NewScanLog(uuid.Nil, ActionReceive, 5, uuid.New())
	assert.Error(t, err)

	_, err = NewScanLog(uuid.New(), ActionType("TELEPORT"), 5, uuid.New())
	assert.Error(t, err)

	_, err = NewScanLog(uuid.New(), ActionIssue, 0, uuid.New())
	assert.Error(t, err)

	_, err = NewScanLog(uuid.New(), ActionIssue, 2, uuid.Nil)
	assert.Error(t, err)
}

func TestScanLogLocationLabel(t *testing.T) {
	log, err := NewScanLog(uuid.New(), ActionMove, 1, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, "", log.LocationLabel())

	log.LocationCode = "A-12"
	assert.Equal(t, "A-12", log.LocationLabel())

	log.LocationName = "Aisle 12"
	assert.Equal(t, "Aisle 12", log.LocationLabel())
}
