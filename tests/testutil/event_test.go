package testutil

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEventHandler_RecordsEvents(t *testing.T) {
	handler := NewMockEventHandler("test.event")

	e := NewTestEvent("test.event")
	require.NoError(t, handler.Handle(t.Context(), e))

	assert.Equal(t, 1, handler.HandledCount())
	assert.Equal(t, e.EventID(), handler.Handled()[0].EventID())
}

func TestMockEventHandler_ReturnsConfiguredError(t *testing.T) {
	handler := NewMockEventHandler("test.event")
	handler.SetError(errors.New("boom"))

	err := handler.Handle(t.Context(), NewTestEvent("test.event"))
	require.Error(t, err)

	// Failed handling is still recorded.
	assert.Equal(t, 1, handler.HandledCount())

	handler.Reset()
	assert.Equal(t, 0, handler.HandledCount())
	require.NoError(t, handler.Handle(t.Context(), NewTestEvent("test.event")))
}

func TestWaitForEventCount(t *testing.T) {
	handler := NewMockEventHandler("test.event")

	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = handler.Handle(t.Context(), NewTestEvent("test.event"))
	}()

	assert.True(t, WaitForEventCount(t, handler, 1, time.Second))
	assert.False(t, WaitForEventCount(t, handler, 2, 50*time.Millisecond))
}
