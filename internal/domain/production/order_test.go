package production

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSections(t *testing.T) []ProductionSection {
	t.Helper()
	cutting, err := NewProductionSection("CUT", "Cutting", 1)
	require.NoError(t, err)
	assembly, err := NewProductionSection("ASM", "Assembly", 2)
	require.NoError(t, err)
	packing, err := NewProductionSection("PCK", "Packing", 3)
	require.NoError(t, err)
	return []ProductionSection{*cutting, *assembly, *packing}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     OrderStatus
		to       OrderStatus
		canTrans bool
	}{
		// From PENDING
		{OrderStatusPending, OrderStatusInProgress, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusOnHold, false},
		{OrderStatusPending, OrderStatusCompleted, false},
		// From IN_PROGRESS
		{OrderStatusInProgress, OrderStatusOnHold, true},
		{OrderStatusInProgress, OrderStatusCompleted, true},
		{OrderStatusInProgress, OrderStatusCancelled, true},
		{OrderStatusInProgress, OrderStatusPending, false},
		// From ON_HOLD
		{OrderStatusOnHold, OrderStatusInProgress, true},
		{OrderStatusOnHold, OrderStatusCancelled, true},
		{OrderStatusOnHold, OrderStatusCompleted, false},
		{OrderStatusOnHold, OrderStatusPending, false},
		// From COMPLETED (terminal)
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusInProgress, false},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		// From CANCELLED (terminal)
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusInProgress, false},
		{OrderStatusCancelled, OrderStatusCompleted, false},
	}

	for _, tt := range tests {
		got := tt.from.CanTransitionTo(tt.to)
		assert.Equal(t, tt.canTrans, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestNewProductionOrder(t *testing.T) {
	sections := testSections(t)

	order, err := NewProductionOrder("PO-20260830-0001", uuid.New(), 100, sections)
	require.NoError(t, err)

	assert.Equal(t, OrderStatusPending, order.Status)
	require.Len(t, order.Processes, 3)
	for i, process := range order.Processes {
		assert.Equal(t, order.ID, process.OrderID)
		assert.Equal(t, sections[i].ID, process.SectionID)
		assert.Equal(t, sections[i].Name, process.SectionName)
		assert.Equal(t, ProcessStatusPending, process.Status)
	}

	_, err = NewProductionOrder("", uuid.New(), 100, sections)
	assert.Error(t, err)

	_, err = NewProductionOrder("PO-20260830-0002", uuid.New(), 0, sections)
	assert.Error(t, err)
}

func TestOrderStartDateSetOnce(t *testing.T) {
	order, err := NewProductionOrder("PO-20260830-0001", uuid.New(), 100, testSections(t))
	require.NoError(t, err)

	require.NoError(t, order.TransitionTo(OrderStatusInProgress, nil))
	require.NotNil(t, order.StartDate)
	started := *order.StartDate

	require.NoError(t, order.TransitionTo(OrderStatusOnHold, nil))
	require.NoError(t, order.TransitionTo(OrderStatusInProgress, nil))
	assert.Equal(t, started, *order.StartDate, "resume must not reset start date")
}

func TestOrderCompletionCascade(t *testing.T) {
	order, err := NewProductionOrder("PO-20260830-0001", uuid.New(), 100, testSections(t))
	require.NoError(t, err)
	require.NoError(t, order.TransitionTo(OrderStatusInProgress, nil))

	// one process already completed with its own quantity
	done := int64(95)
	require.NoError(t, order.Processes[0].Update(ProcessStatusCompleted, &done, nil))
	completedAt := order.Processes[0].EndTime

	require.NoError(t, order.TransitionTo(OrderStatusCompleted, nil))

	assert.NotNil(t, order.CompletedDate)
	assert.Equal(t, int64(100), order.CompletedQuantity)

	// already-completed process untouched, open ones force-completed
	assert.Equal(t, int64(95), order.Processes[0].Quantity)
	assert.Equal(t, completedAt, order.Processes[0].EndTime)
	for _, process := range order.Processes[1:] {
		assert.Equal(t, ProcessStatusCompleted, process.Status)
		assert.Equal(t, int64(100), process.Quantity)
		assert.NotNil(t, process.EndTime)
	}
}

func TestOrderCompletionWithReportedQuantity(t *testing.T) {
	order, err := NewProductionOrder("PO-20260830-0001", uuid.New(), 100, nil)
	require.NoError(t, err)
	require.NoError(t, order.TransitionTo(OrderStatusInProgress, nil))

	reported := int64(87)
	require.NoError(t, order.TransitionTo(OrderStatusCompleted, &reported))
	assert.Equal(t, int64(87), order.CompletedQuantity)
}

func TestOrderInvalidTransition(t *testing.T) {
	order, err := NewProductionOrder("PO-20260830-0001", uuid.New(), 100, nil)
	require.NoError(t, err)

	err = order.TransitionTo(OrderStatusCompleted, nil)
	require.Error(t, err)
	assert.Equal(t, OrderStatusPending, order.Status)

	require.NoError(t, order.TransitionTo(OrderStatusCancelled, nil))
	assert.Error(t, order.TransitionTo(OrderStatusInProgress, nil))
}

func TestProcessOutOfOrderCompletion(t *testing.T) {
	order, err := NewProductionOrder("PO-20260830-0001", uuid.New(), 100, testSections(t))
	require.NoError(t, err)

	// completing a later section before an earlier one is allowed
	require.NoError(t, order.Processes[2].Update(ProcessStatusCompleted, nil, nil))
	assert.Equal(t, ProcessStatusCompleted, order.Processes[2].Status)
	assert.Equal(t, ProcessStatusPending, order.Processes[0].Status)
}

func TestProcessStartTimeSetOnce(t *testing.T) {
	section, err := NewProductionSection("CUT", "Cutting", 1)
	require.NoError(t, err)
	process := NewProductionProcess(uuid.New(), section)

	require.NoError(t, process.Update(ProcessStatusInProgress, nil, nil))
	require.NotNil(t, process.StartTime)
	started := *process.StartTime

	time.Sleep(time.Millisecond)
	require.NoError(t, process.Update(ProcessStatusInProgress, nil, nil))
	assert.Equal(t, started, *process.StartTime)
}
