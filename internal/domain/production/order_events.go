package production

import (
	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProductionOrder = "ProductionOrder"

// Event type constants
const (
	EventTypeOrderCreated       = "production.order_created"
	EventTypeOrderStatusChanged = "production.order_status_changed"
)

// OrderCreatedEvent is published when a production order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID `json:"order_id"`
	OrderNo        string    `json:"order_no"`
	ProductID      uuid.UUID `json:"product_id"`
	TargetQuantity int64     `json:"target_quantity"`
	ProcessCount   int       `json:"process_count"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *ProductionOrder) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeProductionOrder, order.ID),
		OrderID:         order.ID,
		OrderNo:         order.OrderNo,
		ProductID:       order.ProductID,
		TargetQuantity:  order.TargetQuantity,
		ProcessCount:    len(order.Processes),
	}
}

// OrderStatusChangedEvent is published when a production order changes status
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID   `json:"order_id"`
	OrderNo    string      `json:"order_no"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *ProductionOrder, from, to OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeProductionOrder, order.ID),
		OrderID:         order.ID,
		OrderNo:         order.OrderNo,
		FromStatus:      from,
		ToStatus:        to,
	}
}
