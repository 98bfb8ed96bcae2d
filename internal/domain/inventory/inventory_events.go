package inventory

import (
	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeInventoryItem = "InventoryItem"

// Event type constants
const (
	EventTypeStockChanged      = "inventory.stock_changed"
	EventTypeStockBelowMinimum = "inventory.stock_below_minimum"
)

// StockChangedEvent is published whenever an inventory item's quantity moves
type StockChangedEvent struct {
	shared.BaseDomainEvent
	ProductID      uuid.UUID `json:"product_id"`
	WarehouseID    uuid.UUID `json:"warehouse_id"`
	BeforeQuantity int64     `json:"before_quantity"`
	AfterQuantity  int64     `json:"after_quantity"`
	Difference     int64     `json:"difference"`
}

// NewStockChangedEvent creates a new StockChangedEvent
func NewStockChangedEvent(item *InventoryItem, change StockChange) *StockChangedEvent {
	return &StockChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockChanged, AggregateTypeInventoryItem, item.ID),
		ProductID:       item.ProductID,
		WarehouseID:     item.WarehouseID,
		BeforeQuantity:  change.Before,
		AfterQuantity:   change.After,
		Difference:      change.Difference,
	}
}

// StockBelowMinimumEvent is published when a movement leaves the quantity
// at or below the product's minimum stock threshold
type StockBelowMinimumEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	MinStock    int64     `json:"min_stock"`
}

// NewStockBelowMinimumEvent creates a new StockBelowMinimumEvent
func NewStockBelowMinimumEvent(item *InventoryItem, minStock int64) *StockBelowMinimumEvent {
	return &StockBelowMinimumEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowMinimum, AggregateTypeInventoryItem, item.ID),
		ProductID:       item.ProductID,
		WarehouseID:     item.WarehouseID,
		Quantity:        item.Quantity,
		MinStock:        minStock,
	}
}
