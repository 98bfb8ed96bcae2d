package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/shared"
)

// InventoryItem represents the stock of a specific product at a specific
// warehouse. It is the aggregate root for stock operations.
// The composite identifier is ProductID + WarehouseID; rows are created
// lazily on the first stock movement that touches the pair.
type InventoryItem struct {
	shared.BaseAggregateRoot
	ProductID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_product_warehouse,priority:1"`
	WarehouseID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_product_warehouse,priority:2"`
	Quantity     int64      `gorm:"not null;default:0"`
	ReservedQty  int64      `gorm:"not null;default:0"`
	AvailableQty int64      `gorm:"not null;default:0"`
	LastStockIn  *time.Time `gorm:""`
	LastStockOut *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// StockChange captures the before/after of a single stock movement.
// Difference is signed: positive for increases, negative for decreases.
type StockChange struct {
	Before     int64
	After      int64
	Difference int64
}

// NewInventoryItem creates a new zero-quantity inventory item for a
// product-warehouse pair
func NewInventoryItem(productID, warehouseID uuid.UUID) (*InventoryItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	return &InventoryItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		WarehouseID:       warehouseID,
		Quantity:          0,
	}, nil
}

// StockIn increases the quantity by a positive amount and stamps LastStockIn
func (i *InventoryItem) StockIn(quantity int64) (StockChange, error) {
	if quantity <= 0 {
		return StockChange{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	before := i.Quantity
	i.Quantity += quantity
	now := time.Now()
	i.LastStockIn = &now
	i.touch(now)

	change := StockChange{Before: before, After: i.Quantity, Difference: quantity}
	i.AddDomainEvent(NewStockChangedEvent(i, change))

	return change, nil
}

// StockOut decreases the quantity by a positive amount and stamps LastStockOut.
// The quantity can never go below zero.
func (i *InventoryItem) StockOut(quantity int64) (StockChange, error) {
	if quantity <= 0 {
		return StockChange{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if i.Quantity < quantity {
		return StockChange{}, shared.ErrInsufficientStock
	}

	before := i.Quantity
	i.Quantity -= quantity
	now := time.Now()
	i.LastStockOut = &now
	i.touch(now)

	change := StockChange{Before: before, After: i.Quantity, Difference: -quantity}
	i.AddDomainEvent(NewStockChangedEvent(i, change))

	return change, nil
}

// SetQuantity sets the quantity to an absolute non-negative target.
// Unlike StockIn/StockOut the argument is the new total, not a delta.
func (i *InventoryItem) SetQuantity(target int64) (StockChange, error) {
	if target < 0 {
		return StockChange{}, shared.NewDomainError("INVALID_QUANTITY", "Target quantity cannot be negative")
	}

	before := i.Quantity
	i.Quantity = target
	i.touch(time.Now())

	change := StockChange{Before: before, After: target, Difference: target - before}
	i.AddDomainEvent(NewStockChangedEvent(i, change))

	return change, nil
}

// IsBelowMinimum reports whether the current quantity is at or below the
// given minimum stock threshold
func (i *InventoryItem) IsBelowMinimum(minStock int64) bool {
	return minStock > 0 && i.Quantity <= minStock
}

func (i *InventoryItem) touch(now time.Time) {
	// AvailableQty mirrors Quantity minus reservations on every mutation
	i.AvailableQty = i.Quantity - i.ReservedQty
	i.UpdatedAt = now
	i.IncrementVersion()
}
