package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/shared"
)

// ItemRepository defines the interface for inventory item persistence
type ItemRepository interface {
	// FindByID finds an inventory item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)

	// FindByProductAndWarehouse finds the item for a product-warehouse pair.
	// Returns shared.ErrNotFound when no row exists.
	FindByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (*InventoryItem, error)

	// FindByProductAndWarehouseForUpdate locks the row (SELECT ... FOR UPDATE)
	// for the duration of the surrounding transaction. Returns
	// shared.ErrNotFound when no row exists.
	FindByProductAndWarehouseForUpdate(ctx context.Context, productID, warehouseID uuid.UUID) (*InventoryItem, error)

	// GetOrCreate returns the item for a product-warehouse pair, creating a
	// zero-quantity row if none exists. In transactional use the returned row
	// is locked.
	GetOrCreate(ctx context.Context, productID, warehouseID uuid.UUID) (*InventoryItem, error)

	// FindAll finds all inventory items matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryItem, error)

	// FindByWarehouse finds all inventory items in a warehouse
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]InventoryItem, error)

	// FindByProduct finds all inventory items for a product across warehouses
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]InventoryItem, error)

	// SumQuantityByProduct returns the total quantity of a product across all
	// warehouses
	SumQuantityByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// FindBelowMinimum finds items of active products whose quantity is at or
	// below the product's minimum stock threshold (thresholds of zero are
	// ignored)
	FindBelowMinimum(ctx context.Context, filter shared.Filter) ([]InventoryItem, error)

	// Save creates or updates an inventory item
	Save(ctx context.Context, item *InventoryItem) error

	// SaveWithLock updates an item guarded by its version (optimistic lock).
	// Returns shared.ErrConcurrencyConflict when the version does not match.
	SaveWithLock(ctx context.Context, item *InventoryItem) error

	// Count counts inventory items matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// LogRepository defines the interface for inventory log persistence.
// Logs are append-only; there is no update or delete.
type LogRepository interface {
	Save(ctx context.Context, log *InventoryLog) error
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryLog, error)
	FindByInventoryItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]InventoryLog, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryLog, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// TransactionRepository defines the interface for stock transaction persistence
type TransactionRepository interface {
	Save(ctx context.Context, txn *StockTransaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*StockTransaction, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StockTransaction, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StockTransaction, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
