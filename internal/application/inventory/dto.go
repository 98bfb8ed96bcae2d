package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/inventory"
)

// StockAdjustmentKind is the closed set of adjustStock variants. IN and OUT
// are relative movements; ADJUSTMENT interprets the quantity as the new
// absolute total.
type StockAdjustmentKind string

const (
	AdjustmentKindIn         StockAdjustmentKind = "IN"
	AdjustmentKindOut        StockAdjustmentKind = "OUT"
	AdjustmentKindAdjustment StockAdjustmentKind = "ADJUSTMENT"
)

// IsValid returns true if the adjustment kind is valid
func (k StockAdjustmentKind) IsValid() bool {
	switch k {
	case AdjustmentKindIn, AdjustmentKindOut, AdjustmentKindAdjustment:
		return true
	}
	return false
}

// AdjustStockRequest represents a request to move or correct stock
type AdjustStockRequest struct {
	ProductID   uuid.UUID           `json:"product_id" binding:"required"`
	WarehouseID uuid.UUID           `json:"warehouse_id" binding:"required"`
	Kind        StockAdjustmentKind `json:"kind" binding:"required,stockkind"`
	// Quantity is a positive delta for IN/OUT and a non-negative absolute
	// target for ADJUSTMENT
	Quantity int64      `json:"quantity"`
	Notes    string     `json:"notes"`
	UserID   *uuid.UUID `json:"-"`
}

// TransferStockRequest represents a request to move stock between warehouses
type TransferStockRequest struct {
	ProductID       uuid.UUID  `json:"product_id" binding:"required"`
	FromWarehouseID uuid.UUID  `json:"from_warehouse_id" binding:"required"`
	ToWarehouseID   uuid.UUID  `json:"to_warehouse_id" binding:"required"`
	Quantity        int64      `json:"quantity" binding:"required,gt=0"`
	Notes           string     `json:"notes"`
	UserID          *uuid.UUID `json:"-"`
}

// InventoryItemResponse represents an inventory item in API responses
type InventoryItemResponse struct {
	ID           uuid.UUID  `json:"id"`
	ProductID    uuid.UUID  `json:"product_id"`
	WarehouseID  uuid.UUID  `json:"warehouse_id"`
	Quantity     int64      `json:"quantity"`
	ReservedQty  int64      `json:"reserved_qty"`
	AvailableQty int64      `json:"available_qty"`
	LastStockIn  *time.Time `json:"last_stock_in,omitempty"`
	LastStockOut *time.Time `json:"last_stock_out,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Version      int        `json:"version"`
}

// StockMutationResponse reports the outcome of an adjustStock call
type StockMutationResponse struct {
	Item           InventoryItemResponse `json:"item"`
	Action         inventory.LogAction   `json:"action"`
	BeforeQuantity int64                 `json:"before_quantity"`
	AfterQuantity  int64                 `json:"after_quantity"`
	Difference     int64                 `json:"difference"`
	TransactionID  uuid.UUID             `json:"transaction_id"`
	LogID          uuid.UUID             `json:"log_id"`
}

// TransferStockResponse reports the outcome of a transferStock call
type TransferStockResponse struct {
	FromItem      InventoryItemResponse `json:"from_item"`
	ToItem        InventoryItemResponse `json:"to_item"`
	Quantity      int64                 `json:"quantity"`
	TransactionID uuid.UUID             `json:"transaction_id"`
}

// InventoryListFilter represents filter options for inventory list queries
type InventoryListFilter struct {
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	ProductID   *uuid.UUID `form:"product_id"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// InventoryLogResponse represents an inventory log entry in API responses
type InventoryLogResponse struct {
	ID              uuid.UUID           `json:"id"`
	InventoryItemID uuid.UUID           `json:"inventory_item_id"`
	Action          inventory.LogAction `json:"action"`
	Quantity        int64               `json:"quantity"`
	BeforeQuantity  int64               `json:"before_quantity"`
	AfterQuantity   int64               `json:"after_quantity"`
	UserID          *uuid.UUID          `json:"user_id,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// LogListFilter represents filter options for inventory log queries
type LogListFilter struct {
	InventoryItemID *uuid.UUID `form:"inventory_item_id"`
	Action          string     `form:"action"`
	Page            int        `form:"page" binding:"omitempty,min=1"`
	PageSize        int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// TransactionResponse represents a stock transaction in API responses
type TransactionResponse struct {
	ID              uuid.UUID                   `json:"id"`
	Type            inventory.TransactionType   `json:"type"`
	Status          inventory.TransactionStatus `json:"status"`
	ProductID       uuid.UUID                   `json:"product_id"`
	Quantity        int64                       `json:"quantity"`
	FromWarehouseID *uuid.UUID                  `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   *uuid.UUID                  `json:"to_warehouse_id,omitempty"`
	CreatedBy       *uuid.UUID                  `json:"created_by,omitempty"`
	Notes           string                      `json:"notes,omitempty"`
	CreatedAt       time.Time                   `json:"created_at"`
}

// TransactionListFilter represents filter options for transaction queries
type TransactionListFilter struct {
	Type      string     `form:"type"`
	Status    string     `form:"status"`
	ProductID *uuid.UUID `form:"product_id"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func toInventoryItemResponse(item *inventory.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:           item.ID,
		ProductID:    item.ProductID,
		WarehouseID:  item.WarehouseID,
		Quantity:     item.Quantity,
		ReservedQty:  item.ReservedQty,
		AvailableQty: item.AvailableQty,
		LastStockIn:  item.LastStockIn,
		LastStockOut: item.LastStockOut,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
		Version:      item.Version,
	}
}

func toInventoryLogResponse(log *inventory.InventoryLog) InventoryLogResponse {
	return InventoryLogResponse{
		ID:              log.ID,
		InventoryItemID: log.InventoryItemID,
		Action:          log.Action,
		Quantity:        log.Quantity,
		BeforeQuantity:  log.BeforeQuantity,
		AfterQuantity:   log.AfterQuantity,
		UserID:          log.UserID,
		Notes:           log.Notes,
		CreatedAt:       log.CreatedAt,
	}
}

func toTransactionResponse(txn *inventory.StockTransaction) TransactionResponse {
	return TransactionResponse{
		ID:              txn.ID,
		Type:            txn.Type,
		Status:          txn.Status,
		ProductID:       txn.ProductID,
		Quantity:        txn.Quantity,
		FromWarehouseID: txn.FromWarehouseID,
		ToWarehouseID:   txn.ToWarehouseID,
		CreatedBy:       txn.CreatedBy,
		Notes:           txn.Notes,
		CreatedAt:       txn.CreatedAt,
	}
}
