package inventory

import (
	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/shared"
)

// LogAction represents the action recorded in an inventory log entry
type LogAction string

const (
	// LogActionIn is a relative stock increase
	LogActionIn LogAction = "IN"
	// LogActionOut is a relative stock decrease
	LogActionOut LogAction = "OUT"
	// LogActionAdjustment sets the quantity to an absolute target
	LogActionAdjustment LogAction = "ADJUSTMENT"
	// LogActionTransferIn is the receiving side of a warehouse transfer
	LogActionTransferIn LogAction = "TRANSFER_IN"
	// LogActionTransferOut is the sending side of a warehouse transfer
	LogActionTransferOut LogAction = "TRANSFER_OUT"
	// LogActionReceive is a scan-driven stock increase
	LogActionReceive LogAction = "RECEIVE"
	// LogActionIssue is a scan-driven stock decrease
	LogActionIssue LogAction = "ISSUE"
	// LogActionReturn is a scan-driven stock increase for returned goods
	LogActionReturn LogAction = "RETURN"
)

// String returns the string representation of LogAction
func (a LogAction) String() string {
	return string(a)
}

// IsValid returns true if the log action is valid
func (a LogAction) IsValid() bool {
	switch a {
	case LogActionIn, LogActionOut, LogActionAdjustment,
		LogActionTransferIn, LogActionTransferOut,
		LogActionReceive, LogActionIssue, LogActionReturn:
		return true
	}
	return false
}

// InventoryLog is an append-only audit record of a single stock movement.
// Every mutation of an inventory item writes exactly one log entry per
// affected row; entries are never updated or deleted.
type InventoryLog struct {
	shared.BaseEntity
	InventoryItemID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Action          LogAction  `gorm:"type:varchar(20);not null;index"`
	Quantity        int64      `gorm:"not null"`
	BeforeQuantity  int64      `gorm:"not null"`
	AfterQuantity   int64      `gorm:"not null"`
	UserID          *uuid.UUID `gorm:"type:uuid;index"`
	Notes           string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InventoryLog) TableName() string {
	return "inventory_logs"
}

// NewInventoryLog creates a log entry for a stock movement. Quantity is the
// magnitude of the movement; BeforeQuantity/AfterQuantity snapshot the row.
func NewInventoryLog(itemID uuid.UUID, action LogAction, change StockChange, userID *uuid.UUID, notes string) (*InventoryLog, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVENTORY_ITEM", "Inventory item ID cannot be empty")
	}
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Unknown inventory log action")
	}

	quantity := change.Difference
	if quantity < 0 {
		quantity = -quantity
	}

	return &InventoryLog{
		BaseEntity:      shared.NewBaseEntity(),
		InventoryItemID: itemID,
		Action:          action,
		Quantity:        quantity,
		BeforeQuantity:  change.Before,
		AfterQuantity:   change.After,
		UserID:          userID,
		Notes:           notes,
	}, nil
}
