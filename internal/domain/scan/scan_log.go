package scan

import (
	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/shared"
)

// ActionType represents what a floor scan meant
type ActionType string

const (
	// ActionReceive books scanned goods into a warehouse
	ActionReceive ActionType = "RECEIVE"
	// ActionIssue books scanned goods out of a warehouse
	ActionIssue ActionType = "ISSUE"
	// ActionReturn books returned goods back into a warehouse
	ActionReturn ActionType = "RETURN"
	// ActionMove records a location change without a stock movement
	ActionMove ActionType = "MOVE"
	// ActionInspect records a quality inspection
	ActionInspect ActionType = "INSPECT"
	// ActionComplete records a production step finishing
	ActionComplete ActionType = "COMPLETE"
)

// String returns the string representation of ActionType
func (a ActionType) String() string {
	return string(a)
}

// IsValid returns true if the action type is valid
func (a ActionType) IsValid() bool {
	switch a {
	case ActionReceive, ActionIssue, ActionReturn, ActionMove, ActionInspect, ActionComplete:
		return true
	}
	return false
}

// MutatesStock returns true for actions that move warehouse stock.
// RECEIVE and RETURN increase it, ISSUE decreases it; the rest are
// informational.
func (a ActionType) MutatesStock() bool {
	return a == ActionReceive || a == ActionIssue || a == ActionReturn
}

// IsIncrease returns true if the action increases stock
func (a ActionType) IsIncrease() bool {
	return a == ActionReceive || a == ActionReturn
}

// ScanLog is an immutable record of a barcode/QR scan on the shop floor.
// Scans are always recorded; whether a scan also moves stock depends on the
// action type and on an inventory row already existing for the pair.
type ScanLog struct {
	shared.BaseEntity
	ProductID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ActionType   ActionType `gorm:"type:varchar(20);not null;index"`
	Quantity     int64      `gorm:"not null"`
	LocationCode string     `gorm:"type:varchar(50)"`
	LocationName string     `gorm:"type:varchar(100)"`
	SectionID    *uuid.UUID `gorm:"type:uuid;index"`
	OrderID      *uuid.UUID `gorm:"type:uuid;index"`
	WarehouseID  *uuid.UUID `gorm:"type:uuid;index"`
	Latitude     *float64   `gorm:""`
	Longitude    *float64   `gorm:""`
	Notes        string     `gorm:"type:text"`
	ScannedBy    uuid.UUID  `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (ScanLog) TableName() string {
	return "scan_logs"
}

// NewScanLog creates a scan log entry
func NewScanLog(productID uuid.UUID, action ActionType, quantity int64, scannedBy uuid.UUID) (*ScanLog, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Unknown scan action type")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Scan quantity must be positive")
	}
	if scannedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Scanning user is required")
	}

	return &ScanLog{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		ActionType: action,
		Quantity:   quantity,
		ScannedBy:  scannedBy,
	}, nil
}

// LocationLabel returns the best human-readable location for notes and
// display: the name when present, otherwise the code.
func (s *ScanLog) LocationLabel() string {
	if s.LocationName != "" {
		return s.LocationName
	}
	return s.LocationCode
}
