package inventory

import (
	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/shared"
)

// TransactionType represents the type of stock transaction
type TransactionType string

const (
	// TransactionTypeIn represents stock coming into a warehouse
	TransactionTypeIn TransactionType = "IN"
	// TransactionTypeOut represents stock leaving a warehouse
	TransactionTypeOut TransactionType = "OUT"
	// TransactionTypeTransfer represents stock moving between warehouses
	TransactionTypeTransfer TransactionType = "TRANSFER"
	// TransactionTypeAdjustment represents an absolute quantity correction
	TransactionTypeAdjustment TransactionType = "ADJUSTMENT"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIn, TransactionTypeOut, TransactionTypeTransfer, TransactionTypeAdjustment:
		return true
	}
	return false
}

// TransactionStatus represents the status of a stock transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// IsValid returns true if the transaction status is valid
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusCancelled:
		return true
	}
	return false
}

// StockTransaction is the business-level record of a stock movement.
// One logical operation writes exactly one transaction: an IN carries only
// ToWarehouseID, an OUT only FromWarehouseID, a TRANSFER both, and an
// ADJUSTMENT neither. Quantity is always the movement magnitude.
type StockTransaction struct {
	shared.BaseEntity
	Type            TransactionType   `gorm:"type:varchar(20);not null;index"`
	Status          TransactionStatus `gorm:"type:varchar(20);not null;default:'COMPLETED';index"`
	ProductID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	Quantity        int64             `gorm:"not null"`
	FromWarehouseID *uuid.UUID        `gorm:"type:uuid;index"`
	ToWarehouseID   *uuid.UUID        `gorm:"type:uuid;index"`
	CreatedBy       *uuid.UUID        `gorm:"type:uuid;index"`
	Notes           string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StockTransaction) TableName() string {
	return "stock_transactions"
}

// NewInboundTransaction records stock entering toWarehouseID
func NewInboundTransaction(productID, toWarehouseID uuid.UUID, quantity int64, createdBy *uuid.UUID, notes string) (*StockTransaction, error) {
	if err := validateTransaction(productID, quantity); err != nil {
		return nil, err
	}

	return &StockTransaction{
		BaseEntity:    shared.NewBaseEntity(),
		Type:          TransactionTypeIn,
		Status:        TransactionStatusCompleted,
		ProductID:     productID,
		Quantity:      quantity,
		ToWarehouseID: &toWarehouseID,
		CreatedBy:     createdBy,
		Notes:         notes,
	}, nil
}

// NewOutboundTransaction records stock leaving fromWarehouseID
func NewOutboundTransaction(productID, fromWarehouseID uuid.UUID, quantity int64, createdBy *uuid.UUID, notes string) (*StockTransaction, error) {
	if err := validateTransaction(productID, quantity); err != nil {
		return nil, err
	}

	return &StockTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		Type:            TransactionTypeOut,
		Status:          TransactionStatusCompleted,
		ProductID:       productID,
		Quantity:        quantity,
		FromWarehouseID: &fromWarehouseID,
		CreatedBy:       createdBy,
		Notes:           notes,
	}, nil
}

// NewTransferTransaction records stock moving between two warehouses
func NewTransferTransaction(productID, fromWarehouseID, toWarehouseID uuid.UUID, quantity int64, createdBy *uuid.UUID, notes string) (*StockTransaction, error) {
	if err := validateTransaction(productID, quantity); err != nil {
		return nil, err
	}

	return &StockTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		Type:            TransactionTypeTransfer,
		Status:          TransactionStatusCompleted,
		ProductID:       productID,
		Quantity:        quantity,
		FromWarehouseID: &fromWarehouseID,
		ToWarehouseID:   &toWarehouseID,
		CreatedBy:       createdBy,
		Notes:           notes,
	}, nil
}

// NewAdjustmentTransaction records an absolute correction. Quantity is the
// magnitude of the resulting change, which may be zero when the target
// equals the current quantity.
func NewAdjustmentTransaction(productID uuid.UUID, quantity int64, createdBy *uuid.UUID, notes string) (*StockTransaction, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Transaction quantity cannot be negative")
	}

	return &StockTransaction{
		BaseEntity: shared.NewBaseEntity(),
		Type:       TransactionTypeAdjustment,
		Status:     TransactionStatusCompleted,
		ProductID:  productID,
		Quantity:   quantity,
		CreatedBy:  createdBy,
		Notes:      notes,
	}, nil
}

func validateTransaction(productID uuid.UUID, quantity int64) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Transaction quantity must be positive")
	}
	return nil
}
