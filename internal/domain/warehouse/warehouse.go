package warehouse

import (
	"strings"
	"time"

	"github.com/prodtrack/backend/internal/domain/shared"
)

// Warehouse is a physical stock location. Inventory rows reference it
// and transfers move quantity between two of them.
type Warehouse struct {
	shared.BaseAggregateRoot
	Code     string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string `gorm:"type:varchar(100);not null"`
	Location string `gorm:"type:varchar(200)"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse
func NewWarehouse(code, name string) (*Warehouse, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Warehouse code is required")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Warehouse code cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Warehouse name is required")
	}

	return &Warehouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		IsActive:          true,
	}, nil
}

// Update updates the warehouse's information
func (w *Warehouse) Update(name, location string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Warehouse name is required")
	}

	w.Name = name
	w.Location = location
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// Activate marks the warehouse as active
func (w *Warehouse) Activate() {
	w.IsActive = true
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// Deactivate marks the warehouse as inactive
func (w *Warehouse) Deactivate() {
	w.IsActive = false
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}
