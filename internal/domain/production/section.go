package production

import (
	"time"

	"github.com/prodtrack/backend/internal/domain/shared"
)

// ProductionSection is a stage of the production line (e.g. cutting,
// assembly, packing). Sections active at order creation time become the
// order's process snapshot.
type ProductionSection struct {
	shared.BaseAggregateRoot
	Code        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	Sequence    int    `gorm:"not null;default:0"`
	IsActive    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductionSection) TableName() string {
	return "production_sections"
}

// NewProductionSection creates a new production section. Code is the stable
// short identifier used by scanners and imports; Name is the display name.
func NewProductionSection(code, name string, sequence int) (*ProductionSection, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Section code is required")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Section name is required")
	}
	if sequence < 0 {
		return nil, shared.NewDomainError("INVALID_SEQUENCE", "Section sequence cannot be negative")
	}

	return &ProductionSection{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Sequence:          sequence,
		IsActive:          true,
	}, nil
}

// Update updates the section's information
func (s *ProductionSection) Update(name, description string, sequence int) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Section name is required")
	}
	if sequence < 0 {
		return shared.NewDomainError("INVALID_SEQUENCE", "Section sequence cannot be negative")
	}

	s.Name = name
	s.Description = description
	s.Sequence = sequence
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Deactivate removes the section from future order snapshots.
// Existing orders keep their processes.
func (s *ProductionSection) Deactivate() {
	s.IsActive = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Activate makes the section part of future order snapshots
func (s *ProductionSection) Activate() {
	s.IsActive = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
