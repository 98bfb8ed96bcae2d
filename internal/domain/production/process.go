package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/shared"
)

// ProcessStatus represents the status of a production process
type ProcessStatus string

const (
	ProcessStatusPending    ProcessStatus = "PENDING"
	ProcessStatusInProgress ProcessStatus = "IN_PROGRESS"
	ProcessStatusCompleted  ProcessStatus = "COMPLETED"
)

// IsValid returns true if the process status is valid
func (s ProcessStatus) IsValid() bool {
	switch s {
	case ProcessStatusPending, ProcessStatusInProgress, ProcessStatusCompleted:
		return true
	}
	return false
}

// ProductionProcess is one section's work on a production order. The set of
// processes is snapshotted from the active sections when the order is
// created; deactivating a section later does not touch existing processes.
// Processes may be completed in any order relative to their sequence.
type ProductionProcess struct {
	shared.BaseEntity
	OrderID     uuid.UUID     `gorm:"type:uuid;not null;index"`
	SectionID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	SectionName string        `gorm:"type:varchar(100);not null"`
	Sequence    int           `gorm:"not null;default:0"`
	Status      ProcessStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Quantity    int64         `gorm:"not null;default:0"`
	StartTime   *time.Time    `gorm:""`
	EndTime     *time.Time    `gorm:""`
	Notes       string        `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProductionProcess) TableName() string {
	return "production_processes"
}

// NewProductionProcess creates a pending process from a section snapshot
func NewProductionProcess(orderID uuid.UUID, section *ProductionSection) *ProductionProcess {
	return &ProductionProcess{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     orderID,
		SectionID:   section.ID,
		SectionName: section.Name,
		Sequence:    section.Sequence,
		Status:      ProcessStatusPending,
	}
}

// Update applies a status change with optional quantity and notes.
// IN_PROGRESS stamps StartTime on first entry; COMPLETED stamps EndTime.
func (p *ProductionProcess) Update(status ProcessStatus, quantity *int64, notes *string) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown process status")
	}
	if quantity != nil && *quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Process quantity cannot be negative")
	}

	now := time.Now()
	switch status {
	case ProcessStatusInProgress:
		if p.StartTime == nil {
			p.StartTime = &now
		}
	case ProcessStatusCompleted:
		if p.StartTime == nil {
			p.StartTime = &now
		}
		p.EndTime = &now
	}

	p.Status = status
	if quantity != nil {
		p.Quantity = *quantity
	}
	if notes != nil {
		p.Notes = *notes
	}
	p.UpdatedAt = now

	return nil
}

// ForceComplete marks the process completed as part of an order-level
// completion cascade. Already-completed processes are left untouched.
func (p *ProductionProcess) ForceComplete(targetQuantity int64, now time.Time) {
	if p.Status == ProcessStatusCompleted {
		return
	}

	if p.StartTime == nil {
		p.StartTime = &now
	}
	p.Status = ProcessStatusCompleted
	p.EndTime = &now
	p.Quantity = targetQuantity
	p.UpdatedAt = now
}
