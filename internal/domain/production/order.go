package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/shared"
)

// OrderStatus represents the status of a production order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusOnHold     OrderStatus = "ON_HOLD"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid returns true if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusOnHold,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true if no further transitions are allowed
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo returns true if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusInProgress || target == OrderStatusCancelled
	case OrderStatusInProgress:
		return target == OrderStatusOnHold || target == OrderStatusCompleted || target == OrderStatusCancelled
	case OrderStatusOnHold:
		return target == OrderStatusInProgress || target == OrderStatusCancelled
	case OrderStatusCompleted, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// ProductionOrder is the aggregate root for a production run. It owns the
// process snapshot taken from the active sections at creation time.
type ProductionOrder struct {
	shared.BaseAggregateRoot
	OrderNo           string      `gorm:"type:varchar(30);not null;uniqueIndex"`
	ProductID         uuid.UUID   `gorm:"type:uuid;not null;index"`
	TargetQuantity    int64       `gorm:"not null"`
	CompletedQuantity int64       `gorm:"not null;default:0"`
	Status            OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	StartDate         *time.Time  `gorm:""`
	CompletedDate     *time.Time  `gorm:""`
	DueDate           *time.Time  `gorm:""`
	Notes             string      `gorm:"type:text"`
	CreatedBy         *uuid.UUID  `gorm:"type:uuid;index"`

	Processes []ProductionProcess `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductionOrder) TableName() string {
	return "production_orders"
}

// NewProductionOrder creates a pending order with one process per active
// section. The section list is the caller's snapshot of active sections
// ordered by sequence.
func NewProductionOrder(orderNo string, productID uuid.UUID, targetQuantity int64, sections []ProductionSection) (*ProductionOrder, error) {
	if orderNo == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NO", "Order number is required")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if targetQuantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Target quantity must be positive")
	}

	order := &ProductionOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNo:           orderNo,
		ProductID:         productID,
		TargetQuantity:    targetQuantity,
		Status:            OrderStatusPending,
		Processes:         make([]ProductionProcess, 0, len(sections)),
	}

	for i := range sections {
		process := NewProductionProcess(order.ID, &sections[i])
		order.Processes = append(order.Processes, *process)
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// TransitionTo moves the order to the target status, applying the side
// effects of the transition:
//   - IN_PROGRESS stamps StartDate the first time it is entered
//   - COMPLETED stamps CompletedDate, defaults CompletedQuantity to the
//     target when none was reported, and force-completes every open process
//
// Returns shared.ErrInvalidOperation (with detail) for disallowed transitions.
func (o *ProductionOrder) TransitionTo(target OrderStatus, completedQuantity *int64) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_OPERATION",
			"Cannot transition order from "+o.Status.String()+" to "+target.String())
	}
	if completedQuantity != nil && *completedQuantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Completed quantity cannot be negative")
	}

	from := o.Status
	now := time.Now()

	switch target {
	case OrderStatusInProgress:
		if o.StartDate == nil {
			o.StartDate = &now
		}
	case OrderStatusCompleted:
		o.CompletedDate = &now
		if completedQuantity != nil {
			o.CompletedQuantity = *completedQuantity
		} else if o.CompletedQuantity == 0 {
			o.CompletedQuantity = o.TargetQuantity
		}
		for i := range o.Processes {
			o.Processes[i].ForceComplete(o.TargetQuantity, now)
		}
	}

	o.Status = target
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, target))

	return nil
}

// UpdateDetails updates the mutable non-status fields of the order
func (o *ProductionOrder) UpdateDetails(targetQuantity int64, dueDate *time.Time, notes string) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_OPERATION", "Cannot update a finished order")
	}
	if targetQuantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Target quantity must be positive")
	}

	o.TargetQuantity = targetQuantity
	o.DueDate = dueDate
	o.Notes = notes
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// FindProcess returns the process with the given ID, or nil
func (o *ProductionOrder) FindProcess(processID uuid.UUID) *ProductionProcess {
	for i := range o.Processes {
		if o.Processes[i].ID == processID {
			return &o.Processes[i]
		}
	}
	return nil
}
