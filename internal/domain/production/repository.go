package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/shared"
)

// OrderRepository defines the interface for production order persistence
type OrderRepository interface {
	// FindByID finds an order by ID with its processes preloaded ordered by
	// sequence
	FindByID(ctx context.Context, id uuid.UUID) (*ProductionOrder, error)

	// FindByOrderNo finds an order by its order number
	FindByOrderNo(ctx context.Context, orderNo string) (*ProductionOrder, error)

	// FindAll finds orders matching the filter with processes preloaded
	FindAll(ctx context.Context, filter shared.Filter) ([]ProductionOrder, error)

	// FindByStatus finds orders with the given status
	FindByStatus(ctx context.Context, status OrderStatus, filter shared.Filter) ([]ProductionOrder, error)

	// MaxOrderNoForDate returns the highest existing order number with the
	// day's prefix, or "" when none exists. Callers allocating a number must
	// invoke this inside the same transaction that saves the order.
	MaxOrderNoForDate(ctx context.Context, date time.Time) (string, error)

	// Save creates or updates an order together with its processes
	Save(ctx context.Context, order *ProductionOrder) error

	// Delete hard-deletes an order and its processes
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ProcessRepository defines the interface for production process persistence
type ProcessRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductionProcess, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]ProductionProcess, error)
	Save(ctx context.Context, process *ProductionProcess) error
	SaveBatch(ctx context.Context, processes []*ProductionProcess) error
}

// SectionRepository defines the interface for production section persistence
type SectionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductionSection, error)
	FindByCode(ctx context.Context, code string) (*ProductionSection, error)
	FindByName(ctx context.Context, name string) (*ProductionSection, error)
	// FindActive returns active sections ordered by sequence ascending
	FindActive(ctx context.Context) ([]ProductionSection, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ProductionSection, error)
	Save(ctx context.Context, section *ProductionSection) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
