package scan

import (
	"context"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/shared"
)

// Repository defines the interface for scan log persistence.
// Scan logs are append-only.
type Repository interface {
	Save(ctx context.Context, log *ScanLog) error
	FindByID(ctx context.Context, id uuid.UUID) (*ScanLog, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ScanLog, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]ScanLog, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
