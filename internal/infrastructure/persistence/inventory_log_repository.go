package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/inventory"
	"github.com/prodtrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInventoryLogRepository implements inventory.LogRepository using GORM.
// Logs are append-only.
type GormInventoryLogRepository struct {
	db *gorm.DB
}

// NewGormInventoryLogRepository creates a new GormInventoryLogRepository
func NewGormInventoryLogRepository(db *gorm.DB) *GormInventoryLogRepository {
	return &GormInventoryLogRepository{db: db}
}

// Save appends a new inventory log entry
func (r *GormInventoryLogRepository) Save(ctx context.Context, log *inventory.InventoryLog) error {
	return translateError(r.db.WithContext(ctx).Create(log).Error)
}

// FindByID finds a log entry by its ID
func (r *GormInventoryLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryLog, error) {
	var log inventory.InventoryLog
	if err := r.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// FindByInventoryItem finds log entries for an inventory item
func (r *GormInventoryLogRepository) FindByInventoryItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]inventory.InventoryLog, error) {
	var logs []inventory.InventoryLog
	query := r.db.WithContext(ctx).Model(&inventory.InventoryLog{}).
		Where("inventory_item_id = ?", itemID)
	query = applyFilter(query, filter, CommonSortFields)

	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// FindAll finds log entries matching the filter
func (r *GormInventoryLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryLog, error) {
	var logs []inventory.InventoryLog
	query := r.applyFieldFilters(r.db.WithContext(ctx).Model(&inventory.InventoryLog{}), filter)
	query = applyFilter(query, filter, CommonSortFields)

	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Count counts log entries matching the filter
func (r *GormInventoryLogRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFieldFilters(r.db.WithContext(ctx).Model(&inventory.InventoryLog{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInventoryLogRepository) applyFieldFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if itemID, ok := filter.Filters["inventory_item_id"]; ok {
		query = query.Where("inventory_item_id = ?", itemID)
	}
	if action, ok := filter.Filters["action"]; ok {
		query = query.Where("action = ?", action)
	}
	return query
}

var _ inventory.LogRepository = (*GormInventoryLogRepository)(nil)
