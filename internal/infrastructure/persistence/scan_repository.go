package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/scan"
	"github.com/prodtrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormScanLogRepository implements scan.Repository using GORM
type GormScanLogRepository struct {
	db *gorm.DB
}

// NewGormScanLogRepository creates a new GormScanLogRepository
func NewGormScanLogRepository(db *gorm.DB) *GormScanLogRepository {
	return &GormScanLogRepository{db: db}
}

// Save persists a scan log entry
func (r *GormScanLogRepository) Save(ctx context.Context, log *scan.ScanLog) error {
	return translateError(r.db.WithContext(ctx).Create(log).Error)
}

// FindByID finds a scan log by its ID
func (r *GormScanLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*scan.ScanLog, error) {
	var log scan.ScanLog
	if err := r.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// FindAll finds scan logs matching the filter
func (r *GormScanLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]scan.ScanLog, error) {
	var logs []scan.ScanLog
	query := r.applyFieldFilters(r.db.WithContext(ctx).Model(&scan.ScanLog{}), filter)
	query = applyFilter(query, filter, ScanLogSortFields)

	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// FindByProduct finds scan logs for a product
func (r *GormScanLogRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]scan.ScanLog, error) {
	var logs []scan.ScanLog
	query := r.db.WithContext(ctx).
		Model(&scan.ScanLog{}).
		Where("product_id = ?", productID)
	query = applyFilter(query, filter, ScanLogSortFields)

	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Count counts scan logs matching the filter
func (r *GormScanLogRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFieldFilters(r.db.WithContext(ctx).Model(&scan.ScanLog{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormScanLogRepository) applyFieldFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if actionType, ok := filter.Filters["action_type"]; ok {
		query = query.Where("action_type = ?", actionType)
	}
	if productID, ok := filter.Filters["product_id"]; ok {
		query = query.Where("product_id = ?", productID)
	}
	if sectionID, ok := filter.Filters["section_id"]; ok {
		query = query.Where("section_id = ?", sectionID)
	}
	if orderID, ok := filter.Filters["order_id"]; ok {
		query = query.Where("order_id = ?", orderID)
	}
	if warehouseID, ok := filter.Filters["warehouse_id"]; ok {
		query = query.Where("warehouse_id = ?", warehouseID)
	}
	return query
}

var _ scan.Repository = (*GormScanLogRepository)(nil)
