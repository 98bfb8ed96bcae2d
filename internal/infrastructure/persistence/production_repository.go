package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/production"
	"github.com/prodtrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements production.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) preloadProcesses(query *gorm.DB) *gorm.DB {
	return query.Preload("Processes", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence asc")
	})
}

// FindByID finds a production order with its processes
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.ProductionOrder, error) {
	var order production.ProductionOrder
	if err := r.preloadProcesses(r.db.WithContext(ctx)).
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNo finds a production order by its order number
func (r *GormOrderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*production.ProductionOrder, error) {
	var order production.ProductionOrder
	if err := r.preloadProcesses(r.db.WithContext(ctx)).
		Where("order_no = ?", orderNo).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds production orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]production.ProductionOrder, error) {
	var orders []production.ProductionOrder
	query := r.applyFieldFilters(r.db.WithContext(ctx).Model(&production.ProductionOrder{}), filter)
	query = applyFilter(query, filter, OrderSortFields)

	if err := r.preloadProcesses(query).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds production orders with the given status
func (r *GormOrderRepository) FindByStatus(ctx context.Context, status production.OrderStatus, filter shared.Filter) ([]production.ProductionOrder, error) {
	var orders []production.ProductionOrder
	query := r.db.WithContext(ctx).
		Model(&production.ProductionOrder{}).
		Where("status = ?", status)
	query = applyFilter(query, filter, OrderSortFields)

	if err := r.preloadProcesses(query).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// MaxOrderNoForDate returns the highest order number allocated on the given
// date, or an empty string when no order exists for that date yet.
// Sequences past 9999 grow to five digits, so the sort orders by length
// before the lexicographic tiebreak.
func (r *GormOrderRepository) MaxOrderNoForDate(ctx context.Context, date time.Time) (string, error) {
	prefix := production.OrderNoPrefixForDate(date)
	var orderNo string
	err := r.db.WithContext(ctx).
		Model(&production.ProductionOrder{}).
		Where("order_no LIKE ?", prefix+"%").
		Order("length(order_no) desc, order_no desc").
		Limit(1).
		Pluck("order_no", &orderNo).Error
	if err != nil {
		return "", err
	}
	return orderNo, nil
}

// Save creates or updates a production order together with its processes
func (r *GormOrderRepository) Save(ctx context.Context, order *production.ProductionOrder) error {
	return translateError(r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(order).Error)
}

// Delete deletes a production order; its processes go with it
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).
			Delete(&production.ProductionProcess{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&production.ProductionOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts production orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFieldFilters(r.db.WithContext(ctx).Model(&production.ProductionOrder{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOrderRepository) applyFieldFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if productID, ok := filter.Filters["product_id"]; ok {
		query = query.Where("product_id = ?", productID)
	}
	if filter.Search != "" {
		query = query.Where("order_no ILIKE ?", "%"+filter.Search+"%")
	}
	return query
}

var _ production.OrderRepository = (*GormOrderRepository)(nil)

// GormProcessRepository implements production.ProcessRepository using GORM
type GormProcessRepository struct {
	db *gorm.DB
}

// NewGormProcessRepository creates a new GormProcessRepository
func NewGormProcessRepository(db *gorm.DB) *GormProcessRepository {
	return &GormProcessRepository{db: db}
}

// FindByID finds a production process by its ID
func (r *GormProcessRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.ProductionProcess, error) {
	var process production.ProductionProcess
	if err := r.db.WithContext(ctx).First(&process, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &process, nil
}

// FindByOrder finds all processes of an order ordered by sequence
func (r *GormProcessRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]production.ProductionProcess, error) {
	var processes []production.ProductionProcess
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("sequence asc").
		Find(&processes).Error; err != nil {
		return nil, err
	}
	return processes, nil
}

// Save creates or updates a production process
func (r *GormProcessRepository) Save(ctx context.Context, process *production.ProductionProcess) error {
	return translateError(r.db.WithContext(ctx).Save(process).Error)
}

// SaveBatch creates or updates multiple processes at once
func (r *GormProcessRepository) SaveBatch(ctx context.Context, processes []*production.ProductionProcess) error {
	if len(processes) == 0 {
		return nil
	}
	return translateError(r.db.WithContext(ctx).Save(&processes).Error)
}

var _ production.ProcessRepository = (*GormProcessRepository)(nil)

// GormSectionRepository implements production.SectionRepository using GORM
type GormSectionRepository struct {
	db *gorm.DB
}

// NewGormSectionRepository creates a new GormSectionRepository
func NewGormSectionRepository(db *gorm.DB) *GormSectionRepository {
	return &GormSectionRepository{db: db}
}

// FindByID finds a production section by its ID
func (r *GormSectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.ProductionSection, error) {
	var section production.ProductionSection
	if err := r.db.WithContext(ctx).First(&section, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &section, nil
}

// FindByCode finds a production section by its code
func (r *GormSectionRepository) FindByCode(ctx context.Context, code string) (*production.ProductionSection, error) {
	var section production.ProductionSection
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &section, nil
}

// FindByName finds a production section by its name
func (r *GormSectionRepository) FindByName(ctx context.Context, name string) (*production.ProductionSection, error) {
	var section production.ProductionSection
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &section, nil
}

// FindActive finds all active sections ordered by sequence
func (r *GormSectionRepository) FindActive(ctx context.Context) ([]production.ProductionSection, error) {
	var sections []production.ProductionSection
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sequence asc").
		Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// FindAll finds sections matching the filter
func (r *GormSectionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]production.ProductionSection, error) {
	var sections []production.ProductionSection
	query := applyFilter(r.db.WithContext(ctx).Model(&production.ProductionSection{}), filter, map[string]bool{
		"id":         true,
		"created_at": true,
		"name":       true,
		"sequence":   true,
	})

	if err := query.Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// Save creates or updates a production section
func (r *GormSectionRepository) Save(ctx context.Context, section *production.ProductionSection) error {
	return translateError(r.db.WithContext(ctx).Save(section).Error)
}

// Delete deletes a production section
func (r *GormSectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&production.ProductionSection{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByCode checks if a section with the given code exists
func (r *GormSectionRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&production.ProductionSection{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByName checks if a section with the given name exists
func (r *GormSectionRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&production.ProductionSection{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ production.SectionRepository = (*GormSectionRepository)(nil)
