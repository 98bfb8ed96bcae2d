package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/inventory"
	"github.com/prodtrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockTransactionRepository implements inventory.TransactionRepository using GORM
type GormStockTransactionRepository struct {
	db *gorm.DB
}

// NewGormStockTransactionRepository creates a new GormStockTransactionRepository
func NewGormStockTransactionRepository(db *gorm.DB) *GormStockTransactionRepository {
	return &GormStockTransactionRepository{db: db}
}

// Save creates a stock transaction record
func (r *GormStockTransactionRepository) Save(ctx context.Context, txn *inventory.StockTransaction) error {
	return translateError(r.db.WithContext(ctx).Save(txn).Error)
}

// FindByID finds a stock transaction by its ID
func (r *GormStockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockTransaction, error) {
	var txn inventory.StockTransaction
	if err := r.db.WithContext(ctx).First(&txn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

// FindByProduct finds stock transactions for a product
func (r *GormStockTransactionRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockTransaction, error) {
	var txns []inventory.StockTransaction
	query := r.db.WithContext(ctx).Model(&inventory.StockTransaction{}).
		Where("product_id = ?", productID)
	query = applyFilter(query, filter, CommonSortFields)

	if err := query.Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// FindAll finds stock transactions matching the filter
func (r *GormStockTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockTransaction, error) {
	var txns []inventory.StockTransaction
	query := r.applyFieldFilters(r.db.WithContext(ctx).Model(&inventory.StockTransaction{}), filter)
	query = applyFilter(query, filter, CommonSortFields)

	if err := query.Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// Count counts stock transactions matching the filter
func (r *GormStockTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFieldFilters(r.db.WithContext(ctx).Model(&inventory.StockTransaction{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormStockTransactionRepository) applyFieldFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if productID, ok := filter.Filters["product_id"]; ok {
		query = query.Where("product_id = ?", productID)
	}
	if txnType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", txnType)
	}
	return query
}

var _ inventory.TransactionRepository = (*GormStockTransactionRepository)(nil)
