package persistence

import (
	"context"

	appinventory "github.com/prodtrack/backend/internal/application/inventory"
	appproduction "github.com/prodtrack/backend/internal/application/production"
	appscan "github.com/prodtrack/backend/internal/application/scan"
	"github.com/prodtrack/backend/internal/domain/inventory"
	"github.com/prodtrack/backend/internal/domain/production"
	"github.com/prodtrack/backend/internal/domain/scan"
	"gorm.io/gorm"
)

// GormInventoryTransactionScope runs inventory use cases inside a single
// database transaction. All repositories handed to the callback share the
// transaction, so stock mutation, ledger entry and transaction record commit
// or roll back together.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a transaction scope backed by the given database
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryRepositories{tx: tx})
	})
}

type gormInventoryRepositories struct {
	tx *gorm.DB
}

func (r *gormInventoryRepositories) ItemRepo() inventory.ItemRepository {
	return NewGormInventoryItemRepository(r.tx)
}

func (r *gormInventoryRepositories) LogRepo() inventory.LogRepository {
	return NewGormInventoryLogRepository(r.tx)
}

func (r *gormInventoryRepositories) TransactionRepo() inventory.TransactionRepository {
	return NewGormStockTransactionRepository(r.tx)
}

var _ appinventory.TransactionScope = (*GormInventoryTransactionScope)(nil)
var _ appinventory.TransactionalRepositories = (*gormInventoryRepositories)(nil)

// GormScanTransactionScope runs scan use cases inside a single database
// transaction. The scan log and the stock mutation it may trigger commit or
// roll back as one unit.
type GormScanTransactionScope struct {
	db *gorm.DB
}

// NewGormScanTransactionScope creates a transaction scope backed by the given database
func NewGormScanTransactionScope(db *gorm.DB) *GormScanTransactionScope {
	return &GormScanTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormScanTransactionScope) Execute(ctx context.Context, fn func(repos appscan.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormScanRepositories{tx: tx})
	})
}

type gormScanRepositories struct {
	tx *gorm.DB
}

func (r *gormScanRepositories) ScanRepo() scan.Repository {
	return NewGormScanLogRepository(r.tx)
}

func (r *gormScanRepositories) ItemRepo() inventory.ItemRepository {
	return NewGormInventoryItemRepository(r.tx)
}

func (r *gormScanRepositories) LogRepo() inventory.LogRepository {
	return NewGormInventoryLogRepository(r.tx)
}

var _ appscan.TransactionScope = (*GormScanTransactionScope)(nil)
var _ appscan.TransactionalRepositories = (*gormScanRepositories)(nil)

// GormProductionTransactionScope runs production use cases inside a single
// database transaction. Order-number allocation and the order insert share
// the transaction, so losing a number race rolls the whole create back.
type GormProductionTransactionScope struct {
	db *gorm.DB
}

// NewGormProductionTransactionScope creates a transaction scope backed by the given database
func NewGormProductionTransactionScope(db *gorm.DB) *GormProductionTransactionScope {
	return &GormProductionTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormProductionTransactionScope) Execute(ctx context.Context, fn func(repos appproduction.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormProductionRepositories{tx: tx})
	})
}

type gormProductionRepositories struct {
	tx *gorm.DB
}

func (r *gormProductionRepositories) OrderRepo() production.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormProductionRepositories) ProcessRepo() production.ProcessRepository {
	return NewGormProcessRepository(r.tx)
}

func (r *gormProductionRepositories) SectionRepo() production.SectionRepository {
	return NewGormSectionRepository(r.tx)
}

var _ appproduction.TransactionScope = (*GormProductionTransactionScope)(nil)
var _ appproduction.TransactionalRepositories = (*gormProductionRepositories)(nil)
