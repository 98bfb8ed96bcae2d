package scan

import (
	"context"

	"github.com/prodtrack/backend/internal/domain/inventory"
	"github.com/prodtrack/backend/internal/domain/scan"
)

// TransactionScope provides transactional access to the repositories a scan
// touches. The scan log and any stock mutation it triggers commit or roll
// back as one unit.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories scoped to the current
// transaction.
type TransactionalRepositories interface {
	// ScanRepo returns the scan log repository scoped to the current transaction
	ScanRepo() scan.Repository
	// ItemRepo returns the inventory item repository scoped to the current transaction
	ItemRepo() inventory.ItemRepository
	// LogRepo returns the inventory log repository scoped to the current transaction
	LogRepo() inventory.LogRepository
}

// NoOpTransactionScope runs the function without a real transaction (for testing).
type NoOpTransactionScope struct {
	scanRepo scan.Repository
	itemRepo inventory.ItemRepository
	logRepo  inventory.LogRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	scanRepo scan.Repository,
	itemRepo inventory.ItemRepository,
	logRepo inventory.LogRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{scanRepo: scanRepo, itemRepo: itemRepo, logRepo: logRepo}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ScanRepo returns the scan log repository.
func (s *NoOpTransactionScope) ScanRepo() scan.Repository { return s.scanRepo }

// ItemRepo returns the inventory item repository.
func (s *NoOpTransactionScope) ItemRepo() inventory.ItemRepository { return s.itemRepo }

// LogRepo returns the inventory log repository.
func (s *NoOpTransactionScope) LogRepo() inventory.LogRepository { return s.logRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
