package production

import (
	"context"

	"github.com/prodtrack/backend/internal/domain/production"
)

// TransactionScope provides transactional access to production repositories.
// Order-number allocation and order creation must share one transaction so a
// duplicate number can never be committed.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the production repositories scoped to
// the current transaction.
type TransactionalRepositories interface {
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() production.OrderRepository
	// ProcessRepo returns the process repository scoped to the current transaction
	ProcessRepo() production.ProcessRepository
	// SectionRepo returns the section repository scoped to the current transaction
	SectionRepo() production.SectionRepository
}

// NoOpTransactionScope runs the function without a real transaction (for testing).
type NoOpTransactionScope struct {
	orderRepo   production.OrderRepository
	processRepo production.ProcessRepository
	sectionRepo production.SectionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	orderRepo production.OrderRepository,
	processRepo production.ProcessRepository,
	sectionRepo production.SectionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:   orderRepo,
		processRepo: processRepo,
		sectionRepo: sectionRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() production.OrderRepository { return s.orderRepo }

// ProcessRepo returns the process repository.
func (s *NoOpTransactionScope) ProcessRepo() production.ProcessRepository { return s.processRepo }

// SectionRepo returns the section repository.
func (s *NoOpTransactionScope) SectionRepo() production.SectionRepository { return s.sectionRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
