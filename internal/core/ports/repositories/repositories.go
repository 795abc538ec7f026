package repositories

import (
	"context"

	"github.com/velopix/pix_backend/internal/core/domain"
)

// StatisticsRepository derives read-only aggregates from the current state.
type StatisticsRepository interface {
	// GatherStatistics computes aggregates over a single consistent view of all
	// collections, without mutating anything.
	GatherStatistics(ctx context.Context) (*domain.Statistics, error)
}

// RepositoryProvider exposes the repositories backed by a single store.
type RepositoryProvider interface {
	Accounts() AccountRepositoryFacade
	PaymentKeys() PaymentKeyRepositoryFacade
	Transactions() TransactionRepositoryFacade
	PaymentRequests() PaymentRequestRepositoryFacade
	Statistics() StatisticsRepository
}

// UnitOfWork runs a function as a single atomic unit against the store: every
// read and write inside fn sees and mutates one isolated state, no concurrent
// mutation interleaves with it, and the state is durably persisted before
// Execute returns nil. If fn or the persist step fails, no change is visible.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(repos RepositoryProvider) error) error
}
