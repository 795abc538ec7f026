package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/velopix/pix_backend/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountWithKeys retrieves an account together with all its payment
	// keys from one consistent view of the state.
	FindAccountWithKeys(ctx context.Context, accountID string) (*domain.Account, []domain.PaymentKey, error)

	// ListAccounts retrieves all accounts in insertion order.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// ApplyBalanceChanges applies the given signed deltas to account balances.
	// It is invoked exclusively by the transaction engine's apply step.
	ApplyBalanceChanges(ctx context.Context, changes map[string]decimal.Decimal) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
