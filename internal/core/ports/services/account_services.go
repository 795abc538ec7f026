package services

import (
	"context"

	"github.com/velopix/pix_backend/internal/core/domain"
	"github.com/velopix/pix_backend/internal/dto"
)

// AccountReaderSvc defines read operations for accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountWithKeys retrieves an account together with its ACTIVE keys.
	GetAccountWithKeys(ctx context.Context, accountID string) (*domain.Account, []domain.PaymentKey, error)

	// ListAccounts retrieves all accounts in insertion order.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for accounts
type AccountWriterSvc interface {
	// CreateAccount registers a new account with an optional initial balance.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
}

// AccountSvcFacade combines all account service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
