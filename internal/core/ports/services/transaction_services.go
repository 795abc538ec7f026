package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/velopix/pix_backend/internal/core/domain"
	"github.com/velopix/pix_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsForAccount retrieves transactions touching an account, newest first.
	ListTransactionsForAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)

	// ListTransactions retrieves all transactions, newest first.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines the money movement operations
type TransactionWriterSvc interface {
	// CreateTransaction records a PENDING transfer intent without touching balances.
	CreateTransaction(ctx context.Context, sourceAccountID, destinationAccountID string, amount decimal.Decimal, description string) (*domain.Transaction, error)

	// ApplyTransaction applies a PENDING transaction exactly once, transitioning
	// it to COMPLETED or FAILED.
	ApplyTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// Transfer resolves an alias and moves money to its owning account in a
	// single atomic create-and-apply step.
	Transfer(ctx context.Context, sourceAccountID string, req dto.TransferRequest) (*domain.Transaction, error)

	// RedeemPaymentRequest decodes a payment request payload and pays it.
	RedeemPaymentRequest(ctx context.Context, sourceAccountID string, encodedPayload string) (*domain.Transaction, error)

	// Refund creates and applies the inverse of a COMPLETED transaction.
	// It returns the refund and the original transaction.
	Refund(ctx context.Context, originalTransactionID string, reason string) (*domain.Transaction, *domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
