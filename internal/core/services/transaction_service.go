package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/velopix/pix_backend/internal/apperrors"
	"github.com/velopix/pix_backend/internal/core/domain"
	portsrepo "github.com/velopix/pix_backend/internal/core/ports/repositories"
	portssvc "github.com/velopix/pix_backend/internal/core/ports/services"
	"github.com/velopix/pix_backend/internal/dto"
	"github.com/velopix/pix_backend/internal/middleware"
	"github.com/velopix/pix_backend/internal/utils"
	"github.com/velopix/pix_backend/internal/utils/payload"
)

// transactionService implements the transaction engine.
//
// Every money movement runs as one unit of work: the alias resolution, the
// balance checks, the debit, the credit, the status transition and the
// snapshot write all commit together or not at all. Insufficient balance is
// not an error to the caller; it is a normal terminal outcome recorded as a
// FAILED transaction so the attempted transfer stays auditable.
type transactionService struct {
	uow   portsrepo.UnitOfWork
	repos portsrepo.RepositoryProvider
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(uow portsrepo.UnitOfWork, repos portsrepo.RepositoryProvider) portssvc.TransactionSvcFacade {
	return &transactionService{uow: uow, repos: repos}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// buildTransaction validates the transfer intent and constructs a PENDING
// transaction. No record is created and no balance is touched when validation
// fails here.
func (s *transactionService) buildTransaction(sourceAccountID, destinationAccountID string, amount decimal.Decimal, description, keyValue, originTransactionID string) (*domain.Transaction, error) {
	if sourceAccountID == "" || destinationAccountID == "" {
		return nil, fmt.Errorf("%w: source and destination accounts are required", apperrors.ErrValidation)
	}
	if sourceAccountID == destinationAccountID {
		return nil, fmt.Errorf("%w: source and destination accounts must differ", apperrors.ErrValidation)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	reference, err := utils.NewTransactionReference(now)
	if err != nil {
		return nil, err
	}
	return &domain.Transaction{
		TransactionID:        uuid.NewString(),
		Reference:            reference,
		SourceAccountID:      sourceAccountID,
		DestinationAccountID: destinationAccountID,
		Amount:               amount,
		Description:          description,
		KeyValue:             keyValue,
		OriginTransactionID:  originTransactionID,
		Status:               domain.TransactionPending,
		CreatedAt:            now,
	}, nil
}

// apply transitions a PENDING transaction to its terminal state. Both accounts
// must exist and the source must cover the amount; otherwise the transaction
// FAILs with a recorded reason and no balance changes. The debit and credit
// are applied together, so partial application is never observable.
func (s *transactionService) apply(ctx context.Context, repos portsrepo.RepositoryProvider, txn *domain.Transaction) error {
	source, err := repos.Accounts().FindAccountByID(ctx, txn.SourceAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.markFailed(txn, domain.FailureAccountNotFound)
			return nil
		}
		return err
	}
	if _, err := repos.Accounts().FindAccountByID(ctx, txn.DestinationAccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.markFailed(txn, domain.FailureAccountNotFound)
			return nil
		}
		return err
	}

	if source.Balance.LessThan(txn.Amount) {
		s.markFailed(txn, domain.FailureInsufficientBalance)
		return nil
	}

	err = repos.Accounts().ApplyBalanceChanges(ctx, map[string]decimal.Decimal{
		txn.SourceAccountID:      txn.Amount.Neg(),
		txn.DestinationAccountID: txn.Amount,
	})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	txn.Status = domain.TransactionCompleted
	txn.CompletedAt = &now
	return nil
}

func (s *transactionService) markFailed(txn *domain.Transaction, reason string) {
	txn.Status = domain.TransactionFailed
	txn.FailureReason = reason
}

// createAndApply records the transaction and applies it inside the given unit
// of work, persisting only the terminal record.
func (s *transactionService) createAndApply(ctx context.Context, repos portsrepo.RepositoryProvider, txn *domain.Transaction) error {
	if err := repos.Transactions().SaveTransaction(ctx, *txn); err != nil {
		return err
	}
	if err := s.apply(ctx, repos, txn); err != nil {
		return err
	}
	return repos.Transactions().SaveTransaction(ctx, *txn)
}

func (s *transactionService) CreateTransaction(ctx context.Context, sourceAccountID, destinationAccountID string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	txn, err := s.buildTransaction(sourceAccountID, destinationAccountID, amount, description, "", "")
	if err != nil {
		return nil, err
	}
	err = s.uow.Execute(ctx, func(repos portsrepo.RepositoryProvider) error {
		return repos.Transactions().SaveTransaction(ctx, *txn)
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ApplyTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var applied *domain.Transaction
	err := s.uow.Execute(ctx, func(repos portsrepo.RepositoryProvider) error {
		txn, err := repos.Transactions().FindTransactionByID(ctx, transactionID)
		if err != nil {
			return err
		}
		if txn.IsTerminal() {
			return fmt.Errorf("%w: transaction %s is already %s", apperrors.ErrInvalidState, transactionID, txn.Status)
		}
		if err := s.apply(ctx, repos, txn); err != nil {
			return err
		}
		if err := repos.Transactions().SaveTransaction(ctx, *txn); err != nil {
			return err
		}
		applied = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logOutcome(logger, applied)
	return applied, nil
}

func (s *transactionService) Transfer(ctx context.Context, sourceAccountID string, req dto.TransferRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var txn *domain.Transaction
	err := s.uow.Execute(ctx, func(repos portsrepo.RepositoryProvider) error {
		key, err := repos.PaymentKeys().FindActiveKeyByValue(ctx, req.KeyValue)
		if err != nil {
			return err
		}
		if key.AccountID == sourceAccountID {
			return fmt.Errorf("%w: cannot transfer to own account", apperrors.ErrValidation)
		}

		txn, err = s.buildTransaction(sourceAccountID, key.AccountID, req.Amount, req.Description, req.KeyValue, "")
		if err != nil {
			return err
		}
		return s.createAndApply(ctx, repos, txn)
	})
	if err != nil {
		return nil, err
	}

	s.logOutcome(logger, txn)
	return txn, nil
}

func (s *transactionService) RedeemPaymentRequest(ctx context.Context, sourceAccountID string, encodedPayload string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	claims, err := payload.Decode(encodedPayload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if claims.Kind == domain.RequestDynamic && claims.ExpiresAt != nil && time.Now().UTC().After(*claims.ExpiresAt) {
		return nil, fmt.Errorf("%w: payment request %s expired at %s", apperrors.ErrExpired, claims.Reference, claims.ExpiresAt.Format(time.RFC3339))
	}

	var txn *domain.Transaction
	err = s.uow.Execute(ctx, func(repos portsrepo.RepositoryProvider) error {
		key, err := repos.PaymentKeys().FindActiveKeyByValue(ctx, claims.KeyValue)
		if err != nil {
			return err
		}
		if key.AccountID == sourceAccountID {
			return fmt.Errorf("%w: cannot pay own payment request", apperrors.ErrValidation)
		}

		txn, err = s.buildTransaction(sourceAccountID, key.AccountID, claims.Amount, claims.Description, claims.KeyValue, "")
		if err != nil {
			return err
		}
		// A dynamic request is traceable to one specific redemption, so the
		// transaction carries the reference minted at issuance. Static requests
		// are redeemed repeatedly and each redemption keeps its own reference.
		// If the issued reference was already consumed by an earlier redemption,
		// the fresh reference stands; references stay globally unique.
		if claims.Kind == domain.RequestDynamic && claims.Reference != "" {
			if _, lookupErr := repos.Transactions().FindTransactionByReference(ctx, claims.Reference); lookupErr != nil {
				if !errors.Is(lookupErr, apperrors.ErrNotFound) {
					return lookupErr
				}
				txn.Reference = claims.Reference
			}
		}
		return s.createAndApply(ctx, repos, txn)
	})
	if err != nil {
		return nil, err
	}

	s.logOutcome(logger, txn)
	return txn, nil
}

// Refund creates and applies the inverse of a COMPLETED transaction: a brand
// new transaction with source and destination swapped, linked to the original.
func (s *transactionService) Refund(ctx context.Context, originalTransactionID string, reason string) (*domain.Transaction, *domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var refund, original *domain.Transaction
	err := s.uow.Execute(ctx, func(repos portsrepo.RepositoryProvider) error {
		orig, err := repos.Transactions().FindTransactionByID(ctx, originalTransactionID)
		if err != nil {
			return err
		}
		if orig.Status != domain.TransactionCompleted {
			return fmt.Errorf("%w: only COMPLETED transactions can be refunded, transaction %s is %s", apperrors.ErrInvalidState, originalTransactionID, orig.Status)
		}

		description := reason
		if description == "" {
			description = fmt.Sprintf("Refund of %s", orig.Reference)
		}
		refund, err = s.buildTransaction(orig.DestinationAccountID, orig.SourceAccountID, orig.Amount, description, "", orig.TransactionID)
		if err != nil {
			return err
		}
		if err := s.createAndApply(ctx, repos, refund); err != nil {
			return err
		}
		original = orig
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Refund processed",
		slog.String("refund_transaction_id", refund.TransactionID),
		slog.String("original_transaction_id", original.TransactionID),
		slog.String("status", string(refund.Status)),
	)
	return refund, original, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.repos.Transactions().FindTransactionByID(ctx, transactionID)
}

func (s *transactionService) ListTransactionsForAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	if _, err := s.repos.Accounts().FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.repos.Transactions().ListTransactionsByAccountID(ctx, accountID)
}

func (s *transactionService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.repos.Transactions().ListTransactions(ctx)
}

func (s *transactionService) logOutcome(logger *slog.Logger, txn *domain.Transaction) {
	attrs := []any{
		slog.String("transaction_id", txn.TransactionID),
		slog.String("reference", txn.Reference),
		slog.String("status", string(txn.Status)),
		slog.String("amount", txn.Amount.String()),
	}
	if txn.Status == domain.TransactionFailed {
		attrs = append(attrs, slog.String("failure_reason", txn.FailureReason))
		logger.Warn("Transaction failed", attrs...)
		return
	}
	logger.Info("Transaction completed", attrs...)
}
