package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/velopix/pix_backend/internal/apperrors"
	"github.com/velopix/pix_backend/internal/core/domain"
	portsrepo "github.com/velopix/pix_backend/internal/core/ports/repositories"
	portssvc "github.com/velopix/pix_backend/internal/core/ports/services"
	"github.com/velopix/pix_backend/internal/dto"
	"github.com/velopix/pix_backend/internal/middleware"
)

// accountService implements the account registry operations.
type accountService struct {
	uow   portsrepo.UnitOfWork
	repos portsrepo.RepositoryProvider
}

// NewAccountService creates a new account service.
func NewAccountService(uow portsrepo.UnitOfWork, repos portsrepo.RepositoryProvider) portssvc.AccountSvcFacade {
	return &accountService{uow: uow, repos: repos}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if req.Document == "" {
		return nil, fmt.Errorf("%w: account document is required", apperrors.ErrValidation)
	}
	if req.DocumentType != domain.Personal && req.DocumentType != domain.Corporate {
		return nil, fmt.Errorf("%w: unknown document type %q", apperrors.ErrValidation, req.DocumentType)
	}
	if req.InitialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance must not be negative", apperrors.ErrValidation)
	}

	account := domain.Account{
		AccountID:    uuid.NewString(),
		Name:         req.Name,
		Document:     req.Document,
		DocumentType: req.DocumentType,
		Balance:      req.InitialBalance,
		CreatedAt:    time.Now().UTC(),
	}
	err := s.uow.Execute(ctx, func(repos portsrepo.RepositoryProvider) error {
		return repos.Accounts().SaveAccount(ctx, account)
	})
	if err != nil {
		logger.Error("Failed to save account in repository", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.repos.Accounts().FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountWithKeys retrieves an account together with its currently ACTIVE
// keys. Both come from one repository view, so a concurrent revocation can
// never be half-visible in the pair.
func (s *accountService) GetAccountWithKeys(ctx context.Context, accountID string) (*domain.Account, []domain.PaymentKey, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, keys, err := s.repos.Accounts().FindAccountWithKeys(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account with keys in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, nil, err
	}

	active := make([]domain.PaymentKey, 0, len(keys))
	for _, key := range keys {
		if key.Status == domain.KeyActive {
			active = append(active, key)
		}
	}
	return account, active, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.repos.Accounts().ListAccounts(ctx)
	if err != nil {
		logger.Error("Failed to list accounts from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	logger.Debug("Accounts listed successfully", slog.Int("count", len(accounts)))
	return accounts, nil
}
