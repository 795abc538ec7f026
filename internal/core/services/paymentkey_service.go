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
	"github.com/velopix/pix_backend/internal/utils"
)

// randomKeyBytes sizes the generated value of RANDOM keys (32 hex characters).
const randomKeyBytes = 16

// paymentKeyService implements the alias directory operations.
type paymentKeyService struct {
	uow   portsrepo.UnitOfWork
	repos portsrepo.RepositoryProvider
}

// NewPaymentKeyService creates a new payment key service.
func NewPaymentKeyService(uow portsrepo.UnitOfWork, repos portsrepo.RepositoryProvider) portssvc.PaymentKeySvcFacade {
	return &paymentKeyService{uow: uow, repos: repos}
}

var _ portssvc.PaymentKeySvcFacade = (*paymentKeyService)(nil)

// RegisterKey creates a new ACTIVE key for an account. At most one ACTIVE key
// may exist for a given (type, value) pair; a duplicate registration fails
// without overwriting the existing key.
func (s *paymentKeyService) RegisterKey(ctx context.Context, accountID string, req dto.RegisterKeyRequest) (*domain.PaymentKey, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	keyValue := req.KeyValue
	if req.KeyType == domain.KeyRandom {
		generated, err := utils.GenerateSecureRandomString(randomKeyBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to generate random key value: %w", err)
		}
		keyValue = generated
	}
	if keyValue == "" {
		return nil, fmt.Errorf("%w: key value is required for %s keys", apperrors.ErrValidation, req.KeyType)
	}

	key := domain.PaymentKey{
		KeyID:     uuid.NewString(),
		AccountID: accountID,
		KeyType:   req.KeyType,
		KeyValue:  keyValue,
		Status:    domain.KeyActive,
		CreatedAt: time.Now().UTC(),
	}

	err := s.uow.Execute(ctx, func(repos portsrepo.RepositoryProvider) error {
		if _, err := repos.Accounts().FindAccountByID(ctx, accountID); err != nil {
			return err
		}

		existing, err := repos.PaymentKeys().FindActiveKeyByTypeAndValue(ctx, req.KeyType, keyValue)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: an active %s key with value %q already exists", apperrors.ErrDuplicate, req.KeyType, keyValue)
		}

		return repos.PaymentKeys().SavePaymentKey(ctx, key)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to register payment key", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	logger.Info("Payment key registered", slog.String("key_id", key.KeyID), slog.String("key_type", string(key.KeyType)), slog.String("account_id", accountID))
	return &key, nil
}

// ResolveKey finds the ACTIVE key carrying the given value. Lookup is on the
// value alone; the key type is informational.
func (s *paymentKeyService) ResolveKey(ctx context.Context, keyValue string) (*domain.PaymentKey, error) {
	if keyValue == "" {
		return nil, fmt.Errorf("%w: key value is required", apperrors.ErrValidation)
	}
	return s.repos.PaymentKeys().FindActiveKeyByValue(ctx, keyValue)
}

func (s *paymentKeyService) ListKeysForAccount(ctx context.Context, accountID string) ([]domain.PaymentKey, error) {
	if _, err := s.repos.Accounts().FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.repos.PaymentKeys().ListKeysByAccountID(ctx, accountID)
}

// RevokeKey transitions a key to DELETED, freeing its (type, value) pair for
// re-registration. Revoking an already DELETED key succeeds without effect;
// revoking an unknown key reports not-found.
func (s *paymentKeyService) RevokeKey(ctx context.Context, keyID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := s.uow.Execute(ctx, func(repos portsrepo.RepositoryProvider) error {
		key, err := repos.PaymentKeys().FindKeyByID(ctx, keyID)
		if err != nil {
			return err
		}
		if key.Status == domain.KeyDeleted {
			return nil
		}
		return repos.PaymentKeys().MarkKeyDeleted(ctx, keyID, time.Now().UTC())
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to revoke payment key", slog.String("error", err.Error()), slog.String("key_id", keyID))
		}
		return err
	}

	logger.Info("Payment key revoked", slog.String("key_id", keyID))
	return nil
}
