package repositories

import (
	"context"
	"time"

	"github.com/velopix/pix_backend/internal/core/domain"
)

// PaymentKeyReader defines read operations for payment key data
type PaymentKeyReader interface {
	// FindKeyByID retrieves a specific payment key by its unique identifier.
	FindKeyByID(ctx context.Context, keyID string) (*domain.PaymentKey, error)

	// FindActiveKeyByValue retrieves the ACTIVE key carrying the given value,
	// regardless of key type.
	FindActiveKeyByValue(ctx context.Context, keyValue string) (*domain.PaymentKey, error)

	// FindActiveKeyByTypeAndValue retrieves the ACTIVE key matching the full
	// (type, value) pair. Used for uniqueness checks on registration.
	FindActiveKeyByTypeAndValue(ctx context.Context, keyType domain.PaymentKeyType, keyValue string) (*domain.PaymentKey, error)

	// ListKeysByAccountID retrieves all keys owned by an account, including DELETED ones.
	ListKeysByAccountID(ctx context.Context, accountID string) ([]domain.PaymentKey, error)
}

// PaymentKeyWriter defines write operations for payment key data
type PaymentKeyWriter interface {
	// SavePaymentKey persists a new payment key.
	SavePaymentKey(ctx context.Context, key domain.PaymentKey) error

	// MarkKeyDeleted transitions a key's status to DELETED.
	MarkKeyDeleted(ctx context.Context, keyID string, deletedAt time.Time) error
}

// PaymentKeyRepositoryFacade combines all payment-key-related repository interfaces
type PaymentKeyRepositoryFacade interface {
	PaymentKeyReader
	PaymentKeyWriter
}
