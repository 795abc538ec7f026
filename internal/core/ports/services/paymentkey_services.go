package services

import (
	"context"

	"github.com/velopix/pix_backend/internal/core/domain"
	"github.com/velopix/pix_backend/internal/dto"
)

// PaymentKeySvcFacade defines the alias directory operations.
type PaymentKeySvcFacade interface {
	// RegisterKey creates a new ACTIVE payment key for an account.
	RegisterKey(ctx context.Context, accountID string, req dto.RegisterKeyRequest) (*domain.PaymentKey, error)

	// ResolveKey finds the ACTIVE key carrying the given value.
	ResolveKey(ctx context.Context, keyValue string) (*domain.PaymentKey, error)

	// ListKeysForAccount retrieves all keys owned by an account.
	ListKeysForAccount(ctx context.Context, accountID string) ([]domain.PaymentKey, error)

	// RevokeKey soft-deletes a key. Revoking an already DELETED key is a no-op.
	RevokeKey(ctx context.Context, keyID string) error
}
