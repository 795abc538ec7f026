package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/velopix/pix_backend/internal/apperrors"
	"github.com/velopix/pix_backend/internal/core/domain"
	portsrepo "github.com/velopix/pix_backend/internal/core/ports/repositories"
)

// paymentKeyRepository implements the payment key repository ports over the snapshot store.
type paymentKeyRepository struct {
	stateAccess
}

var _ portsrepo.PaymentKeyRepositoryFacade = (*paymentKeyRepository)(nil)

func (r *paymentKeyRepository) FindKeyByID(ctx context.Context, keyID string) (*domain.PaymentKey, error) {
	var found *domain.PaymentKey
	err := r.view(ctx, func(st *State) error {
		for i := range st.PaymentKeys {
			if st.PaymentKeys[i].KeyID == keyID {
				key := st.PaymentKeys[i]
				found = &key
				return nil
			}
		}
		return fmt.Errorf("payment key %s: %w", keyID, apperrors.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *paymentKeyRepository) FindActiveKeyByValue(ctx context.Context, keyValue string) (*domain.PaymentKey, error) {
	var found *domain.PaymentKey
	err := r.view(ctx, func(st *State) error {
		for i := range st.PaymentKeys {
			if st.PaymentKeys[i].Status == domain.KeyActive && st.PaymentKeys[i].KeyValue == keyValue {
				key := st.PaymentKeys[i]
				found = &key
				return nil
			}
		}
		return fmt.Errorf("payment key with value %q: %w", keyValue, apperrors.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *paymentKeyRepository) FindActiveKeyByTypeAndValue(ctx context.Context, keyType domain.PaymentKeyType, keyValue string) (*domain.PaymentKey, error) {
	var found *domain.PaymentKey
	err := r.view(ctx, func(st *State) error {
		for i := range st.PaymentKeys {
			if st.PaymentKeys[i].Status == domain.KeyActive &&
				st.PaymentKeys[i].KeyType == keyType &&
				st.PaymentKeys[i].KeyValue == keyValue {
				key := st.PaymentKeys[i]
				found = &key
				return nil
			}
		}
		return fmt.Errorf("payment key %s %q: %w", keyType, keyValue, apperrors.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *paymentKeyRepository) ListKeysByAccountID(ctx context.Context, accountID string) ([]domain.PaymentKey, error) {
	var keys []domain.PaymentKey
	err := r.view(ctx, func(st *State) error {
		keys = []domain.PaymentKey{}
		for i := range st.PaymentKeys {
			if st.PaymentKeys[i].AccountID == accountID {
				keys = append(keys, st.PaymentKeys[i])
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *paymentKeyRepository) SavePaymentKey(ctx context.Context, key domain.PaymentKey) error {
	return r.update(ctx, func(st *State) error {
		for i := range st.PaymentKeys {
			if st.PaymentKeys[i].KeyID == key.KeyID {
				return fmt.Errorf("payment key %s: %w", key.KeyID, apperrors.ErrDuplicate)
			}
		}
		st.PaymentKeys = append(st.PaymentKeys, key)
		return nil
	})
}

func (r *paymentKeyRepository) MarkKeyDeleted(ctx context.Context, keyID string, deletedAt time.Time) error {
	return r.update(ctx, func(st *State) error {
		for i := range st.PaymentKeys {
			if st.PaymentKeys[i].KeyID == keyID {
				st.PaymentKeys[i].Status = domain.KeyDeleted
				st.PaymentKeys[i].DeletedAt = &deletedAt
				return nil
			}
		}
		return fmt.Errorf("payment key %s: %w", keyID, apperrors.ErrNotFound)
	})
}
