package snapshot

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/velopix/pix_backend/internal/apperrors"
	"github.com/velopix/pix_backend/internal/core/domain"
	portsrepo "github.com/velopix/pix_backend/internal/core/ports/repositories"
)

// accountRepository implements the account repository ports over the snapshot store.
type accountRepository struct {
	stateAccess
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	var found *domain.Account
	err := r.view(ctx, func(st *State) error {
		for i := range st.Accounts {
			if st.Accounts[i].AccountID == accountID {
				acc := st.Accounts[i]
				found = &acc
				return nil
			}
		}
		return fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// FindAccountWithKeys reads the account and its keys under a single view, so
// the pair is never split across two commits.
func (r *accountRepository) FindAccountWithKeys(ctx context.Context, accountID string) (*domain.Account, []domain.PaymentKey, error) {
	var (
		found *domain.Account
		keys  []domain.PaymentKey
	)
	err := r.view(ctx, func(st *State) error {
		for i := range st.Accounts {
			if st.Accounts[i].AccountID == accountID {
				acc := st.Accounts[i]
				found = &acc
				break
			}
		}
		if found == nil {
			return fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
		}
		keys = []domain.PaymentKey{}
		for i := range st.PaymentKeys {
			if st.PaymentKeys[i].AccountID == accountID {
				keys = append(keys, st.PaymentKeys[i])
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return found, keys, nil
}

func (r *accountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	err := r.view(ctx, func(st *State) error {
		accounts = make([]domain.Account, len(st.Accounts))
		copy(accounts, st.Accounts)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return r.update(ctx, func(st *State) error {
		for i := range st.Accounts {
			if st.Accounts[i].AccountID == account.AccountID {
				return fmt.Errorf("account %s: %w", account.AccountID, apperrors.ErrDuplicate)
			}
		}
		st.Accounts = append(st.Accounts, account)
		return nil
	})
}

func (r *accountRepository) ApplyBalanceChanges(ctx context.Context, changes map[string]decimal.Decimal) error {
	return r.update(ctx, func(st *State) error {
		for accountID, delta := range changes {
			applied := false
			for i := range st.Accounts {
				if st.Accounts[i].AccountID == accountID {
					st.Accounts[i].Balance = st.Accounts[i].Balance.Add(delta)
					applied = true
					break
				}
			}
			if !applied {
				return fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
			}
		}
		return nil
	})
}
