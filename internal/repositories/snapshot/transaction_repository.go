package snapshot

import (
	"context"
	"fmt"

	"github.com/velopix/pix_backend/internal/apperrors"
	"github.com/velopix/pix_backend/internal/core/domain"
	portsrepo "github.com/velopix/pix_backend/internal/core/ports/repositories"
)

// transactionRepository implements the transaction repository ports over the snapshot store.
type transactionRepository struct {
	stateAccess
}

var _ portsrepo.TransactionRepositoryFacade = (*transactionRepository)(nil)

func (r *transactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	var found *domain.Transaction
	err := r.view(ctx, func(st *State) error {
		for i := range st.Transactions {
			if st.Transactions[i].TransactionID == transactionID {
				txn := st.Transactions[i]
				found = &txn
				return nil
			}
		}
		return fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *transactionRepository) FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	var found *domain.Transaction
	err := r.view(ctx, func(st *State) error {
		for i := range st.Transactions {
			if st.Transactions[i].Reference == reference {
				txn := st.Transactions[i]
				found = &txn
				return nil
			}
		}
		return fmt.Errorf("transaction with reference %s: %w", reference, apperrors.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *transactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	err := r.view(ctx, func(st *State) error {
		txns = []domain.Transaction{}
		// Insertion order is creation order, so walking backwards yields newest first.
		for i := len(st.Transactions) - 1; i >= 0; i-- {
			txn := st.Transactions[i]
			if txn.SourceAccountID == accountID || txn.DestinationAccountID == accountID {
				txns = append(txns, txn)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *transactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	err := r.view(ctx, func(st *State) error {
		txns = make([]domain.Transaction, 0, len(st.Transactions))
		for i := len(st.Transactions) - 1; i >= 0; i-- {
			txns = append(txns, st.Transactions[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *transactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return r.update(ctx, func(st *State) error {
		for i := range st.Transactions {
			if st.Transactions[i].TransactionID == txn.TransactionID {
				st.Transactions[i] = txn
				return nil
			}
		}
		st.Transactions = append(st.Transactions, txn)
		return nil
	})
}
