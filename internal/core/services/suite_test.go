package services_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/velopix/pix_backend/internal/core/domain"
	portssvc "github.com/velopix/pix_backend/internal/core/ports/services"
	"github.com/velopix/pix_backend/internal/core/services"
	"github.com/velopix/pix_backend/internal/dto"
	"github.com/velopix/pix_backend/internal/repositories/snapshot"
)

// testEnv wires the full service container over a throwaway snapshot store, so
// service tests exercise the same commit path as the running application.
type testEnv struct {
	store    *snapshot.Store
	services *portssvc.ServiceContainer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	store := snapshot.New(path, false, nil)
	require.NoError(t, store.Load(context.Background()))

	repos := snapshot.NewRepositories(store)
	return &testEnv{
		store:    store,
		services: services.NewServiceContainer(repos, repos),
	}
}

func (e *testEnv) createAccount(t *testing.T, name, document, balance string) *domain.Account {
	t.Helper()
	account, err := e.services.Account.CreateAccount(context.Background(), dto.CreateAccountRequest{
		Name:           name,
		Document:       document,
		DocumentType:   domain.Personal,
		InitialBalance: decimal.RequireFromString(balance),
	})
	require.NoError(t, err)
	return account
}

func (e *testEnv) registerDocumentKey(t *testing.T, account *domain.Account) *domain.PaymentKey {
	t.Helper()
	key, err := e.services.PaymentKey.RegisterKey(context.Background(), account.AccountID, dto.RegisterKeyRequest{
		KeyType:  domain.KeyDocument,
		KeyValue: account.Document,
	})
	require.NoError(t, err)
	return key
}

func (e *testEnv) balanceOf(t *testing.T, accountID string) decimal.Decimal {
	t.Helper()
	account, err := e.services.Account.GetAccountByID(context.Background(), accountID)
	require.NoError(t, err)
	return account.Balance
}
