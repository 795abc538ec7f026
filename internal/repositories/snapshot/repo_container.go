package snapshot

import (
	"context"

	portsrepo "github.com/velopix/pix_backend/internal/core/ports/repositories"
)

// Repositories bundles the snapshot-backed repositories behind the provider
// port and implements the unit of work over the store.
type Repositories struct {
	store *Store
}

var (
	_ portsrepo.RepositoryProvider = (*Repositories)(nil)
	_ portsrepo.UnitOfWork         = (*Repositories)(nil)
)

// NewRepositories creates the repository container over a loaded store.
func NewRepositories(store *Store) *Repositories {
	return &Repositories{store: store}
}

func (r *Repositories) Accounts() portsrepo.AccountRepositoryFacade {
	return &accountRepository{stateAccess{store: r.store}}
}

func (r *Repositories) PaymentKeys() portsrepo.PaymentKeyRepositoryFacade {
	return &paymentKeyRepository{stateAccess{store: r.store}}
}

func (r *Repositories) Transactions() portsrepo.TransactionRepositoryFacade {
	return &transactionRepository{stateAccess{store: r.store}}
}

func (r *Repositories) PaymentRequests() portsrepo.PaymentRequestRepositoryFacade {
	return &paymentRequestRepository{stateAccess{store: r.store}}
}

func (r *Repositories) Statistics() portsrepo.StatisticsRepository {
	return &statisticsRepository{stateAccess{store: r.store}}
}

// Execute runs fn as a single critical section: all repositories handed to fn
// are bound to one in-flight clone of the state, and the clone is persisted
// and swapped in only if fn succeeds.
func (r *Repositories) Execute(ctx context.Context, fn func(repos portsrepo.RepositoryProvider) error) error {
	return r.store.Update(ctx, func(st *State) error {
		return fn(&stateRepositories{state: st})
	})
}

// stateRepositories is the provider handed to a unit of work: every repository
// it returns operates directly on the in-flight clone.
type stateRepositories struct {
	state *State
}

var _ portsrepo.RepositoryProvider = (*stateRepositories)(nil)

func (r *stateRepositories) Accounts() portsrepo.AccountRepositoryFacade {
	return &accountRepository{stateAccess{state: r.state}}
}

func (r *stateRepositories) PaymentKeys() portsrepo.PaymentKeyRepositoryFacade {
	return &paymentKeyRepository{stateAccess{state: r.state}}
}

func (r *stateRepositories) Transactions() portsrepo.TransactionRepositoryFacade {
	return &transactionRepository{stateAccess{state: r.state}}
}

func (r *stateRepositories) PaymentRequests() portsrepo.PaymentRequestRepositoryFacade {
	return &paymentRequestRepository{stateAccess{state: r.state}}
}

func (r *stateRepositories) Statistics() portsrepo.StatisticsRepository {
	return &statisticsRepository{stateAccess{state: r.state}}
}
