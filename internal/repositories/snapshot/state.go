package snapshot

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/velopix/pix_backend/internal/core/domain"
	"github.com/velopix/pix_backend/internal/utils"
	"github.com/velopix/pix_backend/internal/utils/payload"
)

// State is the full persisted state of the engine: one flat document with four
// top-level collections, loaded wholesale at startup and rewritten wholesale
// after every mutation. Slices keep insertion order.
type State struct {
	Accounts        []domain.Account        `json:"accounts"`
	PaymentKeys     []domain.PaymentKey     `json:"keys"`
	Transactions    []domain.Transaction    `json:"transactions"`
	PaymentRequests []domain.PaymentRequest `json:"requests"`
}

func newEmptyState() *State {
	return &State{
		Accounts:        []domain.Account{},
		PaymentKeys:     []domain.PaymentKey{},
		Transactions:    []domain.Transaction{},
		PaymentRequests: []domain.PaymentRequest{},
	}
}

// normalize replaces nil collections with empty ones after unmarshalling.
func (s *State) normalize() {
	if s.Accounts == nil {
		s.Accounts = []domain.Account{}
	}
	if s.PaymentKeys == nil {
		s.PaymentKeys = []domain.PaymentKey{}
	}
	if s.Transactions == nil {
		s.Transactions = []domain.Transaction{}
	}
	if s.PaymentRequests == nil {
		s.PaymentRequests = []domain.PaymentRequest{}
	}
}

// clone returns an independent snapshot of the state. Records are value types
// whose fields are replaced rather than mutated in place (decimals and pointer
// timestamps are reassigned, never written through), so copying the slices is
// sufficient isolation for the clone-mutate-swap commit.
func (s *State) clone() *State {
	next := &State{
		Accounts:        make([]domain.Account, len(s.Accounts)),
		PaymentKeys:     make([]domain.PaymentKey, len(s.PaymentKeys)),
		Transactions:    make([]domain.Transaction, len(s.Transactions)),
		PaymentRequests: make([]domain.PaymentRequest, len(s.PaymentRequests)),
	}
	copy(next.Accounts, s.Accounts)
	copy(next.PaymentKeys, s.PaymentKeys)
	copy(next.Transactions, s.Transactions)
	copy(next.PaymentRequests, s.PaymentRequests)
	return next
}

// seedState builds the illustrative example data used when no snapshot exists:
// two account holders, a document key for the first, and a static payment
// request so a fresh install has something scannable.
func seedState(now time.Time) (*State, error) {
	st := newEmptyState()

	ana := domain.Account{
		AccountID:    "11111111-1111-4111-8111-111111111111",
		Name:         "Ana Souza",
		Document:     "12345678900",
		DocumentType: domain.Personal,
		Balance:      decimal.RequireFromString("5000.00"),
		CreatedAt:    now,
	}
	bruno := domain.Account{
		AccountID:    "22222222-2222-4222-8222-222222222222",
		Name:         "Bruno Lima",
		Document:     "98765432100",
		DocumentType: domain.Personal,
		Balance:      decimal.RequireFromString("3500.00"),
		CreatedAt:    now,
	}
	st.Accounts = append(st.Accounts, ana, bruno)

	anaKey := domain.PaymentKey{
		KeyID:     "33333333-3333-4333-8333-333333333333",
		AccountID: ana.AccountID,
		KeyType:   domain.KeyDocument,
		KeyValue:  ana.Document,
		Status:    domain.KeyActive,
		CreatedAt: now,
	}
	st.PaymentKeys = append(st.PaymentKeys, anaKey)

	reference, err := utils.NewTransactionReference(now)
	if err != nil {
		return nil, err
	}
	amount := decimal.RequireFromString("25.00")
	encoded, err := payload.Encode(payload.Claims{
		Kind:        domain.RequestStatic,
		Reference:   reference,
		KeyValue:    anaKey.KeyValue,
		Amount:      amount,
		Description: "Example static charge",
	})
	if err != nil {
		return nil, err
	}
	st.PaymentRequests = append(st.PaymentRequests, domain.PaymentRequest{
		RequestID:   "44444444-4444-4444-8444-444444444444",
		AccountID:   ana.AccountID,
		KeyValue:    anaKey.KeyValue,
		Amount:      amount,
		Description: "Example static charge",
		Kind:        domain.RequestStatic,
		Status:      domain.RequestActive,
		Reference:   reference,
		Payload:     encoded,
		CreatedAt:   now,
	})

	return st, nil
}
