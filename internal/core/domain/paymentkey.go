package domain

import "time"

// PaymentKeyType identifies the kind of alias a payment key carries.
type PaymentKeyType string

const (
	KeyDocument PaymentKeyType = "DOCUMENT"
	KeyEmail    PaymentKeyType = "EMAIL"
	KeyPhone    PaymentKeyType = "PHONE"
	KeyRandom   PaymentKeyType = "RANDOM"
)

// PaymentKeyStatus indicates whether a key is resolvable.
type PaymentKeyStatus string

const (
	KeyActive  PaymentKeyStatus = "ACTIVE"
	KeyDeleted PaymentKeyStatus = "DELETED"
)

// PaymentKey maps a human-usable alias to exactly one account while ACTIVE.
// Revocation is a soft transition to DELETED; the record is never removed,
// and the (type, value) pair becomes registrable again afterwards.
type PaymentKey struct {
	KeyID     string           `json:"keyID"`     // Primary Key (UUID)
	AccountID string           `json:"accountID"` // FK -> Account.accountID
	KeyType   PaymentKeyType   `json:"keyType"`
	KeyValue  string           `json:"keyValue"`
	Status    PaymentKeyStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	DeletedAt *time.Time       `json:"deletedAt,omitempty"` // Set when status transitions to DELETED
}
