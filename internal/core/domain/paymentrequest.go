package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRequestKind distinguishes reusable codes from time-boxed ones.
type PaymentRequestKind string

const (
	RequestStatic  PaymentRequestKind = "STATIC"
	RequestDynamic PaymentRequestKind = "DYNAMIC"
)

// PaymentRequestStatus indicates whether a request is redeemable.
type PaymentRequestStatus string

const (
	RequestActive PaymentRequestStatus = "ACTIVE"
)

// PaymentRequest is an issuable, redeemable description of a desired incoming
// payment. STATIC requests never expire and may be redeemed repeatedly; DYNAMIC
// requests carry an expiration timestamp.
type PaymentRequest struct {
	RequestID   string               `json:"requestID"` // Primary Key (UUID)
	AccountID   string               `json:"accountID"` // FK -> Account.accountID (payee)
	KeyValue    string               `json:"keyValue"`  // Alias the payer will be routed through
	Amount      decimal.Decimal      `json:"amount"`
	Description string               `json:"description"`
	Kind        PaymentRequestKind   `json:"kind"`
	Status      PaymentRequestStatus `json:"status"`
	Reference   string               `json:"reference"`           // Transaction reference a redemption will carry
	ExpiresAt   *time.Time           `json:"expiresAt,omitempty"` // Present only for DYNAMIC
	Payload     string               `json:"payload"`             // Encoded redeemable payload
	CreatedAt   time.Time            `json:"createdAt"`
}
