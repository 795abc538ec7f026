package dto

import (
	"time"

	"github.com/velopix/pix_backend/internal/core/domain"
)

// RegisterKeyRequest defines the data needed to register a payment key.
// KeyValue is ignored for RANDOM keys; the engine generates the token.
type RegisterKeyRequest struct {
	KeyType  domain.PaymentKeyType `json:"keyType" binding:"required,oneof=DOCUMENT EMAIL PHONE RANDOM"`
	KeyValue string                `json:"keyValue"`
}

// PaymentKeyResponse defines the data returned for a payment key.
type PaymentKeyResponse struct {
	KeyID     string                  `json:"keyID"`
	AccountID string                  `json:"accountID"`
	KeyType   domain.PaymentKeyType   `json:"keyType"`
	KeyValue  string                  `json:"keyValue"`
	Status    domain.PaymentKeyStatus `json:"status"`
	CreatedAt time.Time               `json:"createdAt"`
}

// ListPaymentKeysResponse wraps the list of keys for an account.
type ListPaymentKeysResponse struct {
	Keys []PaymentKeyResponse `json:"keys"`
}

// ToPaymentKeyResponse converts a domain.PaymentKey to PaymentKeyResponse DTO
func ToPaymentKeyResponse(key *domain.PaymentKey) PaymentKeyResponse {
	return PaymentKeyResponse{
		KeyID:     key.KeyID,
		AccountID: key.AccountID,
		KeyType:   key.KeyType,
		KeyValue:  key.KeyValue,
		Status:    key.Status,
		CreatedAt: key.CreatedAt,
	}
}

// ToListPaymentKeysResponse converts a slice of domain.PaymentKey to the list DTO
func ToListPaymentKeysResponse(keys []domain.PaymentKey) ListPaymentKeysResponse {
	res := make([]PaymentKeyResponse, len(keys))
	for i, key := range keys {
		res[i] = ToPaymentKeyResponse(&key)
	}
	return ListPaymentKeysResponse{Keys: res}
}
