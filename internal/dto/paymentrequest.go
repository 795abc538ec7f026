package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/velopix/pix_backend/internal/core/domain"
)

// CreateStaticRequestRequest defines the data needed to issue a static payment request.
type CreateStaticRequestRequest struct {
	KeyValue    string          `json:"key" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// CreateDynamicRequestRequest defines the data needed to issue a dynamic payment request.
type CreateDynamicRequestRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	TTLSeconds  int64           `json:"ttlSeconds" binding:"required,gt=0"`
	Description string          `json:"description"`
}

// PaymentRequestResponse defines the data returned for a payment request.
// Mirrors domain.PaymentRequest.
type PaymentRequestResponse struct {
	RequestID   string                      `json:"requestID"`
	AccountID   string                      `json:"accountID"`
	KeyValue    string                      `json:"keyValue"`
	Amount      decimal.Decimal             `json:"amount"`
	Description string                      `json:"description"`
	Kind        domain.PaymentRequestKind   `json:"kind"`
	Status      domain.PaymentRequestStatus `json:"status"`
	Reference   string                      `json:"reference"`
	ExpiresAt   *time.Time                  `json:"expiresAt,omitempty"`
	Payload     string                      `json:"payload"`
	CreatedAt   time.Time                   `json:"createdAt"`
}

// ListPaymentRequestsResponse wraps a list of payment requests.
type ListPaymentRequestsResponse struct {
	Requests []PaymentRequestResponse `json:"requests"`
}

// ToPaymentRequestResponse converts a domain.PaymentRequest to PaymentRequestResponse DTO
func ToPaymentRequestResponse(req *domain.PaymentRequest) PaymentRequestResponse {
	return PaymentRequestResponse{
		RequestID:   req.RequestID,
		AccountID:   req.AccountID,
		KeyValue:    req.KeyValue,
		Amount:      req.Amount,
		Description: req.Description,
		Kind:        req.Kind,
		Status:      req.Status,
		Reference:   req.Reference,
		ExpiresAt:   req.ExpiresAt,
		Payload:     req.Payload,
		CreatedAt:   req.CreatedAt,
	}
}

// ToListPaymentRequestsResponse converts a slice of domain.PaymentRequest to the list DTO
func ToListPaymentRequestsResponse(requests []domain.PaymentRequest) ListPaymentRequestsResponse {
	res := make([]PaymentRequestResponse, len(requests))
	for i, req := range requests {
		res[i] = ToPaymentRequestResponse(&req)
	}
	return ListPaymentRequestsResponse{Requests: res}
}
