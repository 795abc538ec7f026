package repositories

import (
	"context"

	"github.com/velopix/pix_backend/internal/core/domain"
)

// PaymentRequestReader defines read operations for payment request data
type PaymentRequestReader interface {
	// FindRequestByID retrieves a specific payment request by its unique identifier.
	FindRequestByID(ctx context.Context, requestID string) (*domain.PaymentRequest, error)

	// ListRequestsByAccountID retrieves all payment requests issued by an account.
	ListRequestsByAccountID(ctx context.Context, accountID string) ([]domain.PaymentRequest, error)
}

// PaymentRequestWriter defines write operations for payment request data
type PaymentRequestWriter interface {
	// SavePaymentRequest persists a new payment request.
	SavePaymentRequest(ctx context.Context, request domain.PaymentRequest) error
}

// PaymentRequestRepositoryFacade combines all payment-request-related repository interfaces
type PaymentRequestRepositoryFacade interface {
	PaymentRequestReader
	PaymentRequestWriter
}
