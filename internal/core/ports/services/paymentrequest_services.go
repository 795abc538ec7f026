package services

import (
	"context"

	"github.com/velopix/pix_backend/internal/core/domain"
	"github.com/velopix/pix_backend/internal/dto"
)

// PaymentRequestSvcFacade defines the payment request (code issuance) operations.
type PaymentRequestSvcFacade interface {
	// IssueStatic issues a reusable payment request with no expiration.
	IssueStatic(ctx context.Context, accountID string, req dto.CreateStaticRequestRequest) (*domain.PaymentRequest, error)

	// IssueDynamic issues a time-boxed payment request expiring after the given TTL.
	IssueDynamic(ctx context.Context, accountID string, req dto.CreateDynamicRequestRequest) (*domain.PaymentRequest, error)

	// GetRequestByID retrieves a specific payment request.
	GetRequestByID(ctx context.Context, requestID string) (*domain.PaymentRequest, error)

	// ListRequestsForAccount retrieves all payment requests issued by an account.
	ListRequestsForAccount(ctx context.Context, accountID string) ([]domain.PaymentRequest, error)
}
