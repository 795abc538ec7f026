package services

import (
	"context"

	"github.com/velopix/pix_backend/internal/core/domain"
)

// StatisticsSvcFacade exposes the read-only reporting surface.
type StatisticsSvcFacade interface {
	// ComputeStatistics derives aggregates from a single consistent view of the
	// current state.
	ComputeStatistics(ctx context.Context) (*domain.Statistics, error)
}

// ServiceContainer holds all services for dependency injection
type ServiceContainer struct {
	Account        AccountSvcFacade
	PaymentKey     PaymentKeySvcFacade
	Transaction    TransactionSvcFacade
	PaymentRequest PaymentRequestSvcFacade
	Statistics     StatisticsSvcFacade
}
