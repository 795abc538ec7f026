package services

import (
	portsrepo "github.com/velopix/pix_backend/internal/core/ports/repositories"
	portssvc "github.com/velopix/pix_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The unit of work and the repository provider are both backed by the same store,
// so every mutation commits through one serialization point.
func NewServiceContainer(uow portsrepo.UnitOfWork, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:        NewAccountService(uow, repos),
		PaymentKey:     NewPaymentKeyService(uow, repos),
		Transaction:    NewTransactionService(uow, repos),
		PaymentRequest: NewPaymentRequestService(uow, repos),
		Statistics:     NewStatisticsService(repos),
	}
}

// Compile-time checks that the implementations satisfy their facades.
var (
	_ portssvc.AccountSvcFacade        = (*accountService)(nil)
	_ portssvc.PaymentKeySvcFacade     = (*paymentKeyService)(nil)
	_ portssvc.TransactionSvcFacade    = (*transactionService)(nil)
	_ portssvc.PaymentRequestSvcFacade = (*paymentRequestService)(nil)
	_ portssvc.StatisticsSvcFacade     = (*statisticsService)(nil)
)
