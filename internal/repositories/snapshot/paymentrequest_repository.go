package snapshot

import (
	"context"
	"fmt"

	"github.com/velopix/pix_backend/internal/apperrors"
	"github.com/velopix/pix_backend/internal/core/domain"
	portsrepo "github.com/velopix/pix_backend/internal/core/ports/repositories"
)

// paymentRequestRepository implements the payment request repository ports over the snapshot store.
type paymentRequestRepository struct {
	stateAccess
}

var _ portsrepo.PaymentRequestRepositoryFacade = (*paymentRequestRepository)(nil)

func (r *paymentRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.PaymentRequest, error) {
	var found *domain.PaymentRequest
	err := r.view(ctx, func(st *State) error {
		for i := range st.PaymentRequests {
			if st.PaymentRequests[i].RequestID == requestID {
				req := st.PaymentRequests[i]
				found = &req
				return nil
			}
		}
		return fmt.Errorf("payment request %s: %w", requestID, apperrors.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *paymentRequestRepository) ListRequestsByAccountID(ctx context.Context, accountID string) ([]domain.PaymentRequest, error) {
	var requests []domain.PaymentRequest
	err := r.view(ctx, func(st *State) error {
		requests = []domain.PaymentRequest{}
		for i := range st.PaymentRequests {
			if st.PaymentRequests[i].AccountID == accountID {
				requests = append(requests, st.PaymentRequests[i])
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *paymentRequestRepository) SavePaymentRequest(ctx context.Context, request domain.PaymentRequest) error {
	return r.update(ctx, func(st *State) error {
		for i := range st.PaymentRequests {
			if st.PaymentRequests[i].RequestID == request.RequestID {
				return fmt.Errorf("payment request %s: %w", request.RequestID, apperrors.ErrDuplicate)
			}
		}
		st.PaymentRequests = append(st.PaymentRequests, request)
		return nil
	})
}
