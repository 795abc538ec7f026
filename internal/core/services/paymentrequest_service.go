package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/velopix/pix_backend/internal/apperrors"
	"github.com/velopix/pix_backend/internal/core/domain"
	portsrepo "github.com/velopix/pix_backend/internal/core/ports/repositories"
	portssvc "github.com/velopix/pix_backend/internal/core/ports/services"
	"github.com/velopix/pix_backend/internal/dto"
	"github.com/velopix/pix_backend/internal/middleware"
	"github.com/velopix/pix_backend/internal/utils"
	"github.com/velopix/pix_backend/internal/utils/payload"
)

// paymentRequestService implements payment request (code) issuance.
type paymentRequestService struct {
	uow   portsrepo.UnitOfWork
	repos portsrepo.RepositoryProvider
}

// NewPaymentRequestService creates a new payment request service.
func NewPaymentRequestService(uow portsrepo.UnitOfWork, repos portsrepo.RepositoryProvider) portssvc.PaymentRequestSvcFacade {
	return &paymentRequestService{uow: uow, repos: repos}
}

var _ portssvc.PaymentRequestSvcFacade = (*paymentRequestService)(nil)

// IssueStatic issues a reusable payment request routed through one of the
// account's keys. Static requests never expire; each redemption independently
// creates a new transaction.
func (s *paymentRequestService) IssueStatic(ctx context.Context, accountID string, req dto.CreateStaticRequestRequest) (*domain.PaymentRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	var request *domain.PaymentRequest
	err := s.uow.Execute(ctx, func(repos portsrepo.RepositoryProvider) error {
		if _, err := repos.Accounts().FindAccountByID(ctx, accountID); err != nil {
			return err
		}
		key, err := repos.PaymentKeys().FindActiveKeyByValue(ctx, req.KeyValue)
		if err != nil {
			return err
		}
		if key.AccountID != accountID {
			return fmt.Errorf("%w: key %q does not belong to account %s", apperrors.ErrValidation, req.KeyValue, accountID)
		}

		request, err = s.buildRequest(accountID, key.KeyValue, req.Amount, req.Description, domain.RequestStatic, nil)
		if err != nil {
			return err
		}
		return repos.PaymentRequests().SavePaymentRequest(ctx, *request)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Static payment request issued", slog.String("request_id", request.RequestID), slog.String("account_id", accountID))
	return request, nil
}

// IssueDynamic issues a single-purpose payment request that expires after the
// given TTL. The transaction reference minted here travels inside the payload
// so a redemption can be traced back to this specific request.
func (s *paymentRequestService) IssueDynamic(ctx context.Context, accountID string, req dto.CreateDynamicRequestRequest) (*domain.PaymentRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.TTLSeconds <= 0 {
		return nil, fmt.Errorf("%w: ttl must be positive", apperrors.ErrValidation)
	}

	var request *domain.PaymentRequest
	err := s.uow.Execute(ctx, func(repos portsrepo.RepositoryProvider) error {
		if _, err := repos.Accounts().FindAccountByID(ctx, accountID); err != nil {
			return err
		}
		keys, err := repos.PaymentKeys().ListKeysByAccountID(ctx, accountID)
		if err != nil {
			return err
		}
		var active *domain.PaymentKey
		for i := range keys {
			if keys[i].Status == domain.KeyActive {
				active = &keys[i]
				break
			}
		}
		if active == nil {
			return fmt.Errorf("%w: account %s has no active payment key", apperrors.ErrInvalidState, accountID)
		}

		expiresAt := time.Now().UTC().Add(time.Duration(req.TTLSeconds) * time.Second)
		request, err = s.buildRequest(accountID, active.KeyValue, req.Amount, req.Description, domain.RequestDynamic, &expiresAt)
		if err != nil {
			return err
		}
		return repos.PaymentRequests().SavePaymentRequest(ctx, *request)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidState) {
			logger.Error("Failed to issue dynamic payment request", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	logger.Info("Dynamic payment request issued",
		slog.String("request_id", request.RequestID),
		slog.String("account_id", accountID),
		slog.Time("expires_at", *request.ExpiresAt),
	)
	return request, nil
}

func (s *paymentRequestService) buildRequest(accountID, keyValue string, amount decimal.Decimal, description string, kind domain.PaymentRequestKind, expiresAt *time.Time) (*domain.PaymentRequest, error) {
	now := time.Now().UTC()
	reference, err := utils.NewTransactionReference(now)
	if err != nil {
		return nil, err
	}
	encoded, err := payload.Encode(payload.Claims{
		Kind:        kind,
		Reference:   reference,
		KeyValue:    keyValue,
		Amount:      amount,
		Description: description,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		return nil, err
	}
	return &domain.PaymentRequest{
		RequestID:   uuid.NewString(),
		AccountID:   accountID,
		KeyValue:    keyValue,
		Amount:      amount,
		Description: description,
		Kind:        kind,
		Status:      domain.RequestActive,
		Reference:   reference,
		ExpiresAt:   expiresAt,
		Payload:     encoded,
		CreatedAt:   now,
	}, nil
}

func (s *paymentRequestService) GetRequestByID(ctx context.Context, requestID string) (*domain.PaymentRequest, error) {
	return s.repos.PaymentRequests().FindRequestByID(ctx, requestID)
}

func (s *paymentRequestService) ListRequestsForAccount(ctx context.Context, accountID string) ([]domain.PaymentRequest, error) {
	if _, err := s.repos.Accounts().FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.repos.PaymentRequests().ListRequestsByAccountID(ctx, accountID)
}
