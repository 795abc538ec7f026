package services_test

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/velopix/pix_backend/internal/apperrors"
	"github.com/velopix/pix_backend/internal/core/domain"
	"github.com/velopix/pix_backend/internal/dto"
	"github.com/velopix/pix_backend/internal/utils/payload"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	env *testEnv

	// ana pays, bruno receives via his document key.
	ana      *domain.Account
	bruno    *domain.Account
	brunoKey *domain.PaymentKey
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.env = newTestEnv(suite.T())
	suite.ana = suite.env.createAccount(suite.T(), "Ana Souza", "12345678900", "5000.00")
	suite.bruno = suite.env.createAccount(suite.T(), "Bruno Lima", "98765432100", "3500.00")
	suite.brunoKey = suite.env.registerDocumentKey(suite.T(), suite.bruno)
}

// --- Transfer ---

func (suite *TransactionServiceTestSuite) TestTransfer_Success() {
	ctx := context.Background()

	txn, err := suite.env.services.Transaction.Transfer(ctx, suite.ana.AccountID, dto.TransferRequest{
		KeyValue:    suite.brunoKey.KeyValue,
		Amount:      decimal.RequireFromString("100.00"),
		Description: "Rent",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionCompleted, txn.Status)
	suite.Equal(suite.ana.AccountID, txn.SourceAccountID)
	suite.Equal(suite.bruno.AccountID, txn.DestinationAccountID)
	suite.Equal(suite.brunoKey.KeyValue, txn.KeyValue)
	suite.Empty(txn.FailureReason)
	suite.Require().NotNil(txn.CompletedAt)
	suite.Regexp(regexp.MustCompile(`^E\d{14}[0-9A-F]{8}$`), txn.Reference)

	suite.True(suite.env.balanceOf(suite.T(), suite.ana.AccountID).Equal(decimal.RequireFromString("4900.00")))
	suite.True(suite.env.balanceOf(suite.T(), suite.bruno.AccountID).Equal(decimal.RequireFromString("3600.00")))
}

func (suite *TransactionServiceTestSuite) TestTransfer_RoundTripRestoresBalances() {
	ctx := context.Background()

	// Bruno pays Ana back the same amount through her own key.
	anaKey, err := suite.env.services.PaymentKey.RegisterKey(ctx, suite.ana.AccountID, dto.RegisterKeyRequest{
		KeyType:  domain.KeyEmail,
		KeyValue: "ana@example.com",
	})
	suite.Require().NoError(err)

	_, err = suite.env.services.Transaction.Transfer(ctx, suite.ana.AccountID, dto.TransferRequest{
		KeyValue: suite.brunoKey.KeyValue,
		Amount:   decimal.RequireFromString("100.00"),
	})
	suite.Require().NoError(err)
	_, err = suite.env.services.Transaction.Transfer(ctx, suite.bruno.AccountID, dto.TransferRequest{
		KeyValue: anaKey.KeyValue,
		Amount:   decimal.RequireFromString("100.00"),
	})
	suite.Require().NoError(err)

	suite.True(suite.env.balanceOf(suite.T(), suite.ana.AccountID).Equal(decimal.RequireFromString("5000.00")))
	suite.True(suite.env.balanceOf(suite.T(), suite.bruno.AccountID).Equal(decimal.RequireFromString("3500.00")))
}

func (suite *TransactionServiceTestSuite) TestTransfer_InsufficientBalanceRecordsFailure() {
	ctx := context.Background()

	txn, err := suite.env.services.Transaction.Transfer(ctx, suite.bruno.AccountID, dto.TransferRequest{
		KeyValue: mustRegisterKey(suite.T(), suite.env, suite.ana, domain.KeyEmail, "ana@example.com").KeyValue,
		Amount:   decimal.RequireFromString("4000.00"),
	})

	// Not an error: the attempt is recorded as a FAILED transaction.
	suite.Require().NoError(err)
	suite.Equal(domain.TransactionFailed, txn.Status)
	suite.Equal(domain.FailureInsufficientBalance, txn.FailureReason)
	suite.Nil(txn.CompletedAt)

	// Balances untouched.
	suite.True(suite.env.balanceOf(suite.T(), suite.ana.AccountID).Equal(decimal.RequireFromString("5000.00")))
	suite.True(suite.env.balanceOf(suite.T(), suite.bruno.AccountID).Equal(decimal.RequireFromString("3500.00")))

	// And the failed record is persisted.
	fetched, err := suite.env.services.Transaction.GetTransactionByID(ctx, txn.TransactionID)
	suite.Require().NoError(err)
	suite.Equal(domain.TransactionFailed, fetched.Status)
}

func (suite *TransactionServiceTestSuite) TestTransfer_UnknownKey() {
	ctx := context.Background()

	txn, err := suite.env.services.Transaction.Transfer(ctx, suite.ana.AccountID, dto.TransferRequest{
		KeyValue: "nobody@example.com",
		Amount:   decimal.RequireFromString("10.00"),
	})

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	// Nothing recorded for a failed resolution.
	txns, listErr := suite.env.services.Transaction.ListTransactions(ctx)
	suite.Require().NoError(listErr)
	suite.Empty(txns)
}

func (suite *TransactionServiceTestSuite) TestTransfer_ToOwnAccountRejected() {
	ctx := context.Background()

	txn, err := suite.env.services.Transaction.Transfer(ctx, suite.bruno.AccountID, dto.TransferRequest{
		KeyValue: suite.brunoKey.KeyValue,
		Amount:   decimal.RequireFromString("10.00"),
	})

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestTransfer_NonPositiveAmountRejected() {
	ctx := context.Background()

	for _, amount := range []string{"0", "-5.00"} {
		txn, err := suite.env.services.Transaction.Transfer(ctx, suite.ana.AccountID, dto.TransferRequest{
			KeyValue: suite.brunoKey.KeyValue,
			Amount:   decimal.RequireFromString(amount),
		})
		suite.Require().Error(err, amount)
		suite.Nil(txn, amount)
		suite.ErrorIs(err, apperrors.ErrValidation, amount)
	}

	txns, err := suite.env.services.Transaction.ListTransactions(ctx)
	suite.Require().NoError(err)
	suite.Empty(txns)
}

func (suite *TransactionServiceTestSuite) TestTransfer_ConcurrentTransfersApplySerially() {
	ctx := context.Background()
	payer := suite.env.createAccount(suite.T(), "Carla Reis", "55544433322", "100.00")

	const attempts = 30
	amount := decimal.RequireFromString("10.00")

	var wg sync.WaitGroup
	results := make([]*domain.Transaction, attempts)
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = suite.env.services.Transaction.Transfer(ctx, payer.AccountID, dto.TransferRequest{
				KeyValue: suite.brunoKey.KeyValue,
				Amount:   amount,
			})
		}(i)
	}
	wg.Wait()

	// 100.00 funds exactly 10 transfers of 10.00; the rest fail on balance.
	completed, failed := 0, 0
	for i, txn := range results {
		suite.Require().NoError(errs[i])
		suite.Require().NotNil(txn)
		switch txn.Status {
		case domain.TransactionCompleted:
			completed++
		case domain.TransactionFailed:
			suite.Equal(domain.FailureInsufficientBalance, txn.FailureReason)
			failed++
		default:
			suite.Failf("unexpected status", "transaction %s ended as %s", txn.TransactionID, txn.Status)
		}
	}
	suite.Equal(10, completed)
	suite.Equal(attempts-10, failed)

	suite.True(suite.env.balanceOf(suite.T(), payer.AccountID).IsZero())
	suite.True(suite.env.balanceOf(suite.T(), suite.bruno.AccountID).Equal(decimal.RequireFromString("3600.00")))
}

// --- CreateTransaction / ApplyTransaction ---

func (suite *TransactionServiceTestSuite) TestCreateAndApplyTransaction() {
	ctx := context.Background()

	txn, err := suite.env.services.Transaction.CreateTransaction(ctx, suite.ana.AccountID, suite.bruno.AccountID, decimal.RequireFromString("50.00"), "Split bill")
	suite.Require().NoError(err)
	suite.Equal(domain.TransactionPending, txn.Status)

	// Balances move only on apply.
	suite.True(suite.env.balanceOf(suite.T(), suite.ana.AccountID).Equal(decimal.RequireFromString("5000.00")))

	applied, err := suite.env.services.Transaction.ApplyTransaction(ctx, txn.TransactionID)
	suite.Require().NoError(err)
	suite.Equal(domain.TransactionCompleted, applied.Status)
	suite.True(suite.env.balanceOf(suite.T(), suite.ana.AccountID).Equal(decimal.RequireFromString("4950.00")))
	suite.True(suite.env.balanceOf(suite.T(), suite.bruno.AccountID).Equal(decimal.RequireFromString("3550.00")))
}

func (suite *TransactionServiceTestSuite) TestApplyTransaction_RejectsTerminal() {
	ctx := context.Background()

	txn, err := suite.env.services.Transaction.CreateTransaction(ctx, suite.ana.AccountID, suite.bruno.AccountID, decimal.RequireFromString("50.00"), "")
	suite.Require().NoError(err)

	_, err = suite.env.services.Transaction.ApplyTransaction(ctx, txn.TransactionID)
	suite.Require().NoError(err)

	// A second apply must not move money again.
	_, err = suite.env.services.Transaction.ApplyTransaction(ctx, txn.TransactionID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.True(suite.env.balanceOf(suite.T(), suite.ana.AccountID).Equal(decimal.RequireFromString("4950.00")))
}

func (suite *TransactionServiceTestSuite) TestApplyTransaction_MissingAccountFails() {
	ctx := context.Background()

	txn, err := suite.env.services.Transaction.CreateTransaction(ctx, suite.ana.AccountID, uuid.NewString(), decimal.RequireFromString("50.00"), "")
	suite.Require().NoError(err)

	applied, err := suite.env.services.Transaction.ApplyTransaction(ctx, txn.TransactionID)
	suite.Require().NoError(err)
	suite.Equal(domain.TransactionFailed, applied.Status)
	suite.Equal(domain.FailureAccountNotFound, applied.FailureReason)
	suite.True(suite.env.balanceOf(suite.T(), suite.ana.AccountID).Equal(decimal.RequireFromString("5000.00")))
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SameAccountRejected() {
	ctx := context.Background()

	_, err := suite.env.services.Transaction.CreateTransaction(ctx, suite.ana.AccountID, suite.ana.AccountID, decimal.RequireFromString("10.00"), "")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Redeem ---

func (suite *TransactionServiceTestSuite) TestRedeem_StaticRequest() {
	ctx := context.Background()

	request, err := suite.env.services.PaymentRequest.IssueStatic(ctx, suite.bruno.AccountID, dto.CreateStaticRequestRequest{
		KeyValue:    suite.brunoKey.KeyValue,
		Amount:      decimal.RequireFromString("25.00"),
		Description: "Coffee",
	})
	suite.Require().NoError(err)

	// A static request is redeemable repeatedly.
	for i := 0; i < 2; i++ {
		txn, err := suite.env.services.Transaction.RedeemPaymentRequest(ctx, suite.ana.AccountID, request.Payload)
		suite.Require().NoError(err)
		suite.Equal(domain.TransactionCompleted, txn.Status)
		suite.Equal(suite.bruno.AccountID, txn.DestinationAccountID)
		suite.True(txn.Amount.Equal(decimal.RequireFromString("25.00")))
		suite.NotEqual(request.Reference, txn.Reference, "static redemptions mint their own reference")
	}

	suite.True(suite.env.balanceOf(suite.T(), suite.ana.AccountID).Equal(decimal.RequireFromString("4950.00")))
	suite.True(suite.env.balanceOf(suite.T(), suite.bruno.AccountID).Equal(decimal.RequireFromString("3550.00")))
}

func (suite *TransactionServiceTestSuite) TestRedeem_DynamicRequestCarriesReference() {
	ctx := context.Background()

	request, err := suite.env.services.PaymentRequest.IssueDynamic(ctx, suite.bruno.AccountID, dto.CreateDynamicRequestRequest{
		Amount:     decimal.RequireFromString("60.00"),
		TTLSeconds: 3600,
	})
	suite.Require().NoError(err)

	txn, err := suite.env.services.Transaction.RedeemPaymentRequest(ctx, suite.ana.AccountID, request.Payload)
	suite.Require().NoError(err)
	suite.Equal(domain.TransactionCompleted, txn.Status)
	suite.Equal(request.Reference, txn.Reference, "dynamic redemption adopts the issued reference")
}

func (suite *TransactionServiceTestSuite) TestRedeem_RepeatDynamicRedemptionMintsFreshReference() {
	ctx := context.Background()

	request, err := suite.env.services.PaymentRequest.IssueDynamic(ctx, suite.bruno.AccountID, dto.CreateDynamicRequestRequest{
		Amount:     decimal.RequireFromString("60.00"),
		TTLSeconds: 3600,
	})
	suite.Require().NoError(err)

	first, err := suite.env.services.Transaction.RedeemPaymentRequest(ctx, suite.ana.AccountID, request.Payload)
	suite.Require().NoError(err)
	suite.Equal(request.Reference, first.Reference)

	// A second redemption of the same payload still completes, but the issued
	// reference is taken, so the transaction keeps a freshly minted one.
	second, err := suite.env.services.Transaction.RedeemPaymentRequest(ctx, suite.ana.AccountID, request.Payload)
	suite.Require().NoError(err)
	suite.Equal(domain.TransactionCompleted, second.Status)
	suite.NotEqual(request.Reference, second.Reference)
	suite.Regexp(regexp.MustCompile(`^E\d{14}[0-9A-F]{8}$`), second.Reference)
}

func (suite *TransactionServiceTestSuite) TestRedeem_ExpiredDynamicRequest() {
	ctx := context.Background()

	expired := time.Now().UTC().Add(-2 * time.Second)
	encoded, err := payload.Encode(payload.Claims{
		Kind:      domain.RequestDynamic,
		Reference: "E20250314092653DEADBEEF",
		KeyValue:  suite.brunoKey.KeyValue,
		Amount:    decimal.RequireFromString("60.00"),
		ExpiresAt: &expired,
	})
	suite.Require().NoError(err)

	txn, err := suite.env.services.Transaction.RedeemPaymentRequest(ctx, suite.ana.AccountID, encoded)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrExpired)

	// Nothing recorded, balances untouched.
	txns, listErr := suite.env.services.Transaction.ListTransactions(ctx)
	suite.Require().NoError(listErr)
	suite.Empty(txns)
	suite.True(suite.env.balanceOf(suite.T(), suite.ana.AccountID).Equal(decimal.RequireFromString("5000.00")))
	suite.True(suite.env.balanceOf(suite.T(), suite.bruno.AccountID).Equal(decimal.RequireFromString("3500.00")))
}

func (suite *TransactionServiceTestSuite) TestRedeem_MalformedPayload() {
	ctx := context.Background()

	txn, err := suite.env.services.Transaction.RedeemPaymentRequest(ctx, suite.ana.AccountID, "not a payload")

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Refund ---

func (suite *TransactionServiceTestSuite) TestRefund_Success() {
	ctx := context.Background()

	original, err := suite.env.services.Transaction.Transfer(ctx, suite.ana.AccountID, dto.TransferRequest{
		KeyValue: suite.brunoKey.KeyValue,
		Amount:   decimal.RequireFromString("100.00"),
	})
	suite.Require().NoError(err)

	refund, refunded, err := suite.env.services.Transaction.Refund(ctx, original.TransactionID, "wrong recipient")
	suite.Require().NoError(err)
	suite.Equal(original.TransactionID, refunded.TransactionID)
	suite.Equal(domain.TransactionCompleted, refund.Status)
	suite.Equal(original.DestinationAccountID, refund.SourceAccountID)
	suite.Equal(original.SourceAccountID, refund.DestinationAccountID)
	suite.Equal(original.TransactionID, refund.OriginTransactionID)
	suite.Equal("wrong recipient", refund.Description)
	suite.NotEqual(original.Reference, refund.Reference)

	suite.True(suite.env.balanceOf(suite.T(), suite.ana.AccountID).Equal(decimal.RequireFromString("5000.00")))
	suite.True(suite.env.balanceOf(suite.T(), suite.bruno.AccountID).Equal(decimal.RequireFromString("3500.00")))
}

func (suite *TransactionServiceTestSuite) TestRefund_DefaultDescription() {
	ctx := context.Background()

	original, err := suite.env.services.Transaction.Transfer(ctx, suite.ana.AccountID, dto.TransferRequest{
		KeyValue: suite.brunoKey.KeyValue,
		Amount:   decimal.RequireFromString("40.00"),
	})
	suite.Require().NoError(err)

	refund, _, err := suite.env.services.Transaction.Refund(ctx, original.TransactionID, "")
	suite.Require().NoError(err)
	suite.Equal("Refund of "+original.Reference, refund.Description)
}

func (suite *TransactionServiceTestSuite) TestRefund_OnlyCompleted() {
	ctx := context.Background()

	pending, err := suite.env.services.Transaction.CreateTransaction(ctx, suite.ana.AccountID, suite.bruno.AccountID, decimal.RequireFromString("10.00"), "")
	suite.Require().NoError(err)

	_, _, err = suite.env.services.Transaction.Refund(ctx, pending.TransactionID, "")
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *TransactionServiceTestSuite) TestRefund_NotFound() {
	ctx := context.Background()

	_, _, err := suite.env.services.Transaction.Refund(ctx, uuid.NewString(), "")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Reads ---

func (suite *TransactionServiceTestSuite) TestListTransactionsForAccount() {
	ctx := context.Background()
	carla := suite.env.createAccount(suite.T(), "Carla Reis", "55544433322", "1000.00")
	carlaKey := mustRegisterKey(suite.T(), suite.env, carla, domain.KeyEmail, "carla@example.com")

	_, err := suite.env.services.Transaction.Transfer(ctx, suite.ana.AccountID, dto.TransferRequest{
		KeyValue: suite.brunoKey.KeyValue,
		Amount:   decimal.RequireFromString("10.00"),
	})
	suite.Require().NoError(err)
	second, err := suite.env.services.Transaction.Transfer(ctx, suite.ana.AccountID, dto.TransferRequest{
		KeyValue: carlaKey.KeyValue,
		Amount:   decimal.RequireFromString("20.00"),
	})
	suite.Require().NoError(err)

	anaTxns, err := suite.env.services.Transaction.ListTransactionsForAccount(ctx, suite.ana.AccountID)
	suite.Require().NoError(err)
	suite.Require().Len(anaTxns, 2)
	suite.Equal(second.TransactionID, anaTxns[0].TransactionID, "newest first")

	carlaTxns, err := suite.env.services.Transaction.ListTransactionsForAccount(ctx, carla.AccountID)
	suite.Require().NoError(err)
	suite.Len(carlaTxns, 1)

	_, err = suite.env.services.Transaction.ListTransactionsForAccount(ctx, uuid.NewString())
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func mustRegisterKey(t *testing.T, env *testEnv, account *domain.Account, keyType domain.PaymentKeyType, value string) *domain.PaymentKey {
	t.Helper()
	key, err := env.services.PaymentKey.RegisterKey(context.Background(), account.AccountID, dto.RegisterKeyRequest{
		KeyType:  keyType,
		KeyValue: value,
	})
	if err != nil {
		t.Fatalf("failed to register key: %v", err)
	}
	return key
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
