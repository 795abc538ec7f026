package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/velopix/pix_backend/internal/core/domain"
)

// TransferRequest defines the data needed to transfer money by alias.
type TransferRequest struct {
	KeyValue    string          `json:"key" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// RedeemRequest defines the data needed to redeem a payment request payload.
type RedeemRequest struct {
	Payload string `json:"payload" binding:"required"`
}

// RefundRequest defines the data needed to refund a completed transaction.
type RefundRequest struct {
	Reason string `json:"reason"`
}

// TransactionResponse defines the data returned for a transaction.
// Mirrors domain.Transaction.
type TransactionResponse struct {
	TransactionID        string                   `json:"transactionID"`
	Reference            string                   `json:"reference"`
	SourceAccountID      string                   `json:"sourceAccountID"`
	DestinationAccountID string                   `json:"destinationAccountID"`
	Amount               decimal.Decimal          `json:"amount"`
	Description          string                   `json:"description"`
	KeyValue             string                   `json:"keyValue,omitempty"`
	OriginTransactionID  string                   `json:"originTransactionID,omitempty"`
	Status               domain.TransactionStatus `json:"status"`
	FailureReason        string                   `json:"failureReason,omitempty"`
	CreatedAt            time.Time                `json:"createdAt"`
	CompletedAt          *time.Time               `json:"completedAt,omitempty"`
}

// RefundResponse bundles the refund transaction with the transaction it reversed.
type RefundResponse struct {
	Refund   TransactionResponse `json:"refund"`
	Original TransactionResponse `json:"original"`
}

// ListTransactionsResponse wraps a list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:        txn.TransactionID,
		Reference:            txn.Reference,
		SourceAccountID:      txn.SourceAccountID,
		DestinationAccountID: txn.DestinationAccountID,
		Amount:               txn.Amount,
		Description:          txn.Description,
		KeyValue:             txn.KeyValue,
		OriginTransactionID:  txn.OriginTransactionID,
		Status:               txn.Status,
		FailureReason:        txn.FailureReason,
		CreatedAt:            txn.CreatedAt,
		CompletedAt:          txn.CompletedAt,
	}
}

// ToListTransactionsResponse converts a slice of domain.Transaction to the list DTO
func ToListTransactionsResponse(txns []domain.Transaction) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return ListTransactionsResponse{Transactions: res}
}
