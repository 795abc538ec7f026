package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates the state of a transaction.
// PENDING is transient; COMPLETED and FAILED are terminal.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionFailed    TransactionStatus = "FAILED"
)

// Failure reasons recorded on FAILED transactions.
const (
	FailureAccountNotFound     = "account not found"
	FailureInsufficientBalance = "insufficient balance"
)

// Transaction represents an attempted or completed movement of money from one
// account to another. A transaction is created PENDING and applied exactly once,
// after which it is immutable.
type Transaction struct {
	TransactionID        string            `json:"transactionID"` // Primary Key (UUID)
	Reference            string            `json:"reference"`     // Globally unique, user-displayable code
	SourceAccountID      string            `json:"sourceAccountID"`
	DestinationAccountID string            `json:"destinationAccountID"`
	Amount               decimal.Decimal   `json:"amount"` // Strictly positive
	Description          string            `json:"description"`
	KeyValue             string            `json:"keyValue,omitempty"`             // Alias the payer used, if any
	OriginTransactionID  string            `json:"originTransactionID,omitempty"`  // Set on refunds; links to the reversed transaction
	Status               TransactionStatus `json:"status"`
	FailureReason        string            `json:"failureReason,omitempty"` // Set only on FAILED
	CreatedAt            time.Time         `json:"createdAt"`
	CompletedAt          *time.Time        `json:"completedAt,omitempty"` // Set only on COMPLETED
}

// IsTerminal reports whether the transaction has reached a final state.
func (t Transaction) IsTerminal() bool {
	return t.Status == TransactionCompleted || t.Status == TransactionFailed
}
