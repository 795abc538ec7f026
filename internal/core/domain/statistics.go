package domain

import "github.com/shopspring/decimal"

// Statistics is a read-only aggregate over the current state of the engine.
// It is derived on demand and never persisted.
type Statistics struct {
	AccountCount              int             `json:"accountCount"`
	ActiveKeyCount            int             `json:"activeKeyCount"`
	TransactionCount          int             `json:"transactionCount"`
	CompletedTransactionCount int             `json:"completedTransactionCount"`
	FailedTransactionCount    int             `json:"failedTransactionCount"`
	TotalCompletedVolume      decimal.Decimal `json:"totalCompletedVolume"`
	AverageCompletedAmount    decimal.Decimal `json:"averageCompletedAmount"`
	RequestCount              int             `json:"requestCount"`
}
