package dto

import (
	"github.com/shopspring/decimal"

	"github.com/velopix/pix_backend/internal/core/domain"
)

// StatisticsResponse defines the aggregate object returned by the statistics endpoint.
type StatisticsResponse struct {
	AccountCount              int             `json:"accountCount"`
	ActiveKeyCount            int             `json:"activeKeyCount"`
	TransactionCount          int             `json:"transactionCount"`
	CompletedTransactionCount int             `json:"completedTransactionCount"`
	FailedTransactionCount    int             `json:"failedTransactionCount"`
	TotalCompletedVolume      decimal.Decimal `json:"totalCompletedVolume"`
	AverageCompletedAmount    decimal.Decimal `json:"averageCompletedAmount"`
	RequestCount              int             `json:"requestCount"`
}

// ToStatisticsResponse converts domain.Statistics to StatisticsResponse DTO
func ToStatisticsResponse(stats *domain.Statistics) StatisticsResponse {
	return StatisticsResponse{
		AccountCount:              stats.AccountCount,
		ActiveKeyCount:            stats.ActiveKeyCount,
		TransactionCount:          stats.TransactionCount,
		CompletedTransactionCount: stats.CompletedTransactionCount,
		FailedTransactionCount:    stats.FailedTransactionCount,
		TotalCompletedVolume:      stats.TotalCompletedVolume,
		AverageCompletedAmount:    stats.AverageCompletedAmount,
		RequestCount:              stats.RequestCount,
	}
}
