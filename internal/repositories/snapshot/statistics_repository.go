package snapshot

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/velopix/pix_backend/internal/core/domain"
	portsrepo "github.com/velopix/pix_backend/internal/core/ports/repositories"
)

// statisticsRepository derives aggregates over one consistent view of the state.
type statisticsRepository struct {
	stateAccess
}

var _ portsrepo.StatisticsRepository = (*statisticsRepository)(nil)

func (r *statisticsRepository) GatherStatistics(ctx context.Context) (*domain.Statistics, error) {
	stats := &domain.Statistics{
		TotalCompletedVolume:   decimal.Zero,
		AverageCompletedAmount: decimal.Zero,
	}
	err := r.view(ctx, func(st *State) error {
		stats.AccountCount = len(st.Accounts)
		stats.TransactionCount = len(st.Transactions)
		stats.RequestCount = len(st.PaymentRequests)

		for i := range st.PaymentKeys {
			if st.PaymentKeys[i].Status == domain.KeyActive {
				stats.ActiveKeyCount++
			}
		}
		for i := range st.Transactions {
			switch st.Transactions[i].Status {
			case domain.TransactionCompleted:
				stats.CompletedTransactionCount++
				stats.TotalCompletedVolume = stats.TotalCompletedVolume.Add(st.Transactions[i].Amount)
			case domain.TransactionFailed:
				stats.FailedTransactionCount++
			}
		}
		if stats.CompletedTransactionCount > 0 {
			stats.AverageCompletedAmount = stats.TotalCompletedVolume.
				Div(decimal.NewFromInt(int64(stats.CompletedTransactionCount))).
				Round(2)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
