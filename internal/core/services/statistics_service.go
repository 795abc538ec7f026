package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/velopix/pix_backend/internal/core/domain"
	portsrepo "github.com/velopix/pix_backend/internal/core/ports/repositories"
	portssvc "github.com/velopix/pix_backend/internal/core/ports/services"
	"github.com/velopix/pix_backend/internal/middleware"
)

// statisticsService implements the read-only reporting surface.
type statisticsService struct {
	repos portsrepo.RepositoryProvider
}

// NewStatisticsService creates a new statistics service.
func NewStatisticsService(repos portsrepo.RepositoryProvider) portssvc.StatisticsSvcFacade {
	return &statisticsService{repos: repos}
}

var _ portssvc.StatisticsSvcFacade = (*statisticsService)(nil)

// ComputeStatistics derives aggregates from one consistent view of the current
// state. Nothing is mutated and nothing is persisted.
func (s *statisticsService) ComputeStatistics(ctx context.Context) (*domain.Statistics, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stats, err := s.repos.Statistics().GatherStatistics(ctx)
	if err != nil {
		logger.Error("Failed to gather statistics", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to gather statistics: %w", err)
	}

	logger.Debug("Statistics computed",
		slog.Int("accounts", stats.AccountCount),
		slog.Int("transactions", stats.TransactionCount),
	)
	return stats, nil
}
