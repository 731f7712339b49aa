package service

import (
	"context"

	"docex/internal/domain"
	"docex/internal/port"
)

// StatsService reports aggregate workbook counts.
type StatsService struct {
	stats port.StatsRepository
}

// NewStatsService creates a StatsService.
func NewStatsService(stats port.StatsRepository) *StatsService {
	return &StatsService{stats: stats}
}

func (s *StatsService) GetStats(ctx context.Context, extractedOnly bool) (*domain.Stats, error) {
	return s.stats.GetStats(ctx, extractedOnly)
}
