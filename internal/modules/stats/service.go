package stats

import (
	"context"

	"github.com/google/uuid"

	"travelnest/internal/repository"
)

type StatsRepository interface {
	GuestStats(ctx context.Context, userID uuid.UUID) (*repository.GuestStats, error)
	HostStats(ctx context.Context, userID uuid.UUID) (*repository.HostStats, error)
}

// Dashboard groups both sides of a user's activity; any user may appear as
// guest and host at once.
type Dashboard struct {
	Guest *repository.GuestStats `json:"guest"`
	Host  *repository.HostStats  `json:"host"`
}

type Service struct {
	stats StatsRepository
}

func NewService(stats StatsRepository) *Service {
	return &Service{stats: stats}
}

func (s *Service) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	guest, err := s.stats.GuestStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	host, err := s.stats.HostStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Guest: guest, Host: host}, nil
}
