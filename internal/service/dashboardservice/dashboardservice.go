package dashboardservice

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/presaleadmin/internal/domain"
	"github.com/GlebRadaev/presaleadmin/internal/stats"
)

//go:generate mockgen -source=dashboardservice.go -destination=mock_dashboardservice.go -package=dashboardservice
type Store interface {
	EnsureLoaded(ctx context.Context) error
	Reload(ctx context.Context) error
	Snapshot() ([]domain.User, []domain.Transaction)
	LoadedAt() time.Time
}

type Dashboard struct {
	stats.DashboardOverview
	LoadedAt time.Time
}

type Service struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

func (s *Service) Overview(ctx context.Context) (*Dashboard, error) {
	if err := s.store.EnsureLoaded(ctx); err != nil {
		zap.L().Error("can't load snapshot: ", zap.Error(err))
		return nil, err
	}
	return s.build(), nil
}

// Refresh reloads the snapshot from the backend before building the overview.
func (s *Service) Refresh(ctx context.Context) (*Dashboard, error) {
	if err := s.store.Reload(ctx); err != nil {
		zap.L().Error("can't reload snapshot: ", zap.Error(err))
		return nil, err
	}
	return s.build(), nil
}

func (s *Service) build() *Dashboard {
	users, txs := s.store.Snapshot()
	return &Dashboard{
		DashboardOverview: stats.Overview(users, txs, s.now()),
		LoadedAt:          s.store.LoadedAt(),
	}
}
