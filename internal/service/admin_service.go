package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

const (
	dashboardStatsKey = "helpdesk:dashboard:stats"
	dashboardStatsTTL = 30 * time.Second
)

// AdminService covers the admin dashboard and user moderation.
type AdminService struct {
	users   repository.UserRepository
	tickets repository.TicketRepository
	cache   *redis.Client
	logger  *zap.Logger
}

// NewAdminService builds the service. cache may be nil; stats then
// recompute on every call.
func NewAdminService(users repository.UserRepository, tickets repository.TicketRepository, cache *redis.Client, logger *zap.Logger) *AdminService {
	return &AdminService{users: users, tickets: tickets, cache: cache, logger: logger}
}

// DashboardStats returns whole-table aggregates, served from a short
// Redis cache when available. Cache failures fall through to the
// store.
func (s *AdminService) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, dashboardStatsKey).Bytes()
		if err == nil {
			var stats domain.DashboardStats
			if err := json.Unmarshal(raw, &stats); err == nil {
				return stats, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("dashboard stats cache read failed", zap.Error(err))
		}
	}

	stats, err := s.tickets.DashboardStats(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, dashboardStatsKey, raw, dashboardStatsTTL).Err(); err != nil {
				s.logger.Warn("dashboard stats cache write failed", zap.Error(err))
			}
		}
	}
	return stats, nil
}

// ListUsers returns users with their ticket counts plus the total user
// count for pagination.
func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]repository.UserWithStats, int64, error) {
	users, err := s.users.ListWithTicketStats(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UpdateUserStatus moderates a user account.
func (s *AdminService) UpdateUserStatus(ctx context.Context, id int64, status domain.UserStatus) (*domain.User, error) {
	return s.users.UpdateStatus(ctx, id, status)
}
