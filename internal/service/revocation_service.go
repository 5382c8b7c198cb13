package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"points-board-api/internal/metrics"
	"points-board-api/internal/repository"
)

const revokedKeyPrefix = "revoked:"

// RevocationService tracks logged-out token ids
type RevocationService interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

// revocationServiceImpl checks the optional Redis cache before the blacklist table
type revocationServiceImpl struct {
	repo    repository.RevokedTokenRepository
	cache   *redis.Client
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewRevocationService creates a new instance of RevocationService. cache may be nil.
func NewRevocationService(repo repository.RevokedTokenRepository, cache *redis.Client, m *metrics.Metrics, logger *zap.Logger) RevocationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &revocationServiceImpl{
		repo:    repo,
		cache:   cache,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Revoke persists jti in the blacklist table, then caches it
func (s *revocationServiceImpl) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if err := s.repo.Add(ctx, jti, expiresAt); err != nil {
		return fmt.Errorf("failed to store revoked token: %w", err)
	}

	if s.cache != nil {
		ttl := expiresAt.Sub(s.now())
		if ttl > 0 {
			if err := s.cache.Set(ctx, revokedKeyPrefix+jti, 1, ttl).Err(); err != nil {
				s.logger.Warn("Failed to cache revoked token", zap.Error(err))
			}
		}
	}
	return nil
}

// IsRevoked reports whether jti was revoked. Cache errors fall through to the
// table; a table error is returned and callers must treat it as revoked.
func (s *revocationServiceImpl) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if s.cache != nil {
		n, err := s.cache.Exists(ctx, revokedKeyPrefix+jti).Result()
		switch {
		case err != nil:
			s.metrics.RecordRevocationCache("error")
			s.logger.Warn("Revocation cache lookup failed", zap.Error(err))
		case n > 0:
			s.metrics.RecordRevocationCache("hit")
			return true, nil
		default:
			s.metrics.RecordRevocationCache("miss")
		}
	}

	revoked, err := s.repo.Exists(ctx, jti)
	if err != nil {
		return true, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return revoked, nil
}

// PurgeExpired deletes blacklist rows whose expiry has passed
func (s *revocationServiceImpl) PurgeExpired(ctx context.Context) (int64, error) {
	purged, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge revoked tokens: %w", err)
	}
	s.metrics.AddRevokedTokensPurged(purged)
	return purged, nil
}
