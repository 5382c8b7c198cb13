package job

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const purgeTimeout = time.Minute

// RevokedTokenPurger deletes expired revocation entries
type RevokedTokenPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// BlacklistPurgeJob removes blacklist rows whose tokens can no longer be used
type BlacklistPurgeJob struct {
	purger RevokedTokenPurger
	logger *zap.Logger
}

// NewBlacklistPurgeJob creates a new BlacklistPurgeJob instance
func NewBlacklistPurgeJob(purger RevokedTokenPurger, logger *zap.Logger) *BlacklistPurgeJob {
	return &BlacklistPurgeJob{
		purger: purger,
		logger: logger,
	}
}

// Run executes the purge job
func (j *BlacklistPurgeJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	purged, err := j.purger.PurgeExpired(ctx)
	if err != nil {
		j.logger.Error("Failed to purge expired revoked tokens", zap.Error(err))
		return
	}

	if purged == 0 {
		j.logger.Debug("No expired revoked tokens found")
		return
	}

	j.logger.Info("Purged expired revoked tokens", zap.Int64("count", purged))
}
