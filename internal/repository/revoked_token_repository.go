package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"points-board-api/internal/domain"
)

// RevokedTokenRepository is the durable token revocation store ("blacklist")
type RevokedTokenRepository interface {
	Add(ctx context.Context, jti string, expiresAt time.Time) error
	Exists(ctx context.Context, jti string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type revokedTokenRepositoryImpl struct {
	db *gorm.DB
}

// NewRevokedTokenRepository creates a new instance of RevokedTokenRepository
func NewRevokedTokenRepository(db *gorm.DB) RevokedTokenRepository {
	return &revokedTokenRepositoryImpl{db: db}
}

// Add inserts the jti; re-adding an existing jti is a no-op
func (r *revokedTokenRepositoryImpl) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	entry := &domain.RevokedToken{
		JTI:       jti,
		ExpiresAt: expiresAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entry).Error
}

func (r *revokedTokenRepositoryImpl) Exists(ctx context.Context, jti string) (bool, error) {
	var entry domain.RevokedToken
	err := r.db.WithContext(ctx).
		Select("jti").
		Where("jti = ?", jti).
		Take(&entry).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// DeleteExpired purges entries whose expiry has passed and returns how many
// rows were removed
func (r *revokedTokenRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&domain.RevokedToken{})
	return result.RowsAffected, result.Error
}
