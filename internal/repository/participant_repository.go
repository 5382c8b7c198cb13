package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"points-board-api/internal/domain"
)

// ParticipantRepository defines the interface for participant data access
type ParticipantRepository interface {
	Create(ctx context.Context, participant *domain.Participant) error
	FindByID(ctx context.Context, id uint) (*domain.Participant, error)
	FindByBoardID(ctx context.Context, boardID uint) ([]*domain.Participant, error)
	UpdateBatch(ctx context.Context, boardID uint, changes []ParticipantChange) error
	Delete(ctx context.Context, id uint) error
	DeleteFromBoard(ctx context.Context, boardID, id uint) error
}

// ParticipantChange is one entry of a batch update. The avatar column is
// written only when AvatarSet; a nil Avatar then clears it.
type ParticipantChange struct {
	ID        uint
	Name      string
	Points    int
	Avatar    datatypes.JSON
	AvatarSet bool
}

// participantRepositoryImpl is the GORM implementation of ParticipantRepository
type participantRepositoryImpl struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new instance of ParticipantRepository
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepositoryImpl{db: db}
}

func (r *participantRepositoryImpl) Create(ctx context.Context, participant *domain.Participant) error {
	return r.db.WithContext(ctx).Omit("Board").Create(participant).Error
}

func (r *participantRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Participant, error) {
	var participant domain.Participant
	if err := r.db.WithContext(ctx).First(&participant, id).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindByBoardID returns the board's participants ordered by points descending
func (r *participantRepositoryImpl) FindByBoardID(ctx context.Context, boardID uint) ([]*domain.Participant, error) {
	var participants []*domain.Participant
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("points DESC").
		Order("id ASC").
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// UpdateBatch applies every change in a single transaction. Each participant
// must belong to boardID; a missing one aborts and rolls back the batch with
// a wrapped gorm.ErrRecordNotFound.
func (r *participantRepositoryImpl) UpdateBatch(ctx context.Context, boardID uint, changes []ParticipantChange) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range changes {
			fields := map[string]interface{}{
				"name":   c.Name,
				"points": c.Points,
			}
			if c.AvatarSet {
				if c.Avatar == nil {
					fields["avatar_settings"] = gorm.Expr("NULL")
				} else {
					fields["avatar_settings"] = c.Avatar
				}
			}

			result := tx.Model(&domain.Participant{}).
				Where("id = ? AND board_id = ?", c.ID, boardID).
				Updates(fields)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return notFound("participant", c.ID)
			}
		}
		return nil
	})
}

// Delete removes one participant by id
func (r *participantRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.deleteWhere(ctx, id, "id = ?", id)
}

// DeleteFromBoard removes one participant only if it belongs to boardID
func (r *participantRepositoryImpl) DeleteFromBoard(ctx context.Context, boardID, id uint) error {
	return r.deleteWhere(ctx, id, "id = ? AND board_id = ?", id, boardID)
}

func (r *participantRepositoryImpl) deleteWhere(ctx context.Context, id uint, query string, args ...interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where(query, args...).Delete(&domain.Participant{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return notFound("participant", id)
		}
		return nil
	})
}
