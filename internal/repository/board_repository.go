package repository

import (
	"context"

	"gorm.io/gorm"

	"points-board-api/internal/domain"
)

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	FindByID(ctx context.Context, id uint) (*domain.Board, error)
	FindByIDWithParticipants(ctx context.Context, id uint) (*domain.Board, error)
	ListSummariesByUser(ctx context.Context, userID uint) ([]domain.BoardSummary, error)
	DeleteWithParticipants(ctx context.Context, id uint) error
}

// boardRepositoryImpl is the GORM implementation of BoardRepository
type boardRepositoryImpl struct {
	db *gorm.DB
}

// NewBoardRepository creates a new instance of BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepositoryImpl{db: db}
}

// Create inserts a board; the generated id is written back into board
func (r *boardRepositoryImpl) Create(ctx context.Context, board *domain.Board) error {
	return r.db.WithContext(ctx).Omit("User", "Participants").Create(board).Error
}

// FindByID fetches the board header only
func (r *boardRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Board, error) {
	var board domain.Board
	if err := r.db.WithContext(ctx).First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindByIDWithParticipants fetches the board with participants ordered by
// points descending, ties broken by id
func (r *boardRepositoryImpl) FindByIDWithParticipants(ctx context.Context, id uint) (*domain.Board, error) {
	var board domain.Board
	err := r.db.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("points DESC").Order("id ASC")
		}).
		First(&board, id).Error
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// ListSummariesByUser lists the user's boards with participant counts,
// soonest end time first
func (r *boardRepositoryImpl) ListSummariesByUser(ctx context.Context, userID uint) ([]domain.BoardSummary, error) {
	summaries := make([]domain.BoardSummary, 0)
	err := r.db.WithContext(ctx).
		Table("boards").
		Select("boards.id, boards.name, boards.end_time, boards.user_id, COUNT(board_participants.id) AS participant_count").
		Joins("LEFT JOIN board_participants ON board_participants.board_id = boards.id").
		Where("boards.user_id = ?", userID).
		Group("boards.id, boards.name, boards.end_time, boards.user_id").
		Order("boards.end_time ASC").
		Order("boards.id ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// DeleteWithParticipants removes the board's participants and then the board
// in one transaction. Returns gorm.ErrRecordNotFound (wrapped) when the board
// row does not exist; nothing is committed in that case.
func (r *boardRepositoryImpl) DeleteWithParticipants(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", id).Delete(&domain.Participant{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.Board{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return notFound("board", id)
		}
		return nil
	})
}
