package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"points-board-api/internal/domain"
	"points-board-api/internal/repository"
	"points-board-api/internal/response"
)

// loadOwnedBoard fetches the board header and checks userID owns it
func loadOwnedBoard(ctx context.Context, boardRepo repository.BoardRepository, userID, boardID uint) (*domain.Board, error) {
	board, err := boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load board", err.Error())
	}

	if !board.IsOwnedBy(userID) {
		return nil, response.NewAppError(response.ErrCodeForbidden, "You do not have permission to modify this board", "")
	}
	return board, nil
}
