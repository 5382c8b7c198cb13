package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"points-board-api/internal/domain"
	"points-board-api/internal/dto"
	"points-board-api/internal/metrics"
	"points-board-api/internal/repository"
	"points-board-api/internal/response"
)

// BoardService defines the interface for board business logic
type BoardService interface {
	CreateBoard(ctx context.Context, userID uint, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	GetBoard(ctx context.Context, boardID uint) (*dto.BoardResponse, error)
	ListBoards(ctx context.Context, userID uint) ([]dto.BoardSummaryResponse, error)
	DeleteBoard(ctx context.Context, userID, boardID uint) error
}

// boardServiceImpl is the implementation of BoardService
type boardServiceImpl struct {
	boardRepo repository.BoardRepository
	notifier  Notifier
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(
	boardRepo repository.BoardRepository,
	notifier Notifier,
	m *metrics.Metrics,
	logger *zap.Logger,
) BoardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &boardServiceImpl{
		boardRepo: boardRepo,
		notifier:  notifierOrNoop(notifier),
		metrics:   m,
		logger:    logger,
	}
}

// CreateBoard creates a board owned by userID
func (s *boardServiceImpl) CreateBoard(ctx context.Context, userID uint, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.EndTime == nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "Missing required fields: name, endTime", "")
	}

	board := &domain.Board{
		Name:    name,
		EndTime: req.EndTime.UTC(),
		UserID:  userID,
	}
	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create board", err.Error())
	}

	s.metrics.IncrementBoardCreated()
	s.logger.Info("Board created", zap.Uint("board_id", board.ID), zap.Uint("user_id", userID))
	return dto.NewBoardResponse(board), nil
}

// GetBoard returns the board with participants ordered by points descending
func (s *boardServiceImpl) GetBoard(ctx context.Context, boardID uint) (*dto.BoardResponse, error) {
	board, err := s.boardRepo.FindByIDWithParticipants(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}
	return dto.NewBoardResponse(board), nil
}

// ListBoards returns the caller's boards with participant counts, soonest end first
func (s *boardServiceImpl) ListBoards(ctx context.Context, userID uint) ([]dto.BoardSummaryResponse, error) {
	rows, err := s.boardRepo.ListSummariesByUser(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch boards", err.Error())
	}
	return dto.NewBoardSummaryResponses(rows), nil
}

// DeleteBoard removes an owned board together with its participants
func (s *boardServiceImpl) DeleteBoard(ctx context.Context, userID, boardID uint) error {
	if _, err := loadOwnedBoard(ctx, s.boardRepo, userID, boardID); err != nil {
		return err
	}

	if err := s.boardRepo.DeleteWithParticipants(ctx, boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete board", err.Error())
	}

	s.metrics.IncrementBoardDeleted()
	s.notifier.BoardDeleted(boardID)
	s.logger.Info("Board deleted", zap.Uint("board_id", boardID), zap.Uint("user_id", userID))
	return nil
}
