package service

import (
	"context"
	"sync"
	"time"

	"points-board-api/internal/domain"
	"points-board-api/internal/repository"
)

// MockBoardRepository is a mock implementation of BoardRepository
type MockBoardRepository struct {
	CreateFunc                   func(ctx context.Context, board *domain.Board) error
	FindByIDFunc                 func(ctx context.Context, id uint) (*domain.Board, error)
	FindByIDWithParticipantsFunc func(ctx context.Context, id uint) (*domain.Board, error)
	ListSummariesByUserFunc      func(ctx context.Context, userID uint) ([]domain.BoardSummary, error)
	DeleteWithParticipantsFunc   func(ctx context.Context, id uint) error
}

func (m *MockBoardRepository) Create(ctx context.Context, board *domain.Board) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) FindByID(ctx context.Context, id uint) (*domain.Board, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBoardRepository) FindByIDWithParticipants(ctx context.Context, id uint) (*domain.Board, error) {
	if m.FindByIDWithParticipantsFunc != nil {
		return m.FindByIDWithParticipantsFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBoardRepository) ListSummariesByUser(ctx context.Context, userID uint) ([]domain.BoardSummary, error) {
	if m.ListSummariesByUserFunc != nil {
		return m.ListSummariesByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBoardRepository) DeleteWithParticipants(ctx context.Context, id uint) error {
	if m.DeleteWithParticipantsFunc != nil {
		return m.DeleteWithParticipantsFunc(ctx, id)
	}
	return nil
}

// MockParticipantRepository is a mock implementation of ParticipantRepository
type MockParticipantRepository struct {
	CreateFunc          func(ctx context.Context, participant *domain.Participant) error
	FindByIDFunc        func(ctx context.Context, id uint) (*domain.Participant, error)
	FindByBoardIDFunc   func(ctx context.Context, boardID uint) ([]*domain.Participant, error)
	UpdateBatchFunc     func(ctx context.Context, boardID uint, changes []repository.ParticipantChange) error
	DeleteFunc          func(ctx context.Context, id uint) error
	DeleteFromBoardFunc func(ctx context.Context, boardID, id uint) error
}

func (m *MockParticipantRepository) Create(ctx context.Context, participant *domain.Participant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, participant)
	}
	return nil
}

func (m *MockParticipantRepository) FindByID(ctx context.Context, id uint) (*domain.Participant, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockParticipantRepository) FindByBoardID(ctx context.Context, boardID uint) ([]*domain.Participant, error) {
	if m.FindByBoardIDFunc != nil {
		return m.FindByBoardIDFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockParticipantRepository) UpdateBatch(ctx context.Context, boardID uint, changes []repository.ParticipantChange) error {
	if m.UpdateBatchFunc != nil {
		return m.UpdateBatchFunc(ctx, boardID, changes)
	}
	return nil
}

func (m *MockParticipantRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockParticipantRepository) DeleteFromBoard(ctx context.Context, boardID, id uint) error {
	if m.DeleteFromBoardFunc != nil {
		return m.DeleteFromBoardFunc(ctx, boardID, id)
	}
	return nil
}

// MockRevocationService is a mock implementation of RevocationService
type MockRevocationService struct {
	RevokeFunc       func(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevokedFunc    func(ctx context.Context, jti string) (bool, error)
	PurgeExpiredFunc func(ctx context.Context) (int64, error)
}

func (m *MockRevocationService) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, jti, expiresAt)
	}
	return nil
}

func (m *MockRevocationService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if m.IsRevokedFunc != nil {
		return m.IsRevokedFunc(ctx, jti)
	}
	return false, nil
}

func (m *MockRevocationService) PurgeExpired(ctx context.Context) (int64, error) {
	if m.PurgeExpiredFunc != nil {
		return m.PurgeExpiredFunc(ctx)
	}
	return 0, nil
}

// recordingNotifier captures notifications for assertions
type recordingNotifier struct {
	mu      sync.Mutex
	changed []uint
	deleted []uint
}

func (n *recordingNotifier) BoardChanged(_ context.Context, boardID uint) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, boardID)
}

func (n *recordingNotifier) BoardDeleted(boardID uint) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.deleted = append(n.deleted, boardID)
}
