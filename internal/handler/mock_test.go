package handler

import (
	"context"

	"points-board-api/internal/dto"
	"points-board-api/internal/service"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	RegisterFunc      func(ctx context.Context, req *dto.CredentialsRequest) (uint, error)
	LoginFunc         func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	LogoutFunc        func(ctx context.Context, claims *service.Claims) error
	MeFunc            func(ctx context.Context, userID uint) (*dto.UserResponse, error)
	ValidateTokenFunc func(ctx context.Context, raw string) (*service.Claims, error)
}

func (m *MockAuthService) Register(ctx context.Context, req *dto.CredentialsRequest) (uint, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return 1, nil
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return &dto.LoginResponse{}, nil
}

func (m *MockAuthService) Logout(ctx context.Context, claims *service.Claims) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, claims)
	}
	return nil
}

func (m *MockAuthService) Me(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, userID)
	}
	return &dto.UserResponse{ID: userID}, nil
}

func (m *MockAuthService) ValidateToken(ctx context.Context, raw string) (*service.Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, raw)
	}
	return nil, nil
}

// MockBoardService is a mock implementation of BoardService
type MockBoardService struct {
	CreateBoardFunc func(ctx context.Context, userID uint, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	GetBoardFunc    func(ctx context.Context, boardID uint) (*dto.BoardResponse, error)
	ListBoardsFunc  func(ctx context.Context, userID uint) ([]dto.BoardSummaryResponse, error)
	DeleteBoardFunc func(ctx context.Context, userID, boardID uint) error
}

func (m *MockBoardService) CreateBoard(ctx context.Context, userID uint, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	if m.CreateBoardFunc != nil {
		return m.CreateBoardFunc(ctx, userID, req)
	}
	return &dto.BoardResponse{}, nil
}

func (m *MockBoardService) GetBoard(ctx context.Context, boardID uint) (*dto.BoardResponse, error) {
	if m.GetBoardFunc != nil {
		return m.GetBoardFunc(ctx, boardID)
	}
	return &dto.BoardResponse{ID: boardID}, nil
}

func (m *MockBoardService) ListBoards(ctx context.Context, userID uint) ([]dto.BoardSummaryResponse, error) {
	if m.ListBoardsFunc != nil {
		return m.ListBoardsFunc(ctx, userID)
	}
	return []dto.BoardSummaryResponse{}, nil
}

func (m *MockBoardService) DeleteBoard(ctx context.Context, userID, boardID uint) error {
	if m.DeleteBoardFunc != nil {
		return m.DeleteBoardFunc(ctx, userID, boardID)
	}
	return nil
}

// MockParticipantService is a mock implementation of ParticipantService
type MockParticipantService struct {
	AddParticipantFunc             func(ctx context.Context, userID, boardID uint, req *dto.AddParticipantRequest) (uint, error)
	UpdateParticipantsFunc         func(ctx context.Context, userID, boardID uint, updates []dto.ParticipantUpdate) error
	DeleteParticipantFunc          func(ctx context.Context, userID, participantID uint) error
	DeleteParticipantFromBoardFunc func(ctx context.Context, userID, boardID, participantID uint) error
}

func (m *MockParticipantService) AddParticipant(ctx context.Context, userID, boardID uint, req *dto.AddParticipantRequest) (uint, error) {
	if m.AddParticipantFunc != nil {
		return m.AddParticipantFunc(ctx, userID, boardID, req)
	}
	return 1, nil
}

func (m *MockParticipantService) UpdateParticipants(ctx context.Context, userID, boardID uint, updates []dto.ParticipantUpdate) error {
	if m.UpdateParticipantsFunc != nil {
		return m.UpdateParticipantsFunc(ctx, userID, boardID, updates)
	}
	return nil
}

func (m *MockParticipantService) DeleteParticipant(ctx context.Context, userID, participantID uint) error {
	if m.DeleteParticipantFunc != nil {
		return m.DeleteParticipantFunc(ctx, userID, participantID)
	}
	return nil
}

func (m *MockParticipantService) DeleteParticipantFromBoard(ctx context.Context, userID, boardID, participantID uint) error {
	if m.DeleteParticipantFromBoardFunc != nil {
		return m.DeleteParticipantFromBoardFunc(ctx, userID, boardID, participantID)
	}
	return nil
}
