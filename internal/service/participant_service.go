package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"points-board-api/internal/domain"
	"points-board-api/internal/dto"
	"points-board-api/internal/repository"
	"points-board-api/internal/response"
)

// ParticipantService defines the interface for participant business logic.
// Every mutation requires the caller to own the board.
type ParticipantService interface {
	AddParticipant(ctx context.Context, userID, boardID uint, req *dto.AddParticipantRequest) (uint, error)
	UpdateParticipants(ctx context.Context, userID, boardID uint, updates []dto.ParticipantUpdate) error
	DeleteParticipant(ctx context.Context, userID, participantID uint) error
	DeleteParticipantFromBoard(ctx context.Context, userID, boardID, participantID uint) error
}

// participantServiceImpl is the implementation of ParticipantService
type participantServiceImpl struct {
	participantRepo repository.ParticipantRepository
	boardRepo       repository.BoardRepository
	notifier        Notifier
	logger          *zap.Logger
}

// NewParticipantService creates a new instance of ParticipantService
func NewParticipantService(
	participantRepo repository.ParticipantRepository,
	boardRepo repository.BoardRepository,
	notifier Notifier,
	logger *zap.Logger,
) ParticipantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &participantServiceImpl{
		participantRepo: participantRepo,
		boardRepo:       boardRepo,
		notifier:        notifierOrNoop(notifier),
		logger:          logger,
	}
}

// AddParticipant inserts a participant into an owned board and returns its id
func (s *participantServiceImpl) AddParticipant(ctx context.Context, userID, boardID uint, req *dto.AddParticipantRequest) (uint, error) {
	if missing := missingParticipantFields(req.Name, req.Points); len(missing) > 0 {
		return 0, response.NewAppError(response.ErrCodeValidation,
			"Missing required fields: "+strings.Join(missing, ", "), "")
	}

	if _, err := loadOwnedBoard(ctx, s.boardRepo, userID, boardID); err != nil {
		return 0, err
	}

	participant := &domain.Participant{
		Name:           strings.TrimSpace(req.Name),
		Points:         *req.Points,
		BoardID:        boardID,
		AvatarSettings: dto.AvatarJSON(req.Avatar),
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		return 0, response.NewAppError(response.ErrCodeInternal, "Failed to add participant", err.Error())
	}

	s.notifier.BoardChanged(ctx, boardID)
	return participant.ID, nil
}

// UpdateParticipants validates every entry before writing anything, then
// applies all updates in one transaction
func (s *participantServiceImpl) UpdateParticipants(ctx context.Context, userID, boardID uint, updates []dto.ParticipantUpdate) error {
	if len(updates) == 0 {
		return response.NewAppError(response.ErrCodeValidation, "No participants provided", "")
	}

	var problems []string
	for i, u := range updates {
		missing := missingParticipantFields(u.Name, u.Points)
		if u.ID == nil {
			missing = append([]string{"id"}, missing...)
		}
		if len(missing) > 0 {
			problems = append(problems, fmt.Sprintf("index %d: missing %s", i, strings.Join(missing, ", ")))
		}
	}
	if len(problems) > 0 {
		return response.NewAppError(response.ErrCodeValidation,
			"Invalid participant data at "+strings.Join(problems, "; "), "")
	}

	if _, err := loadOwnedBoard(ctx, s.boardRepo, userID, boardID); err != nil {
		return err
	}

	changes := make([]repository.ParticipantChange, 0, len(updates))
	for _, u := range updates {
		avatar, avatarSet := dto.AvatarPatch(u.Avatar)
		changes = append(changes, repository.ParticipantChange{
			ID:        *u.ID,
			Name:      strings.TrimSpace(u.Name),
			Points:    *u.Points,
			Avatar:    avatar,
			AvatarSet: avatarSet,
		})
	}

	if err := s.participantRepo.UpdateBatch(ctx, boardID, changes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Participant not found in board", err.Error())
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to update participants", err.Error())
	}

	s.notifier.BoardChanged(ctx, boardID)
	return nil
}

// DeleteParticipant removes a participant addressed by its own id
func (s *participantServiceImpl) DeleteParticipant(ctx context.Context, userID, participantID uint) error {
	participant, err := s.participantRepo.FindByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Participant not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load participant", err.Error())
	}

	if _, err := loadOwnedBoard(ctx, s.boardRepo, userID, participant.BoardID); err != nil {
		return err
	}

	if err := s.participantRepo.Delete(ctx, participantID); err != nil {
		return deleteParticipantError(err)
	}

	s.notifier.BoardChanged(ctx, participant.BoardID)
	return nil
}

// DeleteParticipantFromBoard removes a participant that must belong to boardID
func (s *participantServiceImpl) DeleteParticipantFromBoard(ctx context.Context, userID, boardID, participantID uint) error {
	if _, err := loadOwnedBoard(ctx, s.boardRepo, userID, boardID); err != nil {
		return err
	}

	if err := s.participantRepo.DeleteFromBoard(ctx, boardID, participantID); err != nil {
		return deleteParticipantError(err)
	}

	s.notifier.BoardChanged(ctx, boardID)
	return nil
}

func deleteParticipantError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewAppError(response.ErrCodeNotFound, "Participant not found", "")
	}
	return response.NewAppError(response.ErrCodeInternal, "Failed to delete participant", err.Error())
}

// missingParticipantFields lists absent required fields by JSON name
func missingParticipantFields(name string, points *int) []string {
	var missing []string
	if strings.TrimSpace(name) == "" {
		missing = append(missing, "name")
	}
	if points == nil {
		missing = append(missing, "points")
	}
	return missing
}
