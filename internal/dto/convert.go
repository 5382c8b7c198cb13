package dto

import (
	"encoding/json"

	"points-board-api/internal/domain"
)

// NewParticipantResponse converts a participant model
func NewParticipantResponse(p *domain.Participant) ParticipantResponse {
	resp := ParticipantResponse{
		ID:      p.ID,
		Name:    p.Name,
		Points:  p.Points,
		BoardID: p.BoardID,
	}
	// a NULL column can scan back as the literal null
	if avatar := AvatarJSON(json.RawMessage(p.AvatarSettings)); avatar != nil {
		resp.Avatar = json.RawMessage(avatar)
	}
	return resp
}

// NewBoardResponse converts a board model; participants keep the order they
// were loaded in
func NewBoardResponse(b *domain.Board) *BoardResponse {
	participants := make([]ParticipantResponse, 0, len(b.Participants))
	for i := range b.Participants {
		participants = append(participants, NewParticipantResponse(&b.Participants[i]))
	}
	return &BoardResponse{
		ID:           b.ID,
		Name:         b.Name,
		EndTime:      b.EndTime,
		UserID:       b.UserID,
		Participants: participants,
	}
}

// NewBoardSummaryResponses converts list rows
func NewBoardSummaryResponses(rows []domain.BoardSummary) []BoardSummaryResponse {
	out := make([]BoardSummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, BoardSummaryResponse{
			ID:               r.ID,
			Name:             r.Name,
			EndTime:          r.EndTime,
			UserID:           r.UserID,
			ParticipantCount: r.ParticipantCount,
		})
	}
	return out
}
