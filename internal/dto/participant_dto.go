package dto

import "encoding/json"

// AddParticipantRequest represents the request to add a participant to a board
type AddParticipantRequest struct {
	Name   string          `json:"name" validate:"required,max=255"`
	Points *int            `json:"points" validate:"required"`
	Avatar json.RawMessage `json:"avatar,omitempty"`
}

// ParticipantUpdate is one entry of a bulk participant update
type ParticipantUpdate struct {
	ID     *uint           `json:"id" validate:"required"`
	Name   string          `json:"name" validate:"required,max=255"`
	Points *int            `json:"points" validate:"required"`
	Avatar json.RawMessage `json:"avatar,omitempty"`
}

// DeleteParticipantRequest is the optional body of the delete-participant route.
// When present, the path id names the board and ID names the participant.
type DeleteParticipantRequest struct {
	ID *uint `json:"id" validate:"required"`
}

// ParticipantResponse represents a participant
type ParticipantResponse struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Points  int             `json:"points"`
	BoardID uint            `json:"boardId"`
	Avatar  json.RawMessage `json:"avatar,omitempty"`
}
