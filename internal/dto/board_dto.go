package dto

import "time"

// CreateBoardRequest represents the request to create a board
type CreateBoardRequest struct {
	Name    string     `json:"name" validate:"required,max=255"`
	EndTime *time.Time `json:"endTime" validate:"required"`
}

// BoardResponse is a board with its participants ordered by points descending
type BoardResponse struct {
	ID           uint                  `json:"id"`
	Name         string                `json:"name"`
	EndTime      time.Time             `json:"endTime"`
	UserID       uint                  `json:"userId"`
	Participants []ParticipantResponse `json:"participants"`
}

// BoardSummaryResponse is a board header annotated with its participant count
type BoardSummaryResponse struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	EndTime          time.Time `json:"endTime"`
	UserID           uint      `json:"userId"`
	ParticipantCount int64     `json:"participantCount"`
}
