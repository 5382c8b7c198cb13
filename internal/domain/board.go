package domain

import "time"

// Board is a named competition with an end time, owned by a user
type Board struct {
	BaseModel
	Name         string        `gorm:"type:varchar(255);not null" json:"name"`
	EndTime      time.Time     `gorm:"column:end_time;not null;index:idx_boards_end_time" json:"endTime"`
	UserID       uint          `gorm:"column:user_id;not null;index:idx_boards_user_id" json:"userId"`
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	Participants []Participant `gorm:"foreignKey:BoardID" json:"participants,omitempty"`
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "boards"
}

// IsOwnedBy reports whether userID is the board's recorded owner
func (b *Board) IsOwnedBy(userID uint) bool {
	return b.UserID == userID
}

// BoardSummary is a board row annotated with its participant count
type BoardSummary struct {
	ID               uint
	Name             string
	EndTime          time.Time
	UserID           uint
	ParticipantCount int64
}
