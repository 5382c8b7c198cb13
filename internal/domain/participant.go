package domain

import "gorm.io/datatypes"

// Participant is a named entrant on a board with a mutable point total.
// AvatarSettings is an opaque JSON document of display preferences.
type Participant struct {
	BaseModel
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Points         int            `gorm:"type:bigint;not null;default:0" json:"points"`
	BoardID        uint           `gorm:"column:board_id;not null;index:idx_board_participants_board_id" json:"boardId"`
	AvatarSettings datatypes.JSON `gorm:"column:avatar_settings;type:jsonb" json:"avatar,omitempty"`
	Board          Board          `gorm:"foreignKey:BoardID" json:"-"`
}

// TableName specifies the table name for Participant
func (Participant) TableName() string {
	return "board_participants"
}
