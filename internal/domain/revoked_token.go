package domain

import "time"

// RevokedToken is a blacklist entry keyed by the JWT's jti claim
type RevokedToken struct {
	JTI       string    `gorm:"column:jti;primaryKey;type:varchar(64)" json:"jti"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index:idx_blacklist_expires_at" json:"expiresAt"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

// TableName specifies the table name for RevokedToken
func (RevokedToken) TableName() string {
	return "blacklist"
}
