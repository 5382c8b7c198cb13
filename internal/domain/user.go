package domain

import "time"

// User is an account that owns boards. PasswordHash is never serialized.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
