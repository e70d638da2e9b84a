package model

import "time"

// User stores Telegram user metadata and membership state.
// IsMember flips to true once a join request for the configured
// channel is on record; it is never cleared automatically.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	TelegramID int64     `gorm:"uniqueIndex" json:"id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	IsMember   bool      `gorm:"default:false" json:"is_member"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
