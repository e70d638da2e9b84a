package model

import "time"

// Setting is an operator-configured key/value pair
// (main_channel_id, main_channel_link, invite_link).
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Key       string    `gorm:"uniqueIndex" json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Setting keys the bot and the admin surface agree on.
const (
	SettingMainChannelID   = "main_channel_id"
	SettingMainChannelLink = "main_channel_link"
	SettingInviteLink      = "invite_link"
)
