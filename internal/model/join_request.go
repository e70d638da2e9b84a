package model

import "time"

// Join request statuses. The gate checks row existence, not status;
// operators change status via approve/decline without revoking access.
const (
	JoinStatusPending  = "pending"
	JoinStatusApproved = "approved"
	JoinStatusDeclined = "declined"
)

// JoinRequest records a user's request to join the private channel.
// A row for (UserID, configured channel) is the authorization signal
// for the command gate.
type JoinRequest struct {
	ID          uint       `gorm:"primaryKey" json:"-"`
	UserID      int64      `gorm:"uniqueIndex:idx_join_user_chat" json:"user_id"`
	ChatID      int64      `gorm:"uniqueIndex:idx_join_user_chat" json:"chat_id"`
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Bio         string     `json:"bio"`
	Status      string     `gorm:"default:pending" json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	ProcessedBy *int64     `json:"processed_by,omitempty"`
}
