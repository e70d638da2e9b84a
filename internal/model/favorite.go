package model

import "time"

// Favorite links a user to a tracked stock code.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"uniqueIndex:idx_fav_user_stock" json:"user_id"`
	StockCode string    `gorm:"uniqueIndex:idx_fav_user_stock" json:"stock_code"`
	CreatedAt time.Time `json:"created_at"`
}
