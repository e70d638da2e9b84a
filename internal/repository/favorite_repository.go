package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"borsabot/internal/model"
)

// FavoriteRepository handles user stock watchlists.
type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]model.Favorite, error) {
	var favorites []model.Favorite
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favorites, nil
}

// Add stores a favorite; adding the same stock twice is a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, userID int64, stockCode string) error {
	fav := model.Favorite{UserID: userID, StockCode: strings.ToUpper(stockCode)}
	err := r.db.WithContext(ctx).Create(&fav).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) && !isDuplicateErr(err) {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID int64, stockCode string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND stock_code = ?", userID, strings.ToUpper(stockCode)).
		Delete(&model.Favorite{}).Error; err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) Clear(ctx context.Context, userID int64) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Favorite{}).Error; err != nil {
		return fmt.Errorf("clear favorites: %w", err)
	}
	return nil
}

// isDuplicateErr catches unique-constraint violations the drivers do
// not translate to gorm.ErrDuplicatedKey (SQLite in particular).
func isDuplicateErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "duplicate key")
}
