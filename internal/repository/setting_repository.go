package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"borsabot/internal/model"
)

// SettingRepository handles the operator key/value settings.
type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get returns the value for key, or "" when the key is not set.
func (r *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	var setting model.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	switch {
	case err == nil:
		return setting.Value, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "", nil
	default:
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
}

// Set upserts the value for key.
func (r *SettingRepository) Set(ctx context.Context, key, value string) error {
	var setting model.Setting
	db := r.db.WithContext(ctx)
	err := db.Where("key = ?", key).First(&setting).Error
	switch {
	case err == nil:
		if err := db.Model(&setting).Update("value", value).Error; err != nil {
			return fmt.Errorf("update setting %s: %w", key, err)
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = model.Setting{Key: key, Value: value}
		if err := db.Create(&setting).Error; err != nil {
			return fmt.Errorf("create setting %s: %w", key, err)
		}
		return nil
	default:
		return fmt.Errorf("find setting %s: %w", key, err)
	}
}

// All returns the settings the admin panel exposes, keyed by name.
// Unset keys are omitted.
func (r *SettingRepository) All(ctx context.Context) (map[string]string, error) {
	var settings []model.Setting
	if err := r.db.WithContext(ctx).Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	return out, nil
}
