package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"borsabot/internal/model"
)

// JoinRequestRepository handles channel join-request records.
type JoinRequestRepository struct {
	db *gorm.DB
}

func NewJoinRequestRepository(db *gorm.DB) *JoinRequestRepository {
	return &JoinRequestRepository{db: db}
}

// Upsert records a join request keyed by (user, chat). A repeated
// request resets status to pending and refreshes the request time.
func (r *JoinRequestRepository) Upsert(ctx context.Context, req model.JoinRequest) (*model.JoinRequest, error) {
	db := r.db.WithContext(ctx)

	var existing model.JoinRequest
	err := db.Where("user_id = ? AND chat_id = ?", req.UserID, req.ChatID).First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"username":     req.Username,
			"first_name":   req.FirstName,
			"last_name":    req.LastName,
			"bio":          req.Bio,
			"status":       model.JoinStatusPending,
			"requested_at": time.Now(),
			"processed_at": nil,
			"processed_by": nil,
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update join request: %w", err)
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		req.Status = model.JoinStatusPending
		req.RequestedAt = time.Now()
		if err := db.Create(&req).Error; err != nil {
			return nil, fmt.Errorf("create join request: %w", err)
		}
		return &req, nil
	default:
		return nil, fmt.Errorf("find join request: %w", err)
	}
}

// Find returns the join request for (user, chat), or nil when none exists.
func (r *JoinRequestRepository) Find(ctx context.Context, userID, chatID int64) (*model.JoinRequest, error) {
	var req model.JoinRequest
	err := r.db.WithContext(ctx).Where("user_id = ? AND chat_id = ?", userID, chatID).First(&req).Error
	switch {
	case err == nil:
		return &req, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find join request: %w", err)
	}
}

// UpdateStatus marks a request approved or declined and records who
// processed it.
func (r *JoinRequestRepository) UpdateStatus(ctx context.Context, userID, chatID int64, status string, processedBy *int64) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&model.JoinRequest{}).
		Where("user_id = ? AND chat_id = ?", userID, chatID).
		Updates(map[string]interface{}{
			"status":       status,
			"processed_at": now,
			"processed_by": processedBy,
		})
	if res.Error != nil {
		return fmt.Errorf("update join request status: %w", res.Error)
	}
	return nil
}

// ListPending returns unprocessed join requests, newest first.
func (r *JoinRequestRepository) ListPending(ctx context.Context) ([]model.JoinRequest, error) {
	var reqs []model.JoinRequest
	if err := r.db.WithContext(ctx).
		Where("status = ?", model.JoinStatusPending).
		Order("requested_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("list pending join requests: %w", err)
	}
	return reqs, nil
}
