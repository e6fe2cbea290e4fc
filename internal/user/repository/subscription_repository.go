package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/pkg/errs"
)

// GormSubscriptionRepository implements domain.SubscriptionRepository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GORM subscription repository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// Add subscribes userID to authorID
func (r *GormSubscriptionRepository) Add(ctx context.Context, userID, authorID uint) error {
	sub := &domain.Subscription{UserID: userID, AuthorID: authorID}
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Validation("already subscribed to this author")
		}
		if errors.Is(err, gorm.ErrCheckConstraintViolated) {
			return errs.Validation("cannot subscribe to yourself")
		}
		return fmt.Errorf("failed to add subscription: %w", err)
	}
	return nil
}

// Remove deletes the subscription and reports whether it existed
func (r *GormSubscriptionRepository) Remove(ctx context.Context, userID, authorID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&domain.Subscription{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to remove subscription: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Exists reports whether userID follows authorID
func (r *GormSubscriptionRepository) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return count > 0, nil
}

// SubscribedTo returns which of authorIDs userID follows
func (r *GormSubscriptionRepository) SubscribedTo(ctx context.Context, userID uint, authorIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool, len(authorIDs))
	if userID == 0 || len(authorIDs) == 0 {
		return result, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// ListAuthors returns the followed authors, most recently followed first
func (r *GormSubscriptionRepository) ListAuthors(ctx context.Context, userID uint, limit, offset int) ([]domain.User, error) {
	var authors []domain.User
	query := r.db.WithContext(ctx).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID).
		Order("subscriptions.id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return authors, nil
}

// CountAuthors returns the number of authors userID follows
func (r *GormSubscriptionRepository) CountAuthors(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	return count, nil
}
