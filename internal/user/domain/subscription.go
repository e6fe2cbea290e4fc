package domain

import (
	"context"
	"time"
)

// Subscription is a follower -> author edge; a user never follows themselves
type Subscription struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_subscription_pair;check:chk_subscription_not_self,user_id <> author_id"`
	AuthorID  uint      `json:"author_id" gorm:"not null;uniqueIndex:idx_subscription_pair;index"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// SubscriptionRepository defines the contract for follower edges
type SubscriptionRepository interface {
	// Add inserts the edge; a duplicate is a validation error
	Add(ctx context.Context, userID, authorID uint) error
	// Remove deletes the edge and reports whether it existed
	Remove(ctx context.Context, userID, authorID uint) (bool, error)
	Exists(ctx context.Context, userID, authorID uint) (bool, error)
	// SubscribedTo returns the subset of authorIDs userID follows
	SubscribedTo(ctx context.Context, userID uint, authorIDs []uint) (map[uint]bool, error)
	ListAuthors(ctx context.Context, userID uint, limit, offset int) ([]User, error)
	CountAuthors(ctx context.Context, userID uint) (int64, error)
}

// RecipeBrief is the short recipe form shown on subscription cards
type RecipeBrief struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeFeed reads authors' recipes for subscription views
type RecipeFeed interface {
	// RecipesByAuthors returns up to limit newest recipes per author; limit <= 0 means all
	RecipesByAuthors(ctx context.Context, authorIDs []uint, limit int) (map[uint][]RecipeBrief, error)
	CountByAuthors(ctx context.Context, authorIDs []uint) (map[uint]int64, error)
}
