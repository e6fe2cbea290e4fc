package query

import (
	"context"

	"github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/pkg/auth"
)

// GetUserQuery fetches one profile as seen by Viewer
type GetUserQuery struct {
	Viewer auth.Actor
	ID     uint
}

// GetUserHandler handles get user query
type GetUserHandler struct {
	users domain.UserRepository
	subs  domain.SubscriptionRepository
}

func NewGetUserHandler(users domain.UserRepository, subs domain.SubscriptionRepository) *GetUserHandler {
	return &GetUserHandler{users: users, subs: subs}
}

func (h *GetUserHandler) Handle(ctx context.Context, q GetUserQuery) (*domain.Profile, error) {
	user, err := h.users.FindByID(ctx, q.ID)
	if err != nil {
		return nil, err
	}

	subscribed := false
	if q.Viewer.Authenticated() && q.Viewer.UserID != user.ID {
		if subscribed, err = h.subs.Exists(ctx, q.Viewer.UserID, user.ID); err != nil {
			return nil, err
		}
	}

	profile := domain.NewProfile(user, subscribed)
	return &profile, nil
}
