package query

import (
	"context"

	"github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/pkg/auth"
)

// ListUsersQuery represents the query to list users page by page
type ListUsersQuery struct {
	Viewer auth.Actor
	Limit  int
	Offset int
}

// ListUsersResult is one page of profiles and the total count
type ListUsersResult struct {
	Users []domain.Profile
	Total int64
}

// ListUsersHandler handles list users query
type ListUsersHandler struct {
	users domain.UserRepository
	subs  domain.SubscriptionRepository
}

func NewListUsersHandler(users domain.UserRepository, subs domain.SubscriptionRepository) *ListUsersHandler {
	return &ListUsersHandler{users: users, subs: subs}
}

func (h *ListUsersHandler) Handle(ctx context.Context, q ListUsersQuery) (*ListUsersResult, error) {
	total, err := h.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	users, err := h.users.FindAll(ctx, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	subscribed, err := h.subs.SubscribedTo(ctx, q.Viewer.UserID, ids)
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, len(users))
	for i := range users {
		profiles[i] = domain.NewProfile(&users[i], subscribed[users[i].ID])
	}
	return &ListUsersResult{Users: profiles, Total: total}, nil
}
