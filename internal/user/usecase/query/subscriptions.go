package query

import (
	"context"

	"github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/errs"
)

// ListSubscriptionsQuery lists the authors Viewer follows
type ListSubscriptionsQuery struct {
	Viewer       auth.Actor
	Limit        int
	Offset       int
	RecipesLimit int // <= 0 shows every recipe
}

// ListSubscriptionsResult is one page of author cards and the total count
type ListSubscriptionsResult struct {
	Authors []domain.AuthorCard
	Total   int64
}

// AuthorCardQuery renders one author card for Viewer
type AuthorCardQuery struct {
	Viewer       auth.Actor
	AuthorID     uint
	RecipesLimit int
}

// SubscriptionsHandler serves the subscription views
type SubscriptionsHandler struct {
	users domain.UserRepository
	subs  domain.SubscriptionRepository
	feed  domain.RecipeFeed
}

func NewSubscriptionsHandler(users domain.UserRepository, subs domain.SubscriptionRepository, feed domain.RecipeFeed) *SubscriptionsHandler {
	return &SubscriptionsHandler{users: users, subs: subs, feed: feed}
}

// List returns the page of followed authors with their recipe previews
func (h *SubscriptionsHandler) List(ctx context.Context, q ListSubscriptionsQuery) (*ListSubscriptionsResult, error) {
	if !q.Viewer.Authenticated() {
		return nil, errs.Unauthorized("authentication credentials were not provided")
	}

	total, err := h.subs.CountAuthors(ctx, q.Viewer.UserID)
	if err != nil {
		return nil, err
	}
	authors, err := h.subs.ListAuthors(ctx, q.Viewer.UserID, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}

	cards, err := h.cards(ctx, authors, q.RecipesLimit, func(uint) bool { return true })
	if err != nil {
		return nil, err
	}
	return &ListSubscriptionsResult{Authors: cards, Total: total}, nil
}

// Card returns a single author card, as shown after subscribing
func (h *SubscriptionsHandler) Card(ctx context.Context, q AuthorCardQuery) (*domain.AuthorCard, error) {
	author, err := h.users.FindByID(ctx, q.AuthorID)
	if err != nil {
		return nil, err
	}

	subscribed := false
	if q.Viewer.Authenticated() {
		if subscribed, err = h.subs.Exists(ctx, q.Viewer.UserID, author.ID); err != nil {
			return nil, err
		}
	}

	cards, err := h.cards(ctx, []domain.User{*author}, q.RecipesLimit, func(uint) bool { return subscribed })
	if err != nil {
		return nil, err
	}
	return &cards[0], nil
}

func (h *SubscriptionsHandler) cards(ctx context.Context, authors []domain.User, recipesLimit int, subscribed func(uint) bool) ([]domain.AuthorCard, error) {
	ids := make([]uint, len(authors))
	for i := range authors {
		ids[i] = authors[i].ID
	}

	recipes, err := h.feed.RecipesByAuthors(ctx, ids, recipesLimit)
	if err != nil {
		return nil, err
	}
	counts, err := h.feed.CountByAuthors(ctx, ids)
	if err != nil {
		return nil, err
	}

	cards := make([]domain.AuthorCard, len(authors))
	for i := range authors {
		id := authors[i].ID
		briefs := recipes[id]
		if briefs == nil {
			briefs = []domain.RecipeBrief{}
		}
		cards[i] = domain.AuthorCard{
			Profile:      domain.NewProfile(&authors[i], subscribed(id)),
			Recipes:      briefs,
			RecipesCount: counts[id],
		}
	}
	return cards, nil
}
