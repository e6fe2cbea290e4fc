package query

import (
	"context"
	"time"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/internal/recipe/shoppinglist"
	userdomain "github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/errs"
	"github.com/tair/foodgram/pkg/logger"
	"github.com/tair/foodgram/pkg/metrics"
)

// ShoppingListHandler aggregates the viewer's cart into a shopping list
type ShoppingListHandler struct {
	users   userdomain.UserRepository
	cart    domain.ShoppingCartReader
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewShoppingListHandler(users userdomain.UserRepository, cart domain.ShoppingCartReader, m *metrics.Metrics) *ShoppingListHandler {
	return &ShoppingListHandler{users: users, cart: cart, metrics: m, now: time.Now}
}

// Handle builds the list; an empty cart yields a list without lines or recipes
func (h *ShoppingListHandler) Handle(ctx context.Context, viewer auth.Actor) (*shoppinglist.List, error) {
	if !viewer.Authenticated() {
		return nil, errs.Unauthorized("authentication credentials were not provided")
	}

	user, err := h.users.FindByID(ctx, viewer.UserID)
	if err != nil {
		return nil, err
	}
	lines, err := h.cart.CartLines(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	names, err := h.cart.CartRecipeNames(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	h.metrics.ShoppingListGenerated()
	logger.Debug(ctx).Uint("user_id", user.ID).Int("lines", len(lines)).Int("recipes", len(names)).Msg("Shopping list generated")

	return &shoppinglist.List{
		UserID:      user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		GeneratedAt: h.now(),
		Lines:       lines,
		Recipes:     names,
	}, nil
}
