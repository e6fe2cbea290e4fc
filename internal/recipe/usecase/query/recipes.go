package query

import (
	"context"

	"github.com/tair/foodgram/internal/recipe/domain"
	userdomain "github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/pkg/auth"
)

// GetRecipeQuery loads one recipe as seen by Viewer
type GetRecipeQuery struct {
	Viewer auth.Actor
	ID     uint
}

// ListRecipesQuery selects a page of recipes. Favorited and InShoppingCart
// are ignored for anonymous viewers.
type ListRecipesQuery struct {
	Viewer         auth.Actor
	TagSlugs       []string
	AuthorID       uint
	Favorited      bool
	InShoppingCart bool
	Limit          int
	Offset         int
}

// ListRecipesResult is one page of recipe views and the total match count
type ListRecipesResult struct {
	Recipes []domain.RecipeView
	Total   int64
}

// RecipesHandler serves recipe detail and list views
type RecipesHandler struct {
	recipes   domain.RecipeRepository
	relations domain.RelationRepository
	subs      userdomain.SubscriptionRepository
}

func NewRecipesHandler(recipes domain.RecipeRepository, relations domain.RelationRepository, subs userdomain.SubscriptionRepository) *RecipesHandler {
	return &RecipesHandler{recipes: recipes, relations: relations, subs: subs}
}

func (h *RecipesHandler) Get(ctx context.Context, q GetRecipeQuery) (*domain.RecipeView, error) {
	recipe, err := h.recipes.FindDetailed(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	views, err := h.render(ctx, q.Viewer, []domain.Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (h *RecipesHandler) List(ctx context.Context, q ListRecipesQuery) (*ListRecipesResult, error) {
	filter := domain.RecipeFilter{
		TagSlugs: q.TagSlugs,
		AuthorID: q.AuthorID,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if q.Viewer.Authenticated() {
		if q.Favorited {
			filter.FavoritedBy = q.Viewer.UserID
		}
		if q.InShoppingCart {
			filter.InCartOf = q.Viewer.UserID
		}
	}

	recipes, total, err := h.recipes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	views, err := h.render(ctx, q.Viewer, recipes)
	if err != nil {
		return nil, err
	}
	return &ListRecipesResult{Recipes: views, Total: total}, nil
}

// render attaches the viewer's relation flags and author subscriptions
func (h *RecipesHandler) render(ctx context.Context, viewer auth.Actor, recipes []domain.Recipe) ([]domain.RecipeView, error) {
	flags := map[uint]domain.Flags{}
	subscribed := map[uint]bool{}

	if viewer.Authenticated() && len(recipes) > 0 {
		ids := make([]uint, len(recipes))
		authors := make([]uint, 0, len(recipes))
		seen := map[uint]bool{}
		for i := range recipes {
			ids[i] = recipes[i].ID
			if a := recipes[i].AuthorID; !seen[a] {
				seen[a] = true
				authors = append(authors, a)
			}
		}

		var err error
		if flags, err = h.relations.Flags(ctx, viewer.UserID, ids); err != nil {
			return nil, err
		}
		if subscribed, err = h.subs.SubscribedTo(ctx, viewer.UserID, authors); err != nil {
			return nil, err
		}
	}

	views := make([]domain.RecipeView, len(recipes))
	for i := range recipes {
		views[i] = domain.NewRecipeView(&recipes[i], flags[recipes[i].ID], subscribed[recipes[i].AuthorID])
	}
	return views, nil
}
