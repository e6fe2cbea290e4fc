package command

import (
	"context"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/kafka"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/errs"
	"github.com/tair/foodgram/pkg/logger"
)

// DeleteRecipeCommand represents the command to delete a recipe
type DeleteRecipeCommand struct {
	Actor    auth.Actor
	RecipeID uint
}

// DeleteRecipeHandler handles delete recipe command
type DeleteRecipeHandler struct {
	recipes   domain.RecipeRepository
	cache     domain.ShortLinkCache
	publisher EventPublisher
}

func NewDeleteRecipeHandler(recipes domain.RecipeRepository, cache domain.ShortLinkCache, publisher EventPublisher) *DeleteRecipeHandler {
	return &DeleteRecipeHandler{recipes: recipes, cache: cache, publisher: publisher}
}

// Handle deletes the recipe and evicts its short link from the cache
func (h *DeleteRecipeHandler) Handle(ctx context.Context, cmd DeleteRecipeCommand) error {
	if !cmd.Actor.Authenticated() {
		return errs.Unauthorized("authentication credentials were not provided")
	}

	recipe, err := h.recipes.FindByID(ctx, cmd.RecipeID)
	if err != nil {
		return err
	}
	if !cmd.Actor.CanModify(recipe.AuthorID) {
		return errs.PermissionDenied("only the author can delete this recipe")
	}

	if err := h.recipes.Delete(ctx, recipe.ID); err != nil {
		return err
	}

	if err := h.cache.Delete(ctx, recipe.ShortLink); err != nil {
		logger.Warn(ctx).Err(err).Uint("recipe_id", recipe.ID).Msg("Failed to evict short link")
	}
	h.publisher.Publish(ctx, kafka.Event{
		EventType: kafka.EventTypeRecipeDeleted,
		UserID:    cmd.Actor.UserID,
		RecipeID:  recipe.ID,
		AuthorID:  recipe.AuthorID,
	})
	return nil
}
