package command

import (
	"context"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/kafka"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/errs"
)

// UpdateRecipeCommand represents the command to edit a recipe
type UpdateRecipeCommand struct {
	Actor    auth.Actor
	RecipeID uint
	Patch    domain.RecipePatch
}

// UpdateRecipeHandler handles update recipe command
type UpdateRecipeHandler struct {
	recipes   domain.RecipeRepository
	catalog   catalogChecker
	limits    domain.Limits
	publisher EventPublisher
}

func NewUpdateRecipeHandler(
	recipes domain.RecipeRepository,
	ingredients domain.IngredientRepository,
	tags domain.TagRepository,
	limits domain.Limits,
	publisher EventPublisher,
) *UpdateRecipeHandler {
	return &UpdateRecipeHandler{
		recipes:   recipes,
		catalog:   catalogChecker{ingredients: ingredients, tags: tags},
		limits:    limits,
		publisher: publisher,
	}
}

// Handle replaces the scalars present in the patch and rebuilds tags and ingredients
func (h *UpdateRecipeHandler) Handle(ctx context.Context, cmd UpdateRecipeCommand) (*domain.Recipe, error) {
	if !cmd.Actor.Authenticated() {
		return nil, errs.Unauthorized("authentication credentials were not provided")
	}

	recipe, err := h.recipes.FindByID(ctx, cmd.RecipeID)
	if err != nil {
		return nil, err
	}
	if !cmd.Actor.CanModify(recipe.AuthorID) {
		return nil, errs.PermissionDenied("only the author can change this recipe")
	}

	patch := cmd.Patch
	if err := patch.Validate(h.limits); err != nil {
		return nil, err
	}
	if err := h.catalog.check(ctx, &patch.Composition); err != nil {
		return nil, err
	}

	patch.Apply(recipe)
	recipe.Ingredients = patch.Rows(recipe.ID)
	if err := h.recipes.Update(ctx, recipe, patch.Tags); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, kafka.Event{
		EventType: kafka.EventTypeRecipeUpdated,
		UserID:    cmd.Actor.UserID,
		RecipeID:  recipe.ID,
		AuthorID:  recipe.AuthorID,
	})
	return recipe, nil
}
