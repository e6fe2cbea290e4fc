package command

import (
	"context"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/kafka"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/errs"
	"github.com/tair/foodgram/pkg/shortlink"
)

// LinkGenerator produces collision-checked short link tokens
type LinkGenerator interface {
	Generate(ctx context.Context, exists shortlink.ExistsFunc) (string, error)
}

// CreateRecipeCommand represents the command to publish a recipe
type CreateRecipeCommand struct {
	Actor auth.Actor
	Draft domain.RecipeDraft
}

// CreateRecipeHandler handles create recipe command
type CreateRecipeHandler struct {
	recipes   domain.RecipeRepository
	catalog   catalogChecker
	links     LinkGenerator
	limits    domain.Limits
	publisher EventPublisher
}

func NewCreateRecipeHandler(
	recipes domain.RecipeRepository,
	ingredients domain.IngredientRepository,
	tags domain.TagRepository,
	links LinkGenerator,
	limits domain.Limits,
	publisher EventPublisher,
) *CreateRecipeHandler {
	return &CreateRecipeHandler{
		recipes:   recipes,
		catalog:   catalogChecker{ingredients: ingredients, tags: tags},
		links:     links,
		limits:    limits,
		publisher: publisher,
	}
}

// Handle validates the draft, then stores the recipe with its composition atomically
func (h *CreateRecipeHandler) Handle(ctx context.Context, cmd CreateRecipeCommand) (*domain.Recipe, error) {
	if !cmd.Actor.Authenticated() {
		return nil, errs.Unauthorized("authentication credentials were not provided")
	}

	draft := cmd.Draft
	if err := draft.Validate(h.limits); err != nil {
		return nil, err
	}
	if err := h.catalog.check(ctx, &draft.Composition); err != nil {
		return nil, err
	}

	token, err := h.links.Generate(ctx, h.recipes.ShortLinkExists)
	if err != nil {
		return nil, errs.Internal("failed to generate short link", err)
	}

	recipe := &domain.Recipe{
		AuthorID:    cmd.Actor.UserID,
		Name:        draft.Name,
		Image:       draft.Image,
		Text:        draft.Text,
		CookingTime: draft.CookingTime,
		ShortLink:   token,
		Ingredients: draft.Rows(0),
	}
	if err := h.recipes.Create(ctx, recipe, draft.Tags); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, kafka.Event{
		EventType: kafka.EventTypeRecipeCreated,
		UserID:    cmd.Actor.UserID,
		RecipeID:  recipe.ID,
		AuthorID:  recipe.AuthorID,
	})
	return recipe, nil
}
