package command

import (
	"context"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/kafka"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/errs"
)

// RelationCommand targets the edge actor -> recipe of one kind
type RelationCommand struct {
	Actor    auth.Actor
	Kind     domain.RelationKind
	RecipeID uint
}

// RelationHandler adds and removes favorite and shopping cart edges
type RelationHandler struct {
	recipes   domain.RecipeRepository
	relations domain.RelationRepository
	publisher EventPublisher
}

func NewRelationHandler(recipes domain.RecipeRepository, relations domain.RelationRepository, publisher EventPublisher) *RelationHandler {
	return &RelationHandler{recipes: recipes, relations: relations, publisher: publisher}
}

func (h *RelationHandler) target(ctx context.Context, cmd RelationCommand) (*domain.Recipe, error) {
	if !cmd.Actor.Authenticated() {
		return nil, errs.Unauthorized("authentication credentials were not provided")
	}
	if !cmd.Kind.Valid() {
		return nil, errs.NotFound("unknown relation %q", cmd.Kind)
	}
	return h.recipes.FindByID(ctx, cmd.RecipeID)
}

// Add inserts the edge and returns the recipe summary
func (h *RelationHandler) Add(ctx context.Context, cmd RelationCommand) (*domain.Summary, error) {
	recipe, err := h.target(ctx, cmd)
	if err != nil {
		return nil, err
	}

	exists, err := h.relations.Exists(ctx, cmd.Kind, cmd.Actor.UserID, recipe.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.Validation("recipe is already in %s", cmd.Kind.Label())
	}
	if err := h.relations.Add(ctx, cmd.Kind, cmd.Actor.UserID, recipe.ID); err != nil {
		return nil, err
	}

	h.publish(ctx, kafka.EventTypeRelationAdded, cmd, recipe)
	summary := recipe.Summary()
	return &summary, nil
}

// Remove deletes the edge; a missing recipe is NotFound, a missing edge is a validation error
func (h *RelationHandler) Remove(ctx context.Context, cmd RelationCommand) error {
	recipe, err := h.target(ctx, cmd)
	if err != nil {
		return err
	}

	removed, err := h.relations.Remove(ctx, cmd.Kind, cmd.Actor.UserID, recipe.ID)
	if err != nil {
		return err
	}
	if !removed {
		return errs.Validation("recipe is not in %s", cmd.Kind.Label())
	}

	h.publish(ctx, kafka.EventTypeRelationRemoved, cmd, recipe)
	return nil
}

func (h *RelationHandler) publish(ctx context.Context, eventType string, cmd RelationCommand, recipe *domain.Recipe) {
	h.publisher.Publish(ctx, kafka.Event{
		EventType: eventType,
		UserID:    cmd.Actor.UserID,
		RecipeID:  recipe.ID,
		AuthorID:  recipe.AuthorID,
		Relation:  string(cmd.Kind),
	})
}
