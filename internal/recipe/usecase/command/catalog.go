package command

import (
	"context"
	"strings"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/errs"
	"github.com/tair/foodgram/pkg/validation"
)

// CreateIngredientCommand adds a catalog entry
type CreateIngredientCommand struct {
	Actor           auth.Actor `json:"-"`
	Name            string     `json:"name" validate:"required,max=128"`
	MeasurementUnit string     `json:"measurement_unit" validate:"required,max=64"`
}

// CreateTagCommand adds a tag
type CreateTagCommand struct {
	Actor auth.Actor `json:"-"`
	Name  string     `json:"name" validate:"required,max=256"`
	Slug  string     `json:"slug" validate:"required,max=64,slug"`
}

// CatalogHandler maintains the ingredient and tag catalogs; admin only
type CatalogHandler struct {
	ingredients domain.IngredientRepository
	tags        domain.TagRepository
}

func NewCatalogHandler(ingredients domain.IngredientRepository, tags domain.TagRepository) *CatalogHandler {
	return &CatalogHandler{ingredients: ingredients, tags: tags}
}

func requireAdmin(actor auth.Actor) error {
	if !actor.Authenticated() {
		return errs.Unauthorized("authentication credentials were not provided")
	}
	if !actor.IsAdmin() {
		return errs.PermissionDenied("admin access required")
	}
	return nil
}

func (h *CatalogHandler) CreateIngredient(ctx context.Context, cmd CreateIngredientCommand) (*domain.Ingredient, error) {
	if err := requireAdmin(cmd.Actor); err != nil {
		return nil, err
	}
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.MeasurementUnit = strings.TrimSpace(cmd.MeasurementUnit)
	if err := validation.Struct(&cmd); err != nil {
		return nil, err
	}

	ingredient := &domain.Ingredient{Name: cmd.Name, MeasurementUnit: cmd.MeasurementUnit}
	if err := h.ingredients.Create(ctx, ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

func (h *CatalogHandler) CreateTag(ctx context.Context, cmd CreateTagCommand) (*domain.Tag, error) {
	if err := requireAdmin(cmd.Actor); err != nil {
		return nil, err
	}
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Slug = strings.ToLower(strings.TrimSpace(cmd.Slug))
	if err := validation.Struct(&cmd); err != nil {
		return nil, err
	}

	tag := &domain.Tag{Name: cmd.Name, Slug: cmd.Slug}
	if err := h.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}
