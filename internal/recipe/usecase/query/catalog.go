package query

import (
	"context"
	"strings"

	"github.com/tair/foodgram/internal/recipe/domain"
)

// CatalogHandler serves the read-only tag and ingredient catalogs
type CatalogHandler struct {
	ingredients domain.IngredientRepository
	tags        domain.TagRepository
}

func NewCatalogHandler(ingredients domain.IngredientRepository, tags domain.TagRepository) *CatalogHandler {
	return &CatalogHandler{ingredients: ingredients, tags: tags}
}

func (h *CatalogHandler) Tags(ctx context.Context) ([]domain.Tag, error) {
	return h.tags.FindAll(ctx)
}

func (h *CatalogHandler) Tag(ctx context.Context, id uint) (*domain.Tag, error) {
	return h.tags.FindByID(ctx, id)
}

// Ingredients lists the catalog, narrowed to names starting with prefix when given
func (h *CatalogHandler) Ingredients(ctx context.Context, prefix string) ([]domain.Ingredient, error) {
	return h.ingredients.Search(ctx, strings.TrimSpace(prefix))
}

func (h *CatalogHandler) Ingredient(ctx context.Context, id uint) (*domain.Ingredient, error) {
	return h.ingredients.FindByID(ctx, id)
}
