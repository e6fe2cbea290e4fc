package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/pkg/errs"
)

// GormRelationRepository implements domain.RelationRepository and
// domain.ShoppingCartReader using GORM
type GormRelationRepository struct {
	db *gorm.DB
}

// NewGormRelationRepository creates a new GORM favorite and shopping cart repository
func NewGormRelationRepository(db *gorm.DB) *GormRelationRepository {
	return &GormRelationRepository{db: db}
}

// Add stores the edge; an existing edge is a validation error
func (r *GormRelationRepository) Add(ctx context.Context, kind domain.RelationKind, userID, recipeID uint) error {
	edge := &domain.RecipeRelation{Kind: kind, UserID: userID, RecipeID: recipeID}
	if err := r.db.WithContext(ctx).Omit("User", "Recipe").Create(edge).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return errs.Validation("recipe is already in %s", kind.Label())
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return errs.NotFound("recipe not found")
		}
		return fmt.Errorf("failed to add %s edge: %w", kind, err)
	}
	return nil
}

// Remove deletes the edge and reports whether it existed
func (r *GormRelationRepository) Remove(ctx context.Context, kind domain.RelationKind, userID, recipeID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("kind = ? AND user_id = ? AND recipe_id = ?", string(kind), userID, recipeID).
		Delete(&domain.RecipeRelation{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to remove %s edge: %w", kind, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Exists reports whether the edge is stored
func (r *GormRelationRepository) Exists(ctx context.Context, kind domain.RelationKind, userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.RecipeRelation{}).
		Where("kind = ? AND user_id = ? AND recipe_id = ?", string(kind), userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check %s edge: %w", kind, err)
	}
	return count > 0, nil
}

// Flags returns the favorite and cart flags of userID for recipeIDs
func (r *GormRelationRepository) Flags(ctx context.Context, userID uint, recipeIDs []uint) (map[uint]domain.Flags, error) {
	flags := make(map[uint]domain.Flags, len(recipeIDs))
	if userID == 0 || len(recipeIDs) == 0 {
		return flags, nil
	}

	var edges []domain.RecipeRelation
	err := r.db.WithContext(ctx).
		Select("kind", "recipe_id").
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe flags: %w", err)
	}
	for _, e := range edges {
		f := flags[e.RecipeID]
		switch e.Kind {
		case domain.Favorite:
			f.IsFavorited = true
		case domain.ShoppingCart:
			f.IsInShoppingCart = true
		}
		flags[e.RecipeID] = f
	}
	return flags, nil
}

// CartLines aggregates the ingredients of every recipe in the user's cart
func (r *GormRelationRepository) CartLines(ctx context.Context, userID uint) ([]domain.ShoppingLine, error) {
	var lines []domain.ShoppingLine
	err := r.db.WithContext(ctx).
		Table("recipe_relations").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS amount").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipe_relations.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_relations.kind = ? AND recipe_relations.user_id = ?", string(domain.ShoppingCart), userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("LOWER(ingredients.name) ASC, ingredients.name ASC, ingredients.measurement_unit ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate shopping cart: %w", err)
	}
	return lines, nil
}

// CartRecipeNames returns the names of the recipes in the cart in the order they were added
func (r *GormRelationRepository) CartRecipeNames(ctx context.Context, userID uint) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("recipe_relations").
		Joins("JOIN recipes ON recipes.id = recipe_relations.recipe_id").
		Where("recipe_relations.kind = ? AND recipe_relations.user_id = ?", string(domain.ShoppingCart), userID).
		Order("recipe_relations.id ASC").
		Pluck("recipes.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping cart recipes: %w", err)
	}
	return names, nil
}
