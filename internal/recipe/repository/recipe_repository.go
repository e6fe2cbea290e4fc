package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/pkg/errs"
)

// GormRecipeRepository implements domain.RecipeRepository using GORM
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a new GORM recipe repository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// writeError maps constraint violations raised inside a recipe transaction
func writeError(action string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.Validation("recipe conflicts with existing data: duplicate ingredient, tag or short link")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errs.Validation("recipe references an unknown ingredient or tag")
	default:
		return fmt.Errorf("failed to %s recipe: %w", action, err)
	}
}

func tagLinks(recipeID uint, tagIDs []uint) []domain.RecipeTag {
	links := make([]domain.RecipeTag, len(tagIDs))
	for i, id := range tagIDs {
		links[i] = domain.RecipeTag{RecipeID: recipeID, TagID: id}
	}
	return links
}

// replaceComposition writes the tag links and ingredient rows of recipe
func replaceComposition(tx *gorm.DB, recipe *domain.Recipe, tagIDs []uint) error {
	if links := tagLinks(recipe.ID, tagIDs); len(links) > 0 {
		if err := tx.Create(&links).Error; err != nil {
			return err
		}
	}

	rows := recipe.Ingredients
	for i := range rows {
		rows[i].ID = 0
		rows[i].RecipeID = recipe.ID
	}
	if len(rows) > 0 {
		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

// Create inserts the recipe, its ingredient rows and its tag links in one transaction
func (r *GormRecipeRepository) Create(ctx context.Context, recipe *domain.Recipe, tagIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		return replaceComposition(tx, recipe, tagIDs)
	})
	if err != nil {
		return writeError("create", err)
	}
	return nil
}

// Update saves the scalars, then clears and rebuilds tags and ingredients
func (r *GormRecipeRepository) Update(ctx context.Context, recipe *domain.Recipe, tagIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(recipe).Omit(clause.Associations).
			Select("name", "image", "text", "cooking_time", "updated_at").
			Updates(recipe)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NotFound("recipe not found")
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&domain.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&domain.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return replaceComposition(tx, recipe, tagIDs)
	})
	if err != nil {
		if errs.IsNotFound(err) {
			return err
		}
		return writeError("update", err)
	}
	return nil
}

// Delete removes the recipe and every row that references it
func (r *GormRecipeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []interface{}{&domain.RecipeRelation{}, &domain.RecipeIngredient{}, &domain.RecipeTag{}} {
			if err := tx.Where("recipe_id = ?", id).Delete(dependent).Error; err != nil {
				return fmt.Errorf("failed to delete recipe dependents: %w", err)
			}
		}
		res := tx.Delete(&domain.Recipe{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete recipe: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return errs.NotFound("recipe not found")
		}
		return nil
	})
}

// FindByID retrieves a recipe without its composition
func (r *GormRecipeRepository) FindByID(ctx context.Context, id uint) (*domain.Recipe, error) {
	var recipe domain.Recipe
	if err := r.db.WithContext(ctx).First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("failed to find recipe: %w", err)
	}
	return &recipe, nil
}

func preloadDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id ASC") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.id ASC") }).
		Preload("Ingredients.Ingredient")
}

// FindDetailed retrieves a recipe with author, tags and ingredients
func (r *GormRecipeRepository) FindDetailed(ctx context.Context, id uint) (*domain.Recipe, error) {
	var recipe domain.Recipe
	if err := preloadDetails(r.db.WithContext(ctx)).First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("failed to find recipe: %w", err)
	}
	return &recipe, nil
}

// List returns one page of recipes matching filter, newest first, and the total match count
func (r *GormRecipeRepository) List(ctx context.Context, filter domain.RecipeFilter) ([]domain.Recipe, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Recipe{})

	if len(filter.TagSlugs) > 0 {
		tagged := r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}
	if filter.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if filter.FavoritedBy != 0 {
		query = query.Where("recipes.id IN (?)", r.relatedTo(domain.Favorite, filter.FavoritedBy))
	}
	if filter.InCartOf != 0 {
		query = query.Where("recipes.id IN (?)", r.relatedTo(domain.ShoppingCart, filter.InCartOf))
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	page := preloadDetails(query).Order("recipes.created_at DESC, recipes.id DESC")
	if filter.Limit > 0 {
		page = page.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		page = page.Offset(filter.Offset)
	}
	var recipes []domain.Recipe
	if err := page.Find(&recipes).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, total, nil
}

func (r *GormRecipeRepository) relatedTo(kind domain.RelationKind, userID uint) *gorm.DB {
	return r.db.Model(&domain.RecipeRelation{}).
		Select("recipe_id").
		Where("kind = ? AND user_id = ?", string(kind), userID)
}

// IDByShortLink returns the id of the recipe owning token
func (r *GormRecipeRepository) IDByShortLink(ctx context.Context, token string) (uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.Recipe{}).
		Where("short_link = ?", token).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, fmt.Errorf("failed to resolve short link: %w", err)
	}
	if len(ids) == 0 {
		return 0, errs.NotFound("short link not found")
	}
	return ids[0], nil
}

// ShortLinkExists reports whether token is taken
func (r *GormRecipeRepository) ShortLinkExists(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Recipe{}).
		Where("short_link = ?", token).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check short link: %w", err)
	}
	return count > 0, nil
}
