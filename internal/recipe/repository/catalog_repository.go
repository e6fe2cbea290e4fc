package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/pkg/errs"
)

// GormIngredientRepository implements domain.IngredientRepository using GORM
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewGormIngredientRepository creates a new GORM ingredient repository
func NewGormIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

// Create inserts an ingredient; a duplicate name and unit pair is a validation error
func (r *GormIngredientRepository) Create(ctx context.Context, ingredient *domain.Ingredient) error {
	if err := r.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Validation("ingredient %q (%s) already exists", ingredient.Name, ingredient.MeasurementUnit)
		}
		return fmt.Errorf("failed to create ingredient: %w", err)
	}
	return nil
}

// FindByID retrieves an ingredient by ID
func (r *GormIngredientRepository) FindByID(ctx context.Context, id uint) (*domain.Ingredient, error) {
	var ingredient domain.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("ingredient not found")
		}
		return nil, fmt.Errorf("failed to find ingredient: %w", err)
	}
	return &ingredient, nil
}

// Search matches a case-insensitive name prefix; an empty prefix lists the catalog
func (r *GormIngredientRepository) Search(ctx context.Context, prefix string) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	query := r.db.WithContext(ctx).Order("name ASC, id ASC")
	if prefix = strings.TrimSpace(prefix); prefix != "" {
		query = query.Where("LOWER(name) LIKE ? ESCAPE '\\'", likePrefix(prefix))
	}
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to search ingredients: %w", err)
	}
	return ingredients, nil
}

// MissingIDs returns the ids that name no ingredient
func (r *GormIngredientRepository) MissingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	return missingIDs(r.db.WithContext(ctx).Model(&domain.Ingredient{}), ids, "ingredients")
}

// GormTagRepository implements domain.TagRepository using GORM
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GORM tag repository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// Create inserts a tag; a taken name or slug is a validation error
func (r *GormTagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Validation("a tag with that name or slug already exists")
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// FindByID retrieves a tag by ID
func (r *GormTagRepository) FindByID(ctx context.Context, id uint) (*domain.Tag, error) {
	var tag domain.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("tag not found")
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	return &tag, nil
}

// FindAll retrieves every tag in creation order
func (r *GormTagRepository) FindAll(ctx context.Context) ([]domain.Tag, error) {
	var tags []domain.Tag
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// MissingIDs returns the ids that name no tag
func (r *GormTagRepository) MissingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	return missingIDs(r.db.WithContext(ctx).Model(&domain.Tag{}), ids, "tags")
}

// missingIDs returns the members of ids absent from the model's table, in input order
func missingIDs(query *gorm.DB, ids []uint, what string) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []uint
	if err := query.Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", what, err)
	}

	present := make(map[uint]bool, len(found))
	for _, id := range found {
		present[id] = true
	}
	var missing []uint
	for _, id := range ids {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePrefix(prefix string) string {
	return likeEscaper.Replace(strings.ToLower(prefix)) + "%"
}
