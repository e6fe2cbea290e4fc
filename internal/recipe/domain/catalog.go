package domain

import "context"

// Ingredient is a canonical (name, measurement_unit) pair
type Ingredient struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"size:128;not null;uniqueIndex:idx_ingredient_pair;index"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:64;not null;uniqueIndex:idx_ingredient_pair"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// Tag is reference data attached to recipes
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:256;not null;uniqueIndex"`
	Slug string `json:"slug" gorm:"size:64;not null;uniqueIndex"`
}

func (Tag) TableName() string {
	return "tags"
}

// IngredientRepository defines the contract for the ingredient catalog
type IngredientRepository interface {
	// Create inserts the ingredient; a duplicate pair is a validation error
	Create(ctx context.Context, ingredient *Ingredient) error
	FindByID(ctx context.Context, id uint) (*Ingredient, error)
	// Search lists ingredients whose name starts with prefix, case-insensitively
	Search(ctx context.Context, prefix string) ([]Ingredient, error)
	// MissingIDs returns the ids that are not in the catalog
	MissingIDs(ctx context.Context, ids []uint) ([]uint, error)
}

// TagRepository defines the contract for the tag catalog
type TagRepository interface {
	Create(ctx context.Context, tag *Tag) error
	FindByID(ctx context.Context, id uint) (*Tag, error)
	FindAll(ctx context.Context) ([]Tag, error)
	MissingIDs(ctx context.Context, ids []uint) ([]uint, error)
}
