package domain

import (
	"context"
	"time"
)

// RecipeFilter selects a page of recipes, newest first
type RecipeFilter struct {
	TagSlugs    []string // any of
	AuthorID    uint
	FavoritedBy uint
	InCartOf    uint
	Limit       int
	Offset      int
}

// RecipeRepository defines the contract for recipe persistence. Create, Update
// and Delete each run in a single transaction.
type RecipeRepository interface {
	// Create inserts the recipe with its ingredient rows and tag links
	Create(ctx context.Context, recipe *Recipe, tagIDs []uint) error
	// Update saves the scalars and replaces the tag links and ingredient rows wholesale
	Update(ctx context.Context, recipe *Recipe, tagIDs []uint) error
	Delete(ctx context.Context, id uint) error
	// FindByID loads the recipe row only
	FindByID(ctx context.Context, id uint) (*Recipe, error)
	// FindDetailed loads the recipe with author, tags and ingredients
	FindDetailed(ctx context.Context, id uint) (*Recipe, error)
	List(ctx context.Context, filter RecipeFilter) ([]Recipe, int64, error)
	// IDByShortLink resolves a short link token
	IDByShortLink(ctx context.Context, token string) (uint, error)
	ShortLinkExists(ctx context.Context, token string) (bool, error)
}

// RelationRepository defines the contract for favorite and shopping cart edges
type RelationRepository interface {
	// Add inserts the edge; a duplicate is a validation error
	Add(ctx context.Context, kind RelationKind, userID, recipeID uint) error
	// Remove deletes the edge and reports whether it existed
	Remove(ctx context.Context, kind RelationKind, userID, recipeID uint) (bool, error)
	Exists(ctx context.Context, kind RelationKind, userID, recipeID uint) (bool, error)
	// Flags reports both kinds for every recipe in recipeIDs
	Flags(ctx context.Context, userID uint, recipeIDs []uint) (map[uint]Flags, error)
}

// ShoppingCartReader reads the aggregated content of a shopping cart
type ShoppingCartReader interface {
	// CartLines sums ingredient amounts grouped by (name, unit), ordered by name case-insensitively
	CartLines(ctx context.Context, userID uint) ([]ShoppingLine, error)
	// CartRecipeNames lists the cart's recipes in insertion order
	CartRecipeNames(ctx context.Context, userID uint) ([]string, error)
}

// RelationStore is the full relation storage: edges plus cart aggregation
type RelationStore interface {
	RelationRepository
	ShoppingCartReader
}

// ShortLinkCache caches token -> recipe id lookups
type ShortLinkCache interface {
	Get(ctx context.Context, token string) (uint, bool, error)
	Set(ctx context.Context, token string, recipeID uint, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}
