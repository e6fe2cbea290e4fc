package domain

import (
	"database/sql/driver"
	"fmt"
	"time"

	userdomain "github.com/tair/foodgram/internal/user/domain"
)

// RelationKind distinguishes the user -> recipe edge sets
type RelationKind string

const (
	Favorite     RelationKind = "favorite"
	ShoppingCart RelationKind = "shopping_cart"
)

// Valid reports whether k is a known kind
func (k RelationKind) Valid() bool {
	return k == Favorite || k == ShoppingCart
}

// Label is the human name used in messages
func (k RelationKind) Label() string {
	switch k {
	case Favorite:
		return "favorites"
	case ShoppingCart:
		return "shopping cart"
	default:
		return string(k)
	}
}

// ParseRelationKind converts a path segment into a kind
func ParseRelationKind(s string) (RelationKind, error) {
	k := RelationKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown relation kind %q", s)
	}
	return k, nil
}

// Value stores the kind as plain text
func (k RelationKind) Value() (driver.Value, error) {
	return string(k), nil
}

func (k *RelationKind) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*k = RelationKind(v)
	case []byte:
		*k = RelationKind(v)
	default:
		return fmt.Errorf("cannot scan %T into RelationKind", src)
	}
	return nil
}

// RecipeRelation is one favorite or shopping cart edge
type RecipeRelation struct {
	ID        uint            `gorm:"primaryKey"`
	Kind      RelationKind    `gorm:"size:16;not null;uniqueIndex:idx_relation_edge"`
	UserID    uint            `gorm:"not null;uniqueIndex:idx_relation_edge"`
	RecipeID  uint            `gorm:"not null;uniqueIndex:idx_relation_edge;index"`
	User      userdomain.User `gorm:"constraint:OnDelete:CASCADE"`
	Recipe    Recipe          `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (RecipeRelation) TableName() string {
	return "recipe_relations"
}

// Flags are the viewer-specific markers of a recipe
type Flags struct {
	IsFavorited      bool
	IsInShoppingCart bool
}
