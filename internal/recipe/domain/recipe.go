package domain

import (
	"time"

	userdomain "github.com/tair/foodgram/internal/user/domain"
)

// Recipe is the aggregate root of the composition model
type Recipe struct {
	ID          uint               `gorm:"primaryKey"`
	AuthorID    uint               `gorm:"not null;index"`
	Author      userdomain.User    `gorm:"constraint:OnDelete:CASCADE"`
	Name        string             `gorm:"size:256;not null"`
	Image       string             `gorm:"not null"`
	Text        string             `gorm:"type:text;not null"`
	CookingTime int                `gorm:"not null"`
	ShortLink   string             `gorm:"size:24;not null;uniqueIndex"`
	Tags        []Tag              `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time          `gorm:"index"`
	UpdatedAt   time.Time
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient carries the amount of one ingredient in one recipe
type RecipeIngredient struct {
	ID           uint       `gorm:"primaryKey"`
	RecipeID     uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	IngredientID uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient;index"`
	Ingredient   Ingredient `gorm:"constraint:OnDelete:RESTRICT"`
	Amount       int        `gorm:"not null"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// RecipeTag is a row of the recipe_tags join table
type RecipeTag struct {
	RecipeID uint `gorm:"primaryKey"`
	TagID    uint `gorm:"primaryKey"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}

// Summary returns the short form of the recipe
func (r *Recipe) Summary() Summary {
	return Summary{ID: r.ID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}

// Brief converts the recipe to the form used on author cards
func (r *Recipe) Brief() userdomain.RecipeBrief {
	return userdomain.RecipeBrief{ID: r.ID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}
