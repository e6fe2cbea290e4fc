package domain

import (
	"strconv"
	"strings"

	"github.com/tair/foodgram/pkg/errs"
	"github.com/tair/foodgram/pkg/validation"
)

// Limits bound the numeric fields of a recipe
type Limits struct {
	MinCookingTime int
	MaxCookingTime int
	MinAmount      int
	MaxAmount      int
}

// DefaultLimits match the catalog defaults of the service
var DefaultLimits = Limits{MinCookingTime: 1, MaxCookingTime: 1000, MinAmount: 1, MaxAmount: 32000}

// IngredientAmount is one submitted ingredient line
type IngredientAmount struct {
	ID     uint `json:"id" validate:"gt=0"`
	Amount int  `json:"amount"`
}

// Composition is the tag and ingredient sets submitted on every write
type Composition struct {
	Tags        []uint             `json:"tags" validate:"required,min=1,unique,dive,gt=0"`
	Ingredients []IngredientAmount `json:"ingredients" validate:"required,min=1,unique=ID,dive"`
}

// Validate checks the sets and amounts without touching storage
func (c *Composition) Validate(l Limits) error {
	if err := validation.Struct(c); err != nil {
		return err
	}
	for i, item := range c.Ingredients {
		if item.Amount < l.MinAmount || (l.MaxAmount > 0 && item.Amount > l.MaxAmount) {
			return errs.ValidationField(
				"ingredients["+strconv.Itoa(i)+"].amount",
				"amount must be between %d and %d", l.MinAmount, l.MaxAmount,
			)
		}
	}
	return nil
}

// IngredientIDs returns the submitted ingredient ids in order
func (c *Composition) IngredientIDs() []uint {
	ids := make([]uint, len(c.Ingredients))
	for i, item := range c.Ingredients {
		ids[i] = item.ID
	}
	return ids
}

// Rows builds the RecipeIngredient rows for recipeID
func (c *Composition) Rows(recipeID uint) []RecipeIngredient {
	rows := make([]RecipeIngredient, len(c.Ingredients))
	for i, item := range c.Ingredients {
		rows[i] = RecipeIngredient{RecipeID: recipeID, IngredientID: item.ID, Amount: item.Amount}
	}
	return rows
}

// RecipeDraft is the input of recipe creation
type RecipeDraft struct {
	Composition `validate:"-"`
	Name        string `json:"name" validate:"required,max=256"`
	Image       string `json:"image" validate:"required"`
	Text        string `json:"text" validate:"required"`
	CookingTime int    `json:"cooking_time"`
}

// Validate runs every check that does not need the database
func (d *RecipeDraft) Validate(l Limits) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Text = strings.TrimSpace(d.Text)
	if err := validation.Struct(d); err != nil {
		return err
	}
	if err := checkCookingTime(d.CookingTime, l); err != nil {
		return err
	}
	return d.Composition.Validate(l)
}

// RecipePatch is the input of recipe update; nil scalars keep their values
type RecipePatch struct {
	Composition `validate:"-"`
	Name        *string `json:"name" validate:"omitnil,min=1,max=256"`
	Image       *string `json:"image" validate:"omitnil,min=1"`
	Text        *string `json:"text" validate:"omitnil,min=1"`
	CookingTime *int    `json:"cooking_time"`
}

// Validate applies the creation checks to the fields present in the patch
func (p *RecipePatch) Validate(l Limits) error {
	trimPtr(p.Name)
	trimPtr(p.Text)
	if err := validation.Struct(p); err != nil {
		return err
	}
	if p.CookingTime != nil {
		if err := checkCookingTime(*p.CookingTime, l); err != nil {
			return err
		}
	}
	return p.Composition.Validate(l)
}

// Apply copies the present scalars onto r
func (p *RecipePatch) Apply(r *Recipe) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Image != nil {
		r.Image = *p.Image
	}
	if p.Text != nil {
		r.Text = *p.Text
	}
	if p.CookingTime != nil {
		r.CookingTime = *p.CookingTime
	}
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func checkCookingTime(v int, l Limits) error {
	if v < l.MinCookingTime || (l.MaxCookingTime > 0 && v > l.MaxCookingTime) {
		return errs.ValidationField("cooking_time", "cooking time must be between %d and %d", l.MinCookingTime, l.MaxCookingTime)
	}
	return nil
}
