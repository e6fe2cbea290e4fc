package domain

import userdomain "github.com/tair/foodgram/internal/user/domain"

// Summary is the minimal recipe form returned by relation endpoints
type Summary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// IngredientLine is an ingredient of a recipe with its amount
type IngredientLine struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeView is the full recipe as seen by a viewer
type RecipeView struct {
	ID               uint               `json:"id"`
	Tags             []Tag              `json:"tags"`
	Author           userdomain.Profile `json:"author"`
	Ingredients      []IngredientLine   `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
}

// NewRecipeView renders r; the author must be preloaded
func NewRecipeView(r *Recipe, flags Flags, authorSubscribed bool) RecipeView {
	tags := r.Tags
	if tags == nil {
		tags = []Tag{}
	}
	lines := make([]IngredientLine, len(r.Ingredients))
	for i, ri := range r.Ingredients {
		lines[i] = IngredientLine{
			ID:              ri.IngredientID,
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		}
	}
	return RecipeView{
		ID:               r.ID,
		Tags:             tags,
		Author:           userdomain.NewProfile(&r.Author, authorSubscribed),
		Ingredients:      lines,
		IsFavorited:      flags.IsFavorited,
		IsInShoppingCart: flags.IsInShoppingCart,
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}

// ShoppingLine is one aggregated ingredient of a shopping list
type ShoppingLine struct {
	Name            string
	MeasurementUnit string
	Amount          int64
}

// ShortLinkResponse is the body of the get-link endpoint
type ShortLinkResponse struct {
	ShortLink string `json:"short-link"`
}
