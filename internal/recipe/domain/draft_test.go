package domain

import (
	"testing"

	"github.com/tair/foodgram/pkg/errs"
)

func validDraft() RecipeDraft {
	return RecipeDraft{
		Composition: Composition{
			Tags:        []uint{1, 2},
			Ingredients: []IngredientAmount{{ID: 1, Amount: 5}, {ID: 2, Amount: 2}},
		},
		Name:        "Omelette",
		Image:       "https://cdn.example.com/omelette.png",
		Text:        "Whisk and fry.",
		CookingTime: 10,
	}
}

func TestRecipeDraftValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(d *RecipeDraft)
		wantField string
	}{
		{"valid", func(d *RecipeDraft) {}, ""},
		{"blank name", func(d *RecipeDraft) { d.Name = "   " }, "name"},
		{"missing image", func(d *RecipeDraft) { d.Image = "" }, "image"},
		{"missing text", func(d *RecipeDraft) { d.Text = "" }, "text"},
		{"cooking time below minimum", func(d *RecipeDraft) { d.CookingTime = 0 }, "cooking_time"},
		{"cooking time above maximum", func(d *RecipeDraft) { d.CookingTime = 1001 }, "cooking_time"},
		{"no tags", func(d *RecipeDraft) { d.Tags = nil }, "tags"},
		{"empty tags", func(d *RecipeDraft) { d.Tags = []uint{} }, "tags"},
		{"duplicate tags", func(d *RecipeDraft) { d.Tags = []uint{1, 1} }, "tags"},
		{"zero tag id", func(d *RecipeDraft) { d.Tags = []uint{0} }, "tags[0]"},
		{"no ingredients", func(d *RecipeDraft) { d.Ingredients = nil }, "ingredients"},
		{"duplicate ingredients", func(d *RecipeDraft) {
			d.Ingredients = []IngredientAmount{{ID: 3, Amount: 1}, {ID: 3, Amount: 4}}
		}, "ingredients"},
		{"amount below minimum", func(d *RecipeDraft) { d.Ingredients[1].Amount = 0 }, "ingredients[1].amount"},
		{"amount above maximum", func(d *RecipeDraft) { d.Ingredients[0].Amount = 32001 }, "ingredients[0].amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)

			err := d.Validate(DefaultLimits)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errs.IsValidation(err) {
				t.Fatalf("Validate() = %v, want validation error", err)
			}
			if got := errs.FieldOf(err); got != tt.wantField {
				t.Errorf("field = %q, want %q", got, tt.wantField)
			}
		})
	}
}

func TestRecipePatch(t *testing.T) {
	name := "  Scrambled eggs "
	minutes := 7
	p := RecipePatch{
		Composition: Composition{Tags: []uint{1}, Ingredients: []IngredientAmount{{ID: 1, Amount: 3}}},
		Name:        &name,
		CookingTime: &minutes,
	}
	if err := p.Validate(DefaultLimits); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	r := &Recipe{Name: "Omelette", Image: "img", Text: "text", CookingTime: 10}
	p.Apply(r)
	if r.Name != "Scrambled eggs" || r.CookingTime != 7 || r.Image != "img" || r.Text != "text" {
		t.Errorf("Apply() produced %+v", r)
	}

	empty := ""
	bad := RecipePatch{Composition: p.Composition, Text: &empty}
	if err := bad.Validate(DefaultLimits); errs.FieldOf(err) != "text" {
		t.Errorf("empty text error = %v", err)
	}

	blank := "   "
	bad = RecipePatch{Composition: p.Composition, Name: &blank}
	if err := bad.Validate(DefaultLimits); errs.FieldOf(err) != "name" {
		t.Errorf("blank name error = %v", err)
	}
	bad = RecipePatch{Composition: p.Composition, Text: &blank}
	if err := bad.Validate(DefaultLimits); errs.FieldOf(err) != "text" {
		t.Errorf("blank text error = %v", err)
	}

	zero := 0
	bad = RecipePatch{Composition: p.Composition, CookingTime: &zero}
	if err := bad.Validate(DefaultLimits); errs.FieldOf(err) != "cooking_time" {
		t.Errorf("zero cooking time error = %v", err)
	}

	bad = RecipePatch{Composition: Composition{Tags: []uint{1}}}
	if err := bad.Validate(DefaultLimits); errs.FieldOf(err) != "ingredients" {
		t.Errorf("missing ingredients error = %v", err)
	}
}

func TestCompositionRows(t *testing.T) {
	c := Composition{Ingredients: []IngredientAmount{{ID: 4, Amount: 2}, {ID: 9, Amount: 1}}}
	rows := c.Rows(12)
	if len(rows) != 2 || rows[1].RecipeID != 12 || rows[1].IngredientID != 9 || rows[1].Amount != 1 {
		t.Errorf("Rows() = %+v", rows)
	}
	if ids := c.IngredientIDs(); len(ids) != 2 || ids[0] != 4 {
		t.Errorf("IngredientIDs() = %v", ids)
	}
}

func TestParseRelationKind(t *testing.T) {
	for _, s := range []string{"favorite", "shopping_cart"} {
		if k, err := ParseRelationKind(s); err != nil || string(k) != s {
			t.Errorf("ParseRelationKind(%q) = %q, %v", s, k, err)
		}
	}
	if _, err := ParseRelationKind("wishlist"); err == nil {
		t.Error("ParseRelationKind(wishlist) should fail")
	}
}
