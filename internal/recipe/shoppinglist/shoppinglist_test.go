package shoppinglist

import (
	"testing"
	"time"

	"github.com/tair/foodgram/internal/recipe/domain"
)

var generatedAt = time.Date(2024, time.March, 5, 9, 7, 3, 0, time.UTC)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		list List
		want string
	}{
		{
			name: "filled cart",
			list: List{
				FirstName:   "Ivan",
				LastName:    "Petrov",
				GeneratedAt: generatedAt,
				Lines: []domain.ShoppingLine{
					{Name: "apple", MeasurementUnit: "pcs", Amount: 3},
					{Name: "SALT", MeasurementUnit: "g", Amount: 15},
					{Name: "щавель", MeasurementUnit: "g", Amount: 200},
				},
				Recipes: []string{"Green soup", "Apple pie"},
			},
			want: "Shopping list for Ivan Petrov from 05.03.2024 09:07\n" +
				"1. Apple - 3 pcs\n" +
				"2. Salt - 15 g\n" +
				"3. Щавель - 200 g\n" +
				"You will need these products for the following recipes:\n" +
				"· Green soup\n" +
				"· Apple pie\n" +
				"\n" +
				"Bon appétit, your Foodgram!",
		},
		{
			name: "empty cart",
			list: List{FirstName: "Ivan", LastName: "Petrov", GeneratedAt: generatedAt},
			want: "Shopping list for Ivan Petrov from 05.03.2024 09:07\n" +
				"You will need these products for the following recipes:\n" +
				"\n" +
				"Bon appétit, your Foodgram!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.list.Render(); got != tt.want {
				t.Errorf("Render() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	l := List{UserID: 42, GeneratedAt: generatedAt}
	if got, want := l.Filename(), "shopping_list_42_05-03-2024_09_07_03.txt"; got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestCapitalize(t *testing.T) {
	for in, want := range map[string]string{
		"":         "",
		"egg":      "Egg",
		"bAY LEAF": "Bay leaf",
		"1% milk":  "1% milk",
		"éclair":   "Éclair",
	} {
		if got := capitalize(in); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}
