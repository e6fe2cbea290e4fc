package validation

import (
	"testing"

	"github.com/tair/foodgram/pkg/errs"
)

type item struct {
	ID     uint `json:"id" validate:"gt=0"`
	Amount int  `json:"amount"`
}

type payload struct {
	Name  string `json:"name" validate:"required,max=10"`
	Email string `json:"email" validate:"omitempty,email"`
	Tags  []uint `json:"tags" validate:"required,min=1,unique"`
	Items []item `json:"ingredients" validate:"required,min=1,unique=ID,dive"`
}

func valid() payload {
	return payload{
		Name:  "soup",
		Tags:  []uint{1, 2},
		Items: []item{{ID: 1, Amount: 2}, {ID: 2, Amount: 3}},
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *payload)
		wantField string
	}{
		{"valid", func(p *payload) {}, ""},
		{"missing name", func(p *payload) { p.Name = "" }, "name"},
		{"bad email", func(p *payload) { p.Email = "nope" }, "email"},
		{"empty tags", func(p *payload) { p.Tags = []uint{} }, "tags"},
		{"duplicate tags", func(p *payload) { p.Tags = []uint{3, 3} }, "tags"},
		{"nil ingredients", func(p *payload) { p.Items = nil }, "ingredients"},
		{"duplicate ingredients", func(p *payload) {
			p.Items = []item{{ID: 4, Amount: 1}, {ID: 4, Amount: 9}}
		}, "ingredients"},
		{"zero ingredient id", func(p *payload) { p.Items = []item{{ID: 0, Amount: 1}} }, "ingredients[0].id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(&p)

			err := Struct(&p)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Struct() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Struct() expected error, got nil")
			}
			if !errs.IsValidation(err) {
				t.Errorf("Struct() error should be a validation error, got %v", err)
			}
			if got := errs.FieldOf(err); got != tt.wantField {
				t.Errorf("field = %q, want %q", got, tt.wantField)
			}
		})
	}
}

func TestSlugTag(t *testing.T) {
	type tag struct {
		Slug string `json:"slug" validate:"required,slug"`
	}

	tests := []struct {
		slug string
		ok   bool
	}{
		{"breakfast", true},
		{"late-night_2", true},
		{"with space", false},
		{"ужин", false},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			err := Struct(&tag{Slug: tt.slug})
			if (err == nil) != tt.ok {
				t.Errorf("Struct(%q) error = %v, want ok=%v", tt.slug, err, tt.ok)
			}
			if err != nil && errs.FieldOf(err) != "slug" {
				t.Errorf("field = %q, want slug", errs.FieldOf(err))
			}
		})
	}
}
