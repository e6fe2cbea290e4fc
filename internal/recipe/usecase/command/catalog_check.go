package command

import (
	"context"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/pkg/errs"
)

// catalogChecker verifies that submitted ids exist before any write
type catalogChecker struct {
	ingredients domain.IngredientRepository
	tags        domain.TagRepository
}

func (c catalogChecker) check(ctx context.Context, comp *domain.Composition) error {
	missing, err := c.ingredients.MissingIDs(ctx, comp.IngredientIDs())
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return errs.ValidationField("ingredients", "ingredients do not exist: %v", missing)
	}

	missing, err = c.tags.MissingIDs(ctx, comp.Tags)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return errs.ValidationField("tags", "tags do not exist: %v", missing)
	}
	return nil
}
