package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/foodgram/internal/recipe/domain"
	userdomain "github.com/tair/foodgram/internal/user/domain"
)

// GormRecipeFeed implements the user module's RecipeFeed over the recipes table
type GormRecipeFeed struct {
	db *gorm.DB
}

// NewGormRecipeFeed creates the recipe feed used by the subscriptions list
func NewGormRecipeFeed(db *gorm.DB) *GormRecipeFeed {
	return &GormRecipeFeed{db: db}
}

type feedRow struct {
	ID          uint
	AuthorID    uint
	Name        string
	Image       string
	CookingTime int
}

// RecipesByAuthors returns the newest recipes of each author; limit <= 0 returns all of them
func (f *GormRecipeFeed) RecipesByAuthors(ctx context.Context, authorIDs []uint, limit int) (map[uint][]userdomain.RecipeBrief, error) {
	result := make(map[uint][]userdomain.RecipeBrief, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}

	var rows []feedRow
	var err error
	if limit > 0 {
		ranked := f.db.Model(&domain.Recipe{}).
			Select("id, author_id, name, image, cooking_time, created_at, "+
				"ROW_NUMBER() OVER (PARTITION BY author_id ORDER BY created_at DESC, id DESC) AS rn").
			Where("author_id IN ?", authorIDs)
		err = f.db.WithContext(ctx).
			Table("(?) AS ranked", ranked).
			Select("id, author_id, name, image, cooking_time").
			Where("rn <= ?", limit).
			Order("author_id ASC, rn ASC").
			Scan(&rows).Error
	} else {
		err = f.db.WithContext(ctx).Model(&domain.Recipe{}).
			Select("id, author_id, name, image, cooking_time").
			Where("author_id IN ?", authorIDs).
			Order("created_at DESC, id DESC").
			Scan(&rows).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load author recipes: %w", err)
	}

	for _, row := range rows {
		result[row.AuthorID] = append(result[row.AuthorID], userdomain.RecipeBrief{
			ID:          row.ID,
			Name:        row.Name,
			Image:       row.Image,
			CookingTime: row.CookingTime,
		})
	}
	return result, nil
}

// CountByAuthors returns the number of recipes of each author
func (f *GormRecipeFeed) CountByAuthors(ctx context.Context, authorIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		AuthorID uint
		Total    int64
	}
	err := f.db.WithContext(ctx).Model(&domain.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count author recipes: %w", err)
	}
	for _, row := range rows {
		result[row.AuthorID] = row.Total
	}
	return result, nil
}
