package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/pkg/errs"
)

var tracer = otel.Tracer("recipe-repository")

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(append(attrs, attribute.String("db.system", "postgresql"))...),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil && errs.KindOf(err) == errs.KindInternal {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func recipeID(id uint) attribute.KeyValue {
	return attribute.Int("recipe.id", int(id))
}

// RecipeRepositoryWithTracing wraps a RecipeRepository with tracing
type RecipeRepositoryWithTracing struct {
	next domain.RecipeRepository
}

// NewRecipeRepositoryWithTracing wraps next with tracing spans
func NewRecipeRepositoryWithTracing(next domain.RecipeRepository) *RecipeRepositoryWithTracing {
	return &RecipeRepositoryWithTracing{next: next}
}

// Create with tracing
func (r *RecipeRepositoryWithTracing) Create(ctx context.Context, recipe *domain.Recipe, tagIDs []uint) (err error) {
	ctx, span := startSpan(ctx, "repository.Recipe.Create",
		attribute.Int("recipe.author_id", int(recipe.AuthorID)),
		attribute.Int("recipe.ingredients", len(recipe.Ingredients)),
		attribute.Int("recipe.tags", len(tagIDs)),
	)
	defer func() { endSpan(span, err) }()

	if err = r.next.Create(ctx, recipe, tagIDs); err == nil {
		span.SetAttributes(recipeID(recipe.ID))
	}
	return err
}

// Update with tracing
func (r *RecipeRepositoryWithTracing) Update(ctx context.Context, recipe *domain.Recipe, tagIDs []uint) (err error) {
	ctx, span := startSpan(ctx, "repository.Recipe.Update", recipeID(recipe.ID))
	defer func() { endSpan(span, err) }()
	return r.next.Update(ctx, recipe, tagIDs)
}

// Delete with tracing
func (r *RecipeRepositoryWithTracing) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := startSpan(ctx, "repository.Recipe.Delete", recipeID(id))
	defer func() { endSpan(span, err) }()
	return r.next.Delete(ctx, id)
}

// FindByID with tracing
func (r *RecipeRepositoryWithTracing) FindByID(ctx context.Context, id uint) (recipe *domain.Recipe, err error) {
	ctx, span := startSpan(ctx, "repository.Recipe.FindByID", recipeID(id))
	defer func() { endSpan(span, err) }()
	return r.next.FindByID(ctx, id)
}

// FindDetailed with tracing
func (r *RecipeRepositoryWithTracing) FindDetailed(ctx context.Context, id uint) (recipe *domain.Recipe, err error) {
	ctx, span := startSpan(ctx, "repository.Recipe.FindDetailed", recipeID(id))
	defer func() { endSpan(span, err) }()
	return r.next.FindDetailed(ctx, id)
}

// List with tracing
func (r *RecipeRepositoryWithTracing) List(ctx context.Context, filter domain.RecipeFilter) (recipes []domain.Recipe, total int64, err error) {
	ctx, span := startSpan(ctx, "repository.Recipe.List",
		attribute.StringSlice("filter.tags", filter.TagSlugs),
		attribute.Int("filter.author_id", int(filter.AuthorID)),
		attribute.Int("pagination.limit", filter.Limit),
		attribute.Int("pagination.offset", filter.Offset),
	)
	defer func() { endSpan(span, err) }()

	recipes, total, err = r.next.List(ctx, filter)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(recipes)), attribute.Int64("result.total", total))
	}
	return recipes, total, err
}

// IDByShortLink with tracing
func (r *RecipeRepositoryWithTracing) IDByShortLink(ctx context.Context, token string) (id uint, err error) {
	ctx, span := startSpan(ctx, "repository.Recipe.IDByShortLink", attribute.String("recipe.short_link", token))
	defer func() { endSpan(span, err) }()
	return r.next.IDByShortLink(ctx, token)
}

// ShortLinkExists with tracing
func (r *RecipeRepositoryWithTracing) ShortLinkExists(ctx context.Context, token string) (ok bool, err error) {
	ctx, span := startSpan(ctx, "repository.Recipe.ShortLinkExists", attribute.String("recipe.short_link", token))
	defer func() { endSpan(span, err) }()
	return r.next.ShortLinkExists(ctx, token)
}

// RelationRepositoryWithTracing wraps the relation repository with tracing
type RelationRepositoryWithTracing struct {
	next domain.RelationStore
}

// NewRelationRepositoryWithTracing wraps next with tracing spans
func NewRelationRepositoryWithTracing(next domain.RelationStore) *RelationRepositoryWithTracing {
	return &RelationRepositoryWithTracing{next: next}
}

func edgeAttrs(kind domain.RelationKind, userID, recipe uint) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("relation.kind", string(kind)),
		attribute.Int("user.id", int(userID)),
		recipeID(recipe),
	}
}

// Add with tracing
func (r *RelationRepositoryWithTracing) Add(ctx context.Context, kind domain.RelationKind, userID, recipe uint) (err error) {
	ctx, span := startSpan(ctx, "repository.Relation.Add", edgeAttrs(kind, userID, recipe)...)
	defer func() { endSpan(span, err) }()
	return r.next.Add(ctx, kind, userID, recipe)
}

// Remove with tracing
func (r *RelationRepositoryWithTracing) Remove(ctx context.Context, kind domain.RelationKind, userID, recipe uint) (removed bool, err error) {
	ctx, span := startSpan(ctx, "repository.Relation.Remove", edgeAttrs(kind, userID, recipe)...)
	defer func() { endSpan(span, err) }()
	return r.next.Remove(ctx, kind, userID, recipe)
}

// Exists with tracing
func (r *RelationRepositoryWithTracing) Exists(ctx context.Context, kind domain.RelationKind, userID, recipe uint) (ok bool, err error) {
	ctx, span := startSpan(ctx, "repository.Relation.Exists", edgeAttrs(kind, userID, recipe)...)
	defer func() { endSpan(span, err) }()
	return r.next.Exists(ctx, kind, userID, recipe)
}

// Flags with tracing
func (r *RelationRepositoryWithTracing) Flags(ctx context.Context, userID uint, recipeIDs []uint) (flags map[uint]domain.Flags, err error) {
	ctx, span := startSpan(ctx, "repository.Relation.Flags",
		attribute.Int("user.id", int(userID)),
		attribute.Int("recipe.count", len(recipeIDs)),
	)
	defer func() { endSpan(span, err) }()
	return r.next.Flags(ctx, userID, recipeIDs)
}

// CartLines with tracing
func (r *RelationRepositoryWithTracing) CartLines(ctx context.Context, userID uint) (lines []domain.ShoppingLine, err error) {
	ctx, span := startSpan(ctx, "repository.Relation.CartLines", attribute.Int("user.id", int(userID)))
	defer func() { endSpan(span, err) }()

	lines, err = r.next.CartLines(ctx, userID)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(lines)))
	}
	return lines, err
}

// CartRecipeNames with tracing
func (r *RelationRepositoryWithTracing) CartRecipeNames(ctx context.Context, userID uint) (names []string, err error) {
	ctx, span := startSpan(ctx, "repository.Relation.CartRecipeNames", attribute.Int("user.id", int(userID)))
	defer func() { endSpan(span, err) }()
	return r.next.CartRecipeNames(ctx, userID)
}

// IngredientRepositoryWithTracing wraps an IngredientRepository with tracing
type IngredientRepositoryWithTracing struct {
	next domain.IngredientRepository
}

// NewIngredientRepositoryWithTracing wraps next with tracing spans
func NewIngredientRepositoryWithTracing(next domain.IngredientRepository) *IngredientRepositoryWithTracing {
	return &IngredientRepositoryWithTracing{next: next}
}

// Create with tracing
func (r *IngredientRepositoryWithTracing) Create(ctx context.Context, ingredient *domain.Ingredient) (err error) {
	ctx, span := startSpan(ctx, "repository.Ingredient.Create", attribute.String("ingredient.name", ingredient.Name))
	defer func() { endSpan(span, err) }()
	return r.next.Create(ctx, ingredient)
}

// FindByID with tracing
func (r *IngredientRepositoryWithTracing) FindByID(ctx context.Context, id uint) (ingredient *domain.Ingredient, err error) {
	ctx, span := startSpan(ctx, "repository.Ingredient.FindByID", attribute.Int("ingredient.id", int(id)))
	defer func() { endSpan(span, err) }()
	return r.next.FindByID(ctx, id)
}

// Search with tracing
func (r *IngredientRepositoryWithTracing) Search(ctx context.Context, prefix string) (ingredients []domain.Ingredient, err error) {
	ctx, span := startSpan(ctx, "repository.Ingredient.Search", attribute.String("filter.name", prefix))
	defer func() { endSpan(span, err) }()
	return r.next.Search(ctx, prefix)
}

// MissingIDs with tracing
func (r *IngredientRepositoryWithTracing) MissingIDs(ctx context.Context, ids []uint) (missing []uint, err error) {
	ctx, span := startSpan(ctx, "repository.Ingredient.MissingIDs", attribute.Int("ingredient.count", len(ids)))
	defer func() { endSpan(span, err) }()
	return r.next.MissingIDs(ctx, ids)
}

// TagRepositoryWithTracing wraps a TagRepository with tracing
type TagRepositoryWithTracing struct {
	next domain.TagRepository
}

// NewTagRepositoryWithTracing wraps next with tracing spans
func NewTagRepositoryWithTracing(next domain.TagRepository) *TagRepositoryWithTracing {
	return &TagRepositoryWithTracing{next: next}
}

// Create with tracing
func (r *TagRepositoryWithTracing) Create(ctx context.Context, tag *domain.Tag) (err error) {
	ctx, span := startSpan(ctx, "repository.Tag.Create", attribute.String("tag.slug", tag.Slug))
	defer func() { endSpan(span, err) }()
	return r.next.Create(ctx, tag)
}

// FindByID with tracing
func (r *TagRepositoryWithTracing) FindByID(ctx context.Context, id uint) (tag *domain.Tag, err error) {
	ctx, span := startSpan(ctx, "repository.Tag.FindByID", attribute.Int("tag.id", int(id)))
	defer func() { endSpan(span, err) }()
	return r.next.FindByID(ctx, id)
}

// FindAll with tracing
func (r *TagRepositoryWithTracing) FindAll(ctx context.Context) (tags []domain.Tag, err error) {
	ctx, span := startSpan(ctx, "repository.Tag.FindAll")
	defer func() { endSpan(span, err) }()
	return r.next.FindAll(ctx)
}

// MissingIDs with tracing
func (r *TagRepositoryWithTracing) MissingIDs(ctx context.Context, ids []uint) (missing []uint, err error) {
	ctx, span := startSpan(ctx, "repository.Tag.MissingIDs", attribute.Int("tag.count", len(ids)))
	defer func() { endSpan(span, err) }()
	return r.next.MissingIDs(ctx, ids)
}
