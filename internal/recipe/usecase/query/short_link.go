package query

import (
	"context"
	"strings"
	"time"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/pkg/errs"
	"github.com/tair/foodgram/pkg/logger"
	"github.com/tair/foodgram/pkg/metrics"
)

const (
	resolvedFromCache = "cache_hit"
	resolvedFromDB    = "db_hit"
	notResolved       = "not_found"
)

// ShortLinkHandler resolves short link tokens and renders links for recipes
type ShortLinkHandler struct {
	recipes   domain.RecipeRepository
	cache     domain.ShortLinkCache
	ttl       time.Duration
	publicURL string
	metrics   *metrics.Metrics
}

func NewShortLinkHandler(recipes domain.RecipeRepository, cache domain.ShortLinkCache, ttl time.Duration, publicURL string, m *metrics.Metrics) *ShortLinkHandler {
	return &ShortLinkHandler{
		recipes:   recipes,
		cache:     cache,
		ttl:       ttl,
		publicURL: strings.TrimRight(publicURL, "/"),
		metrics:   m,
	}
}

// Resolve maps token to a recipe id, reading through the cache. Cache
// failures degrade to a database lookup.
func (h *ShortLinkHandler) Resolve(ctx context.Context, token string) (uint, error) {
	if token == "" {
		h.observe(notResolved)
		return 0, errs.NotFound("short link not found")
	}

	id, ok, err := h.cache.Get(ctx, token)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("token", token).Msg("Short link cache read failed")
	}
	if ok {
		h.observe(resolvedFromCache)
		return id, nil
	}

	id, err = h.recipes.IDByShortLink(ctx, token)
	if err != nil {
		if errs.IsNotFound(err) {
			h.observe(notResolved)
		}
		return 0, err
	}
	h.observe(resolvedFromDB)

	if err := h.cache.Set(ctx, token, id, h.ttl); err != nil {
		logger.Warn(ctx).Err(err).Str("token", token).Msg("Short link cache write failed")
	}
	return id, nil
}

// Link returns the absolute short link of a recipe
func (h *ShortLinkHandler) Link(ctx context.Context, recipeID uint) (*domain.ShortLinkResponse, error) {
	recipe, err := h.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return &domain.ShortLinkResponse{ShortLink: h.publicURL + "/s/" + recipe.ShortLink + "/"}, nil
}

func (h *ShortLinkHandler) observe(result string) {
	h.metrics.ShortLinkResolved(result)
}
