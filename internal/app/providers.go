// Package app assembles repositories, use cases and delivery handlers.
package app

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/foodgram/internal/config"
	recipegrpc "github.com/tair/foodgram/internal/recipe/delivery/grpc"
	recipehttp "github.com/tair/foodgram/internal/recipe/delivery/http"
	recipedomain "github.com/tair/foodgram/internal/recipe/domain"
	reciperepo "github.com/tair/foodgram/internal/recipe/repository"
	recipecommand "github.com/tair/foodgram/internal/recipe/usecase/command"
	recipequery "github.com/tair/foodgram/internal/recipe/usecase/query"
	userhttp "github.com/tair/foodgram/internal/user/delivery/http"
	userdomain "github.com/tair/foodgram/internal/user/domain"
	userrepo "github.com/tair/foodgram/internal/user/repository"
	usercommand "github.com/tair/foodgram/internal/user/usecase/command"
	"github.com/tair/foodgram/kafka"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/metrics"
	"github.com/tair/foodgram/pkg/shortlink"
)

// Publisher delivers domain events; see kafka.ResilientPublisher and kafka.NopPublisher
type Publisher interface {
	Publish(ctx context.Context, event kafka.Event)
}

// Handlers are the assembled delivery endpoints
type Handlers struct {
	User   *userhttp.UserHandler
	Recipe *recipehttp.RecipeHandler
	GRPC   *recipegrpc.RecipeServer
}

func NewHandlers(user *userhttp.UserHandler, recipe *recipehttp.RecipeHandler, grpcServer *recipegrpc.RecipeServer) *Handlers {
	return &Handlers{User: user, Recipe: recipe, GRPC: grpcServer}
}

// Entities lists every table for AutoMigrate, parents first
func Entities() []interface{} {
	return []interface{}{
		&userdomain.User{},
		&userdomain.Subscription{},
		&recipedomain.Ingredient{},
		&recipedomain.Tag{},
		&recipedomain.Recipe{},
		&recipedomain.RecipeIngredient{},
		&recipedomain.RecipeTag{},
		&recipedomain.RecipeRelation{},
	}
}

// Repository providers; every repository is wrapped with tracing

func ProvideUserRepository(db *gorm.DB) userdomain.UserRepository {
	return userrepo.NewUserRepositoryWithTracing(userrepo.NewGormUserRepository(db))
}

func ProvideSubscriptionRepository(db *gorm.DB) userdomain.SubscriptionRepository {
	return userrepo.NewSubscriptionRepositoryWithTracing(userrepo.NewGormSubscriptionRepository(db))
}

func ProvideRecipeRepository(db *gorm.DB) recipedomain.RecipeRepository {
	return reciperepo.NewRecipeRepositoryWithTracing(reciperepo.NewGormRecipeRepository(db))
}

func ProvideRelationStore(db *gorm.DB) recipedomain.RelationStore {
	return reciperepo.NewRelationRepositoryWithTracing(reciperepo.NewGormRelationRepository(db))
}

func ProvideIngredientRepository(db *gorm.DB) recipedomain.IngredientRepository {
	return reciperepo.NewIngredientRepositoryWithTracing(reciperepo.NewGormIngredientRepository(db))
}

func ProvideTagRepository(db *gorm.DB) recipedomain.TagRepository {
	return reciperepo.NewTagRepositoryWithTracing(reciperepo.NewGormTagRepository(db))
}

func ProvideRecipeFeed(db *gorm.DB) userdomain.RecipeFeed {
	return reciperepo.NewGormRecipeFeed(db)
}

// ProvideShortLinkCache uses Redis when a client is configured
func ProvideShortLinkCache(client *redis.Client) recipedomain.ShortLinkCache {
	if client == nil {
		return reciperepo.NoopShortLinkCache{}
	}
	return reciperepo.NewRedisShortLinkCache(client)
}

func ProvideRecipeRepositories(
	recipes recipedomain.RecipeRepository,
	relations recipedomain.RelationStore,
	ingredients recipedomain.IngredientRepository,
	tags recipedomain.TagRepository,
	users userdomain.UserRepository,
	subs userdomain.SubscriptionRepository,
	cache recipedomain.ShortLinkCache,
) recipehttp.Repositories {
	return recipehttp.Repositories{
		Recipes:     recipes,
		Relations:   relations,
		Ingredients: ingredients,
		Tags:        tags,
		Users:       users,
		Subs:        subs,
		Cache:       cache,
	}
}

// Configuration providers

func ProvideTokenManager(cfg *config.Config) *auth.TokenManager {
	return auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}

func ProvideLinkGenerator(cfg *config.Config) recipecommand.LinkGenerator {
	return shortlink.NewGenerator(cfg.Recipes.ShortLinkLength, cfg.Recipes.ShortLinkAttempts)
}

func ProvideLimits(cfg *config.Config) recipedomain.Limits {
	return recipedomain.Limits{
		MinCookingTime: cfg.Recipes.MinCookingTime,
		MaxCookingTime: cfg.Recipes.MaxCookingTime,
		MinAmount:      cfg.Recipes.MinAmount,
		MaxAmount:      cfg.Recipes.MaxAmount,
	}
}

func ProvideUserPaging(cfg *config.Config) userhttp.Paging {
	return userhttp.Paging{PageSize: cfg.Recipes.PageSize, MaxPageSize: cfg.Recipes.MaxPageSize}
}

func ProvideRecipeOptions(cfg *config.Config, limits recipedomain.Limits) recipehttp.Options {
	return recipehttp.Options{
		Limits:       limits,
		PageSize:     cfg.Recipes.PageSize,
		MaxPageSize:  cfg.Recipes.MaxPageSize,
		ShortLinkTTL: cfg.Redis.ShortLinkTTL,
		PublicURL:    cfg.PublicBaseURL(),
		FrontendURL:  cfg.HTTP.FrontendURL,
	}
}

// Event publisher bindings for the use case packages

func ProvideUserEventPublisher(p Publisher) usercommand.EventPublisher { return p }

func ProvideRecipeEventPublisher(p Publisher) recipecommand.EventPublisher { return p }

// gRPC query handlers

func ProvideShortLinkHandler(repos recipehttp.Repositories, opts recipehttp.Options, m *metrics.Metrics) *recipequery.ShortLinkHandler {
	return recipequery.NewShortLinkHandler(repos.Recipes, repos.Cache, opts.ShortLinkTTL, opts.PublicURL, m)
}

func ProvideShoppingListHandler(repos recipehttp.Repositories, m *metrics.Metrics) *recipequery.ShoppingListHandler {
	return recipequery.NewShoppingListHandler(repos.Users, repos.Relations, m)
}
