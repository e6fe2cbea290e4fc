//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/foodgram/internal/config"
	recipegrpc "github.com/tair/foodgram/internal/recipe/delivery/grpc"
	recipehttp "github.com/tair/foodgram/internal/recipe/delivery/http"
	userhttp "github.com/tair/foodgram/internal/user/delivery/http"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/httpx"
	"github.com/tair/foodgram/pkg/metrics"
)

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
	ProvideSubscriptionRepository,
	ProvideRecipeRepository,
	ProvideRelationStore,
	ProvideIngredientRepository,
	ProvideTagRepository,
	ProvideRecipeFeed,
	ProvideShortLinkCache,
	ProvideRecipeRepositories,
)

var ConfigSet = wire.NewSet(
	ProvideTokenManager,
	wire.Bind(new(httpx.TokenValidator), new(*auth.TokenManager)),
	ProvideLinkGenerator,
	ProvideLimits,
	ProvideUserPaging,
	ProvideRecipeOptions,
	ProvideUserEventPublisher,
	ProvideRecipeEventPublisher,
)

var DeliverySet = wire.NewSet(
	userhttp.NewUserHandler,
	recipehttp.NewRecipeHandler,
	ProvideShortLinkHandler,
	ProvideShoppingListHandler,
	recipegrpc.NewRecipeServer,
	NewHandlers,
)

// InitializeHandlers builds every HTTP and gRPC handler. rdb may be nil.
func InitializeHandlers(cfg *config.Config, db *gorm.DB, rdb *redis.Client, publisher Publisher, m *metrics.Metrics) (*Handlers, error) {
	wire.Build(
		RepositorySet,
		ConfigSet,
		DeliverySet,
	)
	return nil, nil
}
