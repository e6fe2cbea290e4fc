package grpc

import (
	"context"

	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/tair/foodgram/internal/recipe/usecase/query"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/errs"
)

// RecipeServer implements the gRPC RecipeService
type RecipeServer struct {
	linkHandler     *query.ShortLinkHandler
	shoppingHandler *query.ShoppingListHandler
}

func NewRecipeServer(linkHandler *query.ShortLinkHandler, shoppingHandler *query.ShoppingListHandler) *RecipeServer {
	return &RecipeServer{linkHandler: linkHandler, shoppingHandler: shoppingHandler}
}

// toStatus converts an application error into a gRPC status
func toStatus(err error) error {
	return status.Error(errs.GRPCCode(err), errs.PublicMessage(err))
}

// ResolveShortLink maps a short link token to its recipe id
func (s *RecipeServer) ResolveShortLink(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.UInt64Value, error) {
	id, err := s.linkHandler.Resolve(ctx, req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.UInt64(uint64(id)), nil
}

// DownloadShoppingList renders the caller's shopping list
func (s *RecipeServer) DownloadShoppingList(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	list, err := s.shoppingHandler.Handle(ctx, auth.ActorFrom(ctx))
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.String(list.Render()), nil
}
