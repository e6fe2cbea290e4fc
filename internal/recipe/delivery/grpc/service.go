package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "foodgram.v1.RecipeService"

	ResolveShortLinkMethod     = "/" + ServiceName + "/ResolveShortLink"
	DownloadShoppingListMethod = "/" + ServiceName + "/DownloadShoppingList"
)

// RecipeServiceServer is the server API of foodgram.v1.RecipeService. Messages
// are protobuf well-known wrapper types so no generated code is needed.
type RecipeServiceServer interface {
	ResolveShortLink(context.Context, *wrapperspb.StringValue) (*wrapperspb.UInt64Value, error)
	DownloadShoppingList(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
}

func RegisterRecipeServiceServer(s grpc.ServiceRegistrar, srv RecipeServiceServer) {
	s.RegisterService(&RecipeServiceDesc, srv)
}

func resolveShortLinkHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RecipeServiceServer).ResolveShortLink(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ResolveShortLinkMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RecipeServiceServer).ResolveShortLink(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func downloadShoppingListHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RecipeServiceServer).DownloadShoppingList(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DownloadShoppingListMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RecipeServiceServer).DownloadShoppingList(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// RecipeServiceDesc describes foodgram.v1.RecipeService
var RecipeServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RecipeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ResolveShortLink", Handler: resolveShortLinkHandler},
		{MethodName: "DownloadShoppingList", Handler: downloadShoppingListHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "foodgram/v1/recipe.proto",
}
