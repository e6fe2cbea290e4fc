package grpc

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/internal/recipe/repository"
	"github.com/tair/foodgram/internal/recipe/usecase/query"
	userdomain "github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/errs"
	"github.com/tair/foodgram/pkg/metrics"
)

type linkRecipes struct {
	domain.RecipeRepository
	links map[string]uint
}

func (l linkRecipes) IDByShortLink(_ context.Context, token string) (uint, error) {
	if id, ok := l.links[token]; ok {
		return id, nil
	}
	return 0, errs.NotFound("short link not found")
}

type oneUser struct {
	userdomain.UserRepository
}

func (oneUser) FindByID(_ context.Context, id uint) (*userdomain.User, error) {
	return &userdomain.User{ID: id, FirstName: "Nina", LastName: "Orlova"}, nil
}

type cart struct{}

func (cart) CartLines(context.Context, uint) ([]domain.ShoppingLine, error) {
	return []domain.ShoppingLine{{Name: "rice", MeasurementUnit: "g", Amount: 250}}, nil
}

func (cart) CartRecipeNames(context.Context, uint) ([]string, error) {
	return []string{"Pilaf"}, nil
}

func dial(t *testing.T) (*grpc.ClientConn, *auth.TokenManager, *metrics.Metrics) {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	m := metrics.New(prometheus.NewRegistry())

	links := query.NewShortLinkHandler(linkRecipes{links: map[string]uint{"abc123": 7}}, repository.NoopShortLinkCache{}, time.Hour, "", m)
	shopping := query.NewShoppingListHandler(oneUser{}, cart{}, m)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(LoggingInterceptor(m), AuthInterceptor(tokens)))
	RegisterRecipeServiceServer(srv, NewRecipeServer(links, shopping))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn, tokens, m
}

func TestResolveShortLink(t *testing.T) {
	conn, _, m := dial(t)
	ctx := context.Background()

	out := new(wrapperspb.UInt64Value)
	if err := conn.Invoke(ctx, ResolveShortLinkMethod, wrapperspb.String("abc123"), out); err != nil {
		t.Fatalf("ResolveShortLink() error = %v", err)
	}
	if out.GetValue() != 7 {
		t.Errorf("recipe id = %d, want 7", out.GetValue())
	}

	err := conn.Invoke(ctx, ResolveShortLinkMethod, wrapperspb.String("nope00"), new(wrapperspb.UInt64Value))
	if status.Code(err) != codes.NotFound {
		t.Errorf("unknown token code = %v, want NotFound", status.Code(err))
	}

	if got := testutil.ToFloat64(m.GRPCRequestsTotal.WithLabelValues(ResolveShortLinkMethod, "NotFound")); got != 1 {
		t.Errorf("grpc_requests_total{NotFound} = %v, want 1", got)
	}
}

func TestDownloadShoppingList(t *testing.T) {
	conn, tokens, _ := dial(t)

	err := conn.Invoke(context.Background(), DownloadShoppingListMethod, &emptypb.Empty{}, new(wrapperspb.StringValue))
	if status.Code(err) != codes.Unauthenticated {
		t.Errorf("anonymous code = %v, want Unauthenticated", status.Code(err))
	}

	bad := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer garbage")
	err = conn.Invoke(bad, DownloadShoppingListMethod, &emptypb.Empty{}, new(wrapperspb.StringValue))
	if status.Code(err) != codes.Unauthenticated {
		t.Errorf("bad token code = %v, want Unauthenticated", status.Code(err))
	}

	token, err := tokens.GenerateToken(3, "nina@example.com", userdomain.RoleUser)
	if err != nil {
		t.Fatal(err)
	}
	ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token)
	out := new(wrapperspb.StringValue)
	if err := conn.Invoke(ctx, DownloadShoppingListMethod, &emptypb.Empty{}, out); err != nil {
		t.Fatalf("DownloadShoppingList() error = %v", err)
	}
	for _, want := range []string{"Shopping list for Nina Orlova", "1. Rice - 250 g", "· Pilaf"} {
		if !strings.Contains(out.GetValue(), want) {
			t.Errorf("list missing %q:\n%s", want, out.GetValue())
		}
	}
}
