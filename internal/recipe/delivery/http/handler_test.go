package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/internal/recipe/repository"
	userdomain "github.com/tair/foodgram/internal/user/domain"
	userrepo "github.com/tair/foodgram/internal/user/repository"
	"github.com/tair/foodgram/kafka"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/metrics"
	"github.com/tair/foodgram/pkg/shortlink"
)

type testServer struct {
	t       *testing.T
	db      *gorm.DB
	router  *mux.Router
	tokens  *auth.TokenManager
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithMetrics(t, metrics.New(prometheus.NewRegistry()))
}

func newTestServerWithMetrics(t *testing.T, m *metrics.Metrics) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := db.AutoMigrate(
		&userdomain.User{}, &userdomain.Subscription{},
		&domain.Ingredient{}, &domain.Tag{}, &domain.Recipe{},
		&domain.RecipeIngredient{}, &domain.RecipeTag{}, &domain.RecipeRelation{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	handler := NewRecipeHandler(
		Repositories{
			Recipes:     repository.NewGormRecipeRepository(db),
			Relations:   repository.NewGormRelationRepository(db),
			Ingredients: repository.NewGormIngredientRepository(db),
			Tags:        repository.NewGormTagRepository(db),
			Users:       userrepo.NewGormUserRepository(db),
			Subs:        userrepo.NewGormSubscriptionRepository(db),
			Cache:       repository.NoopShortLinkCache{},
		},
		shortlink.NewGenerator(6, 10),
		tokens,
		kafka.NopPublisher{},
		m,
		Options{
			Limits:       domain.DefaultLimits,
			PageSize:     6,
			MaxPageSize:  100,
			ShortLinkTTL: time.Hour,
			PublicURL:    "https://foodgram.example.com",
			FrontendURL:  "https://app.example.com/",
		},
	)
	router := mux.NewRouter()
	handler.RegisterRoutes(router.PathPrefix("/api").Subrouter())
	handler.RegisterRedirect(router)
	return &testServer{t: t, db: db, router: router, tokens: tokens, metrics: m}
}

// user stores an account directly and returns its token
func (s *testServer) user(name, role string) (uint, string) {
	s.t.Helper()
	u := &userdomain.User{
		Email: name + "@example.com", Username: name,
		FirstName: name, LastName: "Cook", Password: "x", Role: role,
	}
	if err := s.db.Create(u).Error; err != nil {
		s.t.Fatal(err)
	}
	token, err := s.tokens.GenerateToken(u.ID, u.Email, role)
	if err != nil {
		s.t.Fatal(err)
	}
	return u.ID, token
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", rec.Body, err)
	}
	return out
}

func expect(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d; body %s", rec.Code, status, rec.Body)
	}
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

// seedCatalog creates two ingredients and two tags through the admin endpoints
func (s *testServer) seedCatalog() {
	s.t.Helper()
	_, admin := s.user("admin", userdomain.RoleAdmin)
	for _, body := range []map[string]string{
		{"name": "flour", "measurement_unit": "g"},
		{"name": "Egg", "measurement_unit": "pcs"},
	} {
		expect(s.t, s.do(http.MethodPost, "/api/ingredients/", admin, body), http.StatusCreated)
	}
	for _, body := range []map[string]string{
		{"name": "Breakfast", "slug": "breakfast"},
		{"name": "Dinner", "slug": "dinner"},
	} {
		expect(s.t, s.do(http.MethodPost, "/api/tags/", admin, body), http.StatusCreated)
	}
}

func recipeBody(name string, tags []uint, flour int) map[string]interface{} {
	return map[string]interface{}{
		"name":         name,
		"image":        "data:image/png;base64,iVBORw0KGgo=",
		"text":         "Mix and bake.",
		"cooking_time": 20,
		"tags":         tags,
		"ingredients": []map[string]int{
			{"id": 1, "amount": flour},
			{"id": 2, "amount": 2},
		},
	}
}

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer(t)
	_, userToken := s.user("alice", userdomain.RoleUser)

	expect(t, s.do(http.MethodPost, "/api/tags/", "", map[string]string{"name": "x", "slug": "x"}), http.StatusUnauthorized)
	expect(t, s.do(http.MethodPost, "/api/tags/", userToken, map[string]string{"name": "x", "slug": "x"}), http.StatusForbidden)

	s.seedCatalog()

	tags := decode[[]domain.Tag](t, s.do(http.MethodGet, "/api/tags/", "", nil))
	if len(tags) != 2 || tags[0].Slug != "breakfast" {
		t.Errorf("tags = %+v", tags)
	}
	expect(t, s.do(http.MethodGet, "/api/tags/99/", "", nil), http.StatusNotFound)

	found := decode[[]domain.Ingredient](t, s.do(http.MethodGet, "/api/ingredients/?name=EG", "", nil))
	if len(found) != 1 || found[0].Name != "Egg" {
		t.Errorf("ingredients?name=EG = %+v", found)
	}
	one := decode[domain.Ingredient](t, s.do(http.MethodGet, "/api/ingredients/1/", "", nil))
	if one.Name != "flour" || one.MeasurementUnit != "g" {
		t.Errorf("ingredient 1 = %+v", one)
	}
}

func TestRecipeLifecycle(t *testing.T) {
	s := newTestServer(t)
	s.seedCatalog()
	authorID, author := s.user("chef", userdomain.RoleUser)
	_, other := s.user("guest", userdomain.RoleUser)

	rec := s.do(http.MethodPost, "/api/recipes/", author, recipeBody("Pancakes", []uint{1}, 200))
	expect(t, rec, http.StatusCreated)
	created := decode[domain.RecipeView](t, rec)
	if created.Author.ID != authorID || len(created.Ingredients) != 2 || created.Ingredients[0].Name != "flour" {
		t.Errorf("created = %+v", created)
	}
	if got := testutil.ToFloat64(s.metrics.RecipesCreated); got != 1 {
		t.Errorf("recipes_created_total = %v", got)
	}
	path := "/api/recipes/" + itoa(created.ID) + "/"

	patch := map[string]interface{}{
		"name":        "Crepes",
		"tags":        []uint{2},
		"ingredients": []map[string]int{{"id": 2, "amount": 3}},
	}
	expect(t, s.do(http.MethodPatch, path, other, patch), http.StatusForbidden)
	expect(t, s.do(http.MethodPatch, path, "", patch), http.StatusUnauthorized)

	rec = s.do(http.MethodPatch, path, author, patch)
	expect(t, rec, http.StatusOK)
	updated := decode[domain.RecipeView](t, rec)
	if updated.Name != "Crepes" || updated.CookingTime != 20 || len(updated.Tags) != 1 || updated.Tags[0].Slug != "dinner" {
		t.Errorf("updated = %+v", updated)
	}
	if len(updated.Ingredients) != 1 || updated.Ingredients[0].Amount != 3 {
		t.Errorf("updated ingredients = %+v", updated.Ingredients)
	}

	blank := map[string]interface{}{
		"name":        "   ",
		"tags":        []uint{2},
		"ingredients": []map[string]int{{"id": 2, "amount": 3}},
	}
	rec = s.do(http.MethodPatch, path, author, blank)
	expect(t, rec, http.StatusBadRequest)
	if got := decode[map[string]string](t, rec)["field"]; got != "name" {
		t.Errorf("blank name field = %q, want name", got)
	}
	if kept := decode[domain.RecipeView](t, s.do(http.MethodGet, path, "", nil)); kept.Name != "Crepes" {
		t.Errorf("name after rejected patch = %q, want Crepes", kept.Name)
	}

	expect(t, s.do(http.MethodDelete, path, other, nil), http.StatusForbidden)
	expect(t, s.do(http.MethodDelete, path, author, nil), http.StatusNoContent)
	expect(t, s.do(http.MethodGet, path, "", nil), http.StatusNotFound)
}

func TestHandlerWithoutMetrics(t *testing.T) {
	s := newTestServerWithMetrics(t, nil)
	s.seedCatalog()
	_, author := s.user("chef", userdomain.RoleUser)

	rec := s.do(http.MethodPost, "/api/recipes/", author, recipeBody("Pancakes", []uint{1}, 200))
	expect(t, rec, http.StatusCreated)
	path := "/api/recipes/" + itoa(decode[domain.RecipeView](t, rec).ID)

	expect(t, s.do(http.MethodPost, path+"/favorite/", author, nil), http.StatusCreated)
	expect(t, s.do(http.MethodDelete, path+"/favorite/", author, nil), http.StatusNoContent)
	expect(t, s.do(http.MethodGet, "/api/recipes/download_shopping_cart/", author, nil), http.StatusOK)
}

func TestCreateRecipeValidation(t *testing.T) {
	s := newTestServer(t)
	s.seedCatalog()
	_, author := s.user("chef", userdomain.RoleUser)

	tests := []struct {
		name      string
		mutate    func(b map[string]interface{})
		wantField string
	}{
		{"no tags", func(b map[string]interface{}) { b["tags"] = []uint{} }, "tags"},
		{"unknown tag", func(b map[string]interface{}) { b["tags"] = []uint{1, 77} }, "tags"},
		{"unknown ingredient", func(b map[string]interface{}) {
			b["ingredients"] = []map[string]int{{"id": 50, "amount": 1}}
		}, "ingredients"},
		{"zero amount", func(b map[string]interface{}) {
			b["ingredients"] = []map[string]int{{"id": 1, "amount": 0}}
		}, "ingredients[0].amount"},
		{"long cooking", func(b map[string]interface{}) { b["cooking_time"] = 5000 }, "cooking_time"},
		{"no image", func(b map[string]interface{}) { delete(b, "image") }, "image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := recipeBody("Bad", []uint{1}, 10)
			tt.mutate(body)
			rec := s.do(http.MethodPost, "/api/recipes/", author, body)
			expect(t, rec, http.StatusBadRequest)
			if got := decode[map[string]string](t, rec)["field"]; got != tt.wantField {
				t.Errorf("field = %q, want %q", got, tt.wantField)
			}
		})
	}

	page := decode[struct {
		Count int `json:"count"`
	}](t, s.do(http.MethodGet, "/api/recipes/", "", nil))
	if page.Count != 0 {
		t.Errorf("count = %d, rejected recipes must not be stored", page.Count)
	}
}

func TestRelationsAndShoppingList(t *testing.T) {
	s := newTestServer(t)
	s.seedCatalog()
	_, author := s.user("chef", userdomain.RoleUser)
	_, eater := s.user("eater", userdomain.RoleUser)

	var ids []uint
	for i, name := range []string{"Bread", "Cake"} {
		rec := s.do(http.MethodPost, "/api/recipes/", author, recipeBody(name, []uint{uint(i + 1)}, 100*(i+1)))
		expect(t, rec, http.StatusCreated)
		ids = append(ids, decode[domain.RecipeView](t, rec).ID)
	}

	for _, id := range ids {
		rec := s.do(http.MethodPost, "/api/recipes/"+itoa(id)+"/shopping_cart/", eater, nil)
		expect(t, rec, http.StatusCreated)
		if got := decode[domain.Summary](t, rec); got.ID != id {
			t.Errorf("summary = %+v", got)
		}
	}
	expect(t, s.do(http.MethodPost, "/api/recipes/"+itoa(ids[0])+"/shopping_cart/", eater, nil), http.StatusBadRequest)
	expect(t, s.do(http.MethodPost, "/api/recipes/999/favorite/", eater, nil), http.StatusNotFound)
	expect(t, s.do(http.MethodPost, "/api/recipes/"+itoa(ids[1])+"/favorite/", eater, nil), http.StatusCreated)

	view := decode[domain.RecipeView](t, s.do(http.MethodGet, "/api/recipes/"+itoa(ids[1])+"/", eater, nil))
	if !view.IsFavorited || !view.IsInShoppingCart {
		t.Errorf("flags = %v/%v, want both set", view.IsFavorited, view.IsInShoppingCart)
	}

	favs := decode[struct {
		Count   int                 `json:"count"`
		Results []domain.RecipeView `json:"results"`
	}](t, s.do(http.MethodGet, "/api/recipes/?is_favorited=1", eater, nil))
	if favs.Count != 1 || favs.Results[0].ID != ids[1] {
		t.Errorf("favorites page = %+v", favs)
	}

	rec := s.do(http.MethodGet, "/api/recipes/download_shopping_cart/", eater, nil)
	expect(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "shopping_list_") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	body := rec.Body.String()
	for _, want := range []string{"1. Egg - 4 pcs", "2. Flour - 300 g", "· Bread\n· Cake", "Bon appétit, your Foodgram!"} {
		if !strings.Contains(body, want) {
			t.Errorf("shopping list missing %q:\n%s", want, body)
		}
	}

	expect(t, s.do(http.MethodDelete, "/api/recipes/"+itoa(ids[0])+"/shopping_cart/", eater, nil), http.StatusNoContent)
	expect(t, s.do(http.MethodDelete, "/api/recipes/"+itoa(ids[0])+"/shopping_cart/", eater, nil), http.StatusBadRequest)
	expect(t, s.do(http.MethodGet, "/api/recipes/download_shopping_cart/", "", nil), http.StatusUnauthorized)
}

func TestListFilters(t *testing.T) {
	s := newTestServer(t)
	s.seedCatalog()
	chefID, chef := s.user("chef", userdomain.RoleUser)
	_, baker := s.user("baker", userdomain.RoleUser)

	expect(t, s.do(http.MethodPost, "/api/recipes/", chef, recipeBody("Omelette", []uint{1}, 10)), http.StatusCreated)
	expect(t, s.do(http.MethodPost, "/api/recipes/", baker, recipeBody("Roast", []uint{2}, 10)), http.StatusCreated)
	expect(t, s.do(http.MethodPost, "/api/recipes/", baker, recipeBody("Brunch", []uint{1, 2}, 10)), http.StatusCreated)

	tests := []struct {
		query  string
		status int
		want   []string
	}{
		{"", http.StatusOK, []string{"Brunch", "Roast", "Omelette"}},
		{"?tags=breakfast", http.StatusOK, []string{"Brunch", "Omelette"}},
		{"?tags=breakfast&tags=dinner", http.StatusOK, []string{"Brunch", "Roast", "Omelette"}},
		{"?tags=unknown", http.StatusOK, nil},
		{"?author=" + itoa(chefID), http.StatusOK, []string{"Omelette"}},
		{"?limit=1&page=2", http.StatusOK, []string{"Roast"}},
		{"?is_favorited=1", http.StatusOK, []string{"Brunch", "Roast", "Omelette"}},
		{"?author=abc", http.StatusBadRequest, nil},
		{"?is_in_shopping_cart=maybe", http.StatusBadRequest, nil},
		{"?page=9", http.StatusNotFound, nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := s.do(http.MethodGet, "/api/recipes/"+tt.query, "", nil)
			expect(t, rec, tt.status)
			if tt.status != http.StatusOK {
				return
			}
			page := decode[struct {
				Results []domain.RecipeView `json:"results"`
			}](t, rec)
			var got []string
			for _, r := range page.Results {
				got = append(got, r.Name)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("names = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShortLinks(t *testing.T) {
	s := newTestServer(t)
	s.seedCatalog()
	_, chef := s.user("chef", userdomain.RoleUser)

	rec := s.do(http.MethodPost, "/api/recipes/", chef, recipeBody("Pie", []uint{1}, 10))
	expect(t, rec, http.StatusCreated)
	id := decode[domain.RecipeView](t, rec).ID

	link := decode[domain.ShortLinkResponse](t, s.do(http.MethodGet, "/api/recipes/"+itoa(id)+"/get-link/", "", nil))
	prefix := "https://foodgram.example.com/s/"
	if !strings.HasPrefix(link.ShortLink, prefix) || !strings.HasSuffix(link.ShortLink, "/") {
		t.Fatalf("short-link = %q", link.ShortLink)
	}
	token := strings.TrimSuffix(strings.TrimPrefix(link.ShortLink, prefix), "/")
	if len(token) != 6 {
		t.Errorf("token = %q, want 6 characters", token)
	}

	rec = s.do(http.MethodGet, "/s/"+token+"/", "", nil)
	expect(t, rec, http.StatusFound)
	if loc := rec.Header().Get("Location"); loc != "https://app.example.com/recipes/"+itoa(id)+"/" {
		t.Errorf("Location = %q", loc)
	}

	expect(t, s.do(http.MethodGet, "/s/zzzzzz/", "", nil), http.StatusNotFound)
	expect(t, s.do(http.MethodGet, "/api/recipes/404/get-link/", "", nil), http.StatusNotFound)
}
