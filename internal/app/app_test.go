package app

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tair/foodgram/internal/config"
	"github.com/tair/foodgram/kafka"
	"github.com/tair/foodgram/pkg/metrics"
)

func testConfig() *config.Config {
	return &config.Config{
		HTTP:  config.HTTPConfig{PublicURL: "http://foodgram.test"},
		Redis: config.RedisConfig{ShortLinkTTL: time.Minute},
		Auth:  config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
		Recipes: config.RecipesConfig{
			ShortLinkLength:   6,
			ShortLinkAttempts: 5,
			PageSize:          6,
			MaxPageSize:       100,
			MinCookingTime:    1,
			MaxCookingTime:    1000,
			MinAmount:         1,
			MaxAmount:         32000,
		},
	}
}

func newApp(t *testing.T) http.Handler {
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
	if err := db.AutoMigrate(Entities()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	reg := prometheus.NewRegistry()
	handlers, err := InitializeHandlers(testConfig(), db, nil, kafka.NopPublisher{}, metrics.New(reg))
	if err != nil {
		t.Fatalf("InitializeHandlers() error = %v", err)
	}
	return NewRouter(handlers, db, reg, []string{"*"})
}

func serve(h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter(t *testing.T) {
	h := newApp(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"health", http.MethodGet, "/health", nil, http.StatusOK},
		{"tags", http.MethodGet, "/api/tags/", nil, http.StatusOK},
		{"recipes", http.MethodGet, "/api/recipes/", nil, http.StatusOK},
		{"missing trailing slash", http.MethodGet, "/api/tags", nil, http.StatusMovedPermanently},
		{"me needs a token", http.MethodGet, "/api/users/me/", nil, http.StatusUnauthorized},
		{"unknown short link", http.MethodGet, "/s/abcdef/", nil, http.StatusNotFound},
		{"register", http.MethodPost, "/api/users/", map[string]string{
			"email": "vera@example.com", "username": "vera",
			"first_name": "Vera", "last_name": "Cook", "password": "s3cret-pass",
		}, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, tt.method, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Errorf("%s %s = %d, want %d; body %s", tt.method, tt.path, rec.Code, tt.status, rec.Body)
			}
		})
	}

	rec := serve(h, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "foodgram_http_requests_total") {
		t.Errorf("/metrics = %d, missing request counter", rec.Code)
	}
}
