package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Service.Name != "foodgram" {
		t.Errorf("Service.Name = %q", cfg.Service.Name)
	}
	if cfg.Database.Port != "5432" || cfg.Database.MaxOpenConns != 25 {
		t.Errorf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Recipes.ShortLinkLength != 6 || cfg.Recipes.MaxCookingTime != 1000 {
		t.Errorf("unexpected recipe defaults: %+v", cfg.Recipes)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v", cfg.Auth.TokenTTL)
	}
	if !cfg.IsDevelopment() {
		t.Error("default environment should be development")
	}
	if len(cfg.Kafka.Brokers) != 0 || cfg.Redis.Addr != "" {
		t.Error("kafka and redis should be disabled by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DB_HOST", "postgres")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("HTTP_PORT", "8000")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_SHORTLINK_TTL", "10m")
	t.Setenv("JWT_SECRET", "a-very-long-secret")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GRPC_ENABLED", "false")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Host != "postgres" || cfg.Database.MaxOpenConns != 50 {
		t.Errorf("database overrides not applied: %+v", cfg.Database)
	}
	if cfg.HTTP.Port != "8000" {
		t.Errorf("HTTP.Port = %q", cfg.HTTP.Port)
	}
	if strings.Join(cfg.Kafka.Brokers, ",") != "kafka-1:9092,kafka-2:9092" {
		t.Errorf("Kafka.Brokers = %v", cfg.Kafka.Brokers)
	}
	if cfg.Redis.Addr != "redis:6379" || cfg.Redis.ShortLinkTTL != 10*time.Minute {
		t.Errorf("redis overrides not applied: %+v", cfg.Redis)
	}
	if cfg.Auth.JWTSecret != "a-very-long-secret" || cfg.Service.LogLevel != "debug" {
		t.Error("auth/service overrides not applied")
	}
	if cfg.GRPC.Enabled {
		t.Error("GRPC.Enabled should be false")
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
database:
  host: file-host
  name: recipes
recipes:
  page_size: 10
http:
  public_url: https://foodgram.example.com
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("DB_NAME", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Host != "file-host" {
		t.Errorf("Database.Host = %q, want file-host", cfg.Database.Host)
	}
	if cfg.Database.Name != "from-env" {
		t.Errorf("Database.Name = %q, env should win over file", cfg.Database.Name)
	}
	if cfg.Recipes.PageSize != 10 {
		t.Errorf("PageSize = %d", cfg.Recipes.PageSize)
	}
	if cfg.PublicBaseURL() != "https://foodgram.example.com" {
		t.Errorf("PublicBaseURL() = %q", cfg.PublicBaseURL())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"bad environment", func(c *Config) { c.Service.Environment = "qa" }, "environment"},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "x" }, "jwt_secret"},
		{"default secret in production", func(c *Config) { c.Service.Environment = "production" }, "jwt_secret"},
		{"cooking bounds inverted", func(c *Config) { c.Recipes.MaxCookingTime = 0 }, "max_cooking_time"},
		{"bad broker", func(c *Config) { c.Kafka.Brokers = []string{"not a broker"} }, "brokers"},
		{"grpc enabled without port", func(c *Config) { c.GRPC.Port = "" }, "port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestSectionConversions(t *testing.T) {
	cfg := defaultConfig()
	db := cfg.DatabaseConfig()
	if db.DBName != "foodgram" || db.MaxOpenConns != 25 {
		t.Errorf("DatabaseConfig() = %+v", db)
	}
	tr := cfg.TracingConfig()
	if tr.ServiceName != "foodgram" || tr.JaegerEndpoint != "" {
		t.Errorf("TracingConfig() = %+v", tr)
	}
}
