package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/foodgram/config.yaml",
}

const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:        "foodgram",
			Version:     "1.0.0",
			Environment: "development",
			LogLevel:    "info",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Password:        "postgres",
			Name:            "foodgram",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
			SlowThreshold:   200 * time.Millisecond,
		},
		HTTP: HTTPConfig{
			Port:            "8080",
			PublicURL:       "http://localhost:8080",
			CORSOrigins:     []string{"*"},
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		GRPC: GRPCConfig{
			Enabled: true,
			Port:    "9090",
		},
		Redis: RedisConfig{
			ShortLinkTTL: time.Hour,
		},
		Kafka: KafkaConfig{
			Topic:            "foodgram-events",
			BreakerFailures:  5,
			BreakerOpenDelay: 30 * time.Second,
		},
		Tracing: TracingConfig{
			SampleRatio: 1,
		},
		Auth: AuthConfig{
			JWTSecret: defaultJWTSecret,
			TokenTTL:  24 * time.Hour,
		},
		Recipes: RecipesConfig{
			ShortLinkLength:   6,
			ShortLinkAttempts: 10,
			PageSize:          6,
			MaxPageSize:       100,
			MinCookingTime:    1,
			MaxCookingTime:    1000,
			MinAmount:         1,
			MaxAmount:         32000,
		},
	}
}

// envMappings maps the conventional environment variables to config paths
var envMappings = map[string]string{
	"otel_service_name": "service.name",
	"service_version":   "service.version",
	"environment":       "service.environment",
	"log_level":         "service.log_level",

	"db_host":              "database.host",
	"db_port":              "database.port",
	"db_user":              "database.user",
	"db_password":          "database.password",
	"db_name":              "database.name",
	"db_sslmode":           "database.sslmode",
	"db_max_open_conns":    "database.max_open_conns",
	"db_max_idle_conns":    "database.max_idle_conns",
	"db_conn_max_lifetime": "database.conn_max_lifetime",
	"db_slow_threshold":    "database.slow_threshold",

	"http_port":        "http.port",
	"public_url":       "http.public_url",
	"frontend_url":     "http.frontend_url",
	"cors_origins":     "http.cors_origins",
	"shutdown_timeout": "http.shutdown_timeout",

	"grpc_enabled": "grpc.enabled",
	"grpc_port":    "grpc.port",

	"redis_addr":          "redis.addr",
	"redis_password":      "redis.password",
	"redis_db":            "redis.db",
	"redis_shortlink_ttl": "redis.shortlink_ttl",

	"kafka_brokers": "kafka.brokers",
	"kafka_topic":   "kafka.topic",

	"jaeger_endpoint":     "tracing.jaeger_endpoint",
	"tracing_sample_rate": "tracing.sample_ratio",

	"jwt_secret":    "auth.jwt_secret",
	"jwt_token_ttl": "auth.token_ttl",

	"shortlink_length":   "recipes.shortlink_length",
	"shortlink_attempts": "recipes.shortlink_attempts",
	"page_size":          "recipes.page_size",
	"max_page_size":      "recipes.max_page_size",
}

// sliceConfigPaths are split on commas when they arrive as strings
var sliceConfigPaths = []string{
	"http.cors_origins",
	"kafka.brokers",
}

// envTransformFunc maps a variable name to its config path; unknown names are dropped
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Load builds the configuration: defaults, then the YAML file, then the environment
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := splitSlices(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func splitSlices(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := make([]string, 0)
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}
