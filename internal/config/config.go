package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tair/foodgram/pkg/database"
	"github.com/tair/foodgram/pkg/tracing"
	"github.com/tair/foodgram/pkg/validation"
)

const defaultJWTSecret = "change-me-in-production"

// Config is the complete service configuration
type Config struct {
	Service  ServiceConfig  `koanf:"service"`
	Database DatabaseConfig `koanf:"database"`
	HTTP     HTTPConfig     `koanf:"http"`
	GRPC     GRPCConfig     `koanf:"grpc"`
	Redis    RedisConfig    `koanf:"redis"`
	Kafka    KafkaConfig    `koanf:"kafka"`
	Tracing  TracingConfig  `koanf:"tracing"`
	Auth     AuthConfig     `koanf:"auth"`
	Recipes  RecipesConfig  `koanf:"recipes"`
}

type ServiceConfig struct {
	Name        string `koanf:"name" validate:"required"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment" validate:"oneof=development staging production test"`
	LogLevel    string `koanf:"log_level" validate:"oneof=debug info warn error"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            string        `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	SlowThreshold   time.Duration `koanf:"slow_threshold"`
}

type HTTPConfig struct {
	Port            string        `koanf:"port" validate:"required"`
	PublicURL       string        `koanf:"public_url" validate:"omitempty,url"`
	FrontendURL     string        `koanf:"frontend_url" validate:"omitempty,url"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type GRPCConfig struct {
	Enabled bool   `koanf:"enabled"`
	Port    string `koanf:"port" validate:"required_if=Enabled true"`
}

// RedisConfig; an empty Addr disables the short link cache
type RedisConfig struct {
	Addr         string        `koanf:"addr" validate:"omitempty,hostname_port"`
	Password     string        `koanf:"password"`
	DB           int           `koanf:"db" validate:"gte=0"`
	ShortLinkTTL time.Duration `koanf:"shortlink_ttl"`
}

// KafkaConfig; no brokers disables event publishing
type KafkaConfig struct {
	Brokers          []string      `koanf:"brokers" validate:"dive,hostname_port"`
	Topic            string        `koanf:"topic" validate:"required"`
	BreakerFailures  uint32        `koanf:"breaker_failures" validate:"gte=1"`
	BreakerOpenDelay time.Duration `koanf:"breaker_open_delay"`
}

type TracingConfig struct {
	JaegerEndpoint string  `koanf:"jaeger_endpoint" validate:"omitempty,url"`
	SampleRatio    float64 `koanf:"sample_ratio" validate:"gte=0,lte=1"`
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret" validate:"required,min=8"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

// RecipesConfig holds the domain limits
type RecipesConfig struct {
	ShortLinkLength   int `koanf:"shortlink_length" validate:"gte=4,lte=24"`
	ShortLinkAttempts int `koanf:"shortlink_attempts" validate:"gte=1"`
	PageSize          int `koanf:"page_size" validate:"gte=1"`
	MaxPageSize       int `koanf:"max_page_size" validate:"gtefield=PageSize"`
	MinCookingTime    int `koanf:"min_cooking_time" validate:"gte=1"`
	MaxCookingTime    int `koanf:"max_cooking_time" validate:"gtefield=MinCookingTime"`
	MinAmount         int `koanf:"min_amount" validate:"gte=1"`
	MaxAmount         int `koanf:"max_amount" validate:"gtefield=MinAmount"`
}

// Validate checks field constraints and cross-field rules
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}
	if c.Service.Environment == "production" && c.Auth.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("auth.jwt_secret must be changed in production")
	}
	return nil
}

// IsDevelopment reports whether console logging should be used
func (c *Config) IsDevelopment() bool {
	return c.Service.Environment == "development"
}

// DatabaseConfig converts the section into the database package config
func (c *Config) DatabaseConfig() database.Config {
	return database.Config{
		Host:            c.Database.Host,
		Port:            c.Database.Port,
		User:            c.Database.User,
		Password:        c.Database.Password,
		DBName:          c.Database.Name,
		SSLMode:         c.Database.SSLMode,
		MaxOpenConns:    c.Database.MaxOpenConns,
		MaxIdleConns:    c.Database.MaxIdleConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		SlowThreshold:   c.Database.SlowThreshold,
	}
}

// TracingConfig converts the section into the tracing package config
func (c *Config) TracingConfig() tracing.Config {
	return tracing.Config{
		ServiceName:    c.Service.Name,
		ServiceVersion: c.Service.Version,
		JaegerEndpoint: c.Tracing.JaegerEndpoint,
		SampleRatio:    c.Tracing.SampleRatio,
	}
}

// PublicBaseURL is the absolute origin used in generated short links
func (c *Config) PublicBaseURL() string {
	return strings.TrimRight(c.HTTP.PublicURL, "/")
}
