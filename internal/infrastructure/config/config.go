package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/frcparts/components-api/pkg/logger"
)

// ErrMissingSecret is returned when SECRET_KEY is unset or blank. The process
// must not start without it.
var ErrMissingSecret = errors.New("config: SECRET_KEY must be set")

type Config struct {
	Port     string `env:"PORT,      default=8000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth     AuthConfig
	Activity ActivityConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type AuthConfig struct {
	SecretKey  string `env:"SECRET_KEY"`
	BcryptCost int    `env:"BCRYPT_COST, default=12"`
}

type ActivityConfig struct {
	Workers         int           `env:"ACTIVITY_WORKERS,  default=4"`
	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL, default=5m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=frc_components"`
}

type RedisConfig struct {
	// Addr may be empty to run without the catalog cache.
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// LoggerOptions returns the logger settings for this configuration. The
// console writer is used in development only.
func (c *Config) LoggerOptions(service string) logger.Options {
	return logger.Options{
		Level:   c.LogLevel,
		Env:     c.Env,
		Pretty:  c.IsDevelopment(),
		Service: service,
	}
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through the given lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}

	cfg.Auth.SecretKey = strings.TrimSpace(cfg.Auth.SecretKey)
	if cfg.Auth.SecretKey == "" {
		return nil, ErrMissingSecret
	}
	return &cfg, nil
}
