package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultAllowedOrigins is the CORS allow-list used when none is configured.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"http://localhost:5175",
	"http://172.105.95.18",
	"http://172.105.95.18:80",
	"http://172.105.95.18:3000",
	"http://172.105.95.18:5019",
}

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string
	ShutdownTimeout time.Duration
	SwaggerHost     string
	ServiceName     string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Access    AccessConfig
	Log       LogConfig

	BcryptCost                 int
	CORSAllowedOrigins         []string
	SavedImagesAllowDuplicates bool
	SentryDSN                  string
	OTLPEndpoint               string
}

// DatabaseConfig selects the relational store.
type DatabaseConfig struct {
	Driver       string
	DSN          string
	Schema       string
	MaxOpenConns int
	Reset        bool
}

// RedisConfig points at the Redis instance backing the sign-up limiter.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig configures bearer token signing.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// RateLimitConfig configures the fixed-window sign-up limiter.
// A zero Limit disables limiting.
type RateLimitConfig struct {
	Backend string
	Limit   int
	Window  time.Duration
}

// AccessConfig toggles bearer enforcement on read-only endpoints.
type AccessConfig struct {
	BoardPostsPublicRead   bool
	SavedImagesCountPublic bool
	ImageUserCountPublic   bool
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string
	Format string
}

var (
	// ErrMissingJWTSecret is returned when JWT_SECRET is not set.
	ErrMissingJWTSecret = errors.New("JWT_SECRET is missing")
	// ErrMissingDSN is returned when DATABASE_DSN is not set.
	ErrMissingDSN = errors.New("DATABASE_DSN is missing")
)

// Load builds Config from an optional .env file and the environment.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		ServerPort:      v.GetString("SERVER_PORT"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		SwaggerHost:     v.GetString("SWAGGER_HOST"),
		ServiceName:     v.GetString("SERVICE_NAME"),
		Database: DatabaseConfig{
			Driver:       strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:          v.GetString("DATABASE_DSN"),
			Schema:       v.GetString("DB_SCHEMA"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			Reset:        v.GetBool("RESET_DB"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    v.GetDuration("JWT_TTL"),
		},
		RateLimit: RateLimitConfig{
			Backend: strings.ToLower(v.GetString("RATE_LIMIT_BACKEND")),
			Limit:   v.GetInt("SIGNUP_RATE_LIMIT"),
			Window:  v.GetDuration("SIGNUP_RATE_WINDOW"),
		},
		Access: AccessConfig{
			BoardPostsPublicRead:   v.GetBool("BOARD_POSTS_PUBLIC_READ"),
			SavedImagesCountPublic: v.GetBool("SAVED_IMAGES_COUNT_PUBLIC"),
			ImageUserCountPublic:   v.GetBool("IMAGE_USER_COUNT_PUBLIC"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		BcryptCost:                 v.GetInt("BCRYPT_COST"),
		CORSAllowedOrigins:         splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		SavedImagesAllowDuplicates: v.GetBool("SAVED_IMAGES_ALLOW_DUPLICATES"),
		SentryDSN:                  v.GetString("SENTRY_DSN"),
		OTLPEndpoint:               v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = DefaultAllowedOrigins
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings the process cannot start without.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return ErrMissingJWTSecret
	}
	if c.Database.DSN == "" {
		return ErrMissingDSN
	}
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.RateLimit.Backend {
	case "redis", "memory":
	default:
		return fmt.Errorf("unsupported RATE_LIMIT_BACKEND %q", c.RateLimit.Backend)
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWT.TTL)
	}
	if c.RateLimit.Limit > 0 && c.RateLimit.Window <= 0 {
		return fmt.Errorf("SIGNUP_RATE_WINDOW must be positive, got %s", c.RateLimit.Window)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("SERVICE_NAME", "boardapi")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("RESET_DB", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_TTL", "60m")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("RATE_LIMIT_BACKEND", "redis")
	v.SetDefault("SIGNUP_RATE_LIMIT", 5)
	v.SetDefault("SIGNUP_RATE_WINDOW", "1m")
	v.SetDefault("BOARD_POSTS_PUBLIC_READ", true)
	v.SetDefault("SAVED_IMAGES_COUNT_PUBLIC", false)
	v.SetDefault("IMAGE_USER_COUNT_PUBLIC", true)
	v.SetDefault("SAVED_IMAGES_ALLOW_DUPLICATES", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
