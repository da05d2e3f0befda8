package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// MinSecretLength is the smallest accepted HS256 signing secret, in bytes.
const MinSecretLength = 32

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Cookie   CookieConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values. Timeout bounds every denylist
// round trip, which sits on the path of each authenticated request.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

// LoggerConfig configures logging behavior. Service and Env are stamped on
// every line so audit entries can be told apart across deployments.
type LoggerConfig struct {
	Level   string
	Service string
	Env     string
}

// AuthConfig defines session token parameters.
type AuthConfig struct {
	JWTSecret         string
	TokenTTLMinutes   int
	BcryptCost        int
	RevocationEnabled bool
}

// CookieConfig holds the adjustable parts of the session cookie.
// Name and security attributes are fixed by the cookie contract.
type CookieConfig struct {
	Domain string
	Path   string
}

var (
	ErrMissingSecret = errors.New("AUTH_JWT_SECRET is required")
	ErrWeakSecret    = fmt.Errorf("AUTH_JWT_SECRET must be at least %d bytes", MinSecretLength)
	ErrInvalidTTL    = errors.New("AUTH_TOKEN_TTL_MINUTES must be positive")
)

// Load reads configuration from environment variables, applying defaults where possible.
// A missing or weak signing secret is a startup error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "fitness-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
			Timeout:  time.Duration(getEnvAsInt("REDIS_TIMEOUT_MS", 250)) * time.Millisecond,
		},
		Logger: LoggerConfig{
			Level:   getEnv("LOG_LEVEL", "info"),
			Service: getEnv("APP_NAME", "fitness-service"),
			Env:     getEnv("APP_ENV", "development"),
		},
		Auth: AuthConfig{
			JWTSecret:         os.Getenv("AUTH_JWT_SECRET"),
			TokenTTLMinutes:   getEnvAsInt("AUTH_TOKEN_TTL_MINUTES", 300),
			BcryptCost:        getEnvAsInt("AUTH_BCRYPT_COST", 12),
			RevocationEnabled: getEnvAsBool("AUTH_REVOCATION_ENABLED", false),
		},
		Cookie: CookieConfig{
			Domain: os.Getenv("AUTH_COOKIE_DOMAIN"),
			Path:   getEnv("AUTH_COOKIE_PATH", "/"),
		},
	}

	if err := cfg.Auth.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the token core cannot run without.
func (a AuthConfig) Validate() error {
	switch {
	case a.JWTSecret == "":
		return ErrMissingSecret
	case len(a.JWTSecret) < MinSecretLength:
		return ErrWeakSecret
	case a.TokenTTLMinutes <= 0:
		return ErrInvalidTTL
	}
	return nil
}

// TokenTTL returns the session token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
