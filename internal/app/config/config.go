// Package config loads the application configuration once at startup.
// The resulting Config value is passed explicitly to every constructor that needs it.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"catalog_backend/internal/platform/db"
	"catalog_backend/internal/platform/mail"
)

// Config holds all runtime configuration values.
type Config struct {
	Port          string
	GinMode       string
	LogLevel      slog.Level
	LogFormat     string // "json" or "text"
	PublicBaseURL string // used to build absolute image URLs
	StaticDir     string // root of the image storage area

	DB    db.Config
	Auth  AuthConfig
	Redis RedisConfig
	Mail  mail.Config
	AMQP  AMQPConfig

	SchedulerEnabled bool
	DigestInterval   time.Duration
	DigestRecipients []string
}

// AuthConfig configures token signing, password hashing and auth endpoint throttling.
type AuthConfig struct {
	JWTSecret    string
	JWTAlgorithm string
	TokenTTL     time.Duration
	BcryptCost   int
	RateLimit    float64 // requests per minute per client
	RateBurst    int
}

// RedisConfig is optional. An empty Host disables caching.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	CacheTTL time.Duration
}

// AMQPConfig is optional. An empty URL disables event publishing.
type AMQPConfig struct {
	URL   string
	Queue string
}

const (
	// DefaultTokenTTLMinutes is the access token lifetime when ACCESS_TOKEN_EXPIRE_MINUTES is unset.
	DefaultTokenTTLMinutes = 30
	// DefaultJWTAlgorithm is the signing algorithm when JWT_ALGORITHM is unset.
	DefaultJWTAlgorithm = "HS256"
)

var supportedAlgorithms = map[string]bool{"HS256": true, "HS384": true, "HS512": true}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment, applying defaults.
func FromEnv() Config {
	return Config{
		Port:          getenv("APP_PORT", "8080"),
		GinMode:       getenv("GIN_MODE", "release"),
		LogLevel:      parseLevel(getenv("LOG_LEVEL", "info")),
		LogFormat:     getenv("LOG_FORMAT", "text"),
		PublicBaseURL: strings.TrimRight(getenv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		StaticDir:     getenv("STATIC_DIR", "static"),
		DB: db.Config{
			Driver:        getenv("DB_DRIVER", "postgres"),
			User:          os.Getenv("DB_USER"),
			Password:      os.Getenv("DB_PASSWORD"),
			Host:          getenv("DB_HOST", "localhost"),
			Port:          os.Getenv("DB_PORT"),
			Name:          os.Getenv("DB_NAME"),
			SSLMode:       getenv("DB_SSLMODE", "disable"),
			InstanceName:  os.Getenv("INSTANCE_CONNECTION_NAME"),
			SQLitePath:    getenv("SQLITE_PATH", "./catalog.db"),
			RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
		},
		Auth: AuthConfig{
			JWTSecret:    os.Getenv("JWT_SECRET"),
			JWTAlgorithm: strings.ToUpper(getenv("JWT_ALGORITHM", DefaultJWTAlgorithm)),
			TokenTTL:     time.Duration(atoi(os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"), DefaultTokenTTLMinutes)) * time.Minute,
			BcryptCost:   atoi(os.Getenv("BCRYPT_COST"), 0),
			RateLimit:    float64(atoi(os.Getenv("AUTH_RATE_LIMIT"), 10)),
			RateBurst:    atoi(os.Getenv("AUTH_RATE_BURST"), 5),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getenv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			CacheTTL: parseDur(os.Getenv("CACHE_TTL"), 5*time.Minute),
		},
		Mail: mail.Config{
			Username: os.Getenv("MAIL_USERNAME"),
			Password: os.Getenv("MAIL_PASSWORD"),
			From:     os.Getenv("MAIL_FROM"),
			FromName: getenv("MAIL_FROM_NAME", "Catalog Backend"),
			Server:   os.Getenv("MAIL_SERVER"),
			Port:     atoi(os.Getenv("MAIL_PORT"), 587),
			SSL:      os.Getenv("MAIL_SSL_TLS") == "true",
		},
		AMQP: AMQPConfig{
			URL:   os.Getenv("AMQP_URL"),
			Queue: getenv("AMQP_QUEUE", "catalog.events"),
		},
		SchedulerEnabled: os.Getenv("SCHEDULER_ENABLED") == "true",
		DigestInterval:   parseDur(os.Getenv("DIGEST_INTERVAL"), time.Minute),
		DigestRecipients: splitList(os.Getenv("DIGEST_RECIPIENTS")),
	}
}

// Validate reports configuration that the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if !supportedAlgorithms[c.Auth.JWTAlgorithm] {
		errs = append(errs, fmt.Errorf("unsupported JWT_ALGORITHM %q (want HS256, HS384 or HS512)", c.Auth.JWTAlgorithm))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive"))
	}
	switch c.DB.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver))
	}
	return errors.Join(errs...)
}

// RedisEnabled reports whether a Redis host was configured.
func (c Config) RedisEnabled() bool { return c.Redis.Host != "" }

// MailEnabled reports whether enough SMTP settings exist to send mail.
func (c Config) MailEnabled() bool { return c.Mail.Server != "" && c.Mail.From != "" }

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "value", s, "default", def)
		return def
	}
	return n
}

func parseDur(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration in environment, using default", "value", s, "default", def)
		return def
	}
	return d
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
