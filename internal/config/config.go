package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"tasktracker/internal/logger"

	"github.com/joho/godotenv"
)

const (
	DefaultAdminEmail    = "admin@tasktracker.com"
	DefaultAdminPassword = "admin123"
	DefaultSessionCookie = "user_email"
)

type Config struct {
	AppPort     string
	AppVersion  string
	DatabaseURL string

	// Administrator identity. The admin must also exist as a regular user
	// to log in; see cmd/create_user.
	AdminEmail    string
	AdminPassword string

	SessionCookie string
	SessionSecret string // empty means the cookie carries the raw email
	SessionTTL    time.Duration

	PasswordMode         string // "plain" or "bcrypt"
	EnforceTaskOwnership bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AuthRateLimit  int
	AuthRateWindow time.Duration

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment (and .env when present).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	cfg := FromEnv()
	cfg.DatabaseURL = dbURL

	if cfg.AdminPassword == DefaultAdminPassword {
		logger.Warn("ADMIN_PASSWORD is not set, using the built-in default")
	}

	switch cfg.PasswordMode {
	case "plain", "bcrypt":
	default:
		logger.Fatal("unknown PASSWORD_MODE", "mode", cfg.PasswordMode)
	}

	return cfg
}

// FromEnv builds a Config from environment variables without validating
// required values. Load is the entrypoint for the server.
func FromEnv() *Config {
	return &Config{
		AppPort:              envString("APP_PORT", "8080"),
		AppVersion:           envString("APP_VERSION", "dev"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		AdminEmail:           envString("ADMIN_EMAIL", DefaultAdminEmail),
		AdminPassword:        envString("ADMIN_PASSWORD", DefaultAdminPassword),
		SessionCookie:        envString("SESSION_COOKIE", DefaultSessionCookie),
		SessionSecret:        os.Getenv("SESSION_SECRET"),
		SessionTTL:           time.Duration(envInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		PasswordMode:         strings.ToLower(envString("PASSWORD_MODE", "plain")),
		EnforceTaskOwnership: os.Getenv("ENFORCE_TASK_OWNERSHIP") == "true",
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              envInt("REDIS_DB", 0),
		AuthRateLimit:        envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow:       time.Duration(envInt("AUTH_RATE_WINDOW_SECONDS", 60)) * time.Second,
		LogLevel:             envString("LOG_LEVEL", "info"),
		LogJSON:              os.Getenv("LOG_JSON") == "true",
	}
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns def when the variable is unset, malformed or negative.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
