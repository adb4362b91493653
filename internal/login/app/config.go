package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/inkwellbooks/bookshop-login/internal/login/service"
	"github.com/inkwellbooks/bookshop-login/pkg/cryptox"
	"github.com/inkwellbooks/bookshop-login/pkg/jwtx"
)

type Config struct {
	Issuer        string // Optional: issuer claim for session tokens and TOTP labels (default: inkwell-login)
	SessionSecret string // Required: HMAC secret for session tokens (min 32 bytes)

	DatabaseFile string        // Optional: path to SQLite database file (default: ./login.db)
	SessionTTL   time.Duration // Optional: session token lifetime (default: 12h)
	ChallengeTTL time.Duration // Optional: pending second factor lifetime (default: 5m)
	MaxAttempts  int           // Optional: code attempts before a challenge is destroyed (default: 5)

	HashAlgorithm         string // Optional: password hashing algorithm (sha256, argon2id) (default: argon2id)
	RotateOnEnable        bool   // Optional: mint a fresh TOTP secret on every enable (default: false)
	RetainSecretOnDisable bool   // Optional: keep the TOTP secret when disabling (default: true)

	BootstrapAdminUsername string // Optional: seed admin username on an empty database
	BootstrapAdminPassword string // Optional: seed admin password on an empty database

	SecureCookies        bool          // Optional: mark cookies Secure (default: false, set in prod)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired challenge sweep interval (default: 10m)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:        getEnvOrDefault("LOGIN_ISSUER", "inkwell-login"),
		SessionSecret: os.Getenv("LOGIN_SESSION_SECRET"),
		DatabaseFile:  getEnvOrDefault("LOGIN_DATABASE_FILE", "login.db"),
		SessionTTL:    getEnvDurationOrDefault("LOGIN_SESSION_TTL", jwtx.DefaultSessionTTL),
		ChallengeTTL:  getEnvDurationOrDefault("LOGIN_CHALLENGE_TTL", service.DefaultChallengeTTL),
		MaxAttempts:   getEnvIntOrDefault("LOGIN_MAX_ATTEMPTS", service.DefaultMaxAttempts),

		HashAlgorithm:         getEnvOrDefault("LOGIN_HASH_ALGORITHM", "argon2id"),
		RotateOnEnable:        getEnvBoolOrDefault("LOGIN_ROTATE_ON_ENABLE", false),
		RetainSecretOnDisable: getEnvBoolOrDefault("LOGIN_RETAIN_SECRET_ON_DISABLE", true),

		BootstrapAdminUsername: os.Getenv("LOGIN_BOOTSTRAP_ADMIN_USERNAME"),
		BootstrapAdminPassword: os.Getenv("LOGIN_BOOTSTRAP_ADMIN_PASSWORD"),

		SecureCookies:        getEnvBoolOrDefault("LOGIN_SECURE_COOKIES", false),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 10*time.Minute),
	}

	return cfg
}

// Validate rejects configurations that cannot produce a working service.
func (cfg Config) Validate() error {
	if len(cfg.SessionSecret) < jwtx.MinSecretLength {
		return fmt.Errorf("LOGIN_SESSION_SECRET must be at least %d bytes", jwtx.MinSecretLength)
	}
	if _, err := cryptox.ParseAlgorithm(cfg.HashAlgorithm); err != nil {
		return fmt.Errorf("LOGIN_HASH_ALGORITHM: %w", err)
	}
	if cfg.BootstrapAdminUsername != "" && cfg.BootstrapAdminPassword == "" {
		return fmt.Errorf("LOGIN_BOOTSTRAP_ADMIN_PASSWORD is required when LOGIN_BOOTSTRAP_ADMIN_USERNAME is set")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
