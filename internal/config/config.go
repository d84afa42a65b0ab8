package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Identity provider
	JWTSecret                 string
	ClerkJWKSURL              string
	ClerkWebhookSigningSecret string

	// Admin bootstrap: identities treated as admins regardless of stored role.
	AdminUserIDs string

	// Logging
	LogRetention time.Duration

	// Error tracking
	SentryDSN string
	AppEnv    string

	// Server
	Port        string
	CORSOrigins string

	// Bearer token for /metrics; empty leaves it open for internal scraping.
	MetricsToken string

	// Legal pages
	AppName      string
	SupportEmail string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "donor_registry"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:                 getEnv("JWT_SECRET", ""),
		ClerkJWKSURL:              getEnv("CLERK_JWKS_URL", ""),
		ClerkWebhookSigningSecret: getEnv("CLERK_WEBHOOK_SIGNING_SECRET", ""),

		AdminUserIDs: getEnv("ADMIN_USER_IDS", ""),

		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h"), 30*24*time.Hour),

		SentryDSN: getEnv("SENTRY_DSN", ""),
		AppEnv:    getEnv("APP_ENV", "development"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		MetricsToken: getEnv("METRICS_TOKEN", ""),

		AppName:      getEnv("APP_NAME", "Donor Registry"),
		SupportEmail: getEnv("SUPPORT_EMAIL", "support@donor-registry.app"),
	}
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" && c.ClerkJWKSURL == "" {
		errs = append(errs, errors.New("JWT_SECRET or CLERK_JWKS_URL environment variable is required"))
	}
	if c.DBPassword == "" {
		errs = append(errs, errors.New("DB_PASSWORD environment variable is required"))
	}
	if c.ClerkWebhookSigningSecret == "" {
		errs = append(errs, errors.New("CLERK_WEBHOOK_SIGNING_SECRET environment variable is required"))
	}
	return errors.Join(errs...)
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// AdminIDs returns the bootstrap admin identities from ADMIN_USER_IDS.
func (c *Config) AdminIDs() []string {
	if c.AdminUserIDs == "" {
		return nil
	}
	parts := strings.Split(c.AdminUserIDs, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
