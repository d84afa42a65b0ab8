package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("PORT", "")
	t.Setenv("LOG_RETENTION", "")
	t.Setenv("METRICS_TOKEN", "")

	cfg := Load()
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*24*time.Hour, cfg.LogRetention)
	assert.Empty(t, cfg.MetricsToken)
}

func TestLoad_MetricsToken(t *testing.T) {
	t.Setenv("METRICS_TOKEN", "scrape-key")

	assert.Equal(t, "scrape-key", Load().MetricsToken)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("LOG_RETENTION", "forever")

	cfg := Load()
	assert.Equal(t, 30*24*time.Hour, cfg.LogRetention)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.Contains(t, err.Error(), "CLERK_WEBHOOK_SIGNING_SECRET")

	cfg = &Config{JWTSecret: "s", DBPassword: "p", ClerkWebhookSigningSecret: "whsec_x"}
	assert.NoError(t, cfg.Validate())
}

func TestAdminIDs(t *testing.T) {
	cfg := &Config{AdminUserIDs: " user_1, ,user_2 "}
	assert.Equal(t, []string{"user_1", "user_2"}, cfg.AdminIDs())

	cfg = &Config{}
	assert.Nil(t, cfg.AdminIDs())
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5432", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}
