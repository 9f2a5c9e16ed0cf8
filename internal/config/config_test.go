package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("PAYMENT_DEFAULT_PROVIDER", "")
	t.Setenv("DATABASE_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "vehicle-rental", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, PaymentProviderMock, cfg.Payment.DefaultProvider)
	assert.Equal(t, 24*time.Hour, cfg.Security.JWTAccessTokenTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "local", cfg.Storage.Provider)
}

func TestStripeSelectedWhenSecretKeySet(t *testing.T) {
	t.Setenv("PAYMENT_DEFAULT_PROVIDER", "")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, PaymentProviderStripe, cfg.Payment.DefaultProvider)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "90m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Contains(t, cfg.Database.Postgres.DSN(), "host=db")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSAllowedOrigins)
	assert.Equal(t, 90*time.Minute, cfg.Security.JWTAccessTokenTTL)
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRequiresJWTSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	_, err = Load()
	assert.NoError(t, err)
}

func TestInvalidNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "not-a-number")
	t.Setenv("REDIS_ENABLED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.False(t, cfg.Redis.Enabled)
}
