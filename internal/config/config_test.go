package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("PORT", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, StorageDynamoDB, cfg.StorageDriver)
	assert.Equal(t, "idempotency_keys", cfg.IdempotencyKeysTable)
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyKeyTTL)
	assert.Equal(t, 2*time.Minute, cfg.IdempotencyLeaseTTL)
	assert.Equal(t, 30*time.Second, cfg.PaymentChargeTimeout)
	assert.True(t, cfg.PaymentGatewayMock)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("IDEMPOTENCY_LEASE_TTL", "30s")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("AUTH_URL", "https://auth.example/auth/v1/")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, 30*time.Second, cfg.IdempotencyLeaseTTL)
	assert.False(t, cfg.PaymentGatewayMock)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "https://auth.example/auth/v1", cfg.AuthURL)
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("API_VERSION", "")

	path := filepath.Join(t.TempDir(), "payments.yaml")
	require.NoError(t, os.WriteFile(path, []byte("API_VERSION: 2.1.0\nSTORAGE_DRIVER: memory\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", cfg.APIVersion)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "sqlite")
		_, err := Load("")
		assert.ErrorIs(t, err, ErrInvalidStorageDriver)
	})

	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "postgres")
		t.Setenv("DATABASE_URL", "")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("key ttl shorter than lease", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "memory")
		t.Setenv("IDEMPOTENCY_KEY_TTL", "1m")
		t.Setenv("IDEMPOTENCY_LEASE_TTL", "5m")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("negative charge timeout", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "memory")
		t.Setenv("PAYMENT_CHARGE_TIMEOUT", "-1s")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "memory")
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
