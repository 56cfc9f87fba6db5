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
	t.Setenv("SALE_SHOPIFY_STORE_URL", "demo.myshopify.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":50051", cfg.GRPCAddr)
	assert.Equal(t, "2024-07", cfg.ShopifyAPIVersion)
	assert.Equal(t, 100, cfg.ShopifyPageSize)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, BackendBadger, cfg.PresetBackend)
	assert.Equal(t, "salePresets", cfg.PresetKey)
	assert.Equal(t, 39, cfg.DefaultPercentOff)
	assert.Equal(t, DefaultSaleImageURL, cfg.DefaultSaleImageURL)
	assert.Equal(t, 0, cfg.BulkConcurrency)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SALE_SHOPIFY_STORE_URL", "demo.myshopify.com")
	t.Setenv("SALE_PRESET_BACKEND", "Redis")
	t.Setenv("SALE_REDIS_ADDR", "cache:6380")
	t.Setenv("SALE_BULK_CONCURRENCY", "8")
	t.Setenv("SALE_REQUEST_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.PresetBackend)
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
	assert.Equal(t, 8, cfg.BulkConcurrency)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sale.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shopify_store_url: file.myshopify.com\ndefault_percent_off: 20\n"), 0o600))
	t.Setenv("SALE_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file.myshopify.com", cfg.ShopifyStoreURL)
	assert.Equal(t, 20, cfg.DefaultPercentOff)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			ShopifyStoreURL: "demo.myshopify.com",
			ShopifyPageSize: 100,
			PresetBackend:   BackendBadger,
			PresetKey:       "salePresets",
		}
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"missing store", func(c *Config) { c.ShopifyStoreURL = "" }, false},
		{"percent too high", func(c *Config) { c.DefaultPercentOff = 101 }, false},
		{"negative concurrency", func(c *Config) { c.BulkConcurrency = -1 }, false},
		{"unknown backend", func(c *Config) { c.PresetBackend = "sqlite" }, false},
		{"spanner without db", func(c *Config) { c.PresetBackend = BackendSpanner }, false},
		{"postgres without url", func(c *Config) { c.PresetBackend = BackendPostgres }, false},
		{"postgres with url", func(c *Config) {
			c.PresetBackend = BackendPostgres
			c.PostgresURL = "postgres://localhost/sale"
		}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			err := c.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
