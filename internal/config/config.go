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

// Preset store backends.
const (
	BackendBadger   = "badger"
	BackendRedis    = "redis"
	BackendSpanner  = "spanner"
	BackendPostgres = "postgres"
)

const envPrefix = "SALE"

// DefaultSaleImageURL is the banner "Add to Sale" attaches when none is configured.
const DefaultSaleImageURL = "https://cdn.shopify.com/s/files/1/0541/0232/7477/files/only-3-days-sign.png"

type Config struct {
	GRPCAddr string `mapstructure:"grpc_addr"`
	LogLevel string `mapstructure:"log_level"`

	ShopifyStoreURL    string        `mapstructure:"shopify_store_url"`
	ShopifyAccessToken string        `mapstructure:"shopify_access_token"`
	ShopifyAPIVersion  string        `mapstructure:"shopify_api_version"`
	ShopifyPageSize    int           `mapstructure:"shopify_page_size"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`

	PresetBackend string `mapstructure:"preset_backend"`
	PresetKey     string `mapstructure:"preset_key"`

	BadgerDir       string `mapstructure:"badger_dir"`
	RedisAddr       string `mapstructure:"redis_addr"`
	RedisPassword   string `mapstructure:"redis_password"`
	RedisDB         int    `mapstructure:"redis_db"`
	SpannerDatabase string `mapstructure:"spanner_database"`
	PostgresURL     string `mapstructure:"postgres_url"`

	BulkConcurrency     int    `mapstructure:"bulk_concurrency"`
	DefaultPercentOff   int    `mapstructure:"default_percent_off"`
	DefaultSaleImageURL string `mapstructure:"default_sale_image_url"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("grpc_addr", ":50051")
	v.SetDefault("log_level", "info")

	v.SetDefault("shopify_store_url", "")
	v.SetDefault("shopify_access_token", "")
	v.SetDefault("shopify_api_version", "2024-07")
	v.SetDefault("shopify_page_size", 100)
	v.SetDefault("request_timeout", 15*time.Second)

	v.SetDefault("preset_backend", BackendBadger)
	v.SetDefault("preset_key", "salePresets")

	v.SetDefault("badger_dir", "./data/presets")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("spanner_database", "")
	v.SetDefault("postgres_url", "")

	v.SetDefault("bulk_concurrency", 0)
	v.SetDefault("default_percent_off", 39)
	v.SetDefault("default_sale_image_url", DefaultSaleImageURL)
}

// Load reads .env (if present), then SALE_* environment variables and the optional
// file named by SALE_CONFIG_FILE, on top of the defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := os.Getenv(envPrefix + "_CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.PresetBackend = strings.ToLower(strings.TrimSpace(cfg.PresetBackend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var problems []string

	if c.ShopifyStoreURL == "" {
		problems = append(problems, "shopify_store_url is required")
	}
	if c.DefaultPercentOff < 0 || c.DefaultPercentOff > 100 {
		problems = append(problems, "default_percent_off must be between 0 and 100")
	}
	if c.BulkConcurrency < 0 {
		problems = append(problems, "bulk_concurrency cannot be negative")
	}
	if c.ShopifyPageSize <= 0 {
		problems = append(problems, "shopify_page_size must be positive")
	}
	if strings.TrimSpace(c.PresetKey) == "" {
		problems = append(problems, "preset_key is required")
	}

	switch c.PresetBackend {
	case BackendBadger:
	case BackendRedis:
		if c.RedisAddr == "" {
			problems = append(problems, "redis_addr is required for the redis backend")
		}
	case BackendSpanner:
		if c.SpannerDatabase == "" {
			problems = append(problems, "spanner_database is required for the spanner backend")
		}
	case BackendPostgres:
		if c.PostgresURL == "" {
			problems = append(problems, "postgres_url is required for the postgres backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown preset_backend %q", c.PresetBackend))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
