package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Wishlist  WishlistConfig
	Metrics   MetricsConfig
	Admin     AdminConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ProductSource is one product table; an empty Category is derived from the file name
type ProductSource struct {
	Path     string `mapstructure:"path"`
	Category string `mapstructure:"category"`
}

// DataConfig locates the product and supplier tables
type DataConfig struct {
	ProductSources []ProductSource `mapstructure:"product_sources"`
	SupplierSource string          `mapstructure:"supplier_source"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// WishlistConfig holds wishlist storage configuration
type WishlistConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// MetricsConfig holds Prometheus configuration
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// AdminConfig guards the admin endpoints
type AdminConfig struct {
	Token string `mapstructure:"token"`
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from the given file, or searches the default
// locations when path is empty
func LoadFrom(path string) (*Config, error) {
	// Optional .env; values already in the environment win
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/bluepin/")
	}

	// Environment variable settings, e.g. BLUEPIN_SERVER_PORT
	v.SetEnvPrefix("BLUEPIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.shutdown_timeout", "10s")

	// Data defaults
	v.SetDefault("data.product_sources", []map[string]interface{}{
		{"path": "data/Product_Sheet.csv", "category": ""},
	})
	v.SetDefault("data.supplier_source", "data/supplier_results.csv")

	// Cache defaults
	v.SetDefault("cache.ttl", "5m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("wishlist.db_path", "data/bluepin.db")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "bluepin")

	v.SetDefault("admin.token", "")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if len(config.Data.ProductSources) == 0 {
		return fmt.Errorf("at least one product source is required")
	}
	for i, src := range config.Data.ProductSources {
		if strings.TrimSpace(src.Path) == "" {
			return fmt.Errorf("product source %d has no path", i)
		}
	}

	if config.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative, got: %s", config.Cache.TTL)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("rate limit must not be negative, got: %d", config.RateLimit.PerIP)
	}

	if config.Log.Format != "json" && config.Log.Format != "console" {
		return fmt.Errorf("log format must be 'json' or 'console', got: %s", config.Log.Format)
	}

	if config.Wishlist.DBPath == "" {
		return fmt.Errorf("wishlist database path is required")
	}

	if config.IsProduction() && config.Admin.Token == "" {
		return fmt.Errorf("admin token is required in production (set BLUEPIN_ADMIN_TOKEN)")
	}

	return nil
}

// loadEnvFile loads ./.env into the process environment. A missing file is
// not an error and existing variables are never overridden.
func loadEnvFile() error {
	if err := gotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
