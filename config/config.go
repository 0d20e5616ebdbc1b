package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	Cart      CartConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds catalog storage and listing configuration
type CatalogConfig struct {
	Driver           string `mapstructure:"driver"` // "memory" or "sqlite"
	DSN              string `mapstructure:"dsn"`
	Locale           string `mapstructure:"locale"`
	UnparseablePrice string `mapstructure:"unparseable_price"` // "zero" or "exclude"
	SyntheticSeed    int64  `mapstructure:"synthetic_seed"`    // 0 disables synthetic popularity/discount
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// CartConfig holds cart and wishlist snapshot configuration
type CartConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// Load loads configuration from the .env file, environment variables, config files
// and, when flags is non-nil, command line flags.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/vegist/")

	v.SetEnvPrefix("VEGIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
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

// Flags returns the command line flags understood by Load
func Flags() *pflag.FlagSet {
	set := pflag.NewFlagSet("vegist", pflag.ContinueOnError)
	set.String("config", "", "path to a YAML config file")
	set.String("port", "", "HTTP listen port (overrides server.port)")
	set.String("catalog-driver", "", "catalog storage driver: memory or sqlite")
	return set
}

// bindFlags wires explicitly set flags into viper
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if f := flags.Lookup("config"); f != nil && f.Changed {
		v.SetConfigFile(f.Value.String())
	}
	bindings := map[string]string{
		"server.port":    "port",
		"catalog.driver": "catalog-driver",
	}
	for key, name := range bindings {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

// loadEnvFile loads variables from a .env file in the working directory, if present.
// Variables already set in the environment win.
func loadEnvFile() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.driver", "memory")
	v.SetDefault("catalog.dsn", "file:vegist.db?cache=shared")
	v.SetDefault("catalog.locale", "en")
	v.SetDefault("catalog.unparseable_price", "zero")
	v.SetDefault("catalog.synthetic_seed", 0)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "5m")

	// Cart defaults
	v.SetDefault("cart.ttl", "168h") // 7 days

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required (set VEGIST_SERVER_PORT)")
	}

	if config.Catalog.Driver != "memory" && config.Catalog.Driver != "sqlite" {
		return fmt.Errorf("catalog driver must be 'memory' or 'sqlite', got: %s", config.Catalog.Driver)
	}

	if config.Catalog.Driver == "sqlite" && config.Catalog.DSN == "" {
		return fmt.Errorf("catalog DSN is required when catalog driver is 'sqlite'")
	}

	if config.Catalog.UnparseablePrice != "zero" && config.Catalog.UnparseablePrice != "exclude" {
		return fmt.Errorf("catalog unparseable_price must be 'zero' or 'exclude', got: %s", config.Catalog.UnparseablePrice)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.Cart.TTL <= 0 {
		return fmt.Errorf("cart TTL must be positive, got: %s", config.Cart.TTL)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("rate limit per IP must not be negative, got: %d", config.RateLimit.PerIP)
	}

	if config.Log.Format != "json" && config.Log.Format != "console" {
		return fmt.Errorf("log format must be 'json' or 'console', got: %s", config.Log.Format)
	}

	return nil
}
