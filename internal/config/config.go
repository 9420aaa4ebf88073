package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port     string `yaml:"port"`
	DBDriver string `yaml:"db_driver"`
	DBDSN    string `yaml:"db_dsn"`
	DBSeed   bool   `yaml:"db_seed"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
	LogMode  string `yaml:"log_mode"` // development | production

	BodyLimit       int           `yaml:"body_limit"`
	RateLimitMax    int           `yaml:"rate_limit_max"`
	RateLimitWindow time.Duration `yaml:"rate_limit_window"`

	Cache CacheConfig `yaml:"cache"`
}

// CacheConfig bounds the product detail cache.
type CacheConfig struct {
	Capacity           int           `yaml:"capacity"`
	NumShards          int           `yaml:"num_shards"`
	TTL                time.Duration `yaml:"ttl"`
	EvictionPercentage int           `yaml:"eviction_percentage"`
}

// ConfigError reports a single invalid setting.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

func Default() Config {
	return Config{
		Port:            "8080",
		DBDriver:        DriverSQLite,
		DBDSN:           "travelrental.db",
		DBSeed:          true,
		LogLevel:        "info",
		LogMode:         "development",
		BodyLimit:       1 << 20,
		RateLimitMax:    120,
		RateLimitWindow: time.Minute,
		Cache: CacheConfig{
			Capacity:           10000,
			NumShards:          16,
			TTL:                5 * time.Minute,
			EvictionPercentage: 10,
		},
	}
}

// Load builds the config from defaults, an optional CONFIG_FILE and the environment, in that order.
func Load() (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "read config file %s", path)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "parse config file %s", path)
		}
	}

	envString("PORT", &cfg.Port)
	envString("DB_DRIVER", &cfg.DBDriver)
	envString("DB_DSN", &cfg.DBDSN)
	envString("LOG_FILE", &cfg.LogFile)
	envString("LOG_LEVEL", &cfg.LogLevel)
	envString("LOG_MODE", &cfg.LogMode)

	parsers := []error{
		envBool("DB_SEED", &cfg.DBSeed),
		envInt("BODY_LIMIT", &cfg.BodyLimit),
		envInt("RATE_LIMIT_MAX", &cfg.RateLimitMax),
		envDuration("RATE_LIMIT_WINDOW", &cfg.RateLimitWindow),
		envInt("CACHE_CAPACITY", &cfg.Cache.Capacity),
		envInt("CACHE_SHARDS", &cfg.Cache.NumShards),
		envDuration("CACHE_TTL", &cfg.Cache.TTL),
		envInt("CACHE_EVICTION_PERCENT", &cfg.Cache.EvictionPercentage),
	}
	for _, err := range parsers {
		if err != nil {
			return Config{}, err
		}
	}

	cfg.DBDriver = strings.ToLower(cfg.DBDriver)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port == "" {
		return &ConfigError{Field: "PORT", Message: "must not be empty"}
	}
	if c.DBDriver != DriverSQLite && c.DBDriver != DriverPostgres {
		return &ConfigError{Field: "DB_DRIVER", Message: "must be sqlite or postgres"}
	}
	if c.DBDSN == "" {
		return &ConfigError{Field: "DB_DSN", Message: "must not be empty"}
	}
	if c.LogMode != "development" && c.LogMode != "production" {
		return &ConfigError{Field: "LOG_MODE", Message: "must be development or production"}
	}
	if c.BodyLimit <= 0 {
		return &ConfigError{Field: "BODY_LIMIT", Message: "must be greater than 0"}
	}
	if c.RateLimitMax <= 0 {
		return &ConfigError{Field: "RATE_LIMIT_MAX", Message: "must be greater than 0"}
	}
	if c.RateLimitWindow <= 0 {
		return &ConfigError{Field: "RATE_LIMIT_WINDOW", Message: "must be greater than 0"}
	}
	return c.Cache.Validate()
}

func (c CacheConfig) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "CACHE_CAPACITY", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "CACHE_SHARDS", Message: "must be greater than 0"}
	}
	if c.TTL <= 0 {
		return &ConfigError{Field: "CACHE_TTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "CACHE_EVICTION_PERCENT", Message: "must be between 1 and 100"}
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func envString(key string, dst *string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return &ConfigError{Field: key, Message: "must be an integer"}
	}
	*dst = n
	return nil
}

func envBool(key string, dst *bool) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return &ConfigError{Field: key, Message: "must be a boolean"}
	}
	*dst = b
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	d, err := cast.ToDurationE(v)
	if err != nil {
		return &ConfigError{Field: key, Message: "must be a duration"}
	}
	*dst = d
	return nil
}
