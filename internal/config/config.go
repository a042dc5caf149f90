// Package config builds the single configuration object handed to every
// constructor at startup: defaults, then an optional YAML file, then
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dharmasatrya/skysearch/internal/aggregator"
	"github.com/dharmasatrya/skysearch/internal/cache"
	"github.com/dharmasatrya/skysearch/internal/models"
	"github.com/dharmasatrya/skysearch/internal/providers"
	"github.com/dharmasatrya/skysearch/internal/ratelimit"
)

const (
	CacheRedis  = "redis"
	CacheMemory = "memory"
	CacheNone   = "none"
)

type Config struct {
	Port            string             `yaml:"port"`
	API             APIConfig          `yaml:"api"`
	Search          SearchConfig       `yaml:"search"`
	Cache           CacheConfig        `yaml:"cache"`
	RateLimit       RateLimitConfig    `yaml:"rate_limit"`
	Log             LogConfig          `yaml:"log"`
	DefaultLocation models.Coordinates `yaml:"default_location"`
}

type APIConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Key         string        `yaml:"key"`
	Host        string        `yaml:"host"`
	Locale      string        `yaml:"locale"`
	Currency    string        `yaml:"currency"`
	Market      string        `yaml:"market"`
	CountryCode string        `yaml:"country_code"`
	Timeout     time.Duration `yaml:"timeout"`
}

type SearchConfig struct {
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

type CacheConfig struct {
	Backend string            `yaml:"backend"`
	TTL     time.Duration     `yaml:"ttl"`
	Redis   cache.RedisConfig `yaml:"redis"`
}

type RateLimitConfig struct {
	Search   ratelimit.Limit `yaml:"search"`
	Airports ratelimit.Limit `yaml:"airports"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Config {
	api := providers.DefaultSkyScrapperConfig()
	agg := aggregator.DefaultConfig()

	return Config{
		Port: "8080",
		API: APIConfig{
			BaseURL:     api.BaseURL,
			Host:        api.APIHost,
			Locale:      api.Locale,
			Currency:    api.Currency,
			Market:      api.Market,
			CountryCode: api.CountryCode,
			Timeout:     api.Timeout,
		},
		Search: SearchConfig{
			Timeout:    agg.Timeout,
			MaxRetries: agg.MaxRetries,
		},
		Cache: CacheConfig{
			Backend: CacheMemory,
			TTL:     5 * time.Minute,
			Redis:   defaultRedis(),
		},
		RateLimit: RateLimitConfig{
			Search:   ratelimit.DefaultLimit(),
			Airports: ratelimit.DefaultLimit(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		// New Delhi, used when the caller cannot share a position.
		DefaultLocation: models.Coordinates{Latitude: 28.6139, Longitude: 77.209},
	}
}

// Load reads path (optional) and applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)

	cfg.API.Key = getEnv("RAPIDAPI_KEY", cfg.API.Key)
	cfg.API.Host = getEnv("RAPIDAPI_HOST", cfg.API.Host)
	cfg.API.BaseURL = getEnv("SKYSCRAPPER_BASE_URL", cfg.API.BaseURL)
	cfg.API.Locale = getEnv("SKYSCRAPPER_LOCALE", cfg.API.Locale)
	cfg.API.Currency = getEnv("SKYSCRAPPER_CURRENCY", cfg.API.Currency)
	cfg.API.Market = getEnv("SKYSCRAPPER_MARKET", cfg.API.Market)
	cfg.API.CountryCode = getEnv("SKYSCRAPPER_COUNTRY_CODE", cfg.API.CountryCode)
	cfg.API.Timeout = getEnvDuration("SKYSCRAPPER_TIMEOUT", cfg.API.Timeout)

	cfg.Search.Timeout = getEnvDuration("SEARCH_TIMEOUT", cfg.Search.Timeout)
	cfg.Search.MaxRetries = getEnvInt("SEARCH_MAX_RETRIES", cfg.Search.MaxRetries)

	if !getEnvBool("CACHE_ENABLED", true) {
		cfg.Cache.Backend = CacheNone
	}
	cfg.Cache.Backend = getEnv("CACHE_BACKEND", cfg.Cache.Backend)
	cfg.Cache.TTL = getEnvDuration("CACHE_TTL", cfg.Cache.TTL)
	cfg.Cache.Redis.TTL = getEnvDuration("REDIS_TTL", cfg.Cache.Redis.TTL)
	cfg.Cache.Redis.Host = getEnv("REDIS_HOST", cfg.Cache.Redis.Host)
	cfg.Cache.Redis.Port = getEnv("REDIS_PORT", cfg.Cache.Redis.Port)
	cfg.Cache.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Cache.Redis.Password)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("config: port is required")
	}
	switch c.Cache.Backend {
	case CacheRedis, CacheMemory, CacheNone:
	default:
		return fmt.Errorf("config: unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend != CacheNone && c.Cache.TTL <= 0 {
		return fmt.Errorf("config: cache ttl must be positive for the %s backend", c.Cache.Backend)
	}
	if c.Search.MaxRetries < 0 {
		return fmt.Errorf("config: search max_retries must not be negative")
	}
	if err := validateLimit("search", c.RateLimit.Search); err != nil {
		return err
	}
	return validateLimit("airports", c.RateLimit.Airports)
}

func validateLimit(name string, l ratelimit.Limit) error {
	if l.RequestsPerSecond <= 0 {
		return fmt.Errorf("config: rate_limit.%s.requests_per_second must be positive", name)
	}
	if l.Burst < 1 {
		return fmt.Errorf("config: rate_limit.%s.burst must be at least 1", name)
	}
	return nil
}

// defaultRedis leaves TTL unset so Redis entries follow cache.ttl.
func defaultRedis() cache.RedisConfig {
	rc := cache.DefaultRedisConfig()
	rc.TTL = 0
	return rc
}

func (c CacheConfig) RedisConfig() cache.RedisConfig {
	rc := c.Redis
	if rc.TTL <= 0 {
		rc.TTL = c.TTL
	}
	return rc
}

func (c Config) SkyScrapper() providers.SkyScrapperConfig {
	return providers.SkyScrapperConfig{
		BaseURL:     c.API.BaseURL,
		APIKey:      c.API.Key,
		APIHost:     c.API.Host,
		Locale:      c.API.Locale,
		Currency:    c.API.Currency,
		Market:      c.API.Market,
		CountryCode: c.API.CountryCode,
		Timeout:     c.API.Timeout,
	}
}

func (c Config) Aggregator(limiter *ratelimit.ProviderLimiter) aggregator.Config {
	agg := aggregator.DefaultConfig()
	agg.Timeout = c.Search.Timeout
	agg.MaxRetries = c.Search.MaxRetries
	agg.RateLimiter = limiter
	return agg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
