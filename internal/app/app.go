// Package app wires the configured components together for the server and
// the CLI.
package app

import (
	"fmt"
	"log/slog"

	"github.com/dharmasatrya/skysearch/internal/aggregator"
	"github.com/dharmasatrya/skysearch/internal/cache"
	"github.com/dharmasatrya/skysearch/internal/config"
	"github.com/dharmasatrya/skysearch/internal/providers"
	"github.com/dharmasatrya/skysearch/internal/ratelimit"
)

type App struct {
	Config     config.Config
	Client     *providers.SkyScrapper
	Aggregator *aggregator.Aggregator
	Cache      cache.Cache
	Logger     *slog.Logger
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	limiter := ratelimit.NewProviderLimiter(ratelimit.DefaultLimit())

	client, err := providers.NewSkyScrapper(cfg.SkyScrapper(), logger, providers.WithAirportRateLimiter(limiter))
	if err != nil {
		return nil, fmt.Errorf("init flight data client: %w", err)
	}
	limiter.SetLimit(client.Name(), cfg.RateLimit.Search)
	limiter.SetLimit(client.Name()+":airports", cfg.RateLimit.Airports)

	agg := aggregator.NewAggregator([]providers.Provider{client}, cfg.Aggregator(limiter), logger)

	c, err := NewCache(cfg.Cache, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:     cfg,
		Client:     client,
		Aggregator: agg,
		Cache:      c,
		Logger:     logger,
	}, nil
}

func NewCache(cfg config.CacheConfig, logger *slog.Logger) (cache.Cache, error) {
	switch cfg.Backend {
	case config.CacheRedis:
		rc := cfg.RedisConfig()
		redisCache, err := cache.NewRedisCache(rc)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("redis cache enabled", "addr", rc.Host+":"+rc.Port, "ttl", rc.TTL)
		return redisCache, nil
	case config.CacheMemory:
		logger.Info("memory cache enabled", "ttl", cfg.TTL)
		return cache.NewMemoryCache(cfg.TTL), nil
	default:
		logger.Info("cache disabled")
		return cache.NewNoOpCache(), nil
	}
}

func (a *App) Close() error {
	return a.Cache.Close()
}
