package app

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/dharmasatrya/skysearch/internal/cache"
	"github.com/dharmasatrya/skysearch/internal/config"
	"github.com/dharmasatrya/skysearch/internal/providers"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew(t *testing.T) {
	cfg := config.Default()
	cfg.API.Key = "key"

	a, err := New(cfg, quiet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.Close()

	if a.Client == nil || a.Aggregator == nil {
		t.Fatal("expected client and aggregator to be wired")
	}
	if _, ok := a.Cache.(*cache.MemoryCache); !ok {
		t.Errorf("expected memory cache, got %T", a.Cache)
	}
}

func TestNew_MissingAPIKey(t *testing.T) {
	_, err := New(config.Default(), quiet())
	if !errors.Is(err, providers.ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestNewCache(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{config.CacheMemory, "*cache.MemoryCache"},
		{config.CacheNone, "*cache.NoOpCache"},
	}

	for _, tt := range tests {
		cfg := config.Default().Cache
		cfg.Backend = tt.backend

		c, err := NewCache(cfg, quiet())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.backend, err)
		}
		if got := typeName(c); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.backend, tt.want, got)
		}
		_ = c.Close()
	}
}

func typeName(c cache.Cache) string {
	switch c.(type) {
	case *cache.MemoryCache:
		return "*cache.MemoryCache"
	case *cache.NoOpCache:
		return "*cache.NoOpCache"
	case *cache.RedisCache:
		return "*cache.RedisCache"
	}
	return "unknown"
}
