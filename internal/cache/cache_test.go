package cache

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dharmasatrya/skysearch/internal/models"
)

func request() models.SearchRequest {
	return models.SearchRequest{
		OriginSkyID:         "DEL",
		OriginEntityID:      "95673498",
		DestinationSkyID:    "BOM",
		DestinationEntityID: "95673320",
		Date:                "2025-03-14",
		Adults:              1,
		CabinClass:          "economy",
	}
}

func TestKey(t *testing.T) {
	base := Key(request())

	if !strings.HasPrefix(base, "flight:") || !IsKey(base) {
		t.Fatalf("unexpected key %q", base)
	}
	if Key(request()) != base {
		t.Error("key should be deterministic")
	}

	filtered := request()
	filtered.Filters = &models.FilterCriteria{MaxStops: 0}
	filtered.SortBy = "price-desc"
	if Key(filtered) != base {
		t.Error("filters and sort order should not change the key")
	}

	cased := request()
	cased.OriginSkyID = "del"
	cased.CabinClass = "ECONOMY"
	if Key(cased) != base {
		t.Error("sky ids and cabin class should be case-insensitive")
	}

	ret := "2025-03-20"
	roundTrip := request()
	roundTrip.ReturnDate = &ret
	if Key(roundTrip) == base {
		t.Error("return date should change the key")
	}

	other := request()
	other.Adults = 2
	if Key(other) == base {
		t.Error("passenger count should change the key")
	}
}

func TestIsKey(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{Key(request()), true},
		{"", false},
		{"flight:", false},
		{"flight:abc", false},
		{"hotel:" + strings.Repeat("a", 64), false},
		{"flight:" + strings.Repeat("z", 64), false},
		{"flight:" + strings.Repeat("0", 64), true},
	}

	for _, tt := range tests {
		if got := IsKey(tt.in); got != tt.want {
			t.Errorf("IsKey(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryCache_TTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)}
	c := newMemoryCache(time.Minute, clock.Now)
	defer c.Close()

	ctx := context.Background()
	its := []models.Itinerary{{ID: "a"}, {ID: "b"}}

	if err := c.Set(ctx, "k", its); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := c.Get(ctx, "k")
	if !ok || len(got) != 2 {
		t.Fatalf("expected cached itineraries, got %v %v", got, ok)
	}

	clock.Advance(59 * time.Second)
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Error("entry should still be live")
	}

	clock.Advance(time.Second)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("entry should have expired")
	}

	c.evictExpired()
	if c.size() != 0 {
		t.Errorf("expected expired entry to be evicted, %d left", c.size())
	}
}

func TestMemoryCache_IsolatesSlices(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()

	ctx := context.Background()
	its := []models.Itinerary{{ID: "a"}}
	_ = c.Set(ctx, "k", its)
	its[0].ID = "mutated"

	got, _ := c.Get(ctx, "k")
	if got[0].ID != "a" {
		t.Errorf("cache shares storage with the caller's slice: %q", got[0].ID)
	}
	got[0].ID = "mutated"

	again, _ := c.Get(ctx, "k")
	if again[0].ID != "a" {
		t.Errorf("cache shares storage with returned slices: %q", again[0].ID)
	}
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNoOpCache(t *testing.T) {
	c := NewNoOpCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []models.Itinerary{{ID: "a"}}); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("no-op cache should never hit")
	}
}

func TestRedisCache_RoundTrip(t *testing.T) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		t.Skip("REDIS_HOST not set")
	}

	cfg := DefaultRedisConfig()
	cfg.Host = host
	if port := os.Getenv("REDIS_PORT"); port != "" {
		cfg.Port = port
	}
	cfg.TTL = 10 * time.Second

	c, err := NewRedisCache(cfg)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	key := Key(request())
	stops := 1
	its := []models.Itinerary{{
		ID:    "a",
		Price: models.Price{Raw: 120.5, Formatted: "$120.50", Currency: "USD"},
		Legs:  []models.Leg{{DurationMinutes: 90, Stops: &stops, Carriers: []models.Carrier{{Name: "IndiGo"}}}},
	}}

	if err := c.Set(ctx, key, its); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, ok := c.Get(ctx, key)
	if !ok || len(got) != 1 || got[0].Price.Raw != 120.5 || got[0].EffectiveStops() != 1 {
		t.Errorf("unexpected round trip result %+v %v", got, ok)
	}
}
