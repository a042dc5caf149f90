package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dharmasatrya/skysearch/internal/models"
	"github.com/dharmasatrya/skysearch/internal/providers"
	"github.com/dharmasatrya/skysearch/internal/ratelimit"
)

var ErrAllProvidersFailed = errors.New("all flight providers failed")

type Config struct {
	Timeout time.Duration
	// MaxRetries is zero by default: a failed search surfaces once.
	MaxRetries  int
	RetryDelays []time.Duration
	RateLimiter *ratelimit.ProviderLimiter
}

func DefaultConfig() Config {
	return Config{
		Timeout:    20 * time.Second,
		MaxRetries: 0,
		RetryDelays: []time.Duration{
			200 * time.Millisecond,
			400 * time.Millisecond,
			800 * time.Millisecond,
		},
	}
}

type Aggregator struct {
	providers []providers.Provider
	config    Config
	logger    *slog.Logger
}

type Result struct {
	Itineraries        []models.Itinerary
	ProvidersQueried   int
	ProvidersSucceeded int
	ProvidersFailed    int
	FailedProviders    []string
}

func NewAggregator(providerList []providers.Provider, config Config, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		providers: providerList,
		config:    config,
		logger:    logger,
	}
}

// Search queries every provider concurrently and merges their itineraries.
// It fails only when no provider succeeded.
func (a *Aggregator) Search(ctx context.Context, req models.SearchRequest) (*Result, error) {
	searchCtx := ctx
	if a.config.Timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
	}

	type providerResult struct {
		index       int
		provider    string
		itineraries []models.Itinerary
		err         error
	}

	resultCh := make(chan providerResult, len(a.providers))
	var wg sync.WaitGroup

	for i, p := range a.providers {
		wg.Add(1)
		go func(index int, provider providers.Provider) {
			defer wg.Done()

			if a.config.RateLimiter != nil && !a.config.RateLimiter.Allow(provider.Name()) {
				a.logger.Debug("provider rate limited, waiting for token", "provider", provider.Name())
				if err := a.config.RateLimiter.Wait(searchCtx, provider.Name()); err != nil {
					resultCh <- providerResult{index: index, provider: provider.Name(), err: err}
					return
				}
			}

			its, err := a.searchWithRetry(searchCtx, provider, req)
			resultCh <- providerResult{index: index, provider: provider.Name(), itineraries: its, err: err}
		}(i, p)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	result := &Result{ProvidersQueried: len(a.providers)}
	// Indexed by provider so merge order does not depend on who answered first.
	merged := make([][]models.Itinerary, len(a.providers))
	var lastErr error

	for pr := range resultCh {
		if pr.err != nil {
			a.logger.Error("provider search failed", "provider", pr.provider, "error", pr.err)
			result.ProvidersFailed++
			result.FailedProviders = append(result.FailedProviders, pr.provider)
			lastErr = pr.err
			continue
		}
		result.ProvidersSucceeded++
		merged[pr.index] = pr.itineraries
	}

	if result.ProvidersQueried > 0 && result.ProvidersSucceeded == 0 {
		return result, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
	}

	result.Itineraries = dedupe(merged)
	return result, nil
}

func (a *Aggregator) searchWithRetry(ctx context.Context, provider providers.Provider, req models.SearchRequest) ([]models.Itinerary, error) {
	var lastErr error

	for attempt := 0; attempt <= a.config.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if attempt > 0 && len(a.config.RetryDelays) > 0 {
			delay := a.config.RetryDelays[min(attempt-1, len(a.config.RetryDelays)-1)]
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		its, err := provider.Search(ctx, req)
		if err == nil {
			return its, nil
		}

		lastErr = err
		a.logger.Warn("provider attempt failed", "provider", provider.Name(), "attempt", attempt+1, "error", err)
	}

	return nil, lastErr
}

// dedupe keeps the cheapest copy of each itinerary id at the position where
// the id first appeared.
func dedupe(groups [][]models.Itinerary) []models.Itinerary {
	index := make(map[string]int)
	result := make([]models.Itinerary, 0)

	for _, group := range groups {
		for _, it := range group {
			if i, ok := index[it.ID]; ok {
				if it.Price.Raw < result[i].Price.Raw {
					result[i] = it
				}
				continue
			}
			index[it.ID] = len(result)
			result = append(result, it)
		}
	}

	return result
}
