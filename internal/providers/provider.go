package providers

import (
	"context"

	"github.com/dharmasatrya/skysearch/internal/models"
)

type Provider interface {
	Name() string
	Search(ctx context.Context, req models.SearchRequest) ([]models.Itinerary, error)
}

// AirportDirectory resolves free-text and geographic airport lookups.
type AirportDirectory interface {
	SearchAirports(ctx context.Context, query string) ([]models.Airport, error)
	NearbyAirports(ctx context.Context, lat, lng float64) (models.NearbyAirports, error)
}

type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}
