package providers

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dharmasatrya/skysearch/internal/models"
)

type skyAirport struct {
	SkyID        string          `json:"skyId"`
	EntityID     string          `json:"entityId"`
	Name         string          `json:"name"`
	City         string          `json:"city"`
	Country      string          `json:"country"`
	IATA         string          `json:"iata"`
	Presentation skyPresentation `json:"presentation"`
	Navigation   skyNavigation   `json:"navigation"`
	Coordinates  *skyCoordinates `json:"coordinates"`
}

type skyPresentation struct {
	Title           string `json:"title"`
	SuggestionTitle string `json:"suggestionTitle"`
	Subtitle        string `json:"subtitle"`
}

type skyNavigation struct {
	EntityID             string            `json:"entityId"`
	LocalizedName        string            `json:"localizedName"`
	RelevantFlightParams skyRelevantParams `json:"relevantFlightParams"`
}

type skyRelevantParams struct {
	SkyID         string `json:"skyId"`
	EntityID      string `json:"entityId"`
	LocalizedName string `json:"localizedName"`
}

type skyCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type skyNearbyData struct {
	Current *skyAirport  `json:"current"`
	Nearby  []skyAirport `json:"nearby"`
}

// SearchAirports returns airports and cities matching a free-text query.
// Entries without a sky id cannot seed a flight search and are dropped.
func (p *SkyScrapper) SearchAirports(ctx context.Context, query string) ([]models.Airport, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("locale", p.cfg.Locale)

	var data []skyAirport
	if err := p.get(ctx, p.Name()+":airports", "api/v1/flights/searchAirport", q, &data); err != nil {
		return nil, NewProviderError(p.Name(), err)
	}

	airports := make([]models.Airport, 0, len(data))
	for _, a := range data {
		airport := normalizeAirport(a)
		if airport.SkyID == "" {
			continue
		}
		airports = append(airports, airport)
	}
	return airports, nil
}

func (p *SkyScrapper) NearbyAirports(ctx context.Context, lat, lng float64) (models.NearbyAirports, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("locale", p.cfg.Locale)

	var data skyNearbyData
	if err := p.get(ctx, p.Name()+":airports", "api/v1/flights/getNearByAirports", q, &data); err != nil {
		return models.NearbyAirports{}, NewProviderError(p.Name(), err)
	}

	result := models.NearbyAirports{
		Nearby: make([]models.Airport, 0, len(data.Nearby)),
	}
	if data.Current != nil {
		current := normalizeAirport(*data.Current)
		result.Current = &current
	}
	for _, a := range data.Nearby {
		result.Nearby = append(result.Nearby, normalizeAirport(a))
	}
	return result, nil
}

func normalizeAirport(a skyAirport) models.Airport {
	params := a.Navigation.RelevantFlightParams
	airport := models.Airport{
		SkyID:    firstNonEmpty(a.SkyID, params.SkyID),
		EntityID: firstNonEmpty(a.EntityID, params.EntityID, a.Navigation.EntityID),
		Title: firstNonEmpty(a.Presentation.SuggestionTitle, a.Presentation.Title,
			a.Name, a.Navigation.LocalizedName, params.LocalizedName),
		Subtitle: a.Presentation.Subtitle,
		Name:     firstNonEmpty(a.Name, a.Navigation.LocalizedName),
		IATA:     a.IATA,
		City:     a.City,
		Country:  a.Country,
	}
	if a.Coordinates != nil {
		airport.Coordinates = &models.Coordinates{
			Latitude:  a.Coordinates.Latitude,
			Longitude: a.Coordinates.Longitude,
		}
	}
	return airport
}
