// Package stats aggregates the range-slider bounds of a full result set.
package stats

import (
	"errors"

	"github.com/dharmasatrya/skysearch/internal/models"
)

// ErrNoItineraries is returned for an empty list; min/max are undefined there
// and callers render their "no flights" state instead.
var ErrNoItineraries = errors.New("no itineraries to aggregate")

func Compute(its []models.Itinerary) (models.Stats, error) {
	if len(its) == 0 {
		return models.Stats{}, ErrNoItineraries
	}

	first := its[0]
	s := models.Stats{
		PriceRange:    [2]float64{first.Price.Raw, first.Price.Raw},
		DurationRange: [2]int{first.TotalDuration(), first.TotalDuration()},
		Airlines:      make([]string, 0),
		TotalFlights:  len(its),
	}

	seen := make(map[string]bool)
	for _, it := range its {
		price := it.Price.Raw
		s.PriceRange[0] = min(s.PriceRange[0], price)
		s.PriceRange[1] = max(s.PriceRange[1], price)

		dur := it.TotalDuration()
		s.DurationRange[0] = min(s.DurationRange[0], dur)
		s.DurationRange[1] = max(s.DurationRange[1], dur)

		for _, name := range it.CarrierNames() {
			if !seen[name] {
				seen[name] = true
				s.Airlines = append(s.Airlines, name)
			}
		}
	}

	return s, nil
}
