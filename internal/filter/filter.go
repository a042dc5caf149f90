package filter

import (
	"slices"

	"github.com/dharmasatrya/skysearch/internal/models"
	"github.com/dharmasatrya/skysearch/internal/stats"
)

type Result struct {
	Itineraries []models.Itinerary
	// Stats covers the unfiltered input; nil when the input was empty.
	Stats *models.Stats
}

// Apply computes stats over the full list, then filters and sorts a fresh
// copy. The input slice is never modified.
func Apply(its []models.Itinerary, criteria models.FilterCriteria, key models.SortKey) Result {
	var result Result
	if s, err := stats.Compute(its); err == nil {
		result.Stats = &s
	}

	filtered := applyFilters(its, criteria)
	result.Itineraries = Sort(filtered, key)

	return result
}

func applyFilters(its []models.Itinerary, criteria models.FilterCriteria) []models.Itinerary {
	result := make([]models.Itinerary, 0, len(its))
	for _, it := range its {
		if Keep(it, criteria) {
			result = append(result, it)
		}
	}
	return result
}

// Keep reports whether an itinerary satisfies every criterion.
func Keep(it models.Itinerary, criteria models.FilterCriteria) bool {
	price := it.Price.Raw
	if price < criteria.PriceRange[0] || price > criteria.PriceRange[1] {
		return false
	}

	if it.TotalDuration() > criteria.MaxDuration {
		return false
	}

	if criteria.MaxStops < models.MaxStopsUnbounded && it.EffectiveStops() > criteria.MaxStops {
		return false
	}

	// Any allowed carrier on any leg is enough.
	if len(criteria.Airlines) > 0 {
		names := it.CarrierNames()
		if !slices.ContainsFunc(criteria.Airlines, func(a string) bool {
			return slices.Contains(names, a)
		}) {
			return false
		}
	}

	if first, ok := it.FirstLeg(); ok && !withinHours(first.Departure.Hour(), first.Departure.Minute(), criteria.DepartureHours) {
		return false
	}
	if last, ok := it.LastLeg(); ok && !withinHours(last.Arrival.Hour(), last.Arrival.Minute(), criteria.ArrivalHours) {
		return false
	}

	return true
}

func withinHours(hour, minute int, window [2]float64) bool {
	h := float64(hour) + float64(minute)/60
	return h >= window[0] && h <= window[1]
}
