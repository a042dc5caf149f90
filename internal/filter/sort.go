package filter

import (
	"cmp"
	"slices"
	"time"

	"github.com/dharmasatrya/skysearch/internal/models"
	"github.com/dharmasatrya/skysearch/internal/ranking"
)

// Sort returns a stably sorted copy. Unknown fields fall back to best.
func Sort(its []models.Itinerary, key models.SortKey) []models.Itinerary {
	sorted := slices.Clone(its)
	if sorted == nil {
		sorted = make([]models.Itinerary, 0)
	}
	slices.SortStableFunc(sorted, comparator(key))
	return sorted
}

func comparator(key models.SortKey) func(a, b models.Itinerary) int {
	var byField func(a, b models.Itinerary) int

	switch key.Field {
	case models.SortPrice:
		byField = func(a, b models.Itinerary) int {
			return cmp.Compare(a.Price.Raw, b.Price.Raw)
		}
	case models.SortDuration:
		byField = func(a, b models.Itinerary) int {
			return cmp.Compare(a.TotalDuration(), b.TotalDuration())
		}
	case models.SortDeparture:
		byField = func(a, b models.Itinerary) int {
			return departure(a).Compare(departure(b))
		}
	case models.SortArrival:
		byField = func(a, b models.Itinerary) int {
			return arrival(a).Compare(arrival(b))
		}
	default:
		// best is a curated ranking: always highest score first.
		return func(a, b models.Itinerary) int {
			return cmp.Compare(ranking.Score(b), ranking.Score(a))
		}
	}

	if key.Direction == models.Descending {
		return func(a, b models.Itinerary) int {
			return byField(b, a)
		}
	}
	return byField
}

func departure(it models.Itinerary) time.Time {
	leg, _ := it.FirstLeg()
	return leg.Departure
}

func arrival(it models.Itinerary) time.Time {
	leg, _ := it.LastLeg()
	return leg.Arrival
}
