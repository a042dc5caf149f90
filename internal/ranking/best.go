package ranking

import "github.com/dharmasatrya/skysearch/internal/models"

// SyntheticBase is the score of a free itinerary; every 100 price units
// subtract one point.
const SyntheticBase = 1000.0

// Higher score = better
func Score(it models.Itinerary) float64 {
	if it.Score != nil {
		return *it.Score
	}
	return SyntheticScore(it.Price.Raw)
}

func SyntheticScore(price float64) float64 {
	return SyntheticBase - price/100
}
