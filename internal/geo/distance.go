// Package geo ranks airports by great-circle distance from a position.
package geo

import (
	"cmp"
	"slices"

	"github.com/golang/geo/s2"

	"github.com/dharmasatrya/skysearch/internal/models"
)

// EarthRadiusKm is the mean Earth radius.
const EarthRadiusKm = 6371.0088

func DistanceKm(a, b models.Coordinates) float64 {
	p1 := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	p2 := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

func Valid(c models.Coordinates) bool {
	return s2.LatLngFromDegrees(c.Latitude, c.Longitude).IsValid()
}

// SortByDistance returns copies annotated with DistanceKm, nearest first.
// Airports without coordinates keep their relative order after the rest.
func SortByDistance(from models.Coordinates, airports []models.Airport) []models.Airport {
	result := make([]models.Airport, len(airports))
	for i, a := range airports {
		result[i] = a
		if a.Coordinates != nil {
			d := DistanceKm(from, *a.Coordinates)
			result[i].DistanceKm = &d
		}
	}

	slices.SortStableFunc(result, func(a, b models.Airport) int {
		switch {
		case a.DistanceKm == nil && b.DistanceKm == nil:
			return 0
		case a.DistanceKm == nil:
			return 1
		case b.DistanceKm == nil:
			return -1
		}
		return cmp.Compare(*a.DistanceKm, *b.DistanceKm)
	})

	return result
}
