package models

import (
	"encoding/json"
	"strings"
)

// MaxStopsUnbounded disables the stop-count filter.
const MaxStopsUnbounded = 3

type FilterCriteria struct {
	PriceRange     [2]float64 `json:"price_range"`
	MaxStops       int        `json:"max_stops"`
	Airlines       []string   `json:"airlines,omitempty"`
	DepartureHours [2]float64 `json:"departure_hours"`
	ArrivalHours   [2]float64 `json:"arrival_hours"`
	MaxDuration    int        `json:"max_duration"`
}

func DefaultFilters() FilterCriteria {
	return FilterCriteria{
		PriceRange:     [2]float64{0, 10000},
		MaxStops:       MaxStopsUnbounded,
		DepartureHours: [2]float64{0, 24},
		ArrivalHours:   [2]float64{0, 24},
		MaxDuration:    1440,
	}
}

// UnmarshalJSON decodes on top of DefaultFilters so omitted fields keep
// their defaults instead of collapsing to zero.
func (f *FilterCriteria) UnmarshalJSON(data []byte) error {
	type plain FilterCriteria
	v := plain(DefaultFilters())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FilterCriteria(v)
	return nil
}

func (f FilterCriteria) Validate() error {
	if f.PriceRange[0] < 0 || f.PriceRange[0] > f.PriceRange[1] {
		return ErrInvalidPriceRange
	}
	if f.MaxStops < 0 || f.MaxStops > MaxStopsUnbounded {
		return ErrInvalidMaxStops
	}
	if f.MaxDuration < 0 {
		return ErrInvalidMaxDuration
	}
	for _, w := range [][2]float64{f.DepartureHours, f.ArrivalHours} {
		if w[0] < 0 || w[1] > 24 || w[0] > w[1] {
			return ErrInvalidHourWindow
		}
	}
	return nil
}

type SortField string

const (
	SortBest      SortField = "best"
	SortPrice     SortField = "price"
	SortDuration  SortField = "duration"
	SortDeparture SortField = "departure"
	SortArrival   SortField = "arrival"
)

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

type SortKey struct {
	Field     SortField     `json:"key"`
	Direction SortDirection `json:"direction"`
}

func DefaultSortKey() SortKey {
	return SortKey{Field: SortBest, Direction: Ascending}
}

func (k SortKey) String() string {
	return string(k.Field) + "-" + string(k.Direction)
}

func (k SortKey) Validate() error {
	switch k.Field {
	case SortBest, SortPrice, SortDuration, SortDeparture, SortArrival:
	default:
		return ErrInvalidSortKey
	}
	if k.Direction != Ascending && k.Direction != Descending {
		return ErrInvalidSortKey
	}
	return nil
}

// ParseSortKey accepts "price", "price-desc" or "best-asc". A missing
// direction means ascending.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultSortKey(), nil
	}
	field, dir, found := strings.Cut(s, "-")
	key := SortKey{Field: SortField(field), Direction: Ascending}
	if found {
		key.Direction = SortDirection(dir)
	}
	if err := key.Validate(); err != nil {
		return SortKey{}, err
	}
	return key, nil
}
