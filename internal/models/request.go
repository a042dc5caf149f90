package models

import "time"

type SearchRequest struct {
	OriginSkyID         string          `json:"origin_sky_id"`
	OriginEntityID      string          `json:"origin_entity_id"`
	DestinationSkyID    string          `json:"destination_sky_id"`
	DestinationEntityID string          `json:"destination_entity_id"`
	Date                string          `json:"date"`
	ReturnDate          *string         `json:"return_date,omitempty"`
	Adults              int             `json:"adults"`
	CabinClass          string          `json:"cabin_class"`
	Filters             *FilterCriteria `json:"filters,omitempty"`
	SortBy              string          `json:"sort_by,omitempty"`
}

func (r *SearchRequest) Validate() error {
	if r.OriginSkyID == "" || r.OriginEntityID == "" {
		return ErrMissingOrigin
	}
	if r.DestinationSkyID == "" || r.DestinationEntityID == "" {
		return ErrMissingDestination
	}
	if r.Date == "" {
		return ErrMissingDate
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return ErrInvalidDate
	}
	if r.ReturnDate != nil && *r.ReturnDate != "" {
		if _, err := time.Parse("2006-01-02", *r.ReturnDate); err != nil {
			return ErrInvalidDate
		}
	}
	if r.Adults < 0 {
		return ErrInvalidAdults
	}
	if r.Adults == 0 {
		r.Adults = 1
	}
	if r.CabinClass == "" {
		r.CabinClass = "economy"
	}
	if r.Filters == nil {
		f := DefaultFilters()
		r.Filters = &f
	}
	if err := r.Filters.Validate(); err != nil {
		return err
	}
	if _, err := ParseSortKey(r.SortBy); err != nil {
		return err
	}
	return nil
}

// Sort returns the parsed sort key; call after Validate.
func (r SearchRequest) Sort() SortKey {
	key, err := ParseSortKey(r.SortBy)
	if err != nil {
		return DefaultSortKey()
	}
	return key
}

func (r SearchRequest) IsRoundTrip() bool {
	return r.ReturnDate != nil && *r.ReturnDate != ""
}

// ResultsRequest re-filters a previously fetched result set.
type ResultsRequest struct {
	Filters *FilterCriteria `json:"filters,omitempty"`
	SortBy  string          `json:"sort_by,omitempty"`
}

func (r *ResultsRequest) Validate() error {
	if r.Filters == nil {
		f := DefaultFilters()
		r.Filters = &f
	}
	if err := r.Filters.Validate(); err != nil {
		return err
	}
	_, err := ParseSortKey(r.SortBy)
	return err
}

func (r ResultsRequest) Sort() SortKey {
	key, err := ParseSortKey(r.SortBy)
	if err != nil {
		return DefaultSortKey()
	}
	return key
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin      ValidationError = "origin sky id and entity id are required"
	ErrMissingDestination ValidationError = "destination sky id and entity id are required"
	ErrMissingDate        ValidationError = "date is required"
	ErrInvalidDate        ValidationError = "dates must use the YYYY-MM-DD format"
	ErrInvalidAdults      ValidationError = "adults must be at least 1"
	ErrInvalidPriceRange  ValidationError = "price_range must be a non-negative [min, max] pair"
	ErrInvalidMaxStops    ValidationError = "max_stops must be between 0 and 3"
	ErrInvalidMaxDuration ValidationError = "max_duration must not be negative"
	ErrInvalidHourWindow  ValidationError = "hour windows must be [from, to] within 0-24"
	ErrInvalidSortKey     ValidationError = "sort_by must be one of best, price, duration, departure, arrival with optional -asc or -desc"
)
