package models

type SearchMetadata struct {
	TotalResults       int      `json:"total_results"`
	TotalFetched       int      `json:"total_fetched"`
	ProvidersQueried   int      `json:"providers_queried"`
	ProvidersSucceeded int      `json:"providers_succeeded"`
	ProvidersFailed    int      `json:"providers_failed"`
	FailedProviders    []string `json:"failed_providers,omitempty"`
	SearchTimeMs       int64    `json:"search_time_ms"`
	CacheHit           bool     `json:"cache_hit"`
}

type SearchCriteria struct {
	OriginSkyID      string         `json:"origin_sky_id,omitempty"`
	DestinationSkyID string         `json:"destination_sky_id,omitempty"`
	Date             string         `json:"date,omitempty"`
	ReturnDate       *string        `json:"return_date,omitempty"`
	Adults           int            `json:"adults,omitempty"`
	CabinClass       string         `json:"cabin_class,omitempty"`
	Filters          FilterCriteria `json:"filters"`
	Sort             SortKey        `json:"sort"`
}

type SearchResponse struct {
	SearchID       string         `json:"search_id"`
	SearchCriteria SearchCriteria `json:"search_criteria"`
	Metadata       SearchMetadata `json:"metadata"`
	Stats          *Stats         `json:"stats"`
	Itineraries    []Itinerary    `json:"itineraries"`
}

type AirportsResponse struct {
	Query    string    `json:"query"`
	Airports []Airport `json:"airports"`
}

type NearbyResponse struct {
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	LocationFallback bool      `json:"location_fallback"`
	Current          *Airport  `json:"current,omitempty"`
	Nearby           []Airport `json:"nearby"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
