package models

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Airport struct {
	SkyID       string       `json:"sky_id"`
	EntityID    string       `json:"entity_id"`
	Title       string       `json:"title"`
	Subtitle    string       `json:"subtitle,omitempty"`
	Name        string       `json:"name,omitempty"`
	IATA        string       `json:"iata,omitempty"`
	City        string       `json:"city,omitempty"`
	Country     string       `json:"country,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	DistanceKm  *float64     `json:"distance_km,omitempty"`
}

type NearbyAirports struct {
	Current *Airport  `json:"current,omitempty"`
	Nearby  []Airport `json:"nearby"`
}
