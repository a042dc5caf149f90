package models

import "time"

type Location struct {
	ID      string `json:"id,omitempty"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

type Carrier struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Code    string `json:"code,omitempty"`
	LogoURL string `json:"logo_url,omitempty"`
}

type Price struct {
	Raw       float64 `json:"raw"`
	Formatted string  `json:"formatted"`
	Currency  string  `json:"currency,omitempty"`
}

type BookingOption struct {
	BookingURL string `json:"booking_url"`
	AgentName  string `json:"agent_name"`
	Price      Price  `json:"price"`
}

type Leg struct {
	ID              string     `json:"id"`
	Origin          Location   `json:"origin"`
	Destination     Location   `json:"destination"`
	Departure       time.Time  `json:"departure"`
	Arrival         time.Time  `json:"arrival"`
	DurationMinutes int        `json:"duration_minutes"`
	Carriers        []Carrier  `json:"carriers"`
	FlightNumber    string     `json:"flight_number,omitempty"`
	Stops           *int       `json:"stops,omitempty"`
	StopLocations   []Location `json:"stop_locations,omitempty"`
}

// StopCount returns the leg's reported stops, zero when the source omitted it.
func (l Leg) StopCount() int {
	if l.Stops == nil {
		return 0
	}
	return *l.Stops
}

type Itinerary struct {
	ID             string          `json:"id"`
	Price          Price           `json:"price"`
	Legs           []Leg           `json:"legs"`
	Score          *float64        `json:"score,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
	Deeplink       string          `json:"deeplink,omitempty"`
	BookingOptions []BookingOption `json:"booking_options,omitempty"`
}

// TotalDuration is the sum of all leg durations in minutes.
func (it Itinerary) TotalDuration() int {
	total := 0
	for _, l := range it.Legs {
		total += l.DurationMinutes
	}
	return total
}

// EffectiveStops is the worst leg's stop count, not the sum across legs.
func (it Itinerary) EffectiveStops() int {
	stops := 0
	for _, l := range it.Legs {
		if s := l.StopCount(); s > stops {
			stops = s
		}
	}
	return stops
}

// CarrierNames lists every carrier name on every leg, duplicates included.
func (it Itinerary) CarrierNames() []string {
	var names []string
	for _, l := range it.Legs {
		for _, c := range l.Carriers {
			names = append(names, c.Name)
		}
	}
	return names
}

func (it Itinerary) FirstLeg() (Leg, bool) {
	if len(it.Legs) == 0 {
		return Leg{}, false
	}
	return it.Legs[0], true
}

func (it Itinerary) LastLeg() (Leg, bool) {
	if len(it.Legs) == 0 {
		return Leg{}, false
	}
	return it.Legs[len(it.Legs)-1], true
}

type Stats struct {
	PriceRange    [2]float64 `json:"price_range"`
	DurationRange [2]int     `json:"duration_range"`
	Airlines      []string   `json:"airlines"`
	TotalFlights  int        `json:"total_flights"`
}
