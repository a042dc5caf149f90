package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/dharmasatrya/skysearch/internal/models"
	"github.com/dharmasatrya/skysearch/internal/timestamp"
	"github.com/dharmasatrya/skysearch/pkg/currency"
)

var (
	errNoLegs     = errors.New("itinerary has no legs")
	errNoPrice    = errors.New("itinerary has no price")
	errNoCarriers = errors.New("leg has no carriers")
)

type skyFlightsData struct {
	Itineraries []skyItinerary `json:"itineraries"`
}

type skyItinerary struct {
	ID             string             `json:"id"`
	Price          skyPrice           `json:"price"`
	Legs           []skyLeg           `json:"legs"`
	Score          *float64           `json:"score"`
	Tags           []string           `json:"tags"`
	Deeplink       string             `json:"deeplink"`
	BookingOptions []skyBookingOption `json:"bookingOptions"`
}

type skyPrice struct {
	Raw       *float64 `json:"raw"`
	Formatted string   `json:"formatted"`
	Currency  string   `json:"currency"`
}

type skyBookingOption struct {
	BookingURL string   `json:"bookingUrl"`
	AgentName  string   `json:"agentName"`
	Price      skyPrice `json:"price"`
}

type skyPlace struct {
	ID            string `json:"id"`
	FlightPlaceID string `json:"flightPlaceId"`
	Name          string `json:"name"`
	DisplayCode   string `json:"displayCode"`
	City          string `json:"city"`
	Country       string `json:"country"`
}

// flexID holds ids the API sends as either numbers or strings.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	if string(data) == "null" {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type skyCarrier struct {
	ID          flexID `json:"id"`
	AlternateID string `json:"alternateId"`
	Name        string `json:"name"`
	DisplayCode string `json:"displayCode"`
	LogoURL     string `json:"logoUrl"`
}

// skyCarriers decodes either a bare carrier array or the
// {"marketing": [...]} object the v2 endpoint returns.
type skyCarriers []skyCarrier

func (c *skyCarriers) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []skyCarrier
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*c = list
		return nil
	}
	var obj struct {
		Marketing []skyCarrier `json:"marketing"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*c = obj.Marketing
	return nil
}

type skySegment struct {
	ID               string     `json:"id"`
	Origin           skyPlace   `json:"origin"`
	Destination      skyPlace   `json:"destination"`
	FlightNumber     string     `json:"flightNumber"`
	MarketingCarrier skyCarrier `json:"marketingCarrier"`
}

type skyLeg struct {
	ID                string       `json:"id"`
	Origin            skyPlace     `json:"origin"`
	Destination       skyPlace     `json:"destination"`
	Departure         string       `json:"departure"`
	Arrival           string       `json:"arrival"`
	DurationInMinutes *int         `json:"durationInMinutes"`
	Duration          *int         `json:"duration"`
	StopCount         *int         `json:"stopCount"`
	Stops             *int         `json:"stops"`
	StopLocations     []skyPlace   `json:"stopLocations"`
	FlightNumber      string       `json:"flightNumber"`
	Carriers          skyCarriers  `json:"carriers"`
	Segments          []skySegment `json:"segments"`
}

// Search fetches itineraries for one search action. Itineraries that fail
// boundary validation are dropped and logged.
func (p *SkyScrapper) Search(ctx context.Context, req models.SearchRequest) ([]models.Itinerary, error) {
	q := url.Values{}
	q.Set("originSkyId", req.OriginSkyID)
	q.Set("destinationSkyId", req.DestinationSkyID)
	q.Set("originEntityId", req.OriginEntityID)
	q.Set("destinationEntityId", req.DestinationEntityID)
	q.Set("cabinClass", req.CabinClass)
	q.Set("adults", strconv.Itoa(req.Adults))
	q.Set("sortBy", "best")
	q.Set("currency", p.cfg.Currency)
	q.Set("market", p.cfg.Market)
	q.Set("countryCode", p.cfg.CountryCode)
	q.Set("date", req.Date)
	if req.IsRoundTrip() {
		q.Set("returnDate", *req.ReturnDate)
	}

	var data skyFlightsData
	if err := p.get(ctx, "", "api/v2/flights/searchFlights", q, &data); err != nil {
		return nil, NewProviderError(p.Name(), err)
	}

	results := make([]models.Itinerary, 0, len(data.Itineraries))
	for _, raw := range data.Itineraries {
		it, err := p.normalize(raw)
		if err != nil {
			p.logger.Warn("skipping itinerary", "provider", p.Name(), "id", raw.ID, "error", err)
			continue
		}
		results = append(results, it)
	}

	if dropped := len(data.Itineraries) - len(results); dropped > 0 {
		p.logger.Warn("dropped invalid itineraries",
			"provider", p.Name(), "received", len(data.Itineraries), "kept", len(results), "dropped", dropped)
	}

	return results, nil
}

func (p *SkyScrapper) normalize(raw skyItinerary) (models.Itinerary, error) {
	if len(raw.Legs) == 0 {
		return models.Itinerary{}, errNoLegs
	}

	price, err := p.normalizePrice(raw.Price)
	if err != nil {
		return models.Itinerary{}, err
	}

	legs := make([]models.Leg, len(raw.Legs))
	for i, l := range raw.Legs {
		leg, err := normalizeLeg(l)
		if err != nil {
			return models.Itinerary{}, err
		}
		legs[i] = leg
	}

	id := raw.ID
	if id == "" {
		id = uuid.NewString()
	}

	var options []models.BookingOption
	for _, o := range raw.BookingOptions {
		optPrice, err := p.normalizePrice(o.Price)
		if err != nil {
			continue
		}
		options = append(options, models.BookingOption{
			BookingURL: o.BookingURL,
			AgentName:  o.AgentName,
			Price:      optPrice,
		})
	}

	return models.Itinerary{
		ID:             id,
		Price:          price,
		Legs:           legs,
		Score:          raw.Score,
		Tags:           raw.Tags,
		Deeplink:       raw.Deeplink,
		BookingOptions: options,
	}, nil
}

func (p *SkyScrapper) normalizePrice(raw skyPrice) (models.Price, error) {
	if raw.Raw == nil {
		return models.Price{}, errNoPrice
	}
	code := raw.Currency
	if code == "" {
		code = p.cfg.Currency
	}
	formatted := raw.Formatted
	if formatted == "" {
		formatted = currency.Format(*raw.Raw, code)
	}
	return models.Price{
		Raw:       *raw.Raw,
		Formatted: formatted,
		Currency:  code,
	}, nil
}

func normalizeLeg(l skyLeg) (models.Leg, error) {
	dep, err := timestamp.Parse(l.Departure, nil)
	if err != nil {
		return models.Leg{}, err
	}
	arr, err := timestamp.Parse(l.Arrival, nil)
	if err != nil {
		return models.Leg{}, err
	}

	if len(l.Carriers) == 0 {
		return models.Leg{}, errNoCarriers
	}
	carriers := make([]models.Carrier, len(l.Carriers))
	for i, c := range l.Carriers {
		carriers[i] = models.Carrier{
			ID:      string(c.ID),
			Name:    c.Name,
			Code:    firstNonEmpty(c.DisplayCode, c.AlternateID),
			LogoURL: c.LogoURL,
		}
	}

	duration := 0
	switch {
	case l.DurationInMinutes != nil:
		duration = *l.DurationInMinutes
	case l.Duration != nil:
		duration = *l.Duration
	}

	stops := l.StopCount
	if stops == nil {
		stops = l.Stops
	}
	if stops == nil && len(l.Segments) > 0 {
		n := len(l.Segments) - 1
		stops = &n
	}

	var stopLocations []models.Location
	for _, s := range l.StopLocations {
		stopLocations = append(stopLocations, normalizePlace(s))
	}
	if len(stopLocations) == 0 {
		for i := 0; i < len(l.Segments)-1; i++ {
			stopLocations = append(stopLocations, normalizePlace(l.Segments[i].Destination))
		}
	}

	flightNumber := l.FlightNumber
	if flightNumber == "" && len(l.Segments) > 0 {
		seg := l.Segments[0]
		flightNumber = seg.MarketingCarrier.AlternateID + seg.FlightNumber
	}

	return models.Leg{
		ID:              l.ID,
		Origin:          normalizePlace(l.Origin),
		Destination:     normalizePlace(l.Destination),
		Departure:       dep,
		Arrival:         arr,
		DurationMinutes: duration,
		Carriers:        carriers,
		FlightNumber:    flightNumber,
		Stops:           stops,
		StopLocations:   stopLocations,
	}, nil
}

func normalizePlace(p skyPlace) models.Location {
	return models.Location{
		ID:      firstNonEmpty(p.ID, p.FlightPlaceID),
		Code:    firstNonEmpty(p.DisplayCode, p.FlightPlaceID, p.ID),
		Name:    p.Name,
		City:    p.City,
		Country: p.Country,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
