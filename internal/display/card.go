// Package display builds the flight-card view of an itinerary.
//
// Carrier, flight number, times and airport codes are taken from the primary
// (first) leg only, while duration and stops are aggregated over every leg.
// Connecting itineraries therefore show the first segment's airline and the
// whole trip's duration.
package display

import (
	"fmt"
	"net/url"

	"github.com/dharmasatrya/skysearch/internal/models"
	"github.com/dharmasatrya/skysearch/internal/ranking"
)

const (
	unknownAirline = "Unknown Airline"
	maxCardTags    = 2
)

type Card struct {
	ID            string   `json:"id"`
	Airline       string   `json:"airline"`
	FlightNumber  string   `json:"flight_number,omitempty"`
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureTime string   `json:"departure_time"`
	DepartureDate string   `json:"departure_date"`
	ArrivalTime   string   `json:"arrival_time"`
	ArrivalDate   string   `json:"arrival_date"`
	Duration      string   `json:"duration"`
	Stops         string   `json:"stops"`
	Price         string   `json:"price"`
	Score         float64  `json:"score"`
	Tags          []string `json:"tags,omitempty"`
	BookingURL    string   `json:"booking_url"`
	TopResult     bool     `json:"top_result"`
}

func NewCard(it models.Itinerary, topResult bool) Card {
	card := Card{
		ID:         it.ID,
		Airline:    unknownAirline,
		Duration:   FormatDuration(it.TotalDuration()),
		Stops:      StopText(it.EffectiveStops()),
		Price:      it.Price.Formatted,
		Score:      ranking.Score(it),
		TopResult:  topResult,
		BookingURL: it.Deeplink,
	}

	if len(it.Tags) > 0 {
		card.Tags = it.Tags[:min(len(it.Tags), maxCardTags)]
	}

	main, ok := it.FirstLeg()
	if !ok {
		return card
	}

	if len(main.Carriers) > 0 && main.Carriers[0].Name != "" {
		card.Airline = main.Carriers[0].Name
	}
	card.FlightNumber = main.FlightNumber
	card.Origin = main.Origin.Code
	card.Destination = main.Destination.Code
	card.DepartureTime = main.Departure.Format("15:04")
	card.DepartureDate = main.Departure.Format("Jan 2")
	card.ArrivalTime = main.Arrival.Format("15:04")
	card.ArrivalDate = main.Arrival.Format("Jan 2")

	if card.BookingURL == "" {
		card.BookingURL = FallbackBookingURL(main.Origin.Code, main.Destination.Code)
	}

	return card
}

// Cards marks the first itinerary as the top result.
func Cards(its []models.Itinerary) []Card {
	cards := make([]Card, len(its))
	for i, it := range its {
		cards[i] = NewCard(it, i == 0)
	}
	return cards
}

func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func StopText(stops int) string {
	switch stops {
	case 0:
		return "Direct"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}

func FallbackBookingURL(origin, destination string) string {
	return "https://www.google.com/flights#search;f=" + url.PathEscape(origin) + ";t=" + url.PathEscape(destination)
}
