package models

import "testing"

func intPtr(n int) *int { return &n }

func TestItinerary_TotalDurationAndEffectiveStops(t *testing.T) {
	it := Itinerary{
		ID: "multi",
		Legs: []Leg{
			{DurationMinutes: 60, Stops: intPtr(0), Carriers: []Carrier{{Name: "Air India"}}},
			{DurationMinutes: 45, Stops: intPtr(2), Carriers: []Carrier{{Name: "Vistara"}}},
		},
	}

	if got := it.TotalDuration(); got != 105 {
		t.Errorf("expected total duration 105, got %d", got)
	}
	// worst leg, not the sum
	if got := it.EffectiveStops(); got != 2 {
		t.Errorf("expected effective stops 2, got %d", got)
	}
}

func TestItinerary_MissingStopsCountAsDirect(t *testing.T) {
	it := Itinerary{Legs: []Leg{{DurationMinutes: 90}, {DurationMinutes: 30}}}

	if got := it.EffectiveStops(); got != 0 {
		t.Errorf("expected 0 stops when legs omit them, got %d", got)
	}
}

func TestItinerary_CarrierNamesSpansAllLegs(t *testing.T) {
	it := Itinerary{
		Legs: []Leg{
			{Carriers: []Carrier{{Name: "IndiGo"}, {Name: "Qatar Airways"}}},
			{Carriers: []Carrier{{Name: "IndiGo"}}},
		},
	}

	names := it.CarrierNames()
	want := []string{"IndiGo", "Qatar Airways", "IndiGo"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("name %d: expected %q, got %q", i, want[i], names[i])
		}
	}
}

func TestItinerary_FirstAndLastLegOnEmpty(t *testing.T) {
	var it Itinerary
	if _, ok := it.FirstLeg(); ok {
		t.Error("expected no first leg")
	}
	if _, ok := it.LastLeg(); ok {
		t.Error("expected no last leg")
	}
}
