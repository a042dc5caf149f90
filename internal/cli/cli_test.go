package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const fakeFlights = `{
  "status": true,
  "data": {
    "itineraries": [
      {
        "id": "A", "price": {"raw": 100, "formatted": "$100"},
        "legs": [{"origin": {"displayCode": "DEL"}, "destination": {"displayCode": "BOM"},
          "departure": "2025-03-14T08:00:00", "arrival": "2025-03-14T10:00:00", "durationInMinutes": 120,
          "stopCount": 0, "flightNumber": "6E2135", "carriers": {"marketing": [{"id": 1, "name": "IndiGo"}]}}]
      },
      {
        "id": "B", "price": {"raw": 80, "formatted": "$80"},
        "legs": [{"origin": {"displayCode": "DEL"}, "destination": {"displayCode": "BOM"},
          "departure": "2025-03-14T06:00:00", "arrival": "2025-03-14T11:00:00", "durationInMinutes": 300,
          "stopCount": 1, "flightNumber": "AI101", "carriers": {"marketing": [{"id": 2, "name": "Air India"}]}}]
      },
      {
        "id": "C", "price": {"raw": 150, "formatted": "$150"},
        "legs": [{"origin": {"displayCode": "DEL"}, "destination": {"displayCode": "BOM"},
          "departure": "2025-03-14T14:00:00", "arrival": "2025-03-14T15:30:00", "durationInMinutes": 90,
          "stopCount": 2, "flightNumber": "UK955", "carriers": {"marketing": [{"id": 3, "name": "Vistara"}]}}]
      }
    ]
  }
}`

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-rapidapi-key") != "cli-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/api/v2/flights/searchFlights":
			_, _ = io.WriteString(w, fakeFlights)
		case "/api/v1/flights/searchAirport":
			if r.URL.Query().Get("query") != "sao paulo" {
				_, _ = io.WriteString(w, `{"status": true, "data": []}`)
				return
			}
			_, _ = io.WriteString(w, `{"status": true, "data": [
			  {"skyId": "GRU", "entityId": "95673624", "presentation": {"suggestionTitle": "Sao Paulo Guarulhos (GRU)", "subtitle": "Brazil"}}
			]}`)
		case "/api/v1/flights/getNearByAirports":
			_, _ = io.WriteString(w, `{"status": true, "data": {
			  "current": {"skyId": "DEL", "presentation": {"title": "New Delhi", "subtitle": "India"}},
			  "nearby": [
			    {"skyId": "JAI", "presentation": {"title": "Jaipur"}, "coordinates": {"latitude": 26.8242, "longitude": 75.8122}},
			    {"skyId": "DEL", "presentation": {"title": "Indira Gandhi International"}, "coordinates": {"latitude": 28.5562, "longitude": 77.1}}
			  ]
			}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	srv := fakeAPI(t)
	t.Setenv("SKYSCRAPPER_BASE_URL", srv.URL+"/")
	t.Setenv("RAPIDAPI_KEY", "cli-key")
	t.Setenv("CACHE_BACKEND", "")

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	out, err := run(t, "search",
		"--origin-sky", "DEL", "--origin-entity", "95673498",
		"--destination-sky", "BOM", "--destination-entity", "95673320",
		"--date", "2025-03-14", "--max-stops", "1", "--sort", "price-asc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"2 flights found (3 fetched)",
		"Prices $80.00 - $150.00, durations 1h 30m - 5h 0m",
		"Airlines: IndiGo, Air India, Vistara",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	b := strings.Index(out, "AI101")
	a := strings.Index(out, "6E2135")
	if b < 0 || a < 0 || b > a {
		t.Errorf("expected AI101 listed before 6E2135:\n%s", out)
	}
	if strings.Contains(out, "UK955") {
		t.Errorf("Vistara flight should be filtered out:\n%s", out)
	}
	if !strings.Contains(out, "* Air India") {
		t.Errorf("expected top result marker:\n%s", out)
	}
}

func TestSearchCommand_NoMatches(t *testing.T) {
	out, err := run(t, "search",
		"--origin-sky", "DEL", "--origin-entity", "1",
		"--destination-sky", "BOM", "--destination-entity", "2",
		"--date", "2025-03-14", "--airline", "Lufthansa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "No flights match the current filters.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestSearchCommand_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing destination", []string{"search", "--origin-sky", "DEL", "--origin-entity", "1", "--date", "2025-03-14"}},
		{"bad hour window", []string{"search", "--origin-sky", "DEL", "--origin-entity", "1", "--destination-sky", "BOM",
			"--destination-entity", "2", "--date", "2025-03-14", "--departure-hours", "morning"}},
		{"bad sort", []string{"search", "--origin-sky", "DEL", "--origin-entity", "1", "--destination-sky", "BOM",
			"--destination-entity", "2", "--date", "2025-03-14", "--sort", "cheapest"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestAirportsCommand(t *testing.T) {
	out, err := run(t, "airports", "São", "Paulo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "GRU") || !strings.Contains(out, "Sao Paulo Guarulhos (GRU)") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = run(t, "airports", "atlantis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "No airports found.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestNearbyCommand(t *testing.T) {
	out, err := run(t, "nearby", "--limit", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Current: New Delhi India") {
		t.Errorf("expected current airport:\n%s", out)
	}
	if !strings.Contains(out, "Indira Gandhi International") || strings.Contains(out, "Jaipur") {
		t.Errorf("expected only the nearest airport:\n%s", out)
	}
	if !strings.Contains(out, "12 km") {
		t.Errorf("expected distance column:\n%s", out)
	}

	if _, err := run(t, "nearby", "--lat", "120"); err == nil {
		t.Error("expected invalid position error")
	}
}

func TestMissingAPIKey(t *testing.T) {
	t.Setenv("RAPIDAPI_KEY", "")

	cmd := NewRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"airports", "delhi"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected missing api key error")
	}
}

func TestParseHourWindow(t *testing.T) {
	got, err := parseHourWindow("6-12.5")
	if err != nil || got != [2]float64{6, 12.5} {
		t.Errorf("unexpected result %v %v", got, err)
	}
	for _, bad := range []string{"6", "a-12", "6-b"} {
		if _, err := parseHourWindow(bad); err == nil {
			t.Errorf("parseHourWindow(%q): expected error", bad)
		}
	}
}
