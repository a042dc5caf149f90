package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dharmasatrya/skysearch/internal/display"
	"github.com/dharmasatrya/skysearch/internal/filter"
	"github.com/dharmasatrya/skysearch/internal/models"
	"github.com/dharmasatrya/skysearch/pkg/currency"
)

type searchFlags struct {
	originSky, originEntity           string
	destinationSky, destinationEntity string
	date, returnDate                  string
	adults                            int
	cabin                             string

	minPrice, maxPrice float64
	maxStops           int
	airlines           []string
	maxDuration        int
	departureHours     string
	arrivalHours       string
	sortBy             string
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	f := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search flights and print them filtered and sorted",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(cmd)
			if err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return err
			}

			result, err := opts.app.Aggregator.Search(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("search flights: %w", err)
			}

			out := filter.Apply(result.Itineraries, *req.Filters, req.Sort())
			printResults(cmd.OutOrStdout(), out, opts.app.Config.API.Currency)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.originSky, "origin-sky", "", "Origin sky id as listed by the airports command")
	fl.StringVar(&f.originEntity, "origin-entity", "", "Origin entity id")
	fl.StringVar(&f.destinationSky, "destination-sky", "", "Destination sky id")
	fl.StringVar(&f.destinationEntity, "destination-entity", "", "Destination entity id")
	fl.StringVar(&f.date, "date", "", "Departure date (YYYY-MM-DD)")
	fl.StringVar(&f.returnDate, "return-date", "", "Return date for round trips (YYYY-MM-DD)")
	fl.IntVar(&f.adults, "adults", 1, "Number of adult passengers")
	fl.StringVar(&f.cabin, "cabin", "economy", "Cabin class (economy, premium_economy, business, first)")
	fl.Float64Var(&f.minPrice, "min-price", 0, "Minimum price")
	fl.Float64Var(&f.maxPrice, "max-price", 0, "Maximum price")
	fl.IntVar(&f.maxStops, "max-stops", models.MaxStopsUnbounded, "Maximum stops (3 = any)")
	fl.StringSliceVar(&f.airlines, "airline", nil, "Allowed airline name (repeatable)")
	fl.IntVar(&f.maxDuration, "max-duration", 0, "Maximum total duration in minutes")
	fl.StringVar(&f.departureHours, "departure-hours", "", "Departure hour window, e.g. 6-12")
	fl.StringVar(&f.arrivalHours, "arrival-hours", "", "Arrival hour window, e.g. 12-24")
	fl.StringVar(&f.sortBy, "sort", "best", "Sort key: best, price, duration, departure, arrival with optional -asc/-desc")

	return cmd
}

func (f *searchFlags) request(cmd *cobra.Command) (models.SearchRequest, error) {
	criteria := models.DefaultFilters()
	changed := cmd.Flags().Changed

	if changed("min-price") {
		criteria.PriceRange[0] = f.minPrice
	}
	if changed("max-price") {
		criteria.PriceRange[1] = f.maxPrice
	}
	if changed("max-stops") {
		criteria.MaxStops = f.maxStops
	}
	if changed("max-duration") {
		criteria.MaxDuration = f.maxDuration
	}
	criteria.Airlines = f.airlines

	var err error
	if f.departureHours != "" {
		if criteria.DepartureHours, err = parseHourWindow(f.departureHours); err != nil {
			return models.SearchRequest{}, err
		}
	}
	if f.arrivalHours != "" {
		if criteria.ArrivalHours, err = parseHourWindow(f.arrivalHours); err != nil {
			return models.SearchRequest{}, err
		}
	}

	req := models.SearchRequest{
		OriginSkyID:         f.originSky,
		OriginEntityID:      f.originEntity,
		DestinationSkyID:    f.destinationSky,
		DestinationEntityID: f.destinationEntity,
		Date:                f.date,
		Adults:              f.adults,
		CabinClass:          f.cabin,
		Filters:             &criteria,
		SortBy:              f.sortBy,
	}
	if f.returnDate != "" {
		req.ReturnDate = &f.returnDate
	}
	return req, nil
}

// parseHourWindow reads "6-12" into [6, 12].
func parseHourWindow(s string) ([2]float64, error) {
	from, to, ok := strings.Cut(s, "-")
	if !ok {
		return [2]float64{}, fmt.Errorf("hour window %q must look like 6-12", s)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(from), 64)
	if err != nil {
		return [2]float64{}, fmt.Errorf("hour window %q: %w", s, err)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(to), 64)
	if err != nil {
		return [2]float64{}, fmt.Errorf("hour window %q: %w", s, err)
	}
	return [2]float64{lo, hi}, nil
}

func printResults(w io.Writer, res filter.Result, currencyCode string) {
	if res.Stats == nil {
		fmt.Fprintln(w, "No flights found.")
		return
	}

	s := res.Stats
	fmt.Fprintf(w, "%d flights found (%d fetched)\n", len(res.Itineraries), s.TotalFlights)
	fmt.Fprintf(w, "Prices %s - %s, durations %s - %s\n",
		currency.Format(s.PriceRange[0], currencyCode), currency.Format(s.PriceRange[1], currencyCode),
		display.FormatDuration(s.DurationRange[0]), display.FormatDuration(s.DurationRange[1]))
	fmt.Fprintf(w, "Airlines: %s\n\n", strings.Join(s.Airlines, ", "))

	if len(res.Itineraries) == 0 {
		fmt.Fprintln(w, "No flights match the current filters.")
		return
	}

	fmt.Fprintf(w, "%-1s %-24s %-8s %-5s %-5s %-5s %-5s %-8s %-8s %s\n",
		"", "AIRLINE", "FLIGHT", "FROM", "DEP", "TO", "ARR", "DURATION", "STOPS", "PRICE")
	for _, c := range display.Cards(res.Itineraries) {
		marker := " "
		if c.TopResult {
			marker = "*"
		}
		fmt.Fprintf(w, "%-1s %-24s %-8s %-5s %-5s %-5s %-5s %-8s %-8s %s\n",
			marker, c.Airline, c.FlightNumber, c.Origin, c.DepartureTime, c.Destination, c.ArrivalTime, c.Duration, c.Stops, c.Price)
	}
}
