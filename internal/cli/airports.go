package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dharmasatrya/skysearch/internal/geo"
	"github.com/dharmasatrya/skysearch/internal/models"
	"github.com/dharmasatrya/skysearch/internal/textnorm"
)

func newAirportsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "airports <query>",
		Short: "Look up airports and cities for a search",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := textnorm.Fold(strings.Join(args, " "))
			if query == "" {
				return fmt.Errorf("query must not be empty")
			}

			airports, err := opts.app.Client.SearchAirports(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("search airports: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(airports) == 0 {
				fmt.Fprintln(out, "No airports found.")
				return nil
			}

			fmt.Fprintf(out, "%-8s  %-12s  %-35s  %s\n", "SKY ID", "ENTITY ID", "NAME", "SUBTITLE")
			for _, a := range airports {
				fmt.Fprintf(out, "%-8s  %-12s  %-35s  %s\n", a.SkyID, a.EntityID, a.Title, a.Subtitle)
			}
			return nil
		},
	}
}

func newNearbyCmd(opts *rootOptions) *cobra.Command {
	var (
		lat, lng float64
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "List airports near a position (default location when omitted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			pos := opts.app.Config.DefaultLocation
			if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
				pos = models.Coordinates{Latitude: lat, Longitude: lng}
				if !geo.Valid(pos) {
					return fmt.Errorf("lat/lng out of range")
				}
			}

			result, err := opts.app.Client.NearbyAirports(cmd.Context(), pos.Latitude, pos.Longitude)
			if err != nil {
				return fmt.Errorf("nearby airports: %w", err)
			}

			out := cmd.OutOrStdout()
			if result.Current != nil {
				fmt.Fprintf(out, "Current: %s %s\n", result.Current.Title, result.Current.Subtitle)
			}

			nearby := geo.SortByDistance(pos, result.Nearby)
			if len(nearby) > limit {
				nearby = nearby[:limit]
			}
			for _, a := range nearby {
				dist := "-"
				if a.DistanceKm != nil {
					dist = fmt.Sprintf("%.0f km", *a.DistanceKm)
				}
				fmt.Fprintf(out, "%-8s  %-35s  %s\n", a.SkyID, a.Title, dist)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Longitude")
	cmd.Flags().IntVar(&limit, "limit", 4, "Maximum airports to show")

	return cmd
}
