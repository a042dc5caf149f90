package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/skysearch/internal/geo"
	"github.com/dharmasatrya/skysearch/internal/models"
	"github.com/dharmasatrya/skysearch/internal/providers"
	"github.com/dharmasatrya/skysearch/internal/textnorm"
)

const (
	defaultNearbyLimit = 4
	maxNearbyLimit     = 20
)

type AirportHandler struct {
	directory providers.AirportDirectory
	fallback  models.Coordinates
	logger    *slog.Logger
}

func NewAirportHandler(directory providers.AirportDirectory, fallback models.Coordinates, logger *slog.Logger) *AirportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AirportHandler{
		directory: directory,
		fallback:  fallback,
		logger:    logger,
	}
}

// Search backs the origin/destination autocomplete.
func (h *AirportHandler) Search(c echo.Context) error {
	query := textnorm.Fold(c.QueryParam("query"))
	if query == "" {
		return c.JSON(http.StatusOK, models.AirportsResponse{Query: query, Airports: []models.Airport{}})
	}

	airports, err := h.directory.SearchAirports(c.Request().Context(), query)
	if err != nil {
		h.logger.Error("airport search failed", "query", query, "error", err)
		return errorJSON(c, http.StatusBadGateway, "airport_search_error", "Failed to search airports: "+err.Error())
	}

	return c.JSON(http.StatusOK, models.AirportsResponse{Query: query, Airports: airports})
}

// Nearby lists airports around lat/lng, or around the configured default
// location when the caller did not send a position.
func (h *AirportHandler) Nearby(c echo.Context) error {
	latParam, lngParam := c.QueryParam("lat"), c.QueryParam("lng")

	pos := h.fallback
	fallback := latParam == "" && lngParam == ""
	if !fallback {
		lat, errLat := strconv.ParseFloat(latParam, 64)
		lng, errLng := strconv.ParseFloat(lngParam, 64)
		if errLat != nil || errLng != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid_location", "lat and lng must both be numbers")
		}
		pos = models.Coordinates{Latitude: lat, Longitude: lng}
		if !geo.Valid(pos) {
			return errorJSON(c, http.StatusBadRequest, "invalid_location", "lat/lng out of range")
		}
	}

	limit := defaultNearbyLimit
	if l := c.QueryParam("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 || n > maxNearbyLimit {
			return errorJSON(c, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 20")
		}
		limit = n
	}

	result, err := h.directory.NearbyAirports(c.Request().Context(), pos.Latitude, pos.Longitude)
	if err != nil {
		h.logger.Error("nearby airports failed", "lat", pos.Latitude, "lng", pos.Longitude, "error", err)
		return errorJSON(c, http.StatusBadGateway, "nearby_airports_error", "Failed to load nearby airports")
	}

	nearby := geo.SortByDistance(pos, result.Nearby)
	if len(nearby) > limit {
		nearby = nearby[:limit]
	}

	return c.JSON(http.StatusOK, models.NearbyResponse{
		Latitude:         pos.Latitude,
		Longitude:        pos.Longitude,
		LocationFallback: fallback,
		Current:          result.Current,
		Nearby:           nearby,
	})
}
