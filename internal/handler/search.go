package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/skysearch/internal/aggregator"
	"github.com/dharmasatrya/skysearch/internal/cache"
	"github.com/dharmasatrya/skysearch/internal/filter"
	"github.com/dharmasatrya/skysearch/internal/models"
)

type SearchHandler struct {
	aggregator *aggregator.Aggregator
	cache      cache.Cache
	logger     *slog.Logger
}

func NewSearchHandler(agg *aggregator.Aggregator, c cache.Cache, logger *slog.Logger) *SearchHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchHandler{
		aggregator: agg,
		cache:      c,
		logger:     logger,
	}
}

// Search fetches (or reuses) the itinerary list for a route and returns it
// filtered and sorted, with stats over the full list.
func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_request", "Failed to parse request body: "+err.Error())
	}

	if err := req.Validate(); err != nil {
		if isFormIncomplete(err) {
			return errorJSON(c, http.StatusBadRequest, "form_incomplete", err.Error())
		}
		return errorJSON(c, http.StatusBadRequest, "validation_error", err.Error())
	}

	key := cache.Key(req)
	meta := models.SearchMetadata{}

	its, cacheHit := h.cache.Get(ctx, key)
	if !cacheHit {
		result, err := h.aggregator.Search(ctx, req)
		if err != nil {
			h.logger.Error("flight search failed", "search_id", key, "error", err)
			return errorJSON(c, http.StatusBadGateway, "search_error", "Failed to search flights: "+err.Error())
		}
		its = result.Itineraries

		if err := h.cache.Set(ctx, key, its); err != nil {
			h.logger.Warn("failed to cache search results", "search_id", key, "error", err)
		}

		meta.ProvidersQueried = result.ProvidersQueried
		meta.ProvidersSucceeded = result.ProvidersSucceeded
		meta.ProvidersFailed = result.ProvidersFailed
		meta.FailedProviders = result.FailedProviders
	}

	sortKey := req.Sort()
	out := filter.Apply(its, *req.Filters, sortKey)

	meta.TotalResults = len(out.Itineraries)
	meta.TotalFetched = len(its)
	meta.CacheHit = cacheHit
	meta.SearchTimeMs = time.Since(startTime).Milliseconds()

	return c.JSON(http.StatusOK, models.SearchResponse{
		SearchID:       key,
		SearchCriteria: buildSearchCriteria(req, sortKey),
		Metadata:       meta,
		Stats:          out.Stats,
		Itineraries:    out.Itineraries,
	})
}

// Results re-runs filtering and sorting over a cached search.
func (h *SearchHandler) Results(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	id := c.Param("id")
	if !cache.IsKey(id) {
		return errorJSON(c, http.StatusBadRequest, "invalid_search_id", "Unknown search id format")
	}

	var req models.ResultsRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_request", "Failed to parse request body: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return errorJSON(c, http.StatusBadRequest, "validation_error", err.Error())
	}

	its, ok := h.cache.Get(ctx, id)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "search_expired", "Search results expired, please search again")
	}

	sortKey := req.Sort()
	out := filter.Apply(its, *req.Filters, sortKey)

	return c.JSON(http.StatusOK, models.SearchResponse{
		SearchID: id,
		SearchCriteria: models.SearchCriteria{
			Filters: *req.Filters,
			Sort:    sortKey,
		},
		Metadata: models.SearchMetadata{
			TotalResults: len(out.Itineraries),
			TotalFetched: len(its),
			CacheHit:     true,
			SearchTimeMs: time.Since(startTime).Milliseconds(),
		},
		Stats:       out.Stats,
		Itineraries: out.Itineraries,
	})
}

func buildSearchCriteria(req models.SearchRequest, sortKey models.SortKey) models.SearchCriteria {
	return models.SearchCriteria{
		OriginSkyID:      req.OriginSkyID,
		DestinationSkyID: req.DestinationSkyID,
		Date:             req.Date,
		ReturnDate:       req.ReturnDate,
		Adults:           req.Adults,
		CabinClass:       req.CabinClass,
		Filters:          *req.Filters,
		Sort:             sortKey,
	}
}

func isFormIncomplete(err error) bool {
	return errors.Is(err, models.ErrMissingOrigin) ||
		errors.Is(err, models.ErrMissingDestination) ||
		errors.Is(err, models.ErrMissingDate)
}

func errorJSON(c echo.Context, code int, kind, message string) error {
	return c.JSON(code, models.ErrorResponse{
		Error:   kind,
		Message: message,
		Code:    code,
	})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
