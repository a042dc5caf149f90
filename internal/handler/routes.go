package handler

import "github.com/labstack/echo/v4"

func Register(e *echo.Echo, search *SearchHandler, airports *AirportHandler) {
	api := e.Group("/api/v1")
	api.POST("/flights/search", search.Search)
	api.POST("/flights/results/:id", search.Results)
	api.GET("/airports/search", airports.Search)
	api.GET("/airports/nearby", airports.Nearby)
	e.GET("/health", HealthHandler)
}
