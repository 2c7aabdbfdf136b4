package server

import (
	"github.com/labstack/echo/v4"

	"github.com/lorebase/lorebase/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Query routes
	apiRoutes.POST("/query", routes.QueryHandler)

	// Entity routes
	apiRoutes.GET("/search", routes.SearchEntitiesHandler)
	apiRoutes.GET("/entities/:id", routes.GetEntityHandler)
	apiRoutes.GET("/entities/:id/neighbors", routes.GetNeighborsHandler)
	apiRoutes.GET("/entities/:id/suggestions", routes.GetSuggestionsHandler)

	// Structure routes
	apiRoutes.GET("/path", routes.GetPathHandler)
	apiRoutes.GET("/statistics", routes.GetStatisticsHandler)
	apiRoutes.GET("/validate", routes.ValidateGraphHandler)

	// Bulk graph routes
	apiRoutes.GET("/graph", routes.ExportGraphHandler)
	apiRoutes.POST("/graph", routes.ReplaceGraphHandler)
	apiRoutes.GET("/graph/entities.csv", routes.ExportEntitiesCSVHandler)
	apiRoutes.GET("/graph/relationships.csv", routes.ExportRelationshipsCSVHandler)
}
