package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lorebase/lorebase/internal/server/middleware"
	"github.com/lorebase/lorebase/pkg/loader"
)

// ExportEntitiesCSVHandler streams the current entities as CSV.
func ExportEntitiesCSVHandler(c echo.Context) error {
	engine := middleware.Engine(c)
	snapshot := engine.Snapshot()

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().WriteHeader(http.StatusOK)
	return loader.ExportEntitiesCSV(c.Response(), snapshot.Entities)
}

// ExportRelationshipsCSVHandler streams the current relationships as CSV.
func ExportRelationshipsCSVHandler(c echo.Context) error {
	engine := middleware.Engine(c)
	snapshot := engine.Snapshot()

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().WriteHeader(http.StatusOK)
	return loader.ExportRelationshipsCSV(c.Response(), snapshot.Relationships)
}
