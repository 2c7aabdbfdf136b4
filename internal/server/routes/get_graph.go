package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lorebase/lorebase/internal/server/middleware"
)

// ExportGraphHandler returns the full graph content as a snapshot.
func ExportGraphHandler(c echo.Context) error {
	engine := middleware.Engine(c)
	return c.JSON(http.StatusOK, engine.Snapshot())
}
