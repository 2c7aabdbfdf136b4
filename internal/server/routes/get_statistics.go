package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lorebase/lorebase/internal/server/middleware"
	"github.com/lorebase/lorebase/pkg/graph"
)

// GetStatisticsHandler reports graph-level counts and histograms.
func GetStatisticsHandler(c echo.Context) error {
	type statisticsResponse struct {
		Message    string      `json:"message"`
		Statistics graph.Stats `json:"statistics"`
	}

	engine := middleware.Engine(c)

	return c.JSON(http.StatusOK, statisticsResponse{
		Message:    "Statistics computed",
		Statistics: engine.Statistics(),
	})
}
