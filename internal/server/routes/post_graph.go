package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lorebase/lorebase/internal/server/middleware"
	"github.com/lorebase/lorebase/pkg/graph"
	"github.com/lorebase/lorebase/pkg/logger"
)

// ReplaceGraphHandler replaces the whole graph content and rebuilds the
// retrieval index.
func ReplaceGraphHandler(c echo.Context) error {
	type replaceGraphRequest struct {
		Entities      []graph.Entity       `json:"entities" validate:"required,min=1"`
		Relationships []graph.Relationship `json:"relationships"`
	}

	type replaceGraphResponse struct {
		Message       string `json:"message"`
		Entities      int    `json:"entities"`
		Relationships int    `json:"relationships"`
	}

	data := new(replaceGraphRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, replaceGraphResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, replaceGraphResponse{
			Message: "Invalid request body",
		})
	}

	engine := middleware.Engine(c)
	if err := engine.Reload(c.Request().Context(), data.Entities, data.Relationships); err != nil {
		logger.Error("Failed to reload graph", "err", err)
		return writeGraphError(c, err)
	}

	return c.JSON(http.StatusOK, replaceGraphResponse{
		Message:       "Graph replaced",
		Entities:      len(data.Entities),
		Relationships: len(data.Relationships),
	})
}
