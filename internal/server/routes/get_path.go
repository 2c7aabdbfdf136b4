package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lorebase/lorebase/internal/server/middleware"
	"github.com/lorebase/lorebase/pkg/graph"
)

// GetPathHandler finds a shortest connection between two entities.
func GetPathHandler(c echo.Context) error {
	type pathRequest struct {
		Source string `query:"source" validate:"required"`
		Target string `query:"target" validate:"required"`
	}

	type pathResponse struct {
		Message string      `json:"message"`
		Path    *graph.Path `json:"path,omitempty"`
		Length  int         `json:"length"`
	}

	data := new(pathRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, pathResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, pathResponse{
			Message: "Invalid request body",
		})
	}

	engine := middleware.Engine(c)
	path, err := engine.ShortestPath(data.Source, data.Target)
	if err != nil {
		return writeGraphError(c, err)
	}

	return c.JSON(http.StatusOK, pathResponse{
		Message: "Path found",
		Path:    &path,
		Length:  path.Length(),
	})
}
