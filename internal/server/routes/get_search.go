package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lorebase/lorebase/internal/server/middleware"
	"github.com/lorebase/lorebase/pkg/graph"
)

// SearchEntitiesHandler finds entities whose name or properties contain the
// search term.
func SearchEntitiesHandler(c echo.Context) error {
	type searchRequest struct {
		Term string `query:"q" validate:"required"`
		Type string `query:"type"`
	}

	type searchResponse struct {
		Message  string         `json:"message"`
		Entities []graph.Entity `json:"entities"`
	}

	data := new(searchRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, searchResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, searchResponse{
			Message: "Invalid request body",
		})
	}

	engine := middleware.Engine(c)
	entities := engine.Search(data.Term)
	if data.Type != "" {
		filtered := make([]graph.Entity, 0, len(entities))
		for _, e := range entities {
			if e.Type == data.Type {
				filtered = append(filtered, e)
			}
		}
		entities = filtered
	}

	return c.JSON(http.StatusOK, searchResponse{
		Message:  "Search completed",
		Entities: entities,
	})
}
