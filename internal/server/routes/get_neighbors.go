package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lorebase/lorebase/internal/server/middleware"
	"github.com/lorebase/lorebase/pkg/graph"
)

// GetNeighborsHandler returns the adjacent entities of an entity together
// with the connecting relationships.
func GetNeighborsHandler(c echo.Context) error {
	type neighborsRequest struct {
		ID        string `param:"id" validate:"required"`
		Direction string `query:"direction" validate:"omitempty,oneof=in out both"`
		Type      string `query:"type"`
	}

	type neighborsResponse struct {
		Message       string               `json:"message"`
		Entities      []graph.Entity       `json:"entities,omitempty"`
		Relationships []graph.Relationship `json:"relationships,omitempty"`
	}

	data := new(neighborsRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, neighborsResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, neighborsResponse{
			Message: "Invalid request body",
		})
	}

	engine := middleware.Engine(c)
	entities, relationships, err := engine.Neighbors(data.ID, graph.Direction(data.Direction), data.Type)
	if err != nil {
		return writeGraphError(c, err)
	}

	return c.JSON(http.StatusOK, neighborsResponse{
		Message:       "Neighbors found",
		Entities:      entities,
		Relationships: relationships,
	})
}
