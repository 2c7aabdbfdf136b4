package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lorebase/lorebase/internal/server/middleware"
	"github.com/lorebase/lorebase/pkg/graph"
)

// GetEntityHandler returns a single entity by id.
func GetEntityHandler(c echo.Context) error {
	type entityRequest struct {
		ID string `param:"id" validate:"required"`
	}

	type entityResponse struct {
		Message string        `json:"message"`
		Entity  *graph.Entity `json:"entity,omitempty"`
	}

	data := new(entityRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, entityResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, entityResponse{
			Message: "Invalid request body",
		})
	}

	engine := middleware.Engine(c)
	entity, err := engine.GetEntity(data.ID)
	if err != nil {
		return writeGraphError(c, err)
	}

	return c.JSON(http.StatusOK, entityResponse{
		Message: "Entity found",
		Entity:  &entity,
	})
}
