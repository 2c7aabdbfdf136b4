package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lorebase/lorebase/internal/server/middleware"
	"github.com/lorebase/lorebase/pkg/query"
)

// QueryHandler answers a natural language question against the graph.
func QueryHandler(c echo.Context) error {
	type queryRequest struct {
		Question string `json:"question" validate:"required"`
	}

	type queryResponse struct {
		Message string        `json:"message"`
		Result  *query.Result `json:"result,omitempty"`
	}

	data := new(queryRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, queryResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, queryResponse{
			Message: "Invalid request body",
		})
	}

	engine := middleware.Engine(c)
	result := engine.Answer(c.Request().Context(), data.Question)

	return c.JSON(http.StatusOK, queryResponse{
		Message: "Query answered",
		Result:  &result,
	})
}
