package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lorebase/lorebase/internal/server/middleware"
)

// GetSuggestionsHandler proposes follow-up questions about an entity.
func GetSuggestionsHandler(c echo.Context) error {
	type suggestionsRequest struct {
		ID string `param:"id" validate:"required"`
	}

	type suggestionsResponse struct {
		Message   string   `json:"message"`
		Questions []string `json:"questions"`
	}

	data := new(suggestionsRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, suggestionsResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, suggestionsResponse{
			Message: "Invalid request body",
		})
	}

	engine := middleware.Engine(c)
	questions, err := engine.SuggestQuestions(data.ID)
	if err != nil {
		return writeGraphError(c, err)
	}

	return c.JSON(http.StatusOK, suggestionsResponse{
		Message:   "Suggestions generated",
		Questions: questions,
	})
}
