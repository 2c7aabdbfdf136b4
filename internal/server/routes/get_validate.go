package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lorebase/lorebase/internal/server/middleware"
	"github.com/lorebase/lorebase/pkg/graph"
)

// ValidateGraphHandler reports structural findings such as isolated entities.
func ValidateGraphHandler(c echo.Context) error {
	type validateResponse struct {
		Message  string          `json:"message"`
		Valid    bool            `json:"valid"`
		Findings []graph.Finding `json:"findings"`
	}

	engine := middleware.Engine(c)
	findings := engine.Validate()
	if findings == nil {
		findings = []graph.Finding{}
	}

	return c.JSON(http.StatusOK, validateResponse{
		Message:  "Validation completed",
		Valid:    len(findings) == 0,
		Findings: findings,
	})
}
