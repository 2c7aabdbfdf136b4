package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lorebase/lorebase/pkg/graph"
	"github.com/lorebase/lorebase/pkg/logger"
)

type errorResponse struct {
	Message string `json:"message"`
}

// writeGraphError maps store errors to HTTP responses. Unknown errors are
// logged and answered with a generic 500.
func writeGraphError(c echo.Context, err error) error {
	var notFound *graph.NotFoundError
	if errors.As(err, &notFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Message: err.Error()})
	}

	var noPath *graph.NoPathError
	if errors.As(err, &noPath) {
		return c.JSON(http.StatusNotFound, errorResponse{Message: err.Error()})
	}

	var invalid *graph.ValidationError
	if errors.As(err, &invalid) {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	}

	var dangling *graph.DanglingReferenceError
	if errors.As(err, &dangling) {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Message: err.Error()})
	}

	logger.Error("Unhandled graph error", "err", err)
	return c.JSON(http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
}
