package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/lorebase/lorebase/pkg/query"
)

// App holds the shared application state handed to every request.
type App struct {
	Engine *query.Engine
}

// AppContext wraps the echo context with the application state.
type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware injects the query engine into each request context.
func AppContextMiddleware(engine *query.Engine) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			app := &App{
				Engine: engine,
			}
			return next(&AppContext{c, app})
		}
	}
}

// Engine returns the query engine for the current request.
func Engine(c echo.Context) *query.Engine {
	return c.(*AppContext).App.Engine
}
