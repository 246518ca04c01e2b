package router

import (
	"github.com/labstack/echo/v4"
)

// Registrar is a controller that mounts its own routes.
type Registrar interface {
	Register(e *echo.Echo)
}

func New(
	e *echo.Echo,
	healthCtrl interface{ Health(echo.Context) error },
	ctrls ...Registrar,
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)
	e.GET("/api/v1/health", healthCtrl.Health)
	for _, c := range ctrls {
		c.Register(e)
	}
	return e
}
