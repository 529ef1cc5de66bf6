package server

import (
	"nubereats/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc, gql *handler.GraphQLHandler, health *handler.HealthHandler) {
	health.RegisterRoutes(e)
	gql.RegisterRoutes(e, auth)
}
