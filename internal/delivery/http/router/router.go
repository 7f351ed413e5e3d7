// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"cost-planner/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	RouteHandler  *handler.RouteHandler
	HealthHandler *handler.HealthHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	routeHandler  *handler.RouteHandler
	healthHandler *handler.HealthHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		routeHandler:  params.RouteHandler,
		healthHandler: params.HealthHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.HealthCheck)

	e.POST("/route", r.routeHandler.FindRoute)
	e.GET("/route/stream", r.routeHandler.Stream)
	e.POST("/move", r.routeHandler.MoveOneUnit)
	e.POST("/decode", r.routeHandler.Decode)
}
