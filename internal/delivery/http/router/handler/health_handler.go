package handler

import (
	"log/slog"
	"net/http"

	"cost-planner/config"
	"cost-planner/internal/delivery/http/response"
	"cost-planner/internal/surface"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type HealthHandlerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Scene  *surface.Scene
	Cache  *surface.Cache `optional:"true"`
}

// HealthHandler reports whether the service is ready to search
type HealthHandler struct {
	service string
	logger  *slog.Logger
	scene   *surface.Scene
	cache   *surface.Cache
}

// NewHealthHandler creates a HealthHandler
func NewHealthHandler(params HealthHandlerParams) *HealthHandler {
	return &HealthHandler{
		service: params.Config.Env.ServiceName,
		logger:  params.Logger,
		scene:   params.Scene,
		cache:   params.Cache,
	}
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	status := HealthResponse{
		Status:  "ok",
		Service: h.service,
	}
	if h.scene != nil {
		status.Obstacles = h.scene.Len()
	}

	if h.cache != nil {
		status.CacheEnabled = true
		n, err := h.cache.Len(c.Request().Context())
		if err != nil {
			h.logger.Warn("Failed to count cached costs", slog.String("error", err.Error()))
			status.Status = "degraded"
		}
		status.CachedAnswers = n
	}

	return response.Success(c, http.StatusOK, status, "")
}
