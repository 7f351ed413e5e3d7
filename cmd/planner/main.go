package main

import (
	"context"
	"log/slog"
	"os"

	"cost-planner/config"
	"cost-planner/internal/delivery"
	"cost-planner/internal/delivery/http"
	"cost-planner/internal/delivery/http/router/handler"
	logs "cost-planner/internal/infra/log"
	"cost-planner/internal/planner"
	"cost-planner/internal/surface"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

type surfaceParams struct {
	fx.In

	Scene *surface.Scene
	Cache *surface.Cache `optional:"true"`
}

func main() {
	fx.New(
		injectInfra(),
		injectSurface(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectSurface() fx.Option {
	return fx.Options(
		fx.Provide(
			newScene,
			newCache,
			newCostSurface,
			newEngine,
		),
	)
}

func newScene(cfg *config.Config, logger *slog.Logger) (*surface.Scene, error) {
	return surface.SceneFromConfig(cfg.Scene, logger)
}

// newCache opens the persistent cost cache in front of the scene
func newCache(lc fx.Lifecycle, cfg *config.Config, scene *surface.Scene, logger *slog.Logger) (*surface.Cache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil // the cache is optional
	}

	cache, err := surface.OpenCache(cfg.Cache.Path, scene, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open cost cache")
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return cache.Close()
		},
	})

	return cache, nil
}

func newCostSurface(params surfaceParams) surface.CostSurface {
	if params.Cache != nil {
		return params.Cache
	}
	return params.Scene
}

func newEngine(cfg *config.Config, s surface.CostSurface, logger *slog.Logger) (*planner.Engine, error) {
	opts, err := planner.OptionsFromConfig(cfg.Search)
	if err != nil {
		return nil, errors.Wrap(err, "invalid search configuration")
	}

	return planner.NewEngine(s, append(opts, planner.WithLogger(logger))...), nil
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewRouteHandler,
			handler.NewHealthHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
