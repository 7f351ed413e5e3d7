package surface

import (
	"log/slog"

	"cost-planner/config"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// SceneFromConfig loads, prepares and indexes the obstacles named by the scene
// section. An empty path yields an open plane.
func SceneFromConfig(cfg config.SceneConfig, logger *slog.Logger) (*Scene, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var polygons []orb.Polygon
	if cfg.Path != "" {
		loaded, err := LoadPolygons(cfg.Path, logger)
		if err != nil {
			return nil, errors.Wrap(err, "load obstacles")
		}
		polygons = PreparePolygons(loaded, PrepareOptions{
			SimplifyEpsilon: cfg.SimplifyEpsilon,
			AutoSimplify:    cfg.AutoSimplify,
			RemoveContained: cfg.RemoveContained,
		})
		logger.Info("Obstacles prepared",
			slog.Int("loaded", len(loaded)),
			slog.Int("kept", len(polygons)),
		)
	}

	return NewScene(polygons, SceneOptions{
		IndexMinChildren: cfg.IndexMinChildren,
		IndexMaxChildren: cfg.IndexMaxChildren,
	}), nil
}
