package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cost-planner/config"
	logs "cost-planner/internal/infra/log"
	"cost-planner/internal/planner"
	"cost-planner/internal/surface"

	"github.com/pkg/errors"
)

// commonFlags override the configuration file for a single invocation
type commonFlags struct {
	config   *string
	scene    *string
	cache    *string
	bucket   *int
	rounding *string
	verbose  *bool
}

func registerCommonFlags(cmd *flag.FlagSet) commonFlags {
	return commonFlags{
		config:   cmd.String("config", "", "Path to a YAML config file; defaults apply when empty"),
		scene:    cmd.String("scene", "", "Glob of GeoJSON obstacle files"),
		cache:    cmd.String("cache", "", "SQLite cost cache file; enables the cache"),
		bucket:   cmd.Int("bucket", 0, "Budget multiplier per squared unit of distance"),
		rounding: cmd.String("rounding", "", "Step distance pricing: ceil or exact"),
		verbose:  cmd.Bool("verbose", false, "Log search progress to stderr"),
	}
}

// loadConfig reads the config file, if any, and applies flag overrides
func (f commonFlags) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *f.config != "" {
		name := strings.TrimSuffix(filepath.Base(*f.config), filepath.Ext(*f.config))
		dir, err := filepath.Abs(filepath.Dir(*f.config))
		if err != nil {
			return nil, errors.Wrap(err, "resolve config directory")
		}
		if cfg, err = config.Load(name, dir); err != nil {
			return nil, err
		}
	}

	if *f.scene != "" {
		cfg.Scene.Path = *f.scene
	}
	if *f.cache != "" {
		cfg.Cache.Enabled = true
		cfg.Cache.Path = *f.cache
	}
	if *f.bucket > 0 {
		cfg.Search.BucketLimit = *f.bucket
	}
	if *f.rounding != "" {
		cfg.Search.Rounding = *f.rounding
	}

	cfg.Env.Log.Pretty = true
	cfg.Env.Log.Level = "warn"
	if *f.verbose {
		cfg.Env.Log.Level = "debug"
	}

	return cfg, nil
}

// environment is everything a subcommand needs to query the plane
type environment struct {
	cfg    *config.Config
	logger *slog.Logger
	scene  *surface.Scene
	cache  *surface.Cache
	engine *planner.Engine
}

func (f commonFlags) setup() (*environment, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logs.NewWithWriter(os.Stderr, cfg.Env.Log)
	if err != nil {
		return nil, err
	}

	scene, err := surface.SceneFromConfig(cfg.Scene, logger)
	if err != nil {
		return nil, err
	}

	env := &environment{cfg: cfg, logger: logger, scene: scene}

	var costs surface.CostSurface = scene
	if cfg.Cache.Enabled {
		if env.cache, err = surface.OpenCache(cfg.Cache.Path, scene, logger); err != nil {
			return nil, errors.Wrap(err, "failed to open cost cache")
		}
		costs = env.cache
	}

	opts, err := planner.OptionsFromConfig(cfg.Search)
	if err != nil {
		env.close()
		return nil, errors.Wrap(err, "invalid search configuration")
	}
	env.engine = planner.NewEngine(costs, append(opts, planner.WithLogger(logger))...)

	return env, nil
}

func (e *environment) close() {
	if e.cache == nil {
		return
	}
	if err := e.cache.Close(); err != nil {
		e.logger.Warn("Failed to close cost cache", slog.Any("error", err))
	}
}
