package surface

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// LoadPolygons reads every GeoJSON file matching pattern and returns the
// Polygon and MultiPolygon features they contain. Files that cannot be read
// or parsed are logged and skipped.
func LoadPolygons(pattern string, logger *slog.Logger) ([]orb.Polygon, error) {
	if logger == nil {
		logger = slog.Default()
	}

	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "glob %s", pattern)
	}

	logger.Info("Loading obstacles", slog.String("pattern", pattern), slog.Int("files", len(files)))

	var all []orb.Polygon
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			logger.Warn("Failed to read obstacle file", slog.String("file", file), slog.String("error", err.Error()))
			continue
		}

		polygons, err := ParsePolygons(data)
		if err != nil {
			logger.Warn("Failed to parse obstacle file", slog.String("file", file), slog.String("error", err.Error()))
			continue
		}

		all = append(all, polygons...)
		logger.Debug("Loaded obstacles", slog.String("file", filepath.Base(file)), slog.Int("polygons", len(polygons)))
	}

	logger.Info("Obstacles loaded", slog.Int("polygons", len(all)))
	return all, nil
}

// ParsePolygons extracts polygons from a GeoJSON FeatureCollection.
// Features of other geometry types are ignored.
func ParsePolygons(data []byte) ([]orb.Polygon, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal feature collection")
	}

	var polygons []orb.Polygon
	for _, feature := range fc.Features {
		switch g := feature.Geometry.(type) {
		case orb.Polygon:
			polygons = append(polygons, g)
		case orb.MultiPolygon:
			polygons = append(polygons, g...)
		}
	}

	return polygons, nil
}
