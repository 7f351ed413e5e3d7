package planner

import (
	"strings"

	"cost-planner/config"
	"cost-planner/internal/direction"
	"cost-planner/internal/location"

	"github.com/pkg/errors"
)

// ParseRounding maps "ceil" and "exact" to a rounding policy
func ParseRounding(s string) (location.Rounding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ceil":
		return location.RoundCeil, nil
	case "exact":
		return location.RoundExact, nil
	default:
		return location.RoundCeil, errors.Errorf("unknown rounding policy: %s", s)
	}
}

// DirectionsFromConfig builds a direction set; an empty list yields the cardinal set
func DirectionsFromConfig(entries []config.DirectionConfig) (*direction.Set, error) {
	if len(entries) == 0 {
		return direction.Cardinal(), nil
	}

	directions := make([]direction.Direction, 0, len(entries))
	for _, entry := range entries {
		directions = append(directions, direction.Direction{
			Name:   entry.Name,
			Value:  entry.Value,
			Offset: direction.Offset{DX: entry.DX, DY: entry.DY},
		})
	}

	return direction.New(directions...)
}

// OptionsFromConfig translates the search section of the configuration
func OptionsFromConfig(cfg config.SearchConfig) ([]Option, error) {
	rounding, err := ParseRounding(cfg.Rounding)
	if err != nil {
		return nil, err
	}

	directions, err := DirectionsFromConfig(cfg.Directions)
	if err != nil {
		return nil, errors.Wrap(err, "search directions")
	}

	opts := []Option{
		WithBucketLimit(cfg.BucketLimit),
		WithRounding(rounding),
		WithDirections(directions),
		WithNudgeRounds(cfg.NudgeRounds),
	}
	if cfg.NotFoundCost > 0 {
		opts = append(opts, WithNotFoundCost(cfg.NotFoundCost))
	}

	return opts, nil
}
