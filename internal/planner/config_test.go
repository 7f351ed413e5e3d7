package planner

import (
	"testing"

	"cost-planner/config"
	"cost-planner/internal/direction"
	"cost-planner/internal/location"
	"cost-planner/internal/surface"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRounding(t *testing.T) {
	r, err := ParseRounding("Exact")
	require.NoError(t, err)
	assert.Equal(t, location.RoundExact, r)

	r, err = ParseRounding("")
	require.NoError(t, err)
	assert.Equal(t, location.RoundCeil, r)

	_, err = ParseRounding("floor")
	assert.Error(t, err)
}

func TestDirectionsFromConfig(t *testing.T) {
	set, err := DirectionsFromConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, 4, set.Len())

	set, err = DirectionsFromConfig([]config.DirectionConfig{
		{Name: "north", Value: 1, DY: -1},
		{Name: "south", Value: 2, DY: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"north", "south"}, set.Names())

	_, err = DirectionsFromConfig([]config.DirectionConfig{{Name: "still", Value: 1}})
	assert.True(t, errors.Is(err, direction.ErrInvalidDirection))
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default().Search
	cfg.BucketLimit = 3
	cfg.NotFoundCost = 500
	cfg.NudgeRounds = 2
	cfg.Directions = []config.DirectionConfig{{Name: "north", Value: 1, DY: -1}}

	opts, err := OptionsFromConfig(cfg)
	require.NoError(t, err)

	engine := NewEngine(surface.Uniform{}, opts...)
	assert.Equal(t, 500.0, engine.NotFoundCost())
	assert.Equal(t, 300, engine.Budget(location.New(0, 0), location.New(10, 0)))
	assert.Equal(t, []string{"north"}, engine.Directions().Names())

	cfg.Rounding = "sideways"
	_, err = OptionsFromConfig(cfg)
	assert.Error(t, err)
}
