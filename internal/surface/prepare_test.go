package surface

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveContainedPolygons(t *testing.T) {
	outer := square(0, 0, 10)
	inner := square(1, 1, 2)
	apart := square(50, 50, 1)

	tests := []struct {
		name  string
		input []orb.Polygon
		want  []orb.Polygon
	}{
		{name: "empty", input: nil, want: nil},
		{name: "single", input: []orb.Polygon{inner}, want: []orb.Polygon{inner}},
		{name: "inner after outer", input: []orb.Polygon{outer, inner}, want: []orb.Polygon{outer}},
		{name: "inner before outer", input: []orb.Polygon{inner, outer}, want: []orb.Polygon{outer}},
		{name: "disjoint kept", input: []orb.Polygon{outer, apart}, want: []orb.Polygon{outer, apart}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveContainedPolygons(tt.input))
		})
	}
}

func TestSimplifyPolygons_DropsCollinearVertices(t *testing.T) {
	noisy := orb.Polygon{orb.Ring{
		{0, 0}, {5, 0.01}, {10, 0}, {10, 10}, {5, 10.01}, {0, 10}, {0, 0},
	}}

	result := SimplifyPolygons([]orb.Polygon{noisy}, 0.5)
	require.Len(t, result, 1)
	assert.Len(t, result[0][0], 5)

	// Input is left untouched
	assert.Len(t, noisy[0], 7)
}

func TestSimplifyPolygons_KeepsCollapsedPolygon(t *testing.T) {
	tiny := square(0, 0, 0.1)

	result := SimplifyPolygons([]orb.Polygon{tiny}, 100)
	require.Len(t, result, 1)
	assert.Equal(t, tiny, result[0])
}

func TestPreparePolygons(t *testing.T) {
	polygons := []orb.Polygon{square(0, 0, 10), square(1, 1, 2)}

	prepared := PreparePolygons(polygons, PrepareOptions{RemoveContained: true})
	assert.Len(t, prepared, 1)

	untouched := PreparePolygons(polygons, PrepareOptions{})
	assert.Equal(t, polygons, untouched)
}

func TestEstimateSimplificationEpsilon(t *testing.T) {
	tests := []struct {
		vertices int
		want     float64
	}{
		{0, 0},
		{10, 1},
		{1500, 2},
		{2500, 3},
		{6000, 5},
		{60000, 20},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EstimateSimplificationEpsilon(tt.vertices), "vertices=%d", tt.vertices)
	}
}
