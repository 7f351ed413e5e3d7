package surface

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// PrepareOptions controls obstacle preprocessing before indexing
type PrepareOptions struct {
	// SimplifyEpsilon is the Douglas-Peucker threshold; 0 disables simplification
	SimplifyEpsilon float64
	// AutoSimplify picks the threshold from the total vertex count
	AutoSimplify bool
	// RemoveContained drops polygons that lie entirely inside another polygon
	RemoveContained bool
}

// PreparePolygons simplifies polygons and removes nested ones according to opts.
// Contained obstacles never change which segments cross the scene, but they do
// inflate obstruction counts, so removing them is usually what callers want.
func PreparePolygons(polygons []orb.Polygon, opts PrepareOptions) []orb.Polygon {
	epsilon := opts.SimplifyEpsilon
	if opts.AutoSimplify {
		epsilon = EstimateSimplificationEpsilon(countVertices(polygons))
	}

	prepared := polygons
	if epsilon > 0 {
		prepared = SimplifyPolygons(prepared, epsilon)
	}
	if opts.RemoveContained {
		prepared = RemoveContainedPolygons(prepared)
	}

	return prepared
}

// SimplifyPolygons reduces polygon complexity with Douglas-Peucker. A polygon
// whose outer ring would collapse below a triangle is kept unchanged.
func SimplifyPolygons(polygons []orb.Polygon, epsilon float64) []orb.Polygon {
	simplifier := simplify.DouglasPeucker(epsilon)

	simplified := make([]orb.Polygon, len(polygons))
	for i, polygon := range polygons {
		simplified[i] = polygon

		result, ok := simplifier.Simplify(polygon.Clone()).(orb.Polygon)
		if !ok || len(result) == 0 || len(result[0]) < 4 {
			continue
		}
		simplified[i] = result
	}

	return simplified
}

// RemoveContainedPolygons removes polygons fully contained within other polygons
func RemoveContainedPolygons(polygons []orb.Polygon) []orb.Polygon {
	if len(polygons) <= 1 {
		return polygons
	}

	bounds := make([]orb.Bound, len(polygons))
	for i, polygon := range polygons {
		bounds[i] = polygon.Bound()
	}

	contained := make([]bool, len(polygons))
	for i := range polygons {
		if contained[i] {
			continue
		}

		for j := range polygons {
			if i == j || contained[j] {
				continue
			}

			if isPolygonContainedIn(polygons[i], bounds[i], polygons[j], bounds[j]) {
				contained[i] = true
				break
			}
			if isPolygonContainedIn(polygons[j], bounds[j], polygons[i], bounds[i]) {
				contained[j] = true
			}
		}
	}

	result := make([]orb.Polygon, 0, len(polygons))
	for i, polygon := range polygons {
		if !contained[i] {
			result = append(result, polygon)
		}
	}

	return result
}

// isPolygonContainedIn checks if every outer vertex of a lies inside b
func isPolygonContainedIn(a orb.Polygon, aBound orb.Bound, b orb.Polygon, bBound orb.Bound) bool {
	if len(a) == 0 || len(b) == 0 || len(a[0]) == 0 || len(b[0]) == 0 {
		return false
	}

	// Quick bounding box check first
	if !bBound.Contains(aBound.Min) || !bBound.Contains(aBound.Max) {
		return false
	}

	for _, vertex := range a[0] {
		if !planar.PolygonContains(b, vertex) {
			return false
		}
	}

	return true
}

// EstimateSimplificationEpsilon suggests a planar threshold from the vertex count.
// Larger scenes tolerate coarser outlines.
func EstimateSimplificationEpsilon(vertexCount int) float64 {
	switch {
	case vertexCount > 50000:
		return 20.0
	case vertexCount > 30000:
		return 15.0
	case vertexCount > 20000:
		return 10.0
	case vertexCount > 10000:
		return 7.0
	case vertexCount > 5000:
		return 5.0
	case vertexCount > 2000:
		return 3.0
	case vertexCount > 1000:
		return 2.0
	case vertexCount > 0:
		return 1.0
	default:
		return 0
	}
}

func countVertices(polygons []orb.Polygon) int {
	total := 0
	for _, polygon := range polygons {
		for _, ring := range polygon {
			total += len(ring)
		}
	}
	return total
}
