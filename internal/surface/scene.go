package surface

import (
	"context"

	"cost-planner/internal/location"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// Rect padding for degenerate (zero width or height) bounds, which rtreego rejects
const minRectSide = 1e-9

// Default R-tree branching, matching a few hundred to a few thousand obstacles
const (
	DefaultIndexMinChildren = 25
	DefaultIndexMaxChildren = 50
)

// obstacle wraps a polygon for R-tree storage
type obstacle struct {
	polygon orb.Polygon
	bound   orb.Bound
	rect    rtreego.Rect
}

// Bounds implements rtreego.Spatial
func (o *obstacle) Bounds() rtreego.Rect {
	return o.rect
}

// bendPenalty is half the bounding box perimeter, plus one half so a point
// obstacle still costs something to route around
func (o *obstacle) bendPenalty() float64 {
	return (o.bound.Max[0] - o.bound.Min[0] + o.bound.Max[1] - o.bound.Min[1] + 1) / 2
}

// SceneOptions tunes the obstacle index
type SceneOptions struct {
	IndexMinChildren int
	IndexMaxChildren int
}

// Scene is a CostSurface backed by polygon obstacles. Obstruction weight is the
// number of obstacles a segment crosses; bend cost grows with the size of the
// obstacles crossed. A Scene is immutable and safe for concurrent use.
type Scene struct {
	tree      *rtreego.Rtree
	obstacles []*obstacle
	bound     orb.Bound
}

// NewScene indexes the given polygons. Empty polygons are ignored.
func NewScene(polygons []orb.Polygon, opts SceneOptions) *Scene {
	minChildren, maxChildren := opts.IndexMinChildren, opts.IndexMaxChildren
	if minChildren <= 0 || maxChildren <= minChildren {
		minChildren, maxChildren = DefaultIndexMinChildren, DefaultIndexMaxChildren
	}

	scene := &Scene{
		tree: rtreego.NewTree(2, minChildren, maxChildren),
	}

	for _, polygon := range polygons {
		if len(polygon) == 0 || len(polygon[0]) == 0 {
			continue
		}

		bound := polygon.Bound()
		rect, err := boundToRect(bound)
		if err != nil {
			continue
		}

		entry := &obstacle{polygon: polygon, bound: bound, rect: rect}
		if len(scene.obstacles) == 0 {
			scene.bound = bound
		} else {
			scene.bound = scene.bound.Union(bound)
		}
		scene.obstacles = append(scene.obstacles, entry)
		scene.tree.Insert(entry)
	}

	return scene
}

// Len returns the number of indexed obstacles
func (s *Scene) Len() int {
	return len(s.obstacles)
}

// Bound returns the bounding box of all obstacles
func (s *Scene) Bound() orb.Bound {
	return s.bound
}

// ObstructionWeight implements CostSurface
func (s *Scene) ObstructionWeight(_ context.Context, from, to location.Location) (float64, error) {
	return float64(len(s.crossed(from, to))), nil
}

// BendCost implements CostSurface
func (s *Scene) BendCost(_ context.Context, through, toward location.Location) (float64, error) {
	cost := 0.0
	for _, o := range s.crossed(through, toward) {
		cost += o.bendPenalty()
	}
	return cost, nil
}

// crossed returns the obstacles the segment from -> to intersects
func (s *Scene) crossed(from, to location.Location) []*obstacle {
	if len(s.obstacles) == 0 {
		return nil
	}

	seg := newSegment(toPoint(from), toPoint(to))
	rect, err := boundToRect(seg.bound())
	if err != nil {
		return nil
	}

	var hits []*obstacle
	for _, item := range s.tree.SearchIntersect(rect) {
		o := item.(*obstacle)
		if segmentIntersectsPolygon(seg, o.polygon) {
			hits = append(hits, o)
		}
	}

	return hits
}

// QueryRegion returns the obstacles whose bounds intersect the given box
func (s *Scene) QueryRegion(bound orb.Bound) []orb.Polygon {
	rect, err := boundToRect(bound)
	if err != nil {
		return []orb.Polygon{}
	}

	results := s.tree.SearchIntersect(rect)
	polygons := make([]orb.Polygon, 0, len(results))
	for _, item := range results {
		polygons = append(polygons, item.(*obstacle).polygon)
	}

	return polygons
}

// boundToRect converts an orb bound to an R-tree rectangle
func boundToRect(bound orb.Bound) (rtreego.Rect, error) {
	width := bound.Max[0] - bound.Min[0]
	height := bound.Max[1] - bound.Min[1]
	if width < minRectSide {
		width = minRectSide
	}
	if height < minRectSide {
		height = minRectSide
	}

	return rtreego.NewRect(
		rtreego.Point{bound.Min[0], bound.Min[1]},
		[]float64{width, height},
	)
}

func toPoint(l location.Location) orb.Point {
	return orb.Point{l.X, l.Y}
}
