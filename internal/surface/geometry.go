package surface

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// segment is a straight line between two points
type segment struct {
	P1, P2 orb.Point
}

func newSegment(from, to orb.Point) segment {
	return segment{P1: from, P2: to}
}

// midpoint of the segment
func (s segment) midpoint() orb.Point {
	return orb.Point{(s.P1[0] + s.P2[0]) / 2, (s.P1[1] + s.P2[1]) / 2}
}

// bound of the segment
func (s segment) bound() orb.Bound {
	return orb.MultiPoint{s.P1, s.P2}.Bound()
}

// segmentsIntersect checks if two segments cross. Segments that only share an
// endpoint are not reported as crossing.
func segmentsIntersect(seg1, seg2 segment) bool {
	p1, p2 := seg1.P1, seg1.P2
	p3, p4 := seg2.P1, seg2.P2

	if p1 == p3 || p1 == p4 || p2 == p3 || p2 == p4 {
		return false
	}

	d1 := orientation(p3, p4, p1)
	d2 := orientation(p3, p4, p2)
	d3 := orientation(p1, p2, p3)
	d4 := orientation(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear cases
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}

	return false
}

// orientation is the cross product of (p2-p1) and (p3-p1), sign flipped
func orientation(p1, p2, p3 orb.Point) float64 {
	return (p3[0]-p1[0])*(p2[1]-p1[1]) - (p2[0]-p1[0])*(p3[1]-p1[1])
}

// onSegment checks if q lies within the bounding box of segment pr
func onSegment(p, r, q orb.Point) bool {
	return q[0] <= math.Max(p[0], r[0]) && q[0] >= math.Min(p[0], r[0]) &&
		q[1] <= math.Max(p[1], r[1]) && q[1] >= math.Min(p[1], r[1])
}

// segmentCrossesRing checks the segment against every edge of the ring
func segmentCrossesRing(seg segment, ring orb.Ring) bool {
	n := len(ring)
	if n < 2 {
		return false
	}

	for i := 0; i < n-1; i++ {
		if segmentsIntersect(seg, segment{P1: ring[i], P2: ring[i+1]}) {
			return true
		}
	}

	// Open rings still have a closing edge
	if !ring.Closed() {
		return segmentsIntersect(seg, segment{P1: ring[n-1], P2: ring[0]})
	}

	return false
}

// segmentIntersectsPolygon reports whether the segment crosses the polygon's
// boundary or lies, even partly, inside it.
func segmentIntersectsPolygon(seg segment, polygon orb.Polygon) bool {
	for _, ring := range polygon {
		if segmentCrossesRing(seg, ring) {
			return true
		}
	}

	if planar.PolygonContains(polygon, seg.P1) || planar.PolygonContains(polygon, seg.P2) {
		return true
	}

	// A segment entirely inside crosses no edge and may end on the boundary
	return planar.PolygonContains(polygon, seg.midpoint())
}
