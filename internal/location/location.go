// Package location provides the weighted point value type used by the planner.
package location

import (
	"math"

	"github.com/pkg/errors"
)

// ErrZeroDenominator is returned by Split when asked to divide a segment into zero parts
var ErrZeroDenominator = errors.New("location: split denominator must not be zero")

// Rounding selects how Distance turns a Euclidean length into a cost
type Rounding int

const (
	// RoundCeil rounds distances up so a move is never under-priced
	RoundCeil Rounding = iota
	// RoundExact keeps the raw Euclidean distance
	RoundExact
)

// Location is a point in the plane with an accumulated obstruction weight.
// Values are immutable; every operation returns a new Location.
type Location struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"` // Obstruction weight, never negative
}

// New creates an unweighted location
func New(x, y float64) Location {
	return Location{X: x, Y: y}
}

// NewWeighted creates a location carrying an obstruction weight.
// Negative weights are clamped to zero.
func NewWeighted(x, y, w float64) Location {
	if w < 0 || math.IsNaN(w) {
		w = 0
	}
	return Location{X: x, Y: y, W: w}
}

// Distance returns the Euclidean distance to other rounded up to the nearest integer
func (l Location) Distance(other Location) float64 {
	return l.DistanceWith(other, RoundCeil)
}

// DistanceWith returns the Euclidean distance to other using the given rounding policy
func (l Location) DistanceWith(other Location, rounding Rounding) float64 {
	// Hypot is symmetric in its arguments' sign, so a.Distance(b) == b.Distance(a)
	d := math.Hypot(other.X-l.X, other.Y-l.Y)
	if rounding == RoundExact {
		return d
	}
	return math.Ceil(d)
}

// Sum adds the coordinates of both locations, keeping the larger weight
func (l Location) Sum(other Location) Location {
	w := other.W
	if l.W > other.W {
		w = l.W
	}
	return Location{X: other.X + l.X, Y: other.Y + l.Y, W: w}
}

// Difference returns other minus l, keeping the smaller (or equal) weight
func (l Location) Difference(other Location) Location {
	w := other.W
	if l.W <= other.W {
		w = l.W
	}
	return Location{X: other.X - l.X, Y: other.Y - l.Y, W: w}
}

// Interpolate returns the point at fraction along the segment from l to other.
// The weight grows by other's weight scaled by the same fraction.
func (l Location) Interpolate(other Location, fraction float64) Location {
	return Location{
		X: l.X + (other.X-l.X)*fraction,
		Y: l.Y + (other.Y-l.Y)*fraction,
		W: l.W + other.W*fraction,
	}
}

// Split is Interpolate at numerator/denominator
func (l Location) Split(other Location, numerator, denominator float64) (Location, error) {
	if denominator == 0 {
		return Location{}, errors.WithStack(ErrZeroDenominator)
	}
	return Location{
		X: l.X + ((other.X-l.X)*numerator)/denominator,
		Y: l.Y + ((other.Y-l.Y)*numerator)/denominator,
		W: l.W + (other.W*numerator)/denominator,
	}, nil
}

// Equals compares coordinates only; weights are ignored
func (l Location) Equals(other Location) bool {
	return l.X == other.X && l.Y == other.Y
}

// Offset moves the location by dx, dy without touching its weight
func (l Location) Offset(dx, dy float64) Location {
	return Location{X: l.X + dx, Y: l.Y + dy, W: l.W}
}

// WithWeight returns a copy of l carrying weight w
func (l Location) WithWeight(w float64) Location {
	return NewWeighted(l.X, l.Y, w)
}

// Finite reports whether both coordinates are finite numbers
func (l Location) Finite() bool {
	return !math.IsNaN(l.X) && !math.IsInf(l.X, 0) && !math.IsNaN(l.Y) && !math.IsInf(l.Y, 0)
}

// Key identifies a location by its coordinates, for use in visited sets
func (l Location) Key() Key {
	return Key{X: l.X, Y: l.Y}
}

// Key is the coordinate-only identity of a Location
type Key struct {
	X, Y float64
}
