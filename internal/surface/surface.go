// Package surface defines the cost oracle the planner queries and the
// implementations the service ships with.
package surface

import (
	"context"
	"sync/atomic"

	"cost-planner/internal/location"

	"github.com/pkg/errors"
)

// ErrCostUnavailable is returned when an oracle cannot answer a cost query
var ErrCostUnavailable = errors.New("surface: cost unavailable")

// CostSurface reports how expensive it is to move across the plane.
//
// Both methods must be deterministic for a fixed scene and return a finite,
// non-negative value, or an error wrapping ErrCostUnavailable. Implementations
// shared between searches must be safe for concurrent read-only use.
type CostSurface interface {
	// ObstructionWeight is the cost of traversing the straight segment from -> to
	ObstructionWeight(ctx context.Context, from, to location.Location) (float64, error)

	// BendCost is the extra cost of routing through a point on the way toward another
	BendCost(ctx context.Context, through, toward location.Location) (float64, error)
}

// Uniform reports the same costs everywhere
type Uniform struct {
	Obstruction float64
	Bend        float64
}

// ObstructionWeight implements CostSurface
func (u Uniform) ObstructionWeight(context.Context, location.Location, location.Location) (float64, error) {
	return u.Obstruction, nil
}

// BendCost implements CostSurface
func (u Uniform) BendCost(context.Context, location.Location, location.Location) (float64, error) {
	return u.Bend, nil
}

// CostFunc computes a cost for a pair of locations
type CostFunc func(a, b location.Location) float64

// Funcs adapts plain functions to CostSurface. A nil function reports the
// corresponding cost as unavailable.
type Funcs struct {
	Obstruction CostFunc
	Bend        CostFunc
}

// ObstructionWeight implements CostSurface
func (f Funcs) ObstructionWeight(_ context.Context, from, to location.Location) (float64, error) {
	if f.Obstruction == nil {
		return 0, errors.WithStack(ErrCostUnavailable)
	}
	return f.Obstruction(from, to), nil
}

// BendCost implements CostSurface
func (f Funcs) BendCost(_ context.Context, through, toward location.Location) (float64, error) {
	if f.Bend == nil {
		return 0, errors.WithStack(ErrCostUnavailable)
	}
	return f.Bend(through, toward), nil
}

// Counting wraps a surface and counts the queries made against it
type Counting struct {
	Surface CostSurface

	obstructionCalls atomic.Int64
	bendCalls        atomic.Int64
}

// NewCounting wraps s
func NewCounting(s CostSurface) *Counting {
	return &Counting{Surface: s}
}

// ObstructionWeight implements CostSurface
func (c *Counting) ObstructionWeight(ctx context.Context, from, to location.Location) (float64, error) {
	c.obstructionCalls.Add(1)
	return c.Surface.ObstructionWeight(ctx, from, to)
}

// BendCost implements CostSurface
func (c *Counting) BendCost(ctx context.Context, through, toward location.Location) (float64, error) {
	c.bendCalls.Add(1)
	return c.Surface.BendCost(ctx, through, toward)
}

// ObstructionCalls returns how many obstruction queries were made
func (c *Counting) ObstructionCalls() int64 {
	return c.obstructionCalls.Load()
}

// BendCalls returns how many bend queries were made
func (c *Counting) BendCalls() int64 {
	return c.bendCalls.Load()
}

// Calls returns the total number of queries made
func (c *Counting) Calls() int64 {
	return c.ObstructionCalls() + c.BendCalls()
}

// Reset zeroes the counters
func (c *Counting) Reset() {
	c.obstructionCalls.Store(0)
	c.bendCalls.Store(0)
}
