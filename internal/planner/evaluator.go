// Package planner searches the plane for a cheap route between two points.
package planner

import (
	"context"
	"math"

	"cost-planner/internal/location"
	"cost-planner/internal/surface"

	"github.com/pkg/errors"
)

// ErrInvalidPath is returned when a path has fewer than two points
var ErrInvalidPath = errors.New("planner: path needs at least two points")

// Cost is the score of a path or of a single step
type Cost struct {
	Value    float64
	Degraded int // Oracle terms that were unavailable and counted as zero
}

// Evaluator scores steps and paths against a CostSurface and counts every
// oracle query it makes. An Evaluator is not safe for concurrent use.
type Evaluator struct {
	surface      surface.CostSurface
	notFoundCost float64
	rounding     location.Rounding
	evaluations  int
}

// NewEvaluator creates an Evaluator. Costs at or above notFoundCost mean "no path".
func NewEvaluator(s surface.CostSurface, notFoundCost float64, rounding location.Rounding) *Evaluator {
	if notFoundCost <= 0 || math.IsNaN(notFoundCost) || math.IsInf(notFoundCost, 0) {
		notFoundCost = DefaultNotFoundCost
	}
	return &Evaluator{surface: s, notFoundCost: notFoundCost, rounding: rounding}
}

// Evaluations returns the number of oracle queries made so far
func (e *Evaluator) Evaluations() int {
	return e.evaluations
}

// NotFoundCost returns the sentinel cost meaning "no acceptable path"
func (e *Evaluator) NotFoundCost() float64 {
	return e.notFoundCost
}

// NaiveCost is the cost of reaching goal from candidate, plus the cost of
// reaching candidate from source when source is given.
//
//   - nil candidate: 0 when goal is nil too, otherwise the not-found cost
//   - nil goal: the not-found cost
//   - candidate equal to goal: 0
//   - otherwise distance(candidate, goal) + obstruction(candidate, goal) + bend(candidate, goal)
//     + NaiveCost(source, candidate, nil)
func (e *Evaluator) NaiveCost(ctx context.Context, candidate, goal, source *location.Location) Cost {
	if candidate == nil {
		if goal == nil {
			return Cost{}
		}
		return Cost{Value: e.notFoundCost}
	}
	if goal == nil {
		return Cost{Value: e.notFoundCost}
	}
	if candidate.Equals(*goal) {
		return Cost{}
	}

	total := e.step(ctx, *candidate, *goal)
	if source != nil && total.Value < e.notFoundCost {
		total = e.add(total, e.step(ctx, *source, *candidate))
	}

	return total
}

// PathCost sums NaiveCost over consecutive waypoints, left to right. It stops
// querying the oracle once the running total saturates.
func (e *Evaluator) PathCost(ctx context.Context, path location.Path) (Cost, error) {
	if len(path) < 2 {
		return Cost{Value: e.notFoundCost}, errors.WithStack(ErrInvalidPath)
	}

	var total Cost
	for i := 0; i < len(path)-1; i++ {
		total = e.add(total, e.NaiveCost(ctx, &path[i], &path[i+1], nil))
		if total.Value >= e.notFoundCost {
			break
		}
	}

	return total, nil
}

// Move offsets point and adds the obstruction weight of the step to its weight
func (e *Evaluator) Move(ctx context.Context, point location.Location, dx, dy float64) location.Location {
	moved := point.Offset(dx, dy)

	weight, ok := e.query(ctx, e.surface.ObstructionWeight, point, moved)
	if !ok {
		return moved
	}

	w := moved.W + weight
	if math.IsInf(w, 0) || w >= e.notFoundCost {
		w = e.notFoundCost
	}
	return moved.WithWeight(w)
}

// step is the cost of the straight move from -> to, without history: the
// distance plus the obstruction weight and bend cost the oracle reports for
// the segment. The bend is not queried once the obstruction saturates.
func (e *Evaluator) step(ctx context.Context, from, to location.Location) Cost {
	if from.Equals(to) {
		return Cost{}
	}

	cost := Cost{Value: from.DistanceWith(to, e.rounding)}

	for _, q := range []oracleQuery{e.surface.ObstructionWeight, e.surface.BendCost} {
		value, ok := e.query(ctx, q, from, to)
		if !ok {
			cost.Degraded++
			continue
		}

		cost = e.saturate(Cost{Value: cost.Value + value, Degraded: cost.Degraded})
		if cost.Value >= e.notFoundCost {
			break
		}
	}

	return e.saturate(cost)
}

type oracleQuery func(ctx context.Context, a, b location.Location) (float64, error)

// query asks the oracle once. Errors and values that are negative or not
// finite all count as unavailable.
func (e *Evaluator) query(ctx context.Context, q oracleQuery, a, b location.Location) (float64, bool) {
	e.evaluations++

	value, err := q(ctx, a, b)
	if err != nil || value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

func (e *Evaluator) add(a, b Cost) Cost {
	return e.saturate(Cost{Value: a.Value + b.Value, Degraded: a.Degraded + b.Degraded})
}

func (e *Evaluator) saturate(c Cost) Cost {
	if math.IsNaN(c.Value) || math.IsInf(c.Value, 0) || c.Value >= e.notFoundCost {
		c.Value = e.notFoundCost
	}
	return c
}
