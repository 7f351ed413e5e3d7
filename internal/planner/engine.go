package planner

import (
	"context"
	"log/slog"
	"math"
	"time"

	"cost-planner/internal/direction"
	"cost-planner/internal/location"
	"cost-planner/internal/surface"

	"github.com/pkg/errors"
)

const (
	// DefaultNotFoundCost is a third of the largest exactly representable integer,
	// so sums of a few sentinel costs stay exact
	DefaultNotFoundCost = float64((1<<53)-1) / 3

	// DefaultBucketLimit scales the evaluation budget: distance² × bucketLimit
	DefaultBucketLimit = 20
)

// ErrNonFiniteLocation is returned when a search endpoint is NaN or infinite
var ErrNonFiniteLocation = errors.New("planner: location must be finite")

// Origin tells how a candidate path was produced
type Origin string

const (
	OriginDirect      Origin = "direct"
	OriginSubdivision Origin = "subdivision"
	OriginNudge       Origin = "nudge"
)

// StopReason tells why a search ended
type StopReason string

const (
	// StopExhausted means every candidate was generated and scored
	StopExhausted StopReason = "exhausted"
	// StopBudget means the next candidate would have exceeded the evaluation budget
	StopBudget StopReason = "budget"
	// StopCanceled means the context was done
	StopCanceled StopReason = "canceled"
)

// Candidate is a scored path, reported to observers as the search runs
type Candidate struct {
	Path        location.Path
	Cost        Cost
	Origin      Origin
	Improved    bool // Candidate became the best path so far
	Evaluations int  // Oracle queries made so far, including this candidate
}

// Result is the outcome of a search
type Result struct {
	Path        location.Path
	Cost        float64
	Found       bool // False when Cost reached the not-found sentinel
	Degraded    int
	Evaluations int
	Candidates  int
	Budget      int
	Stopped     StopReason
	Elapsed     time.Duration
}

// Option configures an Engine
type Option func(*Engine)

// WithNotFoundCost sets the sentinel cost; non-positive values are ignored
func WithNotFoundCost(cost float64) Option {
	return func(e *Engine) {
		if cost > 0 && !math.IsInf(cost, 0) {
			e.notFoundCost = cost
		}
	}
}

// WithBucketLimit sets the budget multiplier; values below 1 are ignored
func WithBucketLimit(limit int) Option {
	return func(e *Engine) {
		if limit >= 1 {
			e.bucketLimit = limit
		}
	}
}

// WithRounding sets how step distances are priced
func WithRounding(r location.Rounding) Option {
	return func(e *Engine) {
		e.rounding = r
	}
}

// WithDirections sets the directions waypoints may be nudged in
func WithDirections(set *direction.Set) Option {
	return func(e *Engine) {
		if set != nil {
			e.directions = set
		}
	}
}

// WithNudgeRounds enables local search: up to rounds candidate paths are
// expanded by moving their waypoints one unit in every direction
func WithNudgeRounds(rounds int) Option {
	return func(e *Engine) {
		if rounds >= 0 {
			e.nudgeRounds = rounds
		}
	}
}

// WithObserver registers a callback run synchronously after every scored candidate
func WithObserver(observer func(Candidate)) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine finds cheap paths across a CostSurface. Search state is private to
// each call, so an Engine may run concurrent searches when its surface allows
// concurrent queries.
type Engine struct {
	surface      surface.CostSurface
	directions   *direction.Set
	notFoundCost float64
	bucketLimit  int
	rounding     location.Rounding
	nudgeRounds  int
	observer     func(Candidate)
	logger       *slog.Logger
}

// NewEngine creates an Engine over s
func NewEngine(s surface.CostSurface, opts ...Option) *Engine {
	e := &Engine{
		surface:      s,
		directions:   direction.Cardinal(),
		notFoundCost: DefaultNotFoundCost,
		bucketLimit:  DefaultBucketLimit,
		rounding:     location.RoundCeil,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// With returns a copy of the engine with extra options applied
func (e *Engine) With(opts ...Option) *Engine {
	clone := *e
	for _, opt := range opts {
		opt(&clone)
	}
	return &clone
}

// Directions returns the direction set used for nudging and MoveOneUnit
func (e *Engine) Directions() *direction.Set {
	return e.directions
}

// NotFoundCost returns the sentinel cost meaning "no acceptable path"
func (e *Engine) NotFoundCost() float64 {
	return e.notFoundCost
}

// Budget returns the maximum number of oracle queries a search between the
// two points may make
func (e *Engine) Budget(source, destination location.Location) int {
	d := source.Distance(destination)
	b := d * d * float64(e.bucketLimit)
	if b >= math.MaxInt64 || math.IsNaN(b) {
		return math.MaxInt64
	}
	return int(b)
}

// MoveOneUnit moves point one unit in the named direction. The new point's
// weight grows by the obstruction weight of the step.
func (e *Engine) MoveOneUnit(ctx context.Context, point location.Location, name string) (location.Location, error) {
	offset, err := e.directions.Resolve(name)
	if err != nil {
		return location.Location{}, err
	}

	eval := NewEvaluator(e.surface, e.notFoundCost, e.rounding)
	return eval.Move(ctx, point, offset.DX, offset.DY), nil
}

// PathCost prices a fixed path with the engine's rounding and sentinel
func (e *Engine) PathCost(ctx context.Context, path location.Path) (Cost, error) {
	return NewEvaluator(e.surface, e.notFoundCost, e.rounding).PathCost(ctx, path)
}

// Search looks for the cheapest path from source to destination. It always
// returns the best path found; when ctx is done the partial result is
// returned together with ctx.Err().
func (e *Engine) Search(ctx context.Context, source, destination location.Location) (Result, error) {
	if !source.Finite() || !destination.Finite() {
		return Result{Cost: e.notFoundCost, Stopped: StopExhausted}, errors.WithStack(ErrNonFiniteLocation)
	}

	start := time.Now()
	s := e.newSearch(source, destination)

	e.logger.Debug("Search started",
		slog.String("source", source.String()),
		slog.String("destination", destination.String()),
		slog.Int("budget", s.budget),
	)

	err := s.run(ctx)
	result := s.result()
	result.Elapsed = time.Since(start)

	e.logger.Info("Search finished",
		slog.String("path", result.Path.String()),
		slog.Float64("cost", result.Cost),
		slog.Bool("found", result.Found),
		slog.Int("evaluations", result.Evaluations),
		slog.Int("candidates", result.Candidates),
		slog.String("stopped", string(result.Stopped)),
		slog.Duration("elapsed", result.Elapsed),
	)

	return result, err
}
