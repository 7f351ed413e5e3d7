package planner

import (
	"context"

	"cost-planner/internal/location"
)

// search holds the state of one Search call
type search struct {
	engine      *Engine
	eval        *Evaluator
	source      location.Location
	destination location.Location
	distance    float64
	budget      int

	visited map[location.Key]struct{}
	tried   map[string]struct{}

	best       location.Path
	bestCost   Cost
	candidates int
	stopped    StopReason

	frontier *frontier // nil unless nudging is enabled
}

func (e *Engine) newSearch(source, destination location.Location) *search {
	s := &search{
		engine:      e,
		eval:        NewEvaluator(e.surface, e.notFoundCost, e.rounding),
		source:      source,
		destination: destination,
		distance:    source.Distance(destination),
		budget:      e.Budget(source, destination),
		visited:     map[location.Key]struct{}{source.Key(): {}},
		tried:       make(map[string]struct{}),
		stopped:     StopExhausted,
	}
	if e.nudgeRounds > 0 {
		s.frontier = newFrontier()
	}
	return s
}

func (s *search) run(ctx context.Context) error {
	direct := location.Path{s.source, s.destination}
	s.best = direct
	s.bestCost = s.score(ctx, direct)
	s.record(direct, s.bestCost, OriginDirect)

	if err := s.subdivide(ctx); err != nil {
		return err
	}
	if s.stopped != StopExhausted || s.frontier == nil {
		return nil
	}
	return s.nudge(ctx)
}

// subdivide scores the straight line split into n equal segments, for every n
// below the distance between the endpoints
func (s *search) subdivide(ctx context.Context) error {
	for n := 0; float64(n) < s.distance; n++ {
		if err := ctx.Err(); err != nil {
			s.stopped = StopCanceled
			return err
		}

		candidate := s.split(n)
		if s.seen(candidate) {
			continue
		}
		if !s.affordable(2 * (len(candidate) - 1)) {
			s.stopped = StopBudget
			return nil
		}

		s.record(candidate, s.score(ctx, candidate), OriginSubdivision)
	}
	return nil
}

// split places n-1 evenly spaced waypoints between source and destination
func (s *search) split(n int) location.Path {
	path := make(location.Path, 0, max(n, 1)+1)
	path = append(path, s.source)
	for i := 1; i < n; i++ {
		// n > 1 here, so the denominator is never zero
		waypoint, _ := s.source.Split(s.destination, float64(i), float64(n))
		path = append(path, waypoint)
	}
	return append(path, s.destination)
}

// nudge expands the cheapest scored paths by moving each interior waypoint
// one unit in every direction
func (s *search) nudge(ctx context.Context) error {
	directions := s.engine.directions.Directions()

	for round := 0; round < s.engine.nudgeRounds && s.frontier.len() > 0; round++ {
		path, _ := s.frontier.pop()

		for i := 1; i < len(path)-1; i++ {
			for _, d := range directions {
				if err := ctx.Err(); err != nil {
					s.stopped = StopCanceled
					return err
				}

				target := path[i].Offset(d.Offset.DX, d.Offset.DY)
				if _, ok := s.visited[target.Key()]; ok || target.Equals(s.destination) {
					continue
				}

				// Two queries per segment
				if !s.affordable(2 * (len(path) - 1)) {
					s.stopped = StopBudget
					return nil
				}

				// score prices the obstruction of the new segments
				candidate := path.Clone()
				candidate[i] = target
				if s.seen(candidate) {
					continue
				}

				s.record(candidate, s.score(ctx, candidate), OriginNudge)
			}
		}
	}
	return nil
}

func (s *search) score(ctx context.Context, path location.Path) Cost {
	// Paths built here always have both endpoints
	cost, _ := s.eval.PathCost(ctx, path)
	return cost
}

func (s *search) seen(path location.Path) bool {
	_, ok := s.tried[path.Signature()]
	return ok
}

func (s *search) affordable(evaluations int) bool {
	return s.eval.Evaluations()+evaluations <= s.budget
}

// record marks a scored path as tried and keeps it if it beats the best so far
func (s *search) record(path location.Path, cost Cost, origin Origin) {
	s.tried[path.Signature()] = struct{}{}
	for _, waypoint := range path[1 : len(path)-1] {
		s.visited[waypoint.Key()] = struct{}{}
	}
	s.candidates++

	improved := cost.Value < s.bestCost.Value ||
		(cost.Value == s.bestCost.Value && cost.Degraded < s.bestCost.Degraded)
	if improved {
		s.best = path
		s.bestCost = cost
	}

	if s.frontier != nil {
		s.frontier.push(path, cost)
	}

	if s.engine.observer != nil {
		s.engine.observer(Candidate{
			Path:        path.Clone(),
			Cost:        cost,
			Origin:      origin,
			Improved:    improved || origin == OriginDirect,
			Evaluations: s.eval.Evaluations(),
		})
	}
}

func (s *search) result() Result {
	return Result{
		Path:        s.best.Clone(),
		Cost:        s.bestCost.Value,
		Found:       s.bestCost.Value < s.eval.NotFoundCost(),
		Degraded:    s.bestCost.Degraded,
		Evaluations: s.eval.Evaluations(),
		Candidates:  s.candidates,
		Budget:      s.budget,
		Stopped:     s.stopped,
	}
}
