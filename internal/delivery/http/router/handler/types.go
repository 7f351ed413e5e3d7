package handler

import (
	"cost-planner/internal/location"
	"cost-planner/internal/planner"
)

// Point is a location in a request body. Coordinates are required; the
// weight defaults to zero.
type Point struct {
	X *float64 `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
	W float64  `json:"w" validate:"gte=0"`
}

func (p Point) location() location.Location {
	return location.NewWeighted(*p.X, *p.Y, p.W)
}

// RouteRequest asks for the cheapest path between two points
type RouteRequest struct {
	Source      Point `json:"source"`
	Destination Point `json:"destination"`
	NudgeRounds *int  `json:"nudgeRounds" validate:"omitempty,gte=0"`
}

// MoveRequest asks to move a point one unit in a named direction
type MoveRequest struct {
	From      Point  `json:"from"`
	Direction string `json:"direction" validate:"required"`
}

// DecodeRequest carries a serialized location sequence
type DecodeRequest struct {
	Encoded string `json:"encoded" validate:"required"`
}

// RouteResponse is the outcome of a search
type RouteResponse struct {
	RequestID   string              `json:"requestId"`
	Path        []location.Location `json:"path"`
	Encoded     string              `json:"encoded"`
	Cost        float64             `json:"cost"`
	Found       bool                `json:"found"`
	Degraded    int                 `json:"degraded"`
	Evaluations int                 `json:"evaluations"`
	Candidates  int                 `json:"candidates"`
	Budget      int                 `json:"budget"`
	Stopped     string              `json:"stopped"`
	ElapsedMs   int64               `json:"elapsedMs"`
}

func newRouteResponse(requestID string, result planner.Result) RouteResponse {
	return RouteResponse{
		RequestID:   requestID,
		Path:        []location.Location(result.Path),
		Encoded:     result.Path.String(),
		Cost:        result.Cost,
		Found:       result.Found,
		Degraded:    result.Degraded,
		Evaluations: result.Evaluations,
		Candidates:  result.Candidates,
		Budget:      result.Budget,
		Stopped:     string(result.Stopped),
		ElapsedMs:   result.Elapsed.Milliseconds(),
	}
}

// MoveResponse is a moved location
type MoveResponse struct {
	Location location.Location `json:"location"`
	Encoded  string            `json:"encoded"`
}

// DecodeResponse lists decoded locations in input order
type DecodeResponse struct {
	Locations []location.Location `json:"locations"`
}

// CandidateView is one scored candidate sent over the stream
type CandidateView struct {
	Path        []location.Location `json:"path"`
	Encoded     string              `json:"encoded"`
	Cost        float64             `json:"cost"`
	Degraded    int                 `json:"degraded"`
	Origin      string              `json:"origin"`
	Improved    bool                `json:"improved"`
	Evaluations int                 `json:"evaluations"`
}

func newCandidateView(c planner.Candidate) CandidateView {
	return CandidateView{
		Path:        []location.Location(c.Path),
		Encoded:     c.Path.PathString(),
		Cost:        c.Cost.Value,
		Degraded:    c.Cost.Degraded,
		Origin:      string(c.Origin),
		Improved:    c.Improved,
		Evaluations: c.Evaluations,
	}
}

// Stream message types
const (
	MessageCandidate = "candidate"
	MessageResult    = "result"
)

// StreamMessage is one JSON frame of /route/stream
type StreamMessage struct {
	Type      string         `json:"type"`
	Candidate *CandidateView `json:"candidate,omitempty"`
	Result    *RouteResponse `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// HealthResponse reports service status
type HealthResponse struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	Obstacles     int    `json:"obstacles"`
	CacheEnabled  bool   `json:"cacheEnabled"`
	CachedAnswers int    `json:"cachedAnswers"`
}
