package handler

import (
	"context"
	"log/slog"
	"net/http"

	"cost-planner/config"
	"cost-planner/internal/delivery/http/middleware"
	"cost-planner/internal/delivery/http/response"
	"cost-planner/internal/direction"
	"cost-planner/internal/location"
	"cost-planner/internal/planner"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type RouteHandlerParams struct {
	fx.In

	Engine *planner.Engine
	Config *config.Config
	Logger *slog.Logger
}

// RouteHandler serves path searches and the location utilities around them
type RouteHandler struct {
	engine   *planner.Engine
	search   config.SearchConfig
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewRouteHandler creates a RouteHandler
func NewRouteHandler(params RouteHandlerParams) *RouteHandler {
	return &RouteHandler{
		engine: params.Engine,
		search: params.Config.Search,
		logger: params.Logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// FindRoute handles POST /route
func (h *RouteHandler) FindRoute(c echo.Context) error {
	var req RouteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	ctx, cancel := h.searchContext(c.Request().Context())
	defer cancel()

	result, err := h.engineFor(c, req.NudgeRounds).Search(ctx, req.Source.location(), req.Destination.location())
	if err != nil {
		return h.searchError(c, err)
	}

	return response.Success(c, http.StatusOK, newRouteResponse(middleware.GetRequestID(c), result), "")
}

// MoveOneUnit handles POST /move
func (h *RouteHandler) MoveOneUnit(c echo.Context) error {
	var req MoveRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	moved, err := h.engine.MoveOneUnit(c.Request().Context(), req.From.location(), req.Direction)
	if errors.Is(err, direction.ErrUnknownDirection) {
		return response.BadRequest(c, response.CodeUnknownDirection, "Unknown direction", err.Error())
	}
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, MoveResponse{Location: moved, Encoded: moved.String()}, "")
}

// Decode handles POST /decode
func (h *RouteHandler) Decode(c echo.Context) error {
	var req DecodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	locations, err := location.Decode(req.Encoded)
	if err != nil {
		return response.BadRequest(c, response.CodeMalformedLocation, "Malformed location", err.Error())
	}

	return response.Success(c, http.StatusOK, DecodeResponse{Locations: locations}, "")
}

// Stream handles GET /route/stream?from=<enc>&to=<enc>&nudge=<n>. The
// connection is upgraded to a WebSocket that receives every scored candidate
// followed by the final result.
func (h *RouteHandler) Stream(c echo.Context) error {
	from, err := location.DecodeOne(c.QueryParam("from"))
	if err != nil {
		return response.BadRequest(c, response.CodeMalformedLocation, "Malformed source", err.Error())
	}
	to, err := location.DecodeOne(c.QueryParam("to"))
	if err != nil {
		return response.BadRequest(c, response.CodeMalformedLocation, "Malformed destination", err.Error())
	}

	var nudge *int
	if c.QueryParam("nudge") != "" {
		var n int
		if err := echo.QueryParamsBinder(c).Int("nudge", &n).BindError(); err != nil || n < 0 {
			return response.ValidationError(c, "nudge must be a non-negative integer")
		}
		nudge = &n
	}

	logger := middleware.GetLogger(c, h.logger)

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already replied with an HTTP error
		logger.Warn("WebSocket upgrade failed", slog.Any("error", err))
		return nil
	}
	defer conn.Close()

	ctx, cancel := h.searchContext(context.Background())
	defer cancel()

	// Reading is the only way to notice the client going away
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var writeErr error
	observer := func(candidate planner.Candidate) {
		if writeErr != nil {
			return
		}
		view := newCandidateView(candidate)
		if writeErr = conn.WriteJSON(StreamMessage{Type: MessageCandidate, Candidate: &view}); writeErr != nil {
			cancel()
		}
	}

	result, err := h.engineFor(c, nudge).With(planner.WithObserver(observer)).Search(ctx, from, to)
	if writeErr != nil {
		logger.Info("Stream client went away", slog.Any("error", writeErr))
		return nil
	}

	final := newRouteResponse(middleware.GetRequestID(c), result)
	msg := StreamMessage{Type: MessageResult, Result: &final}
	if err != nil {
		msg.Error = err.Error()
	}
	if err := conn.WriteJSON(msg); err != nil {
		logger.Info("Failed to send stream result", slog.Any("error", err))
		return nil
	}

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return nil
}

// engineFor returns the engine with the request logger and nudge override applied
func (h *RouteHandler) engineFor(c echo.Context, nudgeRounds *int) *planner.Engine {
	opts := []planner.Option{planner.WithLogger(middleware.GetLogger(c, h.logger))}
	if nudgeRounds != nil {
		rounds := *nudgeRounds
		if h.search.MaxNudgeRounds > 0 && rounds > h.search.MaxNudgeRounds {
			rounds = h.search.MaxNudgeRounds
		}
		opts = append(opts, planner.WithNudgeRounds(rounds))
	}
	return h.engine.With(opts...)
}

func (h *RouteHandler) searchContext(parent context.Context) (context.Context, context.CancelFunc) {
	if h.search.Timeout > 0 {
		return context.WithTimeout(parent, h.search.Timeout)
	}
	return context.WithCancel(parent)
}

func (h *RouteHandler) searchError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c, response.CodeSearchTimeout, "Search timed out")
	case errors.Is(err, planner.ErrNonFiniteLocation):
		return response.BadRequest(c, response.CodeInvalidLocation, "Invalid location", err.Error())
	default:
		return err
	}
}
