package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"cost-planner/config"
	"cost-planner/internal/delivery/http/middleware"
	"cost-planner/internal/delivery/http/router"
	"cost-planner/internal/delivery/http/router/handler"
	"cost-planner/internal/planner"
	"cost-planner/internal/surface"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(t *testing.T, s surface.CostSurface) *echo.Echo {
	t.Helper()

	cfg := config.Default()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := planner.NewEngine(s, planner.WithLogger(logger))

	return NewEcho(cfg, logger, router.RouterParams{
		RouteHandler: handler.NewRouteHandler(handler.RouteHandlerParams{
			Engine: engine,
			Config: cfg,
			Logger: logger,
		}),
		HealthHandler: handler.NewHealthHandler(handler.HealthHandlerParams{
			Config: cfg,
			Logger: logger,
			Scene:  surface.NewScene(nil, surface.SceneOptions{}),
		}),
	})
}

func TestServer_RequestID(t *testing.T) {
	e := newTestEcho(t, surface.Uniform{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.HeaderXRequestID))

	req = httptest.NewRequest(http.MethodPost, "/route", strings.NewReader(`{"source":{"x":0,"y":0},"destination":{"x":3,"y":4}}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(middleware.HeaderXRequestID, "fixed-id")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fixed-id", rec.Header().Get(middleware.HeaderXRequestID))
	assert.Contains(t, rec.Body.String(), `"requestId":"fixed-id"`)
}

func TestServer_UnknownRoute(t *testing.T) {
	e := newTestEcho(t, surface.Uniform{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestServer_Stream(t *testing.T) {
	server := httptest.NewServer(newTestEcho(t, surface.Uniform{}))
	defer server.Close()

	query := url.Values{"from": {"0,0:"}, "to": {"6,0:"}}
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/route/stream?" + query.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	candidates := 0
	var final handler.StreamMessage
	for {
		var msg handler.StreamMessage
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == handler.MessageCandidate {
			require.NotNil(t, msg.Candidate)
			candidates++
			continue
		}
		final = msg
		break
	}

	assert.Equal(t, handler.MessageResult, final.Type)
	assert.Empty(t, final.Error)
	require.NotNil(t, final.Result)
	assert.Equal(t, 6.0, final.Result.Cost)
	assert.Equal(t, final.Result.Candidates, candidates)
}

func TestServer_Stream_RejectsMalformedQuery(t *testing.T) {
	e := newTestEcho(t, surface.Uniform{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/route/stream?from=x,y:&to=1,1:", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "MALFORMED_LOCATION", body["error"].(map[string]any)["code"])
}
