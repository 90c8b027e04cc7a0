package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmadata/jma-data-mcp/internal/api"
	"github.com/jmadata/jma-data-mcp/internal/api/models"
	"github.com/jmadata/jma-data-mcp/internal/mcpserver"
	"github.com/jmadata/jma-data-mcp/internal/observation"
	"github.com/jmadata/jma-data-mcp/internal/provider/resilience"
	"github.com/jmadata/jma-data-mcp/internal/station"
	"github.com/jmadata/jma-data-mcp/internal/tools"
	"github.com/jmadata/jma-data-mcp/internal/weather"
)

type emptyProvider struct{}

func (emptyProvider) Name() string { return "empty" }

func (emptyProvider) FetchObservations(context.Context, time.Time) (observation.RawSnapshot, error) {
	return observation.RawSnapshot{}, nil
}

func (emptyProvider) FetchForecast(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`[]`), nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dir, err := station.Bundled()
	require.NoError(t, err)

	registry := resilience.NewRegistry()
	cfg := resilience.DefaultClientConfig("jma")
	cfg.Registry = registry
	resilience.NewClient(cfg)

	svc := tools.NewService(tools.ServiceConfig{
		Directory: dir,
		Weather:   weather.NewService(weather.ServiceConfig{Provider: emptyProvider{}, Logger: zerolog.Nop()}),
		Logger:    zerolog.Nop(),
	})
	server := mcpserver.New(mcpserver.Config{Tools: svc, Version: "test", Logger: zerolog.Nop()})

	return api.NewRouter(api.RouterConfig{
		Version:   "test",
		BuildTime: "2025-01-01T00:00:00Z",
		Logger:    zerolog.New(io.Discard),
		MCP:       server.Handler(),
		Providers: registry,
		Stations:  dir.Len(),
	})
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	var health models.Health
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.Equal(t, "test", health.Version)
	assert.Equal(t, api.DefaultServiceName, health.Service)
	assert.Equal(t, 18, health.Stations)
	assert.False(t, health.Time.IsZero())
}

func TestRouter_Status(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)

	var status models.SystemStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, models.HealthStatusOK, status.Status)
	require.Len(t, status.Providers, 1)
	assert.Equal(t, "jma", status.Providers[0].Provider)
	assert.Equal(t, resilience.StatusHealthy, status.Providers[0].Status)
	assert.Equal(t, "closed", status.Providers[0].CircuitState)
}

func TestRouter_Ready(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_NotFound(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/unknown", http.NoBody))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var problem models.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, models.ProblemTypeNotFound, problem.Type)
	assert.Equal(t, "/v1/unknown", problem.Instance)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/ops/health", http.NoBody))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_MCPEndpoint(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t))
	defer srv.Close()

	ctx := context.Background()
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: srv.URL + "/mcp"}, nil)
	require.NoError(t, err)
	defer func() { _ = cs.Close() }()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_station_info",
		Arguments: map[string]any{"code": "62078"},
	})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	var st station.Station
	require.NoError(t, json.Unmarshal([]byte(text.Text), &st))
	assert.Equal(t, "Osaka", st.Name.En)
}
