package jma_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmadata/jma-data-mcp/internal/provider/resilience"
	"github.com/jmadata/jma-data-mcp/internal/telemetry"
	"github.com/jmadata/jma-data-mcp/internal/weather"
	"github.com/jmadata/jma-data-mcp/internal/weather/jma"
)

func newTestClient(t *testing.T, handler http.Handler) *jma.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := resilience.DefaultClientConfig("test")
	cfg.MaxRetries = 0
	cfg.InitialInterval = time.Millisecond

	metrics, err := telemetry.NewProviderMetrics(jma.ProviderName)
	require.NoError(t, err)

	return jma.NewClient(jma.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(cfg),
		Metrics:    metrics,
	})
}

func TestClient_FetchObservations(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/amedas/data/map/20251201120000.json", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"44132": {"temp": [15.2, 0], "humidity": [60, 0]},
			"62078": {"temp": [17.0, 0]}
		}`))
	}))

	at := time.Date(2025, 12, 1, 12, 0, 0, 0, weather.JST)
	snap, err := client.FetchObservations(context.Background(), at)
	require.NoError(t, err)

	require.Len(t, snap, 2)
	assert.Contains(t, snap["44132"], "temp")
	assert.Contains(t, snap["44132"], "humidity")
}

func TestClient_FetchObservations_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.FetchObservations(context.Background(), time.Now())
	require.Error(t, err)

	var upstream *jma.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusNotFound, upstream.StatusCode)
	assert.Contains(t, upstream.URL, "/amedas/data/map/")
	assert.Contains(t, err.Error(), "404")
}

func TestClient_FetchObservations_Malformed(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))

	_, err := client.FetchObservations(context.Background(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding observations response")
}

func TestClient_FetchForecast_PassesThrough(t *testing.T) {
	const body = `[{"publishingOffice":"気象庁","reportDatetime":"2025-12-01T11:00:00+09:00","timeSeries":[]}]`

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast/data/forecast/130000.json", r.URL.Path)
		_, _ = w.Write([]byte(body))
	}))

	doc, err := client.FetchForecast(context.Background(), "130000")
	require.NoError(t, err)
	assert.JSONEq(t, body, string(doc))
}

func TestClient_FetchWarnings(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/warning/data/warning/000000.json", r.URL.Path)
		_, _ = w.Write([]byte(`{"areaTypes":[]}`))
	}))

	doc, err := client.FetchWarnings(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"areaTypes":[]}`, string(doc))
}

func TestClient_FetchStationTable(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/amedas/const/amedastable.json", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"44132": {"type": "A", "elems": "11111111", "lat": [35, 41.5], "lon": [139, 45.0], "alt": 25,
			          "kjName": "東京", "knName": "トウキョウ", "enName": "Tokyo"}
		}`))
	}))

	table, err := client.FetchStationTable(context.Background())
	require.NoError(t, err)

	entry, ok := table["44132"]
	require.True(t, ok)
	assert.Equal(t, "A", entry.Type)
	assert.Equal(t, "Tokyo", entry.EnName)
	assert.Equal(t, [2]float64{35, 41.5}, entry.Lat)
}

func TestClient_ServerErrorIsUpstreamError(t *testing.T) {
	var attempts atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := client.FetchForecast(context.Background(), "130000")

	var upstream *jma.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusServiceUnavailable, upstream.StatusCode)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestClient_Name(t *testing.T) {
	client := jma.NewClient(jma.ClientConfig{})
	assert.Equal(t, "jma", client.Name())
}
