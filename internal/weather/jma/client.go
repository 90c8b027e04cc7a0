// Package jma is the HTTP client for the JMA "bosai" JSON endpoints.
package jma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jmadata/jma-data-mcp/internal/observation"
	"github.com/jmadata/jma-data-mcp/internal/provider/resilience"
	"github.com/jmadata/jma-data-mcp/internal/station"
	"github.com/jmadata/jma-data-mcp/internal/telemetry"
	"github.com/jmadata/jma-data-mcp/internal/weather"
)

const (
	// ProviderName identifies this provider in logs, metrics and the registry.
	ProviderName = "jma"

	// DefaultBaseURL is the root of the JMA bosai API.
	DefaultBaseURL = "https://www.jma.go.jp/bosai"

	// NationwideWarningArea is the area code of the nationwide warning feed.
	NationwideWarningArea = "000000"

	tracerName = "github.com/jmadata/jma-data-mcp/internal/weather/jma"
)

// UpstreamError is returned for non-2xx responses.
type UpstreamError struct {
	StatusCode int
	URL        string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("jma: %s returned %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// ClientConfig holds configuration for the JMA client.
type ClientConfig struct {
	// BaseURL is the API root (optional, defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Metrics records request counts and latency (optional).
	Metrics *telemetry.ProviderMetrics

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client reads AMeDAS maps, forecasts, warnings and the station table.
type Client struct {
	baseURL    string
	httpClient *resilience.Client
	metrics    *telemetry.ProviderMetrics
	tracer     trace.Tracer
	logger     zerolog.Logger
}

// NewClient creates a new JMA client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		metrics:    cfg.Metrics,
		tracer:     otel.Tracer(tracerName),
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// FetchObservations fetches the AMeDAS map for t.
func (c *Client) FetchObservations(ctx context.Context, t time.Time) (observation.RawSnapshot, error) {
	url := fmt.Sprintf("%s/amedas/data/map/%s.json", c.baseURL, weather.FormatAPITime(t))

	var snap observation.RawSnapshot
	if err := c.getJSON(ctx, "observations", url, &snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// FetchForecast fetches the forecast document for an area code, unparsed.
func (c *Client) FetchForecast(ctx context.Context, areaCode string) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/forecast/data/forecast/%s.json", c.baseURL, areaCode)

	var doc json.RawMessage
	if err := c.getJSON(ctx, "forecast", url, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// FetchWarnings fetches the nationwide warnings and advisories document.
func (c *Client) FetchWarnings(ctx context.Context) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/warning/data/warning/%s.json", c.baseURL, NationwideWarningArea)

	var doc json.RawMessage
	if err := c.getJSON(ctx, "warnings", url, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// FetchStationTable fetches amedastable.json, the master station list.
func (c *Client) FetchStationTable(ctx context.Context) (map[string]station.TableEntry, error) {
	url := c.baseURL + "/amedas/const/amedastable.json"

	var table map[string]station.TableEntry
	if err := c.getJSON(ctx, "station_table", url, &table); err != nil {
		return nil, err
	}
	return table, nil
}

// getJSON issues a traced, metered GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, operation, url string, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "jma."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("provider.name", ProviderName),
			attribute.String("url.full", url),
		),
	)
	start := time.Now()
	defer func() {
		c.metrics.RecordRequest(ctx, operation, time.Since(start), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck // best effort
		return &UpstreamError{StatusCode: resp.StatusCode, URL: url}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", operation, err)
	}

	c.logger.Debug().
		Str("operation", operation).
		Str("url", url).
		Dur("elapsed", time.Since(start)).
		Msg("jma request complete")

	return nil
}
