// Package api hosts the MCP endpoint and operational routes over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/jmadata/jma-data-mcp/internal/api/handler"
	"github.com/jmadata/jma-data-mcp/internal/api/middleware"
	"github.com/jmadata/jma-data-mcp/internal/api/response"
)

// DefaultServiceName is used for spans when RouterConfig.ServiceName is
// empty.
const DefaultServiceName = "jma-data-mcp"

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	ServiceName string
	Logger      zerolog.Logger

	// Metrics may be nil to skip HTTP metrics.
	Metrics *middleware.Metrics

	// MCP serves the streamable MCP endpoint.
	MCP http.Handler

	// Providers and Stations feed the ops endpoints.
	Providers handler.HealthSource
	Stations  int
}

// NewRouter creates the chi router.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}

	// Order matters: the request ID must exist before tracing and logging.
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(serviceName))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders)

	r.NotFound(response.NotFound)
	r.MethodNotAllowed(response.MethodNotAllowed)

	ops := handler.NewOpsHandler(handler.OpsConfig{
		Service:   serviceName,
		Version:   cfg.Version,
		BuildTime: cfg.BuildTime,
		Stations:  cfg.Stations,
		Providers: cfg.Providers,
	})

	r.Route("/v1/ops", func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Get("/health", ops.HealthCheck)
		r.Get("/ready", ops.ReadinessCheck)
		r.Get("/status", ops.SystemStatus)
	})

	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
	}

	return r
}
