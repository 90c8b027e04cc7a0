// Package app wires configuration into the services behind every command.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jmadata/jma-data-mcp/internal/api"
	"github.com/jmadata/jma-data-mcp/internal/api/middleware"
	"github.com/jmadata/jma-data-mcp/internal/cli"
	"github.com/jmadata/jma-data-mcp/internal/config"
	"github.com/jmadata/jma-data-mcp/internal/mcpserver"
	"github.com/jmadata/jma-data-mcp/internal/provider/resilience"
	"github.com/jmadata/jma-data-mcp/internal/station"
	"github.com/jmadata/jma-data-mcp/internal/telemetry"
	"github.com/jmadata/jma-data-mcp/internal/tools"
	"github.com/jmadata/jma-data-mcp/internal/weather"
	"github.com/jmadata/jma-data-mcp/internal/weather/jma"
)

const shutdownTimeout = 30 * time.Second

// Options holds what App needs beyond configuration.
type Options struct {
	Config    config.Config
	Version   string
	BuildTime string
	Logger    zerolog.Logger

	// Clock overrides time.Now for observation time math (optional).
	Clock func() time.Time
}

// App implements cli.Runtime on top of the JMA client.
type App struct {
	cfg       config.Config
	version   string
	buildTime string
	logger    zerolog.Logger
	clock     func() time.Time

	registry *resilience.Registry
	jma      *jma.Client

	partialOnce sync.Once
}

var _ cli.Runtime = (*App)(nil)

// New builds the upstream client. The station dataset is not read until a
// command needs it.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	registry := resilience.NewRegistry()

	httpCfg := resilience.DefaultClientConfig(jma.ProviderName)
	httpCfg.Timeout = cfg.JMA.Timeout
	httpCfg.MaxRetries = uint64(cfg.JMA.MaxRetries)
	httpCfg.Registry = registry
	httpCfg.Logger = opts.Logger

	metrics, err := telemetry.NewProviderMetrics(jma.ProviderName)
	if err != nil {
		return nil, fmt.Errorf("creating provider metrics: %w", err)
	}

	station.SetDefaultPath(cfg.JMA.StationsFile)

	return &App{
		cfg:       cfg,
		version:   opts.Version,
		buildTime: opts.BuildTime,
		logger:    opts.Logger,
		clock:     opts.Clock,
		registry:  registry,
		jma: jma.NewClient(jma.ClientConfig{
			BaseURL:    cfg.JMA.BaseURL,
			HTTPClient: resilience.NewClient(httpCfg),
			Metrics:    metrics,
			Logger:     opts.Logger,
		}),
	}, nil
}

// Registry reports upstream health.
func (a *App) Registry() *resilience.Registry {
	return a.registry
}

func (a *App) directory() (*station.Directory, error) {
	dir, err := station.Default()
	if err != nil {
		return nil, fmt.Errorf("loading stations: %w", err)
	}

	if dir.Partial() {
		a.partialOnce.Do(func() {
			a.logger.Warn().
				Int("stations", dir.Len()).
				Int("expected", station.FullDatasetSize).
				Str("stations_file", a.cfg.JMA.StationsFile).
				Msg("station dataset is partial; run \"jma-data station sync --out FILE\" and set " + config.EnvStationsFile)
		})
	}
	return dir, nil
}

// Tools returns the operation layer over the configured dataset.
func (a *App) Tools() (*tools.Service, error) {
	dir, err := a.directory()
	if err != nil {
		return nil, err
	}

	return tools.NewService(tools.ServiceConfig{
		Directory: dir,
		Weather: weather.NewService(weather.ServiceConfig{
			Provider:    a.jma,
			Logger:      a.logger,
			Clock:       a.clock,
			Concurrency: a.cfg.JMA.SeriesConcurrency,
		}),
		Logger: a.logger,
	}), nil
}

// StationTable fetches the upstream station master table.
func (a *App) StationTable(ctx context.Context) (map[string]station.TableEntry, error) {
	return a.jma.FetchStationTable(ctx)
}

func (a *App) mcpServer() (*mcpserver.Server, error) {
	svc, err := a.Tools()
	if err != nil {
		return nil, err
	}
	return mcpserver.New(mcpserver.Config{
		Tools:   svc,
		Version: a.version,
		Logger:  a.logger,
	}), nil
}

// Handler returns the HTTP router with the MCP endpoint mounted.
func (a *App) Handler() (http.Handler, error) {
	server, err := a.mcpServer()
	if err != nil {
		return nil, err
	}

	dir, err := a.directory()
	if err != nil {
		return nil, err
	}

	metrics, err := middleware.NewMetrics()
	if err != nil {
		return nil, fmt.Errorf("creating HTTP metrics: %w", err)
	}

	return api.NewRouter(api.RouterConfig{
		Version:   a.version,
		BuildTime: a.buildTime,
		Logger:    a.logger,
		Metrics:   metrics,
		MCP:       server.Handler(),
		Providers: a.registry,
		Stations:  dir.Len(),
	}), nil
}

// Serve runs the MCP server over stdio, or over HTTP when opts.HTTP is set.
func (a *App) Serve(ctx context.Context, opts cli.ServeOptions) error {
	if !opts.HTTP {
		server, err := a.mcpServer()
		if err != nil {
			return err
		}
		return server.RunStdio(ctx)
	}

	addr := opts.Addr
	if addr == "" {
		addr = a.cfg.HTTP.Addr
	}

	handler, err := a.Handler()
	if err != nil {
		return err
	}
	return a.serveHTTP(ctx, addr, handler)
}

// serveHTTP listens until ctx is canceled, then drains connections.
func (a *App) serveHTTP(ctx context.Context, addr string, handler http.Handler) error {
	// No write timeout: MCP responses may stream.
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info().Msg("server stopped")
	return nil
}
