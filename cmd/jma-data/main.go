// Package main provides the entrypoint for the jma-data MCP server and
// command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmadata/jma-data-mcp/internal/app"
	"github.com/jmadata/jma-data-mcp/internal/cli"
	"github.com/jmadata/jma-data-mcp/internal/config"
	"github.com/jmadata/jma-data-mcp/internal/logging"
	"github.com/jmadata/jma-data-mcp/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const serviceName = "jma-data-mcp"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		if werr := cli.WriteError(os.Stdout, fmt.Errorf("loading config: %w", err)); werr != nil {
			fmt.Fprintf(os.Stderr, "jma-data: %v\n", err)
		}
		return cli.ExitUsage
	}

	log := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: serviceName,
		Version: Version,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Enabled:        cfg.Telemetry.Enabled,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize telemetry")
		return cli.ExitServeFailed
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.Telemetry.Enabled {
		log.Info().
			Str("otlp_endpoint", cfg.Telemetry.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	rt, err := app.New(app.Options{
		Config:    cfg,
		Version:   Version,
		BuildTime: BuildTime,
		Logger:    log,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize")
		return cli.ExitServeFailed
	}

	return cli.Execute(ctx, os.Args[1:], rt, os.Stdout, os.Stderr)
}
