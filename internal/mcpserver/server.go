// Package mcpserver exposes the tools service as a Model Context Protocol
// server over stdio or streamable HTTP.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/jmadata/jma-data-mcp/internal/tools"
)

// Name is the server name advertised to clients.
const Name = "jma-data-mcp"

// Config holds configuration for the MCP server.
type Config struct {
	// Tools implements every operation.
	Tools *tools.Service

	// Version is advertised in the implementation info.
	Version string

	// Logger for tool calls.
	Logger zerolog.Logger
}

// Server wraps an mcp.Server with the JMA tools registered.
type Server struct {
	mcp    *mcp.Server
	tools  *tools.Service
	logger zerolog.Logger
}

// New creates a server with all tools registered.
func New(cfg Config) *Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		mcp:    mcp.NewServer(&mcp.Implementation{Name: Name, Version: version}, nil),
		tools:  cfg.Tools,
		logger: cfg.Logger,
	}
	s.register()
	return s
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// RunStdio serves on stdin/stdout until the client disconnects or ctx is
// canceled.
func (s *Server) RunStdio(ctx context.Context) error {
	s.logger.Info().Str("transport", "stdio").Msg("MCP server starting")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns a streamable HTTP handler bound to this server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}

// payload renders v as tool text content. Non-ASCII is left unescaped.
func payload(v any, isError bool) (*mcp.CallToolResult, any, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, nil, err
	}

	return &mcp.CallToolResult{
		IsError: isError,
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(bytes.TrimRight(buf.Bytes(), "\n"))},
		},
	}, nil, nil
}

func (s *Server) result(tool string, start time.Time, r tools.Result) (*mcp.CallToolResult, any, error) {
	s.logger.Debug().
		Str("tool", tool).
		Str("outcome", r.Kind.String()).
		Dur("duration", time.Since(start)).
		Msg("tool call")
	return payload(r.Payload(), false)
}

func (s *Server) failure(tool string, start time.Time, err error) (*mcp.CallToolResult, any, error) {
	s.logger.Error().
		Err(err).
		Str("tool", tool).
		Dur("duration", time.Since(start)).
		Msg("tool call failed")
	return payload(tools.Problem{Message: err.Error()}, true)
}
