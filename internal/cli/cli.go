// Package cli implements the jma-data command line. With no arguments, or
// with "serve", the process runs the MCP server; every other command prints
// exactly one JSON document to stdout.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmadata/jma-data-mcp/internal/station"
	"github.com/jmadata/jma-data-mcp/internal/tools"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitServeFailed = 1
	ExitUsage       = 2
)

// Runtime builds what commands need. Commands call it only after their
// arguments are validated, so a bad invocation never touches the network
// or the station dataset.
type Runtime interface {
	// Tools returns the operation layer.
	Tools() (*tools.Service, error)

	// StationTable fetches the upstream station master table.
	StationTable(ctx context.Context) (map[string]station.TableEntry, error)

	// Serve runs the MCP server until ctx is canceled or the client leaves.
	Serve(ctx context.Context, opts ServeOptions) error
}

// ServeOptions selects the MCP transport.
type ServeOptions struct {
	// HTTP serves streamable HTTP instead of stdio.
	HTTP bool

	// Addr overrides the configured listen address.
	Addr string
}

// serveError marks failures of the server itself, which are reported on
// stderr because stdout may carry the stdio protocol stream.
type serveError struct {
	err error
}

func (e *serveError) Error() string { return e.err.Error() }
func (e *serveError) Unwrap() error { return e.err }

// Execute runs the command line in args and returns the exit code.
func Execute(ctx context.Context, args []string, rt Runtime, stdout, stderr io.Writer) int {
	root := NewRootCommand(rt)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	var se *serveError
	if errors.As(err, &se) {
		fmt.Fprintf(stderr, "jma-data: %v\n", se.err)
		return ExitServeFailed
	}

	if werr := WriteError(stdout, err); werr != nil {
		fmt.Fprintf(stderr, "jma-data: %v\n", err)
	}
	return ExitUsage
}

// WriteError prints err as the {"error": ...} envelope.
func WriteError(w io.Writer, err error) error {
	return writeJSON(w, tools.Problem{Message: err.Error()})
}

// NewRootCommand builds the full command tree.
func NewRootCommand(rt Runtime) *cobra.Command {
	root := &cobra.Command{
		Use:           "jma-data",
		Short:         "Japan Meteorological Agency data over MCP and the command line",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), rt, ServeOptions{})
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return err
	})

	root.AddCommand(
		newServeCommand(rt),
		newStationCommand(rt),
		newWeatherCommand(rt),
		newForecastCommand(rt),
		newHistoryCommand(rt),
	)
	return root
}

// group returns a parent command that needs a subcommand.
func group(use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return fmt.Errorf("%s: a subcommand is required", cmd.CommandPath())
		},
	}
}

// operation adapts a tools call into a RunE that prints its payload.
func operation(rt Runtime, fn func(ctx context.Context, svc *tools.Service) (tools.Result, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		svc, err := rt.Tools()
		if err != nil {
			return err
		}

		result, err := fn(cmd.Context(), svc)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), result.Payload())
	}
}

// writeJSON prints v indented with non-ASCII and HTML characters unescaped.
func writeJSON(w io.Writer, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func mustRequire(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}
