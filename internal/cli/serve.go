package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

func newServeCommand(rt Runtime) *cobra.Command {
	var opts ServeOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Addr != "" && !opts.HTTP {
				return errors.New("--addr requires --http")
			}
			return serve(cmd.Context(), rt, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.HTTP, "http", false, "serve streamable HTTP instead of stdio")
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address for --http (default from HTTP_ADDR)")
	return cmd
}

func serve(ctx context.Context, rt Runtime, opts ServeOptions) error {
	if err := rt.Serve(ctx, opts); err != nil && !errors.Is(err, context.Canceled) {
		return &serveError{err: err}
	}
	return nil
}
