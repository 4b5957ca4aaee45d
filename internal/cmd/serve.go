package cmd

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/githubnext/calcg/internal/server"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator as MCP tools over stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout exposing the tools
add, subtract, mean and greet. Diagnostics go to stderr; stdout carries only
protocol messages.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(opts.calc, cmd.Root().Version, opts.cfg.Precision)
			err := srv.Run(ctx, &sdk.StdioTransport{})
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			log.Println("MCP session closed")
			return nil
		},
	}
}
