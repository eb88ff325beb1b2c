package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/walkthrough/internal/cli"
	"github.com/aretw0/walkthrough/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp [page]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes tours of one page as MCP tools so that agents can drive them.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// The logger always writes to stderr so JSON-RPC on stdout stays clean.
		logger, err := cli.NewLogger(cfg.Log.Level, false)
		if err != nil {
			return err
		}

		engine, err := cli.CreateEngine(pagePath(cmd, args), cfg, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sessions, closeStore, err := cli.OpenSessions(ctx, cfg.Store, cfg.Redis, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		srv := mcp.NewServer(engine, sessions, logger)

		switch transport {
		case "stdio":
			log.SetOutput(os.Stderr)
			logger.Info("starting MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			logger.Info("starting MCP server (sse)", "port", port)
			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
