// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/pdiddy/adala-mcp/internal/mcpserver"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server (stdio by default)",
	Long: `Serve exposes the search_adala and download_document tools over MCP.
By default it speaks MCP over stdin/stdout, which is what desktop MCP clients
expect. With --http it serves the streamable HTTP transport on the given
address instead.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("http", "", "serve streamable HTTP on this address (e.g. 127.0.0.1:8080) instead of stdio")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	cfg := client.Config()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := mcpserver.New(client, logger, version)

	addr, _ := cmd.Flags().GetString("http")
	if addr == "" {
		logger.Info().Str("build_id", cfg.BuildID).Str("download_dir", cfg.DownloadDir).Msg("serving MCP over stdio")
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("HTTP shutdown")
		}
	}()

	logger.Info().Str("addr", addr).Str("build_id", cfg.BuildID).Msg("serving MCP over streamable HTTP")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
