// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcpserver exposes the Adala client as MCP tools.
//
// Tool results follow a string contract: every call returns a single text
// content block, successful or not. Failures additionally set IsError so MCP
// clients can tell them apart without parsing the text.
package mcpserver

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/pdiddy/adala-mcp/internal/adala"
)

// ServerName is the implementation name reported during MCP initialization.
const ServerName = "adala-search"

// New returns an MCP server with the search_adala and download_document
// tools registered against client.
func New(client *adala.Client, logger zerolog.Logger, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: version,
	}, nil)
	server.AddReceivingMiddleware(loggingMiddleware(logger.With().Str("component", "mcp").Logger()))

	h := &handlers{client: client, defaultLimit: client.Config().DefaultLimit}
	mcp.AddTool(server, searchTool, h.search)
	mcp.AddTool(server, downloadTool, h.download)
	return server
}

// loggingMiddleware attaches a per-request logger carrying a call ID to the
// context and logs each method with its latency.
func loggingMiddleware(logger zerolog.Logger) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			lc := logger.With().Str("call_id", uuid.NewString()).Str("method", method)
			if call, ok := req.(*mcp.CallToolRequest); ok && call.Params != nil {
				lc = lc.Str("tool", call.Params.Name)
			}
			log := lc.Logger()
			ctx = log.WithContext(ctx)

			start := time.Now()
			result, err := next(ctx, method, req)
			evt := log.Debug()
			if err != nil {
				evt = log.Warn().Err(err)
			}
			evt.Dur("latency", time.Since(start)).Msg("handled MCP request")
			return result, err
		}
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	res := textResult(text)
	res.IsError = true
	return res
}
