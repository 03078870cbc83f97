// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package adala is the HTTP client for the Adala legal-document portal
// (adala.justice.gov.ma). It searches the portal's Next.js data endpoint,
// downloads documents to disk and discovers the portal's current build ID.
//
// Every operation is a single request with no retries. Failures are returned
// as *Error values carrying a Kind.
package adala

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pdiddy/adala-mcp/internal/httputil"
	"github.com/pdiddy/adala-mcp/pkg/types"
)

// Client issues requests against one portal configuration. It holds no
// per-call state and is safe for concurrent use.
type Client struct {
	cfg  types.Config
	http *http.Client
	log  zerolog.Logger
}

// New returns a Client for cfg. When httpClient is nil a client is created
// whose transport waits at most cfg.Timeout for response headers. Body reads
// are bounded per operation: searches by cfg.Timeout, downloads by
// cfg.DownloadTimeout.
func New(cfg types.Config, httpClient *http.Client, logger zerolog.Logger) *Client {
	if httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.ResponseHeaderTimeout = cfg.Timeout
		httpClient = &http.Client{Transport: transport}
	}
	return &Client{
		cfg:  cfg,
		http: httpClient,
		log:  logger.With().Str("component", "adala").Logger(),
	}
}

// Config returns the configuration the client was built with.
func (c *Client) Config() types.Config {
	return c.cfg
}

// get performs a single GET and classifies failures for op. A 2xx response
// is returned with its body open.
func (c *Client) get(ctx context.Context, op, url, accept string) (*http.Response, error) {
	req, err := httputil.NewGet(ctx, url, c.cfg.UserAgent, accept)
	if err != nil {
		return nil, newError(KindTransport, op, err)
	}

	resp, err := httputil.Do(c.http, req)
	if err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) {
			return nil, newError(KindStatus, op, se)
		}
		return nil, newError(KindTransport, op, err)
	}
	return resp, nil
}
