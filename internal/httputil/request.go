// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP helpers shared by the search and
// download operations.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxErrorBody caps how much of a non-2xx response body is kept on a
// StatusError. The body is useful for diagnosing stale build IDs, which come
// back as an HTML error page.
const MaxErrorBody = 256 << 10

// StatusError is returned by Do when the server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
	// Body holds at most MaxErrorBody bytes of the response body.
	Body []byte
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("HTTP %s from %s", status, e.URL)
}

// NewGet builds a GET request bound to ctx with the given User-Agent and
// Accept headers. Empty header values are not sent.
func NewGet(ctx context.Context, url, userAgent, accept string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	return req, nil
}

// Do executes req once. Any 2xx response is returned with its body open and
// the caller must close it. Any other status is returned as a *StatusError;
// at most MaxErrorBody bytes of the response body are read before it is
// closed.
//
// Do never retries.
func Do(client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBody))

	return nil, &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		URL:        req.URL.String(),
		Body:       body,
	}
}
