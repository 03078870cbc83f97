// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adala

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/pdiddy/adala-mcp/internal/httputil"
	"github.com/pdiddy/adala-mcp/pkg/types"
)

// maxSearchBody bounds how much of a search response is read into memory.
const maxSearchBody = 32 << 20

// searchFilters are the query keys the data endpoint requires alongside term,
// even when empty.
var searchFilters = []string{"themes", "resources", "type", "number", "start_date", "end_date"}

// SearchParams returns the query string for a keyword search.
func SearchParams(keyword string) url.Values {
	params := url.Values{"term": {keyword}}
	for _, key := range searchFilters {
		params.Set(key, "")
	}
	return params
}

// Search queries the portal for keyword and returns at most limit results in
// the order the portal returned them. A limit of zero or less yields an empty
// slice. The request is still made, so connectivity problems surface.
func (c *Client) Search(ctx context.Context, keyword string, limit int) ([]types.SearchResult, error) {
	const op = "search"

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	reqURL := c.cfg.SearchURL() + "?" + SearchParams(keyword).Encode()
	c.log.Debug().Str("url", reqURL).Int("limit", limit).Msg("searching")

	resp, err := c.get(ctx, op, reqURL, "application/json")
	if err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, c.staleBuildID(op, se, se.Body)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSearchBody))
	if err != nil {
		return nil, newError(KindTransport, op, fmt.Errorf("reading response: %w", err))
	}

	if isHTML(resp.Header.Get("Content-Type"), body) {
		return nil, c.staleBuildID(op, errHTMLResponse, body)
	}

	var page searchPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, newError(KindMalformed, op, fmt.Errorf("parsing search response: %w", err))
	}

	items := page.items()
	if limit <= 0 {
		items = nil
	} else if len(items) > limit {
		items = items[:limit]
	}

	results := make([]types.SearchResult, 0, len(items))
	for _, it := range items {
		results = append(results, c.project(it))
	}
	c.log.Debug().Int("available", len(page.items())).Int("returned", len(results)).Msg("search complete")
	return results, nil
}

// project flattens one upstream item into a SearchResult.
func (c *Client) project(it searchItem) types.SearchResult {
	r := types.SearchResult{
		Title:        it.Name,
		DocumentType: it.Type,
		LawType:      it.lawTypeName(),
		Date:         it.gregorianDate(),
		RelativePath: it.Path,
		DownloadURL:  types.NoDownloadURL,
	}
	if it.Path != nil && *it.Path != "" {
		r.DownloadURL = c.cfg.PublicURL(*it.Path)
	}
	return r
}

// staleBuildID builds a KindStaleBuildID error. When page is an HTML document
// that names a different build ID, the message includes it.
func (c *Client) staleBuildID(op string, cause error, page []byte) *Error {
	msg := fmt.Sprintf("build ID %q appears stale", c.cfg.BuildID)
	if current, err := ExtractBuildID(bytes.NewReader(page)); err == nil && current != c.cfg.BuildID {
		msg += fmt.Sprintf(" (the site now reports %q)", current)
	}
	msg += "; update build_id in the configuration"
	c.log.Warn().Str("build_id", c.cfg.BuildID).Err(cause).Msg("stale build ID suspected")
	return newError(KindStaleBuildID, op, fmt.Errorf("%s: %w", msg, cause))
}

// isHTML reports whether a response looks like an HTML page, judging by its
// Content-Type and, failing that, its first non-space byte.
func isHTML(contentType string, body []byte) bool {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		if mt == "text/html" || mt == "application/xhtml+xml" {
			return true
		}
	}
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '<'
}

// Next.js data endpoint JSON structures. Every level is optional; the
// accessors below return nil rather than failing on a missing key.
type searchPage struct {
	PageProps *pageProps `json:"pageProps"`
}

type pageProps struct {
	SearchResult *searchResultBlock `json:"searchResult"`
}

type searchResultBlock struct {
	Data []searchItem `json:"data"`
}

type searchItem struct {
	Path     *string   `json:"path"`
	Name     *string   `json:"name"`
	Type     *string   `json:"type"`
	FileMeta *fileMeta `json:"fileMeta"`
}

type fileMeta struct {
	LawType       *lawType `json:"LawType"`
	GregorianDate *string  `json:"gregorianDate"`
}

type lawType struct {
	Name *string `json:"name"`
}

// items returns pageProps.searchResult.data, or nil if any level is missing.
func (p searchPage) items() []searchItem {
	if p.PageProps == nil || p.PageProps.SearchResult == nil {
		return nil
	}
	return p.PageProps.SearchResult.Data
}

// lawTypeName returns fileMeta.LawType.name, or nil if any level is missing.
func (it searchItem) lawTypeName() *string {
	if it.FileMeta == nil || it.FileMeta.LawType == nil {
		return nil
	}
	return it.FileMeta.LawType.Name
}

// gregorianDate returns fileMeta.gregorianDate, or nil if missing.
func (it searchItem) gregorianDate() *string {
	if it.FileMeta == nil {
		return nil
	}
	return it.FileMeta.GregorianDate
}
