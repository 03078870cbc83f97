// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adala

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// buildManifestPattern matches the static asset path Next.js emits for every
// deployment, e.g. /_next/static/THP5ZL1eNCinRAZ1hWfN0/_buildManifest.js.
var buildManifestPattern = regexp.MustCompile(`/_next/static/([^/]+)/_buildManifest\.js`)

// nextData is the subset of the __NEXT_DATA__ payload we read.
type nextData struct {
	BuildID string `json:"buildId"`
}

// ExtractBuildID reads an HTML page produced by Next.js and returns its build
// ID. It prefers the __NEXT_DATA__ script and falls back to the
// _buildManifest.js script source.
func ExtractBuildID(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	if raw := strings.TrimSpace(doc.Find("script#__NEXT_DATA__").First().Text()); raw != "" {
		var nd nextData
		if err := json.Unmarshal([]byte(raw), &nd); err == nil && nd.BuildID != "" {
			return nd.BuildID, nil
		}
	}

	var id string
	doc.Find("script[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		if m := buildManifestPattern.FindStringSubmatch(src); m != nil {
			id = m[1]
			return false
		}
		return true
	})
	if id == "" {
		return "", ErrBuildIDNotFound
	}
	return id, nil
}

// DiscoverBuildID fetches the portal's French landing page and returns the
// build ID it advertises. The result is informational; the client keeps
// using its configured build ID.
func (c *Client) DiscoverBuildID(ctx context.Context) (string, error) {
	const op = "discover"

	pageURL := c.cfg.BaseURL + "/fr"
	c.log.Debug().Str("url", pageURL).Msg("discovering build ID")

	resp, err := c.get(ctx, op, pageURL, "text/html")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	id, err := ExtractBuildID(resp.Body)
	if err != nil {
		return "", newError(KindMalformed, op, err)
	}
	return id, nil
}
