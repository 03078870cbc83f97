// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/pdiddy/adala-mcp/internal/adala"
)

var searchTool = &mcp.Tool{
	Name:        "search_adala",
	Description: "Search for legal documents, laws, and decrees on the Adala Justice website (adala.justice.gov.ma). Returns a JSON list of matches with title, type, law_type, date, relative_path and download_url.",
	Annotations: &mcp.ToolAnnotations{Title: "Search Adala"},
}

var downloadTool = &mcp.Tool{
	Name:        "download_document",
	Description: "Download a specific legal document found via search_adala into the local downloads directory. Returns the absolute path of the saved PDF.",
	Annotations: &mcp.ToolAnnotations{Title: "Download Adala document"},
}

// SearchInput is the argument object of search_adala.
type SearchInput struct {
	Keyword string `json:"keyword" jsonschema:"The search term, for example طلاق or شركة or Dahir"`
	// Limit is a pointer so an explicit 0 is distinguishable from an omitted value.
	Limit *int `json:"limit,omitempty" jsonschema:"Number of results to return (default 5)"`
}

// DownloadInput is the argument object of download_document.
type DownloadInput struct {
	RelativePath string `json:"relative_path" jsonschema:"The relative_path returned by search_adala, for example uploads/2024/04/01/filename.pdf"`
	SaveFilename string `json:"save_filename,omitempty" jsonschema:"Optional name to save the file as. Derived from relative_path when omitted"`
}

type handlers struct {
	client       *adala.Client
	defaultLimit int
}

func (h *handlers) search(ctx context.Context, _ *mcp.CallToolRequest, in SearchInput) (*mcp.CallToolResult, any, error) {
	limit := h.defaultLimit
	if in.Limit != nil {
		limit = *in.Limit
	}
	log := zerolog.Ctx(ctx).With().Str("keyword", in.Keyword).Int("limit", limit).Logger()

	results, err := h.client.Search(ctx, in.Keyword, limit)
	if err != nil {
		log.Warn().Err(err).Stringer("kind", adala.KindOf(err)).Msg("search failed")
		return errorResult(SearchErrorText(err)), nil, nil
	}

	text, err := SearchText(results)
	if err != nil {
		log.Error().Err(err).Msg("encoding search results")
		return errorResult(SearchErrorText(err)), nil, nil
	}
	log.Info().Int("results", len(results)).Msg("search complete")
	return textResult(text), nil, nil
}

func (h *handlers) download(ctx context.Context, _ *mcp.CallToolRequest, in DownloadInput) (*mcp.CallToolResult, any, error) {
	log := zerolog.Ctx(ctx).With().Str("relative_path", in.RelativePath).Logger()

	path, err := h.client.Download(ctx, adala.DownloadRequest{
		RelativePath: in.RelativePath,
		SaveFilename: in.SaveFilename,
	})
	if err != nil {
		log.Warn().Err(err).Stringer("kind", adala.KindOf(err)).Msg("download failed")
		return errorResult(DownloadErrorText(err)), nil, nil
	}
	log.Info().Str("path", path).Msg("download complete")
	return textResult(DownloadText(path)), nil, nil
}
