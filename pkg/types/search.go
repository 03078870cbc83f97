// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for adala-mcp: the search
// result record returned to tool callers and the runtime configuration.
package types

// NoDownloadURL is the download_url value for items that carry no path.
const NoDownloadURL = "N/A"

// SearchResult is one document hit from the Adala search endpoint, flattened
// for tool callers. Pointer fields are nil when the upstream item omits the
// value and encode as JSON null.
type SearchResult struct {
	// Title is the document name as published on the portal.
	Title *string `json:"title" yaml:"title"`

	// DocumentType is the upstream file type (e.g. "PDF").
	DocumentType *string `json:"type" yaml:"type"`

	// LawType is the legal category (e.g. "Dahir", "Décret").
	LawType *string `json:"law_type" yaml:"law_type"`

	// Date is the gregorian date string exactly as provided upstream.
	Date *string `json:"date" yaml:"date"`

	// RelativePath is the server-relative path accepted by the download tool.
	RelativePath *string `json:"relative_path" yaml:"relative_path"`

	// DownloadURL is BaseURL + "/" + RelativePath, or NoDownloadURL.
	DownloadURL string `json:"download_url" yaml:"download_url"`
}
