// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpserver

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/adala-mcp/pkg/types"
)

func ptr(s string) *string { return &s }

func TestSearchText_Empty(t *testing.T) {
	for _, in := range [][]types.SearchResult{nil, {}} {
		got, err := SearchText(in)
		require.NoError(t, err)
		assert.Equal(t, "No results found for that keyword.", got)
	}
}

func TestSearchText_Format(t *testing.T) {
	results := []types.SearchResult{{
		Title:        ptr("Arrêté <conjoint> & annexe"),
		DocumentType: ptr("PDF"),
		LawType:      ptr("قرار"),
		Date:         nil,
		RelativePath: ptr("uploads/a.pdf"),
		DownloadURL:  "https://adala.justice.gov.ma/uploads/a.pdf",
	}}

	got, err := SearchText(results)
	require.NoError(t, err)

	want := `[
  {
    "title": "Arrêté <conjoint> & annexe",
    "type": "PDF",
    "law_type": "قرار",
    "date": null,
    "relative_path": "uploads/a.pdf",
    "download_url": "https://adala.justice.gov.ma/uploads/a.pdf"
  }
]`
	assert.Equal(t, want, got)
}

func TestSearchText_RoundTrip(t *testing.T) {
	results := []types.SearchResult{
		{Title: ptr("b"), RelativePath: ptr("uploads/b"), DownloadURL: "https://x/uploads/b"},
		{Title: ptr("a"), DownloadURL: types.NoDownloadURL},
		{Title: ptr("مرسوم"), LawType: ptr("مرسوم"), Date: ptr("2020-01-01"), DownloadURL: types.NoDownloadURL},
	}

	text, err := SearchText(results)
	require.NoError(t, err)

	var back []types.SearchResult
	require.NoError(t, json.Unmarshal([]byte(text), &back))
	assert.Equal(t, results, back)
}

func TestSearchText_LineSeparatorsVerbatim(t *testing.T) {
	results := []types.SearchResult{{
		Title:       ptr("a\u2028b\u2029c"),
		LawType:     ptr(`literal \u2028 stays escaped`),
		DownloadURL: types.NoDownloadURL,
	}}

	got, err := SearchText(results)
	require.NoError(t, err)

	assert.Contains(t, got, "\"title\": \"a\u2028b\u2029c\"")
	assert.Contains(t, got, `"law_type": "literal \\u2028 stays escaped"`)

	var back []types.SearchResult
	require.NoError(t, json.Unmarshal([]byte(got), &back))
	assert.Equal(t, results, back)
}

func TestErrorTexts(t *testing.T) {
	err := errors.New("search: HTTP 500 Internal Server Error from https://x")
	assert.Equal(t, "Error connecting to Adala: search: HTTP 500 Internal Server Error from https://x", SearchErrorText(err))
	assert.Equal(t, "Failed to download file: boom", DownloadErrorText(errors.New("boom")))
	assert.Equal(t, "Successfully downloaded file to: /tmp/downloads/doc.pdf", DownloadText("/tmp/downloads/doc.pdf"))
}
