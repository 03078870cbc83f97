// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpserver

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/adala-mcp/pkg/types"
)

// Fixed texts of the tool string contract.
const (
	NoResultsText       = "No results found for that keyword."
	searchErrorPrefix   = "Error connecting to Adala: "
	downloadOKPrefix    = "Successfully downloaded file to: "
	downloadErrorPrefix = "Failed to download file: "
)

// SearchText renders results the way search_adala returns them: the
// no-results message for an empty list, otherwise a JSON array indented by
// two spaces with non-ASCII and HTML characters written verbatim. That
// includes U+2028 and U+2029, which encoding/json always escapes.
func SearchText(results []types.SearchResult) (string, error) {
	if len(results) == 0 {
		return NoResultsText, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return "", fmt.Errorf("encoding results: %w", err)
	}
	out := unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return string(out), nil
}

// unescapeLineSeparators rewrites the \u2028 and \u2029 escapes in encoded
// JSON as raw characters. Escape sequences are consumed whole, so an escaped
// backslash followed by "u2028" is left alone.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			out = append(out, b[i])
			continue
		}
		if i+5 < len(b) && b[i+1] == 'u' && string(b[i+2:i+5]) == "202" && (b[i+5] == '8' || b[i+5] == '9') {
			if b[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, b[i], b[i+1])
		i++
	}
	return out
}

// SearchErrorText is the search_adala text for a failed search.
func SearchErrorText(err error) string {
	return searchErrorPrefix + err.Error()
}

// DownloadText is the download_document text for a saved file.
func DownloadText(absPath string) string {
	return downloadOKPrefix + absPath
}

// DownloadErrorText is the download_document text for a failed download.
func DownloadErrorText(err error) string {
	return downloadErrorPrefix + err.Error()
}
