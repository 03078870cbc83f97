// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/adala-mcp/internal/adala"
	"github.com/pdiddy/adala-mcp/pkg/types"
)

const testBuildID = "mcp-test-build"

// fiveItems is a search payload with five items in a known order.
var fiveItems = func() string {
	var items []string
	for i := 1; i <= 5; i++ {
		items = append(items, fmt.Sprintf(
			`{"path":"uploads/2024/0%d/doc-%d.pdf","name":"وثيقة %d","type":"PDF","fileMeta":{"LawType":{"name":"ظهير"},"gregorianDate":"2024-0%d-01"}}`,
			i, i, i, i))
	}
	return `{"pageProps":{"searchResult":{"data":[` + strings.Join(items, ",") + `]}}}`
}()

var pdfBytes = []byte("%PDF-1.7\n%%EOF\n")

// backend is a fake portal: the search endpoint answers with searchBody and
// /api/ paths serve pdfBytes, except /api/missing which is a 404.
func backend(t *testing.T, searchBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/_next/data/"+testBuildID+"/fr/search.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, searchBody)
	})
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/missing") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdfBytes)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

// connect starts a server for baseURL and returns a connected client session.
func connect(t *testing.T, baseURL string) (*mcp.ClientSession, types.Config) {
	t.Helper()
	ctx := context.Background()

	cfg := types.DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.BuildID = testBuildID
	cfg.DownloadDir = filepath.Join(t.TempDir(), "downloads")

	server := New(adala.New(cfg, nil, zerolog.Nop()), zerolog.Nop(), "test")

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })

	return cs, cfg
}

// callText calls a tool and returns its single text block and error flag.
func callText(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content is %T, want *mcp.TextContent", res.Content[0])
	return tc.Text, res.IsError
}

func TestListTools(t *testing.T) {
	ts := backend(t, fiveItems)
	cs, _ := connect(t, ts.URL)

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description)
	}
	assert.ElementsMatch(t, []string{"search_adala", "download_document"}, names)
}

func TestSearchTool_LimitThreeOfFive(t *testing.T) {
	ts := backend(t, fiveItems)
	cs, _ := connect(t, ts.URL)

	text, isErr := callText(t, cs, "search_adala", map[string]any{"keyword": "طلاق", "limit": 3})
	assert.False(t, isErr)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &got))
	require.Len(t, got, 3)
	for i, rec := range got {
		assert.Equal(t, fmt.Sprintf("وثيقة %d", i+1), rec["title"])
		assert.Equal(t, fmt.Sprintf("%s/uploads/2024/0%d/doc-%d.pdf", ts.URL, i+1, i+1), rec["download_url"])
	}
	// Arabic text is written verbatim, not as \u escapes.
	assert.Contains(t, text, "وثيقة 1")
	assert.Contains(t, text, "\n  {\n    \"title\"")
}

func TestSearchTool_DefaultLimit(t *testing.T) {
	body := `{"pageProps":{"searchResult":{"data":[` + strings.Repeat(`{"name":"x"},`, 7) + `{"name":"x"}]}}}`
	ts := backend(t, body)
	cs, _ := connect(t, ts.URL)

	text, isErr := callText(t, cs, "search_adala", map[string]any{"keyword": "x"})
	assert.False(t, isErr)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &got))
	assert.Len(t, got, types.DefaultLimit)
	assert.Equal(t, "N/A", got[0]["download_url"])
	assert.Nil(t, got[0]["relative_path"])
}

func TestSearchTool_NoResults(t *testing.T) {
	tests := []struct {
		name string
		body string
		args map[string]any
	}{
		{"zero matches", `{"pageProps":{"searchResult":{"data":[]}}}`, map[string]any{"keyword": "zzzz"}},
		{"limit zero", fiveItems, map[string]any{"keyword": "x", "limit": 0}},
		{"negative limit", fiveItems, map[string]any{"keyword": "x", "limit": -2}},
		{"missing envelope", `{}`, map[string]any{"keyword": "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := backend(t, tt.body)
			cs, _ := connect(t, ts.URL)

			text, isErr := callText(t, cs, "search_adala", tt.args)
			assert.False(t, isErr)
			assert.Equal(t, "No results found for that keyword.", text)
		})
	}
}

func TestSearchTool_StaleBuildID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `<html><script id="__NEXT_DATA__">{"buildId":"FRESH"}</script></html>`)
	}))
	defer ts.Close()
	cs, _ := connect(t, ts.URL)

	text, isErr := callText(t, cs, "search_adala", map[string]any{"keyword": "x"})
	assert.True(t, isErr)
	assert.True(t, strings.HasPrefix(text, "Error connecting to Adala: "), text)
	assert.Contains(t, text, "appears stale")
	assert.Contains(t, text, `"FRESH"`)
}

func TestSearchTool_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()
	cs, _ := connect(t, ts.URL)

	text, isErr := callText(t, cs, "search_adala", map[string]any{"keyword": "x"})
	assert.True(t, isErr)
	assert.True(t, strings.HasPrefix(text, "Error connecting to Adala: "), text)
	assert.Contains(t, text, "502")
}

func TestDownloadTool_Success(t *testing.T) {
	ts := backend(t, fiveItems)
	cs, cfg := connect(t, ts.URL)

	text, isErr := callText(t, cs, "download_document", map[string]any{"relative_path": "uploads/2024/04/01/doc"})
	assert.False(t, isErr)

	want, err := filepath.Abs(filepath.Join(cfg.DownloadDir, "doc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "Successfully downloaded file to: "+want, text)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, data)
}

func TestDownloadTool_SaveFilename(t *testing.T) {
	ts := backend(t, fiveItems)
	cs, cfg := connect(t, ts.URL)

	text, isErr := callText(t, cs, "download_document", map[string]any{
		"relative_path": "uploads/2024/04/01/doc.pdf",
		"save_filename": "Moudawana.PDF",
	})
	assert.False(t, isErr)
	assert.True(t, strings.HasSuffix(text, "Moudawana.PDF"), text)
	assert.FileExists(t, filepath.Join(cfg.DownloadDir, "Moudawana.PDF"))
}

func TestDownloadTool_NotFound(t *testing.T) {
	ts := backend(t, fiveItems)
	cs, cfg := connect(t, ts.URL)

	text, isErr := callText(t, cs, "download_document", map[string]any{"relative_path": "missing/doc"})
	assert.True(t, isErr)
	assert.True(t, strings.HasPrefix(text, "Failed to download file: "), text)
	assert.Contains(t, text, "404")
	assert.NoFileExists(t, filepath.Join(cfg.DownloadDir, "doc.pdf"))
}
