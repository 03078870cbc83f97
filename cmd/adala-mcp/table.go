// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/pdiddy/adala-mcp/pkg/types"
)

const (
	titleWidth   = 50
	lawTypeWidth = 16
	dateWidth    = 10
)

// formatTable writes search results as an aligned table to w. The relative
// path is printed in full so it can be pasted into the download command.
func formatTable(results []types.SearchResult, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	header := color.New(color.Bold)
	header.Fprintf(w, "%-3s  %s  %s  %s  %s\n", "#",
		pad("Title", titleWidth), pad("Law type", lawTypeWidth), pad("Date", dateWidth), "Relative path")
	fmt.Fprintln(w, strings.Repeat("-", 3+2+titleWidth+2+lawTypeWidth+2+dateWidth+2+13))

	for i, r := range results {
		fmt.Fprintf(w, "%-3d  %s  %s  %s  %s\n", i+1,
			pad(truncate(deref(r.Title), titleWidth), titleWidth),
			pad(truncate(deref(r.LawType), lawTypeWidth), lawTypeWidth),
			pad(truncate(deref(r.Date), dateWidth), dateWidth),
			deref(r.RelativePath))
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// pad right-pads s with spaces to width runes.
func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
