// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/adala-mcp/internal/adala"
	"github.com/pdiddy/adala-mcp/internal/mcpserver"
)

var searchCmd = &cobra.Command{
	Use:   "search <keyword>...",
	Short: "Search Adala for legal documents",
	Long: `Search runs the same query as the search_adala tool and prints the results.
Multiple arguments are joined with spaces into one keyword.

With --json the output is exactly what the MCP tool returns.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntP("limit", "n", 0, "maximum number of results (default from config)")
	searchCmd.Flags().Bool("json", false, "print results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	limit := client.Config().DefaultLimit
	if cmd.Flags().Changed("limit") {
		limit, _ = cmd.Flags().GetInt("limit")
	}
	keyword := strings.Join(args, " ")

	results, err := client.Search(cmd.Context(), keyword, limit)
	if err != nil {
		if adala.KindOf(err) == adala.KindStaleBuildID {
			logger.Warn().Msg("update build_id in adala-mcp.yaml, ADALA_MCP_BUILD_ID or --build-id; see 'adala-mcp build-id'")
		}
		return err
	}

	out := cmd.OutOrStdout()
	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		text, err := mcpserver.SearchText(results)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
		return nil
	}

	formatTable(results, out)
	return nil
}
