// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var buildIDCmd = &cobra.Command{
	Use:   "build-id",
	Short: "Show the portal's current build ID",
	Long: `Build-id fetches the portal home page, extracts the Next.js build ID it is
currently serving and compares it with the configured one. The search tool
stops working when the portal is redeployed; when the IDs differ, set the new
one with --build-id, ADALA_MCP_BUILD_ID or build_id in adala-mcp.yaml.`,
	Args: cobra.NoArgs,
	RunE: runBuildID,
}

func init() {
	rootCmd.AddCommand(buildIDCmd)
}

func runBuildID(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	current, err := client.DiscoverBuildID(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), current)

	configured := client.Config().BuildID
	if current == configured {
		color.New(color.FgGreen).Fprintln(os.Stderr, "configured build ID is current")
		return nil
	}
	color.New(color.FgYellow).Fprintf(os.Stderr, "configured build ID %q is stale; the portal serves %q\n", configured, current)
	return nil
}
