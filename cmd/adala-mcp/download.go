// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pdiddy/adala-mcp/internal/adala"
	"github.com/pdiddy/adala-mcp/internal/mcpserver"
)

var downloadCmd = &cobra.Command{
	Use:   "download <relative-path>",
	Short: "Download a document found by search",
	Long: `Download fetches a document by the relative_path reported by search and
saves it as a PDF in the download directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().String("save-as", "", "local file name (\".pdf\" is appended if missing)")
	downloadCmd.Flags().Bool("no-progress", false, "do not show a progress bar")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	saveAs, _ := cmd.Flags().GetString("save-as")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	req := adala.DownloadRequest{
		RelativePath: args[0],
		SaveFilename: saveAs,
	}

	var bar *progressbar.ProgressBar
	if !noProgress {
		req.Progress = func(contentLength int64) io.Writer {
			bar = newProgressBar(contentLength, adala.SaveFilename(req.RelativePath, req.SaveFilename))
			return bar
		}
	}

	path, err := client.Download(cmd.Context(), req)
	if bar != nil {
		bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), mcpserver.DownloadText(path))
	return nil
}

// newProgressBar returns a byte progress bar on stderr. A negative size
// renders as a spinner.
func newProgressBar(size int64, name string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(name),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
