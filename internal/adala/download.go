// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adala

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	pdfExt          = ".pdf"
	defaultBaseName = "document"
)

// DownloadRequest describes one document download.
type DownloadRequest struct {
	// RelativePath is the server-relative document path, usually the
	// relative_path of a search result. It is not escaped or validated.
	RelativePath string

	// SaveFilename overrides the local file name. When empty the last
	// segment of RelativePath is used.
	SaveFilename string

	// Progress, if set, is called once the response headers arrive with the
	// Content-Length (-1 when unknown). The returned writer receives a copy
	// of every chunk written to disk.
	Progress func(contentLength int64) io.Writer
}

// SaveFilename returns the local file name for a download: saveFilename if
// set, else the last segment of relativePath, with ".pdf" appended unless
// the name already ends in it (case-insensitive). Directory components of
// saveFilename are dropped so the file always lands in the download dir.
func SaveFilename(relativePath, saveFilename string) string {
	name := saveFilename
	if name == "" {
		name = relativePath
	}
	name = baseName(name)
	if name == "" {
		name = defaultBaseName
	}
	if !strings.HasSuffix(strings.ToLower(name), pdfExt) {
		name += pdfExt
	}
	return name
}

// baseName returns the last path segment of p, treating both slash styles as
// separators. It returns "" for names with no usable segment.
func baseName(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	if strings.HasSuffix(p, "/") {
		return ""
	}
	b := path.Base(p)
	switch b {
	case ".", "..", "/":
		return ""
	}
	return b
}

// Download fetches the document at req.RelativePath into the configured
// download directory and returns the absolute path of the saved file.
//
// The body is streamed to a temporary file that is renamed over the target
// only after the copy completes, so a failed download never leaves a partial
// or replaced file at the target path. An existing file is overwritten.
func (c *Client) Download(ctx context.Context, req DownloadRequest) (string, error) {
	const op = "download"

	downloadURL := c.cfg.DocumentURL(req.RelativePath)

	if err := os.MkdirAll(c.cfg.DownloadDir, 0o755); err != nil {
		return "", newError(KindFilesystem, op, fmt.Errorf("creating directory %s: %w", c.cfg.DownloadDir, err))
	}

	destPath := filepath.Join(c.cfg.DownloadDir, SaveFilename(req.RelativePath, req.SaveFilename))
	absPath, err := filepath.Abs(destPath)
	if err != nil {
		return "", newError(KindFilesystem, op, fmt.Errorf("resolving %s: %w", destPath, err))
	}

	log := c.log.With().Str("url", downloadURL).Str("dest", absPath).Logger()
	log.Debug().Msg("downloading")

	ctx, cancel := context.WithTimeout(ctx, c.cfg.DownloadTimeout)
	defer cancel()

	resp, err := c.get(ctx, op, downloadURL, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	tmpFile, err := os.CreateTemp(filepath.Dir(absPath), ".download-*.tmp")
	if err != nil {
		return "", newError(KindFilesystem, op, fmt.Errorf("creating temp file: %w", err))
	}
	tmpPath := tmpFile.Name()

	var dst io.Writer = tmpFile
	if req.Progress != nil {
		if w := req.Progress(resp.ContentLength); w != nil {
			dst = io.MultiWriter(tmpFile, w)
		}
	}

	n, copyErr := io.Copy(dst, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		// The write side failing is a disk problem; anything else is the
		// connection dropping mid-body.
		if isWriteErr(copyErr, tmpFile) {
			return "", newError(KindFilesystem, op, fmt.Errorf("writing download: %w", copyErr))
		}
		return "", newError(KindTransport, op, fmt.Errorf("reading response body: %w", copyErr))
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", newError(KindFilesystem, op, fmt.Errorf("closing temp file: %w", closeErr))
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return "", newError(KindFilesystem, op, fmt.Errorf("setting file mode: %w", err))
	}
	if err := os.Rename(tmpPath, absPath); err != nil {
		os.Remove(tmpPath)
		return "", newError(KindFilesystem, op, fmt.Errorf("renaming temp file: %w", err))
	}

	log.Debug().Int64("bytes", n).Msg("download complete")
	return absPath, nil
}

// isWriteErr reports whether err came from writing to f.
func isWriteErr(err error, f *os.File) bool {
	var pe *os.PathError
	return errors.As(err, &pe) && pe.Path == f.Name()
}
