// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the origin of the Adala legal-document portal.
	DefaultBaseURL = "https://adala.justice.gov.ma"

	// DefaultBuildID is the Next.js build ID baked into the portal's data
	// endpoint path. It changes whenever the site is redeployed; run
	// `adala-mcp build-id` to see the current value and update the config.
	DefaultBuildID = "THP5ZL1eNCinRAZ1hWfN0"

	// DefaultUserAgent mimics a desktop browser. The portal rejects
	// requests without one.
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	DefaultTimeout         = 30 * time.Second
	DefaultDownloadTimeout = 10 * time.Minute
	DefaultDownloadDir     = "downloads"
	DefaultLimit           = 5
)

// HTTPConfig holds shared HTTP settings used for every outbound request.
type HTTPConfig struct {
	// Timeout bounds the wait for response headers, and for searches the
	// whole request.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// DownloadTimeout bounds a whole document download, body included.
	DownloadTimeout time.Duration `json:"download_timeout" yaml:"download_timeout" mapstructure:"download_timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// Config is the process-wide configuration. It is built once at startup and
// passed by value; nothing mutates it afterwards.
type Config struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the portal origin without a trailing slash.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// BuildID is the versioned path segment of the search data endpoint.
	BuildID string `json:"build_id" yaml:"build_id" mapstructure:"build_id"`

	// DownloadDir receives downloaded documents. Relative paths resolve
	// against the process working directory.
	DownloadDir string `json:"download_dir" yaml:"download_dir" mapstructure:"download_dir"`

	// DefaultLimit is the search limit used when a caller omits one.
	DefaultLimit int `json:"default_limit" yaml:"default_limit" mapstructure:"default_limit"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		HTTPConfig: HTTPConfig{
			Timeout:         DefaultTimeout,
			DownloadTimeout: DefaultDownloadTimeout,
			UserAgent:       DefaultUserAgent,
		},
		BaseURL:      DefaultBaseURL,
		BuildID:      DefaultBuildID,
		DownloadDir:  DefaultDownloadDir,
		DefaultLimit: DefaultLimit,
	}
}

// Normalize trims a trailing slash from BaseURL and fills zero values from
// DefaultConfig.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.BuildID = strings.TrimSpace(c.BuildID)
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.Timeout == 0 {
		c.Timeout = def.Timeout
	}
	if c.DownloadTimeout == 0 {
		c.DownloadTimeout = def.DownloadTimeout
	}
	if c.DownloadDir == "" {
		c.DownloadDir = def.DownloadDir
	}
	if c.DefaultLimit == 0 {
		c.DefaultLimit = def.DefaultLimit
	}
	return c
}

// Validate reports the first configuration problem found, if any.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url %q must use http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url %q has no host", c.BaseURL)
	}
	if c.BuildID == "" {
		return fmt.Errorf("build_id is required")
	}
	if strings.Contains(c.BuildID, "/") {
		return fmt.Errorf("build_id %q must be a single path segment", c.BuildID)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.DownloadTimeout <= 0 {
		return fmt.Errorf("download_timeout must be positive, got %v", c.DownloadTimeout)
	}
	if c.DownloadDir == "" {
		return fmt.Errorf("download_dir is required")
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	return nil
}

// SearchURL returns the server-rendered data endpoint for the search page.
func (c Config) SearchURL() string {
	return c.BaseURL + "/_next/data/" + c.BuildID + "/fr/search.json"
}

// DocumentURL returns the API URL that serves the file at relativePath.
// The path is concatenated as-is.
func (c Config) DocumentURL(relativePath string) string {
	return c.BaseURL + "/api/" + relativePath
}

// PublicURL returns the browser-facing URL for relativePath.
func (c Config) PublicURL(relativePath string) string {
	return c.BaseURL + "/" + relativePath
}
