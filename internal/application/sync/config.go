package sync

import (
	"fmt"
	"time"

	"github.com/raidsync/go-raid-sync/internal/playback"
)

// Config contains configuration for the sync command
type Config struct {
	// Data sources
	ReportCode string
	VideoID    string
	WatchPath  string

	// Service endpoints
	APIBaseURL   string
	AssetBaseURL string
	APIKey       string

	// Canvas settings
	ViewportWidth    int
	DevicePixelRatio float64

	// Refresh settings
	UIRefreshRate float64
	PollInterval  time.Duration

	// Snapshot output
	OutputDir string
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.ReportCode == "" {
		return fmt.Errorf("report code is required")
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = 1280
	}
	if c.DevicePixelRatio <= 0 {
		c.DevicePixelRatio = 1.0
	}
	if c.UIRefreshRate <= 0 {
		c.UIRefreshRate = 10
	}
	if c.PollInterval <= 0 {
		c.PollInterval = playback.DefaultPollInterval
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	return nil
}
