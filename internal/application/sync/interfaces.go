package sync

import (
	"context"
	"image"

	"github.com/raidsync/go-raid-sync/internal/core/model"
	input "github.com/raidsync/go-raid-sync/internal/presentation/interaction"
)

// ReportSource fetches reports, events and video metadata from the
// combat-log service
type ReportSource interface {
	// FetchReport retrieves a report's fight list and wall-clock bounds
	FetchReport(ctx context.Context, code string) (*model.Report, error)
	// FetchEvents retrieves the death and cast events inside a fight
	FetchEvents(ctx context.Context, code string, fight model.Fight) ([]model.RaidEvent, error)
	// FetchVideoMeta retrieves a video's duration and publish timestamp
	FetchVideoMeta(ctx context.Context, videoID string) (*model.VideoMeta, error)
}

// IconStore caches boss icon images
type IconStore interface {
	// Prefetch starts background fetches for any URLs not already known
	Prefetch(urls []string)
	// Image returns a decoded icon, or nil when unavailable. Never blocks.
	Image(url string) image.Image
	// Close waits for in-flight fetches to finish
	Close()
}

// ReportMonitor emits report snapshots when the watched document changes
type ReportMonitor interface {
	// Events returns the channel of decoded report snapshots
	Events() <-chan *model.Report
	// Close stops monitoring and cleans up resources
	Close() error
}

// InputSource delivers keyboard events
type InputSource interface {
	// Events returns a channel of keyboard events
	Events() <-chan input.KeyEvent
	// Close cleans up input handler resources
	Close() error
}
