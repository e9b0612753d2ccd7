package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	appsync "github.com/raidsync/go-raid-sync/internal/application/sync"
)

var (
	// Data source flags
	syncVideoID   string
	syncWatchPath string

	// Canvas flags
	syncViewportWidth int
	syncPixelRatio    float64

	// Refresh flags
	syncRefreshPerSecond float64
	syncPollInterval     time.Duration

	// Snapshot flags
	syncOutputDir string
)

var syncCmd = &cobra.Command{
	Use:   "sync <report-code>",
	Short: "Interactively align a report with a video recording",
	Long: `Runs the alignment engine: a dual-lane timeline of the report's fights
and the video recording, with a draggable offset between them.

Keys:
  space    play/pause the video clock
  left     nudge offset -0.5s      right    nudge offset +0.5s
  up/+     zoom in                 down/-   zoom out
  [        pan view left           ]        pan view right
  1-9      select a fight and load its events
  l        lock/unlock the offset (twice to unlock an auto-synced one)
  s        save a PNG snapshot of the canvas
  q/esc    quit`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	// Data source flags
	syncCmd.Flags().StringVar(&syncVideoID, "video", "",
		"Video id to align against")
	syncCmd.Flags().StringVar(&syncWatchPath, "watch", "",
		"Path of a live-exported report document to reload on change")

	// Canvas flags
	syncCmd.Flags().IntVar(&syncViewportWidth, "width", 1280,
		"Canvas width in logical pixels")
	syncCmd.Flags().Float64Var(&syncPixelRatio, "pixel-ratio", 1.0,
		"Device pixel ratio for snapshot rendering")

	// Refresh flags
	syncCmd.Flags().Float64Var(&syncRefreshPerSecond, "refresh-per-second", 10,
		"Canvas refresh rate (0.1-60 Hz)")
	syncCmd.Flags().DurationVar(&syncPollInterval, "poll-interval", 100*time.Millisecond,
		"Playback time poll interval")

	// Snapshot flags
	syncCmd.Flags().StringVar(&syncOutputDir, "output-dir", ".",
		"Directory for PNG snapshots")
}

func runSync(cmd *cobra.Command, args []string) error {
	initLogging()

	if syncRefreshPerSecond < 0.1 || syncRefreshPerSecond > 60 {
		return fmt.Errorf("refresh-per-second must be between 0.1 and 60")
	}

	config := &appsync.Config{
		ReportCode:       args[0],
		VideoID:          syncVideoID,
		WatchPath:        syncWatchPath,
		APIBaseURL:       apiBaseURL,
		AssetBaseURL:     assetBaseURL,
		APIKey:           resolveAPIKey(),
		ViewportWidth:    syncViewportWidth,
		DevicePixelRatio: syncPixelRatio,
		UIRefreshRate:    syncRefreshPerSecond,
		PollInterval:     syncPollInterval,
		OutputDir:        expandPath(syncOutputDir),
	}

	orchestrator, err := appsync.NewOrchestrator(config)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		cancel()
	}()

	return orchestrator.Run(ctx)
}
