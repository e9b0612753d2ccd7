// Package sync coordinates the alignment engine for the sync command: data
// loading, the offset model, the interaction controller, rendering, playback
// polling and live report reloads, all serialized through one event loop.
package sync

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/raidsync/go-raid-sync/internal/core/model"
	"github.com/raidsync/go-raid-sync/internal/core/offset"
	"github.com/raidsync/go-raid-sync/internal/data/fetcher"
	"github.com/raidsync/go-raid-sync/internal/data/icons"
	"github.com/raidsync/go-raid-sync/internal/interaction"
	"github.com/raidsync/go-raid-sync/internal/monitoring"
	"github.com/raidsync/go-raid-sync/internal/playback"
	input "github.com/raidsync/go-raid-sync/internal/presentation/interaction"
	"github.com/raidsync/go-raid-sync/internal/render"
	"github.com/raidsync/go-raid-sync/internal/util"
)

// panStepPx is how far one pan keypress shifts the view
const panStepPx = 50.0

// fightEvents carries an async event fetch result back to the event loop
type fightEvents struct {
	fightID int
	events  []model.RaidEvent
}

// Orchestrator coordinates all components for the sync command
type Orchestrator struct {
	config *Config
	state  *StateManager

	// Data components
	source  ReportSource
	icons   IconStore
	watcher ReportMonitor

	// Core components
	offsets    *offset.Model
	controller *interaction.Controller

	// Rendering
	renderer *render.Renderer
	surface  *render.ImageSurface

	// Playback
	player playback.Player
	poller *playback.TimePoller

	// Input
	input InputSource

	samples  chan float64
	eventsCh chan fightEvents

	confirmUnlock bool
}

// NewOrchestrator creates a new Orchestrator instance
func NewOrchestrator(config *Config) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	iconCache := icons.NewCache()
	state := NewStateManager()

	o := &Orchestrator{
		config:   config,
		state:    state,
		source:   fetcher.NewClient(config.APIBaseURL, config.AssetBaseURL, config.APIKey),
		icons:    iconCache,
		renderer: render.NewRenderer(iconCache),
		surface:  render.NewImageSurface(config.ViewportWidth, int(render.CanvasHeight), config.DevicePixelRatio),
		samples:  make(chan float64, 1),
		eventsCh: make(chan fightEvents, 1),
	}

	o.offsets = offset.New(func(offsetSec float64) {
		state.SetStatus("offset " + util.FormatOffset(offsetSec))
	})
	o.controller = interaction.NewController(o.offsets, interaction.Callbacks{
		OnFightSelect: o.handleFightSelect,
		OnSeekRequest: o.handleSeek,
		OnHoverChange: func(model.Hover) { state.MarkDirty() },
	})
	o.controller.SetViewport(float64(config.ViewportWidth), render.CanvasHeight)

	return o, nil
}

// Controller exposes the pointer-event entry point for embedding hosts
func (o *Orchestrator) Controller() *interaction.Controller {
	return o.controller
}

// Player exposes the active video backend
func (o *Orchestrator) Player() playback.Player {
	return o.player
}

// Run starts the orchestrator main loop
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo("Starting raid sync engine...")
	defer o.Close()

	// Phase 1: load the dataset
	report, err := o.source.FetchReport(ctx, o.config.ReportCode)
	if err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}

	var video *model.VideoMeta
	if o.config.VideoID != "" {
		video, err = o.source.FetchVideoMeta(ctx, o.config.VideoID)
		if err != nil {
			util.LogWarnf("Video metadata unavailable, alignment starts unlocked: %v", err)
			video = nil
		}
	}
	o.installDataset(report, video)

	// Phase 2: playback polling
	if o.player == nil {
		duration := 0.0
		if video != nil {
			duration = video.DurationSec
		}
		o.player = playback.NewClockPlayer(duration)
	}
	o.poller = playback.NewTimePoller(o.player, o.config.PollInterval, func(sec float64) {
		// Latest sample wins; the loop drains at the UI rate
		select {
		case o.samples <- sec:
		default:
		}
	})
	o.poller.Start()

	// Phase 3: live report monitoring
	var watchEvents <-chan *model.Report
	if o.config.WatchPath != "" {
		watcher, err := monitoring.NewReportWatcher(o.config.WatchPath, o.config.AssetBaseURL)
		if err != nil {
			return fmt.Errorf("failed to watch report document: %w", err)
		}
		o.watcher = watcher
		watchEvents = watcher.Events()
	}

	// Phase 4: keyboard
	var keyEvents <-chan input.KeyEvent
	if o.input == nil {
		keyboard, err := input.NewKeyboardReader()
		if err != nil {
			util.LogWarnf("Keyboard unavailable, running without input: %v", err)
		} else {
			o.input = keyboard
		}
	}
	if o.input != nil {
		keyEvents = o.input.Events()
	}

	// Phase 5: main event loop
	uiTicker := time.NewTicker(time.Duration(float64(time.Second) / o.config.UIRefreshRate))
	defer uiTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down raid sync engine...")
			return nil

		case <-uiTicker.C:
			if o.state.ConsumeDirty() {
				o.redraw()
			}

		case sec := <-o.samples:
			o.state.SetCurrentTime(sec)

		case report := <-watchEvents:
			o.handleReportUpdate(report)

		case fe := <-o.eventsCh:
			// Stale results for a deselected fight are dropped
			if o.controller.SelectedFight() == fe.fightID {
				o.controller.SetEvents(fe.events)
				o.state.SetEvents(fe.events)
			}

		case keyEvent := <-keyEvents:
			if o.handleKeyboard(keyEvent) {
				return nil
			}
			o.state.MarkDirty()
		}
	}
}

// installDataset wires a fresh report and video into every component
func (o *Orchestrator) installDataset(report *model.Report, video *model.VideoMeta) {
	o.state.SetReport(report)
	o.state.SetVideo(video)
	o.state.SetEvents(nil)

	var videoStart time.Time
	videoDuration := 0.0
	if video != nil {
		videoStart = video.PublishedAt
		videoDuration = video.DurationSec
	}
	o.offsets.Initialize(videoStart, report.StartTime(), videoDuration)
	o.controller.DataLoaded(report, video)

	urls := make([]string, 0, len(report.Fights))
	for _, f := range report.Fights {
		urls = append(urls, f.IconURL)
	}
	o.icons.Prefetch(urls)
}

// handleReportUpdate swaps in a live report snapshot. The offset survives:
// re-aligning on every export would throw away the user's work.
func (o *Orchestrator) handleReportUpdate(report *model.Report) {
	if report == nil {
		return
	}
	o.state.SetReport(report)
	o.state.SetEvents(nil)
	o.controller.DataLoaded(report, o.state.Video())

	urls := make([]string, 0, len(report.Fights))
	for _, f := range report.Fights {
		urls = append(urls, f.IconURL)
	}
	o.icons.Prefetch(urls)
	updatedAt := time.Unix(o.state.LastDataUpdate(), 0).Format("15:04:05")
	o.state.SetStatus(fmt.Sprintf("report reloaded at %s (%d fights)", updatedAt, len(report.Fights)))
	util.LogInfof("Live report updated: %d fights", len(report.Fights))
}

// handleFightSelect loads the selected fight's events off the event loop
func (o *Orchestrator) handleFightSelect(fightID int) {
	o.state.SetEvents(nil)
	report := o.state.Report()
	fight := report.FightByID(fightID)
	if fight == nil {
		return
	}

	go func(f model.Fight) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		events, err := o.source.FetchEvents(ctx, report.Code, f)
		if err != nil {
			util.LogErrorf("Failed to load events for fight %d: %v", f.ID, err)
			return
		}
		// Latest selection wins when results arrive out of order
		result := fightEvents{fightID: f.ID, events: events}
		select {
		case o.eventsCh <- result:
		default:
			select {
			case <-o.eventsCh:
			default:
			}
			o.eventsCh <- result
		}
	}(*fight)
}

// handleSeek forwards an event-marker seek to the video backend
func (o *Orchestrator) handleSeek(videoTimeSec float64) {
	if o.player == nil {
		return
	}
	if err := o.player.Seek(videoTimeSec); err != nil {
		util.LogWarnf("Seek to %.1fs failed: %v", videoTimeSec, err)
		return
	}
	o.state.MarkDirty()
}

// handleKeyboard handles keyboard events; returns true to exit
func (o *Orchestrator) handleKeyboard(event input.KeyEvent) bool {
	switch event.Type {
	case input.KeyChar:
		switch event.Key {
		case 'q', 'Q', 3: // 'q', 'Q', or Ctrl+C
			return true
		case ' ':
			o.togglePlayback()
		case 'l', 'L':
			o.toggleLock()
		case 's', 'S':
			o.snapshot()
		case '+', '=':
			o.controller.Wheel(float64(o.config.ViewportWidth)/2, 1)
		case '-', '_':
			o.controller.Wheel(float64(o.config.ViewportWidth)/2, -1)
		case '[':
			o.controller.PanBy(-panStepPx)
		case ']':
			o.controller.PanBy(panStepPx)
		default:
			if event.Key >= '1' && event.Key <= '9' {
				o.selectFightByIndex(int(event.Key - '1'))
			}
		}
	case input.KeyLeft:
		o.offsets.SetOffset(o.offsets.Offset() - 0.5)
	case input.KeyRight:
		o.offsets.SetOffset(o.offsets.Offset() + 0.5)
	case input.KeyUp:
		o.controller.Wheel(float64(o.config.ViewportWidth)/2, 1)
	case input.KeyDown:
		o.controller.Wheel(float64(o.config.ViewportWidth)/2, -1)
	case input.KeyEscape:
		return true
	}
	return false
}

func (o *Orchestrator) togglePlayback() {
	if o.player == nil {
		return
	}
	var err error
	if o.state.Playing() {
		err = o.player.Pause()
	} else {
		err = o.player.Play()
	}
	if err != nil {
		util.LogWarnf("Playback toggle failed: %v", err)
		return
	}
	o.state.SetPlaying(!o.state.Playing())
}

// toggleLock locks a manual alignment, or unlocks the model. Unlocking an
// auto-synced offset requires pressing the key twice.
func (o *Orchestrator) toggleLock() {
	if !o.offsets.Locked() {
		o.offsets.Lock()
		o.confirmUnlock = false
		return
	}

	if o.offsets.Unlock(func() bool { return o.confirmUnlock }) {
		o.confirmUnlock = false
		return
	}
	o.confirmUnlock = true
	o.state.SetStatus("offset was auto-synced, press l again to unlock")
}

func (o *Orchestrator) selectFightByIndex(idx int) {
	report := o.state.Report()
	if report == nil || idx < 0 || idx >= len(report.Fights) {
		return
	}
	o.controller.SelectFight(report.Fights[idx].ID)
}

// redraw paints the current scene into the frame surface
func (o *Orchestrator) redraw() {
	currentSec, hasCurrent := o.state.CurrentTime()
	scene := render.Scene{
		Report:          o.state.Report(),
		Video:           o.state.Video(),
		Events:          o.state.Events(),
		View:            o.controller.View(),
		VideoAnchorSec:  o.offsets.VideoAnchor(),
		LogAnchorSec:    o.offsets.LogAnchor(),
		Locked:          o.offsets.Locked(),
		DraggingAnchor:  o.offsets.Dragging(),
		SelectedFightID: o.controller.SelectedFight(),
		Hover:           o.controller.Hover(),
		CurrentVideoSec: currentSec,
		HasCurrentTime:  hasCurrent,
	}
	o.renderer.Draw(o.surface, scene)
}

// snapshot writes the current frame to a timestamped PNG
func (o *Orchestrator) snapshot() {
	o.redraw()
	path := filepath.Join(o.config.OutputDir,
		fmt.Sprintf("sync-%s-%s.png", o.config.ReportCode, time.Now().Format("20060102-150405")))
	if err := o.surface.SavePNG(path); err != nil {
		util.LogErrorf("Failed to save snapshot: %v", err)
		return
	}
	util.LogInfof("Saved snapshot to %s", path)
}

// Close cleans up all resources
func (o *Orchestrator) Close() error {
	if o.poller != nil {
		o.poller.Stop()
	}
	if o.watcher != nil {
		if err := o.watcher.Close(); err != nil {
			util.LogWarnf("Failed to close report watcher: %v", err)
		}
	}
	if o.input != nil {
		if err := o.input.Close(); err != nil {
			util.LogWarnf("Failed to restore terminal: %v", err)
		}
	}
	o.controller.Teardown()
	o.icons.Close()
	return nil
}
