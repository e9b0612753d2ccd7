package sync

import (
	"sync"
	"time"

	"github.com/raidsync/go-raid-sync/internal/core/model"
)

// StateManager holds the shared dataset and frame state behind a lock. The
// event loop mutates it; the poller and watcher goroutines only reach it
// through these accessors.
type StateManager struct {
	mu sync.RWMutex

	report *model.Report
	video  *model.VideoMeta
	events []model.RaidEvent

	currentVideoSec float64
	hasCurrentTime  bool
	playing         bool

	statusMessage  string
	dirty          bool
	lastDataUpdate int64
}

// NewStateManager creates an empty state manager marked dirty so the first
// tick paints a frame
func NewStateManager() *StateManager {
	return &StateManager{dirty: true}
}

// Report returns the current report snapshot
func (sm *StateManager) Report() *model.Report {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.report
}

// SetReport installs a new report snapshot
func (sm *StateManager) SetReport(report *model.Report) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.report = report
	sm.lastDataUpdate = time.Now().Unix()
	sm.dirty = true
}

// Video returns the current video metadata
func (sm *StateManager) Video() *model.VideoMeta {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.video
}

// SetVideo installs video metadata
func (sm *StateManager) SetVideo(video *model.VideoMeta) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.video = video
	sm.dirty = true
}

// Events returns the selected fight's events
func (sm *StateManager) Events() []model.RaidEvent {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.events
}

// SetEvents replaces the selected fight's events
func (sm *StateManager) SetEvents(events []model.RaidEvent) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.events = events
	sm.dirty = true
}

// CurrentTime returns the last sampled playback position and whether one
// exists yet
func (sm *StateManager) CurrentTime() (float64, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentVideoSec, sm.hasCurrentTime
}

// SetCurrentTime records a playback time sample. Unchanged samples do not
// mark the frame dirty, so a paused player stops triggering redraws.
func (sm *StateManager) SetCurrentTime(sec float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.hasCurrentTime && sm.currentVideoSec == sec {
		return
	}
	sm.currentVideoSec = sec
	sm.hasCurrentTime = true
	sm.dirty = true
}

// Playing reports the playback toggle state
func (sm *StateManager) Playing() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.playing
}

// SetPlaying records the playback toggle state
func (sm *StateManager) SetPlaying(playing bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.playing = playing
	sm.dirty = true
}

// Status returns the one-line status message
func (sm *StateManager) Status() string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.statusMessage
}

// SetStatus replaces the one-line status message
func (sm *StateManager) SetStatus(message string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.statusMessage = message
	sm.dirty = true
}

// MarkDirty requests a repaint on the next UI tick
func (sm *StateManager) MarkDirty() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.dirty = true
}

// ConsumeDirty reports whether a repaint is due and clears the flag
func (sm *StateManager) ConsumeDirty() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	dirty := sm.dirty
	sm.dirty = false
	return dirty
}

// LastDataUpdate returns the unix timestamp of the last report install
func (sm *StateManager) LastDataUpdate() int64 {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.lastDataUpdate
}
