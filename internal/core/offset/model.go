// Package offset holds the linear relationship between video playback time
// and combat-log time. The relationship is represented as two anchors on a
// shared timeline whose origin is the log start; the scalar offset is their
// difference. Contract: logTime = videoTime + offset, so the video must be
// seeked to logTime - offset to show a log moment.
package offset

import (
	"math"
	"time"

	"github.com/raidsync/go-raid-sync/internal/util"
)

// Anchor identifies which lane anchor a drag is moving
type Anchor int

const (
	AnchorVideo Anchor = iota
	AnchorLog
)

// State is the editing mode of the model
type State int

const (
	// Unlocked allows anchor drags; the offset is re-derived on every move
	Unlocked State = iota
	// Locked freezes the offset; anchor drags are ignored
	Locked
)

const (
	// MaxAutoSyncGapSec is the largest wall-clock gap between video and log
	// start for which the timestamp heuristic is trusted
	MaxAutoSyncGapSec = 86400.0

	// DefaultGapSec separates the video bar from the log bar when no
	// heuristic applies. The placement is visual only and carries no offset
	// meaning until the user aligns and locks.
	DefaultGapSec = 30.0
)

// Model is the offset state machine. It is mutated only from the UI event
// loop; no locking is required.
type Model struct {
	state      State
	autoSynced bool

	videoAnchorSec float64
	logAnchorSec   float64

	dragging bool
	onChange func(offsetSec float64)
}

// New creates an unlocked model. onChange receives every derived offset
// value; it may be nil.
func New(onChange func(offsetSec float64)) *Model {
	return &Model{onChange: onChange}
}

// State returns the current editing mode
func (m *Model) State() State {
	return m.state
}

// Locked reports whether anchor editing is frozen
func (m *Model) Locked() bool {
	return m.state == Locked
}

// AutoSynced reports whether the current lock came from the timestamp
// heuristic rather than manual alignment
func (m *Model) AutoSynced() bool {
	return m.autoSynced
}

// Offset returns the scalar offset in seconds: videoAnchor - logAnchor
func (m *Model) Offset() float64 {
	return m.videoAnchorSec - m.logAnchorSec
}

// VideoAnchor returns the video lane position on the shared timeline
func (m *Model) VideoAnchor() float64 {
	return m.videoAnchorSec
}

// LogAnchor returns the log lane position on the shared timeline
func (m *Model) LogAnchor() float64 {
	return m.logAnchorSec
}

// Dragging reports whether an anchor drag is in progress
func (m *Model) Dragging() bool {
	return m.dragging
}

// Initialize derives the starting state from wall-clock timestamps. When both
// the video and log start times are known and within MaxAutoSyncGapSec of
// each other, the model locks with offset = videoStart - logStart, the value
// that makes wall clocks coincide under logTime = videoTime + offset.
// Otherwise the model stays unlocked with the video bar parked just before
// the log lane for visual separation.
func (m *Model) Initialize(videoStart, logStart time.Time, videoDurationSec float64) {
	m.logAnchorSec = 0
	m.dragging = false

	if !videoStart.IsZero() && !logStart.IsZero() {
		diff := videoStart.Sub(logStart).Seconds()
		if math.Abs(diff) <= MaxAutoSyncGapSec {
			m.videoAnchorSec = diff
			m.state = Locked
			m.autoSynced = true
			util.LogInfof("Auto-synced offset from timestamps: %s", util.FormatOffset(diff))
			m.notify()
			return
		}
		util.LogWarnf("Timestamp gap %.0fs exceeds auto-sync threshold, manual alignment required", math.Abs(diff))
	}

	if videoDurationSec < 0 || math.IsNaN(videoDurationSec) || math.IsInf(videoDurationSec, 0) {
		videoDurationSec = 0
	}
	m.videoAnchorSec = -(videoDurationSec + DefaultGapSec)
	m.state = Unlocked
	m.autoSynced = false
}

// SetOffset applies a manually entered offset and locks the model
func (m *Model) SetOffset(offsetSec float64) {
	if math.IsNaN(offsetSec) || math.IsInf(offsetSec, 0) {
		util.LogWarn("Ignoring non-finite manual offset")
		return
	}
	m.videoAnchorSec = m.logAnchorSec + offsetSec
	m.state = Locked
	m.autoSynced = false
	m.dragging = false
	m.notify()
}

// Lock freezes the currently derived offset
func (m *Model) Lock() {
	if m.state == Locked {
		return
	}
	m.state = Locked
	m.dragging = false
	util.LogInfof("Offset locked at %s", util.FormatOffset(m.Offset()))
}

// Unlock re-enables anchor editing. An auto-synced lock is a safety gate:
// confirm is consulted first and a false answer leaves the lock in place.
// Returns whether the model is unlocked afterwards.
func (m *Model) Unlock(confirm func() bool) bool {
	if m.state == Unlocked {
		return true
	}
	if m.autoSynced {
		if confirm == nil || !confirm() {
			util.LogDebug("Unlock of auto-synced offset not confirmed")
			return false
		}
	}
	m.state = Unlocked
	m.autoSynced = false
	util.LogInfo("Offset unlocked for manual alignment")
	return true
}

// DragAnchor moves an anchor by a pixel delta at the given zoom. While
// locked, drags are ignored entirely. The host is notified of the re-derived
// offset on every move.
func (m *Model) DragAnchor(which Anchor, deltaPx, zoom float64) {
	if m.state == Locked || zoom <= 0 {
		return
	}
	deltaSec := deltaPx / zoom
	if math.IsNaN(deltaSec) || math.IsInf(deltaSec, 0) {
		return
	}

	m.dragging = true
	switch which {
	case AnchorVideo:
		m.videoAnchorSec += deltaSec
	case AnchorLog:
		m.logAnchorSec += deltaSec
	}
	m.notify()
}

// EndDrag finishes an anchor drag and always flushes a final offset
// notification for the drag that was active.
func (m *Model) EndDrag() {
	if !m.dragging {
		return
	}
	m.dragging = false
	m.notify()
}

// VideoToLog converts a video playback time to log time
func (m *Model) VideoToLog(videoSec float64) float64 {
	return videoSec + m.Offset()
}

// LogToVideo converts a log time to the video time to seek to
func (m *Model) LogToVideo(logSec float64) float64 {
	return logSec - m.Offset()
}

func (m *Model) notify() {
	if m.onChange != nil {
		m.onChange(m.Offset())
	}
}
