package offset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeAutoSyncWithinThreshold(t *testing.T) {
	logStart := time.Unix(1700000000, 0)

	tests := []struct {
		name       string
		gapSec     float64
		wantLocked bool
	}{
		{name: "just inside one day", gapSec: 86399, wantLocked: true},
		{name: "exactly one day", gapSec: 86400, wantLocked: true},
		{name: "just outside one day", gapSec: 86401, wantLocked: false},
		{name: "video before log", gapSec: -86399, wantLocked: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(nil)
			videoStart := logStart.Add(time.Duration(tt.gapSec * float64(time.Second)))
			m.Initialize(videoStart, logStart, 3600)

			if tt.wantLocked {
				assert.Equal(t, Locked, m.State())
				assert.True(t, m.AutoSynced())
				assert.InDelta(t, tt.gapSec, m.Offset(), 1e-9)
			} else {
				assert.Equal(t, Unlocked, m.State())
				assert.False(t, m.AutoSynced())
			}
		})
	}
}

func TestInitializeWithoutTimestampsParksVideoBar(t *testing.T) {
	m := New(nil)
	m.Initialize(time.Time{}, time.Unix(1700000000, 0), 900)

	assert.Equal(t, Unlocked, m.State())
	// Video bar ends DefaultGapSec before the log lane start
	assert.InDelta(t, -(900 + DefaultGapSec), m.VideoAnchor(), 1e-9)
	assert.Equal(t, 0.0, m.LogAnchor())
}

func TestOffsetSymmetry(t *testing.T) {
	m := New(nil)
	logStart := time.Unix(1700000000, 0)
	m.Initialize(logStart.Add(42*time.Second), logStart, 3600)
	require.Equal(t, Locked, m.State())

	// logTime = videoTime + offset must hold both ways
	videoSec := 100.0
	logSec := m.VideoToLog(videoSec)
	assert.InDelta(t, videoSec+m.Offset(), logSec, 1e-9)
	assert.InDelta(t, videoSec, m.LogToVideo(logSec), 1e-9)
}

func TestDragAnchorDerivesOffsetFromDifference(t *testing.T) {
	var notified []float64
	m := New(func(sec float64) { notified = append(notified, sec) })
	m.Initialize(time.Time{}, time.Unix(1700000000, 0), 0)

	// 50px right at 2 px/s moves the video anchor +25s
	start := m.VideoAnchor()
	m.DragAnchor(AnchorVideo, 50, 2)
	assert.InDelta(t, start+25, m.VideoAnchor(), 1e-9)
	assert.InDelta(t, m.VideoAnchor()-m.LogAnchor(), m.Offset(), 1e-9)
	require.Len(t, notified, 1)

	// Dragging the log anchor changes the offset the other way
	before := m.Offset()
	m.DragAnchor(AnchorLog, 50, 2)
	assert.InDelta(t, before-25, m.Offset(), 1e-9)
	assert.Len(t, notified, 2)
}

func TestEndDragFlushesFinalNotification(t *testing.T) {
	var notified []float64
	m := New(func(sec float64) { notified = append(notified, sec) })
	m.Initialize(time.Time{}, time.Time{}, 0)

	m.DragAnchor(AnchorVideo, 10, 1)
	m.EndDrag()
	assert.Len(t, notified, 2)
	assert.Equal(t, notified[0], notified[1])

	// A second EndDrag with no drag active is a no-op
	m.EndDrag()
	assert.Len(t, notified, 2)
}

func TestLockGateIgnoresDrags(t *testing.T) {
	m := New(nil)
	logStart := time.Unix(1700000000, 0)
	m.Initialize(logStart.Add(10*time.Second), logStart, 3600)
	require.True(t, m.Locked())

	before := m.Offset()
	m.DragAnchor(AnchorVideo, 100, 1)
	m.DragAnchor(AnchorLog, -100, 1)
	m.EndDrag()
	assert.Equal(t, before, m.Offset())
	assert.False(t, m.Dragging())
}

func TestUnlockAutoSyncedRequiresConfirmation(t *testing.T) {
	m := New(nil)
	logStart := time.Unix(1700000000, 0)
	m.Initialize(logStart.Add(10*time.Second), logStart, 3600)
	require.True(t, m.AutoSynced())

	assert.False(t, m.Unlock(func() bool { return false }))
	assert.True(t, m.Locked())

	assert.False(t, m.Unlock(nil))
	assert.True(t, m.Locked())

	assert.True(t, m.Unlock(func() bool { return true }))
	assert.False(t, m.Locked())
	assert.False(t, m.AutoSynced())
}

func TestManualLockDoesNotRequireConfirmation(t *testing.T) {
	m := New(nil)
	m.Initialize(time.Time{}, time.Time{}, 0)

	m.DragAnchor(AnchorVideo, 100, 1)
	m.EndDrag()
	m.Lock()
	require.True(t, m.Locked())
	assert.False(t, m.AutoSynced())

	confirmCalled := false
	assert.True(t, m.Unlock(func() bool { confirmCalled = true; return false }))
	assert.False(t, confirmCalled)
}

func TestSetOffsetLocksManually(t *testing.T) {
	var notified []float64
	m := New(func(sec float64) { notified = append(notified, sec) })
	m.Initialize(time.Time{}, time.Time{}, 0)

	m.SetOffset(-12.5)
	assert.True(t, m.Locked())
	assert.False(t, m.AutoSynced())
	assert.InDelta(t, -12.5, m.Offset(), 1e-9)
	assert.NotEmpty(t, notified)
}

func TestSeekMappingConvention(t *testing.T) {
	m := New(nil)
	m.Initialize(time.Time{}, time.Time{}, 0)
	m.SetOffset(-10)

	// videoTime = logTime - offset
	assert.InDelta(t, 315.0, m.LogToVideo(305.0), 1e-9)
	m.SetOffset(10)
	assert.InDelta(t, 295.0, m.LogToVideo(305.0), 1e-9)
}
