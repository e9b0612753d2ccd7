package render

import (
	"image"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raidsync/go-raid-sync/internal/core/model"
	"github.com/raidsync/go-raid-sync/internal/core/timeline"
)

// recordedOp is one surface call captured by the spy
type recordedOp struct {
	kind string
	x    float64
	y    float64
	w    float64
	h    float64
	text string
}

// spySurface records every draw call for culling and idempotence assertions
type spySurface struct {
	width  float64
	height float64
	ops    []recordedOp
}

func newSpySurface(w, h float64) *spySurface {
	return &spySurface{width: w, height: h}
}

func (s *spySurface) Size() (float64, float64) { return s.width, s.height }
func (s *spySurface) Clear(color.Color)        { s.ops = append(s.ops, recordedOp{kind: "clear"}) }
func (s *spySurface) FillRect(x, y, w, h float64, _ color.Color) {
	s.ops = append(s.ops, recordedOp{kind: "fillRect", x: x, y: y, w: w, h: h})
}
func (s *spySurface) StrokeRect(x, y, w, h, _ float64, _ color.Color) {
	s.ops = append(s.ops, recordedOp{kind: "strokeRect", x: x, y: y, w: w, h: h})
}
func (s *spySurface) Line(x1, y1, x2, y2, _ float64, _ color.Color) {
	s.ops = append(s.ops, recordedOp{kind: "line", x: x1, y: y1, w: x2 - x1, h: y2 - y1})
}
func (s *spySurface) FillCircle(x, y, r float64, _ color.Color) {
	s.ops = append(s.ops, recordedOp{kind: "circle", x: x, y: y, w: r})
}
func (s *spySurface) Text(str string, x, y float64, _ color.Color) {
	s.ops = append(s.ops, recordedOp{kind: "text", x: x, y: y, text: str})
}
func (s *spySurface) TextWidth(str string) float64 { return float64(len([]rune(str))) * 7 }
func (s *spySurface) DrawImage(_ image.Image, x, y, w, h float64) {
	s.ops = append(s.ops, recordedOp{kind: "image", x: x, y: y, w: w, h: h})
}

func (s *spySurface) opsOfKind(kind string) []recordedOp {
	var out []recordedOp
	for _, op := range s.ops {
		if op.kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// opsInLane filters ops whose y falls within a lane's bar rows
func (s *spySurface) opsInLane(lane Lane, kind string) []recordedOp {
	var out []recordedOp
	for _, op := range s.opsOfKind(kind) {
		if op.y >= lane.Top() && op.y < lane.Top()+LaneHeight {
			out = append(out, op)
		}
	}
	return out
}

func testReport() *model.Report {
	return &model.Report{
		Code:    "a1b2c3",
		Title:   "weekly clear",
		StartMS: 1700000000000,
		EndMS:   1700003600000, // 3600s
		Fights: []model.Fight{
			{ID: 1, Name: "Gatekeeper", StartMS: 600000, EndMS: 660000, Kill: true},
			{ID: 2, Name: "Archon", StartMS: 900000, EndMS: 1200000, Kill: false},
		},
	}
}

func baseScene() Scene {
	return Scene{
		Report:          testReport(),
		View:            timeline.Transform{Zoom: 1.0, Pan: 0},
		SelectedFightID: model.NoFight,
	}
}

func TestDrawIsIdempotent(t *testing.T) {
	scene := baseScene()
	scene.Video = &model.VideoMeta{ID: "v1", DurationSec: 3000}
	scene.HasCurrentTime = true
	scene.CurrentVideoSec = 120

	r := NewRenderer(nil)
	a := newSpySurface(800, CanvasHeight)
	b := newSpySurface(800, CanvasHeight)
	r.Draw(a, scene)
	r.Draw(b, scene)

	assert.Equal(t, a.ops, b.ops)
}

func TestDegenerateSceneRendersPlaceholder(t *testing.T) {
	r := NewRenderer(nil)

	scenes := []Scene{
		{},
		{Report: &model.Report{}},
		{Report: &model.Report{StartMS: 10, EndMS: 10, Fights: []model.Fight{{ID: 1}}}},
		{Report: testReport(), View: timeline.Transform{Zoom: 0}},
	}

	for i, scene := range scenes {
		s := newSpySurface(800, CanvasHeight)
		r.Draw(s, scene)
		assert.NotEmpty(t, s.opsOfKind("text"), "scene %d should draw a placeholder", i)
		assert.Empty(t, s.opsOfKind("fillRect"), "scene %d should draw no bars", i)
	}
}

func TestNonFiniteViewRendersPlaceholder(t *testing.T) {
	views := []timeline.Transform{
		{Zoom: 1, Pan: math.Inf(1)},
		{Zoom: 1, Pan: math.Inf(-1)},
		{Zoom: math.Inf(1), Pan: 0},
		{Zoom: math.NaN(), Pan: 0},
		{Zoom: 1, Pan: math.NaN()},
	}

	r := NewRenderer(nil)
	for i, view := range views {
		scene := baseScene()
		scene.View = view

		s := newSpySurface(800, CanvasHeight)
		done := make(chan struct{})
		go func() {
			r.Draw(s, scene)
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("view %d: Draw did not terminate", i)
		}
		assert.NotEmpty(t, s.opsOfKind("text"), "view %d should draw a placeholder", i)
		assert.Empty(t, s.opsOfKind("line"), "view %d should draw no grid", i)
	}
}

func TestFightBarCulling(t *testing.T) {
	scene := baseScene()
	// Zoom 1 px/s, pan far right of both fights: everything off-screen left
	scene.View = timeline.Transform{Zoom: 1.0, Pan: 3000}

	s := newSpySurface(400, CanvasHeight)
	NewRenderer(nil).Draw(s, scene)

	assert.Empty(t, s.opsInLane(LaneFights, "fillRect"),
		"off-screen fight bars must produce no draw calls")
}

func TestFightBarsVisibleAndColored(t *testing.T) {
	scene := baseScene()
	scene.View = timeline.Transform{Zoom: 1.0, Pan: 500}

	s := newSpySurface(800, CanvasHeight)
	NewRenderer(nil).Draw(s, scene)

	bars := s.opsInLane(LaneFights, "fillRect")
	require.Len(t, bars, 2)
	// Fight 1 spans [600,660]s -> pixels [100,160] at pan 500
	assert.InDelta(t, 100, bars[0].x, 1e-9)
	assert.InDelta(t, 60, bars[0].w, 1e-9)
}

func TestZeroDurationFightGetsMinimumWidth(t *testing.T) {
	scene := baseScene()
	scene.Report.Fights = []model.Fight{{ID: 7, Name: "Blip", StartMS: 600000, EndMS: 600000}}
	scene.View = timeline.Transform{Zoom: 1.0, Pan: 500}

	s := newSpySurface(800, CanvasHeight)
	NewRenderer(nil).Draw(s, scene)

	bars := s.opsInLane(LaneFights, "fillRect")
	require.Len(t, bars, 1)
	assert.GreaterOrEqual(t, bars[0].w, MinFightWidthPx)
}

func TestSelectedFightGetsHighlight(t *testing.T) {
	scene := baseScene()
	scene.View = timeline.Transform{Zoom: 1.0, Pan: 500}
	scene.SelectedFightID = 1

	s := newSpySurface(800, CanvasHeight)
	NewRenderer(nil).Draw(s, scene)

	assert.NotEmpty(t, s.opsInLane(LaneFights, "strokeRect"))
}

func TestEventsDrawnOnlyWhenFightSelected(t *testing.T) {
	scene := baseScene()
	scene.View = timeline.Transform{Zoom: 1.0, Pan: 500}
	scene.Events = []model.RaidEvent{
		{Kind: model.EventCast, TimestampMS: 610000},
		{Kind: model.EventDeath, TimestampMS: 630000},
	}

	s := newSpySurface(800, CanvasHeight)
	r := NewRenderer(nil)
	r.Draw(s, scene)
	assert.Empty(t, s.opsOfKind("circle"), "no selection, no markers")

	scene.SelectedFightID = 1
	s = newSpySurface(800, CanvasHeight)
	r.Draw(s, scene)

	casts := s.opsInLane(LaneCasts, "circle")
	deaths := s.opsInLane(LaneDeaths, "circle")
	require.Len(t, casts, 1)
	require.Len(t, deaths, 1)
	assert.InDelta(t, 110, casts[0].x, 1e-9)
	assert.InDelta(t, 130, deaths[0].x, 1e-9)
}

func TestEventMarkerCulling(t *testing.T) {
	scene := baseScene()
	scene.SelectedFightID = 1
	scene.View = timeline.Transform{Zoom: 1.0, Pan: 0}
	scene.Events = []model.RaidEvent{
		{Kind: model.EventCast, TimestampMS: 610000}, // pixel 610, beyond 400px viewport
	}

	s := newSpySurface(400, CanvasHeight)
	NewRenderer(nil).Draw(s, scene)
	assert.Empty(t, s.opsOfKind("circle"))
}

func TestCursorDrawnAtOffsetPosition(t *testing.T) {
	scene := baseScene()
	scene.View = timeline.Transform{Zoom: 1.0, Pan: 0}
	scene.VideoAnchorSec = 40 // offset +40s against logAnchor 0
	scene.HasCurrentTime = true
	scene.CurrentVideoSec = 100

	s := newSpySurface(800, CanvasHeight)
	NewRenderer(nil).Draw(s, scene)

	// Cursor is a full-height line at pixel 140
	var found bool
	for _, op := range s.opsOfKind("line") {
		if op.x == 140 && op.y == 0 && op.h == CanvasHeight {
			found = true
		}
	}
	assert.True(t, found, "expected cursor line at x=140")
}

func TestCursorOmittedOutsideViewport(t *testing.T) {
	scene := baseScene()
	scene.View = timeline.Transform{Zoom: 1.0, Pan: 0}
	scene.HasCurrentTime = true
	scene.CurrentVideoSec = 5000

	s := newSpySurface(400, CanvasHeight)
	NewRenderer(nil).Draw(s, scene)

	for _, op := range s.opsOfKind("line") {
		assert.False(t, op.y == 0 && op.h == CanvasHeight && op.x > s.width,
			"cursor must be culled outside the viewport")
	}
}

func TestVideoBarLockedBorder(t *testing.T) {
	scene := baseScene()
	scene.Video = &model.VideoMeta{ID: "v1", DurationSec: 3000}
	scene.View = timeline.Transform{Zoom: 0.1, Pan: -10}
	scene.Locked = true

	s := newSpySurface(800, CanvasHeight)
	NewRenderer(nil).Draw(s, scene)

	assert.NotEmpty(t, s.opsInLane(LaneVideo, "strokeRect"))
}

// stubIcons serves one fixed image for a known URL
type stubIcons struct{ img image.Image }

func (s stubIcons) Image(url string) image.Image {
	if url == "https://assets.example/bosses/101-icon.jpg" {
		return s.img
	}
	return nil
}

func TestFightIconDrawnWhenLoaded(t *testing.T) {
	scene := baseScene()
	scene.Report.Fights[0].IconURL = "https://assets.example/bosses/101-icon.jpg"
	scene.Report.Fights[1].IconURL = "https://assets.example/bosses/404-icon.jpg"
	scene.View = timeline.Transform{Zoom: 1.0, Pan: 500}

	icon := image.NewRGBA(image.Rect(0, 0, 8, 8))
	s := newSpySurface(800, CanvasHeight)
	NewRenderer(stubIcons{img: icon}).Draw(s, scene)

	// One icon present in the cache, the other URL falls back to no icon
	assert.Len(t, s.opsOfKind("image"), 1)
}

func TestLaneAt(t *testing.T) {
	lane, ok := LaneAt(1)
	require.True(t, ok)
	assert.Equal(t, LaneVideo, lane)

	lane, ok = LaneAt(LaneFights.Top() + 5)
	require.True(t, ok)
	assert.Equal(t, LaneFights, lane)

	_, ok = LaneAt(-1)
	assert.False(t, ok)
	_, ok = LaneAt(CanvasHeight + 1)
	assert.False(t, ok)
}
