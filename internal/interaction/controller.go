// Package interaction translates pointer events into mutations of zoom, pan,
// offset and selection. Drag state is a sum type so only one drag can ever be
// active; hit-testing shares its geometry with the renderer's lane layout.
package interaction

import (
	"math"

	"github.com/raidsync/go-raid-sync/internal/core/model"
	"github.com/raidsync/go-raid-sync/internal/core/offset"
	"github.com/raidsync/go-raid-sync/internal/core/timeline"
	"github.com/raidsync/go-raid-sync/internal/render"
	"github.com/raidsync/go-raid-sync/internal/util"
)

const (
	// EventHitRadiusPx is how close the pointer must be to an event marker
	EventHitRadiusPx = 6.0

	// wheelZoomInFactor and wheelZoomOutFactor scale zoom per wheel notch
	wheelZoomInFactor  = 1.1
	wheelZoomOutFactor = 0.9
)

// Callbacks are the host notifications the controller emits. Any field may
// be nil. Offset changes are reported by the offset model itself.
type Callbacks struct {
	OnFightSelect func(fightID int)
	OnSeekRequest func(videoTimeSec float64)
	OnHoverChange func(h model.Hover)
}

// dragState is a tagged variant: exactly one drag (or none) at a time
type dragState interface{ isDragState() }

type dragNone struct{}

type dragPan struct {
	startX   float64
	startPan float64
}

type dragAnchor struct {
	which offset.Anchor
	lastX float64
}

func (dragNone) isDragState()   {}
func (dragPan) isDragState()    {}
func (dragAnchor) isDragState() {}

// Controller owns the view transform and transient selection/hover state and
// mediates every pointer gesture. All methods run on the UI event loop.
type Controller struct {
	offsets *offset.Model
	cb      Callbacks

	report *model.Report
	video  *model.VideoMeta
	events []model.RaidEvent

	view      timeline.Transform
	viewportW float64
	viewportH float64

	selected int
	hover    model.Hover
	drag     dragState
	torn     bool
}

// NewController creates a controller bound to an offset model
func NewController(offsets *offset.Model, cb Callbacks) *Controller {
	return &Controller{
		offsets:  offsets,
		cb:       cb,
		selected: model.NoFight,
		drag:     dragNone{},
	}
}

// View returns the current view transform
func (c *Controller) View() timeline.Transform {
	return c.view
}

// SetView overrides the view transform directly
func (c *Controller) SetView(v timeline.Transform) {
	c.view = v
}

// SelectedFight returns the selected fight id, or model.NoFight
func (c *Controller) SelectedFight() int {
	return c.selected
}

// Hover returns the current hover state
func (c *Controller) Hover() model.Hover {
	return c.hover
}

// Dragging reports whether any drag is active
func (c *Controller) Dragging() bool {
	_, idle := c.drag.(dragNone)
	return !idle
}

// SetViewport records the canvas size and refits the view when data is
// already loaded and no gesture has been made yet
func (c *Controller) SetViewport(w, h float64) {
	c.viewportW = w
	c.viewportH = h
}

// DataLoaded installs a fresh dataset snapshot and computes the initial fit:
// the whole report plus edge padding, centered.
func (c *Controller) DataLoaded(report *model.Report, video *model.VideoMeta) {
	c.report = report
	c.video = video
	c.events = nil
	c.selected = model.NoFight
	c.setHover(model.Hover{})
	c.drag = dragNone{}

	if report != nil && c.viewportW > 0 {
		c.view = timeline.Fit(c.offsets.LogAnchor(), c.offsets.LogAnchor()+report.DurationSec(), c.viewportW)
	}
}

// SetEvents replaces the selected fight's event set wholesale
func (c *Controller) SetEvents(events []model.RaidEvent) {
	c.events = events
}

// SelectFight selects a fight and zooms the view so the fight fills the
// viewport, centered. Repeatable: same fight and viewport give the same view.
func (c *Controller) SelectFight(fightID int) {
	f := c.report.FightByID(fightID)
	if f == nil {
		util.LogWarnf("Ignoring selection of unknown fight %d", fightID)
		return
	}

	c.selected = fightID
	c.events = nil

	zoom := timeline.FightZoom(f.DurationSec(), c.viewportW)
	start := c.offsets.LogAnchor() + f.StartSec()
	end := c.offsets.LogAnchor() + f.EndSec()
	c.view = timeline.CenterOn(zoom, start, end, c.viewportW)

	if c.cb.OnFightSelect != nil {
		c.cb.OnFightSelect(fightID)
	}
}

// Wheel applies pointer-anchored multiplicative zoom. Positive notches zoom
// in. The zoom is floored so the report (plus edge padding) never becomes
// narrower than the viewport.
func (c *Controller) Wheel(x float64, notches int) {
	if c.torn || notches == 0 {
		return
	}
	x = clamp(x, 0, c.viewportW)

	factor := 1.0
	for i := 0; i < notches; i++ {
		factor *= wheelZoomInFactor
	}
	for i := 0; i > notches; i-- {
		factor *= wheelZoomOutFactor
	}

	floor := 0.0
	if c.report != nil {
		floor = timeline.FitZoom(c.report.DurationSec(), c.viewportW, timeline.EdgePaddingSec)
	}
	c.view = c.view.ZoomAt(x, factor, floor)
}

// PanBy shifts the view by dx pixels, positive dx moving the content left
func (c *Controller) PanBy(dx float64) {
	if c.torn || dx == 0 {
		return
	}
	c.view = c.view.Panned(dx)
}

// PointerDown starts a gesture. Hit order: anchor bars while unlocked, then
// fight bars, then event markers of the selected fight, then canvas pan.
func (c *Controller) PointerDown(x, y float64) {
	if c.torn {
		return
	}
	x = clamp(x, 0, c.viewportW)
	y = clamp(y, 0, c.viewportH)

	if !c.offsets.Locked() {
		if which, ok := c.anchorAt(x, y); ok {
			c.drag = dragAnchor{which: which, lastX: x}
			return
		}
	}

	if f := c.fightAt(x, y); f != nil {
		c.SelectFight(f.ID)
		return
	}

	if idx, ok := c.eventAt(x, y); ok {
		logSec := c.events[idx].Sec()
		videoSec := c.offsets.LogToVideo(logSec)
		util.LogDebugf("Event marker clicked: log %.1fs -> video %.1fs", logSec, videoSec)
		if c.cb.OnSeekRequest != nil {
			c.cb.OnSeekRequest(videoSec)
		}
		return
	}

	c.drag = dragPan{startX: x, startPan: c.view.Pan}
}

// PointerMove continues an active drag, or updates hover state when idle.
// Drags stay correct when the pointer leaves the canvas; coordinates are
// clamped to the viewport before any time conversion.
func (c *Controller) PointerMove(x, y float64) {
	if c.torn {
		return
	}
	x = clamp(x, 0, c.viewportW)
	y = clamp(y, 0, c.viewportH)

	switch d := c.drag.(type) {
	case dragAnchor:
		c.offsets.DragAnchor(d.which, x-d.lastX, c.view.Zoom)
		c.drag = dragAnchor{which: d.which, lastX: x}
	case dragPan:
		c.view.Pan = d.startPan - (x - d.startX)
	case dragNone:
		c.updateHover(x, y)
	}
}

// PointerUp ends the active drag. Anchor drag release always flushes a final
// offset notification.
func (c *Controller) PointerUp(x, y float64) {
	if c.torn {
		return
	}
	if _, ok := c.drag.(dragAnchor); ok {
		c.offsets.EndDrag()
	}
	c.drag = dragNone{}
}

// Teardown releases drag state; no callback fires afterwards
func (c *Controller) Teardown() {
	c.drag = dragNone{}
	c.torn = true
}

// anchorAt hit-tests the video and log duration bars
func (c *Controller) anchorAt(x, y float64) (offset.Anchor, bool) {
	lane, ok := render.LaneAt(y)
	if !ok {
		return 0, false
	}

	switch lane {
	case render.LaneVideo:
		if c.video == nil || c.video.DurationSec <= 0 {
			return 0, false
		}
		start := c.offsets.VideoAnchor()
		if c.spanContains(start, start+c.video.DurationSec, x) {
			return offset.AnchorVideo, true
		}
	case render.LaneLog:
		if c.report == nil {
			return 0, false
		}
		start := c.offsets.LogAnchor()
		if c.spanContains(start, start+c.report.DurationSec(), x) {
			return offset.AnchorLog, true
		}
	}
	return 0, false
}

// fightAt hit-tests fight bars in dataset order; the first match wins so
// overlaps resolve deterministically
func (c *Controller) fightAt(x, y float64) *model.Fight {
	lane, ok := render.LaneAt(y)
	if !ok || lane != render.LaneFights || c.report == nil {
		return nil
	}

	for i := range c.report.Fights {
		f := &c.report.Fights[i]
		x0 := c.view.TimeToPixel(c.offsets.LogAnchor() + f.StartSec())
		x1 := c.view.TimeToPixel(c.offsets.LogAnchor() + f.EndSec())
		if x1-x0 < render.MinFightWidthPx {
			x1 = x0 + render.MinFightWidthPx
		}
		if x >= x0 && x <= x1 {
			return f
		}
	}
	return nil
}

// eventAt hit-tests the selected fight's markers within EventHitRadiusPx,
// first match in dataset order
func (c *Controller) eventAt(x, y float64) (int, bool) {
	if c.selected == model.NoFight {
		return 0, false
	}

	for i := range c.events {
		lane := render.LaneCasts
		if c.events[i].Kind == model.EventDeath {
			lane = render.LaneDeaths
		}
		ex := c.view.TimeToPixel(c.offsets.LogAnchor() + c.events[i].Sec())
		if math.Hypot(x-ex, y-lane.CenterY()) <= EventHitRadiusPx {
			return i, true
		}
	}
	return 0, false
}

// updateHover recomputes hover state with the same geometry as pointer-down
func (c *Controller) updateHover(x, y float64) {
	if idx, ok := c.eventAt(x, y); ok {
		c.setHover(model.Hover{Target: model.HoverEvent, FightID: c.selected, EventIndex: idx})
		return
	}
	if f := c.fightAt(x, y); f != nil {
		c.setHover(model.Hover{Target: model.HoverFight, FightID: f.ID})
		return
	}
	c.setHover(model.Hover{})
}

func (c *Controller) setHover(h model.Hover) {
	if h == c.hover {
		return
	}
	c.hover = h
	if c.cb.OnHoverChange != nil {
		c.cb.OnHoverChange(h)
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}

// spanContains reports whether viewport pixel x falls within the pixel span
// of [startSec, endSec] on the shared timeline
func (c *Controller) spanContains(startSec, endSec, x float64) bool {
	x0 := c.view.TimeToPixel(startSec)
	x1 := c.view.TimeToPixel(endSec)
	return x >= x0 && x <= x1
}
