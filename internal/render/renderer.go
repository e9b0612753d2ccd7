// Package render paints the alignment canvas: time grid, lane rows, video and
// log bars, fight bars, event markers and the current-time cursor. Draw is a
// pure function of the scene; identical scenes produce identical pixels.
package render

import (
	"image/color"
	"math"

	"github.com/raidsync/go-raid-sync/internal/core/model"
	"github.com/raidsync/go-raid-sync/internal/core/timeline"
	"github.com/raidsync/go-raid-sync/internal/util"
)

// Scene is everything one frame depends on. All times are seconds on the
// shared timeline whose origin is the log start, except CurrentVideoSec which
// is video playback time.
type Scene struct {
	Report *model.Report
	Video  *model.VideoMeta
	Events []model.RaidEvent

	View           timeline.Transform
	VideoAnchorSec float64
	LogAnchorSec   float64
	Locked         bool
	DraggingAnchor bool

	SelectedFightID int
	Hover           model.Hover

	CurrentVideoSec float64
	HasCurrentTime  bool
}

// Renderer draws scenes into a Surface. It holds no per-frame state.
type Renderer struct {
	theme Theme
	icons IconSource
}

// NewRenderer creates a renderer. icons may be nil; fights then render
// without boss icons.
func NewRenderer(icons IconSource) *Renderer {
	return &Renderer{theme: DefaultTheme(), icons: icons}
}

// Draw paints one frame back to front. Geometry fully outside the viewport is
// culled before any surface call is made; the routine runs on every pan,
// zoom and time-update tick.
func (r *Renderer) Draw(s Surface, scene Scene) {
	width, height := s.Size()
	s.Clear(r.theme.Background)

	if !sceneDrawable(scene) {
		r.drawPlaceholder(s, width, height)
		return
	}

	r.drawGrid(s, scene, width, height)
	r.drawLaneChrome(s, width)
	r.drawVideoBar(s, scene, width)
	r.drawLogBar(s, scene, width)
	r.drawFights(s, scene, width)
	r.drawEvents(s, scene, width)
	r.drawCursor(s, scene, width, height)
}

// sceneDrawable rejects degenerate input before any pixel math divides by it
func sceneDrawable(scene Scene) bool {
	if scene.Report == nil || len(scene.Report.Fights) == 0 {
		return false
	}
	dur := scene.Report.DurationSec()
	if dur <= 0 || math.IsNaN(dur) || math.IsInf(dur, 0) {
		return false
	}
	if scene.View.Zoom <= 0 || math.IsNaN(scene.View.Zoom) || math.IsInf(scene.View.Zoom, 0) {
		return false
	}
	if math.IsNaN(scene.View.Pan) || math.IsInf(scene.View.Pan, 0) {
		return false
	}
	return true
}

func (r *Renderer) drawPlaceholder(s Surface, width, height float64) {
	msg := "waiting for report data"
	x := (width - s.TextWidth(msg)) / 2
	if x < 0 {
		x = 0
	}
	s.Text(msg, x, height/2, r.theme.LaneLabel)
}

func (r *Renderer) drawGrid(s Surface, scene Scene, width, height float64) {
	step := scene.View.TickStep()
	first := math.Ceil(scene.View.PixelToTime(0)/step) * step

	for t := first; ; t += step {
		x := scene.View.TimeToPixel(t)
		if x > width {
			break
		}
		if x < 0 {
			continue
		}
		s.Line(x, 0, x, height, 1, r.theme.GridLine)
		s.Text(util.FormatClock(t), x+3, 11, r.theme.GridLabel)
	}
}

func (r *Renderer) drawLaneChrome(s Surface, width float64) {
	for lane := Lane(0); lane < laneCount; lane++ {
		bottom := lane.Top() + LaneHeight
		s.Line(0, bottom, width, bottom, 1, r.theme.LaneSeparator)
		s.Text(lane.Name(), 4, lane.Top()+13, r.theme.LaneLabel)
	}
}

// drawSpanBar draws a duration bar spanning [startSec, endSec] on the shared
// timeline, if any part of it is visible
func (r *Renderer) drawSpanBar(s Surface, scene Scene, width float64, lane Lane, startSec, endSec float64, dragging bool, fill, dragFill color.Color) {
	x0 := scene.View.TimeToPixel(startSec)
	x1 := scene.View.TimeToPixel(endSec)
	if x1 < 0 || x0 > width {
		return
	}

	y, h := lane.BarRect()
	c := fill
	if dragging {
		c = dragFill
	}
	s.FillRect(x0, y, x1-x0, h, c)
	if scene.Locked {
		s.StrokeRect(x0, y, x1-x0, h, 2, r.theme.LockedBorder)
	}
}

func (r *Renderer) drawVideoBar(s Surface, scene Scene, width float64) {
	if scene.Video == nil || scene.Video.DurationSec <= 0 || math.IsNaN(scene.Video.DurationSec) {
		return
	}
	start := scene.VideoAnchorSec
	r.drawSpanBar(s, scene, width, LaneVideo, start, start+scene.Video.DurationSec,
		scene.DraggingAnchor, r.theme.VideoBar, r.theme.VideoBarDrag)
}

func (r *Renderer) drawLogBar(s Surface, scene Scene, width float64) {
	start := scene.LogAnchorSec
	r.drawSpanBar(s, scene, width, LaneLog, start, start+scene.Report.DurationSec(),
		scene.DraggingAnchor, r.theme.LogBar, r.theme.LogBarDrag)
}

func (r *Renderer) drawFights(s Surface, scene Scene, width float64) {
	y, h := LaneFights.BarRect()

	for i := range scene.Report.Fights {
		f := &scene.Report.Fights[i]
		x0 := scene.View.TimeToPixel(scene.LogAnchorSec + f.StartSec())
		x1 := scene.View.TimeToPixel(scene.LogAnchorSec + f.EndSec())
		barW := x1 - x0
		if barW < MinFightWidthPx {
			barW = MinFightWidthPx
		}
		if x0+barW < 0 || x0 > width {
			continue
		}

		fill := r.theme.FightWipe
		if f.Kill {
			fill = r.theme.FightKill
		}
		s.FillRect(x0, y, barW, h, fill)

		if f.ID == scene.SelectedFightID {
			s.StrokeRect(x0, y, barW, h, 2, r.theme.FightSelected)
		} else if scene.Hover.Target == model.HoverFight && scene.Hover.FightID == f.ID {
			s.StrokeRect(x0, y, barW, h, 1, r.theme.FightHovered)
		}

		labelX := x0
		if r.icons != nil && f.IconURL != "" {
			if img := r.icons.Image(f.IconURL); img != nil {
				s.DrawImage(img, x0+1, y+(h-iconSizePx)/2, iconSizePx, iconSizePx)
				labelX += iconSizePx + 2
			}
		}

		if barW >= fightLabelMinWidthPx {
			if name := truncateToWidth(s, f.Name, x0+barW-labelX-4); name != "" {
				s.Text(name, labelX+3, y+h-6, r.theme.FightLabel)
			}
		}
	}
}

func (r *Renderer) drawEvents(s Surface, scene Scene, width float64) {
	if scene.SelectedFightID == model.NoFight {
		return
	}

	for i := range scene.Events {
		e := &scene.Events[i]
		x := scene.View.TimeToPixel(scene.LogAnchorSec + e.Sec())
		if x < -EventRadius || x > width+EventRadius {
			continue
		}

		lane := LaneCasts
		c := r.theme.CastMarker
		if e.Kind == model.EventDeath {
			lane = LaneDeaths
			c = r.theme.DeathMarker
		}

		radius := EventRadius
		if scene.Hover.Target == model.HoverEvent && scene.Hover.EventIndex == i {
			s.FillCircle(x, lane.CenterY(), radius+2, r.theme.HoverMarker)
		}
		s.FillCircle(x, lane.CenterY(), radius, c)
	}
}

func (r *Renderer) drawCursor(s Surface, scene Scene, width, height float64) {
	if !scene.HasCurrentTime {
		return
	}
	x := scene.View.TimeToPixel(scene.VideoAnchorSec + scene.CurrentVideoSec)
	if x < 0 || x > width {
		return
	}
	s.Line(x, 0, x, height, 1.5, r.theme.Cursor)
	s.Text(util.FormatClock(scene.CurrentVideoSec), x+4, height-4, r.theme.CursorLabel)
}

// truncateToWidth shortens a label until it fits maxWidth, with a trailing
// ellipsis when anything was cut. Returns "" when not even one rune fits.
func truncateToWidth(s Surface, label string, maxWidth float64) string {
	if maxWidth <= 0 {
		return ""
	}
	if s.TextWidth(label) <= maxWidth {
		return label
	}
	runes := []rune(label)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := string(runes[:n]) + "…"
		if s.TextWidth(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}
