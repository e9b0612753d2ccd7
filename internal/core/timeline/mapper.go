// Package timeline holds the pure math that maps between timeline seconds and
// screen pixels. A Transform is a value type; every mutation returns a new
// value so callers can compare before/after states cheaply.
package timeline

import (
	"math"
)

const (
	// MinZoom and MaxZoom bound the pixels-per-second scale
	MinZoom = 0.02
	MaxZoom = 100.0

	// MinTickSpacingPx is the minimum pixel distance between grid lines
	MinTickSpacingPx = 100.0

	// EdgePaddingSec is the extra time shown on each side of the report when
	// fitting the whole report into the viewport
	EdgePaddingSec = 60.0

	// FightFitPaddingPx is the pixel margin kept on each side of a fight when
	// zooming to it
	FightFitPaddingPx = 20.0
)

// tickSteps are the candidate grid spacings in seconds, ascending
var tickSteps = []float64{10, 30, 60, 120, 300, 600}

// Transform maps timeline seconds to viewport pixels. Zoom is pixels per
// second, Pan is the pixel offset of the time origin from the left edge.
type Transform struct {
	Zoom float64
	Pan  float64
}

// TimeToPixel converts a time in seconds to a viewport x coordinate
func (t Transform) TimeToPixel(sec float64) float64 {
	return sec*t.Zoom - t.Pan
}

// PixelToTime converts a viewport x coordinate to a time in seconds
func (t Transform) PixelToTime(x float64) float64 {
	return (x + t.Pan) / t.Zoom
}

// TickStep picks the smallest candidate grid spacing that keeps grid lines at
// least MinTickSpacingPx apart at the current zoom, falling back to the
// largest candidate at very low zoom.
func (t Transform) TickStep() float64 {
	for _, step := range tickSteps {
		if step*t.Zoom >= MinTickSpacingPx {
			return step
		}
	}
	return tickSteps[len(tickSteps)-1]
}

// Panned returns the transform shifted by dx pixels
func (t Transform) Panned(dx float64) Transform {
	return Transform{Zoom: t.Zoom, Pan: t.Pan + dx}
}

// ZoomAt applies a multiplicative zoom factor anchored at viewport pixel x:
// the time under x before the change is still under x afterwards. The new
// zoom is clamped to [MinZoom, MaxZoom] and additionally floored at fitFloor
// when fitFloor > 0, so content cannot shrink below the configured fit.
func (t Transform) ZoomAt(x, factor, fitFloor float64) Transform {
	anchor := t.PixelToTime(x)
	zoom := ClampZoom(t.Zoom * factor)
	if fitFloor > 0 && zoom < fitFloor {
		zoom = fitFloor
	}
	return Transform{Zoom: zoom, Pan: anchor*zoom - x}
}

// ClampZoom bounds a zoom value to [MinZoom, MaxZoom], mapping non-finite
// input to MinZoom
func ClampZoom(zoom float64) float64 {
	if math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		return MinZoom
	}
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// FitZoom computes the zoom that fits durationSec plus paddingSec on each
// side into viewportPx, clamped to the zoom bounds. Degenerate durations or
// viewports yield MinZoom.
func FitZoom(durationSec, viewportPx, paddingSec float64) float64 {
	total := durationSec + 2*paddingSec
	if viewportPx <= 0 || total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return MinZoom
	}
	return ClampZoom(viewportPx / total)
}

// CenterOn returns a transform at the given zoom panned so the midpoint of
// [startSec, endSec] sits at the horizontal center of the viewport
func CenterOn(zoom, startSec, endSec, viewportPx float64) Transform {
	mid := (startSec + endSec) / 2
	return Transform{Zoom: zoom, Pan: mid*zoom - viewportPx/2}
}

// Fit produces the initial view: the whole span [startSec, endSec] plus edge
// padding fitted into the viewport and centered
func Fit(startSec, endSec, viewportPx float64) Transform {
	zoom := FitZoom(endSec-startSec, viewportPx, EdgePaddingSec)
	return CenterOn(zoom, startSec, endSec, viewportPx)
}

// FightZoom computes the zoom that fits a fight of the given duration into
// the viewport minus the fixed fight padding on both sides
func FightZoom(durationSec, viewportPx float64) float64 {
	usable := viewportPx - 2*FightFitPaddingPx
	if usable <= 0 || durationSec <= 0 || math.IsNaN(durationSec) || math.IsInf(durationSec, 0) {
		return MinZoom
	}
	return ClampZoom(usable / durationSec)
}
