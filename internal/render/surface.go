package render

import (
	"image"
	"image/color"
)

// Surface is the 2D raster target the renderer paints into. Coordinates are
// logical pixels; implementations handle device pixel ratio themselves.
type Surface interface {
	// Size returns the logical width and height of the drawable area
	Size() (width, height float64)
	// Clear fills the whole surface with a color
	Clear(c color.Color)
	// FillRect fills an axis-aligned rectangle
	FillRect(x, y, w, h float64, c color.Color)
	// StrokeRect outlines an axis-aligned rectangle
	StrokeRect(x, y, w, h, lineWidth float64, c color.Color)
	// Line draws a straight line segment
	Line(x1, y1, x2, y2, width float64, c color.Color)
	// FillCircle fills a circle centered at (x, y)
	FillCircle(x, y, r float64, c color.Color)
	// Text draws a string with its baseline at (x, y)
	Text(s string, x, y float64, c color.Color)
	// TextWidth measures the rendered width of a string
	TextWidth(s string) float64
	// DrawImage draws an image scaled into the given rectangle
	DrawImage(img image.Image, x, y, w, h float64)
}

// IconSource resolves a boss icon URL to a decoded image. A nil result means
// the icon is absent, still loading, or failed; the renderer then simply
// skips it.
type IconSource interface {
	Image(url string) image.Image
}
