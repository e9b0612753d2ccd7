package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// ImageSurface is a Surface backed by an in-memory RGBA raster via fogleman/gg.
// The backing store is allocated at width*dpr x height*dpr so output stays
// crisp on high-DPI displays while callers keep working in logical pixels.
type ImageSurface struct {
	dc     *gg.Context
	width  float64
	height float64
	dpr    float64
}

// NewImageSurface allocates a surface of the given logical size at the given
// device pixel ratio. Non-positive ratios fall back to 1.
func NewImageSurface(width, height int, dpr float64) *ImageSurface {
	if dpr <= 0 {
		dpr = 1
	}
	dc := gg.NewContext(int(float64(width)*dpr), int(float64(height)*dpr))
	dc.Scale(dpr, dpr)
	return &ImageSurface{
		dc:     dc,
		width:  float64(width),
		height: float64(height),
		dpr:    dpr,
	}
}

// Size returns the logical dimensions
func (s *ImageSurface) Size() (float64, float64) {
	return s.width, s.height
}

// Clear fills the surface with a color
func (s *ImageSurface) Clear(c color.Color) {
	s.dc.SetColor(c)
	s.dc.Clear()
}

// FillRect fills a rectangle
func (s *ImageSurface) FillRect(x, y, w, h float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.Fill()
}

// StrokeRect outlines a rectangle
func (s *ImageSurface) StrokeRect(x, y, w, h, lineWidth float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(lineWidth)
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.Stroke()
}

// Line draws a line segment
func (s *ImageSurface) Line(x1, y1, x2, y2, width float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.DrawLine(x1, y1, x2, y2)
	s.dc.Stroke()
}

// FillCircle fills a circle
func (s *ImageSurface) FillCircle(x, y, r float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.DrawCircle(x, y, r)
	s.dc.Fill()
}

// Text draws a string at a baseline position
func (s *ImageSurface) Text(str string, x, y float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.DrawString(str, x, y)
}

// TextWidth measures a string
func (s *ImageSurface) TextWidth(str string) float64 {
	w, _ := s.dc.MeasureString(str)
	return w
}

// DrawImage scales an image into the destination rectangle
func (s *ImageSurface) DrawImage(img image.Image, x, y, w, h float64) {
	bounds := img.Bounds()
	iw, ih := float64(bounds.Dx()), float64(bounds.Dy())
	if iw <= 0 || ih <= 0 || w <= 0 || h <= 0 {
		return
	}
	s.dc.Push()
	s.dc.Translate(x, y)
	s.dc.Scale(w/iw, h/ih)
	s.dc.DrawImage(img, 0, 0)
	s.dc.Pop()
}

// Image returns the backing raster
func (s *ImageSurface) Image() image.Image {
	return s.dc.Image()
}

// SavePNG writes the surface contents to a PNG file
func (s *ImageSurface) SavePNG(path string) error {
	return s.dc.SavePNG(path)
}
