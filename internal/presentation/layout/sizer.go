// Package layout handles terminal width math for tabular output: display
// widths that count emoji and CJK boss names correctly, padding and
// truncation.
package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Sizer measures and pads strings for a terminal of a known width
type Sizer struct {
	Width int
}

// NewSizer creates a sizer for an explicit terminal width
func NewSizer(width int) *Sizer {
	return &Sizer{Width: width}
}

// DetectSizer creates a sizer from the attached terminal, falling back to a
// conservative width when stdout is not a terminal
func DetectSizer() *Sizer {
	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth < 40 {
		termWidth = 100
	}
	return NewSizer(termWidth)
}

// DisplayWidth calculates the actual display width of a string containing
// emojis and Unicode characters
func (s *Sizer) DisplayWidth(str string) int {
	return runewidth.StringWidth(str)
}

// PadString pads a string to a specific display width, handling wide
// characters correctly
func (s *Sizer) PadString(str string, width int, leftAlign bool) string {
	actualWidth := s.DisplayWidth(str)
	if actualWidth >= width {
		return str
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return str + padding
	}
	return padding + str
}

// Truncate shortens a string to a display width, appending an ellipsis when
// anything was cut
func (s *Sizer) Truncate(str string, width int) string {
	if s.DisplayWidth(str) <= width {
		return str
	}
	return runewidth.Truncate(str, width, "…")
}

// ContentWidth is the width available for table content after margins
func (s *Sizer) ContentWidth() int {
	width := s.Width - 4
	if width < 40 {
		width = 40
	}
	return width
}
