package render

import (
	"image/color"
)

// Theme collects the colors the renderer paints with
type Theme struct {
	Background    color.Color
	GridLine      color.Color
	GridLabel     color.Color
	LaneSeparator color.Color
	LaneLabel     color.Color

	VideoBar     color.Color
	VideoBarDrag color.Color
	LogBar       color.Color
	LogBarDrag   color.Color
	LockedBorder color.Color

	FightKill     color.Color
	FightWipe     color.Color
	FightSelected color.Color
	FightHovered  color.Color
	FightLabel    color.Color

	CastMarker  color.Color
	DeathMarker color.Color
	HoverMarker color.Color

	Cursor      color.Color
	CursorLabel color.Color
}

// DefaultTheme is a dark theme tuned for long review sessions
func DefaultTheme() Theme {
	return Theme{
		Background:    color.RGBA{R: 0x14, G: 0x16, B: 0x1a, A: 0xff},
		GridLine:      color.RGBA{R: 0x2a, G: 0x2e, B: 0x36, A: 0xff},
		GridLabel:     color.RGBA{R: 0x6c, G: 0x72, B: 0x80, A: 0xff},
		LaneSeparator: color.RGBA{R: 0x22, G: 0x26, B: 0x2e, A: 0xff},
		LaneLabel:     color.RGBA{R: 0x9a, G: 0xa0, B: 0xac, A: 0xff},

		VideoBar:     color.RGBA{R: 0x2f, G: 0x54, B: 0x8c, A: 0xff},
		VideoBarDrag: color.RGBA{R: 0x41, G: 0x73, B: 0xbd, A: 0xff},
		LogBar:       color.RGBA{R: 0x6b, G: 0x43, B: 0x8c, A: 0xff},
		LogBarDrag:   color.RGBA{R: 0x8d, G: 0x5c, B: 0xb5, A: 0xff},
		LockedBorder: color.RGBA{R: 0x3f, G: 0xb9, B: 0x50, A: 0xff},

		FightKill:     color.RGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff},
		FightWipe:     color.RGBA{R: 0x8e, G: 0x24, B: 0x24, A: 0xff},
		FightSelected: color.RGBA{R: 0xff, G: 0xd5, B: 0x4f, A: 0xff},
		FightHovered:  color.RGBA{R: 0xdd, G: 0xe2, B: 0xea, A: 0xff},
		FightLabel:    color.RGBA{R: 0xe8, G: 0xea, B: 0xef, A: 0xff},

		CastMarker:  color.RGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff},
		DeathMarker: color.RGBA{R: 0xef, G: 0x53, B: 0x50, A: 0xff},
		HoverMarker: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},

		Cursor:      color.RGBA{R: 0xff, G: 0x57, B: 0x22, A: 0xff},
		CursorLabel: color.RGBA{R: 0xff, G: 0x8a, B: 0x65, A: 0xff},
	}
}
