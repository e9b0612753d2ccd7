package render

// Lane identifies one horizontal row of the alignment canvas, top to bottom
type Lane int

const (
	LaneVideo Lane = iota
	LaneLog
	LaneFights
	LaneCasts
	LaneDeaths

	laneCount
)

const (
	// LaneHeight is the logical pixel height of every lane row
	LaneHeight = 36.0

	// CanvasHeight is the natural height of the full lane stack
	CanvasHeight = LaneHeight * float64(laneCount)

	// barInsetY is the vertical inset of bars within their lane
	barInsetY = 6.0

	// EventRadius is the radius of an event marker circle
	EventRadius = 4.0

	// MinFightWidthPx keeps zero-duration fights visible and clickable
	MinFightWidthPx = 2.0

	// fightLabelMinWidthPx is the bar width below which no name is drawn
	fightLabelMinWidthPx = 48.0

	// iconSizePx is the edge length of a boss icon
	iconSizePx = 16.0
)

// laneNames are the row labels, indexed by Lane
var laneNames = [laneCount]string{"Video", "Log", "Fights", "Casts", "Deaths"}

// Name returns the row label for a lane
func (l Lane) Name() string {
	if l < 0 || l >= laneCount {
		return ""
	}
	return laneNames[l]
}

// Top returns the y coordinate of the lane's upper edge
func (l Lane) Top() float64 {
	return float64(l) * LaneHeight
}

// CenterY returns the vertical center of the lane
func (l Lane) CenterY() float64 {
	return l.Top() + LaneHeight/2
}

// BarRect returns the vertical extent of a bar drawn in this lane
func (l Lane) BarRect() (y, h float64) {
	return l.Top() + barInsetY, LaneHeight - 2*barInsetY
}

// LaneAt maps a y coordinate to its lane. ok is false outside the lane stack.
func LaneAt(y float64) (lane Lane, ok bool) {
	if y < 0 || y >= CanvasHeight {
		return 0, false
	}
	return Lane(int(y / LaneHeight)), true
}
