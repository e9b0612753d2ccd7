package model

import (
	"time"
)

// EventKind discriminates the kinds of combat events shown on the timeline
type EventKind int

const (
	EventDeath EventKind = iota
	EventCast
)

// String returns a human-readable name for the event kind
func (k EventKind) String() string {
	switch k {
	case EventDeath:
		return "death"
	case EventCast:
		return "cast"
	default:
		return "unknown"
	}
}

// Ability describes the ability attached to a cast event
type Ability struct {
	Name string `json:"name"`
	GUID int    `json:"guid"`
	Type int    `json:"type"`
}

// Fight is a bounded combat encounter within a report. Times are offsets in
// milliseconds from the report start. Immutable once loaded.
type Fight struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	StartMS int64  `json:"start_time"`
	EndMS   int64  `json:"end_time"`
	Kill    bool   `json:"kill"`
	IconURL string `json:"icon_url,omitempty"`
}

// StartSec returns the fight start as seconds from report start
func (f Fight) StartSec() float64 {
	return float64(f.StartMS) / 1000.0
}

// EndSec returns the fight end as seconds from report start
func (f Fight) EndSec() float64 {
	return float64(f.EndMS) / 1000.0
}

// DurationSec returns the fight duration in seconds
func (f Fight) DurationSec() float64 {
	return float64(f.EndMS-f.StartMS) / 1000.0
}

// RaidEvent is a discrete occurrence within a fight's time window.
// The timestamp is milliseconds from report start.
type RaidEvent struct {
	Kind        EventKind `json:"kind"`
	TimestampMS int64     `json:"timestamp"`
	Ability     *Ability  `json:"ability,omitempty"`
}

// Sec returns the event time as seconds from report start
func (e RaidEvent) Sec() float64 {
	return float64(e.TimestampMS) / 1000.0
}

// Report holds the fights of one combat report. StartMS/EndMS are wall-clock
// unix milliseconds of the report bounds; fights are ordered by start time.
type Report struct {
	Code    string
	Title   string
	StartMS int64
	EndMS   int64
	Fights  []Fight
}

// DurationSec returns the report duration in seconds
func (r *Report) DurationSec() float64 {
	if r == nil || r.EndMS <= r.StartMS {
		return 0
	}
	return float64(r.EndMS-r.StartMS) / 1000.0
}

// StartTime returns the report start as wall-clock time
func (r *Report) StartTime() time.Time {
	return time.UnixMilli(r.StartMS)
}

// FightByID returns the fight with the given id, or nil
func (r *Report) FightByID(id int) *Fight {
	if r == nil {
		return nil
	}
	for i := range r.Fights {
		if r.Fights[i].ID == id {
			return &r.Fights[i]
		}
	}
	return nil
}

// VideoMeta describes the paired recording: playable duration and the
// wall-clock moment recording started, used by the auto-sync heuristic.
type VideoMeta struct {
	ID          string
	DurationSec float64
	PublishedAt time.Time
}

// HoverTarget discriminates what the pointer is currently over
type HoverTarget int

const (
	HoverNone HoverTarget = iota
	HoverFight
	HoverEvent
)

// Hover is the transient hover state used for tooltips. EventIndex refers to
// the selected fight's event slice.
type Hover struct {
	Target     HoverTarget
	FightID    int
	EventIndex int
}

// NoFight marks the absence of a fight selection
const NoFight = -1
