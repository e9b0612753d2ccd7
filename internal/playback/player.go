// Package playback bridges the sync engine to an external video backend: it
// forwards seek commands and polls the backend's current playback time on a
// fixed period to feed the timeline cursor.
package playback

import (
	"sync"
	"time"
)

// Player is the contract a video backend must fulfil. Implementations signal
// readiness before first use; every method may be called from the UI loop.
type Player interface {
	Play() error
	Pause() error
	Seek(sec float64) error
	CurrentTime() (float64, error)
}

// ClockPlayer simulates a video backend with a monotonic clock: playback time
// advances in real time while playing. It is the default backend when no
// embedded player is wired up, and doubles as the test double.
type ClockPlayer struct {
	mu       sync.Mutex
	position float64
	playing  bool
	duration float64
	lastTick time.Time
	now      func() time.Time
}

// NewClockPlayer creates a paused simulated player with the given duration.
// A non-positive duration means unbounded.
func NewClockPlayer(durationSec float64) *ClockPlayer {
	return &ClockPlayer{duration: durationSec, now: time.Now}
}

// advanceLocked folds elapsed wall time into the position
func (p *ClockPlayer) advanceLocked() {
	if !p.playing {
		return
	}
	now := p.now()
	p.position += now.Sub(p.lastTick).Seconds()
	p.lastTick = now
	if p.duration > 0 && p.position > p.duration {
		p.position = p.duration
		p.playing = false
	}
}

// Play starts advancing playback time
func (p *ClockPlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advanceLocked()
	if !p.playing {
		p.playing = true
		p.lastTick = p.now()
	}
	return nil
}

// Pause stops advancing playback time
func (p *ClockPlayer) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advanceLocked()
	p.playing = false
	return nil
}

// Seek jumps to a playback position, clamped to [0, duration]
func (p *ClockPlayer) Seek(sec float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advanceLocked()
	if sec < 0 {
		sec = 0
	}
	if p.duration > 0 && sec > p.duration {
		sec = p.duration
	}
	p.position = sec
	return nil
}

// CurrentTime returns the current playback position
func (p *ClockPlayer) CurrentTime() (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advanceLocked()
	return p.position, nil
}

// Playing reports whether the simulated player is advancing
func (p *ClockPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}
