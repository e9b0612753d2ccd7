package playback

import (
	"sync"
	"time"

	"github.com/raidsync/go-raid-sync/internal/util"
)

// DefaultPollInterval is how often the backend's current time is sampled
const DefaultPollInterval = 100 * time.Millisecond

// TimePoller samples a Player's current time on a fixed period and hands each
// sample to a callback. Stop is idempotent and guarantees no callback fires
// after it returns, so swapping backends or tearing the component down leaves
// no dangling timer.
type TimePoller struct {
	player   Player
	interval time.Duration
	onSample func(sec float64)

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
	started  bool
}

// NewTimePoller creates a poller. A non-positive interval falls back to
// DefaultPollInterval.
func NewTimePoller(player Player, interval time.Duration, onSample func(sec float64)) *TimePoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &TimePoller{
		player:   player,
		interval: interval,
		onSample: onSample,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the polling loop
func (tp *TimePoller) Start() {
	if tp.started {
		return
	}
	tp.started = true

	go func() {
		defer close(tp.done)
		ticker := time.NewTicker(tp.interval)
		defer ticker.Stop()

		for {
			select {
			case <-tp.stop:
				return
			case <-ticker.C:
				sec, err := tp.player.CurrentTime()
				if err != nil {
					util.LogDebugf("Playback time poll failed: %v", err)
					continue
				}
				tp.onSample(sec)
			}
		}
	}()
}

// Stop cancels polling and waits for the loop to exit. Safe to call more
// than once and before Start.
func (tp *TimePoller) Stop() {
	tp.stopOnce.Do(func() {
		close(tp.stop)
	})
	if tp.started {
		<-tp.done
	}
}
