package game

import (
	"math"
	"sync"
	"time"
)

// Countdown is the cancellable handle of one per-room countdown. Cancel is
// safe to call more than once and from any goroutine.
type Countdown struct {
	stop     chan struct{}
	stopOnce sync.Once
}

func newCountdown() *Countdown {
	return &Countdown{stop: make(chan struct{})}
}

func (c *Countdown) Cancel() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// startCountdown replaces the game's countdown with a fresh one lasting the
// given number of seconds. The remaining time is recomputed every tick from
// the absolute end timestamp rather than decremented, so scheduling jitter
// cannot accumulate into drift. The countdown self-cancels at zero; it
// never drives a game-state transition itself, the client sends an explicit
// time-out event for that. Caller holds the game lock.
func (s *Service) startCountdown(g *Game, seconds int) {
	if g.timer != nil {
		g.timer.Cancel()
	}
	countdown := newCountdown()
	g.timer = countdown

	endTime := time.Now().Add(time.Duration(seconds) * time.Second)
	roomId := g.id
	s.hub.Broadcast(roomId, "update-time", seconds)

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-countdown.stop:
				return
			case now := <-ticker.C:
				remaining := int(math.Round(endTime.Sub(now).Seconds()))
				s.hub.Broadcast(roomId, "update-time", remaining)
				if remaining <= 0 {
					countdown.Cancel()
					return
				}
			}
		}
	}()
}

// cancelCountdown stops the game's active countdown, if any. Caller holds
// the game lock.
func (g *Game) cancelCountdown() {
	if g.timer != nil {
		g.timer.Cancel()
		g.timer = nil
	}
}
