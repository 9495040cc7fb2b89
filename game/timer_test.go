package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cancelled(c *Countdown) bool {
	select {
	case <-c.stop:
		return true
	default:
		return false
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	c := newCountdown()
	require.False(t, cancelled(c))

	c.Cancel()
	c.Cancel()

	assert.True(t, cancelled(c))
}

func TestStartCountdownBroadcastsInitialTime(t *testing.T) {
	g := testGame(0, 1)
	s, hub := testService(g)

	g.locker.Lock()
	s.startCountdown(g, 60)
	timer := g.timer
	g.locker.Unlock()
	defer timer.Cancel()

	updates := hub.ofEvent("update-time")
	require.NotEmpty(t, updates)
	assert.Equal(t, "room-1", updates[0].roomId)
	assert.Equal(t, 60, updates[0].data.(int))
}

func TestStartCountdownReplacesPrevious(t *testing.T) {
	g := testGame(0, 1)
	s, _ := testService(g)

	g.locker.Lock()
	s.startCountdown(g, 60)
	first := g.timer
	s.startCountdown(g, 30)
	second := g.timer
	g.locker.Unlock()
	defer second.Cancel()

	assert.True(t, cancelled(first), "restarting the timer must stop the old ticker")
	assert.False(t, cancelled(second))
	assert.NotSame(t, first, second)
}

func TestCountdownTicksDownAndSelfCancels(t *testing.T) {
	g := testGame(0, 1)
	s, hub := testService(g)

	g.locker.Lock()
	s.startCountdown(g, 1)
	timer := g.timer
	g.locker.Unlock()

	require.Eventually(t, cancelledFn(timer), 3*time.Second, 20*time.Millisecond,
		"a countdown must stop itself at zero")

	updates := hub.ofEvent("update-time")
	require.GreaterOrEqual(t, len(updates), 2)
	last := updates[len(updates)-1].data.(int)
	assert.LessOrEqual(t, last, 0)
}

func cancelledFn(c *Countdown) func() bool {
	return func() bool { return cancelled(c) }
}

func TestCancelCountdownClearsHandle(t *testing.T) {
	g := testGame(0)
	g.timer = newCountdown()
	handle := g.timer

	g.cancelCountdown()

	assert.Nil(t, g.timer)
	assert.True(t, cancelled(handle))

	// No-op without an active countdown.
	g.cancelCountdown()
}
