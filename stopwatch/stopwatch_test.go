package stopwatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type waiter struct {
	at time.Time
	ch chan time.Time
}

type manualClock struct {
	mu      sync.Mutex
	now     time.Time
	waiters []waiter
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan time.Time, 1)
	at := c.now.Add(d)
	if !at.After(c.now) {
		ch <- c.now
		return ch
	}
	c.waiters = append(c.waiters, waiter{at: at, ch: ch})
	return ch
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	pending := c.waiters[:0]
	for _, w := range c.waiters {
		if w.at.After(c.now) {
			pending = append(pending, w)
			continue
		}
		w.ch <- c.now
	}
	c.waiters = pending
}

func TestStopWatch_Elapsed(t *testing.T) {
	clock := newManualClock()
	w := New(WithClock(clock))
	assert.True(t, w.IsStopped())
	_, err := w.Elapsed()
	assert.ErrorIs(t, err, ErrNotStarted)

	require.NoError(t, w.Start(0))
	assert.ErrorIs(t, w.Start(0), ErrAlreadyStarted)
	clock.Advance(3 * time.Second)

	require.NoError(t, w.Pause())
	assert.ErrorIs(t, w.Pause(), ErrPaused)
	clock.Advance(10 * time.Second)
	elapsed, err := w.Elapsed()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, elapsed, "paused time is not counted")

	require.NoError(t, w.Unpause())
	assert.ErrorIs(t, w.Unpause(), ErrNotPaused)
	clock.Advance(2 * time.Second)

	elapsed, err = w.Stop()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, elapsed)
	assert.True(t, w.IsStopped())
	_, err = w.Stop()
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestStopWatch_StopWhilePaused(t *testing.T) {
	clock := newManualClock()
	w := New(WithClock(clock))
	require.NoError(t, w.Start(time.Minute))
	clock.Advance(time.Second)
	require.NoError(t, w.Pause())
	clock.Advance(time.Hour)
	elapsed, err := w.Stop()
	require.NoError(t, err)
	assert.Equal(t, time.Second, elapsed)
	assert.False(t, w.IsPaused())
}

func TestStopWatch_Timer(t *testing.T) {
	clock := newManualClock()
	w := New(WithClock(clock))
	assert.False(t, w.Expired(), "a stopped watch never expires")
	assert.ErrorIs(t, w.Start(-time.Second), ErrNegativeTimer)

	require.NoError(t, w.Start(10*time.Second))
	clock.Advance(10 * time.Second)
	left, err := w.Remaining()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), left)
	assert.False(t, w.Expired(), "expiry needs the remaining time to go negative")

	clock.Advance(time.Nanosecond)
	assert.True(t, w.Expired())

	require.NoError(t, w.SetTimer(time.Minute))
	assert.False(t, w.Expired())
	assert.ErrorIs(t, w.SetTimer(-1), ErrNegativeTimer)
}

func TestStopWatch_Restart(t *testing.T) {
	clock := newManualClock()
	w := New(WithClock(clock))
	require.NoError(t, w.Start(0))
	clock.Advance(time.Minute)

	require.NoError(t, w.RestartPaused(time.Second))
	assert.True(t, w.IsPaused())
	clock.Advance(time.Minute)
	elapsed, err := w.Elapsed()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), elapsed)

	require.NoError(t, w.Unpause())
	clock.Advance(time.Second)
	elapsed, err = w.Elapsed()
	require.NoError(t, err)
	assert.Equal(t, time.Second, elapsed)

	require.NoError(t, w.Restart(0))
	assert.False(t, w.IsPaused())
	elapsed, err = w.Elapsed()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), elapsed)

	w.Reset()
	assert.True(t, w.IsStopped())
}

func TestStopWatch_RunFor(t *testing.T) {
	clock := newManualClock()
	w := New(WithClock(clock))
	assert.ErrorIs(t, w.RunFor(func() {}), ErrNotStarted)

	require.NoError(t, w.Start(5*time.Second))
	calls := 0
	require.NoError(t, w.RunFor(func() {
		calls++
		clock.Advance(time.Second)
	}))
	assert.Equal(t, 6, calls)
}

func TestStopWatch_Wait(t *testing.T) {
	clock := newManualClock()
	w := New(WithClock(clock))
	assert.ErrorIs(t, w.Wait(context.Background()), ErrNotStarted)

	require.NoError(t, w.Start(time.Second))
	done := make(chan error, 1)
	go func() {
		done <- w.Wait(context.Background())
	}()

	require.NoError(t, w.Pause())
	clock.Advance(time.Hour)
	select {
	case err := <-done:
		t.Fatalf("Wait returned %v while paused", err)
	case <-time.After(20 * time.Millisecond):
	}

	require.NoError(t, w.Unpause())
	// Each Advance wakes any alarm already registered; keep going until Wait notices.
	deadline := time.After(5 * time.Second)
	for {
		clock.Advance(time.Second)
		select {
		case err := <-done:
			assert.NoError(t, err)
			return
		case <-deadline:
			t.Fatal("Wait did not return after expiry")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestStopWatch_WaitCancelled(t *testing.T) {
	w := New()
	require.NoError(t, w.Start(time.Hour))
	cause := errors.New("shutting down")
	ctx, cancel := context.WithCancelCause(context.Background())
	cancel(cause)
	assert.ErrorIs(t, w.Wait(ctx), cause)
}

func TestStopWatch_Identity(t *testing.T) {
	a, b := New(), New()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Contains(t, a.String(), a.ID())
	assert.Contains(t, a.String(), "stopped")
}
