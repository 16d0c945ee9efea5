// Package stopwatch measures elapsed time with support for pausing, and optionally acts as a
// timer that expires once a given amount of unpaused time has passed.
//
// There is no shared default StopWatch; construct one with New wherever it is needed.
// A StopWatch is safe for concurrent use.
package stopwatch

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"sync"
	"time"
)

var (
	ErrNotStarted     = errors.New("stopwatch: not started")
	ErrAlreadyStarted = errors.New("stopwatch: already started")
	ErrPaused         = errors.New("stopwatch: already paused")
	ErrNotPaused      = errors.New("stopwatch: not paused")
	ErrNegativeTimer  = errors.New("stopwatch: negative timer length")
)

// Clock is the time source of a StopWatch. Tests substitute a manual one.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

type Option func(w *StopWatch)

func WithClock(clock Clock) Option {
	return func(w *StopWatch) {
		w.clock = clock
	}
}

type StopWatch struct {
	id    string
	clock Clock

	mu       sync.Mutex
	start    time.Time // moved forward by every pause, so now-start is the unpaused time
	pausedAt time.Time
	timer    time.Duration
	stopped  bool
	paused   bool
	changed  chan struct{} // closed and replaced whenever Wait has to recompute its deadline
}

// New returns a stopped StopWatch.
func New(opts ...Option) *StopWatch {
	ret := &StopWatch{
		id:      uuid.NewString(),
		clock:   systemClock{},
		stopped: true,
		changed: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (w *StopWatch) ID() string {
	return w.id
}

func (w *StopWatch) notify() {
	close(w.changed)
	w.changed = make(chan struct{})
}

func (w *StopWatch) IsStopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

func (w *StopWatch) IsPaused() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.paused
}

// Start starts a stopped StopWatch with the given timer length, zero meaning it is expired as soon as any time passes.
func (w *StopWatch) Start(timer time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.startLocked(timer)
}

func (w *StopWatch) startLocked(timer time.Duration) error {
	if !w.stopped {
		return ErrAlreadyStarted
	}
	if timer < 0 {
		return ErrNegativeTimer
	}
	now := w.clock.Now()
	w.stopped = false
	w.timer = timer
	w.start = now
	if w.paused {
		w.pausedAt = now
	}
	w.notify()
	return nil
}

// Stop unpauses if needed, stops the StopWatch and returns the elapsed time.
func (w *StopWatch) Stop() (time.Duration, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return 0, ErrNotStarted
	}
	if w.paused {
		w.unpauseLocked()
	}
	elapsed := w.elapsedLocked()
	w.stopped = true
	w.notify()
	return elapsed, nil
}

// Reset returns the StopWatch to the state New left it in.
func (w *StopWatch) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetLocked()
}

func (w *StopWatch) resetLocked() {
	w.stopped = true
	w.paused = false
	w.notify()
}

// Restart starts again from zero whether or not the StopWatch was running.
func (w *StopWatch) Restart(timer time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetLocked()
	return w.startLocked(timer)
}

// RestartPaused restarts in the paused state, leaving the caller to Unpause when the measured work begins.
func (w *StopWatch) RestartPaused(timer time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetLocked()
	w.paused = true
	return w.startLocked(timer)
}

func (w *StopWatch) Pause() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return ErrNotStarted
	}
	if w.paused {
		return ErrPaused
	}
	w.pausedAt = w.clock.Now()
	w.paused = true
	w.notify()
	return nil
}

func (w *StopWatch) Unpause() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.paused {
		return ErrNotPaused
	}
	w.unpauseLocked()
	return nil
}

func (w *StopWatch) unpauseLocked() {
	w.paused = false
	w.start = w.start.Add(w.clock.Now().Sub(w.pausedAt))
	w.notify()
}

// SetTimer changes the timer length of a running StopWatch. Waiters pick up the new length.
func (w *StopWatch) SetTimer(timer time.Duration) error {
	if timer < 0 {
		return ErrNegativeTimer
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.timer = timer
	w.notify()
	return nil
}

// Elapsed returns the time since start, minus the time spent paused.
func (w *StopWatch) Elapsed() (time.Duration, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return 0, ErrNotStarted
	}
	return w.elapsedLocked(), nil
}

func (w *StopWatch) elapsedLocked() time.Duration {
	if w.paused {
		return w.pausedAt.Sub(w.start)
	}
	return w.clock.Now().Sub(w.start)
}

// Remaining returns the timer length minus Elapsed. It goes negative once the timer has expired.
func (w *StopWatch) Remaining() (time.Duration, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return 0, ErrNotStarted
	}
	return w.timer - w.elapsedLocked(), nil
}

// Expired reports whether a running StopWatch has passed its timer length.
func (w *StopWatch) Expired() bool {
	left, err := w.Remaining()
	return err == nil && left < 0
}

// Wait blocks until the timer expires or ctx is done. Pausing postpones the expiry,
// and a stopped or reset StopWatch makes Wait return ErrNotStarted.
func (w *StopWatch) Wait(ctx context.Context) error {
	for {
		w.mu.Lock()
		if w.stopped {
			w.mu.Unlock()
			return ErrNotStarted
		}
		left := w.timer - w.elapsedLocked()
		paused := w.paused
		changed := w.changed
		w.mu.Unlock()

		if left < 0 {
			return nil
		}
		var alarm <-chan time.Time
		if !paused {
			alarm = w.clock.After(left + time.Nanosecond)
		}
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case <-changed:
		case <-alarm:
		}
	}
}

// RunFor calls fn repeatedly until the timer expires. fn may Pause and Unpause the StopWatch
// to keep its own bookkeeping out of the measured time.
func (w *StopWatch) RunFor(fn func()) error {
	for {
		left, err := w.Remaining()
		if err != nil {
			return err
		}
		if left < 0 {
			return nil
		}
		fn()
	}
}

func (w *StopWatch) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.stopped:
		return fmt.Sprintf("stopwatch %s stopped", w.id)
	case w.paused:
		return fmt.Sprintf("stopwatch %s paused at %v of %v", w.id, w.elapsedLocked(), w.timer)
	}
	return fmt.Sprintf("stopwatch %s running %v of %v", w.id, w.elapsedLocked(), w.timer)
}
