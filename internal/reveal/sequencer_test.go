// internal/reveal/sequencer_test.go
package reveal

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScheduler collects scheduled callbacks and fires them manually, so
// sequences advance without real timers.
type fakeScheduler struct {
	mu      sync.Mutex
	pending []*fakeTimer
}

type fakeTimer struct {
	fn      func()
	stopped bool
	fired   bool
}

func (ft *fakeTimer) Stop() bool {
	if ft.stopped || ft.fired {
		return false
	}
	ft.stopped = true
	return true
}

func (fs *fakeScheduler) AfterFunc(d time.Duration, fn func()) TimerHandle {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	ft := &fakeTimer{fn: fn}
	fs.pending = append(fs.pending, ft)
	return ft
}

// fireNext runs the oldest unfired, unstopped callback. Returns false when
// nothing was pending.
func (fs *fakeScheduler) fireNext() bool {
	fs.mu.Lock()
	var target *fakeTimer
	for _, ft := range fs.pending {
		if !ft.fired && !ft.stopped {
			target = ft
			break
		}
	}
	if target != nil {
		target.fired = true
	}
	fs.mu.Unlock()

	if target == nil {
		return false
	}
	target.fn()
	return true
}

// fireAll drains every pending callback, including ones scheduled by earlier
// callbacks.
func (fs *fakeScheduler) fireAll() {
	for fs.fireNext() {
	}
}

// fireStale runs callbacks even if their timer was stopped, simulating a
// timer that was already in flight when Stop was called.
func (fs *fakeScheduler) fireStale() {
	fs.mu.Lock()
	stale := make([]*fakeTimer, 0)
	for _, ft := range fs.pending {
		if !ft.fired {
			ft.fired = true
			stale = append(stale, ft)
		}
	}
	fs.mu.Unlock()
	for _, ft := range stale {
		ft.fn()
	}
}

func setupSequencer() (*Sequencer, *fakeScheduler, *[]Phase) {
	fs := &fakeScheduler{}
	var trace []Phase
	s := NewSequencer(fs, func(p Phase) { trace = append(trace, p) })
	return s, fs, &trace
}

func TestHitPath(t *testing.T) {
	s, fs, trace := setupSequencer()
	require.Equal(t, PhaseIdle, s.Phase())

	s.Begin(true)
	assert.Equal(t, PhaseLockIn, s.Phase())

	require.True(t, fs.fireNext())
	assert.Equal(t, PhaseBuildup, s.Phase())

	require.True(t, fs.fireNext())
	assert.Equal(t, PhaseReveal, s.Phase())

	require.True(t, fs.fireNext())
	assert.Equal(t, PhaseIdle, s.Phase())

	assert.Equal(t, []Phase{PhaseLockIn, PhaseBuildup, PhaseReveal, PhaseIdle}, *trace)
}

func TestMissPath(t *testing.T) {
	s, fs, trace := setupSequencer()

	s.Begin(false)
	assert.Equal(t, PhaseLockIn, s.Phase())

	fs.fireAll()
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Equal(t, []Phase{PhaseLockIn, PhaseIdle}, *trace, "misses skip buildup and reveal")
}

func TestInterstitial(t *testing.T) {
	s, fs, _ := setupSequencer()

	s.BeginInterstitial()
	assert.Equal(t, PhaseInterstitial, s.Phase())

	fs.fireAll()
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestNewSequenceCancelsPending(t *testing.T) {
	s, fs, _ := setupSequencer()

	s.Begin(true)
	require.True(t, fs.fireNext()) // lock_in -> buildup
	require.Equal(t, PhaseBuildup, s.Phase())

	// Starting a new round replaces the buildup->reveal timer.
	s.Begin(false)
	assert.Equal(t, PhaseLockIn, s.Phase())

	fs.fireAll()
	assert.Equal(t, PhaseIdle, s.Phase(), "only the new sequence's transitions may run")
}

func TestStaleTimerNeverResurrectsPhase(t *testing.T) {
	s, fs, _ := setupSequencer()

	s.Begin(true)
	s.Reset()
	require.Equal(t, PhaseIdle, s.Phase())

	// Fire the canceled callback as if it was already in flight.
	fs.fireStale()
	assert.Equal(t, PhaseIdle, s.Phase(), "a superseded timer must not change the phase")
}

func TestResetIdempotent(t *testing.T) {
	s, fs, trace := setupSequencer()

	s.Reset()
	s.Reset()
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Empty(t, *trace, "resetting an idle sequencer emits nothing")

	s.Begin(true)
	s.Reset()
	s.Reset()
	assert.Equal(t, PhaseIdle, s.Phase())

	fs.fireStale()
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestRealSchedulerRunsCallbacks(t *testing.T) {
	done := make(chan Phase, 8)
	s := NewSequencer(nil, func(p Phase) { done <- p })

	s.Begin(false)
	require.Equal(t, PhaseLockIn, <-done)

	select {
	case p := <-done:
		assert.Equal(t, PhaseIdle, p)
	case <-time.After(MissLockInDuration + 2*time.Second):
		t.Fatal("timed out waiting for miss sequence to finish")
	}
}
