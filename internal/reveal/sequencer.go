// internal/reveal/sequencer.go
//
// Package reveal implements the timing state machine that delays presentation
// of an already-computed round result for dramatic effect. The authoritative
// result is computed eagerly and held by the caller; the sequencer's only job
// is to decide when the UI may render it. Timers are abstracted behind a
// Scheduler so transitions are unit-testable without real clocks.
package reveal

import (
	"sync"
	"time"
)

// Phase is a presentation state of the reveal flow.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseLockIn       Phase = "lock_in"
	PhaseBuildup      Phase = "buildup"
	PhaseReveal       Phase = "reveal"
	PhaseInterstitial Phase = "interstitial"
)

// Default phase durations. Hits get a longer suspense window than misses.
const (
	LockInDuration       = 900 * time.Millisecond
	BuildupDuration      = 2200 * time.Millisecond
	RevealHold           = 3 * time.Second
	MissLockInDuration   = 600 * time.Millisecond
	InterstitialDuration = 4 * time.Second
)

// TimerHandle is a cancelable pending transition.
type TimerHandle interface {
	// Stop cancels the pending callback; reports whether it was still pending.
	Stop() bool
}

// Scheduler schedules a callback after a delay. The real implementation wraps
// time.AfterFunc; tests substitute a manual one.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) TimerHandle
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, fn func()) TimerHandle {
	return time.AfterFunc(d, fn)
}

// Sequencer is a single-owner timing state machine. At most one timer is
// pending at any moment; every new sequence cancels the previous handle
// before scheduling, so a superseded timer can never resurrect a stale phase.
type Sequencer struct {
	mu    sync.Mutex
	phase Phase
	timer TimerHandle
	gen   int // bumped on every reset/new sequence; stale callbacks bail out

	sched   Scheduler
	onPhase func(Phase)
}

// NewSequencer builds an idle sequencer. A nil scheduler uses real timers.
// onPhase, if non-nil, is invoked on every phase change.
func NewSequencer(sched Scheduler, onPhase func(Phase)) *Sequencer {
	if sched == nil {
		sched = realScheduler{}
	}
	return &Sequencer{
		phase:   PhaseIdle,
		sched:   sched,
		onPhase: onPhase,
	}
}

// Phase returns the current presentation phase.
func (s *Sequencer) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Begin starts the reveal sequence for a freshly judged answer. Hit results
// run idle -> lock_in -> buildup -> reveal -> idle; misses run the shorter
// idle -> lock_in -> idle. Any pending sequence is canceled first.
func (s *Sequencer) Begin(hit bool) {
	s.mu.Lock()
	s.cancelLocked()
	gen := s.gen
	s.phase = PhaseLockIn
	if hit {
		s.scheduleLocked(LockInDuration, func() { s.advance(gen, PhaseBuildup) })
	} else {
		s.scheduleLocked(MissLockInDuration, func() { s.advance(gen, PhaseIdle) })
	}
	s.mu.Unlock()
	s.notify(PhaseLockIn)
}

// BeginInterstitial shows the between-rounds card, then returns to idle.
func (s *Sequencer) BeginInterstitial() {
	s.mu.Lock()
	s.cancelLocked()
	gen := s.gen
	s.phase = PhaseInterstitial
	s.scheduleLocked(InterstitialDuration, func() { s.advance(gen, PhaseIdle) })
	s.mu.Unlock()
	s.notify(PhaseInterstitial)
}

// Reset cancels any pending transition and returns to idle. Safe to call at
// any time, from any phase, repeatedly.
func (s *Sequencer) Reset() {
	s.mu.Lock()
	s.cancelLocked()
	changed := s.phase != PhaseIdle
	s.phase = PhaseIdle
	s.mu.Unlock()
	if changed {
		s.notify(PhaseIdle)
	}
}

// advance is the timer callback target. It moves to the next phase unless the
// sequence it belonged to has been reset or replaced.
func (s *Sequencer) advance(gen int, next Phase) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.phase = next
	switch next {
	case PhaseBuildup:
		s.scheduleLocked(BuildupDuration, func() { s.advance(gen, PhaseReveal) })
	case PhaseReveal:
		s.scheduleLocked(RevealHold, func() { s.advance(gen, PhaseIdle) })
	}
	s.mu.Unlock()
	s.notify(next)
}

// cancelLocked stops the pending timer, if any, and invalidates outstanding
// callbacks. Caller holds s.mu.
func (s *Sequencer) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

// scheduleLocked registers the single pending transition. Caller holds s.mu.
func (s *Sequencer) scheduleLocked(d time.Duration, fn func()) {
	s.timer = s.sched.AfterFunc(d, fn)
}

func (s *Sequencer) notify(p Phase) {
	if s.onPhase != nil {
		s.onPhase(p)
	}
}
