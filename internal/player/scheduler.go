package player

import (
	"context"
	"time"
)

// Token identifies one armed tick.
type Token uint64

// Scheduler arms autoplay ticks for a store. Only the most recently armed
// token can fire; Cancel invalidates it.
type Scheduler struct {
	store *Store
	base  time.Duration
	gen   Token
	armed bool
}

// NewScheduler returns a scheduler for store. A non-positive base falls back
// to DefaultBaseInterval.
func NewScheduler(store *Store, base time.Duration) *Scheduler {
	if base <= 0 {
		base = DefaultBaseInterval
	}
	return &Scheduler{store: store, base: base}
}

// Arm schedules the next tick and returns its token and delay. Any tick that
// was armed earlier becomes stale.
func (sc *Scheduler) Arm() (Token, time.Duration) {
	sc.gen++
	sc.armed = true
	return sc.gen, sc.store.Interval(sc.base)
}

// Cancel invalidates the pending tick.
func (sc *Scheduler) Cancel() {
	sc.gen++
	sc.armed = false
}

// Pending reports whether a live tick is armed.
func (sc *Scheduler) Pending() bool { return sc.armed }

// Fire delivers tick tok. Stale tokens and paused stores are ignored. It
// reports whether the store moved to a new step.
func (sc *Scheduler) Fire(tok Token) bool {
	if !sc.armed || tok != sc.gen {
		return false
	}
	sc.armed = false
	if !sc.store.IsPlaying() {
		return false
	}
	before := sc.store.Index()
	sc.store.Next()
	return sc.store.Index() != before
}

// AutoplayOptions configure Autoplay.
type AutoplayOptions struct {
	BaseInterval time.Duration
	// OnStep runs after every advancing tick. It may pause the store or
	// change its speed.
	OnStep func(*Store)
}

// Autoplay plays store until it stops playing or ctx is done. It starts
// playback if the store is paused and returns ctx.Err() on cancellation.
func Autoplay(ctx context.Context, store *Store, opts AutoplayOptions) error {
	sc := NewScheduler(store, opts.BaseInterval)
	store.Play()

	for store.IsPlaying() {
		tok, delay := sc.Arm()
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			sc.Cancel()
			store.Pause()
			return ctx.Err()
		case <-timer.C:
		}
		if sc.Fire(tok) && opts.OnStep != nil {
			opts.OnStep(store)
		}
	}
	return nil
}
