package tween

import "time"

// Tween interpolates over a fixed duration starting at a fixed time.
type Tween struct {
	start    time.Time
	duration time.Duration
	easing   Easing
	update   func(progress float64)
	complete func()
	done     bool
}

// New returns a tween that starts at start and lasts duration. On every
// [Tween.Update] it calls update with the eased progress; the last call
// always receives exactly 1.
func New(start time.Time, duration time.Duration, easing Easing, update func(progress float64)) *Tween {
	if easing == nil {
		easing = Linear
	}
	return &Tween{
		start:    start,
		duration: duration,
		easing:   easing,
		update:   update,
	}
}

// OnComplete registers fn to run once after the final update.
func (t *Tween) OnComplete(fn func()) *Tween {
	t.complete = fn
	return t
}

// Duration returns the tween's length.
func (t *Tween) Duration() time.Duration { return t.duration }

// Update advances the tween to now and reports whether it is still running.
// Before the start time it does nothing.
func (t *Tween) Update(now time.Time) bool {
	if t.done {
		return false
	}
	if now.Before(t.start) {
		return true
	}

	k := 1.0
	if t.duration > 0 {
		k = min(float64(now.Sub(t.start))/float64(t.duration), 1)
	}

	if t.update != nil {
		if k >= 1 {
			t.update(1)
		} else {
			t.update(t.easing(k))
		}
	}

	if k < 1 {
		return true
	}
	t.done = true
	if t.complete != nil {
		t.complete()
	}
	return false
}
