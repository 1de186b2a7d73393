package transition

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/cardspace/pkg/errors"
	"github.com/matzehuels/cardspace/pkg/layout"
	"github.com/matzehuels/cardspace/pkg/observability"
	"github.com/matzehuels/cardspace/pkg/tween"
)

// driverID is the registry key of the frame driver tween.
const driverID = ""

// Controller drives transitions for one scene. It is not safe for
// concurrent use: all calls must come from the loop that owns the scene.
type Controller struct {
	group  *tween.Group
	rng    RandSource
	now    func() time.Time
	render RenderFunc
	easing tween.Easing
	jitter bool
	logger *log.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithRand sets the source of duration jitter. Tests pin it to make
// durations predictable.
func WithRand(r RandSource) Option {
	return func(c *Controller) { c.rng = r }
}

// WithClock sets the clock that stamps the start of each transition.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithRender sets the callback invoked on every animation step.
func WithRender(fn RenderFunc) Option {
	return func(c *Controller) { c.render = fn }
}

// WithEasing replaces the exponential in-out curve.
func WithEasing(e tween.Easing) Option {
	return func(c *Controller) { c.easing = e }
}

// WithoutJitter gives every tween exactly the base duration so that all
// cards arrive together.
func WithoutJitter() Option {
	return func(c *Controller) { c.jitter = false }
}

// WithLogger sets the logger used for render failures.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New returns a controller with no transition in flight.
func New(opts ...Option) *Controller {
	c := &Controller{
		group:  tween.NewGroup(),
		now:    time.Now,
		easing: tween.ExponentialInOut,
		jitter: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		seed := uint64(c.now().UnixNano())
		c.rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c
}

// Transition starts animating objects toward targets over roughly base.
//
// objects and targets must have the same length; otherwise Transition
// returns a LENGTH_MISMATCH error and leaves both the objects and any
// in-flight transition untouched. On success every previously scheduled
// tween is discarded first, so objects continue from wherever the
// interrupted transition left them.
func (c *Controller) Transition(objects []Object, targets layout.TargetSet, base time.Duration) error {
	if len(objects) != len(targets) {
		return errors.New(errors.ErrCodeLengthMismatch,
			"transition needs one target per object: %d objects, %d targets", len(objects), len(targets))
	}
	if base < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "negative transition duration %s", base)
	}

	c.group.Clear()
	start := c.now()

	for i, obj := range objects {
		target := targets[i]
		c.group.Add(obj.ID(), c.positionTween(obj, target.Position, start, c.duration(base)))
		c.group.Add(obj.ID(), c.rotationTween(obj, target.Orientation(), start, c.duration(base)))
	}

	// Jittered tweens end before 2*base, so the driver finishes last.
	driver := tween.New(start, 2*base, tween.Linear, func(float64) { c.redraw() })
	driver.OnComplete(func() {
		c.logger.Debug("transition complete", "objects", len(objects))
		observability.Transition().OnTransitionComplete()
	})
	c.group.Add(driverID, driver)

	observability.Transition().OnTransitionStart(len(objects), base)
	return nil
}

// Step advances every in-flight tween to now and reports whether any remain.
func (c *Controller) Step(now time.Time) bool {
	if c.group.Len() == 0 {
		return false
	}
	return c.group.Update(now)
}

// Active reports whether a transition is in flight.
func (c *Controller) Active() bool { return c.group.Len() > 0 }

// Pending returns the number of scheduled tweens, frame driver included.
func (c *Controller) Pending() int { return c.group.Len() }

// Durations returns the durations of the tweens pending for object id:
// position first, then orientation.
func (c *Controller) Durations(id string) []time.Duration {
	ts := c.group.Get(id)
	out := make([]time.Duration, len(ts))
	for i, tw := range ts {
		out[i] = tw.Duration()
	}
	return out
}

// Cancel discards the in-flight transition, leaving objects where they are.
func (c *Controller) Cancel() { c.group.Clear() }

func (c *Controller) duration(base time.Duration) time.Duration {
	if !c.jitter {
		return base
	}
	return base + time.Duration(c.rng.Float64()*float64(base))
}

func (c *Controller) positionTween(obj Object, to mgl64.Vec3, start time.Time, d time.Duration) *tween.Tween {
	from := obj.Position()
	delta := to.Sub(from)
	return tween.New(start, d, c.easing, func(p float64) {
		if p >= 1 {
			obj.SetPosition(to)
			return
		}
		obj.SetPosition(from.Add(delta.Mul(p)))
	})
}

func (c *Controller) rotationTween(obj Object, to mgl64.Quat, start time.Time, d time.Duration) *tween.Tween {
	from := obj.Rotation()
	// Take the short way round.
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return tween.New(start, d, c.easing, func(p float64) {
		if p >= 1 {
			obj.SetRotation(to)
			return
		}
		obj.SetRotation(mgl64.QuatSlerp(from, to, p))
	})
}

// redraw calls the render callback, logging and swallowing its failures so
// a broken renderer cannot stop the animation.
func (c *Controller) redraw() {
	if c.render == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("render panic: %v", r)
			c.logger.Error("render callback failed", "err", err)
			observability.Transition().OnRenderError(err)
		}
	}()
	if err := c.render(); err != nil {
		c.logger.Error("render callback failed", "err", err)
		observability.Transition().OnRenderError(err)
	}
}
