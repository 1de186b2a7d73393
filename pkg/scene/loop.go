package scene

import (
	"context"
	"time"

	"github.com/matzehuels/cardspace/pkg/errors"
)

// DefaultFrameInterval is the frame cadence of a [Loop], about 60 Hz.
const DefaultFrameInterval = time.Second / 60

// ErrStopped is returned by [Loop.Do] after the loop has exited.
var ErrStopped = errors.New(errors.ErrCodeInternal, "scene loop stopped")

// Loop owns a Scene on a single goroutine. It steps the scene every frame
// while a transition runs and executes closures submitted with [Loop.Do]
// between frames, so the scene is never touched concurrently.
type Loop struct {
	scene    *Scene
	interval time.Duration
	cmds     chan func(*Scene)
	done     chan struct{}
}

// NewLoop returns a loop for s. A non-positive interval means
// [DefaultFrameInterval]. The loop does nothing until [Loop.Run] is called.
func NewLoop(s *Scene, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Loop{
		scene:    s,
		interval: interval,
		cmds:     make(chan func(*Scene)),
		done:     make(chan struct{}),
	}
}

// Run drives the scene until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.cmds:
			fn(l.scene)
		case now := <-ticker.C:
			if l.scene.Animating() {
				l.scene.Step(now)
			}
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to return. It fails
// with the context's error if ctx ends first or with [ErrStopped] once the
// loop has exited.
func (l *Loop) Do(ctx context.Context, fn func(*Scene) error) error {
	errc := make(chan error, 1)
	cmd := func(s *Scene) { errc <- fn(s) }

	select {
	case l.cmds <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrStopped
	}

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reload fetches records on the calling goroutine, then rebuilds the scene
// from them on the loop goroutine. Frames and other closures keep running
// while the fetch is in flight; a failed fetch leaves the scene untouched.
// It returns the number of loaded records.
func (l *Loop) Reload(ctx context.Context) (int, error) {
	set, err := l.scene.fetch(ctx)
	if err != nil {
		return 0, err
	}
	if err := l.Do(ctx, func(s *Scene) error { return s.LoadSet(ctx, set) }); err != nil {
		return 0, err
	}
	return set.Len(), nil
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }
