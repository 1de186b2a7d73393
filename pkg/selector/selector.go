// Package selector tracks which layout is active and switches between them.
//
// Layout names arrive from UI controls and HTTP requests as plain strings.
// [Selector.ChangeLayout] accepts any string: names that are not a known
// layout are ignored without error, so a stale button or a typo in a URL
// never disturbs the scene.
package selector

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardspace/pkg/layout"
	"github.com/matzehuels/cardspace/pkg/transition"
)

// DefaultDuration is the base transition duration used when none is set.
const DefaultDuration = 2000 * time.Millisecond

// Transitioner starts a transition. *transition.Controller implements it.
type Transitioner interface {
	Transition(objects []transition.Object, targets layout.TargetSet, base time.Duration) error
}

// Selector holds the active layout of one scene.
type Selector struct {
	ctrl     Transitioner
	objects  []transition.Object
	targets  layout.Targets
	active   layout.Kind
	duration time.Duration
	logger   *log.Logger
}

// Options configures a Selector.
type Options struct {
	// Initial is the layout reported as active before any change.
	// Defaults to [layout.Table].
	Initial layout.Kind
	// Duration is the base transition duration. Defaults to [DefaultDuration].
	Duration time.Duration
	Logger   *log.Logger
}

// New returns a selector that drives ctrl.
func New(ctrl Transitioner, opts Options) *Selector {
	if !opts.Initial.Valid() {
		opts.Initial = layout.Table
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Selector{
		ctrl:     ctrl,
		active:   opts.Initial,
		duration: opts.Duration,
		logger:   opts.Logger,
	}
}

// Bind points the selector at a freshly loaded set of objects and their
// target sets. The active layout is kept.
func (s *Selector) Bind(objects []transition.Object, targets layout.Targets) {
	s.objects = objects
	s.targets = targets
}

// Active returns the active layout.
func (s *Selector) Active() layout.Kind { return s.active }

// Duration returns the base transition duration.
func (s *Selector) Duration() time.Duration { return s.duration }

// ChangeLayout makes name the active layout and starts a transition to it.
//
// Unknown names are a silent no-op: the active layout and every object stay
// as they are and ChangeLayout returns nil. Errors from the transition
// itself are returned; in that case the active layout is not changed.
func (s *Selector) ChangeLayout(name string) error {
	kind, ok := layout.ParseKind(name)
	if !ok {
		s.logger.Debug("ignoring unknown layout", "name", name)
		return nil
	}
	if err := s.ctrl.Transition(s.objects, s.targets[kind], s.duration); err != nil {
		return err
	}
	s.active = kind
	s.logger.Debug("layout changed", "layout", kind, "objects", len(s.objects))
	return nil
}

// Replay starts a transition to the active layout again, for example after
// a reload scattered the objects.
func (s *Selector) Replay() error {
	return s.ctrl.Transition(s.objects, s.targets[s.active], s.duration)
}
